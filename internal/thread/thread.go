// Package thread assembles a bid's negotiation history into one ordered
// conversation. The bid's original offer is synthesized as the opening entry
// and merged with the follow-up messages by timestamp, so the thread always
// starts with the offer no matter the order messages arrived in.
package thread

import (
	"sort"
	"time"
	"unicode/utf8"

	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// PreviewLength is the display preview cutoff in runes. The full body is
// always preserved alongside the preview.
const PreviewLength = 160

// Side classifies an entry relative to a viewer, for display alignment.
type Side string

const (
	SideSelf  Side = "SELF"
	SideOther Side = "OTHER"
)

// Entry is one event in a negotiation thread: either the synthetic
// initial-bid entry or a stored message.
type Entry struct {
	IsInitialBid  bool        `json:"isInitialBid"`
	MessageID     int         `json:"messageId,omitempty"`
	SenderID      int         `json:"senderId"`
	SenderRole    models.Role `json:"senderRole"`
	Amount        int64       `json:"amount,omitempty"`
	Body          string      `json:"body"`
	Preview       string      `json:"preview"`
	Truncated     bool        `json:"truncated"`
	AttachmentRef *string     `json:"attachmentRef,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Assemble merges the originating bid with its negotiation messages, ordered
// ascending by creation time. Messages must arrive ordered by (createdAt, id);
// the sort is stable, so insertion order breaks timestamp ties and the
// initial-bid entry stays ahead of anything sharing its timestamp.
func Assemble(bid *models.Bid, msgs []models.NegotiationMessage) []Entry {
	entries := make([]Entry, 0, len(msgs)+1)

	entries = append(entries, Entry{
		IsInitialBid: true,
		SenderID:     bid.BidderID,
		SenderRole:   models.RoleSeller,
		Amount:       bid.Amount,
		Body:         bid.Message,
		Preview:      preview(bid.Message),
		Truncated:    truncated(bid.Message),
		CreatedAt:    bid.CreatedAt,
	})

	for _, m := range msgs {
		entries = append(entries, Entry{
			MessageID:     m.ID,
			SenderID:      m.SenderID,
			SenderRole:    m.SenderRole,
			Body:          m.Body,
			Preview:       preview(m.Body),
			Truncated:     truncated(m.Body),
			AttachmentRef: m.AttachmentRef,
			CreatedAt:     m.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries
}

// Alignment reports which side of the conversation an entry renders on for
// the given viewer. Pure classification, no state.
func Alignment(e Entry, viewerID int) Side {
	if e.SenderID == viewerID {
		return SideSelf
	}
	return SideOther
}

func truncated(body string) bool {
	return utf8.RuneCountInString(body) > PreviewLength
}

func preview(body string) string {
	if !truncated(body) {
		return body
	}
	runes := []rune(body)
	return string(runes[:PreviewLength])
}
