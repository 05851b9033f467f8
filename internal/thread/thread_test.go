package thread_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/k3lly003/Construct-KVV-sub003/internal/thread"
	"github.com/k3lly003/Construct-KVV-sub003/models"
)

func TestAssembleOrdersByTimestamp(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	bid := &models.Bid{
		ID:        1,
		BidderID:  7,
		Amount:    80000,
		Message:   "initial offer",
		Status:    models.BidPending,
		CreatedAt: t0,
	}

	// Arrival order is T2 then T1; assembly must reorder them.
	msgs := []models.NegotiationMessage{
		{ID: 11, BidID: 1, SenderID: 3, SenderRole: models.RoleCustomer, Body: "at T2", CreatedAt: t0.Add(2 * time.Hour)},
		{ID: 12, BidID: 1, SenderID: 7, SenderRole: models.RoleSeller, Body: "at T1", CreatedAt: t0.Add(1 * time.Hour)},
	}

	entries := thread.Assemble(bid, msgs)
	require.Len(t, entries, 3)

	require.True(t, entries[0].IsInitialBid)
	require.Equal(t, "initial offer", entries[0].Body)
	require.Equal(t, int64(80000), entries[0].Amount)
	require.Equal(t, models.RoleSeller, entries[0].SenderRole)

	require.Equal(t, "at T1", entries[1].Body)
	require.Equal(t, "at T2", entries[2].Body)
}

func TestAssembleInitialBidWinsTimestampTie(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	bid := &models.Bid{ID: 1, BidderID: 7, Amount: 50000, Message: "offer", CreatedAt: t0}
	msgs := []models.NegotiationMessage{
		{ID: 21, BidID: 1, SenderID: 3, SenderRole: models.RoleCustomer, Body: "same instant", CreatedAt: t0},
	}

	entries := thread.Assemble(bid, msgs)
	require.Len(t, entries, 2)
	require.True(t, entries[0].IsInitialBid)
	require.Equal(t, "same instant", entries[1].Body)
}

func TestAssembleEmptyThread(t *testing.T) {
	bid := &models.Bid{ID: 1, BidderID: 7, Amount: 50000, Message: "offer", CreatedAt: time.Now()}

	entries := thread.Assemble(bid, nil)
	require.Len(t, entries, 1)
	require.True(t, entries[0].IsInitialBid)
}

func TestPreviewPreservesFullBody(t *testing.T) {
	long := strings.Repeat("négociation ", 40)
	bid := &models.Bid{ID: 1, BidderID: 7, Amount: 50000, Message: long, CreatedAt: time.Now()}

	entries := thread.Assemble(bid, nil)
	e := entries[0]
	require.True(t, e.Truncated)
	require.Equal(t, long, e.Body)
	require.Equal(t, thread.PreviewLength, len([]rune(e.Preview)))
	require.True(t, strings.HasPrefix(long, e.Preview))

	short := &models.Bid{ID: 2, BidderID: 7, Amount: 50000, Message: "short note", CreatedAt: time.Now()}
	entries = thread.Assemble(short, nil)
	require.False(t, entries[0].Truncated)
	require.Equal(t, "short note", entries[0].Preview)
}

func TestAlignment(t *testing.T) {
	e := thread.Entry{SenderID: 7}
	require.Equal(t, thread.SideSelf, thread.Alignment(e, 7))
	require.Equal(t, thread.SideOther, thread.Alignment(e, 3))
}
