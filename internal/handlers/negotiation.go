package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/k3lly003/Construct-KVV-sub003/internal/thread"
	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// GetNegotiationThreadHandler returns a bid's full conversation: the
// original offer as the opening entry, then every message in timestamp
// order. Clients refetch this periodically; there is no push channel.
func (h *Handler) GetNegotiationThreadHandler(w http.ResponseWriter, r *http.Request) {
	bidIDStr := chi.URLParam(r, "bidId")
	bidID, err := strconv.Atoi(bidIDStr)
	if err != nil || bidID <= 0 {
		http.Error(w, "Invalid bidId", http.StatusBadRequest)
		return
	}

	bid, err := h.Store.GetBid(r.Context(), bidID)
	if err != nil {
		writeError(w, err)
		return
	}

	msgs, err := h.Store.GetNegotiationMessages(r.Context(), bidID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, thread.Assemble(bid, msgs))
}

type createMessageRequest struct {
	Message    string `json:"message"`
	SenderType string `json:"senderType"`
	File       string `json:"file"`
}

// CreateNegotiationMessageHandler appends a message to a bid's thread. The
// sender's role comes from the resolved user, never from the client;
// a senderType hint that contradicts it is rejected.
func (h *Handler) CreateNegotiationMessageHandler(w http.ResponseWriter, r *http.Request) {
	bidIDStr := chi.URLParam(r, "bidId")
	bidID, err := strconv.Atoi(bidIDStr)
	if err != nil || bidID <= 0 {
		http.Error(w, "Invalid bidId", http.StatusBadRequest)
		return
	}

	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req createMessageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}
	if req.SenderType != "" && req.SenderType != string(actor.Role) {
		http.Error(w, "senderType does not match the authenticated user", http.StatusBadRequest)
		return
	}

	// Only the two negotiating parties may post.
	bid, err := h.Store.GetBid(r.Context(), bidID)
	if err != nil {
		writeError(w, err)
		return
	}
	project, err := h.Store.GetProject(r.Context(), bid.ProjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	if actor.ID != bid.BidderID && actor.ID != project.OwnerID {
		writeError(w, models.ErrUnauthorized)
		return
	}

	msg := models.NegotiationMessage{
		BidID:      bidID,
		SenderID:   actor.ID,
		SenderRole: actor.Role,
		Body:       req.Message,
	}
	if req.File != "" {
		ref := uuid.NewString()
		msg.AttachmentRef = &ref
	}

	if err := h.Store.CreateNegotiationMessage(r.Context(), &msg); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, msg)
}
