package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/k3lly003/Construct-KVV-sub003/internal/money"
	"github.com/k3lly003/Construct-KVV-sub003/models"
)

type createBidRequest struct {
	ProjectID int             `json:"projectId"`
	Amount    json.RawMessage `json:"amount"`
	Message   string          `json:"message"`
}

// parseRawAmount accepts an amount sent either as a JSON number or as a
// user-typed string ("RWF 85,000") and sanitizes it to whole units.
func parseRawAmount(raw json.RawMessage) (int64, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	return money.ParseAmount(s)
}

// CreateBidHandler places a bid on a project. Only sellers bid; the storage
// layer rejects bids on closed projects and on the bidder's own project.
func (h *Handler) CreateBidHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	if !models.CanBid(actor) {
		writeError(w, models.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req createBidRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if req.ProjectID <= 0 {
		http.Error(w, "projectId must be positive", http.StatusBadRequest)
		return
	}

	amount, err := parseRawAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	bid := models.Bid{
		ProjectID: req.ProjectID,
		BidderID:  actor.ID,
		Amount:    amount,
		Message:   req.Message,
	}
	if err := h.Store.CreateBid(r.Context(), &bid); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, bid)
}

// ListBidsHandler returns a project's bids, newest first.
func (h *Handler) ListBidsHandler(w http.ResponseWriter, r *http.Request) {
	projectIDStr := r.URL.Query().Get("projectId")
	projectID, err := strconv.Atoi(projectIDStr)
	if err != nil || projectID <= 0 {
		http.Error(w, "Invalid projectId parameter", http.StatusBadRequest)
		return
	}

	bids, err := h.Store.ListBidsForProject(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, bids)
}

// WithdrawBidHandler lets a bidder pull their own still-pending bid.
func (h *Handler) WithdrawBidHandler(w http.ResponseWriter, r *http.Request) {
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

	bid, err := h.Store.WithdrawBid(r.Context(), bidID, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, bid)
}

type acceptBidRequest struct {
	FinalAmount json.RawMessage `json:"finalAmount"`
}

// AcceptBidHandler finalizes one bid at the settled price. The storage layer
// runs the whole acceptance as a single transaction; this handler only
// sanitizes input and checks the actor's role up front.
func (h *Handler) AcceptBidHandler(w http.ResponseWriter, r *http.Request) {
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
	if actor.Role != models.RoleCustomer {
		writeError(w, models.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req acceptBidRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	finalAmount, err := parseRawAmount(req.FinalAmount)
	if err != nil {
		writeError(w, err)
		return
	}

	project, err := h.Store.AcceptBid(r.Context(), bidID, finalAmount, actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, project)
}
