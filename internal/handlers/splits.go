package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/k3lly003/Construct-KVV-sub003/internal/split"
	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// ListSplitCalculationsHandler returns split records newest-first for the
// back-office audit screen.
func (h *Handler) ListSplitCalculationsHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	splits, err := h.Store.ListSplitCalculations(r.Context(), params.Limit, params.Offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, splits)
}

type createSplitRequest struct {
	SellerID    int             `json:"sellerId"`
	GrossAmount json.RawMessage `json:"grossAmount"`
	SplitRatio  *float64        `json:"splitRatio"`
}

// CreateSplitHandler records the revenue split for a completed payment. The
// commission arithmetic here is the authoritative one; clients only display.
func (h *Handler) CreateSplitHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req createSplitRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if req.SellerID <= 0 {
		http.Error(w, "sellerId must be positive", http.StatusBadRequest)
		return
	}

	seller, err := h.Store.GetUser(r.Context(), req.SellerID)
	if err != nil {
		http.Error(w, "Seller not found", http.StatusNotFound)
		return
	}
	if seller.Role != models.RoleSeller {
		http.Error(w, "sellerId must reference a seller", http.StatusBadRequest)
		return
	}

	gross, err := parseRawAmount(req.GrossAmount)
	if err != nil {
		writeError(w, err)
		return
	}

	ratio := h.DefaultSplitRatio
	if req.SplitRatio != nil {
		ratio = *req.SplitRatio
	}

	calc, err := split.Calculate(gross, ratio, h.Rounding)
	if err != nil {
		writeError(w, err)
		return
	}

	sc := models.SplitCalculation{
		SellerID:           seller.ID,
		GrossAmount:        calc.Gross,
		NetAmount:          calc.Net,
		SplitRatio:         ratio,
		PlatformCommission: calc.Commission,
		TotalAmount:        calc.Total,
	}
	if err := h.Store.CreateSplitCalculation(r.Context(), &sc); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, sc)
}

// CheckSplitHandler marks a split as reconciled. The flag is one-way; a
// repeat audit fails with a conflict instead of silently succeeding.
func (h *Handler) CheckSplitHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "splitId")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid splitId", http.StatusBadRequest)
		return
	}

	sc, err := h.Store.MarkSplitChecked(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, sc)
}

// SplitSummaryHandler reports platform-wide totals, recomputed on demand.
func (h *Handler) SplitSummaryHandler(w http.ResponseWriter, r *http.Request) {
	commission, err := h.Store.TotalCommission(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	gross, err := h.Store.TotalGross(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, struct {
		TotalCommission int64 `json:"totalCommission"`
		TotalGross      int64 `json:"totalGross"`
	}{commission, gross})
}
