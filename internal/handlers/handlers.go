package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/k3lly003/Construct-KVV-sub003/internal/logger"
	"github.com/k3lly003/Construct-KVV-sub003/internal/split"
	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// Handler wires the HTTP surface to the storage layer.
type Handler struct {
	Store StorageInterface

	// DefaultSplitRatio applies when a split request carries no ratio.
	DefaultSplitRatio float64
	Rounding          split.Rounding
}

func NewHandler(store StorageInterface, defaultSplitRatio float64, rounding split.Rounding) *Handler {
	return &Handler{
		Store:             store,
		DefaultSplitRatio: defaultSplitRatio,
		Rounding:          rounding,
	}
}

// PingHandler answers "ok" for liveness checks.
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// writeJSON renders v with the JSON content type.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeError maps the sentinel taxonomy onto HTTP statuses. Conflict (409)
// covers the expected race outcomes so callers can tell "already handled"
// apart from "something broke".
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidRatio):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrBidNotFound),
		errors.Is(err, models.ErrProjectNotFound),
		errors.Is(err, models.ErrSplitNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrProjectNotOpen),
		errors.Is(err, models.ErrProjectAlreadyClosed),
		errors.Is(err, models.ErrProjectNotClosed),
		errors.Is(err, models.ErrAlreadyChecked):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		logger.Error("internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// requireActor resolves the username query parameter to a user row. Client
// identity claims are never trusted; every mutating call re-validates here.
func (h *Handler) requireActor(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		http.Error(w, "Missing username parameter", http.StatusBadRequest)
		return nil, false
	}
	actor, err := h.Store.GetUserByUsername(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return actor, true
}

type PaginationParams struct {
	Limit  int
	Offset int
}

// parsePaginationParams reads limit and offset with defaults and caps.
func parsePaginationParams(r *http.Request) PaginationParams {
	params := PaginationParams{Limit: 20, Offset: 0}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			params.Limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			params.Offset = o
		}
	}
	return params
}
