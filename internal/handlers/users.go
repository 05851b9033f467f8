package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// CreateUserHandler provisions a marketplace user. Session and credential
// mechanics live elsewhere; this only establishes identity and role.
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := validateUserRequest(&user); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Store.CreateUser(r.Context(), &user); err != nil {
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, user)
}

func validateUserRequest(u *models.User) error {
	if u.Username == "" || len(u.Username) > 100 {
		return errors.New("username is required and max length 100")
	}
	switch u.Role {
	case models.RoleCustomer, models.RoleSeller:
		// ok
	default:
		return errors.New("role must be CUSTOMER or SELLER")
	}
	return nil
}
