package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/k3lly003/Construct-KVV-sub003/models"
)

type createProjectRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	BudgetMin   int64      `json:"budgetMin"`
	BudgetMax   int64      `json:"budgetMax"`
	Deadline    *time.Time `json:"deadline"`
}

// CreateProjectHandler posts a new project, owned by the calling customer.
func (h *Handler) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
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

	var req createProjectRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if err := validateProjectRequest(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	project := models.Project{
		OwnerID:     actor.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.ProjectOpen,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Deadline:    req.Deadline,
	}
	if err := h.Store.CreateProject(r.Context(), &project); err != nil {
		http.Error(w, "Failed to create project", http.StatusInternalServerError)
		return
	}

	writeJSON(w, project)
}

func validateProjectRequest(p *createProjectRequest) error {
	if p.Title == "" || len(p.Title) > 100 {
		return errors.New("title is required and max length 100")
	}
	if len(p.Description) > 2000 {
		return errors.New("description max length 2000")
	}
	if p.BudgetMin < 0 || p.BudgetMax < 0 || p.BudgetMax < p.BudgetMin {
		return errors.New("budget range must be non-negative with min <= max")
	}
	return nil
}

// GetProjectHandler returns one project by id.
func (h *Handler) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	projectIDStr := chi.URLParam(r, "projectId")
	projectID, err := strconv.Atoi(projectIDStr)
	if err != nil || projectID <= 0 {
		http.Error(w, "Invalid projectId", http.StatusBadRequest)
		return
	}

	project, err := h.Store.GetProject(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, project)
}
