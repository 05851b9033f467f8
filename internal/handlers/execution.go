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

func projectIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	projectIDStr := chi.URLParam(r, "projectId")
	projectID, err := strconv.Atoi(projectIDStr)
	if err != nil || projectID <= 0 {
		http.Error(w, "Invalid projectId", http.StatusBadRequest)
		return 0, false
	}
	return projectID, true
}

type milestoneRequest struct {
	ProjectID  int `json:"projectId"`
	Foundation int `json:"foundation"`
	Roofing    int `json:"roofing"`
	Finishing  int `json:"finishing"`
}

func validateMilestoneRequest(m *milestoneRequest) error {
	for _, v := range []int{m.Foundation, m.Roofing, m.Finishing} {
		if v < 0 || v > 100 {
			return errors.New("stage percentages must be between 0 and 100")
		}
	}
	return nil
}

// GetMilestoneHandler returns a project's milestone row with the derived
// percent-complete.
func (h *Handler) GetMilestoneHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	m, err := h.Store.GetMilestone(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, struct {
		*models.Milestone
		PercentComplete int `json:"percentComplete"`
	}{m, m.PercentComplete()})
}

// UpsertMilestoneHandler handles PUT milestones/project/{projectId}.
func (h *Handler) UpsertMilestoneHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	h.upsertMilestone(w, r, projectID)
}

// CreateMilestoneHandler handles POST milestones with projectId in the body.
// Create and update converge on the same upsert.
func (h *Handler) CreateMilestoneHandler(w http.ResponseWriter, r *http.Request) {
	h.upsertMilestone(w, r, 0)
}

func (h *Handler) upsertMilestone(w http.ResponseWriter, r *http.Request, projectID int) {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req milestoneRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if projectID == 0 {
		projectID = req.ProjectID
	}
	if projectID <= 0 {
		http.Error(w, "projectId must be positive", http.StatusBadRequest)
		return
	}
	if err := validateMilestoneRequest(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m := models.Milestone{
		ProjectID:  projectID,
		Foundation: req.Foundation,
		Roofing:    req.Roofing,
		Finishing:  req.Finishing,
	}
	if err := h.Store.UpsertMilestone(r.Context(), &m); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, struct {
		*models.Milestone
		PercentComplete int `json:"percentComplete"`
	}{&m, m.PercentComplete()})
}

type timelineRequest struct {
	ProjectID int        `json:"projectId"`
	StartedAt *time.Time `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt"`
}

func (h *Handler) GetTimelineHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	t, err := h.Store.GetTimeline(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, t)
}

// UpsertTimelineHandler handles PUT timelines/project/{projectId}.
func (h *Handler) UpsertTimelineHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	h.upsertTimeline(w, r, projectID)
}

// CreateTimelineHandler handles POST timelines with projectId in the body.
func (h *Handler) CreateTimelineHandler(w http.ResponseWriter, r *http.Request) {
	h.upsertTimeline(w, r, 0)
}

func (h *Handler) upsertTimeline(w http.ResponseWriter, r *http.Request, projectID int) {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req timelineRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON format (timestamps must be ISO-8601)", http.StatusBadRequest)
		return
	}
	if projectID == 0 {
		projectID = req.ProjectID
	}
	if projectID <= 0 {
		http.Error(w, "projectId must be positive", http.StatusBadRequest)
		return
	}
	if req.StartedAt != nil && req.EndedAt != nil && req.EndedAt.Before(*req.StartedAt) {
		http.Error(w, "endedAt must not precede startedAt", http.StatusBadRequest)
		return
	}

	t := models.Timeline{
		ProjectID: projectID,
		StartedAt: req.StartedAt,
		EndedAt:   req.EndedAt,
	}
	if err := h.Store.UpsertTimeline(r.Context(), &t); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, t)
}

type expenseRequest struct {
	Description   string          `json:"description"`
	Stage         string          `json:"stage"`
	ExpenseAmount json.RawMessage `json:"expenseAmount"`
}

// CreateBudgetExpenseHandler appends to a closed project's expense log.
func (h *Handler) CreateBudgetExpenseHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectIDParam(w, r)
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

	var req expenseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	amount, err := parseRawAmount(req.ExpenseAmount)
	if err != nil {
		writeError(w, err)
		return
	}

	expense := models.BudgetExpense{
		ProjectID:   projectID,
		Description: req.Description,
		Stage:       req.Stage,
		Amount:      amount,
	}
	if err := h.Store.CreateBudgetExpense(r.Context(), &expense); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, expense)
}

// GetBudgetSummaryHandler reports the expense log against the settled
// contract price. Overspend shows up as negative remaining.
func (h *Handler) GetBudgetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}

	settlement, err := h.Store.GetSettlement(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	expenses, err := h.Store.GetBudgetExpenses(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, models.NewBudgetSummary(projectID, settlement.FinalAmount, expenses))
}
