package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// requireClosedProject guards the execution tracker: only a project that was
// closed through an accepted bid may accumulate delivery state.
func (s *Storage) requireClosedProject(ctx context.Context, projectID int) error {
	var status models.ProjectStatus
	err := s.db.GetContext(ctx, &status, `SELECT status FROM project WHERE id=$1`, projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrProjectNotFound
	}
	if err != nil {
		return fmt.Errorf("get project %d status: %w", projectID, err)
	}
	if status != models.ProjectClosed {
		return models.ErrProjectNotClosed
	}
	return nil
}

// UpsertMilestone writes the single milestone row for a project, creating it
// on first write and overwriting it in place afterwards.
func (s *Storage) UpsertMilestone(ctx context.Context, m *models.Milestone) error {
	if err := s.requireClosedProject(ctx, m.ProjectID); err != nil {
		return err
	}
	query := `
        INSERT INTO milestone (project_id, foundation, roofing, finishing, updated_at)
        VALUES ($1, $2, $3, $4, NOW())
        ON CONFLICT (project_id) DO UPDATE
        SET foundation = EXCLUDED.foundation,
            roofing    = EXCLUDED.roofing,
            finishing  = EXCLUDED.finishing,
            updated_at = NOW()
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query,
		m.ProjectID, m.Foundation, m.Roofing, m.Finishing).
		Scan(&m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert milestone for project %d: %w", m.ProjectID, err)
	}
	return nil
}

func (s *Storage) GetMilestone(ctx context.Context, projectID int) (*models.Milestone, error) {
	m := &models.Milestone{}
	query := `SELECT * FROM milestone WHERE project_id=$1`
	err := s.db.GetContext(ctx, m, query, projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get milestone for project %d: %w", projectID, err)
	}
	return m, nil
}

// UpsertTimeline has the same one-row-per-project contract as milestones.
func (s *Storage) UpsertTimeline(ctx context.Context, t *models.Timeline) error {
	if err := s.requireClosedProject(ctx, t.ProjectID); err != nil {
		return err
	}
	query := `
        INSERT INTO project_timeline (project_id, started_at, ended_at, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (project_id) DO UPDATE
        SET started_at = EXCLUDED.started_at,
            ended_at   = EXCLUDED.ended_at,
            updated_at = NOW()
        RETURNING updated_at`
	err := s.db.QueryRowContext(ctx, query, t.ProjectID, t.StartedAt, t.EndedAt).
		Scan(&t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert timeline for project %d: %w", t.ProjectID, err)
	}
	return nil
}

func (s *Storage) GetTimeline(ctx context.Context, projectID int) (*models.Timeline, error) {
	t := &models.Timeline{}
	query := `SELECT * FROM project_timeline WHERE project_id=$1`
	err := s.db.GetContext(ctx, t, query, projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get timeline for project %d: %w", projectID, err)
	}
	return t, nil
}

// CreateBudgetExpense appends to the expense log.
func (s *Storage) CreateBudgetExpense(ctx context.Context, e *models.BudgetExpense) error {
	if e.Amount <= 0 {
		return models.ErrInvalidAmount
	}
	if err := s.requireClosedProject(ctx, e.ProjectID); err != nil {
		return err
	}
	query := `
        INSERT INTO budget_expense (project_id, description, stage, amount)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, query,
		e.ProjectID, e.Description, e.Stage, e.Amount).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert budget expense: %w", err)
	}
	return nil
}

func (s *Storage) GetBudgetExpenses(ctx context.Context, projectID int) ([]models.BudgetExpense, error) {
	expenses := []models.BudgetExpense{}
	query := `
        SELECT * FROM budget_expense
        WHERE project_id = $1
        ORDER BY created_at ASC, id ASC`
	err := s.db.SelectContext(ctx, &expenses, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list expenses for project %d: %w", projectID, err)
	}
	return expenses, nil
}
