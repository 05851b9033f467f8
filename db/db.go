package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// Storage wraps the Postgres connection. All bidding-core state lives behind
// it; handlers never touch SQL directly.
type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Users

func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	query := `
        INSERT INTO users (username, display_name, role)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query, u.Username, u.DisplayName, u.Role).
		Scan(&u.ID, &u.CreatedAt)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	query := `SELECT * FROM users WHERE username=$1`
	err := s.db.GetContext(ctx, u, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return u, nil
}

func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	u := &models.User{}
	query := `SELECT * FROM users WHERE id=$1`
	err := s.db.GetContext(ctx, u, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// Projects

func (s *Storage) CreateProject(ctx context.Context, p *models.Project) error {
	query := `
        INSERT INTO project
            (owner_id, title, description, status, budget_min, budget_max, deadline)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query,
		p.OwnerID, p.Title, p.Description, p.Status, p.BudgetMin, p.BudgetMax, p.Deadline).
		Scan(&p.ID, &p.CreatedAt)
}

func (s *Storage) GetProject(ctx context.Context, id int) (*models.Project, error) {
	p := &models.Project{}
	query := `SELECT * FROM project WHERE id=$1`
	err := s.db.GetContext(ctx, p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	return p, nil
}
