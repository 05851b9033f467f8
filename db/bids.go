package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// CreateBid inserts a bid inside one transaction with the project checks, so
// a bid can never land on a project that closed mid-flight. The first bid
// moves the project from OPEN to BIDDING.
func (s *Storage) CreateBid(ctx context.Context, b *models.Bid) error {
	if b.Amount <= 0 {
		return models.ErrInvalidAmount
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create bid: %w", err)
	}
	defer tx.Rollback()

	p := &models.Project{}
	err = tx.GetContext(ctx, p, `SELECT * FROM project WHERE id=$1 FOR UPDATE`, b.ProjectID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrProjectNotFound
	}
	if err != nil {
		return fmt.Errorf("lock project %d: %w", b.ProjectID, err)
	}
	if p.Status == models.ProjectClosed {
		return models.ErrProjectNotOpen
	}
	// Owners cannot bid against themselves.
	if p.OwnerID == b.BidderID {
		return models.ErrUnauthorized
	}

	b.Status = models.BidPending
	query := `
        INSERT INTO bid (project_id, bidder_id, amount, message, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, query,
		b.ProjectID, b.BidderID, b.Amount, b.Message, b.Status).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}

	if p.Status == models.ProjectOpen {
		_, err = tx.ExecContext(ctx,
			`UPDATE project SET status=$1 WHERE id=$2`, models.ProjectBidding, p.ID)
		if err != nil {
			return fmt.Errorf("mark project bidding: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Storage) GetBid(ctx context.Context, id int) (*models.Bid, error) {
	b := &models.Bid{}
	query := `SELECT * FROM bid WHERE id=$1`
	err := s.db.GetContext(ctx, b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrBidNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bid %d: %w", id, err)
	}
	return b, nil
}

// ListBidsForProject returns bids newest-first for display. Callers treat bid
// identity, not list position, as canonical.
func (s *Storage) ListBidsForProject(ctx context.Context, projectID int) ([]models.Bid, error) {
	bids := []models.Bid{}
	query := `
        SELECT * FROM bid
        WHERE project_id = $1
        ORDER BY created_at DESC, id DESC`
	err := s.db.SelectContext(ctx, &bids, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list bids for project %d: %w", projectID, err)
	}
	return bids, nil
}

// WithdrawBid moves a PENDING bid to WITHDRAWN. The bid row is locked so a
// withdraw cannot race the acceptance transaction: whichever lands second
// sees a terminal status and fails with ErrInvalidTransition.
func (s *Storage) WithdrawBid(ctx context.Context, bidID, bidderID int) (*models.Bid, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin withdraw: %w", err)
	}
	defer tx.Rollback()

	b := &models.Bid{}
	err = tx.GetContext(ctx, b, `SELECT * FROM bid WHERE id=$1 FOR UPDATE`, bidID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrBidNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock bid %d: %w", bidID, err)
	}
	if b.BidderID != bidderID {
		return nil, models.ErrUnauthorized
	}
	if !models.CanTransition(b.Status, models.BidWithdrawn) {
		return nil, models.ErrInvalidTransition
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE bid SET status=$1 WHERE id=$2`, models.BidWithdrawn, bidID)
	if err != nil {
		return nil, fmt.Errorf("withdraw bid %d: %w", bidID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit withdraw: %w", err)
	}

	b.Status = models.BidWithdrawn
	return b, nil
}
