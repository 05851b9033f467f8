package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// AcceptBid runs the whole acceptance as one transaction: accept the target
// bid at the settled price, reject every other pending bid, close the
// project, and write the settlement record. The project row lock serializes
// concurrent accepts on sibling bids; the loser observes the project already
// closed and fails without mutating anything.
func (s *Storage) AcceptBid(ctx context.Context, bidID int, finalAmount int64, actorID int) (*models.Project, error) {
	if finalAmount <= 0 {
		return nil, models.ErrInvalidAmount
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin accept: %w", err)
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

	p := &models.Project{}
	err = tx.GetContext(ctx, p, `SELECT * FROM project WHERE id=$1 FOR UPDATE`, b.ProjectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock project %d: %w", b.ProjectID, err)
	}

	// All checks precede any write; a failed acceptance mutates nothing.
	if p.Status == models.ProjectClosed {
		return nil, models.ErrProjectAlreadyClosed
	}
	if p.OwnerID != actorID {
		return nil, models.ErrUnauthorized
	}
	if !models.CanTransition(b.Status, models.BidAccepted) {
		return nil, models.ErrInvalidTransition
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE bid SET status=$1, final_amount=$2 WHERE id=$3`,
		models.BidAccepted, finalAmount, b.ID)
	if err != nil {
		return nil, fmt.Errorf("accept bid %d: %w", b.ID, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE bid SET status=$1 WHERE project_id=$2 AND status=$3 AND id <> $4`,
		models.BidRejected, p.ID, models.BidPending, b.ID)
	if err != nil {
		return nil, fmt.Errorf("reject sibling bids: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE project SET status=$1 WHERE id=$2`, models.ProjectClosed, p.ID)
	if err != nil {
		return nil, fmt.Errorf("close project %d: %w", p.ID, err)
	}

	// Settlement event, durably emitted in the same transaction. The
	// execution tracker and the revenue split ledger read it downstream.
	_, err = tx.ExecContext(ctx, `
        INSERT INTO settlement (project_id, bid_id, seller_id, final_amount)
        VALUES ($1, $2, $3, $4)`,
		p.ID, b.ID, b.BidderID, finalAmount)
	if err != nil {
		return nil, fmt.Errorf("record settlement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit accept: %w", err)
	}

	p.Status = models.ProjectClosed
	return p, nil
}

// GetSettlement returns the settlement written at acceptance time.
func (s *Storage) GetSettlement(ctx context.Context, projectID int) (*models.Settlement, error) {
	st := &models.Settlement{}
	query := `SELECT * FROM settlement WHERE project_id=$1`
	err := s.db.GetContext(ctx, st, query, projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProjectNotClosed
	}
	if err != nil {
		return nil, fmt.Errorf("get settlement for project %d: %w", projectID, err)
	}
	return st, nil
}
