package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// CreateSplitCalculation stores a computed revenue split. The amounts arrive
// already computed and reconciled by the split calculator.
func (s *Storage) CreateSplitCalculation(ctx context.Context, sc *models.SplitCalculation) error {
	query := `
        INSERT INTO split_calculation
            (seller_id, gross_amount, net_amount, split_ratio, platform_commission, total_amount, checked)
        VALUES
            ($1, $2, $3, $4, $5, $6, FALSE)
        RETURNING id, checked, created_at`
	err := s.db.QueryRowContext(ctx, query,
		sc.SellerID, sc.GrossAmount, sc.NetAmount, sc.SplitRatio,
		sc.PlatformCommission, sc.TotalAmount).
		Scan(&sc.ID, &sc.Checked, &sc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert split calculation: %w", err)
	}
	return nil
}

func (s *Storage) GetSplitCalculation(ctx context.Context, id int) (*models.SplitCalculation, error) {
	sc := &models.SplitCalculation{}
	query := `SELECT * FROM split_calculation WHERE id=$1`
	err := s.db.GetContext(ctx, sc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrSplitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get split calculation %d: %w", id, err)
	}
	return sc, nil
}

func (s *Storage) ListSplitCalculations(ctx context.Context, limit, offset int) ([]models.SplitCalculation, error) {
	splits := []models.SplitCalculation{}
	query := `
        SELECT * FROM split_calculation
        ORDER BY created_at DESC, id DESC
        LIMIT $1 OFFSET $2`
	err := s.db.SelectContext(ctx, &splits, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list split calculations: %w", err)
	}
	return splits, nil
}

// MarkSplitChecked flips the audit flag with a compare-and-swap on checked,
// so concurrent double-audits cannot both succeed. The flag never reverts.
func (s *Storage) MarkSplitChecked(ctx context.Context, id int) (*models.SplitCalculation, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE split_calculation SET checked = TRUE WHERE id = $1 AND checked = FALSE`, id)
	if err != nil {
		return nil, fmt.Errorf("mark split %d checked: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("mark split %d checked: %w", id, err)
	}
	if n == 0 {
		// Either the record does not exist or it is already checked.
		if _, err := s.GetSplitCalculation(ctx, id); err != nil {
			return nil, err
		}
		return nil, models.ErrAlreadyChecked
	}
	return s.GetSplitCalculation(ctx, id)
}

// TotalCommission recomputes the platform commission sum on demand. There is
// no cached total to drift.
func (s *Storage) TotalCommission(ctx context.Context) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(platform_commission), 0) FROM split_calculation`
	err := s.db.GetContext(ctx, &total, query)
	if err != nil {
		return 0, fmt.Errorf("sum commission: %w", err)
	}
	return total, nil
}

func (s *Storage) TotalGross(ctx context.Context) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(gross_amount), 0) FROM split_calculation`
	err := s.db.GetContext(ctx, &total, query)
	if err != nil {
		return 0, fmt.Errorf("sum gross: %w", err)
	}
	return total, nil
}
