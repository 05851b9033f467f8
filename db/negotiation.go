package db

import (
	"context"
	"fmt"

	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// CreateNegotiationMessage appends a message to a bid's thread. The log is
// append-only; insert atomicity is all the locking it needs.
func (s *Storage) CreateNegotiationMessage(ctx context.Context, m *models.NegotiationMessage) error {
	query := `
        INSERT INTO negotiation_message (bid_id, sender_id, sender_role, body, attachment_ref)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, query,
		m.BidID, m.SenderID, m.SenderRole, m.Body, m.AttachmentRef).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert negotiation message: %w", err)
	}
	return nil
}

// GetNegotiationMessages returns a bid's messages ordered by creation time,
// ties broken by insertion order. The thread assembler depends on this order.
func (s *Storage) GetNegotiationMessages(ctx context.Context, bidID int) ([]models.NegotiationMessage, error) {
	msgs := []models.NegotiationMessage{}
	query := `
        SELECT * FROM negotiation_message
        WHERE bid_id = $1
        ORDER BY created_at ASC, id ASC`
	err := s.db.SelectContext(ctx, &msgs, query, bidID)
	if err != nil {
		return nil, fmt.Errorf("list messages for bid %d: %w", bidID, err)
	}
	return msgs, nil
}
