package handlers

import (
	"context"

	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// StorageInterface is the slice of db.Storage the handlers depend on.
// Tests substitute a mock.
type StorageInterface interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)

	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id int) (*models.Project, error)

	CreateBid(ctx context.Context, b *models.Bid) error
	GetBid(ctx context.Context, id int) (*models.Bid, error)
	ListBidsForProject(ctx context.Context, projectID int) ([]models.Bid, error)
	WithdrawBid(ctx context.Context, bidID, bidderID int) (*models.Bid, error)
	AcceptBid(ctx context.Context, bidID int, finalAmount int64, actorID int) (*models.Project, error)

	CreateNegotiationMessage(ctx context.Context, m *models.NegotiationMessage) error
	GetNegotiationMessages(ctx context.Context, bidID int) ([]models.NegotiationMessage, error)

	UpsertMilestone(ctx context.Context, m *models.Milestone) error
	GetMilestone(ctx context.Context, projectID int) (*models.Milestone, error)
	UpsertTimeline(ctx context.Context, t *models.Timeline) error
	GetTimeline(ctx context.Context, projectID int) (*models.Timeline, error)
	CreateBudgetExpense(ctx context.Context, e *models.BudgetExpense) error
	GetBudgetExpenses(ctx context.Context, projectID int) ([]models.BudgetExpense, error)
	GetSettlement(ctx context.Context, projectID int) (*models.Settlement, error)

	CreateSplitCalculation(ctx context.Context, sc *models.SplitCalculation) error
	GetSplitCalculation(ctx context.Context, id int) (*models.SplitCalculation, error)
	ListSplitCalculations(ctx context.Context, limit, offset int) ([]models.SplitCalculation, error)
	MarkSplitChecked(ctx context.Context, id int) (*models.SplitCalculation, error)
	TotalCommission(ctx context.Context) (int64, error)
	TotalGross(ctx context.Context) (int64, error)
}
