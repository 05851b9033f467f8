package models

import (
	"math"
	"time"
)

// Role is the closed set of marketplace roles. Authorization and message
// alignment dispatch on these values, never on raw strings from the wire.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSeller   Role = "SELLER"
)

// ProjectStatus lifecycle: OPEN until the first bid, BIDDING while offers
// come in, CLOSED once exactly one bid has been accepted.
type ProjectStatus string

const (
	ProjectOpen    ProjectStatus = "OPEN"
	ProjectBidding ProjectStatus = "BIDDING"
	ProjectClosed  ProjectStatus = "CLOSED"
)

// BidStatus state machine: PENDING is the only initial state, the other
// three are terminal.
type BidStatus string

const (
	BidPending   BidStatus = "PENDING"
	BidAccepted  BidStatus = "ACCEPTED"
	BidRejected  BidStatus = "REJECTED"
	BidWithdrawn BidStatus = "WITHDRAWN"
)

// CanTransition reports whether a bid may move from one status to another.
func CanTransition(from, to BidStatus) bool {
	if from != BidPending {
		return false
	}
	switch to {
	case BidAccepted, BidRejected, BidWithdrawn:
		return true
	}
	return false
}

type User struct {
	ID          int       `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"displayName"`
	Role        Role      `db:"role" json:"role"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// CanBid reports whether the actor may place bids at all.
func CanBid(actor *User) bool {
	return actor.Role == RoleSeller
}

// CanAccept reports whether the actor may accept bids on the given project.
// Only the owning customer may; bidders never accept, including their own bid.
func CanAccept(actor *User, p *Project) bool {
	return actor.Role == RoleCustomer && actor.ID == p.OwnerID
}

type Project struct {
	ID          int           `db:"id" json:"id"`
	OwnerID     int           `db:"owner_id" json:"ownerId"`
	Title       string        `db:"title" json:"title" validate:"required,max=100"`
	Description string        `db:"description" json:"description" validate:"max=2000"`
	Status      ProjectStatus `db:"status" json:"status"`
	BudgetMin   int64         `db:"budget_min" json:"budgetMin"`
	BudgetMax   int64         `db:"budget_max" json:"budgetMax"`
	Deadline    *time.Time    `db:"deadline" json:"deadline,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
}

// Bid amounts are whole units of the smallest currency denomination (whole
// RWF). FinalAmount is set at acceptance and may differ from Amount when
// negotiation changed the price.
type Bid struct {
	ID          int       `db:"id" json:"id"`
	ProjectID   int       `db:"project_id" json:"projectId"`
	BidderID    int       `db:"bidder_id" json:"bidderId"`
	Amount      int64     `db:"amount" json:"amount"`
	Message     string    `db:"message" json:"message"`
	Status      BidStatus `db:"status" json:"status"`
	FinalAmount *int64    `db:"final_amount" json:"finalAmount,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type NegotiationMessage struct {
	ID            int       `db:"id" json:"id"`
	BidID         int       `db:"bid_id" json:"bidId"`
	SenderID      int       `db:"sender_id" json:"senderId"`
	SenderRole    Role      `db:"sender_role" json:"senderRole"`
	Body          string    `db:"body" json:"body"`
	AttachmentRef *string   `db:"attachment_ref" json:"attachmentRef,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// Milestone holds the construction-stage completion percentages for a closed
// project. One row per project, overwritten in place.
type Milestone struct {
	ProjectID  int       `db:"project_id" json:"projectId"`
	Foundation int       `db:"foundation" json:"foundation"`
	Roofing    int       `db:"roofing" json:"roofing"`
	Finishing  int       `db:"finishing" json:"finishing"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// PercentComplete is the mean of the three stages, rounded.
func (m *Milestone) PercentComplete() int {
	return int(math.Round(float64(m.Foundation+m.Roofing+m.Finishing) / 3))
}

type Timeline struct {
	ProjectID int        `db:"project_id" json:"projectId"`
	StartedAt *time.Time `db:"started_at" json:"startedAt"`
	EndedAt   *time.Time `db:"ended_at" json:"endedAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}

type BudgetExpense struct {
	ID          int       `db:"id" json:"id"`
	ProjectID   int       `db:"project_id" json:"projectId"`
	Description string    `db:"description" json:"description"`
	Stage       string    `db:"stage" json:"stage"`
	Amount      int64     `db:"amount" json:"expenseAmount"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Settlement is written in the same transaction that accepts a bid. Its
// FinalAmount is the contract price the execution tracker budgets against.
type Settlement struct {
	ProjectID   int       `db:"project_id" json:"projectId"`
	BidID       int       `db:"bid_id" json:"bidId"`
	SellerID    int       `db:"seller_id" json:"sellerId"`
	FinalAmount int64     `db:"final_amount" json:"finalAmount"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// SplitCalculation stores the commission breakdown of a settled payment.
// TotalAmount is denormalized on purpose: it equals NetAmount +
// PlatformCommission today, and stays auditable if fee lines are added later.
type SplitCalculation struct {
	ID                 int       `db:"id" json:"id"`
	SellerID           int       `db:"seller_id" json:"sellerId"`
	GrossAmount        int64     `db:"gross_amount" json:"grossAmount"`
	NetAmount          int64     `db:"net_amount" json:"netAmount"`
	SplitRatio         float64   `db:"split_ratio" json:"splitRatio"`
	PlatformCommission int64     `db:"platform_commission" json:"platformCommission"`
	TotalAmount        int64     `db:"total_amount" json:"totalAmount"`
	Checked            bool      `db:"checked" json:"checked"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
}

// BudgetSummary is a read-only projection over a project's expense log.
type BudgetSummary struct {
	ProjectID   int             `json:"projectId"`
	TotalBudget int64           `json:"totalBudget"`
	TotalSpent  int64           `json:"totalSpent"`
	Remaining   int64           `json:"remaining"`
	PercentUsed int             `json:"percentUsed"`
	Expenses    []BudgetExpense `json:"expenses"`
}

// NewBudgetSummary aggregates the expense log against the settled budget.
// Remaining may go negative: overspend is a business fact, not an error.
// A zero budget reports zero percent used rather than dividing by zero.
func NewBudgetSummary(projectID int, totalBudget int64, expenses []BudgetExpense) BudgetSummary {
	var spent int64
	for _, e := range expenses {
		spent += e.Amount
	}
	percent := 0
	if totalBudget > 0 {
		percent = int(math.Round(float64(spent) / float64(totalBudget) * 100))
	}
	if expenses == nil {
		expenses = []BudgetExpense{}
	}
	return BudgetSummary{
		ProjectID:   projectID,
		TotalBudget: totalBudget,
		TotalSpent:  spent,
		Remaining:   totalBudget - spent,
		PercentUsed: percent,
		Expenses:    expenses,
	}
}
