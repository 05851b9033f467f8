package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/k3lly003/Construct-KVV-sub003/internal/handlers"
	"github.com/k3lly003/Construct-KVV-sub003/internal/handlers/testutils"
	"github.com/k3lly003/Construct-KVV-sub003/internal/split"
	"github.com/k3lly003/Construct-KVV-sub003/internal/thread"
	"github.com/k3lly003/Construct-KVV-sub003/models"
)

// MockStorage implements handlers.StorageInterface. Func fields override the
// default fixtures per test.
type MockStorage struct {
	users map[string]*models.User

	CreateBidFunc                func(ctx context.Context, b *models.Bid) error
	GetBidFunc                   func(ctx context.Context, id int) (*models.Bid, error)
	ListBidsForProjectFunc       func(ctx context.Context, projectID int) ([]models.Bid, error)
	WithdrawBidFunc              func(ctx context.Context, bidID, bidderID int) (*models.Bid, error)
	AcceptBidFunc                func(ctx context.Context, bidID int, finalAmount int64, actorID int) (*models.Project, error)
	GetProjectFunc               func(ctx context.Context, id int) (*models.Project, error)
	GetNegotiationMessagesFunc   func(ctx context.Context, bidID int) ([]models.NegotiationMessage, error)
	CreateNegotiationMessageFunc func(ctx context.Context, m *models.NegotiationMessage) error
	UpsertMilestoneFunc          func(ctx context.Context, m *models.Milestone) error
	UpsertTimelineFunc           func(ctx context.Context, t *models.Timeline) error
	CreateBudgetExpenseFunc      func(ctx context.Context, e *models.BudgetExpense) error
	GetBudgetExpensesFunc        func(ctx context.Context, projectID int) ([]models.BudgetExpense, error)
	GetSettlementFunc            func(ctx context.Context, projectID int) (*models.Settlement, error)
	CreateSplitCalculationFunc   func(ctx context.Context, sc *models.SplitCalculation) error
	MarkSplitCheckedFunc         func(ctx context.Context, id int) (*models.SplitCalculation, error)
	ListSplitCalculationsFunc    func(ctx context.Context, limit, offset int) ([]models.SplitCalculation, error)
}

// Fixture users shared by the tests: alice owns project 10, bob bids on it.
func newMockStorage() *MockStorage {
	return &MockStorage{
		users: map[string]*models.User{
			"alice": {ID: 1, Username: "alice", Role: models.RoleCustomer},
			"bob":   {ID: 7, Username: "bob", Role: models.RoleSeller},
			"carol": {ID: 9, Username: "carol", Role: models.RoleSeller},
		},
	}
}

func (m *MockStorage) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = 99
	u.CreatedAt = time.Now()
	return nil
}

func (m *MockStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, models.ErrUserNotFound
}

func (m *MockStorage) GetUser(ctx context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *MockStorage) CreateProject(ctx context.Context, p *models.Project) error {
	p.ID = 10
	p.CreatedAt = time.Now()
	return nil
}

func (m *MockStorage) GetProject(ctx context.Context, id int) (*models.Project, error) {
	if m.GetProjectFunc != nil {
		return m.GetProjectFunc(ctx, id)
	}
	return &models.Project{ID: id, OwnerID: 1, Title: "Family house", Status: models.ProjectBidding}, nil
}

func (m *MockStorage) CreateBid(ctx context.Context, b *models.Bid) error {
	if m.CreateBidFunc != nil {
		return m.CreateBidFunc(ctx, b)
	}
	b.ID = 101
	b.CreatedAt = time.Now()
	return nil
}

func (m *MockStorage) GetBid(ctx context.Context, id int) (*models.Bid, error) {
	if m.GetBidFunc != nil {
		return m.GetBidFunc(ctx, id)
	}
	return &models.Bid{
		ID: id, ProjectID: 10, BidderID: 7, Amount: 80000,
		Message: "initial offer", Status: models.BidPending,
		CreatedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}, nil
}

func (m *MockStorage) ListBidsForProject(ctx context.Context, projectID int) ([]models.Bid, error) {
	if m.ListBidsForProjectFunc != nil {
		return m.ListBidsForProjectFunc(ctx, projectID)
	}
	return []models.Bid{
		{ID: 102, ProjectID: projectID, BidderID: 9, Amount: 95000, Status: models.BidPending},
		{ID: 101, ProjectID: projectID, BidderID: 7, Amount: 80000, Status: models.BidPending},
	}, nil
}

func (m *MockStorage) WithdrawBid(ctx context.Context, bidID, bidderID int) (*models.Bid, error) {
	if m.WithdrawBidFunc != nil {
		return m.WithdrawBidFunc(ctx, bidID, bidderID)
	}
	return &models.Bid{ID: bidID, BidderID: bidderID, Status: models.BidWithdrawn}, nil
}

func (m *MockStorage) AcceptBid(ctx context.Context, bidID int, finalAmount int64, actorID int) (*models.Project, error) {
	if m.AcceptBidFunc != nil {
		return m.AcceptBidFunc(ctx, bidID, finalAmount, actorID)
	}
	return &models.Project{ID: 10, OwnerID: actorID, Status: models.ProjectClosed}, nil
}

func (m *MockStorage) CreateNegotiationMessage(ctx context.Context, msg *models.NegotiationMessage) error {
	if m.CreateNegotiationMessageFunc != nil {
		return m.CreateNegotiationMessageFunc(ctx, msg)
	}
	msg.ID = 201
	msg.CreatedAt = time.Now()
	return nil
}

func (m *MockStorage) GetNegotiationMessages(ctx context.Context, bidID int) ([]models.NegotiationMessage, error) {
	if m.GetNegotiationMessagesFunc != nil {
		return m.GetNegotiationMessagesFunc(ctx, bidID)
	}
	return []models.NegotiationMessage{}, nil
}

func (m *MockStorage) UpsertMilestone(ctx context.Context, ms *models.Milestone) error {
	if m.UpsertMilestoneFunc != nil {
		return m.UpsertMilestoneFunc(ctx, ms)
	}
	ms.UpdatedAt = time.Now()
	return nil
}

func (m *MockStorage) GetMilestone(ctx context.Context, projectID int) (*models.Milestone, error) {
	return &models.Milestone{ProjectID: projectID, Foundation: 100, Roofing: 50, Finishing: 0}, nil
}

func (m *MockStorage) UpsertTimeline(ctx context.Context, t *models.Timeline) error {
	if m.UpsertTimelineFunc != nil {
		return m.UpsertTimelineFunc(ctx, t)
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (m *MockStorage) GetTimeline(ctx context.Context, projectID int) (*models.Timeline, error) {
	started := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return &models.Timeline{ProjectID: projectID, StartedAt: &started}, nil
}

func (m *MockStorage) CreateBudgetExpense(ctx context.Context, e *models.BudgetExpense) error {
	if m.CreateBudgetExpenseFunc != nil {
		return m.CreateBudgetExpenseFunc(ctx, e)
	}
	e.ID = 301
	e.CreatedAt = time.Now()
	return nil
}

func (m *MockStorage) GetBudgetExpenses(ctx context.Context, projectID int) ([]models.BudgetExpense, error) {
	if m.GetBudgetExpensesFunc != nil {
		return m.GetBudgetExpensesFunc(ctx, projectID)
	}
	return []models.BudgetExpense{}, nil
}

func (m *MockStorage) GetSettlement(ctx context.Context, projectID int) (*models.Settlement, error) {
	if m.GetSettlementFunc != nil {
		return m.GetSettlementFunc(ctx, projectID)
	}
	return &models.Settlement{ProjectID: projectID, BidID: 101, SellerID: 7, FinalAmount: 85000}, nil
}

func (m *MockStorage) CreateSplitCalculation(ctx context.Context, sc *models.SplitCalculation) error {
	if m.CreateSplitCalculationFunc != nil {
		return m.CreateSplitCalculationFunc(ctx, sc)
	}
	sc.ID = 401
	sc.CreatedAt = time.Now()
	return nil
}

func (m *MockStorage) GetSplitCalculation(ctx context.Context, id int) (*models.SplitCalculation, error) {
	return &models.SplitCalculation{ID: id, SellerID: 7, GrossAmount: 100000, Checked: true}, nil
}

func (m *MockStorage) ListSplitCalculations(ctx context.Context, limit, offset int) ([]models.SplitCalculation, error) {
	if m.ListSplitCalculationsFunc != nil {
		return m.ListSplitCalculationsFunc(ctx, limit, offset)
	}
	return []models.SplitCalculation{
		{ID: 402, SellerID: 9, GrossAmount: 250000, PlatformCommission: 25000, NetAmount: 225000, TotalAmount: 250000},
		{ID: 401, SellerID: 7, GrossAmount: 100000, PlatformCommission: 10000, NetAmount: 90000, TotalAmount: 100000},
	}, nil
}

func (m *MockStorage) MarkSplitChecked(ctx context.Context, id int) (*models.SplitCalculation, error) {
	if m.MarkSplitCheckedFunc != nil {
		return m.MarkSplitCheckedFunc(ctx, id)
	}
	return &models.SplitCalculation{ID: id, Checked: true}, nil
}

func (m *MockStorage) TotalCommission(ctx context.Context) (int64, error) { return 35000, nil }
func (m *MockStorage) TotalGross(ctx context.Context) (int64, error)      { return 350000, nil }

func newTestHandler(store handlers.StorageInterface) *handlers.Handler {
	return handlers.NewHandler(store, 0.1, split.RoundHalfUp)
}

func TestPingHandler(t *testing.T) {
	handler := newTestHandler(newMockStorage())

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	w := httptest.NewRecorder()

	handler.PingHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "ok", string(body))
}

func TestCreateBidHandler(t *testing.T) {
	mockStore := newMockStorage()
	handler := newTestHandler(mockStore)

	reqBody := `{"projectId": 10, "amount": "RWF 80,000", "message": "can start next week"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bids/new?username=bob", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.CreateBidHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var bid models.Bid
	require.NoError(t, json.NewDecoder(res.Body).Decode(&bid))
	require.Equal(t, int64(80000), bid.Amount)
	require.Equal(t, 7, bid.BidderID)
	require.Equal(t, models.BidPending, bid.Status)
}

func TestCreateBidHandlerInvalidAmount(t *testing.T) {
	handler := newTestHandler(newMockStorage())

	for _, amount := range []string{`"free"`, `0`, `-500`, `""`} {
		reqBody := `{"projectId": 10, "amount": ` + amount + `}`
		req := httptest.NewRequest(http.MethodPost, "/api/bids/new?username=bob", strings.NewReader(reqBody))
		w := httptest.NewRecorder()

		handler.CreateBidHandler(w, req)

		require.Equal(t, http.StatusBadRequest, w.Result().StatusCode, "amount %s", amount)
	}
}

func TestCreateBidHandlerCustomerForbidden(t *testing.T) {
	handler := newTestHandler(newMockStorage())

	reqBody := `{"projectId": 10, "amount": 80000}`
	req := httptest.NewRequest(http.MethodPost, "/api/bids/new?username=alice", strings.NewReader(reqBody))
	w := httptest.NewRecorder()

	handler.CreateBidHandler(w, req)

	require.Equal(t, http.StatusForbidden, w.Result().StatusCode)
}

func TestCreateBidHandlerClosedProject(t *testing.T) {
	mockStore := newMockStorage()
	mockStore.CreateBidFunc = func(ctx context.Context, b *models.Bid) error {
		return models.ErrProjectNotOpen
	}
	handler := newTestHandler(mockStore)

	reqBody := `{"projectId": 10, "amount": 80000}`
	req := httptest.NewRequest(http.MethodPost, "/api/bids/new?username=bob", strings.NewReader(reqBody))
	w := httptest.NewRecorder()

	handler.CreateBidHandler(w, req)

	require.Equal(t, http.StatusConflict, w.Result().StatusCode)
}

func TestListBidsHandler(t *testing.T) {
	handler := newTestHandler(newMockStorage())

	req := httptest.NewRequest(http.MethodGet, "/api/bids?projectId=10", nil)
	w := httptest.NewRecorder()

	handler.ListBidsHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var bids []models.Bid
	require.NoError(t, json.NewDecoder(res.Body).Decode(&bids))
	require.Len(t, bids, 2)
	// Newest first for display; identity stays canonical.
	require.Equal(t, 102, bids[0].ID)
	require.Equal(t, 101, bids[1].ID)
}

func TestListBidsHandlerMissingProjectID(t *testing.T) {
	handler := newTestHandler(newMockStorage())

	req := httptest.NewRequest(http.MethodGet, "/api/bids", nil)
	w := httptest.NewRecorder()

	handler.ListBidsHandler(w, req)

	require.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestWithdrawBidHandler(t *testing.T) {
	var gotBidID, gotBidderID int
	mockStore := newMockStorage()
	mockStore.WithdrawBidFunc = func(ctx context.Context, bidID, bidderID int) (*models.Bid, error) {
		gotBidID, gotBidderID = bidID, bidderID
		return &models.Bid{ID: bidID, BidderID: bidderID, Status: models.BidWithdrawn}, nil
	}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodPut, "/api/bids/101/withdraw?username=bob", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"bidId": "101"})
	w := httptest.NewRecorder()

	handler.WithdrawBidHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, 101, gotBidID)
	require.Equal(t, 7, gotBidderID)

	var bid models.Bid
	require.NoError(t, json.NewDecoder(res.Body).Decode(&bid))
	require.Equal(t, models.BidWithdrawn, bid.Status)
}

func TestWithdrawBidHandlerTerminalState(t *testing.T) {
	mockStore := newMockStorage()
	mockStore.WithdrawBidFunc = func(ctx context.Context, bidID, bidderID int) (*models.Bid, error) {
		return nil, models.ErrInvalidTransition
	}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodPut, "/api/bids/101/withdraw?username=bob", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"bidId": "101"})
	w := httptest.NewRecorder()

	handler.WithdrawBidHandler(w, req)

	require.Equal(t, http.StatusConflict, w.Result().StatusCode)
}

func TestAcceptBidHandler(t *testing.T) {
	var gotBidID, gotActorID int
	var gotFinalAmount int64
	mockStore := newMockStorage()
	mockStore.AcceptBidFunc = func(ctx context.Context, bidID int, finalAmount int64, actorID int) (*models.Project, error) {
		gotBidID, gotFinalAmount, gotActorID = bidID, finalAmount, actorID
		return &models.Project{ID: 10, OwnerID: actorID, Status: models.ProjectClosed}, nil
	}
	handler := newTestHandler(mockStore)

	reqBody := `{"finalAmount": 85000}`
	req := httptest.NewRequest(http.MethodPost, "/api/bids/101/accept?username=alice", strings.NewReader(reqBody))
	req = testutils.WithChiURLParams(req, map[string]string{"bidId": "101"})
	w := httptest.NewRecorder()

	handler.AcceptBidHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, 101, gotBidID)
	require.Equal(t, int64(85000), gotFinalAmount)
	require.Equal(t, 1, gotActorID)

	var project models.Project
	require.NoError(t, json.NewDecoder(res.Body).Decode(&project))
	require.Equal(t, models.ProjectClosed, project.Status)
}

func TestAcceptBidHandlerDecoratedAmount(t *testing.T) {
	var gotFinalAmount int64
	mockStore := newMockStorage()
	mockStore.AcceptBidFunc = func(ctx context.Context, bidID int, finalAmount int64, actorID int) (*models.Project, error) {
		gotFinalAmount = finalAmount
		return &models.Project{ID: 10, Status: models.ProjectClosed}, nil
	}
	handler := newTestHandler(mockStore)

	reqBody := `{"finalAmount": "85,000 RWF"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bids/101/accept?username=alice", strings.NewReader(reqBody))
	req = testutils.WithChiURLParams(req, map[string]string{"bidId": "101"})
	w := httptest.NewRecorder()

	handler.AcceptBidHandler(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	require.Equal(t, int64(85000), gotFinalAmount)
}

func TestAcceptBidHandlerInvalidAmount(t *testing.T) {
	handler := newTestHandler(newMockStorage())

	for _, amount := range []string{`"not a price"`, `0`, `-85000`} {
		reqBody := `{"finalAmount": ` + amount + `}`
		req := httptest.NewRequest(http.MethodPost, "/api/bids/101/accept?username=alice", strings.NewReader(reqBody))
		req = testutils.WithChiURLParams(req, map[string]string{"bidId": "101"})
		w := httptest.NewRecorder()

		handler.AcceptBidHandler(w, req)

		require.Equal(t, http.StatusBadRequest, w.Result().StatusCode, "amount %s", amount)
	}
}

func TestAcceptBidHandlerSellerForbidden(t *testing.T) {
	// A bidder cannot accept, not even their own bid.
	handler := newTestHandler(newMockStorage())

	reqBody := `{"finalAmount": 85000}`
	req := httptest.NewRequest(http.MethodPost, "/api/bids/101/accept?username=bob", strings.NewReader(reqBody))
	req = testutils.WithChiURLParams(req, map[string]string{"bidId": "101"})
	w := httptest.NewRecorder()

	handler.AcceptBidHandler(w, req)

	require.Equal(t, http.StatusForbidden, w.Result().StatusCode)
}

func TestAcceptBidHandlerAlreadyClosed(t *testing.T) {
	// A concurrent double-accept surfaces as a conflict, not a server error.
	mockStore := newMockStorage()
	mockStore.AcceptBidFunc = func(ctx context.Context, bidID int, finalAmount int64, actorID int) (*models.Project, error) {
		return nil, models.ErrProjectAlreadyClosed
	}
	handler := newTestHandler(mockStore)

	reqBody := `{"finalAmount": 85000}`
	req := httptest.NewRequest(http.MethodPost, "/api/bids/102/accept?username=alice", strings.NewReader(reqBody))
	req = testutils.WithChiURLParams(req, map[string]string{"bidId": "102"})
	w := httptest.NewRecorder()

	handler.AcceptBidHandler(w, req)

	require.Equal(t, http.StatusConflict, w.Result().StatusCode)
}

func TestAcceptBidHandlerBidNotFound(t *testing.T) {
	mockStore := newMockStorage()
	mockStore.AcceptBidFunc = func(ctx context.Context, bidID int, finalAmount int64, actorID int) (*models.Project, error) {
		return nil, models.ErrBidNotFound
	}
	handler := newTestHandler(mockStore)

	reqBody := `{"finalAmount": 85000}`
	req := httptest.NewRequest(http.MethodPost, "/api/bids/999/accept?username=alice", strings.NewReader(reqBody))
	req = testutils.WithChiURLParams(req, map[string]string{"bidId": "999"})
	w := httptest.NewRecorder()

	handler.AcceptBidHandler(w, req)

	require.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestAcceptBidHandlerUnknownUser(t *testing.T) {
	handler := newTestHandler(newMockStorage())

	reqBody := `{"finalAmount": 85000}`
	req := httptest.NewRequest(http.MethodPost, "/api/bids/101/accept?username=mallory", strings.NewReader(reqBody))
	req = testutils.WithChiURLParams(req, map[string]string{"bidId": "101"})
	w := httptest.NewRecorder()

	handler.AcceptBidHandler(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestGetNegotiationThreadHandler(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	mockStore := newMockStorage()
	mockStore.GetNegotiationMessagesFunc = func(ctx context.Context, bidID int) ([]models.NegotiationMessage, error) {
		return []models.NegotiationMessage{
			{ID: 201, BidID: bidID, SenderID: 1, SenderRole: models.RoleCustomer, Body: "can you do 85k?", CreatedAt: t0.Add(time.Hour)},
			{ID: 202, BidID: bidID, SenderID: 7, SenderRole: models.RoleSeller, Body: "deal", CreatedAt: t0.Add(2 * time.Hour)},
		}, nil
	}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/negotiation/101/messages", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"bidId": "101"})
	w := httptest.NewRecorder()

	handler.GetNegotiationThreadHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var entries []thread.Entry
	require.NoError(t, json.NewDecoder(res.Body).Decode(&entries))
	require.Len(t, entries, 3)
	require.True(t, entries[0].IsInitialBid)
	require.Equal(t, "initial offer", entries[0].Body)
	require.Equal(t, "can you do 85k?", entries[1].Body)
	require.Equal(t, "deal", entries[2].Body)
}

func TestCreateNegotiationMessageHandler(t *testing.T) {
	handler := newTestHandler(newMockStorage())

	reqBody := `{"message": "attached the plans", "senderType": "SELLER", "file": "plans.pdf"}`
	req := httptest.NewRequest(http.MethodPost, "/api/negotiation/101/messages?username=bob", strings.NewReader(reqBody))
	req = testutils.WithChiURLParams(req, map[string]string{"bidId": "101"})
	w := httptest.NewRecorder()

	handler.CreateNegotiationMessageHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var msg models.NegotiationMessage
	require.NoError(t, json.NewDecoder(res.Body).Decode(&msg))
	require.Equal(t, models.RoleSeller, msg.SenderRole)
	require.Equal(t, 7, msg.SenderID)
	require.NotNil(t, msg.AttachmentRef)
	require.NotEmpty(t, *msg.AttachmentRef)
}

func TestCreateNegotiationMessageHandlerRoleMismatch(t *testing.T) {
	handler := newTestHandler(newMockStorage())

	reqBody := `{"message": "hello", "senderType": "CUSTOMER"}`
	req := httptest.NewRequest(http.MethodPost, "/api/negotiation/101/messages?username=bob", strings.NewReader(reqBody))
	req = testutils.WithChiURLParams(req, map[string]string{"bidId": "101"})
	w := httptest.NewRecorder()

	handler.CreateNegotiationMessageHandler(w, req)

	require.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestCreateNegotiationMessageHandlerOutsiderForbidden(t *testing.T) {
	// carol is a seller but not the bidder on bid 101.
	handler := newTestHandler(newMockStorage())

	reqBody := `{"message": "let me in"}`
	req := httptest.NewRequest(http.MethodPost, "/api/negotiation/101/messages?username=carol", strings.NewReader(reqBody))
	req = testutils.WithChiURLParams(req, map[string]string{"bidId": "101"})
	w := httptest.NewRecorder()

	handler.CreateNegotiationMessageHandler(w, req)

	require.Equal(t, http.StatusForbidden, w.Result().StatusCode)
}
