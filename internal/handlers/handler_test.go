package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/pleasybank_client/internal/apperrors"
	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	portssvc "github.com/SscSPs/pleasybank_client/internal/core/ports/services"
	"github.com/SscSPs/pleasybank_client/internal/dto"
	"github.com/SscSPs/pleasybank_client/internal/handlers"
	"github.com/SscSPs/pleasybank_client/internal/platform/config"
	"github.com/SscSPs/pleasybank_client/internal/utils"
	"github.com/SscSPs/pleasybank_client/internal/utils/pagination"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// --- Mock services ---

type MockPortfolioService struct {
	mock.Mock
}

func (m *MockPortfolioService) GetPortfolio(ctx context.Context) (*domain.PortfolioReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PortfolioReport), args.Error(1)
}

func (m *MockPortfolioService) GetAccountSummary(ctx context.Context, accountID string) (*domain.AccountSummary, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSummary), args.Error(1)
}

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) ListClassifiedTransactions(ctx context.Context, accountID string, filter domain.TransactionFilter) (*domain.HistoryPage, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HistoryPage), args.Error(1)
}

type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) settlement(args mock.Arguments) (*domain.SettlementState, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementState), args.Error(1)
}

func (m *MockSettlementService) GetSettlement(ctx context.Context, userID string, accountID string) (*domain.SettlementState, error) {
	return m.settlement(m.Called(ctx, userID, accountID))
}

func (m *MockSettlementService) BeginSettlement(ctx context.Context, userID string, accountID string) (*domain.SettlementState, error) {
	return m.settlement(m.Called(ctx, userID, accountID))
}

func (m *MockSettlementService) SelectCounterpart(ctx context.Context, userID string, accountID string, counterpartAccountID string) (*domain.SettlementState, error) {
	return m.settlement(m.Called(ctx, userID, accountID, counterpartAccountID))
}

func (m *MockSettlementService) CancelSettlement(ctx context.Context, userID string, accountID string) (*domain.SettlementState, error) {
	return m.settlement(m.Called(ctx, userID, accountID))
}

var (
	_ portssvc.PortfolioSvc        = (*MockPortfolioService)(nil)
	_ portssvc.HistorySvc          = (*MockHistoryService)(nil)
	_ portssvc.SettlementSvcFacade = (*MockSettlementService)(nil)
)

// --- Test Suite Setup ---

type HandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	portfolio  *MockPortfolioService
	history    *MockHistoryService
	settlement *MockSettlementService
	cfg        *config.Config
	token      string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		JWTSecret:       "test-secret-key-that-is-long-enough",
		DefaultLocale:   "ko",
		HistoryPageSize: 20,
	}
	suite.portfolio = new(MockPortfolioService)
	suite.history = new(MockHistoryService)
	suite.settlement = new(MockSettlementService)

	rate, err := limiter.NewRateFromFormatted("3-M")
	suite.Require().NoError(err)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		History:    suite.history,
		Portfolio:  suite.portfolio,
		Settlement: suite.settlement,
	}, limiter.New(memory.NewStore(), rate))

	suite.token, err = utils.GenerateJWT("user-1", suite.cfg.JWTSecret, time.Hour, "test")
	suite.Require().NoError(err)
}

func (suite *HandlerTestSuite) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.token)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func loanAccount() domain.Account {
	return domain.Account{ID: "loan", AccountType: domain.Loan, Status: domain.Active, StoredBalance: decimal.NewFromInt(-3000000), Currency: "KRW"}
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestRequiresToken() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.portfolio.AssertNotCalled(suite.T(), "GetPortfolio", mock.Anything)
}

func (suite *HandlerTestSuite) TestListAccounts() {
	loan := loanAccount()
	suite.portfolio.On("GetPortfolio", mock.Anything).Return(&domain.PortfolioReport{
		Accounts: []domain.AccountSummary{{
			Account:        loan,
			DisplayBalance: decimal.NewFromInt(3000000),
			Contribution:   decimal.NewFromInt(-3000000),
		}},
		NetWorth:    decimal.NewFromInt(-3000000),
		TotalAssets: decimal.Zero,
		TotalDebt:   decimal.NewFromInt(3000000),
		Currency:    "KRW",
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PortfolioResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Accounts, 1)
	suite.True(decimal.NewFromInt(3000000).Equal(resp.Accounts[0].Balance))
	suite.Equal("대출 잔액", resp.Accounts[0].BalanceLabel)
	suite.Equal("₩3,000,000", resp.Accounts[0].FormattedBalance)
	suite.Equal("-₩3,000,000", resp.FormattedNetWorth)
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	suite.portfolio.On("GetAccountSummary", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/ghost", "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetAccount_BackendDown() {
	suite.portfolio.On("GetAccountSummary", mock.Anything, "chk").Return(nil, context.DeadlineExceeded).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/chk", "")

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *HandlerTestSuite) TestListTransactions() {
	loan := loanAccount()
	repayment := domain.Transaction{ID: "t1", RawType: domain.CodeTransfer, Amount: decimal.NewFromInt(500000), FromAccountID: "chk", ToAccountID: "loan"}
	suite.history.On("ListClassifiedTransactions", mock.Anything, "loan", mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.Page == 0 && f.Size == 20 && f.StartDate != nil && f.StartDate.Day() == 1 && f.Type == "TRANSFER"
	})).Return(&domain.HistoryPage{
		Account: loan,
		Entries: []domain.ClassifiedTransaction{{
			Transaction: repayment,
			Decision: domain.PresentationDecision{
				Direction:     domain.Debit,
				Category:      domain.CategoryLoanRepayment,
				DisplayAmount: decimal.NewFromInt(-500000),
				Glyph:         "-",
			},
		}},
		Page:    0,
		HasMore: true,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/loan/transactions?startDate=2025-03-01&type=transfer", "", "Accept-Language", "en-US,en;q=0.9")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal("-₩500,000", resp.Transactions[0].FormattedAmount)
	suite.Equal("-", resp.Transactions[0].Glyph)
	suite.NotEmpty(resp.Transactions[0].CategoryLabel)
	suite.Equal("Amount still owed", resp.Account.BalanceLabel)

	suite.Require().NotNil(resp.NextToken)
	page, err := pagination.DecodeHistoryToken(*resp.NextToken, "loan")
	suite.Require().NoError(err)
	suite.Equal(1, page)
}

func (suite *HandlerTestSuite) TestListTransactions_BadInput() {
	foreignToken := pagination.EncodeHistoryToken("other", 3)

	for _, query := range []string{
		"?nextToken=" + foreignToken,
		"?nextToken=!!!",
		"?startDate=03-01-2025",
		"?startDate=2025-03-10&endDate=2025-03-01",
		"?size=1000",
	} {
		w := suite.do(http.MethodGet, "/api/v1/accounts/loan/transactions"+query, "")
		suite.Equal(http.StatusBadRequest, w.Code, query)
	}
	suite.history.AssertNotCalled(suite.T(), "ListClassifiedTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestBeginSettlement() {
	state := &domain.SettlementState{
		WorkflowID:      "wf-1",
		AccountID:       "chk",
		Currency:        "KRW",
		Phase:           domain.PhaseAwaitingCounterpart,
		ResidualBalance: decimal.NewFromInt(120000),
		Transitions:     []domain.PhaseTransition{},
	}
	suite.settlement.On("BeginSettlement", mock.Anything, "user-1", "chk").Return(state, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/chk/settlement", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SettlementResponse
	suite.decode(w, &resp)
	suite.Equal("wf-1", resp.WorkflowID)
	suite.Equal(domain.PhaseAwaitingCounterpart, resp.Phase)
	suite.Equal("₩120,000", resp.FormattedResidual)
	suite.NotEmpty(w.Header().Get("X-RateLimit-Limit"))
}

func (suite *HandlerTestSuite) TestSettlementErrors() {
	failed := &domain.SettlementState{WorkflowID: "wf-2", AccountID: "chk", Phase: domain.PhaseFailed, FailedPhase: domain.PhaseClearing, Transitions: []domain.PhaseTransition{}}

	tests := []struct {
		name       string
		state      *domain.SettlementState
		err        error
		wantStatus int
	}{
		{name: "not found", err: apperrors.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid counterpart", err: apperrors.ErrValidation, wantStatus: http.StatusBadRequest},
		{name: "in progress", err: apperrors.ErrSettlementInProgress, wantStatus: http.StatusConflict},
		{name: "finished", err: apperrors.ErrSettlementTerminal, wantStatus: http.StatusConflict},
		{
			name:       "no counterpart",
			state:      failed,
			err:        &domain.SettlementError{Phase: domain.PhaseIdle, Reason: domain.ReasonNoCounterpartAvailable, Kind: apperrors.ErrNoCounterpartAvailable},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "clearing failed",
			state:      failed,
			err:        &domain.SettlementError{Phase: domain.PhaseClearing, Reason: domain.ReasonClearingFailed, Kind: apperrors.ErrClearingFailed, Err: context.DeadlineExceeded},
			wantStatus: http.StatusBadGateway,
		},
		{name: "unexpected", err: context.Canceled, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.settlement.On("SelectCounterpart", mock.Anything, "user-1", "chk", "sav").Return(tt.state, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/accounts/chk/settlement/counterpart", `{"counterpartAccountID": "sav"}`)

			suite.Equal(tt.wantStatus, w.Code)
			var body map[string]any
			suite.decode(w, &body)
			suite.NotEmpty(body["error"])
			if tt.state != nil {
				settlement, ok := body["settlement"].(map[string]any)
				suite.Require().True(ok, "failed workflows are returned with the error")
				suite.Equal(string(domain.PhaseFailed), settlement["phase"])
				suite.Equal(string(domain.PhaseClearing), settlement["failedPhase"])
			}
		})
	}
}

func (suite *HandlerTestSuite) TestSelectCounterpart_RequiresBody() {
	w := suite.do(http.MethodPost, "/api/v1/accounts/chk/settlement/counterpart", `{}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.settlement.AssertNotCalled(suite.T(), "SelectCounterpart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetAndCancelSettlement() {
	cancelled := &domain.SettlementState{WorkflowID: "wf-3", AccountID: "chk", Phase: domain.PhaseFailed, FailureReason: domain.ReasonCancelled, Transitions: []domain.PhaseTransition{}}
	suite.settlement.On("CancelSettlement", mock.Anything, "user-1", "chk").Return(cancelled, nil).Once()
	suite.settlement.On("CancelSettlement", mock.Anything, "user-1", "busy").Return(nil, apperrors.ErrCancelNotAllowed).Once()
	suite.settlement.On("GetSettlement", mock.Anything, "user-1", "chk").Return(cancelled, nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/chk/settlement", "")
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/accounts/busy/settlement", "")
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/accounts/chk/settlement", "")
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SettlementResponse
	suite.decode(w, &resp)
	suite.Equal(domain.ReasonCancelled, resp.FailureReason)
}

func (suite *HandlerTestSuite) TestSettlementIsScopedToCaller() {
	otherToken, err := utils.GenerateJWT("user-2", suite.cfg.JWTSecret, time.Hour, "test")
	suite.Require().NoError(err)
	suite.token = otherToken
	suite.settlement.On("GetSettlement", mock.Anything, "user-2", "chk").Return(nil, apperrors.ErrNotFound).Once()
	suite.settlement.On("CancelSettlement", mock.Anything, "user-2", "chk").Return(nil, apperrors.ErrNotFound).Once()

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/v1/accounts/chk/settlement", "").Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/api/v1/accounts/chk/settlement", "").Code)
	suite.settlement.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestSettlementIsRateLimited() {
	suite.settlement.On("BeginSettlement", mock.Anything, "user-1", "chk").Return(nil, apperrors.ErrSettlementInProgress)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		codes = append(codes, suite.do(http.MethodPost, "/api/v1/accounts/chk/settlement", "").Code)
	}

	suite.Equal([]int{http.StatusConflict, http.StatusConflict, http.StatusConflict, http.StatusTooManyRequests}, codes)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
