package services_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/pleasybank_client/internal/apperrors"
	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	portssvc "github.com/SscSPs/pleasybank_client/internal/core/ports/services"
	"github.com/SscSPs/pleasybank_client/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HistoryServiceTestSuite struct {
	suite.Suite
	backend *MockBackendClient
	service portssvc.HistorySvc
}

func (suite *HistoryServiceTestSuite) SetupTest() {
	suite.backend = new(MockBackendClient)
	suite.service = services.NewHistoryService(suite.backend, suite.backend,
		services.WithParallelThreshold(8),
		services.WithHistoryBackendTimeout(time.Second),
	)
}

func (suite *HistoryServiceTestSuite) TestClassifiesFromTheViewedAccount() {
	ctx := context.Background()
	filter := domain.TransactionFilter{Page: 0, Size: 3}
	suite.backend.On("GetAccount", mock.Anything, "chk").Return(rawAccount("chk", "CHECKING", 800000), nil).Once()
	suite.backend.On("ListTransactions", mock.Anything, "chk", filter).Return([]any{
		map[string]any{"id": "t1", "transactionType": "TRANSFER", "amount": 200000, "fromAccountId": "chk", "toAccountId": "sav"},
		map[string]any{"id": "t2", "transactionType": "DEPOSIT", "amount": 1000, "toAccountId": "chk"},
		"garbage",
	}, nil).Once()

	page, err := suite.service.ListClassifiedTransactions(ctx, "chk", filter)

	suite.Require().NoError(err)
	suite.Equal("chk", page.Account.ID)
	suite.Equal(1, page.Malformed)
	suite.True(page.HasMore)
	suite.Require().Len(page.Entries, 3)

	suite.Equal(domain.Debit, page.Entries[0].Decision.Direction)
	suite.Equal(domain.CategoryTransferOut, page.Entries[0].Decision.Category)
	suite.True(decimal.NewFromInt(-200000).Equal(page.Entries[0].Decision.DisplayAmount))

	suite.Equal(domain.Credit, page.Entries[1].Decision.Direction)
	suite.Equal(domain.CategoryDeposit, page.Entries[1].Decision.Category)

	// A malformed record is still shown, with neutral defaults.
	suite.Equal(domain.CodeOther, page.Entries[2].Transaction.RawType)
	suite.True(page.Entries[2].Decision.Ambiguous)
	suite.backend.AssertExpectations(suite.T())
}

func (suite *HistoryServiceTestSuite) TestLastPage() {
	filter := domain.TransactionFilter{Page: 2, Size: 20}
	suite.backend.On("GetAccount", mock.Anything, "chk").Return(rawAccount("chk", "CHECKING", 1), nil).Once()
	suite.backend.On("ListTransactions", mock.Anything, "chk", filter).Return([]any{}, nil).Once()

	page, err := suite.service.ListClassifiedTransactions(context.Background(), "chk", filter)

	suite.Require().NoError(err)
	suite.False(page.HasMore)
	suite.Equal(2, page.Page)
	suite.Empty(page.Entries)
}

func (suite *HistoryServiceTestSuite) TestLargePageMatchesSequentialClassification() {
	const size = 40
	raws := make([]any, size)
	for i := range raws {
		from, to := "chk", "sav"
		if i%2 == 1 {
			from, to = to, from
		}
		raws[i] = map[string]any{"id": fmt.Sprintf("t%d", i), "type": "TRANSFER", "amount": 1000 + i, "fromAccountId": from, "toAccountId": to}
	}
	filter := domain.TransactionFilter{Size: size}
	suite.backend.On("GetAccount", mock.Anything, "chk").Return(rawAccount("chk", "CHECKING", 1), nil)
	suite.backend.On("ListTransactions", mock.Anything, "chk", filter).Return(raws, nil)

	parallel, err := suite.service.ListClassifiedTransactions(context.Background(), "chk", filter)
	suite.Require().NoError(err)

	sequential := services.NewHistoryService(suite.backend, suite.backend, services.WithParallelThreshold(0))
	expected, err := sequential.ListClassifiedTransactions(context.Background(), "chk", filter)
	suite.Require().NoError(err)

	suite.Require().Len(parallel.Entries, size)
	for i := range expected.Entries {
		suite.Equal(expected.Entries[i].Transaction.ID, parallel.Entries[i].Transaction.ID, "order is kept")
		suite.Equal(expected.Entries[i].Decision, parallel.Entries[i].Decision)
	}
	suite.Equal(domain.Debit, parallel.Entries[0].Decision.Direction)
	suite.Equal(domain.Credit, parallel.Entries[1].Decision.Direction)
}

func (suite *HistoryServiceTestSuite) TestBackendErrors() {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "not found", err: &apperrors.RemoteError{StatusCode: http.StatusNotFound}, wantErr: apperrors.ErrNotFound},
		{name: "forbidden", err: &apperrors.RemoteError{StatusCode: http.StatusForbidden}, wantErr: apperrors.ErrUnauthorized},
		{name: "transport", err: errors.New("dial tcp: connection refused")},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			backend := new(MockBackendClient)
			backend.On("GetAccount", mock.Anything, "chk").Return(rawAccount("chk", "CHECKING", 1), nil).Maybe()
			backend.On("ListTransactions", mock.Anything, "chk", mock.Anything).Return(nil, tt.err)
			service := services.NewHistoryService(backend, backend)

			page, err := service.ListClassifiedTransactions(context.Background(), "chk", domain.TransactionFilter{Size: 20})

			suite.Nil(page)
			suite.Require().Error(err)
			if tt.wantErr != nil {
				suite.ErrorIs(err, tt.wantErr)
			}
			suite.ErrorIs(err, tt.err)
		})
	}
}

func TestHistoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryServiceTestSuite))
}
