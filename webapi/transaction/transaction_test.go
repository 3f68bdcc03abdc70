package transaction_test

import (
	"testing"
	"time"

	"github.com/amirasaad/spendwise/internal/fixtures/mocks"
	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/domain/account"
	"github.com/amirasaad/spendwise/pkg/domain/transaction"
	"github.com/amirasaad/spendwise/pkg/dto"
	txsvc "github.com/amirasaad/spendwise/pkg/service/transaction"
	"github.com/amirasaad/spendwise/webapi/testutils"
	txapi "github.com/amirasaad/spendwise/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2025, 6, 30, 15, 0, 0, 0, time.UTC)

type TransactionHandlerSuite struct {
	testutils.HandlerSuite
	txs      *mocks.MockTransactionRepository
	accounts *mocks.MockAccountRepository
	bank     *mocks.MockBankingProvider
}

func (s *TransactionHandlerSuite) SetupTest() {
	s.txs = mocks.NewMockTransactionRepository(s.T())
	s.accounts = mocks.NewMockAccountRepository(s.T())
	s.bank = mocks.NewMockBankingProvider(s.T())
	uow := mocks.NewMockUnitOfWork(s.txs, s.accounts)
	clock := func() time.Time { return fixedNow }
	svc := txsvc.New(uow, nil).WithClock(clock)
	reconciler := txsvc.NewReconciler(uow, s.bank, 0, 0, nil).WithClock(clock)
	s.SetupApp(func(app *fiber.App, cfg *config.Jwt) {
		txapi.TransactionRoutes(app, svc, reconciler, cfg)
	})
}

func (s *TransactionHandlerSuite) TestListParsesFilters() {
	accountID := uuid.New()
	s.txs.On("List", mock.Anything, s.UserID, mock.MatchedBy(func(f dto.TransactionFilter) bool {
		return f.AccountID != nil && *f.AccountID == accountID &&
			f.StartDate != nil && f.StartDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) &&
			f.EndDate == nil &&
			f.Search == "coffee" &&
			f.Skip == 10 && f.Limit == dto.MaxPageLimit
	})).Return([]transaction.Transaction{{ID: uuid.New(), Name: "Blue Bottle Coffee"}}, nil).Once()

	resp := s.MakeRequest(fiber.MethodGet,
		"/transactions?account_id="+accountID.String()+"&start_date=2025-06-01&search=coffee&skip=10&limit=999",
		"", s.Token)

	s.Equal(fiber.StatusOK, resp.StatusCode)
	var got []transaction.Transaction
	s.DecodeData(resp, &got)
	s.Len(got, 1)
}

func (s *TransactionHandlerSuite) TestListRejectsBadDate() {
	resp := s.MakeRequest(fiber.MethodGet, "/transactions?end_date=06/30/2025", "", s.Token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Contains(s.DecodeProblem(resp).Detail, "end_date")
}

func (s *TransactionHandlerSuite) TestGetNotFound() {
	id := uuid.New()
	s.txs.On("Get", mock.Anything, s.UserID, id).Return(nil, transaction.ErrTransactionNotFound).Once()

	resp := s.MakeRequest(fiber.MethodGet, "/transactions/"+id.String(), "", s.Token)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *TransactionHandlerSuite) TestSummaryWeek() {
	s.txs.On("ListBetween", mock.Anything, s.UserID,
		time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	).Return([]transaction.Transaction{
		{Amount: decimal.NewFromInt(2000), PrimaryCategory: "INCOME", Date: fixedNow},
		{Amount: decimal.NewFromInt(-120), PrimaryCategory: "FOOD_AND_DRINK", Date: fixedNow},
	}, nil).Once()

	resp := s.MakeRequest(fiber.MethodGet, "/transactions/summary?period=week", "", s.Token)

	s.Equal(fiber.StatusOK, resp.StatusCode)
	var got txsvc.Summary
	s.DecodeData(resp, &got)
	s.Equal(txsvc.PeriodWeek, got.Period)
	s.True(got.TotalIncome.Equal(decimal.NewFromInt(2000)))
	s.True(got.TotalExpenses.Equal(decimal.NewFromInt(120)))
	s.True(got.NetSavings.Equal(decimal.NewFromInt(1880)))
	s.Equal(2, got.TransactionCount)
}

func (s *TransactionHandlerSuite) TestSyncWithoutConnections() {
	s.accounts.On("ListConnections", mock.Anything, s.UserID).Return([]account.Connection{}, nil).Once()

	resp := s.MakeRequest(fiber.MethodPost, "/transactions/sync", "", s.Token)

	s.Equal(fiber.StatusOK, resp.StatusCode)
	var got txsvc.SyncResult
	s.DecodeData(resp, &got)
	s.Equal(txsvc.SyncResult{}, got)
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerSuite))
}
