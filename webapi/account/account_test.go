package account_test

import (
	"errors"
	"testing"

	"github.com/amirasaad/spendwise/internal/fixtures/mocks"
	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/domain/account"
	accountsvc "github.com/amirasaad/spendwise/pkg/service/account"
	accountapi "github.com/amirasaad/spendwise/webapi/account"
	"github.com/amirasaad/spendwise/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountHandlerSuite struct {
	testutils.HandlerSuite
	accounts *mocks.MockAccountRepository
}

func (s *AccountHandlerSuite) SetupTest() {
	s.accounts = mocks.NewMockAccountRepository(s.T())
	svc := accountsvc.New(mocks.NewMockUnitOfWork(s.accounts), nil)
	s.SetupApp(func(app *fiber.App, cfg *config.Jwt) {
		accountapi.AccountRoutes(app, svc, cfg)
	})
}

func (s *AccountHandlerSuite) TestList() {
	balance := decimal.NewFromInt(250)
	s.accounts.On("ListAccounts", mock.Anything, s.UserID).Return([]account.Account{
		{ID: uuid.New(), UserID: s.UserID, Name: "Checking", Subtype: "checking", CurrentBalance: &balance},
	}, nil).Once()

	resp := s.MakeRequest(fiber.MethodGet, "/accounts", "", s.Token)

	s.Equal(fiber.StatusOK, resp.StatusCode)
	var got []account.Account
	s.DecodeData(resp, &got)
	s.Require().Len(got, 1)
	s.Equal("Checking", got[0].Name)
	s.Require().NotNil(got[0].CurrentBalance)
	s.True(got[0].CurrentBalance.Equal(balance))
}

func (s *AccountHandlerSuite) TestSummary() {
	conn := account.Connection{ID: uuid.New(), InstitutionName: "Tartan Bank"}
	checking := decimal.NewFromInt(300)
	card := decimal.NewFromInt(120)
	s.accounts.On("ListAccounts", mock.Anything, s.UserID).Return([]account.Account{
		{ConnectionID: conn.ID, Name: "Checking", Type: "depository", Subtype: "checking", CurrentBalance: &checking},
		{ConnectionID: conn.ID, Name: "Card", Type: "credit", Subtype: "credit card", CurrentBalance: &card},
	}, nil).Once()
	s.accounts.On("ListConnections", mock.Anything, s.UserID).Return([]account.Connection{conn}, nil).Once()

	resp := s.MakeRequest(fiber.MethodGet, "/accounts/summary", "", s.Token)

	s.Equal(fiber.StatusOK, resp.StatusCode)
	var got accountsvc.Summary
	s.DecodeData(resp, &got)
	s.Equal(2, got.TotalAccounts)
	s.True(got.TotalBalance.Equal(decimal.NewFromInt(420)))
	s.True(got.CheckingBalance.Equal(checking))
	s.True(got.CreditBalance.Equal(card))
	s.True(got.SavingsBalance.IsZero())
	s.Require().Len(got.Accounts, 2)
	s.Equal("Tartan Bank", got.Accounts[0].InstitutionName)
}

func (s *AccountHandlerSuite) TestRepositoryFailure() {
	s.accounts.On("ListAccounts", mock.Anything, s.UserID).Return(nil, errors.New("db down")).Once()

	resp := s.MakeRequest(fiber.MethodGet, "/accounts", "", s.Token)

	s.Equal(fiber.StatusInternalServerError, resp.StatusCode)
}

func (s *AccountHandlerSuite) TestRejectsInvalidToken() {
	resp := s.MakeRequest(fiber.MethodGet, "/accounts/summary", "", "not-a-jwt")

	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAccountHandlerSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerSuite))
}
