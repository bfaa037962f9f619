package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/aurumworks/gold_ledger_app/internal/apperrors"
	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/gold_ledger_app/internal/core/services"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	ctx             context.Context
	actorID         string
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockAccountRepo)
	s.ctx = context.Background()
	s.actorID = uuid.NewString()
}

func (s *AccountServiceTestSuite) TestCreateAccount_Success() {
	s.mockAccountRepo.On("FindAccountByCode", s.ctx, "1010").Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.Account
	s.mockAccountRepo.On("SaveAccount", s.ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Account) }).
		Return(nil).Once()

	account, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Code:        "1010",
		Name:        "Main safe cash",
		AccountType: domain.Asset,
	}, s.actorID)

	s.Require().NoError(err)
	s.True(account.IsActive)
	s.True(account.Balance.IsZero())
	s.True(account.GoldBalance.IsZero())
	s.Equal("1010", saved.Code)
	s.Equal(s.actorID, saved.CreatedBy)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_DuplicateCode_Fails() {
	existing := &domain.Account{AccountID: uuid.NewString(), Code: "1010", AccountType: domain.Asset, IsActive: true}
	s.mockAccountRepo.On("FindAccountByCode", s.ctx, "1010").Return(existing, nil).Once()

	account, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Code:        "1010",
		Name:        "Main safe cash",
		AccountType: domain.Asset,
	}, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.Nil(account)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccount_ParentNotFound_Fails() {
	parentID := uuid.NewString()
	s.mockAccountRepo.On("FindAccountByCode", s.ctx, "1011").Return(nil, apperrors.ErrNotFound).Once()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, parentID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Code:            "1011",
		Name:            "Petty cash",
		AccountType:     domain.Asset,
		ParentAccountID: &parentID,
	}, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrParentAccountNotFound)
	s.Nil(account)
}

func (s *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch_Fails() {
	parent := &domain.Account{AccountID: uuid.NewString(), Code: "4000", AccountType: domain.Revenue, IsActive: true}
	s.mockAccountRepo.On("FindAccountByCode", s.ctx, "1011").Return(nil, apperrors.ErrNotFound).Once()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, parent.AccountID).Return(parent, nil).Once()

	account, err := s.service.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Code:            "1011",
		Name:            "Petty cash",
		AccountType:     domain.Asset,
		ParentAccountID: &parent.AccountID,
	}, s.actorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(account)
}

func (s *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	accountID := uuid.NewString()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := s.service.GetAccountByID(s.ctx, accountID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(account)
}

func (s *AccountServiceTestSuite) TestCreateCostCenter_Success() {
	var saved domain.CostCenter
	s.mockAccountRepo.On("SaveCostCenter", s.ctx, mock.AnythingOfType("domain.CostCenter")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.CostCenter) }).
		Return(nil).Once()

	costCenter, err := s.service.CreateCostCenter(s.ctx, dto.CreateCostCenterRequest{
		Code: "BR-01",
		Name: "Downtown branch",
	}, s.actorID)

	s.Require().NoError(err)
	s.True(costCenter.IsActive)
	s.Equal("BR-01", saved.Code)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
