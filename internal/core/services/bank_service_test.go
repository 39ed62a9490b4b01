package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/core/domain"
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/core/services"
	"github.com/terratale/ledgerd/internal/dto"
)

const treasuryNumber = "GO0100000001"

type BankServiceTestSuite struct {
	suite.Suite
	mockBankRepo       *MockBankRepository
	mockAccountRepo    *MockAccountRepository
	mockUserRepo       *MockUserRepository
	mockInvitationRepo *MockInvitationRepository
	service            portssvc.BankSvcFacade
}

func (suite *BankServiceTestSuite) SetupTest() {
	suite.mockBankRepo = new(MockBankRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockInvitationRepo = new(MockInvitationRepository)
	suite.service = services.NewBankService(
		suite.mockBankRepo,
		suite.mockAccountRepo,
		suite.mockUserRepo,
		suite.mockInvitationRepo,
		services.BankServiceConfig{
			CreationCost:            dec("5000"),
			GovernmentAccountNumber: treasuryNumber,
			MaxBanksPerOwner:        1,
		},
	)
}

func (suite *BankServiceTestSuite) TestCreateBank_FundsTreasury() {
	ctx := context.Background()
	ownerID := uuid.New()
	treasury := &domain.Account{AccountID: 99, BankID: 1, AccountNumber: treasuryNumber}

	suite.mockBankRepo.On("FindBankByName", ctx, "Northwind").
		Return(nil, apperrors.NewNotFoundError("bank not found")).Once()
	suite.mockBankRepo.On("FindBanksByOwner", ctx, ownerID).Return([]domain.Bank{}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, ownerID).
		Return(&domain.User{PlayerID: ownerID, Money: dec("6000")}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, treasuryNumber).Return(treasury, nil).Once()
	suite.mockBankRepo.On("CreateBank", ctx, mock.MatchedBy(func(bank domain.Bank) bool {
		return bank.Name == "Northwind" && bank.OwnerID == ownerID && bank.Visibility == domain.VisibilityPublic
	}), mock.MatchedBy(func(funding *domain.Movement) bool {
		return funding != nil &&
			funding.WalletDeltas[ownerID].Equal(dec("-5000")) &&
			funding.AccountDeltas[99].Equal(dec("5000")) &&
			len(funding.Transactions) == 1 &&
			funding.Transactions[0].Type == domain.TxnBankCreation
	})).Return(&domain.Bank{BankID: 5, Name: "Northwind", OwnerID: ownerID}, nil).Once()

	bank, err := suite.service.CreateBank(ctx, ownerID, dto.CreateBankRequest{Name: "Northwind"})

	suite.Require().NoError(err)
	suite.Equal(int64(5), bank.BankID)
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestCreateBank_NameTaken() {
	ctx := context.Background()
	ownerID := uuid.New()

	suite.mockBankRepo.On("FindBankByName", ctx, "Northwind").
		Return(&domain.Bank{BankID: 2, Name: "Northwind"}, nil).Once()

	_, err := suite.service.CreateBank(ctx, ownerID, dto.CreateBankRequest{Name: "Northwind"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateName)
}

func (suite *BankServiceTestSuite) TestCreateBank_OwnershipCap() {
	ctx := context.Background()
	ownerID := uuid.New()

	suite.mockBankRepo.On("FindBankByName", ctx, "Second").
		Return(nil, apperrors.NewNotFoundError("bank not found")).Once()
	suite.mockBankRepo.On("FindBanksByOwner", ctx, ownerID).
		Return([]domain.Bank{{BankID: 1, OwnerID: ownerID}}, nil).Once()

	_, err := suite.service.CreateBank(ctx, ownerID, dto.CreateBankRequest{Name: "Second"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOwnerLimitExceeded)
}

func (suite *BankServiceTestSuite) TestCreateBank_WalletCannotCoverCost() {
	ctx := context.Background()
	ownerID := uuid.New()

	suite.mockBankRepo.On("FindBankByName", ctx, "Northwind").
		Return(nil, apperrors.NewNotFoundError("bank not found")).Once()
	suite.mockBankRepo.On("FindBanksByOwner", ctx, ownerID).Return([]domain.Bank{}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, ownerID).
		Return(&domain.User{PlayerID: ownerID, Money: dec("4999.99")}, nil).Once()

	_, err := suite.service.CreateBank(ctx, ownerID, dto.CreateBankRequest{Name: "Northwind"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "CreateBank", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestDeleteBank_SweepsInsideTeardown() {
	ctx := context.Background()
	ownerID := uuid.New()
	bank := &domain.Bank{BankID: 3, Name: "Northwind", OwnerID: ownerID, Balance: dec("25")}
	treasury := &domain.Account{AccountID: 99, BankID: 1, AccountNumber: treasuryNumber}

	suite.mockBankRepo.On("FindBankByID", ctx, int64(3)).Return(bank, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, treasuryNumber).Return(treasury, nil).Once()
	suite.mockBankRepo.On("DeleteBankCascade", ctx, int64(3), *treasury, ownerID).
		Return(&portsrepo.BankDeletionResult{AccountsClosed: 3, Swept: dec("125")}, nil).Once()

	summary, err := suite.service.DeleteBank(ctx, 3, ownerID)

	suite.Require().NoError(err)
	suite.Equal(3, summary.AccountsClosed)
	suite.True(summary.SweptToTreasury.Equal(dec("125")))
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestDeleteBank_NothingToSweep() {
	ctx := context.Background()
	ownerID := uuid.New()
	bank := &domain.Bank{BankID: 3, OwnerID: ownerID, Balance: decimal.Zero}
	treasury := &domain.Account{AccountID: 99, BankID: 1, AccountNumber: treasuryNumber}

	suite.mockBankRepo.On("FindBankByID", ctx, int64(3)).Return(bank, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, treasuryNumber).Return(treasury, nil).Once()
	suite.mockBankRepo.On("DeleteBankCascade", ctx, int64(3), *treasury, ownerID).
		Return(&portsrepo.BankDeletionResult{AccountsClosed: 0, Swept: decimal.Zero}, nil).Once()

	summary, err := suite.service.DeleteBank(ctx, 3, ownerID)

	suite.Require().NoError(err)
	suite.True(summary.SweptToTreasury.IsZero())
}

func (suite *BankServiceTestSuite) TestDeleteBank_TreasuryHostCannotBeDeleted() {
	ctx := context.Background()
	ownerID := uuid.New()
	bank := &domain.Bank{BankID: 1, OwnerID: ownerID}
	treasury := &domain.Account{AccountID: 99, BankID: 1, AccountNumber: treasuryNumber}

	suite.mockBankRepo.On("FindBankByID", ctx, int64(1)).Return(bank, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, treasuryNumber).Return(treasury, nil).Once()

	_, err := suite.service.DeleteBank(ctx, 1, ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "DeleteBankCascade", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestDeleteBank_OwnerOnly() {
	ctx := context.Background()
	bank := &domain.Bank{BankID: 3, OwnerID: uuid.New()}

	suite.mockBankRepo.On("FindBankByID", ctx, int64(3)).Return(bank, nil).Once()

	_, err := suite.service.DeleteBank(ctx, 3, uuid.New())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *BankServiceTestSuite) TestUpdateBankSettings_RejectsBadPercent() {
	ctx := context.Background()
	ownerID := uuid.New()
	bank := &domain.Bank{BankID: 3, OwnerID: ownerID}
	bad := dec("101")

	suite.mockBankRepo.On("FindBankByID", ctx, int64(3)).Return(bank, nil).Once()

	_, err := suite.service.UpdateBankSettings(ctx, 3, ownerID, dto.UpdateBankRequest{WithdrawFeePercent: &bad})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BankServiceTestSuite) TestListBanks_PrivateVisibleToInvitee() {
	ctx := context.Background()
	requesterID := uuid.New()
	banks := []domain.Bank{
		{BankID: 1, Name: "Public", Visibility: domain.VisibilityPublic},
		{BankID: 2, Name: "Hidden", Visibility: domain.VisibilityPrivate, OwnerID: uuid.New()},
		{BankID: 3, Name: "Invited", Visibility: domain.VisibilityPrivate, OwnerID: uuid.New()},
	}

	suite.mockBankRepo.On("ListBanks", ctx).Return(banks, nil).Once()
	suite.mockInvitationRepo.On("FindBankInvitation", ctx, int64(2), requesterID).
		Return(nil, apperrors.NewNotFoundError("no invitation")).Once()
	suite.mockInvitationRepo.On("FindBankInvitation", ctx, int64(3), requesterID).
		Return(&domain.BankInvitation{InvitationID: 7, BankID: 3, InviteeID: requesterID}, nil).Once()

	visible, err := suite.service.ListBanks(ctx, requesterID)

	suite.Require().NoError(err)
	suite.Require().Len(visible, 2)
	suite.Equal("Public", visible[0].Name)
	suite.Equal("Invited", visible[1].Name)
}

func (suite *BankServiceTestSuite) TestInviteToBank_PublicBankRejected() {
	ctx := context.Background()
	ownerID := uuid.New()
	bank := &domain.Bank{BankID: 3, OwnerID: ownerID, Visibility: domain.VisibilityPublic}

	suite.mockBankRepo.On("FindBankByID", ctx, int64(3)).Return(bank, nil).Once()

	_, err := suite.service.InviteToBank(ctx, 3, ownerID, uuid.New())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BankServiceTestSuite) TestInviteToBank_SelfInviteRejected() {
	ctx := context.Background()
	ownerID := uuid.New()

	_, err := suite.service.InviteToBank(ctx, 3, ownerID, ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSelfReference)
}

func TestBankServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankServiceTestSuite))
}
