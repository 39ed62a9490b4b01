package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/core/domain"
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/core/services"
	"github.com/terratale/ledgerd/internal/dto"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo  *MockInvoiceRepository
	mockAccountRepo  *MockAccountRepository
	mockBankRepo     *MockBankRepository
	mockUserRepo     *MockUserRepository
	mockMovementRepo *MockMovementRepository
	service          portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockBankRepo = new(MockBankRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.service = services.NewInvoiceService(
		suite.mockInvoiceRepo,
		suite.mockAccountRepo,
		suite.mockBankRepo,
		suite.mockUserRepo,
		suite.mockMovementRepo,
		services.InvoiceServiceConfig{
			TaxPercent:              dec("5"),
			GovernmentAccountNumber: treasuryNumber,
		},
	)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ReceptorOwnerIssues() {
	ctx := context.Background()
	requesterID := uuid.New()
	receptor := &domain.Account{AccountID: 1, AccountNumber: "NO0211112222"}
	payer := &domain.Account{AccountID: 2, AccountNumber: "NO0233334444"}

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, receptor.AccountNumber).Return(receptor, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, payer.AccountNumber).Return(payer, nil).Once()
	suite.mockAccountRepo.On("IsAccountOwner", ctx, int64(1), requesterID).Return(true, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, requesterID).
		Return(&domain.User{PlayerID: requesterID, Username: "alex"}, nil).Once()
	suite.mockInvoiceRepo.On("CreateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoicePending &&
			len(inv.Events) == 1 &&
			inv.Events[0].Type == domain.EventCreated &&
			inv.Events[0].By == "alex"
	})).Return(&domain.Invoice{InvoiceID: 10, Status: domain.InvoicePending}, nil).Once()

	inv, err := suite.service.CreateInvoice(ctx, requesterID, dto.CreateInvoiceRequest{
		ReceptorAccountNumber: receptor.AccountNumber,
		PayerAccountNumber:    payer.AccountNumber,
		Amount:                dec("200"),
		Description:           "rent",
	})

	suite.Require().NoError(err)
	suite.Equal(int64(10), inv.InvoiceID)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_SelfBillingRejected() {
	ctx := context.Background()

	_, err := suite.service.CreateInvoice(ctx, uuid.New(), dto.CreateInvoiceRequest{
		ReceptorAccountNumber: "NO0211112222",
		PayerAccountNumber:    "NO0211112222",
		Amount:                dec("10"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSelfReference)
}

func (suite *InvoiceServiceTestSuite) TestPayInvoice_SplitsAmount() {
	ctx := context.Background()
	requesterID := uuid.New()
	inv := &domain.Invoice{
		InvoiceID:             10,
		ReceptorAccountNumber: "NO0211112222",
		PayerAccountNumber:    "NO0233334444",
		Amount:                dec("200"),
		Status:                domain.InvoicePending,
		Events:                []domain.InvoiceEvent{{Type: domain.EventCreated, By: "alex"}},
	}
	payer := &domain.Account{AccountID: 2, BankID: 3, AccountNumber: inv.PayerAccountNumber, Balance: dec("500")}
	receptor := &domain.Account{AccountID: 1, AccountNumber: inv.ReceptorAccountNumber}
	payerBank := &domain.Bank{BankID: 3, TransferFeePercent: dec("2")}
	treasury := &domain.Account{AccountID: 99, AccountNumber: treasuryNumber}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(10)).Return(inv, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, inv.PayerAccountNumber).Return(payer, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, inv.ReceptorAccountNumber).Return(receptor, nil).Once()
	suite.mockAccountRepo.On("IsAccountOwner", ctx, int64(2), requesterID).Return(true, nil).Once()
	suite.mockBankRepo.On("FindBankByID", ctx, int64(3)).Return(payerBank, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, treasuryNumber).Return(treasury, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, requesterID).
		Return(&domain.User{PlayerID: requesterID, Username: "blake"}, nil).Once()
	suite.mockMovementRepo.On("ApplyMovement", ctx, mock.AnythingOfType("*domain.Movement")).Return(nil).Once()

	result, err := suite.service.PayInvoice(ctx, requesterID, 10)

	suite.Require().NoError(err)
	suite.True(result.GovernmentFee.Equal(dec("10")), "5 percent tax on 200")
	suite.True(result.BankFee.Equal(dec("4")), "2 percent transfer fee on 200")
	suite.True(result.PayerDebited.Equal(dec("204")))
	suite.True(result.NetReceived.Equal(dec("190")))

	m := suite.mockMovementRepo.LastApplied()
	suite.Require().NotNil(m)
	suite.True(m.AccountDeltas[2].Equal(dec("-204")))
	suite.True(m.AccountDeltas[1].Equal(dec("190")))
	suite.True(m.AccountDeltas[99].Equal(dec("10")))
	suite.True(m.BankDeltas[3].Equal(dec("4")))
	suite.True(m.NetDelta().IsZero())

	suite.Require().NotNil(m.Invoice)
	suite.Equal(domain.InvoicePaid, m.Invoice.Status)
	suite.Require().Len(m.Invoice.Events, 2)
	suite.Equal(domain.EventPaid, m.Invoice.Events[1].Type)
	suite.Equal("blake", m.Invoice.Events[1].By)
}

func (suite *InvoiceServiceTestSuite) TestPayInvoice_LosesSettlementRace() {
	ctx := context.Background()
	requesterID := uuid.New()
	inv := &domain.Invoice{
		InvoiceID:             10,
		ReceptorAccountNumber: "NO0211112222",
		PayerAccountNumber:    "NO0233334444",
		Amount:                dec("200"),
		Status:                domain.InvoicePending,
		Events:                []domain.InvoiceEvent{{Type: domain.EventCreated, By: "alex"}},
	}
	payer := &domain.Account{AccountID: 2, BankID: 3, AccountNumber: inv.PayerAccountNumber, Balance: dec("500")}
	receptor := &domain.Account{AccountID: 1, AccountNumber: inv.ReceptorAccountNumber}
	payerBank := &domain.Bank{BankID: 3, TransferFeePercent: dec("2")}
	treasury := &domain.Account{AccountID: 99, AccountNumber: treasuryNumber}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(10)).Return(inv, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, inv.PayerAccountNumber).Return(payer, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, inv.ReceptorAccountNumber).Return(receptor, nil).Once()
	suite.mockAccountRepo.On("IsAccountOwner", ctx, int64(2), requesterID).Return(true, nil).Once()
	suite.mockBankRepo.On("FindBankByID", ctx, int64(3)).Return(payerBank, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, treasuryNumber).Return(treasury, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, requesterID).
		Return(&domain.User{PlayerID: requesterID, Username: "blake"}, nil).Once()

	// The invoice read pending, but a concurrent settlement committed first:
	// the guarded transition matches no row and the movement rolls back.
	suite.mockMovementRepo.On("ApplyMovement", ctx, mock.AnythingOfType("*domain.Movement")).
		Return(apperrors.NewAppError(409, "invoice 10 is no longer pending", apperrors.ErrAlreadyProcessed)).Once()

	_, err := suite.service.PayInvoice(ctx, requesterID, 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyProcessed)
	suite.Empty(suite.mockMovementRepo.Applied, "a lost race settles nothing")
}

func (suite *InvoiceServiceTestSuite) TestPayInvoice_AlreadyPaid() {
	ctx := context.Background()
	inv := &domain.Invoice{InvoiceID: 10, Status: domain.InvoicePaid}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(10)).Return(inv, nil).Once()

	_, err := suite.service.PayInvoice(ctx, uuid.New(), 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyProcessed)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "ApplyMovement", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestPayInvoice_PayerCannotCoverAmountPlusFee() {
	ctx := context.Background()
	requesterID := uuid.New()
	inv := &domain.Invoice{
		InvoiceID:             10,
		ReceptorAccountNumber: "NO0211112222",
		PayerAccountNumber:    "NO0233334444",
		Amount:                dec("200"),
		Status:                domain.InvoicePending,
	}
	payer := &domain.Account{AccountID: 2, BankID: 3, AccountNumber: inv.PayerAccountNumber, Balance: dec("200")}
	receptor := &domain.Account{AccountID: 1, AccountNumber: inv.ReceptorAccountNumber}
	payerBank := &domain.Bank{BankID: 3, TransferFeePercent: dec("2")}
	treasury := &domain.Account{AccountID: 99, AccountNumber: treasuryNumber}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(10)).Return(inv, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, inv.PayerAccountNumber).Return(payer, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, inv.ReceptorAccountNumber).Return(receptor, nil).Once()
	suite.mockAccountRepo.On("IsAccountOwner", ctx, int64(2), requesterID).Return(true, nil).Once()
	suite.mockBankRepo.On("FindBankByID", ctx, int64(3)).Return(payerBank, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, treasuryNumber).Return(treasury, nil).Once()

	_, err := suite.service.PayInvoice(ctx, requesterID, 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "ApplyMovement", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestPayInvoice_PayerOwnerOnly() {
	ctx := context.Background()
	requesterID := uuid.New()
	inv := &domain.Invoice{
		InvoiceID:             10,
		ReceptorAccountNumber: "NO0211112222",
		PayerAccountNumber:    "NO0233334444",
		Amount:                dec("200"),
		Status:                domain.InvoicePending,
	}
	payer := &domain.Account{AccountID: 2, BankID: 3, AccountNumber: inv.PayerAccountNumber}
	receptor := &domain.Account{AccountID: 1, AccountNumber: inv.ReceptorAccountNumber}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(10)).Return(inv, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, inv.PayerAccountNumber).Return(payer, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, inv.ReceptorAccountNumber).Return(receptor, nil).Once()
	suite.mockAccountRepo.On("IsAccountOwner", ctx, int64(2), requesterID).Return(false, nil).Once()

	_, err := suite.service.PayInvoice(ctx, requesterID, 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *InvoiceServiceTestSuite) TestRejectInvoice_NoMoneyMoves() {
	ctx := context.Background()
	requesterID := uuid.New()
	inv := &domain.Invoice{
		InvoiceID:             10,
		ReceptorAccountNumber: "NO0211112222",
		PayerAccountNumber:    "NO0233334444",
		Amount:                dec("200"),
		Status:                domain.InvoicePending,
		Events:                []domain.InvoiceEvent{{Type: domain.EventCreated, By: "alex"}},
	}
	payer := &domain.Account{AccountID: 2, AccountNumber: inv.PayerAccountNumber}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(10)).Return(inv, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, inv.PayerAccountNumber).Return(payer, nil).Once()
	suite.mockAccountRepo.On("IsAccountOwner", ctx, int64(2), requesterID).Return(true, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, requesterID).
		Return(&domain.User{PlayerID: requesterID, Username: "blake"}, nil).Once()
	suite.mockMovementRepo.On("ApplyMovement", ctx, mock.AnythingOfType("*domain.Movement")).Return(nil).Once()

	rejected, err := suite.service.RejectInvoice(ctx, requesterID, 10)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceCancelled, rejected.Status)

	m := suite.mockMovementRepo.LastApplied()
	suite.Require().NotNil(m)
	suite.Empty(m.WalletDeltas)
	suite.Empty(m.AccountDeltas)
	suite.Empty(m.BankDeltas)
	suite.Require().NotNil(m.Invoice)
	suite.Equal(domain.InvoiceCancelled, m.Invoice.Status)
	suite.Equal(domain.EventCancelled, m.Invoice.Events[len(m.Invoice.Events)-1].Type)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_DefaultsToPayerRole() {
	ctx := context.Background()
	requesterID := uuid.New()
	account := &domain.Account{AccountID: 2, AccountNumber: "NO0233334444"}

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, account.AccountNumber).Return(account, nil).Once()
	suite.mockAccountRepo.On("IsAccountOwner", ctx, int64(2), requesterID).Return(true, nil).Once()
	suite.mockInvoiceRepo.On("ListInvoicesByAccount", ctx, account.AccountNumber, portsrepo.RolePayer, 20).
		Return([]domain.Invoice{}, nil).Once()

	_, err := suite.service.ListInvoicesByAccount(ctx, requesterID, account.AccountNumber, "", 20)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
