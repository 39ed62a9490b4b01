package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/core/domain"
	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/core/services"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo     *MockUserRepository
	mockMovementRepo *MockMovementRepository
	service          portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockMovementRepo, dec("1000"))
}

func (suite *UserServiceTestSuite) TestSyncUser_SeedsInitialMoney() {
	ctx := context.Background()
	playerID := uuid.New()

	suite.mockUserRepo.On("UpsertUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.PlayerID == playerID && user.Username == "steve" && user.Money.Equal(dec("1000"))
	})).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, playerID).
		Return(&domain.User{PlayerID: playerID, Username: "steve", Money: dec("1000")}, nil).Once()

	user, err := suite.service.SyncUser(ctx, playerID, "steve")

	suite.Require().NoError(err)
	suite.Equal("steve", user.Username)
	suite.True(user.Money.Equal(dec("1000")))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestSyncUser_ReturningPlayerKeepsBalance() {
	ctx := context.Background()
	playerID := uuid.New()

	// The upsert leaves existing balances alone; whatever the store holds
	// afterwards is what the caller sees.
	suite.mockUserRepo.On("UpsertUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, playerID).
		Return(&domain.User{PlayerID: playerID, Username: "renamed", Money: dec("42.50")}, nil).Once()

	user, err := suite.service.SyncUser(ctx, playerID, "renamed")

	suite.Require().NoError(err)
	suite.True(user.Money.Equal(dec("42.50")))
}

func (suite *UserServiceTestSuite) TestCreditWallet_AppliesPositiveDelta() {
	ctx := context.Background()
	playerID := uuid.New()

	suite.mockUserRepo.On("FindUserByID", ctx, playerID).
		Return(&domain.User{PlayerID: playerID, Money: dec("10")}, nil).Once()
	suite.mockMovementRepo.On("ApplyMovement", ctx, mock.AnythingOfType("*domain.Movement")).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, playerID).
		Return(&domain.User{PlayerID: playerID, Money: dec("35")}, nil).Once()

	user, err := suite.service.CreditWallet(ctx, playerID, dec("25"))

	suite.Require().NoError(err)
	suite.True(user.Money.Equal(dec("35")))
	m := suite.mockMovementRepo.LastApplied()
	suite.Require().NotNil(m)
	suite.True(m.WalletDeltas[playerID].Equal(dec("25")))
}

func (suite *UserServiceTestSuite) TestDebitWallet_AppliesNegativeDelta() {
	ctx := context.Background()
	playerID := uuid.New()

	suite.mockUserRepo.On("FindUserByID", ctx, playerID).
		Return(&domain.User{PlayerID: playerID, Money: dec("100")}, nil).Twice()
	suite.mockMovementRepo.On("ApplyMovement", ctx, mock.AnythingOfType("*domain.Movement")).Return(nil).Once()

	_, err := suite.service.DebitWallet(ctx, playerID, dec("40"))

	suite.Require().NoError(err)
	m := suite.mockMovementRepo.LastApplied()
	suite.Require().NotNil(m)
	suite.True(m.WalletDeltas[playerID].Equal(dec("-40")))
}

func (suite *UserServiceTestSuite) TestCreditWallet_RejectsNonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.CreditWallet(ctx, uuid.New(), dec("-5"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "ApplyMovement", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDebitWallet_UnknownPlayer() {
	ctx := context.Background()
	playerID := uuid.New()

	suite.mockUserRepo.On("FindUserByID", ctx, playerID).
		Return(nil, apperrors.NewNotFoundError("user not found")).Once()

	_, err := suite.service.DebitWallet(ctx, playerID, dec("1"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
