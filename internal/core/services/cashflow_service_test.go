package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/laquila/backend/internal/apperrors"
	"github.com/laquila/backend/internal/core/domain"
	portssvc "github.com/laquila/backend/internal/core/ports/services"
	"github.com/laquila/backend/internal/core/services"
	"github.com/laquila/backend/internal/dto"
)

type CashFlowServiceTestSuite struct {
	suite.Suite
	mockCashFlowRepo *MockCashFlowRepository
	mockWalletRepo   *MockWalletRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.CashFlowSvcFacade

	wallet   *domain.Wallet
	dest     *domain.Wallet
	income   *domain.FinanceCategory
	expense  *domain.FinanceCategory
	occurred time.Time
}

func (suite *CashFlowServiceTestSuite) SetupTest() {
	suite.mockCashFlowRepo = new(MockCashFlowRepository)
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewCashFlowService(suite.mockCashFlowRepo, suite.mockWalletRepo, suite.mockCategoryRepo)

	suite.wallet = &domain.Wallet{WalletID: uuid.NewString(), Name: "Cash"}
	suite.dest = &domain.Wallet{WalletID: uuid.NewString(), Name: "Bank"}
	suite.income = &domain.FinanceCategory{CategoryID: uuid.NewString(), Name: "Sales", Direction: domain.CategoryIncome}
	suite.expense = &domain.FinanceCategory{CategoryID: uuid.NewString(), Name: "Shipping", Direction: domain.CategoryExpense}
	suite.occurred = time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
}

func (suite *CashFlowServiceTestSuite) TestAppendManualEntry_Expense() {
	ctx := context.Background()
	req := dto.CreateCashFlowEntryRequest{
		Type:       "expense",
		Amount:     decimal.NewFromInt(20000),
		WalletID:   suite.wallet.WalletID,
		CategoryID: &suite.expense.CategoryID,
		OccurredAt: suite.occurred,
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(suite.wallet, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.expense.CategoryID).Return(suite.expense, nil).Once()
	suite.mockCashFlowRepo.On("AppendEntry", ctx, mock.MatchedBy(func(e domain.CashFlowEntry) bool {
		return e.Type == domain.CashFlowExpense &&
			e.CategoryName != nil && *e.CategoryName == "Shipping" &&
			e.OrderID == nil &&
			e.OccurredAt.Equal(suite.occurred)
	})).Return(nil).Once()

	entry, err := suite.service.AppendManualEntry(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry.CategoryName)
	suite.Equal("Shipping", *entry.CategoryName)
	suite.mockCashFlowRepo.AssertExpectations(suite.T())
}

func (suite *CashFlowServiceTestSuite) TestAppendManualEntry_Transfer() {
	ctx := context.Background()
	req := dto.CreateCashFlowEntryRequest{
		Type:       "transfer",
		Amount:     decimal.NewFromInt(100000),
		WalletID:   suite.wallet.WalletID,
		ToWalletID: &suite.dest.WalletID,
		OccurredAt: suite.occurred,
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(suite.wallet, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.dest.WalletID).Return(suite.dest, nil).Once()
	suite.mockCashFlowRepo.On("AppendEntry", ctx, mock.MatchedBy(func(e domain.CashFlowEntry) bool {
		return e.Type == domain.CashFlowTransfer && e.CategoryName == nil && e.ToWalletID != nil
	})).Return(nil).Once()

	entry, err := suite.service.AppendManualEntry(ctx, req)

	suite.Require().NoError(err)
	suite.Nil(entry.CategoryName)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "FindCategoryByID", mock.Anything, mock.Anything)
}

func (suite *CashFlowServiceTestSuite) TestAppendManualEntry_TransferToSameWallet() {
	ctx := context.Background()
	req := dto.CreateCashFlowEntryRequest{
		Type:       "transfer",
		Amount:     decimal.NewFromInt(100000),
		WalletID:   suite.wallet.WalletID,
		ToWalletID: &suite.wallet.WalletID,
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(suite.wallet, nil).Once()

	entry, err := suite.service.AppendManualEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CashFlowServiceTestSuite) TestAppendManualEntry_TransferMissingDest() {
	ctx := context.Background()
	req := dto.CreateCashFlowEntryRequest{
		Type:     "transfer",
		Amount:   decimal.NewFromInt(100000),
		WalletID: suite.wallet.WalletID,
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(suite.wallet, nil).Once()

	entry, err := suite.service.AppendManualEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CashFlowServiceTestSuite) TestAppendManualEntry_IncomeWithoutCategory() {
	ctx := context.Background()
	req := dto.CreateCashFlowEntryRequest{
		Type:     "income",
		Amount:   decimal.NewFromInt(100000),
		WalletID: suite.wallet.WalletID,
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(suite.wallet, nil).Once()

	entry, err := suite.service.AppendManualEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CashFlowServiceTestSuite) TestAppendManualEntry_DirectionMismatch() {
	ctx := context.Background()
	req := dto.CreateCashFlowEntryRequest{
		Type:       "income",
		Amount:     decimal.NewFromInt(100000),
		WalletID:   suite.wallet.WalletID,
		CategoryID: &suite.expense.CategoryID,
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(suite.wallet, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.expense.CategoryID).Return(suite.expense, nil).Once()

	entry, err := suite.service.AppendManualEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CashFlowServiceTestSuite) TestAppendManualEntry_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateCashFlowEntryRequest{
		Type:       "expense",
		Amount:     decimal.Zero,
		WalletID:   suite.wallet.WalletID,
		CategoryID: &suite.expense.CategoryID,
	}

	entry, err := suite.service.AppendManualEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCashFlowRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *CashFlowServiceTestSuite) TestUpdateManualEntry_SettlementEntryRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	orderID := uuid.NewString()
	categoryName := "Sales"
	stored := &domain.CashFlowEntry{
		EntryID:      entryID,
		Type:         domain.CashFlowIncome,
		Amount:       decimal.NewFromInt(50000),
		CategoryName: &categoryName,
		WalletID:     suite.wallet.WalletID,
		OrderID:      &orderID,
		OccurredAt:   suite.occurred,
	}
	suite.mockCashFlowRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()

	amount := decimal.NewFromInt(60000)
	entry, err := suite.service.UpdateManualEntry(ctx, entryID, dto.UpdateCashFlowEntryRequest{Amount: &amount})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCashFlowRepo.AssertNotCalled(suite.T(), "UpdateEntry", mock.Anything, mock.Anything)
}

func (suite *CashFlowServiceTestSuite) TestUpdateManualEntry_KeepsStoredCategoryName() {
	ctx := context.Background()
	entryID := uuid.NewString()
	categoryName := "Shipping"
	stored := &domain.CashFlowEntry{
		EntryID:      entryID,
		Type:         domain.CashFlowExpense,
		Amount:       decimal.NewFromInt(20000),
		CategoryName: &categoryName,
		WalletID:     suite.wallet.WalletID,
		OccurredAt:   suite.occurred,
	}
	suite.mockCashFlowRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(suite.wallet, nil).Once()
	suite.mockCashFlowRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.CashFlowEntry) bool {
		return e.Amount.Equal(decimal.NewFromInt(25000)) && e.CategoryName != nil && *e.CategoryName == "Shipping"
	})).Return(nil).Once()

	amount := decimal.NewFromInt(25000)
	entry, err := suite.service.UpdateManualEntry(ctx, entryID, dto.UpdateCashFlowEntryRequest{Amount: &amount})

	suite.Require().NoError(err)
	suite.Require().NotNil(entry.CategoryName)
	suite.Equal("Shipping", *entry.CategoryName)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "FindCategoryByID", mock.Anything, mock.Anything)
	suite.mockCashFlowRepo.AssertExpectations(suite.T())
}

func (suite *CashFlowServiceTestSuite) TestDeleteManualEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	categoryName := "Shipping"
	stored := &domain.CashFlowEntry{
		EntryID:      entryID,
		Type:         domain.CashFlowExpense,
		Amount:       decimal.NewFromInt(20000),
		CategoryName: &categoryName,
		WalletID:     suite.wallet.WalletID,
	}
	suite.mockCashFlowRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockCashFlowRepo.On("DeleteEntry", ctx, entryID).Return(nil).Once()

	err := suite.service.DeleteManualEntry(ctx, entryID)

	suite.Require().NoError(err)
	suite.mockCashFlowRepo.AssertExpectations(suite.T())
}

func (suite *CashFlowServiceTestSuite) TestDeleteManualEntry_SettlementEntryRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	orderID := uuid.NewString()
	stored := &domain.CashFlowEntry{EntryID: entryID, Type: domain.CashFlowIncome, WalletID: suite.wallet.WalletID, OrderID: &orderID}
	suite.mockCashFlowRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()

	err := suite.service.DeleteManualEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCashFlowRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (suite *CashFlowServiceTestSuite) TestListEntries_InvalidType() {
	ctx := context.Background()
	bad := "refund"

	result, err := suite.service.ListEntries(ctx, dto.ListCashFlowParams{Type: &bad})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestCashFlowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashFlowServiceTestSuite))
}
