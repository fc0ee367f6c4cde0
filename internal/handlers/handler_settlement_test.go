package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/laquila/backend/internal/apperrors"
	"github.com/laquila/backend/internal/core/domain"
	portssvc "github.com/laquila/backend/internal/core/ports/services"
	"github.com/laquila/backend/internal/dto"
	"github.com/laquila/backend/internal/handlers"
	"github.com/laquila/backend/internal/platform/config"
)

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) RecordSettlement(ctx context.Context, req dto.RecordSettlementRequest) (*domain.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

var _ portssvc.SettlementSvcFacade = (*MockSettlementService)(nil)

// --- Mock OrderService ---
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, orderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListOrdersResponse), args.Error(1)
}

var _ portssvc.OrderSvcFacade = (*MockOrderService)(nil)

// --- Test Suite ---
type SettlementHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockSettlementSvc *MockSettlementService
	mockOrderSvc      *MockOrderService
}

func (suite *SettlementHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockSettlementSvc = new(MockSettlementService)
	suite.mockOrderSvc = new(MockOrderService)

	cfg := &config.Config{
		Port:              "8080",
		IsProduction:      true,
		RateLimitRequests: 1000,
		RateLimitPeriod:   time.Minute,
	}
	container := &portssvc.ServiceContainer{
		Order:      suite.mockOrderSvc,
		Settlement: suite.mockSettlementSvc,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *SettlementHandlerTestSuite) postSettlement(body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/settlements", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *SettlementHandlerTestSuite) TestRecordSettlement_Success() {
	orderID := uuid.NewString()
	reqBody := dto.RecordSettlementRequest{
		OrderID:    orderID,
		Amount:     decimal.NewFromInt(50000),
		WalletID:   uuid.NewString(),
		CategoryID: uuid.NewString(),
	}
	settled := &domain.Order{
		OrderID:       orderID,
		InvoiceNumber: "0825-7000",
		OrderStatus:   domain.OrderConfirmed,
		PaymentStatus: domain.PaymentPartial,
		AmountSettled: decimal.NewFromInt(50000),
	}
	suite.mockSettlementSvc.On("RecordSettlement", mock.Anything, mock.AnythingOfType("dto.RecordSettlementRequest")).
		Return(settled, nil).Once()

	w := suite.postSettlement(reqBody)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.OrderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Partial", resp.PaymentStatus)
	suite.Equal("0825-7000", resp.InvoiceNumber)
	suite.mockSettlementSvc.AssertExpectations(suite.T())
}

func (suite *SettlementHandlerTestSuite) TestRecordSettlement_MissingOrderID() {
	w := suite.postSettlement(gin.H{"amount": "50000", "walletID": "w", "categoryID": "c"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSettlementSvc.AssertNotCalled(suite.T(), "RecordSettlement", mock.Anything, mock.Anything)
}

func (suite *SettlementHandlerTestSuite) TestRecordSettlement_OrderNotFound() {
	suite.mockSettlementSvc.On("RecordSettlement", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.postSettlement(dto.RecordSettlementRequest{
		OrderID:    uuid.NewString(),
		Amount:     decimal.NewFromInt(50000),
		WalletID:   uuid.NewString(),
		CategoryID: uuid.NewString(),
	})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SettlementHandlerTestSuite) TestRecordSettlement_Conflict() {
	suite.mockSettlementSvc.On("RecordSettlement", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrConflict).Once()

	w := suite.postSettlement(dto.RecordSettlementRequest{
		OrderID:    uuid.NewString(),
		Amount:     decimal.NewFromInt(1),
		WalletID:   uuid.NewString(),
		CategoryID: uuid.NewString(),
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *SettlementHandlerTestSuite) TestRecordSettlement_ValidationError() {
	suite.mockSettlementSvc.On("RecordSettlement", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.postSettlement(dto.RecordSettlementRequest{
		OrderID:    uuid.NewString(),
		Amount:     decimal.Zero,
		WalletID:   uuid.NewString(),
		CategoryID: uuid.NewString(),
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *SettlementHandlerTestSuite) TestCancelOrder_ConflictMapsTo409() {
	orderID := uuid.NewString()
	suite.mockOrderSvc.On("CancelOrder", mock.Anything, orderID).
		Return(nil, apperrors.ErrConflict).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *SettlementHandlerTestSuite) TestHealthEndpoint() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func TestSettlementHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementHandlerTestSuite))
}
