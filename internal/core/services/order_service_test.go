package services_test

import (
	"context"
	"testing"

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

type OrderServiceTestSuite struct {
	suite.Suite
	mockRepo *MockOrderRepository
	service  portssvc.OrderSvcFacade
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockOrderRepository)
	suite.service = services.NewOrderService(suite.mockRepo)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		Marketplace:  "shopee",
		CustomerName: "Budi",
		City:         "Bandung",
		Items: []dto.OrderItemInput{
			{ProductName: "Mug", UnitPrice: decimal.NewFromInt(50000), Quantity: 2},
			{ProductName: "Coaster", UnitPrice: decimal.NewFromInt(30000), Quantity: 1},
		},
	}

	suite.mockRepo.On("CreateOrder", ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.CustomerName == "Budi" &&
			o.OrderStatus == domain.OrderConfirmed &&
			o.PaymentStatus == domain.PaymentPending &&
			o.AmountSettled.IsZero() &&
			len(o.Items) == 2 &&
			o.Items[0].OrderID == o.OrderID &&
			o.Total().Equal(decimal.NewFromInt(130000))
	})).Return(&domain.Order{OrderID: uuid.NewString(), InvoiceNumber: "0825-7000", CustomerName: "Budi"}, nil).Once()

	order, err := suite.service.CreateOrder(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("0825-7000", order.InvoiceNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NoItems() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{CustomerName: "Budi"}

	order, err := suite.service.CreateOrder(ctx, req)

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_BadItemQuantity() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		CustomerName: "Budi",
		Items:        []dto.OrderItemInput{{ProductName: "Mug", UnitPrice: decimal.NewFromInt(50000), Quantity: 0}},
	}

	order, err := suite.service.CreateOrder(ctx, req)

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NegativePrice() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		CustomerName: "Budi",
		Items:        []dto.OrderItemInput{{ProductName: "Mug", UnitPrice: decimal.NewFromInt(-1), Quantity: 1}},
	}

	order, err := suite.service.CreateOrder(ctx, req)

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_HeaderOnly() {
	ctx := context.Background()
	orderID := uuid.NewString()
	existing := &domain.Order{
		OrderID:      orderID,
		CustomerName: "Budi",
		City:         "Bandung",
		Items:        []domain.OrderItem{{ItemID: uuid.NewString(), OrderID: orderID, ProductName: "Mug", UnitPrice: decimal.NewFromInt(50000), Quantity: 2}},
	}
	newCity := "Jakarta"
	req := dto.UpdateOrderRequest{City: &newCity}

	suite.mockRepo.On("FindOrderByID", ctx, orderID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateOrder", ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.City == "Jakarta" && o.CustomerName == "Budi" && len(o.Items) == 1
	}), false).Return(existing, nil).Once()

	_, err := suite.service.UpdateOrder(ctx, orderID, req)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_ReplacesItems() {
	ctx := context.Background()
	orderID := uuid.NewString()
	existing := &domain.Order{
		OrderID: orderID,
		Items:   []domain.OrderItem{{ItemID: uuid.NewString(), OrderID: orderID, ProductName: "Mug", UnitPrice: decimal.NewFromInt(50000), Quantity: 2}},
	}
	items := []dto.OrderItemInput{{ProductName: "Tumbler", UnitPrice: decimal.NewFromInt(75000), Quantity: 3}}
	req := dto.UpdateOrderRequest{Items: &items}

	suite.mockRepo.On("FindOrderByID", ctx, orderID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateOrder", ctx, mock.MatchedBy(func(o domain.Order) bool {
		return len(o.Items) == 1 && o.Items[0].ProductName == "Tumbler" && o.Total().Equal(decimal.NewFromInt(225000))
	}), true).Return(existing, nil).Once()

	_, err := suite.service.UpdateOrder(ctx, orderID, req)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_ItemsBelowSettledConflict() {
	ctx := context.Background()
	orderID := uuid.NewString()
	existing := &domain.Order{
		OrderID:       orderID,
		PaymentStatus: domain.PaymentPartial,
		AmountSettled: decimal.NewFromInt(100000),
		Items:         []domain.OrderItem{{ItemID: uuid.NewString(), OrderID: orderID, ProductName: "Mug", UnitPrice: decimal.NewFromInt(65000), Quantity: 2}},
	}
	items := []dto.OrderItemInput{{ProductName: "Coaster", UnitPrice: decimal.NewFromInt(1000), Quantity: 1}}
	req := dto.UpdateOrderRequest{Items: &items}

	suite.mockRepo.On("FindOrderByID", ctx, orderID).Return(existing, nil).Once()

	order, err := suite.service.UpdateOrder(ctx, orderID, req)

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_ItemsCoveringSettledAccepted() {
	ctx := context.Background()
	orderID := uuid.NewString()
	existing := &domain.Order{
		OrderID:       orderID,
		PaymentStatus: domain.PaymentPartial,
		AmountSettled: decimal.NewFromInt(100000),
		Items:         []domain.OrderItem{{ItemID: uuid.NewString(), OrderID: orderID, ProductName: "Mug", UnitPrice: decimal.NewFromInt(65000), Quantity: 2}},
	}
	items := []dto.OrderItemInput{{ProductName: "Mug", UnitPrice: decimal.NewFromInt(50000), Quantity: 2}}
	req := dto.UpdateOrderRequest{Items: &items}

	suite.mockRepo.On("FindOrderByID", ctx, orderID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateOrder", ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.Total().Equal(decimal.NewFromInt(100000)) && o.AmountSettled.Equal(decimal.NewFromInt(100000))
	}), true).Return(existing, nil).Once()

	_, err := suite.service.UpdateOrder(ctx, orderID, req)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_EmptyItemSetRejected() {
	ctx := context.Background()
	orderID := uuid.NewString()
	existing := &domain.Order{OrderID: orderID}
	empty := []dto.OrderItemInput{}
	req := dto.UpdateOrderRequest{Items: &empty}

	suite.mockRepo.On("FindOrderByID", ctx, orderID).Return(existing, nil).Once()

	order, err := suite.service.UpdateOrder(ctx, orderID, req)

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_NotFound() {
	ctx := context.Background()
	orderID := uuid.NewString()
	suite.mockRepo.On("FindOrderByID", ctx, orderID).Return(nil, apperrors.ErrNotFound).Once()

	name := "Ani"
	order, err := suite.service.UpdateOrder(ctx, orderID, dto.UpdateOrderRequest{CustomerName: &name})

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestCancelOrder_Success() {
	ctx := context.Background()
	orderID := uuid.NewString()
	cancelled := &domain.Order{OrderID: orderID, OrderStatus: domain.OrderCancelled}
	suite.mockRepo.On("CancelOrder", ctx, orderID).Return(cancelled, nil).Once()

	order, err := suite.service.CancelOrder(ctx, orderID)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderCancelled, order.OrderStatus)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCancelOrder_SettledConflict() {
	ctx := context.Background()
	orderID := uuid.NewString()
	suite.mockRepo.On("CancelOrder", ctx, orderID).Return(nil, apperrors.ErrConflict).Once()

	order, err := suite.service.CancelOrder(ctx, orderID)

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *OrderServiceTestSuite) TestListOrders_InvalidStatus() {
	ctx := context.Background()
	bad := "Shipped"

	result, err := suite.service.ListOrders(ctx, dto.ListOrdersParams{Status: &bad})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListOrders", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestListOrders_Success() {
	ctx := context.Background()
	orderID := uuid.NewString()
	orders := []domain.Order{{
		OrderID:       orderID,
		InvoiceNumber: "0825-7001",
		AmountSettled: decimal.NewFromInt(50000),
		Items:         []domain.OrderItem{{ItemID: uuid.NewString(), OrderID: orderID, ProductName: "Mug", UnitPrice: decimal.NewFromInt(50000), Quantity: 2}},
	}}
	next := "token"
	suite.mockRepo.On("ListOrders", ctx, mock.Anything).Return(orders, &next, nil).Once()

	result, err := suite.service.ListOrders(ctx, dto.ListOrdersParams{Limit: 1})

	suite.Require().NoError(err)
	suite.Require().Len(result.Orders, 1)
	suite.True(result.Orders[0].Total.Equal(decimal.NewFromInt(100000)))
	suite.True(result.Orders[0].Remaining.Equal(decimal.NewFromInt(50000)))
	suite.Equal(&next, result.NextToken)
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
