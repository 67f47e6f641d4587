// Package mocks provides a testify mock for the payment provider client.
package mocks

import (
	"context"

	"github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockClient struct {
	mock.Mock
}

func NewMockClient(t testingT) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockClient) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, reference string) (*paypal.Order, error) {
	ret := m.Called(ctx, amount, currency, reference)

	var order *paypal.Order
	if ret.Get(0) != nil {
		order = ret.Get(0).(*paypal.Order)
	}

	return order, ret.Error(1)
}

func (m *MockClient) CaptureOrder(ctx context.Context, providerOrderID string) (*paypal.CaptureOrderResponse, error) {
	ret := m.Called(ctx, providerOrderID)

	var resp *paypal.CaptureOrderResponse
	if ret.Get(0) != nil {
		resp = ret.Get(0).(*paypal.CaptureOrderResponse)
	}

	return resp, ret.Error(1)
}

func (m *MockClient) GetOrder(ctx context.Context, providerOrderID string) (*paypal.Order, error) {
	ret := m.Called(ctx, providerOrderID)

	var order *paypal.Order
	if ret.Get(0) != nil {
		order = ret.Get(0).(*paypal.Order)
	}

	return order, ret.Error(1)
}

func (m *MockClient) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
