// Package mocks provides a testify mock for the email sender.
package mocks

import (
	"context"

	"github.com/shopcraft/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockEmailService struct {
	mock.Mock
}

func NewMockEmailService(t testingT) *MockEmailService {
	m := &MockEmailService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	return m.Called(ctx, req).Error(0)
}
