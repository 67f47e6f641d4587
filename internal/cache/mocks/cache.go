// Package mocks provides a testify mock for the cache interface.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockCache struct {
	mock.Mock
}

func NewMockCache(t testingT) *MockCache {
	m := &MockCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCache) Get(ctx context.Context, key string, value any) (bool, error) {
	ret := m.Called(ctx, key, value)

	return ret.Bool(0), ret.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
