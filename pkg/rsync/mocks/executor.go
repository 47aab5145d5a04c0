// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/williamokano/rsyncer/pkg/rsync"
)

// MockExecutor is a mock implementation of the rsync.Executor interface
type MockExecutor struct {
	mock.Mock
}

// Execute provides a mock function with given fields: ctx, inv
func (m *MockExecutor) Execute(ctx context.Context, inv rsync.Invocation) ([]string, int, error) {
	ret := m.Called(ctx, inv)

	if rf, ok := ret.Get(0).(func(context.Context, rsync.Invocation) ([]string, int, error)); ok {
		return rf(ctx, inv)
	}

	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}

	var r1 int
	if rf, ok := ret.Get(1).(func(context.Context, rsync.Invocation) int); ok {
		r1 = rf(ctx, inv)
	} else {
		r1 = ret.Int(1)
	}

	var r2 error
	if rf, ok := ret.Get(2).(func(context.Context, rsync.Invocation) error); ok {
		r2 = rf(ctx, inv)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// NewMockExecutor creates a new instance of MockExecutor
func NewMockExecutor(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockExecutor {
	mock_1 := &MockExecutor{}
	mock_1.Mock.Test(t)

	t.Cleanup(func() { mock_1.AssertExpectations(t) })

	return mock_1
}
