// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/williamokano/rsyncer/pkg/connection"
)

// MockTarget is a mock implementation of the target.Target interface
type MockTarget struct {
	mock.Mock
}

// Type provides a mock function with given fields:
func (m *MockTarget) Type() connection.Kind {
	ret := m.Called()

	var r0 connection.Kind
	if rf, ok := ret.Get(0).(func() connection.Kind); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(connection.Kind)
	}

	return r0
}

// Check provides a mock function with given fields: ctx
func (m *MockTarget) Check(ctx context.Context) error {
	ret := m.Called(ctx)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Prepare provides a mock function with given fields: ctx, dir
func (m *MockTarget) Prepare(ctx context.Context, dir string) error {
	ret := m.Called(ctx, dir)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, dir)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Close provides a mock function with given fields:
func (m *MockTarget) Close() error {
	ret := m.Called()

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockTarget creates a new instance of MockTarget
func NewMockTarget(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTarget {
	mock_1 := &MockTarget{}
	mock_1.Mock.Test(t)

	t.Cleanup(func() { mock_1.AssertExpectations(t) })

	return mock_1
}
