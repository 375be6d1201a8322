package gateway

import (
	"context"

	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockGateway is a testify mock of every backend call.
//
// Example usage:
//
//	gw := new(MockGateway)
//	gw.On("FetchPage", mock.Anything, 0, 20).Return(domain.Page{HasNext: true}, nil)
//	gw.On("ToggleLike", mock.Anything, int64(7)).Return(&Error{Status: 500})
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) FetchPage(ctx context.Context, index, size int) (domain.Page, error) {
	args := m.Called(ctx, index, size)
	return args.Get(0).(domain.Page), args.Error(1)
}

func (m *MockGateway) ToggleLike(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockGateway) ToggleNotification(ctx context.Context, postID int64) (bool, error) {
	args := m.Called(ctx, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGateway) DeletePost(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockGateway) ListSlots(ctx context.Context, kind domain.SlotKind) ([]domain.Slot, error) {
	args := m.Called(ctx, kind)
	slots, _ := args.Get(0).([]domain.Slot)
	return slots, args.Error(1)
}

func (m *MockGateway) SubmitApplication(ctx context.Context, kind domain.SlotKind, slotID int64) error {
	args := m.Called(ctx, kind, slotID)
	return args.Error(0)
}
