package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/security"
	"rentnest-backend/internal/service"
)

type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) CreateRequest(ctx context.Context, in service.NewRequestInput) (*domain.Request, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockIntakeService) GetRequest(ctx context.Context, requestID int32) (*domain.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

type MockStatusService struct {
	mock.Mock
}

func (m *MockStatusService) Transition(ctx context.Context, requestID int32, target domain.Status, in service.TransitionInput) (*domain.Request, error) {
	args := m.Called(ctx, requestID, target, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockStatusService) MarkPaid(ctx context.Context, requestID int32) (*domain.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Resolve(ctx context.Context, hint domain.IdentityHint) (*domain.OwnedRecords, error) {
	args := m.Called(ctx, hint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnedRecords), args.Error(1)
}

type MockFulfillmentService struct {
	mock.Mock
}

func (m *MockFulfillmentService) Materialize(ctx context.Context, req *domain.Request) (*domain.Rental, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockFulfillmentService) GetRental(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Notifications(ctx context.Context, userID, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockAccountService) MarkNotificationRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockAccountService) Activity(ctx context.Context, userID, limit, offset int32) ([]domain.ActivityLogEntry, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.ActivityLogEntry), args.Get(1).(int32), args.Error(2)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ApplyEvent(ctx context.Context, ev *domain.PaymentEvent) (bool, error) {
	args := m.Called(ctx, ev)
	return args.Bool(0), args.Error(1)
}

// stubVerifier resolves a fixed token to fixed claims without real JWTs.
type stubVerifier struct {
	token  string
	claims *security.Claims
}

func (v *stubVerifier) Verify(tokenString string) (*security.Claims, error) {
	if v.claims != nil && tokenString == v.token {
		return v.claims, nil
	}
	return nil, security.ErrInvalidToken
}
