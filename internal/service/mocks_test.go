package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"rentnest-backend/internal/domain"
)

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockRequestRepo) CompareAndSwapStatus(ctx context.Context, id int32, expected, target domain.Status, pay domain.PaymentStatus, scheduled *time.Time) (bool, error) {
	args := m.Called(ctx, id, expected, target, pay, scheduled)
	return args.Bool(0), args.Error(1)
}
func (m *MockRequestRepo) ListIDsByIdentity(ctx context.Context, userID *int32, email string) ([]int32, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockRequestRepo) ListScheduledDeliveriesDue(ctx context.Context, by time.Time) ([]domain.Request, error) {
	args := m.Called(ctx, by)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) CreateForRequest(ctx context.Context, rental *domain.Rental) (bool, error) {
	args := m.Called(ctx, rental)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListIDsByIdentity(ctx context.Context, userID *int32, email string) ([]int32, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}

// MockPaymentEventRepo
type MockPaymentEventRepo struct {
	mock.Mock
}

func (m *MockPaymentEventRepo) Record(ctx context.Context, ev *domain.PaymentEvent) (bool, error) {
	args := m.Called(ctx, ev)
	return args.Bool(0), args.Error(1)
}
func (m *MockPaymentEventRepo) MarkApplied(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}
func (m *MockPaymentEventRepo) Delete(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}
func (m *MockPaymentEventRepo) PurgeAppliedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockActivityLogRepo
type MockActivityLogRepo struct {
	mock.Mock
}

func (m *MockActivityLogRepo) Create(ctx context.Context, entry *domain.ActivityLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockActivityLogRepo) ListByUser(ctx context.Context, userID, limit, offset int32) ([]domain.ActivityLogEntry, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.ActivityLogEntry), args.Get(1).(int32), args.Error(2)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// MockStatusService
type MockStatusService struct {
	mock.Mock
}

func (m *MockStatusService) Transition(ctx context.Context, requestID int32, target domain.Status, in TransitionInput) (*domain.Request, error) {
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

// recordingDispatcher captures enqueued jobs for assertions.
type recordingDispatcher struct {
	mu   sync.Mutex
	jobs []NotificationJob
}

func (d *recordingDispatcher) Enqueue(job NotificationJob) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jobs = append(d.jobs, job)
}

func (d *recordingDispatcher) Jobs() []NotificationJob {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]NotificationJob, len(d.jobs))
	copy(out, d.jobs)
	return out
}
