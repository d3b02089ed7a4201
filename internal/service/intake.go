package service

import (
	"context"
	"fmt"
	"strings"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository"
)

type intakeService struct {
	requestRepo  repository.RequestRepository
	activityRepo repository.ActivityLogRepository
	dispatcher   Dispatcher
}

func NewIntakeService(requestRepo repository.RequestRepository, activityRepo repository.ActivityLogRepository, dispatcher Dispatcher) IntakeService {
	return &intakeService{
		requestRepo:  requestRepo,
		activityRepo: activityRepo,
		dispatcher:   dispatcher,
	}
}

func (s *intakeService) CreateRequest(ctx context.Context, in NewRequestInput) (*domain.Request, error) {
	if err := validateNewRequest(in); err != nil {
		return nil, err
	}

	var expected int32
	for _, it := range in.Items {
		expected += it.MonthlyPriceCents*it.Quantity + it.DepositCents*it.Quantity
	}
	expected += in.DeliveryChargeCents

	req := &domain.Request{
		Kind:                in.Kind,
		Status:              domain.InitialStatus(in.Kind),
		PaymentStatus:       domain.PaymentStatusPending,
		UserID:              in.UserID,
		Email:               strings.TrimSpace(in.Email),
		Phone:               strings.TrimSpace(in.Phone),
		Items:               in.Items,
		DeliveryChargeCents: in.DeliveryChargeCents,
		ExpectedTotalCents:  expected,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	if req.UserID != nil {
		entry := &domain.ActivityLogEntry{
			UserID: *req.UserID,
			Action: domain.ActivityRequestCreated,
			Details: map[string]string{
				"request_id": fmt.Sprintf("%d", req.ID),
				"kind":       string(req.Kind),
			},
		}
		if err := s.activityRepo.Create(ctx, entry); err != nil {
			logger.ErrorContext(ctx, "failed to write activity log entry",
				"user_id", *req.UserID, "request_id", req.ID, "error", err)
		}
	}

	s.dispatcher.Enqueue(NotificationJob{
		To:      req.Email,
		Subject: fmt.Sprintf("We received your request #%d", req.ID),
		Body: fmt.Sprintf("Hello,\n\nWe received your %s request #%d. We will be in touch shortly.\n\nBest regards,\nThe RentNest Team",
			kindLabel(req.Kind), req.ID),
		UserID: req.UserID,
		Attributes: map[string]string{
			"type":       "REQUEST_RECEIVED",
			"request_id": fmt.Sprintf("%d", req.ID),
		},
	})

	return req, nil
}

func (s *intakeService) GetRequest(ctx context.Context, requestID int32) (*domain.Request, error) {
	return s.requestRepo.GetByID(ctx, requestID)
}

func validateNewRequest(in NewRequestInput) error {
	if !in.Kind.Valid() {
		return fmt.Errorf("%w: unknown request kind %q", domain.ErrValidation, in.Kind)
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: contact email is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return fmt.Errorf("%w: contact phone is required", domain.ErrValidation)
	}
	if in.DeliveryChargeCents < 0 {
		return fmt.Errorf("%w: delivery charge must not be negative", domain.ErrValidation)
	}

	furniture := in.Kind == domain.RequestKindFurnitureSell || in.Kind == domain.RequestKindFurnitureRent
	if furniture && len(in.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", domain.ErrValidation)
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.Name) == "" {
			return fmt.Errorf("%w: item name is required", domain.ErrValidation)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: item quantity must be positive", domain.ErrValidation)
		}
		if it.MonthlyPriceCents < 0 || it.DepositCents < 0 {
			return fmt.Errorf("%w: item prices must not be negative", domain.ErrValidation)
		}
	}
	return nil
}
