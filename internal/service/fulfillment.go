package service

import (
	"context"
	"fmt"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository"
)

type fulfillmentService struct {
	rentalRepo repository.RentalRepository
	dispatcher Dispatcher
}

func NewFulfillmentService(rentalRepo repository.RentalRepository, dispatcher Dispatcher) FulfillmentService {
	return &fulfillmentService{
		rentalRepo: rentalRepo,
		dispatcher: dispatcher,
	}
}

func (s *fulfillmentService) Materialize(ctx context.Context, req *domain.Request) (*domain.Rental, error) {
	if !req.Kind.Rentable() {
		return nil, fmt.Errorf("%w: kind %s does not materialize rentals", domain.ErrValidation, req.Kind)
	}
	if req.MaterializedRentalID != nil {
		return nil, domain.ErrMaterializationConflict
	}

	items := make([]domain.RentalItem, len(req.Items))
	var monthly, deposit int32
	for i, it := range req.Items {
		monthly += it.MonthlyPriceCents * it.Quantity
		deposit += it.DepositCents * it.Quantity
		items[i] = domain.RentalItem{
			Name:              it.Name,
			Quantity:          it.Quantity,
			MonthlyPriceCents: it.MonthlyPriceCents,
			DepositCents:      it.DepositCents,
		}
	}

	rental := &domain.Rental{
		RequestID:           req.ID,
		UserID:              req.UserID,
		Email:               req.Email,
		Items:               items,
		TotalMonthlyCents:   monthly,
		TotalDepositCents:   deposit,
		DeliveryChargeCents: req.DeliveryChargeCents,
		TotalAmountCents:    monthly + deposit + req.DeliveryChargeCents,
	}

	created, err := s.rentalRepo.CreateForRequest(ctx, rental)
	if err != nil {
		return nil, err
	}
	if !created {
		// A concurrent re-delivery of the same Delivered transition won the
		// check-and-set. Nothing to do.
		logger.InfoContext(ctx, "request already materialized, skipping", "request_id", req.ID)
		return nil, domain.ErrMaterializationConflict
	}

	req.MaterializedRentalID = &rental.ID
	logger.InfoContext(ctx, "rental materialized",
		"request_id", req.ID, "rental_id", rental.ID, "total_amount_cents", rental.TotalAmountCents)

	s.dispatcher.Enqueue(NotificationJob{
		To:      req.Email,
		Subject: fmt.Sprintf("Your rental #%d is active", rental.ID),
		Body: fmt.Sprintf("Hello,\n\nYour furniture has been delivered and rental #%d is now active.\nMonthly amount: $%.2f, deposit: $%.2f, total: $%.2f.\n\nBest regards,\nThe RentNest Team",
			rental.ID,
			float64(rental.TotalMonthlyCents)/100.0,
			float64(rental.TotalDepositCents)/100.0,
			float64(rental.TotalAmountCents)/100.0),
		UserID: req.UserID,
		Attributes: map[string]string{
			"type":       "RENTAL_ACTIVATED",
			"rental_id":  fmt.Sprintf("%d", rental.ID),
			"request_id": fmt.Sprintf("%d", req.ID),
		},
	})

	return rental, nil
}

func (s *fulfillmentService) GetRental(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, rentalID)
}
