package service

import (
	"context"
	"fmt"
	"sort"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/repository"
)

type identityService struct {
	requestRepo repository.RequestRepository
	rentalRepo  repository.RentalRepository
}

func NewIdentityService(requestRepo repository.RequestRepository, rentalRepo repository.RentalRepository) IdentityService {
	return &identityService{
		requestRepo: requestRepo,
		rentalRepo:  rentalRepo,
	}
}

func (s *identityService) Resolve(ctx context.Context, hint domain.IdentityHint) (*domain.OwnedRecords, error) {
	if hint.UserID == nil && hint.Email == "" {
		return nil, fmt.Errorf("%w: identity hint needs a user id or an email", domain.ErrValidation)
	}

	requestIDs, err := s.requestRepo.ListIDsByIdentity(ctx, hint.UserID, hint.Email)
	if err != nil {
		return nil, err
	}
	rentalIDs, err := s.rentalRepo.ListIDsByIdentity(ctx, hint.UserID, hint.Email)
	if err != nil {
		return nil, err
	}

	return &domain.OwnedRecords{
		RequestIDs: dedupe(requestIDs),
		RentalIDs:  dedupe(rentalIDs),
	}, nil
}

func dedupe(ids []int32) []int32 {
	seen := make(map[int32]struct{}, len(ids))
	out := make([]int32, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
