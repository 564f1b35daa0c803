package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"go.uber.org/zap"
)

// UpdateComplexRequest leaves a field untouched when it is nil.
type UpdateComplexRequest struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	PhoneNumber   *string `json:"phone_number"`
	SportType     *string `json:"sport_type"`
	OpenTime      *string `json:"open_time"`
	CloseTime     *string `json:"close_time"`
	BankCode      *string `json:"bank_code"`
	AccountNumber *string `json:"account_number"`
	AccountName   *string `json:"account_name"`
	Status        *string `json:"status"`
}

type ComplexDetail struct {
	Complex domain.Complex
	Courts  []domain.Court
}

func (s *CourtService) ListComplexes(ctx context.Context, q domain.ComplexQuery) (*domain.ComplexPage, error) {
	q = q.Normalize()

	items, total, err := s.complexRepo.ListPublic(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list complexes: %w", err)
	}

	return &domain.ComplexPage{Items: items, TotalItems: total, Page: q.Page, PerPage: q.Limit}, nil
}

// ComplexDetail is the public view: inactive complexes are hidden and only
// active courts are listed.
func (s *CourtService) ComplexDetail(ctx context.Context, complexID uuid.UUID) (*ComplexDetail, error) {
	cx, err := s.complexRepo.GetByID(ctx, complexID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: court complex %s", domain.ErrNotFound, complexID)
		}
		return nil, fmt.Errorf("get complex: %w", err)
	}

	if !cx.IsActive() {
		return nil, fmt.Errorf("%w: court complex %s", domain.ErrNotFound, complexID)
	}

	courts, err := s.courtRepo.ListActiveByComplex(ctx, complexID)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}

	return &ComplexDetail{Complex: *cx, Courts: courts}, nil
}

func (s *CourtService) OwnerComplexes(ctx context.Context, p domain.Principal) ([]domain.ComplexSummary, error) {
	if !p.Is(domain.RoleOwner) {
		return nil, fmt.Errorf("%w: owners only", domain.ErrPermissionDenied)
	}

	items, err := s.complexRepo.ListByOwner(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list owner complexes: %w", err)
	}

	return items, nil
}

// OwnedComplexDetail includes inactive courts and banking details.
func (s *CourtService) OwnedComplexDetail(ctx context.Context, p domain.Principal, complexID uuid.UUID) (*ComplexDetail, error) {
	cx, err := s.ownedComplex(ctx, p, complexID)
	if err != nil {
		return nil, err
	}

	courts, err := s.courtRepo.ListByComplex(ctx, complexID)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}

	return &ComplexDetail{Complex: *cx, Courts: courts}, nil
}

func (s *CourtService) UpdateComplex(ctx context.Context, p domain.Principal, complexID uuid.UUID, req UpdateComplexRequest) (*domain.Complex, error) {
	cx, err := s.ownedComplex(ctx, p, complexID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
		}
		cx.Name = name
	}

	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return nil, fmt.Errorf("%w: address cannot be empty", domain.ErrValidation)
		}
		cx.Address = address
	}

	setTrimmed(&cx.City, req.City)
	setTrimmed(&cx.PhoneNumber, req.PhoneNumber)
	setTrimmed(&cx.SportType, req.SportType)
	setTrimmed(&cx.AccountNumber, req.AccountNumber)
	setTrimmed(&cx.AccountName, req.AccountName)
	if req.BankCode != nil {
		cx.BankCode = strings.ToUpper(strings.TrimSpace(*req.BankCode))
	}

	if req.OpenTime != nil {
		if cx.OpenTime, err = domain.ParseTimeOfDay(*req.OpenTime); err != nil {
			return nil, fmt.Errorf("%w: open_time: %v", domain.ErrValidation, err)
		}
	}

	if req.CloseTime != nil {
		if cx.CloseTime, err = domain.ParseTimeOfDay(*req.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: close_time: %v", domain.ErrValidation, err)
		}
	}

	if cx.OpenTime >= cx.CloseTime {
		return nil, fmt.Errorf("%w: open_time must be before close_time", domain.ErrValidation)
	}

	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *req.Status)
		}
		cx.Status = status
	}

	if err := s.complexRepo.Update(ctx, cx); err != nil {
		return nil, fmt.Errorf("update complex: %w", err)
	}

	s.logger.Info("court complex updated",
		zap.String("complex_id", cx.ID.String()),
		zap.String("status", string(cx.Status)),
	)

	purgeComplexGrid(ctx, s.cache, cx.ID, s.logger)

	return cx, nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
