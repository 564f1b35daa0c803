package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/srgjo27/sportsync/internal/core/ports"
	"go.uber.org/zap"
)

type CreateComplexRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PhoneNumber   string `json:"phone_number"`
	SportType     string `json:"sport_type"`
	OpenTime      string `json:"open_time"`
	CloseTime     string `json:"close_time"`
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

type RateInput struct {
	DayOfWeek    string          `json:"day_of_week"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
}

type CreateCourtRequest struct {
	Name  string      `json:"name"`
	Rates []RateInput `json:"rates"`
}

// UpdateCourtRequest leaves a field untouched when it is nil.
type UpdateCourtRequest struct {
	Name   *string     `json:"name"`
	Status *string     `json:"status"`
	Rates  []RateInput `json:"rates"`
}

type CourtView struct {
	Court       domain.Court      `json:"court"`
	ComplexID   uuid.UUID         `json:"complexId"`
	ComplexName string            `json:"complexName"`
	Rates       []domain.RateRule `json:"rates"`
}

type CourtService struct {
	complexRepo ports.ComplexRepository
	courtRepo   ports.CourtRepository
	rateRepo    ports.RateRepository
	cache       *redis.Client
	clock       ports.Clock
	logger      *zap.Logger
}

func NewCourtService(
	complexRepo ports.ComplexRepository,
	courtRepo ports.CourtRepository,
	rateRepo ports.RateRepository,
	cache *redis.Client,
	clock ports.Clock,
	logger *zap.Logger,
) *CourtService {
	return &CourtService{
		complexRepo: complexRepo,
		courtRepo:   courtRepo,
		rateRepo:    rateRepo,
		cache:       cache,
		clock:       clock,
		logger:      logger,
	}
}

func (s *CourtService) CreateComplex(ctx context.Context, p domain.Principal, req CreateComplexRequest) (*domain.Complex, error) {
	if !p.Is(domain.RoleOwner) {
		return nil, fmt.Errorf("%w: only owners can register a complex", domain.ErrPermissionDenied)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.Address) == "" {
		return nil, fmt.Errorf("%w: name and address are required", domain.ErrValidation)
	}

	open, err := domain.ParseTimeOfDay(req.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: open_time: %v", domain.ErrValidation, err)
	}

	closeAt, err := domain.ParseTimeOfDay(req.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: close_time: %v", domain.ErrValidation, err)
	}

	if open >= closeAt {
		return nil, fmt.Errorf("%w: open_time must be before close_time", domain.ErrValidation)
	}

	cx := &domain.Complex{
		ID:            uuid.New(),
		OwnerID:       p.UserID,
		Name:          name,
		Address:       strings.TrimSpace(req.Address),
		City:          strings.TrimSpace(req.City),
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		SportType:     strings.TrimSpace(req.SportType),
		OpenTime:      open,
		CloseTime:     closeAt,
		BankCode:      strings.ToUpper(strings.TrimSpace(req.BankCode)),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		AccountName:   strings.TrimSpace(req.AccountName),
		Rating:        decimal.Zero,
		Status:        domain.StatusActive,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.complexRepo.Create(ctx, cx); err != nil {
		return nil, fmt.Errorf("create complex: %w", err)
	}

	s.logger.Info("court complex created",
		zap.String("complex_id", cx.ID.String()),
		zap.String("owner_id", p.UserID.String()),
	)

	return cx, nil
}

func (s *CourtService) CreateCourt(ctx context.Context, p domain.Principal, complexID uuid.UUID, req CreateCourtRequest) (*CourtView, error) {
	cx, err := s.ownedComplex(ctx, p, complexID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: court name is required", domain.ErrValidation)
	}

	if len(req.Rates) == 0 {
		return nil, fmt.Errorf("%w: at least one rate is required", domain.ErrInvalidRateTable)
	}

	court := &domain.Court{
		ID:        uuid.New(),
		ComplexID: cx.ID,
		Name:      name,
		Status:    domain.StatusActive,
	}

	rules, err := buildRateTable(court.ID, req.Rates)
	if err != nil {
		return nil, err
	}

	if err := s.courtRepo.CreateWithRates(ctx, court, rules); err != nil {
		return nil, fmt.Errorf("create court: %w", err)
	}

	s.logger.Info("court created",
		zap.String("court_id", court.ID.String()),
		zap.String("complex_id", cx.ID.String()),
		zap.Int("rates", len(rules)),
	)

	purgeComplexGrid(ctx, s.cache, cx.ID, s.logger)

	return &CourtView{Court: *court, ComplexID: cx.ID, ComplexName: cx.Name, Rates: rules}, nil
}

func (s *CourtService) UpdateCourt(ctx context.Context, p domain.Principal, courtID uuid.UUID, req UpdateCourtRequest) (*CourtView, error) {
	venue, err := s.ownedCourt(ctx, p, courtID)
	if err != nil {
		return nil, err
	}

	court := venue.Court

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: court name cannot be empty", domain.ErrValidation)
		}
		court.Name = name
	}

	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *req.Status)
		}
		court.Status = status
	}

	var rules []domain.RateRule
	if req.Rates != nil {
		if len(req.Rates) == 0 {
			return nil, fmt.Errorf("%w: at least one rate is required", domain.ErrInvalidRateTable)
		}
		if rules, err = buildRateTable(court.ID, req.Rates); err != nil {
			return nil, err
		}
	}

	if err := s.courtRepo.Update(ctx, &court, rules); err != nil {
		return nil, fmt.Errorf("update court: %w", err)
	}

	if rules == nil {
		if rules, err = s.rateRepo.ListByCourt(ctx, court.ID); err != nil {
			return nil, fmt.Errorf("list rates: %w", err)
		}
	}

	s.logger.Info("court updated",
		zap.String("court_id", court.ID.String()),
		zap.Bool("rates_replaced", req.Rates != nil),
	)

	purgeComplexGrid(ctx, s.cache, venue.Complex.ID, s.logger)

	return &CourtView{Court: court, ComplexID: venue.Complex.ID, ComplexName: venue.Complex.Name, Rates: rules}, nil
}

// DeleteCourt removes a court that has never been booked. A court with
// history has to be deactivated instead.
func (s *CourtService) DeleteCourt(ctx context.Context, p domain.Principal, courtID uuid.UUID) error {
	venue, err := s.ownedCourt(ctx, p, courtID)
	if err != nil {
		return err
	}

	if err := s.courtRepo.Delete(ctx, courtID); err != nil {
		if errors.Is(err, domain.ErrCourtInUse) {
			return fmt.Errorf("%w: deactivate the court instead", err)
		}
		return fmt.Errorf("delete court: %w", err)
	}

	s.logger.Info("court deleted",
		zap.String("court_id", courtID.String()),
		zap.String("complex_id", venue.Complex.ID.String()),
	)

	purgeComplexGrid(ctx, s.cache, venue.Complex.ID, s.logger)

	return nil
}

func (s *CourtService) GetCourt(ctx context.Context, courtID uuid.UUID) (*CourtView, error) {
	venue, err := s.courtRepo.GetWithComplex(ctx, courtID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: court %s", domain.ErrNotFound, courtID)
		}
		return nil, fmt.Errorf("get court: %w", err)
	}

	rules, err := s.rateRepo.ListByCourt(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}

	return &CourtView{Court: venue.Court, ComplexID: venue.Complex.ID, ComplexName: venue.Complex.Name, Rates: rules}, nil
}

func (s *CourtService) ownedComplex(ctx context.Context, p domain.Principal, complexID uuid.UUID) (*domain.Complex, error) {
	cx, err := s.complexRepo.GetByID(ctx, complexID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: court complex %s", domain.ErrNotFound, complexID)
		}
		return nil, fmt.Errorf("get complex: %w", err)
	}

	if !p.Is(domain.RoleOwner) || cx.OwnerID != p.UserID {
		return nil, fmt.Errorf("%w: not the owner of this complex", domain.ErrPermissionDenied)
	}

	return cx, nil
}

func (s *CourtService) ownedCourt(ctx context.Context, p domain.Principal, courtID uuid.UUID) (*domain.CourtWithComplex, error) {
	venue, err := s.courtRepo.GetWithComplex(ctx, courtID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: court %s", domain.ErrNotFound, courtID)
		}
		return nil, fmt.Errorf("get court: %w", err)
	}

	if !p.Is(domain.RoleOwner) || venue.Complex.OwnerID != p.UserID {
		return nil, fmt.Errorf("%w: not the owner of this court", domain.ErrPermissionDenied)
	}

	return venue, nil
}

func buildRateTable(courtID uuid.UUID, inputs []RateInput) ([]domain.RateRule, error) {
	rules := make([]domain.RateRule, 0, len(inputs))

	for i, in := range inputs {
		start, err := domain.ParseTimeOfDay(in.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: rate %d: %v", domain.ErrInvalidRateTable, i+1, err)
		}

		end, err := domain.ParseTimeOfDay(in.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: rate %d: %v", domain.ErrInvalidRateTable, i+1, err)
		}

		day := domain.DaySelector(in.DayOfWeek)
		if in.DayOfWeek == "" {
			day = domain.AllDays
		}

		rules = append(rules, domain.RateRule{
			ID:           uuid.New(),
			CourtID:      courtID,
			DayOfWeek:    day,
			StartTime:    start,
			EndTime:      end,
			PricePerHour: in.PricePerHour,
		})
	}

	if err := domain.ValidateRateTable(rules); err != nil {
		return nil, err
	}

	domain.SortRules(rules)
	return rules, nil
}
