package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/srgjo27/sportsync/internal/core/ports"
	"go.uber.org/zap"
)

const MaxReviewComment = 2000

type CreateReviewRequest struct {
	ComplexID string `json:"complex_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// UpdateReviewRequest leaves a field untouched when it is nil.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type ReviewService struct {
	reviews     ports.ReviewRepository
	complexRepo ports.ComplexRepository
	clock       ports.Clock
	logger      *zap.Logger
}

func NewReviewService(
	reviews ports.ReviewRepository,
	complexRepo ports.ComplexRepository,
	clock ports.Clock,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{reviews: reviews, complexRepo: complexRepo, clock: clock, logger: logger}
}

// Create accepts one review per customer and complex, and only from a
// customer who has played there.
func (s *ReviewService) Create(ctx context.Context, p domain.Principal, req CreateReviewRequest) (*domain.Review, error) {
	if !p.Is(domain.RoleCustomer) {
		return nil, fmt.Errorf("%w: only customers can write reviews", domain.ErrPermissionDenied)
	}

	complexID, err := parseID(req.ComplexID, "court complex")
	if err != nil {
		return nil, err
	}

	comment, err := checkReview(req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	cx, err := s.complexRepo.GetByID(ctx, complexID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: court complex %s", domain.ErrNotFound, complexID)
		}
		return nil, fmt.Errorf("get complex: %w", err)
	}

	visited, err := s.reviews.HasVisited(ctx, p.UserID, complexID)
	if err != nil {
		return nil, fmt.Errorf("check visit: %w", err)
	}

	if !visited {
		return nil, fmt.Errorf("%w: you can only review complexes you have booked", domain.ErrPermissionDenied)
	}

	review := &domain.Review{
		ID:           uuid.New(),
		ComplexID:    complexID,
		ComplexName:  cx.Name,
		CustomerID:   p.UserID,
		CustomerName: p.Name,
		Rating:       req.Rating,
		Comment:      comment,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, domain.ErrAlreadyReviewed) {
			return nil, err
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.Info("review created",
		zap.String("review_id", review.ID.String()),
		zap.String("complex_id", complexID.String()),
		zap.Int("rating", review.Rating),
	)

	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, p domain.Principal, reviewID uuid.UUID, req UpdateReviewRequest) (*domain.Review, error) {
	review, err := s.load(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if review.CustomerID != p.UserID {
		return nil, fmt.Errorf("%w: not your review", domain.ErrPermissionDenied)
	}

	rating, comment := review.Rating, review.Comment
	if req.Rating != nil {
		rating = *req.Rating
	}
	if req.Comment != nil {
		comment = *req.Comment
	}

	if comment, err = checkReview(rating, comment); err != nil {
		return nil, err
	}
	review.Rating, review.Comment = rating, comment

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.logger.Info("review updated", zap.String("review_id", reviewID.String()))

	return review, nil
}

// Delete is open to the author and to admins.
func (s *ReviewService) Delete(ctx context.Context, p domain.Principal, reviewID uuid.UUID) error {
	review, err := s.load(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.CustomerID != p.UserID && !p.Is(domain.RoleAdmin) {
		return fmt.Errorf("%w: not your review", domain.ErrPermissionDenied)
	}

	if err := s.reviews.Delete(ctx, review); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.logger.Info("review deleted",
		zap.String("review_id", reviewID.String()),
		zap.String("by", p.UserID.String()),
	)

	return nil
}

func (s *ReviewService) ListForComplex(ctx context.Context, complexID uuid.UUID, q domain.ReviewQuery) (*domain.ReviewPage, error) {
	q = q.Normalize()

	if _, err := s.complexRepo.GetByID(ctx, complexID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: court complex %s", domain.ErrNotFound, complexID)
		}
		return nil, fmt.Errorf("get complex: %w", err)
	}

	items, total, err := s.reviews.ListByComplex(ctx, complexID, q)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	summary, err := s.reviews.Summary(ctx, complexID)
	if err != nil {
		return nil, fmt.Errorf("review summary: %w", err)
	}

	return &domain.ReviewPage{
		Items:      items,
		Summary:    *summary,
		TotalItems: total,
		Page:       q.Page,
		PerPage:    q.Limit,
	}, nil
}

func (s *ReviewService) ListMine(ctx context.Context, p domain.Principal) ([]domain.Review, error) {
	items, err := s.reviews.ListByCustomer(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return items, nil
}

func (s *ReviewService) load(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: review %s", domain.ErrNotFound, reviewID)
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

func checkReview(rating int, comment string) (string, error) {
	if !domain.ValidRating(rating) {
		return "", fmt.Errorf("%w: rating must be between %d and %d", domain.ErrValidation, domain.MinRating, domain.MaxRating)
	}

	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > MaxReviewComment {
		return "", fmt.Errorf("%w: comment is longer than %d characters", domain.ErrValidation, MaxReviewComment)
	}

	return comment, nil
}
