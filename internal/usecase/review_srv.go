package usecase

import (
	"context"
	"errors"
	"fmt"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"
	"movie-reviews/pkg/token"

	"go.uber.org/zap"
)

// Expected outcomes, not faults. Handlers map these to 404/403.
var (
	ErrReviewNotFound = errors.New("review not found")
	ErrNotOwner       = errors.New("review does not belong to this user")
)

type ReviewService interface {
	CreateReview(ctx context.Context, ident *token.Identity, req *request.CreateReviewRequest) (string, error)
	ListReviews(ctx context.Context) ([]response.ReviewResponse, error)
	ListMovieReviews(ctx context.Context, movieID string) ([]response.ReviewResponse, error)
	ListUserReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error)
	GetReview(ctx context.Context, reviewID string) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID, userID string, req *request.UpdateReviewRequest) error
	DeleteReview(ctx context.Context, reviewID, userID string) error
}

type reviewService struct {
	repo    *repository.Repository
	listCap int
	log     *zap.Logger
}

func NewReviewService(repo *repository.Repository, listCap int, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:    repo,
		listCap: listCap,
		log:     log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, ident *token.Identity, req *request.CreateReviewRequest) (string, error) {
	title := req.MovieTitle
	if title == "" {
		title = "Movie " + req.MovieID
	}

	// Identity fields come from the verified caller, never the body.
	review := &entity.Review{
		MovieID:    req.MovieID,
		MovieTitle: title,
		Rating:     req.Rating,
		Body:       req.Body,
		UserID:     ident.UserID,
		UserEmail:  ident.Email,
	}

	id, err := s.repo.Review.Create(ctx, review)
	if err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", ident.UserID),
			zap.String("movie_id", req.MovieID),
		)
		return "", fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", id),
		zap.String("user_id", ident.UserID),
		zap.String("movie_id", req.MovieID),
		zap.Int("rating", req.Rating),
	)

	return id, nil
}

func (s *reviewService) ListReviews(ctx context.Context) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindAll(ctx, s.listCap)
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err))
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) ListMovieReviews(ctx context.Context, movieID string) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByMovieID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to list movie reviews",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("list reviews for movie %s: %w", movieID, err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) ListUserReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list user reviews",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("list reviews for user %s: %w", userID, err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) GetReview(ctx context.Context, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		s.log.Error("Failed to get review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return nil, fmt.Errorf("get review %s: %w", reviewID, err)
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID, userID string, req *request.UpdateReviewRequest) error {
	review, err := s.fetchOwned(ctx, reviewID, userID, "update")
	if err != nil {
		return err
	}

	// Apply only the fields present in the request; updatedAt is refreshed
	// by the repository on every successful update.
	fields := make(map[string]any)
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.Body != nil {
		fields["body"] = *req.Body
	}

	if err := s.repo.Review.Update(ctx, reviewID, fields); err != nil {
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", reviewID),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("update review %s: %w", reviewID, err)
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID),
		zap.String("movie_id", review.MovieID),
	)

	return nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID, userID string) error {
	review, err := s.fetchOwned(ctx, reviewID, userID, "delete")
	if err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", reviewID),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("delete review %s: %w", reviewID, err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID),
		zap.String("movie_id", review.MovieID),
	)

	return nil
}

// fetchOwned loads a review and checks ownership: not-found first, then the
// owner equality check. Read and mutation are two round-trips; a concurrent
// writer on the same document wins by last write.
func (s *reviewService) fetchOwned(ctx context.Context, reviewID, userID, operation string) (*entity.Review, error) {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		s.log.Error("Failed to find review for "+operation,
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return nil, fmt.Errorf("find review %s: %w", reviewID, err)
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	if review.UserID != userID {
		s.log.Warn("Ownership check failed for "+operation,
			zap.String("review_id", reviewID),
			zap.String("owner_id", review.UserID),
			zap.String("caller_id", userID),
		)
		return nil, ErrNotOwner
	}

	return review, nil
}
