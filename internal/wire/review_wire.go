package wire

import (
	"movie-reviews/internal/adaptor"
	"movie-reviews/pkg/middleware"
	"movie-reviews/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	verifier token.Verifier,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/reviews - List latest reviews (capped)
	r.Get("/api/reviews", reviewHandler.ListReviews)

	// GET /api/reviews/movie/{movieId} - List reviews for a movie
	r.Get("/api/reviews/movie/{movieId}", reviewHandler.ListMovieReviews)

	// GET /api/reviews/user/{userId} - List reviews by a user
	r.Get("/api/reviews/user/{userId}", reviewHandler.ListUserReviews)

	// GET /api/reviews/single/{reviewId} - Fetch one review
	r.Get("/api/reviews/single/{reviewId}", reviewHandler.GetReview)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(verifier, log))

		// POST /api/reviews - Create new review
		r.Post("/api/reviews", reviewHandler.CreateReview)

		// PUT /api/reviews/{id} - Update review (owner only)
		r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)

		// DELETE /api/reviews/{id} - Delete review (owner only)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
	})
}
