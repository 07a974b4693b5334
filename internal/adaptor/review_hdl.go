package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"
	"movie-reviews/internal/usecase"
	"movie-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ident, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed: "+utils.FormatValidationErrors(validationErrors))
		return
	}

	id, err := h.service.CreateReview(r.Context(), ident, &req)
	if err != nil {
		h.handleServiceError(w, err, "create review")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, response.CreateReviewResponse{
		ID:      id,
		Message: "Review created",
	})
}

// ListReviews handles GET /api/reviews (public)
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListReviews(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list reviews")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, reviews)
}

// ListMovieReviews handles GET /api/reviews/movie/{movieId} (public)
func (h *ReviewHandler) ListMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieId")

	reviews, err := h.service.ListMovieReviews(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "list movie reviews")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, reviews)
}

// ListUserReviews handles GET /api/reviews/user/{userId} (public)
func (h *ReviewHandler) ListUserReviews(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	reviews, err := h.service.ListUserReviews(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "list user reviews")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, reviews)
}

// GetReview handles GET /api/reviews/single/{reviewId} (public)
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewId")

	review, err := h.service.GetReview(r.Context(), reviewID)
	if err != nil {
		h.handleServiceError(w, err, "get review")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, review)
}

// UpdateReview handles PUT /api/reviews/{id} (protected)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ident, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID := chi.URLParam(r, "id")

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	// Shape validation runs before any store round-trip, so an
	// out-of-range rating is 400 for every caller.
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed: "+utils.FormatValidationErrors(validationErrors))
		return
	}

	if err := h.service.UpdateReview(r.Context(), reviewID, ident.UserID, &req); err != nil {
		h.handleServiceError(w, err, "update review")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, response.UpdateReviewResponse{
		OK:       true,
		Message:  "Review updated",
		ReviewID: reviewID,
	})
}

// DeleteReview handles DELETE /api/reviews/{id} (protected)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ident, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID := chi.URLParam(r, "id")

	if err := h.service.DeleteReview(r.Context(), reviewID, ident.UserID); err != nil {
		h.handleServiceError(w, err, "delete review")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, response.DeleteReviewResponse{
		OK:        true,
		Message:   "Review deleted",
		DeletedID: reviewID,
	})
}

// handleServiceError maps service errors to response codes. Anything that is
// not an expected outcome stays generic; detail goes to the logs only.
func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrReviewNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Review not found")

	case errors.Is(err, usecase.ErrNotOwner):
		h.log.Warn(operation+" failed - not owner", zap.Error(err))
		utils.ResponseForbidden(w, "You do not own this review")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
