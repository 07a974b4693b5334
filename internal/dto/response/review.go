package response

import (
	"time"

	"movie-reviews/internal/data/entity"
)

type ReviewResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movieId"`
	MovieTitle string    `json:"movieTitle"`
	Rating     int       `json:"rating"`
	Body       string    `json:"body"`
	UserID     string    `json:"userId"`
	UserEmail  string    `json:"userEmail"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateReviewResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type UpdateReviewResponse struct {
	OK       bool   `json:"ok"`
	Message  string `json:"message"`
	ReviewID string `json:"reviewId"`
}

type DeleteReviewResponse struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	DeletedID string `json:"deletedId"`
}

type HealthResponse struct {
	OK        bool      `json:"ok"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Helper converters
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID,
		MovieID:    review.MovieID,
		MovieTitle: review.MovieTitle,
		Rating:     review.Rating,
		Body:       review.Body,
		UserID:     review.UserID,
		UserEmail:  review.UserEmail,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
}

// ReviewsToResponse always returns a non-nil slice so list endpoints
// serialize as [] instead of null.
func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = ReviewToResponse(review)
	}
	return out
}
