package request

type CreateReviewRequest struct {
	MovieID    string `json:"movieId" validate:"required"`
	MovieTitle string `json:"movieTitle"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Body       string `json:"body"`
}

type UpdateReviewRequest struct {
	Rating *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Body   *string `json:"body,omitempty"`
}
