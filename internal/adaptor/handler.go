package adaptor

import (
	"movie-reviews/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Review *ReviewHandler
	Health *HealthHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Review: NewReviewHandler(service.Review, log),
		Health: NewHealthHandler(log),
	}
}
