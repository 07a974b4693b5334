package usecase

import (
	"movie-reviews/internal/data/repository"
	"movie-reviews/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Review ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Review: NewReviewService(repo, config.Reviews.ListCap, log),
	}
}
