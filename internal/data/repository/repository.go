package repository

import (
	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
)

type Repository struct {
	Review ReviewRepository
}

func NewRepository(client *firestore.Client, collection string, log *zap.Logger) *Repository {
	return &Repository{
		Review: NewReviewRepository(client, collection, log),
	}
}
