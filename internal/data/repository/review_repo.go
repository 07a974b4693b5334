package repository

import (
	"context"
	"fmt"

	"movie-reviews/internal/data/entity"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ReviewRepository interface {
	// Create inserts a new review and returns the store-assigned id.
	// Timestamps are assigned by the store, not the caller.
	Create(ctx context.Context, review *entity.Review) (string, error)

	// FindByID returns (nil, nil) when the id resolves to no document.
	FindByID(ctx context.Context, id string) (*entity.Review, error)

	FindAll(ctx context.Context, limit int) ([]*entity.Review, error)
	FindByMovieID(ctx context.Context, movieID string) ([]*entity.Review, error)
	FindByUserID(ctx context.Context, userID string) ([]*entity.Review, error)

	// Update applies only the given fields and refreshes updatedAt.
	Update(ctx context.Context, id string, fields map[string]any) error

	Delete(ctx context.Context, id string) error
}

type reviewRepository struct {
	col *firestore.CollectionRef
	log *zap.Logger
}

func NewReviewRepository(client *firestore.Client, collection string, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		col: client.Collection(collection),
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) (string, error) {
	doc := r.col.NewDoc()

	// Zero-valued createdAt/updatedAt become server timestamps via the
	// serverTimestamp tag on the entity.
	if _, err := doc.Create(ctx, review); err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("movie_id", review.MovieID),
			zap.String("user_id", review.UserID),
		)
		return "", fmt.Errorf("create review for movie %s by user %s: %w",
			review.MovieID, review.UserID, err)
	}

	return doc.ID, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	snap, err := r.col.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id, err)
	}

	review, err := snapToReview(snap)
	if err != nil {
		return nil, fmt.Errorf("decode review %s: %w", id, err)
	}

	return review, nil
}

func (r *reviewRepository) FindAll(ctx context.Context, limit int) ([]*entity.Review, error) {
	query := r.col.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	reviews, err := r.collect(query.Documents(ctx))
	if err != nil {
		r.log.Error("Failed to list reviews", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID string) ([]*entity.Review, error) {
	query := r.col.
		Where("movieId", "==", movieID).
		OrderBy("createdAt", firestore.Desc)

	reviews, err := r.collect(query.Documents(ctx))
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("find reviews by movie ID %s: %w", movieID, err)
	}

	return reviews, nil
}

func (r *reviewRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Review, error) {
	query := r.col.
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	reviews, err := r.collect(query.Documents(ctx))
	if err != nil {
		r.log.Error("Failed to find reviews by user ID",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find reviews by user ID %s: %w", userID, err)
	}

	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})

	if _, err := r.col.Doc(id).Update(ctx, updates); err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", id),
		)
		return fmt.Errorf("update review %s: %w", id, err)
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col.Doc(id).Delete(ctx); err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id),
		)
		return fmt.Errorf("delete review %s: %w", id, err)
	}

	return nil
}

func (r *reviewRepository) collect(iter *firestore.DocumentIterator) ([]*entity.Review, error) {
	defer iter.Stop()

	reviews := []*entity.Review{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		review, err := snapToReview(snap)
		if err != nil {
			return nil, fmt.Errorf("decode review %s: %w", snap.Ref.ID, err)
		}

		reviews = append(reviews, review)
	}

	return reviews, nil
}

func snapToReview(snap *firestore.DocumentSnapshot) (*entity.Review, error) {
	var review entity.Review
	if err := snap.DataTo(&review); err != nil {
		return nil, err
	}
	review.ID = snap.Ref.ID
	return &review, nil
}
