package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"movie-reviews/internal/data/entity"

	"github.com/google/uuid"
)

// memoryReviewRepository is an in-process ReviewRepository used by tests and
// local runs without store credentials. It mirrors the store contract:
// assigned ids, server-side timestamps, newest-first ordering.
type memoryReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]*entity.Review
	order   map[string]uint64 // insertion sequence, tie-breaker for equal timestamps
	seq     uint64
}

func NewMemoryReviewRepository() ReviewRepository {
	return &memoryReviewRepository{
		reviews: make(map[string]*entity.Review),
		order:   make(map[string]uint64),
	}
}

func (r *memoryReviewRepository) Create(_ context.Context, review *entity.Review) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	now := time.Now().UTC()

	stored := *review
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.seq++
	r.reviews[id] = &stored
	r.order[id] = r.seq

	return id, nil
}

func (r *memoryReviewRepository) FindByID(_ context.Context, id string) (*entity.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, nil
	}

	copied := *review
	return &copied, nil
}

func (r *memoryReviewRepository) FindAll(_ context.Context, limit int) ([]*entity.Review, error) {
	return r.find(func(*entity.Review) bool { return true }, limit), nil
}

func (r *memoryReviewRepository) FindByMovieID(_ context.Context, movieID string) ([]*entity.Review, error) {
	return r.find(func(review *entity.Review) bool { return review.MovieID == movieID }, 0), nil
}

func (r *memoryReviewRepository) FindByUserID(_ context.Context, userID string) ([]*entity.Review, error) {
	return r.find(func(review *entity.Review) bool { return review.UserID == userID }, 0), nil
}

func (r *memoryReviewRepository) Update(_ context.Context, id string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[id]
	if !ok {
		return fmt.Errorf("update review %s: no such document", id)
	}

	for path, value := range fields {
		switch path {
		case "rating":
			rating, ok := value.(int)
			if !ok {
				return fmt.Errorf("update review %s: rating must be an int, got %T", id, value)
			}
			review.Rating = rating
		case "body":
			body, ok := value.(string)
			if !ok {
				return fmt.Errorf("update review %s: body must be a string, got %T", id, value)
			}
			review.Body = body
		default:
			return fmt.Errorf("update review %s: unknown field %q", id, path)
		}
	}

	review.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryReviewRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.reviews, id)
	delete(r.order, id)
	return nil
}

func (r *memoryReviewRepository) find(match func(*entity.Review) bool, limit int) []*entity.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entity.Review{}
	for _, review := range r.reviews {
		if match(review) {
			copied := *review
			out = append(out, &copied)
		}
	}

	// Newest first, insertion order breaking timestamp ties.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.order[out[i].ID] > r.order[out[j].ID]
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}
