package entity

import (
	"time"
)

// Review is a single movie review document. The document id is assigned by
// the store and kept outside the stored fields.
type Review struct {
	ID         string    `json:"id" firestore:"-"`
	MovieID    string    `json:"movieId" firestore:"movieId"`
	MovieTitle string    `json:"movieTitle" firestore:"movieTitle"`
	Rating     int       `json:"rating" firestore:"rating"` // 1-5
	Body       string    `json:"body" firestore:"body"`
	UserID     string    `json:"userId" firestore:"userId"`
	UserEmail  string    `json:"userEmail" firestore:"userEmail"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt  time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
