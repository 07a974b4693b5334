package adaptor_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/dto/response"
	"movie-reviews/internal/wire"
	"movie-reviews/pkg/token"
	"movie-reviews/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// staticVerifier resolves fixed tokens for handler tests.
type staticVerifier map[string]*token.Identity

func (v staticVerifier) Verify(_ context.Context, tok string) (*token.Identity, error) {
	ident, ok := v[tok]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return ident, nil
}

const (
	aliceToken = "alice-token"
	bobToken   = "bob-token"
)

func buildTestApp(tb testing.TB) (http.Handler, *repository.Repository) {
	tb.Helper()

	repo := &repository.Repository{Review: repository.NewMemoryReviewRepository()}
	verifier := staticVerifier{
		aliceToken: {UserID: "alice", Email: "alice@example.com"},
		bobToken:   {UserID: "bob", Email: "bob@example.com"},
	}
	config := &utils.Config{
		Reviews: utils.ReviewsConfig{Collection: "reviews", ListCap: 50},
	}

	app := wire.Wiring(repo, verifier, config, zap.NewNop())
	return app.Router, repo
}

func doRequest(tb testing.TB, handler http.Handler, method, path, bearer string, body any) *httptest.ResponseRecorder {
	tb.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(body)
		require.NoError(tb, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func createReview(tb testing.TB, handler http.Handler, bearer string, body any) string {
	tb.Helper()

	rec := doRequest(tb, handler, http.MethodPost, "/api/reviews", bearer, body)
	require.Equal(tb, http.StatusOK, rec.Code, "create review: %s", rec.Body.String())

	var resp response.CreateReviewResponse
	require.NoError(tb, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(tb, resp.ID)
	return resp.ID
}

func TestCreateAndGetReview(t *testing.T) {
	handler, _ := buildTestApp(t)

	id := createReview(t, handler, aliceToken, map[string]any{
		"movieId": "m1",
		"rating":  5,
		"body":    "great",
	})

	rec := doRequest(t, handler, http.MethodGet, "/api/reviews/single/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var review response.ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &review))
	require.Equal(t, id, review.ID)
	require.Equal(t, "m1", review.MovieID)
	require.Equal(t, 5, review.Rating)
	require.Equal(t, "great", review.Body)
	require.Equal(t, "alice", review.UserID)
	require.Equal(t, "alice@example.com", review.UserEmail)
	require.False(t, review.CreatedAt.IsZero())
	require.False(t, review.UpdatedAt.IsZero())
}

func TestCreateReviewDefaultsTitle(t *testing.T) {
	handler, _ := buildTestApp(t)

	id := createReview(t, handler, aliceToken, map[string]any{
		"movieId": "m42",
		"rating":  3,
	})

	rec := doRequest(t, handler, http.MethodGet, "/api/reviews/single/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var review response.ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &review))
	require.Equal(t, "Movie m42", review.MovieTitle)
	require.Equal(t, "", review.Body)
}

func TestCreateReviewValidation(t *testing.T) {
	handler, _ := buildTestApp(t)

	tests := []struct {
		name     string
		bearer   string
		body     any
		wantCode int
	}{
		{"missing auth header", "", map[string]any{"movieId": "m1", "rating": 3}, http.StatusUnauthorized},
		{"unknown token", "nope", map[string]any{"movieId": "m1", "rating": 3}, http.StatusUnauthorized},
		{"missing movieId", aliceToken, map[string]any{"rating": 3}, http.StatusBadRequest},
		{"missing rating", aliceToken, map[string]any{"movieId": "m1"}, http.StatusBadRequest},
		{"rating too low", aliceToken, map[string]any{"movieId": "m1", "rating": 0}, http.StatusBadRequest},
		{"rating too high", aliceToken, map[string]any{"movieId": "m1", "rating": 6}, http.StatusBadRequest},
		{"non-numeric rating", aliceToken, `{"movieId":"m1","rating":"five"}`, http.StatusBadRequest},
		{"garbage body", aliceToken, `{not json`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodPost, "/api/reviews", tt.bearer, tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			var resp utils.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotEmpty(t, resp.Error)
		})
	}

	for rating := 1; rating <= 5; rating++ {
		t.Run(fmt.Sprintf("rating %d accepted", rating), func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodPost, "/api/reviews", aliceToken, map[string]any{
				"movieId": "m1",
				"rating":  rating,
			})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		})
	}
}

func TestListReviewsCapAndOrder(t *testing.T) {
	handler, repo := buildTestApp(t)

	var lastID string
	for i := 0; i < 55; i++ {
		id, err := repo.Review.Create(context.Background(), &entity.Review{
			MovieID:    fmt.Sprintf("m%d", i),
			MovieTitle: fmt.Sprintf("Movie m%d", i),
			Rating:     (i % 5) + 1,
			UserID:     "alice",
		})
		require.NoError(t, err)
		lastID = id
	}

	rec := doRequest(t, handler, http.MethodGet, "/api/reviews", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []response.ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 50)
	require.Equal(t, lastID, reviews[0].ID, "newest review comes first")

	for i := 1; i < len(reviews); i++ {
		require.False(t, reviews[i-1].CreatedAt.Before(reviews[i].CreatedAt),
			"reviews must be ordered by creation time descending")
	}
}

func TestListReviewsEmpty(t *testing.T) {
	handler, _ := buildTestApp(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/reviews", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestListReviewsByMovie(t *testing.T) {
	handler, _ := buildTestApp(t)

	first := createReview(t, handler, aliceToken, map[string]any{"movieId": "m1", "rating": 4})
	second := createReview(t, handler, bobToken, map[string]any{"movieId": "m1", "rating": 2})
	createReview(t, handler, aliceToken, map[string]any{"movieId": "m2", "rating": 5})

	rec := doRequest(t, handler, http.MethodGet, "/api/reviews/movie/m1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []response.ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 2)
	require.Equal(t, second, reviews[0].ID)
	require.Equal(t, first, reviews[1].ID)
	for _, review := range reviews {
		require.Equal(t, "m1", review.MovieID)
	}
}

func TestListReviewsByUser(t *testing.T) {
	handler, _ := buildTestApp(t)

	createReview(t, handler, aliceToken, map[string]any{"movieId": "m1", "rating": 4})
	createReview(t, handler, aliceToken, map[string]any{"movieId": "m2", "rating": 5})
	createReview(t, handler, bobToken, map[string]any{"movieId": "m1", "rating": 1})

	rec := doRequest(t, handler, http.MethodGet, "/api/reviews/user/alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []response.ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 2)
	for _, review := range reviews {
		require.Equal(t, "alice", review.UserID)
	}
}

func TestGetReviewNotFound(t *testing.T) {
	handler, _ := buildTestApp(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/reviews/single/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Error)
}

func TestUpdateReview(t *testing.T) {
	handler, _ := buildTestApp(t)

	id := createReview(t, handler, aliceToken, map[string]any{
		"movieId": "m1",
		"rating":  3,
		"body":    "fine",
	})

	t.Run("owner updates body only", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPut, "/api/reviews/"+id, aliceToken, map[string]any{
			"body": "actually great",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp response.UpdateReviewResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.True(t, resp.OK)
		require.Equal(t, id, resp.ReviewID)

		review := getReview(t, handler, id)
		require.Equal(t, 3, review.Rating, "rating must be untouched")
		require.Equal(t, "actually great", review.Body)
	})

	t.Run("owner updates rating only", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPut, "/api/reviews/"+id, aliceToken, map[string]any{
			"rating": 5,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		review := getReview(t, handler, id)
		require.Equal(t, 5, review.Rating)
		require.Equal(t, "actually great", review.Body, "body must be untouched")
	})

	t.Run("rating out of range is rejected for any caller", func(t *testing.T) {
		for _, bearer := range []string{aliceToken, bobToken} {
			rec := doRequest(t, handler, http.MethodPut, "/api/reviews/"+id, bearer, map[string]any{
				"rating": 0,
			})
			require.Equal(t, http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("non-owner is forbidden and document is unchanged", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPut, "/api/reviews/"+id, bobToken, map[string]any{
			"rating": 1,
			"body":   "terrible",
		})
		require.Equal(t, http.StatusForbidden, rec.Code)

		review := getReview(t, handler, id)
		require.Equal(t, 5, review.Rating)
		require.Equal(t, "actually great", review.Body)
	})

	t.Run("missing review", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPut, "/api/reviews/nope", aliceToken, map[string]any{
			"rating": 4,
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing auth", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPut, "/api/reviews/"+id, "", map[string]any{
			"rating": 4,
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestDeleteReview(t *testing.T) {
	handler, _ := buildTestApp(t)

	id := createReview(t, handler, aliceToken, map[string]any{"movieId": "m1", "rating": 4})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodDelete, "/api/reviews/"+id, bobToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing auth", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodDelete, "/api/reviews/"+id, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodDelete, "/api/reviews/"+id, aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp response.DeleteReviewResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.True(t, resp.OK)
		require.Equal(t, id, resp.DeletedID)
	})

	t.Run("deleted review is gone", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/api/reviews/single/"+id, "", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("deleting again is not found", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodDelete, "/api/reviews/"+id, aliceToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	handler, _ := buildTestApp(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp response.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.OK)
	require.False(t, resp.Timestamp.IsZero())
}

func TestNotFoundFallback(t *testing.T) {
	handler, _ := buildTestApp(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/nope"},
		{http.MethodPost, "/api/unknown"},
		{http.MethodPatch, "/api/reviews/abc"}, // unmatched method on a known path
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := doRequest(t, handler, tt.method, tt.path, "", nil)
			require.Equal(t, http.StatusNotFound, rec.Code)

			var resp utils.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotEmpty(t, resp.Error)
		})
	}
}

func getReview(tb testing.TB, handler http.Handler, id string) response.ReviewResponse {
	tb.Helper()

	rec := doRequest(tb, handler, http.MethodGet, "/api/reviews/single/"+id, "", nil)
	require.Equal(tb, http.StatusOK, rec.Code, rec.Body.String())

	var review response.ReviewResponse
	require.NoError(tb, json.Unmarshal(rec.Body.Bytes(), &review))
	return review
}
