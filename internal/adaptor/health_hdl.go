package adaptor

import (
	"net/http"
	"time"

	"movie-reviews/internal/dto/response"
	"movie-reviews/pkg/utils"

	"go.uber.org/zap"
)

type HealthHandler struct {
	log *zap.Logger
}

func NewHealthHandler(log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		log: log.With(zap.String("handler", "health")),
	}
}

// Check handles GET /api/health (public)
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	utils.ResponseJSON(w, http.StatusOK, response.HealthResponse{
		OK:        true,
		Message:   "Service is healthy",
		Timestamp: time.Now().UTC(),
	})
}
