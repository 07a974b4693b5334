package middleware

import (
	"net/http"
	"strings"

	"movie-reviews/pkg/token"
	"movie-reviews/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the bearer credential and binds the resolved identity to
// the request context. Handlers behind it can assume a verified caller.
func Auth(verifier token.Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			ident, err := verifier.Verify(r.Context(), parts[1])
			if err != nil {
				logger.Warn("Token verification failed",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetIdentityContext(r.Context(), ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
