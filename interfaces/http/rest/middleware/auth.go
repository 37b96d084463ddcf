package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"moji-backend/pkg/auth"
	"moji-backend/pkg/common"
	apperrors "moji-backend/pkg/errors"
)

// Authenticate validates the bearer token and attaches the user to the
// request context.
func Authenticate(tokens *auth.Service, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respondUnauthorized(w, "missing authentication token")
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				logger.Warn("token rejected",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				switch {
				case errors.Is(err, auth.ErrExpiredToken):
					respondUnauthorized(w, "token has expired")
				case errors.Is(err, auth.ErrInvalidSignature):
					respondUnauthorized(w, "invalid token signature")
				default:
					respondUnauthorized(w, "invalid token")
				}
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				respondUnauthorized(w, "invalid token")
				return
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{
				UserID:   userID,
				Username: claims.Username,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the JWT from the Authorization header.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return authHeader
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	common.RespondError(w, http.StatusUnauthorized, string(apperrors.ErrorTypeUnauthorized), message)
}
