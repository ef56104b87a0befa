package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/crestline-dev/realty_marketing_system/backend/controllers"
	"github.com/crestline-dev/realty_marketing_system/backend/utils"
	"go.uber.org/zap"
)

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		tokenHeader := r.Header.Get("Authorization")
		if tokenHeader == "" {
			zap.L().Warn("Missing Authorization header", zap.String("method", r.Method), zap.String("url", r.URL.String()))
			http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
			return
		}

		tokenParts := strings.Split(tokenHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			zap.L().Warn("Invalid Authorization header format", zap.String("method", r.Method), zap.String("url", r.URL.String()))
			http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
			return
		}

		token := tokenParts[1]

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			zap.L().Warn("Invalid or expired token", zap.Error(err))
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), controllers.UserIDKey, claims.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
