package controllers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/crestline-dev/realty_marketing_system/backend/services"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ContextKey string

const UserIDKey = ContextKey("userID")

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondServiceError maps the bookkeeping error taxonomy onto HTTP statuses:
// precondition failures and lost races to 409, unknown targets to 404,
// malformed input to 400, everything else to 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var insufficient *services.InsufficientInventoryError
	var overRelease *services.OverReleaseError

	switch {
	case errors.As(err, &insufficient), errors.As(err, &overRelease),
		errors.Is(err, services.ErrUnitConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrUnitNotFound),
		errors.Is(err, services.ErrLeadNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidTotal),
		errors.Is(err, services.ErrInvalidMobile),
		errors.Is(err, services.ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		zap.L().Error("Unhandled service error", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func generateCacheKey(prefix string, queryParams url.Values) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(prefix)

	for _, key := range keys {
		sb.WriteString(":")
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(strings.Join(queryParams[key], ","))
	}
	return sb.String()
}
