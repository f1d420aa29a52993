package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aturkov/scorekeep/internal/common"
)

func (s *Server) respondWithJSON(ctx context.Context, w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Error(ctx, "failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		s.logger.Error(ctx, "failed to write HTTP response", "error", err)
	}
}

func (s *Server) respondWithMessage(ctx context.Context, w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(ctx, w, code, map[string]string{"message": message})
}

// respondWithServiceError translates a service-layer error into an HTTP
// status. Unrecognized errors land on 500 without leaking details.
func (s *Server) respondWithServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var code int
	var message string

	switch {
	case errors.Is(err, common.ErrInvalidInput):
		code, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		code, message = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrUnknownUser):
		code, message = http.StatusNotFound, "not found"
	case errors.Is(err, common.ErrConflict):
		code, message = http.StatusConflict, err.Error()
	case errors.Is(err, common.ErrStorageUnavailable):
		code, message = http.StatusServiceUnavailable, "storage unavailable"
	default:
		code, message = http.StatusInternalServerError, "internal error"
		s.logger.Error(ctx, "unexpected service error", "error", err)
	}

	s.respondWithJSON(ctx, w, code, map[string]string{"error": message})
}
