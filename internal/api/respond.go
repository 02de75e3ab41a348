package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/graphomics/debruijn/pkg/errors"
	"github.com/graphomics/debruijn/pkg/store"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as JSON with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// writeError maps an error to an HTTP status and JSON envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if errors.Is(err, store.ErrNotFound) {
		code = apperrors.ErrCodeNotFound
	}

	status := http.StatusInternalServerError
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeGraphNotFound, apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}

	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}

	s.writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	}})
}
