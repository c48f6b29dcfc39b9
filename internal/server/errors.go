package server

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/instantview/pkg/errors"
	"github.com/matzehuels/instantview/pkg/observability"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// statusFor maps an error to an HTTP status and a code for the body.
func statusFor(err error) (int, errors.Code) {
	var maxBytes *http.MaxBytesError
	switch {
	case stderrors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errors.ErrCodeTimeout
	case errors.IsInvalid(err):
		return http.StatusBadRequest, errors.GetCode(err)
	}

	code := errors.GetCode(err)
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound, code
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented, code
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, code
	case errors.ErrCodeBackend:
		return http.StatusServiceUnavailable, code
	}
	return http.StatusInternalServerError, errors.ErrCodeInternal
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)

	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFrom(r.Context()), "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   msg,
		RequestID: RequestIDFrom(r.Context()),
	}})
}
