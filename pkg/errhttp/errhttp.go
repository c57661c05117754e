// Package errhttp maps domain errors to HTTP responses.
// Domain sentinels are built with apperr.New, so most errors are mapped by
// kind; add a case to mapErrorToStatus only for errors outside that scheme.
package errhttp

import (
	"context"
	"errors"
	"net/http"

	"github.com/theEquinoxDev/LocalLoop/pkg/apperr"
	"github.com/theEquinoxDev/LocalLoop/pkg/httpx"
	"github.com/theEquinoxDev/LocalLoop/pkg/logger"
	"github.com/theEquinoxDev/LocalLoop/pkg/telemetry"
)

// ErrorResponse is the JSON body of every error.
type ErrorResponse = httpx.ErrorBody

// Responder writes error responses. Server errors are logged, reported to
// Sentry and, in production, masked.
type Responder struct {
	log        logger.Logger
	production bool
}

// NewResponder returns a Responder. production masks 5xx messages.
func NewResponder(log logger.Logger, production bool) *Responder {
	return &Responder{log: log, production: production}
}

// Write maps err to a status and writes the JSON body.
func (rs *Responder) Write(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		rs.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "status", status, "error", err)
		telemetry.CaptureError(r.Context(), err)
	}
	httpx.JSON(w, status, body(err, status, rs.production))
}

// WriteError writes err without logging or masking. Prefer Responder.Write
// in handlers.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	httpx.JSON(w, status, body(err, status, false))
}

func body(err error, status int, production bool) ErrorResponse {
	if msg, ok := apperr.Message(err); ok {
		return ErrorResponse{Message: msg, Fields: apperr.FieldsOf(err)}
	}
	if status == http.StatusInternalServerError {
		return ErrorResponse{Message: httpx.SafeError(err, status, production)}
	}
	return ErrorResponse{Message: http.StatusText(status)}
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout // 504
	case errors.Is(err, context.Canceled):
		return 499 // client closed request
	}

	switch apperr.KindOf(err) {
	case apperr.Validation, apperr.Conflict:
		return http.StatusBadRequest // 400
	case apperr.Unauthenticated:
		return http.StatusUnauthorized // 401
	case apperr.Forbidden:
		return http.StatusForbidden // 403
	case apperr.NotFound:
		return http.StatusNotFound // 404
	case apperr.Upstream:
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
