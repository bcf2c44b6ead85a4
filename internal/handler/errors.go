package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/itinerary"
)

// errBadRequest marks input rejected before reaching the service layer
// (malformed body, unparseable path or query value). Mapped to 400.
var errBadRequest = errors.New("bad request")

const (
	msgRateLimited     = "Rate limit exceeded. Please try again in a moment."
	msgPaymentRequired = "AI credits exhausted. Please add credits to continue."
	msgNotConfigured   = "AI service is not configured"
	msgGenerateFailed  = "Failed to generate itinerary"
	msgTimeout         = "request cancelled or timed out"
	msgInternal        = "internal error"
)

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Error    string `json:"error"`
	Details  string `json:"details,omitempty"`
	Provider string `json:"provider,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status and body and writes it. notFound is the
// message used for domain.ErrNotFound, since only the handler knows what was
// being looked up. 5xx responses are logged.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	status, body := errorFor(r.Context(), err, notFound)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
	}
	writeJSON(w, status, body)
}

func errorFor(ctx context.Context, err error, notFound string) (int, errorResponse) {
	// Only the caller's own cancellation maps to 504; a provider call that hit
	// its per-call timeout is a transport failure.
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return http.StatusGatewayTimeout, errorResponse{Error: msgTimeout}
	}

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"}
	}

	var genErr *itinerary.Error
	if errors.As(err, &genErr) {
		return generationError(genErr)
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, errorResponse{Error: unwrapMessage(err, domain.ErrValidation)}
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, errorResponse{Error: unwrapMessage(err, errBadRequest)}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: notFound}
	}
	return http.StatusInternalServerError, errorResponse{Error: msgInternal}
}

func generationError(e *itinerary.Error) (int, errorResponse) {
	body := errorResponse{Provider: e.Provider}
	switch e.Kind {
	case itinerary.KindConfiguration:
		body.Error = msgNotConfigured
		return http.StatusInternalServerError, body
	case itinerary.KindRateLimited:
		body.Error = msgRateLimited
		return http.StatusTooManyRequests, body
	case itinerary.KindPaymentRequired:
		body.Error = msgPaymentRequired
		return http.StatusPaymentRequired, body
	}
	body.Error = msgGenerateFailed
	body.Details = e.Body
	if body.Details == "" {
		body.Details = e.Kind.String()
	}
	return http.StatusBadGateway, body
}

// unwrapMessage extracts the human-readable part after a wrapped sentinel.
// e.g. "service.TripService.Create: validation error: destination is required"
// → "destination is required"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, sentinel.Error()+": "); ok {
		return after
	}
	return msg
}
