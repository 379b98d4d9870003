package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/adapter"
	"gitlab.com/ignitionrobotics/billing/gocardless/pkg/api"
)

const (
	// defaultLimit is the page size used when no limit is given.
	defaultLimit = 50

	// maxLimit is the largest page size accepted.
	maxLimit = 500

	// ErrorTypeInvalidAPIUsage is returned for malformed requests and missing resources.
	ErrorTypeInvalidAPIUsage = "invalid_api_usage"

	// ErrorTypeInvalidState is returned when an action is not possible in the resource's current state.
	ErrorTypeInvalidState = "invalid_state"

	// ErrorTypeValidationFailed is returned when a request body fails validation.
	ErrorTypeValidationFailed = "validation_failed"
)

// errorResponse is the error envelope written along with non-2xx responses.
type errorResponse struct {
	Error adapter.APIError `json:"error"`
}

// cancelRequest is the optional body accepted when cancelling a subscription.
type cancelRequest struct {
	Metadata map[string]string `json:"metadata"`
}

// ListSubscriptions is an HTTP handler returning a page of subscriptions.
// Supported query parameters are after, before, limit and mandate.
func (s *Server) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := defaultLimit
	if raw := q.Get("limit"); len(raw) > 0 {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			s.writeError(w, http.StatusBadRequest, ErrorTypeInvalidAPIUsage, "limit must be an integer between 1 and 500", nil)
			return
		}
		limit = n
	}

	page, cursors := s.store.List(ListFilter{
		After:   q.Get("after"),
		Before:  q.Get("before"),
		Limit:   limit,
		Mandate: q.Get("mandate"),
	})

	s.writeJSON(w, http.StatusOK, api.IndexResponse{
		Subscriptions: page,
		Meta: api.Meta{
			Cursors: cursors,
			Limit:   limit,
		},
	})
}

// GetSubscription is an HTTP handler returning a single subscription.
func (s *Server) GetSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.PlanEnvelope{Subscriptions: sub})
}

// CreateSubscription is an HTTP handler creating a subscription out from a GoCardless create body.
func (s *Server) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req api.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Println("Failed to decode create body:", err)
		s.writeError(w, http.StatusBadRequest, ErrorTypeInvalidAPIUsage, "Invalid document structure", nil)
		return
	}

	if errs := validatePayload(req.Subscriptions); len(errs) > 0 {
		s.writeError(w, http.StatusUnprocessableEntity, ErrorTypeValidationFailed, "Validation failed", errs)
		return
	}

	sub := s.store.Create(req.Subscriptions)
	s.logger.Printf("Subscription created: %s\n", sub.ID)
	s.writeJSON(w, http.StatusCreated, api.PlanEnvelope{Subscriptions: sub})
}

// CancelSubscription is an HTTP handler cancelling a subscription. The metadata body is optional.
func (s *Server) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Println("Failed to read body:", err)
		s.writeError(w, http.StatusInternalServerError, ErrorTypeInvalidAPIUsage, "Failed to read body", nil)
		return
	}

	var req cancelRequest
	if len(strings.TrimSpace(string(body))) > 0 {
		if err = json.Unmarshal(body, &req); err != nil {
			s.writeError(w, http.StatusBadRequest, ErrorTypeInvalidAPIUsage, "Invalid document structure", nil)
			return
		}
	}

	id := chi.URLParam(r, "id")
	sub, err := s.store.Cancel(id, req.Metadata)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Printf("Subscription cancelled: %s\n", id)
	s.writeJSON(w, http.StatusOK, api.PlanEnvelope{Subscriptions: sub})
}

// authenticate rejects requests not carrying the configured bearer token.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.config.AccessToken {
			s.writeError(w, http.StatusUnauthorized, ErrorTypeInvalidAPIUsage, "Access token not active", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeStoreError maps store errors into GoCardless error responses.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSubscriptionNotFound):
		s.writeError(w, http.StatusNotFound, ErrorTypeInvalidAPIUsage, "Resource not found", nil)
	case errors.Is(err, ErrAlreadyCancelled):
		s.writeError(w, http.StatusUnprocessableEntity, ErrorTypeInvalidState, "Subscription has already been cancelled", nil)
	default:
		s.writeError(w, http.StatusInternalServerError, ErrorTypeInvalidAPIUsage, err.Error(), nil)
	}
}

// writeError writes an error response using the GoCardless error envelope.
func (s *Server) writeError(w http.ResponseWriter, status int, errType, message string, errs []adapter.FieldError) {
	s.writeJSON(w, status, errorResponse{
		Error: adapter.APIError{
			StatusCode:       status,
			Type:             errType,
			Message:          message,
			DocumentationURL: "https://developer.gocardless.com/api-reference#" + errType,
			RequestID:        uuid.NewString(),
			Errors:           errs,
		},
	})
}

// writeJSON writes v as the JSON body of the response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Println("Failed to write response:", err)
	}
}
