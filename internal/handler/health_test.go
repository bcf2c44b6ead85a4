package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/handler"
	"github.com/pkordes/tripweaver/internal/middleware"
	"github.com/pkordes/tripweaver/testutil"
)

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"}.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	h := newHTTPHandler(handler.Services{})

	rec := do(t, h, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestRoutes_metricsMountedWhenGiven(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "# metrics")
	})
	h := handler.NewServer(handler.Services{}, logger).Routes(asUser, metrics)

	rec := do(t, h, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics", rec.Body.String())
}

// TestRoutes_realJWTAuth wires the production auth middleware to check that
// guarded routes reject anonymous requests and accept a signed token.
func TestRoutes_realJWTAuth(t *testing.T) {
	secret := []byte("test-secret")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := &mockTripServicer{
		list: func(_ context.Context, userID uuid.UUID, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
			assert.Equal(t, testUser, userID)
			return nil, 0, nil
		},
	}
	h := handler.NewServer(handler.Services{Trips: svc}, logger).Routes(middleware.NewJWTAuth(secret), nil)

	anon := do(t, h, http.MethodGet, "/trips", nil)
	assert.Equal(t, http.StatusUnauthorized, anon.Code)

	token, err := testutil.NewToken(secret, testUser, time.Minute)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authed := serve(h, req)
	assert.Equal(t, http.StatusOK, authed.Code)

	// Public routes stay reachable without a token.
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", nil).Code)
}

func TestOversizedBody_returns413(t *testing.T) {
	gen := &mockGenerator{generate: func(context.Context, domain.TripParameters) ([]domain.ItineraryDay, error) {
		t.Fatal("generator must not be called")
		return nil, nil
	}}
	h := middleware.NewMaxBodySizeHandler(64)(newHTTPHandler(handler.Services{Generator: gen}))

	// Unknown length forces the limit to be hit while decoding.
	req := httptestRequest(t, http.MethodPost, "/generate-itinerary", parisRequest())
	req.ContentLength = -1
	rec := serve(h, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
