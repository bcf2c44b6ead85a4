package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/handler"
	"github.com/pkordes/tripweaver/internal/middleware"
)

// ---- mocks -----------------------------------------------------------------
// Set only the method fields your test needs.

type mockGenerator struct {
	generate func(ctx context.Context, params domain.TripParameters) ([]domain.ItineraryDay, error)
}

func (m *mockGenerator) Generate(ctx context.Context, p domain.TripParameters) ([]domain.ItineraryDay, error) {
	return m.generate(ctx, p)
}

type mockTripServicer struct {
	create        func(ctx context.Context, userID uuid.UUID, params domain.TripParameters) (domain.Trip, error)
	getByID       func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	list          func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	updateStatus  func(ctx context.Context, userID, id uuid.UUID, status domain.TripStatus) (domain.Trip, error)
	setVisibility func(ctx context.Context, userID, id uuid.UUID, isPublic bool) (domain.Trip, error)
	delete        func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, userID uuid.UUID, p domain.TripParameters) (domain.Trip, error) {
	return m.create(ctx, userID, p)
}
func (m *mockTripServicer) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripServicer) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, userID, p)
}
func (m *mockTripServicer) UpdateStatus(ctx context.Context, userID, id uuid.UUID, s domain.TripStatus) (domain.Trip, error) {
	return m.updateStatus(ctx, userID, id, s)
}
func (m *mockTripServicer) SetVisibility(ctx context.Context, userID, id uuid.UUID, isPublic bool) (domain.Trip, error) {
	return m.setVisibility(ctx, userID, id, isPublic)
}
func (m *mockTripServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockItineraryServicer struct {
	generateForTrip func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.SavedDay, error)
	listForTrip     func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.SavedDay, error)
}

func (m *mockItineraryServicer) GenerateForTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.SavedDay, error) {
	return m.generateForTrip(ctx, userID, tripID)
}
func (m *mockItineraryServicer) ListForTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.SavedDay, error) {
	return m.listForTrip(ctx, userID, tripID)
}

type mockPlanServicer struct {
	plan func(ctx context.Context, userID uuid.UUID, params domain.TripParameters) (domain.Trip, []domain.SavedDay, error)
}

func (m *mockPlanServicer) Plan(ctx context.Context, userID uuid.UUID, p domain.TripParameters) (domain.Trip, []domain.SavedDay, error) {
	return m.plan(ctx, userID, p)
}

type mockBudgetServicer struct {
	estimateForTrip func(ctx context.Context, userID, tripID uuid.UUID) (domain.BudgetEstimate, error)
}

func (m *mockBudgetServicer) EstimateForTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.BudgetEstimate, error) {
	return m.estimateForTrip(ctx, userID, tripID)
}

type mockShareServicer struct {
	getByToken func(ctx context.Context, token uuid.UUID) (domain.SharedTrip, error)
}

func (m *mockShareServicer) GetByToken(ctx context.Context, token uuid.UUID) (domain.SharedTrip, error) {
	return m.getByToken(ctx, token)
}

type mockExportServicer struct {
	export func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, userID, tripID)
}

type mockProfileServicer struct {
	get    func(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	update func(ctx context.Context, userID uuid.UUID, u domain.ProfileUpdate) (domain.Profile, error)
}

func (m *mockProfileServicer) Get(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	return m.get(ctx, userID)
}
func (m *mockProfileServicer) Update(ctx context.Context, userID uuid.UUID, u domain.ProfileUpdate) (domain.Profile, error) {
	return m.update(ctx, userID, u)
}

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.Generator         = (*mockGenerator)(nil)
	_ handler.TripServicer      = (*mockTripServicer)(nil)
	_ handler.ItineraryServicer = (*mockItineraryServicer)(nil)
	_ handler.PlanServicer      = (*mockPlanServicer)(nil)
	_ handler.BudgetServicer    = (*mockBudgetServicer)(nil)
	_ handler.ShareServicer     = (*mockShareServicer)(nil)
	_ handler.ExportServicer    = (*mockExportServicer)(nil)
	_ handler.ProfileServicer   = (*mockProfileServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

var testUser = uuid.MustParse("7f0c3a52-1b7e-4d8e-9a3c-2f6b1d0e4a11")

// asUser stands in for the JWT middleware: every request is authenticated
// as testUser.
func asUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), testUser)))
	})
}

// newHTTPHandler wires a Server with the given services into the router,
// the same way main.go does minus the global middleware stack.
func newHTTPHandler(svc handler.Services) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(svc, logger).Routes(asUser, nil)
}

func do(t *testing.T, h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

type errorBody struct {
	Error    string `json:"error"`
	Details  string `json:"details"`
	Provider string `json:"provider"`
}

func parisRequest() map[string]any {
	return map[string]any{
		"destination":        "Paris",
		"budget_level":       "moderate",
		"start_date":         "2025-06-01",
		"end_date":           "2025-06-03",
		"num_travelers":      2,
		"accommodation_type": "hotel",
		"travel_mode":        "train",
		"activities":         []string{"museums", "food"},
	}
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:     uuid.New(),
		UserID: testUser,
		TripParameters: domain.TripParameters{
			Destination:       "Paris",
			BudgetLevel:       domain.BudgetLevelModerate,
			StartDate:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:           time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
			NumTravelers:      2,
			AccommodationType: domain.AccommodationHotel,
			TravelMode:        domain.TravelModeTrain,
			Activities:        []string{"museums", "food"},
		},
		Status:     domain.TripStatusDraft,
		ShareToken: uuid.New(),
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
}

func savedDaysFixture(tripID uuid.UUID, n int) []domain.SavedDay {
	days := make([]domain.SavedDay, n)
	for i := range days {
		days[i] = domain.SavedDay{
			ID:     uuid.New(),
			TripID: tripID,
			ItineraryDay: domain.ItineraryDay{
				DayNumber: i + 1,
				Title:     "Day",
				Activities: []domain.ItineraryActivity{
					{Time: "09:00", Title: "Breakfast", Description: "Croissants"},
				},
			},
		}
	}
	return days
}

func httptestRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, jsonBody(t, body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
