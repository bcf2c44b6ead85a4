package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/handler"
	"github.com/pkordes/tripweaver/internal/itinerary"
)

func TestCreatePlan_returns201WithTripAndDays(t *testing.T) {
	fixture := tripFixture()
	svc := &mockPlanServicer{
		plan: func(_ context.Context, userID uuid.UUID, p domain.TripParameters) (domain.Trip, []domain.SavedDay, error) {
			assert.Equal(t, testUser, userID)
			assert.Equal(t, 3, p.DurationDays())
			return fixture, savedDaysFixture(fixture.ID, 3), nil
		},
	}
	h := newHTTPHandler(handler.Services{Plans: svc})

	rec := do(t, h, http.MethodPost, "/plans", jsonBody(t, parisRequest()))

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode[struct {
		Trip      tripJSON          `json:"trip"`
		Itinerary []domain.SavedDay `json:"itinerary"`
	}](t, rec)
	assert.Equal(t, fixture.ID, body.Trip.ID)
	assert.Len(t, body.Itinerary, 3)
}

func TestCreatePlan_generationFailure_returns502(t *testing.T) {
	svc := &mockPlanServicer{
		plan: func(context.Context, uuid.UUID, domain.TripParameters) (domain.Trip, []domain.SavedDay, error) {
			return domain.Trip{}, nil, &itinerary.Error{Kind: itinerary.KindParse, Provider: "secondary"}
		},
	}
	h := newHTTPHandler(handler.Services{Plans: svc})

	rec := do(t, h, http.MethodPost, "/plans", jsonBody(t, parisRequest()))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, "Failed to generate itinerary", body.Error)
	assert.Equal(t, "secondary", body.Provider)
}
