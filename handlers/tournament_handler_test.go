package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fnitalia/community-hub/models"
	"github.com/fnitalia/community-hub/schedule"
	"github.com/fnitalia/community-hub/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTournamentService struct {
	tournaments []models.Tournament
	getResult   *models.Tournament
	getErr      error

	lastFilter services.ListTournamentsFilter
}

func (s *stubTournamentService) Create(_ context.Context, _ services.TournamentInput) (*models.Tournament, error) {
	return s.getResult, s.getErr
}

func (s *stubTournamentService) GetByID(_ context.Context, _ int) (*models.Tournament, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.getResult, nil
}

func (s *stubTournamentService) List(_ context.Context, filter services.ListTournamentsFilter) ([]models.Tournament, error) {
	s.lastFilter = filter
	result := make([]models.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (s *stubTournamentService) Update(_ context.Context, _ int, _ services.TournamentInput) (*models.Tournament, error) {
	return s.getResult, s.getErr
}

func (s *stubTournamentService) Delete(_ context.Context, _ int) error {
	return s.getErr
}

func (s *stubTournamentService) UploadImage(_ context.Context, _ int, _ io.Reader, _ string) (*models.Tournament, error) {
	return s.getResult, s.getErr
}

func (s *stubTournamentService) BroadcastStatusTransitions(_ context.Context) error {
	return nil
}

func TestTournamentHandler_List_StatusFilter(t *testing.T) {
	stub := &stubTournamentService{
		tournaments: []models.Tournament{
			{ID: 1, Name: "Spring Cup", Status: schedule.StatusCompleted},
			{ID: 2, Name: "Summer Showdown", Status: schedule.StatusLive},
			{ID: 3, Name: "Autumn Open", Status: schedule.StatusUpcoming},
		},
	}
	h := NewTournamentHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/tournaments?status=live", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.lastFilter.Status)
	assert.Equal(t, schedule.StatusLive, *stub.lastFilter.Status)

	var response struct {
		Tournaments []models.Tournament `json:"tournaments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Tournaments, 1)
	assert.Equal(t, "Summer Showdown", response.Tournaments[0].Name)
}

func TestTournamentHandler_List_InvalidStatus(t *testing.T) {
	h := NewTournamentHandler(&stubTournamentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/tournaments?status=paused", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTournamentHandler_GetByID(t *testing.T) {
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	stub := &stubTournamentService{
		getResult: &models.Tournament{
			ID:        5,
			Name:      "Summer Showdown",
			StartTime: start,
			EndTime:   start.Add(3 * time.Hour),
			Status:    schedule.StatusUpcoming,
		},
	}
	h := NewTournamentHandler(stub)

	r := chi.NewRouter()
	r.Get("/api/tournaments/{tournamentID}", h.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/api/tournaments/5", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Tournament models.Tournament `json:"tournament"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 5, response.Tournament.ID)
	assert.Equal(t, schedule.StatusUpcoming, response.Tournament.Status)
}

func TestTournamentHandler_GetByID_NotFound(t *testing.T) {
	stub := &stubTournamentService{getErr: services.ErrTournamentNotFound}
	h := NewTournamentHandler(stub)

	r := chi.NewRouter()
	r.Get("/api/tournaments/{tournamentID}", h.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/api/tournaments/99", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTournamentHandler_GetByID_BadID(t *testing.T) {
	h := NewTournamentHandler(&stubTournamentService{})

	r := chi.NewRouter()
	r.Get("/api/tournaments/{tournamentID}", h.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/api/tournaments/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
