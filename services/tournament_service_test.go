package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/fnitalia/community-hub/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTournamentService(repo *stubTournamentRepo, hub *stubHub, now time.Time) *tournamentService {
	return &tournamentService{
		tournamentRepo: repo,
		uploader:       stubUploader{},
		hub:            hub,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:            func() time.Time { return now },
		lastStatus:     make(map[int]schedule.Status),
	}
}

func tournamentInputFixture() TournamentInput {
	// 2024-01-15 at 18:00 UTC, 180 minutes.
	return TournamentInput{
		Name:      "Coppa Italia 2024",
		Game:      "Fortnite",
		StartTime: time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 1, 15, 21, 0, 0, 0, time.UTC),
		PrizePool: "€10.000",
	}
}

func TestTournamentStatusDerivation(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want schedule.Status
	}{
		{"before start", time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC), schedule.StatusUpcoming},
		{"one hour in", time.Date(2024, 1, 15, 19, 0, 0, 0, time.UTC), schedule.StatusLive},
		{"after end", time.Date(2024, 1, 15, 21, 0, 0, 0, time.UTC), schedule.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubTournamentRepo()
			svc := newTestTournamentService(repo, newStubHub(), tt.now)

			created, err := svc.Create(context.Background(), tournamentInputFixture())
			require.NoError(t, err)

			got, err := svc.GetByID(context.Background(), created.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestTournamentRejectsInvalidWindow(t *testing.T) {
	svc := newTestTournamentService(newStubTournamentRepo(), newStubHub(), time.Now())

	input := tournamentInputFixture()
	input.EndTime = input.StartTime
	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrTournamentInvalidWindow)
}

func TestTournamentListFiltersByDerivedStatus(t *testing.T) {
	repo := newStubTournamentRepo()
	now := time.Date(2024, 1, 15, 19, 0, 0, 0, time.UTC)
	svc := newTestTournamentService(repo, newStubHub(), now)

	live := tournamentInputFixture()
	_, err := svc.Create(context.Background(), live)
	require.NoError(t, err)

	upcoming := tournamentInputFixture()
	upcoming.Name = "Weekly Cup #47"
	upcoming.StartTime = now.Add(48 * time.Hour)
	upcoming.EndTime = now.Add(50 * time.Hour)
	_, err = svc.Create(context.Background(), upcoming)
	require.NoError(t, err)

	status := schedule.StatusLive
	result, err := svc.List(context.Background(), ListTournamentsFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Coppa Italia 2024", result[0].Name)
}

func TestBroadcastStatusTransitions(t *testing.T) {
	repo := newStubTournamentRepo()
	hub := newStubHub()

	before := time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC)
	during := time.Date(2024, 1, 15, 19, 0, 0, 0, time.UTC)

	svc := newTestTournamentService(repo, hub, before)
	_, err := svc.Create(context.Background(), tournamentInputFixture())
	require.NoError(t, err)

	// First pass only records the baseline, nothing has changed yet.
	require.NoError(t, svc.BroadcastStatusTransitions(context.Background()))
	assert.Empty(t, hub.roomMessages(RoomTournaments))

	// Clock moves inside the window: upcoming -> live should broadcast.
	svc.now = func() time.Time { return during }
	require.NoError(t, svc.BroadcastStatusTransitions(context.Background()))

	messages := hub.roomMessages(RoomTournaments)
	require.Len(t, messages, 1)
	transition, ok := messages[0].(statusTransition)
	require.True(t, ok)
	assert.Equal(t, schedule.StatusUpcoming, transition.From)
	assert.Equal(t, schedule.StatusLive, transition.To)

	// Same status on the next tick: no duplicate broadcast.
	require.NoError(t, svc.BroadcastStatusTransitions(context.Background()))
	assert.Len(t, hub.roomMessages(RoomTournaments), 1)
}
