package services

import (
	"context"
	"testing"
	"time"

	"github.com/fnitalia/community-hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCampaignService(campaignRepo *stubCampaignRepo, tournamentRepo *stubTournamentRepo, now time.Time) *campaignService {
	return &campaignService{
		campaignRepo:   campaignRepo,
		tournamentRepo: tournamentRepo,
		now:            func() time.Time { return now },
	}
}

func seedTournament(t *testing.T, repo *stubTournamentRepo) *models.Tournament {
	t.Helper()
	tour := &models.Tournament{
		Name:      "Coppa Italia 2024",
		Game:      "Fortnite",
		StartTime: time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 1, 15, 21, 0, 0, 0, time.UTC),
		PrizePool: "€10.000",
	}
	require.NoError(t, repo.Create(context.Background(), tour))
	return tour
}

func validCampaignInput(tournamentID int) CampaignInput {
	return CampaignInput{
		TournamentID: tournamentID,
		StartTime:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		Fields: models.FieldSchema{
			{ID: "f1", Label: "Winner", Type: models.FieldSelect, Required: true, Options: []string{"A", "B"}},
		},
	}
}

func TestCreateCampaign(t *testing.T) {
	campaignRepo := newStubCampaignRepo()
	tournamentRepo := newStubTournamentRepo()
	tour := seedTournament(t, tournamentRepo)

	svc := newTestCampaignService(campaignRepo, tournamentRepo, time.Now())

	campaign, err := svc.Create(context.Background(), validCampaignInput(tour.ID))
	require.NoError(t, err)

	assert.NotZero(t, campaign.ID)
	assert.Equal(t, tour.Name, campaign.TournamentName, "tournament name is denormalized on create")
}

func TestCreateCampaignRejectsInvalidWindow(t *testing.T) {
	tournamentRepo := newStubTournamentRepo()
	tour := seedTournament(t, tournamentRepo)
	svc := newTestCampaignService(newStubCampaignRepo(), tournamentRepo, time.Now())

	input := validCampaignInput(tour.ID)
	input.EndTime = input.StartTime
	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrCampaignInvalidWindow)

	input.EndTime = input.StartTime.Add(-time.Hour)
	_, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrCampaignInvalidWindow)
}

func TestCreateCampaignRejectsBadSchema(t *testing.T) {
	tournamentRepo := newStubTournamentRepo()
	tour := seedTournament(t, tournamentRepo)
	svc := newTestCampaignService(newStubCampaignRepo(), tournamentRepo, time.Now())

	input := validCampaignInput(tour.ID)
	input.Fields = models.FieldSchema{{Label: "Winner", Type: models.FieldSelect}} // no options

	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrCampaignInvalidSchema)
}

func TestCreateCampaignRejectsOverlap(t *testing.T) {
	campaignRepo := newStubCampaignRepo()
	tournamentRepo := newStubTournamentRepo()
	tour := seedTournament(t, tournamentRepo)
	svc := newTestCampaignService(campaignRepo, tournamentRepo, time.Now())

	_, err := svc.Create(context.Background(), validCampaignInput(tour.ID))
	require.NoError(t, err)

	// Overlapping window for the same tournament.
	overlapping := validCampaignInput(tour.ID)
	overlapping.StartTime = time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC)
	overlapping.EndTime = time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)
	_, err = svc.Create(context.Background(), overlapping)
	assert.ErrorIs(t, err, ErrCampaignOverlap)

	// Adjacent window is fine: the intervals are half-open.
	adjacent := validCampaignInput(tour.ID)
	adjacent.StartTime = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	adjacent.EndTime = time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)
	_, err = svc.Create(context.Background(), adjacent)
	assert.NoError(t, err)
}

func TestUpdateCampaignAllowsOwnWindow(t *testing.T) {
	campaignRepo := newStubCampaignRepo()
	tournamentRepo := newStubTournamentRepo()
	tour := seedTournament(t, tournamentRepo)
	svc := newTestCampaignService(campaignRepo, tournamentRepo, time.Now())

	campaign, err := svc.Create(context.Background(), validCampaignInput(tour.ID))
	require.NoError(t, err)

	// Shifting the same campaign inside its current window must not
	// trip the overlap check against itself.
	input := validCampaignInput(tour.ID)
	input.StartTime = input.StartTime.Add(24 * time.Hour)
	updated, err := svc.Update(context.Background(), campaign.ID, input)
	require.NoError(t, err)
	assert.Equal(t, input.StartTime, updated.StartTime)
}

func TestGetActiveForTournament(t *testing.T) {
	campaignRepo := newStubCampaignRepo()
	tournamentRepo := newStubTournamentRepo()
	tour := seedTournament(t, tournamentRepo)

	inside := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	outside := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	svc := newTestCampaignService(campaignRepo, tournamentRepo, inside)
	created, err := svc.Create(context.Background(), validCampaignInput(tour.ID))
	require.NoError(t, err)

	active, err := svc.GetActiveForTournament(context.Background(), tour.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, active.ID)

	svc.now = func() time.Time { return outside }
	_, err = svc.GetActiveForTournament(context.Background(), tour.ID)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCreateCampaignUnknownTournament(t *testing.T) {
	svc := newTestCampaignService(newStubCampaignRepo(), newStubTournamentRepo(), time.Now())
	_, err := svc.Create(context.Background(), validCampaignInput(99))
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
