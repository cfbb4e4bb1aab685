package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/fnitalia/community-hub/models"
	"github.com/fnitalia/community-hub/repositories"
	"github.com/fnitalia/community-hub/storage"
)

// In-memory stand-ins for the Postgres repositories. Only the methods a test
// exercises have real behavior; the rest return zero values.

type stubCampaignRepo struct {
	campaigns map[int]*models.PredictionCampaign
	nextID    int
}

func newStubCampaignRepo() *stubCampaignRepo {
	return &stubCampaignRepo{campaigns: make(map[int]*models.PredictionCampaign), nextID: 1}
}

func (r *stubCampaignRepo) Create(_ context.Context, c *models.PredictionCampaign) error {
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	r.nextID++
	clone := *c
	r.campaigns[c.ID] = &clone
	return nil
}

func (r *stubCampaignRepo) GetByID(_ context.Context, id int) (*models.PredictionCampaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, repositories.ErrCampaignNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCampaignRepo) List(_ context.Context) ([]models.PredictionCampaign, error) {
	out := make([]models.PredictionCampaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCampaignRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.PredictionCampaign, error) {
	out := make([]models.PredictionCampaign, 0)
	for _, c := range r.campaigns {
		if c.TournamentID == tournamentID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCampaignRepo) FindActive(_ context.Context, tournamentID int, now time.Time) (*models.PredictionCampaign, error) {
	for _, c := range r.campaigns {
		if c.TournamentID == tournamentID && c.IsActive(now) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, repositories.ErrCampaignNotFound
}

func (r *stubCampaignRepo) Update(_ context.Context, c *models.PredictionCampaign) error {
	if _, ok := r.campaigns[c.ID]; !ok {
		return repositories.ErrCampaignNotFound
	}
	clone := *c
	r.campaigns[c.ID] = &clone
	return nil
}

func (r *stubCampaignRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.campaigns[id]; !ok {
		return repositories.ErrCampaignNotFound
	}
	delete(r.campaigns, id)
	return nil
}

func (r *stubCampaignRepo) Count(_ context.Context) (int, error) { return len(r.campaigns), nil }

func (r *stubCampaignRepo) CountActive(_ context.Context, now time.Time) (int, error) {
	n := 0
	for _, c := range r.campaigns {
		if c.IsActive(now) {
			n++
		}
	}
	return n, nil
}

type stubPredictionRepo struct {
	predictions []models.Prediction
	nextID      int
}

func newStubPredictionRepo() *stubPredictionRepo {
	return &stubPredictionRepo{nextID: 1}
}

func (r *stubPredictionRepo) Create(_ context.Context, p *models.Prediction) error {
	p.ID = r.nextID
	p.SubmittedAt = time.Now()
	r.nextID++
	r.predictions = append(r.predictions, *p)
	return nil
}

func (r *stubPredictionRepo) GetByID(_ context.Context, id int) (*models.Prediction, error) {
	for i := range r.predictions {
		if r.predictions[i].ID == id {
			clone := r.predictions[i]
			return &clone, nil
		}
	}
	return nil, repositories.ErrPredictionNotFound
}

func (r *stubPredictionRepo) List(_ context.Context, _, _ int) ([]models.Prediction, error) {
	return append([]models.Prediction(nil), r.predictions...), nil
}

func (r *stubPredictionRepo) ListByCampaign(_ context.Context, campaignID int) ([]models.Prediction, error) {
	out := make([]models.Prediction, 0)
	for _, p := range r.predictions {
		if p.CampaignID == campaignID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPredictionRepo) Delete(_ context.Context, id int) error {
	for i := range r.predictions {
		if r.predictions[i].ID == id {
			r.predictions = append(r.predictions[:i], r.predictions[i+1:]...)
			return nil
		}
	}
	return repositories.ErrPredictionNotFound
}

func (r *stubPredictionRepo) Count(_ context.Context) (int, error) { return len(r.predictions), nil }

type stubTournamentRepo struct {
	tournaments map[int]*models.Tournament
	nextID      int
}

func newStubTournamentRepo() *stubTournamentRepo {
	return &stubTournamentRepo{tournaments: make(map[int]*models.Tournament), nextID: 1}
}

func (r *stubTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	t.ID = r.nextID
	t.CreatedAt = time.Now()
	r.nextID++
	clone := *t
	r.tournaments[t.ID] = &clone
	return nil
}

func (r *stubTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTournamentRepo) List(_ context.Context, _ repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTournamentRepo) Update(_ context.Context, t *models.Tournament) error {
	if _, ok := r.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	clone := *t
	r.tournaments[t.ID] = &clone
	return nil
}

func (r *stubTournamentRepo) UpdateImageKey(_ context.Context, id int, imageKey *string) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.ImageKey = imageKey
	return nil
}

func (r *stubTournamentRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

func (r *stubTournamentRepo) Count(_ context.Context) (int, error) { return len(r.tournaments), nil }

type stubPlayerRepo struct {
	players []models.Player
	nextID  int
}

func newStubPlayerRepo() *stubPlayerRepo { return &stubPlayerRepo{nextID: 1} }

func (r *stubPlayerRepo) Create(_ context.Context, p *models.Player) error {
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	r.nextID++
	r.players = append(r.players, *p)
	return nil
}

func (r *stubPlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	for i := range r.players {
		if r.players[i].ID == id {
			clone := r.players[i]
			return &clone, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

// List intentionally returns players in insertion order so tests can prove
// the service re-asserts leaderboard ordering.
func (r *stubPlayerRepo) List(_ context.Context) ([]models.Player, error) {
	return append([]models.Player(nil), r.players...), nil
}

func (r *stubPlayerRepo) Update(_ context.Context, p *models.Player) error {
	for i := range r.players {
		if r.players[i].ID == p.ID {
			r.players[i] = *p
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

func (r *stubPlayerRepo) UpdateImageKey(_ context.Context, id int, imageKey *string) error {
	for i := range r.players {
		if r.players[i].ID == id {
			r.players[i].ImageKey = imageKey
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

func (r *stubPlayerRepo) Delete(_ context.Context, id int) error {
	for i := range r.players {
		if r.players[i].ID == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

func (r *stubPlayerRepo) Count(_ context.Context) (int, error) { return len(r.players), nil }

// stubHub records broadcast messages per room.
type stubHub struct {
	mu       sync.Mutex
	messages map[string][]interface{}
}

func newStubHub() *stubHub { return &stubHub{messages: make(map[string][]interface{})} }

func (h *stubHub) BroadcastToRoom(room string, message interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages[room] = append(h.messages[room], message)
}

func (h *stubHub) roomMessages(room string) []interface{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]interface{}(nil), h.messages[room]...)
}

// stubUploader is a no-op FileUploader.
type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, key string, _ string, _ io.Reader) (*storage.UploadResult, error) {
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

func (stubUploader) Delete(_ context.Context, _ string) error { return nil }

func (stubUploader) GetPublicURL(key string) string { return "https://cdn.test/" + key }
