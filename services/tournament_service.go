package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fnitalia/community-hub/models"
	"github.com/fnitalia/community-hub/repositories"
	"github.com/fnitalia/community-hub/schedule"
	"github.com/fnitalia/community-hub/storage"
)

type TournamentService interface {
	Create(ctx context.Context, input TournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, id int) error
	UploadImage(ctx context.Context, id int, file io.Reader, contentType string) (*models.Tournament, error)
	BroadcastStatusTransitions(ctx context.Context) error
}

type TournamentInput struct {
	Name            string    `json:"name"`
	Game            string    `json:"game"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	PrizePool       string    `json:"prize_pool"`
	RegistrationURL *string   `json:"registration_url"`
	LiveURL         *string   `json:"live_url"`
}

type ListTournamentsFilter struct {
	Game   *string
	Status *schedule.Status
	Limit  int
	Offset int
}

type statusTransition struct {
	TournamentID int             `json:"tournament_id"`
	Name         string          `json:"name"`
	From         schedule.Status `json:"from"`
	To           schedule.Status `json:"to"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	uploader       storage.FileUploader
	hub            Broadcaster
	logger         *slog.Logger
	now            func() time.Time

	mu         sync.Mutex
	lastStatus map[int]schedule.Status
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	uploader storage.FileUploader,
	hub Broadcaster,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		uploader:       uploader,
		hub:            hub,
		logger:         logger,
		now:            time.Now,
		lastStatus:     make(map[int]schedule.Status),
	}
}

func (s *tournamentService) validate(input TournamentInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrTournamentNameRequired
	}
	w := schedule.Window{Start: input.StartTime, End: input.EndTime}
	if !w.Valid() {
		return ErrTournamentInvalidWindow
	}
	return nil
}

func (s *tournamentService) Create(ctx context.Context, input TournamentInput) (*models.Tournament, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	t := &models.Tournament{
		Name:            strings.TrimSpace(input.Name),
		Game:            strings.TrimSpace(input.Game),
		StartTime:       input.StartTime.UTC(),
		EndTime:         input.EndTime.UTC(),
		PrizePool:       input.PrizePool,
		RegistrationURL: input.RegistrationURL,
		LiveURL:         input.LiveURL,
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	s.decorate(t)
	return t, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	s.decorate(t)
	return t, nil
}

func (s *tournamentService) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	repoFilter := repositories.ListTournamentsFilter{
		Game:   filter.Game,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	// Status is derived, so filtering by it has to happen after the read.
	// Pagination and status filter are mutually exclusive at the handler level.
	tournaments, err := s.tournamentRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	result := make([]models.Tournament, 0, len(tournaments))
	for i := range tournaments {
		s.decorate(&tournaments[i])
		if filter.Status != nil && tournaments[i].Status != *filter.Status {
			continue
		}
		result = append(result, tournaments[i])
	}
	return result, nil
}

func (s *tournamentService) Update(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	t.Name = strings.TrimSpace(input.Name)
	t.Game = strings.TrimSpace(input.Game)
	t.StartTime = input.StartTime.UTC()
	t.EndTime = input.EndTime.UTC()
	t.PrizePool = input.PrizePool
	t.RegistrationURL = input.RegistrationURL
	t.LiveURL = input.LiveURL

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentNameConflict):
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}
	s.decorate(t)
	return t, nil
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}

	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentInUse):
			return ErrTournamentInUse
		}
		return err
	}

	if t.ImageKey != nil {
		_ = s.uploader.Delete(ctx, *t.ImageKey)
	}

	s.mu.Lock()
	delete(s.lastStatus, id)
	s.mu.Unlock()
	return nil
}

func (s *tournamentService) UploadImage(ctx context.Context, id int, file io.Reader, contentType string) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	ext, err := imageExtensionForContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%d/banner_%d%s", id, s.now().UnixNano(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload tournament image: %w", err)
	}

	oldKey := t.ImageKey
	if err := s.tournamentRepo.UpdateImageKey(ctx, id, &result.Key); err != nil {
		_ = s.uploader.Delete(ctx, result.Key)
		return nil, err
	}
	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	t.ImageKey = &result.Key
	s.decorate(t)
	return t, nil
}

// BroadcastStatusTransitions derives the current status of every tournament
// and pushes a message to the tournaments room for each one that changed
// since the previous call. Status is never persisted; this only feeds the
// live channel. Driven by a ticker in main.
func (s *tournamentService) BroadcastStatusTransitions(ctx context.Context) error {
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{})
	if err != nil {
		return fmt.Errorf("failed to list tournaments for status watch: %w", err)
	}

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range tournaments {
		t := &tournaments[i]
		current := schedule.Classify(now, t.Window())
		previous, seen := s.lastStatus[t.ID]
		s.lastStatus[t.ID] = current

		if !seen || previous == current {
			continue
		}

		s.logger.Info("tournament status transition",
			slog.Int("tournament_id", t.ID),
			slog.String("from", string(previous)),
			slog.String("to", string(current)),
		)
		s.hub.BroadcastToRoom(RoomTournaments, statusTransition{
			TournamentID: t.ID,
			Name:         t.Name,
			From:         previous,
			To:           current,
		})
	}
	return nil
}

func (s *tournamentService) decorate(t *models.Tournament) {
	t.Status = schedule.Classify(s.now(), t.Window())
	if t.ImageKey != nil {
		url := s.uploader.GetPublicURL(*t.ImageKey)
		t.ImageURL = &url
	}
}
