package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fnitalia/community-hub/models"
	"github.com/fnitalia/community-hub/repositories"
	"github.com/fnitalia/community-hub/storage"
)

type PlayerService interface {
	Create(ctx context.Context, input PlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListLeaderboard(ctx context.Context) ([]models.Player, error)
	Update(ctx context.Context, id int, input PlayerInput) (*models.Player, error)
	Delete(ctx context.Context, id int) error
	UploadImage(ctx context.Context, id int, file io.Reader, contentType string) (*models.Player, error)
}

type PlayerInput struct {
	Name        string `json:"name"`
	Nickname    string `json:"nickname"`
	Role        string `json:"role"`
	Team        string `json:"team"`
	Wins        int    `json:"wins"`
	KD          string `json:"kd"`
	Tournaments int    `json:"tournaments"`
	PowerRank   int    `json:"pr"`
	Earnings    string `json:"earnings"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader) PlayerService {
	return &playerService{playerRepo: playerRepo, uploader: uploader}
}

func (s *playerService) Create(ctx context.Context, input PlayerInput) (*models.Player, error) {
	if strings.TrimSpace(input.Nickname) == "" {
		return nil, ErrPlayerNicknameRequired
	}

	p := &models.Player{
		Name:        strings.TrimSpace(input.Name),
		Nickname:    strings.TrimSpace(input.Nickname),
		Role:        input.Role,
		Team:        input.Team,
		Wins:        input.Wins,
		KD:          input.KD,
		Tournaments: input.Tournaments,
		PowerRank:   input.PowerRank,
		Earnings:    input.Earnings,
	}
	if err := s.playerRepo.Create(ctx, p); err != nil {
		if errors.Is(err, repositories.ErrPlayerNicknameConflict) {
			return nil, ErrPlayerNicknameConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	s.populateImageURL(p)
	return p, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	p, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	s.populateImageURL(p)
	return p, nil
}

// ListLeaderboard returns players ordered by power rank descending. The
// ordering is re-asserted here so the contract holds regardless of the
// backing store's own ordering.
func (s *playerService) ListLeaderboard(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].PowerRank > players[j].PowerRank
	})
	for i := range players {
		s.populateImageURL(&players[i])
	}
	return players, nil
}

func (s *playerService) Update(ctx context.Context, id int, input PlayerInput) (*models.Player, error) {
	if strings.TrimSpace(input.Nickname) == "" {
		return nil, ErrPlayerNicknameRequired
	}

	p, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	p.Name = strings.TrimSpace(input.Name)
	p.Nickname = strings.TrimSpace(input.Nickname)
	p.Role = input.Role
	p.Team = input.Team
	p.Wins = input.Wins
	p.KD = input.KD
	p.Tournaments = input.Tournaments
	p.PowerRank = input.PowerRank
	p.Earnings = input.Earnings

	if err := s.playerRepo.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerNicknameConflict):
			return nil, ErrPlayerNicknameConflict
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	s.populateImageURL(p)
	return p, nil
}

func (s *playerService) Delete(ctx context.Context, id int) error {
	p, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}

	if p.ImageKey != nil {
		_ = s.uploader.Delete(ctx, *p.ImageKey)
	}
	return nil
}

func (s *playerService) UploadImage(ctx context.Context, id int, file io.Reader, contentType string) (*models.Player, error) {
	p, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	ext, err := imageExtensionForContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("players/%d/avatar_%d%s", id, time.Now().UnixNano(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload player image: %w", err)
	}

	oldKey := p.ImageKey
	if err := s.playerRepo.UpdateImageKey(ctx, id, &result.Key); err != nil {
		_ = s.uploader.Delete(ctx, result.Key)
		return nil, err
	}
	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	p.ImageKey = &result.Key
	s.populateImageURL(p)
	return p, nil
}

func (s *playerService) populateImageURL(p *models.Player) {
	if p.ImageKey != nil {
		url := s.uploader.GetPublicURL(*p.ImageKey)
		p.ImageURL = &url
	}
}
