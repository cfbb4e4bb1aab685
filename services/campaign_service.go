package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fnitalia/community-hub/models"
	"github.com/fnitalia/community-hub/repositories"
	"github.com/fnitalia/community-hub/schedule"
)

type CampaignService interface {
	Create(ctx context.Context, input CampaignInput) (*models.PredictionCampaign, error)
	GetByID(ctx context.Context, id int) (*models.PredictionCampaign, error)
	GetActiveForTournament(ctx context.Context, tournamentID int) (*models.PredictionCampaign, error)
	List(ctx context.Context) ([]models.PredictionCampaign, error)
	Update(ctx context.Context, id int, input CampaignInput) (*models.PredictionCampaign, error)
	Delete(ctx context.Context, id int) error
}

type CampaignInput struct {
	TournamentID int                `json:"tournament_id"`
	StartTime    time.Time          `json:"start_time"`
	EndTime      time.Time          `json:"end_time"`
	Fields       models.FieldSchema `json:"fields"`
}

type campaignService struct {
	campaignRepo   repositories.CampaignRepository
	tournamentRepo repositories.TournamentRepository
	now            func() time.Time
}

func NewCampaignService(
	campaignRepo repositories.CampaignRepository,
	tournamentRepo repositories.TournamentRepository,
) CampaignService {
	return &campaignService{
		campaignRepo:   campaignRepo,
		tournamentRepo: tournamentRepo,
		now:            time.Now,
	}
}

func (s *campaignService) validate(input CampaignInput) error {
	w := schedule.Window{Start: input.StartTime, End: input.EndTime}
	if !w.Valid() {
		return ErrCampaignInvalidWindow
	}
	if problems := input.Fields.Validate(); problems != nil {
		return &ValidationError{Base: ErrCampaignInvalidSchema, Problems: problems}
	}
	return nil
}

// checkOverlap enforces the single-active-campaign invariant: a tournament
// may not have two campaigns whose windows share any instant.
func (s *campaignService) checkOverlap(ctx context.Context, tournamentID, excludeID int, w schedule.Window) error {
	existing, err := s.campaignRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to check campaign overlap: %w", err)
	}
	for _, c := range existing {
		if c.ID == excludeID {
			continue
		}
		if w.Overlaps(c.Window()) {
			return ErrCampaignOverlap
		}
	}
	return nil
}

func (s *campaignService) Create(ctx context.Context, input CampaignInput) (*models.PredictionCampaign, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	w := schedule.Window{Start: input.StartTime.UTC(), End: input.EndTime.UTC()}
	if err := s.checkOverlap(ctx, input.TournamentID, 0, w); err != nil {
		return nil, err
	}

	campaign := &models.PredictionCampaign{
		TournamentID:   tournament.ID,
		TournamentName: tournament.Name,
		StartTime:      w.Start,
		EndTime:        w.End,
		Fields:         input.Fields,
	}
	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		if errors.Is(err, repositories.ErrCampaignInvalidTournament) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

func (s *campaignService) GetByID(ctx context.Context, id int) (*models.PredictionCampaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return campaign, nil
}

func (s *campaignService) GetActiveForTournament(ctx context.Context, tournamentID int) (*models.PredictionCampaign, error) {
	campaign, err := s.campaignRepo.FindActive(ctx, tournamentID, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return campaign, nil
}

func (s *campaignService) List(ctx context.Context) ([]models.PredictionCampaign, error) {
	return s.campaignRepo.List(ctx)
}

func (s *campaignService) Update(ctx context.Context, id int, input CampaignInput) (*models.PredictionCampaign, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	w := schedule.Window{Start: input.StartTime.UTC(), End: input.EndTime.UTC()}
	if err := s.checkOverlap(ctx, input.TournamentID, id, w); err != nil {
		return nil, err
	}

	campaign.TournamentID = tournament.ID
	campaign.TournamentName = tournament.Name
	campaign.StartTime = w.Start
	campaign.EndTime = w.End
	campaign.Fields = input.Fields

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	return campaign, nil
}

func (s *campaignService) Delete(ctx context.Context, id int) error {
	if err := s.campaignRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	return nil
}
