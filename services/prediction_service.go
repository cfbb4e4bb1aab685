package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fnitalia/community-hub/models"
	"github.com/fnitalia/community-hub/repositories"
)

type PredictionService interface {
	Submit(ctx context.Context, input SubmitPredictionInput) (*models.Prediction, error)
	ListFeed(ctx context.Context, campaignID, limit, offset int) ([]models.Prediction, error)
	Delete(ctx context.Context, id int) error
}

type SubmitPredictionInput struct {
	CampaignID int                `json:"campaign_id"`
	Username   string             `json:"username"`
	TwitchID   string             `json:"twitch_id"`
	Responses  models.ResponseMap `json:"responses"`
}

// predictionAccepted is the message pushed to the predictions room when a
// submission passes validation.
type predictionAccepted struct {
	CampaignID     int       `json:"campaign_id"`
	TournamentName string    `json:"tournament_name"`
	Username       string    `json:"username"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

type predictionService struct {
	predictionRepo repositories.PredictionRepository
	campaignRepo   repositories.CampaignRepository
	hub            Broadcaster
	now            func() time.Time
}

func NewPredictionService(
	predictionRepo repositories.PredictionRepository,
	campaignRepo repositories.CampaignRepository,
	hub Broadcaster,
) PredictionService {
	return &predictionService{
		predictionRepo: predictionRepo,
		campaignRepo:   campaignRepo,
		hub:            hub,
		now:            time.Now,
	}
}

// Submit validates a submission against the campaign's field schema and the
// campaign window, then persists it. Validation is server-side only: the
// stored row is the trust boundary.
func (s *predictionService) Submit(ctx context.Context, input SubmitPredictionInput) (*models.Prediction, error) {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.TwitchID) == "" {
		return nil, ErrPredictionUsernameMissing
	}

	campaign, err := s.campaignRepo.GetByID(ctx, input.CampaignID)
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	if !campaign.IsActive(s.now()) {
		return nil, ErrCampaignNotActive
	}

	if problems := campaign.Fields.ValidateResponses(input.Responses); problems != nil {
		return nil, &ValidationError{Base: ErrPredictionInvalid, Problems: problems}
	}

	prediction := &models.Prediction{
		CampaignID: campaign.ID,
		Username:   strings.TrimSpace(input.Username),
		TwitchID:   strings.TrimSpace(input.TwitchID),
		Responses:  input.Responses,
	}
	if err := s.predictionRepo.Create(ctx, prediction); err != nil {
		if errors.Is(err, repositories.ErrPredictionInvalidCampaign) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to store prediction: %w", err)
	}

	s.hub.BroadcastToRoom(RoomPredictions, predictionAccepted{
		CampaignID:     campaign.ID,
		TournamentName: campaign.TournamentName,
		Username:       prediction.Username,
		SubmittedAt:    prediction.SubmittedAt,
	})
	return prediction, nil
}

func (s *predictionService) ListFeed(ctx context.Context, campaignID, limit, offset int) ([]models.Prediction, error) {
	if campaignID > 0 {
		return s.predictionRepo.ListByCampaign(ctx, campaignID)
	}
	return s.predictionRepo.List(ctx, limit, offset)
}

func (s *predictionService) Delete(ctx context.Context, id int) error {
	if err := s.predictionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPredictionNotFound) {
			return ErrPredictionNotFound
		}
		return err
	}
	return nil
}
