package services

import (
	"context"
	"time"

	"github.com/fnitalia/community-hub/models"
	"github.com/fnitalia/community-hub/repositories"
	"github.com/fnitalia/community-hub/schedule"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	newsRepo       repositories.NewsRepository
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	campaignRepo   repositories.CampaignRepository
	predictionRepo repositories.PredictionRepository
	subscriberRepo repositories.SubscriberRepository
	now            func() time.Time
}

func NewDashboardService(
	newsRepo repositories.NewsRepository,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	campaignRepo repositories.CampaignRepository,
	predictionRepo repositories.PredictionRepository,
	subscriberRepo repositories.SubscriberRepository,
) DashboardService {
	return &dashboardService{
		newsRepo:       newsRepo,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		campaignRepo:   campaignRepo,
		predictionRepo: predictionRepo,
		subscriberRepo: subscriberRepo,
		now:            time.Now,
	}
}

// GetStats fans the counter queries out concurrently; the stats are
// independent reads against different tables.
func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	now := s.now()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.newsRepo.Count(gctx)
		stats.NewsTotal = n
		return err
	})
	g.Go(func() error {
		n, err := s.tournamentRepo.Count(gctx)
		stats.TournamentsTotal = n
		return err
	})
	g.Go(func() error {
		tournaments, err := s.tournamentRepo.List(gctx, repositories.ListTournamentsFilter{})
		if err != nil {
			return err
		}
		live := 0
		for _, t := range tournaments {
			if schedule.IsLive(now, t.Window()) {
				live++
			}
		}
		stats.TournamentsLive = live
		return nil
	})
	g.Go(func() error {
		n, err := s.playerRepo.Count(gctx)
		stats.PlayersTotal = n
		return err
	})
	g.Go(func() error {
		n, err := s.campaignRepo.Count(gctx)
		stats.CampaignsTotal = n
		return err
	})
	g.Go(func() error {
		n, err := s.campaignRepo.CountActive(gctx, now)
		stats.CampaignsActive = n
		return err
	})
	g.Go(func() error {
		n, err := s.predictionRepo.Count(gctx)
		stats.PredictionsTotal = n
		return err
	})
	g.Go(func() error {
		n, err := s.subscriberRepo.Count(gctx)
		stats.SubscribersTotal = n
		return err
	})

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
