package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fnitalia/community-hub/models"
	"github.com/lib/pq"
)

var (
	ErrCampaignNotFound          = errors.New("prediction campaign not found")
	ErrCampaignInvalidTournament = errors.New("campaign references an unknown tournament")
	ErrCampaignInUse             = errors.New("campaign has predictions attached")
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.PredictionCampaign) error
	GetByID(ctx context.Context, id int) (*models.PredictionCampaign, error)
	List(ctx context.Context) ([]models.PredictionCampaign, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.PredictionCampaign, error)
	FindActive(ctx context.Context, tournamentID int, now time.Time) (*models.PredictionCampaign, error)
	Update(ctx context.Context, campaign *models.PredictionCampaign) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context, now time.Time) (int, error)
}

type postgresCampaignRepository struct {
	db *sql.DB
}

func NewPostgresCampaignRepository(db *sql.DB) CampaignRepository {
	return &postgresCampaignRepository{db: db}
}

const campaignColumns = `id, tournament_id, tournament_name, start_time, end_time, fields, created_at`

func (r *postgresCampaignRepository) Create(ctx context.Context, c *models.PredictionCampaign) error {
	query := `
		INSERT INTO prediction_campaigns (tournament_id, tournament_name, start_time, end_time, fields)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		c.TournamentID, c.TournamentName, c.StartTime, c.EndTime, c.Fields,
	).Scan(&c.ID, &c.CreatedAt)

	return r.handleCampaignError(err)
}

func (r *postgresCampaignRepository) GetByID(ctx context.Context, id int) (*models.PredictionCampaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM prediction_campaigns WHERE id = $1`

	c := &models.PredictionCampaign{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.TournamentID, &c.TournamentName, &c.StartTime, &c.EndTime, &c.Fields, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresCampaignRepository) List(ctx context.Context) ([]models.PredictionCampaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM prediction_campaigns ORDER BY created_at DESC`
	return r.queryCampaigns(ctx, query)
}

func (r *postgresCampaignRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.PredictionCampaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM prediction_campaigns WHERE tournament_id = $1 ORDER BY start_time`
	return r.queryCampaigns(ctx, query, tournamentID)
}

// FindActive returns the campaign whose window contains now for the given
// tournament. The overlap invariant enforced at write time guarantees at
// most one row can match.
func (r *postgresCampaignRepository) FindActive(ctx context.Context, tournamentID int, now time.Time) (*models.PredictionCampaign, error) {
	query := `
		SELECT ` + campaignColumns + `
		FROM prediction_campaigns
		WHERE tournament_id = $1 AND start_time <= $2 AND end_time > $2`

	c := &models.PredictionCampaign{}
	err := r.db.QueryRowContext(ctx, query, tournamentID, now).Scan(
		&c.ID, &c.TournamentID, &c.TournamentName, &c.StartTime, &c.EndTime, &c.Fields, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresCampaignRepository) Update(ctx context.Context, c *models.PredictionCampaign) error {
	query := `
		UPDATE prediction_campaigns SET
			tournament_id = $1,
			tournament_name = $2,
			start_time = $3,
			end_time = $4,
			fields = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		c.TournamentID, c.TournamentName, c.StartTime, c.EndTime, c.Fields, c.ID,
	)
	if err != nil {
		return r.handleCampaignError(err)
	}
	return checkAffectedRows(result, ErrCampaignNotFound)
}

func (r *postgresCampaignRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prediction_campaigns WHERE id = $1`, id)
	if err != nil {
		return r.handleCampaignError(err)
	}
	return checkAffectedRows(result, ErrCampaignNotFound)
}

func (r *postgresCampaignRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prediction_campaigns`).Scan(&count)
	return count, err
}

func (r *postgresCampaignRepository) CountActive(ctx context.Context, now time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM prediction_campaigns WHERE start_time <= $1 AND end_time > $1`, now,
	).Scan(&count)
	return count, err
}

func (r *postgresCampaignRepository) queryCampaigns(ctx context.Context, query string, args ...interface{}) ([]models.PredictionCampaign, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]models.PredictionCampaign, 0)
	for rows.Next() {
		var c models.PredictionCampaign
		if scanErr := rows.Scan(
			&c.ID, &c.TournamentID, &c.TournamentName, &c.StartTime, &c.EndTime, &c.Fields, &c.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *postgresCampaignRepository) handleCampaignError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		switch pqErr.Constraint {
		case "prediction_campaigns_tournament_id_fkey":
			return ErrCampaignInvalidTournament
		default:
			return ErrCampaignInUse
		}
	}
	return fmt.Errorf("campaign repository: %w", err)
}
