package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fnitalia/community-hub/models"
	"github.com/lib/pq"
)

var (
	ErrPredictionNotFound        = errors.New("prediction not found")
	ErrPredictionInvalidCampaign = errors.New("prediction references an unknown campaign")
)

type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.Prediction) error
	GetByID(ctx context.Context, id int) (*models.Prediction, error)
	List(ctx context.Context, limit, offset int) ([]models.Prediction, error)
	ListByCampaign(ctx context.Context, campaignID int) ([]models.Prediction, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

func (r *postgresPredictionRepository) Create(ctx context.Context, p *models.Prediction) error {
	query := `
		INSERT INTO predictions (campaign_id, username, twitch_id, responses)
		VALUES ($1, $2, $3, $4)
		RETURNING id, submitted_at`

	err := r.db.QueryRowContext(ctx, query,
		p.CampaignID, p.Username, p.TwitchID, p.Responses,
	).Scan(&p.ID, &p.SubmittedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		return ErrPredictionInvalidCampaign
	}
	return err
}

func (r *postgresPredictionRepository) GetByID(ctx context.Context, id int) (*models.Prediction, error) {
	query := `
		SELECT id, campaign_id, username, twitch_id, responses, submitted_at
		FROM predictions
		WHERE id = $1`

	p := &models.Prediction{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.CampaignID, &p.Username, &p.TwitchID, &p.Responses, &p.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPredictionNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPredictionRepository) List(ctx context.Context, limit, offset int) ([]models.Prediction, error) {
	query := `
		SELECT id, campaign_id, username, twitch_id, responses, submitted_at
		FROM predictions
		ORDER BY submitted_at DESC`

	args := []interface{}{}
	argID := 1
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, limit)
		argID++
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, offset)
	}

	return r.queryPredictions(ctx, query, args...)
}

func (r *postgresPredictionRepository) ListByCampaign(ctx context.Context, campaignID int) ([]models.Prediction, error) {
	query := `
		SELECT id, campaign_id, username, twitch_id, responses, submitted_at
		FROM predictions
		WHERE campaign_id = $1
		ORDER BY submitted_at DESC`
	return r.queryPredictions(ctx, query, campaignID)
}

func (r *postgresPredictionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM predictions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPredictionNotFound)
}

func (r *postgresPredictionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM predictions`).Scan(&count)
	return count, err
}

func (r *postgresPredictionRepository) queryPredictions(ctx context.Context, query string, args ...interface{}) ([]models.Prediction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]models.Prediction, 0)
	for rows.Next() {
		var p models.Prediction
		if scanErr := rows.Scan(
			&p.ID, &p.CampaignID, &p.Username, &p.TwitchID, &p.Responses, &p.SubmittedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}
