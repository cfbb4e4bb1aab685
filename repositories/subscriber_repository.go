package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fnitalia/community-hub/models"
	"github.com/lib/pq"
)

var (
	ErrSubscriberNotFound      = errors.New("newsletter subscriber not found")
	ErrSubscriberEmailConflict = errors.New("email is already subscribed")
)

type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *models.NewsletterSubscriber) error
	List(ctx context.Context) ([]models.NewsletterSubscriber, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresSubscriberRepository struct {
	db *sql.DB
}

func NewPostgresSubscriberRepository(db *sql.DB) SubscriberRepository {
	return &postgresSubscriberRepository{db: db}
}

func (r *postgresSubscriberRepository) Create(ctx context.Context, s *models.NewsletterSubscriber) error {
	query := `
		INSERT INTO newsletter_subscribers (email)
		VALUES ($1)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, s.Email).Scan(&s.ID, &s.CreatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrSubscriberEmailConflict
	}
	return err
}

func (r *postgresSubscriberRepository) List(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	query := `
		SELECT id, email, created_at
		FROM newsletter_subscribers
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscribers := make([]models.NewsletterSubscriber, 0)
	for rows.Next() {
		var s models.NewsletterSubscriber
		if scanErr := rows.Scan(&s.ID, &s.Email, &s.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, rows.Err()
}

func (r *postgresSubscriberRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM newsletter_subscribers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSubscriberNotFound)
}

func (r *postgresSubscriberRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM newsletter_subscribers`).Scan(&count)
	return count, err
}
