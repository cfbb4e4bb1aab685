package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fnitalia/community-hub/models"
)

var ErrNewsNotFound = errors.New("news item not found")

type NewsRepository interface {
	Create(ctx context.Context, item *models.NewsItem) error
	GetByID(ctx context.Context, id int) (*models.NewsItem, error)
	List(ctx context.Context, limit, offset int) ([]models.NewsItem, error)
	Update(ctx context.Context, item *models.NewsItem) error
	UpdateImageKey(ctx context.Context, id int, imageKey *string) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresNewsRepository struct {
	db *sql.DB
}

func NewPostgresNewsRepository(db *sql.DB) NewsRepository {
	return &postgresNewsRepository{db: db}
}

func (r *postgresNewsRepository) Create(ctx context.Context, n *models.NewsItem) error {
	query := `
		INSERT INTO news (title, excerpt, content, date, category, image_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		n.Title, n.Excerpt, n.Content, n.Date, n.Category, n.ImageKey,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

func (r *postgresNewsRepository) GetByID(ctx context.Context, id int) (*models.NewsItem, error) {
	query := `
		SELECT id, title, excerpt, content, date, category, image_key, created_at, updated_at
		FROM news
		WHERE id = $1`

	n := &models.NewsItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.Title, &n.Excerpt, &n.Content, &n.Date, &n.Category,
		&n.ImageKey, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return n, nil
}

func (r *postgresNewsRepository) List(ctx context.Context, limit, offset int) ([]models.NewsItem, error) {
	query := `
		SELECT id, title, excerpt, content, date, category, image_key, created_at, updated_at
		FROM news
		ORDER BY created_at DESC`

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

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.NewsItem, 0)
	for rows.Next() {
		var n models.NewsItem
		if scanErr := rows.Scan(
			&n.ID, &n.Title, &n.Excerpt, &n.Content, &n.Date, &n.Category,
			&n.ImageKey, &n.CreatedAt, &n.UpdatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *postgresNewsRepository) Update(ctx context.Context, n *models.NewsItem) error {
	query := `
		UPDATE news SET
			title = $1,
			excerpt = $2,
			content = $3,
			date = $4,
			category = $5,
			updated_at = now()
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		n.Title, n.Excerpt, n.Content, n.Date, n.Category, n.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrNewsNotFound)
}

func (r *postgresNewsRepository) UpdateImageKey(ctx context.Context, id int, imageKey *string) error {
	query := `UPDATE news SET image_key = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, imageKey, id)
	if err != nil {
		return fmt.Errorf("failed to update news image key: %w", err)
	}
	return checkAffectedRows(result, ErrNewsNotFound)
}

func (r *postgresNewsRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrNewsNotFound)
}

func (r *postgresNewsRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news`).Scan(&count)
	return count, err
}
