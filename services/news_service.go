package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fnitalia/community-hub/models"
	"github.com/fnitalia/community-hub/repositories"
	"github.com/fnitalia/community-hub/storage"
)

type NewsService interface {
	Create(ctx context.Context, input NewsInput) (*models.NewsItem, error)
	GetByID(ctx context.Context, id int) (*models.NewsItem, error)
	List(ctx context.Context, limit, offset int) ([]models.NewsItem, error)
	Update(ctx context.Context, id int, input NewsInput) (*models.NewsItem, error)
	Delete(ctx context.Context, id int) error
	UploadImage(ctx context.Context, id int, file io.Reader, contentType string) (*models.NewsItem, error)
}

type NewsInput struct {
	Title    string  `json:"title"`
	Excerpt  string  `json:"excerpt"`
	Content  *string `json:"content"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
}

type newsService struct {
	newsRepo repositories.NewsRepository
	uploader storage.FileUploader
}

func NewNewsService(newsRepo repositories.NewsRepository, uploader storage.FileUploader) NewsService {
	return &newsService{newsRepo: newsRepo, uploader: uploader}
}

func (s *newsService) validate(input NewsInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrNewsTitleRequired
	}
	if strings.TrimSpace(input.Excerpt) == "" || strings.TrimSpace(input.Category) == "" {
		return ErrValidationFailed
	}
	return nil
}

func (s *newsService) Create(ctx context.Context, input NewsInput) (*models.NewsItem, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	item := &models.NewsItem{
		Title:    strings.TrimSpace(input.Title),
		Excerpt:  strings.TrimSpace(input.Excerpt),
		Content:  input.Content,
		Date:     input.Date,
		Category: strings.TrimSpace(input.Category),
	}
	if err := s.newsRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create news item: %w", err)
	}
	s.populateImageURL(item)
	return item, nil
}

func (s *newsService) GetByID(ctx context.Context, id int) (*models.NewsItem, error) {
	item, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	s.populateImageURL(item)
	return item, nil
}

func (s *newsService) List(ctx context.Context, limit, offset int) ([]models.NewsItem, error) {
	items, err := s.newsRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.populateImageURL(&items[i])
	}
	return items, nil
}

func (s *newsService) Update(ctx context.Context, id int, input NewsInput) (*models.NewsItem, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	item, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}

	item.Title = strings.TrimSpace(input.Title)
	item.Excerpt = strings.TrimSpace(input.Excerpt)
	item.Content = input.Content
	item.Date = input.Date
	item.Category = strings.TrimSpace(input.Category)

	if err := s.newsRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to update news item: %w", err)
	}
	s.populateImageURL(item)
	return item, nil
}

func (s *newsService) Delete(ctx context.Context, id int) error {
	item, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return ErrNewsNotFound
		}
		return err
	}

	if err := s.newsRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return ErrNewsNotFound
		}
		return err
	}

	// Orphaned object cleanup is best effort.
	if item.ImageKey != nil {
		_ = s.uploader.Delete(ctx, *item.ImageKey)
	}
	return nil
}

func (s *newsService) UploadImage(ctx context.Context, id int, file io.Reader, contentType string) (*models.NewsItem, error) {
	item, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}

	ext, err := imageExtensionForContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("news/%d/cover_%d%s", id, time.Now().UnixNano(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload news image: %w", err)
	}

	oldKey := item.ImageKey
	if err := s.newsRepo.UpdateImageKey(ctx, id, &result.Key); err != nil {
		_ = s.uploader.Delete(ctx, result.Key)
		return nil, err
	}
	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	item.ImageKey = &result.Key
	s.populateImageURL(item)
	return item, nil
}

func (s *newsService) populateImageURL(item *models.NewsItem) {
	if item.ImageKey != nil {
		url := s.uploader.GetPublicURL(*item.ImageKey)
		item.ImageURL = &url
	}
}
