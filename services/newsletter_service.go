package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fnitalia/community-hub/models"
	"github.com/fnitalia/community-hub/repositories"
)

// Mailer sends one message to one recipient. Satisfied by *EmailService.
type Mailer interface {
	SendEmail(to string, subject string, body string) error
}

type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	ListSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error)
	Unsubscribe(ctx context.Context, id int) error
	SendBroadcast(ctx context.Context, subject, body string) (int, error)
}

type newsletterService struct {
	subscriberRepo repositories.SubscriberRepository
	mailer         Mailer
	logger         *slog.Logger
}

func NewNewsletterService(
	subscriberRepo repositories.SubscriberRepository,
	mailer Mailer,
	logger *slog.Logger,
) NewsletterService {
	return &newsletterService{
		subscriberRepo: subscriberRepo,
		mailer:         mailer,
		logger:         logger,
	}
}

func (s *newsletterService) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	subscriber := &models.NewsletterSubscriber{Email: email}
	if err := s.subscriberRepo.Create(ctx, subscriber); err != nil {
		if errors.Is(err, repositories.ErrSubscriberEmailConflict) {
			return nil, ErrSubscriberEmailConflict
		}
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}
	return subscriber, nil
}

func (s *newsletterService) ListSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	return s.subscriberRepo.List(ctx)
}

func (s *newsletterService) Unsubscribe(ctx context.Context, id int) error {
	if err := s.subscriberRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrSubscriberNotFound) {
			return ErrSubscriberNotFound
		}
		return err
	}
	return nil
}

// SendBroadcast mails every subscriber and returns how many sends succeeded.
// Individual failures are logged and skipped so one bad address does not
// abort the whole run.
func (s *newsletterService) SendBroadcast(ctx context.Context, subject, body string) (int, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(body) == "" {
		return 0, ErrValidationFailed
	}

	subscribers, err := s.subscriberRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list subscribers: %w", err)
	}

	sent := 0
	for _, sub := range subscribers {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := s.mailer.SendEmail(sub.Email, subject, body); err != nil {
			s.logger.Error("newsletter send failed",
				slog.String("email", sub.Email),
				slog.Any("error", err),
			)
			continue
		}
		sent++
	}
	return sent, nil
}
