package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
)

// ErrRecipientGone is returned by a notifier when the user can no longer be
// reached, e.g. the bot was blocked.
var ErrRecipientGone = errors.New("recipient unreachable")

// DefaultTeachingSchedule sends the teaching of the day at 07:00 UTC.
const DefaultTeachingSchedule = "0 7 * * *"

// TeachingService sends the teaching of the day to subscribed users.
type TeachingService struct {
	users    UserRepository
	notifier TeachingNotifier
	schedule string
	logger   *zap.Logger
	now      func() time.Time
}

// NewTeachingService creates a new teaching service.
func NewTeachingService(users UserRepository, schedule string, logger *zap.Logger) *TeachingService {
	if schedule == "" {
		schedule = DefaultTeachingSchedule
	}
	return &TeachingService{
		users:    users,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *TeachingService) SetNotifier(notifier TeachingNotifier) {
	s.notifier = notifier
}

// Today returns the teaching of the current day.
func (s *TeachingService) Today() string {
	return entities.TeachingFor(s.now().UTC())
}

// Start runs the cron scheduler until ctx is done.
func (s *TeachingService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Info("cron triggered: sending daily teaching")
		if _, err := s.Broadcast(ctx); err != nil {
			s.logger.Error("failed to send daily teaching", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("teaching scheduler started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("teaching scheduler stopped")
	return nil
}

// Broadcast sends today's teaching to every subscriber and returns how many
// deliveries succeeded.
func (s *TeachingService) Broadcast(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, fmt.Errorf("notifier not initialized")
	}

	users, err := s.users.ListTeachingSubscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list subscribers: %w", err)
	}

	teaching := s.Today()
	sent := s.processBatch(ctx, users, teaching)

	s.logger.Info("daily teaching processed",
		zap.Int("subscribers", len(users)),
		zap.Int("total_sent", sent),
	)

	return sent, nil
}

// processBatch delivers concurrently with a bounded number of senders.
func (s *TeachingService) processBatch(ctx context.Context, users []*entities.User, teaching string) int {
	const maxConcurrent = 10
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, u := range users {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{} // Acquire

		go func() {
			defer wg.Done()
			defer func() { <-sem }() // Release

			if err := s.notifier.SendTeaching(u.ID, u.ChatID, teaching); err != nil {
				s.logger.Error("failed to send teaching",
					zap.Int64("user_id", u.ID),
					zap.Error(err))

				if errors.Is(err, ErrRecipientGone) {
					if err := s.users.Deactivate(ctx, u.ID); err != nil {
						s.logger.Error("failed to deactivate user", zap.Int64("user_id", u.ID), zap.Error(err))
					}
				}
				return
			}

			mu.Lock()
			sent++
			mu.Unlock()
		}()
	}

	wg.Wait()
	return sent
}
