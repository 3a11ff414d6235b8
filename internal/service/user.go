package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
	logger     *zap.Logger
}

func NewUserService(repository UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repository: repository, logger: logger}
}

// EnsureUser registers the user or refreshes their chat.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64) (*entities.User, error) {
	user := entities.NewUser(userID, chatID)

	created, err := s.repository.Save(ctx, user)
	if err != nil {
		return nil, err
	}
	if created {
		s.logger.Info("new user registered", zap.Int64("user_id", userID))
	}

	return user, nil
}

// ToggleDailyTeaching flips the daily teaching subscription and returns the new value.
func (s *UserService) ToggleDailyTeaching(ctx context.Context, userID int64) (bool, error) {
	user, err := s.repository.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	enabled := !user.DailyTeaching
	if err := s.repository.SetDailyTeaching(ctx, userID, enabled); err != nil {
		return false, err
	}

	return enabled, nil
}

// Deactivate stops all outgoing messages to the user.
func (s *UserService) Deactivate(ctx context.Context, userID int64) error {
	return s.repository.Deactivate(ctx, userID)
}
