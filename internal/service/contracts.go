package service

import (
	"context"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
)

// StateStore is the durable key-value storage behind a journey.
type StateStore interface {
	Get(ctx context.Context, userID int64, key string) (string, bool, error)
	SetMany(ctx context.Context, userID int64, values map[string]string) error
}

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	SetDailyTeaching(ctx context.Context, userID int64, enabled bool) error
	Deactivate(ctx context.Context, userID int64) error
	ListTeachingSubscribers(ctx context.Context) ([]*entities.User, error)
}

// ImageGenerator turns a prompt into an image reference (a data URI or URL).
// It returns ErrNoImage when the backend produced nothing.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// JourneyNotifier delivers journey events to the user.
// userID doubles as the chat ID: journeys live in private chats.
type JourneyNotifier interface {
	StageAdvanced(userID int64, stage entities.StageDefinition)
	StageImageReady(userID int64, stage entities.StageDefinition, image string)
}

// TeachingNotifier sends the teaching of the day.
type TeachingNotifier interface {
	SendTeaching(userID, chatID int64, teaching string) error
}
