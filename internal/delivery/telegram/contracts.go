package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
	"github.com/aliskhannn/faith-journey-bot/internal/service"
	"github.com/aliskhannn/faith-journey-bot/internal/storage"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) (*entities.User, error)
	ToggleDailyTeaching(ctx context.Context, userID int64) (bool, error)
}

type JourneyService interface {
	Open(ctx context.Context, userID int64) (*service.Journey, error)
	Forget(userID int64)
}

type TeachingService interface {
	Today() string
}

// MessageStorage remembers the last teaching message per user.
type MessageStorage interface {
	UpsertAndGetPrev(userID int64, chatID int64, messageID int) (storage.SentMessage, bool)
}
