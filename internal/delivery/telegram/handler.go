package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	bot             BotAPI
	logger          *zap.Logger
	userService     UserService
	journeyService  JourneyService
	teachingService TeachingService
	teachingMsgs    MessageStorage
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	userService UserService,
	journeyService JourneyService,
	teachingService TeachingService,
	teachingMsgs MessageStorage,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		userService:     userService,
		journeyService:  journeyService,
		teachingService: teachingService,
		teachingMsgs:    teachingMsgs,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	log := h.logger.With(zap.String("request_id", uuid.NewString()))
	ctx = withLogger(ctx, log)

	if update.CallbackQuery != nil {
		log.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		log.Debug("update without message and callback")
		return
	}

	log.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	if from == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if _, err := h.userService.EnsureUser(ctx, from.ID, chatID); err != nil {
		log.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	if !update.Message.IsCommand() {
		_ = h.send(newPlainMessage(chatID, msgUseCommands))
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.handleStart(from.ID))(ctx, chatID)

	case "journey":
		_ = h.withErrorHandling(h.handleJourney(from.ID))(ctx, chatID)

	case "stats":
		_ = h.withErrorHandling(h.handleStats(from.ID))(ctx, chatID)

	case "image":
		_ = h.withErrorHandling(h.handleImage(from.ID, false))(ctx, chatID)

	case "history":
		_ = h.withErrorHandling(h.handleHistory(from.ID))(ctx, chatID)

	case "reset":
		_ = h.withErrorHandling(h.handleResetAsk())(ctx, chatID)

	case "teaching":
		_ = h.withErrorHandling(h.handleTeachingToggle(from.ID))(ctx, chatID)

	case "help":
		_ = h.send(newMessage(chatID, helpMarkdownV2()))

	default:
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// Commands returns the command menu registered with Telegram.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start your faith journey"},
		{Command: "journey", Description: "Current stage and mission dashboard"},
		{Command: "stats", Description: "Growth analytics by category"},
		{Command: "image", Description: "Show the current stage illustration"},
		{Command: "history", Description: "Browse the stages you have reached"},
		{Command: "reset", Description: "Clear all checks of the current stage"},
		{Command: "teaching", Description: "Turn the daily teaching on or off"},
		{Command: "help", Description: "Help"},
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	_ = h.send(newPlainMessage(chatID, err))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
