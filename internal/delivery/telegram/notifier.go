package telegram

import (
	"errors"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
	"github.com/aliskhannn/faith-journey-bot/internal/service"
)

var (
	_ service.JourneyNotifier  = (*Handler)(nil)
	_ service.TeachingNotifier = (*Handler)(nil)
)

// StageAdvanced congratulates the user on reaching a new stage.
func (h *Handler) StageAdvanced(userID int64, stage entities.StageDefinition) {
	msg := newMessage(userID, renderStageAdvanced(stage))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Dashboard", buildJourneyCallback()),
		),
	)

	if err := h.send(msg); err != nil {
		h.logger.Warn("stage notification not delivered",
			zap.Int64("user_id", userID),
			zap.Int("stage", stage.Index),
			zap.Error(err),
		)
	}
}

// StageImageReady delivers a freshly generated stage illustration.
func (h *Handler) StageImageReady(userID int64, stage entities.StageDefinition, image string) {
	if err := h.sendStagePhoto(userID, stage, image); err != nil {
		h.logger.Warn("stage illustration not delivered",
			zap.Int64("user_id", userID),
			zap.Int("stage", stage.Index),
			zap.Error(err),
		)
	}
}

// SendTeaching posts the teaching of the day and removes yesterday's one.
func (h *Handler) SendTeaching(userID, chatID int64, teaching string) error {
	sent, err := h.bot.Send(newMessage(chatID, renderTeaching(teaching)))
	if err != nil {
		if isForbidden(err) {
			h.journeyService.Forget(userID)
			return service.ErrRecipientGone
		}
		return err
	}

	prev, hadPrev := h.teachingMsgs.UpsertAndGetPrev(userID, chatID, sent.MessageID)
	if hadPrev {
		deleteCmd := tgbotapi.NewDeleteMessage(prev.ChatID, prev.MessageID)
		if _, err := h.bot.Request(deleteCmd); err != nil {
			h.logger.Debug("previous teaching not deleted",
				zap.Int64("user_id", userID),
				zap.Int("message_id", prev.MessageID),
				zap.Error(err),
			)
		}
	}

	return nil
}

// isForbidden reports that the user blocked the bot or the chat is gone.
func isForbidden(err error) bool {
	var apiErr *tgbotapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusForbidden
}
