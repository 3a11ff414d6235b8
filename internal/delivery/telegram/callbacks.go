package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
)

var errBadCallback = errors.New("invalid callback data")

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(ctx, cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	if _, err := h.userService.EnsureUser(ctx, userID, chatID); err != nil {
		h.log(ctx).Error("failed to ensure user", zap.Int64("user_id", userID), zap.Error(err))
	}

	data := decodeCallback(cb.Data)

	var (
		toast string
		err   error
	)

	switch data.Action {
	case actionJourney:
		err = h.callbackJourney(ctx, cb, userID)
	case actionStats:
		err = h.callbackStats(ctx, cb, userID)
	case actionCategory:
		err = h.callbackCategory(ctx, cb, userID, data)
	case actionToggle:
		toast, err = h.callbackToggle(ctx, cb, userID, data)
	case actionHistory:
		err = h.callbackHistory(ctx, cb, userID, data)
	case actionImage:
		toast, err = h.callbackImage(ctx, cb, userID, data)
	case actionReset:
		err = h.callbackReset(ctx, cb, userID, data)
	default:
		err = errBadCallback
	}

	if err != nil {
		h.log(ctx).Error("callback failed",
			zap.Int64("user_id", userID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		if errors.Is(err, errBadCallback) {
			toast = ""
		} else {
			toast = msgInternalError
		}
	}

	// Remove the user's "clock".
	h.answerCallback(ctx, cb.ID, toast)
}

func (h *Handler) callbackJourney(ctx context.Context, cb *tgbotapi.CallbackQuery, userID int64) error {
	j, err := h.journeyService.Open(ctx, userID)
	if err != nil {
		return err
	}

	state := j.Snapshot()
	return h.replace(cb, renderJourney(state, h.teachingService.Today()), buildJourneyKeyboard(state))
}

func (h *Handler) callbackStats(ctx context.Context, cb *tgbotapi.CallbackQuery, userID int64) error {
	j, err := h.journeyService.Open(ctx, userID)
	if err != nil {
		return err
	}

	return h.replace(cb, renderStats(j.Snapshot()), buildStatsKeyboard())
}

func (h *Handler) callbackCategory(ctx context.Context, cb *tgbotapi.CallbackQuery, userID int64, data callbackData) error {
	idx, ok := data.intParam(0)
	if !ok {
		return errBadCallback
	}
	cat, ok := entities.CategoryAt(idx)
	if !ok {
		return errBadCallback
	}

	j, err := h.journeyService.Open(ctx, userID)
	if err != nil {
		return err
	}

	state := j.Snapshot()
	return h.replace(cb, renderCategory(state, cat), buildCategoryKeyboard(state, idx))
}

// callbackToggle flips one item and redraws its category.
func (h *Handler) callbackToggle(ctx context.Context, cb *tgbotapi.CallbackQuery, userID int64, data callbackData) (string, error) {
	id, ok := data.intParam(0)
	if !ok {
		return "", errBadCallback
	}

	j, err := h.journeyService.Open(ctx, userID)
	if err != nil {
		return "", err
	}

	state, changed := j.Toggle(ctx, id)
	if !changed {
		return "", nil
	}

	item, _ := state.Item(id)
	idx := entities.CategoryIndex(item.Category)
	if err := h.replace(cb, renderCategory(state, item.Category), buildCategoryKeyboard(state, idx)); err != nil {
		return "", err
	}

	if state.ShouldAdvance() {
		return "🌳 All steps complete!", nil
	}
	return "", nil
}

func (h *Handler) callbackHistory(ctx context.Context, cb *tgbotapi.CallbackQuery, userID int64, data callbackData) error {
	stage, ok := data.intParam(0)
	if !ok {
		return errBadCallback
	}

	j, err := h.journeyService.Open(ctx, userID)
	if err != nil {
		return err
	}

	state := j.Snapshot()
	if stage < 0 || stage > state.CurrentStageIndex {
		return errBadCallback
	}
	def, _ := entities.Stage(stage)

	return h.replace(cb, renderHistory(state, def), buildHistoryKeyboard(state, stage))
}

func (h *Handler) callbackImage(ctx context.Context, cb *tgbotapi.CallbackQuery, userID int64, data callbackData) (string, error) {
	chatID := cb.Message.Chat.ID

	switch data.param(0) {
	case imageGenerate:
		return "", h.handleImage(userID, false)(ctx, chatID)

	case imageRegenerate:
		return "", h.handleImage(userID, true)(ctx, chatID)

	case imageShow:
		stage, ok := data.intParam(1)
		if !ok {
			return "", errBadCallback
		}

		j, err := h.journeyService.Open(ctx, userID)
		if err != nil {
			return "", err
		}

		state := j.Snapshot()
		img, ok := state.Image(stage)
		if !ok || stage > state.CurrentStageIndex {
			return msgNoImageYet, nil
		}
		def, _ := entities.Stage(stage)
		return "", h.sendStagePhoto(chatID, def, img)

	default:
		return "", errBadCallback
	}
}

func (h *Handler) callbackReset(ctx context.Context, cb *tgbotapi.CallbackQuery, userID int64, data callbackData) error {
	switch data.param(0) {
	case resetAsk:
		return h.replace(cb, renderResetConfirm(), buildResetConfirmKeyboard())

	case resetConfirm:
		j, err := h.journeyService.Open(ctx, userID)
		if err != nil {
			return err
		}

		state := j.ResetChecks(ctx)
		h.log(ctx).Info("checklist reset", zap.Int64("user_id", userID), zap.Int("stage", state.CurrentStageIndex))

		return h.replace(cb, md(msgResetDone)+"\n\n"+renderJourney(state, h.teachingService.Today()), buildJourneyKeyboard(state))

	case resetCancel:
		j, err := h.journeyService.Open(ctx, userID)
		if err != nil {
			return err
		}

		state := j.Snapshot()
		return h.replace(cb, md(msgResetCancelled)+"\n\n"+renderJourney(state, h.teachingService.Today()), buildJourneyKeyboard(state))

	default:
		return errBadCallback
	}
}

// replace edits the message that carried the callback. Photo messages cannot
// become text, so a new message is sent for them instead.
func (h *Handler) replace(cb *tgbotapi.CallbackQuery, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	chatID := cb.Message.Chat.ID

	if len(cb.Message.Photo) > 0 {
		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		return h.send(msg)
	}

	edit := newEdit(chatID, cb.Message.MessageID, text)
	edit.ReplyMarkup = &kb

	if _, err := h.bot.Send(edit); err != nil && !isNotModified(err) {
		return err
	}
	return nil
}

func (h *Handler) answerCallback(ctx context.Context, callbackID, text string) {
	answer := tgbotapi.NewCallback(callbackID, text)
	if _, err := h.bot.Request(answer); err != nil {
		h.log(ctx).Warn("callback answer error", zap.Error(err))
	}
}

// isNotModified reports Telegram's refusal to apply an edit that changes nothing.
func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
