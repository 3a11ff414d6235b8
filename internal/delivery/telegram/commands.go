package telegram

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
	"github.com/aliskhannn/faith-journey-bot/internal/service"
)

// handleStart greets the user and opens the dashboard.
func (h *Handler) handleStart(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.send(newMessage(chatID, welcomeMarkdownV2())); err != nil {
			return err
		}
		return h.handleJourney(userID)(ctx, chatID)
	}
}

// handleJourney shows the current stage, the overall progress and the category menu.
func (h *Handler) handleJourney(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		j, err := h.journeyService.Open(ctx, userID)
		if err != nil {
			return err
		}

		state := j.Snapshot()
		msg := newMessage(chatID, renderJourney(state, h.teachingService.Today()))
		msg.ReplyMarkup = buildJourneyKeyboard(state)
		return h.send(msg)
	}
}

// handleStats shows per-category analytics.
func (h *Handler) handleStats(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		j, err := h.journeyService.Open(ctx, userID)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, renderStats(j.Snapshot()))
		msg.ReplyMarkup = buildStatsKeyboard()
		return h.send(msg)
	}
}

// handleImage sends the cached illustration of the current stage, or asks the
// image gate for one. force regenerates an existing illustration.
func (h *Handler) handleImage(userID int64, force bool) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		j, err := h.journeyService.Open(ctx, userID)
		if err != nil {
			return err
		}

		state := j.Snapshot()
		if img, ok := state.Image(state.CurrentStageIndex); ok && !force {
			return h.sendStagePhoto(chatID, state.Stage(), img)
		}

		outcome := j.RequestImage(state.CurrentStageIndex, force)
		h.log(ctx).Debug("image requested",
			zap.Int64("user_id", userID),
			zap.Int("stage", state.CurrentStageIndex),
			zap.Bool("force", force),
			zap.Stringer("outcome", outcome),
		)

		return h.send(newPlainMessage(chatID, imageOutcomeText(outcome)))
	}
}

// handleHistory opens the history browser on the current stage.
func (h *Handler) handleHistory(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		j, err := h.journeyService.Open(ctx, userID)
		if err != nil {
			return err
		}

		state := j.Snapshot()
		msg := newMessage(chatID, renderHistory(state, state.Stage()))
		msg.ReplyMarkup = buildHistoryKeyboard(state, state.CurrentStageIndex)
		return h.send(msg)
	}
}

// handleResetAsk asks for confirmation before clearing the checklist.
func (h *Handler) handleResetAsk() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		msg := newMessage(chatID, renderResetConfirm())
		msg.ReplyMarkup = buildResetConfirmKeyboard()
		return h.send(msg)
	}
}

// handleTeachingToggle switches the daily teaching subscription.
func (h *Handler) handleTeachingToggle(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		enabled, err := h.userService.ToggleDailyTeaching(ctx, userID)
		if err != nil {
			return err
		}

		if !enabled {
			return h.send(newPlainMessage(chatID, msgTeachingOff))
		}

		if err := h.send(newPlainMessage(chatID, msgTeachingOn)); err != nil {
			return err
		}
		return h.send(newMessage(chatID, renderTeaching(h.teachingService.Today())))
	}
}

func (h *Handler) sendStagePhoto(chatID int64, stage entities.StageDefinition, image string) error {
	photo, err := newStagePhoto(chatID, stage, image)
	if err != nil {
		return err
	}
	photo.ReplyMarkup = buildImageKeyboard()
	return h.send(photo)
}

func imageOutcomeText(outcome service.ImageOutcome) string {
	switch outcome {
	case service.ImageStarted:
		return msgImageStarted
	case service.ImageBusy:
		return msgImageBusy
	case service.ImageRateLimited:
		return msgImageRateLimited
	case service.ImageCached:
		return msgNoImageYet
	default:
		return msgImageFailed
	}
}
