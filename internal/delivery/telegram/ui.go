package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
)

const itemsPerRow = 5

// buildJourneyKeyboard builds the dashboard keyboard: one button per category
// with its percentage, then the stage tools.
func buildJourneyKeyboard(state *entities.ProgressState) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	stats := state.CategoryStats()
	for i := 0; i < len(stats); i += 2 {
		var row []tgbotapi.InlineKeyboardButton
		for j := i; j < i+2 && j < len(stats); j++ {
			st := stats[j]
			label := fmt.Sprintf("%s %s %d%%", st.Category.Emoji(), st.Category, st.Percent)
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildCategoryCallback(j)))
		}
		rows = append(rows, row)
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🖼 Illustration", buildImageCallback(imageGenerate)),
			tgbotapi.NewInlineKeyboardButtonData("📜 History", buildHistoryCallback(state.CurrentStageIndex)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Analytics", buildStatsCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Reset", buildResetCallback(resetAsk)),
		),
	)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildCategoryKeyboard builds the toggle grid of one category followed by
// navigation to the neighbouring categories.
func buildCategoryKeyboard(state *entities.ProgressState, categoryIdx int) tgbotapi.InlineKeyboardMarkup {
	cat, _ := entities.CategoryAt(categoryIdx)
	items := state.ItemsIn(cat)

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, it := range items {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(itemButtonLabel(it, i+1), buildToggleCallback(it.ID)))
		if len(row) == itemsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	n := len(entities.Categories())
	prev := (categoryIdx + n - 1) % n
	next := (categoryIdx + 1) % n

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️", buildCategoryCallback(prev)),
		tgbotapi.NewInlineKeyboardButtonData("🏠 Dashboard", buildJourneyCallback()),
		tgbotapi.NewInlineKeyboardButtonData("▶️", buildCategoryCallback(next)),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func itemButtonLabel(it entities.ChecklistItem, n int) string {
	if it.Checked {
		return "✅ " + strconv.Itoa(n)
	}
	return "▫️ " + strconv.Itoa(n)
}

// buildHistoryKeyboard builds pagination over the reached stages.
func buildHistoryKeyboard(state *entities.ProgressState, stage int) tgbotapi.InlineKeyboardMarkup {
	var nav []tgbotapi.InlineKeyboardButton
	if stage > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", buildHistoryCallback(stage-1)))
	}
	if stage < state.CurrentStageIndex {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildHistoryCallback(stage+1)))
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	if _, ok := state.Image(stage); ok {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🖼 Show illustration", buildShowImageCallback(stage)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 Dashboard", buildJourneyCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildStatsKeyboard builds keyboard for the analytics screen.
func buildStatsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildStatsCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Dashboard", buildJourneyCallback()),
		),
	)
}

// buildImageKeyboard is attached to stage photos.
func buildImageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎨 Regenerate", buildImageCallback(imageRegenerate)),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Dashboard", buildJourneyCallback()),
		),
	)
}

func buildResetConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, reset", buildResetCallback(resetConfirm)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", buildResetCallback(resetCancel)),
		),
	)
}
