// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
)

// Plain text messages.
const (
	msgInternalError    = "Something went wrong. Please try again later."
	msgUnknownCommand   = "Unknown command. Use /journey to open your dashboard or /help for the list of commands."
	msgUseCommands      = "Use /journey to open your mission dashboard."
	msgResetDone        = "Checklist cleared. Your stage and illustrations are kept."
	msgResetCancelled   = "Reset cancelled."
	msgImageStarted     = "🎨 Creating your campus view… it will arrive here shortly."
	msgImageBusy        = "🎨 An illustration is already being created. Please wait a moment."
	msgImageFailed      = "The illustration could not be created right now. Try again later."
	msgImageRateLimited = "You have regenerated the illustration too often. Please try again later."
	msgNoImageYet       = "This stage has no illustration yet."
	msgTeachingOn       = "🕊 Daily teaching is on. You will receive it every morning."
	msgTeachingOff      = "Daily teaching is off. Use /teaching to turn it back on."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMarkdownV2 builds the /start greeting.
func welcomeMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("Welcome to your Faith Journey 🌱"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf(
		"Every stage has %d steps: %d prayers, %d Bible readings, %d Truth Book readings and %d sermons. "+
			"Check them off as you go. When all %d are done, your tree grows into the next stage.",
		entities.TotalItems,
		entities.ItemsPerCategory, entities.ItemsPerCategory, entities.ItemsPerCategory, entities.ItemsPerCategory,
		entities.TotalItems,
	)))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("There are %d stages, from the first sprout to the harvest.", entities.StageCount)))

	return sb.String()
}

func helpMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("Commands"))
	sb.WriteString("\n\n")
	for _, c := range Commands() {
		sb.WriteString(md(fmt.Sprintf("/%s — %s", c.Command, c.Description)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// stageCaption is the short stage title line used under photos.
func stageCaption(stage entities.StageDefinition) string {
	return fmt.Sprintf("%s\n%s",
		bold(fmt.Sprintf("Growth Phase %d · %s", stage.Index+1, stage.Title)),
		md(stage.Description),
	)
}

// renderJourney renders the mission dashboard.
func renderJourney(state *entities.ProgressState, teaching string) string {
	stage := state.Stage()
	checked := state.CheckedCount()

	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("🌱 Stage %d of %d · %s", stage.Index+1, entities.StageCount, stage.Title)))
	sb.WriteString("\n")
	sb.WriteString(md(stage.Description))
	sb.WriteString("\n\n")

	if teaching != "" {
		sb.WriteString(italic(fmt.Sprintf("“%s”", teaching)))
		sb.WriteString("\n\n")
	}

	sb.WriteString(md(buildProgressBar(checked, entities.TotalItems, 20)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("✅ %d / %d steps (%d%%)", checked, entities.TotalItems, state.OverallPercent())))
	sb.WriteString("\n\n")

	switch {
	case state.ShouldAdvance():
		sb.WriteString(bold("All steps complete! Your tree is growing…"))
	case state.IsFinalStage() && checked == entities.TotalItems:
		sb.WriteString(bold("🏆 The harvest is complete. Well done, faithful servant!"))
	default:
		sb.WriteString(md(fmt.Sprintf("Complete %d steps to reach the next stage.", entities.TotalItems)))
	}

	return sb.String()
}

// renderStats renders per-category analytics.
func renderStats(state *entities.ProgressState) string {
	var sb strings.Builder

	sb.WriteString(bold("📊 Growth Analytics"))
	sb.WriteString("\n\n")

	for _, st := range state.CategoryStats() {
		sb.WriteString(md(fmt.Sprintf("%s %s", st.Category.Emoji(), st.Category)))
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s %d/%d (%d%%)", buildProgressBar(st.Done, st.Total, 10), st.Done, st.Total, st.Percent)))
		sb.WriteString("\n\n")
	}

	sb.WriteString(bold(fmt.Sprintf("Overall: %d%%", state.OverallPercent())))
	sb.WriteString(md(fmt.Sprintf(" (%d/%d)", state.CheckedCount(), entities.TotalItems)))

	return sb.String()
}

// renderCategory renders the checklist header of one category.
func renderCategory(state *entities.ProgressState, cat entities.Category) string {
	var stat entities.CategoryStat
	for _, st := range state.CategoryStats() {
		if st.Category == cat {
			stat = st
			break
		}
	}

	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("%s %s", cat.Emoji(), cat)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("%d/%d done (%d%%)", stat.Done, stat.Total, stat.Percent)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Overall: %d/%d (%d%%)", state.CheckedCount(), entities.TotalItems, state.OverallPercent())))

	if state.ShouldAdvance() {
		sb.WriteString("\n\n")
		sb.WriteString(bold("All steps complete! Your tree is growing…"))
	}

	return sb.String()
}

// renderHistory renders a reached stage in the history browser.
func renderHistory(state *entities.ProgressState, stage entities.StageDefinition) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("📜 Evolution Phase %d / %d", stage.Index+1, state.CurrentStageIndex+1)))
	sb.WriteString("\n\n")
	sb.WriteString(bold(stage.Title))
	sb.WriteString("\n")
	sb.WriteString(md(stage.Description))
	sb.WriteString("\n\n")

	if _, ok := state.Image(stage.Index); ok {
		sb.WriteString(md("🖼 Illustration available."))
	} else {
		sb.WriteString(md("No illustration saved for this stage."))
	}

	return sb.String()
}

func renderStageAdvanced(stage entities.StageDefinition) string {
	return bold(fmt.Sprintf("🎉 Congratulations! You have grown to Stage %d: %s!", stage.Index+1, stage.Title)) +
		"\n\n" + md(stage.Description)
}

func renderResetConfirm() string {
	return bold("Reset the checklist?") + "\n\n" +
		md("All checks of the current stage will be cleared. Your stage and illustrations are kept.")
}

func renderTeaching(teaching string) string {
	return bold("🕊 Teaching of the day") + "\n\n" + italic(teaching)
}
