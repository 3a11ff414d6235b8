package telegram

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
)

func callbackOf(b tgbotapi.InlineKeyboardButton) string {
	if b.CallbackData == nil {
		return ""
	}
	return *b.CallbackData
}

func TestBuildCategoryKeyboard(t *testing.T) {
	state := entities.NewProgressState()
	state.ToggleItem(32) // second Bible Reading item

	kb := buildCategoryKeyboard(state, 1)

	// Six rows of five items plus navigation.
	require.Len(t, kb.InlineKeyboard, 7)
	for _, row := range kb.InlineKeyboard[:6] {
		assert.Len(t, row, itemsPerRow)
	}

	first := kb.InlineKeyboard[0]
	assert.Equal(t, "▫️ 1", first[0].Text)
	assert.Equal(t, "tog:31", callbackOf(first[0]))
	assert.Equal(t, "✅ 2", first[1].Text)
	assert.Equal(t, "tog:32", callbackOf(first[1]))

	nav := kb.InlineKeyboard[6]
	require.Len(t, nav, 3)
	assert.Equal(t, "cat:0", callbackOf(nav[0]))
	assert.Equal(t, "journey", callbackOf(nav[1]))
	assert.Equal(t, "cat:2", callbackOf(nav[2]))
}

func TestBuildCategoryKeyboard_Wraps(t *testing.T) {
	kb := buildCategoryKeyboard(entities.NewProgressState(), 0)

	nav := kb.InlineKeyboard[len(kb.InlineKeyboard)-1]
	assert.Equal(t, "cat:3", callbackOf(nav[0]))
	assert.Equal(t, "cat:1", callbackOf(nav[2]))
}

func TestBuildJourneyKeyboard(t *testing.T) {
	state := entities.NewProgressState()
	for id := 1; id <= 15; id++ {
		state.ToggleItem(id)
	}

	kb := buildJourneyKeyboard(state)

	require.Len(t, kb.InlineKeyboard, 4)
	assert.Equal(t, "🔥 Prayer 50%", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "cat:0", callbackOf(kb.InlineKeyboard[0][0]))
	assert.Equal(t, "cat:3", callbackOf(kb.InlineKeyboard[1][1]))
	assert.Equal(t, "img:gen", callbackOf(kb.InlineKeyboard[2][0]))
	assert.Equal(t, "hist:0", callbackOf(kb.InlineKeyboard[2][1]))
}

func TestBuildHistoryKeyboard(t *testing.T) {
	state := entities.NewProgressState()
	state.CurrentStageIndex = 2
	state.SetImage(1, "img")

	t.Run("middle stage", func(t *testing.T) {
		kb := buildHistoryKeyboard(state, 1)

		require.Len(t, kb.InlineKeyboard, 3)
		assert.Equal(t, "hist:0", callbackOf(kb.InlineKeyboard[0][0]))
		assert.Equal(t, "hist:2", callbackOf(kb.InlineKeyboard[0][1]))
		assert.Equal(t, "img:show:1", callbackOf(kb.InlineKeyboard[1][0]))
	})

	t.Run("current stage without image", func(t *testing.T) {
		kb := buildHistoryKeyboard(state, 2)

		require.Len(t, kb.InlineKeyboard, 2)
		require.Len(t, kb.InlineKeyboard[0], 1)
		assert.Equal(t, "hist:1", callbackOf(kb.InlineKeyboard[0][0]))
		assert.Equal(t, "journey", callbackOf(kb.InlineKeyboard[1][0]))
	})
}

func TestPhotoFile(t *testing.T) {
	t.Run("data URI", func(t *testing.T) {
		f, err := photoFile(2, "data:image/jpeg;base64,/9j/")
		require.NoError(t, err)

		fb, ok := f.(tgbotapi.FileBytes)
		require.True(t, ok)
		assert.Equal(t, "stage-3.jpeg", fb.Name)
		assert.Equal(t, []byte{0xff, 0xd8, 0xff}, fb.Bytes)
	})

	t.Run("URL", func(t *testing.T) {
		f, err := photoFile(0, "https://example.com/sprout.png")
		require.NoError(t, err)
		assert.Equal(t, tgbotapi.FileURL("https://example.com/sprout.png"), f)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, uri := range []string{
			"data:image/png,plain",
			"data:image/png;base64",
			"data:image/png;base64,!!!",
		} {
			_, err := photoFile(0, uri)
			assert.ErrorIs(t, err, errBadDataURI, uri)
		}
	})
}

func TestBuildProgressBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]", buildProgressBar(15, 30, 10))
	assert.Equal(t, "[██████████]", buildProgressBar(40, 30, 10))
	assert.Equal(t, strings.Repeat("░", 5), buildProgressBar(0, 0, 5))
}

func TestRenderJourney(t *testing.T) {
	state := entities.NewProgressState()

	text := renderJourney(state, "Give love.")
	assert.Contains(t, text, "Stage 1 of 12")
	assert.Contains(t, text, "The Sprout")
	assert.Contains(t, text, "Give love\\.")
	assert.Contains(t, text, "0 / 120 steps \\(0%\\)")

	for i := range state.Items {
		state.Items[i].Checked = true
	}
	assert.Contains(t, renderJourney(state, ""), "All steps complete")

	state.CurrentStageIndex = entities.StageCount - 1
	assert.Contains(t, renderJourney(state, ""), "harvest is complete")
}

func TestRenderStats(t *testing.T) {
	state := entities.NewProgressState()
	for id := 31; id <= 40; id++ {
		state.ToggleItem(id)
	}

	text := renderStats(state)

	assert.Contains(t, text, "Bible Reading")
	assert.Contains(t, text, "10/30 \\(33%\\)")
	assert.Contains(t, text, "Overall: 8%")
}
