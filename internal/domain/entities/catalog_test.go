package entities

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStages(t *testing.T) {
	require.Equal(t, 12, StageCount)

	for i, st := range Stages() {
		assert.Equal(t, i, st.Index)
		assert.NotEmpty(t, st.Title)
		assert.NotEmpty(t, st.Description)
		assert.NotEmpty(t, st.ImagePrompt)
	}

	first, ok := Stage(0)
	require.True(t, ok)
	assert.Equal(t, "The Sprout", first.Title)

	_, ok = Stage(-1)
	assert.False(t, ok)
	_, ok = Stage(StageCount)
	assert.False(t, ok)
}

func TestFullPrompt(t *testing.T) {
	st, _ := Stage(4)

	p := st.FullPrompt()
	assert.Equal(t, st.ImagePrompt+". "+StylePrompt, p)
	assert.True(t, strings.HasPrefix(p, st.ImagePrompt))
}

func TestCategories(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 4)
	assert.Equal(t, TotalItems, ItemsPerCategory*len(cats))

	for i, c := range cats {
		assert.Equal(t, i, CategoryIndex(c))
		got, ok := CategoryAt(i)
		require.True(t, ok)
		assert.Equal(t, c, got)
		assert.NotEqual(t, "•", c.Emoji())
	}

	assert.Equal(t, -1, CategoryIndex("Fasting"))
	_, ok := CategoryAt(len(cats))
	assert.False(t, ok)
}

func TestTeachingFor(t *testing.T) {
	day := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, TeachingFor(day), TeachingFor(day.Add(time.Hour)))
	assert.Equal(t, TeachingFor(day), TeachingFor(day.AddDate(0, 0, TeachingCount)))
	assert.NotEqual(t, TeachingFor(day), TeachingFor(day.AddDate(0, 0, 1)))
}

func TestNewUser(t *testing.T) {
	u := NewUser(10, 20)

	assert.Equal(t, int64(10), u.ID)
	assert.Equal(t, int64(20), u.ChatID)
	assert.True(t, u.IsActive)
	assert.True(t, u.DailyTeaching)
}
