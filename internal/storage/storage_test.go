package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
)

func TestStateStorage(t *testing.T) {
	ctx := context.Background()
	s := NewStateStorage()

	_, ok, err := s.Get(ctx, 1, "stage")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetMany(ctx, 1, map[string]string{"stage": "2"}))
	require.NoError(t, s.SetMany(ctx, 1, map[string]string{"stage": "3", "images": "{}"}))

	v, ok, err := s.Get(ctx, 1, "stage")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3", v)

	_, ok, _ = s.Get(ctx, 2, "stage")
	assert.False(t, ok, "values are scoped per user")
}

func TestUserStorage(t *testing.T) {
	ctx := context.Background()
	s := NewUserStorage()

	created, err := s.Save(ctx, entities.NewUser(2, 2))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Save(ctx, entities.NewUser(1, 1))
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, s.SetDailyTeaching(ctx, 2, false))

	u := entities.NewUser(2, 20)
	created, err = s.Save(ctx, u)
	require.NoError(t, err)
	assert.False(t, created)
	assert.False(t, u.DailyTeaching, "existing preference is reported back")

	subs, err := s.ListTeachingSubscribers(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, int64(1), subs[0].ID)

	require.NoError(t, s.SetDailyTeaching(ctx, 2, true))
	require.NoError(t, s.Deactivate(ctx, 1))
	subs, err = s.ListTeachingSubscribers(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, int64(2), subs[0].ID)
	assert.Equal(t, int64(20), subs[0].ChatID)

	assert.ErrorIs(t, s.SetDailyTeaching(ctx, 99, true), ErrUserNotFound)
	_, err = s.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, s.Deactivate(ctx, 99))
}

func TestMessageStorage_UpsertAndGetPrev(t *testing.T) {
	s := NewMessageStorage()

	_, hadPrev := s.UpsertAndGetPrev(1, 10, 100)
	assert.False(t, hadPrev)

	prev, hadPrev := s.UpsertAndGetPrev(1, 10, 101)
	require.True(t, hadPrev)
	assert.Equal(t, int64(10), prev.ChatID)
	assert.Equal(t, 100, prev.MessageID)

	cur, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, 101, cur.MessageID)

	s.Delete(1)
	_, ok = s.Get(1)
	assert.False(t, ok)
}
