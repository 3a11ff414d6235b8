package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
	"github.com/aliskhannn/faith-journey-bot/internal/storage"
)

type fakeTeachingNotifier struct {
	mu   sync.Mutex
	sent map[int64]string
	errs map[int64]error
}

func (n *fakeTeachingNotifier) SendTeaching(userID, _ int64, teaching string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.errs[userID]; err != nil {
		return err
	}
	if n.sent == nil {
		n.sent = make(map[int64]string)
	}
	n.sent[userID] = teaching
	return nil
}

func TestTeachingService_Broadcast(t *testing.T) {
	ctx := context.Background()
	users := storage.NewUserStorage()
	for id := int64(1); id <= 4; id++ {
		_, err := users.Save(ctx, entities.NewUser(id, id))
		require.NoError(t, err)
	}
	require.NoError(t, users.SetDailyTeaching(ctx, 3, false))

	notifier := &fakeTeachingNotifier{errs: map[int64]error{4: ErrRecipientGone}}
	svc := NewTeachingService(users, "", zaptest.NewLogger(t))
	svc.SetNotifier(notifier)
	day := time.Date(2026, time.March, 3, 7, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	sent, err := svc.Broadcast(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, map[int64]string{
		1: entities.TeachingFor(day),
		2: entities.TeachingFor(day),
	}, notifier.sent)

	// The unreachable user is deactivated and no longer listed.
	u, err := users.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	subs, err := users.ListTeachingSubscribers(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestTeachingService_BroadcastWithoutNotifier(t *testing.T) {
	svc := NewTeachingService(storage.NewUserStorage(), "", zaptest.NewLogger(t))

	_, err := svc.Broadcast(context.Background())

	assert.Error(t, err)
}

func TestTeachingService_Today(t *testing.T) {
	svc := NewTeachingService(storage.NewUserStorage(), "", zaptest.NewLogger(t))
	day := time.Date(2026, time.October, 17, 23, 30, 0, 0, time.FixedZone("UTC+5", 5*3600))
	svc.now = func() time.Time { return day }

	assert.Equal(t, entities.TeachingFor(day.UTC()), svc.Today())
}

func TestTeachingService_StartRejectsBadSchedule(t *testing.T) {
	svc := NewTeachingService(storage.NewUserStorage(), "every morning", zaptest.NewLogger(t))

	err := svc.Start(context.Background())

	assert.ErrorContains(t, err, "every morning")
}

func TestTeachingService_StartStopsWithContext(t *testing.T) {
	svc := NewTeachingService(storage.NewUserStorage(), DefaultTeachingSchedule, zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
