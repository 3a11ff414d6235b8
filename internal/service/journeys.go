package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// SessionConfig bounds the number of journeys kept in memory.
type SessionConfig struct {
	MaxSessions int
	TTL         time.Duration
}

// JourneyService hands out the single Journey of each user. Idle journeys
// are evicted and closed, which cancels any scheduled stage transition.
type JourneyService struct {
	store    *ProgressStore
	images   ImageGenerator
	cfg      JourneyConfig
	logger   *zap.Logger
	notifier JourneyNotifier

	mu       sync.Mutex
	sessions *expirable.LRU[int64, *Journey]

	// drained collects journeys evicted while Close purges the cache.
	drainMu sync.Mutex
	drained []*Journey
}

// NewJourneyService creates a new journey service.
func NewJourneyService(
	store *ProgressStore,
	images ImageGenerator,
	cfg JourneyConfig,
	sessions SessionConfig,
	logger *zap.Logger,
) *JourneyService {
	if sessions.MaxSessions <= 0 {
		sessions.MaxSessions = 1000
	}
	if sessions.TTL <= 0 {
		sessions.TTL = 30 * time.Minute
	}

	s := &JourneyService{
		store:  store,
		images: images,
		cfg:    cfg,
		logger: logger,
	}
	s.sessions = expirable.NewLRU[int64, *Journey](sessions.MaxSessions, s.onEvict, sessions.TTL)
	return s
}

// SetNotifier sets the notifier (called after handler is created).
func (s *JourneyService) SetNotifier(notifier JourneyNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = notifier
}

// Open returns the live journey of userID, restoring it from storage when
// needed. A freshly restored journey resumes an interrupted stage transition
// and requests the image of its current stage if none is cached.
func (s *JourneyService) Open(ctx context.Context, userID int64) (*Journey, error) {
	s.mu.Lock()
	if j, ok := s.sessions.Get(userID); ok {
		// Re-adding refreshes the expiry of an active journey.
		s.sessions.Add(userID, j)
		s.mu.Unlock()
		return j, nil
	}

	state, err := s.store.Load(ctx, userID)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("open journey: %w", err)
	}

	j := newJourney(userID, state, s.cfg, s.store, s.images, s.notifier, s.logger)
	// An expired entry stays in the cache until its bucket is cleaned, and
	// Add would overwrite it without the eviction callback.
	s.sessions.Remove(userID)
	s.sessions.Add(userID, j)
	s.mu.Unlock()

	s.logger.Debug("journey opened",
		zap.Int64("user_id", userID),
		zap.Int("stage", state.CurrentStageIndex),
		zap.Int("checked", state.CheckedCount()),
	)

	j.resumeAdvance()
	j.EnsureCurrentImage()
	return j, nil
}

// Forget closes the journey of userID, if one is open.
func (s *JourneyService) Forget(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Remove(userID)
}

// Len returns the number of open journeys.
func (s *JourneyService) Len() int {
	return s.sessions.Len()
}

// Close closes every journey still held by the cache, expired ones included,
// and waits for their image requests.
func (s *JourneyService) Close() {
	s.drainMu.Lock()
	s.drained = make([]*Journey, 0)
	s.drainMu.Unlock()

	s.mu.Lock()
	s.sessions.Purge()
	s.mu.Unlock()

	s.drainMu.Lock()
	journeys := s.drained
	s.drained = nil
	s.drainMu.Unlock()

	for _, j := range journeys {
		j.Wait()
	}
	s.logger.Info("journeys closed", zap.Int("count", len(journeys)))
}

func (s *JourneyService) onEvict(userID int64, j *Journey) {
	j.Close()

	s.drainMu.Lock()
	if s.drained != nil {
		s.drained = append(s.drained, j)
	}
	s.drainMu.Unlock()

	s.logger.Debug("journey evicted", zap.Int64("user_id", userID))
}
