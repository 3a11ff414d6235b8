package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
)

var (
	// ErrNoImage is returned by an ImageGenerator that produced no image.
	ErrNoImage = errors.New("no image generated")

	ErrJourneyClosed = errors.New("journey closed")
	ErrUnknownStage  = errors.New("unknown stage")
)

// ImageOutcome tells the caller what the image gate did.
type ImageOutcome int

const (
	ImageCached      ImageOutcome = iota // already cached, nothing requested
	ImageBusy                            // another request is in flight
	ImageStarted                         // request launched in the background
	ImageGenerated                       // request finished and the image is cached
	ImageFailed                          // request finished without an image
	ImageRateLimited                     // forced regeneration refused
)

func (o ImageOutcome) String() string {
	switch o {
	case ImageCached:
		return "cached"
	case ImageBusy:
		return "busy"
	case ImageStarted:
		return "started"
	case ImageGenerated:
		return "generated"
	case ImageFailed:
		return "failed"
	case ImageRateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// JourneyConfig tunes a Journey.
type JourneyConfig struct {
	AdvanceDelay   time.Duration // pause between the last check and the stage transition
	PersistTimeout time.Duration // budget for saves made off the request path
	RegenPerHour   int           // forced regenerations allowed per hour, 0 disables the limit
}

func (c JourneyConfig) withDefaults() JourneyConfig {
	if c.AdvanceDelay <= 0 {
		c.AdvanceDelay = 500 * time.Millisecond
	}
	if c.PersistTimeout <= 0 {
		c.PersistTimeout = 5 * time.Second
	}
	return c
}

// Journey owns the ProgressState of one user. All reads and writes of the
// state go through it.
type Journey struct {
	userID   int64
	cfg      JourneyConfig
	store    *ProgressStore
	images   ImageGenerator
	notifier JourneyNotifier
	logger   *zap.Logger
	regen    *rate.Limiter

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	state      *entities.ProgressState
	pending    *time.Timer
	pendingSeq uint64
	closed     bool
}

func newJourney(
	userID int64,
	state *entities.ProgressState,
	cfg JourneyConfig,
	store *ProgressStore,
	images ImageGenerator,
	notifier JourneyNotifier,
	logger *zap.Logger,
) *Journey {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	regen := rate.NewLimiter(rate.Inf, 0)
	if cfg.RegenPerHour > 0 {
		regen = rate.NewLimiter(rate.Every(time.Hour/time.Duration(cfg.RegenPerHour)), cfg.RegenPerHour)
	}

	return &Journey{
		userID:   userID,
		cfg:      cfg,
		store:    store,
		images:   images,
		notifier: notifier,
		logger:   logger.With(zap.Int64("user_id", userID)),
		regen:    regen,
		ctx:      ctx,
		cancel:   cancel,
		state:    state,
	}
}

// UserID returns the owner of the journey.
func (j *Journey) UserID() int64 {
	return j.userID
}

// Snapshot returns a copy of the current state.
func (j *Journey) Snapshot() *entities.ProgressState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state.Clone()
}

// Toggle flips one checklist item and persists the journey. Unknown ids are
// ignored. When the toggle completes the checklist a stage transition is
// scheduled after the configured delay.
func (j *Journey) Toggle(ctx context.Context, itemID int) (*entities.ProgressState, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed || !j.state.ToggleItem(itemID) {
		return j.state.Clone(), false
	}

	j.persistLocked(ctx)

	if j.state.ShouldAdvance() {
		j.scheduleAdvanceLocked()
	} else {
		j.cancelPendingLocked()
	}

	return j.state.Clone(), true
}

// ResetChecks clears the checklist, keeping the stage and the image cache.
func (j *Journey) ResetChecks(ctx context.Context) *entities.ProgressState {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return j.state.Clone()
	}

	j.state.ResetChecks()
	j.cancelPendingLocked()
	j.persistLocked(ctx)

	return j.state.Clone()
}

// AdvancePending reports whether a stage transition is scheduled.
func (j *Journey) AdvancePending() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.pending != nil
}

// Close cancels a scheduled transition and any image request. It is safe to
// call more than once. Image results arriving after Close are dropped.
func (j *Journey) Close() {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return
	}
	j.closed = true
	j.cancelPendingLocked()
	j.mu.Unlock()

	j.cancel()
}

// Wait blocks until background image requests have returned.
func (j *Journey) Wait() {
	j.wg.Wait()
}

// resumeAdvance schedules the transition of a restored journey whose
// checklist was already complete.
func (j *Journey) resumeAdvance() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.closed && j.state.ShouldAdvance() {
		j.scheduleAdvanceLocked()
	}
}

func (j *Journey) scheduleAdvanceLocked() {
	j.cancelPendingLocked()

	j.pendingSeq++
	seq, gen := j.pendingSeq, j.state.Generation
	j.pending = time.AfterFunc(j.cfg.AdvanceDelay, func() { j.fireAdvance(seq, gen) })

	j.logger.Debug("stage transition scheduled",
		zap.Int("stage", j.state.CurrentStageIndex),
		zap.Duration("delay", j.cfg.AdvanceDelay),
	)
}

func (j *Journey) cancelPendingLocked() {
	if j.pending != nil {
		j.pending.Stop()
		j.pending = nil
	}
}

// fireAdvance runs on the timer goroutine. The guard is evaluated again at
// fire time: a transition scheduled for an older generation is dropped.
func (j *Journey) fireAdvance(seq, gen uint64) {
	j.mu.Lock()
	if j.pendingSeq == seq {
		j.pending = nil
	}

	if j.closed || j.state.Generation != gen {
		j.mu.Unlock()
		j.logger.Debug("stale stage transition skipped", zap.Uint64("generation", gen))
		return
	}

	if !j.state.Advance() {
		j.mu.Unlock()
		return
	}

	stage := j.state.Stage()
	ctx, cancel := context.WithTimeout(j.ctx, j.cfg.PersistTimeout)
	j.persistLocked(ctx)
	cancel()
	j.mu.Unlock()

	j.logger.Info("stage advanced",
		zap.Int("stage", stage.Index),
		zap.String("title", stage.Title),
	)

	if j.notifier != nil {
		j.notifier.StageAdvanced(j.userID, stage)
	}

	j.RequestImage(stage.Index, false)
}

func (j *Journey) persistLocked(ctx context.Context) {
	if err := j.store.Save(ctx, j.userID, j.state); err != nil {
		j.logger.Warn("failed to persist journey", zap.Error(err))
	}
}

// EnsureImage runs the image gate synchronously for stage.
//
// Nothing is requested when an image is cached and force is false, or when
// any request of this journey is already in flight. The in-flight flag is
// cleared on every path. Failures are logged and leave the cache untouched.
func (j *Journey) EnsureImage(ctx context.Context, stage int, force bool) (ImageOutcome, error) {
	def, outcome, err := j.beginFetch(stage, force)
	if err != nil || outcome != ImageStarted {
		return outcome, err
	}
	return j.fetch(ctx, def), nil
}

// RequestImage runs the image gate in the background. It returns ImageStarted
// when a request was launched; the notifier receives the image on success.
func (j *Journey) RequestImage(stage int, force bool) ImageOutcome {
	def, outcome, err := j.beginFetch(stage, force)
	if err != nil {
		j.logger.Debug("image request refused", zap.Int("stage", stage), zap.Error(err))
		return ImageFailed
	}
	if outcome != ImageStarted {
		return outcome
	}

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.fetch(j.ctx, def)
	}()

	return ImageStarted
}

// EnsureCurrentImage requests the image of the current stage if it is missing.
func (j *Journey) EnsureCurrentImage() ImageOutcome {
	j.mu.Lock()
	stage := j.state.CurrentStageIndex
	j.mu.Unlock()
	return j.RequestImage(stage, false)
}

// beginFetch applies the gate policy and, when a request should go out,
// raises the in-flight flag.
func (j *Journey) beginFetch(stage int, force bool) (entities.StageDefinition, ImageOutcome, error) {
	def, ok := entities.Stage(stage)
	if !ok {
		return entities.StageDefinition{}, ImageFailed, ErrUnknownStage
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return def, ImageFailed, ErrJourneyClosed
	}
	if j.state.FetchInFlight {
		return def, ImageBusy, nil
	}
	if _, cached := j.state.Image(stage); cached && !force {
		return def, ImageCached, nil
	}
	if force && !j.regen.Allow() {
		return def, ImageRateLimited, nil
	}

	j.state.FetchInFlight = true
	return def, ImageStarted, nil
}

func (j *Journey) fetch(ctx context.Context, def entities.StageDefinition) ImageOutcome {
	defer func() {
		j.mu.Lock()
		j.state.FetchInFlight = false
		j.mu.Unlock()
	}()

	log := j.logger.With(zap.Int("stage", def.Index))
	log.Info("generating stage image")

	img, err := j.images.GenerateImage(ctx, def.FullPrompt())
	if err != nil {
		if errors.Is(err, ErrNoImage) {
			log.Warn("image generator returned no image")
		} else {
			log.Error("image generation failed", zap.Error(err))
		}
		return ImageFailed
	}
	if img == "" {
		log.Warn("image generator returned no image")
		return ImageFailed
	}

	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		log.Debug("journey closed, dropping generated image")
		return ImageFailed
	}
	j.state.SetImage(def.Index, img)
	persistCtx, cancel := context.WithTimeout(j.ctx, j.cfg.PersistTimeout)
	j.persistLocked(persistCtx)
	cancel()
	j.mu.Unlock()

	log.Info("stage image cached")

	if j.notifier != nil {
		j.notifier.StageImageReady(j.userID, def, img)
	}

	return ImageGenerated
}
