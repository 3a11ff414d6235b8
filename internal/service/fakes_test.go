package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
	"github.com/aliskhannn/faith-journey-bot/internal/storage"
)

var errBoom = errors.New("boom")

// fakeImages is a scripted ImageGenerator.
type fakeImages struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	result  string
	err     error

	// block, when set, holds every call until it is closed.
	block chan struct{}
	// ignoreCancel keeps a blocked call waiting even after its context is done.
	ignoreCancel bool
}

func (f *fakeImages) GenerateImage(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	block, ignoreCancel := f.block, f.ignoreCancel
	result, err := f.result, f.err
	f.mu.Unlock()

	if block != nil {
		if ignoreCancel {
			<-block
		} else {
			select {
			case <-block:
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	return result, err
}

func (f *fakeImages) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeNotifier records journey events.
type fakeNotifier struct {
	mu       sync.Mutex
	advanced []int
	images   map[int]string
}

func (n *fakeNotifier) StageAdvanced(_ int64, stage entities.StageDefinition) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.advanced = append(n.advanced, stage.Index)
}

func (n *fakeNotifier) StageImageReady(_ int64, stage entities.StageDefinition, image string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.images == nil {
		n.images = make(map[int]string)
	}
	n.images[stage.Index] = image
}

func (n *fakeNotifier) Advanced() []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]int(nil), n.advanced...)
}

func (n *fakeNotifier) Images() map[int]string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[int]string, len(n.images))
	for k, v := range n.images {
		out[k] = v
	}
	return out
}

// countingStore counts writes and can be told to fail.
type countingStore struct {
	*storage.StateStorage
	saves   atomic.Int32
	failGet error
	failSet error
}

func newCountingStore() *countingStore {
	return &countingStore{StateStorage: storage.NewStateStorage()}
}

func (s *countingStore) Get(ctx context.Context, userID int64, key string) (string, bool, error) {
	if s.failGet != nil {
		return "", false, s.failGet
	}
	return s.StateStorage.Get(ctx, userID, key)
}

func (s *countingStore) SetMany(ctx context.Context, userID int64, values map[string]string) error {
	s.saves.Add(1)
	if s.failSet != nil {
		return s.failSet
	}
	return s.StateStorage.SetMany(ctx, userID, values)
}

// almostComplete returns a state with every item checked except the first.
func almostComplete(stage int) *entities.ProgressState {
	s := entities.NewProgressState()
	s.CurrentStageIndex = stage
	for i := range s.Items {
		s.Items[i].Checked = i != 0
	}
	return s
}
