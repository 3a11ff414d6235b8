package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
)

// Keys under which a journey is persisted.
const (
	KeyItems  = "items"
	KeyStage  = "stage"
	KeyImages = "images"
)

// ProgressStore loads and saves journeys through a StateStore.
type ProgressStore struct {
	kv     StateStore
	logger *zap.Logger
}

func NewProgressStore(kv StateStore, logger *zap.Logger) *ProgressStore {
	return &ProgressStore{kv: kv, logger: logger}
}

// Load restores the journey of userID. Every key falls back on its own:
// absent or malformed items give a fresh checklist, a bad stage gives 0,
// bad images give an empty cache. Only storage errors are returned.
func (s *ProgressStore) Load(ctx context.Context, userID int64) (*entities.ProgressState, error) {
	state := entities.NewProgressState()

	raw, ok, err := s.kv.Get(ctx, userID, KeyItems)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	if ok {
		if items, err := decodeItems(raw); err != nil {
			s.logger.Warn("stored checklist is malformed, starting fresh",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		} else {
			state.Items = items
		}
	}

	raw, ok, err = s.kv.Get(ctx, userID, KeyStage)
	if err != nil {
		return nil, fmt.Errorf("load stage: %w", err)
	}
	if ok {
		if stage, err := decodeStage(raw); err != nil {
			s.logger.Warn("stored stage is malformed, starting at first stage",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		} else {
			state.CurrentStageIndex = stage
		}
	}

	raw, ok, err = s.kv.Get(ctx, userID, KeyImages)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}
	if ok {
		if images, err := decodeImages(raw); err != nil {
			s.logger.Warn("stored image cache is malformed, dropping it",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		} else {
			state.StageImages = images
		}
	}

	return state, nil
}

// Save writes items, stage and images. The three keys are not guaranteed
// to be written atomically.
func (s *ProgressStore) Save(ctx context.Context, userID int64, state *entities.ProgressState) error {
	items, err := json.Marshal(state.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	images := state.StageImages
	if images == nil {
		images = map[int]string{}
	}
	encodedImages, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}

	err = s.kv.SetMany(ctx, userID, map[string]string{
		KeyItems:  string(items),
		KeyStage:  strconv.Itoa(state.CurrentStageIndex),
		KeyImages: string(encodedImages),
	})
	if err != nil {
		return fmt.Errorf("save journey: %w", err)
	}

	return nil
}

func decodeItems(raw string) ([]entities.ChecklistItem, error) {
	var items []entities.ChecklistItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if err := entities.ValidateChecklist(items); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeStage(raw string) (int, error) {
	stage, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse stage: %w", err)
	}
	if stage < 0 || stage >= entities.StageCount {
		return 0, fmt.Errorf("stage %d out of range", stage)
	}
	return stage, nil
}

func decodeImages(raw string) (map[int]string, error) {
	var images map[int]string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return nil, fmt.Errorf("unmarshal images: %w", err)
	}

	out := make(map[int]string, len(images))
	for idx, img := range images {
		if _, ok := entities.Stage(idx); !ok || img == "" {
			continue
		}
		out[idx] = img
	}
	return out, nil
}
