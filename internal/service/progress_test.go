package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/aliskhannn/faith-journey-bot/internal/domain/entities"
)

func TestProgressStore_LoadEmpty(t *testing.T) {
	store := NewProgressStore(newCountingStore(), zaptest.NewLogger(t))

	state, err := store.Load(context.Background(), 7)

	require.NoError(t, err)
	assert.Len(t, state.Items, entities.TotalItems)
	assert.Equal(t, 0, state.CheckedCount())
	assert.Equal(t, 0, state.CurrentStageIndex)
	assert.Empty(t, state.StageImages)
}

func TestProgressStore_SaveLoad(t *testing.T) {
	kv := newCountingStore()
	store := NewProgressStore(kv, zaptest.NewLogger(t))
	ctx := context.Background()

	state := entities.NewProgressState()
	state.ToggleItem(3)
	state.ToggleItem(64)
	state.CurrentStageIndex = 5
	state.SetImage(4, "data:image/png;base64,BBBB")
	state.FetchInFlight = true

	require.NoError(t, store.Save(ctx, 7, state))

	loaded, err := store.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, state.Items, loaded.Items)
	assert.Equal(t, 5, loaded.CurrentStageIndex)
	assert.Equal(t, map[int]string{4: "data:image/png;base64,BBBB"}, loaded.StageImages)
	assert.False(t, loaded.FetchInFlight, "runtime flags are not persisted")

	// Other users are not affected.
	other, err := store.Load(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, 0, other.CurrentStageIndex)
}

func TestProgressStore_PerKeyFallback(t *testing.T) {
	validItems := func(t *testing.T) string {
		kv := newCountingStore()
		s := entities.NewProgressState()
		s.ToggleItem(1)
		require.NoError(t, NewProgressStore(kv, zaptest.NewLogger(t)).Save(context.Background(), 1, s))
		v, _, _ := kv.StateStorage.Get(context.Background(), 1, KeyItems)
		return v
	}

	tests := []struct {
		name        string
		values      map[string]string
		wantChecked int
		wantStage   int
		wantImages  map[int]string
	}{
		{
			name:        "malformed items",
			values:      map[string]string{KeyItems: "{not json", KeyStage: "4"},
			wantChecked: 0,
			wantStage:   4,
			wantImages:  map[int]string{},
		},
		{
			name:        "incomplete items",
			values:      map[string]string{KeyItems: `[{"id":1,"label":"Prayer 1","category":"Prayer","checked":true}]`, KeyStage: "2"},
			wantChecked: 0,
			wantStage:   2,
			wantImages:  map[int]string{},
		},
		{
			name:        "non-numeric stage",
			values:      map[string]string{KeyItems: validItems(t), KeyStage: "three"},
			wantChecked: 1,
			wantStage:   0,
			wantImages:  map[int]string{},
		},
		{
			name:        "stage out of range",
			values:      map[string]string{KeyStage: "12"},
			wantStage:   0,
			wantImages:  map[int]string{},
		},
		{
			name:        "negative stage",
			values:      map[string]string{KeyStage: "-1"},
			wantStage:   0,
			wantImages:  map[int]string{},
		},
		{
			name:        "malformed images",
			values:      map[string]string{KeyStage: "1", KeyImages: "[]"},
			wantStage:   1,
			wantImages:  map[int]string{},
		},
		{
			name:        "images outside the catalog are dropped",
			values:      map[string]string{KeyImages: `{"0":"a","11":"b","12":"c","3":""}`},
			wantStage:   0,
			wantImages:  map[int]string{0: "a", 11: "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newCountingStore()
			require.NoError(t, kv.StateStorage.SetMany(context.Background(), 1, tt.values))

			state, err := NewProgressStore(kv, zaptest.NewLogger(t)).Load(context.Background(), 1)

			require.NoError(t, err)
			assert.Len(t, state.Items, entities.TotalItems)
			assert.Equal(t, tt.wantChecked, state.CheckedCount())
			assert.Equal(t, tt.wantStage, state.CurrentStageIndex)
			assert.Equal(t, tt.wantImages, state.StageImages)
		})
	}
}

func TestProgressStore_StorageErrors(t *testing.T) {
	kv := newCountingStore()
	store := NewProgressStore(kv, zaptest.NewLogger(t))

	kv.failGet = errBoom
	_, err := store.Load(context.Background(), 1)
	assert.ErrorIs(t, err, errBoom)

	kv.failGet = nil
	kv.failSet = errBoom
	err = store.Save(context.Background(), 1, entities.NewProgressState())
	assert.ErrorIs(t, err, errBoom)
}

func TestProgressStore_WireFormat(t *testing.T) {
	kv := newCountingStore()
	store := NewProgressStore(kv, zaptest.NewLogger(t))

	state := entities.NewProgressState()
	state.CurrentStageIndex = 3
	require.NoError(t, store.Save(context.Background(), 1, state))

	stage, _, _ := kv.StateStorage.Get(context.Background(), 1, KeyStage)
	assert.Equal(t, "3", stage)

	images, _, _ := kv.StateStorage.Get(context.Background(), 1, KeyImages)
	assert.Equal(t, "{}", images)

	items, _, _ := kv.StateStorage.Get(context.Background(), 1, KeyItems)
	assert.Contains(t, items, `{"id":61,"label":"Reading Truth Book 1","category":"Reading Truth Book","checked":false}`)
}
