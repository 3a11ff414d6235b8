package entities

import (
	"fmt"
	"math"
)

// ChecklistItem is one trackable unit of activity within a category.
type ChecklistItem struct {
	ID       int      `json:"id"`
	Label    string   `json:"label"`
	Category Category `json:"category"`
	Checked  bool     `json:"checked"`
}

// CategoryStat is the derived progress of a single category.
type CategoryStat struct {
	Category Category
	Done     int
	Total    int
	Percent  int
}

// ProgressState is the whole journey of one user.
type ProgressState struct {
	Items             []ChecklistItem
	CurrentStageIndex int
	StageImages       map[int]string

	// Runtime fields, never persisted.
	FetchInFlight bool   // an image request is outstanding
	Generation    uint64 // bumped on every checklist or stage mutation
}

// NewChecklist builds the fixed catalog of unchecked items.
// IDs start at 1 and are assigned category by category.
func NewChecklist() []ChecklistItem {
	items := make([]ChecklistItem, 0, TotalItems)
	for catIdx, cat := range categories {
		for i := 1; i <= ItemsPerCategory; i++ {
			items = append(items, ChecklistItem{
				ID:       catIdx*ItemsPerCategory + i,
				Label:    fmt.Sprintf("%s %d", cat, i),
				Category: cat,
			})
		}
	}
	return items
}

// NewProgressState creates a fresh state: all items unchecked, first stage, no images.
func NewProgressState() *ProgressState {
	return &ProgressState{
		Items:       NewChecklist(),
		StageImages: make(map[int]string),
	}
}

// ValidateChecklist reports whether items hold exactly the fixed catalog partition:
// TotalItems unique ids, every item in a known category, ItemsPerCategory per category.
func ValidateChecklist(items []ChecklistItem) error {
	if len(items) != TotalItems {
		return fmt.Errorf("expected %d items, got %d", TotalItems, len(items))
	}

	seen := make(map[int]struct{}, len(items))
	var perCategory [len(categories)]int
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("duplicate item id %d", it.ID)
		}
		seen[it.ID] = struct{}{}

		idx := CategoryIndex(it.Category)
		if idx < 0 {
			return fmt.Errorf("item %d has unknown category %q", it.ID, it.Category)
		}
		perCategory[idx]++
	}

	for i, n := range perCategory {
		if n != ItemsPerCategory {
			return fmt.Errorf("category %q has %d items, want %d", categories[i], n, ItemsPerCategory)
		}
	}

	return nil
}

// Item returns the item with the given id.
func (s *ProgressState) Item(id int) (ChecklistItem, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ChecklistItem{}, false
}

// ItemsIn returns the items of category c in their stored order.
func (s *ProgressState) ItemsIn(c Category) []ChecklistItem {
	out := make([]ChecklistItem, 0, ItemsPerCategory)
	for _, it := range s.Items {
		if it.Category == c {
			out = append(out, it)
		}
	}
	return out
}

// ToggleItem flips the checked flag of the item with the given id.
// Unknown ids are ignored and false is returned.
func (s *ProgressState) ToggleItem(id int) bool {
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items[i].Checked = !s.Items[i].Checked
			s.Generation++
			return true
		}
	}
	return false
}

// ResetChecks clears every checked flag. Stage and images are kept.
func (s *ProgressState) ResetChecks() {
	for i := range s.Items {
		s.Items[i].Checked = false
	}
	s.Generation++
}

// CheckedCount returns the number of checked items.
func (s *ProgressState) CheckedCount() int {
	n := 0
	for _, it := range s.Items {
		if it.Checked {
			n++
		}
	}
	return n
}

// OverallPercent returns round(checked / TotalItems * 100).
func (s *ProgressState) OverallPercent() int {
	return percent(s.CheckedCount(), TotalItems)
}

// CategoryStats returns per-category progress in catalog order.
func (s *ProgressState) CategoryStats() []CategoryStat {
	var done [len(categories)]int
	for _, it := range s.Items {
		if it.Checked {
			if idx := CategoryIndex(it.Category); idx >= 0 {
				done[idx]++
			}
		}
	}

	stats := make([]CategoryStat, len(categories))
	for i, cat := range categories {
		stats[i] = CategoryStat{
			Category: cat,
			Done:     done[i],
			Total:    ItemsPerCategory,
			Percent:  percent(done[i], ItemsPerCategory),
		}
	}
	return stats
}

// IsFinalStage reports whether the journey reached the last stage.
func (s *ProgressState) IsFinalStage() bool {
	return s.CurrentStageIndex >= StageCount-1
}

// ShouldAdvance reports whether the stage transition guard holds:
// every item checked and a next stage available.
func (s *ProgressState) ShouldAdvance() bool {
	return s.CheckedCount() == TotalItems && !s.IsFinalStage()
}

// Advance moves to the next stage and clears all checks.
// The guard is evaluated again, so a stale caller gets false and nothing changes.
func (s *ProgressState) Advance() bool {
	if !s.ShouldAdvance() {
		return false
	}

	s.CurrentStageIndex++
	for i := range s.Items {
		s.Items[i].Checked = false
	}
	s.Generation++
	return true
}

// Stage returns the definition of the current stage.
func (s *ProgressState) Stage() StageDefinition {
	st, _ := Stage(s.CurrentStageIndex)
	return st
}

// Image returns the cached image for stage idx.
func (s *ProgressState) Image(idx int) (string, bool) {
	img, ok := s.StageImages[idx]
	return img, ok && img != ""
}

// SetImage caches img for stage idx.
func (s *ProgressState) SetImage(idx int, img string) {
	if s.StageImages == nil {
		s.StageImages = make(map[int]string)
	}
	s.StageImages[idx] = img
}

// Clone returns a deep copy suitable for rendering outside the owner.
func (s *ProgressState) Clone() *ProgressState {
	c := &ProgressState{
		Items:             make([]ChecklistItem, len(s.Items)),
		CurrentStageIndex: s.CurrentStageIndex,
		StageImages:       make(map[int]string, len(s.StageImages)),
		FetchInFlight:     s.FetchInFlight,
		Generation:        s.Generation,
	}
	copy(c.Items, s.Items)
	for k, v := range s.StageImages {
		c.StageImages[k] = v
	}
	return c
}

func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
