package entities

// Category is one of the four tracked habit types.
type Category string

const (
	CategoryPrayer       Category = "Prayer"
	CategoryBibleReading Category = "Bible Reading"
	CategoryTruthBook    Category = "Reading Truth Book"
	CategorySermon       Category = "Watching Sermon"
)

const (
	ItemsPerCategory = 30                                 // checklist items in each category
	TotalItems       = ItemsPerCategory * len(categories) // 120
)

var categories = [...]Category{
	CategoryPrayer,
	CategoryBibleReading,
	CategoryTruthBook,
	CategorySermon,
}

// Categories returns the categories in catalog order.
func Categories() []Category {
	return categories[:]
}

// CategoryIndex returns the catalog position of c, or -1 if c is unknown.
func CategoryIndex(c Category) int {
	for i, cat := range categories {
		if cat == c {
			return i
		}
	}
	return -1
}

// CategoryAt returns the category at catalog position idx.
func CategoryAt(idx int) (Category, bool) {
	if idx < 0 || idx >= len(categories) {
		return "", false
	}
	return categories[idx], true
}

// Emoji returns the marker used for the category in chat output.
func (c Category) Emoji() string {
	switch c {
	case CategoryPrayer:
		return "🔥"
	case CategoryBibleReading:
		return "📖"
	case CategoryTruthBook:
		return "💗"
	case CategorySermon:
		return "📺"
	default:
		return "•"
	}
}
