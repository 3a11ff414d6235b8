package entities

// StageDefinition describes one step of the growth narrative.
type StageDefinition struct {
	Index       int
	Title       string
	Description string
	ImagePrompt string
}

// StylePrompt is appended to every stage prompt before it is sent to the image generator.
const StylePrompt = "Breathtaking digital masterpiece, high quality, highly detailed digital anime style, cinematic lighting, vibrant soft colors, 4k, clean composition."

// StageCount is the number of stages in the catalog.
const StageCount = len(stages)

var stages = [...]StageDefinition{
	{
		Index:       0,
		Title:       "The Sprout",
		Description: "A tiny sprout in the campus garden being watered, symbolizing the start of growth.",
		ImagePrompt: "A beautiful university campus background, a small green sprout in the garden being watered by a watering can, bright morning sunlight, soft anime style, peaceful atmosphere.",
	},
	{
		Index:       1,
		Title:       "First Bloom",
		Description: "The sprout begins to bloom, soaking in the warm university sunlight.",
		ImagePrompt: "A beautiful university campus background, a small flower blooming from the sprout, bathed in warm bright sunlight, vibrant colors, soft anime style.",
	},
	{
		Index:       2,
		Title:       "Young Sapling",
		Description: "A small, sturdy young tree standing tall in the center of the campus park.",
		ImagePrompt: "A beautiful university campus background, the sprout has grown into a small young tree, lush green leaves, clear blue sky, academic environment, soft anime style.",
	},
	{
		Index:       3,
		Title:       "Extending Branches",
		Description: "Branches are growing and fresh leaves are sprouting as the tree gains strength.",
		ImagePrompt: "A beautiful university campus background, a young tree with several growing branches and fresh green leaves, gentle breeze, soft anime style.",
	},
	{
		Index:       4,
		Title:       "Lush Greenery",
		Description: "The small tree is now covered in thick, vibrant green leaves.",
		ImagePrompt: "A beautiful university campus background, a healthy small tree with thick, lush green canopy, summer vibes, vibrant campus life in background, soft anime style.",
	},
	{
		Index:       5,
		Title:       "Deepening Roots",
		Description: "The tree is immersed in the Word, personified reading the Bible on campus.",
		ImagePrompt: "A beautiful university campus background, a personified anthropomorphic tree character sitting on a bench reading a large Bible, scholarly look, soft sunlight, peaceful, soft anime style.",
	},
	{
		Index:       6,
		Title:       "Pillar of Prayer",
		Description: "The tree character is seen praying deeply under the starlit campus sky.",
		ImagePrompt: "A beautiful university campus background, an anthropomorphic tree character with its branches folded in prayer, eyes closed, spiritual light surrounding it, evening glow, soft anime style.",
	},
	{
		Index:       7,
		Title:       "Sharing the Light",
		Description: "The tree character shares the Good News with students on campus.",
		ImagePrompt: "A beautiful university campus background, an anthropomorphic tree character holding a Bible and talking to a group of diverse students, joyful expression, missionary spirit, soft anime style.",
	},
	{
		Index:       8,
		Title:       "Abundant Fruit",
		Description: "The tree is now heavy with many ripe fruits, showing a life of maturity.",
		ImagePrompt: "A beautiful university campus background, a large tree bearing many bright red fruits, symbol of spiritual fruit, abundance, autumn campus, soft anime style.",
	},
	{
		Index:       9,
		Title:       "New Beginnings",
		Description: "New sprouts begin to emerge around the base of the great tree.",
		ImagePrompt: "A beautiful university campus background, a large fruit-bearing tree with several tiny new sprouts appearing in the soil around its base, new life beginning, soft anime style.",
	},
	{
		Index:       10,
		Title:       "Growing Community",
		Description: "The surrounding sprouts have grown into young saplings, creating a small grove.",
		ImagePrompt: "A beautiful university campus background, a central large tree surrounded by several young smaller trees that were once sprouts, a growing community of trees, soft anime style.",
	},
	{
		Index:       11,
		Title:       "The Harvest",
		Description: "The entire grove is now bearing fruit, a complete and beautiful spiritual harvest.",
		ImagePrompt: "A beautiful university campus background, a mini forest of trees, all bearing abundant fruit together, a complete spiritual harvest, sunset glow, heavenly atmosphere, soft anime style.",
	},
}

// Stage returns the definition for stage idx.
func Stage(idx int) (StageDefinition, bool) {
	if idx < 0 || idx >= StageCount {
		return StageDefinition{}, false
	}
	return stages[idx], true
}

// Stages returns the full catalog in order.
func Stages() []StageDefinition {
	out := make([]StageDefinition, StageCount)
	copy(out, stages[:])
	return out
}

// FullPrompt returns the text sent to the image generator for this stage.
func (s StageDefinition) FullPrompt() string {
	return s.ImagePrompt + ". " + StylePrompt
}
