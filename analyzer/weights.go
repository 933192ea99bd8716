package analyzer

import "fmt"

// Category identifiers used in weights, breakdowns and section IDs.
const (
	CategoryDiscoverability = "discoverability"
	CategoryStructuredData  = "structuredData"
	CategoryLLMFormatting   = "llmFormatting"
	CategoryAccessibility   = "accessibility"
	CategoryReadability     = "readability"
)

// WeightConfig holds the percentage weight of each audit category.
// The five weights must sum to exactly 100.
type WeightConfig struct {
	Discoverability int `json:"discoverability"`
	StructuredData  int `json:"structuredData"`
	LLMFormatting   int `json:"llmFormatting"`
	Accessibility   int `json:"accessibility"`
	Readability     int `json:"readability"`
}

// DefaultWeights returns the canonical category weighting.
func DefaultWeights() WeightConfig {
	return WeightConfig{
		Discoverability: 20,
		StructuredData:  25,
		LLMFormatting:   25,
		Accessibility:   15,
		Readability:     15,
	}
}

// Validate fails fast on any configuration whose weights do not sum to 100.
func (w WeightConfig) Validate() error {
	sum := w.Discoverability + w.StructuredData + w.LLMFormatting + w.Accessibility + w.Readability
	if sum != 100 {
		return fmt.Errorf("category weights must sum to 100, got %d", sum)
	}
	for name, v := range w.asMap() {
		if v <= 0 {
			return fmt.Errorf("category weight %q must be positive, got %d", name, v)
		}
	}
	return nil
}

func (w WeightConfig) asMap() map[string]int {
	return map[string]int{
		CategoryDiscoverability: w.Discoverability,
		CategoryStructuredData:  w.StructuredData,
		CategoryLLMFormatting:   w.LLMFormatting,
		CategoryAccessibility:   w.Accessibility,
		CategoryReadability:     w.Readability,
	}
}

func (w WeightConfig) forCategory(id string) int {
	return w.asMap()[id]
}
