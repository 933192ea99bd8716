package analyzer

import (
	"fmt"
	"math"
	"time"
)

// maxPenaltyReduction caps the combined global penalty so the final
// score never drops below 30% of the base score.
const maxPenaltyReduction = 0.7

// categoryOutcome is the settled result of one category analyzer.
type categoryOutcome struct {
	section   MainSection
	penalties []GlobalPenalty
	err       error
}

var categoryOrder = []string{
	CategoryDiscoverability,
	CategoryStructuredData,
	CategoryLLMFormatting,
	CategoryAccessibility,
	CategoryReadability,
}

var categoryNames = map[string]string{
	CategoryDiscoverability: "Discoverability",
	CategoryStructuredData:  "Structured Data",
	CategoryLLMFormatting:   "LLM Formatting",
	CategoryAccessibility:   "Accessibility",
	CategoryReadability:     "Readability",
}

// aggregate combines the five category outcomes into the final report.
// Categories that errored contribute no weight: missing data shrinks
// the denominator instead of averaging in as zero. Global penalties are
// summed, capped, and applied exactly once to the base score.
func (a *Auditor) aggregate(url string, outcomes map[string]categoryOutcome) *Report {
	report := &Report{
		URL:             url,
		MaxScore:        100,
		Breakdown:       make(map[string]CategoryBreakdown, len(categoryOrder)),
		GlobalPenalties: []GlobalPenalty{},
		GeneratedAt:     time.Now().UTC(),
	}

	var weightedSum float64
	var totalWeight, completed int

	for _, id := range categoryOrder {
		weight := a.weights.forCategory(id)
		outcome, ok := outcomes[id]
		if !ok || outcome.err != nil {
			section := errorSection(id, categoryNames[id], weight, analysisFailureMessage(outcome))
			report.Sections = append(report.Sections, section)
			report.Breakdown[id] = CategoryBreakdown{Weight: weight, Status: StatusError}
			continue
		}

		section := outcome.section
		score := section.TotalScore
		if section.MaxScore != 100 && section.MaxScore > 0 {
			score = score / section.MaxScore * 100
		}

		weightedSum += score * float64(weight)
		totalWeight += weight
		completed++

		report.Sections = append(report.Sections, section)
		report.Breakdown[id] = CategoryBreakdown{
			Score:        score,
			Weight:       weight,
			Contribution: math.Round(score*float64(weight)) / 100,
			Status:       section.Status,
		}
		report.GlobalPenalties = append(report.GlobalPenalties, outcome.penalties...)
	}

	baseScore := 0.0
	if totalWeight > 0 {
		baseScore = math.Round(weightedSum / float64(totalWeight))
	}

	reduction := 0.0
	for _, p := range report.GlobalPenalties {
		reduction += p.PenaltyFactor
	}
	reduction = math.Min(reduction, maxPenaltyReduction)
	finalScore := math.Max(0, math.Round(baseScore*(1-reduction)))

	report.TotalScore = finalScore
	report.Completeness = fmt.Sprintf("%d/5 analyses completed", completed)
	report.Metadata = ReportMetadata{
		BaseScore:         baseScore,
		FinalScore:        finalScore,
		TotalWeight:       totalWeight,
		CompletedAnalyses: completed,
	}
	return report
}

func analysisFailureMessage(outcome categoryOutcome) string {
	if outcome.err != nil {
		return fmt.Sprintf("The analysis failed: %v.", outcome.err)
	}
	return "The analysis did not produce a result."
}

// emptyReport is the all-zero report returned when the audit cannot run
// at all. It is still a complete, well-typed shape.
func (a *Auditor) emptyReport(url, errMsg string) *Report {
	report := &Report{
		URL:             url,
		MaxScore:        100,
		Breakdown:       make(map[string]CategoryBreakdown, len(categoryOrder)),
		GlobalPenalties: []GlobalPenalty{},
		Completeness:    "0/5 analyses completed",
		Error:           errMsg,
		GeneratedAt:     time.Now().UTC(),
	}
	for _, id := range categoryOrder {
		weight := a.weights.forCategory(id)
		report.Sections = append(report.Sections, errorSection(id, categoryNames[id], weight, errMsg))
		report.Breakdown[id] = CategoryBreakdown{Weight: weight, Status: StatusError}
	}
	return report
}
