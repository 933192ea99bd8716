package analyzer

import (
	"math"
	"time"
)

// Status buckets a score/maxScore ratio into a severity band shared by
// cards, drawers and sections.
type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusWarning   Status = "warning"
	StatusError     Status = "error"
)

// statusFor derives the severity band from a score against its budget.
func statusFor(score, maxScore float64) Status {
	if maxScore <= 0 {
		return StatusError
	}
	ratio := score / maxScore
	switch {
	case ratio >= 0.9:
		return StatusExcellent
	case ratio >= 0.7:
		return StatusGood
	case ratio >= 0.4:
		return StatusWarning
	default:
		return StatusError
	}
}

// Recommendation is one actionable problem/solution pair. Impact is a
// 0-10 severity used to order fixes.
type Recommendation struct {
	Problem     string `json:"problem"`
	Solution    string `json:"solution"`
	Explanation string `json:"explanation,omitempty"`
	Impact      int    `json:"impact"`
}

// MetricCard is a single measured criterion. Immutable after construction.
type MetricCard struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Score           float64                `json:"score"`
	MaxScore        float64                `json:"maxScore"`
	Status          Status                 `json:"status"`
	Explanation     string                 `json:"explanation,omitempty"`
	Recommendations []Recommendation       `json:"recommendations"`
	SuccessMessage  string                 `json:"successMessage,omitempty"`
	RawData         map[string]interface{} `json:"rawData,omitempty"`
}

// newCard clamps the score into [0, maxScore] and derives the status.
func newCard(id, name string, score, maxScore float64) MetricCard {
	score = math.Max(0, math.Min(score, maxScore))
	return MetricCard{
		ID:              id,
		Name:            name,
		Score:           score,
		MaxScore:        maxScore,
		Status:          statusFor(score, maxScore),
		Recommendations: []Recommendation{},
	}
}

// errorCard is the zero-score card every analyzer falls back to when it
// cannot measure a criterion at all.
func errorCard(id, name string, maxScore float64, explanation string) MetricCard {
	c := newCard(id, name, 0, maxScore)
	c.Status = StatusError
	c.Explanation = explanation
	return c
}

// DrawerSubSection groups related cards within a category. Totals are
// always the sums over the child cards.
type DrawerSubSection struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	TotalScore  float64      `json:"totalScore"`
	MaxScore    float64      `json:"maxScore"`
	Status      Status       `json:"status"`
	Cards       []MetricCard `json:"cards"`
}

func newDrawer(id, name, description string, cards ...MetricCard) DrawerSubSection {
	d := DrawerSubSection{
		ID:          id,
		Name:        name,
		Description: description,
		Cards:       cards,
	}
	for _, c := range cards {
		d.TotalScore += c.Score
		d.MaxScore += c.MaxScore
	}
	d.Status = statusFor(d.TotalScore, d.MaxScore)
	return d
}

// MainSection is one of the five audit categories. TotalScore is the
// category's normalized 0-100 composite; the raw point budgets live in
// the drawers.
type MainSection struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	WeightPercentage int                `json:"weightPercentage"`
	TotalScore       float64            `json:"totalScore"`
	MaxScore         float64            `json:"maxScore"`
	Status           Status             `json:"status"`
	Drawers          []DrawerSubSection `json:"drawers"`
}

// newSection normalizes the drawers' combined raw score onto 0-100.
func newSection(id, name string, weight int, drawers ...DrawerSubSection) MainSection {
	var total, max float64
	for _, d := range drawers {
		total += d.TotalScore
		max += d.MaxScore
	}
	score := 0.0
	if max > 0 {
		score = math.Round(total / max * 100)
	}
	return sectionWithScore(id, name, weight, score, drawers...)
}

// sectionWithScore builds a section with an explicitly computed 0-100
// composite, for categories whose drawers are combined with internal
// weighting rather than a straight sum.
func sectionWithScore(id, name string, weight int, score float64, drawers ...DrawerSubSection) MainSection {
	score = math.Max(0, math.Min(score, 100))
	return MainSection{
		ID:               id,
		Name:             name,
		WeightPercentage: weight,
		TotalScore:       score,
		MaxScore:         100,
		Status:           statusFor(score, 100),
		Drawers:          drawers,
	}
}

// errorSection is the failure-isolated stand-in for a category whose
// analyzer errored or panicked.
func errorSection(id, name string, weight int, explanation string) MainSection {
	s := sectionWithScore(id, name, weight, 0)
	s.Status = StatusError
	drawer := newDrawer(id+"-error", "Analysis Failed", explanation,
		errorCard(id+"-error-card", "Analysis Failed", 100, explanation))
	drawer.Status = StatusError
	s.Drawers = []DrawerSubSection{drawer}
	return s
}

// GlobalPenalty is a cross-cutting reduction applied after category
// weighting, for systemic problems like blocking AI crawlers.
type GlobalPenalty struct {
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	PenaltyFactor float64  `json:"penaltyFactor"`
	Details       []string `json:"details"`
	Solutions     []string `json:"solutions"`
}

// CategoryBreakdown summarizes one category's contribution to the
// overall score.
type CategoryBreakdown struct {
	Score        float64 `json:"score"`
	Weight       int     `json:"weight"`
	Contribution float64 `json:"contribution"`
	Status       Status  `json:"status"`
}

// ReportMetadata exposes the intermediate aggregation values.
type ReportMetadata struct {
	BaseScore         float64 `json:"baseScore"`
	FinalScore        float64 `json:"finalScore"`
	TotalWeight       int     `json:"totalWeight"`
	CompletedAnalyses int     `json:"completedAnalyses"`
}

// Report is the complete audit result. It is created fresh per audit
// and never mutated after being returned.
type Report struct {
	URL             string                       `json:"url"`
	TotalScore      float64                      `json:"totalScore"`
	MaxScore        float64                      `json:"maxScore"`
	Breakdown       map[string]CategoryBreakdown `json:"breakdown"`
	Completeness    string                       `json:"completeness"`
	GlobalPenalties []GlobalPenalty              `json:"globalPenalties"`
	Sections        []MainSection                `json:"sections"`
	Metadata        ReportMetadata               `json:"metadata"`
	Error           string                       `json:"error,omitempty"`
	GeneratedAt     time.Time                    `json:"generatedAt"`
}

// FetchResult is the pre-fetched HTML metadata supplied by the crawler.
type FetchResult struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error,omitempty"`
}

// RobotsResult is the pre-fetched robots.txt body.
type RobotsResult struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
}

// SitemapResult records whether a sitemap could be retrieved.
type SitemapResult struct {
	Success bool `json:"success"`
}

// PageSpeedResult is an externally supplied performance measurement.
type PageSpeedResult struct {
	PerformanceScore   float64            `json:"performanceScore"`
	AccessibilityScore float64            `json:"accessibilityScore"`
	CoreWebVitals      map[string]float64 `json:"coreWebVitals,omitempty"`
	Opportunities      []string           `json:"opportunities,omitempty"`
}

// Collected bundles the optional externally fetched signals. Every field
// may be nil/empty; analyzers degrade gracefully on absence.
type Collected struct {
	Fetch        *FetchResult     `json:"fetch,omitempty"`
	Robots       *RobotsResult    `json:"robots,omitempty"`
	Sitemap      *SitemapResult   `json:"sitemap,omitempty"`
	RenderedHTML string           `json:"renderedHtml,omitempty"`
	PageSpeed    *PageSpeedResult `json:"pageSpeed,omitempty"`
}
