package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accessiblePage = `<html><body>
	<a href="#content">Skip to content</a>
	<header><nav><a href="/guides">Published field guides</a></nav></header>
	<main id="content">
		<h1>Accessible pages are extractable pages</h1>
		<h2>Alt text as machine-readable captions</h2>
		<p>Text content.</p>
		<img src="a.jpg" alt="Diagram of a crawler reading static HTML" loading="lazy">
		<button aria-label="Copy this checklist to the clipboard">Copy checklist</button>
	</main>
</body></html>`

func TestScoreCriticalDOM(t *testing.T) {
	t.Run("NoSnapshotExcluded", func(t *testing.T) {
		card, ok := scoreCriticalDOM(mustParse(t, accessiblePage), nil)

		assert.False(t, ok)
		assert.Equal(t, StatusWarning, card.Status)
		assert.Equal(t, 0.0, card.Score)
	})

	t.Run("IdenticalSnapshotScoresFull", func(t *testing.T) {
		collected := &Collected{RenderedHTML: accessiblePage}
		card, ok := scoreCriticalDOM(mustParse(t, accessiblePage), collected)

		require.True(t, ok)
		assert.Equal(t, 100.0, card.Score)
		assert.Empty(t, card.Recommendations)
	})

	t.Run("ClientRenderedPageScoresLow", func(t *testing.T) {
		static := `<html><body><div id="root"></div></body></html>`
		rendered := `<html><body><div id="root">
			<h1>Hydrated heading</h1>
			<p>Paragraph one with a meaningful amount of rendered text in it.</p>
			<p>Paragraph two with a meaningful amount of rendered text in it.</p>
			<a href="/a">x</a><a href="/b">y</a><a href="/c">z</a>
			<main><article>body</article></main>
		</div></body></html>`
		card, ok := scoreCriticalDOM(mustParse(t, static), &Collected{RenderedHTML: rendered})

		require.True(t, ok)
		assert.Equal(t, 25.0, card.Score)
		assert.Len(t, card.Recommendations, 2, "content and navigation gaps both flagged")
	})
}

func TestBucketRatio(t *testing.T) {
	assert.Equal(t, 100.0, bucketRatio(0.95))
	assert.Equal(t, 75.0, bucketRatio(0.7))
	assert.Equal(t, 50.0, bucketRatio(0.5))
	assert.Equal(t, 25.0, bucketRatio(0.1))
}

func TestScoreAccessibilityElements(t *testing.T) {
	t.Run("WellFormedPage", func(t *testing.T) {
		card := scoreAccessibilityElements(mustParse(t, accessiblePage))

		// alt 40 + controls 20 + outline 20 + skip 10 + tabindex 5 + focusables 5
		assert.Equal(t, 100.0, card.Score)
		assert.Empty(t, card.Recommendations)
	})

	t.Run("MissingAltAndLabels", func(t *testing.T) {
		html := `<html><body>
			<h2>Starts at the wrong level</h2>
			<img src="a.jpg">
			<button>x</button>
		</body></html>`
		card := scoreAccessibilityElements(mustParse(t, html))

		// alt 0 + controls 0 + outline 10 + skip 0 + tabindex 5 + focusables 5
		assert.Equal(t, 20.0, card.Score)
		assert.NotEmpty(t, card.Recommendations)
	})

	t.Run("LabelForAssociationCounts", func(t *testing.T) {
		html := `<html><body>
			<label for="q">Search query</label><input id="q" type="text">
		</body></html>`
		card := scoreAccessibilityElements(mustParse(t, html))

		recs := card.Recommendations
		for _, rec := range recs {
			assert.NotContains(t, rec.Problem, "label", "associated controls are not flagged")
		}
	})

	t.Run("PositiveTabindexLosesPoints", func(t *testing.T) {
		html := `<html><body><a href="/a" tabindex="5">Jump the queue</a></body></html>`
		d := mustParse(t, html)

		assert.Equal(t, 1, positiveTabindexCount(d))

		// alt 40 + controls 20 + invalid outline 10 + no skip 0 + tabindex 0 + focusables 5
		card := scoreAccessibilityElements(d)
		assert.Equal(t, 75.0, card.Score)
	})
}

func TestHeadingOutlineValid(t *testing.T) {
	assert.True(t, headingOutlineValid([]heading{{1, "a"}, {2, "b"}, {3, "c"}, {2, "d"}}))
	assert.False(t, headingOutlineValid([]heading{{2, "a"}}), "outline must start at h1")
	assert.False(t, headingOutlineValid([]heading{{1, "a"}, {3, "b"}}), "level jumps invalidate")
	assert.False(t, headingOutlineValid(nil))
}

func TestHasSkipLink(t *testing.T) {
	assert.True(t, hasSkipLink(mustParse(t, `<html><body><a href="#main">Skip to main content</a></body></html>`)))
	assert.False(t, hasSkipLink(mustParse(t, `<html><body><a href="#main">Jump down</a></body></html>`)))

	// Only the first few anchors are considered.
	late := `<html><body>
		<a href="#a">one</a><a href="#b">two</a><a href="#c">three</a>
		<a href="#main">Skip to content</a>
	</body></html>`
	assert.False(t, hasSkipLink(mustParse(t, late)))
}

func TestScoreImages(t *testing.T) {
	t.Run("NoImagesFullScore", func(t *testing.T) {
		card := scoreImages(mustParse(t, `<html><body><p>text only</p></body></html>`))

		assert.Equal(t, 100.0, card.Score)
	})

	t.Run("PartialAltCoverage", func(t *testing.T) {
		html := `<html><body>
			<img src="a.jpg" alt="first described image">
			<img src="b.jpg">
		</body></html>`
		card := scoreImages(mustParse(t, html))

		assert.Equal(t, 50.0, card.Score)
		require.NotEmpty(t, card.Recommendations)
	})

	t.Run("LazyLoadingBonusIsCapped", func(t *testing.T) {
		html := `<html><body><img src="a.jpg" alt="described" loading="lazy"></body></html>`
		card := scoreImages(mustParse(t, html))

		assert.Equal(t, 100.0, card.Score, "bonus never pushes past the budget")
	})

	t.Run("OversizedDimensionsFlagged", func(t *testing.T) {
		html := `<html><body><img src="a.jpg" alt="ok" width="4000" height="3000"></body></html>`
		card := scoreImages(mustParse(t, html))

		assert.Equal(t, 100.0, card.Score)
		require.Len(t, card.Recommendations, 1)
	})
}

func TestScorePageSpeed(t *testing.T) {
	t.Run("AbsentFallsBack", func(t *testing.T) {
		card, ok := scorePageSpeed(nil)

		assert.False(t, ok, "fallback card never joins the composite")
		assert.Equal(t, 10.0, card.Score)
		assert.Equal(t, StatusWarning, card.Status)
	})

	t.Run("AveragesPerformanceAndAccessibility", func(t *testing.T) {
		collected := &Collected{PageSpeed: &PageSpeedResult{PerformanceScore: 90, AccessibilityScore: 96}}
		card, ok := scorePageSpeed(collected)

		require.True(t, ok)
		assert.Equal(t, 93.0, card.Score)
	})

	t.Run("LowPerformanceRecommended", func(t *testing.T) {
		collected := &Collected{PageSpeed: &PageSpeedResult{PerformanceScore: 30, AccessibilityScore: 70}}
		card, _ := scorePageSpeed(collected)

		require.Len(t, card.Recommendations, 1)
	})
}

func TestAnalyzeAccessibility(t *testing.T) {
	t.Run("UnavailableComponentsRenormalize", func(t *testing.T) {
		section := analyzeAccessibility(mustParse(t, accessiblePage), nil, 15)

		// Critical DOM and page speed both unavailable; the composite is
		// driven by elements (100) and images (100) alone.
		assert.Equal(t, 100.0, section.TotalScore)
		assert.Len(t, section.Drawers, 4, "fallback cards still appear in the drawers")
	})

	t.Run("FullSignals", func(t *testing.T) {
		collected := &Collected{
			RenderedHTML: accessiblePage,
			PageSpeed:    &PageSpeedResult{PerformanceScore: 90, AccessibilityScore: 90},
		}
		section := analyzeAccessibility(mustParse(t, accessiblePage), collected, 15)

		// (100*40 + 100*25 + 100*25 + 90*10) / 100 = 99
		assert.Equal(t, 99.0, section.TotalScore)
		assert.Equal(t, StatusExcellent, section.Status)
	})
}
