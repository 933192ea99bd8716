package analyzer

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wellOptimizedPage is a page doing essentially everything right:
// complete head metadata, a linked JSON-LD graph, a clean landmark
// structure and readable, active-voice prose.
const wellOptimizedPage = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<title>Answer Engine Optimization Field Guide for Editors</title>
	<meta name="description" content="A practical field guide to preparing editorial content for answer engines, covering structure, machine-readable metadata and clarity for editors.">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<meta name="robots" content="index,follow">
	<meta property="og:title" content="Answer Engine Optimization Field Guide for Editors">
	<meta property="og:description" content="A practical field guide to preparing editorial content for answer engines.">
	<meta property="og:image" content="https://example.com/hero.jpg">
	<meta property="og:image:alt" content="An editor reviewing a structured page outline">
	<meta property="og:image:width" content="1200">
	<meta property="og:image:height" content="630">
	<meta property="og:url" content="https://example.com/guides/aeo">
	<meta property="og:type" content="article">
	<meta property="og:site_name" content="Example Press">
	<meta name="twitter:card" content="summary_large_image">
	<meta name="twitter:site" content="@example">
	<meta name="twitter:creator" content="@ada">
	<script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@graph": [
			{
				"@type": "Organization",
				"@id": "https://example.com/#org",
				"name": "Example Press",
				"url": "https://example.com",
				"logo": "https://example.com/logo.png",
				"sameAs": ["https://twitter.com/example"],
				"description": "A publisher."
			},
			{
				"@type": "WebSite",
				"@id": "https://example.com/#website",
				"name": "Example",
				"publisher": {"@id": "https://example.com/#org"},
				"potentialAction": {"@type": "SearchAction", "target": "https://example.com/?q={query}"}
			},
			{
				"@type": "BreadcrumbList",
				"@id": "https://example.com/#breadcrumb",
				"itemListElement": []
			},
			{
				"@type": "Article",
				"@id": "https://example.com/guides/aeo#article",
				"headline": "How answer engines read editorial pages",
				"author": {"@type": "Person", "name": "Ada Writer"},
				"publisher": {"@id": "https://example.com/#org"},
				"image": "https://example.com/hero.jpg",
				"datePublished": "2026-01-15"
			}
		]
	}
	</script>
</head>
<body>
	<a href="#content">Skip to content</a>
	<header>
		<nav aria-label="Breadcrumb" role="navigation" class="breadcrumb">
			<a href="/">Back to the home page</a>
			<a href="/guides">All published field guides</a>
			<a href="/guides/aeo">Answer engine optimization</a>
		</nav>
	</header>
	<main id="content" aria-labelledby="page-title">
		<article>
			<h1 id="page-title">How answer engines read editorial pages.</h1>
			<section>
				<h2>Why single ideas survive passage extraction.</h2>
				<p>Answer engines quote pages directly, so every paragraph needs to stand on
				its own feet. When a reader asks a question, the engine lifts a short passage
				and presents it without the surrounding page. Editors who shape each section
				around a single clear idea give those passages a much better chance of
				survival, including links like <a href="/guides/entity-graphs">our guide to
				structured entity graphs</a> for deeper background. The outline above each
				passage tells the machine what the text covers, and that context travels
				with the quote.</p>
			</section>
			<section>
				<h2>Plain language and direct verbs matter.</h2>
				<p>Plain language wins twice. People skim faster, and language models waste
				fewer tokens on filler before they reach the substance. Short verbs beat
				long nominal phrases in almost every sentence. A concrete subject at the
				front of each clause keeps the meaning stable even after an engine trims
				the edges. None of this requires dumbing the material down; it simply asks
				the writer to choose the direct route every time a simpler phrasing exists.</p>
			</section>
			<section>
				<h2>Structural landmarks that machines can map.</h2>
				<p>Structure carries as much signal as style. Landmarks such as the main
				element and a single clear heading at the top let a crawler map the page in
				one pass. The W3C publishes <a href="https://www.w3.org/WAI/standards-guidelines/">detailed
				guidance on accessible markup</a>, and the same techniques help machines as
				much as human readers. Teams that audit their templates once rarely need to
				fix individual articles later, because the template carries the structure
				for them.</p>
				<img src="/hero.jpg" alt="An editor reviewing a structured page outline" loading="lazy">
			</section>
			<aside>Related reading lives in the guides index.</aside>
		</article>
	</main>
	<footer>Published by Example Press.</footer>
</body>
</html>`

func fullSignals() *Collected {
	return &Collected{
		Fetch:        &FetchResult{Success: true, StatusCode: 200},
		Robots:       &RobotsResult{Success: true, Data: ""},
		Sitemap:      &SitemapResult{Success: true},
		RenderedHTML: wellOptimizedPage,
		PageSpeed:    &PageSpeedResult{PerformanceScore: 92, AccessibilityScore: 94},
	}
}

func TestAuditWellOptimizedPage(t *testing.T) {
	a := newTestAuditor(t)

	report, err := a.Audit(wellOptimizedPage, "https://example.com/guides/aeo", fullSignals())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, report.TotalScore, 90.0)
	assert.Empty(t, report.GlobalPenalties)
	assert.Equal(t, "5/5 analyses completed", report.Completeness)
	assert.Equal(t, 5, report.Metadata.CompletedAnalyses)
	assert.Len(t, report.Sections, 5)
	assert.Len(t, report.Breakdown, 5)
	assert.Empty(t, report.Error)

	for id, b := range report.Breakdown {
		assert.NotEqual(t, StatusError, b.Status, "category %s should complete", id)
	}

	for _, section := range report.Sections {
		assert.GreaterOrEqual(t, section.TotalScore, 0.0)
		assert.LessOrEqual(t, section.TotalScore, section.MaxScore)
		for _, drawer := range section.Drawers {
			var sum float64
			for _, card := range drawer.Cards {
				assert.GreaterOrEqual(t, card.Score, 0.0)
				assert.LessOrEqual(t, card.Score, card.MaxScore)
				sum += card.Score
			}
			assert.Equal(t, sum, drawer.TotalScore, "drawer %s totals its cards", drawer.ID)
		}
	}
}

func TestAuditIsDeterministic(t *testing.T) {
	a := newTestAuditor(t)
	a.ClearCache()

	first, err := a.Audit(wellOptimizedPage, "https://example.com/guides/aeo", fullSignals())
	require.NoError(t, err)
	a.ClearCache()
	second, err := a.Audit(wellOptimizedPage, "https://example.com/guides/aeo", fullSignals())
	require.NoError(t, err)

	assert.Equal(t, first.TotalScore, second.TotalScore)
	assert.Equal(t, first.Metadata, second.Metadata)
}

func TestAuditBlockedCrawlersPenalizeFinalScore(t *testing.T) {
	a := newTestAuditor(t)
	collected := fullSignals()
	collected.Robots = &RobotsResult{Success: true, Data: "User-agent: *\nDisallow: /"}

	report, err := a.Audit(wellOptimizedPage, "https://example.com/blocked", collected)
	require.NoError(t, err)

	require.Len(t, report.GlobalPenalties, 1)
	assert.Equal(t, 0.7, report.GlobalPenalties[0].PenaltyFactor)
	assert.Equal(t, math.Round(report.Metadata.BaseScore*0.3), report.TotalScore)
	assert.Less(t, report.TotalScore, report.Metadata.BaseScore)
}

func TestAuditEmptyHTML(t *testing.T) {
	a := newTestAuditor(t)

	report, err := a.Audit("", "https://example.com", nil)
	require.Error(t, err)
	require.NotNil(t, report, "the failure report is still a complete shape")

	assert.Equal(t, 0.0, report.TotalScore)
	assert.NotEmpty(t, report.Error)
	assert.Len(t, report.Sections, 5)
	assert.Equal(t, "0/5 analyses completed", report.Completeness)
}

func TestAuditCaching(t *testing.T) {
	a := newTestAuditor(t)
	url := "https://example.com/cached"

	assert.False(t, a.IsCached(url, wellOptimizedPage))

	first, err := a.Audit(wellOptimizedPage, url, fullSignals())
	require.NoError(t, err)
	assert.True(t, a.IsCached(url, wellOptimizedPage))

	second, err := a.Audit(wellOptimizedPage, url, fullSignals())
	require.NoError(t, err)
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt, "cache hit returns the stored report")

	a.ClearCache()
	assert.False(t, a.IsCached(url, wellOptimizedPage))
}

func TestCacheExpiry(t *testing.T) {
	a := newTestAuditor(t)
	a.SetCacheTTL(1 * time.Millisecond)
	url := "https://example.com/expiring"

	_, err := a.Audit("<html><body><p>x</p></body></html>", url, nil)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	assert.False(t, a.IsCached(url, "<html><body><p>x</p></body></html>"))
}

func TestCacheEviction(t *testing.T) {
	a := newTestAuditor(t)
	a.SetMaxCacheSize(2)

	pages := []string{
		"<html><body><p>one</p></body></html>",
		"<html><body><p>two</p></body></html>",
		"<html><body><p>three</p></body></html>",
	}
	for i, p := range pages {
		_, err := a.Audit(p, "https://example.com/evict", nil)
		require.NoError(t, err, "page %d", i)
		time.Sleep(2 * time.Millisecond)
	}
	a.cleanup()

	stats := a.GetCacheStats()
	assert.LessOrEqual(t, stats.Entries, 2)
	assert.True(t, a.IsCached("https://example.com/evict", pages[2]),
		"the newest entry survives eviction")
}

func TestShutdown(t *testing.T) {
	a := newTestAuditor(t)
	_, err := a.Audit("<html><body><p>x</p></body></html>", "https://example.com", nil)
	require.NoError(t, err)

	require.NoError(t, a.Shutdown())
}
