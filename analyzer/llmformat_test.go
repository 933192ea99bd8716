package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreHeadingHierarchy(t *testing.T) {
	t.Run("ValidOutline", func(t *testing.T) {
		hs := []heading{
			{1, "Answer engines and how they read your pages"},
			{2, "Why the outline shape matters for extraction"},
			{3, "Keeping heading levels contiguous in practice"},
		}
		card := scoreHeadingHierarchy(hs)

		assert.Equal(t, 15.0, card.Score)
		assert.Empty(t, card.Recommendations)
	})

	t.Run("LevelJumpLosesPoints", func(t *testing.T) {
		hs := []heading{
			{1, "A sufficiently descriptive title"},
			{3, "Jumped straight past level two"},
			{4, "And another section under it"},
		}
		card := scoreHeadingHierarchy(hs)

		// one violation: 8-2 + 4 (single h1) + 3 (count)
		assert.Equal(t, 13.0, card.Score)
		assert.Equal(t, 1, card.RawData["violations"])
	})

	t.Run("MultipleH1", func(t *testing.T) {
		hs := []heading{
			{1, "First competing page title here"},
			{1, "Second competing page title here"},
			{2, "A subsection under one of them"},
		}
		card := scoreHeadingHierarchy(hs)

		// no jumps: 8 + 0 (multiple h1) + 3
		assert.Equal(t, 11.0, card.Score)
		require.Len(t, card.Recommendations, 1)
	})

	t.Run("NoHeadings", func(t *testing.T) {
		card := scoreHeadingHierarchy(nil)

		assert.Equal(t, 0.0, card.Score)
		assert.Equal(t, StatusError, card.Status)
		assert.Len(t, card.Recommendations, 2)
	})
}

func TestScoreHeadingQuality(t *testing.T) {
	hs := []heading{
		{1, "A descriptive explanation of the topic"},
		{2, "Overview"}, // generic
		{2, "Short"},    // too short
	}
	card := scoreHeadingQuality(hs)

	// 1 of 3 descriptive
	assert.Equal(t, 3.3, card.Score)
	require.Len(t, card.Recommendations, 1)
}

func TestScoreHeadingSemanticValue(t *testing.T) {
	hs := []heading{
		{2, "How crawlers interpret heading text"}, // >20 chars, >=3 words
		{2, "Just two words"},                      // too short
	}
	card := scoreHeadingSemanticValue(hs)

	assert.Equal(t, 5.0, card.Score)
}

func TestScoreSemanticHTML5(t *testing.T) {
	t.Run("FullLandmarks", func(t *testing.T) {
		html := `<html><body>
			<header>h</header>
			<nav aria-label="Primary" role="navigation"><a href="/a">Section one link</a></nav>
			<main aria-labelledby="title">
				<article><section><p id="title">text</p></section></article>
			</main>
			<aside>related</aside>
			<footer>f</footer>
		</body></html>`
		sem := scoreSemanticHTML5(mustParse(t, html))

		assert.Equal(t, 12.0, sem.Structural)
		assert.Equal(t, 8.0, sem.Accessibility, "no images counts as full alt coverage")
		assert.Equal(t, 10.0, sem.ContentFlow, "article in main, section in article, aside present")
		assert.Empty(t, sem.MissingLandmarks)
	})

	t.Run("DivSoup", func(t *testing.T) {
		html := `<html><body><div><div>content</div></div></body></html>`
		sem := scoreSemanticHTML5(mustParse(t, html))

		assert.Equal(t, 0.0, sem.Structural)
		assert.Len(t, sem.MissingLandmarks, 4)
		assert.Equal(t, 0.0, sem.ContentFlow)
	})

	t.Run("DuplicateMainPenalized", func(t *testing.T) {
		html := `<html><body><main>a</main><main>b</main></body></html>`
		sem := scoreSemanticHTML5(mustParse(t, html))

		assert.Equal(t, 2, sem.DuplicateMains)
		assert.Equal(t, 2.0, sem.Structural, "4 for main minus the duplicate penalty")
	})

	t.Run("AltRatio", func(t *testing.T) {
		html := `<html><body><img src="a.jpg" alt="described"><img src="b.jpg"></body></html>`
		sem := scoreSemanticHTML5(mustParse(t, html))

		assert.Equal(t, 0.5, sem.AltRatio)
	})
}

func TestCollectLinks(t *testing.T) {
	html := `<html><body>
		<p>Read the full background in our detailed article about
			<a href="/guides/entity-graphs">structured entity graphs</a> today.</p>
		<a href="https://example.com/about">about this same site</a>
		<a href="https://research.nist.gov/report">an external standards report</a>
		<a href="#section">fragment link</a>
		<a href="mailto:hi@example.com">mail</a>
		<a href="javascript:void(0)">js</a>
	</body></html>`
	links := collectLinks(mustParse(t, html), "https://example.com/page")

	require.Len(t, links, 3, "fragment, mailto and javascript links are skipped")
	assert.True(t, links[0].internal)
	assert.True(t, links[0].inParagraph)
	assert.True(t, links[1].internal, "absolute URL on the page host is internal")
	assert.False(t, links[2].internal)
	assert.Equal(t, "research.nist.gov", links[2].host)
}

func TestScoreInternalLinks(t *testing.T) {
	t.Run("AllDescriptive", func(t *testing.T) {
		links := []pageLink{
			{internal: true, text: "our structured data guide"},
			{internal: true, text: "readability checklist"},
		}
		card := scoreInternalLinks(links)

		assert.Equal(t, 8.0, card.Score)
	})

	t.Run("GenericTextPenalized", func(t *testing.T) {
		links := []pageLink{
			{internal: true, text: "click here"},
			{internal: true, text: "our structured data guide"},
		}
		card := scoreInternalLinks(links)

		assert.Equal(t, 4.0, card.Score)
		require.Len(t, card.Recommendations, 1)
	})

	t.Run("NoInternalLinks", func(t *testing.T) {
		card := scoreInternalLinks(nil)

		assert.Equal(t, 0.0, card.Score)
		require.Len(t, card.Recommendations, 1)
	})

	t.Run("AriaLabelRescuesEmptyText", func(t *testing.T) {
		links := []pageLink{{internal: true, text: "", ariaLabel: "open the pricing page"}}
		card := scoreInternalLinks(links)

		assert.Equal(t, 8.0, card.Score)
	})
}

func TestScoreExternalLinks(t *testing.T) {
	t.Run("NoExternalIsNeutral", func(t *testing.T) {
		card := scoreExternalLinks(nil)

		assert.Equal(t, 3.5, card.Score)
		assert.Empty(t, card.Recommendations)
	})

	t.Run("AuthoritativeAndDescriptive", func(t *testing.T) {
		links := []pageLink{
			{internal: false, text: "the W3C accessibility guidelines", host: "www.w3.org"},
			{internal: false, text: "a university study on readability", host: "web.mit.edu"},
		}
		card := scoreExternalLinks(links)

		assert.Equal(t, 7.0, card.Score)
	})
}

func TestScoreLinkContext(t *testing.T) {
	links := []pageLink{
		{inParagraph: true},
		{inParagraph: true},
		{inParagraph: false},
		{inParagraph: false},
	}
	card := scoreLinkContext(links)

	assert.Equal(t, 2.5, card.Score)
	assert.Empty(t, card.Recommendations, "half bare is not a majority")
}

func TestScoreCleanMarkup(t *testing.T) {
	t.Run("CleanPage", func(t *testing.T) {
		card := scoreCleanMarkup(mustParse(t, `<html><body><main><p>text</p></main></body></html>`))

		assert.Equal(t, 8.0, card.Score)
	})

	t.Run("InlineStylesAndDeprecatedTags", func(t *testing.T) {
		html := `<html><body>
			<div style="a"></div><div style="a"></div><div style="a"></div>
			<div style="a"></div><div style="a"></div><div style="a"></div>
			<center>old school</center>
		</body></html>`
		card := scoreCleanMarkup(mustParse(t, html))

		assert.Equal(t, 3.0, card.Score)
		assert.Len(t, card.Recommendations, 2)
	})
}

func TestScoreNavigationStructure(t *testing.T) {
	t.Run("FullNavigation", func(t *testing.T) {
		html := `<html><body>
			<nav aria-label="Breadcrumb trail">
				<a href="/">Home section</a>
				<a href="/guides">Guides overview</a>
				<a href="/guides/aeo">This guide</a>
			</nav>
		</body></html>`
		card := scoreNavigationStructure(mustParse(t, html))

		assert.Equal(t, 7.0, card.Score)
	})

	t.Run("NoNav", func(t *testing.T) {
		card := scoreNavigationStructure(mustParse(t, `<html><body><p>x</p></body></html>`))

		assert.Equal(t, 0.0, card.Score)
		assert.Len(t, card.Recommendations, 2)
	})
}

func TestScoreCTAClarity(t *testing.T) {
	t.Run("DescriptiveActions", func(t *testing.T) {
		html := `<html><body>
			<a href="/pricing">Compare subscription plans</a>
			<button aria-label="Subscribe to the weekly digest">Subscribe to the digest</button>
		</body></html>`
		card := scoreCTAClarity(mustParse(t, html))

		assert.Equal(t, 20.0, card.Score)
	})

	t.Run("GenericAndUnnamed", func(t *testing.T) {
		html := `<html><body>
			<a href="/x">click here</a>
			<a href="/y">learn more</a>
			<a href="/z"></a>
		</body></html>`
		card := scoreCTAClarity(mustParse(t, html))

		// 2 generic (2 each) + 1 unnamed (3)
		assert.Equal(t, 13.0, card.Score)
		assert.Len(t, card.Recommendations, 2)
	})
}

func TestAnalyzeLLMFormatting(t *testing.T) {
	good := `<html><body>
		<header><nav aria-label="Primary" role="navigation" class="breadcrumb">
			<a href="/">Back to the home page</a>
			<a href="/guides">All published field guides</a>
			<a href="/guides/aeo">Answer engine optimization</a>
		</nav></header>
		<main aria-labelledby="page-title">
			<article>
				<h1 id="page-title">How answer engines read editorial pages</h1>
				<section>
					<h2>Why contiguous heading levels help extraction</h2>
					<p>Answer engines lift passages whole, so the surrounding outline gives each
					passage its context, including <a href="/guides/entity-graphs">our guide to
					structured entity graphs</a> for deeper background.</p>
				</section>
				<section>
					<h2>Keeping interactive elements self-describing</h2>
					<p>Every control should carry a name that survives being quoted out of
					context by an engine.</p>
				</section>
			</article>
			<aside><p>Related reading lives here.</p></aside>
		</main>
		<footer><p>footer</p></footer>
	</body></html>`

	bad := `<html><body><div><div>
		<h3>Intro</h3>
		<a href="/x">click here</a>
	</div></div></body></html>`

	goodSection := analyzeLLMFormatting(mustParse(t, good), "https://example.com/guides/aeo", 25)
	badSection := analyzeLLMFormatting(mustParse(t, bad), "https://example.com/x", 25)

	assert.Equal(t, CategoryLLMFormatting, goodSection.ID)
	assert.Len(t, goodSection.Drawers, 4)
	assert.Equal(t, 100.0, goodSection.MaxScore)
	assert.Greater(t, goodSection.TotalScore, 85.0)
	assert.Less(t, badSection.TotalScore, 40.0)
	assert.Greater(t, goodSection.TotalScore, badSection.TotalScore)
}
