package analyzer

import (
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// analyzeLLMFormatting scores how well the markup supports machine
// comprehension: heading structure, semantic HTML, link quality and
// technical cleanliness.
func analyzeLLMFormatting(d *Document, pageURL string, weight int) MainSection {
	hs := d.headings()
	headingDrawer := newDrawer("heading-structure", "Heading Structure",
		"Hierarchy and descriptiveness of the document outline.",
		scoreHeadingHierarchy(hs),
		scoreHeadingQuality(hs),
		scoreHeadingSemanticValue(hs))

	sem := scoreSemanticHTML5(d)
	semanticDrawer := newDrawer("semantic-html", "Semantic HTML",
		"Landmark elements, ARIA usage and content-flow structure.",
		semanticStructuralCard(sem),
		semanticAccessibilityCard(sem),
		semanticContentFlowCard(sem))

	links := collectLinks(d, pageURL)
	linkDrawer := newDrawer("link-quality", "Link Quality",
		"Descriptiveness and context of internal and external links.",
		scoreInternalLinks(links),
		scoreExternalLinks(links),
		scoreLinkContext(links))

	technicalDrawer := newDrawer("technical-markup", "Technical Markup",
		"Markup cleanliness, navigation and call-to-action clarity.",
		scoreCleanMarkup(d),
		scoreNavigationStructure(d),
		scoreCTAClarity(d))

	return newSection(CategoryLLMFormatting, "LLM Formatting", weight,
		headingDrawer, semanticDrawer, linkDrawer, technicalDrawer)
}

// scoreHeadingHierarchy validates that the outline starts at h1 and
// never jumps more than one level.
func scoreHeadingHierarchy(hs []heading) MetricCard {
	card := newCard("heading-hierarchy", "Heading Hierarchy", 0, 15)
	if len(hs) == 0 {
		card.Status = StatusError
		card.Recommendations = append(card.Recommendations, recNoH1(), recFewHeadings(0))
		return card
	}

	violations := 0
	if hs[0].level != 1 {
		violations++
	}
	for i := 1; i < len(hs); i++ {
		if hs[i].level > hs[i-1].level+1 {
			violations++
		}
	}
	score := math.Max(0, 8-float64(violations)*2)
	if violations > 0 {
		card.Recommendations = append(card.Recommendations, recHierarchyViolations(violations))
	}

	h1Count := 0
	for _, h := range hs {
		if h.level == 1 {
			h1Count++
		}
	}
	switch {
	case h1Count == 1:
		score += 4
	case h1Count == 0:
		card.Recommendations = append(card.Recommendations, recNoH1())
	default:
		card.Recommendations = append(card.Recommendations, recMultipleH1(h1Count))
	}

	switch {
	case len(hs) >= 3:
		score += 3
	case len(hs) >= 1:
		score += 1
		card.Recommendations = append(card.Recommendations, recFewHeadings(len(hs)))
	}

	card.Score = score
	card.Status = statusFor(score, card.MaxScore)
	card.RawData = map[string]interface{}{"headings": len(hs), "h1Count": h1Count, "violations": violations}
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "The heading outline is logical and complete."
	}
	return card
}

// scoreHeadingQuality rates descriptiveness: long enough to carry
// meaning and not a generic filler word.
func scoreHeadingQuality(hs []heading) MetricCard {
	card := newCard("heading-quality", "Heading Quality", 0, 10)
	if len(hs) == 0 {
		card.Status = StatusError
		return card
	}
	descriptive := 0
	for _, h := range hs {
		if len(h.text) > 10 && !isGenericHeading(h.text) {
			descriptive++
		}
	}
	ratio := float64(descriptive) / float64(len(hs))
	card.Score = math.Round(ratio*10*10) / 10
	card.Status = statusFor(card.Score, card.MaxScore)
	if vague := len(hs) - descriptive; vague > 0 {
		card.Recommendations = append(card.Recommendations, recVagueHeadings(vague))
	} else {
		card.SuccessMessage = "Headings describe their sections."
	}
	return card
}

// scoreHeadingSemanticValue rates informativeness: enough words and
// characters to stand alone as an answer title.
func scoreHeadingSemanticValue(hs []heading) MetricCard {
	card := newCard("heading-semantic-value", "Heading Semantic Value", 0, 10)
	if len(hs) == 0 {
		card.Status = StatusError
		return card
	}
	informative := 0
	for _, h := range hs {
		if len(h.text) > 20 && len(strings.Fields(h.text)) >= 3 {
			informative++
		}
	}
	ratio := float64(informative) / float64(len(hs))
	card.Score = math.Round(ratio*10*10) / 10
	card.Status = statusFor(card.Score, card.MaxScore)
	if shallow := len(hs) - informative; shallow > 0 {
		card.Recommendations = append(card.Recommendations, recShallowHeadings(shallow))
	} else {
		card.SuccessMessage = "Headings carry standalone meaning."
	}
	return card
}

func semanticStructuralCard(sem semanticScores) MetricCard {
	card := newCard("structural-elements", "Structural Elements", sem.Structural, sem.MaxStructural)
	for _, tag := range sem.MissingLandmarks {
		card.Recommendations = append(card.Recommendations, recMissingLandmark(tag))
	}
	if sem.DuplicateMains > 1 {
		card.Recommendations = append(card.Recommendations, recDuplicateMain(sem.DuplicateMains))
	}
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "All structural landmarks are present."
	}
	return card
}

func semanticAccessibilityCard(sem semanticScores) MetricCard {
	card := newCard("aria-accessibility", "ARIA & Accessibility Signals", sem.Accessibility, sem.MaxAccessibility)
	if sem.Accessibility < sem.MaxAccessibility/2 {
		card.Recommendations = append(card.Recommendations, recAriaCoverage())
	}
	return card
}

func semanticContentFlowCard(sem semanticScores) MetricCard {
	card := newCard("content-flow", "Content Flow", sem.ContentFlow, sem.MaxContentFlow)
	if sem.ContentFlow < sem.MaxContentFlow/2 {
		card.Recommendations = append(card.Recommendations, recContentFlow("article"))
	}
	return card
}

var deprecatedTags = []string{"font", "center", "b", "i"}

// scoreCleanMarkup penalizes inline styling, presentational tags and
// deep nesting.
func scoreCleanMarkup(d *Document) MetricCard {
	card := newCard("clean-markup", "Clean Markup", 0, 8)
	score := 8.0

	inlineStyles := d.Count("[style]")
	if inlineStyles > 5 {
		score -= 3
		card.Recommendations = append(card.Recommendations, recInlineStyles(inlineStyles))
	}

	var found []string
	for _, tag := range deprecatedTags {
		if d.Count(tag) > 0 {
			found = append(found, tag)
		}
	}
	if len(found) > 0 {
		score -= 2
		card.Recommendations = append(card.Recommendations, recDeprecatedTags(found))
	}

	depth := maxNestingDepth(d.raw)
	if depth > 10 {
		score -= 3
		card.Recommendations = append(card.Recommendations, recDeepNesting(depth))
	}

	card.Score = math.Max(0, score)
	card.Status = statusFor(card.Score, card.MaxScore)
	card.RawData = map[string]interface{}{
		"inlineStyles":   inlineStyles,
		"deprecatedTags": found,
		"nestingDepth":   depth,
	}
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "The markup is clean and flat."
	}
	return card
}

// scoreNavigationStructure rewards a nav landmark, a usable link count
// and breadcrumb markup.
func scoreNavigationStructure(d *Document) MetricCard {
	card := newCard("navigation-structure", "Navigation Structure", 0, 7)
	score := 0.0

	if d.Count("nav") > 0 {
		score += 3
		navLinks := d.Count("nav a[href]")
		if navLinks >= 3 {
			score += 2
		} else {
			card.Recommendations = append(card.Recommendations, recFewNavLinks(navLinks))
		}
	} else {
		card.Recommendations = append(card.Recommendations, recNoNav())
	}

	if hasBreadcrumbMarkup(d) {
		score += 2
	} else {
		card.Recommendations = append(card.Recommendations, recNoBreadcrumbNav())
	}

	card.Score = score
	card.Status = statusFor(score, card.MaxScore)
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "Navigation is structured and discoverable."
	}
	return card
}

func hasBreadcrumbMarkup(d *Document) bool {
	if d.Count(".breadcrumb, .breadcrumbs, [itemtype*='BreadcrumbList']") > 0 {
		return true
	}
	found := false
	d.Root().Find("nav[aria-label]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		label, _ := s.Attr("aria-label")
		if strings.Contains(strings.ToLower(label), "breadcrumb") {
			found = true
			return false
		}
		return true
	})
	return found
}

// scoreCTAClarity flags interactive elements whose visible text is a
// generic call-to-action with no accessible label, and elements with no
// accessible name at all. Penalties accrue per occurrence, capped at
// the budget.
func scoreCTAClarity(d *Document) MetricCard {
	card := newCard("cta-clarity", "CTA Context Clarity", 0, 20)

	var generic, unnamed int
	d.Root().Find("a[href], button").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		aria, _ := s.Attr("aria-label")
		title, _ := s.Attr("title")

		if len(text) < 2 && aria == "" && title == "" {
			unnamed++
			return
		}
		if isGenericLinkText(text) && len(aria) < 15 {
			generic++
		}
	})

	penalty := math.Min(float64(generic)*2+float64(unnamed)*3, 20)
	card.Score = 20 - penalty
	card.Status = statusFor(card.Score, card.MaxScore)
	card.RawData = map[string]interface{}{"genericCTAs": generic, "unnamedInteractive": unnamed}
	if generic > 0 {
		card.Recommendations = append(card.Recommendations, recGenericCTA(generic))
	}
	if unnamed > 0 {
		card.Recommendations = append(card.Recommendations, recUnnamedInteractive(unnamed))
	}
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "Calls to action are self-describing."
	}
	return card
}
