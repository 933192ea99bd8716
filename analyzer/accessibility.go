package analyzer

import (
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Component weights inside the accessibility category. Components that
// cannot be measured are dropped and the remaining weights renormalized;
// missing data never averages in as zero.
const (
	accWeightCriticalDOM = 40
	accWeightElements    = 25
	accWeightImages      = 25
	accWeightPageSpeed   = 10
)

// analyzeAccessibility scores how much of the page an un-rendering
// crawler can actually consume.
func analyzeAccessibility(d *Document, collected *Collected, weight int) MainSection {
	criticalCard, criticalOK := scoreCriticalDOM(d, collected)
	elementsCard := scoreAccessibilityElements(d)
	imagesCard := scoreImages(d)
	speedCard, speedOK := scorePageSpeed(collected)

	type component struct {
		card   MetricCard
		weight float64
		ok     bool
	}
	components := []component{
		{criticalCard, accWeightCriticalDOM, criticalOK},
		{elementsCard, accWeightElements, true},
		{imagesCard, accWeightImages, true},
		{speedCard, accWeightPageSpeed, speedOK},
	}

	var weighted, totalWeight float64
	for _, c := range components {
		if !c.ok || c.card.Status == StatusError {
			continue
		}
		weighted += c.card.Score * c.weight
		totalWeight += c.weight
	}
	score := 0.0
	if totalWeight > 0 {
		score = math.Round(weighted / totalWeight)
	}

	drawers := []DrawerSubSection{
		newDrawer("critical-dom", "Critical DOM",
			"Static versus rendered content available without JavaScript.", criticalCard),
		newDrawer("accessibility-elements", "Accessibility Elements",
			"Alt coverage, ARIA labelling and keyboard navigation.", elementsCard),
		newDrawer("images", "Images", "Alt text and sizing of page images.", imagesCard),
		newDrawer("page-speed", "Page Speed", "Externally measured performance signals.", speedCard),
	}
	return sectionWithScore(CategoryAccessibility, "Accessibility", weight, score, drawers...)
}

// contentMetrics are the comparable counts taken from a DOM snapshot.
type contentMetrics struct {
	headings   int
	paragraphs int
	links      int
	images     int
	textLen    int
	semantic   int
}

func measureContent(d *Document) contentMetrics {
	return contentMetrics{
		headings:   d.Count("h1, h2, h3, h4, h5, h6"),
		paragraphs: d.Count("p"),
		links:      d.Count("a[href]"),
		images:     d.Count("img"),
		textLen:    len(d.ExtractText()),
		semantic:   d.Count("main, article, section, nav, header, footer, aside"),
	}
}

// scoreCriticalDOM compares static HTML content against the rendered
// snapshot. Without a rendered snapshot the component reports
// not-available and is excluded from the category composite.
func scoreCriticalDOM(d *Document, collected *Collected) (MetricCard, bool) {
	card := newCard("critical-dom-ratio", "Static Content Ratio", 0, 100)
	if collected == nil || collected.RenderedHTML == "" {
		card.Status = StatusWarning
		card.Explanation = "No rendered snapshot was supplied; the static-versus-rendered comparison was skipped."
		return card, false
	}

	rendered, err := ParseHTML(collected.RenderedHTML)
	if err != nil {
		card.Status = StatusError
		card.Explanation = "The rendered snapshot could not be parsed."
		return card, false
	}

	static := measureContent(d)
	full := measureContent(rendered)

	contentRatio := cappedRatio(float64(static.textLen+static.paragraphs*50),
		float64(full.textLen+full.paragraphs*50))
	navigationRatio := cappedRatio(float64(static.links), float64(full.links))
	semanticRatio := cappedRatio(float64(static.semantic+static.headings),
		float64(full.semantic+full.headings))

	content := bucketRatio(contentRatio)
	navigation := bucketRatio(navigationRatio)
	semantic := bucketRatio(semanticRatio)
	score := math.Round(content*0.4 + navigation*0.3 + semantic*0.3)

	card.Score = score
	card.Status = statusFor(score, 100)
	card.RawData = map[string]interface{}{
		"contentRatio":    contentRatio,
		"navigationRatio": navigationRatio,
		"semanticRatio":   semanticRatio,
	}
	if contentRatio < 0.9 {
		card.Recommendations = append(card.Recommendations, recRenderGap("content", int(contentRatio*100)))
	}
	if navigationRatio < 0.9 {
		card.Recommendations = append(card.Recommendations, recRenderGap("navigation", int(navigationRatio*100)))
	}
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "The static HTML carries the full rendered content."
	}
	return card, true
}

// cappedRatio returns static/rendered capped at 1.0. A rendered side of
// zero counts as fully covered.
func cappedRatio(static, rendered float64) float64 {
	if rendered <= 0 {
		return 1
	}
	return math.Min(static/rendered, 1)
}

// bucketRatio maps a coverage ratio onto the fixed score steps.
func bucketRatio(r float64) float64 {
	switch {
	case r >= 0.9:
		return 100
	case r >= 0.7:
		return 75
	case r >= 0.5:
		return 50
	default:
		return 25
	}
}

// scoreAccessibilityElements combines alt coverage, control labelling,
// heading validity and keyboard navigation signals.
func scoreAccessibilityElements(d *Document) MetricCard {
	card := newCard("accessibility-elements", "Accessibility Elements", 0, 100)
	score := 0.0

	altRatio := imageAltRatio(d)
	score += altRatio * 40
	if altRatio < 1 {
		missing := d.Count("img") - d.Count("img[alt]")
		card.Recommendations = append(card.Recommendations, recMissingAlt(missing))
	}

	controls := d.Root().Find("button, input")
	totalControls := controls.Length()
	if totalControls == 0 {
		score += 20
	} else {
		labelled := 0
		controls.Each(func(_ int, s *goquery.Selection) {
			if aria, ok := s.Attr("aria-label"); ok && aria != "" {
				labelled++
				return
			}
			if id, ok := s.Attr("id"); ok && d.Count("label[for='"+id+"']") > 0 {
				labelled++
			}
		})
		score += float64(labelled) / float64(totalControls) * 20
		if unlabelled := totalControls - labelled; unlabelled > 0 {
			card.Recommendations = append(card.Recommendations, recNoAriaOnControls(unlabelled))
		}
	}

	if headingOutlineValid(d.headings()) {
		score += 20
	} else {
		score += 10
	}

	if hasSkipLink(d) {
		score += 10
	} else {
		card.Recommendations = append(card.Recommendations, recNoSkipLink())
	}
	if positive := positiveTabindexCount(d); positive == 0 {
		score += 5
	} else {
		card.Recommendations = append(card.Recommendations, recPositiveTabindex(positive))
	}
	if d.Count("a[href], button, input, select, textarea") > 0 {
		score += 5
	}

	card.Score = math.Round(score)
	card.Status = statusFor(card.Score, card.MaxScore)
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "Accessibility structure is solid."
	}
	return card
}

// headingOutlineValid mirrors the LLM-formatting hierarchy rule: starts
// at h1, never jumps more than one level.
func headingOutlineValid(hs []heading) bool {
	if len(hs) == 0 || hs[0].level != 1 {
		return false
	}
	for i := 1; i < len(hs); i++ {
		if hs[i].level > hs[i-1].level+1 {
			return false
		}
	}
	return true
}

func hasSkipLink(d *Document) bool {
	found := false
	d.Root().Find("a[href^='#']").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= 3 {
			return false
		}
		text := strings.ToLower(s.Text())
		if strings.Contains(text, "skip") {
			found = true
			return false
		}
		return true
	})
	return found
}

func positiveTabindexCount(d *Document) int {
	count := 0
	d.Root().Find("[tabindex]").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("tabindex"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
				count++
			}
		}
	})
	return count
}

// scoreImages rates alt coverage with a lazy-loading bonus, and flags
// over-long alt text and oversized declared dimensions.
func scoreImages(d *Document) MetricCard {
	card := newCard("image-accessibility", "Image Accessibility", 0, 100)

	images := d.Root().Find("img")
	total := images.Length()
	if total == 0 {
		card.Score = 100
		card.Status = statusFor(100, 100)
		card.SuccessMessage = "The page has no images requiring alt text."
		return card
	}

	var withoutAlt, longAlt, oversized, lazy int
	images.Each(func(_ int, s *goquery.Selection) {
		alt, ok := s.Attr("alt")
		if !ok {
			withoutAlt++
		} else if len(alt) > 125 {
			longAlt++
		}
		if loading, ok := s.Attr("loading"); ok && loading == "lazy" {
			lazy++
		}
		for _, attr := range []string{"width", "height"} {
			if v, ok := s.Attr(attr); ok {
				if n, err := strconv.Atoi(v); err == nil && n > 2000 {
					oversized++
					break
				}
			}
		}
	})

	score := math.Round(float64(total-withoutAlt) / float64(total) * 100)
	if lazy > 0 {
		score += math.Min(float64(lazy)/float64(total)*10, 10)
	}
	card.Score = math.Min(score, 100)
	card.Status = statusFor(card.Score, card.MaxScore)
	card.RawData = map[string]interface{}{
		"totalImages": total,
		"withoutAlt":  withoutAlt,
		"lazyLoaded":  lazy,
	}

	if withoutAlt > 0 {
		card.Recommendations = append(card.Recommendations, recMissingAlt(withoutAlt))
	}
	if longAlt > 0 {
		card.Recommendations = append(card.Recommendations, recLongAlt(longAlt))
	}
	if oversized > 0 {
		card.Recommendations = append(card.Recommendations, recHugeImages(oversized))
	}
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "All images carry alt text."
	}
	return card
}

// scorePageSpeed consumes the externally supplied performance result.
// Absence yields the fallback card and drops the component from the
// category composite instead of erroring.
func scorePageSpeed(collected *Collected) (MetricCard, bool) {
	card := newCard("page-speed", "Page Speed", 0, 100)
	if collected == nil || collected.PageSpeed == nil {
		card.Score = 10
		card.Status = StatusWarning
		card.Explanation = "Page speed data is temporarily unavailable."
		card.Recommendations = append(card.Recommendations, recPageSpeedUnavailable())
		return card, false
	}

	ps := collected.PageSpeed
	score := math.Round((ps.PerformanceScore + ps.AccessibilityScore) / 2)
	card.Score = math.Max(0, math.Min(score, 100))
	card.Status = statusFor(card.Score, card.MaxScore)
	card.RawData = map[string]interface{}{
		"performanceScore":   ps.PerformanceScore,
		"accessibilityScore": ps.AccessibilityScore,
		"coreWebVitals":      ps.CoreWebVitals,
	}
	if ps.PerformanceScore < 50 {
		card.Recommendations = append(card.Recommendations, recLowPerformance(int(ps.PerformanceScore)))
	} else {
		card.SuccessMessage = "Measured performance is healthy."
	}
	return card, true
}
