package analyzer

import (
	"math"

	"github.com/PuerkitoBio/goquery"
)

// semanticScores is the shared semantic-HTML5 measurement consumed by
// both the LLM-formatting and accessibility analyzers.
type semanticScores struct {
	Structural       float64 // out of MaxStructural
	Accessibility    float64 // out of MaxAccessibility
	ContentFlow      float64 // out of MaxContentFlow
	MaxStructural    float64
	MaxAccessibility float64
	MaxContentFlow   float64

	MissingLandmarks []string
	DuplicateMains   int
	AltRatio         float64
}

// scoreSemanticHTML5 measures landmark structure, ARIA usage and
// content-flow elements once, so the two consuming analyzers cannot
// drift apart.
func scoreSemanticHTML5(d *Document) semanticScores {
	s := semanticScores{
		MaxStructural:    12,
		MaxAccessibility: 8,
		MaxContentFlow:   10,
	}

	// Structural: weighted landmark presence, duplicate <main> penalized.
	landmarks := []struct {
		tag    string
		points float64
	}{
		{"main", 4},
		{"header", 3},
		{"nav", 3},
		{"footer", 2},
	}
	for _, lm := range landmarks {
		count := d.Count(lm.tag)
		if count > 0 {
			s.Structural += lm.points
		} else {
			s.MissingLandmarks = append(s.MissingLandmarks, lm.tag)
		}
		if lm.tag == "main" && count > 1 {
			s.DuplicateMains = count
			s.Structural -= 2
		}
	}
	s.Structural = math.Max(0, s.Structural)

	// Accessibility: each signal capped at 2 points.
	acc := 0.0
	if d.Count("[aria-label]") > 0 {
		acc += 2
	}
	if d.Count("[aria-describedby]") > 0 || d.Count("[aria-labelledby]") > 0 {
		acc += 2
	}
	if d.Count("[role='banner'], [role='navigation'], [role='main'], [role='contentinfo']") > 0 {
		acc += 2
	}
	s.AltRatio = imageAltRatio(d)
	acc += s.AltRatio * 2
	s.Accessibility = math.Min(acc, s.MaxAccessibility)

	// Content flow: presence plus a nesting bonus when the element sits
	// inside its natural parent.
	flow := 0.0
	if d.Count("article") > 0 {
		flow += 4
		if d.Count("main article") > 0 {
			flow += 1
		}
	}
	if d.Count("section") > 0 {
		flow += 3
		if d.Count("article section") > 0 {
			flow += 0.5
		}
	}
	if d.Count("aside") > 0 {
		flow += 3
	}
	// Raw maximum is 11.5; scale onto the 10-point budget.
	s.ContentFlow = math.Min(flow/11.5*10, s.MaxContentFlow)

	return s
}

// imageAltRatio returns the fraction of images carrying an alt
// attribute. Pages without images count as fully covered.
func imageAltRatio(d *Document) float64 {
	images := d.Root().Find("img")
	total := images.Length()
	if total == 0 {
		return 1
	}
	withAlt := 0
	images.Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("alt"); ok {
			withAlt++
		}
	})
	return float64(withAlt) / float64(total)
}
