package analyzer

import (
	"math"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageLink is one classified <a href> on the page.
type pageLink struct {
	href        string
	text        string
	ariaLabel   string
	internal    bool
	host        string
	inParagraph bool // inside a <p> with over 20 chars of text
}

// collectLinks classifies every anchor by hostname against the page's
// own host. Fragment-only and empty hrefs are skipped.
func collectLinks(d *Document, pageURL string) []pageLink {
	pageHost := ""
	if parsed, err := url.Parse(pageURL); err == nil {
		pageHost = strings.ToLower(parsed.Hostname())
	}

	var links []pageLink
	d.Root().Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || href == "#" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
			return
		}

		link := pageLink{href: href, text: strings.TrimSpace(s.Text())}
		link.ariaLabel, _ = s.Attr("aria-label")

		if parsed, err := url.Parse(href); err == nil && parsed.Hostname() != "" {
			link.host = strings.ToLower(parsed.Hostname())
			link.internal = link.host == pageHost
		} else {
			link.internal = true // relative URL
			link.host = pageHost
		}

		p := s.ParentsFiltered("p").First()
		if p.Length() > 0 && len(strings.TrimSpace(p.Text())) > 20 {
			link.inParagraph = true
		}
		links = append(links, link)
	})
	return links
}

func isDescriptiveLink(l pageLink) bool {
	text := l.text
	if text == "" {
		text = l.ariaLabel
	}
	return len(text) > 3 && !isGenericLinkText(text)
}

// scoreInternalLinks rates internal links by their descriptive-text ratio.
func scoreInternalLinks(links []pageLink) MetricCard {
	card := newCard("internal-links", "Internal Links", 0, 8)

	var internal, descriptive int
	for _, l := range links {
		if !l.internal {
			continue
		}
		internal++
		if isDescriptiveLink(l) {
			descriptive++
		}
	}
	card.RawData = map[string]interface{}{"internalLinks": internal, "descriptive": descriptive}

	if internal == 0 {
		card.Recommendations = append(card.Recommendations, recNoInternalLinks())
		return card
	}
	ratio := float64(descriptive) / float64(internal)
	card.Score = math.Round(ratio*8*10) / 10
	card.Status = statusFor(card.Score, card.MaxScore)
	if generic := internal - descriptive; generic > 0 {
		card.Recommendations = append(card.Recommendations, recGenericLinkText(generic))
	} else {
		card.SuccessMessage = "Internal links use descriptive text."
	}
	return card
}

// scoreExternalLinks blends descriptive-text ratio with the share of
// links pointing at authoritative domains.
func scoreExternalLinks(links []pageLink) MetricCard {
	card := newCard("external-links", "External Links", 0, 7)

	var external, descriptive, authoritative int
	for _, l := range links {
		if l.internal {
			continue
		}
		external++
		if isDescriptiveLink(l) {
			descriptive++
		}
		if isAuthoritativeHost(l.host) {
			authoritative++
		}
	}
	card.RawData = map[string]interface{}{
		"externalLinks": external,
		"descriptive":   descriptive,
		"authoritative": authoritative,
	}

	if external == 0 {
		// External links are optional; a page citing nothing gets a
		// neutral partial credit rather than a failure.
		card.Score = 3.5
		card.Status = statusFor(card.Score, card.MaxScore)
		return card
	}

	descRatio := float64(descriptive) / float64(external)
	authRatio := float64(authoritative) / float64(external)
	card.Score = math.Round((descRatio*0.6+authRatio*0.4)*7*10) / 10
	card.Status = statusFor(card.Score, card.MaxScore)
	if authRatio < 0.25 {
		card.Recommendations = append(card.Recommendations, recFewAuthoritativeLinks())
	}
	if generic := external - descriptive; generic > 0 {
		card.Recommendations = append(card.Recommendations, recGenericLinkText(generic))
	}
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "External links are descriptive and well sourced."
	}
	return card
}

// scoreLinkContext rates the fraction of links embedded in meaningful
// paragraph text.
func scoreLinkContext(links []pageLink) MetricCard {
	card := newCard("link-context", "Link Context", 0, 5)
	if len(links) == 0 {
		card.Score = 2.5
		card.Status = statusFor(card.Score, card.MaxScore)
		return card
	}

	inContext := 0
	for _, l := range links {
		if l.inParagraph {
			inContext++
		}
	}
	ratio := float64(inContext) / float64(len(links))
	card.Score = math.Round(ratio*5*10) / 10
	card.Status = statusFor(card.Score, card.MaxScore)
	card.RawData = map[string]interface{}{"totalLinks": len(links), "inContext": inContext}
	if bare := len(links) - inContext; bare > len(links)/2 {
		card.Recommendations = append(card.Recommendations, recBareLinks(bare))
	} else {
		card.SuccessMessage = "Most links sit inside explanatory text."
	}
	return card
}
