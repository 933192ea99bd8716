package analyzer

import (
	"fmt"
	"math"
	"net/url"
	"strings"
)

// analyzeDiscoverability scores how reachable the page is for AI
// crawlers: HTTPS, HTTP status, robots.txt bot access and sitemap
// presence. It is the one analyzer that can emit global penalties.
func analyzeDiscoverability(rawURL string, collected *Collected, weight int) (MainSection, []GlobalPenalty) {
	httpsCard := scoreHTTPS(rawURL)
	statusCard := scoreHTTPStatus(collected)
	botCard, penalties := scoreAIBotAccess(collected)
	sitemapCard := scoreSitemap(collected)

	protocol := newDrawer("protocol-availability", "Protocol & Availability",
		"Transport security and response health of the canonical URL.",
		httpsCard, statusCard)
	access := newDrawer("crawler-access", "Crawler Access",
		"Whether AI crawlers are permitted and guided to the content.",
		botCard, sitemapCard)

	return newSection(CategoryDiscoverability, "Discoverability", weight, protocol, access), penalties
}

func scoreHTTPS(rawURL string) MetricCard {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errorCard("https", "HTTPS", 25, fmt.Sprintf("URL could not be parsed: %v", err))
	}
	card := newCard("https", "HTTPS", 0, 25)
	if parsed.Scheme == "https" {
		card.Score = 25
		card.Status = statusFor(25, 25)
		card.SuccessMessage = "The page is served over HTTPS."
	} else {
		card.Recommendations = append(card.Recommendations, recNoHTTPS())
	}
	card.RawData = map[string]interface{}{"scheme": parsed.Scheme}
	return card
}

func scoreHTTPStatus(collected *Collected) MetricCard {
	card := newCard("http-status", "HTTP Status", 0, 25)

	// No fetch metadata means the HTML was handed to us directly, which
	// only happens for a successful retrieval.
	fetch := &FetchResult{Success: true, StatusCode: 200}
	if collected != nil && collected.Fetch != nil {
		fetch = collected.Fetch
	}
	card.RawData = map[string]interface{}{"statusCode": fetch.StatusCode, "success": fetch.Success}

	switch {
	case !fetch.Success:
		card.Status = StatusError
		card.Recommendations = append(card.Recommendations, recFetchFailed(orUnknown(fetch.Error)))
	case fetch.StatusCode >= 200 && fetch.StatusCode < 300:
		card.Score = 25
		card.Status = statusFor(25, 25)
		card.SuccessMessage = fmt.Sprintf("The page responded with HTTP %d.", fetch.StatusCode)
	case fetch.StatusCode >= 300 && fetch.StatusCode < 400:
		card.Score = 15
		card.Status = statusFor(15, 25)
		card.Recommendations = append(card.Recommendations, recBadStatus(fetch.StatusCode))
	default:
		card.Status = StatusError
		card.Recommendations = append(card.Recommendations, recBadStatus(fetch.StatusCode))
	}
	return card
}

func orUnknown(msg string) string {
	if msg == "" {
		return "unknown error"
	}
	return msg
}

// scoreAIBotAccess parses robots.txt and checks each tracked AI bot.
// Missing robots.txt scores zero (access is unpredictable); an empty
// one scores full (permissive default). Blocking more than half the
// bots triggers a global penalty.
func scoreAIBotAccess(collected *Collected) (MetricCard, []GlobalPenalty) {
	card := newCard("ai-bot-access", "AI Bot Access", 0, 30)

	if collected == nil || collected.Robots == nil || !collected.Robots.Success {
		card.Recommendations = append(card.Recommendations, recRobotsMissing())
		card.RawData = map[string]interface{}{"robotsTxtFound": false}
		return card, nil
	}

	content := collected.Robots.Data
	if strings.TrimSpace(content) == "" {
		card.Score = 30
		card.Status = statusFor(30, 30)
		card.SuccessMessage = "robots.txt places no restrictions on AI crawlers."
		card.RawData = map[string]interface{}{"robotsTxtFound": true, "allowedBots": len(aiBots)}
		return card, nil
	}

	rules := parseRobotsTxt(content)
	var blocked []string
	for _, bot := range aiBots {
		if !isBotAllowed(rules, bot) {
			blocked = append(blocked, bot)
		}
	}
	allowed := len(aiBots) - len(blocked)
	card.Score = math.Round(30 * float64(allowed) / float64(len(aiBots)))
	card.Status = statusFor(card.Score, 30)
	card.RawData = map[string]interface{}{
		"robotsTxtFound": true,
		"allowedBots":    allowed,
		"blockedBots":    blocked,
	}
	if len(blocked) > 0 {
		card.Recommendations = append(card.Recommendations, recBotsBlocked(blocked))
	} else {
		card.SuccessMessage = "All tracked AI crawlers are allowed."
	}

	return card, botBlockingPenalty(blocked)
}

// botBlockingPenalty maps the blocked fraction onto a global penalty:
// all bots blocked removes 70% of the final score, a majority blocked
// removes 40%.
func botBlockingPenalty(blocked []string) []GlobalPenalty {
	frac := float64(len(blocked)) / float64(len(aiBots))
	var factor float64
	switch {
	case frac >= 1.0:
		factor = 0.7
	case frac > 0.5:
		factor = 0.4
	default:
		return nil
	}
	details := make([]string, 0, len(blocked))
	for _, bot := range blocked {
		details = append(details, fmt.Sprintf("%s is disallowed from the site root", bot))
	}
	return []GlobalPenalty{{
		Type:          "robots_txt_blocking",
		Description:   "robots.txt blocks AI crawlers from reading the site",
		PenaltyFactor: factor,
		Details:       details,
		Solutions: []string{
			"Remove 'Disallow: /' from the rule blocks applying to AI crawlers",
			"Add explicit 'Allow: /' rules for the AI user agents you want to reach",
		},
	}}
}

func scoreSitemap(collected *Collected) MetricCard {
	card := newCard("sitemap", "Sitemap", 0, 20)
	found := collected != nil && collected.Sitemap != nil && collected.Sitemap.Success
	card.RawData = map[string]interface{}{"sitemapFound": found}
	if found {
		card.Score = 20
		card.Status = statusFor(20, 20)
		card.SuccessMessage = "An XML sitemap was found."
	} else {
		card.Recommendations = append(card.Recommendations, recNoSitemap())
	}
	return card
}
