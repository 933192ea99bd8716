package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCard(t *testing.T, section MainSection, id string) MetricCard {
	t.Helper()
	for _, drawer := range section.Drawers {
		for _, card := range drawer.Cards {
			if card.ID == id {
				return card
			}
		}
	}
	t.Fatalf("card %q not found", id)
	return MetricCard{}
}

func TestAnalyzeDiscoverability(t *testing.T) {
	t.Run("FullyReachablePage", func(t *testing.T) {
		collected := &Collected{
			Fetch:   &FetchResult{Success: true, StatusCode: 200},
			Robots:  &RobotsResult{Success: true, Data: ""},
			Sitemap: &SitemapResult{Success: true},
		}
		section, penalties := analyzeDiscoverability("https://example.com/guide", collected, 20)

		assert.Equal(t, 100.0, section.TotalScore)
		assert.Equal(t, StatusExcellent, section.Status)
		assert.Empty(t, penalties)

		assert.Equal(t, 30.0, findCard(t, section, "ai-bot-access").Score,
			"empty robots.txt is a permissive default")
	})

	t.Run("HTTPPageLosesProtocolPoints", func(t *testing.T) {
		section, _ := analyzeDiscoverability("http://example.com", nil, 20)

		httpsCard := findCard(t, section, "https")
		assert.Equal(t, 0.0, httpsCard.Score)
		require.Len(t, httpsCard.Recommendations, 1)
	})

	t.Run("MissingRobotsScoresZeroWithoutPenalty", func(t *testing.T) {
		section, penalties := analyzeDiscoverability("https://example.com", &Collected{}, 20)

		botCard := findCard(t, section, "ai-bot-access")
		assert.Equal(t, 0.0, botCard.Score)
		assert.Empty(t, penalties, "unknown robots.txt state never penalizes globally")
	})

	t.Run("AllBotsBlockedTriggersMaxPenalty", func(t *testing.T) {
		collected := &Collected{
			Robots: &RobotsResult{Success: true, Data: "User-agent: *\nDisallow: /"},
		}
		section, penalties := analyzeDiscoverability("https://example.com", collected, 20)

		botCard := findCard(t, section, "ai-bot-access")
		assert.Equal(t, 0.0, botCard.Score)

		require.Len(t, penalties, 1)
		assert.Equal(t, "robots_txt_blocking", penalties[0].Type)
		assert.Equal(t, 0.7, penalties[0].PenaltyFactor)
		assert.Len(t, penalties[0].Details, len(aiBots))
	})

	t.Run("MajorityBlockedTriggersPartialPenalty", func(t *testing.T) {
		content := "User-agent: GPTBot\nUser-agent: Google-Extended\nUser-agent: ChatGPT-User\nUser-agent: CCBot\nDisallow: /"
		collected := &Collected{Robots: &RobotsResult{Success: true, Data: content}}
		_, penalties := analyzeDiscoverability("https://example.com", collected, 20)

		require.Len(t, penalties, 1)
		assert.Equal(t, 0.4, penalties[0].PenaltyFactor)
	})

	t.Run("MinorityBlockedHasNoPenalty", func(t *testing.T) {
		content := "User-agent: GPTBot\nDisallow: /"
		collected := &Collected{Robots: &RobotsResult{Success: true, Data: content}}
		section, penalties := analyzeDiscoverability("https://example.com", collected, 20)

		assert.Empty(t, penalties)
		botCard := findCard(t, section, "ai-bot-access")
		assert.Equal(t, 26.0, botCard.Score, "6 of 7 bots allowed rounds to 26 of 30")
	})

	t.Run("RedirectStatusScoresPartial", func(t *testing.T) {
		collected := &Collected{Fetch: &FetchResult{Success: true, StatusCode: 301}}
		section, _ := analyzeDiscoverability("https://example.com", collected, 20)

		assert.Equal(t, 15.0, findCard(t, section, "http-status").Score)
	})

	t.Run("ServerErrorScoresZero", func(t *testing.T) {
		collected := &Collected{Fetch: &FetchResult{Success: true, StatusCode: 500}}
		section, _ := analyzeDiscoverability("https://example.com", collected, 20)

		statusCard := findCard(t, section, "http-status")
		assert.Equal(t, 0.0, statusCard.Score)
		assert.Equal(t, StatusError, statusCard.Status)
	})

	t.Run("NilFetchAssumesSuccess", func(t *testing.T) {
		section, _ := analyzeDiscoverability("https://example.com", nil, 20)

		assert.Equal(t, 25.0, findCard(t, section, "http-status").Score)
	})
}
