package analyzer

import "math"

// scoreMetaTags scores the classic head metadata: title and description
// length buckets plus the technical tags crawlers expect.
func scoreMetaTags(d *Document) MetricCard {
	card := newCard("meta-tags", "Meta Tags", 0, 100)
	score := 0.0
	raw := map[string]interface{}{}

	title := d.Text("title")
	raw["titleLength"] = len(title)
	switch {
	case title == "":
		card.Recommendations = append(card.Recommendations, recNoTitle())
	case len(title) >= 50 && len(title) <= 60:
		score += 40
	case (len(title) >= 30 && len(title) < 50) || (len(title) > 60 && len(title) <= 70):
		score += 25
		card.Recommendations = append(card.Recommendations, recTitleLength(len(title)))
	default:
		score += 10
		card.Recommendations = append(card.Recommendations, recTitleLength(len(title)))
	}

	desc := d.MetaContent("description")
	raw["descriptionLength"] = len(desc)
	switch {
	case desc == "":
		card.Recommendations = append(card.Recommendations, recNoDescription())
	case len(desc) >= 140 && len(desc) <= 160:
		score += 35
	case (len(desc) >= 120 && len(desc) < 140) || (len(desc) > 160 && len(desc) <= 180):
		score += 20
		card.Recommendations = append(card.Recommendations, recDescriptionLength(len(desc)))
	default:
		score += 10
		card.Recommendations = append(card.Recommendations, recDescriptionLength(len(desc)))
	}

	if d.Count("meta[name='viewport']") > 0 {
		score += 10
	} else {
		card.Recommendations = append(card.Recommendations, recMissingTechMeta("viewport"))
	}
	if d.Count("meta[charset]") > 0 || d.Count("meta[http-equiv='Content-Type']") > 0 {
		score += 10
	} else {
		card.Recommendations = append(card.Recommendations, recMissingTechMeta("charset"))
	}
	if d.MetaContent("robots") != "" {
		score += 5
	} else {
		card.Recommendations = append(card.Recommendations, recMissingTechMeta("robots"))
	}

	card.Score = score
	card.Status = statusFor(score, card.MaxScore)
	card.RawData = raw
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "Title, description and technical meta tags are in good shape."
	}
	return card
}

// scoreSocialMeta scores the Open Graph / Twitter card surface as one
// unified 100-point card.
func scoreSocialMeta(d *Document) MetricCard {
	card := newCard("social-meta", "Social Meta Tags", 0, 100)
	score := 0.0

	required := []struct {
		tag    string
		points float64
		impact int
	}{
		{"og:title", 20, 6},
		{"og:description", 15, 5},
		{"og:image", 20, 6},
		{"og:url", 10, 3},
		{"og:type", 15, 4},
		{"twitter:card", 10, 3},
	}
	present := map[string]bool{}
	for _, r := range required {
		if d.MetaContent(r.tag) != "" {
			score += r.points
			present[r.tag] = true
		} else {
			card.Recommendations = append(card.Recommendations, recMissingSocialTag(r.tag, r.impact))
		}
	}

	if present["og:image"] {
		if d.MetaContent("og:image:alt") != "" {
			score += 5
		} else {
			card.Recommendations = append(card.Recommendations, recMissingSocialTag("og:image:alt", 2))
		}
		if d.MetaContent("og:image:width") == "" || d.MetaContent("og:image:height") == "" {
			card.Recommendations = append(card.Recommendations, recNoImageDimensions())
		}
	}

	// Attribution tags share a capped bonus bucket.
	attribution := 0.0
	if d.MetaContent("og:site_name") != "" {
		attribution += 1
	}
	if d.MetaContent("twitter:site") != "" {
		attribution += 2
	}
	if d.MetaContent("twitter:creator") != "" {
		attribution += 2
	}
	score += math.Min(attribution, 5)

	card.Score = math.Min(score, card.MaxScore)
	card.Status = statusFor(card.Score, card.MaxScore)
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "Social sharing metadata is complete."
	}
	return card
}
