package analyzer

import (
	"math"

	"github.com/aeo-audit/backend/schema"
)

// mainEntityTypes are the schema types that can represent a page's
// primary subject, in priority order of detection.
var mainEntityTypes = []string{
	"Article", "BlogPosting", "NewsArticle", "Product", "LocalBusiness", "Service",
}

var articleFamily = map[string]bool{
	"Article": true, "BlogPosting": true, "NewsArticle": true,
}

// analyzeStructuredData scores the page's machine-readable identity:
// the JSON-LD entity graph (80% of the category) and the meta/social
// tag surface (20%).
func analyzeStructuredData(d *Document, entities []schema.Entity, weight int) MainSection {
	identity := scoreIdentity(entities)
	mainEntity := scoreMainEntity(entities)
	connectivity := scoreConnectivity(entities)

	jsonldCards := []MetricCard{identity, mainEntity}
	if enrichment, ok := scoreEnrichment(entities); ok {
		jsonldCards = append(jsonldCards, enrichment)
	}
	jsonldCards = append(jsonldCards, connectivity)

	jsonld := newDrawer("jsonld-schema", "JSON-LD Schema",
		"Typed entities describing the page and its owner.", jsonldCards...)
	metaSocial := newDrawer("meta-social", "Meta & Social Tags",
		"Classic meta tags and social sharing metadata.",
		scoreMetaTags(d), scoreSocialMeta(d))

	// JSON-LD carries 80% of the category, meta/social the remaining 20%.
	jsonldPct := pct(jsonld.TotalScore, jsonld.MaxScore)
	metaPct := pct(metaSocial.TotalScore, metaSocial.MaxScore)
	score := math.Round(jsonldPct*0.8 + metaPct*0.2)

	return sectionWithScore(CategoryStructuredData, "Structured Data", weight, score, jsonld, metaSocial)
}

func pct(score, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return score / max * 100
}

// scoreIdentity checks the owner entity, WebSite and BreadcrumbList.
func scoreIdentity(entities []schema.Entity) MetricCard {
	card := newCard("identity-structure", "Identity & Structure", 0, 30)
	score := 0.0

	owner := findFirst(entities, "Organization", "Person")
	if owner == nil {
		card.Recommendations = append(card.Recommendations, recNoOwnerEntity())
	} else {
		score += 5
		var missing []string
		if !owner.Has("name") {
			missing = append(missing, "name")
		}
		if !owner.Has("url") {
			missing = append(missing, "url")
		}
		if len(missing) > 0 {
			card.Recommendations = append(card.Recommendations, recOwnerIncomplete(owner.Type, missing))
		}
		if owner.IsType("Organization") {
			if owner.Has("logo") {
				score += 3
			} else {
				card.Recommendations = append(card.Recommendations, recOrgNoLogo())
			}
			if owner.Has("sameAs") {
				score += 5
			} else {
				card.Recommendations = append(card.Recommendations, recOrgNoSameAs())
			}
			for _, key := range []string{"address", "contactPoint", "description", "foundingDate", "founder"} {
				if owner.Has(key) {
					score += 2
					break
				}
			}
		}
	}

	website := findFirst(entities, "WebSite")
	if website == nil {
		card.Recommendations = append(card.Recommendations, recNoWebSite())
	} else {
		score += 5
		if hasSearchAction(*website) {
			score += 5
		} else {
			card.Recommendations = append(card.Recommendations, recNoSearchAction())
		}
	}

	if findFirst(entities, "BreadcrumbList") != nil {
		score += 5
	} else {
		card.Recommendations = append(card.Recommendations, recNoBreadcrumb())
	}

	card.Score = math.Min(score, card.MaxScore)
	card.Status = statusFor(card.Score, card.MaxScore)
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "The site's identity entities are complete."
	}
	return card
}

func hasSearchAction(website schema.Entity) bool {
	for _, action := range website.List("potentialAction") {
		if obj, ok := action.(map[string]interface{}); ok {
			if t, _ := obj["@type"].(string); t == "SearchAction" {
				return true
			}
		}
	}
	return false
}

// scoreMainEntity detects the page's primary entity and runs the
// type-specific property checks.
func scoreMainEntity(entities []schema.Entity) MetricCard {
	card := newCard("main-entity", "Main Entity", 0, 50)

	main := findFirst(entities, mainEntityTypes...)
	if main == nil {
		card.Recommendations = append(card.Recommendations, recNoMainEntity())
		return card
	}

	score := 10.0
	card.RawData = map[string]interface{}{"entityType": main.Type}

	switch {
	case articleFamily[main.Type]:
		score += scoreArticle(*main, &card)
	case main.IsType("Product"):
		score += scoreProduct(*main, &card)
	case main.IsType("LocalBusiness"):
		score += scoreLocalBusiness(*main, &card)
	case main.IsType("Service"):
		score += scoreService(*main, &card)
	}

	card.Score = math.Min(score, card.MaxScore)
	card.Status = statusFor(card.Score, card.MaxScore)
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "The main entity is fully described."
	}
	return card
}

func scoreArticle(e schema.Entity, card *MetricCard) float64 {
	score := 0.0
	if e.Has("headline") {
		score += 10
	} else {
		card.Recommendations = append(card.Recommendations, recMainEntityMissingProp(e.Type, "headline", 7))
	}
	if isLinkedObject(e, "author") {
		score += 15
	} else {
		card.Recommendations = append(card.Recommendations, recAuthorPlainText())
	}
	if isLinkedObject(e, "publisher") {
		score += 10
	} else {
		card.Recommendations = append(card.Recommendations, recPublisherNotLinked())
	}
	if e.Has("image") {
		score += 5
	} else {
		card.Recommendations = append(card.Recommendations, recMainEntityMissingProp(e.Type, "image", 4))
	}
	if e.Has("datePublished") {
		score += 5
	} else {
		card.Recommendations = append(card.Recommendations, recMainEntityMissingProp(e.Type, "datePublished", 5))
	}
	return score
}

func scoreProduct(e schema.Entity, card *MetricCard) float64 {
	score := 0.0
	for _, prop := range []string{"name", "description", "image"} {
		if e.Has(prop) {
			score += 5
		} else {
			card.Recommendations = append(card.Recommendations, recMainEntityMissingProp("Product", prop, 5))
		}
	}
	if e.Has("offers") {
		score += 20
		if offer := firstObject(e, "offers"); offer != nil {
			for _, field := range []string{"price", "priceCurrency", "availability"} {
				if _, ok := offer[field]; !ok {
					card.Recommendations = append(card.Recommendations, recOfferField(field))
				}
			}
		}
	} else {
		card.Recommendations = append(card.Recommendations, recOffersMissing())
	}
	if e.Has("aggregateRating") || e.Has("review") {
		score += 5
	} else {
		card.Recommendations = append(card.Recommendations, recMainEntityMissingProp("Product", "aggregateRating", 3))
	}
	if e.Has("brand") {
		score += 5
	} else {
		card.Recommendations = append(card.Recommendations, recMainEntityMissingProp("Product", "brand", 3))
	}
	return score
}

func scoreLocalBusiness(e schema.Entity, card *MetricCard) float64 {
	score := 0.0
	checks := []struct {
		prop   string
		points float64
		impact int
	}{
		{"name", 5, 6},
		{"address", 15, 9},
		{"telephone", 10, 7},
		{"openingHours", 10, 5},
	}
	for _, c := range checks {
		if e.Has(c.prop) || (c.prop == "openingHours" && e.Has("openingHoursSpecification")) {
			score += c.points
		} else {
			card.Recommendations = append(card.Recommendations, recMainEntityMissingProp("LocalBusiness", c.prop, c.impact))
		}
	}
	return score
}

func scoreService(e schema.Entity, card *MetricCard) float64 {
	score := 0.0
	if e.Has("name") {
		score += 10
	} else {
		card.Recommendations = append(card.Recommendations, recMainEntityMissingProp("Service", "name", 7))
	}
	if e.Has("description") {
		score += 10
	} else {
		card.Recommendations = append(card.Recommendations, recMainEntityMissingProp("Service", "description", 6))
	}
	if isLinkedObject(e, "provider") {
		score += 15
	} else {
		card.Recommendations = append(card.Recommendations, recProviderNotLinked())
	}
	if e.Has("areaServed") {
		score += 5
	} else {
		card.Recommendations = append(card.Recommendations, recMainEntityMissingProp("Service", "areaServed", 3))
	}
	return score
}

// scoreEnrichment handles the optional FAQPage/HowTo bonus card. When
// neither schema exists the card is omitted entirely rather than
// zero-scored.
func scoreEnrichment(entities []schema.Entity) (MetricCard, bool) {
	faq := findFirst(entities, "FAQPage")
	howto := findFirst(entities, "HowTo")
	if faq == nil && howto == nil {
		return MetricCard{}, false
	}

	card := newCard("enrichment-schemas", "Enrichment Schemas", 0, 20)
	score := 0.0
	if faq != nil {
		if len(faq.List("mainEntity")) > 0 {
			score += 10
		} else {
			score += 5
			card.Recommendations = append(card.Recommendations, recEnrichmentEmpty("FAQPage", "mainEntity"))
		}
	}
	if howto != nil {
		if len(howto.List("step")) > 0 {
			score += 10
		} else {
			score += 5
			card.Recommendations = append(card.Recommendations, recEnrichmentEmpty("HowTo", "step"))
		}
	}
	card.Score = score
	card.Status = statusFor(score, card.MaxScore)
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "Enrichment schemas are populated."
	}
	return card, true
}

// scoreConnectivity rewards @id identifiers on the key entities plus
// evidence of cross-entity linking.
func scoreConnectivity(entities []schema.Entity) MetricCard {
	card := newCard("graph-connectivity", "Graph Connectivity", 0, 10)
	score := 0.0

	checked := []*schema.Entity{
		findFirst(entities, "Organization", "Person"),
		findFirst(entities, "WebSite"),
		findFirst(entities, mainEntityTypes...),
		findFirst(entities, "BreadcrumbList"),
	}
	for _, e := range checked {
		if e == nil {
			continue
		}
		if e.ID != "" {
			score += 2
		} else {
			card.Recommendations = append(card.Recommendations, recMissingEntityID(e.Type))
		}
	}

	if hasCrossEntityLink(entities) {
		score += 2
	} else if len(entities) > 0 {
		card.Recommendations = append(card.Recommendations, recNoCrossLinks())
	}

	card.Score = math.Min(score, card.MaxScore)
	card.Status = statusFor(card.Score, card.MaxScore)
	if len(card.Recommendations) == 0 && len(entities) > 0 {
		card.SuccessMessage = "Entities form a connected graph."
	}
	return card
}

// hasCrossEntityLink reports whether any entity property value is
// itself an object carrying an @id reference.
func hasCrossEntityLink(entities []schema.Entity) bool {
	for _, e := range entities {
		for key, v := range e.Props {
			if key == "@id" {
				continue
			}
			if obj, ok := v.(map[string]interface{}); ok {
				if id, _ := obj["@id"].(string); id != "" {
					return true
				}
			}
		}
	}
	return false
}

func findFirst(entities []schema.Entity, types ...string) *schema.Entity {
	for _, typ := range types {
		for i := range entities {
			if entities[i].IsType(typ) {
				return &entities[i]
			}
		}
	}
	return nil
}

// isLinkedObject reports whether the property is modelled as an entity
// object (with a name or @id), not plain text.
func isLinkedObject(e schema.Entity, key string) bool {
	obj := firstObject(e, key)
	if obj == nil {
		return false
	}
	if name, _ := obj["name"].(string); name != "" {
		return true
	}
	if id, _ := obj["@id"].(string); id != "" {
		return true
	}
	return false
}

func firstObject(e schema.Entity, key string) map[string]interface{} {
	for _, v := range e.List(key) {
		if obj, ok := v.(map[string]interface{}); ok {
			return obj
		}
	}
	return nil
}
