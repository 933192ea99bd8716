package analyzer

import (
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// analyzeReadability scores the prose itself: reading ease, voice,
// paragraph structure, density and rhythm. An empty text body yields a
// dedicated zero-score card per metric rather than an error.
func analyzeReadability(d *Document, logger *zap.Logger, weight int) MainSection {
	text := d.ExtractText()

	if strings.TrimSpace(text) == "" {
		ease := newDrawer("reading-ease", "Reading Ease", "",
			emptyTextCard("flesch-reading-ease", "Flesch Reading Ease", 20),
			emptyTextCard("passive-voice", "Passive Voice", 20))
		structure := newDrawer("structure-flow", "Structure & Flow", "",
			emptyTextCard("paragraph-structure", "Paragraph Structure", 20),
			emptyTextCard("sentence-variance", "Sentence Length Variance", 15))
		signal := newDrawer("content-signal", "Content Signal", "",
			emptyTextCard("content-density", "Content Density", 15),
			emptyTextCard("vocabulary-diversity", "Vocabulary Diversity", 10))
		section := newSection(CategoryReadability, "Readability", weight, ease, structure, signal)
		section.Status = StatusError
		return section
	}

	sentences := splitSentences(text)

	ease := newDrawer("reading-ease", "Reading Ease",
		"How easily humans and language models parse the prose.",
		scoreFlesch(text),
		scorePassiveVoice(sentences, logger))
	structure := newDrawer("structure-flow", "Structure & Flow",
		"Paragraph sizing and sentence rhythm.",
		scoreParagraphStructure(d),
		scoreSentenceVariance(sentences))
	signal := newDrawer("content-signal", "Content Signal",
		"How much of the page is substantive text.",
		scoreContentDensity(text, d.raw),
		scoreVocabularyDiversity(text))

	return newSection(CategoryReadability, "Readability", weight, ease, structure, signal)
}

func emptyTextCard(id, name string, max float64) MetricCard {
	c := errorCard(id, name, max, "No readable text content could be extracted from the page.")
	c.Recommendations = append(c.Recommendations, recNoTextContent())
	return c
}

// scoreFlesch buckets the reading-ease score around the 60-80 optimal
// band.
func scoreFlesch(text string) MetricCard {
	card := newCard("flesch-reading-ease", "Flesch Reading Ease", 0, 20)
	flesch, words, sentences := fleschReadingEase(text)
	card.RawData = map[string]interface{}{
		"flesch":    math.Round(flesch*10) / 10,
		"words":     words,
		"sentences": sentences,
	}

	switch {
	case flesch >= 60 && flesch <= 80:
		card.Score = 20
		card.SuccessMessage = "The text sits in the plain-English reading band."
	case flesch >= 50 && flesch < 60, flesch > 80 && flesch <= 90:
		card.Score = 15
		card.Recommendations = append(card.Recommendations, recFleschOutside(flesch))
	case flesch >= 40 && flesch < 50, flesch > 90:
		card.Score = 10
		card.Recommendations = append(card.Recommendations, recFleschOutside(flesch))
	default:
		card.Score = 5
		card.Recommendations = append(card.Recommendations, recFleschOutside(flesch))
	}
	card.Status = statusFor(card.Score, card.MaxScore)
	return card
}

// scorePassiveVoice buckets the passive-sentence ratio. If the tagger
// is unavailable the card degrades to a mid score instead of erroring.
func scorePassiveVoice(sentences []string, logger *zap.Logger) MetricCard {
	card := newCard("passive-voice", "Passive Voice", 0, 20)

	ratio, err := passiveVoiceRatio(sentences)
	if err != nil {
		if logger != nil {
			logger.Warn("passive voice tagging unavailable", zap.Error(err))
		}
		card.Score = 10
		card.Status = StatusWarning
		card.Explanation = "Grammatical tagging was unavailable; passive voice could not be measured."
		return card
	}

	pct := int(math.Round(ratio * 100))
	card.RawData = map[string]interface{}{"passiveRatio": ratio}
	switch {
	case ratio < 0.05:
		card.Score = 20
		card.SuccessMessage = "The prose is written almost entirely in active voice."
	case ratio < 0.10:
		card.Score = 15
		card.Recommendations = append(card.Recommendations, recPassiveVoice(pct))
	case ratio < 0.15:
		card.Score = 10
		card.Recommendations = append(card.Recommendations, recPassiveVoice(pct))
	default:
		card.Score = 5
		card.Recommendations = append(card.Recommendations, recPassiveVoice(pct))
	}
	card.Status = statusFor(card.Score, card.MaxScore)
	return card
}

// scoreParagraphStructure buckets the share of paragraphs in the 50-150
// word range.
func scoreParagraphStructure(d *Document) MetricCard {
	card := newCard("paragraph-structure", "Paragraph Structure", 0, 20)

	var total, wellStructured int
	d.Root().Find("p").Each(func(_ int, s *goquery.Selection) {
		words := len(strings.Fields(s.Text()))
		if words == 0 {
			return
		}
		total++
		if words >= 50 && words <= 150 {
			wellStructured++
		}
	})
	if total == 0 {
		card.Status = StatusError
		card.Recommendations = append(card.Recommendations, recParagraphLength(0))
		return card
	}

	ratio := float64(wellStructured) / float64(total)
	card.RawData = map[string]interface{}{"paragraphs": total, "wellStructured": wellStructured}
	switch {
	case ratio >= 0.8:
		card.Score = 20
		card.SuccessMessage = "Paragraphs are consistently well sized."
	case ratio >= 0.6:
		card.Score = 15
	case ratio >= 0.4:
		card.Score = 10
	case ratio >= 0.2:
		card.Score = 5
	default:
		card.Score = 2
	}
	if ratio < 0.8 {
		card.Recommendations = append(card.Recommendations, recParagraphLength(int(ratio*100)))
	}
	card.Status = statusFor(card.Score, card.MaxScore)
	return card
}

// scoreContentDensity buckets the extracted-text to markup ratio.
func scoreContentDensity(text, rawHTML string) MetricCard {
	card := newCard("content-density", "Content Density", 0, 15)
	if len(rawHTML) == 0 {
		card.Status = StatusError
		return card
	}

	ratio := float64(len(text)) / float64(len(rawHTML))
	card.RawData = map[string]interface{}{"density": ratio}
	switch {
	case ratio >= 0.30:
		card.Score = 15
		card.SuccessMessage = "The page is dense with substantive text."
	case ratio >= 0.20:
		card.Score = 12
	case ratio >= 0.15:
		card.Score = 9
	case ratio >= 0.10:
		card.Score = 6
	default:
		card.Score = 3
	}
	if ratio < 0.30 {
		card.Recommendations = append(card.Recommendations, recLowDensity(int(ratio*100)))
	}
	card.Status = statusFor(card.Score, card.MaxScore)
	return card
}

// scoreSentenceVariance penalizes extreme average lengths and
// monotonous rhythm.
func scoreSentenceVariance(sentences []string) MetricCard {
	card := newCard("sentence-variance", "Sentence Length Variance", 0, 15)
	if len(sentences) == 0 {
		card.Status = StatusError
		return card
	}

	mean, stddev := sentenceLengthStats(sentences)
	score := 15.0
	switch {
	case mean > 25:
		score -= 5
		card.Recommendations = append(card.Recommendations, recLongSentences(mean))
	case mean < 15:
		score -= 3
		card.Recommendations = append(card.Recommendations, recShortSentences(mean))
	}
	if stddev < 3 {
		score -= 2
		card.Recommendations = append(card.Recommendations, recMonotonousRhythm())
	}

	card.Score = score
	card.Status = statusFor(score, card.MaxScore)
	card.RawData = map[string]interface{}{
		"averageLength": math.Round(mean*10) / 10,
		"stddev":        math.Round(stddev*10) / 10,
	}
	if len(card.Recommendations) == 0 {
		card.SuccessMessage = "Sentence length and rhythm are in a comfortable range."
	}
	return card
}

// scoreVocabularyDiversity buckets the unique-word ratio.
func scoreVocabularyDiversity(text string) MetricCard {
	card := newCard("vocabulary-diversity", "Vocabulary Diversity", 0, 10)
	ratio := uniqueWordRatio(text)
	card.RawData = map[string]interface{}{"uniqueRatio": ratio}

	switch {
	case ratio >= 0.6:
		card.Score = 10
		card.SuccessMessage = "Word choice is varied."
	case ratio >= 0.5:
		card.Score = 8
	case ratio >= 0.4:
		card.Score = 6
	case ratio >= 0.3:
		card.Score = 4
	default:
		card.Score = 2
	}
	if ratio < 0.5 {
		card.Recommendations = append(card.Recommendations, recLowVocabulary(int(ratio*100)))
	}
	card.Status = statusFor(card.Score, card.MaxScore)
	return card
}
