package analyzer

import (
	"math"
	"regexp"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
	wordCleanRe     = regexp.MustCompile(`[^a-z']+`)
)

// splitSentences breaks text on terminal punctuation, dropping empty
// fragments.
func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// countSyllables applies the vowel-group heuristic with a silent
// trailing "e" adjustment. Every word has at least one syllable.
func countSyllables(word string) int {
	w := wordCleanRe.ReplaceAllString(strings.ToLower(word), "")
	if w == "" {
		return 0
	}
	count := 0
	prevVowel := false
	for _, r := range w {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// fleschReadingEase computes the standard formula, clamped to [0,100].
func fleschReadingEase(text string) (score float64, words, sentences int) {
	sents := splitSentences(text)
	fields := strings.Fields(text)
	sentences = len(sents)
	words = len(fields)
	if sentences == 0 || words == 0 {
		return 0, words, sentences
	}

	syllables := 0
	for _, w := range fields {
		syllables += countSyllables(w)
	}

	score = 206.835 -
		1.015*(float64(words)/float64(sentences)) -
		84.6*(float64(syllables)/float64(words))
	return math.Max(0, math.Min(score, 100)), words, sentences
}

// beForms are the auxiliary verbs that open a passive construction.
var beForms = map[string]bool{
	"is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "am": true,
	"gets": true, "got": true, "get": true,
}

// passiveVoiceRatio tags each sentence and counts those containing a
// be-form followed within two tokens by a past participle. The tagger
// is an external capability; its failure is reported, not fatal.
func passiveVoiceRatio(sentences []string) (float64, error) {
	if len(sentences) == 0 {
		return 0, nil
	}
	passive := 0
	for _, sent := range sentences {
		doc, err := prose.NewDocument(sent,
			prose.WithSegmentation(false),
			prose.WithExtraction(false))
		if err != nil {
			return 0, err
		}
		if hasPassiveConstruction(doc.Tokens()) {
			passive++
		}
	}
	return float64(passive) / float64(len(sentences)), nil
}

func hasPassiveConstruction(tokens []prose.Token) bool {
	for i, tok := range tokens {
		if !beForms[strings.ToLower(tok.Text)] {
			continue
		}
		for j := i + 1; j < len(tokens) && j <= i+2; j++ {
			if tokens[j].Tag == "VBN" {
				return true
			}
		}
	}
	return false
}

// sentenceLengthStats returns the mean and standard deviation of
// per-sentence word counts.
func sentenceLengthStats(sentences []string) (mean, stddev float64) {
	if len(sentences) == 0 {
		return 0, 0
	}
	counts := make([]float64, len(sentences))
	sum := 0.0
	for i, s := range sentences {
		counts[i] = float64(len(strings.Fields(s)))
		sum += counts[i]
	}
	mean = sum / float64(len(counts))

	variance := 0.0
	for _, c := range counts {
		variance += (c - mean) * (c - mean)
	}
	stddev = math.Sqrt(variance / float64(len(counts)))
	return mean, stddev
}

// uniqueWordRatio measures vocabulary diversity over lowercased,
// punctuation-stripped tokens.
func uniqueWordRatio(text string) float64 {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(fields))
	total := 0
	for _, f := range fields {
		w := wordCleanRe.ReplaceAllString(f, "")
		if w == "" {
			continue
		}
		total++
		seen[w] = struct{}{}
	}
	if total == 0 {
		return 0
	}
	return float64(len(seen)) / float64(total)
}
