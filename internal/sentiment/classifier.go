// Package sentiment scores user-submitted text with a fixed lexicon heuristic.
package sentiment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

type Sentiment string

const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

const (
	shoutMinLength = 10
	shoutRatio     = 0.7
)

var punctuationRun = regexp.MustCompile(`[!?]{3,}`)

// Result is the outcome of Classify. Score is additive and unnormalized.
type Result struct {
	Sentiment    Sentiment `json:"sentiment"`
	Score        int       `json:"score"`
	BadWordCount int       `json:"bad_word_count"`
}

// Classify scores text and an optional 1-5 rating. It is pure and never fails.
//
// Lexicon entries are plain substrings, so overlapping entries ("suck" and
// "sucks") both fire and short entries match inside longer words ("ass" in
// "class").
func Classify(text string, rating *int) Result {
	lower := strings.ToLower(text)
	score := ratingScore(rating)

	badWords := 0
	for _, w := range BadWords {
		if strings.Contains(lower, w) {
			badWords++
			score -= 2
		}
	}

	for _, p := range NegativePhrases {
		if strings.Contains(lower, p) {
			score -= 2
		}
	}

	if isShouting(text) {
		score -= 2
	}

	if punctuationRun.MatchString(text) {
		score--
	}

	for _, w := range PositiveWords {
		if strings.Contains(lower, w) {
			score++
		}
	}

	return Result{
		Sentiment:    decide(score, badWords),
		Score:        score,
		BadWordCount: badWords,
	}
}

func ratingScore(rating *int) int {
	if rating == nil {
		return 0
	}
	switch r := *rating; {
	case r <= 1:
		return -3
	case r == 2:
		return -1
	case r == 3:
		return 0
	case r == 4:
		return 2
	default:
		return 3
	}
}

func isShouting(text string) bool {
	if utf8.RuneCountInString(text) <= shoutMinLength {
		return false
	}
	var upper, alpha int
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			upper++
			alpha++
		case r >= 'a' && r <= 'z':
			alpha++
		}
	}
	if alpha == 0 {
		return false
	}
	return float64(upper)/float64(alpha) > shoutRatio
}

func decide(score, badWords int) Sentiment {
	switch {
	case score <= -3 || badWords >= 2:
		return Negative
	case score <= -1:
		return Neutral
	default:
		return Positive
	}
}
