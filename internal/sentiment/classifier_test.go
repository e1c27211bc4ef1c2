package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		rating    *int
		want      Sentiment
		wantScore int
		wantBad   int
	}{
		{"clean five star", "Great game, really fun!", intPtr(5), Positive, 5, 0},
		{"two bad words without rating", "this is trash and garbage", nil, Negative, -4, 2},
		{"one star with one bad word", "It is trash", intPtr(1), Negative, -5, 1},
		{"empty text", "", nil, Positive, 0, 0},
		{"single bad word stays neutral", "that was stupid", nil, Neutral, -2, 1},
		{"negative phrase only", "stay away from this one", nil, Neutral, -2, 0},
		{"phrase and bad word overlap", "dont download", nil, Negative, -4, 1},
		{"stacked positive entries", "works great, thanks", nil, Positive, 4, 0},
		{"shouting", "THIS GAME IS OK", nil, Neutral, -2, 0},
		{"shouting needs more than ten characters", "ABCDEFGHIJ", nil, Positive, 0, 0},
		{"punctuation run", "what???", nil, Neutral, -1, 0},
		{"mixed punctuation run", "what!?!", nil, Neutral, -1, 0},
		{"short punctuation run", "what!!", nil, Positive, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text, tt.rating)
			assert.Equal(t, tt.want, got.Sentiment)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantBad, got.BadWordCount)
		})
	}
}

func TestClassify_RatingContribution(t *testing.T) {
	tests := []struct {
		rating    int
		wantScore int
		want      Sentiment
	}{
		{0, -3, Negative},
		{1, -3, Negative},
		{2, -1, Neutral},
		{3, 0, Positive},
		{4, 2, Positive},
		{5, 3, Positive},
		{9, 3, Positive},
	}

	for _, tt := range tests {
		got := Classify("ok", intPtr(tt.rating))
		assert.Equal(t, tt.wantScore, got.Score, "rating %d", tt.rating)
		assert.Equal(t, tt.want, got.Sentiment, "rating %d", tt.rating)
	}
}

// Lexicon entries are raw substrings. These cases pin the resulting quirks.
func TestClassify_SubstringQuirks(t *testing.T) {
	t.Run("overlapping entries both count", func(t *testing.T) {
		got := Classify("this sucks", nil)
		assert.Equal(t, 2, got.BadWordCount)
		assert.Equal(t, Negative, got.Sentiment)
	})

	t.Run("short entry matches inside a word", func(t *testing.T) {
		got := Classify("Nice class", nil)
		assert.Equal(t, 1, got.BadWordCount)
		assert.Equal(t, -1, got.Score)
		assert.Equal(t, Neutral, got.Sentiment)
	})

	t.Run("each entry counts once regardless of repeats", func(t *testing.T) {
		got := Classify("trash trash trash", nil)
		assert.Equal(t, 1, got.BadWordCount)
		assert.Equal(t, -2, got.Score)
	})
}

func TestClassify_Deterministic(t *testing.T) {
	inputs := []string{"", "Great game", "WORST GAME EVER!!!", "do not download, total trash"}
	for _, in := range inputs {
		first := Classify(in, intPtr(2))
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Classify(in, intPtr(2)))
		}
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Classify("trash and garbage", nil).Score, Classify("Trash And Garbage", nil).Score)
}
