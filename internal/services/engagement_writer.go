package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/modxnet/modxnet-backend/internal/metrics"
	"github.com/sony/gobreaker"
)

var (
	ErrWriterNotConfigured = errors.New("AI API key not configured")
	ErrUnparseableContent  = errors.New("AI response did not contain a JSON object")
)

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

type GeneratedReview struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// GeneratedEngagement is the text produced for one synthetic engagement batch.
type GeneratedEngagement struct {
	Reviews  []GeneratedReview `json:"reviews"`
	Comments []string          `json:"comments"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// EngagementWriter asks a DeepSeek-compatible chat completion API for review
// and comment text. Calls go through a circuit breaker so a failing provider
// is skipped quickly and callers fall back to templates.
type EngagementWriter struct {
	client  *resty.Client
	apiURL  string
	apiKey  string
	model   string
	breaker *gobreaker.CircuitBreaker
}

func NewEngagementWriter(apiURL, apiKey, model string, timeout time.Duration) *EngagementWriter {
	settings := gobreaker.Settings{
		Name:        "engagement-writer",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "component", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	}

	return &EngagementWriter{
		client:  resty.New().SetTimeout(timeout),
		apiURL:  apiURL,
		apiKey:  apiKey,
		model:   model,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (w *EngagementWriter) IsAvailable() bool {
	return w != nil && w.apiKey != ""
}

// Generate requests reviews and comments about title. The result may hold
// fewer items than asked for; callers top up from templates.
func (w *EngagementWriter) Generate(ctx context.Context, title string, reviews, comments int) (*GeneratedEngagement, error) {
	if !w.IsAvailable() {
		return nil, ErrWriterNotConfigured
	}

	out, err := w.breaker.Execute(func() (interface{}, error) {
		return w.complete(ctx, buildPrompt(title, reviews, comments))
	})
	if err != nil {
		metrics.AIRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	parsed, err := ParseGeneratedEngagement(out.(string))
	if err != nil {
		metrics.AIRequests.WithLabelValues("unparseable").Inc()
		return nil, err
	}
	metrics.AIRequests.WithLabelValues("ok").Inc()
	return parsed, nil
}

func (w *EngagementWriter) complete(ctx context.Context, prompt string) (string, error) {
	var result chatResponse
	resp, err := w.client.R().
		SetContext(ctx).
		SetAuthToken(w.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(chatRequest{
			Model:       w.model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			Temperature: 0.9,
			MaxTokens:   1500,
		}).
		SetResult(&result).
		Post(w.apiURL)
	if err != nil {
		return "", fmt.Errorf("failed to call AI API: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("AI API returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no content in AI response")
	}
	return result.Choices[0].Message.Content, nil
}

func buildPrompt(title string, reviews, comments int) string {
	return fmt.Sprintf(`You are generating user engagement for a mobile game download website called ModXnet. The game is "%[1]s".

Generate ONLY a valid JSON object (no markdown, no code blocks):
{
  "reviews": [
    { "rating": 5, "text": "review text here" },
    { "rating": 4, "text": "review text here" }
  ],
  "comments": [
    "comment text here",
    "another comment"
  ]
}

Rules:
- Generate exactly %[2]d reviews with ratings: mostly 4-5 stars, maybe one 3-star
- Generate exactly %[3]d comments
- Reviews should be 1-2 sentences, authentic gamer language, casual tone
- Comments should be short (1 sentence), like real YouTube/forum comments
- Mention specific things about %[1]s to make them realistic
- Mix excitement, questions, tips, and casual reactions
- Make each one unique and different in style
- JSON only, nothing else`, title, reviews, comments)
}

// ParseGeneratedEngagement decodes model output. When the content is not
// plain JSON, the outermost {...} span is tried instead. Reviews and comments
// may be given as bare strings or as objects with a text field; a missing or
// unparseable rating defaults to 5.
func ParseGeneratedEngagement(content string) (*GeneratedEngagement, error) {
	var raw struct {
		Reviews  []json.RawMessage `json:"reviews"`
		Comments []json.RawMessage `json:"comments"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		match := jsonObject.FindString(content)
		if match == "" {
			return nil, ErrUnparseableContent
		}
		if err := json.Unmarshal([]byte(match), &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseableContent, err)
		}
	}

	out := &GeneratedEngagement{}
	for _, r := range raw.Reviews {
		out.Reviews = append(out.Reviews, decodeReview(r))
	}
	for _, c := range raw.Comments {
		out.Comments = append(out.Comments, decodeText(c))
	}
	return out, nil
}

func decodeReview(raw json.RawMessage) GeneratedReview {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return GeneratedReview{Rating: 5, Text: s}
	}
	var obj struct {
		Rating interface{} `json:"rating"`
		Text   string      `json:"text"`
	}
	_ = json.Unmarshal(raw, &obj)
	return GeneratedReview{Rating: looseInt(obj.Rating, 5), Text: obj.Text}
}

func decodeText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		Text string `json:"text"`
	}
	_ = json.Unmarshal(raw, &obj)
	return obj.Text
}

func looseInt(v interface{}, fallback int) int {
	switch n := v.(type) {
	case float64:
		if int(n) != 0 {
			return int(n)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && i != 0 {
			return i
		}
	}
	return fallback
}
