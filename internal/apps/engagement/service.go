package engagement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/modxnet/modxnet-backend/internal/metrics"
	"github.com/modxnet/modxnet-backend/internal/sentiment"
	"github.com/modxnet/modxnet-backend/internal/services"
)

const (
	DefaultNegativeTTL = 10 * time.Minute

	minReviewLength  = 3
	maxReviewLength  = 2000
	minCommentLength = 1
	maxCommentLength = 1000
)

// TextSource produces review and comment text for synthetic engagement.
type TextSource interface {
	IsAvailable() bool
	Generate(ctx context.Context, title string, reviews, comments int) (*services.GeneratedEngagement, error)
}

// GameDirectory resolves a game slug to its display title.
type GameDirectory interface {
	GameTitle(ctx context.Context, slug string) (title string, found bool, err error)
}

// Service mediates creation, expiry and retrieval of reviews and comments.
type Service struct {
	store       Store
	clock       clockwork.Clock
	negativeTTL time.Duration
	writer      TextSource
	games       GameDirectory
	log         *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*Service)

func WithClock(c clockwork.Clock) Option { return func(s *Service) { s.clock = c } }

// WithNegativeTTL sets how long negative items stay visible. Non-positive values are ignored.
func WithNegativeTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.negativeTTL = d
		}
	}
}

func WithTextSource(w TextSource) Option { return func(s *Service) { s.writer = w } }

func WithGameDirectory(g GameDirectory) Option { return func(s *Service) { s.games = g } }

func WithRand(r *rand.Rand) Option { return func(s *Service) { s.rng = r } }

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		clock:       clockwork.NewRealClock(),
		negativeTTL: DefaultNegativeTTL,
		log:         slog.Default().With("component", "engagement"),
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitReview validates and stores a review, then returns the current
// visible reviews for the game.
func (s *Service) SubmitReview(ctx context.Context, authorID uuid.UUID, gameSlug string, rating int, body string) ([]ReviewView, error) {
	if rating < 1 || rating > 5 {
		return nil, invalid("rating", "Rating must be between 1 and 5")
	}
	body = strings.TrimSpace(body)
	if n := utf8.RuneCountInString(body); n < minReviewLength {
		return nil, invalid("text", "Review must be at least 3 characters")
	} else if n > maxReviewLength {
		return nil, invalid("text", fmt.Sprintf("Review must be at most %d characters", maxReviewLength))
	}

	now := s.clock.Now()
	result := sentiment.Classify(body, &rating)
	review := &Review{
		ID:        uuid.New(),
		AuthorID:  authorID,
		GameSlug:  gameSlug,
		Rating:    rating,
		Body:      body,
		Sentiment: string(result.Sentiment),
		CreatedAt: now,
		ExpiresAt: s.expiryFor(result.Sentiment, now),
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	metrics.ItemsCreated.WithLabelValues("review", review.Sentiment).Inc()
	if review.ExpiresAt != nil {
		s.log.Info("negative review scheduled for expiry",
			"game_slug", gameSlug, "review_id", review.ID, "score", result.Score, "expires_at", review.ExpiresAt)
	}

	return s.store.ListReviews(ctx, gameSlug, now)
}

// SubmitComment validates and stores a comment, then returns the current
// visible comments for the game.
func (s *Service) SubmitComment(ctx context.Context, authorID uuid.UUID, gameSlug, body string) ([]CommentView, error) {
	body = strings.TrimSpace(body)
	if n := utf8.RuneCountInString(body); n < minCommentLength {
		return nil, invalid("text", "Comment cannot be empty")
	} else if n > maxCommentLength {
		return nil, invalid("text", fmt.Sprintf("Comment must be at most %d characters", maxCommentLength))
	}

	now := s.clock.Now()
	result := sentiment.Classify(body, nil)
	comment := &Comment{
		ID:        uuid.New(),
		AuthorID:  authorID,
		GameSlug:  gameSlug,
		Body:      body,
		Sentiment: string(result.Sentiment),
		CreatedAt: now,
		ExpiresAt: s.expiryFor(result.Sentiment, now),
	}

	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	metrics.ItemsCreated.WithLabelValues("comment", comment.Sentiment).Inc()

	return s.store.ListComments(ctx, gameSlug, now)
}

func (s *Service) ListReviews(ctx context.Context, gameSlug string) ([]ReviewView, error) {
	return s.store.ListReviews(ctx, gameSlug, s.clock.Now())
}

func (s *Service) ListComments(ctx context.Context, gameSlug string) ([]CommentView, error) {
	return s.store.ListComments(ctx, gameSlug, s.clock.Now())
}

func (s *Service) expiryFor(sent sentiment.Sentiment, now time.Time) *time.Time {
	if sent != sentiment.Negative {
		return nil
	}
	at := now.Add(s.negativeTTL)
	return &at
}

type SweepResult struct {
	Reviews  int64 `json:"reviews_deleted"`
	Comments int64 `json:"comments_deleted"`
}

// SweepExpired permanently deletes every item whose expiry has passed.
// Running it again with nothing newly expired deletes nothing.
func (s *Service) SweepExpired(ctx context.Context) (SweepResult, error) {
	start := time.Now()
	reviews, comments, err := s.store.DeleteExpired(ctx, s.clock.Now())
	metrics.SweepDuration.Observe(time.Since(start).Seconds())

	res := SweepResult{Reviews: reviews, Comments: comments}
	metrics.ItemsExpired.WithLabelValues("review").Add(float64(reviews))
	metrics.ItemsExpired.WithLabelValues("comment").Add(float64(comments))
	if err != nil {
		metrics.SweepFailures.Inc()
		return res, fmt.Errorf("expiry sweep: %w", err)
	}
	if reviews+comments > 0 {
		s.log.Info("expired engagement removed", "reviews", reviews, "comments", comments)
	}
	return res, nil
}

func (s *Service) ListAllReviews(ctx context.Context) ([]AdminReviewView, error) {
	return s.store.ListAllReviews(ctx)
}

func (s *Service) ListAllComments(ctx context.Context) ([]AdminCommentView, error) {
	return s.store.ListAllComments(ctx)
}

func (s *Service) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteReview(ctx, id)
}

func (s *Service) DeleteComment(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteComment(ctx, id)
}

type GenerateRequest struct {
	GameSlug     string
	GameName     string
	ReviewCount  int
	CommentCount int
}

type GenerateResult struct {
	Success         bool  `json:"success"`
	ReviewsCreated  int   `json:"reviews_created"`
	CommentsCreated int   `json:"comments_created"`
	AIUsed          bool  `json:"ai_used"`
	TotalReviews    int64 `json:"total_reviews"`
	TotalComments   int64 `json:"total_comments"`
}

// GenerateSynthetic creates backdated reviews and comments from pseudo-authors.
// It is best-effort: items that fail are logged and left out of the counts.
// Only a failed game lookup or failed final counts abort the run.
func (s *Service) GenerateSynthetic(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	title, err := s.resolveTitle(ctx, req.GameSlug, req.GameName)
	if err != nil {
		return nil, err
	}

	numReviews := syntheticCount(req.ReviewCount, DefaultSyntheticReviews)
	numComments := syntheticCount(req.CommentCount, DefaultSyntheticComments)
	res := &GenerateResult{Success: true}

	var reviews []syntheticReview
	var comments []string
	if s.writer != nil && s.writer.IsAvailable() {
		generated, err := s.writer.Generate(ctx, title, numReviews, numComments)
		if err != nil {
			s.log.Warn("AI engagement text unavailable, using templates", "game_slug", req.GameSlug, "error", err)
		} else {
			res.AIUsed = true
			for _, r := range generated.Reviews {
				reviews = append(reviews, syntheticReview{rating: r.Rating, text: r.Text})
			}
			comments = generated.Comments
		}
	}

	s.rngMu.Lock()
	authors := shuffled(PseudoAuthors, s.rng)
	authors = authors[:min(numReviews+numComments, len(authors))]
	if len(reviews) == 0 {
		reviews = templateReviews(numReviews, s.rng)
	}
	if len(comments) == 0 {
		comments = templateComments(numComments, s.rng)
	}
	s.rngMu.Unlock()

	source := "template"
	if res.AIUsed {
		source = "ai"
	}

	now := s.clock.Now()
	next := 0
	author := func() PseudoAuthor {
		a := authors[next%len(authors)]
		next++
		return a
	}

	for i := 0; i < len(reviews) && i < numReviews; i++ {
		if s.insertSyntheticReview(ctx, req.GameSlug, author(), reviews[i], now) {
			res.ReviewsCreated++
			metrics.SyntheticCreated.WithLabelValues("review", source).Inc()
		}
	}
	for i := 0; i < len(comments) && i < numComments; i++ {
		if s.insertSyntheticComment(ctx, req.GameSlug, author(), comments[i], now) {
			res.CommentsCreated++
			metrics.SyntheticCreated.WithLabelValues("comment", source).Inc()
		}
	}

	if res.TotalReviews, err = s.store.CountReviews(ctx, req.GameSlug, now); err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}
	if res.TotalComments, err = s.store.CountComments(ctx, req.GameSlug, now); err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	s.log.Info("synthetic engagement generated",
		"game_slug", req.GameSlug, "reviews", res.ReviewsCreated, "comments", res.CommentsCreated, "ai_used", res.AIUsed)
	return res, nil
}

func (s *Service) resolveTitle(ctx context.Context, slug, name string) (string, error) {
	var catalogTitle string
	if s.games != nil {
		title, found, err := s.games.GameTitle(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("lookup game %s: %w", slug, err)
		}
		if !found {
			return "", ErrGameNotFound
		}
		catalogTitle = title
	}

	switch {
	case strings.TrimSpace(name) != "":
		return strings.TrimSpace(name), nil
	case catalogTitle != "":
		return catalogTitle, nil
	default:
		return strings.ReplaceAll(slug, "-", " "), nil
	}
}

func (s *Service) insertSyntheticReview(ctx context.Context, slug string, a PseudoAuthor, r syntheticReview, now time.Time) bool {
	text := truncateRunes(strings.TrimSpace(r.text), MaxSyntheticTextLength)
	if text == "" {
		return false
	}

	authorID, err := s.store.EnsurePseudoAuthor(ctx, a)
	if err != nil {
		s.log.Warn("synthetic review skipped", "game_slug", slug, "author", a.Name, "error", err)
		return false
	}

	exists, err := s.store.HasReview(ctx, authorID, slug)
	if err != nil {
		s.log.Warn("synthetic review skipped", "game_slug", slug, "author", a.Name, "error", err)
		return false
	}
	if exists {
		return false
	}

	rating := clampRating(r.rating)
	sent := sentiment.Neutral
	if rating >= 4 {
		sent = sentiment.Positive
	}

	s.rngMu.Lock()
	createdAt := RandomPastDate(now, reviewBackdateDays, s.rng)
	s.rngMu.Unlock()

	err = s.store.CreateReview(ctx, &Review{
		ID:        uuid.New(),
		AuthorID:  authorID,
		GameSlug:  slug,
		Rating:    rating,
		Body:      text,
		Sentiment: string(sent),
		CreatedAt: createdAt,
	})
	if err != nil {
		if !errors.Is(err, ErrAlreadyReviewed) {
			s.log.Warn("synthetic review skipped", "game_slug", slug, "author", a.Name, "error", err)
		}
		return false
	}
	return true
}

func (s *Service) insertSyntheticComment(ctx context.Context, slug string, a PseudoAuthor, body string, now time.Time) bool {
	text := truncateRunes(strings.TrimSpace(body), MaxSyntheticTextLength)
	if text == "" {
		return false
	}

	authorID, err := s.store.EnsurePseudoAuthor(ctx, a)
	if err != nil {
		s.log.Warn("synthetic comment skipped", "game_slug", slug, "author", a.Name, "error", err)
		return false
	}

	s.rngMu.Lock()
	createdAt := RandomPastDate(now, commentBackdateDays, s.rng)
	s.rngMu.Unlock()

	err = s.store.CreateComment(ctx, &Comment{
		ID:        uuid.New(),
		AuthorID:  authorID,
		GameSlug:  slug,
		Body:      text,
		Sentiment: string(sentiment.Positive),
		CreatedAt: createdAt,
	})
	if err != nil {
		s.log.Warn("synthetic comment skipped", "game_slug", slug, "author", a.Name, "error", err)
		return false
	}
	return true
}
