package engagement

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store for service tests.
type memStore struct {
	mu       sync.Mutex
	reviews  []Review
	comments []Comment
	authors  map[string]uuid.UUID

	failCreate  error
	failAuthors map[string]error
}

func newMemStore() *memStore {
	return &memStore{authors: map[string]uuid.UUID{}, failAuthors: map[string]error{}}
}

func (m *memStore) CreateReview(_ context.Context, r *Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return m.failCreate
	}
	for _, existing := range m.reviews {
		if existing.AuthorID == r.AuthorID && existing.GameSlug == r.GameSlug {
			return ErrAlreadyReviewed
		}
	}
	m.reviews = append(m.reviews, *r)
	return nil
}

func (m *memStore) CreateComment(_ context.Context, c *Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return m.failCreate
	}
	m.comments = append(m.comments, *c)
	return nil
}

func (m *memStore) HasReview(_ context.Context, authorID uuid.UUID, gameSlug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.AuthorID == authorID && r.GameSlug == gameSlug {
			return true, nil
		}
	}
	return false, nil
}

func visible(expiresAt *time.Time, now time.Time) bool {
	return expiresAt == nil || expiresAt.After(now)
}

func (m *memStore) ListReviews(_ context.Context, gameSlug string, now time.Time) ([]ReviewView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []ReviewView{}
	for _, r := range m.reviews {
		if r.GameSlug == gameSlug && visible(r.ExpiresAt, now) {
			out = append(out, ReviewView{ID: r.ID, GameSlug: r.GameSlug, Rating: r.Rating, Body: r.Body, Sentiment: r.Sentiment, CreatedAt: r.CreatedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) ListComments(_ context.Context, gameSlug string, now time.Time) ([]CommentView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []CommentView{}
	for _, c := range m.comments {
		if c.GameSlug == gameSlug && visible(c.ExpiresAt, now) {
			out = append(out, CommentView{ID: c.ID, GameSlug: c.GameSlug, Body: c.Body, Sentiment: c.Sentiment, CreatedAt: c.CreatedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) CountReviews(ctx context.Context, gameSlug string, now time.Time) (int64, error) {
	views, err := m.ListReviews(ctx, gameSlug, now)
	return int64(len(views)), err
}

func (m *memStore) CountComments(ctx context.Context, gameSlug string, now time.Time) (int64, error) {
	views, err := m.ListComments(ctx, gameSlug, now)
	return int64(len(views)), err
}

func (m *memStore) DeleteExpired(_ context.Context, now time.Time) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rn, cn int64
	keptReviews := m.reviews[:0]
	for _, r := range m.reviews {
		if r.ExpiresAt != nil && !r.ExpiresAt.After(now) {
			rn++
			continue
		}
		keptReviews = append(keptReviews, r)
	}
	m.reviews = keptReviews
	keptComments := m.comments[:0]
	for _, c := range m.comments {
		if c.ExpiresAt != nil && !c.ExpiresAt.After(now) {
			cn++
			continue
		}
		keptComments = append(keptComments, c)
	}
	m.comments = keptComments
	return rn, cn, nil
}

func (m *memStore) ListAllReviews(context.Context) ([]AdminReviewView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []AdminReviewView{}
	for _, r := range m.reviews {
		out = append(out, AdminReviewView{
			ReviewView: ReviewView{ID: r.ID, GameSlug: r.GameSlug, Rating: r.Rating, Body: r.Body, Sentiment: r.Sentiment, CreatedAt: r.CreatedAt},
			AuthorID:   r.AuthorID,
			ExpiresAt:  r.ExpiresAt,
		})
	}
	return out, nil
}

func (m *memStore) ListAllComments(context.Context) ([]AdminCommentView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []AdminCommentView{}
	for _, c := range m.comments {
		out = append(out, AdminCommentView{
			CommentView: CommentView{ID: c.ID, GameSlug: c.GameSlug, Body: c.Body, Sentiment: c.Sentiment, CreatedAt: c.CreatedAt},
			AuthorID:    c.AuthorID,
			ExpiresAt:   c.ExpiresAt,
		})
	}
	return out, nil
}

func (m *memStore) DeleteReview(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.reviews {
		if r.ID == id {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return ErrReviewNotFound
}

func (m *memStore) DeleteComment(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.comments {
		if c.ID == id {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return nil
		}
	}
	return ErrCommentNotFound
}

func (m *memStore) EnsurePseudoAuthor(_ context.Context, a PseudoAuthor) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failAuthors[a.Name]; err != nil {
		return uuid.Nil, err
	}
	if id, ok := m.authors[a.Name]; ok {
		return id, nil
	}
	id := uuid.New()
	m.authors[a.Name] = id
	return id, nil
}

func (m *memStore) insertReview(r Review) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = append(m.reviews, r)
}

func (m *memStore) reviewCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reviews)
}

var errStoreDown = errors.New("store unavailable")
