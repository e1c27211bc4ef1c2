package engagement

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modxnet/modxnet-backend/internal/models"
	"gorm.io/gorm"
)

// Store persists reviews and comments. Implementations must enforce the
// one-review-per-author-and-game rule atomically and report a violation as
// ErrAlreadyReviewed.
type Store interface {
	CreateReview(ctx context.Context, r *Review) error
	CreateComment(ctx context.Context, c *Comment) error
	HasReview(ctx context.Context, authorID uuid.UUID, gameSlug string) (bool, error)

	// ListReviews and ListComments return rows with no expiry or an expiry
	// after now, newest first.
	ListReviews(ctx context.Context, gameSlug string, now time.Time) ([]ReviewView, error)
	ListComments(ctx context.Context, gameSlug string, now time.Time) ([]CommentView, error)
	CountReviews(ctx context.Context, gameSlug string, now time.Time) (int64, error)
	CountComments(ctx context.Context, gameSlug string, now time.Time) (int64, error)

	// DeleteExpired removes rows whose expiry is at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (reviews, comments int64, err error)

	ListAllReviews(ctx context.Context) ([]AdminReviewView, error)
	ListAllComments(ctx context.Context) ([]AdminCommentView, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
	DeleteComment(ctx context.Context, id uuid.UUID) error

	// EnsurePseudoAuthor returns the system user for a, creating it on first use.
	EnsurePseudoAuthor(ctx context.Context, a PseudoAuthor) (uuid.UUID, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

const notExpired = "(expires_at IS NULL OR expires_at > ?)"

func (s *GormStore) CreateReview(ctx context.Context, r *Review) error {
	if err := s.db.WithContext(ctx).Omit("Author").Create(r).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyReviewed
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (s *GormStore) CreateComment(ctx context.Context, c *Comment) error {
	if err := s.db.WithContext(ctx).Omit("Author").Create(c).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (s *GormStore) HasReview(ctx context.Context, authorID uuid.UUID, gameSlug string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Review{}).
		Where("author_id = ? AND game_slug = ?", authorID, gameSlug).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) ListReviews(ctx context.Context, gameSlug string, now time.Time) ([]ReviewView, error) {
	views := []ReviewView{}
	err := s.db.WithContext(ctx).
		Table("reviews r").
		Select("r.id, r.game_slug, r.rating, r.body, r.sentiment, r.created_at, u.username, u.avatar_url").
		Joins("JOIN users u ON u.id = r.author_id").
		Where("r.game_slug = ? AND (r.expires_at IS NULL OR r.expires_at > ?)", gameSlug, now).
		Order("r.created_at DESC").
		Scan(&views).Error
	return views, err
}

func (s *GormStore) ListComments(ctx context.Context, gameSlug string, now time.Time) ([]CommentView, error) {
	views := []CommentView{}
	err := s.db.WithContext(ctx).
		Table("comments c").
		Select("c.id, c.game_slug, c.body, c.sentiment, c.created_at, u.username, u.avatar_url").
		Joins("JOIN users u ON u.id = c.author_id").
		Where("c.game_slug = ? AND (c.expires_at IS NULL OR c.expires_at > ?)", gameSlug, now).
		Order("c.created_at DESC").
		Scan(&views).Error
	return views, err
}

func (s *GormStore) CountReviews(ctx context.Context, gameSlug string, now time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&Review{}).
		Where("game_slug = ?", gameSlug).Where(notExpired, now).
		Count(&n).Error
	return n, err
}

func (s *GormStore) CountComments(ctx context.Context, gameSlug string, now time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&Comment{}).
		Where("game_slug = ?", gameSlug).Where(notExpired, now).
		Count(&n).Error
	return n, err
}

// DeleteExpired runs both deletes even when the first fails, so one broken
// table does not block cleanup of the other.
func (s *GormStore) DeleteExpired(ctx context.Context, now time.Time) (int64, int64, error) {
	db := s.db.WithContext(ctx)
	const expired = "expires_at IS NOT NULL AND expires_at <= ?"

	rr := db.Where(expired, now).Delete(&Review{})
	cr := db.Where(expired, now).Delete(&Comment{})
	return rr.RowsAffected, cr.RowsAffected, errors.Join(rr.Error, cr.Error)
}

func (s *GormStore) ListAllReviews(ctx context.Context) ([]AdminReviewView, error) {
	views := []AdminReviewView{}
	err := s.db.WithContext(ctx).
		Table("reviews r").
		Select("r.id, r.game_slug, r.rating, r.body, r.sentiment, r.created_at, r.expires_at, r.author_id, u.username, u.avatar_url, u.email").
		Joins("JOIN users u ON u.id = r.author_id").
		Order("r.created_at DESC").
		Scan(&views).Error
	return views, err
}

func (s *GormStore) ListAllComments(ctx context.Context) ([]AdminCommentView, error) {
	views := []AdminCommentView{}
	err := s.db.WithContext(ctx).
		Table("comments c").
		Select("c.id, c.game_slug, c.body, c.sentiment, c.created_at, c.expires_at, c.author_id, u.username, u.avatar_url, u.email").
		Joins("JOIN users u ON u.id = c.author_id").
		Order("c.created_at DESC").
		Scan(&views).Error
	return views, err
}

func (s *GormStore) DeleteReview(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (s *GormStore) DeleteComment(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// PseudoAuthorEmail derives the placeholder address used for a system user.
func PseudoAuthorEmail(name string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(name), "") + "@modxnet.fake"
}

func (s *GormStore) EnsurePseudoAuthor(ctx context.Context, a PseudoAuthor) (uuid.UUID, error) {
	if id, found, err := s.findPseudoAuthor(ctx, a.Name); err != nil || found {
		return id, err
	}

	user := models.User{
		ID:        uuid.New(),
		Username:  a.Name,
		Email:     PseudoAuthorEmail(a.Name),
		AvatarURL: a.AvatarURL,
		Role:      "user",
		IsSystem:  true,
	}
	err := s.db.WithContext(ctx).Create(&user).Error
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return uuid.Nil, fmt.Errorf("failed to create pseudo-author %s: %w", a.Name, err)
	}

	// Lost a race with another generator, or a real account owns the name.
	id, found, ferr := s.findPseudoAuthor(ctx, a.Name)
	switch {
	case ferr != nil:
		return uuid.Nil, ferr
	case !found:
		return uuid.Nil, fmt.Errorf("pseudo-author %s: %w", a.Name, ErrAuthorNameTaken)
	}
	return id, nil
}

// findPseudoAuthor looks up a system user by name, restoring it if it was
// soft-deleted.
func (s *GormStore) findPseudoAuthor(ctx context.Context, name string) (uuid.UUID, bool, error) {
	db := s.db.WithContext(ctx).Unscoped()
	var user models.User
	err := db.Where("username = ? AND is_system = ?", name, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to look up pseudo-author %s: %w", name, err)
	}
	if user.DeletedAt.Valid {
		if err := db.Model(&user).Update("deleted_at", nil).Error; err != nil {
			return uuid.Nil, false, fmt.Errorf("failed to restore pseudo-author %s: %w", name, err)
		}
	}
	return user.ID, true, nil
}
