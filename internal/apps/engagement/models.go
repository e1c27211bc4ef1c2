package engagement

import (
	"time"

	"github.com/google/uuid"
	"github.com/modxnet/modxnet-backend/internal/models"
)

// Review is a rated post about a game. One per (author, game), enforced by
// idx_reviews_author_game.
type Review struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AuthorID  uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_author_game,priority:1" json:"author_id"`
	GameSlug  string      `gorm:"size:120;not null;index;uniqueIndex:idx_reviews_author_game,priority:2" json:"game_slug"`
	Rating    int         `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Body      string      `gorm:"type:text;not null" json:"text"`
	Sentiment string      `gorm:"size:10;not null;default:'neutral'" json:"sentiment"`
	CreatedAt time.Time   `gorm:"not null;index" json:"created_at"`
	ExpiresAt *time.Time  `gorm:"index" json:"expires_at"`
	Author    models.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// Comment is an unrated post about a game.
type Comment struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AuthorID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"author_id"`
	GameSlug  string      `gorm:"size:120;not null;index" json:"game_slug"`
	Body      string      `gorm:"type:text;not null" json:"text"`
	Sentiment string      `gorm:"size:10;not null;default:'neutral'" json:"sentiment"`
	CreatedAt time.Time   `gorm:"not null;index" json:"created_at"`
	ExpiresAt *time.Time  `gorm:"index" json:"expires_at"`
	Author    models.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// ReviewView is a review joined with its author for public listing.
type ReviewView struct {
	ID        uuid.UUID `json:"id"`
	GameSlug  string    `json:"game_slug"`
	Rating    int       `json:"rating"`
	Body      string    `json:"text"`
	Sentiment string    `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
}

type CommentView struct {
	ID        uuid.UUID `json:"id"`
	GameSlug  string    `json:"game_slug"`
	Body      string    `json:"text"`
	Sentiment string    `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
}

// AdminReviewView adds moderation fields to ReviewView.
type AdminReviewView struct {
	ReviewView
	AuthorID  uuid.UUID  `json:"author_id"`
	Email     string     `json:"email"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type AdminCommentView struct {
	CommentView
	AuthorID  uuid.UUID  `json:"author_id"`
	Email     string     `json:"email"`
	ExpiresAt *time.Time `json:"expires_at"`
}
