package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Game is a catalog listing. Slug is the key reviews, comments and locker
// configs refer to. Trashed games keep their slug until permanently deleted.
type Game struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Slug        string         `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	ImageURL    string         `gorm:"type:text;not null;default:''" json:"image_url"`
	DataGame    string         `gorm:"size:120;not null;default:''" json:"data_game"`
	Category    string         `gorm:"size:120;not null;default:''" json:"category"`
	Version     string         `gorm:"size:40;not null;default:'v1.0'" json:"version"`
	ReleaseDate string         `gorm:"size:40;not null;default:''" json:"release_date"`
	Rating      float64        `gorm:"not null" json:"rating"`
	Link        string         `gorm:"type:text;not null;default:''" json:"link"`
	SortOrder   int            `gorm:"not null;default:0;index" json:"sort_order"`
	Visible     bool           `gorm:"not null" json:"visible"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// GameInput is the admin create/update payload. Nil fields take defaults on
// create.
type GameInput struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	ImageURL    string   `json:"image_url"`
	DataGame    string   `json:"data_game"`
	Category    string   `json:"category"`
	Version     string   `json:"version"`
	ReleaseDate string   `json:"release_date"`
	Rating      *float64 `json:"rating"`
	Link        string   `json:"link"`
	SortOrder   *int     `json:"sort_order"`
	Visible     *bool    `json:"visible"`
}
