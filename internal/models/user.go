package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a site account. System users are the pseudo-authors behind
// synthetic engagement and cannot log in.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null;default:''" json:"-"`
	Role      string         `gorm:"size:20;default:'user'" json:"role"`
	AvatarURL string         `gorm:"size:500" json:"avatar_url"`
	IsSystem  bool           `gorm:"default:false;index" json:"is_system"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
