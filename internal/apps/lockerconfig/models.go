package lockerconfig

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultVariableName = "PKiWi_Ojz_wYrvyc"
	DefaultScriptURL    = "https://da4talg8ap14y.cloudfront.net/5b1c47d.js"
)

// LockerConfig holds the content-locker widget settings for one game.
type LockerConfig struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GameSlug     string    `gorm:"size:120;uniqueIndex;not null" json:"game_slug"`
	VariableName string    `gorm:"size:80;not null" json:"variable_name"`
	ITValue      int64     `gorm:"not null;default:0" json:"it_value"`
	KeyValue     string    `gorm:"size:80;not null;default:''" json:"key_value"`
	ScriptURL    string    `gorm:"type:text;not null" json:"script_url"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (LockerConfig) TableName() string { return "locker_configs" }

// Configured reports whether the widget has the values it needs to load.
func (c *LockerConfig) Configured() bool {
	return c.ITValue != 0 && c.KeyValue != ""
}

// PublicConfig is what game pages read.
type PublicConfig struct {
	Configured   bool   `json:"configured"`
	VariableName string `json:"variable_name,omitempty"`
	ITValue      int64  `json:"it_value,omitempty"`
	KeyValue     string `json:"key_value,omitempty"`
	ScriptURL    string `json:"script_url,omitempty"`
}

type UpsertRequest struct {
	VariableName string `json:"variable_name"`
	ITValue      int64  `json:"it_value"`
	KeyValue     string `json:"key_value"`
	ScriptURL    string `json:"script_url"`
}

func defaultConfig(slug string) *LockerConfig {
	return &LockerConfig{
		ID:           uuid.New(),
		GameSlug:     slug,
		VariableName: DefaultVariableName,
		ScriptURL:    DefaultScriptURL,
	}
}
