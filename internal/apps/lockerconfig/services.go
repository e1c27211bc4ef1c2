package lockerconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEmptySlug = errors.New("game slug is required")

// GameSlugs lists the games that should have a locker config.
type GameSlugs interface {
	Slugs(ctx context.Context) ([]string, error)
}

type ConfigService struct {
	db    *gorm.DB
	games GameSlugs
}

func NewConfigService(db *gorm.DB, games GameSlugs) *ConfigService {
	return &ConfigService{db: db, games: games}
}

// SetGames wires the game source after construction, since the catalog and
// this service depend on each other.
func (s *ConfigService) SetGames(games GameSlugs) { s.games = games }

// Public returns the config a game page needs, or Configured=false when the
// widget values are missing. Lookup errors are reported as unconfigured.
func (s *ConfigService) Public(ctx context.Context, slug string) PublicConfig {
	var cfg LockerConfig
	if err := s.db.WithContext(ctx).Where("game_slug = ?", slug).First(&cfg).Error; err != nil {
		return PublicConfig{}
	}
	return toPublic(&cfg)
}

func toPublic(cfg *LockerConfig) PublicConfig {
	if !cfg.Configured() {
		return PublicConfig{}
	}
	return PublicConfig{
		Configured:   true,
		VariableName: cfg.VariableName,
		ITValue:      cfg.ITValue,
		KeyValue:     cfg.KeyValue,
		ScriptURL:    cfg.ScriptURL,
	}
}

func (s *ConfigService) List(ctx context.Context) ([]LockerConfig, error) {
	configs := []LockerConfig{}
	err := s.db.WithContext(ctx).Order("game_slug ASC").Find(&configs).Error
	return configs, err
}

// Upsert replaces the config for slug. Empty variable name and script URL
// fall back to the defaults.
func (s *ConfigService) Upsert(ctx context.Context, slug string, req UpsertRequest) (*LockerConfig, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrEmptySlug
	}

	cfg := defaultConfig(slug)
	if v := strings.TrimSpace(req.VariableName); v != "" {
		cfg.VariableName = v
	}
	if v := strings.TrimSpace(req.ScriptURL); v != "" {
		cfg.ScriptURL = v
	}
	cfg.ITValue = max(req.ITValue, 0)
	cfg.KeyValue = strings.TrimSpace(req.KeyValue)

	db := s.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"variable_name", "it_value", "key_value", "script_url", "updated_at"}),
	}).Create(cfg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save locker config: %w", err)
	}

	var saved LockerConfig
	if err := db.Where("game_slug = ?", slug).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// EnsureConfig creates a default row for slug if none exists.
func (s *ConfigService) EnsureConfig(ctx context.Context, slug string) (bool, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "game_slug"}}, DoNothing: true}).
		Create(defaultConfig(slug))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Sync ensures every game has a config row and returns how many were created.
func (s *ConfigService) Sync(ctx context.Context) (int, error) {
	if s.games == nil {
		return 0, nil
	}
	slugs, err := s.games.Slugs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list games: %w", err)
	}

	created := 0
	for _, slug := range slugs {
		ok, err := s.EnsureConfig(ctx, slug)
		if err != nil {
			return created, fmt.Errorf("ensure %s: %w", slug, err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}
