package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrSlugTaken     = errors.New("a game with this slug already exists")
	ErrSlugAndTitle  = errors.New("slug and title are required")
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
)

// LockerProvisioner creates the per-game locker configuration row.
type LockerProvisioner interface {
	EnsureConfig(ctx context.Context, gameSlug string) (created bool, err error)
}

type GameService struct {
	db      *gorm.DB
	lockers LockerProvisioner
}

func NewGameService(db *gorm.DB, lockers LockerProvisioner) *GameService {
	return &GameService{db: db, lockers: lockers}
}

// ListPublic returns visible, non-trashed games in display order.
func (s *GameService) ListPublic(ctx context.Context) ([]Game, error) {
	games := []Game{}
	err := s.db.WithContext(ctx).
		Where("visible = ?", true).
		Order("sort_order ASC, created_at ASC").
		Find(&games).Error
	return games, err
}

// ListAdmin returns every non-trashed game, hidden ones included.
func (s *GameService) ListAdmin(ctx context.Context) ([]Game, error) {
	games := []Game{}
	err := s.db.WithContext(ctx).Order("sort_order ASC, created_at ASC").Find(&games).Error
	return games, err
}

func (s *GameService) ListTrash(ctx context.Context) ([]Game, error) {
	games := []Game{}
	err := s.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Find(&games).Error
	return games, err
}

func (s *GameService) Create(ctx context.Context, in GameInput) (*Game, error) {
	game, err := newGame(in)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(game).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if s.lockers != nil {
		if _, err := s.lockers.EnsureConfig(ctx, game.Slug); err != nil {
			slog.Warn("locker config not provisioned", "component", "catalog", "game_slug", game.Slug, "error", err)
		}
	}
	return game, nil
}

// newGame validates in and fills the defaults used for new listings.
func newGame(in GameInput) (*Game, error) {
	slug := strings.TrimSpace(in.Slug)
	title := strings.TrimSpace(in.Title)
	if slug == "" || title == "" {
		return nil, ErrSlugAndTitle
	}

	g := &Game{
		ID:          uuid.New(),
		Slug:        slug,
		Title:       title,
		ImageURL:    in.ImageURL,
		DataGame:    in.DataGame,
		Category:    in.Category,
		Version:     in.Version,
		ReleaseDate: in.ReleaseDate,
		Rating:      4.0,
		Link:        in.Link,
		Visible:     true,
	}
	if g.DataGame == "" {
		g.DataGame = strings.ToLower(slug)
	}
	if g.Version == "" {
		g.Version = "v1.0"
	}
	if g.Link == "" {
		g.Link = "/" + slug + "/"
	}
	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			return nil, ErrInvalidRating
		}
		g.Rating = *in.Rating
	}
	if in.SortOrder != nil {
		g.SortOrder = *in.SortOrder
	}
	if in.Visible != nil {
		g.Visible = *in.Visible
	}
	return g, nil
}

// Update applies the non-empty fields of in. The slug cannot change.
func (s *GameService) Update(ctx context.Context, id uuid.UUID, in GameInput) (*Game, error) {
	updates, err := gameUpdates(in)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var game Game
	if err := db.First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if len(updates) > 0 {
		if err := db.Model(&game).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update game: %w", err)
		}
		if err := db.First(&game, "id = ?", id).Error; err != nil {
			return nil, err
		}
	}
	return &game, nil
}

func gameUpdates(in GameInput) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	set := func(col, v string) {
		if v = strings.TrimSpace(v); v != "" {
			updates[col] = v
		}
	}
	set("title", in.Title)
	set("image_url", in.ImageURL)
	set("data_game", in.DataGame)
	set("category", in.Category)
	set("version", in.Version)
	set("release_date", in.ReleaseDate)
	set("link", in.Link)

	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			return nil, ErrInvalidRating
		}
		updates["rating"] = *in.Rating
	}
	if in.SortOrder != nil {
		updates["sort_order"] = *in.SortOrder
	}
	if in.Visible != nil {
		updates["visible"] = *in.Visible
	}
	return updates, nil
}

// Trash soft-deletes a game.
func (s *GameService) Trash(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&Game{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGameNotFound
	}
	return nil
}

func (s *GameService) Restore(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Unscoped().Model(&Game{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGameNotFound
	}
	return nil
}

// DeletePermanent removes a game row, trashed or not.
func (s *GameService) DeletePermanent(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Unscoped().Delete(&Game{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGameNotFound
	}
	return nil
}

// GameTitle looks up a non-trashed game by slug.
func (s *GameService) GameTitle(ctx context.Context, slug string) (string, bool, error) {
	var game Game
	err := s.db.WithContext(ctx).Select("title").Where("slug = ?", slug).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return game.Title, true, nil
}

// Slugs lists the slugs of all non-trashed games.
func (s *GameService) Slugs(ctx context.Context) ([]string, error) {
	var slugs []string
	err := s.db.WithContext(ctx).Model(&Game{}).Order("sort_order ASC").Pluck("slug", &slugs).Error
	return slugs, err
}

// SeedDefaults inserts the launch catalog when the games table is empty.
func (s *GameService) SeedDefaults(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Unscoped().Model(&Game{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	created := 0
	for _, in := range DefaultGames {
		if _, err := s.Create(ctx, in); err != nil {
			return created, fmt.Errorf("seed %s: %w", in.Slug, err)
		}
		created++
	}
	slog.Info("catalog seeded", "component", "catalog", "games", created)
	return created, nil
}
