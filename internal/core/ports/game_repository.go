package ports

import (
	"context"

	"github.com/jeugdwerk/games-api/internal/core/domain"
)

// GameFilter carries the query dimensions for listing games. Every
// dimension is optional; a nil/empty field is excluded from the query
// entirely rather than matched against a wildcard value. The duration
// window is computed by the service layer before it reaches here.
type GameFilter struct {
	Tags        []string // match games having at least one of these labels
	IntensityID string   // exact match when non-empty
	Groups      *bool    // exact match when non-nil
	DurationMin *float64 // inclusive lower bound
	DurationMax *float64 // inclusive upper bound
}

// GameRepository defines persistence operations for games.
type GameRepository interface {
	GetAll(ctx context.Context) ([]domain.Game, error)
	GetByID(ctx context.Context, id string) (*domain.Game, error)
	GetByUsername(ctx context.Context, username string) ([]domain.Game, error)
	// GetRandom returns one uniformly random game, or
	// domain.ErrNoGamesAvailable when the collection is empty.
	GetRandom(ctx context.Context) (*domain.Game, error)
	GetFiltered(ctx context.Context, filter GameFilter) ([]domain.Game, error)
	Create(ctx context.Context, game *domain.Game) (*domain.Game, error)
	Update(ctx context.Context, game *domain.Game) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
	// CountByTag reports how many games reference the given tag label.
	CountByTag(ctx context.Context, label string) (int64, error)
}
