package ports

import (
	"context"

	"github.com/jeugdwerk/games-api/internal/core/domain"
)

// MediaInput is a candidate attachment on a game.
type MediaInput struct {
	Name     string
	File     string
	Filetype string
}

// GameInput carries all data for creating or replacing a game. UserID and
// IntensityID must reference persisted entities; Tags are plain labels
// resolved (or lazily created) by the service.
type GameInput struct {
	UserID      string
	IntensityID string
	Name        string
	Groups      bool
	Duration    int
	Explanation string
	Tags        []string
	Medias      []MediaInput
}

// FilterInput carries the optional filter dimensions as submitted by the
// client. Nil means "don't filter on this dimension".
type FilterInput struct {
	Tags        []string
	IntensityID string
	Groups      *bool
	Duration    *int
}

// GameService defines game use-cases.
type GameService interface {
	GetAll(ctx context.Context) ([]domain.Game, error)
	GetByID(ctx context.Context, id string) (*domain.Game, error)
	GetRandom(ctx context.Context) (*domain.Game, error)
	GetByUsername(ctx context.Context, username string) ([]domain.Game, error)
	// GetFiltered composes a conjunctive query over the provided
	// dimensions. A requested duration d is expanded into the inclusive
	// window [0.8*d, 1.2*d] before reaching the repository.
	GetFiltered(ctx context.Context, input FilterInput) ([]domain.Game, error)
	Create(ctx context.Context, input GameInput) (*domain.Game, error)
	// Update replaces all mutable fields. Permitted only for the owning
	// user or a principal with an admin/superadmin role.
	Update(ctx context.Context, principal domain.Principal, id string, input GameInput) (*domain.Game, error)
	// Delete removes the game under the same authorization rule and then
	// prunes tags left without any referencing game.
	Delete(ctx context.Context, principal domain.Principal, id string) error
}

// TagService defines read use-cases for the tag taxonomy.
type TagService interface {
	GetAll(ctx context.Context) ([]domain.Tag, error)
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
}

// IntensityService defines read use-cases for the intensity taxonomy.
type IntensityService interface {
	GetAll(ctx context.Context) ([]domain.Intensity, error)
	GetByID(ctx context.Context, id string) (*domain.Intensity, error)
}
