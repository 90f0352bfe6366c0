package ports

import (
	"context"

	"github.com/jeugdwerk/games-api/internal/core/domain"
)

// TagRepository defines persistence operations for the tag taxonomy.
// Labels are unique; Create must behave as insert-if-absent so concurrent
// requests resolving the same new label cannot mint duplicates.
type TagRepository interface {
	GetAll(ctx context.Context) ([]domain.Tag, error)
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	// GetByTag looks a tag up by exact label match.
	GetByTag(ctx context.Context, label string) (*domain.Tag, error)
	Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error)
	Delete(ctx context.Context, id string) error
}

// IntensityRepository defines read operations for the intensity taxonomy.
// Intensities are reference data: created by seeding, rarely mutated.
type IntensityRepository interface {
	// GetAll returns all intensities ordered by their order rank ascending.
	GetAll(ctx context.Context) ([]domain.Intensity, error)
	GetByID(ctx context.Context, id string) (*domain.Intensity, error)
	Create(ctx context.Context, intensity *domain.Intensity) (*domain.Intensity, error)
}
