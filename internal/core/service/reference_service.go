package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jeugdwerk/games-api/internal/core/domain"
	"github.com/jeugdwerk/games-api/internal/core/ports"
)

// Cache keys for the reference-data lists.
const (
	CacheKeyTags        = "reference:tags"
	CacheKeyIntensities = "reference:intensities"
)

// TagService serves the tag taxonomy, with a read-through cache on the
// full list. Cache failures degrade to repository reads.
type TagService struct {
	repo   ports.TagRepository
	cache  ReferenceCache
	logger zerolog.Logger
}

func NewTagService(repo ports.TagRepository, cache ReferenceCache, logger zerolog.Logger) *TagService {
	return &TagService{repo: repo, cache: cache, logger: logger}
}

func (s *TagService) GetAll(ctx context.Context) ([]domain.Tag, error) {
	var cached []domain.Tag
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, CacheKeyTags, &cached)
		if err != nil {
			s.logger.Warn().Err(err).Msg("tag cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	tags, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, CacheKeyTags, tags); err != nil {
			s.logger.Warn().Err(err).Msg("tag cache write failed")
		}
	}
	return tags, nil
}

func (s *TagService) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	return s.repo.GetByID(ctx, id)
}

// IntensityService serves the intensity taxonomy ordered by rank, with
// the same read-through cache behaviour as TagService.
type IntensityService struct {
	repo   ports.IntensityRepository
	cache  ReferenceCache
	logger zerolog.Logger
}

func NewIntensityService(repo ports.IntensityRepository, cache ReferenceCache, logger zerolog.Logger) *IntensityService {
	return &IntensityService{repo: repo, cache: cache, logger: logger}
}

func (s *IntensityService) GetAll(ctx context.Context) ([]domain.Intensity, error) {
	var cached []domain.Intensity
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, CacheKeyIntensities, &cached)
		if err != nil {
			s.logger.Warn().Err(err).Msg("intensity cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	intensities, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, CacheKeyIntensities, intensities); err != nil {
			s.logger.Warn().Err(err).Msg("intensity cache write failed")
		}
	}
	return intensities, nil
}

func (s *IntensityService) GetByID(ctx context.Context, id string) (*domain.Intensity, error) {
	return s.repo.GetByID(ctx, id)
}
