package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeugdwerk/games-api/internal/api/metrics"
	"github.com/jeugdwerk/games-api/internal/core/domain"
	"github.com/jeugdwerk/games-api/internal/core/ports"
)

// durationTolerance widens a requested duration into an "about this long"
// window: [d*(1-t), d*(1+t)], both ends inclusive.
const durationTolerance = 0.2

// ReferenceCache abstracts the reference-data cache (Redis). Game
// mutations invalidate the tag list whenever the taxonomy may have
// changed.
type ReferenceCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// GameService orchestrates game use-cases over the game, user, intensity
// and tag repositories.
type GameService struct {
	games       ports.GameRepository
	users       ports.UserRepository
	intensities ports.IntensityRepository
	tags        ports.TagRepository
	cache       ReferenceCache
	logger      zerolog.Logger
}

func NewGameService(
	games ports.GameRepository,
	users ports.UserRepository,
	intensities ports.IntensityRepository,
	tags ports.TagRepository,
	cache ReferenceCache,
	logger zerolog.Logger,
) *GameService {
	return &GameService{
		games:       games,
		users:       users,
		intensities: intensities,
		tags:        tags,
		cache:       cache,
		logger:      logger,
	}
}

func (s *GameService) GetAll(ctx context.Context) ([]domain.Game, error) {
	return s.games.GetAll(ctx)
}

func (s *GameService) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	return s.games.GetByID(ctx, id)
}

func (s *GameService) GetRandom(ctx context.Context) (*domain.Game, error) {
	return s.games.GetRandom(ctx)
}

// GetByUsername lists the games owned by the given user. The username is
// resolved first so an unknown user yields a not-found error rather than
// an empty list.
func (s *GameService) GetByUsername(ctx context.Context, username string) ([]domain.Game, error) {
	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		return nil, err
	}
	return s.games.GetByUsername(ctx, username)
}

// GetFiltered composes a conjunctive query over the submitted dimensions.
// Every dimension left unset is excluded from the query entirely. A
// requested duration is expanded into the inclusive tolerance window
// before it reaches the repository.
func (s *GameService) GetFiltered(ctx context.Context, input ports.FilterInput) ([]domain.Game, error) {
	start := time.Now()
	defer func() {
		metrics.GameFilterDuration.Observe(time.Since(start).Seconds())
	}()

	filter := ports.GameFilter{
		Tags:        input.Tags,
		IntensityID: input.IntensityID,
		Groups:      input.Groups,
	}
	if input.Duration != nil {
		d := float64(*input.Duration)
		min := d * (1 - durationTolerance)
		max := d * (1 + durationTolerance)
		filter.DurationMin = &min
		filter.DurationMax = &max
	}

	return s.games.GetFiltered(ctx, filter)
}

// Create validates the referenced user and intensity, resolves the tag
// labels (creating missing tags on the fly) and persists the game.
func (s *GameService) Create(ctx context.Context, input ports.GameInput) (*domain.Game, error) {
	if input.UserID == "" {
		return nil, domain.Required("User id")
	}
	if input.IntensityID == "" {
		return nil, domain.Required("Intensity id")
	}

	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NotFound("User not found with the given ID")
		}
		return nil, err
	}

	intensity, tags, medias, err := s.resolveReferences(ctx, input)
	if err != nil {
		return nil, err
	}

	game, err := domain.NewGame("", user, intensity, input.Name, input.Groups, input.Duration, input.Explanation, tags, medias)
	if err != nil {
		return nil, err
	}

	created, err := s.games.Create(ctx, game)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create game")
		return nil, err
	}

	metrics.GamesCreatedTotal.WithLabelValues(intensity.Intensity).Inc()
	s.logger.Info().
		Str("game_id", created.ID).
		Str("user", user.Username).
		Str("intensity", intensity.Intensity).
		Msg("game created")

	return created, nil
}

// Update replaces all mutable fields of an existing game. Only the owning
// user or a privileged principal may update; intensity and tags are
// re-resolved exactly as on create. Ownership never changes.
func (s *GameService) Update(ctx context.Context, principal domain.Principal, id string, input ports.GameInput) (*domain.Game, error) {
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, principal, game, "You are not allowed to modify this game."); err != nil {
		return nil, err
	}

	if input.IntensityID == "" {
		return nil, domain.Required("Intensity id")
	}

	intensity, tags, medias, err := s.resolveReferences(ctx, input)
	if err != nil {
		return nil, err
	}

	updated, err := domain.NewGame(game.ID, &game.User, intensity, input.Name, input.Groups, input.Duration, input.Explanation, tags, medias)
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = game.CreatedAt
	now := time.Now().UTC()
	updated.UpdatedAt = &now

	result, err := s.games.Update(ctx, updated)
	if err != nil {
		s.logger.Error().Err(err).Str("game_id", id).Msg("failed to update game")
		return nil, err
	}

	s.logger.Info().Str("game_id", id).Str("by", principal.Email).Msg("game updated")
	return result, nil
}

// Delete removes a game under the same authorization rule as Update and
// then prunes tags that no remaining game references. Cleanup failures
// are logged but do not fail the delete.
func (s *GameService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, principal, game, "You are not allowed to delete this game."); err != nil {
		return err
	}

	if err := s.games.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("game_id", id).Msg("failed to delete game")
		return err
	}

	s.pruneOrphanedTags(ctx, game.Tags)
	s.invalidateTagCache(ctx)

	s.logger.Info().Str("game_id", id).Str("by", principal.Email).Msg("game deleted")
	return nil
}

// authorize permits the operation iff the acting principal owns the game
// or holds an admin/superadmin role.
func (s *GameService) authorize(ctx context.Context, principal domain.Principal, game *domain.Game, denied string) error {
	acting, err := s.users.GetByEmail(ctx, principal.Email)
	if err != nil {
		return err
	}
	if acting.ID == game.User.ID {
		return nil
	}
	if principal.Role.Privileged() {
		return nil
	}
	return domain.Forbidden(denied)
}

// resolveReferences re-fetches the intensity, resolves every tag label
// sequentially and validates the media inputs.
func (s *GameService) resolveReferences(ctx context.Context, input ports.GameInput) (*domain.Intensity, []domain.Tag, []domain.Media, error) {
	intensity, err := s.intensities.GetByID(ctx, input.IntensityID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil, nil, domain.NotFound("Intensity not found with the given ID")
		}
		return nil, nil, nil, err
	}

	tags, err := s.resolveTags(ctx, input.Tags)
	if err != nil {
		return nil, nil, nil, err
	}

	medias := make([]domain.Media, 0, len(input.Medias))
	for _, m := range input.Medias {
		media, err := domain.NewMedia("", m.Name, m.File, m.Filetype)
		if err != nil {
			return nil, nil, nil, err
		}
		medias = append(medias, *media)
	}

	return intensity, tags, medias, nil
}

// resolveTags looks each label up by exact match and creates the ones
// that do not exist yet. Labels are resolved sequentially so a single
// request cannot race against itself; cross-request races are absorbed by
// the repository's insert-if-absent semantics.
func (s *GameService) resolveTags(ctx context.Context, labels []string) ([]domain.Tag, error) {
	if labels == nil {
		return nil, domain.Required("Tags")
	}

	tags := make([]domain.Tag, 0, len(labels))
	createdAny := false
	for _, label := range labels {
		existing, err := s.tags.GetByTag(ctx, label)
		if err == nil {
			tags = append(tags, *existing)
			continue
		}
		if !domain.IsNotFound(err) {
			return nil, fmt.Errorf("resolve tag %q: %w", label, err)
		}

		tag, err := domain.NewTag("", label)
		if err != nil {
			return nil, err
		}
		created, err := s.tags.Create(ctx, tag)
		if err != nil {
			return nil, fmt.Errorf("create tag %q: %w", label, err)
		}
		metrics.TagsCreatedTotal.Inc()
		s.logger.Debug().Str("tag", label).Msg("tag created on the fly")
		tags = append(tags, *created)
		createdAny = true
	}

	if createdAny {
		s.invalidateTagCache(ctx)
	}
	return tags, nil
}

// pruneOrphanedTags deletes tags of a removed game that no other game
// references anymore.
func (s *GameService) pruneOrphanedTags(ctx context.Context, tags []domain.Tag) {
	for _, tag := range tags {
		n, err := s.games.CountByTag(ctx, tag.Tag)
		if err != nil {
			s.logger.Warn().Err(err).Str("tag", tag.Tag).Msg("orphan check failed")
			continue
		}
		if n > 0 {
			continue
		}
		if err := s.tags.Delete(ctx, tag.ID); err != nil {
			s.logger.Warn().Err(err).Str("tag", tag.Tag).Msg("failed to prune orphaned tag")
			continue
		}
		metrics.TagsPrunedTotal.Inc()
		s.logger.Info().Str("tag", tag.Tag).Msg("orphaned tag pruned")
	}
}

func (s *GameService) invalidateTagCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, CacheKeyTags); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate tag cache")
	}
}
