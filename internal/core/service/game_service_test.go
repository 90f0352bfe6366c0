package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jeugdwerk/games-api/internal/core/domain"
	"github.com/jeugdwerk/games-api/internal/core/ports"
)

type stubGameRepo struct {
	games      map[string]*domain.Game
	nextID     int
	lastFilter ports.GameFilter
}

func newStubGameRepo() *stubGameRepo {
	return &stubGameRepo{games: make(map[string]*domain.Game)}
}

func cloneGame(g *domain.Game) *domain.Game {
	if g == nil {
		return nil
	}
	clone := *g
	return &clone
}

func (r *stubGameRepo) GetAll(_ context.Context) ([]domain.Game, error) {
	out := make([]domain.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, *g)
	}
	return out, nil
}

func (r *stubGameRepo) GetByID(_ context.Context, id string) (*domain.Game, error) {
	if g, ok := r.games[id]; ok {
		return cloneGame(g), nil
	}
	return nil, domain.NotFound(fmt.Sprintf("Game with id %s does not exist.", id))
}

func (r *stubGameRepo) GetByUsername(_ context.Context, username string) ([]domain.Game, error) {
	out := make([]domain.Game, 0)
	for _, g := range r.games {
		if g.User.Username == username {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *stubGameRepo) GetRandom(_ context.Context) (*domain.Game, error) {
	for _, g := range r.games {
		return cloneGame(g), nil
	}
	return nil, domain.ErrNoGamesAvailable
}

func (r *stubGameRepo) GetFiltered(_ context.Context, filter ports.GameFilter) ([]domain.Game, error) {
	r.lastFilter = filter
	return nil, nil
}

func (r *stubGameRepo) Create(_ context.Context, game *domain.Game) (*domain.Game, error) {
	copy := cloneGame(game)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("g%d", r.nextID)
	}
	r.games[copy.ID] = cloneGame(copy)
	return cloneGame(copy), nil
}

func (r *stubGameRepo) Update(_ context.Context, game *domain.Game) (*domain.Game, error) {
	if _, ok := r.games[game.ID]; !ok {
		return nil, domain.NotFound(fmt.Sprintf("Game with id %s does not exist.", game.ID))
	}
	r.games[game.ID] = cloneGame(game)
	return cloneGame(game), nil
}

func (r *stubGameRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.games[id]; !ok {
		return domain.NotFound(fmt.Sprintf("Game with id %s does not exist.", id))
	}
	delete(r.games, id)
	return nil
}

func (r *stubGameRepo) CountByTag(_ context.Context, label string) (int64, error) {
	var n int64
	for _, g := range r.games {
		for _, t := range g.Tags {
			if t.Tag == label {
				n++
			}
		}
	}
	return n, nil
}

type stubTagRepo struct {
	tags   map[string]*domain.Tag // keyed by label
	nextID int
}

func newStubTagRepo() *stubTagRepo {
	return &stubTagRepo{tags: make(map[string]*domain.Tag)}
}

func (r *stubTagRepo) GetAll(_ context.Context) ([]domain.Tag, error) {
	out := make([]domain.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTagRepo) GetByID(_ context.Context, id string) (*domain.Tag, error) {
	for _, t := range r.tags {
		if t.ID == id {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.NotFound("Tag not found with the given ID")
}

func (r *stubTagRepo) GetByTag(_ context.Context, label string) (*domain.Tag, error) {
	if t, ok := r.tags[label]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, domain.NotFound(fmt.Sprintf("Tag %s does not exist.", label))
}

func (r *stubTagRepo) Create(_ context.Context, tag *domain.Tag) (*domain.Tag, error) {
	if existing, ok := r.tags[tag.Tag]; ok {
		clone := *existing
		return &clone, nil
	}
	clone := *tag
	r.nextID++
	clone.ID = fmt.Sprintf("t%d", r.nextID)
	r.tags[clone.Tag] = &clone
	out := clone
	return &out, nil
}

func (r *stubTagRepo) Delete(_ context.Context, id string) error {
	for label, t := range r.tags {
		if t.ID == id {
			delete(r.tags, label)
			return nil
		}
	}
	return domain.NotFound("Tag not found with the given ID")
}

type stubIntensityRepo struct {
	intensities map[string]*domain.Intensity
}

func newStubIntensityRepo() *stubIntensityRepo {
	return &stubIntensityRepo{intensities: make(map[string]*domain.Intensity)}
}

func (r *stubIntensityRepo) GetAll(_ context.Context) ([]domain.Intensity, error) {
	out := make([]domain.Intensity, 0, len(r.intensities))
	for _, in := range r.intensities {
		out = append(out, *in)
	}
	return out, nil
}

func (r *stubIntensityRepo) GetByID(_ context.Context, id string) (*domain.Intensity, error) {
	if in, ok := r.intensities[id]; ok {
		clone := *in
		return &clone, nil
	}
	return nil, domain.NotFound("Intensity not found with the given ID")
}

func (r *stubIntensityRepo) Create(_ context.Context, intensity *domain.Intensity) (*domain.Intensity, error) {
	clone := *intensity
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("i%d", len(r.intensities)+1)
	}
	r.intensities[clone.ID] = &clone
	out := clone
	return &out, nil
}

type stubCache struct {
	invalidated []string
}

func (c *stubCache) Get(_ context.Context, _ string, _ any) (bool, error) { return false, nil }
func (c *stubCache) Set(_ context.Context, _ string, _ any) error         { return nil }
func (c *stubCache) Invalidate(_ context.Context, keys ...string) error {
	c.invalidated = append(c.invalidated, keys...)
	return nil
}

type gameFixture struct {
	svc         *GameService
	games       *stubGameRepo
	users       *stubUserRepo
	tags        *stubTagRepo
	intensities *stubIntensityRepo
	cache       *stubCache

	owner     *domain.User
	intensity *domain.Intensity
}

func newGameFixture(t *testing.T) *gameFixture {
	t.Helper()

	f := &gameFixture{
		games:       newStubGameRepo(),
		users:       newStubUserRepo(),
		tags:        newStubTagRepo(),
		intensities: newStubIntensityRepo(),
		cache:       &stubCache{},
	}
	f.svc = NewGameService(f.games, f.users, f.intensities, f.tags, f.cache, zerolog.Nop())

	owner, err := domain.NewUser("", "alice", "alice@example.com", "hash", domain.RoleGuest)
	if err != nil {
		t.Fatalf("NewUser returned error: %v", err)
	}
	f.owner, err = f.users.Create(context.Background(), owner)
	if err != nil {
		t.Fatalf("seeding owner failed: %v", err)
	}

	intensity, err := domain.NewIntensity("", "Rustig", 1)
	if err != nil {
		t.Fatalf("NewIntensity returned error: %v", err)
	}
	f.intensity, err = f.intensities.Create(context.Background(), intensity)
	if err != nil {
		t.Fatalf("seeding intensity failed: %v", err)
	}

	return f
}

func (f *gameFixture) addUser(t *testing.T, username, email string, role domain.Role) *domain.User {
	t.Helper()
	user, err := domain.NewUser("", username, email, "hash", role)
	if err != nil {
		t.Fatalf("NewUser returned error: %v", err)
	}
	created, err := f.users.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("seeding user failed: %v", err)
	}
	return created
}

func (f *gameFixture) validInput(tags ...string) ports.GameInput {
	return ports.GameInput{
		UserID:      f.owner.ID,
		IntensityID: f.intensity.ID,
		Name:        "Touwtrekken",
		Groups:      true,
		Duration:    15,
		Explanation: "Trek het touw over de lijn.",
		Tags:        tags,
	}
}

func TestGameService_Create_Success(t *testing.T) {
	f := newGameFixture(t)

	game, err := f.svc.Create(context.Background(), f.validInput("buiten"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if game.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if game.User.Username != "alice" {
		t.Fatalf("unexpected owner: %+v", game.User)
	}
	if game.Intensity.Intensity != "Rustig" {
		t.Fatalf("unexpected intensity: %+v", game.Intensity)
	}
	if len(game.Tags) != 1 || game.Tags[0].Tag != "buiten" {
		t.Fatalf("unexpected tags: %+v", game.Tags)
	}
}

func TestGameService_Create_MissingReferences(t *testing.T) {
	f := newGameFixture(t)

	input := f.validInput("buiten")
	input.UserID = ""
	if _, err := f.svc.Create(context.Background(), input); err == nil || err.Error() != "User id is required." {
		t.Fatalf("expected user id required error, got %v", err)
	}

	input = f.validInput("buiten")
	input.UserID = "missing"
	if _, err := f.svc.Create(context.Background(), input); err == nil || err.Error() != "User not found with the given ID" {
		t.Fatalf("expected user not found error, got %v", err)
	}

	input = f.validInput("buiten")
	input.IntensityID = ""
	if _, err := f.svc.Create(context.Background(), input); err == nil || err.Error() != "Intensity id is required." {
		t.Fatalf("expected intensity id required error, got %v", err)
	}

	input = f.validInput("buiten")
	input.IntensityID = "missing"
	if _, err := f.svc.Create(context.Background(), input); err == nil || err.Error() != "Intensity not found with the given ID" {
		t.Fatalf("expected intensity not found error, got %v", err)
	}
}

func TestGameService_Create_ReusesExistingTag(t *testing.T) {
	f := newGameFixture(t)

	first, err := f.svc.Create(context.Background(), f.validInput("buiten"))
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	input := f.validInput("buiten", "kracht")
	input.Name = "Estafette"
	second, err := f.svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}

	if second.Tags[0].ID != first.Tags[0].ID {
		t.Fatalf("expected existing tag to be reused, got %s and %s", first.Tags[0].ID, second.Tags[0].ID)
	}
	if second.Tags[1].ID == first.Tags[0].ID {
		t.Fatalf("expected new tag to get its own id")
	}
	if len(f.tags.tags) != 2 {
		t.Fatalf("expected 2 tags in the repository, got %d", len(f.tags.tags))
	}
}

func TestGameService_Create_InvalidatesTagCacheOnNewTag(t *testing.T) {
	f := newGameFixture(t)

	if _, err := f.svc.Create(context.Background(), f.validInput("buiten")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(f.cache.invalidated) == 0 || f.cache.invalidated[0] != CacheKeyTags {
		t.Fatalf("expected tag cache invalidation, got %v", f.cache.invalidated)
	}

	f.cache.invalidated = nil
	input := f.validInput("buiten")
	input.Name = "Estafette"
	if _, err := f.svc.Create(context.Background(), input); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(f.cache.invalidated) != 0 {
		t.Fatalf("expected no invalidation when all tags already exist, got %v", f.cache.invalidated)
	}
}

func TestGameService_GetFiltered_DurationWindow(t *testing.T) {
	f := newGameFixture(t)

	duration := 100
	groups := true
	_, err := f.svc.GetFiltered(context.Background(), ports.FilterInput{
		Tags:        []string{"buiten"},
		IntensityID: f.intensity.ID,
		Groups:      &groups,
		Duration:    &duration,
	})
	if err != nil {
		t.Fatalf("GetFiltered returned error: %v", err)
	}

	filter := f.games.lastFilter
	if filter.DurationMin == nil || filter.DurationMax == nil {
		t.Fatalf("expected duration window, got %+v", filter)
	}
	if *filter.DurationMin != 80 || *filter.DurationMax != 120 {
		t.Fatalf("expected window [80, 120], got [%v, %v]", *filter.DurationMin, *filter.DurationMax)
	}
	if filter.Groups == nil || !*filter.Groups {
		t.Fatalf("expected groups filter to pass through")
	}
}

func TestGameService_GetFiltered_UnsetDimensionsOmitted(t *testing.T) {
	f := newGameFixture(t)

	if _, err := f.svc.GetFiltered(context.Background(), ports.FilterInput{}); err != nil {
		t.Fatalf("GetFiltered returned error: %v", err)
	}

	filter := f.games.lastFilter
	if filter.Tags != nil || filter.IntensityID != "" || filter.Groups != nil || filter.DurationMin != nil || filter.DurationMax != nil {
		t.Fatalf("expected empty filter, got %+v", filter)
	}
}

func TestGameService_Update_Authorization(t *testing.T) {
	f := newGameFixture(t)
	otherGuest := f.addUser(t, "bob", "bob@example.com", domain.RoleGuest)
	admin := f.addUser(t, "carol", "carol@example.com", domain.RoleAdmin)

	game, err := f.svc.Create(context.Background(), f.validInput("buiten"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	update := f.validInput("buiten")
	update.Duration = 25

	// A guest who does not own the game is refused.
	principal := domain.Principal{Email: otherGuest.Email, Role: otherGuest.Role}
	_, err = f.svc.Update(context.Background(), principal, game.ID, update)
	var forbidden *domain.AuthorizationError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
	if forbidden.Message != "You are not allowed to modify this game." {
		t.Fatalf("unexpected message: %q", forbidden.Message)
	}

	// The owner may update their own game.
	principal = domain.Principal{Email: f.owner.Email, Role: f.owner.Role}
	updated, err := f.svc.Update(context.Background(), principal, game.ID, update)
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Duration != 25 {
		t.Fatalf("expected duration 25, got %d", updated.Duration)
	}
	if updated.UpdatedAt == nil {
		t.Fatalf("expected UpdatedAt to be set")
	}
	if updated.User.ID != f.owner.ID {
		t.Fatalf("expected ownership to be preserved, got %+v", updated.User)
	}

	// Admins may update games they do not own; ownership still sticks.
	principal = domain.Principal{Email: admin.Email, Role: admin.Role}
	updated, err = f.svc.Update(context.Background(), principal, game.ID, update)
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.User.ID != f.owner.ID {
		t.Fatalf("expected ownership to be preserved after admin update, got %+v", updated.User)
	}
}

func TestGameService_Update_MissingGame(t *testing.T) {
	f := newGameFixture(t)

	principal := domain.Principal{Email: f.owner.Email, Role: f.owner.Role}
	_, err := f.svc.Update(context.Background(), principal, "missing", f.validInput("buiten"))
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if err.Error() != "Game with id missing does not exist." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestGameService_Delete_Authorization(t *testing.T) {
	f := newGameFixture(t)
	otherGuest := f.addUser(t, "bob", "bob@example.com", domain.RoleGuest)
	admin := f.addUser(t, "carol", "carol@example.com", domain.RoleAdmin)

	game, err := f.svc.Create(context.Background(), f.validInput("buiten"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	principal := domain.Principal{Email: otherGuest.Email, Role: otherGuest.Role}
	err = f.svc.Delete(context.Background(), principal, game.ID)
	var forbidden *domain.AuthorizationError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
	if forbidden.Message != "You are not allowed to delete this game." {
		t.Fatalf("unexpected message: %q", forbidden.Message)
	}

	principal = domain.Principal{Email: admin.Email, Role: admin.Role}
	if err := f.svc.Delete(context.Background(), principal, game.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if _, err := f.games.GetByID(context.Background(), game.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected game to be gone, got %v", err)
	}
}

func TestGameService_Delete_PrunesOrphanedTags(t *testing.T) {
	f := newGameFixture(t)

	first, err := f.svc.Create(context.Background(), f.validInput("buiten", "kracht"))
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	input := f.validInput("buiten")
	input.Name = "Estafette"
	if _, err := f.svc.Create(context.Background(), input); err != nil {
		t.Fatalf("second create failed: %v", err)
	}

	principal := domain.Principal{Email: f.owner.Email, Role: f.owner.Role}
	if err := f.svc.Delete(context.Background(), principal, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// "kracht" was only referenced by the deleted game and is pruned;
	// "buiten" is still referenced by the second game and survives.
	if _, err := f.tags.GetByTag(context.Background(), "kracht"); !domain.IsNotFound(err) {
		t.Fatalf("expected kracht to be pruned, got %v", err)
	}
	if _, err := f.tags.GetByTag(context.Background(), "buiten"); err != nil {
		t.Fatalf("expected buiten to survive, got %v", err)
	}
}

func TestGameService_GetByUsername_UnknownUser(t *testing.T) {
	f := newGameFixture(t)

	_, err := f.svc.GetByUsername(context.Background(), "ghost")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGameService_GetRandom_Empty(t *testing.T) {
	f := newGameFixture(t)

	_, err := f.svc.GetRandom(context.Background())
	if !errors.Is(err, domain.ErrNoGamesAvailable) {
		t.Fatalf("expected ErrNoGamesAvailable, got %v", err)
	}
}
