// Command seed loads the intensity taxonomy, a set of demo accounts and a
// handful of demo games into an empty database. Re-running it is safe:
// records that already exist are skipped.
package main

import (
	"context"
	"time"

	"github.com/jeugdwerk/games-api/internal/core/domain"
	"github.com/jeugdwerk/games-api/internal/core/ports"
	"github.com/jeugdwerk/games-api/internal/core/service"
	"github.com/jeugdwerk/games-api/internal/infrastructure/config"
	mongodb "github.com/jeugdwerk/games-api/internal/infrastructure/db/mongo"
	"github.com/jeugdwerk/games-api/pkg/logger"
	"github.com/rs/zerolog"
)

type seedUser struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

type seedGame struct {
	Name        string
	Owner       string // email of the owning demo user
	Intensity   string // intensity label, resolved to its id
	Groups      bool
	Duration    int
	Explanation string
	Tags        []string
}

var intensities = []struct {
	Label string
	Order int
}{
	{"Rustig", 1},
	{"Matig", 2},
	{"Zwaar", 3},
	{"Hevig", 4},
	{"Extreem", 5},
}

var users = []seedUser{
	{"MatseVH", "matse@jeugdwerk.org", "superadmin", domain.RoleSuperadmin},
	{"Admin", "admin@jeugdwerk.org", "admin", domain.RoleAdmin},
	{"Guest", "guest@jeugdwerk.org", "guest", domain.RoleGuest},
}

var games = []seedGame{
	{
		Name:        "Touwtrekken",
		Owner:       "matse@jeugdwerk.org",
		Intensity:   "Zwaar",
		Groups:      true,
		Duration:    15,
		Explanation: "Twee teams trekken elk aan een uiteinde van het touw. Het team dat de middenmarkering over de lijn trekt, wint.",
		Tags:        []string{"buiten", "kracht", "teambuilding"},
	},
	{
		Name:        "Estafette",
		Owner:       "matse@jeugdwerk.org",
		Intensity:   "Hevig",
		Groups:      true,
		Duration:    30,
		Explanation: "Verdeel de groep in teams. Elk teamlid legt om de beurt het parcours af en tikt daarna de volgende loper aan.",
		Tags:        []string{"buiten", "lopen", "teambuilding"},
	},
	{
		Name:        "Blikgooien",
		Owner:       "admin@jeugdwerk.org",
		Intensity:   "Rustig",
		Groups:      false,
		Duration:    10,
		Explanation: "Stapel de blikken op tot een piramide. Iedere speler gooit drie ballen en probeert zoveel mogelijk blikken omver te werpen.",
		Tags:        []string{"buiten", "mikken"},
	},
	{
		Name:        "Zaklopen",
		Owner:       "admin@jeugdwerk.org",
		Intensity:   "Matig",
		Groups:      false,
		Duration:    20,
		Explanation: "Elke speler springt in een jutezak naar de finish. Wie valt, staat op en springt verder vanaf dezelfde plek.",
		Tags:        []string{"buiten", "springen"},
	},
	{
		Name:        "Scharenspringen",
		Owner:       "matse@jeugdwerk.org",
		Intensity:   "Extreem",
		Groups:      true,
		Duration:    25,
		Explanation: "Twee draaiers zwaaien het lange touw. De springers lopen om de beurt in, springen het afgesproken aantal keer en lopen uit zonder het touw te raken.",
		Tags:        []string{"buiten", "springen", "kracht"},
	},
}

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	userRepo := mongodb.NewUserRepository(db)
	gameRepo := mongodb.NewGameRepository(db)
	tagRepo := mongodb.NewTagRepository(db)
	intensityRepo := mongodb.NewIntensityRepository(db)

	userService := service.NewUserService(userRepo, cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTExpiresHours)*time.Hour, log)
	gameService := service.NewGameService(gameRepo, userRepo, intensityRepo, tagRepo, nil, log)

	intensityIDs, err := seedIntensities(ctx, intensityRepo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed intensities")
	}

	userIDs, err := seedUsers(ctx, userRepo, userService, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed users")
	}

	if err := seedGames(ctx, gameRepo, gameService, intensityIDs, userIDs, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed games")
	}

	log.Info().Msg("seeding complete")
}

// seedIntensities inserts the fixed taxonomy and returns label -> id for
// the full set, existing rows included.
func seedIntensities(ctx context.Context, repo ports.IntensityRepository, log zerolog.Logger) (map[string]string, error) {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]string, len(intensities))
	for _, in := range existing {
		ids[in.Intensity] = in.ID
	}

	for _, in := range intensities {
		if _, ok := ids[in.Label]; ok {
			continue
		}
		intensity, err := domain.NewIntensity("", in.Label, in.Order)
		if err != nil {
			return nil, err
		}
		created, err := repo.Create(ctx, intensity)
		if err != nil {
			return nil, err
		}
		ids[in.Label] = created.ID
		log.Info().Str("intensity", in.Label).Int("order", in.Order).Msg("intensity created")
	}
	return ids, nil
}

// seedUsers creates the demo accounts through the user service so the
// passwords are hashed the same way signup hashes them. Returns email -> id.
func seedUsers(ctx context.Context, repo ports.UserRepository, svc ports.UserService, log zerolog.Logger) (map[string]string, error) {
	ids := make(map[string]string, len(users))
	for _, u := range users {
		existing, err := repo.GetByEmail(ctx, u.Email)
		if err == nil {
			ids[u.Email] = existing.ID
			continue
		}
		if !domain.IsNotFound(err) {
			return nil, err
		}

		created, err := svc.Create(ctx, ports.SignupInput{
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
			Role:     u.Role,
		})
		if err != nil {
			return nil, err
		}
		ids[u.Email] = created.ID
		log.Info().Str("username", u.Username).Str("role", string(u.Role)).Msg("user created")
	}
	return ids, nil
}

// seedGames inserts the demo games through the game service so tags are
// resolved with the same connect-or-create semantics the API uses.
func seedGames(ctx context.Context, repo ports.GameRepository, svc ports.GameService, intensityIDs, userIDs map[string]string, log zerolog.Logger) error {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, g := range existing {
		seen[g.Name] = true
	}

	for _, g := range games {
		if seen[g.Name] {
			continue
		}
		_, err := svc.Create(ctx, ports.GameInput{
			UserID:      userIDs[g.Owner],
			IntensityID: intensityIDs[g.Intensity],
			Name:        g.Name,
			Groups:      g.Groups,
			Duration:    g.Duration,
			Explanation: g.Explanation,
			Tags:        g.Tags,
		})
		if err != nil {
			return err
		}
		log.Info().Str("game", g.Name).Str("intensity", g.Intensity).Msg("game created")
	}
	return nil
}
