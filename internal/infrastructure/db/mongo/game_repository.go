package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jeugdwerk/games-api/internal/core/domain"
	"github.com/jeugdwerk/games-api/internal/core/ports"
)

const collectionGames = "games"

type GameRepository struct {
	col *mongo.Collection
}

func NewGameRepository(db *mongo.Database) *GameRepository {
	return &GameRepository{col: db.Collection(collectionGames)}
}

// gameDoc embeds a denormalized owner snapshot, the intensity and the tag
// associations so list and filter queries resolve in a single read.
type gameDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	User        gameUserDoc        `bson:"user"`
	Intensity   gameIntensityDoc   `bson:"intensity"`
	Name        string             `bson:"name"`
	Groups      bool               `bson:"groups"`
	Duration    int                `bson:"duration"`
	Explanation string             `bson:"explanation"`
	Tags        []gameTagDoc       `bson:"tags"`
	Medias      []gameMediaDoc     `bson:"medias"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   *time.Time         `bson:"updated_at,omitempty"`
}

type gameUserDoc struct {
	ID       string `bson:"id"`
	Username string `bson:"username"`
	Email    string `bson:"email"`
}

type gameIntensityDoc struct {
	ID        string `bson:"id"`
	Intensity string `bson:"intensity"`
	Order     int    `bson:"order"`
}

type gameTagDoc struct {
	ID  string `bson:"id"`
	Tag string `bson:"tag"`
}

type gameMediaDoc struct {
	Name     string `bson:"name"`
	File     string `bson:"file"`
	Filetype string `bson:"filetype"`
}

func toGameDoc(g *domain.Game) gameDoc {
	tags := make([]gameTagDoc, len(g.Tags))
	for i, t := range g.Tags {
		tags[i] = gameTagDoc{ID: t.ID, Tag: t.Tag}
	}
	medias := make([]gameMediaDoc, len(g.Medias))
	for i, m := range g.Medias {
		medias[i] = gameMediaDoc{Name: m.Name, File: m.File, Filetype: m.Filetype}
	}
	return gameDoc{
		User:        gameUserDoc{ID: g.User.ID, Username: g.User.Username, Email: g.User.Email},
		Intensity:   gameIntensityDoc{ID: g.Intensity.ID, Intensity: g.Intensity.Intensity, Order: g.Intensity.Order},
		Name:        g.Name,
		Groups:      g.Groups,
		Duration:    g.Duration,
		Explanation: g.Explanation,
		Tags:        tags,
		Medias:      medias,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func (d gameDoc) toDomain() *domain.Game {
	tags := make([]domain.Tag, len(d.Tags))
	for i, t := range d.Tags {
		tags[i] = domain.Tag{ID: t.ID, Tag: t.Tag}
	}
	medias := make([]domain.Media, len(d.Medias))
	for i, m := range d.Medias {
		medias[i] = domain.Media{Name: m.Name, File: m.File, Filetype: m.Filetype}
	}
	return &domain.Game{
		ID:          d.ID.Hex(),
		User:        domain.User{ID: d.User.ID, Username: d.User.Username, Email: d.User.Email},
		Intensity:   domain.Intensity{ID: d.Intensity.ID, Intensity: d.Intensity.Intensity, Order: d.Intensity.Order},
		Name:        d.Name,
		Groups:      d.Groups,
		Duration:    d.Duration,
		Explanation: d.Explanation,
		Tags:        tags,
		Medias:      medias,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt,
	}
}

func gameMissing(id string) string {
	return fmt.Sprintf("Game with id %s does not exist.", id)
}

func (r *GameRepository) GetAll(ctx context.Context) ([]domain.Game, error) {
	return r.find(ctx, bson.M{})
}

func (r *GameRepository) GetByUsername(ctx context.Context, username string) ([]domain.Game, error) {
	return r.find(ctx, bson.M{"user.username": username})
}

func (r *GameRepository) find(ctx context.Context, filter bson.M) ([]domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find games: %w", err)
	}
	defer cur.Close(ctx)

	games := []domain.Game{}
	for cur.Next(ctx) {
		var d gameDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode game: %w", err)
		}
		games = append(games, *d.toDomain())
	}
	return games, cur.Err()
}

func (r *GameRepository) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NotFound(gameMissing(id))
	}

	var d gameDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(gameMissing(id))
		}
		return nil, fmt.Errorf("find game: %w", err)
	}
	return d.toDomain(), nil
}

// GetRandom returns one uniformly random game via a $sample aggregation.
func (r *GameRepository) GetRandom(ctx context.Context) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("sample game: %w", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, fmt.Errorf("sample game: %w", err)
		}
		return nil, domain.ErrNoGamesAvailable
	}

	var d gameDoc
	if err := cur.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	return d.toDomain(), nil
}

// GetFiltered composes a conjunctive query from the set dimensions only.
// Tags match when the game carries at least one of the labels; the
// duration bounds are inclusive on both ends.
func (r *GameRepository) GetFiltered(ctx context.Context, filter ports.GameFilter) ([]domain.Game, error) {
	query := bson.M{}
	if len(filter.Tags) > 0 {
		query["tags.tag"] = bson.M{"$in": filter.Tags}
	}
	if filter.IntensityID != "" {
		query["intensity.id"] = filter.IntensityID
	}
	if filter.Groups != nil {
		query["groups"] = *filter.Groups
	}
	if filter.DurationMin != nil && filter.DurationMax != nil {
		query["duration"] = bson.M{"$gte": *filter.DurationMin, "$lte": *filter.DurationMax}
	}

	return r.find(ctx, query)
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toGameDoc(game))
	if err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}

	created := *game
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *GameRepository) Update(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(game.ID)
	if err != nil {
		return nil, domain.NotFound(gameMissing(game.ID))
	}

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, toGameDoc(game))
	if err != nil {
		return nil, fmt.Errorf("replace game: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.NotFound(gameMissing(game.ID))
	}
	return game, nil
}

func (r *GameRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NotFound(gameMissing(id))
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NotFound(gameMissing(id))
	}
	return nil
}

// CountByTag reports how many games still reference the given tag label.
func (r *GameRepository) CountByTag(ctx context.Context, label string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"tags.tag": label})
	if err != nil {
		return 0, fmt.Errorf("count games by tag: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the indexes backing the list and filter queries.
func (r *GameRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user.username", Value: 1}}},
		{Keys: bson.D{{Key: "intensity.id", Value: 1}}},
		{Keys: bson.D{{Key: "tags.tag", Value: 1}}},
		{Keys: bson.D{{Key: "duration", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
