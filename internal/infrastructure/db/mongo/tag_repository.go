package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jeugdwerk/games-api/internal/core/domain"
)

const (
	collectionTags        = "tags"
	collectionIntensities = "intensities"
)

type TagRepository struct {
	col *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{col: db.Collection(collectionTags)}
}

type tagDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Tag       string             `bson:"tag"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty"`
}

func (d tagDoc) toDomain() *domain.Tag {
	return &domain.Tag{
		ID:        d.ID.Hex(),
		Tag:       d.Tag,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *TagRepository) GetAll(ctx context.Context) ([]domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "tag", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	defer cur.Close(ctx)

	tags := []domain.Tag{}
	for cur.Next(ctx) {
		var d tagDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode tag: %w", err)
		}
		tags = append(tags, *d.toDomain())
	}
	return tags, cur.Err()
}

func (r *TagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	missing := fmt.Sprintf("Tag with id %s does not exist.", id)
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NotFound(missing)
	}

	var d tagDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(missing)
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return d.toDomain(), nil
}

// GetByTag looks a tag up by exact label match. No normalisation is
// applied; "Outdoor" and "outdoor" are distinct labels.
func (r *TagRepository) GetByTag(ctx context.Context, label string) (*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d tagDoc
	if err := r.col.FindOne(ctx, bson.M{"tag": label}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(fmt.Sprintf("Tag %s does not exist.", label))
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return d.toDomain(), nil
}

// Create inserts the tag if its label is absent and returns the stored
// document either way. The upsert against the unique label index makes
// concurrent lookup-or-create calls converge on a single row.
func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"tag": tag.Tag}
	update := bson.M{"$setOnInsert": bson.M{
		"tag":        tag.Tag,
		"created_at": tag.CreatedAt,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var d tagDoc
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&d); err != nil {
		return nil, fmt.Errorf("upsert tag: %w", err)
	}
	return d.toDomain(), nil
}

func (r *TagRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NotFound(fmt.Sprintf("Tag with id %s does not exist.", id))
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NotFound(fmt.Sprintf("Tag with id %s does not exist.", id))
	}
	return nil
}

// EnsureIndexes creates the unique label index that backs the
// insert-if-absent semantics of Create.
func (r *TagRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tag", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// IntensityRepository serves the small ordered intensity taxonomy.
type IntensityRepository struct {
	col *mongo.Collection
}

func NewIntensityRepository(db *mongo.Database) *IntensityRepository {
	return &IntensityRepository{col: db.Collection(collectionIntensities)}
}

type intensityDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Intensity string             `bson:"intensity"`
	Order     int                `bson:"order"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty"`
}

func (d intensityDoc) toDomain() *domain.Intensity {
	return &domain.Intensity{
		ID:        d.ID.Hex(),
		Intensity: d.Intensity,
		Order:     d.Order,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt,
	}
}

// GetAll returns all intensities sorted by their order rank ascending.
func (r *IntensityRepository) GetAll(ctx context.Context) ([]domain.Intensity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find intensities: %w", err)
	}
	defer cur.Close(ctx)

	intensities := []domain.Intensity{}
	for cur.Next(ctx) {
		var d intensityDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode intensity: %w", err)
		}
		intensities = append(intensities, *d.toDomain())
	}
	return intensities, cur.Err()
}

func (r *IntensityRepository) GetByID(ctx context.Context, id string) (*domain.Intensity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	missing := fmt.Sprintf("Intensity with id %s does not exist.", id)
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NotFound(missing)
	}

	var d intensityDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(missing)
		}
		return nil, fmt.Errorf("find intensity: %w", err)
	}
	return d.toDomain(), nil
}

func (r *IntensityRepository) Create(ctx context.Context, intensity *domain.Intensity) (*domain.Intensity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := intensityDoc{
		Intensity: intensity.Intensity,
		Order:     intensity.Order,
		CreatedAt: intensity.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert intensity: %w", err)
	}

	created := *intensity
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}
