package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tempsense/tracking-api/internal/core/domain"
)

type SeriesRepository struct {
	col *mongo.Collection
}

func NewSeriesRepository(db *mongo.Database) *SeriesRepository {
	return &SeriesRepository{col: db.Collection(collectionSeries)}
}

// seriesDocument stores bounds as Decimal128 so values keep their exact
// decimal form; a nil bound is absent.
type seriesDocument struct {
	ID                primitive.ObjectID    `bson:"_id,omitempty"`
	Name              string                `bson:"name"`
	Description       string                `bson:"description,omitempty"`
	Color             string                `bson:"color,omitempty"`
	Icon              string                `bson:"icon,omitempty"`
	MinValue          *primitive.Decimal128 `bson:"min_value,omitempty"`
	MaxValue          *primitive.Decimal128 `bson:"max_value,omitempty"`
	CreatedBy         string                `bson:"created_by"`
	CreatedByUsername string                `bson:"created_by_username"`
	CreatedAt         time.Time             `bson:"created_at"`
}

func newSeriesDocument(s *domain.Series) (*seriesDocument, error) {
	min, err := toNullDecimal128(s.MinValue)
	if err != nil {
		return nil, err
	}
	max, err := toNullDecimal128(s.MaxValue)
	if err != nil {
		return nil, err
	}
	return &seriesDocument{
		Name:              s.Name,
		Description:       s.Description,
		Color:             s.Color,
		Icon:              s.Icon,
		MinValue:          min,
		MaxValue:          max,
		CreatedBy:         s.CreatedBy,
		CreatedByUsername: s.CreatedByUsername,
		CreatedAt:         s.CreatedAt.UTC(),
	}, nil
}

func (d *seriesDocument) toDomain() (*domain.Series, error) {
	min, err := fromNullDecimal128(d.MinValue)
	if err != nil {
		return nil, err
	}
	max, err := fromNullDecimal128(d.MaxValue)
	if err != nil {
		return nil, err
	}
	return &domain.Series{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Description:       d.Description,
		Color:             d.Color,
		Icon:              d.Icon,
		MinValue:          min,
		MaxValue:          max,
		CreatedBy:         d.CreatedBy,
		CreatedByUsername: d.CreatedByUsername,
		CreatedAt:         d.CreatedAt.UTC(),
	}, nil
}

// List returns all series ordered by name.
func (r *SeriesRepository) List(ctx context.Context) ([]*domain.Series, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer cur.Close(ctx)

	var docs []seriesDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode series: %w", err)
	}

	out := make([]*domain.Series, 0, len(docs))
	for i := range docs {
		s, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *SeriesRepository) FindByID(ctx context.Context, id string) (*domain.Series, error) {
	oid, err := objectID(id, domain.ErrSeriesNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc seriesDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrSeriesNotFound
		}
		return nil, fmt.Errorf("find series: %w", err)
	}
	return doc.toDomain()
}

func (r *SeriesRepository) Create(ctx context.Context, s *domain.Series) (*domain.Series, error) {
	doc, err := newSeriesDocument(s)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert series: %w", err)
	}
	return doc.toDomain()
}

// Update replaces the mutable fields and returns the stored document.
// Creator fields and creation time are never written here.
func (r *SeriesRepository) Update(ctx context.Context, s *domain.Series) (*domain.Series, error) {
	oid, err := objectID(s.ID, domain.ErrSeriesNotFound)
	if err != nil {
		return nil, err
	}
	doc, err := newSeriesDocument(s)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"name":        doc.Name,
		"description": doc.Description,
		"color":       doc.Color,
		"icon":        doc.Icon,
	}
	unset := bson.M{}
	if doc.MinValue != nil {
		set["min_value"] = doc.MinValue
	} else {
		unset["min_value"] = ""
	}
	if doc.MaxValue != nil {
		set["max_value"] = doc.MaxValue
	} else {
		unset["max_value"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var updated seriesDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrSeriesNotFound
		}
		return nil, fmt.Errorf("update series: %w", err)
	}
	return updated.toDomain()
}

func (r *SeriesRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrSeriesNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete series: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSeriesNotFound
	}
	return nil
}
