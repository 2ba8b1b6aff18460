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

type MeasurementRepository struct {
	col *mongo.Collection
}

func NewMeasurementRepository(db *mongo.Database) *MeasurementRepository {
	return &MeasurementRepository{col: db.Collection(collectionMeasurements)}
}

type measurementDocument struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty"`
	SeriesID          string               `bson:"series_id"`
	Value             primitive.Decimal128 `bson:"value"`
	Timestamp         time.Time            `bson:"timestamp"`
	CreatedBy         string               `bson:"created_by"`
	CreatedByUsername string               `bson:"created_by_username"`
	CreatedAt         time.Time            `bson:"created_at"`
}

func newMeasurementDocument(m *domain.Measurement) (*measurementDocument, error) {
	value, err := toDecimal128(m.Value)
	if err != nil {
		return nil, err
	}
	return &measurementDocument{
		SeriesID:          m.SeriesID,
		Value:             value,
		Timestamp:         m.Timestamp.UTC(),
		CreatedBy:         m.CreatedBy,
		CreatedByUsername: m.CreatedByUsername,
		CreatedAt:         m.CreatedAt.UTC(),
	}, nil
}

func (d *measurementDocument) toDomain() (*domain.Measurement, error) {
	value, err := fromDecimal128(d.Value)
	if err != nil {
		return nil, err
	}
	return &domain.Measurement{
		ID:                d.ID.Hex(),
		SeriesID:          d.SeriesID,
		Value:             value,
		Timestamp:         d.Timestamp.UTC(),
		CreatedBy:         d.CreatedBy,
		CreatedByUsername: d.CreatedByUsername,
		CreatedAt:         d.CreatedAt.UTC(),
	}, nil
}

func (r *MeasurementRepository) List(ctx context.Context) ([]*domain.Measurement, error) {
	return r.find(ctx, bson.M{})
}

func (r *MeasurementRepository) ListBySeries(ctx context.Context, seriesID string) ([]*domain.Measurement, error) {
	return r.find(ctx, bson.M{"series_id": seriesID})
}

// find returns matching measurements ordered by timestamp ascending.
func (r *MeasurementRepository) find(ctx context.Context, filter bson.M) ([]*domain.Measurement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	defer cur.Close(ctx)

	var docs []measurementDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode measurements: %w", err)
	}

	out := make([]*domain.Measurement, 0, len(docs))
	for i := range docs {
		m, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MeasurementRepository) FindByID(ctx context.Context, id string) (*domain.Measurement, error) {
	oid, err := objectID(id, domain.ErrMeasurementNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc measurementDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrMeasurementNotFound
		}
		return nil, fmt.Errorf("find measurement: %w", err)
	}
	return doc.toDomain()
}

func (r *MeasurementRepository) Create(ctx context.Context, m *domain.Measurement) (*domain.Measurement, error) {
	doc, err := newMeasurementDocument(m)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert measurement: %w", err)
	}
	return doc.toDomain()
}

// Update rewrites series, value and timestamp. Creator fields are kept.
func (r *MeasurementRepository) Update(ctx context.Context, m *domain.Measurement) (*domain.Measurement, error) {
	oid, err := objectID(m.ID, domain.ErrMeasurementNotFound)
	if err != nil {
		return nil, err
	}
	doc, err := newMeasurementDocument(m)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"series_id": doc.SeriesID,
		"value":     doc.Value,
		"timestamp": doc.Timestamp,
	}}

	var updated measurementDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrMeasurementNotFound
		}
		return nil, fmt.Errorf("update measurement: %w", err)
	}
	return updated.toDomain()
}

func (r *MeasurementRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrMeasurementNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete measurement: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMeasurementNotFound
	}
	return nil
}

// DeleteBySeries removes every measurement of a series and reports how many
// were removed.
func (r *MeasurementRepository) DeleteBySeries(ctx context.Context, seriesID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"series_id": seriesID})
	if err != nil {
		return 0, fmt.Errorf("delete series measurements: %w", err)
	}
	return res.DeletedCount, nil
}
