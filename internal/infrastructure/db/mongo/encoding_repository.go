package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sismt/attendance-system/internal/core/domain"
)

const collectionEncodings = "facial_encodings"

type EncodingRepository struct {
	col *mongo.Collection
}

func NewEncodingRepository(db *mongo.Database) *EncodingRepository {
	return &EncodingRepository{col: db.Collection(collectionEncodings)}
}

func (r *EncodingRepository) Create(ctx context.Context, e *domain.FacialEncoding) (*domain.FacialEncoding, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EncodingRepository) FindByID(ctx context.Context, id string) (*domain.FacialEncoding, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.FacialEncoding
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEncodingNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindAll returns every enrolled encoding. The matcher scans these
// linearly per recognition request; the expected population is small
// enough that no vector index is warranted.
func (r *EncodingRepository) FindAll(ctx context.Context) ([]*domain.FacialEncoding, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var encodings []*domain.FacialEncoding
	if err := cur.All(ctx, &encodings); err != nil {
		return nil, err
	}
	return encodings, nil
}

func (r *EncodingRepository) FindByPersonID(ctx context.Context, personID string) ([]*domain.FacialEncoding, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"person_id": personID})
	if err != nil {
		return nil, err
	}
	var encodings []*domain.FacialEncoding
	if err := cur.All(ctx, &encodings); err != nil {
		return nil, err
	}
	return encodings, nil
}

func (r *EncodingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrEncodingNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the encodings collection relies on.
func (r *EncodingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "person_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
