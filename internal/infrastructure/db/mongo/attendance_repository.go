package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sismt/attendance-system/internal/core/domain"
)

const collectionAttendance = "attendance_records"

type AttendanceRepository struct {
	col *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{col: db.Collection(collectionAttendance)}
}

// Insert persists one attendance record. The unique compound index on
// (person_id, date, window) rejects a concurrent duplicate that slipped
// past the service-level checks.
func (r *AttendanceRepository) Insert(ctx context.Context, rec *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, rec); err != nil {
		if IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateRegistration
		}
		return nil, err
	}
	return rec, nil
}

func (r *AttendanceRepository) FindByPersonAndDate(ctx context.Context, personID, date string) ([]*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"person_id": personID, "date": date})
	if err != nil {
		return nil, err
	}
	return decodeRecords(ctx, cur)
}

func (r *AttendanceRepository) FindByDate(ctx context.Context, date string) ([]*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, err
	}
	return decodeRecords(ctx, cur)
}

// FindByDateRange returns records with from <= date <= to, optionally
// scoped to one person. The date field uses a lexicographically sortable
// layout, so a plain string range query is correct.
func (r *AttendanceRepository) FindByDateRange(ctx context.Context, from, to, personID string) ([]*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	if personID != "" {
		filter["person_id"] = personID
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeRecords(ctx, cur)
}

func (r *AttendanceRepository) FindRecent(ctx context.Context, limit int) ([]*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeRecords(ctx, cur)
}

func decodeRecords(ctx context.Context, cur *mongo.Cursor) ([]*domain.AttendanceRecord, error) {
	var records []*domain.AttendanceRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// IsDuplicateKeyError reports whether an insert failed on the unique
// (person_id, date, window) index.
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// EnsureIndexes creates the indexes the attendance collection relies on.
// The compound unique index is the storage-level idempotency guarantee.
func (r *AttendanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "person_id", Value: 1}, {Key: "date", Value: 1}, {Key: "window", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
