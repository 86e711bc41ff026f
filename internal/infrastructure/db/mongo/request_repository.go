package mongo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sismt/attendance-system/internal/core/domain"
)

const (
	collectionAbsenceRequests  = "absence_requests"
	collectionOvertimeRequests = "overtime_requests"
)

// AbsenceRequestRepository persists justified-absence petitions.
type AbsenceRequestRepository struct {
	col *mongo.Collection
}

func NewAbsenceRequestRepository(db *mongo.Database) *AbsenceRequestRepository {
	return &AbsenceRequestRepository{col: db.Collection(collectionAbsenceRequests)}
}

func (r *AbsenceRequestRepository) Create(ctx context.Context, req *domain.AbsenceRequest) (*domain.AbsenceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *AbsenceRequestRepository) FindAll(ctx context.Context) ([]*domain.AbsenceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, requestSort())
	if err != nil {
		return nil, err
	}
	var requests []*domain.AbsenceRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *AbsenceRequestRepository) FindByPersonID(ctx context.Context, personID string) ([]*domain.AbsenceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"person_id": personID}, requestSort())
	if err != nil {
		return nil, err
	}
	var requests []*domain.AbsenceRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *AbsenceRequestRepository) FindByID(ctx context.Context, id string) (*domain.AbsenceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.AbsenceRequest
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *AbsenceRequestRepository) UpdateState(ctx context.Context, id string, state domain.RequestState) (*domain.AbsenceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.AbsenceRequest
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"state": state}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// OvertimeRequestRepository persists overtime petitions.
type OvertimeRequestRepository struct {
	col *mongo.Collection
}

func NewOvertimeRequestRepository(db *mongo.Database) *OvertimeRequestRepository {
	return &OvertimeRequestRepository{col: db.Collection(collectionOvertimeRequests)}
}

func (r *OvertimeRequestRepository) Create(ctx context.Context, req *domain.OvertimeRequest) (*domain.OvertimeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *OvertimeRequestRepository) FindAll(ctx context.Context) ([]*domain.OvertimeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, requestSort())
	if err != nil {
		return nil, err
	}
	var requests []*domain.OvertimeRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *OvertimeRequestRepository) FindByPersonID(ctx context.Context, personID string) ([]*domain.OvertimeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"person_id": personID}, requestSort())
	if err != nil {
		return nil, err
	}
	var requests []*domain.OvertimeRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *OvertimeRequestRepository) FindByID(ctx context.Context, id string) (*domain.OvertimeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.OvertimeRequest
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *OvertimeRequestRepository) UpdateState(ctx context.Context, id string, state domain.RequestState) (*domain.OvertimeRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.OvertimeRequest
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"state": state}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// requestSort orders petitions newest first.
func requestSort() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}})
}
