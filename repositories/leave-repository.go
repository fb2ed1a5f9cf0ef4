package repositories

import (
	"context"
	"fmt"
	"time"

	"ems-project/backend/models"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const LeavesCollection = "leaves"

type LeaveFilter struct {
	Status     string
	EmployeeID *int64
	From       *time.Time
	To         *time.Time
}

func (f LeaveFilter) bson() bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.EmployeeID != nil {
		filter["employeeId"] = *f.EmployeeID
	}
	if f.From != nil || f.To != nil {
		rng := bson.M{}
		if f.From != nil {
			rng["$gte"] = *f.From
		}
		if f.To != nil {
			rng["$lte"] = *f.To
		}
		filter["startDate"] = rng
	}
	return filter
}

type LeaveRepository struct {
	collection *mongo.Collection
	breaker    *gobreaker.CircuitBreaker
}

func NewLeaveRepository(db *mongo.Database, breaker *gobreaker.CircuitBreaker) *LeaveRepository {
	return &LeaveRepository{collection: db.Collection(LeavesCollection), breaker: breaker}
}

func (r *LeaveRepository) Create(ctx context.Context, leave *models.Leave) error {
	now := time.Now().UTC()
	leave.ID = primitive.NewObjectID()
	leave.CreatedAt = now
	leave.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, leave); err != nil {
		return fmt.Errorf("failed to create leave: %w", err)
	}
	return nil
}

func (r *LeaveRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Leave, error) {
	return guarded(r.breaker, func() (*models.Leave, error) {
		var leave models.Leave
		if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&leave); err != nil {
			return nil, notFound(err)
		}
		return &leave, nil
	})
}

// List returns matching leaves, newest request first.
func (r *LeaveRepository) List(ctx context.Context, f LeaveFilter) ([]models.Leave, error) {
	return guarded(r.breaker, func() ([]models.Leave, error) {
		cursor, err := r.collection.Find(ctx, f.bson(), options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
		if err != nil {
			return nil, fmt.Errorf("failed to list leaves: %w", err)
		}
		defer cursor.Close(ctx)

		leaves := []models.Leave{}
		if err := cursor.All(ctx, &leaves); err != nil {
			return nil, fmt.Errorf("failed to decode leaves: %w", err)
		}
		return leaves, nil
	})
}

func (r *LeaveRepository) Save(ctx context.Context, leave *models.Leave) error {
	leave.UpdatedAt = time.Now().UTC()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": leave.ID}, leave)
	if err != nil {
		return fmt.Errorf("failed to update leave: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LeaveRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete leave: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
