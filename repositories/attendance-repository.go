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

const AttendanceCollection = "attendances"

type AttendanceFilter struct {
	Status     string
	EmployeeID *int64
	// Day restricts results to [Day, Day+24h).
	Day *time.Time
}

func (f AttendanceFilter) bson() bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.EmployeeID != nil {
		filter["employeeId"] = *f.EmployeeID
	}
	if f.Day != nil {
		filter["date"] = bson.M{"$gte": *f.Day, "$lt": f.Day.AddDate(0, 0, 1)}
	}
	return filter
}

type AttendanceRepository struct {
	collection *mongo.Collection
	breaker    *gobreaker.CircuitBreaker
}

func NewAttendanceRepository(db *mongo.Database, breaker *gobreaker.CircuitBreaker) *AttendanceRepository {
	return &AttendanceRepository{collection: db.Collection(AttendanceCollection), breaker: breaker}
}

// Create inserts a record; a second record for the same employee and date
// yields ErrDuplicate.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	now := time.Now().UTC()
	record.ID = primitive.NewObjectID()
	record.CreatedAt = now
	record.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Attendance, error) {
	return guarded(r.breaker, func() (*models.Attendance, error) {
		var record models.Attendance
		if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record); err != nil {
			return nil, notFound(err)
		}
		return &record, nil
	})
}

func (r *AttendanceRepository) List(ctx context.Context, f AttendanceFilter) ([]models.Attendance, error) {
	return guarded(r.breaker, func() ([]models.Attendance, error) {
		opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
		cursor, err := r.collection.Find(ctx, f.bson(), opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list attendance: %w", err)
		}
		defer cursor.Close(ctx)

		records := []models.Attendance{}
		if err := cursor.All(ctx, &records); err != nil {
			return nil, fmt.Errorf("failed to decode attendance: %w", err)
		}
		return records, nil
	})
}

func (r *AttendanceRepository) Save(ctx context.Context, record *models.Attendance) error {
	record.UpdatedAt = time.Now().UTC()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": record.ID}, record)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AttendanceRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
