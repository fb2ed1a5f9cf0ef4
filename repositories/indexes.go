package repositories

import (
	"context"
	"fmt"

	"ems-project/backend/logging"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var employeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetName("uniq_id").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	},
}

var projectIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "managerId", Value: 1}},
		Options: options.Index().SetName("idx_managerId"),
	},
}

var leaveIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_employeeId_createdAt"),
	},
}

var attendanceIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetName("uniq_employeeId_date").SetUnique(true),
	},
}

// EnsureIndexes creates the indexes every collection relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	sets := map[string][]mongo.IndexModel{
		EmployeesCollection:  employeeIndexes,
		ProjectsCollection:   projectIndexes,
		LeavesCollection:     leaveIndexes,
		AttendanceCollection: attendanceIndexes,
	}
	for collection, models := range sets {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
		logging.Logger.Infof("Event ID: DB_INDEXES_READY, Description: Indexes ensured on %s", collection)
	}
	return nil
}
