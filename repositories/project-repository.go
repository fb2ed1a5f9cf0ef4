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

const ProjectsCollection = "projects"

type ProjectRepository struct {
	collection *mongo.Collection
	breaker    *gobreaker.CircuitBreaker
}

func NewProjectRepository(db *mongo.Database, breaker *gobreaker.CircuitBreaker) *ProjectRepository {
	return &ProjectRepository{collection: db.Collection(ProjectsCollection), breaker: breaker}
}

// Create inserts the project. When ctx is a session context the insert joins
// that session's transaction.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	now := time.Now().UTC()
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	project.CreatedAt = now
	project.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, project); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	return guarded(r.breaker, func() (*models.Project, error) {
		var project models.Project
		if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
			return nil, notFound(err)
		}
		return &project, nil
	})
}

func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	return guarded(r.breaker, func() ([]models.Project, error) {
		cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
		if err != nil {
			return nil, fmt.Errorf("unsuccessful procurement of projects: %w", err)
		}
		defer cursor.Close(ctx)

		projects := []models.Project{}
		if err := cursor.All(ctx, &projects); err != nil {
			return nil, fmt.Errorf("unsuccessful decoding of projects: %w", err)
		}
		return projects, nil
	})
}
