package repositories

import (
	"context"
	"fmt"

	"ems-project/backend/models"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	EmployeesCollection = "employees"
	CountersCollection  = "counters"

	employeeSequence = "employee_id"
	projectsField    = "projects.projectId"
)

type EmployeeRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
	breaker    *gobreaker.CircuitBreaker
}

func NewEmployeeRepository(db *mongo.Database, breaker *gobreaker.CircuitBreaker) *EmployeeRepository {
	return &EmployeeRepository{
		collection: db.Collection(EmployeesCollection),
		counters:   db.Collection(CountersCollection),
		breaker:    breaker,
	}
}

func (r *EmployeeRepository) findOne(ctx context.Context, filter bson.M) (*models.Employee, error) {
	return guarded(r.breaker, func() (*models.Employee, error) {
		var employee models.Employee
		if err := r.collection.FindOne(ctx, filter).Decode(&employee); err != nil {
			return nil, notFound(err)
		}
		return &employee, nil
	})
}

func (r *EmployeeRepository) FindByObjectID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindBySeqID looks an employee up by the numeric sequence id.
func (r *EmployeeRepository) FindBySeqID(ctx context.Context, id int64) (*models.Employee, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *EmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	return guarded(r.breaker, func() ([]models.Employee, error) {
		cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
		if err != nil {
			return nil, fmt.Errorf("failed to list employees: %w", err)
		}
		defer cursor.Close(ctx)

		employees := []models.Employee{}
		if err := cursor.All(ctx, &employees); err != nil {
			return nil, fmt.Errorf("failed to decode employees: %w", err)
		}
		return employees, nil
	})
}

// NextSequence atomically increments and returns the employee id counter.
func (r *EmployeeRepository) NextSequence(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var counter models.Counter
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": employeeSequence},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to advance employee sequence: %w", err)
	}
	return counter.Seq, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	seq, err := r.NextSequence(ctx)
	if err != nil {
		return err
	}
	employee.ID = seq
	if employee.Projects.ProjectIDs == nil {
		employee.Projects.ProjectIDs = []string{}
	}

	res, err := r.collection.InsertOne(ctx, employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	employee.ObjectID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update applies a $set of the given fields and returns the updated document.
func (r *EmployeeRepository) Update(ctx context.Context, id int64, fields bson.M) (*models.Employee, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var employee models.Employee
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": fields}, opts).Decode(&employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, notFound(err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) DeleteBySeqID(ctx context.Context, id int64) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddProject adds projectID to the employee's membership set. Repeating the
// call is a no-op.
func (r *EmployeeRepository) AddProject(ctx context.Context, employeeID primitive.ObjectID, projectID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": employeeID},
		bson.M{"$addToSet": bson.M{projectsField: projectID}},
	)
	if err != nil {
		return fmt.Errorf("failed to add project %s to employee %s: %w", projectID, employeeID.Hex(), err)
	}
	return nil
}

// AddProjectToMany issues one $addToSet update per id in a single unordered
// bulk write. Duplicated ids are sent as separate updates.
func (r *EmployeeRepository) AddProjectToMany(ctx context.Context, employeeIDs []primitive.ObjectID, projectID string) error {
	if len(employeeIDs) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{"$addToSet": bson.M{projectsField: projectID}}))
	}
	if _, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to add project %s to %d employees: %w", projectID, len(employeeIDs), err)
	}
	return nil
}
