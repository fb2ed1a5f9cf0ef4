package services

import (
	"context"
	"testing"

	"ems-project/backend/models"
	"ems-project/backend/repositories"
	"ems-project/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEmployee(t *testing.T) {
	store := newMemoryEmployees()
	svc := NewEmployeeService(store)

	in := CreateEmployeeInput{
		Employee: models.Employee{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
			Projects: models.EmployeeProjects{ProjectIDs: []string{"smuggled"}}},
		Password: "secret",
		DoB:      "1990-12-10",
	}
	created, err := svc.CreateEmployee(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Active", created.Status)
	assert.Empty(t, created.Projects.ProjectIDs)
	assert.NotNil(t, created.Projects.ProjectIDs)
	assert.True(t, utils.CheckPassword(created.Password, "secret"))
	assert.Equal(t, 1990, created.DoB.Year())
	assert.False(t, created.JoiningDate.IsZero())

	_, err = svc.CreateEmployee(context.Background(), in)
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
}

func TestCreateEmployee_Validation(t *testing.T) {
	svc := NewEmployeeService(newMemoryEmployees())

	_, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{Employee: models.Employee{FirstName: "A"}})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Missing required fields", ve.Message)

	_, err = svc.CreateEmployee(context.Background(), CreateEmployeeInput{
		Employee: models.Employee{FirstName: "A", LastName: "B", Email: "a@b.c"},
		Joining:  "someday",
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Invalid joining date", ve.Message)
}

func TestUpdateEmployee(t *testing.T) {
	store := newMemoryEmployees(models.Employee{ID: 7, FirstName: "Ada", Email: "ada@example.com"})
	svc := NewEmployeeService(store)

	updated, err := svc.UpdateEmployee(context.Background(), 7, map[string]interface{}{
		"department": "R&D",
		"projects":   map[string]interface{}{"projectId": []string{"x"}},
		"password":   "n3w",
	})
	require.NoError(t, err)
	assert.Equal(t, "R&D", updated.Department)
	assert.Empty(t, updated.Projects.ProjectIDs)
	assert.True(t, utils.CheckPassword(updated.Password, "n3w"))

	_, err = svc.UpdateEmployee(context.Background(), 7, map[string]interface{}{"projects": 1})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = svc.UpdateEmployee(context.Background(), 8, map[string]interface{}{"department": "x"})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestGetAndDeleteEmployee(t *testing.T) {
	store := newMemoryEmployees(models.Employee{ID: 3, FirstName: "Bo", Email: "bo@example.com"})
	svc := NewEmployeeService(store)

	got, err := svc.GetEmployee(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Bo", got.FirstName)

	require.NoError(t, svc.DeleteEmployee(context.Background(), 3))

	var nf *NotFoundError
	_, err = svc.GetEmployee(context.Background(), 3)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Employee not found", nf.Message)
	require.ErrorAs(t, svc.DeleteEmployee(context.Background(), 3), &nf)
}

func TestParseEmployeeID(t *testing.T) {
	id, err := ParseEmployeeID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-1"} {
		_, err := ParseEmployeeID(raw)
		assert.Error(t, err, raw)
	}
}

func TestEnsureAdmin(t *testing.T) {
	store := newMemoryEmployees()
	svc := NewEmployeeService(store)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "pw"))
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "pw"))

	all, err := svc.ListEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.RoleAdmin, all[0].AccessRole)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "", ""))
}

func TestUpdateEmployee_EmailTaken(t *testing.T) {
	store := newMemoryEmployees(
		models.Employee{ID: 1, FirstName: "Ada", Email: "ada@example.com"},
		models.Employee{ID: 2, FirstName: "Bo", Email: "bo@example.com"},
	)
	svc := NewEmployeeService(store)

	_, err := svc.UpdateEmployee(context.Background(), 2, map[string]interface{}{"email": "ada@example.com"})

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Employee with this email already exists", ce.Message)
	bo, err := svc.GetEmployee(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "bo@example.com", bo.Email)

	// keeping one's own email is not a clash
	_, err = svc.UpdateEmployee(context.Background(), 2, map[string]interface{}{"email": "bo@example.com"})
	require.NoError(t, err)
}

// staleEmailLookup misses an employee inserted by a concurrent request, so
// only the unique index stops the second insert.
type staleEmailLookup struct {
	*memoryEmployees
}

func (s staleEmailLookup) FindByEmail(context.Context, string) (*models.Employee, error) {
	return nil, repositories.ErrNotFound
}

func TestCreateEmployee_ConcurrentDuplicateEmail(t *testing.T) {
	store := newMemoryEmployees(models.Employee{ID: 1, FirstName: "Ada", Email: "ada@example.com"})
	svc := NewEmployeeService(staleEmailLookup{store})

	_, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{
		Employee: models.Employee{FirstName: "Ada", LastName: "Two", Email: "ada@example.com"},
	})

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Employee with this email already exists", ce.Message)
	all, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
