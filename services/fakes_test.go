package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"ems-project/backend/models"
	"ems-project/backend/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryEmployees is an in-memory employee collection with $addToSet
// semantics for project membership.
type memoryEmployees struct {
	mu      sync.Mutex
	byOID   map[primitive.ObjectID]*models.Employee
	seq     int64
	failFor map[primitive.ObjectID]error
	lookups int
}

func newMemoryEmployees(employees ...models.Employee) *memoryEmployees {
	m := &memoryEmployees{byOID: map[primitive.ObjectID]*models.Employee{}, failFor: map[primitive.ObjectID]error{}}
	for i := range employees {
		e := employees[i]
		if e.ObjectID.IsZero() {
			e.ObjectID = primitive.NewObjectID()
		}
		if e.ID == 0 {
			m.seq++
			e.ID = m.seq
		}
		m.byOID[e.ObjectID] = &e
	}
	return m
}

func (m *memoryEmployees) add(first, last string) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	e := &models.Employee{ObjectID: primitive.NewObjectID(), ID: m.seq, FirstName: first, LastName: last,
		Email: fmt.Sprintf("%s@example.com", first)}
	m.byOID[e.ObjectID] = e
	return e.ObjectID
}

func (m *memoryEmployees) projectsOf(id primitive.ObjectID) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byOID[id]
	if !ok {
		return nil
	}
	return slices.Clone(e.Projects.ProjectIDs)
}

func (m *memoryEmployees) snapshot() map[primitive.ObjectID]models.Employee {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[primitive.ObjectID]models.Employee, len(m.byOID))
	for id, e := range m.byOID {
		c := *e
		c.Projects.ProjectIDs = slices.Clone(e.Projects.ProjectIDs)
		out[id] = c
	}
	return out
}

func (m *memoryEmployees) restore(snap map[primitive.ObjectID]models.Employee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byOID = make(map[primitive.ObjectID]*models.Employee, len(snap))
	for id, e := range snap {
		c := e
		m.byOID[id] = &c
	}
}

func (m *memoryEmployees) FindByObjectID(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	e, ok := m.byOID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *e
	return &c, nil
}

func (m *memoryEmployees) FindBySeqID(_ context.Context, id int64) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byOID {
		if e.ID == id {
			c := *e
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryEmployees) FindByEmail(_ context.Context, email string) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byOID {
		if e.Email == email {
			c := *e
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryEmployees) List(_ context.Context) ([]models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Employee, 0, len(m.byOID))
	for _, e := range m.byOID {
		out = append(out, *e)
	}
	slices.SortFunc(out, func(a, b models.Employee) int { return int(a.ID - b.ID) })
	return out, nil
}

func (m *memoryEmployees) Create(_ context.Context, employee *models.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byOID {
		if e.Email == employee.Email {
			return repositories.ErrDuplicate
		}
	}
	m.seq++
	employee.ID = m.seq
	employee.ObjectID = primitive.NewObjectID()
	c := *employee
	m.byOID[c.ObjectID] = &c
	return nil
}

func (m *memoryEmployees) Update(_ context.Context, id int64, fields bson.M) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// unique email index
	if email, ok := fields["email"].(string); ok {
		for _, e := range m.byOID {
			if e.ID != id && e.Email == email {
				return nil, repositories.ErrDuplicate
			}
		}
	}
	for _, e := range m.byOID {
		if e.ID != id {
			continue
		}
		for key, value := range fields {
			switch key {
			case "first_name":
				e.FirstName, _ = value.(string)
			case "last_name":
				e.LastName, _ = value.(string)
			case "email":
				e.Email, _ = value.(string)
			case "department":
				e.Department, _ = value.(string)
			case "password":
				e.Password, _ = value.(string)
			case "joining_date":
				e.JoiningDate, _ = value.(time.Time)
			}
		}
		c := *e
		return &c, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryEmployees) DeleteBySeqID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for oid, e := range m.byOID {
		if e.ID == id {
			delete(m.byOID, oid)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memoryEmployees) AddProject(_ context.Context, employeeID primitive.ObjectID, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failFor[employeeID]; err != nil {
		return err
	}
	e, ok := m.byOID[employeeID]
	if !ok {
		// an update with no matching document is not an error
		return nil
	}
	if !slices.Contains(e.Projects.ProjectIDs, projectID) {
		e.Projects.ProjectIDs = append(e.Projects.ProjectIDs, projectID)
	}
	return nil
}

func (m *memoryEmployees) AddProjectToMany(ctx context.Context, employeeIDs []primitive.ObjectID, projectID string) error {
	var firstErr error
	for _, id := range employeeIDs {
		if err := m.AddProject(ctx, id, projectID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type memoryProjects struct {
	mu        sync.Mutex
	items     []models.Project
	createErr error
}

func (m *memoryProjects) Create(_ context.Context, project *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	project.CreatedAt, project.UpdatedAt = now, now
	m.items = append(m.items, *project)
	return nil
}

func (m *memoryProjects) FindByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.ID == id {
			c := p
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryProjects) List(_ context.Context) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items), nil
}

func (m *memoryProjects) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// snapshotTx emulates a transaction by restoring both collections when fn fails.
type snapshotTx struct {
	employees   *memoryEmployees
	projects    *memoryProjects
	supported   bool
	unsupported bool
	calls       int
}

func (t *snapshotTx) SupportsTransactions(context.Context) bool { return t.supported }

func (t *snapshotTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	if t.unsupported {
		return fmt.Errorf("%w: Transaction numbers are only allowed on a replica set member or mongos",
			repositories.ErrTransactionsUnsupported)
	}
	emps := t.employees.snapshot()
	t.projects.mu.Lock()
	projs := slices.Clone(t.projects.items)
	t.projects.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.employees.restore(emps)
		t.projects.mu.Lock()
		t.projects.items = projs
		t.projects.mu.Unlock()
		return err
	}
	return nil
}

type memoryLeaves struct {
	items map[primitive.ObjectID]models.Leave
	last  repositories.LeaveFilter
}

func newMemoryLeaves() *memoryLeaves {
	return &memoryLeaves{items: map[primitive.ObjectID]models.Leave{}}
}

func (m *memoryLeaves) Create(_ context.Context, leave *models.Leave) error {
	leave.ID = primitive.NewObjectID()
	m.items[leave.ID] = *leave
	return nil
}

func (m *memoryLeaves) FindByID(_ context.Context, id primitive.ObjectID) (*models.Leave, error) {
	l, ok := m.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &l, nil
}

func (m *memoryLeaves) List(_ context.Context, f repositories.LeaveFilter) ([]models.Leave, error) {
	m.last = f
	var out []models.Leave
	for _, l := range m.items {
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.EmployeeID != nil && l.EmployeeID != *f.EmployeeID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *memoryLeaves) Save(_ context.Context, leave *models.Leave) error {
	if _, ok := m.items[leave.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.items[leave.ID] = *leave
	return nil
}

func (m *memoryLeaves) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memoryAttendance struct {
	items map[primitive.ObjectID]models.Attendance
	last  repositories.AttendanceFilter
}

func newMemoryAttendance() *memoryAttendance {
	return &memoryAttendance{items: map[primitive.ObjectID]models.Attendance{}}
}

func (m *memoryAttendance) Create(_ context.Context, record *models.Attendance) error {
	for _, r := range m.items {
		if r.EmployeeID == record.EmployeeID && r.Date.Equal(record.Date) {
			return repositories.ErrDuplicate
		}
	}
	record.ID = primitive.NewObjectID()
	m.items[record.ID] = *record
	return nil
}

func (m *memoryAttendance) FindByID(_ context.Context, id primitive.ObjectID) (*models.Attendance, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &r, nil
}

func (m *memoryAttendance) List(_ context.Context, f repositories.AttendanceFilter) ([]models.Attendance, error) {
	m.last = f
	out := make([]models.Attendance, 0, len(m.items))
	for _, r := range m.items {
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryAttendance) Save(_ context.Context, record *models.Attendance) error {
	if _, ok := m.items[record.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.items[record.ID] = *record
	return nil
}

func (m *memoryAttendance) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

var errStoreDown = errors.New("store unavailable")
