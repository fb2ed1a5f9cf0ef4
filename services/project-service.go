package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ems-project/backend/logging"
	"ems-project/backend/models"
	"ems-project/backend/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// EmployeeDirectory is the employee side of project membership.
type EmployeeDirectory interface {
	FindByObjectID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	// AddProject and AddProjectToMany add projectID to the "projects" set of
	// each employee. Both are idempotent per employee.
	AddProject(ctx context.Context, employeeID primitive.ObjectID, projectID string) error
	AddProjectToMany(ctx context.Context, employeeIDs []primitive.ObjectID, projectID string) error
}

type ProjectStore interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
}

type Transactor interface {
	SupportsTransactions(ctx context.Context) bool
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PersistenceStrategy writes a validated project and its membership fan-out.
type PersistenceStrategy interface {
	Name() string
	Persist(ctx context.Context, project *models.Project, members []primitive.ObjectID) error
}

// TransactionalPersistence applies the insert and every membership update
// in one transaction, so either all of them land or none do.
type TransactionalPersistence struct {
	tx        Transactor
	projects  ProjectStore
	employees EmployeeDirectory
}

func NewTransactionalPersistence(tx Transactor, projects ProjectStore, employees EmployeeDirectory) *TransactionalPersistence {
	return &TransactionalPersistence{tx: tx, projects: projects, employees: employees}
}

func (p *TransactionalPersistence) Name() string { return "transactional" }

func (p *TransactionalPersistence) Persist(ctx context.Context, project *models.Project, members []primitive.ObjectID) error {
	return p.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := p.projects.Create(txCtx, project); err != nil {
			return err
		}
		return p.employees.AddProjectToMany(txCtx, members, project.ID.Hex())
	})
}

// BestEffortPersistence inserts the project and then issues the membership
// updates concurrently without a transaction. A failure part way leaves the
// project stored with some updates missing; nothing is retried.
type BestEffortPersistence struct {
	projects  ProjectStore
	employees EmployeeDirectory
}

func NewBestEffortPersistence(projects ProjectStore, employees EmployeeDirectory) *BestEffortPersistence {
	return &BestEffortPersistence{projects: projects, employees: employees}
}

func (p *BestEffortPersistence) Name() string { return "best-effort" }

func (p *BestEffortPersistence) Persist(ctx context.Context, project *models.Project, members []primitive.ObjectID) error {
	if err := p.projects.Create(ctx, project); err != nil {
		return err
	}

	projectID := project.ID.Hex()
	var g errgroup.Group
	for _, id := range members {
		id := id
		g.Go(func() error {
			return p.employees.AddProject(ctx, id, projectID)
		})
	}
	return g.Wait()
}

type ProjectService struct {
	projects      ProjectStore
	employees     EmployeeDirectory
	tx            Transactor
	transactional PersistenceStrategy
	bestEffort    PersistenceStrategy
	writeTimeout  time.Duration
}

// NewProjectService wires the two persistence strategies. A nil tx disables
// the transactional path entirely.
func NewProjectService(projects ProjectStore, employees EmployeeDirectory, tx Transactor, writeTimeout time.Duration) *ProjectService {
	s := &ProjectService{
		projects:     projects,
		employees:    employees,
		tx:           tx,
		bestEffort:   NewBestEffortPersistence(projects, employees),
		writeTimeout: writeTimeout,
	}
	if tx != nil {
		s.transactional = NewTransactionalPersistence(tx, projects, employees)
	}
	return s
}

// membershipTargets lists every employee that must gain the project: the
// manager, then each team's leader followed by its members. Repeats are kept;
// each one becomes its own idempotent update.
func membershipTargets(project *models.Project) []primitive.ObjectID {
	ids := []primitive.ObjectID{project.ManagerID}
	for _, team := range project.Teams {
		ids = append(ids, team.LeaderID)
		ids = append(ids, team.Members...)
	}
	return ids
}

func (s *ProjectService) selectStrategy(ctx context.Context) PersistenceStrategy {
	if s.transactional == nil || !s.tx.SupportsTransactions(ctx) {
		return s.bestEffort
	}
	return s.transactional
}

// CreateProject validates in, checks the manager exists, stores the project
// and adds its id to every referenced employee. Team leaders and members are
// only format-checked, not looked up.
func (s *ProjectService) CreateProject(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	project, err := in.validate()
	if err != nil {
		return nil, err
	}

	// The write sequence outlives the caller's request so a disconnect cannot
	// stop it half way.
	ctx = context.WithoutCancel(ctx)
	if s.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()
	}

	if _, err := s.employees.FindByObjectID(ctx, project.ManagerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Message: "Manager not found"}
		}
		return nil, fmt.Errorf("failed to look up manager %s: %w", project.ManagerID.Hex(), err)
	}

	project.ID = primitive.NewObjectID()
	members := membershipTargets(project)

	strategy := s.selectStrategy(ctx)
	err = strategy.Persist(ctx, project, members)
	if err != nil && strategy == s.transactional && errors.Is(err, repositories.ErrTransactionsUnsupported) {
		logging.Logger.Warnf("Event ID: PROJECT_TX_UNSUPPORTED_FALLBACK, Description: Transactions unavailable, creating project '%s' without a transaction: %v", project.Name, err)
		strategy = s.bestEffort
		err = strategy.Persist(ctx, project, members)
	}
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_CREATE_FAILED, Description: Failed to create project '%s' (%s path): %v", project.Name, strategy.Name(), err)
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if strategy == s.bestEffort {
		logging.Logger.Warnf("Event ID: PROJECT_CREATED_BEST_EFFORT, Description: Project %s created without a transaction, %d membership updates applied", project.ID.Hex(), len(members))
	} else {
		logging.Logger.Infof("Event ID: PROJECT_CREATED_TRANSACTIONAL, Description: Project %s created, %d membership updates committed", project.ID.Hex(), len(members))
	}
	return project, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	id, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, invalid("Invalid project id")
	}
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Message: "Project not found"}
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.projects.List(ctx)
}
