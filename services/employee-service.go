package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ems-project/backend/logging"
	"ems-project/backend/models"
	"ems-project/backend/repositories"
	"ems-project/backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmployeeStore interface {
	FindByObjectID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	FindBySeqID(ctx context.Context, id int64) (*models.Employee, error)
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, id int64, fields bson.M) (*models.Employee, error)
	DeleteBySeqID(ctx context.Context, id int64) error
}

type EmployeeService struct {
	store EmployeeStore
}

func NewEmployeeService(store EmployeeStore) *EmployeeService {
	return &EmployeeService{store: store}
}

// editableFields maps request keys to stored fields an HR edit may change.
// Identity fields and project membership are deliberately absent.
var editableFields = map[string]string{
	"first_name":            "first_name",
	"last_name":             "last_name",
	"email":                 "email",
	"phone_number":          "phone_number",
	"address":               "address",
	"photo":                 "photo",
	"skills":                "skills",
	"highest_qualification": "highest_qualification",
	"university":            "university",
	"year_of_graduation":    "year_of_graduation",
	"percentage":            "percentage",
	"previous_employer":     "previous_employer",
	"years_of_experience":   "years_of_experience",
	"previous_role":         "previous_role",
	"access_role":           "access_role",
	"current_role":          "current_role",
	"department":            "department",
	"status":                "status",
	"bank_name":             "bank_name",
	"account_number":        "account_number",
	"ifsc_code":             "ifsc_code",
}

var dateFields = map[string]bool{"DoB": true, "joining_date": true}

// msgDuplicateEmail is returned for any unique-index clash on employees;
// the email index is the only one a create or edit can hit.
const msgDuplicateEmail = "Employee with this email already exists"

func ParseEmployeeID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid("Invalid employee id")
	}
	return id, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.store.List(ctx)
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	employee, err := s.store.FindBySeqID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Message: "Employee not found"}
		}
		return nil, err
	}
	return employee, nil
}

type CreateEmployeeInput struct {
	models.Employee
	Password string `json:"password"`
	DoB      string `json:"DoB"`
	Joining  string `json:"joining_date"`
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*models.Employee, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return nil, invalid(msgMissingFields)
	}
	if _, err := s.store.FindByEmail(ctx, in.Email); err == nil {
		return nil, &ConflictError{Message: msgDuplicateEmail}
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	employee := in.Employee
	employee.ObjectID = primitive.NilObjectID
	employee.ID = 0
	employee.Projects = models.EmployeeProjects{ProjectIDs: []string{}}
	if employee.Status == "" {
		employee.Status = "Active"
	}
	if in.DoB != "" {
		dob, ok := parseDate(in.DoB)
		if !ok {
			return nil, invalid("Invalid date of birth")
		}
		employee.DoB = dob
	}
	if in.Joining != "" {
		joined, ok := parseDate(in.Joining)
		if !ok {
			return nil, invalid("Invalid joining date")
		}
		employee.JoiningDate = joined
	} else {
		employee.JoiningDate = time.Now().UTC()
	}
	if in.Password != "" {
		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		employee.Password = hash
	}

	if err := s.store.Create(ctx, &employee); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, &ConflictError{Message: msgDuplicateEmail}
		}
		return nil, err
	}
	logging.Logger.Infof("Event ID: EMPLOYEE_CREATED, Description: Employee %d (%s) created", employee.ID, employee.Email)
	return &employee, nil
}

// UpdateEmployee applies an HR edit. Unknown keys are ignored; a password
// key is re-hashed before it is stored.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int64, changes map[string]interface{}) (*models.Employee, error) {
	set := bson.M{}
	for key, value := range changes {
		switch {
		case editableFields[key] != "":
			set[editableFields[key]] = value
		case dateFields[key]:
			str, _ := value.(string)
			t, ok := parseDate(str)
			if !ok {
				return nil, invalid("Invalid %s", key)
			}
			set[key] = t
		case key == "password":
			str, _ := value.(string)
			if str == "" {
				return nil, invalid("Invalid password")
			}
			hash, err := utils.HashPassword(str)
			if err != nil {
				return nil, err
			}
			set["password"] = hash
		}
	}
	if len(set) == 0 {
		return nil, invalid("No editable fields supplied")
	}

	employee, err := s.store.Update(ctx, id, set)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, &NotFoundError{Message: "Employee not found"}
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, &ConflictError{Message: msgDuplicateEmail}
		}
		return nil, fmt.Errorf("failed to update employee %d: %w", id, err)
	}
	return employee, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id int64) error {
	if err := s.store.DeleteBySeqID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &NotFoundError{Message: "Employee not found"}
		}
		return err
	}
	logging.Logger.Infof("Event ID: EMPLOYEE_DELETED, Description: Employee %d deleted", id)
	return nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist yet.
func (s *EmployeeService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	_, err := s.CreateEmployee(ctx, CreateEmployeeInput{
		Employee: models.Employee{
			FirstName:  "Admin",
			LastName:   "User",
			Email:      email,
			AccessRole: models.RoleAdmin,
		},
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	logging.Logger.Infof("Event ID: ADMIN_SEEDED, Description: Admin account %s created", email)
	return nil
}
