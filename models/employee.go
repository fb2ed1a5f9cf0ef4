package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

// EmployeeProjects is the membership set written by project creation.
// It is stored as {projects: {projectId: [...]}} so $addToSet targets "projects.projectId".
type EmployeeProjects struct {
	ProjectIDs []string `bson:"projectId" json:"projectId"`
}

type Employee struct {
	ObjectID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ID       int64              `bson:"id" json:"id"`

	FirstName   string    `bson:"first_name" json:"first_name"`
	LastName    string    `bson:"last_name" json:"last_name"`
	DoB         time.Time `bson:"DoB,omitempty" json:"DoB,omitempty"`
	Email       string    `bson:"email" json:"email"`
	Password    string    `bson:"password,omitempty" json:"-"`
	PhoneNumber string    `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	Photo       string    `bson:"photo,omitempty" json:"photo,omitempty"`
	Skills      []string  `bson:"skills,omitempty" json:"skills,omitempty"`

	HighestQualification string  `bson:"highest_qualification,omitempty" json:"highest_qualification,omitempty"`
	University           string  `bson:"university,omitempty" json:"university,omitempty"`
	YearOfGraduation     int     `bson:"year_of_graduation,omitempty" json:"year_of_graduation,omitempty"`
	Percentage           float64 `bson:"percentage,omitempty" json:"percentage,omitempty"`

	PreviousEmployer  string  `bson:"previous_employer,omitempty" json:"previous_employer,omitempty"`
	YearsOfExperience float64 `bson:"years_of_experience,omitempty" json:"years_of_experience,omitempty"`
	PreviousRole      string  `bson:"previous_role,omitempty" json:"previous_role,omitempty"`

	AccessRole  string    `bson:"access_role,omitempty" json:"access_role,omitempty"`
	CurrentRole string    `bson:"current_role,omitempty" json:"current_role,omitempty"`
	Department  string    `bson:"department,omitempty" json:"department,omitempty"`
	JoiningDate time.Time `bson:"joining_date,omitempty" json:"joining_date,omitempty"`
	Status      string    `bson:"status,omitempty" json:"status,omitempty"`

	BankName      string `bson:"bank_name,omitempty" json:"bank_name,omitempty"`
	AccountNumber string `bson:"account_number,omitempty" json:"account_number,omitempty"`
	IFSCCode      string `bson:"ifsc_code,omitempty" json:"ifsc_code,omitempty"`

	Projects EmployeeProjects `bson:"projects" json:"projects"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// DerivedRole resolves the access role used for authorization.
// An explicit access_role wins; otherwise the configured admin email maps to Admin
// and a current_role of "Manager" maps to Manager.
func (e *Employee) DerivedRole(adminEmail string) string {
	switch {
	case e.AccessRole != "":
		return e.AccessRole
	case adminEmail != "" && e.Email == adminEmail:
		return RoleAdmin
	case e.CurrentRole == RoleManager:
		return RoleManager
	default:
		return RoleEmployee
	}
}

// HasProject reports whether projectID is in the membership set.
func (e *Employee) HasProject(projectID string) bool {
	for _, id := range e.Projects.ProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}

type Counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}
