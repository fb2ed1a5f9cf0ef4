package services

import (
	"context"
	"errors"

	"ems-project/backend/logging"
	"ems-project/backend/models"
	"ems-project/backend/repositories"
	"ems-project/backend/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
	FindByObjectID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
}

type AuthService struct {
	store      CredentialStore
	tokens     *utils.TokenIssuer
	adminEmail string
}

func NewAuthService(store CredentialStore, tokens *utils.TokenIssuer, adminEmail string) *AuthService {
	return &AuthService{store: store, tokens: tokens, adminEmail: adminEmail}
}

type LoginResult struct {
	Token      string
	Employee   *models.Employee
	Role       string
	EmployeeID int64
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, invalid(msgMissingFields)
	}

	employee, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logging.Logger.Warnf("Event ID: LOGIN_UNKNOWN_USER, Description: Login attempt for unknown email %s", email)
			return nil, &AuthError{Message: "User not found"}
		}
		return nil, err
	}
	if employee.Password == "" || !utils.CheckPassword(employee.Password, password) {
		logging.Logger.Warnf("Event ID: LOGIN_WRONG_PASSWORD, Description: Wrong password for %s", email)
		return nil, &AuthError{Message: "Wrong password"}
	}

	role := employee.DerivedRole(s.adminEmail)
	token, err := s.tokens.GenerateToken(utils.Claims{
		ID:         employee.ObjectID.Hex(),
		Email:      employee.Email,
		Name:       employee.FirstName,
		Role:       role,
		EmployeeID: employee.ID,
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: LOGIN_SUCCESS, Description: %s logged in as %s", email, role)
	return &LoginResult{Token: token, Employee: employee, Role: role, EmployeeID: employee.ID}, nil
}

type Profile struct {
	ID          string `json:"id"`
	EmployeeID  int64  `json:"employeeId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	CurrentRole string `json:"current_role"`
	Department  string `json:"department"`
	Photo       string `json:"photo"`
}

// Me returns the profile behind the session claims.
func (s *AuthService) Me(ctx context.Context, claims *utils.Claims) (*Profile, error) {
	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &NotFoundError{Message: "User not found"}
	}
	employee, err := s.store.FindByObjectID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Message: "User not found"}
		}
		return nil, err
	}
	return &Profile{
		ID:          employee.ObjectID.Hex(),
		EmployeeID:  employee.ID,
		Name:        employee.FullName(),
		Email:       employee.Email,
		Role:        employee.DerivedRole(s.adminEmail),
		CurrentRole: employee.CurrentRole,
		Department:  employee.Department,
		Photo:       employee.Photo,
	}, nil
}

func (s *AuthService) Tokens() *utils.TokenIssuer { return s.tokens }
