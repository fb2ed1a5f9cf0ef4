package services

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strconv"

	"ems-project/backend/models"
	"ems-project/backend/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeaveStore interface {
	Create(ctx context.Context, leave *models.Leave) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Leave, error)
	List(ctx context.Context, f repositories.LeaveFilter) ([]models.Leave, error)
	Save(ctx context.Context, leave *models.Leave) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// EmployeeLookup resolves employees by their numeric sequence id.
type EmployeeLookup interface {
	FindBySeqID(ctx context.Context, id int64) (*models.Employee, error)
}

type LeaveService struct {
	leaves    LeaveStore
	employees EmployeeLookup
}

func NewLeaveService(leaves LeaveStore, employees EmployeeLookup) *LeaveService {
	return &LeaveService{leaves: leaves, employees: employees}
}

type CreateLeaveInput struct {
	EmployeeID json.Number `json:"employeeId"`
	LeaveType  string      `json:"leaveType"`
	StartDate  string      `json:"startDate"`
	EndDate    string      `json:"endDate"`
	Reason     string      `json:"reason"`
}

type UpdateLeaveInput struct {
	LeaveType    string  `json:"leaveType"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Reason       *string `json:"reason"`
	Status       string  `json:"status"`
	ApproverNote *string `json:"approverNote"`
}

type LeaveQuery struct {
	Status     string
	EmployeeID string
	From       string
	To         string
}

var leaveApprovers = []string{models.RoleAdmin, models.RoleManager}

func (s *LeaveService) CreateLeave(ctx context.Context, in CreateLeaveInput) (*models.Leave, error) {
	if in.EmployeeID == "" || in.LeaveType == "" || in.StartDate == "" || in.EndDate == "" {
		return nil, invalid(msgMissingFields)
	}
	if !slices.Contains(models.LeaveTypes, in.LeaveType) {
		return nil, invalid("Invalid leave type")
	}
	start, okStart := parseDate(in.StartDate)
	end, okEnd := parseDate(in.EndDate)
	if !okStart || !okEnd {
		return nil, invalid("Invalid date range")
	}
	if start.After(end) {
		return nil, invalid("Start date must be before end date")
	}

	employee, err := resolveEmployee(ctx, s.employees, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	leave := &models.Leave{
		EmployeeID:   employee.ID,
		EmployeeName: employee.FullName(),
		LeaveType:    in.LeaveType,
		StartDate:    start,
		EndDate:      end,
		Reason:       in.Reason,
		Status:       models.LeavePending,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

// ListLeaves ignores filter values that do not parse, matching the lenient
// query handling of the listing screens.
func (s *LeaveService) ListLeaves(ctx context.Context, q LeaveQuery) ([]models.Leave, error) {
	var f repositories.LeaveFilter
	if slices.Contains(models.LeaveStatuses, q.Status) {
		f.Status = q.Status
	}
	if id, err := strconv.ParseInt(q.EmployeeID, 10, 64); err == nil {
		f.EmployeeID = &id
	}
	if from, ok := parseDate(q.From); ok {
		f.From = &from
	}
	if to, ok := parseDate(q.To); ok {
		f.To = &to
	}
	return s.leaves.List(ctx, f)
}

func (s *LeaveService) GetLeave(ctx context.Context, id string) (*models.Leave, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, invalid("Invalid leave id")
	}
	leave, err := s.leaves.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Message: "Leave request not found"}
		}
		return nil, err
	}
	return leave, nil
}

// UpdateLeave edits a request. Only Admin and Manager callers may change its status.
func (s *LeaveService) UpdateLeave(ctx context.Context, id string, in UpdateLeaveInput, callerRole string) (*models.Leave, error) {
	leave, err := s.GetLeave(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != "" && !slices.Contains(leaveApprovers, callerRole) {
		return nil, &ForbiddenError{Message: "Only admin or manager can approve or reject leave"}
	}

	if in.LeaveType != "" {
		if !slices.Contains(models.LeaveTypes, in.LeaveType) {
			return nil, invalid("Invalid leave type")
		}
		leave.LeaveType = in.LeaveType
	}
	if in.StartDate != "" {
		start, ok := parseDate(in.StartDate)
		if !ok {
			return nil, invalid("Invalid start date")
		}
		leave.StartDate = start
	}
	if in.EndDate != "" {
		end, ok := parseDate(in.EndDate)
		if !ok {
			return nil, invalid("Invalid end date")
		}
		leave.EndDate = end
	}
	if leave.StartDate.After(leave.EndDate) {
		return nil, invalid("Start date must be before end date")
	}
	if in.Reason != nil {
		leave.Reason = *in.Reason
	}
	if in.Status != "" {
		if !slices.Contains(models.LeaveStatuses, in.Status) {
			return nil, invalid("Invalid status")
		}
		leave.Status = in.Status
	}
	if in.ApproverNote != nil {
		leave.ApproverNote = *in.ApproverNote
	}

	if err := s.leaves.Save(ctx, leave); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Message: "Leave request not found"}
		}
		return nil, err
	}
	return leave, nil
}

func (s *LeaveService) DeleteLeave(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return invalid("Invalid leave id")
	}
	if err := s.leaves.Delete(ctx, oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &NotFoundError{Message: "Leave request not found"}
		}
		return err
	}
	return nil
}

func resolveEmployee(ctx context.Context, employees EmployeeLookup, raw json.Number) (*models.Employee, error) {
	id, err := raw.Int64()
	if err != nil {
		return nil, invalid("Invalid employee id")
	}
	employee, err := employees.FindBySeqID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Message: "Employee not found"}
		}
		return nil, err
	}
	return employee, nil
}
