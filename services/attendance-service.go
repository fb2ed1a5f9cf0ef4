package services

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strconv"
	"time"

	"ems-project/backend/models"
	"ems-project/backend/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AttendanceStore interface {
	Create(ctx context.Context, record *models.Attendance) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Attendance, error)
	List(ctx context.Context, f repositories.AttendanceFilter) ([]models.Attendance, error)
	Save(ctx context.Context, record *models.Attendance) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type AttendanceService struct {
	records   AttendanceStore
	employees EmployeeLookup
}

func NewAttendanceService(records AttendanceStore, employees EmployeeLookup) *AttendanceService {
	return &AttendanceService{records: records, employees: employees}
}

type CreateAttendanceInput struct {
	EmployeeID json.Number `json:"employeeId"`
	Date       string      `json:"date"`
	Status     string      `json:"status"`
	CheckIn    string      `json:"checkIn"`
	CheckOut   string      `json:"checkOut"`
	Notes      string      `json:"notes"`
}

type UpdateAttendanceInput struct {
	Status   string  `json:"status"`
	CheckIn  *string `json:"checkIn"`
	CheckOut *string `json:"checkOut"`
	Notes    *string `json:"notes"`
}

type AttendanceQuery struct {
	Status     string
	EmployeeID string
	Date       string
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CreateAttendance records one employee's status for a day. The date is
// normalized to midnight UTC so the (employee, date) pair is unique per day.
func (s *AttendanceService) CreateAttendance(ctx context.Context, in CreateAttendanceInput) (*models.Attendance, error) {
	if in.EmployeeID == "" || in.Date == "" || in.Status == "" {
		return nil, invalid(msgMissingFields)
	}
	if !slices.Contains(models.AttendanceStatuses, in.Status) {
		return nil, invalid("Invalid status")
	}
	date, ok := parseDate(in.Date)
	if !ok {
		return nil, invalid("Invalid date")
	}

	employee, err := resolveEmployee(ctx, s.employees, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	record := &models.Attendance{
		EmployeeID:   employee.ID,
		EmployeeName: employee.FullName(),
		Date:         startOfDay(date),
		Status:       in.Status,
		CheckIn:      in.CheckIn,
		CheckOut:     in.CheckOut,
		Notes:        in.Notes,
	}
	if err := s.records.Create(ctx, record); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, &ConflictError{Message: "Attendance already exists for this employee and date"}
		}
		return nil, err
	}
	return record, nil
}

func (s *AttendanceService) ListAttendance(ctx context.Context, q AttendanceQuery) ([]models.Attendance, error) {
	var f repositories.AttendanceFilter
	if slices.Contains(models.AttendanceStatuses, q.Status) {
		f.Status = q.Status
	}
	if id, err := strconv.ParseInt(q.EmployeeID, 10, 64); err == nil {
		f.EmployeeID = &id
	}
	if day, ok := parseDate(q.Date); ok {
		day = startOfDay(day)
		f.Day = &day
	}
	return s.records.List(ctx, f)
}

func (s *AttendanceService) GetAttendance(ctx context.Context, id string) (*models.Attendance, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, invalid("Invalid attendance id")
	}
	record, err := s.records.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Message: "Attendance record not found"}
		}
		return nil, err
	}
	return record, nil
}

func (s *AttendanceService) UpdateAttendance(ctx context.Context, id string, in UpdateAttendanceInput) (*models.Attendance, error) {
	record, err := s.GetAttendance(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Status != "" {
		if !slices.Contains(models.AttendanceStatuses, in.Status) {
			return nil, invalid("Invalid status")
		}
		record.Status = in.Status
	}
	if in.CheckIn != nil {
		record.CheckIn = *in.CheckIn
	}
	if in.CheckOut != nil {
		record.CheckOut = *in.CheckOut
	}
	if in.Notes != nil {
		record.Notes = *in.Notes
	}
	if err := s.records.Save(ctx, record); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Message: "Attendance record not found"}
		}
		return nil, err
	}
	return record, nil
}

func (s *AttendanceService) DeleteAttendance(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return invalid("Invalid attendance id")
	}
	if err := s.records.Delete(ctx, oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &NotFoundError{Message: "Attendance record not found"}
		}
		return err
	}
	return nil
}
