package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var AttendanceStatuses = []string{"Present", "Absent", "Leave", "Half Day", "WFH"}

type Attendance struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	EmployeeID   int64              `bson:"employeeId" json:"employeeId"`
	EmployeeName string             `bson:"employeeName" json:"employeeName"`
	Date         time.Time          `bson:"date" json:"date"`
	Status       string             `bson:"status" json:"status"`
	CheckIn      string             `bson:"checkIn" json:"checkIn"`
	CheckOut     string             `bson:"checkOut" json:"checkOut"`
	Notes        string             `bson:"notes" json:"notes"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
