package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var LeaveTypes = []string{"Annual", "Sick", "Casual", "Unpaid", "Other"}

const (
	LeavePending  = "Pending"
	LeaveApproved = "Approved"
	LeaveRejected = "Rejected"
)

var LeaveStatuses = []string{LeavePending, LeaveApproved, LeaveRejected}

type Leave struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	EmployeeID   int64              `bson:"employeeId" json:"employeeId"`
	EmployeeName string             `bson:"employeeName" json:"employeeName"`
	LeaveType    string             `bson:"leaveType" json:"leaveType"`
	StartDate    time.Time          `bson:"startDate" json:"startDate"`
	EndDate      time.Time          `bson:"endDate" json:"endDate"`
	Reason       string             `bson:"reason" json:"reason"`
	Status       string             `bson:"status" json:"status"`
	ApproverNote string             `bson:"approverNote" json:"approverNote"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
