package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	ProjectYetToStart ProjectStatus = "Yet to Start"
	ProjectOngoing    ProjectStatus = "Ongoing"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectTerminated ProjectStatus = "Terminated"
)

// Team is embedded in a Project and is not addressable on its own.
// LeaderName and MembersNames are denormalized copies supplied by the caller;
// they are never re-read from the employee records and may drift.
type Team struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name         string               `bson:"name" json:"name"`
	LeaderID     primitive.ObjectID   `bson:"leaderId" json:"leaderId"`
	LeaderName   string               `bson:"leaderName" json:"leaderName"`
	Members      []primitive.ObjectID `bson:"members" json:"members"`
	MembersNames []string             `bson:"membersNames" json:"membersNames"`
}

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	ManagerID   primitive.ObjectID `bson:"managerId" json:"managerId"`
	ManagerName string             `bson:"managerName" json:"managerName"`
	// Manager mirrors ManagerName for records written before managerId existed.
	Manager     string        `bson:"manager,omitempty" json:"manager,omitempty"`
	Teams       []Team        `bson:"teams" json:"teams"`
	Description string        `bson:"description" json:"description"`
	Deadline    time.Time     `bson:"deadline" json:"deadline"`
	Status      ProjectStatus `bson:"status" json:"status"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}
