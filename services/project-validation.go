package services

import (
	"bytes"
	"encoding/json"
	"time"

	"ems-project/backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateProjectInput is the create-project request body. Teams and the
// per-team id/name lists stay raw until validation so that a value of the
// wrong shape is reported with its own message instead of failing decode.
type CreateProjectInput struct {
	Name        string          `json:"name"`
	ManagerID   string          `json:"managerId"`
	ManagerName string          `json:"managerName"`
	Description string          `json:"description"`
	Deadline    string          `json:"deadline"`
	Teams       json.RawMessage `json:"teams"`
}

type TeamInput struct {
	Name         string          `json:"name"`
	LeaderID     string          `json:"leaderId"`
	LeaderName   string          `json:"leaderName"`
	Members      json.RawMessage `json:"members"`
	MembersNames json.RawMessage `json:"membersNames"`
}

const (
	msgMissingFields       = "Missing required fields"
	msgInvalidManagerID    = "Invalid manager id"
	msgTeamsRequired       = "Teams are required"
	msgTeamNameRequired    = "Team name is required"
	msgTeamLeaderRequired  = "Valid team leader is required"
	msgLeaderNameRequired  = "Team leader name is required"
	msgMembersNotArray     = "Team members must be an array"
	msgMemberNamesNotArray = "Team member names must be an array"
	msgInvalidMemberID     = "Invalid team member id"
	msgInvalidDeadline     = "Invalid deadline"
)

// validate checks the input in a fixed order and returns the first failure:
// required top-level fields, then the manager id format, then each team in
// sequence order. On success it returns the project document to persist.
func (in *CreateProjectInput) validate() (*models.Project, error) {
	if in.Name == "" || in.ManagerID == "" || in.ManagerName == "" || in.Deadline == "" {
		return nil, invalid(msgMissingFields)
	}

	managerID, err := primitive.ObjectIDFromHex(in.ManagerID)
	if err != nil {
		return nil, invalid(msgInvalidManagerID)
	}

	teams, err := validateTeams(in.Teams)
	if err != nil {
		return nil, err
	}

	deadline, ok := parseDate(in.Deadline)
	if !ok {
		return nil, invalid(msgInvalidDeadline)
	}

	return &models.Project{
		Name:        in.Name,
		ManagerID:   managerID,
		ManagerName: in.ManagerName,
		Manager:     in.ManagerName,
		Teams:       teams,
		Description: in.Description,
		Deadline:    deadline,
		Status:      models.ProjectYetToStart,
	}, nil
}

func validateTeams(raw json.RawMessage) ([]models.Team, error) {
	elems, ok := rawArray(raw)
	if !ok || len(elems) == 0 {
		return nil, invalid(msgTeamsRequired)
	}

	teams := make([]models.Team, 0, len(elems))
	for _, elem := range elems {
		var in TeamInput
		if err := json.Unmarshal(elem, &in); err != nil {
			in = TeamInput{}
		}

		if in.Name == "" {
			return nil, invalid(msgTeamNameRequired)
		}
		leaderID, err := primitive.ObjectIDFromHex(in.LeaderID)
		if in.LeaderID == "" || err != nil {
			return nil, invalid(msgTeamLeaderRequired)
		}
		if in.LeaderName == "" {
			return nil, invalid(msgLeaderNameRequired)
		}
		memberElems, ok := rawArray(in.Members)
		if !ok {
			return nil, invalid(msgMembersNotArray)
		}
		nameElems, ok := rawArray(in.MembersNames)
		if !ok {
			return nil, invalid(msgMemberNamesNotArray)
		}

		members := make([]primitive.ObjectID, 0, len(memberElems))
		for _, m := range memberElems {
			var hex string
			if err := json.Unmarshal(m, &hex); err != nil {
				return nil, invalid(msgInvalidMemberID)
			}
			id, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				return nil, invalid(msgInvalidMemberID)
			}
			members = append(members, id)
		}

		names := make([]string, 0, len(nameElems))
		for _, n := range nameElems {
			names = append(names, jsonText(n))
		}

		teams = append(teams, models.Team{
			ID:           primitive.NewObjectID(),
			Name:         in.Name,
			LeaderID:     leaderID,
			LeaderName:   in.LeaderName,
			Members:      members,
			MembersNames: names,
		})
	}
	return teams, nil
}

// rawArray reports whether raw is a JSON array and returns its elements.
func rawArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, false
	}
	return elems, true
}

// jsonText renders a JSON scalar as a plain string; null becomes "".
func jsonText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	trimmed := string(bytes.TrimSpace(raw))
	if trimmed == "null" {
		return ""
	}
	return trimmed
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
