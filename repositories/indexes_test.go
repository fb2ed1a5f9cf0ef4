package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func uniqueIndexes(models []mongo.IndexModel) []string {
	var names []string
	for _, m := range models {
		if m.Options != nil && m.Options.Unique != nil && *m.Options.Unique {
			names = append(names, *m.Options.Name)
		}
	}
	return names
}

func TestEmployeeIndexes_Unique(t *testing.T) {
	names := uniqueIndexes(employeeIndexes)
	require.Len(t, names, 2)
	assert.ElementsMatch(t, []string{"uniq_id", "uniq_email"}, names)
}

func TestAttendanceIndexes_OnePerDay(t *testing.T) {
	assert.Equal(t, []string{"uniq_employeeId_date"}, uniqueIndexes(attendanceIndexes))
}
