package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
)

func sessionsFixture() []model.ActivitySession {
	return []model.ActivitySession{
		{AppName: "Terminal", StartTime: 100, DurationSeconds: 300},
		{AppName: "code", StartTime: 300, DurationSeconds: 50},
		{AppName: "Browser", StartTime: 200, DurationSeconds: 900},
	}
}

func TestSortByTimeDescendingDefault(t *testing.T) {
	sessions := sessionsFixture()
	NewSessionSorter().Sort(sessions)

	assert.Equal(t, int64(300), sessions[0].StartTime)
	assert.Equal(t, int64(200), sessions[1].StartTime)
	assert.Equal(t, int64(100), sessions[2].StartTime)
}

func TestSortByDuration(t *testing.T) {
	sessions := sessionsFixture()
	sorter := NewSessionSorter()
	sorter.SetField(SortByDuration)
	sorter.Sort(sessions)

	assert.Equal(t, int64(900), sessions[0].DurationSeconds)
	assert.Equal(t, int64(50), sessions[2].DurationSeconds)
}

func TestSortByAppAscendingCaseInsensitive(t *testing.T) {
	sessions := sessionsFixture()
	sorter := NewSessionSorter()
	sorter.SetField(SortByApp)
	sorter.SetOrder(SortAscending)
	sorter.Sort(sessions)

	assert.Equal(t, "Browser", sessions[0].AppName)
	assert.Equal(t, "code", sessions[1].AppName)
	assert.Equal(t, "Terminal", sessions[2].AppName)
}
