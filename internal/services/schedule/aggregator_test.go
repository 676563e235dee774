package schedule_test

import (
	"testing"
	"time"

	"github.com/evn/sop_backendl/internal/models"
	"github.com/evn/sop_backendl/internal/services/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(t *testing.T, raw string) time.Time {
	t.Helper()
	m, err := schedule.ParseMonth(raw)
	require.NoError(t, err)
	return m
}

func TestBuildTable_SupervisorFirst(t *testing.T) {
	groups := []models.Group{
		{ID: 1, Name: "G1", SupervisorID: 2, MemberIDs: []int{1, 2, 3}},
	}
	users := []models.User{
		{ID: 1, Name: "A", GroupID: 1},
		{ID: 2, Name: "B", GroupID: 1},
		{ID: 3, Name: "C", GroupID: 1},
	}

	rows, _ := schedule.BuildTable(groups, users, nil, month(t, "2025-03"))

	require.Len(t, rows, 3)
	assert.Equal(t, []int{2, 1, 3}, []int{rows[0].ID, rows[1].ID, rows[2].ID})
	assert.True(t, rows[0].IsSupervisor)
	assert.False(t, rows[1].IsSupervisor)
	assert.False(t, rows[2].IsSupervisor)
}

func TestBuildTable_KeepsMemberOrderWithinAndAcrossGroups(t *testing.T) {
	groups := []models.Group{
		{ID: 1, Name: "G1", SupervisorID: 0, MemberIDs: []int{5, 4}},
		{ID: 2, Name: "G2", SupervisorID: 7, MemberIDs: []int{6, 7, 8}},
	}
	users := []models.User{
		{ID: 4, GroupID: 1}, {ID: 5, GroupID: 1},
		{ID: 6, GroupID: 2}, {ID: 7, GroupID: 2}, {ID: 8, GroupID: 2},
	}

	rows, _ := schedule.BuildTable(groups, users, nil, month(t, "2025-03"))

	got := make([]int, len(rows))
	for i, r := range rows {
		got[i] = r.ID
	}
	// G1 without supervisor keeps input order, G2 moves 7 ahead of 6 and 8
	assert.Equal(t, []int{5, 4, 7, 6, 8}, got)
}

func TestBuildTable_SkipsUnknownMembers(t *testing.T) {
	groups := []models.Group{
		{ID: 1, Name: "G1", MemberIDs: []int{1, 99, 2}},
	}
	users := []models.User{
		{ID: 1, GroupID: 1},
		{ID: 2, GroupID: 1},
	}

	rows, _ := schedule.BuildTable(groups, users, nil, month(t, "2025-03"))

	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].ID)
	assert.Equal(t, 2, rows[1].ID)
}

func TestBuildTable_ShiftsMapOneShiftPerCell(t *testing.T) {
	groups := []models.Group{{ID: 1, MemberIDs: []int{1}}}
	users := []models.User{{ID: 1, GroupID: 1}}
	shifts := []models.Shift{
		{UserShiftID: 10, ID: 100, UserID: 1, Date: "2025-03-05", Duration: 8, Status: models.StatusApproved, IsActive: true},
		{UserShiftID: 11, ID: 101, UserID: 1, Date: "2025-03-05", Duration: 12, Status: models.StatusApproved, IsActive: true},
		{UserShiftID: 12, ID: 102, UserID: 1, Date: "2025-04-01", Duration: 8, Status: models.StatusApproved, IsActive: true},
	}

	_, shiftsMap := schedule.BuildTable(groups, users, shifts, month(t, "2025-03"))

	require.Len(t, shiftsMap[1], 1)
	assert.Equal(t, 10, shiftsMap[1][5].UserShiftID, "первая смена в ячейке побеждает")
	_, ok := shiftsMap[1][1]
	assert.False(t, ok, "смены другого месяца не попадают в карту")
}

func TestBuildTable_Deterministic(t *testing.T) {
	groups := []models.Group{{ID: 1, SupervisorID: 2, MemberIDs: []int{1, 2, 3}}}
	users := []models.User{{ID: 1, GroupID: 1}, {ID: 2, GroupID: 1}, {ID: 3, GroupID: 1}}
	shifts := []models.Shift{
		{UserShiftID: 1, UserID: 1, Date: "2025-03-10", Duration: 12, Status: models.StatusApproved, IsActive: true},
	}

	rowsA, mapA := schedule.BuildTable(groups, users, shifts, month(t, "2025-03"))
	rowsB, mapB := schedule.BuildTable(groups, users, shifts, month(t, "2025-03"))

	assert.Equal(t, rowsA, rowsB)
	assert.Equal(t, mapA, mapB)
}

// Сквозной пример: группа [A,B,C] со старшим B, заявка A на 2025-03-10
// после подтверждения видна в ячейке (A, 10).
func TestBuildTable_MonthExample(t *testing.T) {
	groups := []models.Group{
		{ID: 1, Name: "G1", SupervisorID: 2, MemberIDs: []int{1, 2, 3}},
	}
	users := []models.User{
		{ID: 1, Name: "A", Surname: "AA", GroupID: 1, TotalHours: 12},
		{ID: 2, Name: "B", Surname: "BB", GroupID: 1},
		{ID: 3, Name: "C", Surname: "CC", GroupID: 1},
	}
	shifts := []models.Shift{
		{UserShiftID: 55, ID: 500, UserID: 1, Date: "2025-03-10", Duration: 12, Status: models.StatusApproved, IsActive: true},
	}

	rows, shiftsMap := schedule.BuildTable(groups, users, shifts, month(t, "2025-03"))

	require.Len(t, rows, 3)
	assert.Equal(t, "B", rows[0].Name)
	assert.Equal(t, "A", rows[1].Name)
	assert.Equal(t, "C", rows[2].Name)

	cell, ok := shiftsMap[1][10]
	require.True(t, ok)
	assert.Equal(t, "2025-03-10", cell.Date)
	assert.Equal(t, 12, cell.Duration)
	assert.Equal(t, models.StatusApproved, cell.Status)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, schedule.DaysInMonth(month(t, "2025-03")))
	assert.Equal(t, 28, schedule.DaysInMonth(month(t, "2025-02")))
	assert.Equal(t, 29, schedule.DaysInMonth(month(t, "2024-02")))
	assert.Equal(t, 30, schedule.DaysInMonth(month(t, "2025-04")))
}
