package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/evn/sop_backendl/internal/models"
)

type ScheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// GetScheduleData загружает сырье для агрегатора: группы команды,
// пользователей с насчитанными часами и смены окна (месяц, тип).
// Состав групп (MemberIDs) заполняется в порядке выборки пользователей.
func (r *ScheduleRepository) GetScheduleData(teamID int, monthStart time.Time, shiftType string) ([]models.Group, []models.User, []models.Shift, error) {
	monthEnd := monthStart.AddDate(0, 1, 0)

	groups, err := r.getTeamGroups(teamID)
	if err != nil {
		return nil, nil, nil, err
	}

	users, err := r.getTeamUsers(teamID, monthStart, monthEnd, shiftType)
	if err != nil {
		return nil, nil, nil, err
	}

	byGroup := make(map[int]int, len(groups))
	for i := range groups {
		byGroup[groups[i].ID] = i
	}
	for _, u := range users {
		if i, ok := byGroup[u.GroupID]; ok {
			groups[i].MemberIDs = append(groups[i].MemberIDs, u.ID)
		}
	}

	shifts, err := r.getMonthShifts(teamID, monthStart, monthEnd, shiftType)
	if err != nil {
		return nil, nil, nil, err
	}

	return groups, users, shifts, nil
}

func (r *ScheduleRepository) getTeamGroups(teamID int) ([]models.Group, error) {
	rows, err := r.db.Query(`
		SELECT id, team_id, name, COALESCE(supervisor_id, 0)
		FROM groups
		WHERE team_id = $1
		ORDER BY sort_order, id
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки групп: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.TeamID, &g.Name, &g.SupervisorID); err != nil {
			return nil, fmt.Errorf("ошибка чтения группы: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *ScheduleRepository) getTeamUsers(teamID int, monthStart, monthEnd time.Time, shiftType string) ([]models.User, error) {
	rows, err := r.db.Query(`
		SELECT u.id, u.name, u.surname, COALESCE(u.group_id, 0),
		       COALESCE(SUM(us.duration) FILTER (
		           WHERE us.status = 'approved' AND us.is_active
		             AND s.shift_type = $4
		             AND s.shift_date >= $2 AND s.shift_date < $3
		       ), 0) AS total_hours
		FROM users u
		JOIN groups g ON g.id = u.group_id
		LEFT JOIN user_shifts us ON us.user_id = u.id
		LEFT JOIN shifts s ON s.id = us.shift_id
		WHERE g.team_id = $1
		GROUP BY u.id
		ORDER BY u.sort_order, u.id
	`, teamID, monthStart, monthEnd, shiftType)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки пользователей: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Surname, &u.GroupID, &u.TotalHours); err != nil {
			return nil, fmt.Errorf("ошибка чтения пользователя: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *ScheduleRepository) getMonthShifts(teamID int, monthStart, monthEnd time.Time, shiftType string) ([]models.Shift, error) {
	rows, err := r.db.Query(`
		SELECT us.id, us.shift_id, us.user_id, s.shift_date, us.duration, us.status, us.is_active
		FROM user_shifts us
		JOIN shifts s ON s.id = us.shift_id
		JOIN users u ON u.id = us.user_id
		JOIN groups g ON g.id = u.group_id
		WHERE g.team_id = $1
		  AND s.shift_type = $2
		  AND s.shift_date >= $3 AND s.shift_date < $4
		  AND us.is_active
		ORDER BY s.shift_date, us.id
	`, teamID, shiftType, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки смен: %w", err)
	}
	defer rows.Close()

	var shifts []models.Shift
	for rows.Next() {
		var sh models.Shift
		var date time.Time
		if err := rows.Scan(&sh.UserShiftID, &sh.ID, &sh.UserID, &date, &sh.Duration, &sh.Status, &sh.IsActive); err != nil {
			return nil, fmt.Errorf("ошибка чтения смены: %w", err)
		}
		sh.Date = date.Format("2006-01-02")
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}
