// Package schedule собирает табель месяца из сырых записей
// групп/пользователей/смен. Агрегация чистая: одинаковый вход дает
// одинаковый выход, ничего не пишется в БД.
package schedule

import (
	"time"

	"github.com/evn/sop_backendl/internal/models"
)

// BuildTable строит строки табеля и карту смен для одного окна
// (команда, месяц, тип смены).
//
// Порядок строк: блоки групп идут в исходном порядке групп, внутри блока
// первым стоит старший группы (если назначен), остальные сохраняют порядок
// состава. Участник, которого нет среди users, молча пропускается.
func BuildTable(groups []models.Group, users []models.User, shifts []models.Shift, month time.Time) ([]models.ScheduleTableRow, models.ShiftsMap) {
	byID := make(map[int]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	rows := []models.ScheduleTableRow{}
	for _, g := range groups {
		block := make([]models.ScheduleTableRow, 0, len(g.MemberIDs))
		for _, memberID := range g.MemberIDs {
			u, ok := byID[memberID]
			if !ok {
				continue
			}
			block = append(block, models.ScheduleTableRow{
				ID:           u.ID,
				Name:         u.Name,
				Surname:      u.Surname,
				GroupID:      g.ID,
				TotalHours:   u.TotalHours,
				IsSupervisor: g.SupervisorID != 0 && u.ID == g.SupervisorID,
			})
		}
		rows = append(rows, stablePartition(block, func(r models.ScheduleTableRow) bool {
			return r.IsSupervisor
		})...)
	}

	return rows, buildShiftsMap(shifts, month)
}

// stablePartition переносит подходящие элементы в начало, не меняя
// относительный порядок остальных. Именно так гарантируется
// «старший первым» без опоры на стабильность сортировки.
func stablePartition(rows []models.ScheduleTableRow, match func(models.ScheduleTableRow) bool) []models.ScheduleTableRow {
	out := make([]models.ScheduleTableRow, 0, len(rows))
	for _, r := range rows {
		if match(r) {
			out = append(out, r)
		}
	}
	for _, r := range rows {
		if !match(r) {
			out = append(out, r)
		}
	}
	return out
}

func buildShiftsMap(shifts []models.Shift, month time.Time) models.ShiftsMap {
	shiftsMap := models.ShiftsMap{}
	for _, sh := range shifts {
		date, err := time.Parse("2006-01-02", sh.Date)
		if err != nil {
			continue
		}
		if date.Year() != month.Year() || date.Month() != month.Month() {
			continue
		}
		day := date.Day()
		if shiftsMap[sh.UserID] == nil {
			shiftsMap[sh.UserID] = map[int]models.Shift{}
		}
		// В ячейке не больше одной смены: первая по порядку выборки побеждает
		if _, exists := shiftsMap[sh.UserID][day]; exists {
			continue
		}
		shiftsMap[sh.UserID][day] = sh
	}
	return shiftsMap
}

// ParseMonth разбирает месяц вида "2025-03" в первое число месяца.
func ParseMonth(raw string) (time.Time, error) {
	return time.Parse("2006-01", raw)
}

func DaysInMonth(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}
