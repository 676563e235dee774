package schedule

import (
	"fmt"
	"time"

	"github.com/evn/sop_backendl/internal/models"
	"github.com/xuri/excelize/v2"
)

// BuildWorkbook собирает xlsx-табель: строка на сотрудника, колонка на день,
// в ячейке длительность смены, последняя колонка — часы за месяц.
func BuildWorkbook(rows []models.ScheduleTableRow, shifts models.ShiftsMap, month time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	days := DaysInMonth(month)

	header := []interface{}{"Сотрудник", "Группа"}
	for day := 1; day <= days; day++ {
		header = append(header, day)
	}
	header = append(header, "Часы")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("ошибка записи заголовка: %w", err)
	}

	for i, row := range rows {
		name := row.Surname + " " + row.Name
		if row.IsSupervisor {
			name += " (старший)"
		}
		line := []interface{}{name, row.GroupID}
		for day := 1; day <= days; day++ {
			if sh, ok := shifts[row.ID][day]; ok && sh.Status == models.StatusApproved {
				line = append(line, sh.Duration)
			} else {
				line = append(line, "")
			}
		}
		line = append(line, row.TotalHours)
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return nil, fmt.Errorf("ошибка записи строки табеля: %w", err)
		}
	}

	return f, nil
}

// GridValues возвращает тот же табель в виде матрицы значений,
// пригодной для выгрузки в Google Sheets.
func GridValues(rows []models.ScheduleTableRow, shifts models.ShiftsMap, month time.Time) [][]interface{} {
	days := DaysInMonth(month)

	header := []interface{}{"Сотрудник"}
	for day := 1; day <= days; day++ {
		header = append(header, day)
	}
	header = append(header, "Часы")

	grid := [][]interface{}{header}
	for _, row := range rows {
		line := []interface{}{row.Surname + " " + row.Name}
		for day := 1; day <= days; day++ {
			if sh, ok := shifts[row.ID][day]; ok && sh.Status == models.StatusApproved {
				line = append(line, sh.Duration)
			} else {
				line = append(line, "")
			}
		}
		line = append(line, row.TotalHours)
		grid = append(grid, line)
	}
	return grid
}
