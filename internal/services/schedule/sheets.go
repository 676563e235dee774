package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/evn/sop_backendl/internal/models"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// PublishToSheet выгружает табель месяца на лист Google Sheets.
// Лист называется по месяцу ("2025-03"), прежнее содержимое затирается.
func PublishToSheet(ctx context.Context, credsFile, spreadsheetID string, rows []models.ScheduleTableRow, shifts models.ShiftsMap, month time.Time) error {
	if spreadsheetID == "" {
		return fmt.Errorf("не задан идентификатор таблицы")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	srv, err := sheets.NewService(ctx, option.WithCredentialsFile(credsFile))
	if err != nil {
		return fmt.Errorf("ошибка инициализации Google API: %w", err)
	}

	sheetName := month.Format("2006-01")
	vr := &sheets.ValueRange{Values: GridValues(rows, shifts, month)}

	_, err = srv.Spreadsheets.Values.
		Update(spreadsheetID, sheetName+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("ошибка записи таблицы: %w", err)
	}
	return nil
}
