package schedule

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/evn/sop_backendl/config"
	"github.com/evn/sop_backendl/internal/pkg/response"
	"github.com/evn/sop_backendl/internal/repositories"
	"github.com/evn/sop_backendl/internal/services/generator"
	scheduleService "github.com/evn/sop_backendl/internal/services/schedule"
	shiftService "github.com/evn/sop_backendl/internal/services/shift"
)

// ExportScheduleHandler отдает табель месяца файлом xlsx.
func ExportScheduleHandler(db *sql.DB) http.HandlerFunc {
	repo := repositories.NewScheduleRepository(db)
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := readScheduleQuery(r.URL.Query())
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Неверный формат месяца, ожидается ГГГГ-ММ")
			return
		}
		if query.teamID == 0 {
			response.RespondWithError(w, http.StatusBadRequest, "Параметр team_id обязателен")
			return
		}

		groups, users, shifts, err := repo.GetScheduleData(query.teamID, query.month, query.shiftType)
		if err != nil {
			log.Printf("Ошибка загрузки расписания для экспорта: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		rows, shiftsMap := scheduleService.BuildTable(groups, users, shifts, query.month)
		workbook, err := scheduleService.BuildWorkbook(rows, shiftsMap, query.month)
		if err != nil {
			log.Printf("Ошибка сборки xlsx: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Не удалось собрать файл")
			return
		}

		filename := fmt.Sprintf("schedule_%d_%s.xlsx", query.teamID, query.monthRaw)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := workbook.Write(w); err != nil {
			log.Printf("Ошибка записи xlsx в ответ: %v", err)
		}
	}
}

// PublishScheduleHandler выгружает тот же табель в Google Sheets.
func PublishScheduleHandler(db *sql.DB, cfg *config.Config) http.HandlerFunc {
	repo := repositories.NewScheduleRepository(db)
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := readScheduleQuery(r.URL.Query())
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Неверный формат месяца, ожидается ГГГГ-ММ")
			return
		}
		if query.teamID == 0 {
			response.RespondWithError(w, http.StatusBadRequest, "Параметр team_id обязателен")
			return
		}

		groups, users, shifts, err := repo.GetScheduleData(query.teamID, query.month, query.shiftType)
		if err != nil {
			log.Printf("Ошибка загрузки расписания для публикации: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		rows, shiftsMap := scheduleService.BuildTable(groups, users, shifts, query.month)
		if err := scheduleService.PublishToSheet(r.Context(), cfg.SheetsCredsFile, cfg.SheetsSpreadsheet, rows, shiftsMap, query.month); err != nil {
			response.RespondWithError(w, http.StatusBadGateway, "Ошибка выгрузки в Google Sheets: "+err.Error())
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type generateRequest struct {
	TeamID    int    `json:"team_id"`
	Month     string `json:"month"`
	ShiftType string `json:"shift_type"`
}

// GenerateScheduleHandler запускает внешний сервис генерации и складывает
// его результат в календарь. Сам алгоритм живет вне этого бэкенда.
func GenerateScheduleHandler(client *generator.Client, svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Неверный JSON")
			return
		}
		if req.TeamID == 0 || req.Month == "" {
			response.RespondWithError(w, http.StatusBadRequest, "Параметры team_id и month обязательны")
			return
		}
		if req.ShiftType == "" {
			req.ShiftType = defaultShiftType
		}

		generated, err := client.Generate(r.Context(), req.TeamID, req.Month, req.ShiftType)
		if err != nil {
			response.RespondWithAppError(w, err)
			return
		}

		count, err := svc.ImportGenerated(r.Context(), generated, req.ShiftType)
		if err != nil {
			response.RespondWithAppError(w, err)
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "success",
			"message": "Смены сгенерированы",
			"count":   count,
		})
	}
}
