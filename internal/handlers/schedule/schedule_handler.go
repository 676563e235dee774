package schedule

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/evn/sop_backendl/internal/pkg/filters"
	"github.com/evn/sop_backendl/internal/pkg/response"
	"github.com/evn/sop_backendl/internal/repositories"
	scheduleService "github.com/evn/sop_backendl/internal/services/schedule"
	shiftService "github.com/evn/sop_backendl/internal/services/shift"
	"github.com/go-chi/chi/v5"
)

const defaultShiftType = "День"

// scheduleFilters описывает параметры страницы расписания: месяц, команда,
// тип смены. Отсутствующий ключ означает значение по умолчанию.
func scheduleFilters(now time.Time) *filters.Set {
	return filters.NewSet(
		filters.Field{Key: "month", Kind: filters.String, Default: now.Format("2006-01")},
		filters.Field{Key: "team_id", Kind: filters.Int, Default: 0},
		filters.Field{Key: "shift_type", Kind: filters.String, Default: defaultShiftType},
	)
}

type scheduleQuery struct {
	set       *filters.Set
	state     map[string]interface{}
	teamID    int
	month     time.Time
	monthRaw  string
	shiftType string
}

func readScheduleQuery(q url.Values) (*scheduleQuery, error) {
	set := scheduleFilters(time.Now())
	state := set.Read(q)

	monthRaw := state["month"].(string)
	month, err := scheduleService.ParseMonth(monthRaw)
	if err != nil {
		return nil, err
	}

	return &scheduleQuery{
		set:       set,
		state:     state,
		teamID:    state["team_id"].(int),
		month:     month,
		monthRaw:  monthRaw,
		shiftType: state["shift_type"].(string),
	}, nil
}

// GetScheduleHandler отдает агрегат месяца: строки табеля и карту смен.
func GetScheduleHandler(db *sql.DB) http.HandlerFunc {
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
			log.Printf("Ошибка загрузки расписания команды %d: %v", query.teamID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		rows, shiftsMap := scheduleService.BuildTable(groups, users, shifts, query.month)

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"rows":          rows,
			"shifts":        shiftsMap,
			"days_in_month": scheduleService.DaysInMonth(query.month),
			"filters":       query.state,
			"has_active":    query.set.HasActiveFilters(query.state),
			"query":         query.set.Write(url.Values{}, query.state).Encode(),
		})
	}
}

type createShiftRequest struct {
	UserID    int    `json:"user_id"`
	Date      string `json:"date"`
	Duration  int    `json:"duration"`
	ShiftType string `json:"shift_type"`
}

// CreateDirectShiftHandler — прямое назначение смены руководителем,
// статус approved сразу, без очереди заявок.
func CreateDirectShiftHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createShiftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Неверный JSON")
			return
		}
		if req.UserID == 0 {
			response.RespondWithError(w, http.StatusBadRequest, "Параметр user_id обязателен")
			return
		}
		if req.ShiftType == "" {
			req.ShiftType = defaultShiftType
		}

		sh, err := svc.CreateDirect(r.Context(), req.UserID, req.Date, req.Duration, req.ShiftType)
		if err != nil {
			response.RespondWithAppError(w, err)
			return
		}
		response.RespondWithJSON(w, http.StatusCreated, sh)
	}
}

type updateShiftRequest struct {
	Duration int `json:"duration"`
}

func UpdateShiftHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userShiftID, err := strconv.Atoi(chi.URLParam(r, "userShiftID"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Неверный идентификатор смены")
			return
		}

		var req updateShiftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Неверный JSON")
			return
		}

		sh, err := svc.UpdateShift(r.Context(), userShiftID, req.Duration)
		if err != nil {
			response.RespondWithAppError(w, err)
			return
		}
		response.RespondWithJSON(w, http.StatusOK, sh)
	}
}

func DeleteShiftHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userShiftID, err := strconv.Atoi(chi.URLParam(r, "userShiftID"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Неверный идентификатор смены")
			return
		}

		if err := svc.DeleteShift(r.Context(), userShiftID); err != nil {
			response.RespondWithAppError(w, err)
			return
		}
		response.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Смена удалена"})
	}
}
