package requests

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/evn/sop_backendl/internal/middleware"
	"github.com/evn/sop_backendl/internal/pkg/filters"
	"github.com/evn/sop_backendl/internal/pkg/response"
	"github.com/evn/sop_backendl/internal/repositories"
	shiftService "github.com/evn/sop_backendl/internal/services/shift"
	"github.com/go-chi/chi/v5"
)

const defaultShiftType = "День"

// requestFilters — параметры очереди заявок. Вкладка (is_viewed) и
// пагинация идут отдельными параметрами, это не фильтры.
func requestFilters() *filters.Set {
	return filters.NewSet(
		filters.Field{Key: "full_name", Kind: filters.String, Default: ""},
		filters.Field{Key: "team_id", Kind: filters.Int, Default: 0},
		filters.Field{Key: "group_id", Kind: filters.Int, Default: 0},
		filters.Field{Key: "date_from", Kind: filters.String, Default: ""},
		filters.Field{Key: "date_to", Kind: filters.String, Default: ""},
		filters.Field{Key: "status", Kind: filters.StringList, Default: []string{}},
	)
}

// ListShiftRequestsHandler — очередь заявок одной вкладки (просмотренные
// либо нет) с фильтрами, пагинацией и счетчиками обеих вкладок.
func ListShiftRequestsHandler(db *sql.DB, svc *shiftService.Service) http.HandlerFunc {
	repo := repositories.NewRequestRepository(db)
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.GetActorFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "Не авторизован")
			return
		}

		q := r.URL.Query()
		set := requestFilters()
		state := set.Read(q)

		isViewed, _ := strconv.ParseBool(q.Get("is_viewed"))
		page, _ := strconv.Atoi(q.Get("page"))
		perPage, _ := strconv.Atoi(q.Get("per_page"))

		statuses, _ := state["status"].([]string)
		filter := repositories.RequestFilter{
			IsViewed: isViewed,
			Statuses: statuses,
			TeamID:   state["team_id"].(int),
			GroupID:  state["group_id"].(int),
			FullName: state["full_name"].(string),
			DateFrom: state["date_from"].(string),
			DateTo:   state["date_to"].(string),
			Page:     page,
			PerPage:  perPage,
		}

		data, total, err := repo.List(filter)
		if err != nil {
			log.Printf("Ошибка выборки заявок: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		counters, err := svc.Counters(r.Context(), filter.TeamID)
		if err != nil {
			log.Printf("Ошибка счетчиков заявок: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		for i := range data {
			data[i].Actions = shiftService.AvailableActions(data[i], actor.Caps)
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"data": data,
			"meta": map[string]interface{}{
				"total":    total,
				"counters": counters,
			},
			"filters":    state,
			"has_active": set.HasActiveFilters(state),
			"query":      set.Write(url.Values{}, state).Encode(),
		})
	}
}

type createRequestBody struct {
	Date      string `json:"date"`
	Duration  int    `json:"duration"`
	ShiftType string `json:"shift_type"`
}

// CreateRequestHandler — сотрудник подает заявку на дополнительную смену
// от своего имени. Заявка попадает в очередь как pending и непросмотренная.
func CreateRequestHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "Не авторизован")
			return
		}

		var body createRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Неверный JSON")
			return
		}
		if body.ShiftType == "" {
			body.ShiftType = defaultShiftType
		}

		req, err := svc.CreateRequest(r.Context(), userID, body.Date, body.Duration, body.ShiftType)
		if err != nil {
			response.RespondWithAppError(w, err)
			return
		}
		response.RespondWithJSON(w, http.StatusCreated, req)
	}
}

func requestID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "requestID"))
	return id, err == nil
}

func ApproveRequestHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requestID(r)
		if !ok {
			response.RespondWithError(w, http.StatusBadRequest, "Неверный идентификатор заявки")
			return
		}

		req, err := svc.Approve(r.Context(), id)
		if err != nil {
			response.RespondWithAppError(w, err)
			return
		}
		response.RespondWithJSON(w, http.StatusOK, req)
	}
}

func RejectRequestHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requestID(r)
		if !ok {
			response.RespondWithError(w, http.StatusBadRequest, "Неверный идентификатор заявки")
			return
		}

		req, err := svc.Reject(r.Context(), id)
		if err != nil {
			response.RespondWithAppError(w, err)
			return
		}
		response.RespondWithJSON(w, http.StatusOK, req)
	}
}

// MarkViewedHandler — явная идемпотентная пометка «просмотрено».
func MarkViewedHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requestID(r)
		if !ok {
			response.RespondWithError(w, http.StatusBadRequest, "Неверный идентификатор заявки")
			return
		}

		if err := svc.MarkViewed(r.Context(), id); err != nil {
			response.RespondWithAppError(w, err)
			return
		}
		response.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Заявка помечена просмотренной"})
	}
}
