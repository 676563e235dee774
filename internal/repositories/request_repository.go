package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evn/sop_backendl/internal/models"
	"github.com/evn/sop_backendl/internal/pkg/apperr"
)

type RequestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// RequestFilter — разрешенные параметры выборки очереди заявок.
type RequestFilter struct {
	IsViewed bool
	Statuses []string
	TeamID   int
	GroupID  int
	FullName string
	DateFrom string
	DateTo   string
	Page     int
	PerPage  int
}

const requestSelect = `
	SELECT sr.id, sr.user_id, sr.shift_id, sr.duration, sr.status,
	       sr.is_active, sr.is_viewed, sr.created_at,
	       s.shift_date, u.name, u.surname
	FROM shift_requests sr
	JOIN shifts s ON s.id = sr.shift_id
	JOIN users u ON u.id = sr.user_id
`

func scanRequest(row interface{ Scan(...interface{}) error }) (models.ShiftRequest, error) {
	var req models.ShiftRequest
	var createdAt, date time.Time
	var name, surname string
	err := row.Scan(&req.ID, &req.UserID, &req.ShiftID, &req.Duration, &req.Status,
		&req.IsActive, &req.IsViewed, &createdAt, &date, &name, &surname)
	if err != nil {
		return models.ShiftRequest{}, err
	}
	req.CreatedAt = createdAt.Format(time.RFC3339)
	req.Shift = models.ShiftRef{ID: req.ShiftID, Date: date.Format("2006-01-02")}
	req.User = models.UserRef{ID: req.UserID, Name: strings.TrimSpace(name + " " + surname)}
	return req, nil
}

// List возвращает страницу заявок выбранной вкладки и общее число строк.
func (r *RequestRepository) List(f RequestFilter) ([]models.ShiftRequest, int, error) {
	conds := []string{"sr.is_active", "sr.is_viewed = $1"}
	args := []interface{}{f.IsViewed}

	addCond := func(cond string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if len(f.Statuses) > 0 {
		placeholders := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			args = append(args, st)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conds = append(conds, "sr.status IN ("+strings.Join(placeholders, ",")+")")
	}
	if f.TeamID != 0 {
		addCond("u.group_id IN (SELECT id FROM groups WHERE team_id = $%d)", f.TeamID)
	}
	if f.GroupID != 0 {
		addCond("u.group_id = $%d", f.GroupID)
	}
	if f.FullName != "" {
		addCond("(u.name || ' ' || u.surname) ILIKE '%%' || $%d || '%%'", f.FullName)
	}
	if f.DateFrom != "" {
		addCond("s.shift_date >= $%d", f.DateFrom)
	}
	if f.DateTo != "" {
		addCond("s.shift_date <= $%d", f.DateTo)
	}

	where := " WHERE " + strings.Join(conds, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM shift_requests sr JOIN shifts s ON s.id = sr.shift_id JOIN users u ON u.id = sr.user_id" + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета заявок: %w", err)
	}

	perPage := f.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, perPage, (page-1)*perPage)
	query := requestSelect + where +
		fmt.Sprintf(" ORDER BY sr.created_at DESC, sr.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выборки заявок: %w", err)
	}
	defer rows.Close()

	requests := []models.ShiftRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка чтения заявки: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}

// Counters считает размеры обеих вкладок очереди.
func (r *RequestRepository) Counters(teamID int) (models.RequestCounters, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE NOT sr.is_viewed),
		       COUNT(*) FILTER (WHERE sr.is_viewed)
		FROM shift_requests sr
		JOIN users u ON u.id = sr.user_id
		WHERE sr.is_active
	`
	args := []interface{}{}
	if teamID != 0 {
		query += " AND u.group_id IN (SELECT id FROM groups WHERE team_id = $1)"
		args = append(args, teamID)
	}

	var c models.RequestCounters
	if err := r.db.QueryRow(query, args...).Scan(&c.Unviewed, &c.Viewed); err != nil {
		return models.RequestCounters{}, fmt.Errorf("ошибка подсчета счетчиков: %w", err)
	}
	return c, nil
}

func (r *RequestRepository) GetByID(id int) (models.ShiftRequest, error) {
	req, err := scanRequest(r.db.QueryRow(requestSelect+" WHERE sr.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ShiftRequest{}, apperr.NotFound("Заявка не найдена")
	}
	if err != nil {
		return models.ShiftRequest{}, fmt.Errorf("ошибка выборки заявки: %w", err)
	}
	return req, nil
}

func (r *RequestRepository) Create(userID, shiftID, duration int) (models.ShiftRequest, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO shift_requests (user_id, shift_id, duration)
		VALUES ($1, $2, $3)
		RETURNING id
	`, userID, shiftID, duration).Scan(&id)
	if err != nil {
		return models.ShiftRequest{}, fmt.Errorf("ошибка создания заявки: %w", err)
	}
	return r.GetByID(id)
}

// Resolve переводит pending-заявку в конечный статус ровно один раз.
// Условие status = 'pending' в UPDATE — единственная защита от повторного
// approve/reject при конкурентных запросах.
func (r *RequestRepository) Resolve(id int, to models.Status) (models.ShiftRequest, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return models.ShiftRequest{}, fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE shift_requests SET status = $2
		WHERE id = $1 AND status = 'pending' AND is_active
	`, id, to)
	if err != nil {
		return models.ShiftRequest{}, fmt.Errorf("ошибка смены статуса заявки: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var current string
		err := r.db.QueryRow(`SELECT status FROM shift_requests WHERE id = $1 AND is_active`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ShiftRequest{}, apperr.NotFound("Заявка не найдена")
		}
		if err != nil {
			return models.ShiftRequest{}, fmt.Errorf("ошибка проверки заявки: %w", err)
		}
		return models.ShiftRequest{}, apperr.Conflict("Заявка уже обработана")
	}

	if to == models.StatusApproved {
		_, err = tx.Exec(`
			INSERT INTO user_shifts (user_id, shift_id, duration, status)
			SELECT user_id, shift_id, duration, 'approved'
			FROM shift_requests WHERE id = $1
		`, id)
		if err != nil {
			return models.ShiftRequest{}, fmt.Errorf("ошибка создания смены по заявке: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.ShiftRequest{}, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return r.GetByID(id)
}

// MarkViewed — идемпотентная пометка «просмотрено». Обратного перехода нет.
func (r *RequestRepository) MarkViewed(id int) error {
	res, err := r.db.Exec(`
		UPDATE shift_requests SET is_viewed = TRUE WHERE id = $1 AND is_active
	`, id)
	if err != nil {
		return fmt.Errorf("ошибка пометки заявки: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Заявка не найдена")
	}
	return nil
}
