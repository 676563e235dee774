package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evn/sop_backendl/internal/models"
	"github.com/evn/sop_backendl/internal/pkg/apperr"
)

type ShiftRepository struct {
	db *sql.DB
}

func NewShiftRepository(db *sql.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// FindOrCreateShift возвращает id слота (дата + тип), создавая его при
// необходимости. Upsert нужен, чтобы две заявки на один день делили слот.
func (r *ShiftRepository) FindOrCreateShift(date, shiftType string) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO shifts (shift_date, shift_type)
		VALUES ($1, $2)
		ON CONFLICT (shift_date, shift_type) DO UPDATE SET shift_type = EXCLUDED.shift_type
		RETURNING id
	`, date, shiftType).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания слота смены: %w", err)
	}
	return id, nil
}

func (r *ShiftRepository) InsertUserShift(userID, shiftID, duration int, status models.Status) (models.Shift, error) {
	var sh models.Shift
	var date time.Time
	err := r.db.QueryRow(`
		WITH ins AS (
			INSERT INTO user_shifts (user_id, shift_id, duration, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, user_id, shift_id, duration, status, is_active
		)
		SELECT ins.id, ins.shift_id, ins.user_id, s.shift_date, ins.duration, ins.status, ins.is_active
		FROM ins JOIN shifts s ON s.id = ins.shift_id
	`, userID, shiftID, duration, status).Scan(
		&sh.UserShiftID, &sh.ID, &sh.UserID, &date, &sh.Duration, &sh.Status, &sh.IsActive,
	)
	if err != nil {
		return models.Shift{}, fmt.Errorf("ошибка назначения смены: %w", err)
	}
	sh.Date = date.Format("2006-01-02")
	return sh, nil
}

func (r *ShiftRepository) GetUserShift(userShiftID int) (models.Shift, error) {
	var sh models.Shift
	var date time.Time
	err := r.db.QueryRow(`
		SELECT us.id, us.shift_id, us.user_id, s.shift_date, us.duration, us.status, us.is_active
		FROM user_shifts us
		JOIN shifts s ON s.id = us.shift_id
		WHERE us.id = $1
	`, userShiftID).Scan(&sh.UserShiftID, &sh.ID, &sh.UserID, &date, &sh.Duration, &sh.Status, &sh.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Shift{}, apperr.NotFound("Смена не найдена")
	}
	if err != nil {
		return models.Shift{}, fmt.Errorf("ошибка выборки смены: %w", err)
	}
	sh.Date = date.Format("2006-01-02")
	return sh, nil
}

// UpdateDuration меняет только длительность, статус не трогает.
func (r *ShiftRepository) UpdateDuration(userShiftID, duration int) (models.Shift, error) {
	res, err := r.db.Exec(`
		UPDATE user_shifts SET duration = $1 WHERE id = $2 AND is_active
	`, duration, userShiftID)
	if err != nil {
		return models.Shift{}, fmt.Errorf("ошибка обновления смены: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Shift{}, apperr.NotFound("Смена не найдена")
	}
	return r.GetUserShift(userShiftID)
}

// DeleteUserShift безвозвратно удаляет ячейку календаря.
func (r *ShiftRepository) DeleteUserShift(userShiftID int) error {
	res, err := r.db.Exec(`DELETE FROM user_shifts WHERE id = $1`, userShiftID)
	if err != nil {
		return fmt.Errorf("ошибка удаления смены: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Смена не найдена")
	}
	return nil
}
