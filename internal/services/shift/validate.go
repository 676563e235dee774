package shift

import (
	"time"

	"github.com/evn/sop_backendl/internal/models"
	"github.com/evn/sop_backendl/internal/pkg/apperr"
)

// ValidateDuration — границы 1..24 проверяются до похода в БД.
func ValidateDuration(duration int) error {
	if duration < models.MinShiftDuration || duration > models.MaxShiftDuration {
		return apperr.Validation("Длительность смены должна быть от 1 до 24 часов")
	}
	return nil
}

// ValidateRequestDate разбирает дату заявки и отклоняет прошедшие дни.
// Сравнение идет по началу суток в часовом поясе сервера: заявка на сегодня
// допустима, на вчера — нет.
func ValidateRequestDate(raw string, now time.Time) (string, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return "", apperr.Validation("Неверный формат даты, ожидается ГГГГ-ММ-ДД")
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return "", apperr.Validation("Нельзя подать заявку на прошедшую дату")
	}
	return date.Format("2006-01-02"), nil
}

// ValidateShiftDate — для прямых назначений: формат проверяем, прошедшие
// даты разрешены (руководитель может закрывать табель задним числом).
func ValidateShiftDate(raw string) (string, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return "", apperr.Validation("Неверный формат даты, ожидается ГГГГ-ММ-ДД")
	}
	return date.Format("2006-01-02"), nil
}
