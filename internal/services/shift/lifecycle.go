// Package shift — жизненный цикл заявок и назначенных смен.
// Дисциплина «мутация, затем перечитывание»: сервис никогда не возвращает
// спекулятивное состояние, после успешной мутации клиенты перечитывают
// агрегат (ws-уведомление только подталкивает к refetch).
package shift

import (
	"context"
	"time"

	"github.com/evn/sop_backendl/internal/models"
	"github.com/evn/sop_backendl/internal/repositories"
)

// Notifier рассылает клиентам сигнал перечитать данные.
type Notifier interface {
	RequestsUpdated()
	ScheduleUpdated()
}

type Service struct {
	shifts   *repositories.ShiftRepository
	requests *repositories.RequestRepository
	cache    *CountersCache
	notifier Notifier
	now      func() time.Time
}

func NewService(shifts *repositories.ShiftRepository, requests *repositories.RequestRepository, cache *CountersCache, notifier Notifier) *Service {
	return &Service{
		shifts:   shifts,
		requests: requests,
		cache:    cache,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateRequest — заявка сотрудника на дополнительную смену, попадает в
// очередь как pending. Дата не раньше сегодняшней, длительность 1..24.
func (s *Service) CreateRequest(ctx context.Context, userID int, date string, duration int, shiftType string) (models.ShiftRequest, error) {
	if err := ValidateDuration(duration); err != nil {
		return models.ShiftRequest{}, err
	}
	date, err := ValidateRequestDate(date, s.now())
	if err != nil {
		return models.ShiftRequest{}, err
	}

	shiftID, err := s.shifts.FindOrCreateShift(date, shiftType)
	if err != nil {
		return models.ShiftRequest{}, err
	}

	req, err := s.requests.Create(userID, shiftID, duration)
	if err != nil {
		return models.ShiftRequest{}, err
	}

	s.cache.Invalidate(ctx)
	s.notifier.RequestsUpdated()
	return req, nil
}

// CreateDirect — прямое назначение руководителем, минует pending.
func (s *Service) CreateDirect(ctx context.Context, userID int, date string, duration int, shiftType string) (models.Shift, error) {
	if err := ValidateDuration(duration); err != nil {
		return models.Shift{}, err
	}
	date, err := ValidateShiftDate(date)
	if err != nil {
		return models.Shift{}, err
	}

	shiftID, err := s.shifts.FindOrCreateShift(date, shiftType)
	if err != nil {
		return models.Shift{}, err
	}

	sh, err := s.shifts.InsertUserShift(userID, shiftID, duration, models.StatusApproved)
	if err != nil {
		return models.Shift{}, err
	}

	s.notifier.ScheduleUpdated()
	return sh, nil
}

// Approve переводит pending-заявку в approved и создает смену в календаре.
// Повторный approve/reject по уже обработанной заявке получает conflict.
func (s *Service) Approve(ctx context.Context, requestID int) (models.ShiftRequest, error) {
	req, err := s.requests.Resolve(requestID, models.StatusApproved)
	if err != nil {
		return models.ShiftRequest{}, err
	}

	s.cache.Invalidate(ctx)
	s.notifier.RequestsUpdated()
	s.notifier.ScheduleUpdated()
	return req, nil
}

func (s *Service) Reject(ctx context.Context, requestID int) (models.ShiftRequest, error) {
	req, err := s.requests.Resolve(requestID, models.StatusRejected)
	if err != nil {
		return models.ShiftRequest{}, err
	}

	s.cache.Invalidate(ctx)
	s.notifier.RequestsUpdated()
	return req, nil
}

// UpdateShift меняет длительность назначенной смены, статус не трогает.
func (s *Service) UpdateShift(ctx context.Context, userShiftID, duration int) (models.Shift, error) {
	if err := ValidateDuration(duration); err != nil {
		return models.Shift{}, err
	}

	sh, err := s.shifts.UpdateDuration(userShiftID, duration)
	if err != nil {
		return models.Shift{}, err
	}

	s.notifier.ScheduleUpdated()
	return sh, nil
}

func (s *Service) DeleteShift(ctx context.Context, userShiftID int) error {
	if err := s.shifts.DeleteUserShift(userShiftID); err != nil {
		return err
	}
	s.notifier.ScheduleUpdated()
	return nil
}

// MarkViewed — отдельная идемпотентная мутация, а не побочный эффект чтения
// списка. Флаг монотонный: обратно в «непросмотрено» заявка не возвращается.
func (s *Service) MarkViewed(ctx context.Context, requestID int) error {
	if err := s.requests.MarkViewed(requestID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	s.notifier.RequestsUpdated()
	return nil
}

// Counters отдает счетчики вкладок, по возможности из кеша.
func (s *Service) Counters(ctx context.Context, teamID int) (models.RequestCounters, error) {
	if counters, ok := s.cache.Get(ctx, teamID); ok {
		return counters, nil
	}
	counters, err := s.requests.Counters(teamID)
	if err != nil {
		return models.RequestCounters{}, err
	}
	s.cache.Set(ctx, teamID, counters)
	return counters, nil
}
