package shift

import (
	"context"
	"fmt"

	"github.com/evn/sop_backendl/internal/models"
	"github.com/evn/sop_backendl/internal/services/generator"
)

// ImportGenerated складывает результат внешней генерации в календарь.
// Смены приходят уже согласованными, поэтому сразу approved.
func (s *Service) ImportGenerated(ctx context.Context, items []generator.GeneratedShift, shiftType string) (int, error) {
	count := 0
	for _, item := range items {
		if err := ValidateDuration(item.Duration); err != nil {
			return count, fmt.Errorf("смена пользователя %d: %w", item.UserID, err)
		}
		shiftID, err := s.shifts.FindOrCreateShift(item.Date, shiftType)
		if err != nil {
			return count, err
		}
		if _, err := s.shifts.InsertUserShift(item.UserID, shiftID, item.Duration, models.StatusApproved); err != nil {
			return count, err
		}
		count++
	}
	if count > 0 {
		s.notifier.ScheduleUpdated()
	}
	return count, nil
}
