package shift

import (
	"github.com/evn/sop_backendl/internal/models"
	"github.com/evn/sop_backendl/internal/pkg/permissions"
)

// AvailableActions считает действия, доступные по заявке из очереди.
// Просмотренные заявки заморожены даже в статусе pending: из этой очереди
// их больше нельзя трогать. Политика прав сюда не зашита — потребляются
// только готовые булевы флаги.
func AvailableActions(req models.ShiftRequest, caps permissions.Capabilities) []string {
	if req.Status != models.StatusPending || req.IsViewed || !req.IsActive {
		return nil
	}
	var actions []string
	if permissions.CanRender([]string{permissions.RequestsApprove}, caps) {
		actions = append(actions, "approve", "reject")
	}
	if permissions.CanRender([]string{permissions.RequestsView}, caps) {
		actions = append(actions, "mark_viewed")
	}
	return actions
}
