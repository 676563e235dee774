package shift_test

import (
	"testing"

	"github.com/evn/sop_backendl/internal/models"
	"github.com/evn/sop_backendl/internal/pkg/permissions"
	"github.com/evn/sop_backendl/internal/services/shift"
	"github.com/stretchr/testify/assert"
)

func pendingRequest() models.ShiftRequest {
	return models.ShiftRequest{
		ID:       1,
		Status:   models.StatusPending,
		IsActive: true,
		IsViewed: false,
	}
}

func TestAvailableActions(t *testing.T) {
	approver := permissions.New(permissions.RequestsApprove)
	viewer := permissions.New(permissions.RequestsView)
	both := permissions.New(permissions.RequestsApprove, permissions.RequestsView)

	assert.Equal(t, []string{"approve", "reject"}, shift.AvailableActions(pendingRequest(), approver))
	assert.Equal(t, []string{"mark_viewed"}, shift.AvailableActions(pendingRequest(), viewer))
	assert.Equal(t, []string{"approve", "reject", "mark_viewed"}, shift.AvailableActions(pendingRequest(), both))
	assert.Empty(t, shift.AvailableActions(pendingRequest(), permissions.New()))
}

func TestAvailableActions_FrozenRequests(t *testing.T) {
	both := permissions.New(permissions.RequestsApprove, permissions.RequestsView)

	viewed := pendingRequest()
	viewed.IsViewed = true
	assert.Nil(t, shift.AvailableActions(viewed, both), "просмотренная pending-заявка заморожена")

	approved := pendingRequest()
	approved.Status = models.StatusApproved
	assert.Nil(t, shift.AvailableActions(approved, both))

	rejected := pendingRequest()
	rejected.Status = models.StatusRejected
	assert.Nil(t, shift.AvailableActions(rejected, both))

	inactive := pendingRequest()
	inactive.IsActive = false
	assert.Nil(t, shift.AvailableActions(inactive, both))
}
