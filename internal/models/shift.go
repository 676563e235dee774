package models

// Status — статус заявки или назначенной смены
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

const (
	MinShiftDuration = 1
	MaxShiftDuration = 24
)

// Shift — назначенная смена в календаре. ID указывает на слот (дата + тип),
// UserShiftID — на само назначение, именно его меняют approve/edit/delete.
type Shift struct {
	ID          int    `json:"id"`
	UserShiftID int    `json:"user_shift_id"`
	UserID      int    `json:"user_id,omitempty"`
	Date        string `json:"date"`
	Duration    int    `json:"duration"`
	Status      Status `json:"status"`
	IsActive    bool   `json:"is_active"`
}

type ShiftRef struct {
	ID   int    `json:"id"`
	Date string `json:"date"`
}

type UserRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ShiftRequest — заявка на дополнительную смену. Заявки не удаляются,
// из pending они один раз переходят в approved или rejected.
type ShiftRequest struct {
	ID        int      `json:"id"`
	UserID    int      `json:"user_id"`
	ShiftID   int      `json:"shift_id"`
	Duration  int      `json:"duration"`
	Status    Status   `json:"status"`
	IsActive  bool     `json:"is_active"`
	IsViewed  bool     `json:"is_viewed"`
	CreatedAt string   `json:"created_at,omitempty"`
	Shift     ShiftRef `json:"shift"`
	User      UserRef  `json:"user"`
	// Actions — доступные действия для текущего пользователя, считаются сервером
	Actions []string `json:"actions,omitempty"`
}
