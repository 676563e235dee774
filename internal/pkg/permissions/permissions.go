// Package permissions — потребитель внешнего движка прав. Ядро не знает,
// откуда берутся права, оно только читает готовые булевы флаги.
package permissions

// Имена прав, которые потребляет подсистема расписаний.
const (
	ShiftsCreate     = "shifts_create"
	ShiftsEdit       = "shifts_edit"
	ShiftsDelete     = "shifts_delete"
	RequestsView     = "requests_view"
	RequestsApprove  = "requests_approve"
	ScheduleGenerate = "schedule_generate"
	ScheduleExport   = "schedule_export"
)

type Capabilities map[string]bool

func New(names ...string) Capabilities {
	caps := make(Capabilities, len(names))
	for _, n := range names {
		caps[n] = true
	}
	return caps
}

func (c Capabilities) Has(name string) bool {
	return c[name]
}

func (c Capabilities) HasAny(names ...string) bool {
	for _, n := range names {
		if c[n] {
			return true
		}
	}
	return false
}

// CanRender — можно ли показывать действие: нужны все перечисленные права,
// пустой список требований разрешает всегда.
func CanRender(required []string, granted Capabilities) bool {
	for _, name := range required {
		if !granted.Has(name) {
			return false
		}
	}
	return true
}
