package models

// ScheduleTableRow — строка таблицы расписания. Пересобирается при каждой
// агрегации и нигде не хранится.
type ScheduleTableRow struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	GroupID      int    `json:"group_id"`
	TotalHours   int    `json:"total_hours"`
	IsSupervisor bool   `json:"is_supervisor"`
}

// ShiftsMap: user_id -> день месяца (1..N) -> смена. В ячейке не больше одной смены.
type ShiftsMap map[int]map[int]Shift

// RequestCounters — счетчики очереди заявок по признаку просмотра.
type RequestCounters struct {
	Unviewed int `json:"unviewed"`
	Viewed   int `json:"viewed"`
}
