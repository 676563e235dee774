package models

type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	GroupID int    `json:"group_id"`
	Role    string `json:"role,omitempty"`
	// TotalHours считается на сервере по подтвержденным сменам месяца
	TotalHours int `json:"total_hours"`
}

type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Group — группа внутри команды. MemberIDs хранит состав в исходном порядке,
// SupervisorID == 0 означает, что старший не назначен.
type Group struct {
	ID           int    `json:"id"`
	TeamID       int    `json:"team_id"`
	Name         string `json:"name"`
	SupervisorID int    `json:"supervisor_id,omitempty"`
	MemberIDs    []int  `json:"member_ids,omitempty"`
}
