package dto

// ShortRefDTO - краткая ссылка на справочную сущность (команда, отдел, оборудование).
type ShortRefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ShortUserDTO struct {
	ID  uint64 `json:"id"`
	Fio string `json:"fio"`
}

type ShortTechnicianDTO struct {
	ID     uint64 `json:"id"`
	TeamID uint64 `json:"team_id"`
	Name   string `json:"name"`
}
