package dto

type LoginDTO struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ProfileDTO struct {
	ID   uint64 `json:"id"`
	Fio  string `json:"fio"`
	Role string `json:"role"`
	// Профиль техника, если он есть у пользователя.
	Technician *ShortTechnicianDTO `json:"technician,omitempty"`
}
