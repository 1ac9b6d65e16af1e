package dto

type RegisterRequestDTO struct {
	Username       string `json:"username" validate:"required,min=3,max=50" example:"aroha"`
	Password       string `json:"password" validate:"required,min=8" example:"password123"`
	Email          string `json:"email,omitempty" validate:"omitempty,email" example:"aroha@example.nz"`
	FirstName      string `json:"first_name,omitempty" validate:"max=100" example:"Aroha"`
	LastName       string `json:"last_name,omitempty" validate:"max=100" example:"Ngata"`
	Phone          string `json:"phone,omitempty" validate:"max=30" example:"021 555 0101"`
	MarketingOptIn bool   `json:"marketing_opt_in"`
	AddressDTO
}

type LoginRequestDTO struct {
	Username string `json:"username" validate:"required" example:"aroha"`
	Password string `json:"password" validate:"required" example:"password123"`
}

type TokenResponseDTO struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type LogoutResponseDTO struct {
	Message string `json:"message"`
}
