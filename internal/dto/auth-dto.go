package dto

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponseDTO struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
