package dto

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=100"`
}

type RegisterResponse struct {
	UserId    string `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserId      string `json:"user_id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	Role        string `json:"role"`
}
