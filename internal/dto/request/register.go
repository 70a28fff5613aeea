package request

type RegisterRequest struct {
	Name     string `form:"name" validate:"required,min=3,max=31"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	Phone    string `form:"phone" validate:"required,min=3,max=20"`
	Address  string `form:"address" validate:"required,min=3"`
}

type VerifyRequest struct {
	Token string `json:"token"`
}
