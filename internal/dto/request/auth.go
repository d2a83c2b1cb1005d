package request

type RegisterRequest struct {
	Username        string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// SessionMeta is what the transport knows about the client opening a
// session.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}
