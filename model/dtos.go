package model

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Registration is the sign-up form payload. ConfirmPassword is checked
// client side only and never sent.
type Registration struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
}

// AuthResponse is what the auth endpoints return on success.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type PostContent struct {
	Content string `json:"content"`
}

type ReactionRequest struct {
	Reaction string `json:"reaction"`
}

type ProfileUpdate struct {
	Name string `json:"name" validate:"required"`
}
