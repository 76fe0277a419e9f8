package models

// TokenLoginRequest is the body of the token-echo login used by the admin console
type TokenLoginRequest struct {
	Token string `json:"token"`
}

// LoginRequest is the body of the legacy admin panel login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
