package domain

import "time"

// AdminSubject is the JWT subject carried by admin tokens.
const AdminSubject = "canvas-admin"

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
