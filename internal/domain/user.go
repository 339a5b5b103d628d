package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Perfis de acesso à API de auditoria
const (
	RoleAdmin    = 1
	RoleOperator = 2
)

// User é um operador com acesso à API
type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	RoleID       int        `json:"role_id"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// Claims são as claims do token JWT emitido no login
type Claims struct {
	UserID     int    `json:"user_id"`
	UserRoleID int    `json:"user_role_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}
