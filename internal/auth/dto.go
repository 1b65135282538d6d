package auth

import (
	"github.com/oakhollow/orderdesk-backend/internal/permissions"
	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
)

// RegisterRequest is the HTTP payload for self sign-up.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the HTTP payload for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the minted token plus the resolved identity.
type LoginResult struct {
	AccessToken string   `json:"access_token"`
	Identity    Snapshot `json:"identity"`
}

// Snapshot is the identity payload behind /auth/me: the account, its contact
// card and the resolved capability set.
type Snapshot struct {
	User       models.User            `json:"user"`
	Profile    *models.Profile        `json:"profile,omitempty"`
	Identity   permissions.Identity   `json:"-"`
	Resolution permissions.Resolution `json:"permissions"`
}
