package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessGetUser        = "success get user"
	MessageSuccessGetUsers       = "success get users"
	MessageSuccessChangePassword = "password changed successfully"
	MessageSuccessDeleteUser     = "account deleted successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedGetUser        = "failed to get user"
	MessageFailedGetUsers       = "failed to get users"
	MessageFailedChangePassword = "failed to change password"
	MessageFailedDeleteUser     = "failed to delete account"

	ErrUserNotFound           = fmt.Errorf("user %w", ErrNotFound)
	ErrEmailAlreadyRegistered = fmt.Errorf("email %w", ErrConflict)
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email,max=255"`
		Name     string `json:"name" validate:"required,max=255"`
		Password string `json:"password" validate:"required,max=72"`
	}

	ChangePasswordRequest struct {
		Password string `json:"password" validate:"required,max=72"`
	}

	UserResponse struct {
		UserID    uint       `json:"user_id"`
		Email     string     `json:"email"`
		Name      string     `json:"name"`
		IsActive  bool       `json:"is_active"`
		CreatedAt time.Time  `json:"created_at"`
		LastLogin *time.Time `json:"last_login"`
	}
)
