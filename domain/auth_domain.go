package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessLogin = "login successful"
	MessageFailedLogin  = "incorrect email or password"

	ErrInvalidCredentials = errors.New("incorrect email or password")

	ErrTokenMalformed      = errors.New("token is malformed")
	ErrTokenBadSignature   = errors.New("token signature is invalid")
	ErrTokenExpired        = errors.New("token is expired")
	ErrTokenMissingSubject = errors.New("token has no subject")
)

const TokenTypeBearer = "bearer"

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginUser struct {
		UserID    uint       `json:"user_id"`
		Email     string     `json:"email"`
		Name      string     `json:"name"`
		LastLogin *time.Time `json:"last_login"`
	}

	LoginResponse struct {
		AccessToken string    `json:"access_token"`
		TokenType   string    `json:"token_type"`
		ExpiresAt   time.Time `json:"expires_at"`
		User        LoginUser `json:"user"`
	}
)
