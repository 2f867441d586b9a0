package dto

import (
	"strings"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
	"github.com/google/uuid"
)

type SignInRequest struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

func (r *SignInRequest) Validate() error {
	if !strings.Contains(r.Email, "@") {
		return apperr.BadRequest("valid email is required")
	}
	if strings.TrimSpace(r.Nickname) == "" {
		return apperr.BadRequest("nickname is required")
	}
	return nil
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type PhoneVerifyRequest struct {
	Code string `json:"code"`
}

func (r *PhoneVerifyRequest) Validate() error {
	if len(r.Code) != 6 {
		return apperr.BadRequest("code must be 6 digits")
	}
	return nil
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Nickname      string    `json:"nickname"`
	Provider      string    `json:"provider"`
	PhoneVerified bool      `json:"phone_verified"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
