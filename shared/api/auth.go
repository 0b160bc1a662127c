package api

import "github.com/gemchat-dev/gemchat/shared/domain"

// Request DTOs

type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type RegisterResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type UserResponse struct {
	Message string         `json:"message"`
	User    *domain.Claims `json:"user"`
}
