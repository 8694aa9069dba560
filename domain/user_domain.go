package domain

import (
	"errors"
)

var (
	MessageSuccessRegister      = "user registered successfully"
	MessageSuccessLogin         = "login successful"
	MessageSuccessGetMe         = "user profile retrieved successfully"
	MessageSuccessUpdateUser    = "user profile updated successfully"
	MessageSuccessGetPublicUser = "public profile retrieved successfully"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedGetMe         = "failed to retrieve user profile"
	MessageFailedUpdateUser    = "failed to update user profile"
	MessageFailedGetPublicUser = "failed to retrieve public profile"

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateUserRequest struct {
		Name      string `json:"name" validate:"omitempty"`
		Bio       string `json:"bio" validate:"omitempty"`
		AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
	}

	UserResponse struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Bio       string `json:"bio,omitempty"`
		AvatarURL string `json:"avatar_url,omitempty"`
	}

	UserPublicResponse struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Bio       string `json:"bio,omitempty"`
		AvatarURL string `json:"avatar_url,omitempty"`
	}
)
