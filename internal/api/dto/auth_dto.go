package dto

import (
	"github.com/cuongbtq/job-board/internal/api/auth"
	"github.com/cuongbtq/job-board/internal/api/domain"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest carries no binding rules; the auth service reports each
// missing or invalid field with its own message.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
	UserType        string `json:"user_type"`
	CompanyName     string `json:"company_name"`
}

func (r *RegisterRequest) ToInput() auth.RegisterInput {
	return auth.RegisterInput{
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		FullName:        r.FullName,
		Role:            domain.Role(r.UserType),
		CompanyName:     r.CompanyName,
	}
}

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"`
	CompanyName *string `json:"company_name"`
	Avatar      *string `json:"avatar"`
}

func (r *UpdateProfileRequest) ToPatch() auth.ProfilePatch {
	return auth.ProfilePatch{
		FullName:    r.FullName,
		CompanyName: r.CompanyName,
		Avatar:      r.Avatar,
	}
}
