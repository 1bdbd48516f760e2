package authValidator

import (
	"strings"

	"eduplatform/models"
	"eduplatform/validators"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Role     string `json:"role" validate:"oneof=student instructor"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	if r.Role == "" {
		r.Role = models.RoleStudent
	}
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ForgotPasswordRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *ResetPasswordRequest) Normalize() {
	r.Token = strings.TrimSpace(r.Token)
}

// Login validator middleware
func Login() fiber.Handler {
	return validators.Body[LoginRequest]()
}

// Register validator middleware
func Register() fiber.Handler {
	return validators.Body[RegisterRequest]()
}

func ForgotPassword() fiber.Handler {
	return validators.Body[ForgotPasswordRequest]()
}

func ResetPassword() fiber.Handler {
	return validators.Body[ResetPasswordRequest]()
}
