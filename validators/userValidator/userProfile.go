package userValidator

import (
	"strings"

	"eduplatform/validators"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfileRequest carries optional fields; nil leaves the column unchanged.
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	Country   *string `json:"country" validate:"omitempty,max=60"`
	Language  *string `json:"language" validate:"omitempty,min=2,max=10"`
}

func (r *UpdateProfileRequest) Normalize() {
	for _, f := range []*string{r.FullName, r.Phone, r.Country, r.Language} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,nefield=CurrentPassword"`
}

func UpdateProfile() fiber.Handler {
	return validators.Body[UpdateProfileRequest]()
}

func ChangePassword() fiber.Handler {
	return validators.Body[ChangePasswordRequest]()
}
