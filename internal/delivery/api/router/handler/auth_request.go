package handler

import (
	"strings"

	"identity/internal/delivery/api/validator"
	"identity/internal/domain/entity"
	"identity/internal/usecase"
)

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Firstname    string            `json:"firstname" form:"firstname" validate:"required,personname,min=3,max=30"`
	Lastname     string            `json:"lastname" form:"lastname" validate:"required,personname,min=3,max=30"`
	Username     string            `json:"username" form:"username" validate:"required,alphanum,min=3,max=15"`
	Email        string            `json:"email" form:"email" validate:"required,email"`
	Password     string            `json:"password" form:"password" validate:"required,min=9,password"`
	Role         string            `json:"role" form:"role" validate:"omitempty,oneof=student instructor admin"`
	Bio          string            `json:"bio" form:"bio" validate:"max=500"`
	Title        string            `json:"title" form:"title" validate:"max=100"`
	Experience   *int              `json:"experience" form:"experience" validate:"omitnil,min=0,max=100"`
	SocialLinks  map[string]string `json:"socialLinks" validate:"omitempty,dive,keys,oneof=facebook twitter linkedin github website,endkeys,max=2048"`
	ProfileImage string            `json:"profileImage" form:"profileImage" validate:"max=2048"`
}

// Normalize trims every field and canonicalizes the email.
func (r *SignupRequest) Normalize() {
	r.Firstname = strings.TrimSpace(r.Firstname)
	r.Lastname = strings.TrimSpace(r.Lastname)
	r.Username = strings.TrimSpace(r.Username)
	r.Email = validator.NormalizeEmail(r.Email)
	r.Password = strings.TrimSpace(r.Password)
	r.Role = strings.TrimSpace(r.Role)
	r.Bio = strings.TrimSpace(r.Bio)
	r.Title = strings.TrimSpace(r.Title)
	r.ProfileImage = strings.TrimSpace(r.ProfileImage)
	r.SocialLinks = trimLinks(r.SocialLinks)
}

// Messages implements validator.Messenger.
func (r *SignupRequest) Messages() map[string]string {
	return map[string]string{
		"firstname.required":   "firstname is required",
		"firstname.personname": "Firstname must contain only letters, spaces or hyphens",
		"firstname.min":        "First name must be between 3 and 30 characters",
		"firstname.max":        "First name must be between 3 and 30 characters",
		"lastname.required":    "Last name is required",
		"lastname.personname":  "Lastname must contain only letters, spaces or hyphens",
		"lastname.min":         "lastname must be between 3 and 30 characters",
		"lastname.max":         "lastname must be between 3 and 30 characters",
		"username.required":    "User name is required",
		"username.alphanum":    "username must be alphanumeric",
		"username.min":         "username must be between 3 and 15 characters",
		"username.max":         "username must be between 3 and 15 characters",
		"email.required":       "Email is required",
		"email.email":          "Invalid email address",
		"password.required":    "Password is required",
		"password.min":         "Password must be at least 9 characters long",
		"password.password":    "Password must contain at least one letter and one number, and be at least 9 characters long",
		"role.oneof":           "Role must be either student, instructor, or admin",
		"bio.max":              "Bio must be less than 500 characters",
		"title.max":            "Title must be less than 100 characters",
		"experience.min":       "Experience must be a positive number between 0 and 100",
		"experience.max":       "Experience must be a positive number between 0 and 100",
		"experience.type":      "Experience must be a positive number between 0 and 100",
		"socialLinks.type":     "Social links must be an object",
		"socialLinks.oneof":    "Invalid social link key: %s",
		"socialLinks.max":      "Social link for %s is too long",
		"profileImage.max":     "Profile image reference is too long",
	}
}

func (r *SignupRequest) toInput() *usecase.SignupInput {
	return &usecase.SignupInput{
		Firstname:    r.Firstname,
		Lastname:     r.Lastname,
		Username:     r.Username,
		Email:        r.Email,
		Password:     r.Password,
		Role:         entity.Role(r.Role),
		Bio:          r.Bio,
		Title:        r.Title,
		Experience:   r.Experience,
		SocialLinks:  toSocialLinks(r.SocialLinks),
		ProfileImage: r.ProfileImage,
	}
}

// SigninRequest is the body of POST /api/auth/signin.
type SigninRequest struct {
	Username string `json:"username" form:"username" validate:"required_without=Email,omitempty,alphanum"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Normalize trims every field and canonicalizes the email.
func (r *SigninRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = validator.NormalizeEmail(r.Email)
	r.Password = strings.TrimSpace(r.Password)
}

// Messages implements validator.Messenger.
func (r *SigninRequest) Messages() map[string]string {
	return map[string]string{
		"username.required_without": "Please provide either a username or email",
		"username.alphanum":         "username must be alphanumeric",
		"email.email":               "Please enter a valid email address",
		"password.required":         "password is required",
	}
}

func (r *SigninRequest) toInput() *usecase.SigninInput {
	return &usecase.SigninInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
}

// ProfileUpdateRequest is the body of PUT /api/auth/profile. Absent fields are nil.
type ProfileUpdateRequest struct {
	Firstname    *string            `json:"firstname" validate:"omitnil,personname,min=3,max=30"`
	Lastname     *string            `json:"lastname" validate:"omitnil,personname,min=3,max=30"`
	Bio          *string            `json:"bio" validate:"omitnil,max=500"`
	Title        *string            `json:"title" validate:"omitnil,max=100"`
	Experience   *int               `json:"experience" validate:"omitnil,min=0,max=100"`
	SocialLinks  *map[string]string `json:"socialLinks" validate:"omitnil,dive,keys,oneof=facebook twitter linkedin github website,endkeys,max=2048"`
	ProfileImage *string            `json:"profileImage" validate:"omitnil,max=2048"`
}

// Normalize trims every present field.
func (r *ProfileUpdateRequest) Normalize() {
	validator.TrimPtr(r.Firstname)
	validator.TrimPtr(r.Lastname)
	validator.TrimPtr(r.Bio)
	validator.TrimPtr(r.Title)
	validator.TrimPtr(r.ProfileImage)
	if r.SocialLinks != nil {
		links := trimLinks(*r.SocialLinks)
		r.SocialLinks = &links
	}
}

// Messages implements validator.Messenger.
func (r *ProfileUpdateRequest) Messages() map[string]string {
	return map[string]string{
		"firstname.personname": "Firstname must contain only letters, spaces or hyphens",
		"firstname.min":        "First name must be between 3 and 30 characters",
		"firstname.max":        "First name must be between 3 and 30 characters",
		"lastname.personname":  "Lastname must contain only letters, spaces or hyphens",
		"lastname.min":         "lastname must be between 3 and 30 characters",
		"lastname.max":         "lastname must be between 3 and 30 characters",
		"bio.max":              "Bio cannot exceed 500 characters",
		"title.max":            "Title cannot exceed 100 characters",
		"experience.min":       "Experience must be a positive number between 0 and 100",
		"experience.max":       "Experience must be a positive number between 0 and 100",
		"experience.type":      "Experience must be a positive number between 0 and 100",
		"socialLinks.type":     "Social links must be an object",
		"socialLinks.oneof":    "Invalid social link key: %s",
		"socialLinks.max":      "Social link for %s is too long",
		"profileImage.max":     "Profile image reference is too long",
	}
}

func (r *ProfileUpdateRequest) toPatch() *usecase.ProfilePatch {
	patch := &usecase.ProfilePatch{
		Firstname:    r.Firstname,
		Lastname:     r.Lastname,
		Bio:          r.Bio,
		Title:        r.Title,
		Experience:   r.Experience,
		ProfileImage: r.ProfileImage,
	}
	if r.SocialLinks != nil {
		links := toSocialLinks(*r.SocialLinks)
		if links == nil {
			links = entity.SocialLinks{}
		}
		patch.SocialLinks = &links
	}

	return patch
}

// PasswordUpdateRequest is the body of PUT /api/auth/password.
type PasswordUpdateRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" form:"newPassword" validate:"required,min=9,password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// Normalize trims every field.
func (r *PasswordUpdateRequest) Normalize() {
	r.CurrentPassword = strings.TrimSpace(r.CurrentPassword)
	r.NewPassword = strings.TrimSpace(r.NewPassword)
	r.ConfirmPassword = strings.TrimSpace(r.ConfirmPassword)
}

// Messages implements validator.Messenger.
func (r *PasswordUpdateRequest) Messages() map[string]string {
	return map[string]string{
		"currentPassword.required": "Current Password is required",
		"newPassword.required":     "New Password is required",
		"newPassword.min":          "Password must be at least 9 characters long",
		"newPassword.password":     "New Password must contain at least one letter and one number, and be at least 9 characters long",
		"confirmPassword.required": "Confirm password is required",
		"confirmPassword.eqfield":  "Password do not match",
	}
}

func (r *PasswordUpdateRequest) toInput() *usecase.PasswordUpdateInput {
	return &usecase.PasswordUpdateInput{
		CurrentPassword: r.CurrentPassword,
		NewPassword:     r.NewPassword,
		ConfirmPassword: r.ConfirmPassword,
	}
}

func trimLinks(links map[string]string) map[string]string {
	if links == nil {
		return nil
	}

	trimmed := make(map[string]string, len(links))
	for key, value := range links {
		trimmed[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return trimmed
}

func toSocialLinks(links map[string]string) entity.SocialLinks {
	if len(links) == 0 {
		return nil
	}

	out := make(entity.SocialLinks, len(links))
	for key, value := range links {
		out[entity.SocialNetwork(key)] = value
	}

	return out
}
