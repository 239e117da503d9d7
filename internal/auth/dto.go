package auth

import "net/mail"

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterDTO carries a self-service registration request.
type RegisterDTO struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate checks required fields and returns a ValidationError on failure.
func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

// Validate for refresh token DTO
func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return ValidationError{Msg: "refresh_token is required"}
	}
	return nil
}

const minPasswordLength = 6

func (d RegisterDTO) Validate() error {
	if d.Email == "" || d.FirstName == "" || d.LastName == "" || d.Password == "" {
		return ValidationError{Msg: "all fields are required"}
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		return ValidationError{Msg: "invalid email address"}
	}
	if len(d.Password) < minPasswordLength {
		return ValidationError{Msg: "password must contain at least 6 characters"}
	}
	if d.Password != d.ConfirmPassword {
		return ValidationError{Msg: "passwords do not match"}
	}
	return nil
}
