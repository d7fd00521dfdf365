package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Only presence is checked here; everything else is the backend's call.

// LoginRequest is the login and admin login form.
type LoginRequest struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// SignupRequest is the signup form.
type SignupRequest struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required"`
	Phone    string `form:"phone" validate:"required"`
	Password string `form:"password" validate:"required"`
	Gender   string `form:"gender" validate:"required"`
	Semester string `form:"semester" validate:"required"`
	Class    string `form:"class" validate:"required"`
}

// RegisterByteRequest is the BYTE domain form.
type RegisterByteRequest struct {
	Domain string `form:"domain"`
}

// RegisterEventRequest is an event card's register form.
type RegisterEventRequest struct {
	EventID string `form:"eventId"`
}

// EventsQuery is the events page filter state carried in the query string.
type EventsQuery struct {
	Tab      string `query:"tab"`
	Search   string `query:"search"`
	Category string `query:"category"`
}
