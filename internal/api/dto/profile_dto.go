package dto

import "github.com/spec-kit/student-portal/internal/domain"

// ProfileUpdateRequest payload; absent fields are untouched.
type ProfileUpdateRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Major      *string `json:"major"`
	Year       *int    `json:"year"`
	Department *string `json:"department"`
	Title      *string `json:"title"`
}

// ProfileResponse is the caller-facing account shape. Variant fields are
// present only for the matching role.
type ProfileResponse struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	Major      *string `json:"major,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Department *string `json:"department,omitempty"`
	Title      *string `json:"title,omitempty"`
}

// NewProfileResponse maps a domain user onto the response shape.
func NewProfileResponse(user *domain.User) ProfileResponse {
	resp := ProfileResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    string(user.Role),
		Phone:   user.Phone,
		Address: user.Address,
	}
	if user.Student != nil {
		resp.Major = &user.Student.Major
		resp.Year = &user.Student.Year
	}
	if user.Teacher != nil {
		resp.Department = &user.Teacher.Department
		resp.Title = &user.Teacher.Title
	}
	return resp
}
