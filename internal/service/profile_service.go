package service

import (
	"context"

	"github.com/spec-kit/student-portal/internal/domain"
	"github.com/spec-kit/student-portal/internal/repository"
)

// ProfileService reads and updates the caller's own account.
type ProfileService struct {
	users repository.UserRepository
}

// NewProfileService builds the service.
func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// ProfileUpdateInput carries optional updates; nil fields are untouched.
// Variant fields apply only when the caller's role matches.
type ProfileUpdateInput struct {
	Name       *string
	Phone      *string
	Address    *string
	Major      *string
	Year       *int
	Department *string
	Title      *string
}

// Get returns the caller's account.
func (s *ProfileService) Get(ctx context.Context, subjectID int) (*domain.User, error) {
	return s.users.GetByID(ctx, subjectID)
}

// Update applies the allowed fields for the caller's role variant.
func (s *ProfileService) Update(ctx context.Context, subjectID int, in ProfileUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	if in.Address != nil {
		user.Address = in.Address
	}
	if user.Student != nil {
		if in.Major != nil {
			user.Student.Major = *in.Major
		}
		if in.Year != nil {
			user.Student.Year = *in.Year
		}
	}
	if user.Teacher != nil {
		if in.Department != nil {
			user.Teacher.Department = *in.Department
		}
		if in.Title != nil {
			user.Teacher.Title = *in.Title
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
