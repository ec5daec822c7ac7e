package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/student-portal/internal/domain"
	"github.com/spec-kit/student-portal/internal/repository"
)

// CourseService coordinates course, enrollment and material workflows.
type CourseService struct {
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	materials   repository.MaterialRepository
	users       repository.UserRepository
}

// CourseDependencies bundles repositories for course service.
type CourseDependencies struct {
	CourseRepo     repository.CourseRepository
	EnrollmentRepo repository.EnrollmentRepository
	MaterialRepo   repository.MaterialRepository
	UserRepo       repository.UserRepository
}

// NewCourseService constructs the service.
func NewCourseService(deps CourseDependencies) *CourseService {
	return &CourseService{
		courses:     deps.CourseRepo,
		enrollments: deps.EnrollmentRepo,
		materials:   deps.MaterialRepo,
		users:       deps.UserRepo,
	}
}

// CourseCreateInput describes course creation payload.
type CourseCreateInput struct {
	Code        string
	Title       string
	Description string
	TeacherID   int
	Credits     int
}

// Create registers a new course owned by a teacher.
func (s *CourseService) Create(ctx context.Context, in CourseCreateInput) (*domain.Course, error) {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("code and title required")
	}
	teacher, err := s.users.GetByID(ctx, in.TeacherID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("teacher not found")
		}
		return nil, err
	}
	if teacher.Role != domain.RoleTeacher {
		return nil, errors.New("course owner must be a teacher")
	}

	course := &domain.Course{
		Code:        in.Code,
		Title:       in.Title,
		Description: in.Description,
		TeacherID:   in.TeacherID,
		Credits:     in.Credits,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// List returns all courses.
func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	return s.courses.List(ctx)
}

// ListByTeacher returns courses owned by the teacher.
func (s *CourseService) ListByTeacher(ctx context.Context, teacherID int) ([]domain.Course, error) {
	return s.courses.ListByTeacher(ctx, teacherID)
}

// ListEnrolled returns the courses a student is enrolled in.
func (s *CourseService) ListEnrolled(ctx context.Context, studentID int) ([]domain.Course, error) {
	enrollments, err := s.enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Course, 0, len(enrollments))
	for _, enrollment := range enrollments {
		course, err := s.courses.GetByID(ctx, enrollment.CourseID)
		if err != nil {
			if err == pgx.ErrNoRows {
				continue
			}
			return nil, err
		}
		result = append(result, *course)
	}
	return result, nil
}

// Enroll links a student to a course.
func (s *CourseService) Enroll(ctx context.Context, courseID, studentID int) (*domain.Enrollment, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("course not found")
		}
		return nil, err
	}
	exists, err := s.enrollments.Exists(ctx, courseID, studentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("already enrolled")
	}

	enrollment := &domain.Enrollment{CourseID: courseID, StudentID: studentID}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// AddMaterial attaches a resource to a course owned by the caller.
func (s *CourseService) AddMaterial(ctx context.Context, courseID, teacherID int, title, url string) (*domain.Material, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("course not found")
		}
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, errors.New("course owned by another teacher")
	}

	material := &domain.Material{CourseID: courseID, Title: title, URL: url}
	if err := s.materials.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// ListMaterials returns a course's materials.
func (s *CourseService) ListMaterials(ctx context.Context, courseID int) ([]domain.Material, error) {
	return s.materials.ListByCourse(ctx, courseID)
}
