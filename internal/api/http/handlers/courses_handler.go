package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-portal/internal/api/dto"
	"github.com/spec-kit/student-portal/internal/auth"
	"github.com/spec-kit/student-portal/internal/domain"
	"github.com/spec-kit/student-portal/internal/service"
)

// CoursesHandler exposes course, enrollment and material endpoints.
type CoursesHandler struct {
	courses *service.CourseService
}

// NewCoursesHandler constructs handler.
func NewCoursesHandler(courses *service.CourseService) *CoursesHandler {
	return &CoursesHandler{courses: courses}
}

// List handles GET /courses.
func (h *CoursesHandler) List(c *fiber.Ctx) error {
	courses, err := h.courses.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": courses})
}

// Mine handles GET /courses/mine: enrolled courses for students, owned
// courses for teachers.
func (h *CoursesHandler) Mine(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var (
		courses []domain.Course
		err     error
	)
	switch identity.Role {
	case domain.RoleTeacher:
		courses, err = h.courses.ListByTeacher(c.Context(), identity.SubjectID)
	default:
		courses, err = h.courses.ListEnrolled(c.Context(), identity.SubjectID)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": courses})
}

// Create handles POST /courses (teacher/admin).
func (h *CoursesHandler) Create(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.CourseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	teacherID := req.TeacherID
	if identity.Role == domain.RoleTeacher {
		// teachers only create their own courses
		teacherID = identity.SubjectID
	}

	course, err := h.courses.Create(c.Context(), service.CourseCreateInput{
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		TeacherID:   teacherID,
		Credits:     req.Credits,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": course})
}

// Enroll handles POST /courses/enroll. Students enroll themselves;
// admins may enroll any student.
func (h *CoursesHandler) Enroll(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil || req.CourseID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "course_id required")
	}
	studentID := identity.SubjectID
	if identity.Role == domain.RoleAdmin && req.StudentID > 0 {
		studentID = req.StudentID
	}

	enrollment, err := h.courses.Enroll(c.Context(), req.CourseID, studentID)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": enrollment})
}

// ListMaterials handles GET /courses/:id/materials.
func (h *CoursesHandler) ListMaterials(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid course id")
	}

	materials, err := h.courses.ListMaterials(c.Context(), courseID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": materials})
}

// AddMaterial handles POST /courses/:id/materials (teacher).
func (h *CoursesHandler) AddMaterial(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid course id")
	}

	var req dto.MaterialCreateRequest
	if err := c.BodyParser(&req); err != nil || req.Title == "" {
		return fiber.NewError(http.StatusBadRequest, "title required")
	}

	material, err := h.courses.AddMaterial(c.Context(), courseID, identity.SubjectID, req.Title, req.URL)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": material})
}
