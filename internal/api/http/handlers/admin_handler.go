package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-portal/internal/api/dto"
	"github.com/spec-kit/student-portal/internal/auth"
	"github.com/spec-kit/student-portal/internal/service"
)

// AdminHandler exposes dashboard and announcement endpoints.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats handles GET /admin/dashboard/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.Context())
	if err != nil {
		return err
	}

	out := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		out = append(out, fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		})
	}
	return c.JSON(fiber.Map{"data": out})
}

// Activity handles GET /admin/activity-logs.
func (h *AdminHandler) Activity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	logs, err := h.admin.RecentActivity(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": logs})
}

// Announce handles POST /admin/announcements.
func (h *AdminHandler) Announce(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.AnnouncementRequest
	if err := c.BodyParser(&req); err != nil || req.TargetSubjectID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "target_subject_id and title required")
	}

	announcement, err := h.admin.Announce(c.Context(), identity.SubjectID, req.TargetSubjectID, req.Title, req.Body)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	h.admin.LogActivity(c.Context(), "announcement created", identity.SubjectID)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": announcement})
}
