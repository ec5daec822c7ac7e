package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-portal/internal/api/dto"
	"github.com/spec-kit/student-portal/internal/auth"
	"github.com/spec-kit/student-portal/internal/domain"
	"github.com/spec-kit/student-portal/internal/service"
)

// FinancialHandler exposes ledger endpoints.
type FinancialHandler struct {
	financial *service.FinancialService
}

// NewFinancialHandler constructs handler.
func NewFinancialHandler(financial *service.FinancialService) *FinancialHandler {
	return &FinancialHandler{financial: financial}
}

// MyLedger handles GET /financial/me (student).
func (h *FinancialHandler) MyLedger(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	records, balance, err := h.financial.Ledger(c.Context(), identity.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"records":       records,
		"balance_cents": balance,
	}})
}

// PostCharge handles POST /financial/charges (admin).
func (h *FinancialHandler) PostCharge(c *fiber.Ctx) error {
	var req dto.ChargeRequest
	if err := c.BodyParser(&req); err != nil || req.StudentID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "student_id required")
	}

	record, err := h.financial.PostCharge(c.Context(), service.ChargeInput{
		StudentID:   req.StudentID,
		Kind:        domain.FinancialKind(req.Kind),
		Description: req.Description,
		AmountCents: req.AmountCents,
		Reference:   req.Reference,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": record})
}

// PostPayment handles POST /financial/payments (admin).
func (h *FinancialHandler) PostPayment(c *fiber.Ctx) error {
	var req dto.PaymentRequest
	if err := c.BodyParser(&req); err != nil || req.StudentID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "student_id required")
	}

	record, err := h.financial.PostPayment(c.Context(), req.StudentID, req.AmountCents, req.Reference)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": record})
}
