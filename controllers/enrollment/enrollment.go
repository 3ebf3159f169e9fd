package enrollmentController

import (
	"lms/middleware"
	enrollmentService "lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// Controller serves the student side of the enrollment workflow.
type Controller struct {
	svc *enrollmentService.Service
}

func New(svc *enrollmentService.Service) *Controller {
	return &Controller{svc: svc}
}

// Enroll files an enrollment request for the caller.
func (h *Controller) Enroll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	batchID, err := c.ParamsInt("id")
	if err != nil || batchID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid batch id!", nil)
	}

	request, err := h.svc.Request(userID, uint(batchID))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment requested. Waiting for admin approval.", request)
}

// MyEnrollments lists the caller's requests with their statuses.
func (h *Controller) MyEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requests, err := h.svc.ListByUser(userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", requests)
}
