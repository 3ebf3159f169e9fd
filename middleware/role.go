package middleware

import (
	"errors"

	"lms/apperr"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// AdminOnly gates a route to callers whose stored role is ADMIN. Must run
// after JWTMiddleware.
func AdminOnly(c *fiber.Ctx) error {
	role, ok := c.Locals("userRole").(string)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	if role != models.RoleAdmin {
		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}
	return c.Next()
}

// ErrorResponse maps service-layer error types to HTTP responses so every
// controller presents failures the same way.
func ErrorResponse(c *fiber.Ctx, err error) error {
	var validation *apperr.ValidationError
	if errors.As(err, &validation) {
		return ValidationErrorResponse(c, validation.Fields)
	}

	var notFound *apperr.NotFoundError
	if errors.As(err, &notFound) {
		return JsonResponse(c, fiber.StatusNotFound, false, notFound.Error(), nil)
	}

	var duplicate *apperr.DuplicateRequestError
	if errors.As(err, &duplicate) {
		return JsonResponse(c, fiber.StatusConflict, false, "An enrollment request for this batch already exists!", nil)
	}

	var decided *apperr.AlreadyDecidedError
	if errors.As(err, &decided) {
		return JsonResponse(c, fiber.StatusConflict, false, "This enrollment request has already been decided!", nil)
	}

	var cascade *apperr.CascadeError
	if errors.As(err, &cascade) {
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Delete failed, nothing was removed. Please retry.", nil)
	}

	return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}
