package enrollmentValidator

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

type DenyRequest struct {
	Reason string `json:"reason"`
}

// Deny validates the optional denial reason body. An empty body is fine.
func Deny() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(DenyRequest)

		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		if len(strings.TrimSpace(reqData.Reason)) > 500 {
			return middleware.ValidationErrorResponse(c, map[string]string{"reason": "Reason must be at most 500 characters!"})
		}

		c.Locals("validatedDeny", reqData)
		return c.Next()
	}
}
