package catalogValidator

import (
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

var validate = validator.New()

type CreateBatchRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateNamedRequest struct {
	Name string `json:"name"`
}

type CreateContentRequest struct {
	Type        string         `json:"type"`
	URL         string         `json:"url"`
	Description string         `json:"description"`
	Meta        datatypes.JSON `json:"meta"`
}

// CreateBatch validates the admin batch creation body.
func CreateBatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateBatchRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		} else if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBatch", reqData)
		return c.Next()
	}
}

// CreateNamed validates subject and chapter creation, which only carry a name.
func CreateNamed(localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateNamedRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Name) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Name is required!"})
		}

		c.Locals(localKey, reqData)
		return c.Next()
	}
}

// CreateContent validates the content item body. The URL must be an absolute
// http(s) URI; the service re-checks, this is the early user-facing gate.
func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateContentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		contentType := strings.ToUpper(strings.TrimSpace(reqData.Type))
		if err := validate.Var(contentType, "required,oneof=VIDEO PDF"); err != nil {
			errors["type"] = "Type must be VIDEO or PDF!"
		}
		if err := validate.Var(strings.TrimSpace(reqData.URL), "required,url"); err != nil {
			errors["url"] = "A valid absolute URL is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}
