package enrollmentRoutes

import (
	enrollmentController "lms/controllers/enrollment"
	"lms/middleware"
	enrollmentService "lms/services/enrollment"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up student requests and the admin decision queue
func SetupEnrollmentRoutes(app *fiber.App, svc *enrollmentService.Service) {
	ctrl := enrollmentController.New(svc)

	app.Post("/batch/:id/enroll", middleware.JWTMiddleware, ctrl.Enroll)
	app.Get("/user/enrollments", middleware.JWTMiddleware, ctrl.MyEnrollments)

	adminGroup := app.Group("/admin/enrollment", middleware.JWTMiddleware, middleware.AdminOnly)
	adminGroup.Get("/pending", ctrl.ListPending)
	adminGroup.Post("/:id/approve", ctrl.Approve)
	adminGroup.Post("/:id/deny", enrollmentValidator.Deny(), ctrl.Deny)
}
