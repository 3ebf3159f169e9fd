package catalogRoutes

import (
	catalogController "lms/controllers/catalog"
	"lms/middleware"
	"lms/navigator"
	catalogService "lms/services/catalog"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentCatalogRoutes sets up the visibility-gated browse routes
func SetupStudentCatalogRoutes(app *fiber.App, svc *catalogService.Service, nav *navigator.Store) {
	ctrl := catalogController.NewStudentController(svc, nav)

	browseGroup := app.Group("/", middleware.JWTMiddleware)

	browseGroup.Get("/batch/list", ctrl.ListBatches)
	browseGroup.Get("/batch/:id/subjects", ctrl.ListSubjects)
	browseGroup.Get("/subject/:id/chapters", ctrl.ListChapters)
	browseGroup.Get("/chapter/:id/content", ctrl.ListContent)

	// Per-session navigation state
	browseGroup.Get("/user/navigation", ctrl.GetNavigation)
	browseGroup.Post("/user/navigation/back", ctrl.NavigationBack)
	browseGroup.Post("/user/navigation/reset", ctrl.NavigationReset)
}
