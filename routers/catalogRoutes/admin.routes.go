package catalogRoutes

import (
	catalogController "lms/controllers/catalog"
	"lms/middleware"
	catalogService "lms/services/catalog"
	"lms/storage"
	catalogValidator "lms/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCatalogRoutes sets up all admin catalog authoring routes
func SetupAdminCatalogRoutes(app *fiber.App, svc *catalogService.Service, uploader *storage.Client) {
	ctrl := catalogController.NewAdminController(svc, uploader)

	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	// Batch CRUD
	adminGroup.Post("/batch", catalogValidator.CreateBatch(), ctrl.CreateBatch)
	adminGroup.Get("/batch/list", ctrl.ListBatches)
	adminGroup.Delete("/batch/:id", ctrl.DeleteBatch)

	// Subject management
	adminGroup.Post("/batch/:id/subject", catalogValidator.CreateNamed("validatedSubject"), ctrl.CreateSubject)
	adminGroup.Get("/batch/:id/subjects", ctrl.ListSubjects)
	adminGroup.Delete("/subject/:id", ctrl.DeleteSubject)

	// Chapter management
	adminGroup.Post("/subject/:id/chapter", catalogValidator.CreateNamed("validatedChapter"), ctrl.CreateChapter)
	adminGroup.Get("/subject/:id/chapters", ctrl.ListChapters)
	adminGroup.Delete("/chapter/:id", ctrl.DeleteChapter)

	// Content management
	adminGroup.Post("/chapter/:id/content", catalogValidator.CreateContent(), ctrl.CreateContent)
	adminGroup.Get("/chapter/:id/content", ctrl.ListContent)
	adminGroup.Delete("/content/:id", ctrl.DeleteContent)
	adminGroup.Post("/content/upload", ctrl.UploadContentFile)
}
