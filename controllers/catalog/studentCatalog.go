package catalogController

import (
	"lms/middleware"
	"lms/navigator"
	catalogService "lms/services/catalog"

	"github.com/gofiber/fiber/v2"
)

// StudentController serves the browse side of the catalog. Every listing is
// filtered through the enrollment visibility check at the data layer, and
// each successful browse call moves the caller's navigator.
type StudentController struct {
	svc *catalogService.Service
	nav *navigator.Store
}

func NewStudentController(svc *catalogService.Service, nav *navigator.Store) *StudentController {
	return &StudentController{svc: svc, nav: nav}
}

func caller(c *fiber.Ctx) (uint, string, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return 0, "", false
	}
	role, ok := c.Locals("userRole").(string)
	if !ok {
		return 0, "", false
	}
	return userID, role, true
}

// ListBatches returns the batches visible to the caller: all of them for an
// admin, approved-only for a student.
func (h *StudentController) ListBatches(c *fiber.Ctx) error {
	userID, role, ok := caller(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	batches, err := h.svc.VisibleBatches(userID, role)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	h.nav.Get(userID).Reset()
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batches fetched successfully!", batches)
}

func (h *StudentController) ListSubjects(c *fiber.Ctx) error {
	userID, role, ok := caller(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	batchID, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid batch id!", nil)
	}

	subjects, err := h.svc.ListSubjectsVisible(userID, role, batchID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	h.nav.Get(userID).SelectBatch(batchID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subjects fetched successfully!", subjects)
}

func (h *StudentController) ListChapters(c *fiber.Ctx) error {
	userID, role, ok := caller(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	subjectID, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	subject, err := h.svc.GetSubject(subjectID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	chapters, err := h.svc.ListChaptersVisible(userID, role, subjectID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	h.nav.Get(userID).SelectSubject(subject.BatchID, subjectID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapters fetched successfully!", chapters)
}

func (h *StudentController) ListContent(c *fiber.Ctx) error {
	userID, role, ok := caller(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	chapterID, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	chapter, err := h.svc.GetChapter(chapterID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	subject, err := h.svc.GetSubject(chapter.SubjectID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	items, err := h.svc.ListContentVisible(userID, role, chapterID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	h.nav.Get(userID).SelectChapter(subject.BatchID, subject.ID, chapterID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", items)
}

// ---- navigation ----

func (h *StudentController) GetNavigation(c *fiber.Ctx) error {
	userID, _, ok := caller(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Navigation state fetched successfully!", h.nav.Get(userID).Snapshot())
}

func (h *StudentController) NavigationBack(c *fiber.Ctx) error {
	userID, _, ok := caller(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	nav := h.nav.Get(userID)
	nav.Back()
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Navigated back.", nav.Snapshot())
}

func (h *StudentController) NavigationReset(c *fiber.Ctx) error {
	userID, _, ok := caller(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	nav := h.nav.Get(userID)
	nav.Reset()
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Navigation reset.", nav.Snapshot())
}
