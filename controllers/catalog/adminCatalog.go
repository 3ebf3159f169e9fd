package catalogController

import (
	"io"
	"log"

	"lms/middleware"
	catalogService "lms/services/catalog"
	"lms/storage"
	catalogValidator "lms/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

// AdminController serves the authoring side of the catalog.
type AdminController struct {
	svc      *catalogService.Service
	uploader *storage.Client
}

func NewAdminController(svc *catalogService.Service, uploader *storage.Client) *AdminController {
	return &AdminController{svc: svc, uploader: uploader}
}

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// ---- Batch ----

func (h *AdminController) CreateBatch(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBatch").(*catalogValidator.CreateBatchRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	batch, err := h.svc.CreateBatch(reqData.Name, reqData.Description)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Batch created successfully!", batch)
}

func (h *AdminController) ListBatches(c *fiber.Ctx) error {
	batches, err := h.svc.ListBatches()
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batches fetched successfully!", batches)
}

func (h *AdminController) DeleteBatch(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid batch id!", nil)
	}

	if err := h.svc.DeleteBatch(id); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch and all its content deleted successfully!", nil)
}

// ---- Subject ----

func (h *AdminController) CreateSubject(c *fiber.Ctx) error {
	batchID, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid batch id!", nil)
	}
	reqData, ok := c.Locals("validatedSubject").(*catalogValidator.CreateNamedRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	subject, err := h.svc.CreateSubject(batchID, reqData.Name)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subject created successfully!", subject)
}

func (h *AdminController) ListSubjects(c *fiber.Ctx) error {
	batchID, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid batch id!", nil)
	}

	subjects, err := h.svc.ListSubjects(batchID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subjects fetched successfully!", subjects)
}

func (h *AdminController) DeleteSubject(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	if err := h.svc.DeleteSubject(id); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subject and all its content deleted successfully!", nil)
}

// ---- Chapter ----

func (h *AdminController) CreateChapter(c *fiber.Ctx) error {
	subjectID, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}
	reqData, ok := c.Locals("validatedChapter").(*catalogValidator.CreateNamedRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	chapter, err := h.svc.CreateChapter(subjectID, reqData.Name)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", chapter)
}

func (h *AdminController) ListChapters(c *fiber.Ctx) error {
	subjectID, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	chapters, err := h.svc.ListChapters(subjectID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapters fetched successfully!", chapters)
}

func (h *AdminController) DeleteChapter(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	if err := h.svc.DeleteChapter(id); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter and all its content deleted successfully!", nil)
}

// ---- ContentItem ----

func (h *AdminController) CreateContent(c *fiber.Ctx) error {
	chapterID, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}
	reqData, ok := c.Locals("validatedContent").(*catalogValidator.CreateContentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	item, err := h.svc.CreateContent(chapterID, reqData.Type, reqData.URL, reqData.Description, reqData.Meta)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", item)
}

func (h *AdminController) ListContent(c *fiber.Ctx) error {
	chapterID, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	items, err := h.svc.ListContent(chapterID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", items)
}

func (h *AdminController) DeleteContent(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content id!", nil)
	}

	if err := h.svc.DeleteContent(id); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", nil)
}

// UploadContentFile pushes a file to blob storage and returns the public URL
// to be used in a subsequent content creation call.
func (h *AdminController) UploadContentFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A file upload is required!", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Could not read uploaded file!", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Could not read uploaded file!", nil)
	}

	url, err := h.uploader.Upload(fileHeader.Filename, data)
	if err != nil {
		log.Printf("Error uploading content file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "File upload failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File uploaded successfully!", fiber.Map{"url": url})
}
