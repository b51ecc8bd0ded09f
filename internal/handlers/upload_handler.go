package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"

	"boutique/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler accepts product images and serves them back.
type UploadHandler struct {
	service *services.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// RegisterRoutes registers the upload routes behind guard.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	uploadRoutes := router.Group("/upload", guard)
	uploadRoutes.Post("/product-image", h.HandleUploadImage)
	uploadRoutes.Post("/product-images", h.HandleUploadImages)
}

// RegisterFileRoutes registers the public route serving stored files.
func (h *UploadHandler) RegisterFileRoutes(router fiber.Router) {
	router.Get(services.UploadPathPrefix+":name", h.HandleServeFile)
}

// HandleUploadImage stores the single "image" part.
func (h *UploadHandler) HandleUploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No image file provided",
		})
	}

	stored, err := h.service.Store(c.UserContext(), c.BaseURL(), []services.UploadFile{uploadFile(fh)})
	if err != nil {
		return uploadError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Image uploaded successfully",
		"imageUrl": stored[0].URL,
		"filename": stored[0].Filename,
	})
}

// HandleUploadImages stores every "images" part.
func (h *UploadHandler) HandleUploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No image files provided",
		})
	}

	headers := form.File["images"]
	files := make([]services.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, uploadFile(fh))
	}

	stored, err := h.service.Store(c.UserContext(), c.BaseURL(), files)
	if err != nil {
		return uploadError(c, err)
	}
	urls := make([]string, len(stored))
	names := make([]string, len(stored))
	for i, f := range stored {
		urls[i], names[i] = f.URL, f.Filename
	}
	return c.JSON(fiber.Map{
		"message":   "Images uploaded successfully",
		"imageUrls": urls,
		"filenames": names,
	})
}

// HandleServeFile streams a stored upload.
func (h *UploadHandler) HandleServeFile(c *fiber.Ctx) error {
	name := c.Params("name")
	rc, err := h.service.Open(name)
	if err != nil {
		return writeError(c, err, "File")
	}
	// Stored names carry the extension of their checked media type.
	c.Type(filepath.Ext(name))
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	return c.SendStream(rc)
}

func uploadFile(fh *multipart.FileHeader) services.UploadFile {
	return services.UploadFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func uploadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrFileTooLarge) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "File too large. Maximum size is 5MB.",
		})
	}
	return writeError(c, err, "File")
}
