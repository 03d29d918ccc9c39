package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-tracker/backend/internal/middleware"
	"github.com/pageza/recipe-tracker/backend/internal/service"
)

// multipartOverhead is the allowance for form boundaries and headers on top
// of the image itself.
const multipartOverhead = 1 << 20

type ImageHandler struct {
	images service.IRecipeImageService
}

func NewImageHandler(images service.IRecipeImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// UploadRecipeImage accepts a multipart "image" field and stores it as the
// recipe's picture. The content type is sniffed, not taken from the client.
func (h *ImageHandler) UploadRecipeImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Recipe not found")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageSize+multipartOverhead)
	header, err := c.FormFile("image")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(c, http.StatusRequestEntityTooLarge, "image must be at most 5 MiB")
		return
	}
	if err != nil {
		respondError(c, http.StatusBadRequest, "image is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "image could not be read")
		return
	}
	defer file.Close()

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		respondError(c, http.StatusBadRequest, "image could not be read")
		return
	}
	sniff = sniff[:n]
	contentType := http.DetectContentType(sniff)

	userID, _ := middleware.UserID(c)
	body := io.MultiReader(bytes.NewReader(sniff), file)
	recipe, err := h.images.UploadRecipeImage(c.Request.Context(), id, userID, body, header.Size, contentType)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Recipe image uploaded successfully", recipe)
}
