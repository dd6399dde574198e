package handlers

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/event-registration/internal/storage"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// readImageUpload stores an optional multipart image and returns its URL.
// An empty string means no file was supplied.
func readImageUpload(c *fiber.Ctx, field string, store storage.ObjectStore, maxBytes int64) (string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		// form without the file part is fine; the image is optional
		return "", nil
	}

	if maxBytes > 0 && header.Size > maxBytes {
		return "", apperrors.NewValidationError("image exceeds maximum size", map[string]any{"max_bytes": maxBytes})
	}
	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", apperrors.NewValidationError("unsupported image type", map[string]any{"content_type": contentType})
	}
	if store == nil {
		return "", apperrors.NewMisconfiguration("file storage is not configured")
	}

	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	key := filepath.Join("images", uuid.NewString()+ext)
	return store.Put(c.Context(), key, data)
}
