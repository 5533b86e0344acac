package uploads

import (
	uploadsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/uploads"
	"github.com/badaskaptan/kargomarket-sub002/internal/middleware"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *uploadsvc.Service
}

// POST /api/v1/uploads/listing-document — multipart batch upload. Files go
// up one at a time in form order; a rejected or failed file is reported in
// the result and the rest still upload. Use bucket=ad-media for ad images
// and video.
func (h *Handlers) UploadListingDocuments(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	if h.Service == nil || h.Service.Client == nil {
		return response.Error(c, "Uploads are not configured", 503, nil)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, "Multipart form is required", 400, nil)
	}

	bucket := uploadsvc.BucketDocuments
	if c.FormValue("bucket") == uploadsvc.BucketAdMedia {
		bucket = uploadsvc.BucketAdMedia
	}

	files, err := uploadsvc.FilesFromMultipart(form.File["files"])
	if err != nil {
		return response.Error(c, "Failed to read uploaded files", 400, nil)
	}
	if len(files) == 0 {
		return response.Error(c, "No files provided", 400, nil)
	}

	res := h.Service.UploadBatch(c.Context(), userID.String(), bucket, files)
	return response.Success(c, "Upload batch processed", res, nil)
}
