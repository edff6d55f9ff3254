package httpapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/docstreamhq/docstream/constants"
	"github.com/docstreamhq/docstream/internal/common"
	"github.com/docstreamhq/docstream/internal/ingest"
)

// UploadHandler accepts multipart document uploads and hands them to the
// ingest service. A dispatched upload answers 201, an accepted-but-queued
// one answers 202.
type UploadHandler struct {
	Service  *ingest.Service
	Logger   *slog.Logger
	MaxBytes int64
}

type uploadResponse struct {
	DocumentID string `json:"documentId"`
	JobID      string `json:"jobId"`
	Status     string `json:"status"`
	Title      string `json:"title"`
	StorageKey string `json:"storageKey"`
	Size       int64  `json:"size"`
	MimeType   string `json:"mimeType"`
	CreatedAt  string `json:"createdAt"`
}

// Upload handles POST /documents/upload.
func (h *UploadHandler) Upload(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		abortJSON(c, http.StatusUnauthorized, "authentication required")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	// The limit counts characters, not bytes; a multibyte title must not be
	// rejected early.
	if utf8.RuneCountInString(title) > constants.MaxTitleLength {
		abortJSON(c, http.StatusBadRequest, "title must be 500 characters or fewer")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortJSON(c, http.StatusBadRequest, "file field is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.Logger.Error("opening multipart file failed", "err", err)
		abortJSON(c, http.StatusBadRequest, "file could not be read")
		return
	}
	defer file.Close()

	// Read one byte past the cap so oversize payloads are told apart from
	// exactly-at-cap ones.
	data, err := io.ReadAll(io.LimitReader(file, h.MaxBytes+1))
	if err != nil {
		h.Logger.Error("reading multipart file failed", "err", err)
		abortJSON(c, http.StatusBadRequest, "file could not be read")
		return
	}

	result, err := h.Service.Upload(c.Request.Context(), ingest.UploadInput{
		OwnerID:  ownerID,
		Filename: fileHeader.Filename,
		Title:    title,
		Data:     data,
	})
	if err != nil {
		h.writeUploadError(c, err)
		return
	}

	status := http.StatusAccepted
	if result.Dispatched {
		status = http.StatusCreated
	}
	c.JSON(status, uploadResponse{
		DocumentID: result.Document.ID.String(),
		JobID:      result.Job.ID.String(),
		Status:     strings.ToLower(string(result.Job.Status)),
		Title:      result.Document.Title,
		StorageKey: result.Document.StorageKey,
		Size:       result.Document.FileSize,
		MimeType:   result.Document.MimeType,
		CreatedAt:  result.Document.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *UploadHandler) writeUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrMissingFile):
		abortJSON(c, http.StatusBadRequest, "uploaded file is empty")
	case errors.Is(err, common.ErrUnsupportedMediaType):
		abortJSON(c, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, common.ErrPayloadTooLarge):
		abortJSON(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, common.ErrUpstreamStorage):
		h.Logger.Error("upload rejected by object storage", "err", err)
		abortJSON(c, http.StatusBadGateway, "object storage is unavailable")
	default:
		h.Logger.Error("upload failed", "err", err)
		abortJSON(c, http.StatusInternalServerError, "upload failed")
	}
}
