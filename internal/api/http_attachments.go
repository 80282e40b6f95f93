package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"maktaba/internal/entity"
	"maktaba/internal/storage"
)

// maxAttachmentSize caps uploads at 50 MiB.
const maxAttachmentSize = 50 << 20

func attachmentItem(h *HTTPHandler, attachment *entity.DbAttachment) entity.AttachmentItem {
	return entity.AttachmentItem{
		ID:        attachment.ID,
		FileName:  attachment.FileName,
		MimeType:  attachment.MimeType,
		SizeBytes: attachment.SizeBytes,
		URL:       h.publicURL(attachment.Path),
		CreatedAt: attachment.CreatedAt,
	}
}

// UploadAttachment accepts a multipart file, writes the bytes to the
// configured storage backend, and records the attachment.
func (h *HTTPHandler) UploadAttachment(c *gin.Context) {
	principal := CurrentPrincipal(c)
	if principal == nil {
		RespondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "multipart field 'file' is required")
		return
	}
	if fileHeader.Size <= 0 {
		RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "file is empty")
		return
	}
	if fileHeader.Size > maxAttachmentSize {
		RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "file exceeds the 50 MiB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("upload attachment: open file")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAttachmentSize+1))
	if err != nil {
		logrus.WithError(err).Error("upload attachment: read file")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	if len(data) > maxAttachmentSize {
		RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "file exceeds the 50 MiB limit")
		return
	}

	originalName := filepath.Base(fileHeader.Filename)
	ext := strings.TrimPrefix(filepath.Ext(originalName), ".")
	base := strings.TrimSuffix(originalName, filepath.Ext(originalName))

	// A random suffix keeps same-named uploads from colliding in storage.
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	baseName := storage.SanitizeToken(strings.ReplaceAll(base, " ", "-"))
	if baseName == "" {
		baseName = "file"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	key, err := h.store.Save(ctx, data, storage.SaveOptions{
		Category:  "attachments",
		Extension: ext,
		BaseName:  fmt.Sprintf("%s-%s", baseName, token),
	})
	if err != nil {
		logrus.WithError(err).Error("upload attachment: save")
		RespondError(c, http.StatusInternalServerError, ErrCodeUploadFailed, "failed to store file")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	attachment := &entity.DbAttachment{
		FileName:   originalName,
		MimeType:   mimeType,
		SizeBytes:  int64(len(data)),
		Path:       key,
		UploaderID: principal.UserID,
	}
	if err := h.repo.CreateAttachment(ctx, attachment); err != nil {
		logrus.WithError(err).Error("upload attachment: persist")
		// The bytes are orphaned otherwise.
		if cleanupErr := h.store.Delete(ctx, key); cleanupErr != nil {
			logrus.WithError(cleanupErr).Warn("upload attachment: cleanup orphaned file")
		}
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	RespondCreated(c, attachmentItem(h, attachment))
}

// ListAttachments returns a paginated attachment listing.
func (h *HTTPHandler) ListAttachments(c *gin.Context) {
	var params entity.AttachmentQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid query parameters")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	attachments, meta, err := h.repo.ListAttachments(ctx, &params)
	if err != nil {
		logrus.WithError(err).Error("list attachments")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	items := make([]entity.AttachmentItem, 0, len(attachments))
	for i := range attachments {
		items = append(items, attachmentItem(h, &attachments[i]))
	}
	RespondOK(c, entity.AttachmentListResponse{Attachments: items, Meta: meta})
}

// GetAttachment returns one attachment record by id.
func (h *HTTPHandler) GetAttachment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	attachment, err := h.repo.GetAttachment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "attachment not found")
			return
		}
		logrus.WithError(err).Error("get attachment")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, attachmentItem(h, attachment))
}

// DeleteAttachment removes both the record and the stored bytes.
func (h *HTTPHandler) DeleteAttachment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	attachment, err := h.repo.GetAttachment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "attachment not found")
			return
		}
		logrus.WithError(err).Error("delete attachment: load")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	if err := h.repo.DeleteAttachment(ctx, id); err != nil {
		logrus.WithError(err).Error("delete attachment")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	if err := h.store.Delete(ctx, attachment.Path); err != nil {
		// The record is gone; log the stray bytes rather than failing the
		// request.
		logrus.WithError(err).WithField("path", attachment.Path).Warn("delete attachment: remove stored file")
	}

	RespondMessage(c, "attachment deleted")
}
