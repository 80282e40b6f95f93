package sql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"maktaba/internal/entity"
)

// CreateAttachment persists an attachment record.
func (r *GormRepository) CreateAttachment(ctx context.Context, attachment *entity.DbAttachment) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if attachment == nil {
		return fmt.Errorf("attachment is nil")
	}
	return r.db.WithContext(ctx).Create(attachment).Error
}

// GetAttachment loads an attachment by ID.
func (r *GormRepository) GetAttachment(ctx context.Context, id uint) (*entity.DbAttachment, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid attachment id")
	}
	var attachment entity.DbAttachment
	if err := r.db.WithContext(ctx).First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

var attachmentSortColumns = map[string]string{
	"id":         "id",
	"created_at": "created_at",
	"size_bytes": "size_bytes",
}

// ListAttachments returns paginated attachments.
func (r *GormRepository) ListAttachments(ctx context.Context, params *entity.AttachmentQuery) ([]entity.DbAttachment, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbAttachment{})
	if params != nil && params.UploaderID > 0 {
		query = query.Where("uploader_id = ?", params.UploaderID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var base entity.BaseParams
	if params != nil {
		base = params.BaseParams
	}
	page, pageSize, offset := pageWindow(base)

	var attachments []entity.DbAttachment
	if err := query.Order(orderClause(base, attachmentSortColumns)).Offset(offset).Limit(pageSize).Find(&attachments).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return attachments, meta, nil
}

// DeleteAttachment removes an attachment row.
func (r *GormRepository) DeleteAttachment(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid attachment id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbAttachment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
