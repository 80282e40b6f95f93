package entity

import "time"

// DbAttachment records an uploaded file. The bytes live in the configured
// storage backend under Path; deleting the row also deletes the bytes.
type DbAttachment struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	FileName   string    `gorm:"column:file_name;type:varchar(255);not null" json:"file_name"`
	MimeType   string    `gorm:"column:mime_type;type:varchar(128)" json:"mime_type"`
	SizeBytes  int64     `gorm:"column:size_bytes;not null" json:"size_bytes"`
	Path       string    `gorm:"column:path;type:varchar(512);not null" json:"path"`
	UploaderID uint      `gorm:"column:uploader_id;index" json:"uploader_id"`
}

// TableName overrides default pluralised name.
func (DbAttachment) TableName() string {
	return "attachments"
}

// AttachmentItem is the attachment projection returned to clients.
type AttachmentItem struct {
	ID        uint      `json:"id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// AttachmentQuery supports listing attachments.
type AttachmentQuery struct {
	BaseParams
	UploaderID uint `json:"uploader_id" form:"uploader_id" query:"uploader_id"`
}

// AttachmentListResponse is the response for listing attachments.
type AttachmentListResponse struct {
	Attachments []AttachmentItem `json:"attachments"`
	Meta        *Meta            `json:"meta"`
}
