package entity

import "time"

// DbTag is a translatable tag.
type DbTag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Slug      string    `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`

	Translations []DbTagTranslation `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"translations,omitempty"`
}

// TableName overrides default pluralised name.
func (DbTag) TableName() string {
	return "tags"
}

// DbTagTranslation carries the language-specific tag name.
type DbTagTranslation struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	TagID        uint   `gorm:"column:tag_id;uniqueIndex:idx_tag_lang;not null" json:"-"`
	LanguageCode string `gorm:"column:language_code;type:varchar(8);uniqueIndex:idx_tag_lang;not null" json:"language_code"`
	IsDefault    bool   `gorm:"column:is_default;not null;default:false" json:"is_default"`
	Name         string `gorm:"column:name;type:varchar(255);not null" json:"name"`
}

// TableName overrides default pluralised name.
func (DbTagTranslation) TableName() string {
	return "tag_translations"
}

// Language implements i18n.Translation.
func (t DbTagTranslation) Language() string { return t.LanguageCode }

// Default implements i18n.Translation.
func (t DbTagTranslation) Default() bool { return t.IsDefault }

// TagCreateRequest is the payload for creating a tag.
type TagCreateRequest struct {
	Translations []NameTranslationInput `json:"translations" binding:"required,min=1,dive"`
}

// TagUpdateRequest is the payload for updating a tag.
type TagUpdateRequest struct {
	Translations []NameTranslationInput `json:"translations" binding:"required,min=1,dive"`
}

// TagItem is the language-resolved projection of a tag.
type TagItem struct {
	ID           uint   `json:"id"`
	Slug         string `json:"slug"`
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
}

// TagDetail extends TagItem with the full translation set.
type TagDetail struct {
	TagItem
	Translations []DbTagTranslation `json:"translations"`
}

// TagListResponse is the response for listing tags.
type TagListResponse struct {
	Tags []TagItem `json:"tags"`
}
