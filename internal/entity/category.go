package entity

import "time"

// DbCategory is a translatable category. Categories may nest one level deep
// through ParentID.
type DbCategory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Slug      string    `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	ParentID  *uint     `gorm:"column:parent_id;index" json:"parent_id"`

	Translations []DbCategoryTranslation `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"translations,omitempty"`
}

// TableName overrides default pluralised name.
func (DbCategory) TableName() string {
	return "categories"
}

// DbCategoryTranslation carries the language-specific category name.
type DbCategoryTranslation struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	CategoryID   uint   `gorm:"column:category_id;uniqueIndex:idx_category_lang;not null" json:"-"`
	LanguageCode string `gorm:"column:language_code;type:varchar(8);uniqueIndex:idx_category_lang;not null" json:"language_code"`
	IsDefault    bool   `gorm:"column:is_default;not null;default:false" json:"is_default"`
	Name         string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description  string `gorm:"column:description;type:text" json:"description"`
}

// TableName overrides default pluralised name.
func (DbCategoryTranslation) TableName() string {
	return "category_translations"
}

// Language implements i18n.Translation.
func (t DbCategoryTranslation) Language() string { return t.LanguageCode }

// Default implements i18n.Translation.
func (t DbCategoryTranslation) Default() bool { return t.IsDefault }

// NameTranslationInput is one name translation in a category or tag payload.
type NameTranslationInput struct {
	LanguageCode string `json:"language_code" binding:"required"`
	IsDefault    bool   `json:"is_default"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
}

// CategoryCreateRequest is the payload for creating a category.
type CategoryCreateRequest struct {
	ParentID     *uint                  `json:"parent_id"`
	Translations []NameTranslationInput `json:"translations" binding:"required,min=1,dive"`
}

// CategoryUpdateRequest is the payload for updating a category.
type CategoryUpdateRequest struct {
	ParentID     *uint                  `json:"parent_id,omitempty"`
	Translations []NameTranslationInput `json:"translations,omitempty" binding:"omitempty,min=1,dive"`
}

// CategoryItem is the language-resolved projection of a category.
type CategoryItem struct {
	ID           uint      `json:"id"`
	Slug         string    `json:"slug"`
	LanguageCode string    `json:"language_code"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ParentID     *uint     `json:"parent_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryDetail extends CategoryItem with the full translation set.
type CategoryDetail struct {
	CategoryItem
	Translations []DbCategoryTranslation `json:"translations"`
}

// CategoryListResponse is the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryItem `json:"categories"`
}
