package entity

import "time"

// DbArticle is a translatable article. The slug is derived from the default
// translation's title at creation and is unique within the article table
// only.
type DbArticle struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Slug        string    `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	CategoryID  *uint     `gorm:"column:category_id;index" json:"category_id"`
	CoverPath   string    `gorm:"column:cover_path;type:varchar(512)" json:"cover_path"`
	IsPublished bool      `gorm:"column:is_published;not null;default:false" json:"is_published"`

	Translations []DbArticleTranslation `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"translations,omitempty"`
	Tags         []DbTag                `gorm:"many2many:article_tags;joinForeignKey:ArticleID;joinReferences:TagID" json:"tags,omitempty"`
}

// TableName overrides default pluralised name.
func (DbArticle) TableName() string {
	return "articles"
}

// DbArticleTranslation carries the language-specific article fields. One row
// per entity must have is_default=true; the write path enforces it.
type DbArticleTranslation struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	ArticleID    uint   `gorm:"column:article_id;uniqueIndex:idx_article_lang;not null" json:"-"`
	LanguageCode string `gorm:"column:language_code;type:varchar(8);uniqueIndex:idx_article_lang;not null" json:"language_code"`
	IsDefault    bool   `gorm:"column:is_default;not null;default:false" json:"is_default"`
	Title        string `gorm:"column:title;type:varchar(512);not null" json:"title"`
	Summary      string `gorm:"column:summary;type:text" json:"summary"`
	Body         string `gorm:"column:body;type:text" json:"body"`
}

// TableName overrides default pluralised name.
func (DbArticleTranslation) TableName() string {
	return "article_translations"
}

// Language implements i18n.Translation.
func (t DbArticleTranslation) Language() string { return t.LanguageCode }

// Default implements i18n.Translation.
func (t DbArticleTranslation) Default() bool { return t.IsDefault }

// ArticleTranslationInput is one translation in a create/update payload.
type ArticleTranslationInput struct {
	LanguageCode string `json:"language_code" binding:"required"`
	IsDefault    bool   `json:"is_default"`
	Title        string `json:"title" binding:"required"`
	Summary      string `json:"summary"`
	Body         string `json:"body"`
}

// ArticleCreateRequest is the payload for creating an article.
type ArticleCreateRequest struct {
	CategoryID   *uint                     `json:"category_id"`
	TagIDs       []uint                    `json:"tag_ids"`
	CoverPath    string                    `json:"cover_path"`
	IsPublished  *bool                     `json:"is_published"`
	Translations []ArticleTranslationInput `json:"translations" binding:"required,min=1,dive"`
}

// ArticleUpdateRequest is the payload for updating an article. A supplied
// translations list replaces every stored translation; translations omitted
// from the list are deleted.
type ArticleUpdateRequest struct {
	CategoryID   *uint                     `json:"category_id,omitempty"`
	TagIDs       []uint                    `json:"tag_ids,omitempty"`
	CoverPath    *string                   `json:"cover_path,omitempty"`
	IsPublished  *bool                     `json:"is_published,omitempty"`
	Translations []ArticleTranslationInput `json:"translations,omitempty" binding:"omitempty,min=1,dive"`
}

// ArticleQuery supports listing articles.
type ArticleQuery struct {
	BaseParams
	CategoryID uint   `json:"category_id" form:"category_id" query:"category_id"`
	TagID      uint   `json:"tag_id" form:"tag_id" query:"tag_id"`
	Published  *bool  `json:"published" form:"published" query:"published"`
	Keyword    string `json:"keyword" form:"keyword" query:"keyword"`
}

// ArticleItem is the language-resolved list projection of an article.
type ArticleItem struct {
	ID           uint      `json:"id"`
	Slug         string    `json:"slug"`
	LanguageCode string    `json:"language_code"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	CategoryID   *uint     `json:"category_id"`
	CoverURL     string    `json:"cover_url,omitempty"`
	IsPublished  bool      `json:"is_published"`
	Tags         []TagItem `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ArticleDetail extends ArticleItem with the rendered body and the full
// translation set.
type ArticleDetail struct {
	ArticleItem
	Body         string                 `json:"body"`
	Translations []DbArticleTranslation `json:"translations"`
}

// ArticleListResponse is the response for listing articles.
type ArticleListResponse struct {
	Articles []ArticleItem `json:"articles"`
	Meta     *Meta         `json:"meta"`
}
