package entity

import "time"

// DbResearch is a translatable research paper record.
type DbResearch struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Slug        string     `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	Author      string     `gorm:"column:author;type:varchar(255)" json:"author"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at"`
	FilePath    string     `gorm:"column:file_path;type:varchar(512)" json:"file_path"`

	Translations []DbResearchTranslation `gorm:"foreignKey:ResearchID;constraint:OnDelete:CASCADE" json:"translations,omitempty"`
}

// TableName overrides default pluralised name.
func (DbResearch) TableName() string {
	return "research_papers"
}

// DbResearchTranslation carries the language-specific research fields.
type DbResearchTranslation struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	ResearchID   uint   `gorm:"column:research_id;uniqueIndex:idx_research_lang;not null" json:"-"`
	LanguageCode string `gorm:"column:language_code;type:varchar(8);uniqueIndex:idx_research_lang;not null" json:"language_code"`
	IsDefault    bool   `gorm:"column:is_default;not null;default:false" json:"is_default"`
	Title        string `gorm:"column:title;type:varchar(512);not null" json:"title"`
	Abstract     string `gorm:"column:abstract;type:text" json:"abstract"`
}

// TableName overrides default pluralised name.
func (DbResearchTranslation) TableName() string {
	return "research_translations"
}

// Language implements i18n.Translation.
func (t DbResearchTranslation) Language() string { return t.LanguageCode }

// Default implements i18n.Translation.
func (t DbResearchTranslation) Default() bool { return t.IsDefault }

// ResearchTranslationInput is one translation in a create/update payload.
type ResearchTranslationInput struct {
	LanguageCode string `json:"language_code" binding:"required"`
	IsDefault    bool   `json:"is_default"`
	Title        string `json:"title" binding:"required"`
	Abstract     string `json:"abstract"`
}

// ResearchCreateRequest is the payload for creating a research paper.
type ResearchCreateRequest struct {
	Author       string                     `json:"author"`
	PublishedAt  *time.Time                 `json:"published_at"`
	FilePath     string                     `json:"file_path"`
	Translations []ResearchTranslationInput `json:"translations" binding:"required,min=1,dive"`
}

// ResearchUpdateRequest is the payload for updating a research paper.
type ResearchUpdateRequest struct {
	Author       *string                    `json:"author,omitempty"`
	PublishedAt  *time.Time                 `json:"published_at,omitempty"`
	FilePath     *string                    `json:"file_path,omitempty"`
	Translations []ResearchTranslationInput `json:"translations,omitempty" binding:"omitempty,min=1,dive"`
}

// ResearchQuery supports listing research papers.
type ResearchQuery struct {
	BaseParams
	Author  string `json:"author" form:"author" query:"author"`
	Keyword string `json:"keyword" form:"keyword" query:"keyword"`
}

// ResearchItem is the language-resolved projection of a research paper.
type ResearchItem struct {
	ID           uint       `json:"id"`
	Slug         string     `json:"slug"`
	LanguageCode string     `json:"language_code"`
	Title        string     `json:"title"`
	Abstract     string     `json:"abstract"`
	Author       string     `json:"author"`
	PublishedAt  *time.Time `json:"published_at"`
	FileURL      string     `json:"file_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ResearchDetail extends ResearchItem with the full translation set.
type ResearchDetail struct {
	ResearchItem
	Translations []DbResearchTranslation `json:"translations"`
}

// ResearchListResponse is the response for listing research papers.
type ResearchListResponse struct {
	Research []ResearchItem `json:"research"`
	Meta     *Meta          `json:"meta"`
}
