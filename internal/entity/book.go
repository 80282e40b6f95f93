package entity

import "time"

// DbBook is a translatable book record.
type DbBook struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Slug          string    `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	Author        string    `gorm:"column:author;type:varchar(255)" json:"author"`
	ISBN          string    `gorm:"column:isbn;type:varchar(32)" json:"isbn"`
	PublishedYear int       `gorm:"column:published_year" json:"published_year"`
	CoverPath     string    `gorm:"column:cover_path;type:varchar(512)" json:"cover_path"`
	FilePath      string    `gorm:"column:file_path;type:varchar(512)" json:"file_path"`

	Translations []DbBookTranslation `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"translations,omitempty"`
}

// TableName overrides default pluralised name.
func (DbBook) TableName() string {
	return "books"
}

// DbBookTranslation carries the language-specific book fields.
type DbBookTranslation struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	BookID       uint   `gorm:"column:book_id;uniqueIndex:idx_book_lang;not null" json:"-"`
	LanguageCode string `gorm:"column:language_code;type:varchar(8);uniqueIndex:idx_book_lang;not null" json:"language_code"`
	IsDefault    bool   `gorm:"column:is_default;not null;default:false" json:"is_default"`
	Title        string `gorm:"column:title;type:varchar(512);not null" json:"title"`
	Summary      string `gorm:"column:summary;type:text" json:"summary"`
}

// TableName overrides default pluralised name.
func (DbBookTranslation) TableName() string {
	return "book_translations"
}

// Language implements i18n.Translation.
func (t DbBookTranslation) Language() string { return t.LanguageCode }

// Default implements i18n.Translation.
func (t DbBookTranslation) Default() bool { return t.IsDefault }

// BookTranslationInput is one translation in a create/update payload.
type BookTranslationInput struct {
	LanguageCode string `json:"language_code" binding:"required"`
	IsDefault    bool   `json:"is_default"`
	Title        string `json:"title" binding:"required"`
	Summary      string `json:"summary"`
}

// BookCreateRequest is the payload for creating a book.
type BookCreateRequest struct {
	Author        string                 `json:"author"`
	ISBN          string                 `json:"isbn"`
	PublishedYear int                    `json:"published_year"`
	CoverPath     string                 `json:"cover_path"`
	FilePath      string                 `json:"file_path"`
	Translations  []BookTranslationInput `json:"translations" binding:"required,min=1,dive"`
}

// BookUpdateRequest is the payload for updating a book.
type BookUpdateRequest struct {
	Author        *string                `json:"author,omitempty"`
	ISBN          *string                `json:"isbn,omitempty"`
	PublishedYear *int                   `json:"published_year,omitempty"`
	CoverPath     *string                `json:"cover_path,omitempty"`
	FilePath      *string                `json:"file_path,omitempty"`
	Translations  []BookTranslationInput `json:"translations,omitempty" binding:"omitempty,min=1,dive"`
}

// BookQuery supports listing books.
type BookQuery struct {
	BaseParams
	Author  string `json:"author" form:"author" query:"author"`
	Keyword string `json:"keyword" form:"keyword" query:"keyword"`
}

// BookItem is the language-resolved projection of a book.
type BookItem struct {
	ID            uint      `json:"id"`
	Slug          string    `json:"slug"`
	LanguageCode  string    `json:"language_code"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	PublishedYear int       `json:"published_year"`
	CoverURL      string    `json:"cover_url,omitempty"`
	FileURL       string    `json:"file_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BookDetail extends BookItem with the full translation set.
type BookDetail struct {
	BookItem
	Translations []DbBookTranslation `json:"translations"`
}

// BookListResponse is the response for listing books.
type BookListResponse struct {
	Books []BookItem `json:"books"`
	Meta  *Meta      `json:"meta"`
}
