package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"maktaba/internal/entity"
	"maktaba/internal/i18n"
)

func bookTranslationMetas(inputs []entity.BookTranslationInput) []translationMeta {
	metas := make([]translationMeta, 0, len(inputs))
	for _, in := range inputs {
		metas = append(metas, translationMeta{Language: in.LanguageCode, IsDefault: in.IsDefault})
	}
	return metas
}

func bookTranslationRows(bookID uint, inputs []entity.BookTranslationInput) []entity.DbBookTranslation {
	rows := make([]entity.DbBookTranslation, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, entity.DbBookTranslation{
			BookID:       bookID,
			LanguageCode: i18n.NormalizeLanguage(in.LanguageCode),
			IsDefault:    in.IsDefault,
			Title:        in.Title,
			Summary:      in.Summary,
		})
	}
	return rows
}

func (h *HTTPHandler) bookItem(book *entity.DbBook, lang string) entity.BookItem {
	item := entity.BookItem{
		ID:            book.ID,
		Slug:          book.Slug,
		Author:        book.Author,
		ISBN:          book.ISBN,
		PublishedYear: book.PublishedYear,
		CoverURL:      h.publicURL(book.CoverPath),
		FileURL:       h.publicURL(book.FilePath),
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}
	if tr, ok := i18n.Resolve(book.Translations, lang); ok {
		item.LanguageCode = tr.LanguageCode
		item.Title = tr.Title
		item.Summary = tr.Summary
	}
	return item
}

func (h *HTTPHandler) bookDetail(book *entity.DbBook, lang string) entity.BookDetail {
	return entity.BookDetail{
		BookItem:     h.bookItem(book, lang),
		Translations: book.Translations,
	}
}

// CreateBook creates a book with its translations. The slug comes from the
// default translation's title.
func (h *HTTPHandler) CreateBook(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	var req entity.BookCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid book payload", err.Error())
		return
	}
	if problem := validateTranslationSet(bookTranslationMetas(req.Translations)); problem != "" {
		RespondError(c, http.StatusBadRequest, ErrCodeInvalidTranslations, problem)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	title := ""
	for _, in := range req.Translations {
		if in.IsDefault {
			title = in.Title
			break
		}
	}
	bookSlug, err := uniqueSlug(ctx, title, "book", h.repo.ListBookSlugs)
	if err != nil {
		logrus.WithError(err).Error("create book: derive slug")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	book := &entity.DbBook{
		Slug:          bookSlug,
		Author:        req.Author,
		ISBN:          req.ISBN,
		PublishedYear: req.PublishedYear,
		CoverPath:     req.CoverPath,
		FilePath:      req.FilePath,
		Translations:  bookTranslationRows(0, req.Translations),
	}
	if err := h.repo.CreateBook(ctx, book); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			RespondError(c, http.StatusConflict, ErrCodeConflict, "slug already exists, retry")
			return
		}
		logrus.WithError(err).Error("create book")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	created, err := h.repo.GetBookByID(ctx, book.ID)
	if err != nil {
		logrus.WithError(err).Error("create book: reload")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondCreated(c, h.bookDetail(created, lang))
}

// ListBooks returns the language-resolved book listing.
func (h *HTTPHandler) ListBooks(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	var params entity.BookQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid query parameters")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	books, meta, err := h.repo.ListBooks(ctx, &params)
	if err != nil {
		logrus.WithError(err).Error("list books")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	items := make([]entity.BookItem, 0, len(books))
	for i := range books {
		items = append(items, h.bookItem(&books[i], lang))
	}
	RespondOK(c, entity.BookListResponse{Books: items, Meta: meta})
}

// GetBook returns one book by slug.
func (h *HTTPHandler) GetBook(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book, err := h.repo.GetBookBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "book not found")
			return
		}
		logrus.WithError(err).Error("get book")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, h.bookDetail(book, lang))
}

// UpdateBook applies a partial update. A supplied translation list replaces
// the stored set; when it changes the default translation's title the slug is
// re-derived from the new title.
func (h *HTTPHandler) UpdateBook(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.BookUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid book payload", err.Error())
		return
	}
	if req.Translations != nil {
		if problem := validateTranslationSet(bookTranslationMetas(req.Translations)); problem != "" {
			RespondError(c, http.StatusBadRequest, ErrCodeInvalidTranslations, problem)
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.repo.GetBookByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "book not found")
			return
		}
		logrus.WithError(err).Error("update book: load")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	updates := entity.BookUpdates{
		Author:        req.Author,
		ISBN:          req.ISBN,
		PublishedYear: req.PublishedYear,
		CoverPath:     req.CoverPath,
		FilePath:      req.FilePath,
	}
	if req.Translations != nil {
		newTitle := ""
		for _, in := range req.Translations {
			if in.IsDefault {
				newTitle = in.Title
				break
			}
		}
		oldTitle := ""
		for _, tr := range existing.Translations {
			if tr.IsDefault {
				oldTitle = tr.Title
				break
			}
		}
		if newTitle != oldTitle {
			newSlug, err := recomputeSlug(ctx, newTitle, existing.Slug, h.repo.ListBookSlugs)
			if err != nil {
				logrus.WithError(err).Error("update book: derive slug")
				RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
				return
			}
			if newSlug != existing.Slug {
				updates.Slug = &newSlug
			}
		}
	}
	if !updates.IsEmpty() {
		if err := h.repo.UpdateBook(ctx, id, updates); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				RespondError(c, http.StatusConflict, ErrCodeConflict, "slug already exists, retry")
				return
			}
			logrus.WithError(err).Error("update book")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
	}

	if req.Translations != nil {
		if err := h.repo.ReplaceBookTranslations(ctx, id, bookTranslationRows(id, req.Translations)); err != nil {
			logrus.WithError(err).Error("update book: replace translations")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
	}

	book, err := h.repo.GetBookByID(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("update book: reload")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, h.bookDetail(book, lang))
}

// DeleteBook removes the book and its translations.
func (h *HTTPHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.repo.GetBookByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "book not found")
			return
		}
		logrus.WithError(err).Error("delete book: load")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	if err := h.repo.DeleteBook(ctx, id); err != nil {
		logrus.WithError(err).Error("delete book")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondMessage(c, "book deleted")
}
