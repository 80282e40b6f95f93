package sql

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"maktaba/internal/entity"
)

// CreateBook persists a book together with its translation rows.
func (r *GormRepository) CreateBook(ctx context.Context, book *entity.DbBook) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if book == nil {
		return fmt.Errorf("book is nil")
	}
	return r.db.WithContext(ctx).Create(book).Error
}

// UpdateBook applies a partial update to book scalar fields.
func (r *GormRepository) UpdateBook(ctx context.Context, id uint, updates entity.BookUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid book id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbBook{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetBookByID loads a book with its translations.
func (r *GormRepository) GetBookByID(ctx context.Context, id uint) (*entity.DbBook, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid book id")
	}
	var book entity.DbBook
	if err := r.db.WithContext(ctx).Preload("Translations").First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBookBySlug loads a book with its translations by slug.
func (r *GormRepository) GetBookBySlug(ctx context.Context, slug string) (*entity.DbBook, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, fmt.Errorf("slug is empty")
	}
	var book entity.DbBook
	if err := r.db.WithContext(ctx).Preload("Translations").Where("slug = ?", trimmed).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

var bookSortColumns = map[string]string{
	"id":             "id",
	"created_at":     "created_at",
	"published_year": "published_year",
}

// ListBooks returns paginated books matching the query.
func (r *GormRepository) ListBooks(ctx context.Context, params *entity.BookQuery) ([]entity.DbBook, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbBook{})
	if params != nil {
		if author := strings.TrimSpace(params.Author); author != "" {
			query = query.Where("LOWER(author) LIKE ?", "%"+strings.ToLower(author)+"%")
		}
		if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
			kw := "%" + strings.ToLower(keyword) + "%"
			query = query.Where(
				"id IN (?)",
				r.db.Model(&entity.DbBookTranslation{}).Select("book_id").Where("LOWER(title) LIKE ?", kw),
			)
		}
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

	var books []entity.DbBook
	if err := query.Preload("Translations").Order(orderClause(base, bookSortColumns)).Offset(offset).Limit(pageSize).Find(&books).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return books, meta, nil
}

// ListBookSlugs returns every slug equal to prefix or starting with
// "prefix-".
func (r *GormRepository) ListBookSlugs(ctx context.Context, prefix string) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var slugs []string
	if err := r.db.WithContext(ctx).Model(&entity.DbBook{}).
		Where("slug = ? OR slug LIKE ?", prefix, prefix+"-%").
		Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

// ReplaceBookTranslations deletes every stored translation of the book and
// recreates the supplied set in one transaction.
func (r *GormRepository) ReplaceBookTranslations(ctx context.Context, bookID uint, translations []entity.DbBookTranslation) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if bookID == 0 {
		return fmt.Errorf("invalid book id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", bookID).Delete(&entity.DbBookTranslation{}).Error; err != nil {
			return err
		}
		for idx := range translations {
			translations[idx].ID = 0
			translations[idx].BookID = bookID
		}
		if len(translations) == 0 {
			return nil
		}
		return tx.Create(&translations).Error
	})
}

// DeleteBook removes a book and its translations.
func (r *GormRepository) DeleteBook(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid book id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&entity.DbBookTranslation{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.DbBook{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
