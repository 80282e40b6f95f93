package sql

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"maktaba/internal/entity"
)

// CreateCategory persists a category together with its translations.
func (r *GormRepository) CreateCategory(ctx context.Context, category *entity.DbCategory) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if category == nil {
		return fmt.Errorf("category is nil")
	}
	return r.db.WithContext(ctx).Create(category).Error
}

// UpdateCategory applies a partial update to category scalar fields.
func (r *GormRepository) UpdateCategory(ctx context.Context, id uint, updates entity.CategoryUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid category id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbCategory{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetCategoryByID loads a category with its translations.
func (r *GormRepository) GetCategoryByID(ctx context.Context, id uint) (*entity.DbCategory, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid category id")
	}
	var category entity.DbCategory
	if err := r.db.WithContext(ctx).Preload("Translations").First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategoryBySlug loads a category with its translations by slug.
func (r *GormRepository) GetCategoryBySlug(ctx context.Context, slug string) (*entity.DbCategory, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, fmt.Errorf("slug is empty")
	}
	var category entity.DbCategory
	if err := r.db.WithContext(ctx).Preload("Translations").Where("slug = ?", trimmed).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns all categories with their translations.
func (r *GormRepository) ListCategories(ctx context.Context) ([]entity.DbCategory, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var categories []entity.DbCategory
	if err := r.db.WithContext(ctx).Preload("Translations").Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListCategorySlugs returns every slug equal to prefix or starting with
// "prefix-".
func (r *GormRepository) ListCategorySlugs(ctx context.Context, prefix string) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var slugs []string
	if err := r.db.WithContext(ctx).Model(&entity.DbCategory{}).
		Where("slug = ? OR slug LIKE ?", prefix, prefix+"-%").
		Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

// CountCategoryChildren returns how many categories point at the given
// parent.
func (r *GormRepository) CountCategoryChildren(ctx context.Context, parentID uint) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	if parentID == 0 {
		return 0, fmt.Errorf("invalid category id")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbCategory{}).
		Where("parent_id = ?", parentID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReplaceCategoryTranslations deletes every stored translation of the
// category and recreates the supplied set in one transaction.
func (r *GormRepository) ReplaceCategoryTranslations(ctx context.Context, categoryID uint, translations []entity.DbCategoryTranslation) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if categoryID == 0 {
		return fmt.Errorf("invalid category id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&entity.DbCategoryTranslation{}).Error; err != nil {
			return err
		}
		for idx := range translations {
			translations[idx].ID = 0
			translations[idx].CategoryID = categoryID
		}
		if len(translations) == 0 {
			return nil
		}
		return tx.Create(&translations).Error
	})
}

// DeleteCategory removes a category and its translations. Articles keep
// their category_id cleared.
func (r *GormRepository) DeleteCategory(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid category id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.DbArticle{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.DbCategory{}).Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&entity.DbCategoryTranslation{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.DbCategory{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
