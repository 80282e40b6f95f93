package sql

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"maktaba/internal/entity"
)

// CreateTag persists a tag together with its translations.
func (r *GormRepository) CreateTag(ctx context.Context, tag *entity.DbTag) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if tag == nil {
		return fmt.Errorf("tag is nil")
	}
	return r.db.WithContext(ctx).Create(tag).Error
}

// UpdateTag applies a partial update to tag scalar fields.
func (r *GormRepository) UpdateTag(ctx context.Context, id uint, updates entity.TagUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid tag id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbTag{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetTagByID loads a tag with its translations.
func (r *GormRepository) GetTagByID(ctx context.Context, id uint) (*entity.DbTag, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid tag id")
	}
	var tag entity.DbTag
	if err := r.db.WithContext(ctx).Preload("Translations").First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTagBySlug loads a tag with its translations by slug.
func (r *GormRepository) GetTagBySlug(ctx context.Context, slug string) (*entity.DbTag, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, fmt.Errorf("slug is empty")
	}
	var tag entity.DbTag
	if err := r.db.WithContext(ctx).Preload("Translations").Where("slug = ?", trimmed).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListTags returns all tags with their translations.
func (r *GormRepository) ListTags(ctx context.Context) ([]entity.DbTag, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var tags []entity.DbTag
	if err := r.db.WithContext(ctx).Preload("Translations").Order("slug ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ListTagSlugs returns every slug equal to prefix or starting with
// "prefix-".
func (r *GormRepository) ListTagSlugs(ctx context.Context, prefix string) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var slugs []string
	if err := r.db.WithContext(ctx).Model(&entity.DbTag{}).
		Where("slug = ? OR slug LIKE ?", prefix, prefix+"-%").
		Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

// FindTagsByIDs fetches tags by ids.
func (r *GormRepository) FindTagsByIDs(ctx context.Context, ids []uint) ([]entity.DbTag, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if len(ids) == 0 {
		return []entity.DbTag{}, nil
	}
	var tags []entity.DbTag
	if err := r.db.WithContext(ctx).Preload("Translations").Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ReplaceTagTranslations deletes every stored translation of the tag and
// recreates the supplied set in one transaction.
func (r *GormRepository) ReplaceTagTranslations(ctx context.Context, tagID uint, translations []entity.DbTagTranslation) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if tagID == 0 {
		return fmt.Errorf("invalid tag id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tagID).Delete(&entity.DbTagTranslation{}).Error; err != nil {
			return err
		}
		for idx := range translations {
			translations[idx].ID = 0
			translations[idx].TagID = tagID
		}
		if len(translations) == 0 {
			return nil
		}
		return tx.Create(&translations).Error
	})
}

// DeleteTag removes a tag, its translations, and its article links.
func (r *GormRepository) DeleteTag(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid tag id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM article_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", id).Delete(&entity.DbTagTranslation{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.DbTag{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
