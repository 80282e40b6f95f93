package sql

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"maktaba/internal/entity"
)

// CreateResearch persists a research paper together with its translations.
func (r *GormRepository) CreateResearch(ctx context.Context, research *entity.DbResearch) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if research == nil {
		return fmt.Errorf("research is nil")
	}
	return r.db.WithContext(ctx).Create(research).Error
}

// UpdateResearch applies a partial update to research scalar fields.
func (r *GormRepository) UpdateResearch(ctx context.Context, id uint, updates entity.ResearchUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid research id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbResearch{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetResearchByID loads a research paper with its translations.
func (r *GormRepository) GetResearchByID(ctx context.Context, id uint) (*entity.DbResearch, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid research id")
	}
	var research entity.DbResearch
	if err := r.db.WithContext(ctx).Preload("Translations").First(&research, id).Error; err != nil {
		return nil, err
	}
	return &research, nil
}

// GetResearchBySlug loads a research paper with its translations by slug.
func (r *GormRepository) GetResearchBySlug(ctx context.Context, slug string) (*entity.DbResearch, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, fmt.Errorf("slug is empty")
	}
	var research entity.DbResearch
	if err := r.db.WithContext(ctx).Preload("Translations").Where("slug = ?", trimmed).First(&research).Error; err != nil {
		return nil, err
	}
	return &research, nil
}

var researchSortColumns = map[string]string{
	"id":           "id",
	"created_at":   "created_at",
	"published_at": "published_at",
}

// ListResearch returns paginated research papers matching the query.
func (r *GormRepository) ListResearch(ctx context.Context, params *entity.ResearchQuery) ([]entity.DbResearch, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbResearch{})
	if params != nil {
		if author := strings.TrimSpace(params.Author); author != "" {
			query = query.Where("LOWER(author) LIKE ?", "%"+strings.ToLower(author)+"%")
		}
		if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
			kw := "%" + strings.ToLower(keyword) + "%"
			query = query.Where(
				"id IN (?)",
				r.db.Model(&entity.DbResearchTranslation{}).Select("research_id").Where("LOWER(title) LIKE ?", kw),
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

	var papers []entity.DbResearch
	if err := query.Preload("Translations").Order(orderClause(base, researchSortColumns)).Offset(offset).Limit(pageSize).Find(&papers).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return papers, meta, nil
}

// ListResearchSlugs returns every slug equal to prefix or starting with
// "prefix-".
func (r *GormRepository) ListResearchSlugs(ctx context.Context, prefix string) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var slugs []string
	if err := r.db.WithContext(ctx).Model(&entity.DbResearch{}).
		Where("slug = ? OR slug LIKE ?", prefix, prefix+"-%").
		Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

// ReplaceResearchTranslations deletes every stored translation of the paper
// and recreates the supplied set in one transaction.
func (r *GormRepository) ReplaceResearchTranslations(ctx context.Context, researchID uint, translations []entity.DbResearchTranslation) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if researchID == 0 {
		return fmt.Errorf("invalid research id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("research_id = ?", researchID).Delete(&entity.DbResearchTranslation{}).Error; err != nil {
			return err
		}
		for idx := range translations {
			translations[idx].ID = 0
			translations[idx].ResearchID = researchID
		}
		if len(translations) == 0 {
			return nil
		}
		return tx.Create(&translations).Error
	})
}

// DeleteResearch removes a research paper and its translations.
func (r *GormRepository) DeleteResearch(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid research id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("research_id = ?", id).Delete(&entity.DbResearchTranslation{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.DbResearch{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
