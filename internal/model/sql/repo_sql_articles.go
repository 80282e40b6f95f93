package sql

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"maktaba/internal/entity"
)

// CreateArticle persists an article together with its translation rows.
func (r *GormRepository) CreateArticle(ctx context.Context, article *entity.DbArticle) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if article == nil {
		return fmt.Errorf("article is nil")
	}
	return r.db.WithContext(ctx).Omit("Tags").Create(article).Error
}

// UpdateArticle applies a partial update to article scalar fields.
func (r *GormRepository) UpdateArticle(ctx context.Context, id uint, updates entity.ArticleUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid article id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbArticle{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetArticleByID loads an article with translations and tags.
func (r *GormRepository) GetArticleByID(ctx context.Context, id uint) (*entity.DbArticle, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid article id")
	}
	var article entity.DbArticle
	if err := r.db.WithContext(ctx).
		Preload("Translations").
		Preload("Tags.Translations").
		First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// GetArticleBySlug loads an article with translations and tags by slug.
func (r *GormRepository) GetArticleBySlug(ctx context.Context, slug string) (*entity.DbArticle, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, fmt.Errorf("slug is empty")
	}
	var article entity.DbArticle
	if err := r.db.WithContext(ctx).
		Preload("Translations").
		Preload("Tags.Translations").
		Where("slug = ?", trimmed).
		First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

var articleSortColumns = map[string]string{
	"id":         "id",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ListArticles returns paginated articles matching the query.
func (r *GormRepository) ListArticles(ctx context.Context, params *entity.ArticleQuery) ([]entity.DbArticle, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbArticle{})
	if params != nil {
		if params.CategoryID > 0 {
			query = query.Where("category_id = ?", params.CategoryID)
		}
		if params.Published != nil {
			query = query.Where("is_published = ?", *params.Published)
		}
		if params.TagID > 0 {
			query = query.Where(
				"id IN (?)",
				r.db.Table("article_tags").Select("article_id").Where("tag_id = ?", params.TagID),
			)
		}
		if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
			kw := "%" + strings.ToLower(keyword) + "%"
			query = query.Where(
				"id IN (?)",
				r.db.Model(&entity.DbArticleTranslation{}).Select("article_id").Where("LOWER(title) LIKE ?", kw),
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

	var articles []entity.DbArticle
	if err := query.
		Preload("Translations").
		Preload("Tags.Translations").
		Order(orderClause(base, articleSortColumns)).Offset(offset).Limit(pageSize).
		Find(&articles).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return articles, meta, nil
}

// ListArticleSlugs returns every slug equal to prefix or starting with
// "prefix-". Used by the slug collision resolver.
func (r *GormRepository) ListArticleSlugs(ctx context.Context, prefix string) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var slugs []string
	if err := r.db.WithContext(ctx).Model(&entity.DbArticle{}).
		Where("slug = ? OR slug LIKE ?", prefix, prefix+"-%").
		Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

// ReplaceArticleTranslations deletes every stored translation of the article
// and recreates the supplied set in one transaction.
func (r *GormRepository) ReplaceArticleTranslations(ctx context.Context, articleID uint, translations []entity.DbArticleTranslation) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if articleID == 0 {
		return fmt.Errorf("invalid article id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", articleID).Delete(&entity.DbArticleTranslation{}).Error; err != nil {
			return err
		}
		for idx := range translations {
			translations[idx].ID = 0
			translations[idx].ArticleID = articleID
		}
		if len(translations) == 0 {
			return nil
		}
		return tx.Create(&translations).Error
	})
}

// SetArticleTags replaces the article's tag links.
func (r *GormRepository) SetArticleTags(ctx context.Context, articleID uint, tagIDs []uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if articleID == 0 {
		return fmt.Errorf("invalid article id")
	}

	uniqueIDs := make([]uint, 0, len(tagIDs))
	seen := make(map[uint]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniqueIDs = append(uniqueIDs, id)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article entity.DbArticle
		if err := tx.First(&article, articleID).Error; err != nil {
			return err
		}

		var tags []entity.DbTag
		if len(uniqueIDs) > 0 {
			if err := tx.Where("id IN ?", uniqueIDs).Find(&tags).Error; err != nil {
				return err
			}
			if len(tags) != len(uniqueIDs) {
				return fmt.Errorf("some tags do not exist: %w", gorm.ErrRecordNotFound)
			}
		}

		return tx.Model(&article).Association("Tags").Replace(tags)
	})
}

// DeleteArticle removes an article, its translations, and its tag links.
func (r *GormRepository) DeleteArticle(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid article id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article entity.DbArticle
		if err := tx.First(&article, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&article).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&entity.DbArticleTranslation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.DbArticle{}, id).Error
	})
}
