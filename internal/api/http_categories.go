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

func categoryTranslationRows(categoryID uint, inputs []entity.NameTranslationInput) []entity.DbCategoryTranslation {
	rows := make([]entity.DbCategoryTranslation, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, entity.DbCategoryTranslation{
			CategoryID:   categoryID,
			LanguageCode: i18n.NormalizeLanguage(in.LanguageCode),
			IsDefault:    in.IsDefault,
			Name:         in.Name,
			Description:  in.Description,
		})
	}
	return rows
}

func categoryItem(category *entity.DbCategory, lang string) entity.CategoryItem {
	item := entity.CategoryItem{
		ID:        category.ID,
		Slug:      category.Slug,
		ParentID:  category.ParentID,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
	if tr, ok := i18n.Resolve(category.Translations, lang); ok {
		item.LanguageCode = tr.LanguageCode
		item.Name = tr.Name
		item.Description = tr.Description
	}
	return item
}

func categoryDetail(category *entity.DbCategory, lang string) entity.CategoryDetail {
	return entity.CategoryDetail{
		CategoryItem: categoryItem(category, lang),
		Translations: category.Translations,
	}
}

// CreateCategory creates a category with its name translations.
func (h *HTTPHandler) CreateCategory(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	var req entity.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid category payload", err.Error())
		return
	}
	if problem := validateTranslationSet(nameTranslationMetas(req.Translations)); problem != "" {
		RespondError(c, http.StatusBadRequest, ErrCodeInvalidTranslations, problem)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if req.ParentID != nil {
		parent, err := h.repo.GetCategoryByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "parent category does not exist")
				return
			}
			logrus.WithError(err).Error("create category: load parent")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
		// Nesting is one level deep: a child cannot itself be a parent.
		if parent.ParentID != nil {
			RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "categories nest at most one level deep")
			return
		}
	}

	name := ""
	for _, in := range req.Translations {
		if in.IsDefault {
			name = in.Name
			break
		}
	}
	categorySlug, err := uniqueSlug(ctx, name, "category", h.repo.ListCategorySlugs)
	if err != nil {
		logrus.WithError(err).Error("create category: derive slug")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	category := &entity.DbCategory{
		Slug:         categorySlug,
		ParentID:     req.ParentID,
		Translations: categoryTranslationRows(0, req.Translations),
	}
	if err := h.repo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			RespondError(c, http.StatusConflict, ErrCodeConflict, "slug already exists, retry")
			return
		}
		logrus.WithError(err).Error("create category")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	created, err := h.repo.GetCategoryByID(ctx, category.ID)
	if err != nil {
		logrus.WithError(err).Error("create category: reload")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondCreated(c, categoryDetail(created, lang))
}

// ListCategories returns every category resolved into the path language.
func (h *HTTPHandler) ListCategories(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	categories, err := h.repo.ListCategories(ctx)
	if err != nil {
		logrus.WithError(err).Error("list categories")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	items := make([]entity.CategoryItem, 0, len(categories))
	for i := range categories {
		items = append(items, categoryItem(&categories[i], lang))
	}
	RespondOK(c, entity.CategoryListResponse{Categories: items})
}

// GetCategory returns one category by slug.
func (h *HTTPHandler) GetCategory(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	category, err := h.repo.GetCategoryBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "category not found")
			return
		}
		logrus.WithError(err).Error("get category")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, categoryDetail(category, lang))
}

// UpdateCategory applies a partial update. A supplied translation list
// replaces the stored set; when it changes the default translation's name the
// slug is re-derived from the new name. Sending parent_id 0 detaches the
// category from its parent.
func (h *HTTPHandler) UpdateCategory(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid category payload", err.Error())
		return
	}
	if req.Translations != nil {
		if problem := validateTranslationSet(nameTranslationMetas(req.Translations)); problem != "" {
			RespondError(c, http.StatusBadRequest, ErrCodeInvalidTranslations, problem)
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "category not found")
			return
		}
		logrus.WithError(err).Error("update category: load")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	updates := entity.CategoryUpdates{}
	if req.ParentID != nil {
		if *req.ParentID == 0 {
			// parent_id 0 clears the parent.
			var cleared *uint
			updates.ParentID = &cleared
		} else {
			if *req.ParentID == id {
				RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "category cannot be its own parent")
				return
			}
			parent, err := h.repo.GetCategoryByID(ctx, *req.ParentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "parent category does not exist")
					return
				}
				logrus.WithError(err).Error("update category: load parent")
				RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
				return
			}
			if parent.ParentID != nil {
				RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "categories nest at most one level deep")
				return
			}
			// Nesting a category that has children of its own would create a
			// two-level chain.
			children, err := h.repo.CountCategoryChildren(ctx, id)
			if err != nil {
				logrus.WithError(err).Error("update category: count children")
				RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
				return
			}
			if children > 0 {
				RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "a category with children cannot be given a parent")
				return
			}
			parentID := req.ParentID
			updates.ParentID = &parentID
		}
	}
	if req.Translations != nil {
		newName := ""
		for _, in := range req.Translations {
			if in.IsDefault {
				newName = in.Name
				break
			}
		}
		oldName := ""
		for _, tr := range existing.Translations {
			if tr.IsDefault {
				oldName = tr.Name
				break
			}
		}
		if newName != oldName {
			newSlug, err := recomputeSlug(ctx, newName, existing.Slug, h.repo.ListCategorySlugs)
			if err != nil {
				logrus.WithError(err).Error("update category: derive slug")
				RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
				return
			}
			if newSlug != existing.Slug {
				updates.Slug = &newSlug
			}
		}
	}
	if !updates.IsEmpty() {
		if err := h.repo.UpdateCategory(ctx, id, updates); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				RespondError(c, http.StatusConflict, ErrCodeConflict, "slug already exists, retry")
				return
			}
			logrus.WithError(err).Error("update category")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
	}

	if req.Translations != nil {
		if err := h.repo.ReplaceCategoryTranslations(ctx, id, categoryTranslationRows(id, req.Translations)); err != nil {
			logrus.WithError(err).Error("update category: replace translations")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
	}

	category, err := h.repo.GetCategoryByID(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("update category: reload")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, categoryDetail(category, lang))
}

// DeleteCategory removes the category. Articles that referenced it are left
// uncategorised and child categories become top-level.
func (h *HTTPHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.repo.GetCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "category not found")
			return
		}
		logrus.WithError(err).Error("delete category: load")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	if err := h.repo.DeleteCategory(ctx, id); err != nil {
		logrus.WithError(err).Error("delete category")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondMessage(c, "category deleted")
}
