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

func nameTranslationMetas(inputs []entity.NameTranslationInput) []translationMeta {
	metas := make([]translationMeta, 0, len(inputs))
	for _, in := range inputs {
		metas = append(metas, translationMeta{Language: in.LanguageCode, IsDefault: in.IsDefault})
	}
	return metas
}

func tagTranslationRows(tagID uint, inputs []entity.NameTranslationInput) []entity.DbTagTranslation {
	rows := make([]entity.DbTagTranslation, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, entity.DbTagTranslation{
			TagID:        tagID,
			LanguageCode: i18n.NormalizeLanguage(in.LanguageCode),
			IsDefault:    in.IsDefault,
			Name:         in.Name,
		})
	}
	return rows
}

func tagItem(tag *entity.DbTag, lang string) entity.TagItem {
	item := entity.TagItem{
		ID:   tag.ID,
		Slug: tag.Slug,
	}
	if tr, ok := i18n.Resolve(tag.Translations, lang); ok {
		item.LanguageCode = tr.LanguageCode
		item.Name = tr.Name
	}
	return item
}

func tagDetail(tag *entity.DbTag, lang string) entity.TagDetail {
	return entity.TagDetail{
		TagItem:      tagItem(tag, lang),
		Translations: tag.Translations,
	}
}

// CreateTag creates a tag with its name translations. The slug comes from the
// default translation's name.
func (h *HTTPHandler) CreateTag(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	var req entity.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid tag payload", err.Error())
		return
	}
	if problem := validateTranslationSet(nameTranslationMetas(req.Translations)); problem != "" {
		RespondError(c, http.StatusBadRequest, ErrCodeInvalidTranslations, problem)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	name := ""
	for _, in := range req.Translations {
		if in.IsDefault {
			name = in.Name
			break
		}
	}
	tagSlug, err := uniqueSlug(ctx, name, "tag", h.repo.ListTagSlugs)
	if err != nil {
		logrus.WithError(err).Error("create tag: derive slug")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	tag := &entity.DbTag{
		Slug:         tagSlug,
		Translations: tagTranslationRows(0, req.Translations),
	}
	if err := h.repo.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			RespondError(c, http.StatusConflict, ErrCodeConflict, "slug already exists, retry")
			return
		}
		logrus.WithError(err).Error("create tag")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	created, err := h.repo.GetTagByID(ctx, tag.ID)
	if err != nil {
		logrus.WithError(err).Error("create tag: reload")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondCreated(c, tagDetail(created, lang))
}

// ListTags returns every tag resolved into the path language.
func (h *HTTPHandler) ListTags(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tags, err := h.repo.ListTags(ctx)
	if err != nil {
		logrus.WithError(err).Error("list tags")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	items := make([]entity.TagItem, 0, len(tags))
	for i := range tags {
		items = append(items, tagItem(&tags[i], lang))
	}
	RespondOK(c, entity.TagListResponse{Tags: items})
}

// GetTag returns one tag by slug.
func (h *HTTPHandler) GetTag(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tag, err := h.repo.GetTagBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "tag not found")
			return
		}
		logrus.WithError(err).Error("get tag")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, tagDetail(tag, lang))
}

// UpdateTag replaces the tag's translation set. When the replacement changes
// the default translation's name the slug is re-derived from the new name.
func (h *HTTPHandler) UpdateTag(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.TagUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid tag payload", err.Error())
		return
	}
	if problem := validateTranslationSet(nameTranslationMetas(req.Translations)); problem != "" {
		RespondError(c, http.StatusBadRequest, ErrCodeInvalidTranslations, problem)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.repo.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "tag not found")
			return
		}
		logrus.WithError(err).Error("update tag: load")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

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
		newSlug, err := recomputeSlug(ctx, newName, existing.Slug, h.repo.ListTagSlugs)
		if err != nil {
			logrus.WithError(err).Error("update tag: derive slug")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
		if newSlug != existing.Slug {
			if err := h.repo.UpdateTag(ctx, id, entity.TagUpdates{Slug: &newSlug}); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					RespondError(c, http.StatusConflict, ErrCodeConflict, "slug already exists, retry")
					return
				}
				logrus.WithError(err).Error("update tag")
				RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
				return
			}
		}
	}

	if err := h.repo.ReplaceTagTranslations(ctx, id, tagTranslationRows(id, req.Translations)); err != nil {
		logrus.WithError(err).Error("update tag: replace translations")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	tag, err := h.repo.GetTagByID(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("update tag: reload")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, tagDetail(tag, lang))
}

// DeleteTag removes the tag and detaches it from every article.
func (h *HTTPHandler) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.repo.GetTagByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "tag not found")
			return
		}
		logrus.WithError(err).Error("delete tag: load")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	if err := h.repo.DeleteTag(ctx, id); err != nil {
		logrus.WithError(err).Error("delete tag")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondMessage(c, "tag deleted")
}
