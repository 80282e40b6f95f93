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

func researchTranslationMetas(inputs []entity.ResearchTranslationInput) []translationMeta {
	metas := make([]translationMeta, 0, len(inputs))
	for _, in := range inputs {
		metas = append(metas, translationMeta{Language: in.LanguageCode, IsDefault: in.IsDefault})
	}
	return metas
}

func researchTranslationRows(researchID uint, inputs []entity.ResearchTranslationInput) []entity.DbResearchTranslation {
	rows := make([]entity.DbResearchTranslation, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, entity.DbResearchTranslation{
			ResearchID:   researchID,
			LanguageCode: i18n.NormalizeLanguage(in.LanguageCode),
			IsDefault:    in.IsDefault,
			Title:        in.Title,
			Abstract:     in.Abstract,
		})
	}
	return rows
}

func (h *HTTPHandler) researchItem(research *entity.DbResearch, lang string) entity.ResearchItem {
	item := entity.ResearchItem{
		ID:          research.ID,
		Slug:        research.Slug,
		Author:      research.Author,
		PublishedAt: research.PublishedAt,
		FileURL:     h.publicURL(research.FilePath),
		CreatedAt:   research.CreatedAt,
		UpdatedAt:   research.UpdatedAt,
	}
	if tr, ok := i18n.Resolve(research.Translations, lang); ok {
		item.LanguageCode = tr.LanguageCode
		item.Title = tr.Title
		item.Abstract = tr.Abstract
	}
	return item
}

func (h *HTTPHandler) researchDetail(research *entity.DbResearch, lang string) entity.ResearchDetail {
	return entity.ResearchDetail{
		ResearchItem: h.researchItem(research, lang),
		Translations: research.Translations,
	}
}

// CreateResearch creates a research paper with its translations. The slug
// comes from the default translation's title.
func (h *HTTPHandler) CreateResearch(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	var req entity.ResearchCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid research payload", err.Error())
		return
	}
	if problem := validateTranslationSet(researchTranslationMetas(req.Translations)); problem != "" {
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
	researchSlug, err := uniqueSlug(ctx, title, "research", h.repo.ListResearchSlugs)
	if err != nil {
		logrus.WithError(err).Error("create research: derive slug")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	research := &entity.DbResearch{
		Slug:         researchSlug,
		Author:       req.Author,
		PublishedAt:  req.PublishedAt,
		FilePath:     req.FilePath,
		Translations: researchTranslationRows(0, req.Translations),
	}
	if err := h.repo.CreateResearch(ctx, research); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			RespondError(c, http.StatusConflict, ErrCodeConflict, "slug already exists, retry")
			return
		}
		logrus.WithError(err).Error("create research")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	created, err := h.repo.GetResearchByID(ctx, research.ID)
	if err != nil {
		logrus.WithError(err).Error("create research: reload")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondCreated(c, h.researchDetail(created, lang))
}

// ListResearch returns the language-resolved research listing.
func (h *HTTPHandler) ListResearch(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	var params entity.ResearchQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid query parameters")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	papers, meta, err := h.repo.ListResearch(ctx, &params)
	if err != nil {
		logrus.WithError(err).Error("list research")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	items := make([]entity.ResearchItem, 0, len(papers))
	for i := range papers {
		items = append(items, h.researchItem(&papers[i], lang))
	}
	RespondOK(c, entity.ResearchListResponse{Research: items, Meta: meta})
}

// GetResearch returns one research paper by slug.
func (h *HTTPHandler) GetResearch(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	research, err := h.repo.GetResearchBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "research paper not found")
			return
		}
		logrus.WithError(err).Error("get research")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, h.researchDetail(research, lang))
}

// UpdateResearch applies a partial update. A supplied translation list
// replaces the stored set; when it changes the default translation's title the
// slug is re-derived from the new title.
func (h *HTTPHandler) UpdateResearch(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.ResearchUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid research payload", err.Error())
		return
	}
	if req.Translations != nil {
		if problem := validateTranslationSet(researchTranslationMetas(req.Translations)); problem != "" {
			RespondError(c, http.StatusBadRequest, ErrCodeInvalidTranslations, problem)
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.repo.GetResearchByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "research paper not found")
			return
		}
		logrus.WithError(err).Error("update research: load")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	updates := entity.ResearchUpdates{
		Author:   req.Author,
		FilePath: req.FilePath,
	}
	if req.PublishedAt != nil {
		publishedAt := req.PublishedAt
		updates.PublishedAt = &publishedAt
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
			newSlug, err := recomputeSlug(ctx, newTitle, existing.Slug, h.repo.ListResearchSlugs)
			if err != nil {
				logrus.WithError(err).Error("update research: derive slug")
				RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
				return
			}
			if newSlug != existing.Slug {
				updates.Slug = &newSlug
			}
		}
	}
	if !updates.IsEmpty() {
		if err := h.repo.UpdateResearch(ctx, id, updates); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				RespondError(c, http.StatusConflict, ErrCodeConflict, "slug already exists, retry")
				return
			}
			logrus.WithError(err).Error("update research")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
	}

	if req.Translations != nil {
		if err := h.repo.ReplaceResearchTranslations(ctx, id, researchTranslationRows(id, req.Translations)); err != nil {
			logrus.WithError(err).Error("update research: replace translations")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
	}

	research, err := h.repo.GetResearchByID(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("update research: reload")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, h.researchDetail(research, lang))
}

// DeleteResearch removes the research paper and its translations.
func (h *HTTPHandler) DeleteResearch(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.repo.GetResearchByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "research paper not found")
			return
		}
		logrus.WithError(err).Error("delete research: load")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	if err := h.repo.DeleteResearch(ctx, id); err != nil {
		logrus.WithError(err).Error("delete research")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondMessage(c, "research paper deleted")
}
