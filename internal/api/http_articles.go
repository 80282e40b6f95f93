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

func articleTranslationMetas(inputs []entity.ArticleTranslationInput) []translationMeta {
	metas := make([]translationMeta, 0, len(inputs))
	for _, in := range inputs {
		metas = append(metas, translationMeta{Language: in.LanguageCode, IsDefault: in.IsDefault})
	}
	return metas
}

func articleTranslationRows(articleID uint, inputs []entity.ArticleTranslationInput) []entity.DbArticleTranslation {
	rows := make([]entity.DbArticleTranslation, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, entity.DbArticleTranslation{
			ArticleID:    articleID,
			LanguageCode: i18n.NormalizeLanguage(in.LanguageCode),
			IsDefault:    in.IsDefault,
			Title:        in.Title,
			Summary:      in.Summary,
			Body:         in.Body,
		})
	}
	return rows
}

func (h *HTTPHandler) articleItem(article *entity.DbArticle, lang string) entity.ArticleItem {
	item := entity.ArticleItem{
		ID:          article.ID,
		Slug:        article.Slug,
		CategoryID:  article.CategoryID,
		CoverURL:    h.publicURL(article.CoverPath),
		IsPublished: article.IsPublished,
		Tags:        make([]entity.TagItem, 0, len(article.Tags)),
		CreatedAt:   article.CreatedAt,
		UpdatedAt:   article.UpdatedAt,
	}
	if tr, ok := i18n.Resolve(article.Translations, lang); ok {
		item.LanguageCode = tr.LanguageCode
		item.Title = tr.Title
		item.Summary = tr.Summary
	}
	for i := range article.Tags {
		item.Tags = append(item.Tags, tagItem(&article.Tags[i], lang))
	}
	return item
}

func (h *HTTPHandler) articleDetail(article *entity.DbArticle, lang string) entity.ArticleDetail {
	detail := entity.ArticleDetail{
		ArticleItem:  h.articleItem(article, lang),
		Translations: article.Translations,
	}
	if tr, ok := i18n.Resolve(article.Translations, lang); ok {
		detail.Body = tr.Body
	}
	return detail
}

// CreateArticle creates an article together with its translations and tag
// links. The slug comes from the default translation's title.
func (h *HTTPHandler) CreateArticle(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	var req entity.ArticleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid article payload", err.Error())
		return
	}
	if problem := validateTranslationSet(articleTranslationMetas(req.Translations)); problem != "" {
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
	articleSlug, err := uniqueSlug(ctx, title, "article", h.repo.ListArticleSlugs)
	if err != nil {
		logrus.WithError(err).Error("create article: derive slug")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	published := false
	if req.IsPublished != nil {
		published = *req.IsPublished
	}
	article := &entity.DbArticle{
		Slug:         articleSlug,
		CategoryID:   req.CategoryID,
		CoverPath:    req.CoverPath,
		IsPublished:  published,
		Translations: articleTranslationRows(0, req.Translations),
	}

	if err := h.repo.CreateArticle(ctx, article); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			RespondError(c, http.StatusConflict, ErrCodeConflict, "slug already exists, retry")
			return
		}
		logrus.WithError(err).Error("create article")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	if len(req.TagIDs) > 0 {
		if err := h.repo.SetArticleTags(ctx, article.ID, req.TagIDs); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "one or more tag ids do not exist")
				return
			}
			logrus.WithError(err).Error("create article: set tags")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
	}

	created, err := h.repo.GetArticleByID(ctx, article.ID)
	if err != nil {
		logrus.WithError(err).Error("create article: reload")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondCreated(c, h.articleDetail(created, lang))
}

// ListArticles returns the language-resolved article listing.
func (h *HTTPHandler) ListArticles(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	var params entity.ArticleQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid query parameters")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	articles, meta, err := h.repo.ListArticles(ctx, &params)
	if err != nil {
		logrus.WithError(err).Error("list articles")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	items := make([]entity.ArticleItem, 0, len(articles))
	for i := range articles {
		items = append(items, h.articleItem(&articles[i], lang))
	}
	RespondOK(c, entity.ArticleListResponse{Articles: items, Meta: meta})
}

// GetArticle returns one article by slug, resolved into the path language.
func (h *HTTPHandler) GetArticle(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	article, err := h.repo.GetArticleBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "article not found")
			return
		}
		logrus.WithError(err).Error("get article")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, h.articleDetail(article, lang))
}

// UpdateArticle applies a partial update. A supplied translation list
// replaces the stored set; when it changes the default translation's title the
// slug is re-derived from the new title.
func (h *HTTPHandler) UpdateArticle(c *gin.Context) {
	lang, ok := h.langParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.ArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid article payload", err.Error())
		return
	}
	if req.Translations != nil {
		if problem := validateTranslationSet(articleTranslationMetas(req.Translations)); problem != "" {
			RespondError(c, http.StatusBadRequest, ErrCodeInvalidTranslations, problem)
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.repo.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "article not found")
			return
		}
		logrus.WithError(err).Error("update article: load")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	updates := entity.ArticleUpdates{
		CoverPath:   req.CoverPath,
		IsPublished: req.IsPublished,
	}
	if req.CategoryID != nil {
		categoryID := req.CategoryID
		updates.CategoryID = &categoryID
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
			newSlug, err := recomputeSlug(ctx, newTitle, existing.Slug, h.repo.ListArticleSlugs)
			if err != nil {
				logrus.WithError(err).Error("update article: derive slug")
				RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
				return
			}
			if newSlug != existing.Slug {
				updates.Slug = &newSlug
			}
		}
	}
	if !updates.IsEmpty() {
		if err := h.repo.UpdateArticle(ctx, id, updates); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				RespondError(c, http.StatusConflict, ErrCodeConflict, "slug already exists, retry")
				return
			}
			logrus.WithError(err).Error("update article")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
	}

	if req.Translations != nil {
		if err := h.repo.ReplaceArticleTranslations(ctx, id, articleTranslationRows(id, req.Translations)); err != nil {
			logrus.WithError(err).Error("update article: replace translations")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
	}
	if req.TagIDs != nil {
		if err := h.repo.SetArticleTags(ctx, id, req.TagIDs); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "one or more tag ids do not exist")
				return
			}
			logrus.WithError(err).Error("update article: set tags")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
	}

	article, err := h.repo.GetArticleByID(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("update article: reload")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, h.articleDetail(article, lang))
}

// DeleteArticle removes the article, its translations, and its tag links.
func (h *HTTPHandler) DeleteArticle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.repo.GetArticleByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "article not found")
			return
		}
		logrus.WithError(err).Error("delete article: load")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	if err := h.repo.DeleteArticle(ctx, id); err != nil {
		logrus.WithError(err).Error("delete article")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondMessage(c, "article deleted")
}
