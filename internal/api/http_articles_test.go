package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"maktaba/internal/entity"
)

func seedArticle(repo *stubRepo) {
	repo.articles[1] = &entity.DbArticle{
		ID:   1,
		Slug: "old-title",
		Translations: []entity.DbArticleTranslation{
			{ArticleID: 1, LanguageCode: "en", IsDefault: true, Title: "Old Title", Body: "body"},
		},
	}
	repo.articleSlugs = []string{"old-title"}
}

func TestUpdateArticleRecomputesSlug(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, repo, _ := newTestHandler(t)
	seedArticle(repo)

	r := gin.New()
	r.PATCH("/api/:lang/articles/:id", h.UpdateArticle)

	payload := entity.ArticleUpdateRequest{Translations: []entity.ArticleTranslationInput{
		{LanguageCode: "en", IsDefault: true, Title: "New Title", Body: "body"},
	}}
	w := sendJSON(t, r, http.MethodPatch, "/api/en/articles/1", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var slugUpdate *string
	for _, u := range repo.articleUpdates {
		if u.Slug != nil {
			slugUpdate = u.Slug
		}
	}
	if slugUpdate == nil {
		t.Fatal("expected the slug to be re-derived from the new default title")
	}
	if *slugUpdate != "new-title" {
		t.Errorf("expected slug new-title, got %q", *slugUpdate)
	}
}

func TestUpdateArticleKeepsSlugWhenTitleUnchanged(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, repo, _ := newTestHandler(t)
	seedArticle(repo)

	r := gin.New()
	r.PATCH("/api/:lang/articles/:id", h.UpdateArticle)

	payload := entity.ArticleUpdateRequest{Translations: []entity.ArticleTranslationInput{
		{LanguageCode: "en", IsDefault: true, Title: "Old Title", Summary: "new summary", Body: "body"},
	}}
	w := sendJSON(t, r, http.MethodPatch, "/api/en/articles/1", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	for _, u := range repo.articleUpdates {
		if u.Slug != nil {
			t.Errorf("expected the slug to stay %q, got update to %q", "old-title", *u.Slug)
		}
	}
	if repo.articles[1].Slug != "old-title" {
		t.Errorf("expected slug old-title, got %q", repo.articles[1].Slug)
	}
}
