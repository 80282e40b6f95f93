package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"maktaba/internal/entity"
)

func TestUpdateCategoryParentRules(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, repo, _ := newTestHandler(t)

	parentID := uint(1)
	repo.categories[1] = &entity.DbCategory{ID: 1, Slug: "fiqh", Translations: []entity.DbCategoryTranslation{
		{CategoryID: 1, LanguageCode: "en", IsDefault: true, Name: "Fiqh"},
	}}
	repo.categories[2] = &entity.DbCategory{ID: 2, Slug: "usul", ParentID: &parentID, Translations: []entity.DbCategoryTranslation{
		{CategoryID: 2, LanguageCode: "en", IsDefault: true, Name: "Usul"},
	}}
	repo.categories[3] = &entity.DbCategory{ID: 3, Slug: "hadith", Translations: []entity.DbCategoryTranslation{
		{CategoryID: 3, LanguageCode: "en", IsDefault: true, Name: "Hadith"},
	}}

	r := gin.New()
	r.PATCH("/api/:lang/categories/:id", h.UpdateCategory)

	t.Run("ParentWithChildrenRejected", func(t *testing.T) {
		// Category 1 already has a child, so nesting it under 3 would chain
		// two levels.
		three := uint(3)
		w := sendJSON(t, r, http.MethodPatch, "/api/en/categories/1", entity.CategoryUpdateRequest{ParentID: &three})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("ChildAsParentRejected", func(t *testing.T) {
		// Category 2 is itself a child and cannot become a parent.
		two := uint(2)
		w := sendJSON(t, r, http.MethodPatch, "/api/en/categories/3", entity.CategoryUpdateRequest{ParentID: &two})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("ZeroDetaches", func(t *testing.T) {
		zero := uint(0)
		w := sendJSON(t, r, http.MethodPatch, "/api/en/categories/2", entity.CategoryUpdateRequest{ParentID: &zero})
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		if repo.categories[2].ParentID != nil {
			t.Errorf("expected the parent to be cleared, got %v", *repo.categories[2].ParentID)
		}
	})

	t.Run("ReattachAfterDetach", func(t *testing.T) {
		three := uint(3)
		w := sendJSON(t, r, http.MethodPatch, "/api/en/categories/2", entity.CategoryUpdateRequest{ParentID: &three})
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		if repo.categories[2].ParentID == nil || *repo.categories[2].ParentID != three {
			t.Errorf("expected parent 3, got %v", repo.categories[2].ParentID)
		}
	})
}
