package api

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"maktaba/internal/config"
)

func TestValidateTranslationSet(t *testing.T) {
	tests := []struct {
		name    string
		metas   []translationMeta
		problem string
	}{
		{
			name:    "Empty",
			metas:   nil,
			problem: "at least one translation",
		},
		{
			name:    "SingleDefault",
			metas:   []translationMeta{{Language: "en", IsDefault: true}},
			problem: "",
		},
		{
			name: "TwoLanguagesOneDefault",
			metas: []translationMeta{
				{Language: "en", IsDefault: true},
				{Language: "ar", IsDefault: false},
			},
			problem: "",
		},
		{
			name:    "NoDefault",
			metas:   []translationMeta{{Language: "en"}, {Language: "ar"}},
			problem: "exactly one translation",
		},
		{
			name: "TwoDefaults",
			metas: []translationMeta{
				{Language: "en", IsDefault: true},
				{Language: "ar", IsDefault: true},
			},
			problem: "exactly one translation",
		},
		{
			name: "DuplicateLanguage",
			metas: []translationMeta{
				{Language: "en", IsDefault: true},
				{Language: "EN", IsDefault: false},
			},
			problem: "duplicate language",
		},
		{
			name:    "InvalidLanguage",
			metas:   []translationMeta{{Language: "english", IsDefault: true}},
			problem: "invalid language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateTranslationSet(tt.metas)
			if tt.problem == "" {
				if got != "" {
					t.Errorf("expected valid set, got problem %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.problem) {
				t.Errorf("expected problem containing %q, got %q", tt.problem, got)
			}
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	listSlugs := func(stored []string) func(context.Context, string) ([]string, error) {
		return func(ctx context.Context, prefix string) ([]string, error) {
			return stored, nil
		}
	}

	t.Run("NoCollision", func(t *testing.T) {
		got, err := uniqueSlug(context.Background(), "Hello World", "article", listSlugs(nil))
		if err != nil {
			t.Fatalf("uniqueSlug: %v", err)
		}
		if got != "hello-world" {
			t.Errorf("expected hello-world, got %q", got)
		}
	})

	t.Run("Collision", func(t *testing.T) {
		got, err := uniqueSlug(context.Background(), "Hello World", "article", listSlugs([]string{"hello-world", "hello-world-1"}))
		if err != nil {
			t.Fatalf("uniqueSlug: %v", err)
		}
		if got != "hello-world-2" {
			t.Errorf("expected hello-world-2, got %q", got)
		}
	})

	t.Run("NonLatinTitleFallsBack", func(t *testing.T) {
		got, err := uniqueSlug(context.Background(), "مقدمة في الفقه", "article", listSlugs(nil))
		if err != nil {
			t.Fatalf("uniqueSlug: %v", err)
		}
		if !strings.HasPrefix(got, "article-") {
			t.Errorf("expected fallback slug with article- prefix, got %q", got)
		}
	})
}

func TestRecomputeSlug(t *testing.T) {
	listSlugs := func(stored []string) func(context.Context, string) ([]string, error) {
		return func(ctx context.Context, prefix string) ([]string, error) {
			return stored, nil
		}
	}

	t.Run("UnchangedBaseResolvesToItself", func(t *testing.T) {
		got, err := recomputeSlug(context.Background(), "Hello  World", "hello-world", listSlugs([]string{"hello-world"}))
		if err != nil {
			t.Fatalf("recomputeSlug: %v", err)
		}
		if got != "hello-world" {
			t.Errorf("expected hello-world, got %q", got)
		}
	})

	t.Run("NewTitleCollides", func(t *testing.T) {
		got, err := recomputeSlug(context.Background(), "New Title", "old-title", listSlugs([]string{"new-title"}))
		if err != nil {
			t.Fatalf("recomputeSlug: %v", err)
		}
		if got != "new-title-1" {
			t.Errorf("expected new-title-1, got %q", got)
		}
	})

	t.Run("EmptyGenerateKeepsCurrent", func(t *testing.T) {
		got, err := recomputeSlug(context.Background(), "مقدمة في الفقه", "article-ab12cd34", listSlugs(nil))
		if err != nil {
			t.Fatalf("recomputeSlug: %v", err)
		}
		if got != "article-ab12cd34" {
			t.Errorf("expected the current slug to be kept, got %q", got)
		}
	})
}

func TestLangParamDefaultLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHTTPHandler(nil, nil, nil, config.Config{DefaultLanguage: "ar"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	lang, ok := h.langParam(c)
	if !ok {
		t.Fatal("expected the default language to be accepted")
	}
	if lang != "ar" {
		t.Errorf("expected ar, got %q", lang)
	}
}
