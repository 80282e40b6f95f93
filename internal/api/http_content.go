package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"maktaba/internal/i18n"
	"maktaba/internal/slug"
)

// translationMeta is the language/default pair shared by every translatable
// payload, used for the common validation below.
type translationMeta struct {
	Language  string
	IsDefault bool
}

// validateTranslationSet enforces the translation-set rules shared by all
// content types: valid language codes, no duplicate languages, and exactly one
// default translation. It returns a human-readable problem or "".
func validateTranslationSet(metas []translationMeta) string {
	if len(metas) == 0 {
		return "at least one translation is required"
	}
	seen := make(map[string]struct{}, len(metas))
	defaults := 0
	for _, meta := range metas {
		lang := i18n.NormalizeLanguage(meta.Language)
		if !i18n.IsValidLanguage(lang) {
			return "invalid language code: " + meta.Language
		}
		if _, dup := seen[lang]; dup {
			return "duplicate language code: " + lang
		}
		seen[lang] = struct{}{}
		if meta.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		return "exactly one translation must be marked as default"
	}
	return ""
}

// langParam validates the :lang path segment. An absent segment falls back to
// the configured default language.
func (h *HTTPHandler) langParam(c *gin.Context) (string, bool) {
	raw := c.Param("lang")
	if strings.TrimSpace(raw) == "" {
		raw = h.cfg.DefaultLanguage
	}
	lang := i18n.NormalizeLanguage(raw)
	if !i18n.IsValidLanguage(lang) {
		RespondError(c, http.StatusBadRequest, ErrCodeInvalidLanguage, "unsupported language code")
		return "", false
	}
	return lang, true
}

// uniqueSlug derives a slug from the default translation's title and resolves
// collisions against the slugs already stored for the entity kind.
func uniqueSlug(ctx context.Context, title, kind string, listSlugs func(context.Context, string) ([]string, error)) (string, error) {
	base := slug.Generate(title)
	if base == "" {
		base = slug.Fallback(kind)
	}
	taken, err := listSlugs(ctx, base)
	if err != nil {
		return "", err
	}
	existing := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		existing[s] = struct{}{}
	}
	return slug.MakeUnique(base, existing), nil
}

// recomputeSlug re-derives a slug after the default title changed. The current
// slug is kept out of the collision set so an unchanged base resolves back to
// itself. A title that yields no slug text keeps the current slug; the random
// fallback from creation is as good as any replacement.
func recomputeSlug(ctx context.Context, title, current string, listSlugs func(context.Context, string) ([]string, error)) (string, error) {
	base := slug.Generate(title)
	if base == "" {
		return current, nil
	}
	taken, err := listSlugs(ctx, base)
	if err != nil {
		return "", err
	}
	existing := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		existing[s] = struct{}{}
	}
	delete(existing, current)
	return slug.MakeUnique(base, existing), nil
}
