package api

import (
	"strings"

	"maktaba/internal/auth"
	"maktaba/internal/config"
	"maktaba/internal/model"
	"maktaba/internal/storage"
)

// HTTPHandler carries the dependencies shared by all route handlers.
type HTTPHandler struct {
	repo       model.Repository
	tokens     *auth.Manager
	store      storage.Storage
	cfg        config.Config
	publicBase string
}

func NewHTTPHandler(repo model.Repository, tokens *auth.Manager, store storage.Storage, cfg config.Config) *HTTPHandler {
	return &HTTPHandler{
		repo:       repo,
		tokens:     tokens,
		store:      store,
		cfg:        cfg,
		publicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
	}
}

func normalisePublicBase(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "/files"
	}
	return strings.TrimRight(base, "/")
}

// publicURL maps a storage key to the URL clients can fetch it from.
func (h *HTTPHandler) publicURL(key string) string {
	if key == "" {
		return ""
	}
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	return h.publicBase + "/" + strings.TrimLeft(key, "/")
}
