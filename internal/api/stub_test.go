package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"maktaba/internal/auth"
	"maktaba/internal/config"
	"maktaba/internal/entity"
	"maktaba/internal/model"
)

// stubRepo backs handler tests with in-memory state. The embedded interface
// panics on any call a test did not mean to exercise.
type stubRepo struct {
	model.Repository

	usersByName map[string]*entity.DbUser
	usersByID   map[uint]*entity.DbUser
	refresh     map[string]*entity.DbRefreshToken

	articles       map[uint]*entity.DbArticle
	articleSlugs   []string
	articleUpdates []entity.ArticleUpdates

	categories      map[uint]*entity.DbCategory
	categorySlugs   []string
	categoryUpdates []entity.CategoryUpdates
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		usersByName: make(map[string]*entity.DbUser),
		usersByID:   make(map[uint]*entity.DbUser),
		refresh:     make(map[string]*entity.DbRefreshToken),
		articles:    make(map[uint]*entity.DbArticle),
		categories:  make(map[uint]*entity.DbCategory),
	}
}

func (s *stubRepo) addUser(user *entity.DbUser) {
	s.usersByName[strings.ToLower(user.Username)] = user
	s.usersByID[user.ID] = user
}

func (s *stubRepo) GetUserByUsername(ctx context.Context, username string) (*entity.DbUser, error) {
	user, ok := s.usersByName[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubRepo) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	user, ok := s.usersByID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubRepo) CreateRefreshToken(ctx context.Context, token *entity.DbRefreshToken) error {
	s.refresh[token.Token] = token
	return nil
}

func (s *stubRepo) FindRefreshToken(ctx context.Context, token string) (*entity.DbRefreshToken, error) {
	stored, ok := s.refresh[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return stored, nil
}

func (s *stubRepo) DeleteRefreshTokensByToken(ctx context.Context, token string) error {
	delete(s.refresh, token)
	return nil
}

func (s *stubRepo) GetArticleByID(ctx context.Context, id uint) (*entity.DbArticle, error) {
	article, ok := s.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return article, nil
}

func (s *stubRepo) ListArticleSlugs(ctx context.Context, prefix string) ([]string, error) {
	return s.articleSlugs, nil
}

func (s *stubRepo) UpdateArticle(ctx context.Context, id uint, updates entity.ArticleUpdates) error {
	s.articleUpdates = append(s.articleUpdates, updates)
	article, ok := s.articles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if updates.Slug != nil {
		article.Slug = *updates.Slug
	}
	return nil
}

func (s *stubRepo) ReplaceArticleTranslations(ctx context.Context, articleID uint, translations []entity.DbArticleTranslation) error {
	if article, ok := s.articles[articleID]; ok {
		article.Translations = translations
	}
	return nil
}

func (s *stubRepo) GetCategoryByID(ctx context.Context, id uint) (*entity.DbCategory, error) {
	category, ok := s.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}

func (s *stubRepo) ListCategorySlugs(ctx context.Context, prefix string) ([]string, error) {
	return s.categorySlugs, nil
}

func (s *stubRepo) CountCategoryChildren(ctx context.Context, parentID uint) (int64, error) {
	var count int64
	for _, category := range s.categories {
		if category.ParentID != nil && *category.ParentID == parentID {
			count++
		}
	}
	return count, nil
}

func (s *stubRepo) UpdateCategory(ctx context.Context, id uint, updates entity.CategoryUpdates) error {
	s.categoryUpdates = append(s.categoryUpdates, updates)
	category, ok := s.categories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if updates.ParentID != nil {
		category.ParentID = *updates.ParentID
	}
	if updates.Slug != nil {
		category.Slug = *updates.Slug
	}
	return nil
}

func (s *stubRepo) ReplaceCategoryTranslations(ctx context.Context, categoryID uint, translations []entity.DbCategoryTranslation) error {
	if category, ok := s.categories[categoryID]; ok {
		category.Translations = translations
	}
	return nil
}

func newTestHandler(t *testing.T) (*HTTPHandler, *stubRepo, *auth.Manager) {
	t.Helper()
	tokens, err := auth.NewManager("access-secret", "refresh-secret", "maktaba-test", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	repo := newStubRepo()
	h := NewHTTPHandler(repo, tokens, nil, config.Config{DefaultLanguage: "en", BcryptCost: 4})
	return h, repo, tokens
}

func sendJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	return body
}
