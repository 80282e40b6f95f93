package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"maktaba/internal/auth"
	"maktaba/internal/entity"
)

func TestLoginDoesNotRevealAccounts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, repo, _ := newTestHandler(t)

	hash, err := auth.HashPassword("correct-password", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	repo.addUser(&entity.DbUser{ID: 1, Username: "amina", Email: "amina@example.com", PasswordHash: hash, IsActive: true})
	repo.addUser(&entity.DbUser{ID: 2, Username: "dormant", Email: "dormant@example.com", PasswordHash: hash, IsActive: false})

	r := gin.New()
	r.POST("/api/auth/login", h.Login)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{name: "UnknownUser", username: "nobody", password: "correct-password"},
		{name: "WrongPassword", username: "amina", password: "wrong-password"},
		{name: "InactiveAccount", username: "dormant", password: "correct-password"},
	}

	statuses := make([]int, 0, len(cases))
	bodies := make([]errorBody, 0, len(cases))
	for _, tc := range cases {
		w := sendJSON(t, r, http.MethodPost, "/api/auth/login", entity.AuthLoginRequest{Username: tc.username, Password: tc.password})
		statuses = append(statuses, w.Code)
		bodies = append(bodies, decodeErrorBody(t, w))
	}

	for i, tc := range cases {
		if statuses[i] != http.StatusUnauthorized {
			t.Errorf("%s: expected status 401, got %d", tc.name, statuses[i])
		}
		if bodies[i].Error.Code != ErrCodeInvalidCredentials {
			t.Errorf("%s: expected code %s, got %s", tc.name, ErrCodeInvalidCredentials, bodies[i].Error.Code)
		}
		if bodies[i].Error.Message != bodies[0].Error.Message {
			t.Errorf("%s: message %q differs from %q", tc.name, bodies[i].Error.Message, bodies[0].Error.Message)
		}
	}
}

func TestRefreshRejectsUnpersistedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, repo, tokens := newTestHandler(t)

	user := &entity.DbUser{ID: 3, Username: "amina", IsActive: true}
	repo.addUser(user)

	r := gin.New()
	r.POST("/api/auth/refresh", h.Refresh)
	r.POST("/api/auth/logout", h.Logout)

	refreshToken, expiresAt, err := tokens.GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	t.Run("NeverIssued", func(t *testing.T) {
		// The signature verifies, but the token was never persisted.
		w := sendJSON(t, r, http.MethodPost, "/api/auth/refresh", entity.AuthRefreshRequest{RefreshToken: refreshToken})
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected status 403, got %d", w.Code)
		}
		body := decodeErrorBody(t, w)
		if body.Error.Code != ErrCodeInvalidRefreshToken {
			t.Errorf("expected code %s, got %s", ErrCodeInvalidRefreshToken, body.Error.Code)
		}
	})

	t.Run("RevokedByLogout", func(t *testing.T) {
		repo.refresh[refreshToken] = &entity.DbRefreshToken{UserID: user.ID, Token: refreshToken, ExpiresAt: expiresAt}

		w := sendJSON(t, r, http.MethodPost, "/api/auth/refresh", entity.AuthRefreshRequest{RefreshToken: refreshToken})
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200 while persisted, got %d: %s", w.Code, w.Body.String())
		}

		w = sendJSON(t, r, http.MethodPost, "/api/auth/logout", entity.AuthLogoutRequest{RefreshToken: refreshToken})
		if w.Code != http.StatusOK {
			t.Fatalf("logout: expected status 200, got %d", w.Code)
		}

		w = sendJSON(t, r, http.MethodPost, "/api/auth/refresh", entity.AuthRefreshRequest{RefreshToken: refreshToken})
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected status 403 after logout, got %d", w.Code)
		}
		body := decodeErrorBody(t, w)
		if body.Error.Code != ErrCodeInvalidRefreshToken {
			t.Errorf("expected code %s, got %s", ErrCodeInvalidRefreshToken, body.Error.Code)
		}
	})
}

func TestPermissionGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, repo, tokens := newTestHandler(t)

	editor := &entity.DbUser{ID: 9, Username: "editor", IsActive: true, Roles: []entity.DbRole{{
		Name:        "editor",
		Permissions: []entity.DbPermission{{Name: entity.PermUpdateArticle}},
	}}}
	repo.addUser(editor)

	ok := func(c *gin.Context) { RespondMessage(c, "ok") }
	r := gin.New()
	r.POST("/articles", h.Authenticate(), h.RequirePermission(entity.PermCreateArticle), ok)
	r.PATCH("/articles/1", h.Authenticate(), h.RequirePermission(entity.PermUpdateArticle), ok)

	token, _, err := tokens.GenerateAccessToken(editor)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	do := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := do(http.MethodPost, "/articles"); w.Code != http.StatusForbidden {
		t.Errorf("expected status 403 without the create permission, got %d", w.Code)
	} else if body := decodeErrorBody(t, w); body.Error.Code != ErrCodeForbidden {
		t.Errorf("expected code %s, got %s", ErrCodeForbidden, body.Error.Code)
	}

	if w := do(http.MethodPatch, "/articles/1"); w.Code != http.StatusOK {
		t.Errorf("expected status 200 with the update permission, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthenticateRejectsForeignToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, _ := newTestHandler(t)

	other, err := auth.NewManager("other-access-secret", "other-refresh-secret", "maktaba-test", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	token, _, err := other.GenerateAccessToken(&entity.DbUser{ID: 1, Username: "amina"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	r := gin.New()
	r.GET("/me", h.Authenticate(), func(c *gin.Context) { RespondMessage(c, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for a foreign signature, got %d", w.Code)
	}

	// No header at all is a plain unauthorised request, not a forbidden one.
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without a header, got %d", w.Code)
	}
}
