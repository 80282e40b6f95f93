package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"maktaba/internal/auth"
	"maktaba/internal/entity"
)

// Login verifies credentials and issues an access/refresh token pair. A wrong
// username and a wrong password produce the same response so the endpoint
// does not reveal which accounts exist.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, ErrCodeValidation, "username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid username or password")
			return
		}
		logrus.WithError(err).Error("login: load user")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	if !user.IsActive {
		RespondError(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid username or password")
		return
	}
	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		RespondError(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid username or password")
		return
	}

	accessToken, accessExpiresAt, err := h.tokens.GenerateAccessToken(user)
	if err != nil {
		logrus.WithError(err).Error("login: generate access token")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	refreshToken, refreshExpiresAt, err := h.tokens.GenerateRefreshToken(user)
	if err != nil {
		logrus.WithError(err).Error("login: generate refresh token")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	if err := h.repo.CreateRefreshToken(ctx, &entity.DbRefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: refreshExpiresAt,
	}); err != nil {
		logrus.WithError(err).Error("login: persist refresh token")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	RespondOK(c, entity.AuthLoginResponse{
		User:         userSummary(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiresAt,
	})
}

// Refresh exchanges a valid, still-persisted refresh token for a new access
// token. The refresh token itself is not rotated; it stays valid until expiry
// or explicit logout.
func (h *HTTPHandler) Refresh(c *gin.Context) {
	var req entity.AuthRefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, ErrCodeValidation, "refresh_token is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// The database record is checked first: a revoked token must be rejected
	// even when its signature still verifies.
	stored, err := h.repo.FindRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusForbidden, ErrCodeInvalidRefreshToken, "refresh token is not recognised")
			return
		}
		logrus.WithError(err).Error("refresh: look up token")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	if time.Now().After(stored.ExpiresAt) {
		if err := h.repo.DeleteRefreshTokensByToken(ctx, req.RefreshToken); err != nil {
			logrus.WithError(err).Warn("refresh: prune expired token")
		}
		RespondError(c, http.StatusForbidden, ErrCodeInvalidRefreshToken, "refresh token expired, log in again")
		return
	}

	claims, err := h.tokens.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			RespondError(c, http.StatusForbidden, ErrCodeInvalidRefreshToken, "refresh token expired, log in again")
			return
		}
		RespondError(c, http.StatusForbidden, ErrCodeInvalidRefreshToken, "refresh token is not recognised")
		return
	}
	if claims.UserID != stored.UserID {
		RespondError(c, http.StatusForbidden, ErrCodeInvalidRefreshToken, "refresh token is not recognised")
		return
	}

	user, err := h.repo.GetUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusUnauthorized, ErrCodeInvalidRefreshToken, "refresh token is not recognised")
			return
		}
		logrus.WithError(err).Error("refresh: load user")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	if !user.IsActive {
		RespondError(c, http.StatusUnauthorized, ErrCodeInvalidRefreshToken, "account disabled")
		return
	}

	accessToken, accessExpiresAt, err := h.tokens.GenerateAccessToken(user)
	if err != nil {
		logrus.WithError(err).Error("refresh: generate access token")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	RespondOK(c, entity.AuthRefreshResponse{
		AccessToken: accessToken,
		ExpiresAt:   accessExpiresAt,
	})
}

// Logout revokes the supplied refresh token. Revoking a token that is already
// gone still succeeds, so clients can retry safely.
func (h *HTTPHandler) Logout(c *gin.Context) {
	// An empty or absent body is acceptable for logout.
	var req entity.AuthLogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.RefreshToken = ""
	}

	if req.RefreshToken != "" {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if err := h.repo.DeleteRefreshTokensByToken(ctx, req.RefreshToken); err != nil {
			logrus.WithError(err).Error("logout: delete refresh token")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
	}

	RespondMessage(c, "logged out")
}

// Me returns the authenticated caller's profile along with the effective
// permission set.
func (h *HTTPHandler) Me(c *gin.Context) {
	principal := CurrentPrincipal(c)
	if principal == nil {
		RespondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		logrus.WithError(err).Error("me: load user")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	RespondOK(c, gin.H{
		"user":        userSummary(user),
		"permissions": principal.Permissions,
	})
}

func userSummary(user *entity.DbUser) entity.UserSummary {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}
	return entity.UserSummary{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsActive:  user.IsActive,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
