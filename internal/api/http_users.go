package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"maktaba/internal/auth"
	"maktaba/internal/entity"
)

func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// CreateUser registers a new account, optionally with an initial role set.
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	var req entity.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid user payload", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		logrus.WithError(err).Error("create user: hash password")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	user := &entity.DbUser{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     active,
	}

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			RespondError(c, http.StatusConflict, ErrCodeConflict, "username or email already in use")
			return
		}
		logrus.WithError(err).Error("create user")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	if len(req.RoleIDs) > 0 {
		if err := h.repo.ReplaceUserRoles(ctx, user.ID, req.RoleIDs); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "one or more role ids do not exist")
				return
			}
			logrus.WithError(err).Error("create user: assign roles")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
	}

	created, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).Error("create user: reload")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondCreated(c, userSummary(created))
}

// ListUsers returns a paginated user listing with optional keyword and
// active-state filters.
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	var params entity.UserQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid query parameters")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, meta, err := h.repo.ListUsers(ctx, &params)
	if err != nil {
		logrus.WithError(err).Error("list users")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	summaries := make([]entity.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, userSummary(&users[i]))
	}
	RespondOK(c, entity.UserListResponse{Users: summaries, Meta: meta})
}

// GetUser returns one user by id.
func (h *HTTPHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		logrus.WithError(err).Error("get user")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, userSummary(user))
}

// UpdateUser applies a partial update. Supplying a password re-hashes it;
// nothing else about the stored hash ever leaves the server.
func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondErrorDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid user payload", err.Error())
		return
	}

	updates := entity.UserUpdates{
		Email:    req.Email,
		IsActive: req.IsActive,
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			RespondError(c, http.StatusBadRequest, ErrCodeValidation, "password must be at least 8 characters")
			return
		}
		hash, err := auth.HashPassword(*req.Password, h.cfg.BcryptCost)
		if err != nil {
			logrus.WithError(err).Error("update user: hash password")
			RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
			return
		}
		updates.PasswordHash = &hash
	}
	if updates.IsEmpty() {
		RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateUser(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			RespondError(c, http.StatusConflict, ErrCodeConflict, "email already in use")
			return
		}
		logrus.WithError(err).Error("update user")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("update user: reload")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, userSummary(user))
}

// ReplaceUserRoles swaps the user's full role assignment.
func (h *HTTPHandler) ReplaceUserRoles(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.UserRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, ErrCodeValidation, "role_ids is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.repo.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		logrus.WithError(err).Error("replace roles: load user")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	if err := h.repo.ReplaceUserRoles(ctx, id, req.RoleIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "one or more role ids do not exist")
			return
		}
		logrus.WithError(err).Error("replace roles")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		logrus.WithError(err).Error("replace roles: reload")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondOK(c, userSummary(user))
}

// DeleteUser removes the account together with its role links and refresh
// tokens. Callers cannot delete themselves.
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if principal := CurrentPrincipal(c); principal != nil && principal.UserID == id {
		RespondError(c, http.StatusBadRequest, ErrCodeBadRequest, "cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.repo.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		logrus.WithError(err).Error("delete user: load")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	if err := h.repo.DeleteUser(ctx, id); err != nil {
		logrus.WithError(err).Error("delete user")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	RespondMessage(c, "user deleted")
}

// ListRoles returns every role with its permission names.
func (h *HTTPHandler) ListRoles(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	roles, err := h.repo.ListRoles(ctx)
	if err != nil {
		logrus.WithError(err).Error("list roles")
		RespondError(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	summaries := make([]entity.RoleSummary, 0, len(roles))
	for _, role := range roles {
		permissions := make([]string, 0, len(role.Permissions))
		for _, perm := range role.Permissions {
			permissions = append(permissions, perm.Name)
		}
		summaries = append(summaries, entity.RoleSummary{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
			Permissions: permissions,
		})
	}
	RespondOK(c, entity.RoleListResponse{Roles: summaries})
}
