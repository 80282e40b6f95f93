package model

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"maktaba/internal/auth"
	"maktaba/internal/config"
	"maktaba/internal/entity"
)

type roleSeed struct {
	Name        string
	Description string
	Permissions []string
}

// SeedRBAC ensures the permission catalogue and the built-in roles exist, and
// creates the initial admin account while the user table is still empty.
// Roles are provisioned here and never mutated by the API.
func SeedRBAC(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	for _, name := range entity.AllPermissions() {
		if _, err := repo.EnsurePermission(ctx, name); err != nil {
			return err
		}
	}

	contentWrite := []string{
		entity.PermCreateArticle, entity.PermUpdateArticle, entity.PermDeleteArticle,
		entity.PermCreateBook, entity.PermUpdateBook, entity.PermDeleteBook,
		entity.PermCreateResearch, entity.PermUpdateResearch, entity.PermDeleteResearch,
		entity.PermCreateCategory, entity.PermUpdateCategory, entity.PermDeleteCategory,
		entity.PermCreateTag, entity.PermUpdateTag, entity.PermDeleteTag,
		entity.PermUploadAttachment, entity.PermDeleteAttachment,
	}

	seeds := []roleSeed{
		{Name: "admin", Description: "Full access", Permissions: entity.AllPermissions()},
		{Name: "editor", Description: "Manage content", Permissions: contentWrite},
		{Name: "viewer", Description: "Read-only access", Permissions: nil},
	}

	var adminRole *entity.DbRole
	for _, seed := range seeds {
		role, err := repo.EnsureRole(ctx, seed.Name, seed.Description, seed.Permissions)
		if err != nil {
			return err
		}
		if seed.Name == "admin" {
			adminRole = role
		}
	}

	return seedAdminUser(ctx, repo, cfg, adminRole)
}

func seedAdminUser(ctx context.Context, repo Repository, cfg config.Config, adminRole *entity.DbRole) error {
	password := strings.TrimSpace(cfg.SeedAdminPassword)
	if password == "" || adminRole == nil {
		return nil
	}

	count, err := repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		return err
	}

	user := &entity.DbUser{
		Username:     strings.TrimSpace(cfg.SeedAdminUsername),
		Email:        strings.ToLower(strings.TrimSpace(cfg.SeedAdminEmail)),
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return err
	}
	if err := repo.ReplaceUserRoles(ctx, user.ID, []uint{adminRole.ID}); err != nil {
		return err
	}

	logrus.WithField("username", user.Username).Info("seeded initial admin user")
	return nil
}
