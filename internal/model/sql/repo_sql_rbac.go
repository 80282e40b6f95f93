package sql

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"maktaba/internal/entity"
)

// ListRoles returns all roles with their permission grants.
func (r *GormRepository) ListRoles(ctx context.Context) ([]entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var roles []entity.DbRole
	if err := r.db.WithContext(ctx).Preload("Permissions").Order("name ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// FindRolesByIDs fetches roles by ids.
func (r *GormRepository) FindRolesByIDs(ctx context.Context, ids []uint) ([]entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if len(ids) == 0 {
		return []entity.DbRole{}, nil
	}
	var roles []entity.DbRole
	if err := r.db.WithContext(ctx).Preload("Permissions").Where("id IN ?", ids).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// EnsurePermission creates the named permission if it does not exist.
func (r *GormRepository) EnsurePermission(ctx context.Context, name string) (*entity.DbPermission, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("permission name is empty")
	}
	var perm entity.DbPermission
	if err := r.db.WithContext(ctx).Where("name = ?", trimmed).
		FirstOrCreate(&perm, entity.DbPermission{Name: trimmed}).Error; err != nil {
		return nil, err
	}
	return &perm, nil
}

// EnsureRole creates the named role if missing and syncs its permission set
// to permissionNames.
func (r *GormRepository) EnsureRole(ctx context.Context, name, description string, permissionNames []string) (*entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("role name is empty")
	}

	var role entity.DbRole
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ?", trimmed).
			FirstOrCreate(&role, entity.DbRole{Name: trimmed, Description: description}).Error; err != nil {
			return err
		}

		var perms []entity.DbPermission
		if len(permissionNames) > 0 {
			if err := tx.Where("name IN ?", permissionNames).Find(&perms).Error; err != nil {
				return err
			}
		}
		return tx.Model(&role).Association("Permissions").Replace(perms)
	})
	if err != nil {
		return nil, err
	}
	return &role, nil
}
