package auth

import (
	"sort"

	"maktaba/internal/entity"
)

// EffectivePermissions flattens every permission name reachable through the
// user's roles into one de-duplicated, sorted slice. Sorting makes the result
// independent of role iteration order.
func EffectivePermissions(roles []entity.DbRole) []string {
	seen := make(map[string]struct{})
	for _, role := range roles {
		for _, perm := range role.Permissions {
			if perm.Name == "" {
				continue
			}
			seen[perm.Name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Authorize reports whether required is present in the effective permission
// set.
func Authorize(permissions []string, required string) bool {
	if required == "" {
		return false
	}
	for _, name := range permissions {
		if name == required {
			return true
		}
	}
	return false
}
