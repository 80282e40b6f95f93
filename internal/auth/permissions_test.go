package auth

import (
	"reflect"
	"testing"

	"maktaba/internal/entity"
)

func role(name string, perms ...string) entity.DbRole {
	r := entity.DbRole{Name: name}
	for _, p := range perms {
		r.Permissions = append(r.Permissions, entity.DbPermission{Name: p})
	}
	return r
}

func TestEffectivePermissions(t *testing.T) {
	tests := []struct {
		name     string
		roles    []entity.DbRole
		expected []string
	}{
		{
			name:     "NoRoles",
			roles:    nil,
			expected: []string{},
		},
		{
			name:     "SingleRole",
			roles:    []entity.DbRole{role("editor", "CREATE_ARTICLE", "UPDATE_ARTICLE")},
			expected: []string{"CREATE_ARTICLE", "UPDATE_ARTICLE"},
		},
		{
			name: "OverlappingRolesDeduplicated",
			roles: []entity.DbRole{
				role("editor", "CREATE_ARTICLE", "UPDATE_ARTICLE"),
				role("publisher", "UPDATE_ARTICLE", "DELETE_ARTICLE"),
			},
			expected: []string{"CREATE_ARTICLE", "DELETE_ARTICLE", "UPDATE_ARTICLE"},
		},
		{
			name:     "EmptyNamesSkipped",
			roles:    []entity.DbRole{role("odd", "", "CREATE_TAG")},
			expected: []string{"CREATE_TAG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectivePermissions(tt.roles)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("EffectivePermissions = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	perms := []string{"CREATE_ARTICLE", "UPDATE_ARTICLE"}

	if !Authorize(perms, "CREATE_ARTICLE") {
		t.Error("expected CREATE_ARTICLE to be authorized")
	}
	if Authorize(perms, "DELETE_ARTICLE") {
		t.Error("expected DELETE_ARTICLE to be denied")
	}
	if Authorize(perms, "") {
		t.Error("empty permission name must be denied")
	}
	if Authorize(nil, "CREATE_ARTICLE") {
		t.Error("empty permission set must deny everything")
	}
}
