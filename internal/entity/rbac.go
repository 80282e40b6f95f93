package entity

import "time"

// Permission name catalogue. Permissions are seeded at startup and never
// mutated by the API itself.
const (
	PermManageUsers = "MANAGE_USERS"
	PermManageRoles = "MANAGE_ROLES"

	PermCreateArticle = "CREATE_ARTICLE"
	PermUpdateArticle = "UPDATE_ARTICLE"
	PermDeleteArticle = "DELETE_ARTICLE"

	PermCreateBook = "CREATE_BOOK"
	PermUpdateBook = "UPDATE_BOOK"
	PermDeleteBook = "DELETE_BOOK"

	PermCreateResearch = "CREATE_RESEARCH"
	PermUpdateResearch = "UPDATE_RESEARCH"
	PermDeleteResearch = "DELETE_RESEARCH"

	PermCreateCategory = "CREATE_CATEGORY"
	PermUpdateCategory = "UPDATE_CATEGORY"
	PermDeleteCategory = "DELETE_CATEGORY"

	PermCreateTag = "CREATE_TAG"
	PermUpdateTag = "UPDATE_TAG"
	PermDeleteTag = "DELETE_TAG"

	PermUploadAttachment = "UPLOAD_ATTACHMENT"
	PermDeleteAttachment = "DELETE_ATTACHMENT"
)

// AllPermissions lists every permission known to the system, in seeding order.
func AllPermissions() []string {
	return []string{
		PermManageUsers, PermManageRoles,
		PermCreateArticle, PermUpdateArticle, PermDeleteArticle,
		PermCreateBook, PermUpdateBook, PermDeleteBook,
		PermCreateResearch, PermUpdateResearch, PermDeleteResearch,
		PermCreateCategory, PermUpdateCategory, PermDeleteCategory,
		PermCreateTag, PermUpdateTag, PermDeleteTag,
		PermUploadAttachment, PermDeleteAttachment,
	}
}

// DbRole is a named bundle of permission grants.
type DbRole struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"column:description;type:varchar(255)" json:"description"`

	Permissions []DbPermission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
}

// TableName overrides default pluralised name.
func (DbRole) TableName() string {
	return "roles"
}

// DbPermission is an atomic named capability such as CREATE_ARTICLE.
type DbPermission struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"name"`
}

// TableName overrides default pluralised name.
func (DbPermission) TableName() string {
	return "permissions"
}

// RoleSummary is the role projection returned to clients.
type RoleSummary struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// RoleListResponse is the response for listing roles.
type RoleListResponse struct {
	Roles []RoleSummary `json:"roles"`
}
