package entity

import "time"

// DbUser represents a persisted user account. Roles are attached through the
// user_roles join table and carry the permission grants evaluated on every
// authenticated request.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"column:username;type:varchar(100);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`

	Roles []DbRole `gorm:"many2many:user_roles" json:"roles,omitempty"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// DbRefreshToken is a persisted refresh token. A token string missing from
// this table is never accepted, regardless of its cryptographic validity;
// that is what makes server-side revocation possible.
type DbRefreshToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	Token     string    `gorm:"column:token;type:varchar(512);index;not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`

	User *DbUser `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides default pluralised name.
func (DbRefreshToken) TableName() string {
	return "refresh_tokens"
}

// UserSummary is the public user projection returned to clients. It never
// carries the password hash.
type UserSummary struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserQuery supports listing users with pagination.
type UserQuery struct {
	BaseParams
	Keyword string `json:"keyword" form:"keyword" query:"keyword"`
	Active  *bool  `json:"active" form:"active" query:"active"`
}

// UserCreateRequest is the payload for creating a user.
type UserCreateRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	RoleIDs  []uint `json:"role_ids"`
	IsActive *bool  `json:"is_active"`
}

// UserUpdateRequest is the payload for updating a user.
type UserUpdateRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// UserRolesRequest replaces the user's full role set.
type UserRolesRequest struct {
	RoleIDs []uint `json:"role_ids" binding:"required"`
}

// UserListResponse is the response for listing users.
type UserListResponse struct {
	Users []UserSummary `json:"users"`
	Meta  *Meta         `json:"meta"`
}
