package entity

import "time"

// Typed partial-update structs. Each nil field is left untouched; set fields
// are merged into a single GORM update map by ToMap. This replaces ad-hoc
// untyped update bags so the effect of every field is visible at the type
// level.

// UserUpdates describes a partial user update.
type UserUpdates struct {
	Email        *string
	PasswordHash *string
	IsActive     *bool
}

// ToMap converts set fields into a GORM update map.
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// ArticleUpdates describes a partial article update.
type ArticleUpdates struct {
	Slug        *string
	CategoryID  **uint
	CoverPath   *string
	IsPublished *bool
}

// ToMap converts set fields into a GORM update map.
func (u ArticleUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.CategoryID != nil {
		updates["category_id"] = *u.CategoryID
	}
	if u.CoverPath != nil {
		updates["cover_path"] = *u.CoverPath
	}
	if u.IsPublished != nil {
		updates["is_published"] = *u.IsPublished
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u ArticleUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// BookUpdates describes a partial book update.
type BookUpdates struct {
	Slug          *string
	Author        *string
	ISBN          *string
	PublishedYear *int
	CoverPath     *string
	FilePath      *string
}

// ToMap converts set fields into a GORM update map.
func (u BookUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.Author != nil {
		updates["author"] = *u.Author
	}
	if u.ISBN != nil {
		updates["isbn"] = *u.ISBN
	}
	if u.PublishedYear != nil {
		updates["published_year"] = *u.PublishedYear
	}
	if u.CoverPath != nil {
		updates["cover_path"] = *u.CoverPath
	}
	if u.FilePath != nil {
		updates["file_path"] = *u.FilePath
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u BookUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// ResearchUpdates describes a partial research update.
type ResearchUpdates struct {
	Slug        *string
	Author      *string
	PublishedAt **time.Time
	FilePath    *string
}

// ToMap converts set fields into a GORM update map.
func (u ResearchUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.Author != nil {
		updates["author"] = *u.Author
	}
	if u.PublishedAt != nil {
		updates["published_at"] = *u.PublishedAt
	}
	if u.FilePath != nil {
		updates["file_path"] = *u.FilePath
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u ResearchUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// CategoryUpdates describes a partial category update.
type CategoryUpdates struct {
	Slug     *string
	ParentID **uint
}

// ToMap converts set fields into a GORM update map.
func (u CategoryUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.ParentID != nil {
		updates["parent_id"] = *u.ParentID
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u CategoryUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// TagUpdates describes a partial tag update.
type TagUpdates struct {
	Slug *string
}

// ToMap converts set fields into a GORM update map.
func (u TagUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u TagUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
