package sql

import (
	"strings"

	"maktaba/internal/entity"

	"gorm.io/gorm"
)

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// calculatePagination calculates pagination metrics
func (r *GormRepository) calculatePagination(totalCount int64, page, pageSize int) *entity.Meta {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	return &entity.Meta{
		Total:    totalCount,
		Page:     int64(page),
		PageSize: int64(pageSize),
	}
}

// pageWindow normalises page/page_size parameters into an offset window.
func pageWindow(params entity.BaseParams) (page, pageSize, offset int) {
	page = 1
	pageSize = 20
	if params.Page > 0 {
		page = int(params.Page)
	}
	if params.PageSize > 0 {
		pageSize = int(params.PageSize)
	}
	offset = (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return page, pageSize, offset
}

// orderClause maps sort_by/sort_desc onto a whitelisted column. Unknown or
// absent sort keys fall back to newest-first by id.
func orderClause(params entity.BaseParams, allowed map[string]string) string {
	column, ok := allowed[strings.ToLower(strings.TrimSpace(params.SortBy))]
	if !ok {
		return "id DESC"
	}
	if params.SortDesc {
		return column + " DESC"
	}
	return column + " ASC"
}
