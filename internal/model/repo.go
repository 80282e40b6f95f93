package model

import (
	"context"

	"maktaba/internal/entity"
)

// Repository defines every persistence operation the API issues. The GORM
// implementation lives in model/sql; handlers never touch SQL directly.
type Repository interface {
	// Users and RBAC.
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByUsername(ctx context.Context, username string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error)
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)
	// ReplaceUserRoles swaps the user's full role set inside one transaction
	// so a failure can never leave the user with a partial set.
	ReplaceUserRoles(ctx context.Context, userID uint, roleIDs []uint) error

	ListRoles(ctx context.Context) ([]entity.DbRole, error)
	FindRolesByIDs(ctx context.Context, ids []uint) ([]entity.DbRole, error)
	EnsurePermission(ctx context.Context, name string) (*entity.DbPermission, error)
	EnsureRole(ctx context.Context, name, description string, permissionNames []string) (*entity.DbRole, error)

	// Refresh tokens.
	CreateRefreshToken(ctx context.Context, token *entity.DbRefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*entity.DbRefreshToken, error)
	DeleteRefreshTokensByToken(ctx context.Context, token string) error
	DeleteRefreshTokensByUser(ctx context.Context, userID uint) error
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)

	// Articles.
	CreateArticle(ctx context.Context, article *entity.DbArticle) error
	UpdateArticle(ctx context.Context, id uint, updates entity.ArticleUpdates) error
	GetArticleByID(ctx context.Context, id uint) (*entity.DbArticle, error)
	GetArticleBySlug(ctx context.Context, slug string) (*entity.DbArticle, error)
	ListArticles(ctx context.Context, params *entity.ArticleQuery) ([]entity.DbArticle, *entity.Meta, error)
	ListArticleSlugs(ctx context.Context, prefix string) ([]string, error)
	ReplaceArticleTranslations(ctx context.Context, articleID uint, translations []entity.DbArticleTranslation) error
	SetArticleTags(ctx context.Context, articleID uint, tagIDs []uint) error
	DeleteArticle(ctx context.Context, id uint) error

	// Books.
	CreateBook(ctx context.Context, book *entity.DbBook) error
	UpdateBook(ctx context.Context, id uint, updates entity.BookUpdates) error
	GetBookByID(ctx context.Context, id uint) (*entity.DbBook, error)
	GetBookBySlug(ctx context.Context, slug string) (*entity.DbBook, error)
	ListBooks(ctx context.Context, params *entity.BookQuery) ([]entity.DbBook, *entity.Meta, error)
	ListBookSlugs(ctx context.Context, prefix string) ([]string, error)
	ReplaceBookTranslations(ctx context.Context, bookID uint, translations []entity.DbBookTranslation) error
	DeleteBook(ctx context.Context, id uint) error

	// Research papers.
	CreateResearch(ctx context.Context, research *entity.DbResearch) error
	UpdateResearch(ctx context.Context, id uint, updates entity.ResearchUpdates) error
	GetResearchByID(ctx context.Context, id uint) (*entity.DbResearch, error)
	GetResearchBySlug(ctx context.Context, slug string) (*entity.DbResearch, error)
	ListResearch(ctx context.Context, params *entity.ResearchQuery) ([]entity.DbResearch, *entity.Meta, error)
	ListResearchSlugs(ctx context.Context, prefix string) ([]string, error)
	ReplaceResearchTranslations(ctx context.Context, researchID uint, translations []entity.DbResearchTranslation) error
	DeleteResearch(ctx context.Context, id uint) error

	// Categories.
	CreateCategory(ctx context.Context, category *entity.DbCategory) error
	UpdateCategory(ctx context.Context, id uint, updates entity.CategoryUpdates) error
	GetCategoryByID(ctx context.Context, id uint) (*entity.DbCategory, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*entity.DbCategory, error)
	ListCategories(ctx context.Context) ([]entity.DbCategory, error)
	ListCategorySlugs(ctx context.Context, prefix string) ([]string, error)
	CountCategoryChildren(ctx context.Context, parentID uint) (int64, error)
	ReplaceCategoryTranslations(ctx context.Context, categoryID uint, translations []entity.DbCategoryTranslation) error
	DeleteCategory(ctx context.Context, id uint) error

	// Tags.
	CreateTag(ctx context.Context, tag *entity.DbTag) error
	UpdateTag(ctx context.Context, id uint, updates entity.TagUpdates) error
	GetTagByID(ctx context.Context, id uint) (*entity.DbTag, error)
	GetTagBySlug(ctx context.Context, slug string) (*entity.DbTag, error)
	ListTags(ctx context.Context) ([]entity.DbTag, error)
	ListTagSlugs(ctx context.Context, prefix string) ([]string, error)
	FindTagsByIDs(ctx context.Context, ids []uint) ([]entity.DbTag, error)
	ReplaceTagTranslations(ctx context.Context, tagID uint, translations []entity.DbTagTranslation) error
	DeleteTag(ctx context.Context, id uint) error

	// Attachments.
	CreateAttachment(ctx context.Context, attachment *entity.DbAttachment) error
	GetAttachment(ctx context.Context, id uint) (*entity.DbAttachment, error)
	ListAttachments(ctx context.Context, params *entity.AttachmentQuery) ([]entity.DbAttachment, *entity.Meta, error)
	DeleteAttachment(ctx context.Context, id uint) error
}
