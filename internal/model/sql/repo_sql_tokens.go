package sql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"maktaba/internal/entity"
)

// CreateRefreshToken persists an issued refresh token.
func (r *GormRepository) CreateRefreshToken(ctx context.Context, token *entity.DbRefreshToken) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if token == nil {
		return fmt.Errorf("refresh token is nil")
	}
	return r.db.WithContext(ctx).Create(token).Error
}

// FindRefreshToken loads a persisted refresh token by its exact string.
// gorm.ErrRecordNotFound means the token was never issued or has been
// revoked.
func (r *GormRepository) FindRefreshToken(ctx context.Context, token string) (*entity.DbRefreshToken, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, fmt.Errorf("token is empty")
	}
	var record entity.DbRefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", trimmed).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteRefreshTokensByToken removes every persisted row matching the token
// string. Deleting zero rows is not an error; logout is idempotent.
func (r *GormRepository) DeleteRefreshTokensByToken(ctx context.Context, token string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil
	}
	return r.db.WithContext(ctx).Where("token = ?", trimmed).Delete(&entity.DbRefreshToken{}).Error
}

// DeleteRefreshTokensByUser revokes every session of the given user.
func (r *GormRepository) DeleteRefreshTokensByUser(ctx context.Context, userID uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return fmt.Errorf("invalid user id")
	}
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.DbRefreshToken{}).Error
}

// DeleteExpiredRefreshTokens garbage-collects rows whose expiry has passed.
func (r *GormRepository) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	result := r.db.WithContext(ctx).Where("expires_at < ?", time.Now().UTC()).Delete(&entity.DbRefreshToken{})
	return result.RowsAffected, result.Error
}
