// internal/repository/activity_log.go
package repository

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/nexus/internal/model"
	"gorm.io/gorm"
)

type ActivityLogRepositoryIface interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
}

type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Create(ctx context.Context, entry *model.ActivityLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("creating activity log entry: %w", err)
	}
	return nil
}
