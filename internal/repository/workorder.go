// internal/repository/workorder.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/nexus/internal/domain"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkOrderFilter is the conjunctive predicate set for work order listings.
// Search is OR'd across title, description and the work order number.
type WorkOrderFilter struct {
	OrganizationID *uuid.UUID
	Status         *model.WorkOrderStatus
	Priority       *model.Priority
	AssignedToID   *uuid.UUID
	CreatedByID    *uuid.UUID
	AssetID        *uuid.UUID
	Type           string
	Search         string
	Offset         *int
	Limit          *int
}

func (f WorkOrderFilter) scope(db *gorm.DB) *gorm.DB {
	if f.OrganizationID != nil {
		db = db.Where("organization_id = ?", *f.OrganizationID)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.Priority != nil {
		db = db.Where("priority = ?", *f.Priority)
	}
	if f.AssignedToID != nil {
		db = db.Where("assigned_to_id = ?", *f.AssignedToID)
	}
	if f.CreatedByID != nil {
		db = db.Where("created_by_id = ?", *f.CreatedByID)
	}
	if f.AssetID != nil {
		db = db.Where("asset_id = ?", *f.AssetID)
	}
	if f.Type != "" {
		db = db.Where("type ILIKE ?", "%"+f.Type+"%")
	}
	if f.Search != "" {
		p := "%" + f.Search + "%"
		db = db.Where("title ILIKE ? OR description ILIKE ? OR work_order_number ILIKE ?", p, p, p)
	}
	return db
}

type WorkOrderRepositoryIface interface {
	Create(ctx context.Context, wo *model.WorkOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.WorkOrder, error)
	FindByIDExpanded(ctx context.Context, id uuid.UUID) (*model.WorkOrder, error)
	FindAll(ctx context.Context, filter WorkOrderFilter) ([]*model.WorkOrder, int64, error)
	Update(ctx context.Context, wo *model.WorkOrder) error
	CountByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error)
	FindMaintenanceHistory(ctx context.Context, assetID uuid.UUID) ([]*model.WorkOrder, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
}

type WorkOrderRepository struct {
	db *gorm.DB
}

func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

func (r *WorkOrderRepository) Create(ctx context.Context, wo *model.WorkOrder) error {
	if err := r.db.WithContext(ctx).Create(wo).Error; err != nil {
		return fmt.Errorf("creating work order: %w", err)
	}
	return nil
}

func (r *WorkOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.WorkOrder, error) {
	var wo model.WorkOrder
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("Asset").
		Preload("AssignedTo").
		Preload("CreatedBy").
		First(&wo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWorkOrderNotFound
		}
		return nil, fmt.Errorf("finding work order: %w", err)
	}
	return &wo, nil
}

// FindByIDExpanded additionally loads comments with their authors, oldest
// first for display.
func (r *WorkOrderRepository) FindByIDExpanded(ctx context.Context, id uuid.UUID) (*model.WorkOrder, error) {
	var wo model.WorkOrder
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("Asset").
		Preload("AssignedTo").
		Preload("CreatedBy").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.Author").
		First(&wo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWorkOrderNotFound
		}
		return nil, fmt.Errorf("finding work order: %w", err)
	}
	return &wo, nil
}

// FindAll returns the filtered page plus the total matching count
// irrespective of the pagination window.
func (r *WorkOrderRepository) FindAll(ctx context.Context, filter WorkOrderFilter) ([]*model.WorkOrder, int64, error) {
	var total int64
	if err := filter.scope(r.db.WithContext(ctx).Model(&model.WorkOrder{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting work orders: %w", err)
	}

	var orders []*model.WorkOrder
	db := filter.scope(r.db.WithContext(ctx)).
		Preload("Organization").
		Preload("Asset").
		Preload("AssignedTo").
		Preload("CreatedBy").
		Order("created_at DESC")
	if err := window(db, filter.Offset, filter.Limit).Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("finding work orders: %w", err)
	}
	return orders, total, nil
}

func (r *WorkOrderRepository) Update(ctx context.Context, wo *model.WorkOrder) error {
	if err := r.db.WithContext(ctx).Save(wo).Error; err != nil {
		return fmt.Errorf("updating work order: %w", err)
	}
	return nil
}

// CountByOrganization backs the sequential numbering scheme. The count is
// read outside any transaction, so two concurrent creates for the same
// organization can observe the same value and mint duplicate numbers.
func (r *WorkOrderRepository) CountByOrganization(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WorkOrder{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting organization work orders: %w", err)
	}
	return count, nil
}

// FindMaintenanceHistory lists an asset's maintenance-typed work orders,
// most recently completed first.
func (r *WorkOrderRepository) FindMaintenanceHistory(ctx context.Context, assetID uuid.UUID) ([]*model.WorkOrder, error) {
	var orders []*model.WorkOrder
	err := r.db.WithContext(ctx).
		Where("asset_id = ? AND type ILIKE ?", assetID, "%maintenance%").
		Preload("AssignedTo").
		Preload("CreatedBy").
		Order("completed_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("finding maintenance history: %w", err)
	}
	return orders, nil
}

func (r *WorkOrderRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("creating comment: %w", err)
	}
	return nil
}
