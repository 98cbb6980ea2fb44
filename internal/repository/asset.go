// internal/repository/asset.go
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

// AssetFilter is the conjunctive predicate set for asset listings. Search is
// OR'd across name, description, model and serial number.
type AssetFilter struct {
	OrganizationID *uuid.UUID
	Status         *model.AssetStatus
	Criticality    *model.Criticality
	CreatedByID    *uuid.UUID
	Type           string
	Location       string
	Search         string
	Offset         *int
	Limit          *int
}

func (f AssetFilter) scope(db *gorm.DB) *gorm.DB {
	if f.OrganizationID != nil {
		db = db.Where("organization_id = ?", *f.OrganizationID)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.Criticality != nil {
		db = db.Where("criticality = ?", *f.Criticality)
	}
	if f.CreatedByID != nil {
		db = db.Where("created_by_id = ?", *f.CreatedByID)
	}
	if f.Type != "" {
		db = db.Where("type ILIKE ?", "%"+f.Type+"%")
	}
	if f.Location != "" {
		db = db.Where("location ILIKE ?", "%"+f.Location+"%")
	}
	if f.Search != "" {
		p := "%" + f.Search + "%"
		db = db.Where("name ILIKE ? OR description ILIKE ? OR model ILIKE ? OR serial_number ILIKE ?", p, p, p, p)
	}
	return db
}

type AssetRepositoryIface interface {
	Create(ctx context.Context, asset *model.Asset) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	FindByIDExpanded(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	FindAll(ctx context.Context, filter AssetFilter) ([]*model.Asset, int64, error)
	Update(ctx context.Context, asset *model.Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountWorkOrders(ctx context.Context, id uuid.UUID) (int64, error)
}

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(ctx context.Context, asset *model.Asset) error {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return fmt.Errorf("creating asset: %w", err)
	}
	return nil
}

func (r *AssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("CreatedBy").
		First(&asset, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("finding asset: %w", err)
	}
	return &asset, nil
}

// FindByIDExpanded additionally loads the asset's work orders with their
// assignee and creator, newest first.
func (r *AssetRepository) FindByIDExpanded(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("CreatedBy").
		Preload("WorkOrders", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("WorkOrders.AssignedTo").
		Preload("WorkOrders.CreatedBy").
		First(&asset, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("finding asset: %w", err)
	}
	return &asset, nil
}

// FindAll returns the filtered page plus the total matching count
// irrespective of the pagination window.
func (r *AssetRepository) FindAll(ctx context.Context, filter AssetFilter) ([]*model.Asset, int64, error) {
	var total int64
	if err := filter.scope(r.db.WithContext(ctx).Model(&model.Asset{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting assets: %w", err)
	}

	var assets []*model.Asset
	db := filter.scope(r.db.WithContext(ctx)).
		Preload("Organization").
		Preload("CreatedBy").
		Order("created_at DESC")
	if err := window(db, filter.Offset, filter.Limit).Find(&assets).Error; err != nil {
		return nil, 0, fmt.Errorf("finding assets: %w", err)
	}
	return assets, total, nil
}

func (r *AssetRepository) Update(ctx context.Context, asset *model.Asset) error {
	if err := r.db.WithContext(ctx).Save(asset).Error; err != nil {
		return fmt.Errorf("updating asset: %w", err)
	}
	return nil
}

func (r *AssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.Asset{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}
	return nil
}

func (r *AssetRepository) CountWorkOrders(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WorkOrder{}).
		Where("asset_id = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting asset work orders: %w", err)
	}
	return count, nil
}
