// internal/repository/organization.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/nexus/internal/domain"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepositoryIface interface {
	Create(ctx context.Context, org *model.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	FindByIDExpanded(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	FindAll(ctx context.Context) ([]*model.Organization, error)
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	DependentCounts(ctx context.Context, id uuid.UUID) (model.OrganizationCounts, error)
	Stats(ctx context.Context, id uuid.UUID) (*model.OrganizationStats, error)
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *model.Organization) error {
	if err := r.db.WithContext(ctx).Create(org).Error; err != nil {
		return fmt.Errorf("creating organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

// FindByIDExpanded loads the organization with its owned users, assets and
// work orders for the detail endpoint.
func (r *OrganizationRepository) FindByIDExpanded(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).
		Preload("Users").
		Preload("Assets").
		Preload("WorkOrders").
		First(&org, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

// FindAll returns all organizations, newest first
func (r *OrganizationRepository) FindAll(ctx context.Context) ([]*model.Organization, error) {
	var orgs []*model.Organization
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("failed to find all organizations: %w", err)
	}
	return orgs, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org *model.Organization) error {
	if err := r.db.WithContext(ctx).Save(org).Error; err != nil {
		return fmt.Errorf("updating organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.Organization{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting organization: %w", err)
	}
	return nil
}

// DependentCounts feeds the delete guard: an organization may only be removed
// while all three counts are zero.
func (r *OrganizationRepository) DependentCounts(ctx context.Context, id uuid.UUID) (model.OrganizationCounts, error) {
	var counts model.OrganizationCounts

	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("organization_id = ?", id).Count(&counts.Users).Error; err != nil {
		return counts, fmt.Errorf("counting users: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&model.Asset{}).
		Where("organization_id = ?", id).Count(&counts.Assets).Error; err != nil {
		return counts, fmt.Errorf("counting assets: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&model.WorkOrder{}).
		Where("organization_id = ?", id).Count(&counts.WorkOrders).Error; err != nil {
		return counts, fmt.Errorf("counting work orders: %w", err)
	}

	return counts, nil
}

func (r *OrganizationRepository) Stats(ctx context.Context, id uuid.UUID) (*model.OrganizationStats, error) {
	stats := &model.OrganizationStats{}
	db := r.db.WithContext(ctx)

	count := func(dst *int64, q *gorm.DB) error {
		return q.Count(dst).Error
	}

	openStatuses := []model.WorkOrderStatus{model.WorkOrderOpen, model.WorkOrderInProgress}

	steps := []struct {
		dst *int64
		q   *gorm.DB
	}{
		{&stats.Users.Total, db.Model(&model.User{}).Where("organization_id = ?", id)},
		{&stats.Users.Active, db.Model(&model.User{}).Where("organization_id = ? AND is_active", id)},
		{&stats.Assets.Total, db.Model(&model.Asset{}).Where("organization_id = ?", id)},
		{&stats.Assets.Active, db.Model(&model.Asset{}).Where("organization_id = ? AND status = ?", id, model.AssetActive)},
		{&stats.Assets.Offline, db.Model(&model.Asset{}).Where("organization_id = ? AND status IN ?", id,
			[]model.AssetStatus{model.AssetInactive, model.AssetUnderMaintenance})},
		{&stats.Assets.UnderMaintenance, db.Model(&model.Asset{}).Where("organization_id = ? AND status = ?", id, model.AssetUnderMaintenance)},
		{&stats.WorkOrders.Total, db.Model(&model.WorkOrder{}).Where("organization_id = ?", id)},
		{&stats.WorkOrders.Open, db.Model(&model.WorkOrder{}).Where("organization_id = ? AND status IN ?", id, openStatuses)},
		{&stats.WorkOrders.Overdue, db.Model(&model.WorkOrder{}).
			Where("organization_id = ? AND status IN ? AND due_date < ?", id, openStatuses, time.Now())},
		{&stats.WorkOrders.Completed, db.Model(&model.WorkOrder{}).Where("organization_id = ? AND status = ?", id, model.WorkOrderCompleted)},
	}
	for _, s := range steps {
		if err := count(s.dst, s.q); err != nil {
			return nil, fmt.Errorf("collecting organization stats: %w", err)
		}
	}

	stats.Derive()

	return stats, nil
}
