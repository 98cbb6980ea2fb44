// internal/service/asset.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/nexus/internal/audit"
	"github.com/dangerclosesec/nexus/internal/domain"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/dangerclosesec/nexus/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AssetService struct {
	repo     repository.AssetRepositoryIface
	orgRepo  repository.OrganizationRepositoryIface
	userRepo repository.UserRepositoryIface
	recorder audit.Recorder
	validate *validator.Validate
}

func NewAssetService(
	repo repository.AssetRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	userRepo repository.UserRepositoryIface,
	recorder audit.Recorder,
) *AssetService {
	return &AssetService{
		repo:     repo,
		orgRepo:  orgRepo,
		userRepo: userRepo,
		recorder: recorder,
		validate: validator.New(),
	}
}

type CreateAssetInput struct {
	Name                string        `json:"name" validate:"required"`
	Description         string        `json:"description"`
	Type                string        `json:"type" validate:"required"`
	Category            string        `json:"category"`
	Location            string        `json:"location" validate:"required"`
	Status              string        `json:"status"`
	Criticality         string        `json:"criticality"`
	Manufacturer        string        `json:"manufacturer"`
	Model               string        `json:"model"`
	SerialNumber        string        `json:"serialNumber"`
	PurchaseDate        *string       `json:"purchaseDate"`
	WarrantyExpiry      *string       `json:"warrantyExpiry"`
	InstallationDate    *string       `json:"installationDate"`
	LastMaintenance     *string       `json:"lastMaintenance"`
	NextMaintenance     *string       `json:"nextMaintenance"`
	MaintenanceInterval string        `json:"maintenanceInterval"`
	PurchasePrice       *float64      `json:"purchasePrice"`
	CurrentValue        *float64      `json:"currentValue"`
	DepreciationRate    *float64      `json:"depreciationRate"`
	Specifications      model.JSONMap `json:"specifications"`
	Documents           string        `json:"documents"`
	Notes               string        `json:"notes"`
	OrganizationID      uuid.UUID     `json:"organizationId" validate:"required"`
	CreatedByID         uuid.UUID     `json:"createdById" validate:"required"`
}

func (s *AssetService) Create(ctx context.Context, input CreateAssetInput) (*model.Asset, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	status := model.AssetActive
	if input.Status != "" {
		parsed, err := model.ParseAssetStatus(input.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		status = parsed
	}
	criticality := model.CriticalityMedium
	if input.Criticality != "" {
		parsed, err := model.ParseCriticality(input.Criticality)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		criticality = parsed
	}

	// Validate references explicitly instead of relying on FK violations.
	if _, err := s.orgRepo.FindByID(ctx, input.OrganizationID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, input.CreatedByID); err != nil {
		return nil, err
	}

	asset := &model.Asset{
		Name:                input.Name,
		Description:         input.Description,
		Type:                input.Type,
		Category:            input.Category,
		Location:            input.Location,
		Status:              status,
		Criticality:         criticality,
		Manufacturer:        input.Manufacturer,
		Model:               input.Model,
		SerialNumber:        input.SerialNumber,
		MaintenanceInterval: input.MaintenanceInterval,
		PurchasePrice:       input.PurchasePrice,
		CurrentValue:        input.CurrentValue,
		DepreciationRate:    input.DepreciationRate,
		Specifications:      input.Specifications,
		Documents:           input.Documents,
		Notes:               input.Notes,
		ImageURLs:           model.StringList{},
		FileURLs:            model.StringList{},
		OrganizationID:      input.OrganizationID,
		CreatedByID:         input.CreatedByID,
	}

	for _, merge := range []struct {
		dst **time.Time
		src *string
	}{
		{&asset.PurchaseDate, input.PurchaseDate},
		{&asset.WarrantyExpiry, input.WarrantyExpiry},
		{&asset.InstallationDate, input.InstallationDate},
		{&asset.LastMaintenance, input.LastMaintenance},
		{&asset.NextMaintenance, input.NextMaintenance},
	} {
		if err := mergeDate(merge.dst, merge.src); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
	}

	if err := s.repo.Create(ctx, asset); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, asset.ID)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		Action:         model.ActionCreated,
		EntityType:     "Asset",
		EntityID:       created.ID,
		Description:    fmt.Sprintf("Asset %q was created", created.Name),
		NewValues:      model.Snapshot(created),
		OrganizationID: created.OrganizationID,
		UserID:         input.CreatedByID,
	})

	return created, nil
}

func (s *AssetService) Get(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	return s.repo.FindByIDExpanded(ctx, id)
}

func (s *AssetService) List(ctx context.Context, filter repository.AssetFilter) ([]*model.Asset, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

// UpdateAssetInput is a partial update: nil fields are left untouched and
// date strings are parsed before the merge.
type UpdateAssetInput struct {
	Name                *string        `json:"name"`
	Description         *string        `json:"description"`
	Type                *string        `json:"type"`
	Category            *string        `json:"category"`
	Location            *string        `json:"location"`
	Status              *string        `json:"status"`
	Criticality         *string        `json:"criticality"`
	Manufacturer        *string        `json:"manufacturer"`
	Model               *string        `json:"model"`
	SerialNumber        *string        `json:"serialNumber"`
	PurchaseDate        *string        `json:"purchaseDate"`
	WarrantyExpiry      *string        `json:"warrantyExpiry"`
	InstallationDate    *string        `json:"installationDate"`
	LastMaintenance     *string        `json:"lastMaintenance"`
	NextMaintenance     *string        `json:"nextMaintenance"`
	MaintenanceInterval *string        `json:"maintenanceInterval"`
	PurchasePrice       *float64       `json:"purchasePrice"`
	CurrentValue        *float64       `json:"currentValue"`
	DepreciationRate    *float64       `json:"depreciationRate"`
	Specifications      *model.JSONMap `json:"specifications"`
	Documents           *string        `json:"documents"`
	Notes               *string        `json:"notes"`
	UpdatedByID         *uuid.UUID     `json:"updatedById"`
}

func (s *AssetService) Update(ctx context.Context, id uuid.UUID, input UpdateAssetInput) (*model.Asset, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := model.Snapshot(asset)

	if input.Status != nil {
		status, err := model.ParseAssetStatus(*input.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		asset.Status = status
	}
	if input.Criticality != nil {
		criticality, err := model.ParseCriticality(*input.Criticality)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		asset.Criticality = criticality
	}

	mergeString(&asset.Name, input.Name)
	mergeString(&asset.Description, input.Description)
	mergeString(&asset.Type, input.Type)
	mergeString(&asset.Category, input.Category)
	mergeString(&asset.Location, input.Location)
	mergeString(&asset.Manufacturer, input.Manufacturer)
	mergeString(&asset.Model, input.Model)
	mergeString(&asset.SerialNumber, input.SerialNumber)
	mergeString(&asset.MaintenanceInterval, input.MaintenanceInterval)
	mergeString(&asset.Documents, input.Documents)
	mergeString(&asset.Notes, input.Notes)
	if input.PurchasePrice != nil {
		asset.PurchasePrice = input.PurchasePrice
	}
	if input.CurrentValue != nil {
		asset.CurrentValue = input.CurrentValue
	}
	if input.DepreciationRate != nil {
		asset.DepreciationRate = input.DepreciationRate
	}
	if input.Specifications != nil {
		asset.Specifications = *input.Specifications
	}

	for _, merge := range []struct {
		dst **time.Time
		src *string
	}{
		{&asset.PurchaseDate, input.PurchaseDate},
		{&asset.WarrantyExpiry, input.WarrantyExpiry},
		{&asset.InstallationDate, input.InstallationDate},
		{&asset.LastMaintenance, input.LastMaintenance},
		{&asset.NextMaintenance, input.NextMaintenance},
	} {
		if err := mergeDate(merge.dst, merge.src); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
	}

	if err := s.repo.Update(ctx, asset); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.UpdatedByID != nil {
		s.recorder.Record(ctx, audit.Entry{
			Action:         model.ActionUpdated,
			EntityType:     "Asset",
			EntityID:       updated.ID,
			Description:    fmt.Sprintf("Asset %q was updated", updated.Name),
			OldValues:      before,
			NewValues:      model.Snapshot(updated),
			OrganizationID: updated.OrganizationID,
			UserID:         *input.UpdatedByID,
		})
	}

	return updated, nil
}

// Delete refuses while the asset has any associated work order. On refusal
// the dependent count is returned for the caller.
func (s *AssetService) Delete(ctx context.Context, id uuid.UUID, deletedByID *uuid.UUID) (int64, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.CountWorkOrders(ctx, id)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return count, domain.ErrAssetHasWorkOrders
	}

	before := model.Snapshot(asset)
	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, err
	}

	if deletedByID != nil {
		s.recorder.Record(ctx, audit.Entry{
			Action:         model.ActionDeleted,
			EntityType:     "Asset",
			EntityID:       id,
			Description:    fmt.Sprintf("Asset %q was deleted", asset.Name),
			OldValues:      before,
			OrganizationID: asset.OrganizationID,
			UserID:         *deletedByID,
		})
	}

	return 0, nil
}
