// internal/service/organization.go
package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/nexus/internal/domain"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/dangerclosesec/nexus/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type OrganizationService struct {
	repo     repository.OrganizationRepositoryIface
	validate *validator.Validate
}

func NewOrganizationService(repo repository.OrganizationRepositoryIface) *OrganizationService {
	return &OrganizationService{
		repo:     repo,
		validate: validator.New(),
	}
}

type CreateOrganizationInput struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	Industry    string        `json:"industry"`
	Address     string        `json:"address"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email" validate:"omitempty,email"`
	Website     string        `json:"website"`
	LogoURL     string        `json:"logoUrl"`
	Timezone    string        `json:"timezone"`
	Settings    model.JSONMap `json:"settings"`
}

func (s *OrganizationService) Create(ctx context.Context, input CreateOrganizationInput) (*model.Organization, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if input.Timezone == "" {
		input.Timezone = "UTC"
	}

	org := &model.Organization{
		Name:        input.Name,
		Description: input.Description,
		Industry:    input.Industry,
		Address:     input.Address,
		Phone:       input.Phone,
		Email:       input.Email,
		Website:     input.Website,
		LogoURL:     input.LogoURL,
		Timezone:    input.Timezone,
		Settings:    input.Settings,
	}
	if err := s.repo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) Get(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	return s.repo.FindByIDExpanded(ctx, id)
}

func (s *OrganizationService) List(ctx context.Context) ([]*model.Organization, error) {
	return s.repo.FindAll(ctx)
}

// UpdateOrganizationInput is a partial update: nil fields are left untouched.
type UpdateOrganizationInput struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Industry    *string        `json:"industry"`
	Address     *string        `json:"address"`
	Phone       *string        `json:"phone"`
	Email       *string        `json:"email"`
	Website     *string        `json:"website"`
	LogoURL     *string        `json:"logoUrl"`
	Timezone    *string        `json:"timezone"`
	Settings    *model.JSONMap `json:"settings"`
}

func (s *OrganizationService) Update(ctx context.Context, id uuid.UUID, input UpdateOrganizationInput) (*model.Organization, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mergeString(&org.Name, input.Name)
	mergeString(&org.Description, input.Description)
	mergeString(&org.Industry, input.Industry)
	mergeString(&org.Address, input.Address)
	mergeString(&org.Phone, input.Phone)
	mergeString(&org.Email, input.Email)
	mergeString(&org.Website, input.Website)
	mergeString(&org.LogoURL, input.LogoURL)
	mergeString(&org.Timezone, input.Timezone)
	if input.Settings != nil {
		org.Settings = *input.Settings
	}

	if err := s.repo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// Delete removes an organization only when it owns zero users, assets and
// work orders. On refusal the dependent counts are returned for the caller.
func (s *OrganizationService) Delete(ctx context.Context, id uuid.UUID) (*model.OrganizationCounts, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	counts, err := s.repo.DependentCounts(ctx, id)
	if err != nil {
		return nil, err
	}
	if !counts.Zero() {
		return &counts, domain.ErrOrganizationHasDependents
	}

	return nil, s.repo.Delete(ctx, id)
}

func (s *OrganizationService) Stats(ctx context.Context, id uuid.UUID) (*model.OrganizationStats, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Stats(ctx, id)
}

// mergeString applies an optional field onto its target.
func mergeString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// mergeIfSet keeps the existing value unless the incoming one is non-empty,
// the login-upsert merge rule.
func mergeIfSet(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
