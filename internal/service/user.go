// internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/nexus/internal/auth"
	"github.com/dangerclosesec/nexus/internal/domain"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/dangerclosesec/nexus/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type UserService struct {
	repo         repository.UserRepositoryIface
	orgRepo      repository.OrganizationRepositoryIface
	tokenManager *auth.TokenManager
	validate     *validator.Validate
}

func NewUserService(
	repo repository.UserRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	tokenManager *auth.TokenManager,
) *UserService {
	return &UserService{
		repo:         repo,
		orgRepo:      orgRepo,
		tokenManager: tokenManager,
		validate:     validator.New(),
	}
}

type CreateUserInput struct {
	Email          string     `json:"email" validate:"required,email"`
	Name           string     `json:"name"`
	GivenName      string     `json:"givenName"`
	FamilyName     string     `json:"familyName"`
	Picture        string     `json:"picture"`
	Locale         string     `json:"locale"`
	GoogleID       string     `json:"googleId"`
	Role           string     `json:"role"`
	OrganizationID *uuid.UUID `json:"organizationId"`
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	role := model.RoleUser
	if input.Role != "" {
		parsed, err := model.ParseUserRole(input.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		role = parsed
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if input.OrganizationID != nil {
		if _, err := s.orgRepo.FindByID(ctx, *input.OrganizationID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	user := &model.User{
		Email:          input.Email,
		Name:           input.Name,
		GivenName:      input.GivenName,
		FamilyName:     input.FamilyName,
		Picture:        input.Picture,
		Locale:         input.Locale,
		GoogleID:       input.GoogleID,
		Role:           role,
		IsActive:       true,
		OrganizationID: input.OrganizationID,
		LastLoginAt:    &now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]*model.User, error) {
	return s.repo.FindAll(ctx, filter)
}

// UpdateUserInput is a partial update: nil fields are left untouched.
type UpdateUserInput struct {
	Name           *string    `json:"name"`
	GivenName      *string    `json:"givenName"`
	FamilyName     *string    `json:"familyName"`
	Picture        *string    `json:"picture"`
	Locale         *string    `json:"locale"`
	Role           *string    `json:"role"`
	IsActive       *bool      `json:"isActive"`
	OrganizationID *uuid.UUID `json:"organizationId"`
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		role, err := model.ParseUserRole(*input.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		user.Role = role
	}
	if input.OrganizationID != nil {
		if _, err := s.orgRepo.FindByID(ctx, *input.OrganizationID); err != nil {
			return nil, err
		}
		user.OrganizationID = input.OrganizationID
	}

	mergeString(&user.Name, input.Name)
	mergeString(&user.GivenName, input.GivenName)
	mergeString(&user.FamilyName, input.FamilyName)
	mergeString(&user.Picture, input.Picture)
	mergeString(&user.Locale, input.Locale)
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

type LoginInput struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
	Picture    string `json:"picture"`
	Locale     string `json:"locale"`
	GoogleID   string `json:"googleId"`
}

type LoginOutput struct {
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
	Created bool        `json:"-"`
}

// Login is the find-by-email-or-create upsert: newly supplied profile fields
// win only when non-empty, lastLoginAt is refreshed, and a session token is
// issued either way.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	now := time.Now()
	created := false

	user, err := s.repo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		mergeIfSet(&user.Name, input.Name)
		mergeIfSet(&user.GivenName, input.GivenName)
		mergeIfSet(&user.FamilyName, input.FamilyName)
		mergeIfSet(&user.Picture, input.Picture)
		mergeIfSet(&user.Locale, input.Locale)
		mergeIfSet(&user.GoogleID, input.GoogleID)
		user.LastLoginAt = &now
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, err
		}

	case errors.Is(err, domain.ErrUserNotFound):
		created = true
		user = &model.User{
			Email:       input.Email,
			Name:        input.Name,
			GivenName:   input.GivenName,
			FamilyName:  input.FamilyName,
			Picture:     input.Picture,
			Locale:      input.Locale,
			GoogleID:    input.GoogleID,
			Role:        model.RoleUser,
			IsActive:    true,
			LastLoginAt: &now,
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, err
		}

	default:
		return nil, err
	}

	token, err := s.tokenManager.Generate(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &LoginOutput{User: user, Token: token, Created: created}, nil
}

// Delete deactivates by default; permanent removal is refused while any work
// order references the user as creator or assignee.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID, permanent bool) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !permanent {
		user.IsActive = false
		return s.repo.Update(ctx, user)
	}

	refs, err := s.repo.CountWorkOrderRefs(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrUserHasWorkOrders
	}
	return s.repo.Delete(ctx, id)
}
