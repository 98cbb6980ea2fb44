package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dangerclosesec/nexus/internal/auth"
	"github.com/dangerclosesec/nexus/internal/domain"
	"github.com/dangerclosesec/nexus/internal/mocks"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/dangerclosesec/nexus/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newUserService(userRepo *mocks.MockUserRepositoryIface, orgRepo *mocks.MockOrganizationRepositoryIface) *service.UserService {
	return service.NewUserService(userRepo, orgRepo, auth.NewTokenManager("test_secret", time.Hour))
}

func TestUserLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("existing user merges non-empty fields only", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		existing := &model.User{
			ID:      uuid.New(),
			Email:   "jane@example.com",
			Name:    "Jane Original",
			Picture: "https://img/old.png",
			Role:    model.RoleAdmin,
		}

		userRepo.EXPECT().
			FindByEmail(gomock.Any(), "jane@example.com").
			Return(existing, nil)

		var saved *model.User
		userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *model.User) error {
				saved = u
				return nil
			})

		out, err := newUserService(userRepo, orgRepo).Login(context.Background(), service.LoginInput{
			Email: "jane@example.com",
			Name:  "Jane Updated",
			// Picture deliberately empty: the stored value must survive.
		})
		require.NoError(t, err)

		assert.False(t, out.Created)
		assert.NotEmpty(t, out.Token)
		assert.Equal(t, "Jane Updated", saved.Name)
		assert.Equal(t, "https://img/old.png", saved.Picture)
		assert.Equal(t, model.RoleAdmin, saved.Role, "role never changes on login")
		require.NotNil(t, saved.LastLoginAt)
		assert.WithinDuration(t, time.Now(), *saved.LastLoginAt, time.Minute)
	})

	t.Run("unknown email creates an active USER", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		userRepo.EXPECT().
			FindByEmail(gomock.Any(), "new@example.com").
			Return(nil, domain.ErrUserNotFound)

		userRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *model.User) error {
				u.ID = uuid.New()
				return nil
			})

		out, err := newUserService(userRepo, orgRepo).Login(context.Background(), service.LoginInput{
			Email: "new@example.com",
			Name:  "New Person",
		})
		require.NoError(t, err)

		assert.True(t, out.Created)
		assert.Equal(t, model.RoleUser, out.User.Role)
		assert.True(t, out.User.IsActive)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("missing email rejected", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		_, err := newUserService(userRepo, orgRepo).Login(context.Background(), service.LoginInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUserCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		userRepo.EXPECT().
			FindByEmail(gomock.Any(), "taken@example.com").
			Return(&model.User{ID: uuid.New(), Email: "taken@example.com"}, nil)

		_, err := newUserService(userRepo, orgRepo).Create(context.Background(), service.CreateUserInput{
			Email: "taken@example.com",
		})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("unknown organization rejected", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		orgID := uuid.New()

		userRepo.EXPECT().
			FindByEmail(gomock.Any(), "person@example.com").
			Return(nil, domain.ErrUserNotFound)
		orgRepo.EXPECT().
			FindByID(gomock.Any(), orgID).
			Return(nil, domain.ErrOrganizationNotFound)

		_, err := newUserService(userRepo, orgRepo).Create(context.Background(), service.CreateUserInput{
			Email:          "person@example.com",
			OrganizationID: &orgID,
		})
		assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		_, err := newUserService(userRepo, orgRepo).Create(context.Background(), service.CreateUserInput{
			Email: "person@example.com",
			Role:  "OWNER",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUserDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("default delete deactivates", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		userRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&model.User{ID: userID, IsActive: true}, nil)

		var saved *model.User
		userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *model.User) error {
				saved = u
				return nil
			})

		err := newUserService(userRepo, orgRepo).Delete(context.Background(), userID, false)
		require.NoError(t, err)
		assert.False(t, saved.IsActive)
	})

	t.Run("permanent delete refused while work orders reference the user", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		userRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&model.User{ID: userID}, nil)
		userRepo.EXPECT().
			CountWorkOrderRefs(gomock.Any(), userID).
			Return(int64(3), nil)

		err := newUserService(userRepo, orgRepo).Delete(context.Background(), userID, true)
		assert.ErrorIs(t, err, domain.ErrUserHasWorkOrders)
	})

	t.Run("permanent delete proceeds when unreferenced", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		userRepo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&model.User{ID: userID}, nil)
		userRepo.EXPECT().
			CountWorkOrderRefs(gomock.Any(), userID).
			Return(int64(0), nil)
		userRepo.EXPECT().
			Delete(gomock.Any(), userID).
			Return(nil)

		err := newUserService(userRepo, orgRepo).Delete(context.Background(), userID, true)
		assert.NoError(t, err)
	})
}
