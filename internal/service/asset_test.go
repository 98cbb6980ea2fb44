package service_test

import (
	"context"
	"testing"

	"github.com/dangerclosesec/nexus/internal/audit"
	"github.com/dangerclosesec/nexus/internal/domain"
	"github.com/dangerclosesec/nexus/internal/mocks"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/dangerclosesec/nexus/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type assetFixture struct {
	assetRepo    *mocks.MockAssetRepositoryIface
	orgRepo      *mocks.MockOrganizationRepositoryIface
	userRepo     *mocks.MockUserRepositoryIface
	activityRepo *mocks.MockActivityLogRepositoryIface
	svc          *service.AssetService
}

func newAssetFixture(ctrl *gomock.Controller) *assetFixture {
	f := &assetFixture{
		assetRepo:    mocks.NewMockAssetRepositoryIface(ctrl),
		orgRepo:      mocks.NewMockOrganizationRepositoryIface(ctrl),
		userRepo:     mocks.NewMockUserRepositoryIface(ctrl),
		activityRepo: mocks.NewMockActivityLogRepositoryIface(ctrl),
	}
	f.svc = service.NewAssetService(f.assetRepo, f.orgRepo, f.userRepo, audit.NewDBRecorder(f.activityRepo))
	return f
}

func TestAssetCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	creatorID := uuid.New()

	t.Run("creates with defaults and records activity", func(t *testing.T) {
		f := newAssetFixture(ctrl)

		f.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(&model.Organization{ID: orgID}, nil)
		f.userRepo.EXPECT().FindByID(gomock.Any(), creatorID).Return(&model.User{ID: creatorID}, nil)

		var created *model.Asset
		f.assetRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *model.Asset) error {
				a.ID = uuid.New()
				created = a
				return nil
			})
		f.assetRepo.EXPECT().
			FindByID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*model.Asset, error) {
				return created, nil
			})

		var logged *model.ActivityLog
		f.activityRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *model.ActivityLog) error {
				logged = entry
				return nil
			})

		asset, err := f.svc.Create(context.Background(), service.CreateAssetInput{
			Name:           "Boiler 1",
			Type:           "Boiler",
			Location:       "Roof",
			PurchaseDate:   ptr("2023-06-01"),
			OrganizationID: orgID,
			CreatedByID:    creatorID,
		})
		require.NoError(t, err)

		assert.Equal(t, model.AssetActive, asset.Status)
		assert.Equal(t, model.CriticalityMedium, asset.Criticality)
		require.NotNil(t, asset.PurchaseDate)
		assert.Equal(t, 2023, asset.PurchaseDate.Year())
		assert.NotNil(t, asset.ImageURLs)
		assert.NotNil(t, asset.FileURLs)

		require.NotNil(t, logged)
		assert.Equal(t, model.ActionCreated, logged.Action)
		assert.Equal(t, "Asset", logged.EntityType)
		assert.Equal(t, asset.ID.String(), logged.EntityID)
		assert.Equal(t, "Boiler 1", logged.NewValues["name"])
	})

	t.Run("missing required fields rejected", func(t *testing.T) {
		f := newAssetFixture(ctrl)

		_, err := f.svc.Create(context.Background(), service.CreateAssetInput{
			Name:           "No location",
			Type:           "Pump",
			OrganizationID: orgID,
			CreatedByID:    creatorID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		f := newAssetFixture(ctrl)

		f.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(&model.Organization{ID: orgID}, nil)
		f.userRepo.EXPECT().FindByID(gomock.Any(), creatorID).Return(&model.User{ID: creatorID}, nil)

		_, err := f.svc.Create(context.Background(), service.CreateAssetInput{
			Name:           "Bad date",
			Type:           "Pump",
			Location:       "Basement",
			PurchaseDate:   ptr("last tuesday"),
			OrganizationID: orgID,
			CreatedByID:    creatorID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAssetUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assetID := uuid.New()
	updaterID := uuid.New()

	t.Run("audits before and after snapshots when updater known", func(t *testing.T) {
		f := newAssetFixture(ctrl)

		stored := &model.Asset{
			ID:          assetID,
			Name:        "Fan 2",
			Status:      model.AssetActive,
			Criticality: model.CriticalityLow,
		}

		f.assetRepo.EXPECT().FindByID(gomock.Any(), assetID).Return(stored, nil)
		f.assetRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.assetRepo.EXPECT().FindByID(gomock.Any(), assetID).Return(stored, nil)

		var logged *model.ActivityLog
		f.activityRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *model.ActivityLog) error {
				logged = entry
				return nil
			})

		status := "UNDER_MAINTENANCE"
		asset, err := f.svc.Update(context.Background(), assetID, service.UpdateAssetInput{
			Status:      &status,
			UpdatedByID: &updaterID,
		})
		require.NoError(t, err)
		assert.Equal(t, model.AssetUnderMaintenance, asset.Status)

		require.NotNil(t, logged)
		assert.Equal(t, model.ActionUpdated, logged.Action)
		assert.Equal(t, "ACTIVE", logged.OldValues["status"])
		assert.Equal(t, "UNDER_MAINTENANCE", logged.NewValues["status"])
	})

	t.Run("no audit without updater identity", func(t *testing.T) {
		f := newAssetFixture(ctrl)

		stored := &model.Asset{ID: assetID, Name: "Fan 2"}
		f.assetRepo.EXPECT().FindByID(gomock.Any(), assetID).Return(stored, nil)
		f.assetRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.assetRepo.EXPECT().FindByID(gomock.Any(), assetID).Return(stored, nil)

		name := "Fan 2B"
		_, err := f.svc.Update(context.Background(), assetID, service.UpdateAssetInput{Name: &name})
		assert.NoError(t, err)
	})
}

func TestAssetDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assetID := uuid.New()

	t.Run("refused while work orders exist", func(t *testing.T) {
		f := newAssetFixture(ctrl)

		f.assetRepo.EXPECT().FindByID(gomock.Any(), assetID).Return(&model.Asset{ID: assetID}, nil)
		f.assetRepo.EXPECT().CountWorkOrders(gomock.Any(), assetID).Return(int64(2), nil)

		count, err := f.svc.Delete(context.Background(), assetID, nil)
		assert.ErrorIs(t, err, domain.ErrAssetHasWorkOrders)
		assert.Equal(t, int64(2), count)
	})

	t.Run("deletes when unreferenced", func(t *testing.T) {
		f := newAssetFixture(ctrl)

		f.assetRepo.EXPECT().FindByID(gomock.Any(), assetID).Return(&model.Asset{ID: assetID}, nil)
		f.assetRepo.EXPECT().CountWorkOrders(gomock.Any(), assetID).Return(int64(0), nil)
		f.assetRepo.EXPECT().Delete(gomock.Any(), assetID).Return(nil)

		_, err := f.svc.Delete(context.Background(), assetID, nil)
		assert.NoError(t, err)
	})
}

func ptr[T any](v T) *T {
	return &v
}
