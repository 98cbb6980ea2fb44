package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dangerclosesec/nexus/internal/audit"
	"github.com/dangerclosesec/nexus/internal/config"
	"github.com/dangerclosesec/nexus/internal/domain"
	"github.com/dangerclosesec/nexus/internal/mocks"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/dangerclosesec/nexus/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeStorage is an in-memory stand-in for the S3 client.
type fakeStorage struct {
	stored    []string
	deleted   []string
	failAfter int // fail PutObject once this many objects are stored; <0 disables
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{failAfter: -1}
}

func (f *fakeStorage) PutObject(ctx context.Context, key, contentType string, body io.Reader) error {
	if f.failAfter >= 0 && len(f.stored) >= f.failAfter {
		return errors.New("storage unavailable")
	}
	f.stored = append(f.stored, key)
	return nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	return "https://presigned.example.com/" + key, nil
}

func (f *fakeStorage) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://download.example.com/" + key, nil
}

func (f *fakeStorage) HealthCheck(ctx context.Context) bool { return true }

func (f *fakeStorage) PublicURL(key string) string {
	return "https://test-bucket.s3.us-east-1.amazonaws.com/" + key
}

func (f *fakeStorage) KeyFromURL(fileURL string) (string, error) {
	key := strings.TrimPrefix(fileURL, "https://test-bucket.s3.us-east-1.amazonaws.com/")
	if key == fileURL {
		return "", fmt.Errorf("invalid file URL: %s", fileURL)
	}
	return key, nil
}

func uploadConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Upload.AllowedImageTypes = []string{"image/jpeg", "image/png"}
	cfg.Upload.AllowedFileTypes = []string{"application/pdf", "text/plain"}
	cfg.Upload.MaxFileSize = 1 << 20
	cfg.Upload.PresignExpiry = time.Hour
	return cfg
}

func TestUploadClassification(t *testing.T) {
	svc := service.NewUploadService(nil, newFakeStorage(), audit.NoOpRecorder{}, uploadConfig())

	folder, isImage, allowed := svc.Classify("image/png")
	assert.True(t, allowed)
	assert.True(t, isImage)
	assert.Equal(t, "images", folder)

	folder, isImage, allowed = svc.Classify("application/pdf")
	assert.True(t, allowed)
	assert.False(t, isImage)
	assert.Equal(t, "files", folder)

	_, _, allowed = svc.Classify("application/x-msdownload")
	assert.False(t, allowed)
}

func TestUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	uploaderID := uuid.New()

	t.Run("appends to asset lists and audits", func(t *testing.T) {
		assetRepo := mocks.NewMockAssetRepositoryIface(ctrl)
		activityRepo := mocks.NewMockActivityLogRepositoryIface(ctrl)
		store := newFakeStorage()
		assetID := uuid.New()

		asset := &model.Asset{
			ID:             assetID,
			Name:           "Press 4",
			OrganizationID: orgID,
			ImageURLs:      model.StringList{"https://test-bucket.s3.us-east-1.amazonaws.com/existing.png"},
			FileURLs:       model.StringList{},
		}
		assetRepo.EXPECT().FindByID(gomock.Any(), assetID).Return(asset, nil)
		assetRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		var logged *model.ActivityLog
		activityRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *model.ActivityLog) error {
				logged = entry
				return nil
			})

		svc := service.NewUploadService(assetRepo, store, audit.NewDBRecorder(activityRepo), uploadConfig())
		result, err := svc.Upload(context.Background(), service.UploadParams{
			OrganizationID: orgID,
			UploadedBy:     uploaderID,
			AssetID:        &assetID,
			Files: []service.File{
				{Name: "photo.png", ContentType: "image/png", Size: 100, Body: strings.NewReader("img")},
				{Name: "manual.pdf", ContentType: "application/pdf", Size: 200, Body: strings.NewReader("pdf")},
			},
		})
		require.NoError(t, err)

		assert.Len(t, result.Files, 2)
		assert.Equal(t, 2, result.Summary.TotalFiles)
		assert.Equal(t, 1, result.Summary.Images)
		assert.Equal(t, 1, result.Summary.Documents)
		assert.Equal(t, int64(300), result.Summary.TotalSize)

		// Existing entries preserved, new ones appended.
		require.Len(t, asset.ImageURLs, 2)
		assert.Equal(t, "https://test-bucket.s3.us-east-1.amazonaws.com/existing.png", asset.ImageURLs[0])
		require.Len(t, asset.FileURLs, 1)

		// Keys namespaced by organization and classification.
		require.Len(t, store.stored, 2)
		assert.True(t, strings.HasPrefix(store.stored[0], orgID.String()+"/images/"))
		assert.True(t, strings.HasPrefix(store.stored[1], orgID.String()+"/files/"))

		require.NotNil(t, logged)
		assert.Equal(t, model.ActionFilesUploaded, logged.Action)
	})

	t.Run("disallowed type rejects the batch", func(t *testing.T) {
		store := newFakeStorage()
		svc := service.NewUploadService(nil, store, audit.NoOpRecorder{}, uploadConfig())

		_, err := svc.Upload(context.Background(), service.UploadParams{
			OrganizationID: orgID,
			UploadedBy:     uploaderID,
			Files: []service.File{
				{Name: "photo.png", ContentType: "image/png", Size: 100, Body: strings.NewReader("img")},
				{Name: "virus.exe", ContentType: "application/x-msdownload", Size: 10, Body: strings.NewReader("x")},
			},
		})
		assert.ErrorIs(t, err, domain.ErrFileTypeNotAllowed)

		// The already-stored first object must be cleaned up.
		require.Len(t, store.stored, 1)
		assert.Equal(t, store.stored, store.deleted)
	})

	t.Run("oversized file rejected", func(t *testing.T) {
		svc := service.NewUploadService(nil, newFakeStorage(), audit.NoOpRecorder{}, uploadConfig())

		_, err := svc.Upload(context.Background(), service.UploadParams{
			OrganizationID: orgID,
			UploadedBy:     uploaderID,
			Files: []service.File{
				{Name: "huge.png", ContentType: "image/png", Size: 2 << 20, Body: strings.NewReader("x")},
			},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("storage failure cleans up earlier uploads", func(t *testing.T) {
		store := newFakeStorage()
		store.failAfter = 1
		svc := service.NewUploadService(nil, store, audit.NoOpRecorder{}, uploadConfig())

		_, err := svc.Upload(context.Background(), service.UploadParams{
			OrganizationID: orgID,
			UploadedBy:     uploaderID,
			Files: []service.File{
				{Name: "a.png", ContentType: "image/png", Size: 10, Body: strings.NewReader("a")},
				{Name: "b.png", ContentType: "image/png", Size: 10, Body: strings.NewReader("b")},
			},
		})
		require.Error(t, err)
		require.Len(t, store.stored, 1)
		assert.Equal(t, store.stored, store.deleted)
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		svc := service.NewUploadService(nil, newFakeStorage(), audit.NoOpRecorder{}, uploadConfig())

		_, err := svc.Upload(context.Background(), service.UploadParams{
			OrganizationID: orgID,
			UploadedBy:     uploaderID,
		})
		assert.ErrorIs(t, err, domain.ErrNoFilesUploaded)
	})
}

func TestDeleteFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assetID := uuid.New()
	orgID := uuid.New()
	fileURL := "https://test-bucket.s3.us-east-1.amazonaws.com/" + orgID.String() + "/images/x.png"

	t.Run("removes only the named URL", func(t *testing.T) {
		assetRepo := mocks.NewMockAssetRepositoryIface(ctrl)
		store := newFakeStorage()

		asset := &model.Asset{
			ID:             assetID,
			OrganizationID: orgID,
			ImageURLs:      model.StringList{"keep-a", fileURL, "keep-b"},
			FileURLs:       model.StringList{},
		}
		assetRepo.EXPECT().FindByID(gomock.Any(), assetID).Return(asset, nil)
		assetRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		svc := service.NewUploadService(assetRepo, store, audit.NoOpRecorder{}, uploadConfig())
		result, err := svc.DeleteFile(context.Background(), assetID, fileURL, nil)
		require.NoError(t, err)

		assert.Equal(t, fileURL, result.DeletedFileURL)
		assert.Equal(t, model.StringList{"keep-a", "keep-b"}, asset.ImageURLs)
		assert.Len(t, store.deleted, 1)
	})

	t.Run("URL not on asset", func(t *testing.T) {
		assetRepo := mocks.NewMockAssetRepositoryIface(ctrl)

		assetRepo.EXPECT().FindByID(gomock.Any(), assetID).Return(&model.Asset{
			ID:        assetID,
			ImageURLs: model.StringList{},
			FileURLs:  model.StringList{},
		}, nil)

		svc := service.NewUploadService(assetRepo, newFakeStorage(), audit.NoOpRecorder{}, uploadConfig())
		_, err := svc.DeleteFile(context.Background(), assetID, fileURL, nil)
		assert.ErrorIs(t, err, domain.ErrFileNotOnAsset)
	})
}

func TestPresign(t *testing.T) {
	svc := service.NewUploadService(nil, newFakeStorage(), audit.NoOpRecorder{}, uploadConfig())
	orgID := uuid.New()

	t.Run("allowed type", func(t *testing.T) {
		presigned, err := svc.Presign(context.Background(), "report.pdf", "application/pdf", orgID)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(presigned.UploadURL, "https://presigned.example.com/"))
		assert.True(t, strings.Contains(presigned.Key, orgID.String()+"/files/"))
		assert.False(t, presigned.IsImage)
		assert.Equal(t, 3600, presigned.ExpiresIn)
	})

	t.Run("disallowed type", func(t *testing.T) {
		_, err := svc.Presign(context.Background(), "tool.exe", "application/x-msdownload", orgID)
		assert.ErrorIs(t, err, domain.ErrFileTypeNotAllowed)
	})
}
