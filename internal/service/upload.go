// internal/service/upload.go
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dangerclosesec/nexus/internal/audit"
	"github.com/dangerclosesec/nexus/internal/config"
	"github.com/dangerclosesec/nexus/internal/domain"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/dangerclosesec/nexus/internal/repository"
	"github.com/dangerclosesec/nexus/internal/storage"
	"github.com/google/uuid"
)

const (
	FolderImages = "images"
	FolderFiles  = "files"
)

type UploadService struct {
	assetRepo repository.AssetRepositoryIface
	store     storage.Client
	recorder  audit.Recorder
	cfg       *config.Config
}

func NewUploadService(
	assetRepo repository.AssetRepositoryIface,
	store storage.Client,
	recorder audit.Recorder,
	cfg *config.Config,
) *UploadService {
	return &UploadService{
		assetRepo: assetRepo,
		store:     store,
		recorder:  recorder,
		cfg:       cfg,
	}
}

// Classify resolves a MIME type against the configured allow-lists.
func (s *UploadService) Classify(mimeType string) (folder string, isImage, allowed bool) {
	for _, t := range s.cfg.Upload.AllowedImageTypes {
		if t == mimeType {
			return FolderImages, true, true
		}
	}
	for _, t := range s.cfg.Upload.AllowedFileTypes {
		if t == mimeType {
			return FolderFiles, false, true
		}
	}
	return "", false, false
}

// File is one incoming multipart part.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadedFile describes one stored object.
type UploadedFile struct {
	OriginalName string `json:"originalName"`
	FileName     string `json:"fileName"`
	URL          string `json:"url"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
	Key          string `json:"key"`
	IsImage      bool   `json:"isImage"`
}

type UploadParams struct {
	OrganizationID uuid.UUID
	UploadedBy     uuid.UUID
	AssetID        *uuid.UUID
	Files          []File
}

type UploadSummary struct {
	TotalFiles int   `json:"totalFiles"`
	Images     int   `json:"images"`
	Documents  int   `json:"documents"`
	TotalSize  int64 `json:"totalSize"`
}

type UploadResult struct {
	Files   []UploadedFile `json:"files"`
	Asset   *model.Asset   `json:"asset,omitempty"`
	Summary UploadSummary  `json:"summary"`
}

// Upload stores each accepted file under an organization-scoped key and,
// when an asset is supplied, extends its attachment lists. Any failure after
// objects hit storage triggers a best-effort cleanup of what was uploaded.
func (s *UploadService) Upload(ctx context.Context, params UploadParams) (*UploadResult, error) {
	if len(params.Files) == 0 {
		return nil, domain.ErrNoFilesUploaded
	}

	var uploaded []UploadedFile
	for _, f := range params.Files {
		folder, isImage, allowed := s.Classify(f.ContentType)
		if !allowed {
			s.cleanup(ctx, uploaded)
			return nil, fmt.Errorf("%w: %s", domain.ErrFileTypeNotAllowed, f.ContentType)
		}
		if f.Size > s.cfg.Upload.MaxFileSize {
			s.cleanup(ctx, uploaded)
			return nil, fmt.Errorf("%w: file %s exceeds %d bytes", domain.ErrInvalidInput, f.Name, s.cfg.Upload.MaxFileSize)
		}

		fileName := storage.GenerateFileName(f.Name)
		key := storage.ObjectKey(params.OrganizationID.String(), folder, fileName)
		if err := s.store.PutObject(ctx, key, f.ContentType, f.Body); err != nil {
			s.cleanup(ctx, uploaded)
			return nil, err
		}

		uploaded = append(uploaded, UploadedFile{
			OriginalName: f.Name,
			FileName:     fileName,
			URL:          s.store.PublicURL(key),
			Size:         f.Size,
			MimeType:     f.ContentType,
			Key:          key,
			IsImage:      isImage,
		})
	}

	result := &UploadResult{Files: uploaded}
	for _, f := range uploaded {
		result.Summary.TotalFiles++
		result.Summary.TotalSize += f.Size
		if f.IsImage {
			result.Summary.Images++
		} else {
			result.Summary.Documents++
		}
	}

	if params.AssetID != nil {
		asset, err := s.attachToAsset(ctx, *params.AssetID, params, uploaded)
		if err != nil {
			s.cleanup(ctx, uploaded)
			return nil, err
		}
		result.Asset = asset
	}

	return result, nil
}

// attachToAsset appends the new URLs to the asset's lists, preserving the
// existing entries, and records the audit row.
func (s *UploadService) attachToAsset(ctx context.Context, assetID uuid.UUID, params UploadParams, uploaded []UploadedFile) (*model.Asset, error) {
	asset, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	for _, f := range uploaded {
		if f.IsImage {
			asset.ImageURLs = append(asset.ImageURLs, f.URL)
		} else {
			asset.FileURLs = append(asset.FileURLs, f.URL)
		}
	}
	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}

	files := make([]map[string]interface{}, 0, len(uploaded))
	for _, f := range uploaded {
		files = append(files, map[string]interface{}{
			"name": f.OriginalName,
			"url":  f.URL,
			"type": f.MimeType,
			"size": f.Size,
		})
	}
	s.recorder.Record(ctx, audit.Entry{
		Action:         model.ActionFilesUploaded,
		EntityType:     "Asset",
		EntityID:       asset.ID,
		Description:    fmt.Sprintf("%d file(s) uploaded to asset %q", len(uploaded), asset.Name),
		NewValues:      model.JSONMap{"uploadedFiles": files},
		OrganizationID: params.OrganizationID,
		UserID:         params.UploadedBy,
	})

	return asset, nil
}

// cleanup deletes already-uploaded objects after a failure. Each delete is
// attempted independently; failures are logged and the rest continue.
func (s *UploadService) cleanup(ctx context.Context, uploaded []UploadedFile) {
	for _, f := range uploaded {
		if err := s.store.DeleteObject(ctx, f.Key); err != nil {
			slog.ErrorContext(ctx, "failed to clean up uploaded file",
				"key", f.Key,
				"error", err,
			)
		}
	}
}

type DeleteFileResult struct {
	DeletedFileURL string       `json:"deletedFileUrl"`
	Asset          *model.Asset `json:"asset"`
}

// DeleteFile removes a URL from whichever of the asset's lists currently
// holds it. The storage delete is best-effort; the entity update proceeds
// even when it fails.
func (s *UploadService) DeleteFile(ctx context.Context, assetID uuid.UUID, fileURL string, deletedBy *uuid.UUID) (*DeleteFileResult, error) {
	asset, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	isImage := asset.ImageURLs.Contains(fileURL)
	isFile := asset.FileURLs.Contains(fileURL)
	if !isImage && !isFile {
		return nil, domain.ErrFileNotOnAsset
	}

	if key, err := s.store.KeyFromURL(fileURL); err == nil {
		if err := s.store.DeleteObject(ctx, key); err != nil {
			slog.ErrorContext(ctx, "failed to delete file from storage",
				"key", key,
				"error", err,
			)
		}
	}

	if isImage {
		asset.ImageURLs = asset.ImageURLs.Without(fileURL)
	}
	if isFile {
		asset.FileURLs = asset.FileURLs.Without(fileURL)
	}
	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}

	if deletedBy != nil {
		s.recorder.Record(ctx, audit.Entry{
			Action:         model.ActionFileDeleted,
			EntityType:     "Asset",
			EntityID:       asset.ID,
			Description:    fmt.Sprintf("File deleted from asset %q", asset.Name),
			OldValues:      model.JSONMap{"deletedFileUrl": fileURL},
			OrganizationID: asset.OrganizationID,
			UserID:         *deletedBy,
		})
	}

	return &DeleteFileResult{DeletedFileURL: fileURL, Asset: asset}, nil
}

type PresignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	IsImage   bool   `json:"isImage"`
	ExpiresIn int    `json:"expiresIn"`
}

// Presign issues a time-limited upload URL for a direct client upload.
func (s *UploadService) Presign(ctx context.Context, fileName, mimeType string, organizationID uuid.UUID) (*PresignedUpload, error) {
	folder, isImage, allowed := s.Classify(mimeType)
	if !allowed {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileTypeNotAllowed, mimeType)
	}

	key := storage.ObjectKey(organizationID.String(), folder, storage.GenerateFileName(fileName))
	uploadURL, err := s.store.PresignUpload(ctx, key, mimeType, s.cfg.Upload.PresignExpiry)
	if err != nil {
		return nil, err
	}

	return &PresignedUpload{
		UploadURL: uploadURL,
		FileURL:   s.store.PublicURL(key),
		Key:       key,
		IsImage:   isImage,
		ExpiresIn: int(s.cfg.Upload.PresignExpiry / time.Second),
	}, nil
}

// PresignDownload issues a time-limited download URL for a stored file.
func (s *UploadService) PresignDownload(ctx context.Context, fileURL string, expiry time.Duration) (string, error) {
	key, err := s.store.KeyFromURL(fileURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	return s.store.PresignDownload(ctx, key, expiry)
}

// Health reports storage reachability.
func (s *UploadService) Health(ctx context.Context) bool {
	return s.store.HealthCheck(ctx)
}
