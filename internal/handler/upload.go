package handler

import (
	"net/http"
	"time"

	"github.com/dangerclosesec/nexus/internal/config"
	"github.com/dangerclosesec/nexus/internal/service"
	"github.com/google/uuid"
)

const maxUploadFiles = 10

// UploadHandler handles file uploads, deletions and presigned URL requests.
type UploadHandler struct {
	baseHandler
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		baseHandler:   baseHandler{cfg: cfg},
		uploadService: uploadService,
	}
}

// Upload accepts up to ten multipart files under the "files" field. The
// organizationId and uploadedBy form fields are required; assetId optionally
// attaches the results to an asset.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.Server.MaxUploadSize); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	orgID, err := uuid.Parse(r.FormValue("organizationId"))
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "organizationId is required", err)
		return
	}
	uploadedBy, err := uuid.Parse(r.FormValue("uploadedBy"))
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "uploadedBy is required", err)
		return
	}

	params := service.UploadParams{
		OrganizationID: orgID,
		UploadedBy:     uploadedBy,
	}
	if raw := r.FormValue("assetId"); raw != "" {
		assetID, err := uuid.Parse(raw)
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Invalid assetId", err)
			return
		}
		params.AssetID = &assetID
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		h.respondWithError(w, http.StatusBadRequest, "No files uploaded", nil)
		return
	}
	if len(headers) > maxUploadFiles {
		h.respondWithError(w, http.StatusBadRequest, "Too many files, maximum is 10", nil)
		return
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Unreadable file in upload", err)
			return
		}
		defer f.Close()

		params.Files = append(params.Files, service.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	result, err := h.uploadService.Upload(r.Context(), params)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusCreated, result, "Files uploaded successfully")
}

// DeleteFile removes one attachment URL from an asset.
func (h *UploadHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	assetID, err := uuidParam(r, "assetId")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid asset ID", err)
		return
	}

	var body struct {
		FileURL   string     `json:"fileUrl"`
		DeletedBy *uuid.UUID `json:"deletedBy"`
	}
	if err := decodeBody(r, &body); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.FileURL == "" {
		h.respondWithError(w, http.StatusBadRequest, "fileUrl is required", nil)
		return
	}

	result, err := h.uploadService.DeleteFile(r.Context(), assetID, body.FileURL, body.DeletedBy)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusOK, result, "File deleted successfully")
}

// Presigned issues a direct-upload URL.
func (h *UploadHandler) Presigned(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FileName       string    `json:"fileName"`
		MimeType       string    `json:"mimeType"`
		OrganizationID uuid.UUID `json:"organizationId"`
	}
	if err := decodeBody(r, &body); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.FileName == "" || body.MimeType == "" || body.OrganizationID == uuid.Nil {
		h.respondWithError(w, http.StatusBadRequest, "fileName, mimeType and organizationId are required", nil)
		return
	}

	presigned, err := h.uploadService.Presign(r.Context(), body.FileName, body.MimeType, body.OrganizationID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, presigned)
}

// Download issues a presigned GET for a stored file URL.
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	fileURL := r.URL.Query().Get("fileUrl")
	if fileURL == "" {
		h.respondWithError(w, http.StatusBadRequest, "fileUrl is required", nil)
		return
	}

	expiry := time.Hour
	if n := queryInt(r, "expiresIn"); n != nil && *n > 0 {
		expiry = time.Duration(*n) * time.Second
	}

	url, err := h.uploadService.PresignDownload(r.Context(), fileURL, expiry)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, map[string]interface{}{
		"downloadUrl": url,
		"expiresIn":   int(expiry / time.Second),
	})
}

// Health reports storage reachability and the active upload configuration.
func (h *UploadHandler) Health(w http.ResponseWriter, r *http.Request) {
	healthy := h.uploadService.Health(r.Context())

	data := map[string]interface{}{
		"storage": map[string]interface{}{
			"healthy": healthy,
			"bucket":  h.cfg.Storage.Bucket,
			"region":  h.cfg.Storage.Region,
		},
		"limits": map[string]interface{}{
			"maxFileSize":       h.cfg.Upload.MaxFileSize,
			"maxFiles":          maxUploadFiles,
			"allowedImageTypes": h.cfg.Upload.AllowedImageTypes,
			"allowedFileTypes":  h.cfg.Upload.AllowedFileTypes,
		},
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	respondWithJSON(w, code, Response{Success: healthy, Data: data})
}
