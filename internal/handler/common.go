package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dangerclosesec/nexus/internal/config"
	"github.com/dangerclosesec/nexus/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination reports the total matching count irrespective of the window.
type Pagination struct {
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  *int  `json:"limit"`
}

func newPagination(total int64, offset, limit *int) *Pagination {
	p := &Pagination{Total: total, Limit: limit}
	if offset != nil {
		p.Offset = *offset
	}
	return p
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	// Sets content type header
	w.Header().Set("Content-Type", "application/json")

	// Sets the HTTP status code
	w.WriteHeader(code)

	// Encodes the response
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// If encoding fails, logs the error and sends a plain text response
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func respondWithData(w http.ResponseWriter, code int, data interface{}) {
	respondWithJSON(w, code, Response{Success: true, Data: data})
}

func respondWithMessage(w http.ResponseWriter, code int, data interface{}, message string) {
	respondWithJSON(w, code, Response{Success: true, Data: data, Message: message})
}

func respondWithList(w http.ResponseWriter, data interface{}, p *Pagination) {
	respondWithJSON(w, http.StatusOK, Response{Success: true, Data: data, Pagination: p})
}

// baseHandler carries the configuration every handler needs for error
// shaping: detail is withheld in production.
type baseHandler struct {
	cfg *config.Config
}

func (h baseHandler) respondWithError(w http.ResponseWriter, code int, message string, err error) {
	resp := Response{Success: false, Message: message}
	if err != nil && !h.cfg.IsProduction() {
		resp.Error = err.Error()
	}
	respondWithJSON(w, code, resp)
}

// serviceError maps domain sentinel errors onto HTTP statuses.
func (h baseHandler) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOrganizationNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAssetNotFound),
		errors.Is(err, domain.ErrWorkOrderNotFound),
		errors.Is(err, domain.ErrFileNotOnAsset),
		errors.Is(err, domain.ErrNotFound):
		h.respondWithError(w, http.StatusNotFound, "Resource not found", err)

	case errors.Is(err, domain.ErrEmailAlreadyExists):
		h.respondWithError(w, http.StatusConflict, "A user with this email already exists", err)

	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrAssetOrgMismatch),
		errors.Is(err, domain.ErrFileTypeNotAllowed),
		errors.Is(err, domain.ErrNoFilesUploaded),
		errors.Is(err, domain.ErrOrganizationHasDependents),
		errors.Is(err, domain.ErrUserHasWorkOrders),
		errors.Is(err, domain.ErrAssetHasWorkOrders):
		h.respondWithError(w, http.StatusBadRequest, err.Error(), err)

	default:
		h.respondWithError(w, http.StatusInternalServerError, "Internal server error", err)
	}
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// uuidParam parses a chi URL parameter as a UUID.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// queryInt reads an optional integer query parameter. Non-numeric or
// negative values are treated as absent rather than rejected.
func queryInt(r *http.Request, key string) *int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// queryUUID reads an optional UUID query parameter; malformed values are an
// error so typos never silently widen a filter.
func queryUUID(r *http.Request, key string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// queryBool reads an optional boolean query parameter.
func queryBool(r *http.Request, key string) *bool {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}
