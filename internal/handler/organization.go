package handler

import (
	"net/http"

	"github.com/dangerclosesec/nexus/internal/config"
	"github.com/dangerclosesec/nexus/internal/service"
)

// OrganizationHandler handles API requests for organizations.
type OrganizationHandler struct {
	baseHandler
	orgService *service.OrganizationService
}

func NewOrganizationHandler(orgService *service.OrganizationService, cfg *config.Config) *OrganizationHandler {
	return &OrganizationHandler{
		baseHandler: baseHandler{cfg: cfg},
		orgService:  orgService,
	}
}

func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgService.List(r.Context())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, orgs)
}

func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid organization ID", err)
		return
	}

	org, err := h.orgService.Get(r.Context(), id)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateOrganizationInput
	if err := decodeBody(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	org, err := h.orgService.Create(r.Context(), input)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusCreated, org, "Organization created successfully")
}

func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid organization ID", err)
		return
	}

	var input service.UpdateOrganizationInput
	if err := decodeBody(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	org, err := h.orgService.Update(r.Context(), id, input)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusOK, org, "Organization updated successfully")
}

func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid organization ID", err)
		return
	}

	counts, err := h.orgService.Delete(r.Context(), id)
	if err != nil {
		if counts != nil {
			// Refused: report what still depends on the organization.
			respondWithJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Message: "Cannot delete organization with existing users, assets, or work orders",
				Data:    counts,
			})
			return
		}
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusOK, nil, "Organization deleted successfully")
}

func (h *OrganizationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid organization ID", err)
		return
	}

	stats, err := h.orgService.Stats(r.Context(), id)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, stats)
}
