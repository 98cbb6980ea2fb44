package handler

import (
	"net/http"

	"github.com/dangerclosesec/nexus/internal/config"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/dangerclosesec/nexus/internal/repository"
	"github.com/dangerclosesec/nexus/internal/service"
)

// AssetHandler handles API requests for assets, including maintenance
// scheduling and history.
type AssetHandler struct {
	baseHandler
	assetService *service.AssetService
	woService    *service.WorkOrderService
}

func NewAssetHandler(assetService *service.AssetService, woService *service.WorkOrderService, cfg *config.Config) *AssetHandler {
	return &AssetHandler{
		baseHandler:  baseHandler{cfg: cfg},
		assetService: assetService,
		woService:    woService,
	}
}

func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.AssetFilter{
		Type:     r.URL.Query().Get("type"),
		Location: r.URL.Query().Get("location"),
		Search:   r.URL.Query().Get("search"),
		Offset:   queryInt(r, "offset"),
		Limit:    queryInt(r, "limit"),
	}

	orgID, err := queryUUID(r, "organizationId")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid organizationId", err)
		return
	}
	filter.OrganizationID = orgID

	createdByID, err := queryUUID(r, "createdById")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid createdById", err)
		return
	}
	filter.CreatedByID = createdByID

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := model.ParseAssetStatus(raw)
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Invalid status", err)
			return
		}
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("criticality"); raw != "" {
		criticality, err := model.ParseCriticality(raw)
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Invalid criticality", err)
			return
		}
		filter.Criticality = &criticality
	}

	assets, total, err := h.assetService.List(r.Context(), filter)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithList(w, newAssetViews(assets), newPagination(total, filter.Offset, filter.Limit))
}

func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid asset ID", err)
		return
	}

	asset, err := h.assetService.Get(r.Context(), id)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, newAssetView(asset))
}

func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateAssetInput
	if err := decodeBody(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	asset, err := h.assetService.Create(r.Context(), input)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusCreated, newAssetView(asset), "Asset created successfully")
}

func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid asset ID", err)
		return
	}

	var input service.UpdateAssetInput
	if err := decodeBody(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	asset, err := h.assetService.Update(r.Context(), id, input)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusOK, newAssetView(asset), "Asset updated successfully")
}

func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid asset ID", err)
		return
	}

	deletedBy, err := queryUUID(r, "deletedById")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid deletedById", err)
		return
	}

	count, err := h.assetService.Delete(r.Context(), id, deletedBy)
	if err != nil {
		if count > 0 {
			respondWithJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Message: "Cannot delete asset with existing work orders",
				Data:    map[string]int64{"workOrders": count},
			})
			return
		}
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusOK, nil, "Asset deleted successfully")
}

// ScheduleMaintenance creates a preventive-maintenance work order for the
// asset.
func (h *AssetHandler) ScheduleMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid asset ID", err)
		return
	}

	var input service.ScheduleMaintenanceInput
	if err := decodeBody(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	wo, err := h.woService.ScheduleMaintenance(r.Context(), id, input)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusCreated, newWorkOrderView(wo), "Maintenance scheduled successfully")
}

func (h *AssetHandler) MaintenanceHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid asset ID", err)
		return
	}

	orders, err := h.woService.MaintenanceHistory(r.Context(), id)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, newWorkOrderViews(orders))
}
