package handler

import (
	"net/http"

	"github.com/dangerclosesec/nexus/internal/config"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/dangerclosesec/nexus/internal/repository"
	"github.com/dangerclosesec/nexus/internal/service"
)

// WorkOrderHandler handles API requests for work orders and their comments.
type WorkOrderHandler struct {
	baseHandler
	woService *service.WorkOrderService
}

func NewWorkOrderHandler(woService *service.WorkOrderService, cfg *config.Config) *WorkOrderHandler {
	return &WorkOrderHandler{
		baseHandler: baseHandler{cfg: cfg},
		woService:   woService,
	}
}

func (h *WorkOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.WorkOrderFilter{
		Type:   r.URL.Query().Get("type"),
		Search: r.URL.Query().Get("search"),
		Offset: queryInt(r, "offset"),
		Limit:  queryInt(r, "limit"),
	}

	orgID, err := queryUUID(r, "organizationId")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid organizationId", err)
		return
	}
	filter.OrganizationID = orgID

	assignedToID, err := queryUUID(r, "assignedToId")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid assignedToId", err)
		return
	}
	filter.AssignedToID = assignedToID

	createdByID, err := queryUUID(r, "createdById")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid createdById", err)
		return
	}
	filter.CreatedByID = createdByID

	assetID, err := queryUUID(r, "assetId")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid assetId", err)
		return
	}
	filter.AssetID = assetID

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := model.ParseWorkOrderStatus(raw)
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Invalid status", err)
			return
		}
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority, err := model.ParsePriority(raw)
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Invalid priority", err)
			return
		}
		filter.Priority = &priority
	}

	orders, total, err := h.woService.List(r.Context(), filter)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithList(w, newWorkOrderViews(orders), newPagination(total, filter.Offset, filter.Limit))
}

func (h *WorkOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid work order ID", err)
		return
	}

	wo, err := h.woService.Get(r.Context(), id)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, newWorkOrderView(wo))
}

func (h *WorkOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateWorkOrderInput
	if err := decodeBody(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	wo, err := h.woService.Create(r.Context(), input)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusCreated, newWorkOrderView(wo), "Work order created successfully")
}

func (h *WorkOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid work order ID", err)
		return
	}

	var input service.UpdateWorkOrderInput
	if err := decodeBody(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	wo, err := h.woService.Update(r.Context(), id, input)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusOK, newWorkOrderView(wo), "Work order updated successfully")
}

func (h *WorkOrderHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid work order ID", err)
		return
	}

	var input service.AddCommentInput
	if err := decodeBody(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	comment, err := h.woService.AddComment(r.Context(), id, input)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusCreated, newCommentView(comment), "Comment added successfully")
}
