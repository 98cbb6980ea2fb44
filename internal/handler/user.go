package handler

import (
	"net/http"

	"github.com/dangerclosesec/nexus/internal/config"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/dangerclosesec/nexus/internal/repository"
	"github.com/dangerclosesec/nexus/internal/service"
)

// UserHandler handles API requests for users, including login.
type UserHandler struct {
	baseHandler
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		baseHandler: baseHandler{cfg: cfg},
		userService: userService,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.UserFilter{
		IsActive: queryBool(r, "isActive"),
	}

	orgID, err := queryUUID(r, "organizationId")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid organizationId", err)
		return
	}
	filter.OrganizationID = orgID

	if raw := r.URL.Query().Get("role"); raw != "" {
		role, err := model.ParseUserRole(raw)
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Invalid role", err)
			return
		}
		filter.Role = &role
	}

	users, err := h.userService.List(r.Context(), filter)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, user)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateUserInput
	if err := decodeBody(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.userService.Create(r.Context(), input)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusCreated, user, "User created successfully")
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	var input service.UpdateUserInput
	if err := decodeBody(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.userService.Update(r.Context(), id, input)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	respondWithMessage(w, http.StatusOK, user, "User updated successfully")
}

// Delete deactivates by default; ?permanent=true removes the row outright
// when no work orders still reference the user.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	permanent := r.URL.Query().Get("permanent") == "true"
	if err := h.userService.Delete(r.Context(), id, permanent); err != nil {
		h.serviceError(w, err)
		return
	}

	message := "User deactivated successfully"
	if permanent {
		message = "User deleted successfully"
	}
	respondWithMessage(w, http.StatusOK, nil, message)
}

// Login is the find-or-create entry point; the response carries the user and
// a session token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := decodeBody(r, &input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	out, err := h.userService.Login(r.Context(), input)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	code := http.StatusOK
	message := "Login successful"
	if out.Created {
		code = http.StatusCreated
		message = "Account created successfully"
	}
	respondWithMessage(w, code, out, message)
}
