package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dangerclosesec/nexus/internal/auth"
	"github.com/dangerclosesec/nexus/internal/domain"
	"github.com/dangerclosesec/nexus/internal/handler"
	"github.com/dangerclosesec/nexus/internal/mocks"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/dangerclosesec/nexus/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newUserRouter(ctrl *gomock.Controller) (chi.Router, *mocks.MockUserRepositoryIface) {
	repo := mocks.NewMockUserRepositoryIface(ctrl)
	tokens := auth.NewTokenManager("test_secret", time.Hour)
	h := handler.NewUserHandler(service.NewUserService(repo, nil, tokens), testConfig("development"))

	r := chi.NewRouter()
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Delete("/{id}", h.Delete)
	})
	return r, repo
}

func TestUserLoginEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("existing account logs in", func(t *testing.T) {
		router, repo := newUserRouter(ctrl)
		repo.EXPECT().
			FindByEmail(gomock.Any(), "tech@example.com").
			Return(&model.User{ID: uuid.New(), Email: "tech@example.com", Name: "Taylor"}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		body := strings.NewReader(`{"email": "tech@example.com"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/login", body))

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "Login successful", env.Message)

		var out struct {
			User  *model.User `json:"user"`
			Token string      `json:"token"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &out))
		require.NotNil(t, out.User)
		assert.Equal(t, "Taylor", out.User.Name)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("unknown email provisions an account", func(t *testing.T) {
		router, repo := newUserRouter(ctrl)
		repo.EXPECT().
			FindByEmail(gomock.Any(), "new@example.com").
			Return(nil, domain.ErrUserNotFound)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		body := strings.NewReader(`{"email": "new@example.com", "name": "New User"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/login", body))

		require.Equal(t, http.StatusCreated, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Account created successfully", env.Message)
	})

	t.Run("missing email rejected", func(t *testing.T) {
		router, _ := newUserRouter(ctrl)

		body := strings.NewReader(`{"name": "No Email"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/login", body))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
	})
}

func TestUserDeleteEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("default deactivates", func(t *testing.T) {
		router, repo := newUserRouter(ctrl)
		repo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&model.User{ID: userID, IsActive: true}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/users/"+userID.String(), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "User deactivated successfully", env.Message)
	})

	t.Run("permanent refused while referenced", func(t *testing.T) {
		router, repo := newUserRouter(ctrl)
		repo.EXPECT().
			FindByID(gomock.Any(), userID).
			Return(&model.User{ID: userID}, nil)
		repo.EXPECT().CountWorkOrderRefs(gomock.Any(), userID).Return(int64(3), nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/users/"+userID.String()+"?permanent=true", nil))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
	})
}
