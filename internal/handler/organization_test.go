package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dangerclosesec/nexus/internal/config"
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

// envelope mirrors the wire shape of every API response.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Pagination *struct {
		Total  int64 `json:"total"`
		Offset int   `json:"offset"`
		Limit  *int  `json:"limit"`
	} `json:"pagination"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func testConfig(environment string) *config.Config {
	cfg := &config.Config{}
	cfg.Environment = environment
	return cfg
}

func newOrganizationRouter(ctrl *gomock.Controller, cfg *config.Config) (chi.Router, *mocks.MockOrganizationRepositoryIface) {
	repo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	h := handler.NewOrganizationHandler(service.NewOrganizationService(repo), cfg)

	r := chi.NewRouter()
	r.Route("/api/organizations", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Get("/{id}/stats", h.Stats)
	})
	return r, repo
}

func TestOrganizationGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()

	t.Run("found", func(t *testing.T) {
		router, repo := newOrganizationRouter(ctrl, testConfig("development"))
		repo.EXPECT().
			FindByIDExpanded(gomock.Any(), orgID).
			Return(&model.Organization{ID: orgID, Name: "Acme Industrial"}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/organizations/"+orgID.String(), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)

		var org model.Organization
		require.NoError(t, json.Unmarshal(env.Data, &org))
		assert.Equal(t, "Acme Industrial", org.Name)
	})

	t.Run("not found", func(t *testing.T) {
		router, repo := newOrganizationRouter(ctrl, testConfig("development"))
		repo.EXPECT().
			FindByIDExpanded(gomock.Any(), orgID).
			Return(nil, domain.ErrOrganizationNotFound)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/organizations/"+orgID.String(), nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "Resource not found", env.Message)
		assert.NotEmpty(t, env.Error)
	})

	t.Run("error detail withheld in production", func(t *testing.T) {
		router, repo := newOrganizationRouter(ctrl, testConfig("production"))
		repo.EXPECT().
			FindByIDExpanded(gomock.Any(), orgID).
			Return(nil, domain.ErrOrganizationNotFound)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/organizations/"+orgID.String(), nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Empty(t, env.Error)
	})

	t.Run("malformed ID", func(t *testing.T) {
		router, _ := newOrganizationRouter(ctrl, testConfig("development"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/organizations/not-a-uuid", nil))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "Invalid organization ID", env.Message)
	})
}

func TestOrganizationCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, repo := newOrganizationRouter(ctrl, testConfig("development"))
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil)

	body := strings.NewReader(`{"name": "Acme Industrial", "industry": "Manufacturing"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/organizations", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Organization created successfully", env.Message)
}

func TestOrganizationStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()

	t.Run("aggregate with derived fields", func(t *testing.T) {
		router, repo := newOrganizationRouter(ctrl, testConfig("development"))

		stats := &model.OrganizationStats{}
		stats.Users.Total = 12
		stats.Users.Active = 9
		stats.Assets.Total = 4
		stats.Assets.Active = 3
		stats.Assets.UnderMaintenance = 1
		stats.WorkOrders.Total = 20
		stats.WorkOrders.Open = 6
		stats.WorkOrders.Overdue = 2
		stats.WorkOrders.Completed = 5
		stats.Derive()

		repo.EXPECT().FindByID(gomock.Any(), orgID).Return(&model.Organization{ID: orgID}, nil)
		repo.EXPECT().Stats(gomock.Any(), orgID).Return(stats, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/organizations/"+orgID.String()+"/stats", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)

		var got struct {
			Users struct {
				Total    int64 `json:"total"`
				Active   int64 `json:"active"`
				Inactive int64 `json:"inactive"`
			} `json:"users"`
			Assets struct {
				Total            int64 `json:"total"`
				UnderMaintenance int64 `json:"underMaintenance"`
			} `json:"assets"`
			WorkOrders struct {
				Open           int64   `json:"open"`
				Overdue        int64   `json:"overdue"`
				CompletionRate float64 `json:"completionRate"`
			} `json:"workOrders"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, int64(12), got.Users.Total)
		assert.Equal(t, int64(3), got.Users.Inactive)
		assert.Equal(t, int64(1), got.Assets.UnderMaintenance)
		assert.Equal(t, int64(6), got.WorkOrders.Open)
		assert.Equal(t, int64(2), got.WorkOrders.Overdue)
		assert.Equal(t, 25.0, got.WorkOrders.CompletionRate)
	})

	t.Run("unknown organization", func(t *testing.T) {
		router, repo := newOrganizationRouter(ctrl, testConfig("development"))
		repo.EXPECT().FindByID(gomock.Any(), orgID).Return(nil, domain.ErrOrganizationNotFound)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/organizations/"+orgID.String()+"/stats", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOrganizationDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()

	t.Run("refused with dependents", func(t *testing.T) {
		router, repo := newOrganizationRouter(ctrl, testConfig("development"))
		repo.EXPECT().FindByID(gomock.Any(), orgID).Return(&model.Organization{ID: orgID}, nil)
		repo.EXPECT().
			DependentCounts(gomock.Any(), orgID).
			Return(model.OrganizationCounts{Users: 2, WorkOrders: 5}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/organizations/"+orgID.String(), nil))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "Cannot delete organization with existing users, assets, or work orders", env.Message)

		var counts model.OrganizationCounts
		require.NoError(t, json.Unmarshal(env.Data, &counts))
		assert.Equal(t, int64(2), counts.Users)
		assert.Equal(t, int64(5), counts.WorkOrders)
	})

	t.Run("deletes when unreferenced", func(t *testing.T) {
		router, repo := newOrganizationRouter(ctrl, testConfig("development"))
		repo.EXPECT().FindByID(gomock.Any(), orgID).Return(&model.Organization{ID: orgID}, nil)
		repo.EXPECT().DependentCounts(gomock.Any(), orgID).Return(model.OrganizationCounts{}, nil)
		repo.EXPECT().Delete(gomock.Any(), orgID).Return(nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/organizations/"+orgID.String(), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "Organization deleted successfully", env.Message)
	})
}
