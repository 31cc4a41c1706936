package soap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/dhis2-sre/channel-admin/internal/errdef"
	"github.com/dhis2-sre/channel-admin/internal/server"
	"github.com/dhis2-sre/channel-admin/pkg/inttest"
	"github.com/dhis2-sre/channel-admin/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_Index(t *testing.T) {
	clusterService := &mockClusterLister{}
	clusterService.
		On("FindAll", mock.Anything).
		Return([]model.Cluster{{ID: 1, Name: "dev"}, {ID: 2, Name: "prod"}}, nil)
	channelService := &mockChannelService{}
	channelService.
		On("Items", mock.Anything, uint(2)).
		Return([]Item{
			{
				Definition: model.NewChannelURLDefinition(7, "/soap/billing", model.URLTypeSOAP, true),
				Security:   model.DefinitionSecurity{ID: 7, SecDefID: ptr(uint(12)), SecDefType: ptr(model.SecurityDefTypeTechAcc), TechAccName: ptr("billing-account")},
			},
			{
				Definition: model.NewChannelURLDefinition(8, "/soap/invoices", model.URLTypeSOAP, false),
			},
		}, nil)
	securityService := &mockSecurityLister{}
	securityService.
		On("FindAll", mock.Anything, uint(2)).
		Return([]model.Security{{ID: 12, Type: model.SecurityDefTypeTechAcc, Name: "billing-account", ClusterID: 2}}, nil)
	handler := newTestHandler(clusterService, securityService, channelService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/channel/soap/?cluster=2", nil)

	handler.Index(c)

	require.Empty(t, c.Errors)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/html; charset=utf-8", recorder.Header().Get("Content-Type"))
	body := recorder.Body.String()
	assert.Contains(t, body, `<option value="2" selected>prod</option>`)
	assert.Contains(t, body, `<option value="1">dev</option>`)
	assert.Contains(t, body, `<tr id="tr_7" data-id="7" data-pattern="/soap/billing" data-secdef="12">`)
	assert.Contains(t, body, `data-pattern="/soap/invoices" data-secdef="0">`)
	assert.Contains(t, body, "billing-account (tech_acc)")
	assert.Contains(t, body, `<tr id="tr_8"`)
	assert.Contains(t, body, `name="url_pattern"`)
	assert.Contains(t, body, `name="edit-url_pattern"`)
	assert.Contains(t, body, `<input type="hidden" name="cluster_id" value="2">`)
	assert.Contains(t, body, `name="security_id"`)
	assert.Contains(t, body, `name="edit-security_id"`)
	assert.Contains(t, body, `<option value="12">billing-account (tech_acc)</option>`)
	clusterService.AssertExpectations(t)
	securityService.AssertExpectations(t)
	channelService.AssertExpectations(t)
}

func TestHandler_Index_NoClusterSelected(t *testing.T) {
	clusterService := &mockClusterLister{}
	clusterService.
		On("FindAll", mock.Anything).
		Return([]model.Cluster{{ID: 1, Name: "dev"}}, nil)
	channelService := &mockChannelService{}
	securityService := &mockSecurityLister{}
	handler := newTestHandler(clusterService, securityService, channelService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/channel/soap/", nil)

	handler.Index(c)

	require.Empty(t, c.Errors)
	assert.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `<option value="1">dev</option>`)
	assert.NotContains(t, body, `id="data-table"`)
	channelService.AssertNotCalled(t, "Items")
	securityService.AssertNotCalled(t, "FindAll")
}

func TestHandler_Index_Errors(t *testing.T) {
	t.Run("InvalidCluster", func(t *testing.T) {
		handler := newTestHandler(&mockClusterLister{}, &mockSecurityLister{}, &mockChannelService{})

		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Request = httptest.NewRequest(http.MethodGet, "/channel/soap/?cluster=dev", nil)

		handler.Index(c)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.True(t, strings.HasPrefix(recorder.Body.String(), "Could not list the SOAP channel definitions, e=[invalid cluster"))
		assert.Empty(t, c.Errors)
	})

	t.Run("ClusterNotFound", func(t *testing.T) {
		clusterService := &mockClusterLister{}
		clusterService.
			On("FindAll", mock.Anything).
			Return([]model.Cluster{}, nil)
		channelService := &mockChannelService{}
		channelService.
			On("Items", mock.Anything, uint(3)).
			Return([]Item(nil), errdef.NewNotFound("cluster with id %d doesn't exist", 3))
		handler := newTestHandler(clusterService, &mockSecurityLister{}, channelService)

		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Request = httptest.NewRequest(http.MethodGet, "/channel/soap/?cluster=3", nil)

		handler.Index(c)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Equal(t, "Could not list the SOAP channel definitions, e=[cluster with id 3 doesn't exist]", recorder.Body.String())
	})

	t.Run("Securities", func(t *testing.T) {
		clusterService := &mockClusterLister{}
		clusterService.
			On("FindAll", mock.Anything).
			Return([]model.Cluster{{ID: 1, Name: "dev"}}, nil)
		channelService := &mockChannelService{}
		channelService.
			On("Items", mock.Anything, uint(1)).
			Return([]Item{}, nil)
		securityService := &mockSecurityLister{}
		securityService.
			On("FindAll", mock.Anything, uint(1)).
			Return([]model.Security(nil), errors.New("connection reset"))
		handler := newTestHandler(clusterService, securityService, channelService)

		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Request = httptest.NewRequest(http.MethodGet, "/channel/soap/?cluster=1", nil)

		handler.Index(c)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Equal(t, "Could not list the SOAP channel definitions, e=[connection reset]", recorder.Body.String())
	})
}

// Index runs against a real admin service client so failures of the remote side are covered end to
// end.
func TestHandler_Index_AdminServiceFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := map[string]struct {
		cluster     func(t *testing.T) model.Cluster
		errContains string
	}{
		"ResultNotOK": {
			cluster: func(t *testing.T) model.Cluster {
				fake := inttest.SetupAdminService(t)
				fake.Fail(serviceGetList, "cluster is down")
				return newCluster(fake)
			},
			errContains: "cluster is down",
		},
		"SOAPFault": {
			cluster: func(t *testing.T) model.Cluster {
				return newCluster(inttest.SetupAdminService(t))
			},
			errContains: "no such service: " + serviceGetList,
		},
		"Unreachable": {
			cluster: func(t *testing.T) model.Cluster {
				return model.Cluster{ID: 1, Name: "dev", LBHost: "127.0.0.1", LBPort: 1}
			},
			errContains: `failed to invoke "zato:channel.soap.get-list"`,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			service, clusterService, _ := newTestService(t, &fakeRepository{})
			clusterService.On("Find", mock.Anything, uint(1)).Return(test.cluster(t), nil)
			clusters := &mockClusterLister{}
			clusters.On("FindAll", mock.Anything).Return([]model.Cluster{{ID: 1, Name: "dev"}}, nil)
			securityService := &mockSecurityLister{}
			handler := newTestHandler(clusters, securityService, service)

			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Request = httptest.NewRequest(http.MethodGet, "/channel/soap/?cluster=1", nil)

			handler.Index(c)

			assert.Equal(t, http.StatusInternalServerError, recorder.Code)
			body := recorder.Body.String()
			assert.True(t, strings.HasPrefix(body, "Could not list the SOAP channel definitions, e=["), body)
			assert.Contains(t, body, test.errContains)
			assert.Empty(t, c.Errors)
			securityService.AssertNotCalled(t, "FindAll")
		})
	}
}

func TestHandler_Create(t *testing.T) {
	channelService := &mockChannelService{}
	channelService.
		On("Create", mock.Anything, uint(1), url.Values{"cluster_id": {"1"}, "url_pattern": {"/soap/billing"}}).
		Return("17", nil)
	handler := newTestHandler(&mockClusterLister{}, &mockSecurityLister{}, channelService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newFormPost("/channel/soap/create/", url.Values{"cluster_id": {"1"}, "url_pattern": {"/soap/billing"}})

	handler.Create(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"pk": "17"}`, recorder.Body.String())
	channelService.AssertExpectations(t)
}

func TestHandler_Create_Errors(t *testing.T) {
	t.Run("MissingURLPattern", func(t *testing.T) {
		channelService := &mockChannelService{}
		handler := newTestHandler(&mockClusterLister{}, &mockSecurityLister{}, channelService)

		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Request = newFormPost("/channel/soap/create/", url.Values{"cluster_id": {"1"}})

		handler.Create(c)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.True(t, strings.HasPrefix(recorder.Body.String(), "Could not create the SOAP channel definition, e=[Error binding data"))
		assert.Empty(t, c.Errors)
		channelService.AssertNotCalled(t, "Create")
	})

	t.Run("AdminService", func(t *testing.T) {
		channelService := &mockChannelService{}
		channelService.
			On("Create", mock.Anything, uint(1), mock.Anything).
			Return("", errdef.NewAdminService("url_pattern already exists"))
		handler := newTestHandler(&mockClusterLister{}, &mockSecurityLister{}, channelService)

		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Request = newFormPost("/channel/soap/create/", url.Values{"cluster_id": {"1"}, "url_pattern": {"/soap"}})

		handler.Create(c)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Equal(t, "Could not create the SOAP channel definition, e=[url_pattern already exists]", recorder.Body.String())
	})
}

func TestHandler_Edit(t *testing.T) {
	channelService := &mockChannelService{}
	channelService.
		On("Edit", mock.Anything, uint(1), url.Values{"id": {"42"}, "cluster_id": {"1"}, "edit-url_pattern": {"/soap/invoices"}}).
		Return(nil)
	handler := newTestHandler(&mockClusterLister{}, &mockSecurityLister{}, channelService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newFormPost("/channel/soap/edit/", url.Values{"id": {"42"}, "cluster_id": {"1"}, "edit-url_pattern": {"/soap/invoices"}})

	handler.Edit(c)

	assert.Equal(t, http.StatusOK, c.Writer.Status())
	assert.Empty(t, recorder.Body.String())
	channelService.AssertExpectations(t)
}

func TestHandler_Edit_Error(t *testing.T) {
	channelService := &mockChannelService{}
	channelService.
		On("Edit", mock.Anything, uint(1), mock.Anything).
		Return(errors.New("connection refused"))
	handler := newTestHandler(&mockClusterLister{}, &mockSecurityLister{}, channelService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newFormPost("/channel/soap/edit/", url.Values{"id": {"42"}, "cluster_id": {"1"}, "edit-url_pattern": {"/soap"}})

	handler.Edit(c)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "Could not update the SOAP channel definition, e=[connection refused]", recorder.Body.String())
}

func TestHandler_Delete(t *testing.T) {
	channelService := &mockChannelService{}
	channelService.
		On("Delete", mock.Anything, uint(1), uint(42)).
		Return(nil)
	handler := newTestHandler(&mockClusterLister{}, &mockSecurityLister{}, channelService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Params = gin.Params{{Key: "id", Value: "42"}, {Key: "cluster_id", Value: "1"}}
	c.Request = httptest.NewRequest(http.MethodPost, "/channel/soap/delete/42/cluster/1/", nil)

	handler.Delete(c)

	assert.Equal(t, http.StatusOK, c.Writer.Status())
	channelService.AssertExpectations(t)
}

func TestHandler_Delete_Errors(t *testing.T) {
	t.Run("InvalidID", func(t *testing.T) {
		channelService := &mockChannelService{}
		handler := newTestHandler(&mockClusterLister{}, &mockSecurityLister{}, channelService)

		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Params = gin.Params{{Key: "id", Value: "abc"}, {Key: "cluster_id", Value: "1"}}
		c.Request = httptest.NewRequest(http.MethodPost, "/channel/soap/delete/abc/cluster/1/", nil)

		handler.Delete(c)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.True(t, strings.HasPrefix(recorder.Body.String(), `Could not delete the SOAP channel definition, e=[error parsing "id"`))
		channelService.AssertNotCalled(t, "Delete")
	})

	t.Run("AdminService", func(t *testing.T) {
		channelService := &mockChannelService{}
		channelService.
			On("Delete", mock.Anything, uint(1), uint(42)).
			Return(errdef.NewAdminService("no such definition"))
		handler := newTestHandler(&mockClusterLister{}, &mockSecurityLister{}, channelService)

		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Params = gin.Params{{Key: "id", Value: "42"}, {Key: "cluster_id", Value: "1"}}
		c.Request = httptest.NewRequest(http.MethodPost, "/channel/soap/delete/42/cluster/1/", nil)

		handler.Delete(c)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Equal(t, "Could not delete the SOAP channel definition, e=[no such definition]", recorder.Body.String())
	})
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	engine := server.GetEngine(logger, "")
	Routes(engine, noAuthentication{}, newTestHandler(&mockClusterLister{}, &mockSecurityLister{}, &mockChannelService{}))

	tests := map[string]struct {
		method string
		path   string
	}{
		"IndexPost":    {http.MethodPost, "/channel/soap/"},
		"CreateGet":    {http.MethodGet, "/channel/soap/create/"},
		"CreateDelete": {http.MethodDelete, "/channel/soap/create/"},
		"EditGet":      {http.MethodGet, "/channel/soap/edit/"},
		"DeleteGet":    {http.MethodGet, "/channel/soap/delete/1/cluster/1/"},
		"DeletePut":    {http.MethodPut, "/channel/soap/delete/1/cluster/1/"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			engine.ServeHTTP(recorder, httptest.NewRequest(test.method, test.path, nil))

			assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
		})
	}
}

func newTestHandler(clusterService clusterLister, securityService securityLister, channelService channelService) Handler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewHandler(logger, clusterService, securityService, channelService)
}

func newFormPost(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

type noAuthentication struct{}

func (noAuthentication) BasicAuthentication(c *gin.Context) {
	c.Next()
}

type mockClusterLister struct{ mock.Mock }

func (m *mockClusterLister) FindAll(ctx context.Context) ([]model.Cluster, error) {
	called := m.Called(ctx)
	return called.Get(0).([]model.Cluster), called.Error(1)
}

type mockSecurityLister struct{ mock.Mock }

func (m *mockSecurityLister) FindAll(ctx context.Context, clusterID uint) ([]model.Security, error) {
	called := m.Called(ctx, clusterID)
	return called.Get(0).([]model.Security), called.Error(1)
}

type mockChannelService struct{ mock.Mock }

func (m *mockChannelService) Items(ctx context.Context, clusterID uint) ([]Item, error) {
	called := m.Called(ctx, clusterID)
	return called.Get(0).([]Item), called.Error(1)
}

func (m *mockChannelService) Create(ctx context.Context, clusterID uint, params url.Values) (string, error) {
	called := m.Called(ctx, clusterID, params)
	return called.String(0), called.Error(1)
}

func (m *mockChannelService) Edit(ctx context.Context, clusterID uint, params url.Values) error {
	return m.Called(ctx, clusterID, params).Error(0)
}

func (m *mockChannelService) Delete(ctx context.Context, clusterID uint, id uint) error {
	return m.Called(ctx, clusterID, id).Error(0)
}
