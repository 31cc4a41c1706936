package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dhis2-sre/channel-admin/internal/errdef"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type definitionForm struct {
	ClusterID  uint   `json:"clusterId" form:"cluster_id" binding:"required"`
	URLPattern string `json:"urlPattern" form:"url_pattern" binding:"required"`
}

func newContext(t *testing.T, contentType string, body string) *gin.Context {
	t.Helper()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	request, err := http.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	require.NoError(t, err)
	request.Header.Set("Content-Type", contentType)
	c.Request = request
	return c
}

func TestDataBinder_Form(t *testing.T) {
	form := url.Values{}
	form.Set("cluster_id", "1")
	form.Set("url_pattern", "/billing/get-customer")
	c := newContext(t, "application/x-www-form-urlencoded", form.Encode())

	var request definitionForm
	err := DataBinder(c, &request)

	require.NoError(t, err)
	assert.Equal(t, uint(1), request.ClusterID)
	assert.Equal(t, "/billing/get-customer", request.URLPattern)
}

func TestDataBinder_JSON(t *testing.T) {
	c := newContext(t, "application/json", `{"clusterId": 2, "urlPattern": "/crm/update"}`)

	var request definitionForm
	err := DataBinder(c, &request)

	require.NoError(t, err)
	assert.Equal(t, uint(2), request.ClusterID)
	assert.Equal(t, "/crm/update", request.URLPattern)
}

func TestDataBinder_MissingField(t *testing.T) {
	c := newContext(t, "application/x-www-form-urlencoded", "cluster_id=1")

	var request definitionForm
	err := DataBinder(c, &request)

	require.Error(t, err)
	assert.True(t, errdef.IsBadRequest(err))
}

func TestDataBinder_UnsupportedMediaType(t *testing.T) {
	c := newContext(t, "text/plain", "cluster_id=1")

	var request definitionForm
	err := DataBinder(c, &request)

	require.Error(t, err)
	assert.True(t, errdef.IsUnsupportedMediaType(err))
}
