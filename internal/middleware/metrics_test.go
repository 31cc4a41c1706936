package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dhis2-sre/channel-admin/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/clusters/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/clusters/:id", "200")
	before := testutil.ToFloat64(counter)
	unmatched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	beforeUnmatched := testutil.ToFloat64(unmatched)

	for _, path := range []string{"/clusters/1", "/clusters/2", "/nowhere"} {
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, path, nil)
		require.NoError(t, err)
		r.ServeHTTP(w, req)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
	assert.Equal(t, beforeUnmatched+1, testutil.ToFloat64(unmatched))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.HTTPRequestsInFlight))
}
