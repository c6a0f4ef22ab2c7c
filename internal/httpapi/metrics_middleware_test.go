package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/sonicindex/internal/metrics"
)

func TestMetricsMiddlewareRecordsNumericStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.Initialize()
	m.HTTPRequestsTotal.Reset()

	router := gin.New()
	router.Use(metricsMiddleware())
	router.GET("/ok", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })
	router.GET("/missing", func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{}) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/missing", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	okCounter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/ok", "200")
	require.NotNil(t, okCounter)
	require.Equal(t, 1.0, testutil.ToFloat64(okCounter))

	notFoundCounter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/missing", "404")
	require.NotNil(t, notFoundCounter)
	require.Equal(t, 1.0, testutil.ToFloat64(notFoundCounter))
	require.NotEqual(t, okCounter, notFoundCounter)
}
