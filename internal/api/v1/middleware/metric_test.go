package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/Behyna/collect-gateway/internal/api/v1/middleware"
	apperrors "github.com/Behyna/collect-gateway/internal/errors"
	"github.com/Behyna/collect-gateway/internal/metrics"
	"github.com/Behyna/collect-gateway/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMetricsApp(m *metrics.Metrics) *fiber.App {
	logger := zap.NewNop()

	app := fiber.New(fiber.Config{ErrorHandler: apperrors.ErrorHandler(logger)})
	app.Use(middleware.HTTPMetricsMiddleware(m, logger))

	app.Get("/transactions/:id", func(c *fiber.Ctx) error {
		if c.Params("id") == "missing" {
			return service.NewServiceError("TRANSACTION_NOT_FOUND", service.ErrTransactionNotFound)
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/protected", middleware.RequireAuthorization(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	testCases := []struct {
		name       string
		target     string
		route      string
		wantStatus int
	}{
		{name: "success", target: "/transactions/ref-1", route: "/transactions/:id", wantStatus: http.StatusOK},
		{name: "service error", target: "/transactions/missing", route: "/transactions/:id", wantStatus: http.StatusNotFound},
		{name: "unauthorized", target: "/protected", route: "/protected", wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := metrics.NewMetrics(prometheus.NewRegistry())
			app := newMetricsApp(m)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.target, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestsTotal))
			assert.Equal(t, 1.0, testutil.ToFloat64(
				m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, tc.route, strconv.Itoa(tc.wantStatus))))
		})
	}
}
