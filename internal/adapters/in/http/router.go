package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// RouterConfig carries what the router needs besides the use cases.
type RouterConfig struct {
	Document *APIDocument
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
	// Debug switches echo's own logger to DEBUG; it stays at WARN otherwise.
	Debug bool
}

// NewRouter builds the echo instance serving the REST surface, the OpenAPI
// document, Swagger UI and Prometheus metrics.
func NewRouter(server *Server, cfg RouterConfig) *echo.Echo {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if cfg.Debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.WARN)
	}

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	if cfg.Document != nil {
		cfg.Document.register()
		e.GET("/openapi.json", func(c echo.Context) error {
			return c.JSONBlob(http.StatusOK, cfg.Document.JSON())
		})
		e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.json")))
	}

	api := e.Group("/api/v1")
	api.GET("/classifications", server.ListClassifications)
	api.POST("/classifications", server.CreateClassification)
	api.GET("/classifications/:id", server.GetClassification)
	api.POST("/classifications/:id/pallets", server.AddPallet)
	api.POST("/classifications/:id/waste", server.AddWaste)
	api.POST("/classifications/:id/returns", server.AddReturn)
	api.POST("/classifications/:id/adjustments", server.AdjustCategoryWeights)
	api.PUT("/classifications/:id/prices", server.SetPrices)
	api.POST("/classifications/:id/finalize", server.FinalizeClassification)
	api.GET("/orders/:orderId/progress", server.GetOrderProgress)

	return e
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Debug("request", fields...)
			return nil
		},
	})
}
