package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cyclesense_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cyclesense_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// NewApp builds the fiber application with the standard middleware stack
// and every route registered.
func NewApp(handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "CycleSense",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(requestMetrics)

	RegisterRoutes(app, handler)
	return app
}

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/api/symptom-types", handler.ListSymptomTypes)

	profiles := app.Group("/api/profiles")
	profiles.Post("/", handler.CreateProfile)
	profiles.Get("/:id", handler.GetProfile)
	profiles.Put("/:id/settings", handler.UpdateProfileSettings)

	profiles.Get("/:id/cycles", handler.ListCycles)
	profiles.Post("/:id/cycles", handler.CreateCycle)
	profiles.Delete("/:id/cycles/:cycleID", handler.DeleteCycle)

	profiles.Post("/:id/symptoms", handler.CreateSymptomRecord)
	profiles.Post("/:id/notes", handler.CreateDailyNote)

	profiles.Get("/:id/analysis", handler.GetAnalysis)
}

// requestMetrics labels by route pattern so profile ids do not explode the
// series count. Labels are copied because fiber reuses request buffers.
func requestMetrics(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}
	route := utils.CopyString(c.Route().Path)
	method := utils.CopyString(c.Method())

	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
	return err
}
