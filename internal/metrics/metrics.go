package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lifecycle counters, incremented by the services.
var (
	ProjectsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "projects_created_total",
		Help: "Total number of projects created",
	})
	ProjectsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "projects_published_total",
		Help: "Total number of projects published",
	})
	Donations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donations_total",
		Help: "Total number of accepted donations",
	})
	DonationAmount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donation_amount_total",
		Help: "Sum of accepted donation amounts",
	})
)

var requestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "Latency of HTTP requests in milliseconds",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	},
	[]string{"method", "route", "status"},
)

// RequestDuration is a Fiber middleware recording per-route request
// latency.
func RequestDuration() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		elapsedMs := float64(time.Since(start).Microseconds()) / 1000.0
		status := strconv.Itoa(c.Response().StatusCode())
		requestDuration.WithLabelValues(c.Method(), c.Route().Path, status).Observe(elapsedMs)
		return err
	}
}
