package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const healthPingTimeout = 5 * time.Second

// PoolStatus is a snapshot of the connection pool. With request-pinned
// connections, AcquiredConns approximates the number of in-flight requests.
type PoolStatus struct {
	TotalConns    int32 `json:"total_conns"`
	IdleConns     int32 `json:"idle_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
	MaxConns      int32 `json:"max_conns"`
}

// HealthReport is the payload of the database health endpoint.
type HealthReport struct {
	Status string     `json:"status"`
	Clinic string     `json:"clinic,omitempty"`
	Error  string     `json:"error,omitempty"`
	Pool   PoolStatus `json:"pool"`
}

// Healthy reports whether the database answered the ping.
func (r *HealthReport) Healthy() bool { return r.Status == "healthy" }

// NewHealthReport assembles the endpoint payload from a pool snapshot, the
// requesting clinic and the ping outcome.
func NewHealthReport(status PoolStatus, clinic string, pingErr error) *HealthReport {
	r := &HealthReport{Status: "healthy", Clinic: clinic, Pool: status}
	if pingErr != nil {
		r.Status = "unhealthy"
		r.Error = pingErr.Error()
	}
	return r
}

func poolStatus(pool *pgxpool.Pool) PoolStatus {
	stat := pool.Stat()
	return PoolStatus{
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
	}
}

// HealthHandler pings the database and reports pool state for the clinic
// making the request.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
		defer cancel()

		report := NewHealthReport(
			poolStatus(pool),
			ClinicFromContext(c.Request().Context()),
			pool.Ping(ctx),
		)
		if !report.Healthy() {
			return c.JSON(http.StatusServiceUnavailable, report)
		}
		return c.JSON(http.StatusOK, report)
	}
}
