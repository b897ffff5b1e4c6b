package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/jobboard/internal/api/http/response"
)

// Pinger checks a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthData struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// Health handles GET /health.
type Health struct {
	db      Pinger
	version string
}

func NewHealth(db Pinger, version string) *Health {
	return &Health{db: db, version: version}
}

func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := healthData{Status: "healthy", Version: h.version, Database: "up"}
	status := http.StatusOK

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			data.Status = "degraded"
			data.Database = "down"
			status = http.StatusServiceUnavailable
		}
	}

	response.JSON(w, status, data)
}
