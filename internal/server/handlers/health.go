package handlers

import (
	"net/http"
	"time"

	"github.com/rgreinho/request-yo-racks-api/internal/server/response"
)

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status": "healthy",
	})
}

// HandleReady handles GET {prefix}/ready. The service is ready once at
// least one provider is configured.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	providers := h.collector.Providers()
	if len(providers) == 0 {
		response.JSON(w, http.StatusServiceUnavailable, response.Fail(
			"SERVICE_UNAVAILABLE",
			"Service unavailable",
			"No provider is configured",
		))
		return
	}

	response.OK(w, map[string]any{
		"status":         "ready",
		"providers":      providers,
		"nearby":         h.nearby != nil,
		"cache_items":    h.cache.ItemCount(),
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	})
}
