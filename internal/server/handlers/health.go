package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/goawx/pkg/api"
)

// HealthHandler обрабатывает ping запросы
type HealthHandler struct {
	logger  *slog.Logger
	version string
}

// NewHealthHandler создает новый handler для ping
func NewHealthHandler(logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		version: version,
	}
}

// Ping обрабатывает GET /api/v2/ping/
// Не требует аутентификации, как и в AWX
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	resp := api.PingResponse{
		Version: h.version,
		Active:  "awxstub",
		HA:      false,
	}
	sendJSON(w, h.logger, resp, http.StatusOK)
}
