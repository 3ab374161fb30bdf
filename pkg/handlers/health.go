package handlers

import (
	"encoding/json"
	"net/http"
	"runtime"

	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/config"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/database"
)

// PingResponse contains service status and version information.
type PingResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Service      string `json:"service"`
	GoVersion    string `json:"go_version"`
	Environment  string `json:"environment"`
	Capabilities string `json:"capabilities"`
}

// HealthHandler handles health check and ping endpoints.
type HealthHandler struct {
	cfg    *config.Config
	caps   database.Capabilities
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config, caps database.Capabilities, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, caps: caps, logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/ping", h.Ping)
}

// Health handles GET /health requests with a bare "ok".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ping handles GET /ping requests with service details.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	response := PingResponse{
		Status:       "ok",
		Version:      h.cfg.Version,
		Service:      "switzerland-law-mcp",
		GoVersion:    runtime.Version(),
		Environment:  h.cfg.Env,
		Capabilities: h.caps.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode ping response", zap.Error(err))
	}
}
