// Package sync exposes the availability sync as an HTTP trigger.
package sync

import (
	"net/http"
	"sync"

	"cabinrentals/internal/availability"
	"cabinrentals/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *availability.Service

	mu      sync.Mutex
	running bool
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sync/availability", h.SyncAvailability)
}

// SyncAvailability handles POST /api/v1/sync/availability. Only one run at
// a time; a concurrent trigger gets 409 instead of a second batch.
func (h *Handler) SyncAvailability(c *gin.Context) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		response.Error(c, http.StatusConflict, "SYNC_RUNNING", "An availability sync is already running")
		return
	}
	h.running = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	summary, results, err := h.service.Run(c.Request.Context())
	if err != nil {
		response.Internal(c, "Availability sync failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"summary":    summary,
		"properties": results,
	})
}
