// Package pms exposes read-only pass-throughs to the Streamline API for
// admin tooling: unit lists, unit detail and raw rate payloads.
package pms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cabinrentals/internal/pkg/response"
	"cabinrentals/internal/streamline"

	"github.com/gin-gonic/gin"
)

// Client is the subset of the Streamline client this module uses.
type Client interface {
	PropertyList(ctx context.Context) ([]streamline.Property, error)
	PropertyInfo(ctx context.Context, unitID int64) (*streamline.Property, error)
	PropertyRates(ctx context.Context, unitID int64, startDate, endDate string) (json.RawMessage, error)
}

type Handler struct {
	client Client
}

func NewHandler(client Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/streamline/properties", h.GetProperties)
	rg.GET("/streamline/properties/:id", h.GetProperty)
	rg.GET("/streamline/properties/:id/rates", h.GetPropertyRates)
}

// GetProperties handles GET /api/v1/streamline/properties
func (h *Handler) GetProperties(c *gin.Context) {
	properties, err := h.client.PropertyList(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, properties)
}

// GetProperty handles GET /api/v1/streamline/properties/:id
func (h *Handler) GetProperty(c *gin.Context) {
	unitID, ok := parseUnitID(c)
	if !ok {
		return
	}

	property, err := h.client.PropertyInfo(c.Request.Context(), unitID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, property)
}

// GetPropertyRates handles GET /api/v1/streamline/properties/:id/rates
func (h *Handler) GetPropertyRates(c *gin.Context) {
	unitID, ok := parseUnitID(c)
	if !ok {
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "start_date and end_date are required")
		return
	}

	rates, err := h.client.PropertyRates(c.Request.Context(), unitID, startDate, endDate)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rates)
}

func parseUnitID(c *gin.Context) (int64, bool) {
	unitID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid unit id")
		return 0, false
	}
	return unitID, true
}

func handleError(c *gin.Context, err error) {
	var apiErr *streamline.APIError
	switch {
	case errors.Is(err, streamline.ErrPropertyNotFound):
		response.NotFound(c, "Property not found in Streamline")
	case errors.As(err, &apiErr):
		response.Error(c, http.StatusBadGateway, "PMS_ERROR", apiErr.Description)
	case errors.Is(err, streamline.ErrTransport):
		response.Error(c, http.StatusBadGateway, "PMS_UNAVAILABLE", "Streamline API is unreachable")
	default:
		response.Internal(c, "Error calling Streamline")
	}
}
