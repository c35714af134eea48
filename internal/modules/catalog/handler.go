package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cabinrentals/internal/pkg/response"
	"cabinrentals/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	cabins CabinRepository
}

func NewHandler(cabins CabinRepository) *Handler {
	return &Handler{cabins: cabins}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cabins", h.GetCabins)
	rg.GET("/cabins/:id", h.GetCabinByID)
	rg.GET("/cabins/slug/*slug", h.GetCabinBySlug)
}

// GetCabins handles GET /api/v1/cabins with pagination
func (h *Handler) GetCabins(c *gin.Context) {
	var f repository.CabinFilters

	f.Status = c.DefaultQuery("status", "published")

	f.Limit = 20
	if limit := c.Query("limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 && val <= 100 {
			f.Limit = val
		}
	}
	if page := c.Query("page"); page != "" {
		if val, err := strconv.Atoi(page); err == nil && val > 0 {
			f.Offset = (val - 1) * f.Limit
		}
	}

	cabins, total, err := h.cabins.List(c.Request.Context(), f)
	if err != nil {
		response.Internal(c, "Error fetching cabins")
		return
	}

	totalPages := (int(total) + f.Limit - 1) / f.Limit
	currentPage := (f.Offset / f.Limit) + 1

	response.Success(c, http.StatusOK, gin.H{
		"cabins": cabins,
		"pagination": gin.H{
			"page":        currentPage,
			"limit":       f.Limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

// GetCabinByID handles GET /api/v1/cabins/:id
func (h *Handler) GetCabinByID(c *gin.Context) {
	cabin, err := h.cabins.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCabinNotFound) {
			response.NotFound(c, "Cabin not found")
			return
		}
		response.Internal(c, "Error fetching cabin")
		return
	}
	response.Success(c, http.StatusOK, cabin)
}

// GetCabinBySlug handles GET /api/v1/cabins/slug/*slug
func (h *Handler) GetCabinBySlug(c *gin.Context) {
	slug := strings.TrimPrefix(c.Param("slug"), "/")
	if slug == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_SLUG", "Cabin slug is required")
		return
	}

	cabin, err := h.cabins.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrCabinNotFound) {
			response.NotFound(c, "Cabin not found")
			return
		}
		response.Internal(c, "Error fetching cabin")
		return
	}
	response.Success(c, http.StatusOK, cabin)
}
