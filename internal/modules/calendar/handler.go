package calendar

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cabinrentals/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/calendar/states", h.GetStates)
	rg.GET("/calendar/cabin/:id", h.GetCabinCalendar)
	rg.GET("/calendar/cabin-slug/*slug", h.GetCabinCalendarBySlug)
}

// GetStates handles GET /api/v1/calendar/states
func (h *Handler) GetStates(c *gin.Context) {
	states, err := h.service.States(c.Request.Context())
	if err != nil {
		response.Internal(c, "Error fetching calendar states")
		return
	}
	response.Success(c, http.StatusOK, states)
}

// GetCabinCalendar handles GET /api/v1/calendar/cabin/:id
func (h *Handler) GetCabinCalendar(c *gin.Context) {
	cabinID := c.Param("id")

	months, start, includeRates, ok := parseCalendarQuery(c)
	if !ok {
		return
	}

	cal, err := h.service.CabinCalendar(c.Request.Context(), cabinID, months, start, includeRates)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cal)
}

// GetCabinCalendarBySlug handles GET /api/v1/calendar/cabin-slug/*slug
func (h *Handler) GetCabinCalendarBySlug(c *gin.Context) {
	slug := strings.TrimPrefix(c.Param("slug"), "/")
	if slug == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_SLUG", "Cabin slug is required")
		return
	}

	months, start, includeRates, ok := parseCalendarQuery(c)
	if !ok {
		return
	}

	cal, err := h.service.CabinCalendarBySlug(c.Request.Context(), slug, months, start, includeRates)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cal)
}

func parseCalendarQuery(c *gin.Context) (months int, start time.Time, includeRates bool, ok bool) {
	months = 3
	if raw := c.Query("months"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 1 || val > 12 {
			response.Error(c, http.StatusBadRequest, "INVALID_MONTHS", "months must be between 1 and 12")
			return 0, time.Time{}, false, false
		}
		months = val
	}

	start = time.Now().UTC()
	if raw := c.Query("start_date"); raw != "" {
		val, err := time.Parse(dateFormat, raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_DATE", "start_date must be YYYY-MM-DD")
			return 0, time.Time{}, false, false
		}
		start = val
	}

	includeRates = c.DefaultQuery("include_rates", "true") != "false"
	return months, start, includeRates, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCabinNotFound):
		response.NotFound(c, "Cabin not found")
	case errors.Is(err, ErrCalendarNotFound):
		response.NotFound(c, "Calendar not found for this cabin")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Internal(c, "Error fetching cabin calendar")
	}
}
