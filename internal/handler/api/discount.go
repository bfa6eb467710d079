package api

import (
	"errors"
	"net/http"

	"storefront/internal/domain/discount"
	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/middleware"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DiscountHandler struct {
	discountCommands commands.DiscountCommands
	discountQueries  queries.DiscountQueries
}

func NewDiscountHandler(discountCommands commands.DiscountCommands, discountQueries queries.DiscountQueries) *DiscountHandler {
	return &DiscountHandler{
		discountCommands: discountCommands,
		discountQueries:  discountQueries,
	}
}

// @Summary Create discount schedule
// @Description Schedule a promotion for a product over a time window
// @Tags discounts
// @Accept json
// @Produce json
// @Param request body reqdto.CreateScheduleRequest true "Schedule request"
// @Success 201 {object} resdto.CreateScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /discounts [post]
func (h *DiscountHandler) CreateSchedule(c *gin.Context) {
	var req reqdto.CreateScheduleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	kind, err := discount.ParseKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown discount kind",
		})
		return
	}

	var createdBy *uuid.UUID
	if userID, ok := middleware.GetUserID(c); ok {
		createdBy = &userID
	}

	scheduleID, err := h.discountCommands.CreateSchedule(c.Request.Context(), commands.CreateScheduleInput{
		ProductID: req.ProductID,
		Kind:      kind,
		Value:     req.Value,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}, createdBy)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		case errors.Is(err, commands.ErrScheduleOverlap):
			c.JSON(http.StatusConflict, gin.H{
				"error": "An overlapping promotion already exists for this product",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		case errors.Is(err, commands.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Service temporarily unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateScheduleResponse{ID: scheduleID})
}

// @Summary Cancel discount schedule
// @Description Cancel a pending or active schedule. Cancelling an active schedule restores the product's regular price.
// @Tags discounts
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /discounts/{id} [delete]
func (h *DiscountHandler) CancelSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid schedule ID format",
		})
		return
	}

	if err := h.discountCommands.CancelSchedule(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrScheduleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Schedule not found",
			})
		case errors.Is(err, commands.ErrScheduleCompleted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Schedule has already completed",
			})
		case errors.Is(err, commands.ErrScheduleStateChanged):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Schedule state changed concurrently, retry",
			})
		case errors.Is(err, commands.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Service temporarily unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get discount schedule
// @Description Get a discount schedule by ID
// @Tags discounts
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /discounts/{id} [get]
func (h *DiscountHandler) GetSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid schedule ID format",
		})
		return
	}

	view, err := h.discountQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Schedule not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	resp, err := resdto.FromScheduleView(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List discount schedules
// @Description List schedules filtered by product and status
// @Tags discounts
// @Produce json
// @Param product_id query string false "Filter by product ID"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.ScheduleResponse
// @Failure 400 {object} map[string]string
// @Router /discounts [get]
func (h *DiscountHandler) ListSchedules(c *gin.Context) {
	filter := queries.ScheduleListFilter{}
	if raw := c.Query("product_id"); raw != "" {
		productID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid product ID format",
			})
			return
		}
		filter.ProductID = &productID
	}
	if status := c.Query("status"); status != "" {
		if _, err := discount.ParseStatus(status); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid status filter",
			})
			return
		}
		filter.Status = &status
	}

	limit, offset := parsePage(c)
	views, err := h.discountQueries.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	resp := make([]*resdto.ScheduleResponse, 0, len(views))
	for _, view := range views {
		r, err := resdto.FromScheduleView(view)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			return
		}
		resp = append(resp, r)
	}
	c.JSON(http.StatusOK, resp)
}
