package handlers

import (
	"net/http"
	"time"

	"brunch_planner/internal/models"
	"brunch_planner/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const dateFormat = "2006-01-02"

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	startStr := c.Query("date_start")
	endStr := c.Query("date_end")

	if startStr == "" && endStr == "" {
		orders, err := h.orderService.GetAllOrders()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}

	start, err := time.Parse(dateFormat, startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_start"})
		return
	}
	end, err := time.Parse(dateFormat, endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_end"})
		return
	}

	orders, err := h.orderService.GetOrdersByDateRange(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req struct {
		ClientName   string `json:"client_name" binding:"required"`
		Headcount    int    `json:"headcount"`
		WithService  bool   `json:"with_service"`
		DeliveryDate string `json:"delivery_date" binding:"required"`
		DeliveryTime string `json:"delivery_time"`
		Notes        string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	deliveryDate, err := time.Parse(dateFormat, req.DeliveryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery_date"})
		return
	}

	order := &models.Order{
		ClientName:   req.ClientName,
		Headcount:    req.Headcount,
		WithService:  req.WithService,
		DeliveryDate: deliveryDate,
		DeliveryTime: req.DeliveryTime,
		Notes:        req.Notes,
	}
	if order.Headcount == 0 {
		order.Headcount = 1
	}
	if err := h.orderService.CreateOrder(order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req struct {
		ClientName   *string `json:"client_name"`
		Headcount    *int    `json:"headcount"`
		WithService  *bool   `json:"with_service"`
		DeliveryDate *string `json:"delivery_date"`
		DeliveryTime *string `json:"delivery_time"`
		Notes        *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.ClientName != nil {
		order.ClientName = *req.ClientName
	}
	if req.Headcount != nil {
		order.Headcount = *req.Headcount
	}
	if req.WithService != nil {
		order.WithService = *req.WithService
	}
	if req.DeliveryDate != nil {
		deliveryDate, err := time.Parse(dateFormat, *req.DeliveryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery_date"})
			return
		}
		order.DeliveryDate = deliveryDate
	}
	if req.DeliveryTime != nil {
		order.DeliveryTime = *req.DeliveryTime
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	if err := h.orderService.UpdateOrder(order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.orderService.DeleteOrder(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GetContent returns the resolved composition of an order: extras + formulas.
func (h *OrderHandler) GetContent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	content, err := h.orderService.ResolveContent(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *OrderHandler) AttachFormula(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		FormulaID          uint            `json:"formula_id" binding:"required"`
		FinalizedHeadcount decimal.Decimal `json:"finalized_headcount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	orderFormula, err := h.orderService.AttachFormula(id, req.FormulaID, req.FinalizedHeadcount)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, orderFormula)
}

func (h *OrderHandler) UpdateAttachedFormula(c *gin.Context) {
	orderFormulaID, ok := idParam(c, "order_formula_id")
	if !ok {
		return
	}
	var req struct {
		FinalizedHeadcount decimal.Decimal `json:"finalized_headcount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.orderService.UpdateAttachedFormula(orderFormulaID, req.FinalizedHeadcount); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *OrderHandler) DetachFormula(c *gin.Context) {
	orderFormulaID, ok := idParam(c, "order_formula_id")
	if !ok {
		return
	}
	if err := h.orderService.DetachFormula(orderFormulaID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "detached"})
}

func (h *OrderHandler) AddExtraProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		ProductID uint            `json:"product_id" binding:"required"`
		Quantity  decimal.Decimal `json:"quantity"`
		UnitID    uint            `json:"unit_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	extra, err := h.orderService.AddExtraProduct(id, req.ProductID, req.Quantity, req.UnitID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, extra)
}

func (h *OrderHandler) UpdateExtraProduct(c *gin.Context) {
	extraID, ok := idParam(c, "extra_id")
	if !ok {
		return
	}
	var req struct {
		Quantity decimal.Decimal `json:"quantity"`
		UnitID   uint            `json:"unit_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.orderService.UpdateExtraProduct(extraID, req.Quantity, req.UnitID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Line not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *OrderHandler) RemoveExtraProduct(c *gin.Context) {
	extraID, ok := idParam(c, "extra_id")
	if !ok {
		return
	}
	if err := h.orderService.RemoveExtraProduct(extraID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Line not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
