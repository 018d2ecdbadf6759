package handlers

import (
	"net/http"
	"time"

	"brunch_planner/internal/services"

	"github.com/gin-gonic/gin"
)

type PlanningHandler struct {
	planningService services.PlanningService
}

func NewPlanningHandler(planningService services.PlanningService) *PlanningHandler {
	return &PlanningHandler{planningService: planningService}
}

// GetProductionPlan builds the day-by-day production plan for a period.
// Dates are ISO-8601 calendar dates; type_formula defaults to "all".
func (h *PlanningHandler) GetProductionPlan(c *gin.Context) {
	plan, ok := h.buildPlan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetProductionRollup returns the plan together with its reporting
// projections (category pivot, grand totals, product counts).
func (h *PlanningHandler) GetProductionRollup(c *gin.Context) {
	plan, ok := h.buildPlan(c)
	if !ok {
		return
	}
	rollup := services.BuildRollup(plan)

	// Pre-rendered grand totals for the console: whole numbers without a
	// decimal point, everything else to one decimal place.
	display := make(map[string]string, len(rollup.GrandTotals))
	for _, total := range rollup.GrandTotals {
		display[total.Name] = services.FormatQuantity(total.Quantity) + " " + total.Unit
	}

	c.JSON(http.StatusOK, gin.H{
		"plan":                 plan,
		"rollup":               rollup,
		"grand_totals_display": display,
	})
}

func (h *PlanningHandler) buildPlan(c *gin.Context) (*services.Plan, bool) {
	start, err := time.Parse(dateFormat, c.Query("date_start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_start"})
		return nil, false
	}
	end, err := time.Parse(dateFormat, c.Query("date_end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_end"})
		return nil, false
	}
	typeFilter := c.DefaultQuery("type_formula", services.TypeFilterAll)

	plan, err := h.planningService.BuildPlan(start, end, typeFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return plan, true
}
