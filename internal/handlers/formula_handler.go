package handlers

import (
	"net/http"

	"brunch_planner/internal/models"
	"brunch_planner/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type FormulaHandler struct {
	formulaService services.FormulaService
}

func NewFormulaHandler(formulaService services.FormulaService) *FormulaHandler {
	return &FormulaHandler{formulaService: formulaService}
}

func (h *FormulaHandler) ListFormulas(c *gin.Context) {
	typeTag := c.Query("type_tag")

	var (
		formulas []models.Formula
		err      error
	)
	if typeTag != "" && typeTag != services.TypeFilterAll {
		formulas, err = h.formulaService.GetFormulasByType(typeTag)
	} else {
		formulas, err = h.formulaService.GetAllFormulas()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, formulas)
}

func (h *FormulaHandler) GetFormula(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	formula, err := h.formulaService.GetFormula(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Formula not found"})
		return
	}
	c.JSON(http.StatusOK, formula)
}

func (h *FormulaHandler) CreateFormula(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		TypeTag string `json:"type_tag"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	formula := &models.Formula{Name: req.Name, TypeTag: req.TypeTag}
	if formula.TypeTag == "" {
		formula.TypeTag = string(models.FormulaNonBrunch)
	}
	if err := h.formulaService.CreateFormula(formula); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, formula)
}

func (h *FormulaHandler) UpdateFormula(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	formula, err := h.formulaService.GetFormula(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Formula not found"})
		return
	}

	var req struct {
		Name    *string `json:"name"`
		TypeTag *string `json:"type_tag"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.Name != nil {
		formula.Name = *req.Name
	}
	if req.TypeTag != nil {
		formula.TypeTag = *req.TypeTag
	}

	if err := h.formulaService.UpdateFormula(formula); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, formula)
}

func (h *FormulaHandler) DeleteFormula(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.formulaService.DeleteFormula(id); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *FormulaHandler) ListLines(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	lines, err := h.formulaService.GetLines(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (h *FormulaHandler) AddLine(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		ProductID        uint            `json:"product_id" binding:"required"`
		QuantityPerGuest decimal.Decimal `json:"quantity_per_guest"`
		UnitID           uint            `json:"unit_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	line, err := h.formulaService.AddLine(id, req.ProductID, req.QuantityPerGuest, req.UnitID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (h *FormulaHandler) UpdateLine(c *gin.Context) {
	lineID, ok := idParam(c, "line_id")
	if !ok {
		return
	}
	var req struct {
		QuantityPerGuest *decimal.Decimal `json:"quantity_per_guest"`
		UnitID           *uint            `json:"unit_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	existing, err := h.formulaService.GetLine(lineID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Line not found"})
		return
	}
	if req.QuantityPerGuest != nil {
		existing.QuantityPerGuest = *req.QuantityPerGuest
	}
	if req.UnitID != nil {
		existing.UnitID = *req.UnitID
	}

	if err := h.formulaService.UpdateLine(existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *FormulaHandler) DeleteLine(c *gin.Context) {
	lineID, ok := idParam(c, "line_id")
	if !ok {
		return
	}
	if err := h.formulaService.DeleteLine(lineID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Line not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Expand previews the product lines a formula implies at a given headcount.
func (h *FormulaHandler) Expand(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	headcount, err := decimal.NewFromString(c.DefaultQuery("headcount", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid headcount"})
		return
	}

	lines, err := h.formulaService.Expand(id, headcount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"formula_id": id,
		"headcount":  headcount,
		"lines":      lines,
	})
}
