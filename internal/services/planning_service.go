package services

import (
	"fmt"
	"sort"
	"time"

	"brunch_planner/internal/models"
	"brunch_planner/internal/repository"

	"github.com/shopspring/decimal"
)

// Source tags classify where a product line within one order came from.
const (
	SourceFormula      = "formula"
	SourceSupplemental = "supplemental"
	SourceMixed        = "mixed"
)

// TypeFilterAll disables formula-type filtering.
const TypeFilterAll = "all"

// Warning kinds reported alongside a plan.
const (
	WarnMissingProduct = "missing_product"
	WarnMissingUnit    = "missing_unit"
	WarnUnitMismatch   = "unit_mismatch"
)

const dayKeyFormat = "2006-01-02"

// ProductLine is one consolidated product row of an order summary: the order's
// contributions to that product, merged across formulas and extras.
type ProductLine struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Category  string          `json:"category"`
	Type      string          `json:"type"`
	Source    string          `json:"source"`
}

type OrderSummary struct {
	OrderID   uint          `json:"order_id"`
	Client    string        `json:"client"`
	Headcount int           `json:"headcount"`
	Time      string        `json:"time"`
	Products  []ProductLine `json:"products"`
}

type DayTotal struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Category  string          `json:"category"`
	Type      string          `json:"type"`
}

type DayPlan struct {
	Orders []OrderSummary     `json:"orders"`
	Totals map[uint]*DayTotal `json:"totals"`
}

// QualityWarning flags a data defect encountered while building a plan, so
// operators can fix the catalog instead of the report silently hiding it.
type QualityWarning struct {
	Kind      string `json:"kind"`
	ProductID uint   `json:"product_id,omitempty"`
	Message   string `json:"message"`
}

// Plan is the production plan for a period: per-day order summaries and
// per-day product totals, keyed by ISO date.
type Plan struct {
	Start        string              `json:"start"`
	End          string              `json:"end"`
	InvalidRange bool                `json:"invalid_range,omitempty"`
	OrderCount   int                 `json:"order_count"`
	Days         map[string]*DayPlan `json:"days"`
	Warnings     []QualityWarning    `json:"warnings"`
}

type PlanningService interface {
	BuildPlan(startDate, endDate time.Time, typeFilter string) (*Plan, error)
}

type planningService struct {
	orderRepo        repository.OrderRepository
	orderFormulaRepo repository.OrderFormulaRepository
	orderProdRepo    repository.OrderProductRepository
	formulaRepo      repository.FormulaRepository
	formulaLineRepo  repository.FormulaLineRepository
	catalog          CatalogService
	keepZeroLines    bool
}

func NewPlanningService(
	orderRepo repository.OrderRepository,
	orderFormulaRepo repository.OrderFormulaRepository,
	orderProdRepo repository.OrderProductRepository,
	formulaRepo repository.FormulaRepository,
	formulaLineRepo repository.FormulaLineRepository,
	catalog CatalogService,
	keepZeroLines bool,
) PlanningService {
	return &planningService{
		orderRepo:        orderRepo,
		orderFormulaRepo: orderFormulaRepo,
		orderProdRepo:    orderProdRepo,
		formulaRepo:      formulaRepo,
		formulaLineRepo:  formulaLineRepo,
		catalog:          catalog,
		keepZeroLines:    keepZeroLines,
	}
}

// planInput is the fully prefetched snapshot the aggregation runs over. Once
// built, the computation is pure and does no I/O.
type planInput struct {
	orders        []models.Order
	orderFormulas map[uint][]models.OrderFormula
	extras        map[uint][]models.OrderExtraProduct
	formulaLines  map[uint][]models.FormulaLine
	formulas      map[uint]models.Formula
	products      map[uint]ProductInfo
	unitNames     map[uint]string
}

// BuildPlan computes the production plan for [startDate, endDate] inclusive.
// Relations are prefetched in one query per table and joined in memory; the
// per-order loop never touches the store.
func (s *planningService) BuildPlan(startDate, endDate time.Time, typeFilter string) (*Plan, error) {
	plan := &Plan{
		Start:    startDate.Format(dayKeyFormat),
		End:      endDate.Format(dayKeyFormat),
		Days:     make(map[string]*DayPlan),
		Warnings: []QualityWarning{},
	}

	if endDate.Before(startDate) {
		plan.InvalidRange = true
		return plan, nil
	}

	input, err := s.prefetch(startDate, endDate)
	if err != nil {
		return nil, err
	}

	buildPlan(plan, input, typeFilter, s.keepZeroLines)
	return plan, nil
}

func (s *planningService) prefetch(startDate, endDate time.Time) (*planInput, error) {
	orders, err := s.orderRepo.GetByDateRange(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	input := &planInput{
		orders:        orders,
		orderFormulas: make(map[uint][]models.OrderFormula),
		extras:        make(map[uint][]models.OrderExtraProduct),
		formulaLines:  make(map[uint][]models.FormulaLine),
		formulas:      make(map[uint]models.Formula),
		products:      make(map[uint]ProductInfo),
		unitNames:     make(map[uint]string),
	}
	if len(orders) == 0 {
		return input, nil
	}

	orderIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	orderFormulas, err := s.orderFormulaRepo.GetByOrderIDs(orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order formulas: %w", err)
	}
	formulaIDSet := make(map[uint]bool)
	for _, of := range orderFormulas {
		input.orderFormulas[of.OrderID] = append(input.orderFormulas[of.OrderID], of)
		formulaIDSet[of.FormulaID] = true
	}

	extras, err := s.orderProdRepo.GetByOrderIDs(orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order products: %w", err)
	}
	productIDSet := make(map[uint]bool)
	unitIDSet := make(map[uint]bool)
	for _, extra := range extras {
		input.extras[extra.OrderID] = append(input.extras[extra.OrderID], extra)
		productIDSet[extra.ProductID] = true
		unitIDSet[extra.UnitID] = true
	}

	formulaIDs := make([]uint, 0, len(formulaIDSet))
	for id := range formulaIDSet {
		formulaIDs = append(formulaIDs, id)
	}

	formulas, err := s.formulaRepo.GetByIDs(formulaIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch formulas: %w", err)
	}
	for _, f := range formulas {
		input.formulas[f.ID] = f
	}

	formulaLines, err := s.formulaLineRepo.GetByFormulaIDs(formulaIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch formula lines: %w", err)
	}
	for _, line := range formulaLines {
		input.formulaLines[line.FormulaID] = append(input.formulaLines[line.FormulaID], line)
		productIDSet[line.ProductID] = true
		unitIDSet[line.UnitID] = true
	}

	productIDs := make([]uint, 0, len(productIDSet))
	for id := range productIDSet {
		productIDs = append(productIDs, id)
	}
	products, err := s.catalog.LookupProducts(productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	input.products = products

	unitIDs := make([]uint, 0, len(unitIDSet))
	for id := range unitIDSet {
		unitIDs = append(unitIDs, id)
	}
	unitNames, err := s.catalog.LookupUnits(unitIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch units: %w", err)
	}
	input.unitNames = unitNames

	return input, nil
}

// buildPlan is the aggregation proper: pure over the prefetched input.
func buildPlan(plan *Plan, input *planInput, typeFilter string, keepZeroLines bool) {
	orders := filterByFormulaType(input, typeFilter)

	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].DeliveryDate.Equal(orders[j].DeliveryDate) {
			return orders[i].DeliveryDate.Before(orders[j].DeliveryDate)
		}
		return orders[i].DeliveryTime < orders[j].DeliveryTime
	})

	plan.OrderCount = len(orders)
	seenWarnings := make(map[string]bool)

	for _, order := range orders {
		dayKey := order.DeliveryDate.Format(dayKeyFormat)

		merged := make(map[uint]*ProductLine)

		for _, extra := range input.extras[order.ID] {
			accumulateLine(merged, input, plan, seenWarnings,
				extra.ProductID, extra.Quantity, extra.UnitID, SourceSupplemental)
		}

		for _, of := range input.orderFormulas[order.ID] {
			for _, line := range input.formulaLines[of.FormulaID] {
				quantity := line.QuantityPerGuest.Mul(of.FinalizedHeadcount)
				accumulateLine(merged, input, plan, seenWarnings,
					line.ProductID, quantity, line.UnitID, SourceFormula)
			}
		}

		summary := OrderSummary{
			OrderID:   order.ID,
			Client:    order.ClientName,
			Headcount: order.Headcount,
			Time:      order.DeliveryTime,
			Products:  make([]ProductLine, 0, len(merged)),
		}

		day := plan.Days[dayKey]
		if day == nil {
			day = &DayPlan{Totals: make(map[uint]*DayTotal)}
			plan.Days[dayKey] = day
		}

		for _, line := range merged {
			if !keepZeroLines && line.Quantity.IsZero() {
				continue
			}
			summary.Products = append(summary.Products, *line)

			total := day.Totals[line.ProductID]
			if total == nil {
				total = &DayTotal{ProductID: line.ProductID, Quantity: decimal.Zero}
				day.Totals[line.ProductID] = total
			}
			if total.Unit != "" && total.Unit != line.Unit {
				warnOnce(plan, seenWarnings, QualityWarning{
					Kind:      WarnUnitMismatch,
					ProductID: line.ProductID,
					Message:   fmt.Sprintf("product %q summed across units %q and %q on %s", line.Name, total.Unit, line.Unit, dayKey),
				})
			}
			total.Quantity = total.Quantity.Add(line.Quantity)
			total.Name = line.Name
			total.Unit = line.Unit
			total.Category = line.Category
			total.Type = line.Type
		}

		sort.Slice(summary.Products, func(i, j int) bool {
			if summary.Products[i].Name != summary.Products[j].Name {
				return summary.Products[i].Name < summary.Products[j].Name
			}
			return summary.Products[i].ProductID < summary.Products[j].ProductID
		})

		day.Orders = append(day.Orders, summary)
	}
}

// accumulateLine merges one contribution into the order's consolidated lines.
// A product contributed more than once keeps a single line whose quantity is
// the sum and whose source becomes mixed, whether the repeat came from the
// supplemental stream or from another formula.
func accumulateLine(merged map[uint]*ProductLine, input *planInput, plan *Plan, seenWarnings map[string]bool,
	productID uint, quantity decimal.Decimal, unitID uint, source string) {

	info, known := input.products[productID]
	if !known {
		info = ProductInfo{
			ProductID: productID,
			Name:      models.UnknownProductLabel,
			Category:  models.UncategorizedLabel,
			Type:      models.UntypedLabel,
		}
		warnOnce(plan, seenWarnings, QualityWarning{
			Kind:      WarnMissingProduct,
			ProductID: productID,
			Message:   fmt.Sprintf("product %d is referenced but no longer exists", productID),
		})
	}
	unitName, unitKnown := input.unitNames[unitID]
	if !unitKnown {
		warnOnce(plan, seenWarnings, QualityWarning{
			Kind:      WarnMissingUnit,
			ProductID: productID,
			Message:   fmt.Sprintf("unit %d on product %q is referenced but no longer exists", unitID, info.Name),
		})
	}

	if existing, ok := merged[productID]; ok {
		existing.Quantity = existing.Quantity.Add(quantity)
		existing.Source = SourceMixed
		if existing.Unit != unitName {
			warnOnce(plan, seenWarnings, QualityWarning{
				Kind:      WarnUnitMismatch,
				ProductID: productID,
				Message:   fmt.Sprintf("product %q merged across units %q and %q within one order", info.Name, existing.Unit, unitName),
			})
			existing.Unit = unitName
		}
		return
	}

	merged[productID] = &ProductLine{
		ProductID: productID,
		Name:      info.Name,
		Quantity:  quantity,
		Unit:      unitName,
		Category:  info.Category,
		Type:      info.Type,
		Source:    source,
	}
}

// filterByFormulaType drops orders with no formula of the requested type. An
// order with no formulas at all is dropped whenever a specific type is asked
// for.
func filterByFormulaType(input *planInput, typeFilter string) []models.Order {
	if typeFilter == "" || typeFilter == TypeFilterAll {
		return append([]models.Order(nil), input.orders...)
	}

	kept := make([]models.Order, 0, len(input.orders))
	for _, order := range input.orders {
		orderFormulas := input.orderFormulas[order.ID]
		if len(orderFormulas) == 0 {
			continue
		}
		for _, of := range orderFormulas {
			if f, ok := input.formulas[of.FormulaID]; ok && f.TypeTag == typeFilter {
				kept = append(kept, order)
				break
			}
		}
	}
	return kept
}

func warnOnce(plan *Plan, seen map[string]bool, warning QualityWarning) {
	key := fmt.Sprintf("%s:%d", warning.Kind, warning.ProductID)
	if seen[key] {
		return
	}
	seen[key] = true
	plan.Warnings = append(plan.Warnings, warning)
}
