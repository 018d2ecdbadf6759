package services

import (
	"errors"
	"time"

	"brunch_planner/internal/models"
	"brunch_planner/internal/repository"

	"github.com/shopspring/decimal"
)

// AttachedFormula is an order's view of one applied formula. The finalized
// headcount drives the quantity math; the recommended one is an audit trail.
type AttachedFormula struct {
	ID                   uint            `json:"id"`
	FormulaID            uint            `json:"formula_id"`
	FormulaName          string          `json:"formula_name"`
	TypeTag              string          `json:"type_tag"`
	RecommendedHeadcount decimal.Decimal `json:"recommended_headcount"`
	FinalizedHeadcount   decimal.Decimal `json:"finalized_headcount"`
}

// OrderContent is the resolved composition of one order: its directly attached
// extra products and its applied formulas. Both lists are empty for a missing
// order, never nil.
type OrderContent struct {
	ExtraProducts []ExpandedLine    `json:"extra_products"`
	Formulas      []AttachedFormula `json:"formulas"`
}

type OrderService interface {
	CreateOrder(order *models.Order) error
	GetOrder(id uint) (*models.Order, error)
	GetAllOrders() ([]models.Order, error)
	GetOrdersByDateRange(startDate, endDate time.Time) ([]models.Order, error)
	UpdateOrder(order *models.Order) error
	DeleteOrder(id uint) error

	AttachFormula(orderID, formulaID uint, finalizedHeadcount decimal.Decimal) (*models.OrderFormula, error)
	UpdateAttachedFormula(orderFormulaID uint, finalizedHeadcount decimal.Decimal) error
	DetachFormula(orderFormulaID uint) error

	AddExtraProduct(orderID, productID uint, quantity decimal.Decimal, unitID uint) (*models.OrderExtraProduct, error)
	UpdateExtraProduct(extraID uint, quantity decimal.Decimal, unitID uint) error
	RemoveExtraProduct(extraID uint) error

	ResolveContent(orderID uint) (*OrderContent, error)
}

type orderService struct {
	orderRepo        repository.OrderRepository
	orderFormulaRepo repository.OrderFormulaRepository
	orderProdRepo    repository.OrderProductRepository
	formulaRepo      repository.FormulaRepository
	productRepo      repository.ProductRepository
	unitRepo         repository.UnitRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	orderFormulaRepo repository.OrderFormulaRepository,
	orderProdRepo repository.OrderProductRepository,
	formulaRepo repository.FormulaRepository,
	productRepo repository.ProductRepository,
	unitRepo repository.UnitRepository,
) OrderService {
	return &orderService{
		orderRepo:        orderRepo,
		orderFormulaRepo: orderFormulaRepo,
		orderProdRepo:    orderProdRepo,
		formulaRepo:      formulaRepo,
		productRepo:      productRepo,
		unitRepo:         unitRepo,
	}
}

func (s *orderService) CreateOrder(order *models.Order) error {
	return s.orderRepo.Create(order)
}

func (s *orderService) GetOrder(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

func (s *orderService) GetOrdersByDateRange(startDate, endDate time.Time) ([]models.Order, error) {
	return s.orderRepo.GetByDateRange(startDate, endDate)
}

func (s *orderService) UpdateOrder(order *models.Order) error {
	return s.orderRepo.Update(order)
}

// DeleteOrder removes the order together with its content lines.
func (s *orderService) DeleteOrder(id uint) error {
	orderFormulas, err := s.orderFormulaRepo.GetByOrderID(id)
	if err != nil {
		return err
	}
	for _, of := range orderFormulas {
		if err := s.orderFormulaRepo.Delete(of.ID); err != nil {
			return err
		}
	}

	extras, err := s.orderProdRepo.GetByOrderID(id)
	if err != nil {
		return err
	}
	for _, extra := range extras {
		if err := s.orderProdRepo.Delete(extra.ID); err != nil {
			return err
		}
	}

	return s.orderRepo.Delete(id)
}

// AttachFormula applies a formula to an order. The order's own headcount is
// recorded as the recommendation; the finalized headcount is what the planner
// scales by.
func (s *orderService) AttachFormula(orderID, formulaID uint, finalizedHeadcount decimal.Decimal) (*models.OrderFormula, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if _, err := s.formulaRepo.GetByID(formulaID); err != nil {
		return nil, errors.New("formula not found")
	}

	orderFormula := &models.OrderFormula{
		OrderID:              orderID,
		FormulaID:            formulaID,
		RecommendedHeadcount: decimal.NewFromInt(int64(order.Headcount)),
		FinalizedHeadcount:   finalizedHeadcount,
	}
	if err := s.orderFormulaRepo.Create(orderFormula); err != nil {
		return nil, err
	}
	return orderFormula, nil
}

func (s *orderService) UpdateAttachedFormula(orderFormulaID uint, finalizedHeadcount decimal.Decimal) error {
	orderFormula, err := s.orderFormulaRepo.GetByID(orderFormulaID)
	if err != nil {
		return err
	}
	orderFormula.FinalizedHeadcount = finalizedHeadcount
	return s.orderFormulaRepo.Update(orderFormula)
}

func (s *orderService) DetachFormula(orderFormulaID uint) error {
	return s.orderFormulaRepo.Delete(orderFormulaID)
}

// AddExtraProduct rejects a second line for the same product within one order.
func (s *orderService) AddExtraProduct(orderID, productID uint, quantity decimal.Decimal, unitID uint) (*models.OrderExtraProduct, error) {
	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		return nil, errors.New("order not found")
	}
	if existing, err := s.orderProdRepo.GetByOrderAndProduct(orderID, productID); err == nil && existing != nil {
		return nil, errors.New("product already on order")
	}

	extra := &models.OrderExtraProduct{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitID:    unitID,
	}
	if err := s.orderProdRepo.Create(extra); err != nil {
		return nil, err
	}
	return extra, nil
}

func (s *orderService) UpdateExtraProduct(extraID uint, quantity decimal.Decimal, unitID uint) error {
	extra, err := s.orderProdRepo.GetByID(extraID)
	if err != nil {
		return err
	}
	extra.Quantity = quantity
	extra.UnitID = unitID
	return s.orderProdRepo.Update(extra)
}

func (s *orderService) RemoveExtraProduct(extraID uint) error {
	return s.orderProdRepo.Delete(extraID)
}

// ResolveContent returns the two content streams of an order. A missing order
// resolves to an empty-shaped result so callers can iterate uniformly.
func (s *orderService) ResolveContent(orderID uint) (*OrderContent, error) {
	content := &OrderContent{
		ExtraProducts: []ExpandedLine{},
		Formulas:      []AttachedFormula{},
	}

	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		return content, nil
	}

	extras, err := s.orderProdRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	orderFormulas, err := s.orderFormulaRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uint, 0, len(extras))
	unitIDs := make([]uint, 0, len(extras))
	for _, extra := range extras {
		productIDs = append(productIDs, extra.ProductID)
		unitIDs = append(unitIDs, extra.UnitID)
	}
	formulaIDs := make([]uint, 0, len(orderFormulas))
	for _, of := range orderFormulas {
		formulaIDs = append(formulaIDs, of.FormulaID)
	}

	products, err := s.productRepo.GetByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	productNames := make(map[uint]string, len(products))
	for _, p := range products {
		productNames[p.ID] = p.Name
	}

	units, err := s.unitRepo.GetByIDs(unitIDs)
	if err != nil {
		return nil, err
	}
	unitNames := make(map[uint]string, len(units))
	for _, u := range units {
		unitNames[u.ID] = u.Name
	}

	formulas, err := s.formulaRepo.GetByIDs(formulaIDs)
	if err != nil {
		return nil, err
	}
	formulaByID := make(map[uint]models.Formula, len(formulas))
	for _, f := range formulas {
		formulaByID[f.ID] = f
	}

	for _, extra := range extras {
		name, ok := productNames[extra.ProductID]
		if !ok {
			name = models.UnknownProductLabel
		}
		content.ExtraProducts = append(content.ExtraProducts, ExpandedLine{
			ProductID:   extra.ProductID,
			ProductName: name,
			Quantity:    extra.Quantity,
			UnitID:      extra.UnitID,
			UnitName:    unitNames[extra.UnitID],
		})
	}

	for _, of := range orderFormulas {
		attached := AttachedFormula{
			ID:                   of.ID,
			FormulaID:            of.FormulaID,
			RecommendedHeadcount: of.RecommendedHeadcount,
			FinalizedHeadcount:   of.FinalizedHeadcount,
		}
		if f, ok := formulaByID[of.FormulaID]; ok {
			attached.FormulaName = f.Name
			attached.TypeTag = f.TypeTag
		}
		content.Formulas = append(content.Formulas, attached)
	}

	return content, nil
}
