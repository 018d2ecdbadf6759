package services

import (
	"errors"
	"sort"
	"time"

	"brunch_planner/internal/models"
	"brunch_planner/internal/repository"

	"github.com/shopspring/decimal"
)

// ExpandedLine is one product line implied by a formula at a given headcount:
// quantity = quantity_per_guest × headcount.
type ExpandedLine struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitID      uint            `json:"unit_id"`
	UnitName    string          `json:"unit_name"`
}

// ExpansionCache memoizes Expand results keyed by (formula id, headcount).
// The redis client implements it; passing nil disables memoization.
type ExpansionCache interface {
	GetExpansion(formulaID uint, headcount string, dest interface{}) error
	SetExpansion(formulaID uint, headcount string, value interface{}, ttl time.Duration) error
	InvalidateExpansions(formulaID uint) error
}

var ErrNegativeHeadcount = errors.New("headcount must be non-negative")

type FormulaService interface {
	CreateFormula(formula *models.Formula) error
	GetFormula(id uint) (*models.Formula, error)
	GetAllFormulas() ([]models.Formula, error)
	GetFormulasByType(typeTag string) ([]models.Formula, error)
	UpdateFormula(formula *models.Formula) error
	DeleteFormula(id uint) error

	AddLine(formulaID, productID uint, quantityPerGuest decimal.Decimal, unitID uint) (*models.FormulaLine, error)
	GetLine(lineID uint) (*models.FormulaLine, error)
	GetLines(formulaID uint) ([]models.FormulaLine, error)
	UpdateLine(line *models.FormulaLine) error
	DeleteLine(lineID uint) error

	Expand(formulaID uint, headcount decimal.Decimal) ([]ExpandedLine, error)
}

type formulaService struct {
	formulaRepo      repository.FormulaRepository
	lineRepo         repository.FormulaLineRepository
	productRepo      repository.ProductRepository
	unitRepo         repository.UnitRepository
	orderFormulaRepo repository.OrderFormulaRepository
	cache            ExpansionCache
	cacheTTL         time.Duration
}

func NewFormulaService(
	formulaRepo repository.FormulaRepository,
	lineRepo repository.FormulaLineRepository,
	productRepo repository.ProductRepository,
	unitRepo repository.UnitRepository,
	orderFormulaRepo repository.OrderFormulaRepository,
	cache ExpansionCache,
	cacheTTL time.Duration,
) FormulaService {
	return &formulaService{
		formulaRepo:      formulaRepo,
		lineRepo:         lineRepo,
		productRepo:      productRepo,
		unitRepo:         unitRepo,
		orderFormulaRepo: orderFormulaRepo,
		cache:            cache,
		cacheTTL:         cacheTTL,
	}
}

func (s *formulaService) CreateFormula(formula *models.Formula) error {
	return s.formulaRepo.Create(formula)
}

func (s *formulaService) GetFormula(id uint) (*models.Formula, error) {
	return s.formulaRepo.GetByID(id)
}

func (s *formulaService) GetAllFormulas() ([]models.Formula, error) {
	return s.formulaRepo.GetAll()
}

func (s *formulaService) GetFormulasByType(typeTag string) ([]models.Formula, error) {
	return s.formulaRepo.GetByTypeTag(typeTag)
}

func (s *formulaService) UpdateFormula(formula *models.Formula) error {
	return s.formulaRepo.Update(formula)
}

// DeleteFormula refuses to delete a formula still attached to an order, then
// removes the formula together with its lines.
func (s *formulaService) DeleteFormula(id uint) error {
	count, err := s.orderFormulaRepo.CountByFormulaID(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("formula is attached to orders")
	}

	if err := s.lineRepo.DeleteByFormulaID(id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidateExpansions(id)
	}
	return s.formulaRepo.Delete(id)
}

// AddLine rejects a second line for the same product within one formula.
func (s *formulaService) AddLine(formulaID, productID uint, quantityPerGuest decimal.Decimal, unitID uint) (*models.FormulaLine, error) {
	if existing, err := s.lineRepo.GetByFormulaAndProduct(formulaID, productID); err == nil && existing != nil {
		return nil, errors.New("product already in formula")
	}

	line := &models.FormulaLine{
		FormulaID:        formulaID,
		ProductID:        productID,
		QuantityPerGuest: quantityPerGuest,
		UnitID:           unitID,
	}
	if err := s.lineRepo.Create(line); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.InvalidateExpansions(formulaID)
	}
	return line, nil
}

func (s *formulaService) GetLine(lineID uint) (*models.FormulaLine, error) {
	return s.lineRepo.GetByID(lineID)
}

func (s *formulaService) GetLines(formulaID uint) ([]models.FormulaLine, error) {
	return s.lineRepo.GetByFormulaID(formulaID)
}

func (s *formulaService) UpdateLine(line *models.FormulaLine) error {
	if err := s.lineRepo.Update(line); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidateExpansions(line.FormulaID)
	}
	return nil
}

func (s *formulaService) DeleteLine(lineID uint) error {
	line, err := s.lineRepo.GetByID(lineID)
	if err != nil {
		return err
	}
	if err := s.lineRepo.Delete(lineID); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidateExpansions(line.FormulaID)
	}
	return nil
}

// Expand scales every line of the formula by headcount and returns the result
// sorted by product name. An unknown formula expands to an empty list; a
// headcount of zero yields zero quantities. Results are memoized when a cache
// is configured.
func (s *formulaService) Expand(formulaID uint, headcount decimal.Decimal) ([]ExpandedLine, error) {
	if headcount.IsNegative() {
		return nil, ErrNegativeHeadcount
	}

	cacheKey := headcount.String()
	if s.cache != nil {
		var cached []ExpandedLine
		if err := s.cache.GetExpansion(formulaID, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	lines, err := s.lineRepo.GetByFormulaID(formulaID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []ExpandedLine{}, nil
	}

	productIDs := make([]uint, 0, len(lines))
	unitIDs := make([]uint, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
		unitIDs = append(unitIDs, line.UnitID)
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

	expanded := make([]ExpandedLine, 0, len(lines))
	for _, line := range lines {
		name, ok := productNames[line.ProductID]
		if !ok {
			name = models.UnknownProductLabel
		}
		expanded = append(expanded, ExpandedLine{
			ProductID:   line.ProductID,
			ProductName: name,
			Quantity:    line.QuantityPerGuest.Mul(headcount),
			UnitID:      line.UnitID,
			UnitName:    unitNames[line.UnitID],
		})
	}

	sort.Slice(expanded, func(i, j int) bool {
		if expanded[i].ProductName != expanded[j].ProductName {
			return expanded[i].ProductName < expanded[j].ProductName
		}
		return expanded[i].ProductID < expanded[j].ProductID
	})

	if s.cache != nil {
		s.cache.SetExpansion(formulaID, cacheKey, expanded, s.cacheTTL)
	}
	return expanded, nil
}
