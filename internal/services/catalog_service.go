package services

import (
	"errors"

	"brunch_planner/internal/models"
	"brunch_planner/internal/repository"
)

// ProductInfo is the fully resolved catalog view of a product: the category
// and type names are already joined in, with sentinel labels where the
// product carries no classification.
type ProductInfo struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Type      string `json:"type"`
}

type CatalogService interface {
	CreateProduct(product *models.Product) error
	GetProduct(id uint) (*models.Product, error)
	GetAllProducts() ([]models.Product, error)
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uint) error

	CreateCategory(category *models.Category) error
	GetAllCategories() ([]models.Category, error)
	UpdateCategory(category *models.Category) error
	DeleteCategory(id uint) error

	CreateProductType(productType *models.ProductType) error
	GetAllProductTypes() ([]models.ProductType, error)
	UpdateProductType(productType *models.ProductType) error
	DeleteProductType(id uint) error

	CreateUnit(unit *models.Unit) error
	GetAllUnits() ([]models.Unit, error)
	UpdateUnit(unit *models.Unit) error
	DeleteUnit(id uint) error

	LookupProducts(ids []uint) (map[uint]ProductInfo, error)
	LookupUnits(ids []uint) (map[uint]string, error)
}

type catalogService struct {
	productRepo     repository.ProductRepository
	categoryRepo    repository.CategoryRepository
	typeRepo        repository.ProductTypeRepository
	unitRepo        repository.UnitRepository
	formulaLineRepo repository.FormulaLineRepository
	orderProdRepo   repository.OrderProductRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	typeRepo repository.ProductTypeRepository,
	unitRepo repository.UnitRepository,
	formulaLineRepo repository.FormulaLineRepository,
	orderProdRepo repository.OrderProductRepository,
) CatalogService {
	return &catalogService{
		productRepo:     productRepo,
		categoryRepo:    categoryRepo,
		typeRepo:        typeRepo,
		unitRepo:        unitRepo,
		formulaLineRepo: formulaLineRepo,
		orderProdRepo:   orderProdRepo,
	}
}

func (s *catalogService) CreateProduct(product *models.Product) error {
	return s.productRepo.Create(product)
}

func (s *catalogService) GetProduct(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

func (s *catalogService) GetAllProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

func (s *catalogService) UpdateProduct(product *models.Product) error {
	return s.productRepo.Update(product)
}

// DeleteProduct refuses to delete a product still referenced by a formula
// line or an order line.
func (s *catalogService) DeleteProduct(id uint) error {
	lineCount, err := s.formulaLineRepo.CountByProductID(id)
	if err != nil {
		return err
	}
	if lineCount > 0 {
		return errors.New("product is used by a formula")
	}

	extraCount, err := s.orderProdRepo.CountByProductID(id)
	if err != nil {
		return err
	}
	if extraCount > 0 {
		return errors.New("product is used by an order")
	}

	return s.productRepo.Delete(id)
}

func (s *catalogService) CreateCategory(category *models.Category) error {
	return s.categoryRepo.Create(category)
}

func (s *catalogService) GetAllCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

func (s *catalogService) UpdateCategory(category *models.Category) error {
	return s.categoryRepo.Update(category)
}

func (s *catalogService) DeleteCategory(id uint) error {
	count, err := s.productRepo.CountByCategoryID(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("category is assigned to products")
	}
	return s.categoryRepo.Delete(id)
}

func (s *catalogService) CreateProductType(productType *models.ProductType) error {
	return s.typeRepo.Create(productType)
}

func (s *catalogService) GetAllProductTypes() ([]models.ProductType, error) {
	return s.typeRepo.GetAll()
}

func (s *catalogService) UpdateProductType(productType *models.ProductType) error {
	return s.typeRepo.Update(productType)
}

func (s *catalogService) DeleteProductType(id uint) error {
	count, err := s.productRepo.CountByTypeID(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("type is assigned to products")
	}
	return s.typeRepo.Delete(id)
}

func (s *catalogService) CreateUnit(unit *models.Unit) error {
	return s.unitRepo.Create(unit)
}

func (s *catalogService) GetAllUnits() ([]models.Unit, error) {
	return s.unitRepo.GetAll()
}

func (s *catalogService) UpdateUnit(unit *models.Unit) error {
	return s.unitRepo.Update(unit)
}

func (s *catalogService) DeleteUnit(id uint) error {
	lineCount, err := s.formulaLineRepo.CountByUnitID(id)
	if err != nil {
		return err
	}
	if lineCount > 0 {
		return errors.New("unit is used by a formula line")
	}

	extraCount, err := s.orderProdRepo.CountByUnitID(id)
	if err != nil {
		return err
	}
	if extraCount > 0 {
		return errors.New("unit is used by an order line")
	}

	return s.unitRepo.Delete(id)
}

// LookupProducts bulk-resolves product ids to their display name and
// classification names in three queries, joined in memory. Ids that resolve to
// nothing are simply absent from the result; callers decide how to handle them.
func (s *catalogService) LookupProducts(ids []uint) (map[uint]ProductInfo, error) {
	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	categoryIDs := make([]uint, 0)
	typeIDs := make([]uint, 0)
	for _, p := range products {
		if p.CategoryID != nil {
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
		if p.TypeID != nil {
			typeIDs = append(typeIDs, *p.TypeID)
		}
	}

	categories, err := s.categoryRepo.GetByIDs(categoryIDs)
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[uint]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	types, err := s.typeRepo.GetByIDs(typeIDs)
	if err != nil {
		return nil, err
	}
	typeNames := make(map[uint]string, len(types))
	for _, t := range types {
		typeNames[t.ID] = t.Name
	}

	infos := make(map[uint]ProductInfo, len(products))
	for _, p := range products {
		info := ProductInfo{
			ProductID: p.ID,
			Name:      p.Name,
			Category:  models.UncategorizedLabel,
			Type:      models.UntypedLabel,
		}
		if p.CategoryID != nil {
			if name, ok := categoryNames[*p.CategoryID]; ok {
				info.Category = name
			}
		}
		if p.TypeID != nil {
			if name, ok := typeNames[*p.TypeID]; ok {
				info.Type = name
			}
		}
		infos[p.ID] = info
	}
	return infos, nil
}

func (s *catalogService) LookupUnits(ids []uint) (map[uint]string, error) {
	units, err := s.unitRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(units))
	for _, u := range units {
		names[u.ID] = u.Name
	}
	return names, nil
}
