package services

import (
	"sort"
	"time"

	"brunch_planner/internal/models"
	"brunch_planner/internal/redis"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes so the services can be exercised without a
// database. Each fake mirrors the gorm-backed behavior the services rely on:
// not-found lookups return gorm.ErrRecordNotFound, bulk getters skip unknown
// ids silently.

type fakeProductRepo struct {
	products map[uint]models.Product
	nextID   uint
	err      error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uint]models.Product)}
}

func (f *fakeProductRepo) Create(p *models.Product) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	p.ID = f.nextID
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) GetByID(id uint) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeProductRepo) GetByIDs(ids []uint) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []models.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) GetAll() ([]models.Product, error) {
	var result []models.Product
	for _, p := range f.products {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeProductRepo) Update(p *models.Product) error {
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) Delete(id uint) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) CountByCategoryID(categoryID uint) (int64, error) {
	var count int64
	for _, p := range f.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (f *fakeProductRepo) CountByTypeID(typeID uint) (int64, error) {
	var count int64
	for _, p := range f.products {
		if p.TypeID != nil && *p.TypeID == typeID {
			count++
		}
	}
	return count, nil
}

type fakeCategoryRepo struct {
	categories map[uint]models.Category
	nextID     uint
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uint]models.Category)}
}

func (f *fakeCategoryRepo) Create(c *models.Category) error {
	f.nextID++
	c.ID = f.nextID
	f.categories[c.ID] = *c
	return nil
}

func (f *fakeCategoryRepo) GetByID(id uint) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeCategoryRepo) GetByIDs(ids []uint) ([]models.Category, error) {
	var result []models.Category
	for _, id := range ids {
		if c, ok := f.categories[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeCategoryRepo) GetAll() ([]models.Category, error) {
	var result []models.Category
	for _, c := range f.categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeCategoryRepo) Update(c *models.Category) error {
	f.categories[c.ID] = *c
	return nil
}

func (f *fakeCategoryRepo) Delete(id uint) error {
	delete(f.categories, id)
	return nil
}

type fakeTypeRepo struct {
	types  map[uint]models.ProductType
	nextID uint
}

func newFakeTypeRepo() *fakeTypeRepo {
	return &fakeTypeRepo{types: make(map[uint]models.ProductType)}
}

func (f *fakeTypeRepo) Create(t *models.ProductType) error {
	f.nextID++
	t.ID = f.nextID
	f.types[t.ID] = *t
	return nil
}

func (f *fakeTypeRepo) GetByID(id uint) (*models.ProductType, error) {
	t, ok := f.types[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (f *fakeTypeRepo) GetByIDs(ids []uint) ([]models.ProductType, error) {
	var result []models.ProductType
	for _, id := range ids {
		if t, ok := f.types[id]; ok {
			result = append(result, t)
		}
	}
	return result, nil
}

func (f *fakeTypeRepo) GetAll() ([]models.ProductType, error) {
	var result []models.ProductType
	for _, t := range f.types {
		result = append(result, t)
	}
	return result, nil
}

func (f *fakeTypeRepo) Update(t *models.ProductType) error {
	f.types[t.ID] = *t
	return nil
}

func (f *fakeTypeRepo) Delete(id uint) error {
	delete(f.types, id)
	return nil
}

type fakeUnitRepo struct {
	units  map[uint]models.Unit
	nextID uint
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{units: make(map[uint]models.Unit)}
}

func (f *fakeUnitRepo) Create(u *models.Unit) error {
	f.nextID++
	u.ID = f.nextID
	f.units[u.ID] = *u
	return nil
}

func (f *fakeUnitRepo) GetByID(id uint) (*models.Unit, error) {
	u, ok := f.units[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (f *fakeUnitRepo) GetByIDs(ids []uint) ([]models.Unit, error) {
	var result []models.Unit
	for _, id := range ids {
		if u, ok := f.units[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

func (f *fakeUnitRepo) GetByName(name string) (*models.Unit, error) {
	for _, u := range f.units {
		if u.Name == name {
			unit := u
			return &unit, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUnitRepo) GetAll() ([]models.Unit, error) {
	var result []models.Unit
	for _, u := range f.units {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeUnitRepo) Update(u *models.Unit) error {
	f.units[u.ID] = *u
	return nil
}

func (f *fakeUnitRepo) Delete(id uint) error {
	delete(f.units, id)
	return nil
}

type fakeFormulaRepo struct {
	formulas map[uint]models.Formula
	nextID   uint
}

func newFakeFormulaRepo() *fakeFormulaRepo {
	return &fakeFormulaRepo{formulas: make(map[uint]models.Formula)}
}

func (f *fakeFormulaRepo) Create(formula *models.Formula) error {
	f.nextID++
	formula.ID = f.nextID
	f.formulas[formula.ID] = *formula
	return nil
}

func (f *fakeFormulaRepo) GetByID(id uint) (*models.Formula, error) {
	formula, ok := f.formulas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &formula, nil
}

func (f *fakeFormulaRepo) GetByIDs(ids []uint) ([]models.Formula, error) {
	var result []models.Formula
	for _, id := range ids {
		if formula, ok := f.formulas[id]; ok {
			result = append(result, formula)
		}
	}
	return result, nil
}

func (f *fakeFormulaRepo) GetAll() ([]models.Formula, error) {
	var result []models.Formula
	for _, formula := range f.formulas {
		result = append(result, formula)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeFormulaRepo) GetByTypeTag(typeTag string) ([]models.Formula, error) {
	var result []models.Formula
	for _, formula := range f.formulas {
		if formula.TypeTag == typeTag {
			result = append(result, formula)
		}
	}
	return result, nil
}

func (f *fakeFormulaRepo) Update(formula *models.Formula) error {
	f.formulas[formula.ID] = *formula
	return nil
}

func (f *fakeFormulaRepo) Delete(id uint) error {
	delete(f.formulas, id)
	return nil
}

type fakeFormulaLineRepo struct {
	lines  map[uint]models.FormulaLine
	order  []uint
	nextID uint
}

func newFakeFormulaLineRepo() *fakeFormulaLineRepo {
	return &fakeFormulaLineRepo{lines: make(map[uint]models.FormulaLine)}
}

func (f *fakeFormulaLineRepo) Create(line *models.FormulaLine) error {
	f.nextID++
	line.ID = f.nextID
	f.lines[line.ID] = *line
	f.order = append(f.order, line.ID)
	return nil
}

func (f *fakeFormulaLineRepo) GetByID(id uint) (*models.FormulaLine, error) {
	line, ok := f.lines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &line, nil
}

func (f *fakeFormulaLineRepo) GetByFormulaID(formulaID uint) ([]models.FormulaLine, error) {
	var result []models.FormulaLine
	for _, id := range f.order {
		if line, ok := f.lines[id]; ok && line.FormulaID == formulaID {
			result = append(result, line)
		}
	}
	return result, nil
}

func (f *fakeFormulaLineRepo) GetByFormulaIDs(formulaIDs []uint) ([]models.FormulaLine, error) {
	wanted := make(map[uint]bool, len(formulaIDs))
	for _, id := range formulaIDs {
		wanted[id] = true
	}
	var result []models.FormulaLine
	for _, id := range f.order {
		if line, ok := f.lines[id]; ok && wanted[line.FormulaID] {
			result = append(result, line)
		}
	}
	return result, nil
}

func (f *fakeFormulaLineRepo) GetByFormulaAndProduct(formulaID, productID uint) (*models.FormulaLine, error) {
	for _, line := range f.lines {
		if line.FormulaID == formulaID && line.ProductID == productID {
			found := line
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFormulaLineRepo) Update(line *models.FormulaLine) error {
	f.lines[line.ID] = *line
	return nil
}

func (f *fakeFormulaLineRepo) Delete(id uint) error {
	delete(f.lines, id)
	return nil
}

func (f *fakeFormulaLineRepo) DeleteByFormulaID(formulaID uint) error {
	for id, line := range f.lines {
		if line.FormulaID == formulaID {
			delete(f.lines, id)
		}
	}
	return nil
}

func (f *fakeFormulaLineRepo) CountByProductID(productID uint) (int64, error) {
	var count int64
	for _, line := range f.lines {
		if line.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (f *fakeFormulaLineRepo) CountByUnitID(unitID uint) (int64, error) {
	var count int64
	for _, line := range f.lines {
		if line.UnitID == unitID {
			count++
		}
	}
	return count, nil
}

type fakeOrderRepo struct {
	orders map[uint]models.Order
	nextID uint
	err    error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]models.Order)}
}

func (f *fakeOrderRepo) Create(o *models.Order) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	o.ID = f.nextID
	f.orders[o.ID] = *o
	return nil
}

func (f *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &o, nil
}

func (f *fakeOrderRepo) GetByDateRange(startDate, endDate time.Time) ([]models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []models.Order
	for _, o := range f.orders {
		if o.DeliveryDate.Before(startDate) || o.DeliveryDate.After(endDate) {
			continue
		}
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].DeliveryDate.Equal(result[j].DeliveryDate) {
			return result[i].DeliveryDate.Before(result[j].DeliveryDate)
		}
		return result[i].DeliveryTime < result[j].DeliveryTime
	})
	return result, nil
}

func (f *fakeOrderRepo) Update(o *models.Order) error {
	f.orders[o.ID] = *o
	return nil
}

func (f *fakeOrderRepo) Delete(id uint) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) GetAll() ([]models.Order, error) {
	var result []models.Order
	for _, o := range f.orders {
		result = append(result, o)
	}
	return result, nil
}

type fakeOrderFormulaRepo struct {
	orderFormulas map[uint]models.OrderFormula
	nextID        uint
}

func newFakeOrderFormulaRepo() *fakeOrderFormulaRepo {
	return &fakeOrderFormulaRepo{orderFormulas: make(map[uint]models.OrderFormula)}
}

func (f *fakeOrderFormulaRepo) Create(of *models.OrderFormula) error {
	f.nextID++
	of.ID = f.nextID
	f.orderFormulas[of.ID] = *of
	return nil
}

func (f *fakeOrderFormulaRepo) GetByID(id uint) (*models.OrderFormula, error) {
	of, ok := f.orderFormulas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &of, nil
}

func (f *fakeOrderFormulaRepo) GetByOrderID(orderID uint) ([]models.OrderFormula, error) {
	return f.GetByOrderIDs([]uint{orderID})
}

func (f *fakeOrderFormulaRepo) GetByOrderIDs(orderIDs []uint) ([]models.OrderFormula, error) {
	wanted := make(map[uint]bool, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = true
	}
	var result []models.OrderFormula
	for id := uint(1); id <= f.nextID; id++ {
		if of, ok := f.orderFormulas[id]; ok && wanted[of.OrderID] {
			result = append(result, of)
		}
	}
	return result, nil
}

func (f *fakeOrderFormulaRepo) Update(of *models.OrderFormula) error {
	f.orderFormulas[of.ID] = *of
	return nil
}

func (f *fakeOrderFormulaRepo) Delete(id uint) error {
	delete(f.orderFormulas, id)
	return nil
}

func (f *fakeOrderFormulaRepo) CountByFormulaID(formulaID uint) (int64, error) {
	var count int64
	for _, of := range f.orderFormulas {
		if of.FormulaID == formulaID {
			count++
		}
	}
	return count, nil
}

type fakeOrderProductRepo struct {
	extras map[uint]models.OrderExtraProduct
	nextID uint
}

func newFakeOrderProductRepo() *fakeOrderProductRepo {
	return &fakeOrderProductRepo{extras: make(map[uint]models.OrderExtraProduct)}
}

func (f *fakeOrderProductRepo) Create(e *models.OrderExtraProduct) error {
	f.nextID++
	e.ID = f.nextID
	f.extras[e.ID] = *e
	return nil
}

func (f *fakeOrderProductRepo) GetByID(id uint) (*models.OrderExtraProduct, error) {
	e, ok := f.extras[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (f *fakeOrderProductRepo) GetByOrderID(orderID uint) ([]models.OrderExtraProduct, error) {
	return f.GetByOrderIDs([]uint{orderID})
}

func (f *fakeOrderProductRepo) GetByOrderIDs(orderIDs []uint) ([]models.OrderExtraProduct, error) {
	wanted := make(map[uint]bool, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = true
	}
	var result []models.OrderExtraProduct
	for id := uint(1); id <= f.nextID; id++ {
		if e, ok := f.extras[id]; ok && wanted[e.OrderID] {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeOrderProductRepo) GetByOrderAndProduct(orderID, productID uint) (*models.OrderExtraProduct, error) {
	for _, e := range f.extras {
		if e.OrderID == orderID && e.ProductID == productID {
			found := e
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderProductRepo) Update(e *models.OrderExtraProduct) error {
	f.extras[e.ID] = *e
	return nil
}

func (f *fakeOrderProductRepo) Delete(id uint) error {
	delete(f.extras, id)
	return nil
}

func (f *fakeOrderProductRepo) CountByProductID(productID uint) (int64, error) {
	var count int64
	for _, e := range f.extras {
		if e.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderProductRepo) CountByUnitID(unitID uint) (int64, error) {
	var count int64
	for _, e := range f.extras {
		if e.UnitID == unitID {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]models.User)}
}

func (f *fakeUserRepo) Create(u *models.User) error {
	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetAll() ([]models.User, error) {
	var result []models.User
	for _, u := range f.users {
		result = append(result, u)
	}
	return result, nil
}

func (f *fakeUserRepo) Update(u *models.User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) Delete(id uint) error {
	delete(f.users, id)
	return nil
}

// fakeExpansionCache is a map-backed ExpansionCache for memoization tests,
// keyed (formula id, headcount) like the redis implementation.
type cacheKey struct {
	formulaID uint
	headcount string
}

type fakeExpansionCache struct {
	entries map[cacheKey][]ExpandedLine
}

func newFakeExpansionCache() *fakeExpansionCache {
	return &fakeExpansionCache{entries: make(map[cacheKey][]ExpandedLine)}
}

func (c *fakeExpansionCache) GetExpansion(formulaID uint, headcount string, dest interface{}) error {
	lines, ok := c.entries[cacheKey{formulaID, headcount}]
	if !ok {
		return redis.ErrNotFound
	}
	*dest.(*[]ExpandedLine) = lines
	return nil
}

func (c *fakeExpansionCache) SetExpansion(formulaID uint, headcount string, value interface{}, ttl time.Duration) error {
	c.entries[cacheKey{formulaID, headcount}] = value.([]ExpandedLine)
	return nil
}

func (c *fakeExpansionCache) InvalidateExpansions(formulaID uint) error {
	for key := range c.entries {
		if key.formulaID == formulaID {
			delete(c.entries, key)
		}
	}
	return nil
}

// fixture wires every fake repository into the services under test.
type fixture struct {
	products      *fakeProductRepo
	categories    *fakeCategoryRepo
	types         *fakeTypeRepo
	units         *fakeUnitRepo
	formulas      *fakeFormulaRepo
	formulaLines  *fakeFormulaLineRepo
	orders        *fakeOrderRepo
	orderFormulas *fakeOrderFormulaRepo
	extras        *fakeOrderProductRepo

	catalog CatalogService
}

func newFixture() *fixture {
	f := &fixture{
		products:      newFakeProductRepo(),
		categories:    newFakeCategoryRepo(),
		types:         newFakeTypeRepo(),
		units:         newFakeUnitRepo(),
		formulas:      newFakeFormulaRepo(),
		formulaLines:  newFakeFormulaLineRepo(),
		orders:        newFakeOrderRepo(),
		orderFormulas: newFakeOrderFormulaRepo(),
		extras:        newFakeOrderProductRepo(),
	}
	f.catalog = NewCatalogService(f.products, f.categories, f.types, f.units, f.formulaLines, f.extras)
	return f
}

func (f *fixture) formulaService(cache ExpansionCache) FormulaService {
	return NewFormulaService(f.formulas, f.formulaLines, f.products, f.units, f.orderFormulas, cache, time.Minute)
}

func (f *fixture) orderService() OrderService {
	return NewOrderService(f.orders, f.orderFormulas, f.extras, f.formulas, f.products, f.units)
}

func (f *fixture) planningService(keepZeroLines bool) PlanningService {
	return NewPlanningService(f.orders, f.orderFormulas, f.extras, f.formulas, f.formulaLines, f.catalog, keepZeroLines)
}

func (f *fixture) addCategory(name string) models.Category {
	category := models.Category{Name: name}
	f.categories.Create(&category)
	return category
}

func (f *fixture) addUnit(name string) models.Unit {
	unit := models.Unit{Name: name}
	f.units.Create(&unit)
	return unit
}

func (f *fixture) addProduct(name string, categoryID *uint) models.Product {
	product := models.Product{Name: name, CategoryID: categoryID}
	f.products.Create(&product)
	return product
}

func (f *fixture) addFormula(name, typeTag string) models.Formula {
	formula := models.Formula{Name: name, TypeTag: typeTag}
	f.formulas.Create(&formula)
	return formula
}

func (f *fixture) addFormulaLine(formulaID, productID uint, perGuest string, unitID uint) models.FormulaLine {
	line := models.FormulaLine{
		FormulaID:        formulaID,
		ProductID:        productID,
		QuantityPerGuest: decimal.RequireFromString(perGuest),
		UnitID:           unitID,
	}
	f.formulaLines.Create(&line)
	return line
}

func (f *fixture) addOrder(client string, headcount int, date, timeOfDay string) models.Order {
	order := models.Order{
		ClientName:   client,
		Headcount:    headcount,
		DeliveryDate: mustDate(date),
		DeliveryTime: timeOfDay,
	}
	f.orders.Create(&order)
	return order
}

func (f *fixture) attachFormula(orderID, formulaID uint, finalized string) models.OrderFormula {
	of := models.OrderFormula{
		OrderID:            orderID,
		FormulaID:          formulaID,
		FinalizedHeadcount: decimal.RequireFromString(finalized),
	}
	f.orderFormulas.Create(&of)
	return of
}

func (f *fixture) addExtra(orderID, productID uint, quantity string, unitID uint) models.OrderExtraProduct {
	extra := models.OrderExtraProduct{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  decimal.RequireFromString(quantity),
		UnitID:    unitID,
	}
	f.extras.Create(&extra)
	return extra
}

func mustDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}
