package repository

import (
	"brunch_planner/internal/models"

	"gorm.io/gorm"
)

type OrderFormulaRepository interface {
	Create(orderFormula *models.OrderFormula) error
	GetByID(id uint) (*models.OrderFormula, error)
	GetByOrderID(orderID uint) ([]models.OrderFormula, error)
	GetByOrderIDs(orderIDs []uint) ([]models.OrderFormula, error)
	Update(orderFormula *models.OrderFormula) error
	Delete(id uint) error
	CountByFormulaID(formulaID uint) (int64, error)
}

type orderFormulaRepository struct {
	db *gorm.DB
}

func NewOrderFormulaRepository(db *gorm.DB) OrderFormulaRepository {
	return &orderFormulaRepository{db: db}
}

func (r *orderFormulaRepository) Create(orderFormula *models.OrderFormula) error {
	return r.db.Create(orderFormula).Error
}

func (r *orderFormulaRepository) GetByID(id uint) (*models.OrderFormula, error) {
	var orderFormula models.OrderFormula
	err := r.db.First(&orderFormula, id).Error
	if err != nil {
		return nil, err
	}
	return &orderFormula, nil
}

func (r *orderFormulaRepository) GetByOrderID(orderID uint) ([]models.OrderFormula, error) {
	var orderFormulas []models.OrderFormula
	err := r.db.Where("order_id = ?", orderID).Find(&orderFormulas).Error
	return orderFormulas, err
}

// GetByOrderIDs bulk-fetches the formula associations for a whole order set in
// one query; the planner joins them in memory.
func (r *orderFormulaRepository) GetByOrderIDs(orderIDs []uint) ([]models.OrderFormula, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var orderFormulas []models.OrderFormula
	err := r.db.Where("order_id IN ?", orderIDs).Find(&orderFormulas).Error
	return orderFormulas, err
}

func (r *orderFormulaRepository) Update(orderFormula *models.OrderFormula) error {
	return r.db.Save(orderFormula).Error
}

func (r *orderFormulaRepository) Delete(id uint) error {
	return r.db.Delete(&models.OrderFormula{}, id).Error
}

func (r *orderFormulaRepository) CountByFormulaID(formulaID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderFormula{}).Where("formula_id = ?", formulaID).Count(&count).Error
	return count, err
}
