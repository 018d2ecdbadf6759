package repository

import (
	"brunch_planner/internal/models"

	"gorm.io/gorm"
)

type FormulaLineRepository interface {
	Create(line *models.FormulaLine) error
	GetByID(id uint) (*models.FormulaLine, error)
	GetByFormulaID(formulaID uint) ([]models.FormulaLine, error)
	GetByFormulaIDs(formulaIDs []uint) ([]models.FormulaLine, error)
	GetByFormulaAndProduct(formulaID, productID uint) (*models.FormulaLine, error)
	Update(line *models.FormulaLine) error
	Delete(id uint) error
	DeleteByFormulaID(formulaID uint) error
	CountByProductID(productID uint) (int64, error)
	CountByUnitID(unitID uint) (int64, error)
}

type formulaLineRepository struct {
	db *gorm.DB
}

func NewFormulaLineRepository(db *gorm.DB) FormulaLineRepository {
	return &formulaLineRepository{db: db}
}

func (r *formulaLineRepository) Create(line *models.FormulaLine) error {
	return r.db.Create(line).Error
}

func (r *formulaLineRepository) GetByID(id uint) (*models.FormulaLine, error) {
	var line models.FormulaLine
	err := r.db.First(&line, id).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *formulaLineRepository) GetByFormulaID(formulaID uint) ([]models.FormulaLine, error) {
	var lines []models.FormulaLine
	err := r.db.Where("formula_id = ?", formulaID).Find(&lines).Error
	return lines, err
}

// GetByFormulaIDs bulk-fetches the lines of a whole formula set in one query.
func (r *formulaLineRepository) GetByFormulaIDs(formulaIDs []uint) ([]models.FormulaLine, error) {
	if len(formulaIDs) == 0 {
		return nil, nil
	}
	var lines []models.FormulaLine
	err := r.db.Where("formula_id IN ?", formulaIDs).Find(&lines).Error
	return lines, err
}

func (r *formulaLineRepository) GetByFormulaAndProduct(formulaID, productID uint) (*models.FormulaLine, error) {
	var line models.FormulaLine
	err := r.db.Where("formula_id = ? AND product_id = ?", formulaID, productID).First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *formulaLineRepository) Update(line *models.FormulaLine) error {
	return r.db.Save(line).Error
}

func (r *formulaLineRepository) Delete(id uint) error {
	return r.db.Delete(&models.FormulaLine{}, id).Error
}

func (r *formulaLineRepository) DeleteByFormulaID(formulaID uint) error {
	return r.db.Where("formula_id = ?", formulaID).Delete(&models.FormulaLine{}).Error
}

func (r *formulaLineRepository) CountByProductID(productID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.FormulaLine{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *formulaLineRepository) CountByUnitID(unitID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.FormulaLine{}).Where("unit_id = ?", unitID).Count(&count).Error
	return count, err
}
