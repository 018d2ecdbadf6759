package repository

import (
	"brunch_planner/internal/models"

	"gorm.io/gorm"
)

type FormulaRepository interface {
	Create(formula *models.Formula) error
	GetByID(id uint) (*models.Formula, error)
	GetByIDs(ids []uint) ([]models.Formula, error)
	GetAll() ([]models.Formula, error)
	GetByTypeTag(typeTag string) ([]models.Formula, error)
	Update(formula *models.Formula) error
	Delete(id uint) error
}

type formulaRepository struct {
	db *gorm.DB
}

func NewFormulaRepository(db *gorm.DB) FormulaRepository {
	return &formulaRepository{db: db}
}

func (r *formulaRepository) Create(formula *models.Formula) error {
	return r.db.Create(formula).Error
}

func (r *formulaRepository) GetByID(id uint) (*models.Formula, error) {
	var formula models.Formula
	err := r.db.First(&formula, id).Error
	if err != nil {
		return nil, err
	}
	return &formula, nil
}

func (r *formulaRepository) GetByIDs(ids []uint) ([]models.Formula, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var formulas []models.Formula
	err := r.db.Where("id IN ?", ids).Find(&formulas).Error
	return formulas, err
}

func (r *formulaRepository) GetAll() ([]models.Formula, error) {
	var formulas []models.Formula
	err := r.db.Order("name").Find(&formulas).Error
	return formulas, err
}

func (r *formulaRepository) GetByTypeTag(typeTag string) ([]models.Formula, error) {
	var formulas []models.Formula
	err := r.db.Where("type_tag = ?", typeTag).Order("name").Find(&formulas).Error
	return formulas, err
}

func (r *formulaRepository) Update(formula *models.Formula) error {
	return r.db.Save(formula).Error
}

func (r *formulaRepository) Delete(id uint) error {
	return r.db.Delete(&models.Formula{}, id).Error
}
