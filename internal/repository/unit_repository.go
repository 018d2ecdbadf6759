package repository

import (
	"brunch_planner/internal/models"

	"gorm.io/gorm"
)

type UnitRepository interface {
	Create(unit *models.Unit) error
	GetByID(id uint) (*models.Unit, error)
	GetByIDs(ids []uint) ([]models.Unit, error)
	GetByName(name string) (*models.Unit, error)
	GetAll() ([]models.Unit, error)
	Update(unit *models.Unit) error
	Delete(id uint) error
}

type unitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) Create(unit *models.Unit) error {
	return r.db.Create(unit).Error
}

func (r *unitRepository) GetByID(id uint) (*models.Unit, error) {
	var unit models.Unit
	err := r.db.First(&unit, id).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) GetByIDs(ids []uint) ([]models.Unit, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var units []models.Unit
	err := r.db.Where("id IN ?", ids).Find(&units).Error
	return units, err
}

func (r *unitRepository) GetByName(name string) (*models.Unit, error) {
	var unit models.Unit
	err := r.db.Where("name = ?", name).First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) GetAll() ([]models.Unit, error) {
	var units []models.Unit
	err := r.db.Order("id").Find(&units).Error
	return units, err
}

func (r *unitRepository) Update(unit *models.Unit) error {
	return r.db.Save(unit).Error
}

func (r *unitRepository) Delete(id uint) error {
	return r.db.Delete(&models.Unit{}, id).Error
}
