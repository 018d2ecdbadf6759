package repository

import (
	"brunch_planner/internal/models"

	"gorm.io/gorm"
)

type ProductTypeRepository interface {
	Create(productType *models.ProductType) error
	GetByID(id uint) (*models.ProductType, error)
	GetByIDs(ids []uint) ([]models.ProductType, error)
	GetAll() ([]models.ProductType, error)
	Update(productType *models.ProductType) error
	Delete(id uint) error
}

type productTypeRepository struct {
	db *gorm.DB
}

func NewProductTypeRepository(db *gorm.DB) ProductTypeRepository {
	return &productTypeRepository{db: db}
}

func (r *productTypeRepository) Create(productType *models.ProductType) error {
	return r.db.Create(productType).Error
}

func (r *productTypeRepository) GetByID(id uint) (*models.ProductType, error) {
	var productType models.ProductType
	err := r.db.First(&productType, id).Error
	if err != nil {
		return nil, err
	}
	return &productType, nil
}

func (r *productTypeRepository) GetByIDs(ids []uint) ([]models.ProductType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var productTypes []models.ProductType
	err := r.db.Where("id IN ?", ids).Find(&productTypes).Error
	return productTypes, err
}

func (r *productTypeRepository) GetAll() ([]models.ProductType, error) {
	var productTypes []models.ProductType
	err := r.db.Order("name").Find(&productTypes).Error
	return productTypes, err
}

func (r *productTypeRepository) Update(productType *models.ProductType) error {
	return r.db.Save(productType).Error
}

func (r *productTypeRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductType{}, id).Error
}
