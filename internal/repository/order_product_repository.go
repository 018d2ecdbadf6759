package repository

import (
	"brunch_planner/internal/models"

	"gorm.io/gorm"
)

type OrderProductRepository interface {
	Create(extra *models.OrderExtraProduct) error
	GetByID(id uint) (*models.OrderExtraProduct, error)
	GetByOrderID(orderID uint) ([]models.OrderExtraProduct, error)
	GetByOrderIDs(orderIDs []uint) ([]models.OrderExtraProduct, error)
	GetByOrderAndProduct(orderID, productID uint) (*models.OrderExtraProduct, error)
	Update(extra *models.OrderExtraProduct) error
	Delete(id uint) error
	CountByProductID(productID uint) (int64, error)
	CountByUnitID(unitID uint) (int64, error)
}

type orderProductRepository struct {
	db *gorm.DB
}

func NewOrderProductRepository(db *gorm.DB) OrderProductRepository {
	return &orderProductRepository{db: db}
}

func (r *orderProductRepository) Create(extra *models.OrderExtraProduct) error {
	return r.db.Create(extra).Error
}

func (r *orderProductRepository) GetByID(id uint) (*models.OrderExtraProduct, error) {
	var extra models.OrderExtraProduct
	err := r.db.First(&extra, id).Error
	if err != nil {
		return nil, err
	}
	return &extra, nil
}

func (r *orderProductRepository) GetByOrderID(orderID uint) ([]models.OrderExtraProduct, error) {
	var extras []models.OrderExtraProduct
	err := r.db.Where("order_id = ?", orderID).Find(&extras).Error
	return extras, err
}

func (r *orderProductRepository) GetByOrderIDs(orderIDs []uint) ([]models.OrderExtraProduct, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var extras []models.OrderExtraProduct
	err := r.db.Where("order_id IN ?", orderIDs).Find(&extras).Error
	return extras, err
}

func (r *orderProductRepository) GetByOrderAndProduct(orderID, productID uint) (*models.OrderExtraProduct, error) {
	var extra models.OrderExtraProduct
	err := r.db.Where("order_id = ? AND product_id = ?", orderID, productID).First(&extra).Error
	if err != nil {
		return nil, err
	}
	return &extra, nil
}

func (r *orderProductRepository) Update(extra *models.OrderExtraProduct) error {
	return r.db.Save(extra).Error
}

func (r *orderProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.OrderExtraProduct{}, id).Error
}

func (r *orderProductRepository) CountByProductID(productID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderExtraProduct{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *orderProductRepository) CountByUnitID(unitID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderExtraProduct{}).Where("unit_id = ?", unitID).Count(&count).Error
	return count, err
}
