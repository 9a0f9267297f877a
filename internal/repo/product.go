package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/fabian692/ecommerce/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ProductsByID(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	byID := make(map[uint]models.Product, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, p := range items {
		byID[p.ID] = p
	}
	return byID, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, req models.Product) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&prod).Error; err != nil {
			return err
		}

		prod.Name = req.Name
		prod.Description = req.Description
		prod.Price = req.Price
		prod.Stock = req.Stock

		return tx.Save(&prod).Error
	}); err != nil {
		return nil, err
	}

	return &prod, nil
}

// DeleteProduct refuses to remove a product that still has cart lines
// reserving it; deleting the row would strand the reserved units.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reserved int64
		if err := tx.Model(&models.CartItem{}).Where("product_id = ?", id).Count(&reserved).Error; err != nil {
			return err
		}
		if reserved > 0 {
			return ErrProductReserved
		}

		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
