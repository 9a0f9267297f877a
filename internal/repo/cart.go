package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fabian692/ecommerce/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart moves item.Quantity units from product stock into the user's
// cart line in one transaction. The guarded UPDATE only succeeds when enough
// stock remains, so concurrent adds against the last units serialize on the
// product row and exactly one wins.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
			Update("stock", gorm.Expr("stock - ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrInsufficientStock
		}

		res = tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).First(item).Error
		}

		// savepoint keeps the outer transaction usable when the insert
		// loses a first-add race on the (user, product) unique index
		err := tx.Transaction(func(tx *gorm.DB) error {
			return tx.Create(item).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}

		res = tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return err
		}
		return tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).First(item).Error
	})
}

// RemoveFromCart returns the line's full quantity to product stock and
// deletes the line, atomically. The delete is guarded by the quantity read
// above it, so when a concurrent remove or merge-add commits in between it
// matches zero rows and the stock restore is skipped instead of applying a
// second time or using a stale quantity.
func (r *GormRepo) RemoveFromCart(ctx context.Context, itemID, userID uint) (*models.CartItem, error) {
	var item models.CartItem

	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
			return err
		}
		if item.UserID != userID {
			return ErrNotOwner
		}

		res := tx.Where("id = ? AND user_id = ? AND quantity = ?", itemID, userID, item.Quantity).
			Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error
	}); err != nil {
		return nil, err
	}

	return &item, nil
}
