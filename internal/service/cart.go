package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fabian692/ecommerce/internal/logging"
	"github.com/fabian692/ecommerce/internal/models"
	"github.com/fabian692/ecommerce/internal/mykafka"
	"github.com/fabian692/ecommerce/internal/repo"
)

type CartService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

type CartLine struct {
	Item    models.CartItem `json:"item"`
	Product models.Product  `json:"product"`
}

type CartView struct {
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
}

func (s *CartService) GetCart(ctx context.Context, sess Session) (*CartView, error) {
	if err := requireRole(sess, models.RoleCustomer); err != nil {
		return nil, err
	}

	items, err := s.Repo.GetCart(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.Repo.ProductsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := CartView{Lines: make([]CartLine, 0, len(items))}
	for _, item := range items {
		prod := products[item.ProductID]
		view.Lines = append(view.Lines, CartLine{Item: item, Product: prod})
		view.Total += prod.Price * float64(item.Quantity)
	}
	return &view, nil
}

func (s *CartService) AddToCart(ctx context.Context, sess Session, productID, quantity uint) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add", "userID", sess.UserID, "productID", productID)

	if err := requireRole(sess, models.RoleCustomer); err != nil {
		return nil, err
	}
	if productID == 0 {
		return nil, fmt.Errorf("product_id required: %w", ErrValidation)
	}
	if quantity == 0 {
		return nil, fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}

	item := models.CartItem{
		UserID:    sess.UserID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		case errors.Is(err, repo.ErrInsufficientStock):
			l.Warn("add refused", "reason", "insufficient stock", "quantity", quantity)
			return nil, fmt.Errorf("product %d: %w", productID, ErrInsufficientStock)
		default:
			l.Error("add_to_cart_error", "error", err)
			return nil, err
		}
	}

	s.publish(ctx, sess.UserID, map[string]any{
		"type":      "cart_item_added",
		"userID":    sess.UserID,
		"productID": productID,
		"quantity":  item.Quantity,
	})

	l.Info("item added to cart", "quantity", item.Quantity)
	return &item, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, sess Session, itemID uint) error {
	l := logging.FromContext(ctx).With("svc", "cart.remove", "userID", sess.UserID, "itemID", itemID)

	if err := requireRole(sess, models.RoleCustomer); err != nil {
		return err
	}

	item, err := s.Repo.RemoveFromCart(ctx, itemID, sess.UserID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
		case errors.Is(err, repo.ErrNotOwner):
			l.Warn("remove refused", "reason", "not owner")
			return fmt.Errorf("cart item %d: %w", itemID, ErrUnauthorized)
		default:
			l.Error("remove_from_cart_error", "error", err)
			return err
		}
	}

	s.publish(ctx, sess.UserID, map[string]any{
		"type":      "cart_item_removed",
		"userID":    sess.UserID,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	})

	l.Info("item removed from cart", "productID", item.ProductID)
	return nil
}

func (s *CartService) publish(ctx context.Context, userID uint, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "cart_events", fmt.Sprint(userID), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", "cart_events", "error", err)
	}
}
