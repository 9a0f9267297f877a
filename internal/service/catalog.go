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

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

// Browsing is open to everyone, as the storefront's index page is.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return prod, err
}

func (s *CatalogService) CreateProduct(ctx context.Context, sess Session, prod *models.Product) error {
	l := logging.FromContext(ctx).With("svc", "catalog.create")

	if err := requireRole(sess, models.RoleAdmin); err != nil {
		return err
	}
	if err := validateProduct(prod); err != nil {
		return err
	}

	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		l.Error("create_product_error", "error", err)
		return err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("product created", "productID", prod.ID)
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, sess Session, id uint, req models.Product) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update", "productID", id)

	if err := requireRole(sess, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateProduct(&req); err != nil {
		return nil, err
	}

	prod, err := s.Repo.UpdateProduct(ctx, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		l.Error("update_product_error", "error", err)
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("product updated")
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, sess Session, id uint) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete", "productID", id)

	if err := requireRole(sess, models.RoleAdmin); err != nil {
		return err
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		case errors.Is(err, repo.ErrProductReserved):
			l.Warn("delete refused", "reason", "product reserved in carts")
			return fmt.Errorf("product %d: %w", id, ErrProductReserved)
		default:
			l.Error("delete_product_error", "error", err)
			return err
		}
	}

	s.publish(ctx, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("product deleted")
	return nil
}

func validateProduct(prod *models.Product) error {
	if prod.Name == "" {
		return fmt.Errorf("name required: %w", ErrValidation)
	}
	if prod.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	return nil
}

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", "product_events", "error", err)
	}
}
