package repo

import (
	"errors"

	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductReserved   = errors.New("product reserved in carts")
	ErrNotOwner          = errors.New("cart item belongs to another user")
)
