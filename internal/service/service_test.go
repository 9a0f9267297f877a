package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/fabian692/ecommerce/internal/models"
	"github.com/fabian692/ecommerce/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestRepo(t *testing.T) (*repo.GormRepo, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return &repo.GormRepo{DB: db}, db
}

func customerSession(userID uint) Session {
	return Session{UserID: userID, Role: models.RoleCustomer}
}

func adminSession(userID uint) Session {
	return Session{UserID: userID, Role: models.RoleAdmin}
}
