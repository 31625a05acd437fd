package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agriconnect/marketplace/internal/auth"
	"github.com/agriconnect/marketplace/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	// Every connection to :memory: sees its own database, so the pool
	// must stay on a single connection. This also serializes concurrent
	// transactions in the concurrency tests.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Event{},
		&models.EventVolunteer{},
		&models.ProduceRequest{},
		&models.IDRequest{},
	)
	if err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, farmerID uint, price string, quantity uint) models.Product {
	t.Helper()

	product := models.Product{
		FarmerID: farmerID,
		Name:     "yellow yam",
		Category: "Tubers",
		Price:    decimal.RequireFromString(price),
		Quantity: quantity,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func seedEvent(t *testing.T, db *gorm.DB, hostID uint, capacity uint) models.Event {
	t.Helper()

	event := models.Event{
		HostFarmerID:       hostID,
		EventDate:          time.Now().UTC().Add(72 * time.Hour),
		TaskDescription:    "yam hill digging",
		RequiredVolunteers: capacity,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
	return event
}

func asIdentity(u models.User) auth.Identity {
	return auth.Identity{UserID: u.ID, Role: u.Role}
}
