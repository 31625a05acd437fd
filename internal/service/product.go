package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/agriconnect/marketplace/internal/auth"
	"github.com/agriconnect/marketplace/internal/logging"
	"github.com/agriconnect/marketplace/internal/models"
	"github.com/agriconnect/marketplace/internal/mykafka"
	"github.com/agriconnect/marketplace/internal/transport"
)

type ProductService struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

const productListingSelect = "products.id AS product_id, products.name, products.description, products.category, products.price, products.quantity, products.image_url, users.name AS farmer_name, users.rada_verified"

func (s *ProductService) Create(ctx context.Context, ident auth.Identity, req transport.CreateProductRequest) (*models.Product, error) {
	if ident.Role != models.RoleFarmer {
		return nil, fmt.Errorf("%w: only farmers can create products", ErrForbidden)
	}
	if req.Name == "" || !req.Price.IsPositive() || req.Quantity == 0 {
		return nil, fmt.Errorf("%w: name, price and quantity are required", ErrValidation)
	}

	product := models.Product{
		FarmerID:    ident.UserID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
	}
	if err := s.DB.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}

	s.publish(ctx, fmt.Sprint(product.ID), map[string]interface{}{
		"type":       "product_created",
		"product_id": product.ID,
		"farmer_id":  product.FarmerID,
	})

	return &product, nil
}

// List returns every listing joined with its farmer's public details.
func (s *ProductService) List(ctx context.Context) ([]transport.ProductListing, error) {
	var rows []transport.ProductListing
	err := s.DB.WithContext(ctx).
		Table("products").
		Select(productListingSelect).
		Joins("JOIN users ON users.id = products.farmer_id").
		Where("users.role = ?", models.RoleFarmer).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ProductService) Get(ctx context.Context, productID uint) (*transport.ProductListing, error) {
	var row transport.ProductListing
	err := s.DB.WithContext(ctx).
		Table("products").
		Select(productListingSelect).
		Joins("JOIN users ON users.id = products.farmer_id").
		Where("products.id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ProductID == 0 {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	return &row, nil
}

// Delete removes a listing; only its owning farmer may do so.
func (s *ProductService) Delete(ctx context.Context, ident auth.Identity, productID uint) error {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return err
	}
	if product.FarmerID != ident.UserID {
		return fmt.Errorf("%w: you are not authorized to delete this product", ErrForbidden)
	}

	if err := s.DB.WithContext(ctx).Delete(&product).Error; err != nil {
		return err
	}

	s.publish(ctx, fmt.Sprint(productID), map[string]interface{}{
		"type":       "product_deleted",
		"product_id": productID,
		"farmer_id":  ident.UserID,
	})
	return nil
}

// ListMine returns the calling farmer's own listings, newest first.
func (s *ProductService) ListMine(ctx context.Context, ident auth.Identity) ([]models.Product, error) {
	if ident.Role != models.RoleFarmer {
		return nil, fmt.Errorf("%w: access is restricted to farmers", ErrForbidden)
	}

	var products []models.Product
	err := s.DB.WithContext(ctx).
		Where("farmer_id = ?", ident.UserID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) publish(ctx context.Context, key string, event map[string]interface{}) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, mykafka.TopicProductEvents, key, event); err != nil {
		logging.FromContext(ctx).Warn("kafka_publish_error", "topic", mykafka.TopicProductEvents, "error", err)
	}
}
