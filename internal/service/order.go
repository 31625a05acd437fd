package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agriconnect/marketplace/internal/auth"
	"github.com/agriconnect/marketplace/internal/logging"
	"github.com/agriconnect/marketplace/internal/models"
	"github.com/agriconnect/marketplace/internal/mykafka"
	"github.com/agriconnect/marketplace/internal/transport"
)

type OrderService struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

// PlacedOrder is the result of a successful order placement.
type PlacedOrder struct {
	OrderID     uint
	TotalAmount decimal.Decimal
	Status      string
}

// Create places a multi-item order in one transaction: every referenced
// product is read with a row lock, stock is validated per item in input
// order, the order and its line items are inserted, and quantities are
// decremented. Any failure rolls the whole thing back.
func (s *OrderService) Create(ctx context.Context, ident auth.Identity, req transport.CreateOrderRequest) (*PlacedOrder, error) {
	if ident.Role != models.RoleBuyer {
		return nil, fmt.Errorf("%w: only buyers can create orders", ErrForbidden)
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment_method is required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: a non-empty array of items is required", ErrValidation)
	}
	for _, it := range req.Items {
		if it.ProductID == 0 {
			return nil, fmt.Errorf("%w: product_id is required", ErrValidation)
		}
		if it.Quantity == 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
	}

	var order models.Order

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(req.Items))
		for _, it := range req.Items {
			ids = append(ids, it.ProductID)
		}

		// One locked read for every referenced product. Prices and
		// quantities seen here are the ones the whole transaction acts on.
		var products []models.Product
		if err := withRowLock(tx).Where("id IN ?", ids).Find(&products).Error; err != nil {
			return err
		}
		byID := make(map[uint]*models.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		total := decimal.Zero
		for _, it := range req.Items {
			p, ok := byID[it.ProductID]
			if !ok {
				return fmt.Errorf("%w: product %d", ErrNotFound, it.ProductID)
			}
			if p.Quantity < it.Quantity {
				return fmt.Errorf("%w: product %d", ErrInsufficientStock, it.ProductID)
			}
			// Track the remaining stock locally so a product repeated
			// across line items cannot overdraw within one order.
			p.Quantity -= it.Quantity
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}

		status := models.OrderStatusPending
		if req.PaymentMethod == models.PaymentMethodDigital {
			status = models.OrderStatusCompleted
		}

		order = models.Order{
			BuyerID:       ident.UserID,
			OrderDate:     time.Now().UTC(),
			TotalAmount:   total,
			Status:        status,
			PaymentMethod: req.PaymentMethod,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, it := range req.Items {
			item := models.OrderItem{
				OrderID:           order.ID,
				ProductID:         it.ProductID,
				QuantityPurchased: it.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		for _, it := range req.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", it.ProductID).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", it.Quantity)).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.publish(ctx, mykafka.TopicOrderEvents, fmt.Sprint(order.ID), map[string]interface{}{
		"type":     "order_created",
		"order_id": order.ID,
		"buyer_id": order.BuyerID,
		"total":    order.TotalAmount,
		"status":   order.Status,
	})

	return &PlacedOrder{
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
	}, nil
}

// ListMine returns the caller's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, ident auth.Identity) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Where("buyer_id = ?", ident.UserID).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) publish(ctx context.Context, topic, key string, event map[string]interface{}) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("kafka_publish_error", "topic", topic, "error", err)
	}
}
