package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/agriconnect/marketplace/internal/auth"
	"github.com/agriconnect/marketplace/internal/models"
	"github.com/agriconnect/marketplace/internal/transport"
)

type DashboardService struct {
	DB *gorm.DB
}

// Summary aggregates a farmer's sales and Lend-Hand activity.
func (s *DashboardService) Summary(ctx context.Context, ident auth.Identity) (*transport.DashboardResponse, error) {
	if ident.Role != models.RoleFarmer {
		return nil, fmt.Errorf("%w: access is restricted to farmers", ErrForbidden)
	}

	db := s.DB.WithContext(ctx)
	out := &transport.DashboardResponse{RecentOrders: []transport.RecentOrder{}}

	// Revenue counts completed orders only; revenue is priced at the
	// product's current price, as the original dashboard did.
	err := db.Raw(`
		SELECT
			COALESCE(SUM(oi.quantity_purchased * p.price), 0) AS total_revenue,
			COUNT(DISTINCT o.id) AS number_of_orders
		FROM orders o
		JOIN order_items oi ON o.id = oi.order_id
		JOIN products p ON oi.product_id = p.id
		WHERE p.farmer_id = ? AND o.status = ?`,
		ident.UserID, models.OrderStatusCompleted,
	).Row().Scan(&out.TotalRevenue, &out.NumberOfOrders)
	if err != nil {
		return nil, err
	}

	err = db.Raw(`
		SELECT o.id AS order_id, o.order_date, o.total_amount, o.status
		FROM orders o
		JOIN order_items oi ON o.id = oi.order_id
		JOIN products p ON oi.product_id = p.id
		WHERE p.farmer_id = ?
		GROUP BY o.id, o.order_date, o.total_amount, o.status
		ORDER BY o.order_date DESC
		LIMIT 5`,
		ident.UserID,
	).Scan(&out.RecentOrders).Error
	if err != nil {
		return nil, err
	}

	if err := db.Model(&models.Event{}).
		Where("host_farmer_id = ?", ident.UserID).
		Count(&out.EventsHosted).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.EventVolunteer{}).
		Where("volunteer_id = ?", ident.UserID).
		Count(&out.TimesVolunteered).Error; err != nil {
		return nil, err
	}

	return out, nil
}
