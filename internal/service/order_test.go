package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/agriconnect/marketplace/internal/models"
	"github.com/agriconnect/marketplace/internal/mykafka"
	"github.com/agriconnect/marketplace/internal/transport"
)

func TestCreateOrder(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{DB: db, Producer: &mykafka.Producer{}}

	farmer := seedUser(t, db, "farmer", models.RoleFarmer)
	buyer := seedUser(t, db, "buyer", models.RoleBuyer)
	product := seedProduct(t, db, farmer.ID, "200", 5)

	placed, err := svc.Create(context.Background(), asIdentity(buyer), transport.CreateOrderRequest{
		PaymentMethod: "Cash",
		Items:         []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPending, placed.Status)
	require.True(t, placed.TotalAmount.Equal(decimal.RequireFromString("600")),
		"total = %s", placed.TotalAmount)

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	require.Equal(t, uint(2), got.Quantity)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", placed.OrderID).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, uint(3), items[0].QuantityPurchased)
}

func TestCreateOrderDigitalPaymentCompletes(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{DB: db, Producer: &mykafka.Producer{}}

	farmer := seedUser(t, db, "farmer", models.RoleFarmer)
	buyer := seedUser(t, db, "buyer", models.RoleBuyer)
	product := seedProduct(t, db, farmer.ID, "150.50", 10)

	placed, err := svc.Create(context.Background(), asIdentity(buyer), transport.CreateOrderRequest{
		PaymentMethod: models.PaymentMethodDigital,
		Items:         []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCompleted, placed.Status)
	require.True(t, placed.TotalAmount.Equal(decimal.RequireFromString("301")))
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{DB: db, Producer: &mykafka.Producer{}}

	farmer := seedUser(t, db, "farmer", models.RoleFarmer)
	buyer := seedUser(t, db, "buyer", models.RoleBuyer)
	product := seedProduct(t, db, farmer.ID, "200", 5)

	_, err := svc.Create(context.Background(), asIdentity(buyer), transport.CreateOrderRequest{
		PaymentMethod: "Cash",
		Items:         []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 6}},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Full rollback: stock untouched, no order rows written.
	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	require.Equal(t, uint(5), got.Quantity)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	require.Zero(t, orderCount)
	require.Zero(t, itemCount)
}

func TestCreateOrderMultiItemRollsBackOnLaterFailure(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{DB: db, Producer: &mykafka.Producer{}}

	farmer := seedUser(t, db, "farmer", models.RoleFarmer)
	buyer := seedUser(t, db, "buyer", models.RoleBuyer)
	plenty := seedProduct(t, db, farmer.ID, "100", 50)
	scarce := seedProduct(t, db, farmer.ID, "80", 1)

	_, err := svc.Create(context.Background(), asIdentity(buyer), transport.CreateOrderRequest{
		PaymentMethod: "Cash",
		Items: []transport.CreateOrderItem{
			{ProductID: plenty.ID, Quantity: 10},
			{ProductID: scarce.ID, Quantity: 2},
		},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	var got models.Product
	require.NoError(t, db.First(&got, plenty.ID).Error)
	require.Equal(t, uint(50), got.Quantity, "first item's decrement must roll back")
}

func TestCreateOrderRepeatedProductCannotOverdraw(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{DB: db, Producer: &mykafka.Producer{}}

	farmer := seedUser(t, db, "farmer", models.RoleFarmer)
	buyer := seedUser(t, db, "buyer", models.RoleBuyer)
	product := seedProduct(t, db, farmer.ID, "100", 5)

	_, err := svc.Create(context.Background(), asIdentity(buyer), transport.CreateOrderRequest{
		PaymentMethod: "Cash",
		Items: []transport.CreateOrderItem{
			{ProductID: product.ID, Quantity: 3},
			{ProductID: product.ID, Quantity: 3},
		},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCreateOrderConcurrentNoOverdraw(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{DB: db, Producer: &mykafka.Producer{}}

	farmer := seedUser(t, db, "farmer", models.RoleFarmer)
	buyer := seedUser(t, db, "buyer", models.RoleBuyer)
	product := seedProduct(t, db, farmer.ID, "100", 5)

	// More attempts than units in stock; individual attempts may fail
	// with ErrInsufficientStock but the stock must never be overdrawn.
	const attempts = 10
	var wg sync.WaitGroup
	var successes atomic.Int64
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), asIdentity(buyer), transport.CreateOrderRequest{
				PaymentMethod: "Cash",
				Items:         []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
			})
			if err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	won := successes.Load()
	require.Positive(t, won)
	require.LessOrEqual(t, won, int64(5), "successful orders must not exceed the starting stock")

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	require.Equal(t, uint(5)-uint(won), got.Quantity)

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	require.Equal(t, won, itemCount, "one line item per successful order")
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{DB: db, Producer: &mykafka.Producer{}}

	buyer := seedUser(t, db, "buyer", models.RoleBuyer)

	_, err := svc.Create(context.Background(), asIdentity(buyer), transport.CreateOrderRequest{
		PaymentMethod: "Cash",
		Items:         []transport.CreateOrderItem{{ProductID: 999, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderRejectsNonBuyer(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{DB: db, Producer: &mykafka.Producer{}}

	farmer := seedUser(t, db, "farmer", models.RoleFarmer)

	_, err := svc.Create(context.Background(), asIdentity(farmer), transport.CreateOrderRequest{
		PaymentMethod: "Cash",
		Items:         []transport.CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestCreateOrderValidation(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{DB: db, Producer: &mykafka.Producer{}}

	buyer := seedUser(t, db, "buyer", models.RoleBuyer)

	_, err := svc.Create(context.Background(), asIdentity(buyer), transport.CreateOrderRequest{
		PaymentMethod: "Cash",
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), asIdentity(buyer), transport.CreateOrderRequest{
		Items: []transport.CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), asIdentity(buyer), transport.CreateOrderRequest{
		PaymentMethod: "Cash",
		Items:         []transport.CreateOrderItem{{ProductID: 1, Quantity: 0}},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestOrderTotalSurvivesPriceChange(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{DB: db, Producer: &mykafka.Producer{}}

	farmer := seedUser(t, db, "farmer", models.RoleFarmer)
	buyer := seedUser(t, db, "buyer", models.RoleBuyer)
	product := seedProduct(t, db, farmer.ID, "200", 10)

	placed, err := svc.Create(context.Background(), asIdentity(buyer), transport.CreateOrderRequest{
		PaymentMethod: "Cash",
		Items:         []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	err = db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("999")).Error
	require.NoError(t, err)

	var stored models.Order
	require.NoError(t, db.First(&stored, placed.OrderID).Error)
	require.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("400")),
		"stored total = %s", stored.TotalAmount)
}

func TestListMyOrders(t *testing.T) {
	db := initTestDB(t)
	svc := &OrderService{DB: db, Producer: &mykafka.Producer{}}

	farmer := seedUser(t, db, "farmer", models.RoleFarmer)
	buyer := seedUser(t, db, "buyer", models.RoleBuyer)
	other := seedUser(t, db, "other", models.RoleBuyer)
	product := seedProduct(t, db, farmer.ID, "10", 100)

	for _, ident := range []models.User{buyer, buyer, other} {
		_, err := svc.Create(context.Background(), asIdentity(ident), transport.CreateOrderRequest{
			PaymentMethod: "Cash",
			Items:         []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	orders, err := svc.ListMine(context.Background(), asIdentity(buyer))
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		require.Equal(t, buyer.ID, o.BuyerID)
	}
}
