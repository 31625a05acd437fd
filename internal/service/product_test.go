package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/agriconnect/marketplace/internal/models"
	"github.com/agriconnect/marketplace/internal/mykafka"
	"github.com/agriconnect/marketplace/internal/transport"
)

func TestCreateProduct(t *testing.T) {
	db := initTestDB(t)
	svc := &ProductService{DB: db, Producer: &mykafka.Producer{}}

	farmer := seedUser(t, db, "farmer", models.RoleFarmer)
	buyer := seedUser(t, db, "buyer", models.RoleBuyer)

	req := transport.CreateProductRequest{
		Name:     "east indian mango",
		Category: "Fruit",
		Price:    decimal.RequireFromString("250"),
		Quantity: 40,
	}

	product, err := svc.Create(context.Background(), asIdentity(farmer), req)
	require.NoError(t, err)
	require.NotZero(t, product.ID)
	require.Equal(t, farmer.ID, product.FarmerID)

	_, err = svc.Create(context.Background(), asIdentity(buyer), req)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(context.Background(), asIdentity(farmer), transport.CreateProductRequest{Name: "no price"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestListProductsJoinsFarmer(t *testing.T) {
	db := initTestDB(t)
	svc := &ProductService{DB: db, Producer: &mykafka.Producer{}}

	farmer := seedUser(t, db, "farmer", models.RoleFarmer)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", farmer.ID).Update("rada_verified", true).Error)
	seedProduct(t, db, farmer.ID, "200", 5)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "farmer", rows[0].FarmerName)
	require.True(t, rows[0].RadaVerified)
}

func TestGetProduct(t *testing.T) {
	db := initTestDB(t)
	svc := &ProductService{DB: db, Producer: &mykafka.Producer{}}

	farmer := seedUser(t, db, "farmer", models.RoleFarmer)
	product := seedProduct(t, db, farmer.ID, "200", 5)

	row, err := svc.Get(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, product.ID, row.ProductID)
	require.True(t, row.Price.Equal(decimal.RequireFromString("200")))

	_, err = svc.Get(context.Background(), 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProductOwnerOnly(t *testing.T) {
	db := initTestDB(t)
	svc := &ProductService{DB: db, Producer: &mykafka.Producer{}}

	owner := seedUser(t, db, "owner", models.RoleFarmer)
	other := seedUser(t, db, "other", models.RoleFarmer)
	product := seedProduct(t, db, owner.ID, "200", 5)

	err := svc.Delete(context.Background(), asIdentity(other), product.ID)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), asIdentity(owner), product.ID))

	err = svc.Delete(context.Background(), asIdentity(owner), product.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListMyProducts(t *testing.T) {
	db := initTestDB(t)
	svc := &ProductService{DB: db, Producer: &mykafka.Producer{}}

	farmer := seedUser(t, db, "farmer", models.RoleFarmer)
	neighbor := seedUser(t, db, "neighbor", models.RoleFarmer)
	buyer := seedUser(t, db, "buyer", models.RoleBuyer)
	seedProduct(t, db, farmer.ID, "200", 5)
	seedProduct(t, db, neighbor.ID, "90", 12)

	mine, err := svc.ListMine(context.Background(), asIdentity(farmer))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, farmer.ID, mine[0].FarmerID)

	_, err = svc.ListMine(context.Background(), asIdentity(buyer))
	require.ErrorIs(t, err, ErrForbidden)
}
