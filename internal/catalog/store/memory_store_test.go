package store

import (
	"context"
	"testing"

	"github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMicroempresa = "tienda-1"

func seeded() *MemoryStore {
	st := NewMemoryStore()
	st.Seed([]*domain.Product{
		{ID: "p1", MicroempresaID: testMicroempresa, Name: "Arroz", Category: "Abarrotes", Price: 4.5, Stock: 40, MinStock: 10, Active: true},
		{ID: "p2", MicroempresaID: testMicroempresa, Name: "Aceite", Category: "Abarrotes", Price: 9.8, Stock: 0, MinStock: 5, Active: true},
		{ID: "p3", MicroempresaID: testMicroempresa, Name: "Leche", Category: "Lacteos", Price: 3.2, Stock: 4, MinStock: 6, Active: false},
	})
	return st
}

func TestGetProduct_Found(t *testing.T) {
	sut := seeded()

	p, err := sut.GetProduct(context.Background(), testMicroempresa, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Arroz", p.Name)
}

func TestGetProduct_WrongMicroempresa(t *testing.T) {
	sut := seeded()

	_, err := sut.GetProduct(context.Background(), "otra-tienda", "p1")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProducts_ActiveAndInStock(t *testing.T) {
	sut := seeded()

	products, err := sut.ListProducts(context.Background(), testMicroempresa, domain.Filter{
		ActiveOnly:  true,
		InStockOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestListProducts_LowStockFilter(t *testing.T) {
	sut := seeded()

	products, err := sut.ListProducts(context.Background(), testMicroempresa, domain.Filter{LowStock: true})
	require.NoError(t, err)

	// p2 (0 <= 5) and p3 (4 <= 6) are at or below their minimum
	require.Len(t, products, 2)
}

func TestListProducts_QueryMatchesNameAndCategory(t *testing.T) {
	sut := seeded()

	byName, err := sut.ListProducts(context.Background(), testMicroempresa, domain.Filter{Query: "arroz"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "p1", byName[0].ID)

	byCategory, err := sut.ListProducts(context.Background(), testMicroempresa, domain.Filter{Query: "abarrotes"})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)
}

func TestCreateProduct_AssignsID(t *testing.T) {
	sut := NewMemoryStore()

	p := &domain.Product{MicroempresaID: testMicroempresa, Name: "Nuevo", Price: 1, Stock: 5, Active: true}
	require.NoError(t, sut.CreateProduct(context.Background(), p))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestDecrementStock_Success(t *testing.T) {
	sut := seeded()

	p, err := sut.DecrementStock(context.Background(), testMicroempresa, "p1", 35)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
	assert.True(t, p.LowStock())
}

func TestDecrementStock_Insufficient(t *testing.T) {
	sut := seeded()

	_, err := sut.DecrementStock(context.Background(), testMicroempresa, "p1", 41)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Stock unchanged after the rejected decrement
	p, getErr := sut.GetProduct(context.Background(), testMicroempresa, "p1")
	require.NoError(t, getErr)
	assert.Equal(t, 40, p.Stock)
}

func TestDecrementStock_ExactlyToZero(t *testing.T) {
	sut := seeded()

	p, err := sut.DecrementStock(context.Background(), testMicroempresa, "p1", 40)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestRestoreStock_AddsBack(t *testing.T) {
	sut := seeded()

	_, err := sut.DecrementStock(context.Background(), testMicroempresa, "p1", 10)
	require.NoError(t, err)
	require.NoError(t, sut.RestoreStock(context.Background(), testMicroempresa, "p1", 10))

	p, err := sut.GetProduct(context.Background(), testMicroempresa, "p1")
	require.NoError(t, err)
	assert.Equal(t, 40, p.Stock)
}

func TestSetActive_TogglesFlag(t *testing.T) {
	sut := seeded()

	require.NoError(t, sut.SetActive(context.Background(), testMicroempresa, "p1", false))

	p, err := sut.GetProduct(context.Background(), testMicroempresa, "p1")
	require.NoError(t, err)
	assert.False(t, p.Active)
}
