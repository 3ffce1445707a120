package service

import (
	"context"
	"testing"

	"github.com/crissancio/saas-tenant-pos/internal/client/domain"
	"github.com/crissancio/saas-tenant-pos/internal/client/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMicroempresa = "tienda-1"

func seededRegistry() *registry.MemoryRegistry {
	r := registry.NewMemoryRegistry()
	r.Seed([]*domain.Client{
		{
			ID:             "c1",
			MicroempresaID: testMicroempresa,
			Name:           "Maria Quispe",
			Document:       "1234567",
			Phone:          "70011223",
			Active:         true,
		},
	})
	return r
}

func TestResolve_Found(t *testing.T) {
	sut := NewClientService(seededRegistry())

	client, err := sut.Resolve(context.Background(), testMicroempresa, "1234567")
	require.NoError(t, err)
	assert.Equal(t, "Maria Quispe", client.Name)
}

func TestResolve_TrimsWhitespace(t *testing.T) {
	sut := NewClientService(seededRegistry())

	client, err := sut.Resolve(context.Background(), testMicroempresa, "  1234567 ")
	require.NoError(t, err)
	assert.Equal(t, "c1", client.ID)
}

func TestResolve_NotFound(t *testing.T) {
	sut := NewClientService(seededRegistry())

	client, err := sut.Resolve(context.Background(), testMicroempresa, "9999999")
	assert.ErrorIs(t, err, registry.ErrClientNotFound)
	assert.Nil(t, client)
}

func TestResolve_ExactMatchOnly(t *testing.T) {
	sut := NewClientService(seededRegistry())

	// A prefix of an existing document is not a match
	_, err := sut.Resolve(context.Background(), testMicroempresa, "123456")
	assert.ErrorIs(t, err, registry.ErrClientNotFound)
}

func TestResolve_ScopedToMicroempresa(t *testing.T) {
	sut := NewClientService(seededRegistry())

	_, err := sut.Resolve(context.Background(), "otra-tienda", "1234567")
	assert.ErrorIs(t, err, registry.ErrClientNotFound)
}

func TestCreate_Success(t *testing.T) {
	reg := seededRegistry()
	sut := NewClientService(reg)

	c := &domain.Client{
		MicroempresaID: testMicroempresa,
		Name:           "Jorge Mamani",
		Document:       "7654321",
		Phone:          "70099887",
	}
	require.NoError(t, sut.Create(context.Background(), c))
	assert.NotEmpty(t, c.ID)

	found, err := sut.Resolve(context.Background(), testMicroempresa, "7654321")
	require.NoError(t, err)
	assert.Equal(t, "Jorge Mamani", found.Name)
}

func TestCreate_MissingFieldsReported(t *testing.T) {
	sut := NewClientService(registry.NewMemoryRegistry())

	err := sut.Create(context.Background(), &domain.Client{
		MicroempresaID: testMicroempresa,
		Name:           "Sin Telefono",
		Document:       "1112223",
	})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "phone", verrs[0].Field)
	assert.Equal(t, "required", verrs[0].Reason)
}

func TestCreate_AllFieldsMissing(t *testing.T) {
	sut := NewClientService(registry.NewMemoryRegistry())

	err := sut.Create(context.Background(), &domain.Client{MicroempresaID: testMicroempresa})
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestCreate_InvalidEmail(t *testing.T) {
	sut := NewClientService(registry.NewMemoryRegistry())

	err := sut.Create(context.Background(), &domain.Client{
		MicroempresaID: testMicroempresa,
		Name:           "Con Email Malo",
		Document:       "1112223",
		Phone:          "70000000",
		Email:          "no-es-un-email",
	})
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "email", verrs[0].Field)
}

func TestCreate_ValidationFailureWritesNothing(t *testing.T) {
	reg := registry.NewMemoryRegistry()
	sut := NewClientService(reg)

	_ = sut.Create(context.Background(), &domain.Client{
		MicroempresaID: testMicroempresa,
		Document:       "1112223",
	})

	clients, err := sut.List(context.Background(), testMicroempresa)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestDeactivate_HidesFromResolve(t *testing.T) {
	reg := seededRegistry()
	sut := NewClientService(reg)

	require.NoError(t, sut.Deactivate(context.Background(), testMicroempresa, "c1"))

	_, err := sut.Resolve(context.Background(), testMicroempresa, "1234567")
	assert.ErrorIs(t, err, registry.ErrClientNotFound)
}
