package consumer

import (
	"encoding/json"
	"testing"

	"github.com/crissancio/saas-tenant-pos/internal/notification/domain"
	"github.com/crissancio/saas-tenant-pos/internal/sale/repository"
	saleservice "github.com/crissancio/saas-tenant-pos/internal/sale/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNotification_SaleCompleted(t *testing.T) {
	payload, err := json.Marshal(map[string]interface{}{
		"microempresa_id": "tienda-1",
		"client_name":     "Maria Quispe",
		"total":           18.8,
	})
	require.NoError(t, err)

	n, err := buildNotification(repository.EventSaleCompleted, payload)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "tienda-1", n.MicroempresaID)
	assert.Equal(t, domain.TypeVentaRealizada, n.Type)
	assert.Equal(t, "Venta realizada a Maria Quispe por 18.80", n.Message)
}

func TestBuildNotification_StockLow(t *testing.T) {
	payload, err := json.Marshal(saleservice.StockLowEvent{
		MicroempresaID: "tienda-1",
		ProductID:      "p1",
		ProductName:    "Arroz",
		Stock:          3,
		MinStock:       10,
	})
	require.NoError(t, err)

	n, err := buildNotification(repository.EventStockLow, payload)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, domain.TypeStockBajo, n.Type)
	assert.Equal(t, "Stock bajo: Arroz (3 unidades restantes)", n.Message)
}

func TestBuildNotification_UnknownEventType(t *testing.T) {
	n, err := buildNotification("payment.received.v2", []byte(`{}`))
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestBuildNotification_MalformedPayload(t *testing.T) {
	_, err := buildNotification(repository.EventSaleCompleted, []byte(`{broken`))
	require.ErrorContains(t, err, "unmarshal sale.completed")

	_, err = buildNotification(repository.EventStockLow, []byte(`{broken`))
	require.ErrorContains(t, err, "unmarshal stock.low")
}
