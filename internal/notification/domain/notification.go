package domain

import "time"

type Type string

const (
	TypeStockBajo        Type = "STOCK_BAJO"
	TypeVentaRealizada   Type = "VENTA_REALIZADA"
	TypeCompraConfirmada Type = "COMPRA_CONFIRMADA"
	TypePagoRecibido     Type = "PAGO_RECIBIDO"
)

// Notification is an in-app alert scoped to a microempresa.
type Notification struct {
	ID             string    `json:"id"`
	MicroempresaID string    `json:"microempresa_id"`
	Type           Type      `json:"type"`
	Message        string    `json:"message"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}
