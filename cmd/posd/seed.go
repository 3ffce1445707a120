package main

import (
	"log/slog"

	"github.com/crissancio/saas-tenant-pos/internal/auth"
	catalogdomain "github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
	catalogstore "github.com/crissancio/saas-tenant-pos/internal/catalog/store"
	clientdomain "github.com/crissancio/saas-tenant-pos/internal/client/domain"
	"github.com/crissancio/saas-tenant-pos/internal/client/registry"
)

const demoMicroempresaID = "demo-tienda"

// seedDemoData loads the fixtures memory mode starts with, mirroring
// the mock data the mobile apps shipped for offline demos.
func seedDemoData(log *slog.Logger, products *catalogstore.MemoryStore, clients *registry.MemoryRegistry, users *auth.MemoryUserStore) {
	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		log.Error("failed to hash seed password", "error", err)
		return
	}
	sellerHash, err := auth.HashPassword("vendedor123")
	if err != nil {
		log.Error("failed to hash seed password", "error", err)
		return
	}

	users.Seed([]*auth.User{
		{
			MicroempresaID: demoMicroempresaID,
			Name:           "Ana Admin",
			Email:          "admin@demo.local",
			PasswordHash:   adminHash,
			Role:           auth.RoleAdmin,
			Active:         true,
		},
		{
			MicroempresaID: demoMicroempresaID,
			Name:           "Victor Vendedor",
			Email:          "vendedor@demo.local",
			PasswordHash:   sellerHash,
			Role:           auth.RoleVendedor,
			Active:         true,
		},
	})

	products.Seed([]*catalogdomain.Product{
		{
			MicroempresaID: demoMicroempresaID,
			Name:           "Arroz 1kg",
			Category:       "Abarrotes",
			Price:          4.50,
			Stock:          40,
			MinStock:       10,
			Active:         true,
		},
		{
			MicroempresaID: demoMicroempresaID,
			Name:           "Aceite vegetal 900ml",
			Category:       "Abarrotes",
			Price:          9.80,
			Stock:          12,
			MinStock:       5,
			Active:         true,
		},
		{
			MicroempresaID: demoMicroempresaID,
			Name:           "Leche evaporada",
			Category:       "Lacteos",
			Price:          3.20,
			Stock:          6,
			MinStock:       6,
			Active:         true,
		},
		{
			MicroempresaID: demoMicroempresaID,
			Name:           "Gaseosa 500ml",
			Category:       "Bebidas",
			Price:          2.50,
			Stock:          0,
			MinStock:       12,
			Active:         true,
		},
	})

	clients.Seed([]*clientdomain.Client{
		{
			MicroempresaID: demoMicroempresaID,
			Name:           "Maria Quispe",
			Document:       "1234567",
			Phone:          "70011223",
			Email:          "maria@example.com",
			Active:         true,
		},
		{
			MicroempresaID: demoMicroempresaID,
			Name:           "Jorge Mamani",
			Document:       "7654321",
			Phone:          "70099887",
			Active:         true,
		},
	})

	log.Info("memory mode seeded", "microempresa", demoMicroempresaID)
}
