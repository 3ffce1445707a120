package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/crissancio/saas-tenant-pos/internal/sale/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "sales_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *Repository) CreateSale(ctx context.Context, sale *domain.Sale) error {
	itemsJSON, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal sale items: %w", err)
	}

	payload, err := json.Marshal(sale)
	if err != nil {
		return fmt.Errorf("failed to marshal sale payload: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sale transaction: %w", err)
	}
	defer tx.Rollback()

	saleQuery := `INSERT INTO sales (id, microempresa_id, seller_id, client_id, client_name, items, total, status, type, created_at)
	              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := tx.ExecContext(ctx, saleQuery,
		sale.ID,
		sale.MicroempresaID,
		sale.SellerID,
		nullable(sale.ClientID),
		sale.ClientName,
		itemsJSON,
		sale.Total,
		sale.Status,
		sale.Type,
		sale.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	outboxQuery := `INSERT INTO sale_outbox (aggregate_id, event_type, payload, created_at)
	                VALUES ($1, $2, $3, NOW())`
	if _, err := tx.ExecContext(ctx, outboxQuery, sale.ID.String(), EventSaleCompleted, payload); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sale transaction: %w", err)
	}
	return nil
}

func (r *Repository) GetSaleByID(ctx context.Context, microempresaID string, id uuid.UUID) (*domain.Sale, error) {
	query := `SELECT id, microempresa_id, seller_id, client_id, client_name, items, total, status, type, created_at
	          FROM sales WHERE id = $1 AND microempresa_id = $2`

	row := r.db.QueryRowContext(ctx, query, id, microempresaID)
	sale, err := scanSale(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query sale by id: %w", err)
	}
	return sale, nil
}

func (r *Repository) ListSales(ctx context.Context, microempresaID string, f domain.ListFilter) ([]*domain.Sale, error) {
	query := `SELECT id, microempresa_id, seller_id, client_id, client_name, items, total, status, type, created_at
	          FROM sales WHERE microempresa_id = $1`
	args := []interface{}{microempresaID}

	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var sales []*domain.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func (r *Repository) AddOutboxEvent(ctx context.Context, event *OutboxEvent) error {
	query := `INSERT INTO sale_outbox (aggregate_id, event_type, payload, created_at)
	          VALUES ($1, $2, $3, NOW())`
	if _, err := r.db.ExecContext(ctx, query, event.AggregateID, event.EventType, event.Payload); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	query := `SELECT id, aggregate_id, event_type, payload, created_at
	          FROM sale_outbox WHERE processed_at IS NULL
	          ORDER BY id LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox events: %w", err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, id int64) error {
	query := `UPDATE sale_outbox SET processed_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("mark outbox event processed: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSale(row scanner) (*domain.Sale, error) {
	var sale domain.Sale
	var clientID sql.NullString
	var itemsJSON []byte

	if err := row.Scan(
		&sale.ID,
		&sale.MicroempresaID,
		&sale.SellerID,
		&clientID,
		&sale.ClientName,
		&itemsJSON,
		&sale.Total,
		&sale.Status,
		&sale.Type,
		&sale.CreatedAt,
	); err != nil {
		return nil, err
	}

	sale.ClientID = clientID.String
	if err := json.Unmarshal(itemsJSON, &sale.Items); err != nil {
		return nil, fmt.Errorf("unmarshal sale items: %w", err)
	}
	return &sale, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
