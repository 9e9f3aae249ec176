package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-admin/internal/domain/entity"
	"github.com/jhoicas/portal-admin/internal/domain/repository"
)

// Asegura que StateRepo implementa repository.StateRepository.
var _ repository.StateRepository = (*StateRepo)(nil)

// Querier es lo mínimo que necesita el repositorio; lo cumplen *pgxpool.Pool, pgx.Tx y pgxmock.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// StateRepo guarda la instantánea del portal en la tabla app_state como JSONB.
// En la misma transacción mantiene app_products, proyección de productos con precio NUMERIC
// para consultas SQL externas; nunca se lee de vuelta.
type StateRepo struct {
	db  Querier
	key string
}

// NewStateRepository construye el adaptador de persistencia para la instantánea.
func NewStateRepository(db Querier) *StateRepo {
	return &StateRepo{db: db, key: repository.StateKey}
}

// EnsureSchema crea la tabla si no existe.
func (r *StateRepo) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS app_state (
			key        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create app_state: %w", err)
	}
	products := `
		CREATE TABLE IF NOT EXISTS app_products (
			id         TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			name       TEXT NOT NULL,
			sku        TEXT NOT NULL,
			stock      INTEGER NOT NULL,
			price      NUMERIC(14,2) NOT NULL,
			status     TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := r.db.Exec(ctx, products); err != nil {
		return fmt.Errorf("create app_products: %w", err)
	}
	return nil
}

// Load obtiene la instantánea. Devuelve (nil, nil) si no hay fila.
func (r *StateRepo) Load(ctx context.Context) (*entity.State, error) {
	query := `SELECT data FROM app_state WHERE key = $1`
	var raw []byte
	if err := r.db.QueryRow(ctx, query, r.key).Scan(&raw); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get app_state: %w", err)
	}
	var state entity.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decodificar instantánea: %w", err)
	}
	return &state, nil
}

// Save hace upsert de la instantánea.
func (r *StateRepo) Save(ctx context.Context, state *entity.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("codificar instantánea: %w", err)
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO app_state (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err := tx.Exec(ctx, query, r.key, raw); err != nil {
		return fmt.Errorf("upsert app_state: %w", err)
	}
	if err := syncProducts(ctx, tx, state.Products); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// syncProducts reemplaza la proyección app_products por los productos de la instantánea.
// price viaja como []decimal.Decimal -> numeric[] (codec registrado en NewPool).
func syncProducts(ctx context.Context, tx pgx.Tx, products []entity.Product) error {
	n := len(products)
	ids, companies, names, skus, statuses := make([]string, n), make([]string, n), make([]string, n), make([]string, n), make([]string, n)
	stocks := make([]int32, n)
	prices := make([]decimal.Decimal, n)
	for i, p := range products {
		ids[i], companies[i], names[i], skus[i], statuses[i] = p.ID, p.CompanyID, p.Name, p.SKU, p.Status
		stocks[i] = int32(p.Stock)
		prices[i] = p.Price.Round(2)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM app_products WHERE NOT (id = ANY($1))`, ids); err != nil {
		return fmt.Errorf("delete app_products: %w", err)
	}
	query := `
		INSERT INTO app_products (id, company_id, name, sku, stock, price, status, updated_at)
		SELECT u.id, u.company_id, u.name, u.sku, u.stock, u.price, u.status, now()
		FROM unnest($1::text[], $2::text[], $3::text[], $4::text[], $5::int[], $6::numeric[], $7::text[])
		     AS u(id, company_id, name, sku, stock, price, status)
		ON CONFLICT (id) DO UPDATE SET
		    company_id = EXCLUDED.company_id, name = EXCLUDED.name, sku = EXCLUDED.sku,
		    stock = EXCLUDED.stock, price = EXCLUDED.price, status = EXCLUDED.status,
		    updated_at = EXCLUDED.updated_at`
	if _, err := tx.Exec(ctx, query, ids, companies, names, skus, stocks, prices, statuses); err != nil {
		return fmt.Errorf("upsert app_products: %w", err)
	}
	return nil
}

// Reset borra la instantánea; la siguiente carga vuelve a sembrar.
func (r *StateRepo) Reset(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM app_state WHERE key = $1`, r.key); err != nil {
		return fmt.Errorf("delete app_state: %w", err)
	}
	return nil
}
