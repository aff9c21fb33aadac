package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/jhoicas/almacen-ggc/internal/domain/repository"
	"github.com/jhoicas/almacen-ggc/internal/infrastructure/snapshot"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

const snapshotSchema = `
	CREATE TABLE IF NOT EXISTS ggc_snapshots (
		id                UUID PRIMARY KEY,
		name              TEXT NOT NULL UNIQUE,
		warehouse_date    INTEGER NOT NULL,
		available_balance NUMERIC NOT NULL,
		checksum          BYTEA NOT NULL,
		payload           BYTEA NOT NULL,
		saved_at          TIMESTAMPTZ NOT NULL
	)`

// SnapshotRepo implementación del puerto SnapshotRepository sobre PostgreSQL.
// El payload es el mismo msgpack que usa el backend de archivos.
type SnapshotRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewSnapshotRepository construye el adaptador.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool, tx: NewTxRunner(pool)}
}

// Migrate crea la tabla si no existe.
func (r *SnapshotRepo) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("crear tabla ggc_snapshots: %w", err)
	}
	return nil
}

// Save reemplaza el snapshot con ese nombre (o lo crea).
func (r *SnapshotRepo) Save(ctx context.Context, name string, s *entity.Snapshot) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	payload, err := snapshot.Marshal(s)
	if err != nil {
		return err
	}
	available, err := decimal.NewFromString(s.AvailableBalance)
	if err != nil {
		return fmt.Errorf("%w: saldo disponible: %v", domain.ErrCorruptSnapshot, err)
	}
	checksum := snapshot.Checksum(payload)
	now := time.Now().UTC()

	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		update := `
			UPDATE ggc_snapshots
			SET warehouse_date = $2, available_balance = $3, checksum = $4, payload = $5, saved_at = $6
			WHERE name = $1`
		cmd, err := tx.Exec(ctx, update, name, s.Date, available, checksum, payload, now)
		if err != nil {
			return fmt.Errorf("update snapshot: %w", err)
		}
		if cmd.RowsAffected() > 0 {
			return nil
		}
		insert := `
			INSERT INTO ggc_snapshots (id, name, warehouse_date, available_balance, checksum, payload, saved_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err = tx.Exec(ctx, insert, uuid.New(), name, s.Date, available, checksum, payload, now)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("snapshot %q guardado en paralelo: %w", name, err)
			}
			return fmt.Errorf("insert snapshot: %w", err)
		}
		return nil
	})
}

// Load devuelve domain.ErrSnapshotNotFound si no hay snapshot con ese nombre.
func (r *SnapshotRepo) Load(ctx context.Context, name string) (*entity.Snapshot, error) {
	query := `SELECT checksum, payload FROM ggc_snapshots WHERE name = $1`
	var checksum, payload []byte
	err := r.pool.QueryRow(ctx, query, name).Scan(&checksum, &payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", domain.ErrSnapshotNotFound, name)
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	if !bytes.Equal(checksum, snapshot.Checksum(payload)) {
		return nil, fmt.Errorf("%w: checksum no coincide", domain.ErrCorruptSnapshot)
	}
	return snapshot.Unmarshal(payload)
}

// List snapshots ordenados por nombre.
func (r *SnapshotRepo) List(ctx context.Context) ([]repository.SnapshotInfo, error) {
	query := `SELECT id::text, name, warehouse_date, saved_at FROM ggc_snapshots ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []repository.SnapshotInfo
	for rows.Next() {
		var info repository.SnapshotInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Date, &info.SavedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// AvailableBalance saldo disponible guardado con el snapshot, leído como NUMERIC.
func (r *SnapshotRepo) AvailableBalance(ctx context.Context, name string) (decimal.Decimal, error) {
	var available decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT available_balance FROM ggc_snapshots WHERE name = $1`, name).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrSnapshotNotFound, name)
		}
		return decimal.Zero, fmt.Errorf("get balance: %w", err)
	}
	return available, nil
}
