// Package sqlite guarda snapshots del almacén en un archivo SQLite local.
package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/jhoicas/almacen-ggc/internal/domain/repository"
	"github.com/jhoicas/almacen-ggc/internal/infrastructure/snapshot"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implementación de repository.SnapshotRepository sobre SQLite.
type SnapshotRepo struct {
	db *sql.DB
}

// Open abre (o crea) la base en path y prepara el esquema.
func Open(path string) (*SnapshotRepo, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}
	r := &SnapshotRepo{db: db}
	if err := r.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// Close cierra la base.
func (r *SnapshotRepo) Close() error { return r.db.Close() }

func (r *SnapshotRepo) initSchema() error {
	const q = `CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		warehouse_date INTEGER NOT NULL,
		checksum BLOB NOT NULL,
		payload BLOB NOT NULL,
		saved_at TEXT NOT NULL
	);`
	if _, err := r.db.Exec(q); err != nil {
		return fmt.Errorf("sqlite: crear esquema: %w", err)
	}
	return nil
}

// Save reemplaza el snapshot con ese nombre dentro de una transacción.
func (r *SnapshotRepo) Save(ctx context.Context, name string, s *entity.Snapshot) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	payload, err := snapshot.Marshal(s)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name); err != nil {
		return fmt.Errorf("sqlite: borrar snapshot: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, name, warehouse_date, checksum, payload, saved_at) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), name, s.Date, snapshot.Checksum(payload), payload, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("sqlite: insertar snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// Load devuelve domain.ErrSnapshotNotFound si el nombre no existe.
func (r *SnapshotRepo) Load(ctx context.Context, name string) (*entity.Snapshot, error) {
	var checksum, payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT checksum, payload FROM snapshots WHERE name = ?`, name).Scan(&checksum, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", domain.ErrSnapshotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: leer snapshot: %w", err)
	}
	if !bytes.Equal(checksum, snapshot.Checksum(payload)) {
		return nil, fmt.Errorf("%w: checksum no coincide", domain.ErrCorruptSnapshot)
	}
	return snapshot.Unmarshal(payload)
}

// List snapshots ordenados por nombre.
func (r *SnapshotRepo) List(ctx context.Context) ([]repository.SnapshotInfo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, warehouse_date, saved_at FROM snapshots ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listar: %w", err)
	}
	defer rows.Close()

	var out []repository.SnapshotInfo
	for rows.Next() {
		var (
			info    repository.SnapshotInfo
			savedAt string
		)
		if err := rows.Scan(&info.ID, &info.Name, &info.Date, &savedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, savedAt); err == nil {
			info.SavedAt = t
		}
		out = append(out, info)
	}
	return out, rows.Err()
}
