package repository

import (
	"context"

	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
)

// SnapshotRepository define el puerto de persistencia del estado completo del almacén.
// Save reemplaza cualquier snapshot previo con el mismo nombre; Load devuelve
// domain.ErrSnapshotNotFound si no existe.
type SnapshotRepository interface {
	Save(ctx context.Context, name string, snap *entity.Snapshot) error
	Load(ctx context.Context, name string) (*entity.Snapshot, error)
	List(ctx context.Context) ([]SnapshotInfo, error)
}
