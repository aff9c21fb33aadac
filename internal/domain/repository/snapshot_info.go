package repository

import "time"

// SnapshotInfo metadatos de un snapshot guardado.
type SnapshotInfo struct {
	ID      string
	Name    string
	Date    int // fecha del almacén al guardar
	SavedAt time.Time
}
