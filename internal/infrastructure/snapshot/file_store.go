package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/jhoicas/almacen-ggc/internal/domain/repository"
)

const fileExt = ".ggc"

// FileStore implementa repository.SnapshotRepository con un archivo por snapshot en dir.
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore crea el directorio si no existe.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: crear %s: %w", dir, err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

func (f *FileStore) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: nombre de snapshot %q", domain.ErrInvalidInput, name)
	}
	return filepath.Join(f.dir, name+fileExt), nil
}

// Save escribe en un archivo temporal y lo renombra, así un fallo no deja el snapshot a medias.
func (f *FileStore) Save(_ context.Context, name string, s *entity.Snapshot) error {
	path, err := f.path(name)
	if err != nil {
		return err
	}
	data, err := seal(uuid.NewString(), name, f.now(), s)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("snapshot: temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: escribir: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: cerrar: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("snapshot: renombrar: %w", err)
	}
	return nil
}

// Load lee y verifica el snapshot.
func (f *FileStore) Load(_ context.Context, name string) (*entity.Snapshot, error) {
	path, err := f.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", domain.ErrSnapshotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: leer %s: %w", path, err)
	}
	env, err := openEnvelope(data)
	if err != nil {
		return nil, err
	}
	return Unmarshal(env.Payload)
}

// List snapshots del directorio ordenados por nombre. Los archivos ilegibles se omiten.
func (f *FileStore) List(_ context.Context) ([]repository.SnapshotInfo, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("snapshot: listar %s: %w", f.dir, err)
	}
	var out []repository.SnapshotInfo
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != fileExt {
			continue
		}
		data, err := os.ReadFile(filepath.Join(f.dir, e.Name()))
		if err != nil {
			continue
		}
		env, err := openEnvelope(data)
		if err != nil {
			continue
		}
		out = append(out, repository.SnapshotInfo{ID: env.ID, Name: env.Name, Date: env.Date, SavedAt: env.SavedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
