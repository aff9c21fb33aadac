package snapshot_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ggc/internal/application/warehouse"
	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/jhoicas/almacen-ggc/internal/infrastructure/snapshot"
)

func sampleSnapshot(t *testing.T) *entity.Snapshot {
	t.Helper()
	uc := warehouse.NewWarehouseUseCase(nil)
	_, err := uc.RegisterPartner("P1", "Ana", "Rua 1")
	require.NoError(t, err)
	_, err = uc.RegisterProduct("A")
	require.NoError(t, err)
	_, err = uc.RegisterPurchase("P1", "A", 10, decimal.NewFromInt(4))
	require.NoError(t, err)
	_, err = uc.RegisterSale("P1", "A", 3, 7)
	require.NoError(t, err)
	require.NoError(t, uc.AdvanceDate(2))
	return uc.Snapshot()
}

func encoded(t *testing.T, s *entity.Snapshot) []byte {
	t.Helper()
	data, err := snapshot.Marshal(s)
	require.NoError(t, err)
	return data
}

// ──────────────────────────────────────────────────────────────────────────────
// Codec
// ──────────────────────────────────────────────────────────────────────────────

func TestCodec_RoundTrip(t *testing.T) {
	s := sampleSnapshot(t)
	data := encoded(t, s)

	got, err := snapshot.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Date)
	assert.Equal(t, data, encoded(t, got))

	_, err = snapshot.Unmarshal([]byte{0xc1})
	assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)
}

func TestChecksum(t *testing.T) {
	a := snapshot.Checksum([]byte("almacen"))
	assert.Len(t, a, 32)
	assert.Equal(t, a, snapshot.Checksum([]byte("almacen")))
	assert.NotEqual(t, a, snapshot.Checksum([]byte("almacén")))
}

// ──────────────────────────────────────────────────────────────────────────────
// FileStore
// ──────────────────────────────────────────────────────────────────────────────

func TestFileStore_SaveLoadList(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "snaps")
	store, err := snapshot.NewFileStore(dir)
	require.NoError(t, err)

	s := sampleSnapshot(t)
	require.NoError(t, store.Save(ctx, "lunes", s))
	require.NoError(t, store.Save(ctx, "domingo", s))

	got, err := store.Load(ctx, "lunes")
	require.NoError(t, err)
	assert.Equal(t, encoded(t, s), encoded(t, got))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "domingo", infos[0].Name)
	assert.Equal(t, "lunes", infos[1].Name)
	assert.Equal(t, 2, infos[1].Date)
	assert.NotEmpty(t, infos[0].ID)
	assert.NotEqual(t, infos[0].ID, infos[1].ID)

	// sin temporales sueltos
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFileStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	store, err := snapshot.NewFileStore(t.TempDir())
	require.NoError(t, err)

	s := sampleSnapshot(t)
	require.NoError(t, store.Save(ctx, "x", s))
	s.Date = 9
	require.NoError(t, store.Save(ctx, "x", s))

	got, err := store.Load(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, 9, got.Date)

	infos, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestFileStore_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := snapshot.NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.Load(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	for _, name := range []string{"", "..", "a/b", `a\b`} {
		assert.ErrorIs(t, store.Save(ctx, name, sampleSnapshot(t)), domain.ErrInvalidInput, "nombre %q", name)
	}

	require.NoError(t, store.Save(ctx, "roto", sampleSnapshot(t)))
	path := filepath.Join(dir, "roto.ggc")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = store.Load(ctx, "roto")
	assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)

	infos, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos, "los archivos corruptos no se listan")
}
