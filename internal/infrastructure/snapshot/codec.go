// Package snapshot serializa el estado del almacén con msgpack y lo guarda en disco.
// Cada archivo es un sobre con metadatos y el checksum blake2b-256 del contenido.
package snapshot

import (
	"bytes"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/blake2b"

	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
)

// envelope formato en disco.
type envelope struct {
	ID       string    `msgpack:"id"`
	Name     string    `msgpack:"name"`
	SavedAt  time.Time `msgpack:"saved_at"`
	Date     int       `msgpack:"date"`
	Checksum []byte    `msgpack:"checksum"`
	Payload  []byte    `msgpack:"payload"`
}

// Marshal codifica el snapshot con msgpack.
func Marshal(s *entity.Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot: codificar: %w", err)
	}
	return data, nil
}

// Unmarshal decodifica un snapshot producido por Marshal.
func Unmarshal(data []byte) (*entity.Snapshot, error) {
	var s entity.Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	return &s, nil
}

// Checksum blake2b-256 del contenido.
func Checksum(payload []byte) []byte {
	sum := blake2b.Sum256(payload)
	return sum[:]
}

func seal(id, name string, savedAt time.Time, s *entity.Snapshot) ([]byte, error) {
	payload, err := Marshal(s)
	if err != nil {
		return nil, err
	}
	env := envelope{
		ID:       id,
		Name:     name,
		SavedAt:  savedAt.UTC(),
		Date:     s.Date,
		Checksum: Checksum(payload),
		Payload:  payload,
	}
	return msgpack.Marshal(&env)
}

func openEnvelope(data []byte) (*envelope, error) {
	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	if !bytes.Equal(env.Checksum, Checksum(env.Payload)) {
		return nil, fmt.Errorf("%w: checksum no coincide", domain.ErrCorruptSnapshot)
	}
	return &env, nil
}
