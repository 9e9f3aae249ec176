package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/portal-admin/internal/domain/entity"
	"github.com/jhoicas/portal-admin/internal/domain/repository"
)

var _ repository.StateRepository = (*FileStateRepo)(nil)

// FileStateRepo guarda la instantánea como un archivo JSON local.
// La escritura va a un temporal y se renombra para no dejar archivos a medias.
type FileStateRepo struct {
	path string
}

// NewFileStateRepository construye el adaptador para la ruta dada.
func NewFileStateRepository(path string) *FileStateRepo {
	return &FileStateRepo{path: path}
}

// Load lee la instantánea. Devuelve (nil, nil) si el archivo no existe.
func (r *FileStateRepo) Load(_ context.Context) (*entity.State, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer instantánea: %w", err)
	}
	var state entity.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decodificar instantánea: %w", err)
	}
	return &state, nil
}

// Save reemplaza la instantánea.
func (r *FileStateRepo) Save(_ context.Context, state *entity.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("codificar instantánea: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("crear directorio: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("escribir instantánea: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("reemplazar instantánea: %w", err)
	}
	return nil
}

// Reset borra el archivo. No falla si ya no existía.
func (r *FileStateRepo) Reset(_ context.Context) error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar instantánea: %w", err)
	}
	return nil
}
