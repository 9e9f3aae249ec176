package repository

import (
	"context"

	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

// StateKey clave fija bajo la que se guarda la instantánea completa del portal.
const StateKey = "admin-portal-storage"

// StateRepository define el puerto de persistencia de la instantánea del estado (DIP).
// Load devuelve (nil, nil) si no hay nada guardado.
type StateRepository interface {
	Load(ctx context.Context) (*entity.State, error)
	Save(ctx context.Context, state *entity.State) error
}
