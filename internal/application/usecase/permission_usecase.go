package usecase

import (
	"fmt"

	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

// PermissionService decide si un usuario puede usar una sección del portal.
// Es el único punto de la aplicación que conoce las banderas de permisos.
type PermissionService struct {
	store *store.Store
}

// NewPermissionService construye el servicio de permisos.
func NewPermissionService(st *store.Store) *PermissionService {
	return &PermissionService{store: st}
}

// HasPermission informa si el usuario está activo y tiene la bandera indicada.
// Los Admin tienen acceso a todo. Devuelve error si el usuario ya no existe.
func (s *PermissionService) HasPermission(userID, permission string) (bool, error) {
	if userID == "" || permission == "" {
		return false, fmt.Errorf("permiso: userID y permission son obligatorios")
	}
	u, ok := s.store.FindUser(userID)
	if !ok {
		return false, domain.ErrUserNotFound
	}
	if !u.IsActive() {
		return false, nil
	}
	if u.Role == entity.RoleAdmin {
		return true, nil
	}
	return u.Permissions.Allows(permission), nil
}
