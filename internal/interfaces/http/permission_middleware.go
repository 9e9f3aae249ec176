package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-admin/internal/domain"
)

// permissionChecker lo implementa *usecase.PermissionService.
type permissionChecker interface {
	HasPermission(userID, permission string) (bool, error)
}

// RequirePermission verifica la bandera de permiso del usuario del token.
// Debe usarse DESPUÉS de AuthMiddleware. Los permisos se leen del store en cada
// petición, así que un cambio de permisos aplica sin volver a iniciar sesión.
//
//   - 401 si el token no trae usuario o el usuario ya no existe.
//   - 403 si el usuario está inactivo o no tiene la bandera.
func RequirePermission(permission string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "user_id no encontrado en el token")
		}
		ok, err := checker.HasPermission(userID, permission)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "el usuario del token ya no existe")
			}
			return errorJSON(c, fiber.StatusInternalServerError, "PERMISSION_CHECK_FAILED", err.Error())
		}
		if !ok {
			return errorJSON(c, fiber.StatusForbidden, "PERMISSION_DENIED", "sin permiso para '"+permission+"'")
		}
		return c.Next()
	}
}
