package dto

import "github.com/jhoicas/portal-admin/internal/domain/entity"

// PermissionsDTO banderas de acceso por recurso.
type PermissionsDTO struct {
	Users     bool `json:"users"`
	Companies bool `json:"companies"`
	Inventory bool `json:"inventory"`
	Reports   bool `json:"reports"`
	Chat      bool `json:"chat"`
}

// CreateUserRequest entrada para crear un usuario. Password es opcional: sin él el usuario
// entra con cualquier contraseña (modo demo).
type CreateUserRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Email       string          `json:"email" validate:"required,email"`
	Role        string          `json:"role" validate:"required,oneof=Admin Operativo Viewer"`
	CompanyID   string          `json:"company_id" validate:"omitempty"`
	Status      string          `json:"status" validate:"omitempty,oneof=Activo Inactivo"`
	Password    string          `json:"password" validate:"omitempty,min=8"`
	Permissions *PermissionsDTO `json:"permissions"`
}

// UpdateUserRequest campos opcionales; solo se aplican los presentes.
type UpdateUserRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=1,max=200"`
	Email       *string         `json:"email" validate:"omitempty,email"`
	Role        *string         `json:"role" validate:"omitempty,oneof=Admin Operativo Viewer"`
	CompanyID   *string         `json:"company_id"`
	Status      *string         `json:"status" validate:"omitempty,oneof=Activo Inactivo"`
	Password    *string         `json:"password" validate:"omitempty,min=8"`
	Permissions *PermissionsDTO `json:"permissions"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string         `json:"id"`
	CompanyID   string         `json:"company_id"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Role        string         `json:"role"`
	Status      string         `json:"status"`
	Permissions PermissionsDTO `json:"permissions"`
}

// UserListResponse listado de usuarios de la empresa.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT más la sesión abierta.
type LoginResponse struct {
	Token   string          `json:"token"`
	User    UserResponse    `json:"user"`
	Company CompanyResponse `json:"company"`
}

// SwitchCompanyRequest cambio de empresa activa.
type SwitchCompanyRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
}

// ToUserResponse mapea la entidad.
func ToUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Status:      u.Status,
		Permissions: ToPermissionsDTO(u.Permissions),
	}
}

// ToPermissionsDTO mapea las banderas.
func ToPermissionsDTO(p entity.Permissions) PermissionsDTO {
	return PermissionsDTO(p)
}

// ToPermissions convierte el DTO en la entidad.
func (p PermissionsDTO) ToPermissions() entity.Permissions {
	return entity.Permissions(p)
}
