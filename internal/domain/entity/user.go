package entity

// Roles válidos para User.
const (
	RoleAdmin     = "Admin"
	RoleOperativo = "Operativo"
	RoleViewer    = "Viewer"
)

// Estados de User.
const (
	UserStatusActive   = "Activo"
	UserStatusInactive = "Inactivo"
)

// Permisos por recurso del portal.
const (
	PermUsers     = "users"
	PermCompanies = "companies"
	PermInventory = "inventory"
	PermReports   = "reports"
	PermChat      = "chat"
)

// Permissions banderas de acceso por sección del portal.
type Permissions struct {
	Users     bool `json:"users"`
	Companies bool `json:"companies"`
	Inventory bool `json:"inventory"`
	Reports   bool `json:"reports"`
	Chat      bool `json:"chat"`
}

// Allows indica si la bandera con ese nombre está activa. Nombres desconocidos devuelven false.
func (p Permissions) Allows(name string) bool {
	switch name {
	case PermUsers:
		return p.Users
	case PermCompanies:
		return p.Companies
	case PermInventory:
		return p.Inventory
	case PermReports:
		return p.Reports
	case PermChat:
		return p.Chat
	default:
		return false
	}
}

// User representa un usuario del portal (pertenece a una Company).
type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         string      `json:"role"` // Admin, Operativo, Viewer
	CompanyID    string      `json:"companyId"`
	Status       string      `json:"status"` // Activo, Inactivo
	Permissions  Permissions `json:"permissions"`
	PasswordHash string      `json:"passwordHash,omitempty"` // bcrypt; vacío = usuario demo sin credencial
}

// IsActive indica si el usuario puede iniciar sesión.
func (u User) IsActive() bool { return u.Status == UserStatusActive }

// UserPatch campos opcionales para actualización parcial (merge superficial).
type UserPatch struct {
	Name         *string
	Email        *string
	Role         *string
	CompanyID    *string
	Status       *string
	Permissions  *Permissions
	PasswordHash *string
}

// Apply copia en u los campos no nulos del patch.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.CompanyID != nil {
		u.CompanyID = *p.CompanyID
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.Permissions != nil {
		u.Permissions = *p.Permissions
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	return u
}
