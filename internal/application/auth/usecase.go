package auth

import (
	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
	"github.com/jhoicas/portal-admin/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, logout y cambio de empresa activa.
type AuthUseCase struct {
	store  *store.Store
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(st *store.Store, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{store: st, jwtCfg: jwtCfg}
}

// Login abre la sesión en el store y emite un JWT para la empresa dueña del usuario.
// Cualquier fallo (email desconocido, usuario inactivo, contraseña incorrecta) es ErrUnauthorized.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, ok := uc.store.Login(in.Email, in.Password)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	company, _ := uc.store.FindCompany(user.CompanyID)
	return uc.issue(user, company)
}

// Logout registra la salida del usuario del token. El token sigue siendo válido hasta expirar;
// el cliente lo descarta.
func (uc *AuthUseCase) Logout(actor store.Actor) {
	uc.store.LogoutAs(actor)
}

// SwitchCompany cambia la empresa activa del usuario del token y emite un token nuevo para ella.
// Solo Admin puede entrar a empresas ajenas. Los usuarios inactivos no pueden cambiar.
func (uc *AuthUseCase) SwitchCompany(actor store.Actor, companyID string) (*dto.LoginResponse, error) {
	user, ok := uc.store.FindUser(actor.UserID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	company, ok := uc.store.FindCompany(companyID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !user.IsActive() || (user.Role != entity.RoleAdmin && user.CompanyID != companyID) {
		return nil, domain.ErrForbidden
	}
	if !uc.store.SetCurrentCompanyAs(actor, companyID) {
		return nil, domain.ErrNotFound
	}
	return uc.issue(user, company)
}

// Me devuelve el usuario del token y la empresa activa.
func (uc *AuthUseCase) Me(userID, companyID string) (*dto.LoginResponse, error) {
	user, ok := uc.store.FindUser(userID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	company, _ := uc.store.FindCompany(companyID)
	return &dto.LoginResponse{
		User:    dto.ToUserResponse(user),
		Company: dto.ToCompanyResponse(company),
	}, nil
}

func (uc *AuthUseCase) issue(user entity.User, company entity.Company) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:    user.ID,
		CompanyID: company.ID,
		Role:      user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		User:    dto.ToUserResponse(user),
		Company: dto.ToCompanyResponse(company),
	}, nil
}
