package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

// DefaultPermissions permisos de un usuario nuevo cuando no se indican.
var DefaultPermissions = entity.Permissions{Inventory: true, Reports: true, Chat: true}

// WelcomeMailer envía el correo de bienvenida.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, email, name string) dto.SendEmailResponse
}

// UserUseCase aplica reglas de negocio para usuarios de la empresa activa.
type UserUseCase struct {
	store  *store.Store
	mailer WelcomeMailer
}

// NewUserUseCase construye el caso de uso. mailer puede ser nil.
func NewUserUseCase(st *store.Store, mailer WelcomeMailer) *UserUseCase {
	return &UserUseCase{store: st, mailer: mailer}
}

// List lista los usuarios de la empresa con paginación.
func (uc *UserUseCase) List(companyID string, page dto.PageRequest) *dto.UserListResponse {
	page.DefaultPage()
	users := uc.store.Users(companyID)
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range dto.Paginate(users, page) {
		items = append(items, dto.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  page.Response(len(users)),
	}
}

// GetByID obtiene un usuario de la empresa. Usuarios de otra empresa se tratan como inexistentes.
func (uc *UserUseCase) GetByID(companyID, id string) (*dto.UserResponse, error) {
	u, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(u)
	return &resp, nil
}

// Create crea un usuario. Sin CompanyID se asigna a la empresa activa del actor; el email debe ser único.
// La creación queda registrada a nombre del actor.
func (uc *UserUseCase) Create(actor store.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	target := in.CompanyID
	if target == "" {
		target = actor.CompanyID
	}
	if _, ok := uc.store.FindCompany(target); !ok {
		return nil, fmt.Errorf("%w: la empresa %q no existe", domain.ErrInvalidInput, target)
	}
	if uc.emailTaken(in.Email, "") {
		return nil, fmt.Errorf("%w: el email ya está registrado", domain.ErrConflict)
	}
	user := entity.User{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Role:        in.Role,
		CompanyID:   target,
		Status:      in.Status,
		Permissions: DefaultPermissions,
	}
	if user.Status == "" {
		user.Status = entity.UserStatusActive
	}
	if in.Permissions != nil {
		user.Permissions = in.Permissions.ToPermissions()
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	created := uc.store.AddUserAs(actor, user)
	resp := dto.ToUserResponse(created)
	return &resp, nil
}

// Update aplica solo los campos presentes.
func (uc *UserUseCase) Update(companyID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if _, err := uc.scoped(companyID, id); err != nil {
		return nil, err
	}
	if in.Email != nil && uc.emailTaken(*in.Email, id) {
		return nil, fmt.Errorf("%w: el email ya está registrado", domain.ErrConflict)
	}
	if in.CompanyID != nil {
		if _, ok := uc.store.FindCompany(*in.CompanyID); !ok {
			return nil, fmt.Errorf("%w: la empresa %q no existe", domain.ErrInvalidInput, *in.CompanyID)
		}
	}
	patch := entity.UserPatch{
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		CompanyID: in.CompanyID,
		Status:    in.Status,
	}
	if in.Permissions != nil {
		p := in.Permissions.ToPermissions()
		patch.Permissions = &p
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}
	updated, ok := uc.store.UpdateUser(id, patch)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.ToUserResponse(updated)
	return &resp, nil
}

// Delete elimina un usuario de la empresa.
func (uc *UserUseCase) Delete(companyID, id string) error {
	if _, err := uc.scoped(companyID, id); err != nil {
		return err
	}
	if !uc.store.DeleteUser(id) {
		return domain.ErrUserNotFound
	}
	return nil
}

// SendWelcome registra la notificación y envía el correo de bienvenida.
func (uc *UserUseCase) SendWelcome(ctx context.Context, actor store.Actor, id string) (dto.SendEmailResponse, error) {
	u, err := uc.scoped(actor.CompanyID, id)
	if err != nil {
		return dto.SendEmailResponse{}, err
	}
	uc.store.SendSMSAs(actor, u.Email, fmt.Sprintf("Bienvenido %s al sistema administrativo!", u.Name))
	if uc.mailer == nil {
		return dto.SendEmailResponse{Success: true, Message: "Notificación registrada"}, nil
	}
	return uc.mailer.SendWelcome(ctx, u.Email, u.Name), nil
}

func (uc *UserUseCase) scoped(companyID, id string) (entity.User, error) {
	u, ok := uc.store.FindUser(id)
	if !ok || u.CompanyID != companyID {
		return entity.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (uc *UserUseCase) emailTaken(email, exceptID string) bool {
	email = strings.TrimSpace(email)
	for _, u := range uc.store.Users("") {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashear contraseña: %w", err)
	}
	return string(hash), nil
}
