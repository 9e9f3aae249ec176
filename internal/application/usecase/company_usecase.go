package usecase

import (
	"errors"
	"strings"

	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

// CompanyChat lo que la baja de una empresa necesita del chat: ejecutar la baja
// y cancelar sus respuestas pendientes sin que una se cuele en medio.
type CompanyChat interface {
	DeleteCompany(companyID string, del func(string) error) error
}

// CompanyUseCase casos de uso para empresas (tenants).
type CompanyUseCase struct {
	store *store.Store
	chat  CompanyChat
}

// NewCompanyUseCase construye el caso de uso. chat puede ser nil.
func NewCompanyUseCase(st *store.Store, chat CompanyChat) *CompanyUseCase {
	return &CompanyUseCase{store: st, chat: chat}
}

// List todas las empresas.
func (uc *CompanyUseCase) List() []dto.CompanyResponse {
	companies := uc.store.Companies()
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, dto.ToCompanyResponse(c))
	}
	return out
}

// GetByID obtiene una empresa.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	c, ok := uc.store.FindCompany(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToCompanyResponse(c)
	return &resp, nil
}

// Create crea una empresa. La moneda se normaliza a mayúsculas.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	c := uc.store.AddCompany(entity.Company{
		Name:     strings.TrimSpace(in.Name),
		Country:  in.Country,
		Currency: strings.ToUpper(in.Currency),
		Timezone: in.Timezone,
	})
	resp := dto.ToCompanyResponse(c)
	return &resp, nil
}

// Update aplica solo los campos presentes.
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Currency != nil {
		cur := strings.ToUpper(*in.Currency)
		in.Currency = &cur
	}
	c, ok := uc.store.UpdateCompany(id, entity.CompanyPatch{
		Name:     in.Name,
		Country:  in.Country,
		Currency: in.Currency,
		Timezone: in.Timezone,
	})
	if !ok {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToCompanyResponse(c)
	return &resp, nil
}

// Delete elimina una empresa sin dependientes.
func (uc *CompanyUseCase) Delete(id string) error {
	var err error
	if uc.chat != nil {
		err = uc.chat.DeleteCompany(id, uc.store.DeleteCompany)
	} else {
		err = uc.store.DeleteCompany(id)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}
