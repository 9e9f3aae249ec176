package dto

import "github.com/jhoicas/portal-admin/internal/domain/entity"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Country  string `json:"country" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3"`
	Timezone string `json:"timezone" validate:"required"`
}

// UpdateCompanyRequest campos opcionales.
type UpdateCompanyRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Country  *string `json:"country"`
	Currency *string `json:"currency" validate:"omitempty,len=3"`
	Timezone *string `json:"timezone"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Currency string `json:"currency"`
	Timezone string `json:"timezone"`
}

// ToCompanyResponse mapea la entidad.
func ToCompanyResponse(c entity.Company) CompanyResponse {
	return CompanyResponse(c)
}
