package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. Si Status viene vacío se deriva del stock.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	SKU      string          `json:"sku" validate:"required,max=64"`
	Category string          `json:"category" validate:"required"`
	Stock    int             `json:"stock" validate:"min=0"`
	Price    decimal.Decimal `json:"price" validate:"dgte0"`
	Status   string          `json:"status" validate:"omitempty,oneof=Disponible 'Bajo Stock' Agotado"`
}

// UpdateProductRequest campos opcionales.
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU      *string          `json:"sku" validate:"omitempty,max=64"`
	Category *string          `json:"category"`
	Stock    *int             `json:"stock" validate:"omitempty,min=0"`
	Price    *decimal.Decimal `json:"price" validate:"omitempty,dgte0"`
	Status   *string          `json:"status" validate:"omitempty,oneof=Disponible 'Bajo Stock' Agotado"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
}

// ProductListResponse listado filtrado y paginado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductFilter filtros de listado.
type ProductFilter struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	Status   string `query:"status"`
	PageRequest
}

// ToProductResponse mapea la entidad.
func ToProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		SKU:       p.SKU,
		Category:  p.Category,
		Stock:     p.Stock,
		Price:     p.Price,
		Status:    p.Status,
	}
}
