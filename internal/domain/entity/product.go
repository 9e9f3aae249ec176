package entity

import "github.com/shopspring/decimal"

// Estados de Product.
const (
	ProductStatusAvailable = "Disponible"
	ProductStatusLowStock  = "Bajo Stock"
	ProductStatusSoldOut   = "Agotado"
)

// LowStockThreshold límite (inclusive) bajo el cual un producto se sugiere como "Bajo Stock".
const LowStockThreshold = 5

// Product representa un producto del inventario de una empresa.
// Status lo fija quien llama; no se recalcula al cambiar Stock.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	Price     decimal.Decimal `json:"price"`
	CompanyID string          `json:"companyId"`
	Status    string          `json:"status"`
}

// StatusForStock devuelve el estado sugerido para una cantidad en stock.
func StatusForStock(stock int) string {
	switch {
	case stock <= 0:
		return ProductStatusSoldOut
	case stock <= LowStockThreshold:
		return ProductStatusLowStock
	default:
		return ProductStatusAvailable
	}
}

// ProductPatch campos opcionales para actualización parcial.
type ProductPatch struct {
	Name      *string
	SKU       *string
	Category  *string
	Stock     *int
	Price     *decimal.Decimal
	CompanyID *string
	Status    *string
}

// Apply copia en p los campos no nulos del patch. Stock y Status son independientes.
func (pp ProductPatch) Apply(p Product) Product {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.SKU != nil {
		p.SKU = *pp.SKU
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.CompanyID != nil {
		p.CompanyID = *pp.CompanyID
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	return p
}
