package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

// LowStockMailer envía la alerta de stock bajo.
type LowStockMailer interface {
	SendLowStockAlert(ctx context.Context, email, productName string, stock int) dto.SendEmailResponse
}

// ProductUseCase casos de uso CRUD para productos de la empresa activa.
type ProductUseCase struct {
	store  *store.Store
	mailer LowStockMailer
}

// NewProductUseCase construye el caso de uso. mailer puede ser nil.
func NewProductUseCase(st *store.Store, mailer LowStockMailer) *ProductUseCase {
	return &ProductUseCase{store: st, mailer: mailer}
}

// List filtra por texto (nombre o SKU), categoría y estado, con paginación.
func (uc *ProductUseCase) List(companyID string, f dto.ProductFilter) *dto.ProductListResponse {
	f.DefaultPage()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var matched []entity.Product
	for _, p := range uc.store.Products(companyID) {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		matched = append(matched, p)
	}
	items := make([]dto.ProductResponse, 0, len(matched))
	for _, p := range dto.Paginate(matched, f.PageRequest) {
		items = append(items, dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  f.Response(len(matched)),
	}
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	p, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(p)
	return &resp, nil
}

// Create crea un producto en la empresa activa del actor. Sin Status se deriva del stock inicial.
func (uc *ProductUseCase) Create(actor store.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	companyID := actor.CompanyID
	if uc.skuTaken(companyID, in.SKU, "") {
		return nil, fmt.Errorf("%w: el SKU %q ya existe", domain.ErrConflict, in.SKU)
	}
	status := in.Status
	if status == "" {
		status = entity.StatusForStock(in.Stock)
	}
	p := uc.store.AddProductAs(actor, entity.Product{
		Name:      strings.TrimSpace(in.Name),
		SKU:       strings.TrimSpace(in.SKU),
		Category:  in.Category,
		Stock:     in.Stock,
		Price:     in.Price,
		CompanyID: companyID,
		Status:    status,
	})
	resp := dto.ToProductResponse(p)
	return &resp, nil
}

// Update aplica solo los campos presentes. Cambiar Stock no cambia Status.
func (uc *ProductUseCase) Update(actor store.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	companyID := actor.CompanyID
	if _, err := uc.scoped(companyID, id); err != nil {
		return nil, err
	}
	if in.SKU != nil && uc.skuTaken(companyID, *in.SKU, id) {
		return nil, fmt.Errorf("%w: el SKU %q ya existe", domain.ErrConflict, *in.SKU)
	}
	p, ok := uc.store.UpdateProductAs(actor, id, entity.ProductPatch{
		Name:     in.Name,
		SKU:      in.SKU,
		Category: in.Category,
		Stock:    in.Stock,
		Price:    in.Price,
		Status:   in.Status,
	})
	if !ok {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToProductResponse(p)
	return &resp, nil
}

// Delete elimina un producto de la empresa.
func (uc *ProductUseCase) Delete(companyID, id string) error {
	if _, err := uc.scoped(companyID, id); err != nil {
		return err
	}
	if !uc.store.DeleteProduct(id) {
		return domain.ErrNotFound
	}
	return nil
}

// LowStock productos con stock <= LowStockThreshold.
func (uc *ProductUseCase) LowStock(companyID string) []dto.ProductResponse {
	out := []dto.ProductResponse{}
	for _, p := range uc.store.Products(companyID) {
		if p.Stock <= entity.LowStockThreshold {
			out = append(out, dto.ToProductResponse(p))
		}
	}
	return out
}

// SendLowStockAlert avisa por correo del stock de un producto.
func (uc *ProductUseCase) SendLowStockAlert(ctx context.Context, companyID, id, email string) (dto.SendEmailResponse, error) {
	p, err := uc.scoped(companyID, id)
	if err != nil {
		return dto.SendEmailResponse{}, err
	}
	if uc.mailer == nil {
		return dto.SendEmailResponse{}, fmt.Errorf("%w: envío de correo no configurado", domain.ErrMisconfigured)
	}
	return uc.mailer.SendLowStockAlert(ctx, email, p.Name, p.Stock), nil
}

func (uc *ProductUseCase) scoped(companyID, id string) (entity.Product, error) {
	p, ok := uc.store.FindProduct(id)
	if !ok || p.CompanyID != companyID {
		return entity.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (uc *ProductUseCase) skuTaken(companyID, sku, exceptID string) bool {
	sku = strings.TrimSpace(sku)
	for _, p := range uc.store.Products(companyID) {
		if p.ID != exceptID && strings.EqualFold(p.SKU, sku) {
			return true
		}
	}
	return false
}
