package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
	"github.com/tu-usuario/pos-pro/internal/realtime"
)

// Subtipos del evento product_updated.
const (
	ProductActionCreated      = "created"
	ProductActionStockUpdated = "stock_updated"
)

// ProductUseCase casos de uso del inventario: listado, alta y ajuste de stock.
// Las mutaciones exitosas publican product_updated por el canal realtime.
type ProductUseCase struct {
	repo        repository.ProductRepository
	broadcaster Broadcaster
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, broadcaster Broadcaster) *ProductUseCase {
	return &ProductUseCase{repo: repo, broadcaster: broadcaster}
}

// List devuelve todos los productos ordenados por nombre.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Create crea un producto nuevo. Stock por defecto 0 si no se envía.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Category == "" || in.PurchasePrice == nil || in.SellingPrice == nil {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchasePrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	stock := 0
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		stock = *in.Stock
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Category:      in.Category,
		PurchasePrice: *in.PurchasePrice,
		SellingPrice:  *in.SellingPrice,
		Stock:         stock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	uc.publish(ProductActionCreated, out)
	return out, nil
}

// AdjustStock fija el stock de un producto (set directo, no delta) y refresca
// updated_at. Devuelve ErrNotFound si el producto no existe.
func (uc *ProductUseCase) AdjustStock(id string, stock int) (*dto.ProductResponse, error) {
	if stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Stock = stock
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	uc.publish(ProductActionStockUpdated, out)
	return out, nil
}

func (uc *ProductUseCase) publish(action string, p *dto.ProductResponse) {
	if uc.broadcaster == nil {
		return
	}
	uc.broadcaster.Broadcast(realtime.EventProductUpdated, dto.ProductEventDTO{
		Action:  action,
		Product: *p,
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		Stock:         p.Stock,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
