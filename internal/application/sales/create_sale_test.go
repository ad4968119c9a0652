package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/application/sales"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
	"github.com/tu-usuario/pos-pro/internal/realtime"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: tx runner en memoria con semántica de rollback
// ──────────────────────────────────────────────────────────────────────────────

// fakeTxStore simula las tablas tocadas por la transacción de venta. El runner
// trabaja sobre una copia y solo aplica al store si fn no devuelve error, igual
// que Begin/Rollback/Commit.
type fakeTxStore struct {
	stock map[string]int // productID -> unidades
	sales []entity.Sale
	items []entity.SaleItem
}

type fakeTxRunner struct {
	store *fakeTxStore
	runs  int
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.TxSaleRepository,
	productRepo repository.TxProductRepository,
) error) error {
	r.runs++
	scratch := &fakeTxStore{
		stock: make(map[string]int, len(r.store.stock)),
		sales: append([]entity.Sale(nil), r.store.sales...),
		items: append([]entity.SaleItem(nil), r.store.items...),
	}
	for k, v := range r.store.stock {
		scratch.stock[k] = v
	}
	if err := fn(&fakeTxSaleRepo{scratch}, &fakeTxProductRepo{scratch}); err != nil {
		return err // rollback: el store original queda intacto
	}
	*r.store = *scratch
	return nil
}

type fakeTxSaleRepo struct{ s *fakeTxStore }

func (r *fakeTxSaleRepo) InsertSale(sale *entity.Sale) error {
	r.s.sales = append(r.s.sales, *sale)
	return nil
}

func (r *fakeTxSaleRepo) InsertItem(item *entity.SaleItem) error {
	r.s.items = append(r.s.items, *item)
	return nil
}

type fakeTxProductRepo struct{ s *fakeTxStore }

func (r *fakeTxProductRepo) DecrementStock(productID string, qty int) error {
	current, ok := r.s.stock[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if current < qty {
		return domain.ErrInsufficientStock
	}
	r.s.stock[productID] = current - qty
	return nil
}

type capturedEvent struct {
	event string
	data  interface{}
}

type fakeBroadcaster struct {
	events []capturedEvent
}

func (b *fakeBroadcaster) Broadcast(event string, data interface{}) {
	b.events = append(b.events, capturedEvent{event, data})
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

const (
	prodCafe   = "11111111-1111-1111-1111-111111111111"
	prodAzucar = "22222222-2222-2222-2222-222222222222"
	cashierID  = "00000000-0000-0000-0000-0000000000aa"
)

func newStore() *fakeTxStore {
	return &fakeTxStore{stock: map[string]int{
		prodCafe:   10,
		prodAzucar: 5,
	}}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_VentaMultiLinea_PersisteYDescuentaStock(t *testing.T) {
	store := newStore()
	bc := &fakeBroadcaster{}
	uc := sales.NewCreateSaleUseCase(&fakeTxRunner{store: store}, bc)

	out, err := uc.CreateSale(context.Background(), cashierID, "Ana Cajera", dto.CreateSaleRequest{
		Customer: "Cliente Mostrador",
		Items: []dto.SaleItemRequest{
			{ProductID: prodCafe, Quantity: 2, UnitPrice: dec("12.50")},
			{ProductID: prodAzucar, Quantity: 3, UnitPrice: dec("4.00")},
		},
	})
	require.NoError(t, err)

	// Total calculado en servidor: 2×12.50 + 3×4.00 = 37.00
	assert.True(t, out.Total.Equal(dec("37.00")), "total esperado 37.00, obtenido %s", out.Total)
	assert.Equal(t, cashierID, out.UserID)
	assert.Equal(t, "Ana Cajera", out.UserName)
	assert.Len(t, out.Items, 2)

	// Stock descontado por línea
	assert.Equal(t, 8, store.stock[prodCafe])
	assert.Equal(t, 2, store.stock[prodAzucar])

	// Persistencia: una cabecera y dos líneas
	require.Len(t, store.sales, 1)
	assert.Len(t, store.items, 2)
	assert.True(t, store.sales[0].Total.Equal(dec("37.00")))
}

func TestCreateSale_SubtotalesPorLinea(t *testing.T) {
	store := newStore()
	uc := sales.NewCreateSaleUseCase(&fakeTxRunner{store: store}, nil)

	out, err := uc.CreateSale(context.Background(), cashierID, "Ana", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: prodCafe, Quantity: 4, UnitPrice: dec("2.25")},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Subtotal.Equal(dec("9.00")), "subtotal = quantity × unit_price")
}

// Stock insuficiente en cualquier línea rechaza la venta COMPLETA: rollback,
// ninguna línea previa queda aplicada y el stock no cambia.
func TestCreateSale_StockInsuficiente_RollbackCompleto(t *testing.T) {
	store := newStore()
	bc := &fakeBroadcaster{}
	uc := sales.NewCreateSaleUseCase(&fakeTxRunner{store: store}, bc)

	_, err := uc.CreateSale(context.Background(), cashierID, "Ana", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: prodCafe, Quantity: 2, UnitPrice: dec("12.50")}, // esta línea sí alcanza
			{ProductID: prodAzucar, Quantity: 6, UnitPrice: dec("4.00")}, // solo hay 5
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, store.stock[prodCafe], "la primera línea debe revertirse con el rollback")
	assert.Equal(t, 5, store.stock[prodAzucar], "el stock nunca queda negativo ni parcialmente descontado")
	assert.Empty(t, store.sales, "no debe quedar cabecera de venta")
	assert.Empty(t, store.items, "no deben quedar líneas de venta")
	assert.Empty(t, bc.events, "una venta fallida no publica sale_created")
}

func TestCreateSale_ProductoInexistente_RollbackCompleto(t *testing.T) {
	store := newStore()
	uc := sales.NewCreateSaleUseCase(&fakeTxRunner{store: store}, nil)

	_, err := uc.CreateSale(context.Background(), cashierID, "Ana", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: prodCafe, Quantity: 1, UnitPrice: dec("12.50")},
			{ProductID: "99999999-9999-9999-9999-999999999999", Quantity: 1, UnitPrice: dec("1.00")},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, store.stock[prodCafe])
	assert.Empty(t, store.sales)
}

func TestCreateSale_SinLineas_RechazaSinAbrirTransaccion(t *testing.T) {
	runner := &fakeTxRunner{store: newStore()}
	uc := sales.NewCreateSaleUseCase(runner, nil)

	_, err := uc.CreateSale(context.Background(), cashierID, "Ana", dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, runner.runs, "la validación debe fallar antes de abrir transacción")
}

func TestCreateSale_CantidadInvalida_Rechaza(t *testing.T) {
	runner := &fakeTxRunner{store: newStore()}
	uc := sales.NewCreateSaleUseCase(runner, nil)

	_, err := uc.CreateSale(context.Background(), cashierID, "Ana", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: prodCafe, Quantity: 0, UnitPrice: dec("12.50")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, runner.runs)
}

// Tras confirmar la transacción se publica sale_created con la venta completa.
func TestCreateSale_PublicaSaleCreated(t *testing.T) {
	bc := &fakeBroadcaster{}
	uc := sales.NewCreateSaleUseCase(&fakeTxRunner{store: newStore()}, bc)

	out, err := uc.CreateSale(context.Background(), cashierID, "Ana", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: prodCafe, Quantity: 1, UnitPrice: dec("12.50")},
		},
	})
	require.NoError(t, err)

	require.Len(t, bc.events, 1)
	assert.Equal(t, realtime.EventSaleCreated, bc.events[0].event)

	payload, ok := bc.events[0].data.(*dto.SaleResponse)
	require.True(t, ok, "el payload del evento debe ser el SaleResponse")
	assert.Equal(t, out.ID, payload.ID)
}
