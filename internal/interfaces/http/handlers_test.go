package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Repos en memoria mínimos: embeben la interfaz y solo implementan lo que recorren
// los endpoints probados. Un método no implementado hace panic y delata el camino inesperado.

const (
	mainID    = "7a0d9c1e-3b52-4f6a-8e21-0c4b5d6e0001"
	widgetID  = "7a0d9c1e-3b52-4f6a-8e21-0c4b5d6e0101"
	missingID = "00000000-0000-0000-0000-000000000000"
)

type memProducts struct {
	repository.ProductRepository
	m map[string]*entity.Product
}

func (r *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	c := *p
	c.Warehouses = append([]entity.WarehouseStock(nil), p.Warehouses...)
	return &c, nil
}

func (r *memProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProducts) SaveStock(_ context.Context, p *entity.Product) error {
	r.m[p.ID].Warehouses = append([]entity.WarehouseStock(nil), p.Warehouses...)
	return nil
}

type memWarehouses struct {
	repository.WarehouseRepository
	m map[string]*entity.Warehouse
}

func (r *memWarehouses) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if w, ok := r.m[id]; ok {
		c := *w
		return &c, nil
	}
	return nil, nil
}

type memDeliveries struct {
	repository.DeliveryRepository
	m map[string]*entity.Delivery
}

func (r *memDeliveries) GetByID(_ context.Context, id string) (*entity.Delivery, error) {
	d, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	c := *d
	c.Items = append([]entity.OperationItem(nil), d.Items...)
	return &c, nil
}

func (r *memDeliveries) GetForUpdate(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.GetByID(ctx, id)
}

func (r *memDeliveries) UpdateStatus(_ context.Context, d *entity.Delivery) error {
	c := *d
	r.m[d.ID] = &c
	return nil
}

type memHistory struct {
	repository.HistoryRepository
	entries []*entity.HistoryEntry
}

func (r *memHistory) Append(_ context.Context, e *entity.HistoryEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

// txRunner sin rollback: los repos devuelven copias y solo persisten en SaveStock/UpdateStatus,
// que van después de todas las verificaciones.
type txRunner struct{ repos inventory.TxRepos }

func (r txRunner) Run(_ context.Context, fn func(tx inventory.TxRepos) error) error {
	return fn(r.repos)
}

type apiEnv struct {
	app        *fiber.App
	products   *memProducts
	deliveries *memDeliveries
	history    *memHistory
}

// newAPI arma el router real con Widget (10 en Main Warehouse) y la entrega d-1 de 4 Widget en draft.
func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	ref := entity.WarehouseRef{ID: mainID, Name: "Main Warehouse"}
	e := &apiEnv{
		products: &memProducts{m: map[string]*entity.Product{
			widgetID: {ID: widgetID, SKU: "WID-001", Name: "Widget", UnitOfMeasure: "pcs",
				Warehouses: []entity.WarehouseStock{{WarehouseID: mainID, WarehouseName: "Main Warehouse", Stock: 10, MinStock: 2}}},
		}},
		deliveries: &memDeliveries{m: map[string]*entity.Delivery{
			"d-1": {
				DocumentHeader: entity.DocumentHeader{ID: "d-1", Number: "DEL-0001", Status: entity.StatusDraft},
				Customer:       "Cliente", Warehouse: ref,
				Items: []entity.OperationItem{{ProductID: widgetID, ProductName: "Widget", Quantity: 4, Unit: "pcs"}},
			},
		}},
		history: &memHistory{},
	}
	warehouses := &memWarehouses{m: map[string]*entity.Warehouse{
		mainID: {ID: mainID, Name: "Main Warehouse", Type: entity.WarehouseMain, IsActive: true},
	}}
	tx := txRunner{repos: inventory.TxRepos{
		Products:   e.products,
		Warehouses: warehouses,
		Deliveries: e.deliveries,
		History:    e.history,
	}}
	log := logger.Nop()

	e.app = fiber.New()
	apphttp.Router(e.app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(tx, e.products, warehouses, log),
		WarehouseUC: usecase.NewWarehouseUseCase(tx, warehouses),
		DeliveryUC:  inventory.NewDeliveryUseCase(tx, e.deliveries, e.products, warehouses, nil, log),
		JWTSecret:   testJWTSecret,
	})
	return e
}

func (e *apiEnv) do(t *testing.T, method, path, role, body string) (int, dto.ErrorResponse, []byte) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	var errBody dto.ErrorResponse
	_ = json.Unmarshal(raw, &errBody)
	return resp.StatusCode, errBody, raw
}

func TestGetByID_Inexistente404(t *testing.T) {
	e := newAPI(t)

	for _, path := range []string{
		"/api/products/" + missingID,
		"/api/warehouses/" + missingID,
		"/api/deliveries/" + missingID,
		"/api/products/no-es-uuid",
	} {
		status, body, raw := e.do(t, http.MethodGet, path, "staff", "")
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.Equal(t, "NOT_FOUND", body.Code, path)
		assert.NotEqual(t, "null", string(raw), path)
	}
}

func TestUpdate_Inexistente404SinHistorial(t *testing.T) {
	e := newAPI(t)

	status, body, _ := e.do(t, http.MethodPut, "/api/products/"+missingID, "manager", `{"name":"Otro"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Code)

	status, _, _ = e.do(t, http.MethodPut, "/api/warehouses/"+missingID, "manager", `{"name":"Otra"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Empty(t, e.history.entries)
}

func TestGetByID_Existente200(t *testing.T) {
	e := newAPI(t)

	status, _, raw := e.do(t, http.MethodGet, "/api/products/"+widgetID, "staff", "")
	require.Equal(t, http.StatusOK, status)
	var out dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "WID-001", out.SKU)
	assert.Equal(t, 10, out.TotalStock)
}

func TestDeliveryStatus_Inexistente404(t *testing.T) {
	e := newAPI(t)

	status, body, _ := e.do(t, http.MethodPut, "/api/deliveries/"+missingID+"/status", "staff", `{"status":"done"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestDeliveryStatus_StockInsuficiente409(t *testing.T) {
	e := newAPI(t)
	e.products.m[widgetID].Warehouses[0].Stock = 3

	status, body, _ := e.do(t, http.MethodPut, "/api/deliveries/d-1/status", "staff", `{"status":"done"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, 3, e.products.m[widgetID].Warehouses[0].Stock)
	assert.Equal(t, entity.StatusDraft, e.deliveries.m["d-1"].Status)
	assert.Empty(t, e.history.entries)
}

func TestDeliveryStatus_DoneYLuegoTerminal409(t *testing.T) {
	e := newAPI(t)

	status, _, raw := e.do(t, http.MethodPut, "/api/deliveries/d-1/status", "staff", `{"status":"done"}`)
	require.Equal(t, http.StatusOK, status)
	var out dto.DeliveryResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "done", out.Status)
	assert.Equal(t, testUserID, out.ProcessedBy)
	assert.Equal(t, 6, e.products.m[widgetID].Warehouses[0].Stock)

	status, body, _ := e.do(t, http.MethodPut, "/api/deliveries/d-1/status", "staff", `{"status":"waiting"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "TERMINAL_STATUS", body.Code)
	assert.Equal(t, 6, e.products.m[widgetID].Warehouses[0].Stock)
}

func TestDeliveryStatus_EstadoDesconocido400(t *testing.T) {
	e := newAPI(t)

	status, body, _ := e.do(t, http.MethodPut, "/api/deliveries/d-1/status", "staff", `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_STATUS", body.Code)
}

func TestDeliveryDelete_StaffNoPuede(t *testing.T) {
	e := newAPI(t)

	status, body, _ := e.do(t, http.MethodDelete, "/api/deliveries/d-1", "staff", "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body.Code)
	assert.Contains(t, e.deliveries.m, "d-1")
}
