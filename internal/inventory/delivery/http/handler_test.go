package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
	"github.com/hotelops/housekeeping-inventory/kafka"
	"github.com/hotelops/housekeeping-inventory/pkg/auth"
)

type stubItemRepo struct {
	items map[uint]*domain.Item
}

func (s *stubItemRepo) Create(item *domain.Item) error {
	item.ID = uint(len(s.items) + 1)
	s.items[item.ID] = item
	return nil
}

func (s *stubItemRepo) FindByID(id uint) (*domain.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	copy := *item
	return &copy, nil
}

func (s *stubItemRepo) FindByCode(code string) (*domain.Item, error) {
	return nil, domain.ErrItemNotFound
}

func (s *stubItemRepo) FindAll(limit, offset int) ([]domain.Item, error) {
	var all []domain.Item
	for _, item := range s.items {
		all = append(all, *item)
	}
	return all, nil
}

func (s *stubItemRepo) Update(item *domain.Item) error { s.items[item.ID] = item; return nil }
func (s *stubItemRepo) Delete(id uint) error           { delete(s.items, id); return nil }

func (s *stubItemRepo) AdjustStock(itemID uint, delta int) error {
	item, ok := s.items[itemID]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.CurrentStock += delta
	return nil
}

func (s *stubItemRepo) FindLowStock() ([]domain.Item, error) {
	var low []domain.Item
	for _, item := range s.items {
		if item.IsLowStock() {
			low = append(low, *item)
		}
	}
	return low, nil
}

func (s *stubItemRepo) Count() (int64, error)         { return int64(len(s.items)), nil }
func (s *stubItemRepo) TotalStock() (int64, error)    { return 0, nil }
func (s *stubItemRepo) CountLowStock() (int64, error) { return 0, nil }

type stubTransactionRepo struct {
	records map[uint]*domain.Transaction
	nextID  uint
}

func (s *stubTransactionRepo) Create(t *domain.Transaction) error {
	s.nextID++
	t.ID = s.nextID
	copy := *t
	s.records[t.ID] = &copy
	return nil
}

func (s *stubTransactionRepo) FindByID(id uint) (*domain.Transaction, error) {
	t, ok := s.records[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	copy := *t
	return &copy, nil
}

func (s *stubTransactionRepo) FindAll(limit, offset int) ([]domain.Transaction, error) {
	var all []domain.Transaction
	for _, t := range s.records {
		all = append(all, *t)
	}
	return all, nil
}

func (s *stubTransactionRepo) FindByItem(itemID uint, limit, offset int) ([]domain.Transaction, error) {
	return nil, nil
}

func (s *stubTransactionRepo) FindByType(t string, limit, offset int) ([]domain.Transaction, error) {
	return nil, nil
}

func (s *stubTransactionRepo) Update(t *domain.Transaction) error {
	copy := *t
	s.records[t.ID] = &copy
	return nil
}

func (s *stubTransactionRepo) Delete(id uint) error {
	if _, ok := s.records[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(s.records, id)
	return nil
}

type stubDepreciationRepo struct {
	records map[uint]*domain.Depreciation
	nextID  uint
}

func (s *stubDepreciationRepo) Create(d *domain.Depreciation) error {
	s.nextID++
	d.ID = s.nextID
	copy := *d
	s.records[d.ID] = &copy
	return nil
}

func (s *stubDepreciationRepo) FindByID(id uint) (*domain.Depreciation, error) {
	d, ok := s.records[id]
	if !ok {
		return nil, domain.ErrDepreciationNotFound
	}
	copy := *d
	return &copy, nil
}

func (s *stubDepreciationRepo) FindAll(limit, offset int) ([]domain.Depreciation, error) {
	return nil, nil
}

func (s *stubDepreciationRepo) FindByItem(itemID uint, limit, offset int) ([]domain.Depreciation, error) {
	return nil, nil
}

func (s *stubDepreciationRepo) Update(d *domain.Depreciation) error {
	copy := *d
	s.records[d.ID] = &copy
	return nil
}

func (s *stubDepreciationRepo) Delete(id uint) error { delete(s.records, id); return nil }

// capturingPublisher records published events in memory
type capturingPublisher struct {
	adjusted []kafka.StockAdjustedEvent
	low      []kafka.LowStockEvent
}

func (p *capturingPublisher) PublishStockAdjusted(ctx context.Context, event kafka.StockAdjustedEvent) error {
	p.adjusted = append(p.adjusted, event)
	return nil
}

func (p *capturingPublisher) PublishLowStock(ctx context.Context, event kafka.LowStockEvent) error {
	p.low = append(p.low, event)
	return nil
}

type testServer struct {
	router    *mux.Router
	items     *stubItemRepo
	publisher *capturingPublisher
}

func newTestServer(items ...*domain.Item) *testServer {
	itemRepo := &stubItemRepo{items: make(map[uint]*domain.Item)}
	for _, item := range items {
		itemRepo.items[item.ID] = item
	}

	publisher := &capturingPublisher{}
	handler := NewInventoryHandler(
		itemRepo,
		&stubTransactionRepo{records: make(map[uint]*domain.Transaction)},
		&stubDepreciationRepo{records: make(map[uint]*domain.Depreciation)},
		publisher,
	)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	return &testServer{router: router, items: itemRepo, publisher: publisher}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func staffToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(7, "maria", "staff")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(1, "admin", "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestRecordTransactionEndpoint(t *testing.T) {
	srv := newTestServer(&domain.Item{ID: 1, Code: "TWL-001", Name: "Bath Towel", Unit: "pcs", CurrentStock: 10, MinStock: 2, Status: domain.ItemStatusActive})

	rec := srv.do(t, http.MethodPost, "/api/transactions", staffToken(t), map[string]interface{}{
		"type": "out", "item_id": 1, "quantity": 3, "notes": "room 204",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Errorf("success = false: %s", resp.Error)
	}
	if got := srv.items.items[1].CurrentStock; got != 7 {
		t.Errorf("stock = %d, want 7", got)
	}
	if len(srv.publisher.adjusted) != 1 {
		t.Fatalf("published %d stock adjusted events, want 1", len(srv.publisher.adjusted))
	}
	if event := srv.publisher.adjusted[0]; event.Delta != -3 || event.CurrentStock != 7 {
		t.Errorf("event = %+v, want delta -3 stock 7", event)
	}
	if len(srv.publisher.low) != 0 {
		t.Errorf("unexpected low stock event at stock 7, min 2")
	}
}

func TestRecordTransaction_Unauthorized(t *testing.T) {
	srv := newTestServer(&domain.Item{ID: 1, CurrentStock: 10, Status: domain.ItemStatusActive})

	rec := srv.do(t, http.MethodPost, "/api/transactions", "", map[string]interface{}{
		"type": "out", "item_id": 1, "quantity": 3,
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := srv.items.items[1].CurrentStock; got != 10 {
		t.Errorf("stock = %d, want untouched 10", got)
	}
}

func TestRecordTransaction_UnknownType(t *testing.T) {
	srv := newTestServer(&domain.Item{ID: 1, CurrentStock: 10, Status: domain.ItemStatusActive})

	rec := srv.do(t, http.MethodPost, "/api/transactions", staffToken(t), map[string]interface{}{
		"type": "transfer", "item_id": 1, "quantity": 3,
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", rec.Code, rec.Body.String())
	}
}

func TestRecordDepreciation_InsufficientStock(t *testing.T) {
	srv := newTestServer(&domain.Item{ID: 1, CurrentStock: 3, MinStock: 1, Status: domain.ItemStatusActive})

	rec := srv.do(t, http.MethodPost, "/api/depreciations", staffToken(t), map[string]interface{}{
		"item_id": 1, "quantity": 10, "reason": "water damage",
	})

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body: %s", rec.Code, rec.Body.String())
	}
	if got := srv.items.items[1].CurrentStock; got != 3 {
		t.Errorf("stock = %d, want untouched 3", got)
	}
	if len(srv.publisher.adjusted) != 0 {
		t.Errorf("no events may be published for a rejected write-off")
	}
}

func TestUpdateTransaction_EmitsEventsForOldItem(t *testing.T) {
	srv := newTestServer(
		&domain.Item{ID: 1, Code: "TWL-001", Name: "Bath Towel", Unit: "pcs", CurrentStock: 2, MinStock: 5, Status: "active"},
		&domain.Item{ID: 2, Code: "SHT-001", Name: "Bed Sheet", Unit: "pcs", CurrentStock: 0, MinStock: 0, Status: "active"},
	)

	rec := srv.do(t, http.MethodPost, "/api/transactions", staffToken(t), map[string]interface{}{
		"type": "in", "item_id": 1, "quantity": 10,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}
	if got := srv.items.items[1].CurrentStock; got != 12 {
		t.Fatalf("item 1 stock = %d, want 12", got)
	}

	srv.publisher.adjusted = nil
	srv.publisher.low = nil

	// Move the inbound movement to item 2: item 1 is reverted to 2,
	// dropping it below its minimum of 5
	rec = srv.do(t, http.MethodPut, "/api/transactions/1", staffToken(t), map[string]interface{}{
		"type": "in", "item_id": 2, "quantity": 10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if got := srv.items.items[1].CurrentStock; got != 2 {
		t.Errorf("item 1 stock = %d, want 2", got)
	}
	if got := srv.items.items[2].CurrentStock; got != 10 {
		t.Errorf("item 2 stock = %d, want 10", got)
	}

	if len(srv.publisher.adjusted) != 2 {
		t.Fatalf("published %d adjusted events, want 2 (revert + apply)", len(srv.publisher.adjusted))
	}
	revert := srv.publisher.adjusted[0]
	if revert.ItemID != 1 || revert.Delta != -10 {
		t.Errorf("revert event = item %d delta %d, want item 1 delta -10", revert.ItemID, revert.Delta)
	}
	applied := srv.publisher.adjusted[1]
	if applied.ItemID != 2 || applied.Delta != 10 {
		t.Errorf("apply event = item %d delta %d, want item 2 delta 10", applied.ItemID, applied.Delta)
	}

	if len(srv.publisher.low) != 1 || srv.publisher.low[0].ItemID != 1 {
		t.Errorf("low stock events = %+v, want exactly one for item 1", srv.publisher.low)
	}
}

func TestLowStockEventEmitted(t *testing.T) {
	srv := newTestServer(&domain.Item{ID: 1, Code: "SOAP-01", Name: "Hand Soap", Unit: "btl", CurrentStock: 6, MinStock: 5, Status: domain.ItemStatusActive})

	rec := srv.do(t, http.MethodPost, "/api/transactions", staffToken(t), map[string]interface{}{
		"type": "out", "item_id": 1, "quantity": 1,
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}
	if len(srv.publisher.low) != 1 {
		t.Fatalf("published %d low stock events, want 1", len(srv.publisher.low))
	}
	if event := srv.publisher.low[0]; event.CurrentStock != 5 || event.MinStock != 5 {
		t.Errorf("event = %+v, want stock 5 min 5", event)
	}
}

func TestDeleteTransaction_RequiresAdmin(t *testing.T) {
	srv := newTestServer(&domain.Item{ID: 1, CurrentStock: 10, Status: domain.ItemStatusActive})

	rec := srv.do(t, http.MethodPost, "/api/transactions", staffToken(t), map[string]interface{}{
		"type": "out", "item_id": 1, "quantity": 2,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("record: status = %d", rec.Code)
	}

	rec = srv.do(t, http.MethodDelete, "/api/transactions/1", staffToken(t), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("staff delete: status = %d, want 403", rec.Code)
	}

	rec = srv.do(t, http.MethodDelete, "/api/transactions/1", adminToken(t), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin delete: status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if got := srv.items.items[1].CurrentStock; got != 10 {
		t.Errorf("stock = %d, want reverted 10", got)
	}
}

func TestGetItem_NotFound(t *testing.T) {
	srv := newTestServer()

	rec := srv.do(t, http.MethodGet, "/api/items/42", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("success = true for missing item")
	}
}

func TestCreateItem_Validation(t *testing.T) {
	srv := newTestServer()

	rec := srv.do(t, http.MethodPost, "/api/items", adminToken(t), map[string]interface{}{
		"name": "Bath Towel",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing code and unit", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, "/api/items", adminToken(t), map[string]interface{}{
		"code": "TWL-001", "name": "Bath Towel", "unit": "pcs", "current_stock": 20, "min_stock": 5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}
}

type stubCategoryRepo struct {
	categories map[uint]*domain.Category
	itemCounts map[uint]int64
}

func (s *stubCategoryRepo) Create(c *domain.Category) error {
	c.ID = uint(len(s.categories) + 1)
	s.categories[c.ID] = c
	return nil
}

func (s *stubCategoryRepo) FindByID(id uint) (*domain.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, fmt.Errorf("category not found")
	}
	return c, nil
}

func (s *stubCategoryRepo) FindByName(name string) (*domain.Category, error) {
	return nil, fmt.Errorf("category not found")
}

func (s *stubCategoryRepo) FindAll(limit, offset int) ([]domain.Category, error) { return nil, nil }
func (s *stubCategoryRepo) Update(c *domain.Category) error                      { return nil }
func (s *stubCategoryRepo) Delete(id uint) error                                 { delete(s.categories, id); return nil }
func (s *stubCategoryRepo) CountItems(id uint) (int64, error)                    { return s.itemCounts[id], nil }

type stubSupplierRepo struct{}

func (stubSupplierRepo) Create(*domain.Supplier) error                   { return nil }
func (stubSupplierRepo) FindByID(uint) (*domain.Supplier, error)         { return nil, fmt.Errorf("not found") }
func (stubSupplierRepo) FindAll(int, int) ([]domain.Supplier, error)     { return nil, nil }
func (stubSupplierRepo) Update(*domain.Supplier) error                   { return nil }
func (stubSupplierRepo) Delete(uint) error                               { return nil }

type stubLocationRepo struct{}

func (stubLocationRepo) Create(*domain.Location) error               { return nil }
func (stubLocationRepo) FindByID(uint) (*domain.Location, error)     { return nil, fmt.Errorf("not found") }
func (stubLocationRepo) FindAll(int, int) ([]domain.Location, error) { return nil, nil }
func (stubLocationRepo) Update(*domain.Location) error               { return nil }
func (stubLocationRepo) Delete(uint) error                           { return nil }

func TestCategoryCode_Normalized(t *testing.T) {
	categories := &stubCategoryRepo{
		categories: map[uint]*domain.Category{},
		itemCounts: map[uint]int64{},
	}
	handler := NewCatalogHandler(stubSupplierRepo{}, categories, stubLocationRepo{})

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	send := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	// Missing code is rejected just like a missing name
	rec := send(http.MethodPost, "/api/categories", map[string]string{"name": "Linen"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing code", rec.Code)
	}

	// Lowercase padded codes are stored trimmed and upper-cased
	rec = send(http.MethodPost, "/api/categories", map[string]string{
		"code": "  linen-01 ", "name": "Linen",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}
	if got := categories.categories[1].Code; got != "LINEN-01" {
		t.Errorf("stored code = %q, want LINEN-01", got)
	}

	rec = send(http.MethodPut, "/api/categories/1", map[string]string{"code": "towels"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if got := categories.categories[1].Code; got != "TOWELS" {
		t.Errorf("updated code = %q, want TOWELS", got)
	}

	rec = send(http.MethodPut, "/api/categories/1", map[string]string{"code": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for blank code", rec.Code)
	}
	if got := categories.categories[1].Code; got != "TOWELS" {
		t.Errorf("code after rejected update = %q, want TOWELS", got)
	}
}

func TestDeleteCategory_InUse(t *testing.T) {
	categories := &stubCategoryRepo{
		categories: map[uint]*domain.Category{1: {ID: 1, Name: "Linen"}},
		itemCounts: map[uint]int64{1: 4},
	}
	handler := NewCatalogHandler(stubSupplierRepo{}, categories, stubLocationRepo{})

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodDelete, "/api/categories/1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body: %s", rec.Code, rec.Body.String())
	}
	if _, ok := categories.categories[1]; !ok {
		t.Error("category must not be deleted while in use")
	}

	// Empty it out and delete succeeds.
	categories.itemCounts[1] = 0
	req = httptest.NewRequest(http.MethodDelete, "/api/categories/1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
}
