package command

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
)

// Fake ItemRepository. AdjustStock mirrors the store contract: a single
// guarded increment, safe under concurrent callers.
type fakeItemRepo struct {
	mu          sync.Mutex
	items       map[uint]*domain.Item
	adjustCalls int
	failOnCall  int // fail the Nth AdjustStock call (1-based); 0 never fails
}

func newFakeItemRepo(items ...*domain.Item) *fakeItemRepo {
	m := make(map[uint]*domain.Item)
	for _, item := range items {
		m[item.ID] = item
	}
	return &fakeItemRepo{items: m}
}

func (f *fakeItemRepo) Create(item *domain.Item) error { f.items[item.ID] = item; return nil }

func (f *fakeItemRepo) FindByID(id uint) (*domain.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	copy := *item
	return &copy, nil
}

func (f *fakeItemRepo) FindByCode(code string) (*domain.Item, error) {
	for _, item := range f.items {
		if item.Code == code {
			return item, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (f *fakeItemRepo) FindAll(limit, offset int) ([]domain.Item, error) { return nil, nil }
func (f *fakeItemRepo) Update(item *domain.Item) error                   { f.items[item.ID] = item; return nil }
func (f *fakeItemRepo) Delete(id uint) error                             { delete(f.items, id); return nil }

func (f *fakeItemRepo) AdjustStock(itemID uint, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.adjustCalls++
	if f.failOnCall != 0 && f.adjustCalls == f.failOnCall {
		return fmt.Errorf("store rejected adjustment")
	}
	item, ok := f.items[itemID]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.CurrentStock += delta
	return nil
}

func (f *fakeItemRepo) FindLowStock() ([]domain.Item, error) { return nil, nil }
func (f *fakeItemRepo) Count() (int64, error)                { return int64(len(f.items)), nil }
func (f *fakeItemRepo) TotalStock() (int64, error)           { return 0, nil }
func (f *fakeItemRepo) CountLowStock() (int64, error)        { return 0, nil }

func (f *fakeItemRepo) stock(id uint) int { return f.items[id].CurrentStock }

// Fake TransactionRepository
type fakeTransactionRepo struct {
	records    map[uint]*domain.Transaction
	nextID     uint
	failCreate bool
	failUpdate bool
	failDelete bool
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{records: make(map[uint]*domain.Transaction)}
}

func (f *fakeTransactionRepo) Create(t *domain.Transaction) error {
	if f.failCreate {
		return fmt.Errorf("insert rejected")
	}
	f.nextID++
	t.ID = f.nextID
	copy := *t
	f.records[t.ID] = &copy
	return nil
}

func (f *fakeTransactionRepo) FindByID(id uint) (*domain.Transaction, error) {
	t, ok := f.records[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	copy := *t
	return &copy, nil
}

func (f *fakeTransactionRepo) FindAll(limit, offset int) ([]domain.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) FindByItem(itemID uint, limit, offset int) ([]domain.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) FindByType(t string, limit, offset int) ([]domain.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) Update(t *domain.Transaction) error {
	if f.failUpdate {
		return fmt.Errorf("update rejected")
	}
	copy := *t
	f.records[t.ID] = &copy
	return nil
}

func (f *fakeTransactionRepo) Delete(id uint) error {
	if f.failDelete {
		return fmt.Errorf("delete rejected")
	}
	if _, ok := f.records[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(f.records, id)
	return nil
}

// Fake DepreciationRepository
type fakeDepreciationRepo struct {
	records    map[uint]*domain.Depreciation
	nextID     uint
	failCreate bool
	failDelete bool
}

func newFakeDepreciationRepo() *fakeDepreciationRepo {
	return &fakeDepreciationRepo{records: make(map[uint]*domain.Depreciation)}
}

func (f *fakeDepreciationRepo) Create(d *domain.Depreciation) error {
	if f.failCreate {
		return fmt.Errorf("insert rejected")
	}
	f.nextID++
	d.ID = f.nextID
	copy := *d
	f.records[d.ID] = &copy
	return nil
}

func (f *fakeDepreciationRepo) FindByID(id uint) (*domain.Depreciation, error) {
	d, ok := f.records[id]
	if !ok {
		return nil, domain.ErrDepreciationNotFound
	}
	copy := *d
	return &copy, nil
}

func (f *fakeDepreciationRepo) FindAll(limit, offset int) ([]domain.Depreciation, error) {
	return nil, nil
}

func (f *fakeDepreciationRepo) FindByItem(itemID uint, limit, offset int) ([]domain.Depreciation, error) {
	return nil, nil
}

func (f *fakeDepreciationRepo) Update(d *domain.Depreciation) error {
	copy := *d
	f.records[d.ID] = &copy
	return nil
}

func (f *fakeDepreciationRepo) Delete(id uint) error {
	if f.failDelete {
		return fmt.Errorf("delete rejected")
	}
	if _, ok := f.records[id]; !ok {
		return domain.ErrDepreciationNotFound
	}
	delete(f.records, id)
	return nil
}

func testItem(id uint, stock, min int) *domain.Item {
	return &domain.Item{
		ID:           id,
		Code:         fmt.Sprintf("ITM-%03d", id),
		Name:         "Bath Towel",
		Unit:         "pcs",
		CurrentStock: stock,
		MinStock:     min,
		Status:       domain.ItemStatusActive,
	}
}

func TestRecordTransaction_DeltaPerType(t *testing.T) {
	tests := []struct {
		transactionType string
		quantity        int
		wantStock       int
	}{
		{domain.TypeIn, 5, 15},
		{domain.TypeReturn, 3, 13},
		{domain.TypeOut, 3, 7},
		{domain.TypeBorrow, 4, 6},
	}

	for _, tt := range tests {
		items := newFakeItemRepo(testItem(1, 10, 5))
		transactions := newFakeTransactionRepo()
		h := NewRecordTransactionHandler(transactions, items)

		tr, err := h.Handle(RecordTransactionCommand{
			Type: tt.transactionType, ItemID: 1, Quantity: tt.quantity, UserID: 7,
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.transactionType, err)
		}
		if items.stock(1) != tt.wantStock {
			t.Errorf("%s: stock = %d, want %d", tt.transactionType, items.stock(1), tt.wantStock)
		}
		if tr.Status != domain.StatusCompleted {
			t.Errorf("%s: status = %s, want completed", tt.transactionType, tr.Status)
		}
		if _, err := transactions.FindByID(tr.ID); err != nil {
			t.Errorf("%s: record not persisted", tt.transactionType)
		}
	}
}

func TestRecordTransaction_Validation(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 10, 5))
	transactions := newFakeTransactionRepo()
	h := NewRecordTransactionHandler(transactions, items)

	tests := []struct {
		name    string
		cmd     RecordTransactionCommand
		wantErr error
	}{
		{"unknown type", RecordTransactionCommand{Type: "transfer", ItemID: 1, Quantity: 1, UserID: 7}, domain.ErrUnknownTransactionType},
		{"zero quantity", RecordTransactionCommand{Type: domain.TypeIn, ItemID: 1, Quantity: 0, UserID: 7}, domain.ErrInvalidQuantity},
		{"negative quantity", RecordTransactionCommand{Type: domain.TypeIn, ItemID: 1, Quantity: -2, UserID: 7}, domain.ErrInvalidQuantity},
		{"missing item", RecordTransactionCommand{Type: domain.TypeIn, ItemID: 99, Quantity: 1, UserID: 7}, domain.ErrItemNotFound},
	}

	for _, tt := range tests {
		if _, err := h.Handle(tt.cmd); !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.wantErr)
		}
	}

	if items.adjustCalls != 0 {
		t.Errorf("validation failures must not touch stock, got %d adjust calls", items.adjustCalls)
	}
	if len(transactions.records) != 0 {
		t.Errorf("validation failures must not persist records, got %d", len(transactions.records))
	}
	if items.stock(1) != 10 {
		t.Errorf("stock changed to %d on rejected input", items.stock(1))
	}
}

func TestRecordTransaction_RollbackOnAdjustFailure(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 10, 5))
	items.failOnCall = 1
	transactions := newFakeTransactionRepo()
	h := NewRecordTransactionHandler(transactions, items)

	_, err := h.Handle(RecordTransactionCommand{Type: domain.TypeOut, ItemID: 1, Quantity: 3, UserID: 7})
	if err == nil {
		t.Fatal("expected error when stock adjustment fails")
	}
	if len(transactions.records) != 0 {
		t.Error("transaction record must be rolled back after adjust failure")
	}
	if items.stock(1) != 10 {
		t.Errorf("stock = %d, want unchanged 10", items.stock(1))
	}
}

func TestRecordTransaction_CreateFailure(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 10, 5))
	transactions := newFakeTransactionRepo()
	transactions.failCreate = true
	h := NewRecordTransactionHandler(transactions, items)

	_, err := h.Handle(RecordTransactionCommand{Type: domain.TypeIn, ItemID: 1, Quantity: 3, UserID: 7})
	if err == nil {
		t.Fatal("expected error when record insert fails")
	}
	if items.adjustCalls != 0 {
		t.Error("no stock adjustment may be attempted when the insert fails")
	}
}

func TestRecordDepreciation(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 7, 5))
	depreciations := newFakeDepreciationRepo()
	h := NewRecordDepreciationHandler(depreciations, items)

	dep, err := h.Handle(RecordDepreciationCommand{ItemID: 1, Quantity: 2, Reason: "damaged", UserID: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items.stock(1) != 5 {
		t.Errorf("stock = %d, want 5", items.stock(1))
	}
	if dep.Status != domain.DepreciationCompleted {
		t.Errorf("status = %s, want completed", dep.Status)
	}
}

func TestRecordDepreciation_InsufficientStock(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 7, 5))
	depreciations := newFakeDepreciationRepo()
	h := NewRecordDepreciationHandler(depreciations, items)

	_, err := h.Handle(RecordDepreciationCommand{ItemID: 1, Quantity: 20, Reason: "damaged", UserID: 7})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}
	if items.stock(1) != 7 {
		t.Errorf("stock = %d, want unchanged 7", items.stock(1))
	}
	if len(depreciations.records) != 0 {
		t.Error("no record may be written for a rejected write-off")
	}
}

func TestRecordDepreciation_RollbackOnAdjustFailure(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 7, 5))
	items.failOnCall = 1
	depreciations := newFakeDepreciationRepo()
	h := NewRecordDepreciationHandler(depreciations, items)

	_, err := h.Handle(RecordDepreciationCommand{ItemID: 1, Quantity: 2, Reason: "damaged", UserID: 7})
	if err == nil {
		t.Fatal("expected error when stock adjustment fails")
	}
	if len(depreciations.records) != 0 {
		t.Error("depreciation record must be rolled back after adjust failure")
	}
	if items.stock(1) != 7 {
		t.Errorf("stock = %d, want unchanged 7", items.stock(1))
	}
}

func TestUpdateTransaction_RevertThenApply(t *testing.T) {
	// Item starts at 7; "in 5" brings it to 12. Editing the movement to
	// "out 2" must land on 12 - 5 - 2 = 5.
	items := newFakeItemRepo(testItem(1, 7, 5))
	transactions := newFakeTransactionRepo()
	record := NewRecordTransactionHandler(transactions, items)
	update := NewUpdateTransactionHandler(transactions, items)

	tr, err := record.Handle(RecordTransactionCommand{Type: domain.TypeIn, ItemID: 1, Quantity: 5, UserID: 7})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if items.stock(1) != 12 {
		t.Fatalf("stock = %d, want 12", items.stock(1))
	}

	updated, err := update.Handle(UpdateTransactionCommand{
		ID: tr.ID, Type: domain.TypeOut, ItemID: 1, Quantity: 2, Status: domain.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if items.stock(1) != 5 {
		t.Errorf("stock = %d, want 5", items.stock(1))
	}
	if updated.Type != domain.TypeOut || updated.Quantity != 2 {
		t.Errorf("record not updated: %+v", updated)
	}
}

func TestUpdateTransaction_MovesEffectBetweenItems(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 10, 5), testItem(2, 20, 5))
	transactions := newFakeTransactionRepo()
	record := NewRecordTransactionHandler(transactions, items)
	update := NewUpdateTransactionHandler(transactions, items)

	tr, err := record.Handle(RecordTransactionCommand{Type: domain.TypeOut, ItemID: 1, Quantity: 4, UserID: 7})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if items.stock(1) != 6 {
		t.Fatalf("item 1 stock = %d, want 6", items.stock(1))
	}

	if _, err := update.Handle(UpdateTransactionCommand{
		ID: tr.ID, Type: domain.TypeOut, ItemID: 2, Quantity: 3, Status: domain.StatusCompleted,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if items.stock(1) != 10 {
		t.Errorf("item 1 stock = %d, want reverted 10", items.stock(1))
	}
	if items.stock(2) != 17 {
		t.Errorf("item 2 stock = %d, want 17", items.stock(2))
	}
}

func TestUpdateTransaction_RestoresStockWhenUpdateFails(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 10, 5))
	transactions := newFakeTransactionRepo()
	record := NewRecordTransactionHandler(transactions, items)

	tr, err := record.Handle(RecordTransactionCommand{Type: domain.TypeIn, ItemID: 1, Quantity: 5, UserID: 7})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	transactions.failUpdate = true
	update := NewUpdateTransactionHandler(transactions, items)
	if _, err := update.Handle(UpdateTransactionCommand{
		ID: tr.ID, Type: domain.TypeOut, ItemID: 1, Quantity: 2,
	}); err == nil {
		t.Fatal("expected error when record update fails")
	}

	// The reverted delta must have been re-applied.
	if items.stock(1) != 15 {
		t.Errorf("stock = %d, want restored 15", items.stock(1))
	}
	stored, _ := transactions.FindByID(tr.ID)
	if stored.Type != domain.TypeIn || stored.Quantity != 5 {
		t.Errorf("record changed despite failed update: %+v", stored)
	}
}

func TestUpdateTransaction_RestoresWhenNewAdjustFails(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 10, 5))
	transactions := newFakeTransactionRepo()
	record := NewRecordTransactionHandler(transactions, items)

	tr, err := record.Handle(RecordTransactionCommand{Type: domain.TypeIn, ItemID: 1, Quantity: 5, UserID: 7})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	// Calls so far: 1 (create). Update makes revert (2) and apply (3);
	// fail the apply.
	items.failOnCall = 3

	update := NewUpdateTransactionHandler(transactions, items)
	if _, err := update.Handle(UpdateTransactionCommand{
		ID: tr.ID, Type: domain.TypeOut, ItemID: 1, Quantity: 2,
	}); err == nil {
		t.Fatal("expected error when applying the new delta fails")
	}

	if items.stock(1) != 15 {
		t.Errorf("stock = %d, want restored 15", items.stock(1))
	}
	stored, _ := transactions.FindByID(tr.ID)
	if stored.Type != domain.TypeIn || stored.Quantity != 5 {
		t.Errorf("record must be restored to old values, got %+v", stored)
	}
}

func TestDeleteTransaction_RevertsExactly(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 7, 5))
	transactions := newFakeTransactionRepo()
	record := NewRecordTransactionHandler(transactions, items)
	del := NewDeleteTransactionHandler(transactions, items)

	tr, err := record.Handle(RecordTransactionCommand{Type: domain.TypeOut, ItemID: 1, Quantity: 2, UserID: 7})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if items.stock(1) != 5 {
		t.Fatalf("stock = %d, want 5", items.stock(1))
	}

	if err := del.Handle(DeleteTransactionCommand{ID: tr.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if items.stock(1) != 7 {
		t.Errorf("stock = %d, want 7 after revert", items.stock(1))
	}
	if _, err := transactions.FindByID(tr.ID); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Error("record must be removed")
	}
}

func TestDeleteTransaction_AbortsWhenRevertFails(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 7, 5))
	transactions := newFakeTransactionRepo()
	record := NewRecordTransactionHandler(transactions, items)

	tr, err := record.Handle(RecordTransactionCommand{Type: domain.TypeOut, ItemID: 1, Quantity: 2, UserID: 7})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	items.failOnCall = 2 // the revert

	del := NewDeleteTransactionHandler(transactions, items)
	if err := del.Handle(DeleteTransactionCommand{ID: tr.ID}); err == nil {
		t.Fatal("expected error when the revert fails")
	}

	// Record and stock both stay as they were.
	if _, err := transactions.FindByID(tr.ID); err != nil {
		t.Error("record must be kept when the revert fails")
	}
	if items.stock(1) != 5 {
		t.Errorf("stock = %d, want untouched 5", items.stock(1))
	}
}

func TestDeleteTransaction_RestoresWhenDeleteFails(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 7, 5))
	transactions := newFakeTransactionRepo()
	record := NewRecordTransactionHandler(transactions, items)

	tr, err := record.Handle(RecordTransactionCommand{Type: domain.TypeOut, ItemID: 1, Quantity: 2, UserID: 7})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	transactions.failDelete = true

	del := NewDeleteTransactionHandler(transactions, items)
	if err := del.Handle(DeleteTransactionCommand{ID: tr.ID}); err == nil {
		t.Fatal("expected error when the record delete fails")
	}
	if items.stock(1) != 5 {
		t.Errorf("stock = %d, want re-applied 5", items.stock(1))
	}
}

func TestUpdateDepreciation_MovesEffect(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 10, 5), testItem(2, 10, 5))
	depreciations := newFakeDepreciationRepo()
	record := NewRecordDepreciationHandler(depreciations, items)
	update := NewUpdateDepreciationHandler(depreciations, items)

	dep, err := record.Handle(RecordDepreciationCommand{ItemID: 1, Quantity: 3, Reason: "worn", UserID: 7})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if items.stock(1) != 7 {
		t.Fatalf("item 1 stock = %d, want 7", items.stock(1))
	}

	if _, err := update.Handle(UpdateDepreciationCommand{
		ID: dep.ID, ItemID: 2, Quantity: 4, Reason: "worn",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if items.stock(1) != 10 {
		t.Errorf("item 1 stock = %d, want reverted 10", items.stock(1))
	}
	if items.stock(2) != 6 {
		t.Errorf("item 2 stock = %d, want 6", items.stock(2))
	}
}

func TestDeleteDepreciation_RestoresStock(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 10, 5))
	depreciations := newFakeDepreciationRepo()
	record := NewRecordDepreciationHandler(depreciations, items)
	del := NewDeleteDepreciationHandler(depreciations, items)

	dep, err := record.Handle(RecordDepreciationCommand{ItemID: 1, Quantity: 4, Reason: "lost", UserID: 7})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if items.stock(1) != 6 {
		t.Fatalf("stock = %d, want 6", items.stock(1))
	}

	if err := del.Handle(DeleteDepreciationCommand{ID: dep.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if items.stock(1) != 10 {
		t.Errorf("stock = %d, want restored 10", items.stock(1))
	}
	if len(depreciations.records) != 0 {
		t.Error("record must be removed")
	}
}

func TestFindByID_IdempotentRead(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 10, 5))
	transactions := newFakeTransactionRepo()
	record := NewRecordTransactionHandler(transactions, items)

	created, err := record.Handle(RecordTransactionCommand{Type: domain.TypeIn, ItemID: 1, Quantity: 3, UserID: 7})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	first, err := transactions.FindByID(created.ID)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := transactions.FindByID(created.ID)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated reads differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if items.stock(1) != 13 {
		t.Errorf("stock = %d, want 13 (reads must not move stock)", items.stock(1))
	}
}

func TestAdjustStock_ConcurrentDeltasAreOrderIndependent(t *testing.T) {
	items := newFakeItemRepo(testItem(1, 7, 5))

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := items.AdjustStock(1, 1); err != nil {
				t.Errorf("adjust +1: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := items.AdjustStock(1, -1); err != nil {
				t.Errorf("adjust -1: %v", err)
			}
		}()
	}
	wg.Wait()

	if items.stock(1) != 7 {
		t.Errorf("stock = %d, want 7 (paired deltas must cancel)", items.stock(1))
	}
}
