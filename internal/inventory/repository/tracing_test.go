package repository

import (
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
)

type recordingItemRepo struct {
	items       map[uint]*domain.Item
	adjustCalls int
	adjustErr   error
}

func (r *recordingItemRepo) Create(item *domain.Item) error            { return nil }
func (r *recordingItemRepo) FindByCode(code string) (*domain.Item, error) {
	return nil, domain.ErrItemNotFound
}
func (r *recordingItemRepo) FindAll(limit, offset int) ([]domain.Item, error) { return nil, nil }
func (r *recordingItemRepo) Update(item *domain.Item) error                   { return nil }
func (r *recordingItemRepo) Delete(id uint) error                             { return nil }
func (r *recordingItemRepo) Count() (int64, error)                            { return 0, nil }
func (r *recordingItemRepo) TotalStock() (int64, error)                       { return 0, nil }
func (r *recordingItemRepo) CountLowStock() (int64, error)                    { return 0, nil }
func (r *recordingItemRepo) FindLowStock() ([]domain.Item, error)             { return nil, nil }

func (r *recordingItemRepo) FindByID(id uint) (*domain.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

func (r *recordingItemRepo) AdjustStock(itemID uint, delta int) error {
	r.adjustCalls++
	if r.adjustErr != nil {
		return r.adjustErr
	}
	if item, ok := r.items[itemID]; ok {
		item.CurrentStock += delta
	}
	return nil
}

// sharedProvider is installed once: the package-level tracer in
// tracing.go is a global delegating tracer that binds to the first
// provider ever set, so per-test SetTracerProvider calls would never
// re-route spans to a fresh recorder. Each test instead registers its
// own recorder on the shared provider, capturing only its own spans.
var sharedProvider *sdktrace.TracerProvider

func newSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	if sharedProvider == nil {
		sharedProvider = sdktrace.NewTracerProvider()
		otel.SetTracerProvider(sharedProvider)
	}
	recorder := tracetest.NewSpanRecorder()
	sharedProvider.RegisterSpanProcessor(recorder)
	return recorder
}

func TestItemRepositoryWithTracing_AdjustStockDelegates(t *testing.T) {
	recorder := newSpanRecorder(t)

	inner := &recordingItemRepo{items: map[uint]*domain.Item{
		7: {ID: 7, CurrentStock: 10},
	}}
	repo := NewItemRepositoryWithTracing(inner)

	var _ domain.ItemRepository = repo

	if err := repo.AdjustStock(7, -3); err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}

	if inner.adjustCalls != 1 {
		t.Errorf("inner AdjustStock called %d times, want 1", inner.adjustCalls)
	}
	if got := inner.items[7].CurrentStock; got != 7 {
		t.Errorf("stock = %d, want 7", got)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	if got := spans[0].Name(); got != "repository.AdjustStock" {
		t.Errorf("span name = %q, want repository.AdjustStock", got)
	}
}

func TestItemRepositoryWithTracing_FindByIDRecordsError(t *testing.T) {
	recorder := newSpanRecorder(t)

	repo := NewItemRepositoryWithTracing(&recordingItemRepo{items: map[uint]*domain.Item{}})

	if _, err := repo.FindByID(99); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("FindByID error = %v, want ErrItemNotFound", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	if len(spans[0].Events()) == 0 {
		t.Error("span should record the repository error")
	}
}

func TestItemRepositoryWithTracing_ErrorPropagates(t *testing.T) {
	newSpanRecorder(t)

	adjustErr := errors.New("connection reset")
	repo := NewItemRepositoryWithTracing(&recordingItemRepo{
		items:     map[uint]*domain.Item{1: {ID: 1}},
		adjustErr: adjustErr,
	})

	if err := repo.AdjustStock(1, 5); !errors.Is(err, adjustErr) {
		t.Errorf("AdjustStock error = %v, want %v", err, adjustErr)
	}
}
