package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// ItemRepositoryWithTracing decorates an ItemRepository with spans on
// the ledger's hot path. All other methods pass through untouched.
type ItemRepositoryWithTracing struct {
	domain.ItemRepository
}

// NewItemRepositoryWithTracing wraps an item repository with tracing
func NewItemRepositoryWithTracing(inner domain.ItemRepository) *ItemRepositoryWithTracing {
	return &ItemRepositoryWithTracing{ItemRepository: inner}
}

// AdjustStock applies a stock delta inside a span recording the delta
func (r *ItemRepositoryWithTracing) AdjustStock(itemID uint, delta int) error {
	_, span := tracer.Start(context.Background(), "repository.AdjustStock",
		trace.WithAttributes(
			attribute.Int64("item.id", int64(itemID)),
			attribute.Int("stock.delta", delta),
		),
	)
	defer span.End()

	if err := r.ItemRepository.AdjustStock(itemID, delta); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// FindByID fetches an item inside a repository span
func (r *ItemRepositoryWithTracing) FindByID(id uint) (*domain.Item, error) {
	_, span := tracer.Start(context.Background(), "repository.FindByID",
		trace.WithAttributes(
			attribute.Int64("item.id", int64(id)),
		),
	)
	defer span.End()

	item, err := r.ItemRepository.FindByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("item.current_stock", item.CurrentStock))
	return item, nil
}

// FindLowStock lists low stock items inside a repository span
func (r *ItemRepositoryWithTracing) FindLowStock() ([]domain.Item, error) {
	_, span := tracer.Start(context.Background(), "repository.FindLowStock")
	defer span.End()

	items, err := r.ItemRepository.FindLowStock()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("item.low_stock_count", len(items)))
	return items, nil
}
