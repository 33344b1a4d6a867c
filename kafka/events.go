package kafka

import "time"

// StockAdjustedEvent is emitted after every successful stock mutation
type StockAdjustedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	ItemID       uint      `json:"item_id"`
	ItemCode     string    `json:"item_code"`
	Delta        int       `json:"delta"`
	CurrentStock int       `json:"current_stock"`
	Source       string    `json:"source"` // transaction, depreciation
	SourceID     uint      `json:"source_id"`
	UserID       uint      `json:"user_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// LowStockEvent is emitted when a mutation leaves an item at or below
// its minimum stock level
type LowStockEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	ItemID       uint      `json:"item_id"`
	ItemCode     string    `json:"item_code"`
	ItemName     string    `json:"item_name"`
	CurrentStock int       `json:"current_stock"`
	MinStock     int       `json:"min_stock"`
	Timestamp    time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeStockAdjusted = "stock.adjusted"
	EventTypeStockLow      = "stock.low"
)

// Kafka topics
const (
	TopicStockAdjusted = "stock-adjusted"
	TopicStockLow      = "stock-low"
)
