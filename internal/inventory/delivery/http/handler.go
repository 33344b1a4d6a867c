package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
	"github.com/hotelops/housekeeping-inventory/internal/inventory/usecase/command"
	"github.com/hotelops/housekeeping-inventory/internal/inventory/usecase/query"
	"github.com/hotelops/housekeeping-inventory/kafka"
	"github.com/hotelops/housekeeping-inventory/pkg/logger"
)

// EventPublisher publishes stock events after successful mutations.
// A nil publisher disables eventing.
type EventPublisher interface {
	PublishStockAdjusted(ctx context.Context, event kafka.StockAdjustedEvent) error
	PublishLowStock(ctx context.Context, event kafka.LowStockEvent) error
}

// InventoryHandler handles HTTP requests for items, stock movements and
// write-offs using CQRS pattern
type InventoryHandler struct {
	// Command handlers
	recordTransactionHandler  *command.RecordTransactionHandler
	updateTransactionHandler  *command.UpdateTransactionHandler
	deleteTransactionHandler  *command.DeleteTransactionHandler
	recordDepreciationHandler *command.RecordDepreciationHandler
	updateDepreciationHandler *command.UpdateDepreciationHandler
	deleteDepreciationHandler *command.DeleteDepreciationHandler

	// Query handlers
	getItemHandler  *query.GetItemHandler
	listHandler     *query.ListItemsHandler
	lowStockHandler *query.ListLowStockHandler
	summaryHandler  *query.GetStockSummaryHandler
	historyHandler  *query.ListItemHistoryHandler

	items         domain.ItemRepository
	transactions  domain.TransactionRepository
	depreciations domain.DepreciationRepository
	events        EventPublisher

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	lowStockGauge  prometheus.Gauge
}

// NewInventoryHandler creates a new inventory handler with CQRS pattern (manual DI)
func NewInventoryHandler(
	items domain.ItemRepository,
	transactions domain.TransactionRepository,
	depreciations domain.DepreciationRepository,
	events EventPublisher,
) *InventoryHandler {
	return newInventoryHandler(
		command.NewRecordTransactionHandler(transactions, items),
		command.NewUpdateTransactionHandler(transactions, items),
		command.NewDeleteTransactionHandler(transactions, items),
		command.NewRecordDepreciationHandler(depreciations, items),
		command.NewUpdateDepreciationHandler(depreciations, items),
		command.NewDeleteDepreciationHandler(depreciations, items),
		query.NewGetItemHandler(items),
		query.NewListItemsHandler(items),
		query.NewListLowStockHandler(items),
		query.NewGetStockSummaryHandler(items),
		query.NewListItemHistoryHandler(items, transactions, depreciations),
		items, transactions, depreciations, events,
	)
}

// newInventoryHandler is the internal constructor
func newInventoryHandler(
	recordTransactionHandler *command.RecordTransactionHandler,
	updateTransactionHandler *command.UpdateTransactionHandler,
	deleteTransactionHandler *command.DeleteTransactionHandler,
	recordDepreciationHandler *command.RecordDepreciationHandler,
	updateDepreciationHandler *command.UpdateDepreciationHandler,
	deleteDepreciationHandler *command.DeleteDepreciationHandler,
	getItemHandler *query.GetItemHandler,
	listHandler *query.ListItemsHandler,
	lowStockHandler *query.ListLowStockHandler,
	summaryHandler *query.GetStockSummaryHandler,
	historyHandler *query.ListItemHistoryHandler,
	items domain.ItemRepository,
	transactions domain.TransactionRepository,
	depreciations domain.DepreciationRepository,
	events EventPublisher,
) *InventoryHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_service_requests_total",
			Help: "Total number of requests to inventory service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_service_request_duration_seconds",
			Help:    "Duration of inventory service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	lowStockGauge := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_service_low_stock_items",
			Help: "Number of items at or below their minimum stock level",
		},
	)

	registerCollector(requestCounter)
	registerCollector(requestLatency)
	registerCollector(lowStockGauge)

	return &InventoryHandler{
		recordTransactionHandler:  recordTransactionHandler,
		updateTransactionHandler:  updateTransactionHandler,
		deleteTransactionHandler:  deleteTransactionHandler,
		recordDepreciationHandler: recordDepreciationHandler,
		updateDepreciationHandler: updateDepreciationHandler,
		deleteDepreciationHandler: deleteDepreciationHandler,
		getItemHandler:            getItemHandler,
		listHandler:               listHandler,
		lowStockHandler:           lowStockHandler,
		summaryHandler:            summaryHandler,
		historyHandler:            historyHandler,
		items:                     items,
		transactions:              transactions,
		depreciations:             depreciations,
		events:                    events,
		requestCounter:            requestCounter,
		requestLatency:            requestLatency,
		lowStockGauge:             lowStockGauge,
	}
}

// registerCollector registers a collector, tolerating re-registration
// when several handlers are constructed in one process.
func registerCollector(c prometheus.Collector) {
	if err := prometheus.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			panic(err)
		}
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *InventoryHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	// Item catalog
	router.HandleFunc("/api/items", h.metricsMiddleware("/api/items", h.ListItems)).Methods("GET")
	router.HandleFunc("/api/items", h.metricsMiddleware("/api/items", AdminMiddleware(h.CreateItem))).Methods("POST")
	router.HandleFunc("/api/items/stats", h.metricsMiddleware("/api/items/stats", h.GetStockSummary)).Methods("GET")
	router.HandleFunc("/api/items/low-stock", h.metricsMiddleware("/api/items/low-stock", h.ListLowStock)).Methods("GET")
	router.HandleFunc("/api/items/{id}", h.metricsMiddleware("/api/items/{id}", h.GetItem)).Methods("GET")
	router.HandleFunc("/api/items/{id}", h.metricsMiddleware("/api/items/{id}", AdminMiddleware(h.UpdateItem))).Methods("PUT")
	router.HandleFunc("/api/items/{id}", h.metricsMiddleware("/api/items/{id}", AdminMiddleware(h.DeleteItem))).Methods("DELETE")
	router.HandleFunc("/api/items/{id}/history", h.metricsMiddleware("/api/items/{id}/history", h.GetItemHistory)).Methods("GET")

	// Stock movements
	router.HandleFunc("/api/transactions", h.metricsMiddleware("/api/transactions", h.ListTransactions)).Methods("GET")
	router.HandleFunc("/api/transactions", h.metricsMiddleware("/api/transactions", AuthMiddleware(h.RecordTransaction))).Methods("POST")
	router.HandleFunc("/api/transactions/{id}", h.metricsMiddleware("/api/transactions/{id}", h.GetTransaction)).Methods("GET")
	router.HandleFunc("/api/transactions/{id}", h.metricsMiddleware("/api/transactions/{id}", AuthMiddleware(h.UpdateTransaction))).Methods("PUT")
	router.HandleFunc("/api/transactions/{id}", h.metricsMiddleware("/api/transactions/{id}", AdminMiddleware(h.DeleteTransaction))).Methods("DELETE")

	// Write-offs
	router.HandleFunc("/api/depreciations", h.metricsMiddleware("/api/depreciations", h.ListDepreciations)).Methods("GET")
	router.HandleFunc("/api/depreciations", h.metricsMiddleware("/api/depreciations", AuthMiddleware(h.RecordDepreciation))).Methods("POST")
	router.HandleFunc("/api/depreciations/{id}", h.metricsMiddleware("/api/depreciations/{id}", h.GetDepreciation)).Methods("GET")
	router.HandleFunc("/api/depreciations/{id}", h.metricsMiddleware("/api/depreciations/{id}", AuthMiddleware(h.UpdateDepreciation))).Methods("PUT")
	router.HandleFunc("/api/depreciations/{id}", h.metricsMiddleware("/api/depreciations/{id}", AdminMiddleware(h.DeleteDepreciation))).Methods("DELETE")
}

// RegisterHealthCheck registers health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Inventory service is healthy",
		})
	}).Methods("GET")
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrDepreciationNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrCategoryInUse):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrUnknownTransactionType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateItem handles POST /api/items
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code         string  `json:"code"`
		Name         string  `json:"name"`
		CategoryID   uint    `json:"category_id"`
		Description  string  `json:"description"`
		Unit         string  `json:"unit"`
		MinStock     int     `json:"min_stock"`
		CurrentStock int     `json:"current_stock"`
		Location     string  `json:"location"`
		SupplierID   uint    `json:"supplier_id"`
		Price        float64 `json:"price"`
		ImageURL     string  `json:"image_url"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if req.Code == "" || req.Name == "" || req.Unit == "" {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "code, name and unit are required",
		})
		return
	}
	if req.MinStock < 0 || req.CurrentStock < 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "stock levels cannot be negative",
		})
		return
	}

	item := &domain.Item{
		Code:         req.Code,
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		Description:  req.Description,
		Unit:         req.Unit,
		MinStock:     req.MinStock,
		CurrentStock: req.CurrentStock,
		Location:     req.Location,
		SupplierID:   req.SupplierID,
		Price:        req.Price,
		Status:       domain.ItemStatusActive,
		ImageURL:     req.ImageURL,
	}

	if err := h.items.Create(item); err != nil {
		logger.Logger.Error().Err(err).Str("code", req.Code).Msg("Failed to create item")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.updateLowStockMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Item created successfully",
		Data:    item,
	})
}

// GetItem handles GET /api/items/{id}
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := h.getItemHandler.Handle(query.GetItemQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Item not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    item,
	})
}

// ListItems handles GET /api/items
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := h.listHandler.Handle(query.ListItemsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list items")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list items",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    items,
	})
}

// UpdateItem handles PUT /api/items/{id}
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := h.items.FindByID(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Item not found",
		})
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		CategoryID  *uint    `json:"category_id"`
		Description *string  `json:"description"`
		Unit        *string  `json:"unit"`
		MinStock    *int     `json:"min_stock"`
		Location    *string  `json:"location"`
		SupplierID  *uint    `json:"supplier_id"`
		Price       *float64 `json:"price"`
		Status      *string  `json:"status"`
		ImageURL    *string  `json:"image_url"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.CategoryID != nil {
		item.CategoryID = *req.CategoryID
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.MinStock != nil {
		if *req.MinStock < 0 {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "min_stock cannot be negative",
			})
			return
		}
		item.MinStock = *req.MinStock
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.SupplierID != nil {
		item.SupplierID = *req.SupplierID
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}

	if err := h.items.Update(item); err != nil {
		logger.Logger.Error().Err(err).Uint("item_id", id).Msg("Failed to update item")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.updateLowStockMetric()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item updated successfully",
		Data:    item,
	})
}

// DeleteItem handles DELETE /api/items/{id}
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.items.Delete(id); err != nil {
		status := statusForError(err)
		logger.Logger.Error().Err(err).Uint("item_id", id).Msg("Failed to delete item")
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.updateLowStockMetric()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item deleted successfully",
	})
}

// ListLowStock handles GET /api/items/low-stock
func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.lowStockHandler.Handle(query.ListLowStockQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list low stock items")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list low stock items",
		})
		return
	}

	h.lowStockGauge.Set(float64(len(items)))

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    items,
	})
}

// GetStockSummary handles GET /api/items/stats
func (h *InventoryHandler) GetStockSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summaryHandler.Handle(query.GetStockSummaryQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to get stock summary")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get stock summary",
		})
		return
	}

	h.lowStockGauge.Set(float64(summary.LowStockItems))

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    summary,
	})
}

// GetItemHistory handles GET /api/items/{id}/history
func (h *InventoryHandler) GetItemHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	history, err := h.historyHandler.Handle(query.ListItemHistoryQuery{
		ItemID: id,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    history,
	})
}

// RecordTransaction handles POST /api/transactions
func (h *InventoryHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type       string     `json:"type"`
		ItemID     uint       `json:"item_id"`
		Quantity   int        `json:"quantity"`
		SupplierID *uint      `json:"supplier_id"`
		BorrowerID string     `json:"borrower_id"`
		Notes      string     `json:"notes"`
		DueDate    *time.Time `json:"due_date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	userID := UserIDFromContext(r.Context())

	transaction, err := h.recordTransactionHandler.Handle(command.RecordTransactionCommand{
		Type:       req.Type,
		ItemID:     req.ItemID,
		Quantity:   req.Quantity,
		UserID:     userID,
		SupplierID: req.SupplierID,
		BorrowerID: req.BorrowerID,
		Notes:      req.Notes,
		DueDate:    req.DueDate,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Str("type", req.Type).Uint("item_id", req.ItemID).Msg("Failed to record transaction")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.publishStockEvents(r.Context(), transaction.ItemID, transaction.StockDelta(), "transaction", transaction.ID, userID)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Transaction recorded successfully",
		Data:    transaction,
	})
}

// GetTransaction handles GET /api/transactions/{id}
func (h *InventoryHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	transaction, err := h.transactions.FindByID(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Transaction not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    transaction,
	})
}

// ListTransactions handles GET /api/transactions
func (h *InventoryHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit == 0 {
		limit = 10
	}

	var (
		transactions []domain.Transaction
		err          error
	)

	if transactionType := r.URL.Query().Get("type"); transactionType != "" {
		transactions, err = h.transactions.FindByType(transactionType, limit, offset)
	} else if itemID, _ := strconv.Atoi(r.URL.Query().Get("item_id")); itemID > 0 {
		transactions, err = h.transactions.FindByItem(uint(itemID), limit, offset)
	} else {
		transactions, err = h.transactions.FindAll(limit, offset)
	}

	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list transactions")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list transactions",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    transactions,
	})
}

// UpdateTransaction handles PUT /api/transactions/{id}
func (h *InventoryHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req struct {
		Type       string     `json:"type"`
		ItemID     uint       `json:"item_id"`
		Quantity   int        `json:"quantity"`
		SupplierID *uint      `json:"supplier_id"`
		BorrowerID string     `json:"borrower_id"`
		Notes      string     `json:"notes"`
		Status     string     `json:"status"`
		DueDate    *time.Time `json:"due_date"`
		ReturnDate *time.Time `json:"return_date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	old, err := h.transactions.FindByID(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Transaction not found",
		})
		return
	}
	oldItemID, oldDelta := old.ItemID, old.StockDelta()

	transaction, err := h.updateTransactionHandler.Handle(command.UpdateTransactionCommand{
		ID:         id,
		Type:       req.Type,
		ItemID:     req.ItemID,
		Quantity:   req.Quantity,
		SupplierID: req.SupplierID,
		BorrowerID: req.BorrowerID,
		Notes:      req.Notes,
		Status:     req.Status,
		DueDate:    req.DueDate,
		ReturnDate: req.ReturnDate,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("transaction_id", id).Msg("Failed to update transaction")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	// The revert against the old item is a stock movement too; when the
	// effect moved to another item the old one gets its own events.
	if oldItemID != transaction.ItemID {
		h.publishStockEvents(r.Context(), oldItemID, -oldDelta, "transaction", transaction.ID, transaction.UserID)
	}
	h.publishStockEvents(r.Context(), transaction.ItemID, transaction.StockDelta(), "transaction", transaction.ID, transaction.UserID)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Transaction updated successfully",
		Data:    transaction,
	})
}

// DeleteTransaction handles DELETE /api/transactions/{id}
func (h *InventoryHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	transaction, err := h.transactions.FindByID(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Transaction not found",
		})
		return
	}

	if err := h.deleteTransactionHandler.Handle(command.DeleteTransactionCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Uint("transaction_id", id).Msg("Failed to delete transaction")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.publishStockEvents(r.Context(), transaction.ItemID, -transaction.StockDelta(), "transaction", id, transaction.UserID)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Transaction deleted successfully",
	})
}

// RecordDepreciation handles POST /api/depreciations
func (h *InventoryHandler) RecordDepreciation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID   uint   `json:"item_id"`
		Quantity int    `json:"quantity"`
		Reason   string `json:"reason"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	userID := UserIDFromContext(r.Context())

	depreciation, err := h.recordDepreciationHandler.Handle(command.RecordDepreciationCommand{
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
		Reason:   req.Reason,
		UserID:   userID,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("item_id", req.ItemID).Msg("Failed to record depreciation")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.publishStockEvents(r.Context(), depreciation.ItemID, depreciation.StockDelta(), "depreciation", depreciation.ID, userID)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Depreciation recorded successfully",
		Data:    depreciation,
	})
}

// GetDepreciation handles GET /api/depreciations/{id}
func (h *InventoryHandler) GetDepreciation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	depreciation, err := h.depreciations.FindByID(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Depreciation not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    depreciation,
	})
}

// ListDepreciations handles GET /api/depreciations
func (h *InventoryHandler) ListDepreciations(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit == 0 {
		limit = 10
	}

	var (
		depreciations []domain.Depreciation
		err           error
	)

	if itemID, _ := strconv.Atoi(r.URL.Query().Get("item_id")); itemID > 0 {
		depreciations, err = h.depreciations.FindByItem(uint(itemID), limit, offset)
	} else {
		depreciations, err = h.depreciations.FindAll(limit, offset)
	}

	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list depreciations")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list depreciations",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    depreciations,
	})
}

// UpdateDepreciation handles PUT /api/depreciations/{id}
func (h *InventoryHandler) UpdateDepreciation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req struct {
		ItemID   uint   `json:"item_id"`
		Quantity int    `json:"quantity"`
		Reason   string `json:"reason"`
		Status   string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	old, err := h.depreciations.FindByID(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Depreciation not found",
		})
		return
	}
	oldItemID, oldDelta := old.ItemID, old.StockDelta()

	depreciation, err := h.updateDepreciationHandler.Handle(command.UpdateDepreciationCommand{
		ID:       id,
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
		Reason:   req.Reason,
		Status:   req.Status,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("depreciation_id", id).Msg("Failed to update depreciation")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	if oldItemID != depreciation.ItemID {
		h.publishStockEvents(r.Context(), oldItemID, -oldDelta, "depreciation", depreciation.ID, depreciation.UserID)
	}
	h.publishStockEvents(r.Context(), depreciation.ItemID, depreciation.StockDelta(), "depreciation", depreciation.ID, depreciation.UserID)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Depreciation updated successfully",
		Data:    depreciation,
	})
}

// DeleteDepreciation handles DELETE /api/depreciations/{id}
func (h *InventoryHandler) DeleteDepreciation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	depreciation, err := h.depreciations.FindByID(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Depreciation not found",
		})
		return
	}

	if err := h.deleteDepreciationHandler.Handle(command.DeleteDepreciationCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Uint("depreciation_id", id).Msg("Failed to delete depreciation")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.publishStockEvents(r.Context(), depreciation.ItemID, -depreciation.StockDelta(), "depreciation", id, depreciation.UserID)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Depreciation deleted successfully",
	})
}

// publishStockEvents emits stock.adjusted and, when the item has fallen
// to its minimum level, stock.low. Publishing is best effort: failures
// are logged and never fail the request.
func (h *InventoryHandler) publishStockEvents(ctx context.Context, itemID uint, delta int, source string, sourceID, userID uint) {
	if h.events == nil {
		return
	}

	item, err := h.items.FindByID(itemID)
	if err != nil {
		logger.Logger.Warn().Err(err).Uint("item_id", itemID).Msg("Failed to load item for stock event")
		return
	}

	if err := h.events.PublishStockAdjusted(ctx, kafka.StockAdjustedEvent{
		ItemID:       item.ID,
		ItemCode:     item.Code,
		Delta:        delta,
		CurrentStock: item.CurrentStock,
		Source:       source,
		SourceID:     sourceID,
		UserID:       userID,
	}); err != nil {
		logger.Logger.Warn().Err(err).Uint("item_id", itemID).Msg("Failed to publish stock adjusted event")
	}

	if item.IsLowStock() {
		if err := h.events.PublishLowStock(ctx, kafka.LowStockEvent{
			ItemID:       item.ID,
			ItemCode:     item.Code,
			ItemName:     item.Name,
			CurrentStock: item.CurrentStock,
			MinStock:     item.MinStock,
		}); err != nil {
			logger.Logger.Warn().Err(err).Uint("item_id", itemID).Msg("Failed to publish low stock event")
		}
	}
}

// updateLowStockMetric refreshes the low stock gauge
func (h *InventoryHandler) updateLowStockMetric() {
	count, err := h.items.CountLowStock()
	if err != nil {
		return
	}
	h.lowStockGauge.Set(float64(count))
}

// parseID extracts the {id} path variable
func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid ID",
		})
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
