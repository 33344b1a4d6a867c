package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Housekeeping Inventory Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateItem godoc
// @Summary Create new item
// @Description Create a new housekeeping item (Admin only)
// @Tags Items
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{code=string,name=string,category_id=int,unit=string,min_stock=int,current_stock=int,location=string,supplier_id=int,price=number} true "Item data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/items [post]
func (h *InventoryHandler) CreateItemDoc() {}

// ListItems godoc
// @Summary List all items
// @Description Get a list of all items with pagination
// @Tags Items
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/items [get]
func (h *InventoryHandler) ListItemsDoc() {}

// GetItem godoc
// @Summary Get item by ID
// @Description Get a specific item by its ID
// @Tags Items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/items/{id} [get]
func (h *InventoryHandler) GetItemDoc() {}

// ListLowStock godoc
// @Summary List low stock items
// @Description Get all active items at or below their minimum stock level
// @Tags Items
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/items/low-stock [get]
func (h *InventoryHandler) ListLowStockDoc() {}

// GetStockSummary godoc
// @Summary Get stock summary
// @Description Get aggregate stock statistics for the dashboard
// @Tags Items
// @Produce json
// @Success 200 {object} object{success=bool,data=object{total_items=int,total_stock=int,low_stock_items=int}}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/items/stats [get]
func (h *InventoryHandler) GetStockSummaryDoc() {}

// GetItemHistory godoc
// @Summary Get item history
// @Description Get stock movements and write-offs recorded against an item
// @Tags Items
// @Produce json
// @Param id path int true "Item ID"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/items/{id}/history [get]
func (h *InventoryHandler) GetItemHistoryDoc() {}

// RecordTransaction godoc
// @Summary Record stock movement
// @Description Record an in, out, borrow or return movement and adjust item stock
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{type=string,item_id=int,quantity=int,supplier_id=int,borrower_id=string,notes=string} true "Transaction data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/transactions [post]
func (h *InventoryHandler) RecordTransactionDoc() {}

// UpdateTransaction godoc
// @Summary Update stock movement
// @Description Rewrite a movement, reverting its old stock effect and applying the new one
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body object{type=string,item_id=int,quantity=int,notes=string,status=string} true "Transaction data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/transactions/{id} [put]
func (h *InventoryHandler) UpdateTransactionDoc() {}

// DeleteTransaction godoc
// @Summary Delete stock movement
// @Description Delete a movement and revert its stock effect (Admin only)
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/transactions/{id} [delete]
func (h *InventoryHandler) DeleteTransactionDoc() {}

// RecordDepreciation godoc
// @Summary Record write-off
// @Description Record a depreciation and decrement item stock. Rejected when the item has insufficient stock.
// @Tags Depreciations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{item_id=int,quantity=int,reason=string} true "Depreciation data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/depreciations [post]
func (h *InventoryHandler) RecordDepreciationDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *InventoryHandler) HealthCheckDoc() {}
