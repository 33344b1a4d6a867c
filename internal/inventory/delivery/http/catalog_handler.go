package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
	"github.com/hotelops/housekeeping-inventory/pkg/logger"
)

// CatalogHandler handles HTTP requests for suppliers, categories and
// storage locations
type CatalogHandler struct {
	suppliers  domain.SupplierRepository
	categories domain.CategoryRepository
	locations  domain.LocationRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	suppliers domain.SupplierRepository,
	categories domain.CategoryRepository,
	locations domain.LocationRepository,
) *CatalogHandler {
	return &CatalogHandler{
		suppliers:  suppliers,
		categories: categories,
		locations:  locations,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/suppliers", h.ListSuppliers).Methods("GET")
	router.HandleFunc("/api/suppliers", AdminMiddleware(h.CreateSupplier)).Methods("POST")
	router.HandleFunc("/api/suppliers/{id}", h.GetSupplier).Methods("GET")
	router.HandleFunc("/api/suppliers/{id}", AdminMiddleware(h.UpdateSupplier)).Methods("PUT")
	router.HandleFunc("/api/suppliers/{id}", AdminMiddleware(h.DeleteSupplier)).Methods("DELETE")

	router.HandleFunc("/api/categories", h.ListCategories).Methods("GET")
	router.HandleFunc("/api/categories", AdminMiddleware(h.CreateCategory)).Methods("POST")
	router.HandleFunc("/api/categories/{id}", AdminMiddleware(h.UpdateCategory)).Methods("PUT")
	router.HandleFunc("/api/categories/{id}", AdminMiddleware(h.DeleteCategory)).Methods("DELETE")

	router.HandleFunc("/api/locations", h.ListLocations).Methods("GET")
	router.HandleFunc("/api/locations", AdminMiddleware(h.CreateLocation)).Methods("POST")
	router.HandleFunc("/api/locations/{id}", AdminMiddleware(h.UpdateLocation)).Methods("PUT")
	router.HandleFunc("/api/locations/{id}", AdminMiddleware(h.DeleteLocation)).Methods("DELETE")
}

// CreateSupplier handles POST /api/suppliers
func (h *CatalogHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code    string `json:"code"`
		Name    string `json:"name"`
		Contact string `json:"contact"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Address string `json:"address"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.Name == "" {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "name is required"})
		return
	}

	supplier := &domain.Supplier{
		Code:    req.Code,
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Status:  "active",
	}

	if err := h.suppliers.Create(supplier); err != nil {
		logger.Logger.Error().Err(err).Str("name", req.Name).Msg("Failed to create supplier")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Supplier created successfully",
		Data:    supplier,
	})
}

// GetSupplier handles GET /api/suppliers/{id}
func (h *CatalogHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	supplier, err := h.suppliers.FindByID(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Supplier not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: supplier})
}

// ListSuppliers handles GET /api/suppliers
func (h *CatalogHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit == 0 {
		limit = 50
	}

	suppliers, err := h.suppliers.FindAll(limit, offset)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list suppliers")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list suppliers"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: suppliers})
}

// UpdateSupplier handles PUT /api/suppliers/{id}
func (h *CatalogHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	supplier, err := h.suppliers.FindByID(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Supplier not found"})
		return
	}

	var req struct {
		Code    *string `json:"code"`
		Name    *string `json:"name"`
		Contact *string `json:"contact"`
		Phone   *string `json:"phone"`
		Email   *string `json:"email"`
		Address *string `json:"address"`
		Status  *string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.Code != nil {
		supplier.Code = *req.Code
	}
	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Contact != nil {
		supplier.Contact = *req.Contact
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.Status != nil {
		supplier.Status = *req.Status
	}

	if err := h.suppliers.Update(supplier); err != nil {
		logger.Logger.Error().Err(err).Uint("supplier_id", id).Msg("Failed to update supplier")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Supplier updated successfully",
		Data:    supplier,
	})
}

// DeleteSupplier handles DELETE /api/suppliers/{id}
func (h *CatalogHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.suppliers.Delete(id); err != nil {
		logger.Logger.Error().Err(err).Uint("supplier_id", id).Msg("Failed to delete supplier")
		respondJSON(w, statusForError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Supplier deleted successfully"})
}

// CreateCategory handles POST /api/categories
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	// Codes are stored upper-cased so lookups are case-insensitive
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" || req.Name == "" {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "code and name are required"})
		return
	}

	category := &domain.Category{
		Code:        code,
		Name:        req.Name,
		Description: req.Description,
		Status:      "active",
	}

	if err := h.categories.Create(category); err != nil {
		logger.Logger.Error().Err(err).Str("name", req.Name).Msg("Failed to create category")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit == 0 {
		limit = 50
	}

	categories, err := h.categories.FindAll(limit, offset)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list categories")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list categories"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: categories})
}

// UpdateCategory handles PUT /api/categories/{id}
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	category, err := h.categories.FindByID(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Category not found"})
		return
	}

	var req struct {
		Code        *string `json:"code"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if code == "" {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "code cannot be empty"})
			return
		}
		category.Code = code
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Status != nil {
		category.Status = *req.Status
	}

	if err := h.categories.Update(category); err != nil {
		logger.Logger.Error().Err(err).Uint("category_id", id).Msg("Failed to update category")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Category updated successfully",
		Data:    category,
	})
}

// DeleteCategory handles DELETE /api/categories/{id}. A category that
// still has items assigned cannot be removed.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	inUse, err := h.categories.CountItems(id)
	if err != nil {
		logger.Logger.Error().Err(err).Uint("category_id", id).Msg("Failed to check category usage")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to check category usage"})
		return
	}
	if inUse > 0 {
		respondJSON(w, http.StatusConflict, Response{Success: false, Error: domain.ErrCategoryInUse.Error()})
		return
	}

	if err := h.categories.Delete(id); err != nil {
		logger.Logger.Error().Err(err).Uint("category_id", id).Msg("Failed to delete category")
		respondJSON(w, statusForError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Category deleted successfully"})
}

// CreateLocation handles POST /api/locations
func (h *CatalogHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.Name == "" {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "name is required"})
		return
	}

	location := &domain.Location{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.locations.Create(location); err != nil {
		logger.Logger.Error().Err(err).Str("name", req.Name).Msg("Failed to create location")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Location created successfully",
		Data:    location,
	})
}

// ListLocations handles GET /api/locations
func (h *CatalogHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit == 0 {
		limit = 50
	}

	locations, err := h.locations.FindAll(limit, offset)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list locations")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list locations"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: locations})
}

// UpdateLocation handles PUT /api/locations/{id}
func (h *CatalogHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	location, err := h.locations.FindByID(id)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Location not found"})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Description != nil {
		location.Description = *req.Description
	}

	if err := h.locations.Update(location); err != nil {
		logger.Logger.Error().Err(err).Uint("location_id", id).Msg("Failed to update location")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Location updated successfully",
		Data:    location,
	})
}

// DeleteLocation handles DELETE /api/locations/{id}
func (h *CatalogHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.locations.Delete(id); err != nil {
		logger.Logger.Error().Err(err).Uint("location_id", id).Msg("Failed to delete location")
		respondJSON(w, statusForError(err), Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Location deleted successfully"})
}
