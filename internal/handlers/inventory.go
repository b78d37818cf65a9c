package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quillshop/apiserver/internal/services"
	"github.com/quillshop/apiserver/types"
	"github.com/sirupsen/logrus"
)

// InventoryHandler provides HTTP handlers for the inventory catalog.
type InventoryHandler struct {
	inventoryService *services.InventoryService
	log              *logrus.Entry
}

// NewInventoryHandler constructs a handler with the provided service.
func NewInventoryHandler(inventoryService *services.InventoryService, log *logrus.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		log:              log.WithField("handler", "inventory"),
	}
}

// InventoryRouter registers inventory routes on the given router.
// Reads and search are public; mutations require a valid token.
func InventoryRouter(
	r chi.Router,
	inventoryService *services.InventoryService,
	authMiddleware func(http.Handler) http.Handler,
	log *logrus.Logger,
) {
	handler := NewInventoryHandler(inventoryService, log)

	r.With(authMiddleware).Post("/create", handler.CreateItem)
	r.Get("/read/{itemID}", handler.GetItem)
	r.With(authMiddleware).Put("/update/{itemID}", handler.UpdateItem)
	r.With(authMiddleware).Post("/delete/{itemID}", handler.DeleteItem)
	r.Get("/category", handler.ListCategories)
	r.Post("/search", handler.Search)
}

func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	item, err := h.inventoryService.Create(r.Context(), services.InventoryInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, ItemResponse{Success: true, Item: item})
}

func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.inventoryService.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, ItemResponse{Success: true, Item: item})
}

func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	item, err := h.inventoryService.Update(r.Context(), id, services.InventoryUpdate{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, ItemResponse{Success: true, Item: item})
}

func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.inventoryService.Delete(r.Context(), id); err != nil {
		respondError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "inventory deleted successfully"})
}

func (h *InventoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.inventoryService.Categories(r.Context())
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, CategoriesResponse{Success: true, Categories: categories})
}

func (h *InventoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	page, err := h.inventoryService.Search(r.Context(), services.SearchInput{
		Text:     req.SearchString,
		Category: req.Category,
		Page:     req.PageNumber,
		PerPage:  req.PerPage,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

type CreateItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
}

type UpdateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
}

type SearchRequest struct {
	SearchString string `json:"search_string"`
	Category     string `json:"category"`
	PageNumber   int    `json:"page_number"`
	PerPage      int    `json:"per_page"`
}

type ItemResponse struct {
	Success bool                `json:"success"`
	Item    types.InventoryItem `json:"item"`
}

type CategoriesResponse struct {
	Success    bool     `json:"success"`
	Categories []string `json:"categories"`
}
