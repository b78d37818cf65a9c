package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/quillshop/apiserver/internal/events"
	"github.com/quillshop/apiserver/types"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// InventoryRepository defines persistence operations for inventory items.
type InventoryRepository interface {
	Get(ctx context.Context, id int) (types.InventoryItem, error)
	Create(ctx context.Context, item types.InventoryItem) (types.InventoryItem, error)
	Update(ctx context.Context, item types.InventoryItem) (types.InventoryItem, error)
	Delete(ctx context.Context, id int) error
	Categories(ctx context.Context) ([]string, error)
	Search(ctx context.Context, text, category string, offset, limit int) ([]types.InventoryItem, int, error)
}

// InventoryInput carries the fields needed to create an item.
type InventoryInput struct {
	Name        string
	Description string
	Quantity    *int
	Price       *float64
	Category    string
}

// InventoryUpdate carries partial item changes. Nil fields keep their
// current values.
type InventoryUpdate struct {
	Name        *string
	Description *string
	Quantity    *int
	Price       *float64
	Category    *string
}

// SearchInput is a paginated inventory query.
type SearchInput struct {
	Text     string
	Category string
	Page     int
	PerPage  int
}

// InventoryService encapsulates catalog use-cases.
type InventoryService struct {
	repo InventoryRepository
	bus  *events.Bus
}

func NewInventoryService(repo InventoryRepository, bus *events.Bus) *InventoryService {
	return &InventoryService{repo: repo, bus: bus}
}

func (s *InventoryService) Get(ctx context.Context, id int) (types.InventoryItem, error) {
	return s.repo.Get(ctx, id)
}

// Create adds a catalog item. Duplicate names surface
// store.ErrConflict from the database uniqueness constraint.
func (s *InventoryService) Create(ctx context.Context, input InventoryInput) (types.InventoryItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	if input.Name == "" || input.Category == "" || input.Quantity == nil || input.Price == nil {
		return types.InventoryItem{}, fmt.Errorf("%w: name, quantity, price, and category are required", ErrValidation)
	}

	item, err := s.repo.Create(ctx, types.InventoryItem{
		Name:        input.Name,
		Description: input.Description,
		Quantity:    *input.Quantity,
		Price:       *input.Price,
		Category:    input.Category,
	})
	if err != nil {
		return types.InventoryItem{}, err
	}

	s.bus.Emit(ctx, events.InventoryCreated, map[string]any{"item_id": item.ID, "name": item.Name})
	return item, nil
}

// Update applies a partial update. Omitted fields keep their stored
// values rather than being reset.
func (s *InventoryService) Update(ctx context.Context, id int, update InventoryUpdate) (types.InventoryItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.InventoryItem{}, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return types.InventoryItem{}, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		item.Name = name
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Quantity != nil {
		item.Quantity = *update.Quantity
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.Category != nil {
		category := strings.TrimSpace(*update.Category)
		if category == "" {
			return types.InventoryItem{}, fmt.Errorf("%w: category cannot be empty", ErrValidation)
		}
		item.Category = category
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return types.InventoryItem{}, err
	}

	s.bus.Emit(ctx, events.InventoryUpdated, map[string]any{"item_id": updated.ID})
	return updated, nil
}

func (s *InventoryService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bus.Emit(ctx, events.InventoryDeleted, map[string]any{"item_id": id})
	return nil
}

func (s *InventoryService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// Search pages through items matching the query text and optional
// category.
func (s *InventoryService) Search(ctx context.Context, input SearchInput) (types.InventoryPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	offset := (page - 1) * perPage
	items, total, err := s.repo.Search(ctx, input.Text, strings.TrimSpace(input.Category), offset, perPage)
	if err != nil {
		return types.InventoryPage{}, err
	}

	pages := (total + perPage - 1) / perPage
	return types.InventoryPage{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}, nil
}
