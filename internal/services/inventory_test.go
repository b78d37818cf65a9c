package services

import (
	"context"
	"errors"
	"testing"

	"github.com/quillshop/apiserver/internal/store"
)

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func seedInventory(t *testing.T, svc *InventoryService) {
	t.Helper()
	items := []InventoryInput{
		{Name: "Widget", Description: "a small widget", Quantity: intPtr(5), Price: floatPtr(2.50), Category: "tools"},
		{Name: "Widget Pro", Description: "a bigger widget", Quantity: intPtr(3), Price: floatPtr(9.99), Category: "parts"},
		{Name: "Hammer", Description: "hits things", Quantity: intPtr(10), Price: floatPtr(12.00), Category: "tools"},
	}
	for _, item := range items {
		if _, err := svc.Create(context.Background(), item); err != nil {
			t.Fatalf("seed %s: %v", item.Name, err)
		}
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo(), nil)

	cases := map[string]InventoryInput{
		"no name":     {Quantity: intPtr(1), Price: floatPtr(1), Category: "c"},
		"no quantity": {Name: "x", Price: floatPtr(1), Category: "c"},
		"no price":    {Name: "x", Quantity: intPtr(1), Category: "c"},
		"no category": {Name: "x", Quantity: intPtr(1), Price: floatPtr(1)},
	}
	for name, input := range cases {
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestCreateItemDuplicateName(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo(), nil)
	seedInventory(t, svc)

	_, err := svc.Create(context.Background(), InventoryInput{
		Name: "Widget", Quantity: intPtr(1), Price: floatPtr(1), Category: "tools",
	})
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateItemPartial(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo(), nil)
	seedInventory(t, svc)

	updated, err := svc.Update(context.Background(), 1, InventoryUpdate{Quantity: intPtr(42)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Quantity != 42 {
		t.Fatalf("quantity not updated: %d", updated.Quantity)
	}
	if updated.Name != "Widget" || updated.Description != "a small widget" ||
		updated.Price != 2.50 || updated.Category != "tools" {
		t.Fatalf("unspecified fields changed: %+v", updated)
	}
}

func TestUpdateItemRenameConflict(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo(), nil)
	seedInventory(t, svc)

	if _, err := svc.Update(context.Background(), 1, InventoryUpdate{Name: strPtr("Hammer")}); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSearchCategoryFilter(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo(), nil)
	seedInventory(t, svc)

	page, err := svc.Search(context.Background(), SearchInput{Text: "wid", Category: "tools"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(page.Items) != 1 {
		t.Fatalf("expected 1 match, got %d", len(page.Items))
	}
	if page.Items[0].Name != "Widget" || page.Items[0].Category != "tools" {
		t.Fatalf("unexpected match: %+v", page.Items[0])
	}
	if page.Total != 1 {
		t.Fatalf("expected total 1, got %d", page.Total)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo(), nil)
	seedInventory(t, svc)

	page, err := svc.Search(context.Background(), SearchInput{Text: "WIDGET"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(page.Items))
	}
}

func TestSearchPagination(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo(), nil)
	seedInventory(t, svc)

	page, err := svc.Search(context.Background(), SearchInput{Text: "", Page: 1, PerPage: 2})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(page.Items) != 2 || page.Total != 3 || page.Pages != 2 {
		t.Fatalf("unexpected first page: %+v", page)
	}
	if !page.HasNext || page.HasPrev {
		t.Fatalf("first page navigation wrong: has_next=%v has_prev=%v", page.HasNext, page.HasPrev)
	}

	page, err = svc.Search(context.Background(), SearchInput{Text: "", Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("search page 2: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item on last page, got %d", len(page.Items))
	}
	if page.HasNext || !page.HasPrev {
		t.Fatalf("last page navigation wrong: has_next=%v has_prev=%v", page.HasNext, page.HasPrev)
	}
}

func TestSearchDefaults(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo(), nil)
	seedInventory(t, svc)

	page, err := svc.Search(context.Background(), SearchInput{Text: "widget", Page: 0, PerPage: 0})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Page != 1 || page.PerPage != 10 {
		t.Fatalf("defaults not applied: page=%d per_page=%d", page.Page, page.PerPage)
	}
}

func TestCategories(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo(), nil)
	seedInventory(t, svc)

	categories, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %v", categories)
	}
}

func TestDeleteItem(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryRepo(), nil)
	seedInventory(t, svc)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("double delete: expected ErrNotFound, got %v", err)
	}
}
