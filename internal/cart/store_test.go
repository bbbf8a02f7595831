package cart

import (
	"testing"
)

func TestItemKey(t *testing.T) {
	t.Parallel()

	if key := ItemKey("p1", ""); key != "p1" {
		t.Fatalf("expected bare product key, got %q", key)
	}
	if key := ItemKey("p1", "v2"); key != "p1@v2" {
		t.Fatalf("expected composite key, got %q", key)
	}
	if key := ItemKey(" p1 ", " v2 "); key != "p1@v2" {
		t.Fatalf("expected trimmed key, got %q", key)
	}
}

func TestAddItemMergesSameIdentity(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	if err := store.AddItem(LineItem{ProductID: "p1", UnitPrice: 10, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.AddItem(LineItem{ProductID: "p1", UnitPrice: 10, Quantity: 3}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddItemKeepsVariantsSeparate(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	if err := store.AddItem(LineItem{ProductID: "p1", VariantID: "red", Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.AddItem(LineItem{ProductID: "p1", VariantID: "blue", Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.AddItem(LineItem{ProductID: "p1", Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if len(store.Items()) != 3 {
		t.Fatalf("expected three distinct lines, got %d", len(store.Items()))
	}
}

func TestAddItemRejectsBadInput(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	if err := store.AddItem(LineItem{ProductID: "", Quantity: 1}); err == nil {
		t.Fatal("expected an error for a blank product id")
	}
	if err := store.AddItem(LineItem{ProductID: "p1", Quantity: 0}); err == nil {
		t.Fatal("expected an error for a non-positive quantity")
	}
}

func TestUpdateQuantityBelowOneRemovesLine(t *testing.T) {
	t.Parallel()

	store := NewStore([]LineItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	})

	if err := store.UpdateQuantity("p1", 0); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	items := store.Items()
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("expected p1 removed, got %v", items)
	}

	if err := store.UpdateQuantity("p2", 7); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if store.Items()[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", store.Items()[0].Quantity)
	}

	if err := store.UpdateQuantity("missing", 3); err == nil {
		t.Fatal("expected an error for an unknown line")
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore([]LineItem{{ProductID: "p1", Quantity: 1}})
	store.RemoveItem("p1")
	store.RemoveItem("p1")
	if len(store.Items()) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(store.Items()))
	}
}

func TestDerivedTotals(t *testing.T) {
	t.Parallel()

	store := NewStore([]LineItem{
		{ProductID: "p1", UnitPrice: 19.99, Quantity: 3},
		{ProductID: "p2", UnitPrice: 0.1, Quantity: 3},
	})

	if count := store.Count(); count != 6 {
		t.Fatalf("expected count 6, got %d", count)
	}
	if total := store.Total(); total != 60.27 {
		t.Fatalf("expected total 60.27, got %v", total)
	}
}

func TestNewStoreDropsCorruptLines(t *testing.T) {
	t.Parallel()

	store := NewStore([]LineItem{
		{ProductID: "", Quantity: 2},
		{ProductID: "p1", Quantity: 0},
		{ProductID: "p2", Quantity: 1},
	})
	items := store.Items()
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("expected only the valid line to survive, got %v", items)
	}
}

func TestAddThenRemoveRestoresTotals(t *testing.T) {
	t.Parallel()

	store := NewStore([]LineItem{{ProductID: "p1", UnitPrice: 19.99, Quantity: 2}})
	countBefore := store.Count()
	totalBefore := store.Total()

	if err := store.AddItem(LineItem{ProductID: "p2", VariantID: "blue", UnitPrice: 5.25, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	store.RemoveItem(ItemKey("p2", "blue"))

	if store.Count() != countBefore {
		t.Fatalf("expected count %d restored, got %d", countBefore, store.Count())
	}
	if store.Total() != totalBefore {
		t.Fatalf("expected total %v restored, got %v", totalBefore, store.Total())
	}
}
