package services

import (
	"testing"

	"brunch_planner/internal/models"
)

func TestLookupProductsResolvesClassification(t *testing.T) {
	f, _, products, _ := breakfastFixture()

	infos, err := f.catalog.LookupProducts([]uint{products["bread"].ID, products["butter"].ID})
	if err != nil {
		t.Fatalf("LookupProducts: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("infos = %d, want 2", len(infos))
	}
	if infos[products["bread"].ID].Category != "Bakery" {
		t.Fatalf("bread category = %q", infos[products["bread"].ID].Category)
	}
	if infos[products["bread"].ID].Type != models.UntypedLabel {
		t.Fatalf("bread type = %q, want sentinel", infos[products["bread"].ID].Type)
	}
}

func TestLookupProductsSkipsUnknownIDs(t *testing.T) {
	f, _, products, _ := breakfastFixture()

	infos, err := f.catalog.LookupProducts([]uint{products["bread"].ID, 999})
	if err != nil {
		t.Fatalf("LookupProducts: %v", err)
	}
	if _, ok := infos[999]; ok {
		t.Fatal("unknown id resolved")
	}
	if _, ok := infos[products["bread"].ID]; !ok {
		t.Fatal("known id missing")
	}
}

func TestLookupProductsEmptyInput(t *testing.T) {
	f := newFixture()

	infos, err := f.catalog.LookupProducts(nil)
	if err != nil {
		t.Fatalf("LookupProducts: %v", err)
	}
	if len(infos) != 0 {
		t.Fatalf("infos = %d, want 0", len(infos))
	}
}

func TestDeleteProductBlockedByFormulaLine(t *testing.T) {
	f, _, products, _ := breakfastFixture()

	if err := f.catalog.DeleteProduct(products["bread"].ID); err == nil {
		t.Fatal("product referenced by a formula line deleted")
	}
}

func TestDeleteProductBlockedByOrderLine(t *testing.T) {
	f, _, _, units := breakfastFixture()

	loose := f.addProduct("Orange Juice", nil)
	order := f.addOrder("Hotel Riviera", 10, "2026-03-02", "09:00")
	f.addExtra(order.ID, loose.ID, "10", units["unit"].ID)

	if err := f.catalog.DeleteProduct(loose.ID); err == nil {
		t.Fatal("product referenced by an order line deleted")
	}
}

func TestDeleteProductUnreferenced(t *testing.T) {
	f, _, _, _ := breakfastFixture()

	loose := f.addProduct("Orange Juice", nil)
	if err := f.catalog.DeleteProduct(loose.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := f.catalog.GetProduct(loose.ID); err == nil {
		t.Fatal("product survived delete")
	}
}

func TestDeleteCategoryBlockedWhileAssigned(t *testing.T) {
	f, _, _, _ := breakfastFixture()

	categories, err := f.catalog.GetAllCategories()
	if err != nil {
		t.Fatalf("GetAllCategories: %v", err)
	}
	for _, category := range categories {
		if category.Name == "Bakery" {
			if err := f.catalog.DeleteCategory(category.ID); err == nil {
				t.Fatal("assigned category deleted")
			}
			return
		}
	}
	t.Fatal("Bakery category not found")
}

func TestDeleteUnitBlockedWhileUsed(t *testing.T) {
	f, _, _, units := breakfastFixture()

	if err := f.catalog.DeleteUnit(units["g"].ID); err == nil {
		t.Fatal("unit used by a formula line deleted")
	}

	spare := f.addUnit("dozen")
	if err := f.catalog.DeleteUnit(spare.ID); err != nil {
		t.Fatalf("DeleteUnit: %v", err)
	}
}
