package services_test

import (
	"context"
	"testing"

	"backend/services"
)

func newBuilder() *services.MealBuilder {
	return services.NewMealBuilder(services.NewFoodService())
}

// Count must equal the ingredient list length after any add/remove mix.
func TestBuilder_CountMatchesIngredients(t *testing.T) {
	b := newBuilder()

	b.AddIngredient("protein", "meat", "Pollo")
	b.AddIngredient("protein", "meat", "Pavo")
	b.AddIngredient("protein", "fish", "Atún")
	b.RemoveIngredient("protein", "meat", "Pollo")
	b.AddIngredient("carbs", "grains", "Arroz")
	b.RemoveIngredient("carbs", "grains", "Arroz")
	b.AddIngredient("carbs", "grains", "Avena")

	for catID, groups := range b.Selection() {
		for groupID, detail := range groups {
			if detail.Count != len(detail.Ingredients) {
				t.Errorf("%s/%s: count %d != %d ingredients",
					catID, groupID, detail.Count, len(detail.Ingredients))
			}
			if detail.Count == 0 {
				t.Errorf("%s/%s: zero-count entry left behind", catID, groupID)
			}
		}
	}
}

func TestBuilder_RemoveLastIngredientDeletesGroup(t *testing.T) {
	b := newBuilder()
	b.AddIngredient("fats", "nuts", "Nueces")
	b.RemoveIngredient("fats", "nuts", "Nueces")

	if _, ok := b.Selection()["fats"]["nuts"]; ok {
		t.Fatal("group entry should be deleted when its last ingredient is removed")
	}
	if !b.IsEmpty() {
		t.Error("builder should be empty")
	}
}

func TestBuilder_RemoveWholeGroup(t *testing.T) {
	b := newBuilder()
	b.AddIngredient("magic", "spices", "Canela")
	b.AddIngredient("magic", "spices", "Comino")
	b.AddIngredient("magic", "seasoning", "Limón")
	b.RemoveIngredient("magic", "spices", "")

	if _, ok := b.Selection()["magic"]["spices"]; ok {
		t.Fatal("group entry should be deleted regardless of count")
	}
}

// Removing one occurrence drops exactly the first match.
func TestBuilder_RemoveSingleOccurrence(t *testing.T) {
	b := newBuilder()
	b.AddIngredient("protein", "meat", "Pollo")
	b.AddIngredient("protein", "meat", "Ternera")
	b.AddIngredient("protein", "meat", "Pollo")
	b.RemoveIngredient("protein", "meat", "Pollo")

	detail := b.Selection()["protein"]["meat"]
	if detail.Count != 2 {
		t.Fatalf("count = %d, want 2", detail.Count)
	}
	want := []string{"Ternera", "Pollo"}
	for i, name := range want {
		if detail.Ingredients[i] != name {
			t.Errorf("ingredients[%d] = %q, want %q", i, detail.Ingredients[i], name)
		}
	}
}

// Categories outside the taxonomy are single-select: the second pick
// replaces the category wholesale.
func TestBuilder_SingleSelectReplacesCategory(t *testing.T) {
	b := newBuilder()
	b.AddIngredient("supplement", "shakes", "Batido")
	b.AddIngredient("supplement", "bars", "Barrita")

	groups := b.Selection()["supplement"]
	if len(groups) != 1 {
		t.Fatalf("got %d group entries, want 1", len(groups))
	}
	detail, ok := groups["bars"]
	if !ok {
		t.Fatal("expected the later pick's group to win")
	}
	if detail.Count != 1 || detail.Ingredients[0] != "Barrita" {
		t.Errorf("detail = %+v", detail)
	}
}

func TestBuilder_FinalizeDeepCopies(t *testing.T) {
	b := newBuilder()
	b.AddIngredient("protein", "meat", "Pollo")

	meal := b.Finalize("Comida 1")
	if meal.ID == "" || meal.Timestamp == 0 {
		t.Fatalf("meal not stamped: %+v", meal)
	}
	if meal.Name != "Comida 1" {
		t.Errorf("name = %q", meal.Name)
	}

	// finalize must not clear the builder, and later edits must not
	// leak into the produced meal
	if b.IsEmpty() {
		t.Fatal("finalize cleared the builder")
	}
	b.AddIngredient("protein", "meat", "Pavo")
	if got := meal.Selection["protein"]["meat"].Count; got != 1 {
		t.Errorf("meal selection mutated after finalize: count = %d", got)
	}
}

func TestBuilderService_DraftRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()
	svc := services.NewBuilderService(store, services.NewFoodService())

	b, err := svc.Load(ctx, 7)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	b.AddIngredient("carbs", "grains", "Quinoa")
	if err := svc.Save(ctx, 7, b); err != nil {
		t.Fatalf("save: %v", err)
	}

	restored, err := svc.Load(ctx, 7)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if restored.Selection()["carbs"]["grains"].Count != 1 {
		t.Errorf("draft not restored: %+v", restored.Selection())
	}

	// drafts are per-user
	other, err := svc.Load(ctx, 8)
	if err != nil {
		t.Fatalf("load other: %v", err)
	}
	if !other.IsEmpty() {
		t.Error("draft leaked across users")
	}

	if err := svc.Reset(ctx, 7); err != nil {
		t.Fatalf("reset: %v", err)
	}
	cleared, _ := svc.Load(ctx, 7)
	if !cleared.IsEmpty() {
		t.Error("reset did not clear the draft")
	}
}
