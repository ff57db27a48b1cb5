package recipefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadStepsFormat(t *testing.T) {
	path := writeFile(t, "steps.json", `{
		"recipe_name": "Friend's Pasta",
		"steps": [
			{"step_number": 2, "text": "Boil the pasta."},
			{"step_number": 1, "text": "Salt the water."},
			{"step_number": 3, "text": "Toss with sauce."}
		],
		"ingredients": ["spaghetti", "tomato sauce"]
	}`)

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Name != "Friend's Pasta" {
		t.Errorf("name = %q", r.Name)
	}
	want := []string{"Salt the water.", "Boil the pasta.", "Toss with sauce."}
	if len(r.Steps) != 3 {
		t.Fatalf("steps = %v", r.Steps)
	}
	for i := range want {
		if r.Steps[i] != want[i] {
			t.Errorf("step %d = %q, want %q (numbered order must win)", i, r.Steps[i], want[i])
		}
	}
	if len(r.Ingredients) != 2 || r.Ingredients[0].Name != "spaghetti" {
		t.Errorf("ingredients = %+v", r.Ingredients)
	}
}

func TestLoadRecipeFormat(t *testing.T) {
	path := writeFile(t, "recipe.json", `{
		"name": "Green Shakshuka",
		"meal_type": "breakfast",
		"cooking_time": 25,
		"skill_level": "beginner",
		"dietary_tags": ["vegetarian"],
		"ingredients": [
			{"name": "eggs", "quantity": 4, "unit": "pieces"},
			{"name": "spinach", "quantity": 200, "unit": "grams"}
		],
		"steps": ["Wilt the greens.", "Crack in the eggs."]
	}`)

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Name != "Green Shakshuka" || r.MealType != "breakfast" || r.CookingTime != 25 {
		t.Errorf("header = %+v", r)
	}
	if len(r.Ingredients) != 2 || r.Ingredients[1].Quantity != 200 {
		t.Errorf("ingredients = %+v", r.Ingredients)
	}
	if len(r.Steps) != 2 || r.Steps[0] != "Wilt the greens." {
		t.Errorf("steps = %v", r.Steps)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file: want error")
	}

	noSteps := writeFile(t, "empty.json", `{"name": "Air", "steps": []}`)
	if _, err := Load(noSteps); err == nil {
		t.Error("no steps: want error")
	}

	garbage := writeFile(t, "bad.json", `{"name": `)
	if _, err := Load(garbage); err == nil {
		t.Error("invalid json: want error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	r := &domain.Recipe{
		Name:        "Miso Soup",
		MealType:    "lunch",
		CookingTime: 15,
		SkillLevel:  "beginner",
		Ingredients: []domain.Ingredient{
			{Name: "miso paste", Quantity: 3, Unit: "tablespoons"},
			{Name: "tofu", Quantity: 150, Unit: "grams"},
		},
		Steps: []string{"Heat the dashi.", "Whisk in the miso.", "Add the tofu."},
	}

	path := filepath.Join(t.TempDir(), "miso.json")
	if err := Save(path, r); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != r.Name || len(got.Steps) != 3 || len(got.Ingredients) != 2 {
		t.Errorf("round trip = %+v", got)
	}
	for i := range r.Steps {
		if got.Steps[i] != r.Steps[i] {
			t.Errorf("step %d = %q, want %q", i, got.Steps[i], r.Steps[i])
		}
	}
}
