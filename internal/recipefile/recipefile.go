// Package recipefile reads and writes recipes as JSON files, so users
// can share recipes outside the database. Two layouts are understood:
// the full recipe format this tool writes, and the plainer steps
// format ({"recipe_name", "steps": [{"step_number", "text"}]}) other
// tools produce.
package recipefile

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
)

// stepEntry accepts either a bare instruction string or a numbered
// step object.
type stepEntry struct {
	Number int
	Text   string
}

func (s *stepEntry) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		s.Text = text
		return nil
	}
	var obj struct {
		Number int    `json:"step_number"`
		Text   string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	s.Number = obj.Number
	s.Text = obj.Text
	return nil
}

// ingredientEntry accepts either a free-text ingredient or a
// structured one.
type ingredientEntry struct {
	Name     string
	Quantity float64
	Unit     string
}

func (i *ingredientEntry) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		i.Name = text
		return nil
	}
	var obj struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	i.Name = obj.Name
	i.Quantity = obj.Quantity
	i.Unit = obj.Unit
	return nil
}

// filePayload covers both accepted layouts in one shape.
type filePayload struct {
	Name        string            `json:"name"`
	RecipeName  string            `json:"recipe_name"`
	MealType    string            `json:"meal_type"`
	CookingTime int               `json:"cooking_time"`
	SkillLevel  string            `json:"skill_level"`
	DietaryTags []string          `json:"dietary_tags"`
	Ingredients []ingredientEntry `json:"ingredients"`
	Steps       []stepEntry       `json:"steps"`
}

// Load reads a recipe from a JSON file.
func Load(path string) (*domain.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var p filePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = strings.TrimSpace(p.RecipeName)
	}
	if name == "" {
		name = "Unknown Recipe"
	}
	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("%s: recipe has no steps", path)
	}

	// Numbered steps may arrive out of order.
	steps := make([]stepEntry, len(p.Steps))
	copy(steps, p.Steps)
	sort.SliceStable(steps, func(a, b int) bool { return steps[a].Number < steps[b].Number })

	r := &domain.Recipe{
		Name:        name,
		MealType:    p.MealType,
		CookingTime: p.CookingTime,
		SkillLevel:  p.SkillLevel,
		DietaryTags: p.DietaryTags,
	}
	for _, s := range steps {
		if strings.TrimSpace(s.Text) != "" {
			r.Steps = append(r.Steps, s.Text)
		}
	}
	if len(r.Steps) == 0 {
		return nil, fmt.Errorf("%s: recipe has no usable steps", path)
	}
	for _, ing := range p.Ingredients {
		r.Ingredients = append(r.Ingredients, domain.Ingredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	return r, nil
}

// savedRecipe is the layout Save writes: the full recipe format.
type savedRecipe struct {
	Name        string            `json:"name"`
	MealType    string            `json:"meal_type,omitempty"`
	CookingTime int               `json:"cooking_time,omitempty"`
	SkillLevel  string            `json:"skill_level,omitempty"`
	DietaryTags []string          `json:"dietary_tags,omitempty"`
	Ingredients []savedIngredient `json:"ingredients"`
	Steps       []string          `json:"steps"`
}

type savedIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty"`
}

// Save writes a recipe as indented JSON.
func Save(path string, r *domain.Recipe) error {
	out := savedRecipe{
		Name:        r.Name,
		MealType:    r.MealType,
		CookingTime: r.CookingTime,
		SkillLevel:  r.SkillLevel,
		DietaryTags: r.DietaryTags,
		Steps:       r.Steps,
	}
	for _, ing := range r.Ingredients {
		out.Ingredients = append(out.Ingredients, savedIngredient(ing))
	}

	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding recipe: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
