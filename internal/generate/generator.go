// Package generate produces recipes from user constraints via the
// OpenAI chat completion API with a function-call schema, so the model
// always answers in a shape we can decode.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
	"github.com/YardenLiberman/Su-Chef/internal/logger"
)

const systemPrompt = "You are a professional chef creating clear, practical recipes " +
	"for home cooks. Every step must be a single short instruction that works " +
	"when read aloud. Never reference step numbers inside the instructions."

// chatCompleter is the slice of the OpenAI client the generator needs.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Option configures the generator.
type Option func(*Generator)

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(g *Generator) {
		g.model = model
	}
}

// Generator implements domain.RecipeGenerator on the OpenAI API.
type Generator struct {
	client chatCompleter
	model  string
	log    *logger.Logger
}

var _ domain.RecipeGenerator = (*Generator)(nil)

// New creates a recipe generator.
func New(client chatCompleter, log *logger.Logger, opts ...Option) *Generator {
	g := &Generator{
		client: client,
		model:  openai.GPT4oMini,
		log:    log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// recipePayload mirrors the create_recipe function-call schema.
type recipePayload struct {
	Name        string   `json:"name"`
	MealType    string   `json:"meal_type"`
	CookingTime int      `json:"cooking_time"`
	SkillLevel  string   `json:"skill_level"`
	DietaryTags []string `json:"dietary_tags"`
	Ingredients []struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	} `json:"ingredients"`
	Steps []string `json:"steps"`
}

// recipeFunction defines the function-call schema the model must fill.
func recipeFunction() openai.FunctionDefinition {
	return openai.FunctionDefinition{
		Name: "create_recipe",
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"name": {
					Type:        jsonschema.String,
					Description: "Short name of the dish",
				},
				"meal_type": {
					Type: jsonschema.String,
					Enum: []string{"breakfast", "lunch", "dinner", "snack"},
				},
				"cooking_time": {
					Type:        jsonschema.Number,
					Description: "Total preparation time in minutes",
				},
				"skill_level": {
					Type: jsonschema.String,
					Enum: []string{"beginner", "intermediate", "advanced"},
				},
				"dietary_tags": {
					Type:        jsonschema.Array,
					Description: "Dietary categories this recipe satisfies, e.g. vegetarian, kosher",
					Items:       &jsonschema.Definition{Type: jsonschema.String},
				},
				"ingredients": {
					Type: jsonschema.Array,
					Items: &jsonschema.Definition{
						Type: jsonschema.Object,
						Properties: map[string]jsonschema.Definition{
							"name":     {Type: jsonschema.String, Description: "Ingredient name without unit or amount"},
							"quantity": {Type: jsonschema.Number},
							"unit":     {Type: jsonschema.String, Enum: []string{"pieces", "cups", "tablespoons", "teaspoons", "grams", "ml", ""}},
						},
					},
				},
				"steps": {
					Type:        jsonschema.Array,
					Description: "Ordered preparation steps, one instruction each, no numbering",
					Items:       &jsonschema.Definition{Type: jsonschema.String},
				},
			},
			Required: []string{"name", "ingredients", "steps"},
		},
	}
}

// buildPrompt renders the user constraints as the request prompt.
func buildPrompt(c domain.Constraints) string {
	var b strings.Builder
	b.WriteString("Create a ")
	if c.MealType != "" {
		b.WriteString(c.MealType)
		b.WriteString(" ")
	}
	b.WriteString("recipe")
	if c.MaxMinutes > 0 {
		fmt.Fprintf(&b, " that takes at most %d minutes to prepare", c.MaxMinutes)
	}
	if c.SkillLevel != "" {
		fmt.Fprintf(&b, ", suitable for a %s cook", c.SkillLevel)
	}
	b.WriteString(".")
	if c.Dietary != "" {
		fmt.Fprintf(&b, " It must be %s.", c.Dietary)
	}
	if len(c.OnHand) > 0 {
		fmt.Fprintf(&b, " Use these ingredients I have on hand: %s.", strings.Join(c.OnHand, ", "))
	}
	if c.Regenerate {
		b.WriteString(" Suggest a different dish than you would normally pick first.")
	}
	return b.String()
}

// Generate asks the model for one recipe matching the constraints.
// All failures, transport or content, wrap domain.ErrGenerationFailed.
func (g *Generator) Generate(ctx context.Context, c domain.Constraints) (*domain.Recipe, error) {
	fn := recipeFunction()
	prompt := buildPrompt(c)
	g.log.Debug("generate: %s", prompt)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Functions:    []openai.FunctionDefinition{fn},
		FunctionCall: &openai.FunctionCall{Name: fn.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.FunctionCall == nil {
		return nil, fmt.Errorf("%w: model returned no function call", domain.ErrGenerationFailed)
	}

	recipe, err := decodeRecipe(resp.Choices[0].Message.FunctionCall.Arguments)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	g.log.Info("generate: %q (%d steps, %d min)", recipe.Name, len(recipe.Steps), recipe.CookingTime)
	return recipe, nil
}

// decodeRecipe parses the function-call arguments and rejects recipes
// that could not be cooked from.
func decodeRecipe(args string) (*domain.Recipe, error) {
	var p recipePayload
	if err := json.Unmarshal([]byte(args), &p); err != nil {
		return nil, fmt.Errorf("decoding recipe arguments: %v", err)
	}

	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("recipe has no name")
	}
	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("recipe %q has no steps", p.Name)
	}

	r := &domain.Recipe{
		Name:        strings.TrimSpace(p.Name),
		MealType:    p.MealType,
		CookingTime: p.CookingTime,
		SkillLevel:  p.SkillLevel,
		DietaryTags: p.DietaryTags,
		Steps:       p.Steps,
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
