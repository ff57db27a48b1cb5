package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
	"github.com/YardenLiberman/Su-Chef/internal/logger"
)

var testLog = logger.New(logger.LevelOff, io.Discard)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name        string
		constraints domain.Constraints
		want        []string
		wantAbsent  []string
	}{
		{
			name: "full constraints",
			constraints: domain.Constraints{
				MealType:   "dinner",
				MaxMinutes: 30,
				SkillLevel: "beginner",
				Dietary:    "vegetarian",
				OnHand:     []string{"eggs", "spinach"},
			},
			want: []string{"dinner", "30 minutes", "beginner", "vegetarian", "eggs, spinach"},
		},
		{
			name:        "bare request",
			constraints: domain.Constraints{},
			want:        []string{"Create a recipe"},
			wantAbsent:  []string{"minutes", "suitable", "on hand"},
		},
		{
			name:        "regenerate asks for a different dish",
			constraints: domain.Constraints{MealType: "lunch", Regenerate: true},
			want:        []string{"different dish"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildPrompt(tt.constraints)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("prompt %q missing %q", got, w)
				}
			}
			for _, w := range tt.wantAbsent {
				if strings.Contains(got, w) {
					t.Errorf("prompt %q should not mention %q", got, w)
				}
			}
		})
	}
}

const validArgs = `{
	"name": "Spinach Omelette",
	"meal_type": "dinner",
	"cooking_time": 15,
	"skill_level": "beginner",
	"dietary_tags": ["vegetarian"],
	"ingredients": [
		{"name": "eggs", "quantity": 3, "unit": "pieces"},
		{"name": "spinach", "quantity": 100, "unit": "grams"}
	],
	"steps": ["Whisk the eggs.", "Wilt the spinach.", "Cook the omelette."]
}`

func TestDecodeRecipe(t *testing.T) {
	r, err := decodeRecipe(validArgs)
	if err != nil {
		t.Fatalf("decodeRecipe: %v", err)
	}
	if r.Name != "Spinach Omelette" || r.CookingTime != 15 {
		t.Errorf("recipe = %+v", r)
	}
	if len(r.Steps) != 3 || r.Steps[0] != "Whisk the eggs." {
		t.Errorf("steps = %v", r.Steps)
	}
	if len(r.Ingredients) != 2 || r.Ingredients[1].Unit != "grams" {
		t.Errorf("ingredients = %+v", r.Ingredients)
	}

	for name, args := range map[string]string{
		"invalid json": `{"name": `,
		"no name":      `{"name": " ", "steps": ["x"]}`,
		"no steps":     `{"name": "Toast", "steps": []}`,
	} {
		if _, err := decodeRecipe(args); err == nil {
			t.Errorf("%s: want error, got nil", name)
		}
	}
}

// fakeCompleter scripts one chat completion response.
type fakeCompleter struct {
	resp openai.ChatCompletionResponse
	err  error
	req  openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.req = req
	return f.resp, f.err
}

func functionResponse(args string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				FunctionCall: &openai.FunctionCall{Name: "create_recipe", Arguments: args},
			},
		}},
	}
}

func TestGenerate(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		fake := &fakeCompleter{resp: functionResponse(validArgs)}
		g := New(fake, testLog)

		r, err := g.Generate(context.Background(), domain.Constraints{MealType: "dinner"})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if r.Name != "Spinach Omelette" {
			t.Errorf("name = %q", r.Name)
		}
		fc, ok := fake.req.FunctionCall.(*openai.FunctionCall)
		if !ok || fc == nil || fc.Name != "create_recipe" {
			t.Errorf("request did not force the function call: %+v", fake.req.FunctionCall)
		}
	})

	t.Run("transport failure wraps ErrGenerationFailed", func(t *testing.T) {
		fake := &fakeCompleter{err: fmt.Errorf("rate limited")}
		g := New(fake, testLog)

		_, err := g.Generate(context.Background(), domain.Constraints{})
		if !errors.Is(err, domain.ErrGenerationFailed) {
			t.Errorf("err = %v, want ErrGenerationFailed", err)
		}
	})

	t.Run("missing function call wraps ErrGenerationFailed", func(t *testing.T) {
		fake := &fakeCompleter{resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "here is a recipe..."}}},
		}}
		g := New(fake, testLog)

		_, err := g.Generate(context.Background(), domain.Constraints{})
		if !errors.Is(err, domain.ErrGenerationFailed) {
			t.Errorf("err = %v, want ErrGenerationFailed", err)
		}
	})
}
