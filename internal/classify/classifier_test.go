package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
	"github.com/YardenLiberman/Su-Chef/internal/logger"
)

func TestKeywordClassification(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	c := New(log, nil)
	ctx := context.Background()

	tests := []struct {
		input       string
		wantType    domain.IntentType
		wantPayload string
	}{
		// Next variants, including filler words
		{"next", domain.IntentNext, ""},
		{"what's next", domain.IntentNext, ""},
		{"please go to the next step", domain.IntentNext, ""},
		{"continue", domain.IntentNext, ""},

		// Repeat
		{"repeat", domain.IntentRepeat, ""},
		{"please repeat that", domain.IntentRepeat, ""},
		{"say that again", domain.IntentRepeat, ""},

		// Ingredients
		{"ingredients", domain.IntentIngredients, ""},
		{"read me the ingredient list", domain.IntentIngredients, ""},

		// Help
		{"help", domain.IntentHelp, ""},
		{"any tips", domain.IntentHelp, ""},

		// Stop
		{"stop", domain.IntentStop, ""},
		{"quit", domain.IntentStop, ""},
		{"ok let's stop here", domain.IntentStop, ""},

		// Free text falls through to a question carrying the literal text
		{"how do I dice an onion", domain.IntentQuestion, "how do I dice an onion"},
		{"can I use butter instead of oil", domain.IntentQuestion, "can I use butter instead of oil"},

		// Word boundaries: no accidental substring matches
		{"is the sauce nextdoor brand ok", domain.IntentQuestion, "is the sauce nextdoor brand ok"},

		// Empty input
		{"", domain.IntentUnrecognized, ""},
		{"   ", domain.IntentUnrecognized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent := c.Classify(ctx, tt.input)
			if intent.Type != tt.wantType {
				t.Errorf("input=%q: got type %s, want %s", tt.input, intent.Type, tt.wantType)
			}
			if intent.Payload != tt.wantPayload {
				t.Errorf("input=%q: got payload %q, want %q", tt.input, intent.Payload, tt.wantPayload)
			}
		})
	}
}

type fakeResolver struct {
	intent domain.Intent
	err    error
	calls  int
}

func (f *fakeResolver) Resolve(ctx context.Context, utterance string) (domain.Intent, error) {
	f.calls++
	return f.intent, f.err
}

func TestResolverFallback(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	ctx := context.Background()

	t.Run("resolver maps to a command", func(t *testing.T) {
		r := &fakeResolver{intent: domain.Intent{Type: domain.IntentNext}}
		c := New(log, r)

		intent := c.Classify(ctx, "I'm done with this one, move on")
		if intent.Type != domain.IntentNext {
			t.Fatalf("got %s, want next", intent.Type)
		}
		if r.calls != 1 {
			t.Fatalf("resolver called %d times, want 1", r.calls)
		}
	})

	t.Run("resolver failure yields unrecognized", func(t *testing.T) {
		r := &fakeResolver{err: errors.New("api down")}
		c := New(log, r)

		intent := c.Classify(ctx, "mumble mumble")
		if intent.Type != domain.IntentUnrecognized {
			t.Fatalf("got %s, want unrecognized", intent.Type)
		}
	})

	t.Run("resolver question keeps the literal text", func(t *testing.T) {
		r := &fakeResolver{intent: domain.Intent{Type: domain.IntentQuestion}}
		c := New(log, r)

		intent := c.Classify(ctx, "what temperature for the oven")
		if intent.Type != domain.IntentQuestion {
			t.Fatalf("got %s, want question", intent.Type)
		}
		if intent.Payload != "what temperature for the oven" {
			t.Fatalf("payload = %q", intent.Payload)
		}
	})

	t.Run("keyword match never hits the resolver", func(t *testing.T) {
		r := &fakeResolver{intent: domain.Intent{Type: domain.IntentStop}}
		c := New(log, r)

		c.Classify(ctx, "next")
		if r.calls != 0 {
			t.Fatalf("resolver called %d times, want 0", r.calls)
		}
	})
}
