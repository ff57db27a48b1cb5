// Package speech — lines.go centralises every spoken string.
// Edit this file to change Su-Chef's personality. Keep lines short and
// direct; the TTS engine handles inflection.
package speech

import (
	"fmt"
	"strings"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
)

// ── Greeting / Global ────────────────────────────────────────────

// LineWelcome opens a guided session and reminds the user of the
// available commands in one breath.
func LineWelcome(recipeName string) string {
	return fmt.Sprintf(
		"Hi! I'm Su-Chef, and today we're making %s. Say next to move on, repeat to hear a step again, ingredients for the full list, or just ask me anything.",
		recipeName,
	)
}

func LineBye() string {
	return "Happy cooking. Bye!"
}

// ── Cooking session ──────────────────────────────────────────────

// LineStep builds the spoken text for a cooking step. Repeat requests
// go through the same function so the narration is identical.
func LineStep(order, total int, instruction string) string {
	return fmt.Sprintf("Step %d of %d. %s", order, total, instruction)
}

// LineIngredients reads out the full ingredient list for the recipe.
func LineIngredients(recipeName string, ingredients []domain.Ingredient) string {
	if len(ingredients) == 0 {
		return "This recipe has no ingredient list. Trust the steps."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "For %s you'll need: ", recipeName)
	for i, ing := range ingredients {
		if i > 0 && i == len(ingredients)-1 {
			b.WriteString(", and ")
		} else if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ing.String())
	}
	b.WriteString(".")
	return b.String()
}

func LineCompleted() string {
	return "That was the last step. All done, great job cooking!"
}

func LineAborted() string {
	return "Okay, stopping here. The kitchen is yours."
}

func LineUnknown() string {
	return "Sorry, I didn't catch a command there. Say next, repeat, ingredients, or stop, or ask me a cooking question."
}

func LineDidNotHear() string {
	return "I didn't hear anything. Go ahead whenever you're ready."
}

// ── AI assistant ─────────────────────────────────────────────────

// LineAssistantSorry is spoken when the assistant cannot answer. The
// session carries on at the current step regardless.
func LineAssistantSorry() string {
	return "I'm having trouble with that question right now. Let's keep cooking."
}

func LineAssistantDisabled() string {
	return "The assistant is offline. Set OPENAI_API_KEY to enable cooking questions."
}
