// Package display renders the terminal output: menus, recipe views,
// and status lines. The cooking loop itself prints through its
// channel; everything here is the surrounding menu UI.
package display

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
)

//go:embed banner.txt
var bannerRaw string

// ── Styles (soft palette) ────────────────────────────────────────

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Bold(true)

	// Step headers — soft mint.
	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	menuBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#52525b")).
		Padding(0, 2)
)

// Banner returns the startup banner art.
func Banner() string {
	return bannerStyle.Render(strings.TrimRight(bannerRaw, "\n"))
}

// Menu renders a titled, numbered option list inside a box.
func Menu(title string, options []string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')
	for i, opt := range options {
		fmt.Fprintf(&b, "%s %s\n",
			secondaryStyle.Render(fmt.Sprintf("%d.", i+1)),
			primaryStyle.Render(opt),
		)
	}
	return menuBox.Render(strings.TrimRight(b.String(), "\n"))
}

// RecipePreview is the short view shown before the user commits to a
// recipe: header facts, ingredients, and a peek at the first step.
func RecipePreview(r *domain.Recipe) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Name))
	b.WriteByte('\n')
	b.WriteString(secondaryStyle.Render(headerFacts(r)))
	b.WriteByte('\n')

	b.WriteString(primaryStyle.Render(fmt.Sprintf("\nIngredients (%d):", len(r.Ingredients))))
	b.WriteByte('\n')
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "  %s\n", primaryStyle.Render("- "+ing.String()))
	}

	fmt.Fprintf(&b, "\n%s\n", primaryStyle.Render(fmt.Sprintf("Instructions: %d steps", len(r.Steps))))
	if len(r.Steps) > 0 {
		first := r.Steps[0]
		if len(first) > 60 {
			first = first[:57] + "..."
		}
		fmt.Fprintf(&b, "  %s\n", secondaryStyle.Render("1. "+first))
		if len(r.Steps) > 1 {
			fmt.Fprintf(&b, "  %s\n", secondaryStyle.Render(fmt.Sprintf("... %d more steps", len(r.Steps)-1)))
		}
	}
	return b.String()
}

// RecipeDetails is the full view: every ingredient and every step.
func RecipeDetails(r *domain.Recipe) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Name))
	b.WriteByte('\n')
	b.WriteString(secondaryStyle.Render(headerFacts(r)))
	b.WriteByte('\n')

	b.WriteString(primaryStyle.Render("\nIngredients:"))
	b.WriteByte('\n')
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "  %s\n", primaryStyle.Render("- "+ing.String()))
	}

	b.WriteString(primaryStyle.Render("\nInstructions:"))
	b.WriteByte('\n')
	for i, step := range r.Steps {
		fmt.Fprintf(&b, "  %s %s\n",
			stepStyle.Render(fmt.Sprintf("%d.", i+1)),
			primaryStyle.Render(step),
		)
	}
	return b.String()
}

func headerFacts(r *domain.Recipe) string {
	facts := []string{}
	if r.MealType != "" {
		facts = append(facts, r.MealType)
	}
	if r.CookingTime > 0 {
		facts = append(facts, fmt.Sprintf("%d min", r.CookingTime))
	}
	if r.SkillLevel != "" {
		facts = append(facts, r.SkillLevel)
	}
	if len(r.DietaryTags) > 0 {
		facts = append(facts, strings.Join(r.DietaryTags, ", "))
	}
	return strings.Join(facts, " | ")
}

// Summaries renders a numbered recipe list for selection.
func Summaries(list []domain.RecipeSummary) string {
	if len(list) == 0 {
		return secondaryStyle.Render("No recipes found.")
	}
	var b strings.Builder
	for i, s := range list {
		fmt.Fprintf(&b, "%s %s %s\n",
			secondaryStyle.Render(fmt.Sprintf("%d.", i+1)),
			primaryStyle.Render(s.Name),
			secondaryStyle.Render(fmt.Sprintf("(%s, %d min, %d steps)", s.MealType, s.CookingTime, s.StepCount)),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// UsageLine summarizes one recipe's cooking history.
func UsageLine(u domain.UsageStat) string {
	parts := []string{fmt.Sprintf("cooked %d times", u.TimesCooked)}
	if u.Liked {
		parts = append(parts, "liked")
	}
	if u.Rating > 0 {
		parts = append(parts, fmt.Sprintf("rated %d/5", u.Rating))
	}
	if !u.LastCooked.IsZero() {
		parts = append(parts, "last on "+u.LastCooked.Format("Jan 2"))
	}
	return secondaryStyle.Render(strings.Join(parts, ", "))
}

// StatsView renders the aggregate statistics screen.
func StatsView(st domain.Stats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your cooking stats"))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s\n", primaryStyle.Render(fmt.Sprintf("Saved recipes:  %d", st.TotalRecipes)))
	fmt.Fprintf(&b, "%s\n", primaryStyle.Render(fmt.Sprintf("Cooked at least once: %d (%.0f%%)", st.CookedCount, st.CompletionRate())))
	fmt.Fprintf(&b, "%s\n", primaryStyle.Render(fmt.Sprintf("Liked: %d (%.0f%% of cooked)", st.LikedCount, st.LikeRate())))
	return strings.TrimRight(b.String(), "\n")
}

// Error renders an error line.
func Error(msg string) string {
	return errorStyle.Render("✗ " + msg)
}

// Success renders a confirmation line.
func Success(msg string) string {
	return successStyle.Render("✓ " + msg)
}

// Info renders a secondary status line.
func Info(msg string) string {
	return secondaryStyle.Render(msg)
}
