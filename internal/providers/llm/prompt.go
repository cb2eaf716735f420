package llm

import (
	"fmt"
	"strings"

	"github.com/example/recipe-assistant/internal/models"
)

const (
	maxContextRecipes     = 3
	maxContextIngredients = 3
	maxContextFiles       = 5
	maxContextExcerpt     = 200
)

// SystemPreamble is prepended to the primary provider's prompt.
func SystemPreamble(bundle models.ContextBundle) string {
	return fmt.Sprintf(`You are a helpful recipe assistant. You have access to:
- %d recipes in the user's collection
- %d uploaded files

Provide helpful, concise responses about cooking, recipes, and food preparation.
Be practical and give specific advice when possible.`, len(bundle.Recipes), len(bundle.Files))
}

// ContextSummary renders a short description of the session's recipes and files.
func ContextSummary(bundle models.ContextBundle) string {
	var b strings.Builder
	if len(bundle.Recipes) > 0 {
		b.WriteString("Available recipes:\n")
		for i, r := range head(bundle.Recipes, maxContextRecipes) {
			difficulty := string(r.Difficulty)
			if difficulty == "" {
				difficulty = "unknown"
			}
			fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, r.Title, difficulty)
			if ings := r.Ingredients(); len(ings) > 0 {
				fmt.Fprintf(&b, "   Ingredients: %s...\n", strings.Join(head(ings, maxContextIngredients), ", "))
			}
		}
		b.WriteString("\n")
	}
	if len(bundle.Files) > 0 {
		b.WriteString("Uploaded files:\n")
		for _, f := range head(bundle.Files, maxContextFiles) {
			fmt.Fprintf(&b, "- %s (%s)\n", f.Name, f.Type)
			if f.Excerpt != "" {
				fmt.Fprintf(&b, "  Excerpt: %s\n", truncateRunes(oneLine(f.Excerpt), maxContextExcerpt))
			}
		}
	}
	return b.String()
}

// QuestionPrompt is the prompt shape shared by the secondary providers.
func QuestionPrompt(question string, bundle models.ContextBundle) string {
	return fmt.Sprintf("User question: %s\n\n%s", question, ContextSummary(bundle))
}

// FullPrompt is the primary provider's single text block.
func FullPrompt(question string, bundle models.ContextBundle) string {
	return SystemPreamble(bundle) + "\n\n" + QuestionPrompt(question, bundle)
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func oneLine(s string) string { return strings.Join(strings.Fields(s), " ") }

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
