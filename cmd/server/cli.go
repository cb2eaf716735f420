package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/example/recipe-assistant/internal/assistant"
	"github.com/example/recipe-assistant/internal/models"
	"github.com/example/recipe-assistant/internal/session"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
	header = color.New(color.FgCyan, color.Bold).SprintFunc()
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check whether the active provider answers",
	Run: func(cmd *cobra.Command, args []string) {
		for _, st := range deps.selector.CredentialStatus() {
			mark := red("✗")
			if st.Configured {
				mark = green("✓")
			}
			active := ""
			if st.Active {
				active = cyan(" (active)")
			}
			fmt.Printf("%s %s%s\n", mark, st.Name, active)
		}

		res := deps.resolver.Probe(cmd.Context())
		fmt.Printf("\nStatus: %s\n\n", statusLabel(res.Status))
		fmt.Println(deps.resolver.Greeting(res))
	},
}

func statusLabel(s models.ProbeStatus) string {
	switch s {
	case models.ProbeConnected:
		return green(string(s))
	case models.ProbeUnavailable:
		return red(string(s))
	}
	return yellow(string(s))
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single cooking question",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reply := deps.resolver.Answer(cmd.Context(), strings.Join(args, " "), models.ContextBundle{})
		printReply(reply)
	},
}

func printReply(reply assistant.Reply) {
	fmt.Println(reply.Text)
	src := faint("source: " + reply.Source)
	if reply.FallbackReason != "" {
		src += faint(" (" + reply.FallbackReason + ")")
	}
	fmt.Println(src)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat with an in-memory recipe box",
	Long: `Interactive chat. Lines starting with a slash are commands:
  /recipe   add a recipe to the session
  /recipes  list recipes
  /quit     leave`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sess := session.NewManager(nil).Create()

		res := deps.resolver.Probe(ctx)
		greeting := deps.resolver.Greeting(res)
		sess.Greet(greeting, res.Source())
		fmt.Println(header("Assistant") + " " + statusLabel(res.Status))
		fmt.Println(greeting)

		for {
			prompt := promptui.Prompt{Label: "You"}
			line, err := prompt.Run()
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			if err != nil {
				return err
			}
			line = strings.TrimSpace(line)
			switch line {
			case "":
				continue
			case "/quit", "/exit":
				return nil
			case "/recipes":
				printRecipes(sess.Recipes.List())
				continue
			case "/recipe":
				if err := promptRecipe(sess); err != nil {
					if errors.Is(err, promptui.ErrInterrupt) {
						continue
					}
					fmt.Println(red(err.Error()))
				}
				continue
			}

			sess.AppendMessage(models.RoleUser, line, "")
			reply := deps.resolver.Answer(ctx, line, sess.Bundle())
			sess.AppendMessage(models.RoleAssistant, reply.Text, reply.Source)
			fmt.Println(header("Assistant:"))
			printReply(reply)
		}
	},
}

func promptRecipe(sess *session.Session) error {
	notEmpty := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("required")
		}
		return nil
	}
	title, err := (&promptui.Prompt{Label: "Title", Validate: notEmpty}).Run()
	if err != nil {
		return err
	}
	ingredients, err := (&promptui.Prompt{Label: "Ingredients (comma separated)", Validate: notEmpty}).Run()
	if err != nil {
		return err
	}
	minutes, err := (&promptui.Prompt{
		Label: "Cooking time in minutes (optional)",
		Validate: func(s string) error {
			if s == "" {
				return nil
			}
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return errors.New("enter a non-negative number")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return err
	}
	_, difficulty, err := (&promptui.Select{
		Label: "Difficulty",
		Items: []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard},
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   `{{ "›" | green | bold }} {{ . | green | bold }}`,
			Inactive: "  {{ . | faint }}",
			Selected: `{{ "✔" | green | bold }} {{ "Difficulty:" | bold }} {{ . | yellow }}`,
		},
	}).Run()
	if err != nil {
		return err
	}

	in := models.RecipeInput{
		Title:       title,
		Ingredients: strings.Join(strings.Split(ingredients, ","), "\n"),
		Difficulty:  difficulty,
	}
	if minutes != "" {
		n, _ := strconv.Atoi(minutes)
		in.CookingTime = &n
	}
	rec, err := sess.AddRecipe(in)
	if err != nil {
		return err
	}
	fmt.Printf("%s added %q (%d ingredients)\n", green("✓"), rec.Title, len(rec.Ingredients()))
	return nil
}

func printRecipes(recipes []models.Recipe) {
	if len(recipes) == 0 {
		fmt.Println(faint("no recipes yet, add one with /recipe"))
		return
	}
	for _, r := range recipes {
		fmt.Printf("%s %s %s\n", cyan("•"), r.Title, faint("["+string(r.Difficulty)+"] "+strings.Join(r.Ingredients(), ", ")))
	}
}
