package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/edition-advisor/internal/catalog"
	"github.com/ziadkadry99/edition-advisor/internal/config"
	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/progress"
	"github.com/ziadkadry99/edition-advisor/internal/traversal"
	"github.com/ziadkadry99/edition-advisor/internal/ui"
)

var walkCmd = &cobra.Command{
	Use:   "walk",
	Short: "Answer the advisor questions in the terminal",
	Long: `Asks the yes/no questions one at a time and prints the recommended edition.
With --answers or --require the walk runs without prompting.`,
	RunE: runWalk,
}

func init() {
	walkCmd.Flags().StringSlice("answers", nil, "answers to apply in order, e.g. no,yes,yes")
	walkCmd.Flags().StringSlice("require", nil, "feature ids the deployment needs; answers are chosen to satisfy them")
	rootCmd.AddCommand(walkCmd)
}

const (
	walkBack  = "Назад"
	walkReset = "Начать заново"
	walkQuit  = "Выйти"
)

func runWalk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	ds, err := loadDataset(log)
	if err != nil {
		return err
	}

	rawAnswers, _ := cmd.Flags().GetStringSlice("answers")
	required, _ := cmd.Flags().GetStringSlice("require")
	if len(rawAnswers) > 0 && len(required) > 0 {
		return errors.New("use either --answers or --require, not both")
	}

	m := traversal.New(ds, nil)
	var answers []dataset.Choice
	switch {
	case len(required) > 0:
		if answers, err = traversal.Plan(ds, required); err != nil {
			return err
		}
	case len(rawAnswers) > 0:
		for _, a := range rawAnswers {
			c, err := dataset.ParseChoice(a)
			if err != nil {
				return err
			}
			answers = append(answers, c)
		}
	}

	if answers != nil {
		if err := m.Replay(answers); err != nil {
			return err
		}
	} else if err := prompt(m, cfg); err != nil {
		return err
	}

	return printOutcome(m, cfg, required)
}

// prompt runs the interactive loop until an edition is resolved or the
// user quits.
func prompt(m *traversal.Machine, cfg *config.Config) error {
	ui.Banner(os.Stdout, "подбор редакции")
	rep := progress.NewReporter(os.Stderr)
	rep.Start(100, "Прогресс")
	defer rep.Finish()

	for m.State() != traversal.Resolved {
		rep.Update(m.Progress(), "")
		fmt.Println()

		var items []string
		if m.CanAnswer(dataset.Yes) {
			items = append(items, cfg.YesLabel)
		}
		if m.CanAnswer(dataset.No) {
			items = append(items, cfg.NoLabel)
		}
		if len(m.Path()) > 1 {
			items = append(items, walkBack, walkReset)
		}
		items = append(items, walkQuit)

		sel := promptui.Select{Label: m.Current().Text(), Items: items}
		_, choice, err := sel.Run()
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}

		switch choice {
		case cfg.YesLabel:
			err = m.Answer(dataset.Yes)
		case cfg.NoLabel:
			err = m.Answer(dataset.No)
		case walkBack:
			err = m.Back()
		case walkReset:
			m.Reset()
		case walkQuit:
			return errors.New("walk cancelled")
		}
		if err != nil {
			return err
		}
	}
	rep.Update(m.Progress(), "")
	return nil
}

func printOutcome(m *traversal.Machine, cfg *config.Config, required []string) error {
	path := m.Path()
	choices := path.Choices()
	steps := make([]string, 0, len(choices))
	for i, c := range choices {
		label := cfg.NoLabel
		if c == dataset.Yes {
			label = cfg.YesLabel
		}
		steps = append(steps, fmt.Sprintf("%s → %s", path[i].Text(), label))
	}

	fmt.Println()
	ui.Breadcrumb(os.Stdout, steps)
	fmt.Println()

	ed := m.Edition()
	if ed == nil {
		ui.Info.Printf("Следующий вопрос: %s\n", m.Current().Text())
		return nil
	}

	card, err := catalog.EditionCard(m.Dataset(), ed.ID)
	if err != nil {
		return err
	}
	ui.EditionCard(os.Stdout, card)

	if missing := traversal.Missing(m.Dataset(), ed, required); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = fmt.Sprintf("%s (%s)", f.Name, ed.Status(f.ID).Title())
		}
		ui.Warn.Printf("Не полностью покрыто: %s\n", strings.Join(names, ", "))
	}
	fmt.Println(catalog.InstallSnippet(ed.ID))
	return nil
}
