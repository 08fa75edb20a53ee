package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybalance/internal/event"
)

func (a *App) recommendCmd() *cobra.Command {
	var (
		category string
		seed     uint64
		oneBar   bool
		copyOut  bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest activities for the side that is falling behind",
		Long: `Suggest activities from your preferred work and life categories.
The further a side trails the other and your goal, the more suggestions
it gets. Nothing is suggested for a side that already meets its goal.

Example:
  daybalance recommend --category life --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories := []event.Category{event.CategoryWork, event.CategoryLife}
			if category != "" {
				c, err := event.ParseCategory(category)
				if err != nil {
					return err
				}
				categories = []event.Category{c}
			}

			sum, err := a.daySummary(cmd, seed, oneBar)
			if err != nil {
				return err
			}

			var copied []string
			for _, c := range categories {
				ideas := sum.Recommendations(c)
				if len(ideas) == 0 {
					_, _ = fmt.Fprintf(a.out, "%s\n", formatMuted(fmt.Sprintf("No %s suggestions: on track or no preferred activities.", c)))
					continue
				}
				printIdeas(a.out, c, ideas)
				copied = append(copied, ideas...)
			}

			if copyOut && len(copied) > 0 {
				if err := clipboard.WriteAll(strings.Join(copied, "\n")); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				_, _ = fmt.Fprintln(a.out, formatMuted("Copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only suggest for work or life")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible suggestions (0 = random)")
	cmd.Flags().BoolVar(&oneBar, "one-bar", false, "Cap suggestions for a single sidebar")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the suggestions to the clipboard")
	return cmd
}
