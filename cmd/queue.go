package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/phonix/internal/ui/theme"
	"github.com/abhisek/phonix/internal/urgency"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect practice queue population",
}

var queueFillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Populate the practice queue and list what was scheduled",
	RunE: func(cmd *cobra.Command, args []string) error {
		strategyName, _ := cmd.Flags().GetString("strategy")
		strategy, err := urgency.ParseStrategy(strategyName)
		if err != nil {
			return err
		}

		sess, st, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		defer sess.Close()

		targets, err := sess.Ranker().Targets(strategy, cfg.Selector.TargetPhonemes)
		if err != nil {
			return err
		}
		n, err := sess.AddToQueue(cmd.Context(), strategy)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Queued %d phrases (%s)", n, strategy)))
		if len(targets) > 0 {
			fmt.Fprintf(out, "%s %s\n", theme.Label.Render("Targets:"), strings.Join(targets, " "))
		}
		for i, p := range sess.Queue().Items() {
			fmt.Fprintf(out, "%2d. %-40s %s  %s\n", i+1, p.Text,
				theme.Hint.Render(joinPhonemes(p.Phonemes)),
				theme.Label.Render(string(p.Category)))
		}
		return nil
	},
}

func init() {
	names := make([]string, 0, len(urgency.Strategies()))
	for _, s := range urgency.Strategies() {
		names = append(names, string(s))
	}
	queueFillCmd.Flags().String("strategy", string(urgency.StrategyMixed),
		"Ranking strategy ("+strings.Join(names, ", ")+")")

	queueCmd.AddCommand(queueFillCmd)
}
