package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/phonix/internal/queue"
	"github.com/abhisek/phonix/internal/ui/theme"
	"github.com/abhisek/phonix/internal/urgency"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next phrases to practice",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("count")
		strategyName, _ := cmd.Flags().GetString("strategy")
		if n < 1 {
			return fmt.Errorf("--count must be at least 1")
		}

		sess, st, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		defer sess.Close()

		if strategyName != "" {
			strategy, err := urgency.ParseStrategy(strategyName)
			if err != nil {
				return err
			}
			if _, err := sess.AddToQueue(cmd.Context(), strategy); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		for i := 0; i < n; i++ {
			p, err := sess.NextPracticeItem(cmd.Context())
			// A bare ErrEmptyQueue means the catalogue had nothing to offer;
			// a joined error carries the refill failure and is returned as is.
			if err == queue.ErrEmptyQueue {
				if i == 0 {
					return fmt.Errorf("no practice material available; add phrases with 'phonix phrases add' or 'phonix phrases import'")
				}
				break
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d. %s\n", i+1, theme.Body.Render(p.Text))
			fmt.Fprintf(out, "   %s  %s\n",
				theme.Hint.Render(joinPhonemes(p.Phonemes)),
				theme.Label.Render(string(p.Category)))
		}
		return nil
	},
}

func init() {
	nextCmd.Flags().IntP("count", "n", 1, "Number of phrases to show")
	nextCmd.Flags().String("strategy", "", "Fill the queue with this strategy first (urgency, attempts, mixed)")
}
