package cmd

import (
	"fmt"
	"io"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/phonix/internal/phrases"
	"github.com/abhisek/phonix/internal/proficiency"
	"github.com/abhisek/phonix/internal/ui/components"
	"github.com/abhisek/phonix/internal/ui/theme"
	"github.com/abhisek/phonix/internal/urgency"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show phoneme proficiency and practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		order, _ := cmd.Flags().GetString("by")

		sess, st, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		defer sess.Close()

		records, err := orderedRecords(sess.Ranker(), sess.Proficiency(), order, limit)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		totals, err := st.EventRepo().EvaluationTotals(ctx)
		if err != nil {
			return fmt.Errorf("evaluation totals: %w", err)
		}
		counts, err := phrases.NewSQLStore(st.DB(), 0).Count(ctx)
		if err != nil {
			return fmt.Errorf("phrase counts: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render("Phonix"))
		fmt.Fprintf(out, "%s %d batches over %d sessions, %d phonemes observed, %d skipped\n",
			theme.Label.Render("Evaluations:"),
			totals.Batches, totals.Sessions, totals.Observed, totals.Skipped)
		if !totals.Last.IsZero() {
			fmt.Fprintf(out, "%s %s\n", theme.Label.Render("Last practice:"),
				totals.Last.Local().Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(out, "%s %d formal, %d informal, %d user-added\n\n",
			theme.Label.Render("Phrases:"),
			counts[phrases.CategoryFormal], counts[phrases.CategoryInformal], counts[phrases.CategoryUserAdded])

		if len(records) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No phoneme records yet."))
			return nil
		}
		renderProficiency(out, records, sess.Proficiency().Now())
		return nil
	},
}

// orderedRecords returns up to limit records in the requested order.
func orderedRecords(r *urgency.Ranker, svc *proficiency.Service, order string, limit int) ([]proficiency.PhonemeProficiency, error) {
	if limit <= 0 {
		limit = svc.Len()
	}
	switch order {
	case "score":
		return r.RawTopByScore(limit), nil
	case "attempts":
		return r.RawTopByAttempts(limit), nil
	case "urgency", "":
		var out []proficiency.PhonemeProficiency
		for _, sym := range r.MostUrgent(limit) {
			if p, ok := svc.Get(sym); ok {
				out = append(out, p)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown order %q (want urgency, score, or attempts)", order)
	}
}

func renderProficiency(w io.Writer, records []proficiency.PhonemeProficiency, now time.Time) {
	col := func(width int) lipgloss.Style { return lipgloss.NewStyle().Width(width) }

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		col(8).Render("Phoneme"),
		col(28).Render("Score"),
		col(10).Render("Adjusted"),
		col(10).Render("Attempts"),
		"Last practiced",
	)
	fmt.Fprintln(w, theme.Heading.Render(header))

	for _, p := range records {
		adjusted := urgency.AdjustedScore(p, now)
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			col(8).Render(p.Symbol),
			col(28).Render(components.NewScoreBar(p.Score, 20, true).View()),
			col(10).Render(theme.Score(adjusted).Render(fmt.Sprintf("%.2f", adjusted))),
			col(10).Render(fmt.Sprintf("%d", p.Attempts)),
			lastPracticed(p, now),
		)
		fmt.Fprintln(w, row)
	}
}

func lastPracticed(p proficiency.PhonemeProficiency, now time.Time) string {
	if p.Attempts == 0 {
		return theme.Hint.Render("never")
	}
	switch days := urgency.DaysSince(p.LastUpdated, now); days {
	case 0:
		return "today"
	case 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func init() {
	statsCmd.Flags().Int("limit", 0, "Show at most this many phonemes (0 for all)")
	statsCmd.Flags().String("by", "urgency", "Order phonemes by urgency, score, or attempts")
}
