package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/phonix/internal/alignment"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.json|->",
	Short: "Apply an alignment result to the learner's proficiency",
	Long: "Reads phoneme alignment verdicts as JSON, either a flat array of " +
		"{type, target, actual, score} objects or {\"words\": [...]}, and updates " +
		"the proficiency of every realized phoneme. Use - to read stdin.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}

		results, err := alignment.Decode(r)
		if err != nil {
			return err
		}

		sess, st, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		defer sess.Close()

		sum := sess.IngestEvaluation(cmd.Context(), results)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Observed %d phonemes, skipped %d", sum.Observed, sum.Skipped)
		if sum.Observed > 0 {
			fmt.Fprintf(out, " (mean score %.2f)", sum.MeanScore)
		}
		fmt.Fprintln(out)

		for _, ph := range uniq(sum.Phonemes) {
			p, _ := sess.Proficiency().Get(ph)
			fmt.Fprintf(out, "  %-4s %.3f  (%d attempts)\n", p.Symbol, p.Score, p.Attempts)
		}
		return nil
	},
}

func uniq(ss []string) []string {
	seen := make(map[string]bool, len(ss))
	var out []string
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func joinPhonemes(ps []string) string {
	if len(ps) == 0 {
		return "-"
	}
	return "/" + strings.Join(ps, " ") + "/"
}
