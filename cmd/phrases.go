package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/phonix/internal/phrases"
	"github.com/abhisek/phonix/internal/ui/theme"
)

var phrasesCmd = &cobra.Command{
	Use:   "phrases",
	Short: "Manage the practice phrase catalogue",
}

var phrasesAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a practice phrase",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transcription, _ := cmd.Flags().GetString("phonemes")
		categoryName, _ := cmd.Flags().GetString("category")

		category, err := phrases.ParseCategory(categoryName)
		if err != nil {
			return err
		}
		tokens := phrases.SplitTranscription(transcription)
		if len(tokens) == 0 {
			return fmt.Errorf("--phonemes is required")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := phrases.NewSQLStore(st.DB(), 0).Add(cmd.Context(), args[0], tokens, category)
		if errors.Is(err, phrases.ErrDuplicatePhrase) {
			fmt.Fprintln(cmd.OutOrStdout(), theme.Hint.Render("Phrase already in catalogue."))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q %s (%s)\n", p.Text, joinPhonemes(p.Phonemes), p.Category)
		return nil
	},
}

var phrasesImportCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Import phrases from a spreadsheet",
	Long: "Imports phrases from an Excel workbook or CSV file. By default column A " +
		"holds the text, B the space-separated phoneme transcription and C the " +
		"category, with a header on row 1.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		icfg := phrases.DefaultImportConfig()
		icfg.FilePath = args[0]
		icfg.SheetName, _ = cmd.Flags().GetString("sheet")
		icfg.TextColumn, _ = cmd.Flags().GetString("text-col")
		icfg.PhonemesColumn, _ = cmd.Flags().GetString("phonemes-col")
		icfg.CategoryColumn, _ = cmd.Flags().GetString("category-col")
		icfg.StartRow, _ = cmd.Flags().GetInt("start-row")
		if name, _ := cmd.Flags().GetString("category"); name != "" {
			category, err := phrases.ParseCategory(name)
			if err != nil {
				return err
			}
			icfg.DefaultCategory = category
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := phrases.Import(cmd.Context(), phrases.NewSQLStore(st.DB(), 0), icfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Processed %d rows: %d added, %d skipped\n", res.Processed, res.Created, res.Skipped)
		for _, e := range res.Errors {
			fmt.Fprintln(out, theme.Hint.Render("  "+e))
		}
		return nil
	},
}

var phrasesCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count phrases per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		counts, err := phrases.NewSQLStore(st.DB(), 0).Count(cmd.Context())
		if err != nil {
			return err
		}
		total := 0
		out := cmd.OutOrStdout()
		for _, c := range []phrases.Category{phrases.CategoryFormal, phrases.CategoryInformal, phrases.CategoryUserAdded} {
			fmt.Fprintf(out, "%-12s %d\n", c, counts[c])
			total += counts[c]
		}
		fmt.Fprintf(out, "%-12s %d\n", "total", total)
		return nil
	},
}

func init() {
	phrasesAddCmd.Flags().StringP("phonemes", "p", "", "Space-separated phoneme transcription")
	phrasesAddCmd.Flags().StringP("category", "c", string(phrases.CategoryUserAdded), "Category (formal, informal, user_added)")

	def := phrases.DefaultImportConfig()
	phrasesImportCmd.Flags().String("sheet", "", "Sheet name (default first sheet)")
	phrasesImportCmd.Flags().String("text-col", def.TextColumn, "Column holding the phrase text")
	phrasesImportCmd.Flags().String("phonemes-col", def.PhonemesColumn, "Column holding the transcription")
	phrasesImportCmd.Flags().String("category-col", def.CategoryColumn, "Column holding the category (empty to use --category)")
	phrasesImportCmd.Flags().String("category", "", "Category for rows without one (default user_added)")
	phrasesImportCmd.Flags().Int("start-row", def.StartRow, "First data row (1-based)")

	phrasesCmd.AddCommand(phrasesAddCmd)
	phrasesCmd.AddCommand(phrasesImportCmd)
	phrasesCmd.AddCommand(phrasesCountCmd)
}
