package phrases

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", name, v))
		}
	}
	path := filepath.Join(t.TempDir(), "phrases.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImport_XLSX(t *testing.T) {
	s := openTestPhraseStore(t)
	path := writeWorkbook(t, [][]string{
		{"text", "phonemes", "category"},
		{"Pat the cat.", "p æ t ð ə k æ t", "informal"},
		{"Please be seated.", "p l iː z b iː s iː t ɪ d", "formal"},
		{"", "", ""},
		{"No category here.", "n oʊ", ""},
		{"Bad category.", "b æ d", "shouted"},
		{"Pat the cat.", "p æ t", "formal"},
	})

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	result, err := Import(context.Background(), s, cfg)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Processed)
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 6")

	counts, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counts[CategoryFormal])
	assert.Equal(t, 1, counts[CategoryInformal])
	assert.Equal(t, 1, counts[CategoryUserAdded])
}

func TestImport_CSV(t *testing.T) {
	s := openTestPhraseStore(t)
	path := filepath.Join(t.TempDir(), "phrases.csv")
	content := "text,phonemes,category\n" +
		"Cheap chips.,tʃ iː p tʃ ɪ p s,informal\n" +
		"Think about it.,θ ɪ ŋ k ə b aʊ t ɪ t,formal\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	result, err := Import(context.Background(), s, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)

	got, err := s.FindPhrasesContaining(context.Background(), []string{"θ"}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Think about it.", got[0].Text)
}

func TestImport_MissingFile(t *testing.T) {
	s := openTestPhraseStore(t)
	cfg := DefaultImportConfig()
	cfg.FilePath = filepath.Join(t.TempDir(), "nope.xlsx")
	_, err := Import(context.Background(), s, cfg)
	assert.Error(t, err)
}

func TestImport_BadColumn(t *testing.T) {
	s := openTestPhraseStore(t)
	cfg := DefaultImportConfig()
	cfg.FilePath = writeWorkbook(t, [][]string{{"text"}})
	cfg.TextColumn = "1"
	_, err := Import(context.Background(), s, cfg)
	assert.Error(t, err)
}
