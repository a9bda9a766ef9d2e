package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestcomplaints/internal/dataprocessing"
	"guestcomplaints/internal/shared/testutil"
	"guestcomplaints/pkg/contracts/domain"
)

// setupInputs writes two location workbooks and a suggestion table and
// points the configuration at them through the environment.
func setupInputs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	testutil.WriteWorkbook(t, dir, "portugal.xlsx",
		testutil.MonthSheet{Name: "Janeiro", Rows: [][]interface{}{
			{"2025-01-10", "Hotel A", "Quarto sujo", 3},
			{"2025-01-11", "Hotel A", "Quarto sujo e sem wi-fi", 4},
		}},
		testutil.MonthSheet{Name: "Fevereiro", Rows: [][]interface{}{
			{"2025-02-02", "Hotel B", "Muito barulho", 5},
		}},
	)
	testutil.WriteWorkbook(t, dir, "londres.xlsx",
		testutil.MonthSheet{Name: "Janeiro", Rows: [][]interface{}{
			{"2025-01-20", "Hotel L", "Internet ruim", 2},
		}},
	)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sugestoes.json"),
		[]byte(`{"Limpeza": "Revisar o checklist de limpeza."}`), 0644))

	t.Setenv("COMPLAINTS_PATHS_DATA_DIR", dir)
	t.Setenv("COMPLAINTS_INPUTS_LOCATIONS", "Portugal=portugal.xlsx,Londres=londres.xlsx")
	t.Setenv("COMPLAINTS_INPUTS_SUGGESTIONS_FILE", "sugestoes.json")
	t.Setenv("COMPLAINTS_LOGGING_LEVEL", "error")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "absent.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestReportCommand_WritesFile(t *testing.T) {
	setupInputs(t)
	out := filepath.Join(t.TempDir(), "relatorio.md")

	stdout, err := execute(t, "--month", "Janeiro", "--location", "Portugal", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Report written to")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	report := string(data)
	assert.Contains(t, report, "**Localização:** Portugal")
	assert.Contains(t, report, "**Período:** Janeiro")
	assert.Contains(t, report, "- **Limpeza**: 2 reclamações")
	assert.Contains(t, report, "Revisar o checklist de limpeza.")
	assert.NotContains(t, report, "Barulho")
}

func TestReportCommand_Stdout(t *testing.T) {
	setupInputs(t)

	stdout, err := execute(t, "--topic", "Internet", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "- **Internet**: 2 reclamações")
	assert.Contains(t, stdout, "**Período:** Fevereiro, Janeiro")
	assert.NotContains(t, stdout, "**Localização:**")
}

func TestReportCommand_MissingWorkbook(t *testing.T) {
	setupInputs(t)

	_, err := execute(t, "--workbook", "absent.xlsx", "--out", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.xlsx")
}

func TestTableCommand(t *testing.T) {
	setupInputs(t)

	t.Run("markdown", func(t *testing.T) {
		stdout, err := execute(t, "table", "--month", "Janeiro", "--location", "Londres")
		require.NoError(t, err)
		assert.Contains(t, stdout, "| 2025-01-20 | Hotel L | Londres | Internet | internet ruim | 2 |")
	})

	t.Run("csv", func(t *testing.T) {
		stdout, err := execute(t, "table", "--format", "csv", "--unit", "Hotel B")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Review date,Unit")
		assert.Contains(t, stdout, "2025-02-02,Hotel B,Portugal,Barulho,muito barulho,5")
	})

	t.Run("xlsx", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "tabela.xlsx")
		_, err := execute(t, "table", "--format", "xlsx", "--out", out)
		require.NoError(t, err)

		records, err := dataprocessing.NewLoader(nil).LoadSources(context.Background(), domain.SingleSource(out))
		require.NoError(t, err)
		assert.Len(t, records, 4)
	})

	t.Run("xlsx needs out", func(t *testing.T) {
		_, err := execute(t, "table", "--format", "xlsx")
		assert.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "table", "--format", "pdf")
		assert.Error(t, err)
	})
}

func TestCheckCommand(t *testing.T) {
	dir := setupInputs(t)

	stdout, err := execute(t, "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Portugal: 3 records")
	assert.Contains(t, stdout, "Londres: 1 records")
	assert.Contains(t, stdout, "Months: [Fevereiro Janeiro]")
	assert.Contains(t, stdout, "Total: 4 records")
	assert.NotContains(t, stdout, "Unused workbook")

	stdout, err = execute(t, "check", "--workbook", filepath.Join(dir, "portugal.xlsx"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total: 3 records")
	assert.Contains(t, stdout, "Unused workbook: londres.xlsx")
}

func TestCheckCommand_MissingWorkbook(t *testing.T) {
	dir := setupInputs(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "londres.xlsx")))

	_, err := execute(t, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "londres.xlsx")
}

func TestReportCommand_DiscoversLocationWorkbooks(t *testing.T) {
	dir := setupInputs(t)
	require.NoError(t, os.Unsetenv("COMPLAINTS_INPUTS_LOCATIONS"))
	t.Setenv("COMPLAINTS_INPUTS_DISCOVER_LOCATIONS", "true")
	for _, loc := range []string{"Portugal", "Londres"} {
		testutil.WriteWorkbook(t, dir, "Reclamacoes_2025_Traduzido_"+loc+".xlsx", testutil.MonthSheet{
			Name: "Março",
			Rows: [][]interface{}{{"2025-03-05", "Hotel " + loc, "Quarto sujo", 4}},
		})
	}

	stdout, err := execute(t, "--location", "Londres", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "**Localização:** Londres")
	assert.Contains(t, stdout, "- **Limpeza**: 1 reclamações")
}

func TestRootCommand_Version(t *testing.T) {
	stdout, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Guest Complaints v")
}
