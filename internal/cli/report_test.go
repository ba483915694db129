package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/weekreview/internal/render"
)

type reportResponse struct {
	Status string            `json:"status"`
	Data   render.ReportJSON `json:"data"`
	Error  *CLIError         `json:"error"`
}

func decodeReport(t *testing.T, out string) reportResponse {
	t.Helper()
	var resp reportResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

func TestWeekCommand_Text(t *testing.T) {
	vaultDir, specPath := testVault(t, "daily", februaryNotes())
	cmd := NewWeekCommand(&RootOptions{Format: "text", Vault: vaultDir})

	out, _, err := execute(t, cmd, "--spec", specPath, "--date", "2026-02-05")
	require.NoError(t, err)
	assert.Contains(t, out, "Week Review №6")
	assert.Contains(t, out, "minutes")
	assert.Contains(t, out, "01:30:00")
	assert.Contains(t, out, "60.00")
	assert.Contains(t, out, "tags")
	assert.Contains(t, out, "  - b")
	assert.Contains(t, out, "  - c")
}

func TestWeekCommand_JSON(t *testing.T) {
	vaultDir, specPath := testVault(t, "daily", februaryNotes())
	cmd := NewWeekCommand(&RootOptions{Format: "json", Vault: vaultDir})

	out, _, err := execute(t, cmd, "--spec", specPath, "--date", "2026-02-05")
	require.NoError(t, err)

	resp := decodeReport(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "week", resp.Data.Kind)
	assert.Equal(t, 6, resp.Data.Week)
	assert.Equal(t, []string{"2026-02-02", "2026-02-08"}, resp.Data.Days)
	require.NotNil(t, resp.Data.Table)
	assert.Equal(t, []string{"2026-02-02", "2026-02-08", "Total"}, resp.Data.Table.Headers)
	require.NotNil(t, resp.Data.List)
	assert.Equal(t, []string{"b", "c"}, resp.Data.List.Values)
}

func TestWeekCommand_Markdown(t *testing.T) {
	vaultDir, specPath := testVault(t, "daily", februaryNotes())
	cmd := NewWeekCommand(&RootOptions{Format: "markdown", Vault: vaultDir})

	out, _, err := execute(t, cmd, "--spec", specPath, "--date", "2026-02-05")
	require.NoError(t, err)
	assert.Contains(t, out, "## Week Review №6")
	assert.Contains(t, out, "### tags")
	assert.Contains(t, out, "| minutes |")
}

func TestWeekCommand_TargetFromNote(t *testing.T) {
	vaultDir, specPath := testVault(t, "daily", februaryNotes())
	cmd := NewWeekCommand(&RootOptions{Format: "json", Vault: vaultDir})

	note := filepath.Join(vaultDir, "daily", "2026-02-11.md")
	out, _, err := execute(t, cmd, "--spec", specPath, "--note", note)
	require.NoError(t, err)

	resp := decodeReport(t, out)
	assert.Equal(t, 7, resp.Data.Week)
	assert.Equal(t, []string{"2026-02-11"}, resp.Data.Days)
}

func TestWeekCommand_TargetDefaultsToToday(t *testing.T) {
	vaultDir, specPath := testVault(t, "daily", februaryNotes())
	now := func() time.Time { return time.Date(2026, 2, 8, 21, 30, 0, 0, time.UTC) }
	cmd := NewWeekCommand(&RootOptions{Format: "json", Vault: vaultDir, Now: now})

	out, _, err := execute(t, cmd, "--spec", specPath)
	require.NoError(t, err)

	resp := decodeReport(t, out)
	assert.Equal(t, "2026-02-08", resp.Data.Date)
	assert.Equal(t, 6, resp.Data.Week)
}

func TestWeekCommand_BadNoteName(t *testing.T) {
	notes := februaryNotes()
	notes["meeting"] = "---\nminutes: 5\n---\n"
	vaultDir, specPath := testVault(t, "daily", notes)
	cmd := NewWeekCommand(&RootOptions{Format: "json", Vault: vaultDir})

	out, _, err := execute(t, cmd, "--spec", specPath, "--date", "2026-02-05")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeReport(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INPUT_SHAPE", resp.Error.Code)
}

func TestWeekCommand_InvalidDate(t *testing.T) {
	vaultDir, specPath := testVault(t, "daily", februaryNotes())
	cmd := NewWeekCommand(&RootOptions{Format: "text", Vault: vaultDir})

	_, _, err := execute(t, cmd, "--spec", specPath, "--date", "2026-13-01")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E002")
}

func TestWeekCommand_DateAndNoteExclusive(t *testing.T) {
	vaultDir, specPath := testVault(t, "daily", februaryNotes())
	cmd := NewWeekCommand(&RootOptions{Format: "text", Vault: vaultDir})

	_, _, err := execute(t, cmd, "--spec", specPath, "--date", "2026-02-05", "--note", "x.md")
	require.Error(t, err)
}

func TestWeekCommand_InvalidSpec(t *testing.T) {
	vaultDir, _ := testVault(t, "daily", februaryNotes())
	bad := filepath.Join(vaultDir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("table:\n  - name: a\n  - name: r\n    generate: [a, x]\n"), 0o644))
	cmd := NewWeekCommand(&RootOptions{Format: "text", Vault: vaultDir})

	out, _, err := execute(t, cmd, "--spec", bad, "--date", "2026-02-05")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E204]")
}

func TestWeekCommand_MissingFolderIsEmptyWeek(t *testing.T) {
	vaultDir, specPath := testVault(t, "daily", februaryNotes())
	cmd := NewWeekCommand(&RootOptions{Format: "json", Vault: vaultDir, DailyFolder: "nope"})

	out, _, err := execute(t, cmd, "--spec", specPath, "--date", "2026-02-05")
	require.NoError(t, err)

	resp := decodeReport(t, out)
	assert.Nil(t, resp.Data.Table)
	assert.Nil(t, resp.Data.List)
}

func TestMonthCommand_JSON(t *testing.T) {
	vaultDir, specPath := testVault(t, "daily", februaryNotes())
	cmd := NewMonthCommand(&RootOptions{Format: "json", Vault: vaultDir})

	out, _, err := execute(t, cmd, "--spec", specPath, "--date", "2026-02-15")
	require.NoError(t, err)

	resp := decodeReport(t, out)
	assert.Equal(t, "month", resp.Data.Kind)
	assert.Equal(t, "Month Review №2", resp.Data.Title)
	assert.Equal(t, []int{5, 6, 7, 8}, resp.Data.Weeks)
	require.NotNil(t, resp.Data.Table)
	assert.Equal(t, []string{"5", "6", "7", "8", "Total"}, resp.Data.Table.Headers)
	require.NotNil(t, resp.Data.List)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, resp.Data.List.Values)
}

func TestMonthCommand_RequiresAggregation(t *testing.T) {
	vaultDir, _ := testVault(t, "daily", februaryNotes())
	spec := filepath.Join(vaultDir, "plain.yaml")
	require.NoError(t, os.WriteFile(spec, []byte("table:\n  - name: minutes\n"), 0o644))
	cmd := NewMonthCommand(&RootOptions{Format: "text", Vault: vaultDir})

	out, _, err := execute(t, cmd, "--spec", spec, "--date", "2026-02-15")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [MONTH_REQUIRES_AGGREGATION]")
}

func TestWeekCommand_SaveThenHistory(t *testing.T) {
	vaultDir, specPath := testVault(t, "daily", februaryNotes())
	opts := &RootOptions{Format: "json", Vault: vaultDir}

	out, _, err := execute(t, NewWeekCommand(opts), "--spec", specPath, "--date", "2026-02-05", "--save")
	require.NoError(t, err)

	var saved struct {
		Status string      `json:"status"`
		Data   SavedReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.NotEmpty(t, saved.Data.ID)
	require.NotNil(t, saved.Data.Report)
	assert.Equal(t, "week", saved.Data.Report.Kind)

	_, err = os.Stat(filepath.Join(vaultDir, DefaultDBName))
	require.NoError(t, err)

	out, _, err = execute(t, NewHistoryCommand(opts))
	require.NoError(t, err)

	var history struct {
		Status string         `json:"status"`
		Data   []HistoryEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &history))
	require.Len(t, history.Data, 1)
	assert.Equal(t, saved.Data.ID, history.Data[0].ID)
	assert.Equal(t, "week", history.Data[0].Kind)
	assert.Equal(t, "2026-02-05", history.Data[0].TargetDate)
	assert.Len(t, history.Data[0].SpecHash, 64)
}

func TestWeekCommand_SaveTextReportsID(t *testing.T) {
	vaultDir, specPath := testVault(t, "daily", februaryNotes())
	cmd := NewWeekCommand(&RootOptions{Format: "text", Vault: vaultDir})

	out, errOut, err := execute(t, cmd, "--spec", specPath, "--date", "2026-02-05", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Week Review №6")
	assert.Contains(t, errOut, "Saved report ")
}
