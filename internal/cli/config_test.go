package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_GetDefault(t *testing.T) {
	opts := &RootOptions{Format: "text", DB: filepath.Join(t.TempDir(), "wr.db")}

	out, _, err := execute(t, NewConfigCommand(opts), "get", "daily-folder")
	require.NoError(t, err)
	assert.Equal(t, "daily\n", out)
}

func TestConfig_SetThenGet(t *testing.T) {
	opts := &RootOptions{Format: "text", DB: filepath.Join(t.TempDir(), "wr.db")}

	out, _, err := execute(t, NewConfigCommand(opts), "set", "daily-folder", "journal")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ daily-folder = journal")

	opts.Format = "json"
	out, _, err = execute(t, NewConfigCommand(opts), "get", "daily-folder")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ConfigValue `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "journal", resp.Data.Value)
	assert.False(t, resp.Data.Default)
}

func TestConfig_UnknownKey(t *testing.T) {
	opts := &RootOptions{Format: "text", DB: filepath.Join(t.TempDir(), "wr.db")}

	out, _, err := execute(t, NewConfigCommand(opts), "get", "colour")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, `unknown setting "colour"`)
}

func TestConfig_SetRejectsEmpty(t *testing.T) {
	opts := &RootOptions{Format: "text", DB: filepath.Join(t.TempDir(), "wr.db")}

	_, _, err := execute(t, NewConfigCommand(opts), "set", "daily-folder", "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestConfig_StoredFolderUsedByWeek(t *testing.T) {
	notes := map[string]string{"2026-02-02": "---\nminutes: 30\n---\n"}
	vaultDir, specPath := testVault(t, "journal", notes)
	opts := &RootOptions{Format: "text", Vault: vaultDir}

	_, _, err := execute(t, NewConfigCommand(opts), "set", "daily-folder", "journal")
	require.NoError(t, err)

	opts.Format = "json"
	out, _, err := execute(t, NewWeekCommand(opts), "--spec", specPath, "--date", "2026-02-02")
	require.NoError(t, err)

	resp := decodeReport(t, out)
	assert.Equal(t, []string{"2026-02-02"}, resp.Data.Days)
}
