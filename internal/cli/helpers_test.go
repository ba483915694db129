package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const reviewSpec = `table:
  - name: minutes
    aggregation: sum
  - name: time_spent
    aggregation: sum
  - name: rate
    generate: [minutes, time_spent]
list: tags
`

// testVault lays out a vault with a daily folder of notes and a spec file.
// Returns the vault dir and the spec path.
func testVault(t *testing.T, folder string, notes map[string]string) (string, string) {
	t.Helper()
	vaultDir := t.TempDir()
	daily := filepath.Join(vaultDir, folder)
	require.NoError(t, os.MkdirAll(daily, 0o755))
	for name, content := range notes {
		require.NoError(t, os.WriteFile(filepath.Join(daily, name+".md"), []byte(content), 0o644))
	}
	specPath := filepath.Join(vaultDir, "review.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(reviewSpec), 0o644))
	return vaultDir, specPath
}

func februaryNotes() map[string]string {
	return map[string]string{
		"2026-02-01": "---\nminutes: 90\ntime_spent: \"01:30:00\"\ntags: a\n---\n",
		"2026-02-02": "---\nminutes: 30\ntime_spent: \"00:30:00\"\ntags: [b]\n---\nbody\n",
		"2026-02-08": "---\nminutes: 60\ntime_spent: \"01:00:00\"\ntags: c\n---\n",
		"2026-02-11": "---\nminutes: 120\ntime_spent: \"02:00:00\"\n---\n",
		"2026-02-22": "---\nminutes: 30\ntime_spent: \"00:30:00\"\ntags: [d, e]\n---\n",
	}
}

// execute runs cmd with args and returns stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
