package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/weekreview/internal/store"
)

// settingKeys maps user-facing config keys to stored setting keys.
var settingKeys = map[string]string{
	"daily-folder": store.SettingDailyFolder,
}

// settingDefaults holds the value reported for keys never set.
var settingDefaults = map[string]string{
	"daily-folder": store.DefaultDailyFolder,
}

// ConfigValue is the JSON payload of config get and set.
type ConfigValue struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Default bool   `json:"default,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or change persisted settings",
		Long: `Read or change settings kept in the database.

Keys:
  daily-folder   folder inside the vault holding YYYY-MM-DD notes (default "daily")`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "get <key>",
		Short:         "Print a setting",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(rootOpts, args[0], cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "set <key> <value>",
		Short:         "Change a setting",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(rootOpts, args[0], args[1], cmd)
		},
	})

	return cmd
}

func runConfigGet(opts *RootOptions, key string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	stored, ok := settingKeys[key]
	if !ok {
		return unknownKey(formatter, key)
	}

	st, err := opts.openStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}
	defer st.Close()

	v, found, err := st.GetSetting(cmd.Context(), stored)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}
	result := ConfigValue{Key: key, Value: v}
	if !found || v == "" {
		result.Value = settingDefaults[key]
		result.Default = true
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	fmt.Fprintln(formatter.Writer, result.Value)
	return nil
}

func runConfigSet(opts *RootOptions, key, value string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	stored, ok := settingKeys[key]
	if !ok {
		return unknownKey(formatter, key)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, fmt.Sprintf("%s cannot be empty", key), nil)
	}

	st, err := opts.openStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}
	defer st.Close()

	if err := st.SetSetting(cmd.Context(), stored, value); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}

	if formatter.IsJSON() {
		return formatter.Success(ConfigValue{Key: key, Value: value})
	}
	fmt.Fprintf(formatter.Writer, "✓ %s = %s\n", key, value)
	return nil
}

func unknownKey(formatter *OutputFormatter, key string) error {
	keys := slices.Sorted(maps.Keys(settingKeys))
	return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag,
		fmt.Sprintf("unknown setting %q (known: %s)", key, strings.Join(keys, ", ")), nil)
}
