package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roach88/weekreview/internal/store"
)

// EnvPrefix prefixes environment variables that override flags, e.g.
// WEEKREVIEW_VAULT or WEEKREVIEW_DAILY_FOLDER.
const EnvPrefix = "WEEKREVIEW"

// DefaultDBName is the database file created inside the vault when --db is
// not given.
const DefaultDBName = ".weekreview.db"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "text" | "json" | "markdown" | "html"
	Vault       string // vault root directory
	DailyFolder string // daily notes folder, relative to Vault; empty uses the stored setting
	DB          string // settings and report database

	// Now supplies the default target date. Nil means time.Now.
	Now func() time.Time
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "markdown", "html"}

// NewRootCommand creates the root command for the weekreview CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "weekreview",
		Short: "Weekly and monthly reviews from daily notes",
		Long: `Build weekly and monthly review tables and lists from the frontmatter
of YYYY-MM-DD daily notes.

Every global flag can also be set through the environment with the
WEEKREVIEW_ prefix, e.g. WEEKREVIEW_VAULT=~/notes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = v.GetBool("verbose")
			opts.Format = v.GetString("format")
			opts.Vault = v.GetString("vault")
			opts.DailyFolder = v.GetString("daily-folder")
			opts.DB = v.GetString("db")

			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("format", "text", "output format (text|json|markdown|html)")
	flags.String("vault", ".", "vault root directory")
	flags.String("daily-folder", "", "daily notes folder inside the vault (default: stored setting or \"daily\")")
	flags.String("db", "", "settings and report database (default: <vault>/"+DefaultDBName+")")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, name := range []string{"verbose", "format", "vault", "daily-folder", "db"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	// Add subcommands
	cmd.AddCommand(NewWeekCommand(opts))
	cmd.AddCommand(NewMonthCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// formatter builds the output formatter for a command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// logger writes structured logs to stderr: Debug with --verbose,
// warnings otherwise.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *RootOptions) vaultDir() string {
	if o.Vault == "" {
		return "."
	}
	return o.Vault
}

func (o *RootOptions) dbPath() string {
	if o.DB != "" {
		return o.DB
	}
	return filepath.Join(o.vaultDir(), DefaultDBName)
}

func (o *RootOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// openStore opens the settings/report database.
func (o *RootOptions) openStore() (*store.Store, error) {
	st, err := store.Open(o.dbPath())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeStore+": failed to open database", err)
	}
	return st, nil
}
