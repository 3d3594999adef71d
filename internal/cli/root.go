package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aiflow-labs/relbuild/internal/branding"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	configPath string
	verbose    bool
	quiet      bool

	logger = newLogger(false, false)
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv(branding.EnvVar("config")),
		"Config file (default is ./"+branding.ConfigName()+".yaml, or $"+branding.EnvVar("config")+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output including executed commands")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` builds the frontend, embeds it into the backend and cross-compiles
release binaries for every requested platform into per-platform directories.`,
	Example: heredoc.Doc(`
		# Build for the current platform
		$ relbuild

		# Build every platform, reusing an existing frontend build
		$ relbuild -p all --skip-frontend

		# Build Windows and Linux x64 with native toolchains and a version stamp
		$ relbuild -p windows-amd64 -p linux-amd64 --cgo --stamp 1.4.0

		# Show the platform catalog
		$ relbuild --list-platforms
	`),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(verbose, quiet)
		log.SetDefault(logger)
	},
	RunE: runBuild,
}

// newLogger returns the console logger at the level selected by the flags.
func newLogger(verbose, quiet bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{Prefix: branding.CLIName()})
	switch {
	case verbose:
		l.SetLevel(log.DebugLevel)
	case quiet:
		l.SetLevel(log.WarnLevel)
	default:
		l.SetLevel(log.InfoLevel)
	}
	return l
}

// Execute runs the root command with build info injected via ldflags. An
// interrupt cancels the running subprocess; cleanup still runs before return.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err)
		return err
	}
	return nil
}
