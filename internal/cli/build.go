package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aiflow-labs/relbuild/internal/buildenv"
	"github.com/aiflow-labs/relbuild/internal/config"
	"github.com/aiflow-labs/relbuild/internal/frontend"
	"github.com/aiflow-labs/relbuild/internal/gobuild"
	"github.com/aiflow-labs/relbuild/internal/pipeline"
	"github.com/aiflow-labs/relbuild/internal/platform"
	"github.com/aiflow-labs/relbuild/internal/release"
	"github.com/aiflow-labs/relbuild/internal/resource"
	"github.com/aiflow-labs/relbuild/internal/runner"
	"github.com/aiflow-labs/relbuild/internal/stage"
)

var (
	platforms     []string
	skipFrontend  bool
	listPlatforms bool
	useCGO        bool
	stamp         string
)

func init() {
	rootCmd.Flags().StringSliceVarP(&platforms, "platform", "p", nil,
		`Target platform key, "all" or "current" (repeatable; default current)`)
	rootCmd.Flags().BoolVar(&skipFrontend, "skip-frontend", false, "Skip the frontend build and use existing artifacts")
	rootCmd.Flags().BoolVar(&listPlatforms, "list-platforms", false, "Print the platform catalog and exit")
	rootCmd.Flags().BoolVar(&useCGO, "cgo", false, "Compile with native toolchains (CGO)")
	rootCmd.Flags().StringVar(&stamp, "stamp", "", "Stamp a semantic version into the binary")
}

func runBuild(cmd *cobra.Command, args []string) error {
	catalog := platform.DefaultCatalog()

	if listPlatforms {
		return printPlatforms(cmd.OutOrStdout(), catalog, listingToolchains(configPath))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	version := ""
	if stamp != "" {
		if version, err = gobuild.ParseVersion(stamp); err != nil {
			return err
		}
	}

	if cfg.File != "" {
		logger.Debug("loaded config", "file", cfg.File)
	}

	p := newPipeline(cfg, catalog, newRunner(quiet), logger)
	p.Compiler.Version = version

	_, err = p.Run(cmd.Context(), pipeline.Options{
		Platforms:    platforms,
		SkipFrontend: skipFrontend,
		CGO:          useCGO,
	})
	return err
}

// listingToolchains returns the configured toolchains, or the built-in ones
// when the config cannot be loaded. Listing the catalog never fails on config.
func listingToolchains(path string) *platform.Toolchains {
	cfg, err := config.Load(path)
	if err != nil {
		logger.Warn("ignoring config for platform listing", "err", err)
		return platform.DefaultToolchains(config.DefaultWindowsSDK)
	}
	return cfg.Toolchains()
}

// newRunner streams subprocess output to stderr unless quiet is set. The
// output is captured either way for error reporting.
func newRunner(quiet bool) *runner.ExecRunner {
	if quiet {
		return &runner.ExecRunner{}
	}
	return &runner.ExecRunner{Stdout: os.Stderr, Stderr: os.Stderr}
}

// newPipeline wires every build component from cfg.
func newPipeline(cfg *config.Config, catalog *platform.Catalog, r runner.Runner, logger *log.Logger) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Catalog:  catalog,
		Composer: &buildenv.Composer{Toolchains: cfg.Toolchains(), Logger: logger},
		Frontend: &frontend.Builder{
			Runner:  r,
			Dir:     cfg.Frontend.Dir,
			Command: cfg.FrontendCommand(),
			Logger:  logger,
		},
		Stager: &stage.Stager{
			Root:        cfg.Stage.Dir,
			Subdir:      cfg.Stage.Subdir,
			Placeholder: cfg.Stage.Placeholder,
			Logger:      logger,
		},
		Release: &release.Coordinator{
			Root:   cfg.Release.Dir,
			Extras: cfg.Release.Extras,
			Logger: logger,
		},
		Embedder: &resource.Embedder{
			Runner: r,
			Tool:   cfg.Resource.Tool,
			Icon:   cfg.Resource.Icon,
			Object: cfg.Resource.Object,
			Dir:    cfg.Build.Dir,
			Logger: logger,
		},
		Compiler: &gobuild.Compiler{
			Runner:     r,
			Go:         cfg.Build.Go,
			Dir:        cfg.Build.Dir,
			Package:    cfg.Build.Package,
			VersionVar: cfg.Build.VersionVar,
			Logger:     logger,
		},
		BaseEnv: buildenv.FromEnviron(os.Environ()),
		Dist:    cfg.Frontend.Dist,
		Binary:  cfg.Release.Binary,
		Logger:  logger,
	}
}
