package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/aiflow-labs/relbuild/internal/config"
	"github.com/aiflow-labs/relbuild/internal/doctor"
	"github.com/aiflow-labs/relbuild/internal/platform"
	"github.com/aiflow-labs/relbuild/internal/runner"
)

var doctorCGO bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorCGO, "cgo", false, "Also check the native compiler of every platform")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check build prerequisites",
	Long:  `Check that the Go tool, the frontend and resource tools, the icon and the frontend artifacts are in place.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		d := newDoctor(cfg, &runner.ExecRunner{})
		checks := d.Run(doctorCGO)
		if err := doctor.Print(cmd.OutOrStdout(), checks); err != nil {
			return err
		}
		if !doctor.Healthy(checks) {
			return errors.New("required build tools are missing")
		}
		return nil
	},
}

func newDoctor(cfg *config.Config, r runner.Runner) *doctor.Doctor {
	frontendTool := ""
	if argv := cfg.FrontendCommand(); len(argv) > 0 {
		frontendTool = argv[0]
	}
	return &doctor.Doctor{
		Runner:       r,
		Catalog:      platform.DefaultCatalog(),
		Toolchains:   cfg.Toolchains(),
		Go:           cfg.Build.Go,
		FrontendTool: frontendTool,
		ResourceTool: cfg.Resource.Tool,
		Icon:         cfg.Resource.Icon,
		Dist:         cfg.Frontend.Dist,
		ConfigFile:   cfg.File,
	}
}
