package main

import (
	"github.com/spf13/cobra"

	"github.com/cvpatch/templatize/pkg/templatize"
)

// NewPlanCmd creates the plan command.
func NewPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the plan as YAML",
		Long: `Print the plan the build would use as YAML: the file given with --plan,
or the built-in résumé plan. The output is a starting point for a plan file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			plan := templatize.DefaultPlan()
			if cfg.PlanFile != "" {
				plan, err = templatize.LoadPlanFile(cfg.PlanFile)
				if err != nil {
					return err
				}
			}

			data, err := plan.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
