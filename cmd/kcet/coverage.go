package main

import (
	"github.com/Veraticus/kcet-counsel/internal/cli"
	"github.com/spf13/cobra"
)

func coverageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coverage",
		Short: "Show which years and rounds the dataset covers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			idx, err := loadIndex(cmd.Context(), settings)
			if err != nil {
				return err
			}
			return cli.RenderCoverage(cmd.OutOrStdout(), idx.Years(), idx.Coverage())
		},
	}
}
