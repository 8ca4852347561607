package cmd

import (
	"fmt"

	"liverRisk/domain"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show selected features and attribution capability",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadService(cmd, nil)
		if err != nil {
			return err
		}

		status := svc.Status()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "model version:       %s\n", status.ModelVersion)
		fmt.Fprintf(out, "attribution enabled: %t\n", status.AttributionEnabled)
		if status.AttributionEnabled {
			fmt.Fprintf(out, "explainer:           %s\n", status.Explainer)
		}
		fmt.Fprintln(out, "selected features:")
		for _, idx := range svc.SelectedIndex() {
			f := domain.FeatureSchema[idx]
			fmt.Fprintf(out, "  [%d] %-22s (%s)\n", idx, f.DisplayName, f.Column)
		}
		return nil
	},
}
