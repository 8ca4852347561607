package cmd

import (
	"os"

	"liverRisk/business/attribution"
	"liverRisk/business/prediction"
	"liverRisk/internal/repository/bundle"
	"liverRisk/pkg/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "liverctl",
	Short:        "Inspect model bundles and run offline predictions",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		env, _ := cmd.Flags().GetString("env")
		logger.Init(env)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("bundle", "", "Path to the model bundle (overrides MODEL_PATH env var)")
	rootCmd.PersistentFlags().String("member", attribution.DefaultMember, "Stack member the explainer binds to")
	rootCmd.PersistentFlags().String("env", "production", "Logging environment")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(auditCmd)
}

// resolveBundlePath returns --bundle, then MODEL_PATH, then the default name.
func resolveBundlePath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("bundle"); p != "" {
		return p
	}
	if p := os.Getenv("MODEL_PATH"); p != "" {
		return p
	}
	return "ensemble_model.yaml"
}

func loadService(cmd *cobra.Command, audit prediction.AuditRepository) (*prediction.Service, error) {
	b, err := bundle.LoadFile(resolveBundlePath(cmd))
	if err != nil {
		return nil, err
	}
	opts := prediction.DefaultOptions()
	opts.Member, _ = cmd.Flags().GetString("member")
	opts.Audit = audit
	return prediction.NewService(b, opts)
}
