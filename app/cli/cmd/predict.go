package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"liverRisk/business/prediction"
	"liverRisk/domain"
	"liverRisk/internal/repository/sqlite"

	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run the prediction pipeline on a JSON input file",
	Long:  "Reads one lab panel as JSON (from --input or stdin) and prints the same response the HTTP API returns.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var audit prediction.AuditRepository
		if path, _ := cmd.Flags().GetString("audit-db"); path != "" {
			repo, err := sqlite.Open(path)
			if err != nil {
				return err
			}
			defer repo.Close()
			audit = repo
		}

		svc, err := loadService(cmd, audit)
		if err != nil {
			return err
		}

		var r io.Reader = cmd.InOrStdin()
		if path, _ := cmd.Flags().GetString("input"); path != "" && path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()
			r = f
		}

		var in domain.PredictionInput
		if err := json.NewDecoder(r).Decode(&in); err != nil {
			return fmt.Errorf("decode input: %w", err)
		}

		resp, err := svc.Predict(cmd.Context(), in)
		if err != nil {
			var verr *prediction.ValidationError
			if errors.As(err, &verr) {
				for _, d := range verr.Details {
					fmt.Fprintln(cmd.ErrOrStderr(), d)
				}
			}
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	predictCmd.Flags().String("input", "", "Path to the input JSON file (default stdin)")
	predictCmd.Flags().String("audit-db", "", "Record the prediction in this SQLite audit database")
}
