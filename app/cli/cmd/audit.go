package cmd

import (
	"fmt"
	"text/tabwriter"

	"liverRisk/internal/repository/sqlite"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List recent predictions from a SQLite audit database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("db")
		limit, _ := cmd.Flags().GetInt("limit")

		repo, err := sqlite.Open(path)
		if err != nil {
			return err
		}
		defer repo.Close()

		rows, err := repo.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CREATED\tMODEL\tLABEL\tCONFIDENCE\tWARNINGS\tTOP FEATURE\tREQUEST")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%d\t%s\t%s\n",
				r.CreatedAt.Format("2006-01-02 15:04:05"), r.ModelVersion, r.Label,
				r.Confidence, r.WarningCount, r.TopFeature, r.RequestID)
		}
		return w.Flush()
	},
}

func init() {
	auditCmd.Flags().String("db", "audit.db", "Path to the SQLite audit database")
	auditCmd.Flags().Int("limit", 20, "Number of rows to show")
}
