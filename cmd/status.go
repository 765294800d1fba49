package cmd

import (
	"fmt"

	"schemer/internal/history"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Compare registered migrations with the database history table",
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := registeredMigrations()
		if err != nil {
			return err
		}

		compiler, err := NewCompiler()
		if err != nil {
			return err
		}

		cfg, err := ResolveDBConfig()
		if err != nil {
			return err
		}
		db, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := history.Read(cmd.Context(), db, compiler.Dialect, compiler.History)
		if err != nil {
			return err
		}

		report := history.Compare(defs, entries, compiler.Ordering)

		out := cmd.OutOrStdout()
		for _, s := range report.States {
			icon := " "
			switch s.Status {
			case history.Applied:
				icon = "✓"
			case history.Missing:
				icon = "!"
			}
			line := fmt.Sprintf("[%s] %-40s %s", icon, s.Name, s.Status)
			if !s.AppliedOn.IsZero() {
				line += "  " + s.AppliedOn.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintln(out, line)
		}
		fmt.Fprintln(out, "--------------------------------------------------")
		fmt.Fprintf(out, "applied: %d, pending: %d, missing: %d\n",
			report.AppliedCount, report.PendingCount, report.MissingCount)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(statusCmd)
}
