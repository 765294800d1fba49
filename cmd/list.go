package cmd

import (
	"fmt"

	"schemer/internal/migration"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered migrations in application order",
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := registeredMigrations()
		if err != nil {
			return err
		}

		compiler, err := NewCompiler()
		if err != nil {
			return err
		}
		migration.Sort(defs, compiler.Ordering)

		out := cmd.OutOrStdout()
		for i, d := range defs {
			schemaName := d.Schema
			if schemaName == "" {
				schemaName = compiler.DefaultSchema
			}
			fmt.Fprintf(out, "[%02d] %-40s (%s)\n", i+1, d.Name, schemaName)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
}
