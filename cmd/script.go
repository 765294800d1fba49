package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	fromMigration string
	toMigration   string
	outputFile    string
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print the migration script between two migrations",
	Long: `Print the script that takes a database from --from (the last applied
migration, empty for a fresh database) to --to (empty for the latest one).
When --from comes after --to the script reverts instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := registeredMigrations()
		if err != nil {
			return err
		}

		compiler, err := NewCompiler()
		if err != nil {
			return err
		}

		script, sel, err := compiler.Compile(defs, fromMigration, toMigration)
		if err != nil {
			return err
		}
		logger.Debug("script compiled", "direction", sel.Direction, "migrations", len(sel.Migrations))

		if outputFile == "" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), script)
			return err
		}
		if err := os.WriteFile(outputFile, []byte(script), 0o644); err != nil {
			return fmt.Errorf("failed to write script: %w", err)
		}
		logger.Info("script written", "path", outputFile, "migrations", len(sel.Migrations))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(scriptCmd)

	scriptCmd.Flags().StringVar(&fromMigration, "from", "", "last applied migration (empty: none)")
	scriptCmd.Flags().StringVar(&toMigration, "to", "", "target migration (empty: latest)")
	scriptCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the script to a file instead of stdout")
}
