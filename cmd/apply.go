package cmd

import (
	"fmt"
	"time"

	"schemer/internal/engine"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
)

var dryRun bool

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Compile the migration script and run it against the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := registeredMigrations()
		if err != nil {
			return err
		}

		compiler, err := NewCompiler()
		if err != nil {
			return err
		}

		dir, picked, err := engine.NewSelector(engine.WithOrdering(compiler.Ordering)).Plan(defs, fromMigration, toMigration)
		if err != nil {
			return err
		}
		if len(picked) == 0 {
			logger.Info("nothing to do", "from", fromMigration, "to", toMigration)
			return nil
		}
		logger.Info("compiling migrations", "direction", dir, "count", len(picked))

		start := time.Now()

		progress := uiprogress.New()
		progress.SetOut(cmd.ErrOrStderr())
		progress.Start()
		bar := progress.AddBar(len(picked)).AppendCompleted().PrependElapsed()
		current := ""
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return fmt.Sprintf("%-30s", current)
		})
		compiler.OnProgress = func(name string) {
			current = name
			bar.Incr()
		}

		script, sel, err := compiler.Compile(defs, fromMigration, toMigration)
		progress.Stop()
		if err != nil {
			return err
		}

		if dryRun {
			logger.Info("dry run: script not executed")
			fmt.Fprint(cmd.OutOrStdout(), script)
			return nil
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

		if err := engine.Execute(cmd.Context(), db, script, logger); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\nMigrations (%s):\n", sel.Direction)
		for i, m := range sel.Migrations {
			fmt.Fprintf(out, "[%02d/%02d] %-40s : %d statements\n", i+1, len(sel.Migrations), m.Name, len(m.Statements))
		}
		fmt.Fprintln(out, "--------------------------------------------------")
		logger.Info("apply done", "elapsed", time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVar(&fromMigration, "from", "", "last applied migration (empty: none)")
	applyCmd.Flags().StringVar(&toMigration, "to", "", "target migration (empty: latest)")
	applyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the script instead of running it")
}
