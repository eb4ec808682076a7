package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"fk-bigint/internal/dialect"
	"fk-bigint/internal/logger"
	"fk-bigint/internal/report"
	"fk-bigint/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dsn        string
	driverName string
	schemaName string
	dryRun     bool
	timeout    time.Duration
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Check foreign key column types of a live database",
	Long: `Inspect reads tables, columns and primary keys from a running database
(MySQL, PostgreSQL, SQL Server, Oracle or SQLite) and applies the same
foreign key rule as check. All tables are known before any is checked,
since a catalog has no declaration order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := resolveDatabase()
		if err != nil {
			return err
		}
		logger.Info("Connecting to %s (%s)", config.Name, config.Driver)

		ctx, cancel := withTimeout(cmd.Context(), viper.GetDuration("database.timeout"))
		defer cancel()

		db, err := sql.Open(config.Driver, config.DSN)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}

		target := config.Schema
		if target == "" && config.Driver == "mysql" {
			if err := db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&target); err != nil {
				return fmt.Errorf("failed to get database name: %w", err)
			}
			if target == "" {
				return fmt.Errorf("no database selected in DSN")
			}
		}

		// 0. Get Dialect
		d := dialect.GetDialect(config.Driver)
		logger.Debug("Using dialect for %s, schema %q", config.Driver, d.GetSchemaName(target))

		// 1. Introspect
		logger.Info("Reading catalog...")
		defs, err := schema.Introspect(ctx, db, d, target)
		if err != nil {
			return err
		}

		// Dry Run
		if dryRun {
			printDependencyOrder(cmd.OutOrStdout(), defs)
			return nil
		}

		// 2. Check, with a progress bar on stderr
		progress := uiprogress.New()
		progress.SetOut(cmd.ErrOrStderr())
		progress.Start()
		bar := progress.AddBar(max(len(defs), 1)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Checking: "
		})

		findings := schema.AnalyzeCatalog(defs, func() {
			bar.Incr()
		})
		progress.Stop()

		// 3. Report (live findings carry no source text to correct)
		for i := range findings {
			findings[i].Fix = nil
		}
		rep := report.New(len(defs), findings, nil)
		opts := report.Options{Color: viper.GetBool("output.color"), Unit: "table"}
		if err := report.Write(cmd.OutOrStdout(), viper.GetString("output.format"), rep, opts); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		if rep.Uncorrected() > 0 {
			return ErrOffenses
		}
		return nil
	},
}

// withTimeout bounds ctx by d; a zero or negative d means no timeout.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// printDependencyOrder lists tables so that each follows the tables its
// `_id` columns point at, cycles broken by SortTablesByFKCount.
func printDependencyOrder(w io.Writer, defs []*schema.TableDefinition) {
	ordered := schema.SortTablesByFKCount(defs)
	known := make(map[string]bool, len(ordered))
	for _, t := range ordered {
		known[t.Name] = true
	}
	fmt.Fprintln(w, "🔍 Dependency order:")
	for i, t := range ordered {
		fmt.Fprintf(w, "[%02d] %s (Dependencies: %v)\n", i+1, t.Name, schema.Dependencies(t, known))
	}
}

func init() {
	RootCmd.AddCommand(inspectCmd)

	// CLI Flags
	inspectCmd.Flags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN or URL)")
	inspectCmd.Flags().StringVar(&driverName, "driver", "", "Database driver (mysql, postgres, sqlserver, oracle, sqlite); detected from the DSN if empty")
	inspectCmd.Flags().StringVar(&schemaName, "schema", "", "Schema to inspect (default: current database, public, dbo, main)")
	inspectCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the dependency order of the tables and stop")
	inspectCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for connecting and reading the catalog (0 disables it)")

	viper.BindPFlag("database.dsn", inspectCmd.Flags().Lookup("dsn"))
	viper.BindPFlag("database.driver", inspectCmd.Flags().Lookup("driver"))
	viper.BindPFlag("database.schema", inspectCmd.Flags().Lookup("schema"))
	viper.BindPFlag("database.timeout", inspectCmd.Flags().Lookup("timeout"))

	viper.SetDefault("database.timeout", 30*time.Second)
}
