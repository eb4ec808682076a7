package cmd

import (
	"fmt"
	"os"

	"fk-bigint/internal/autocorrect"
	"fk-bigint/internal/logger"
	"fk-bigint/internal/parser"
	"fk-bigint/internal/report"
	"fk-bigint/internal/schema"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var fix bool

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check schema scripts for integer foreign keys to bigint primary keys",
	Long: `Check parses Rails schema scripts (db/schema.rb by default) and reports
every t.integer "<name>_id" column whose referenced table was declared
earlier in the script with a bigint primary key.

Files come from the arguments, or from the check.include globs minus the
check.exclude globs of the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !viper.GetBool("check.enabled") {
			logger.Info("check is disabled by configuration (check.enabled: false)")
			return nil
		}

		include := viper.GetStringSlice("check.include")
		files, err := resolveFiles(args, include, viper.GetStringSlice("check.exclude"))
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no schema files found (include: %v)", include)
		}

		var findings, corrected []schema.Finding
		for _, path := range files {
			found, applied, err := checkFile(path, fix)
			if err != nil {
				return err
			}
			findings = append(findings, found...)
			corrected = append(corrected, applied...)
		}

		rep := report.New(len(files), findings, corrected)
		opts := report.Options{Color: viper.GetBool("output.color"), Unit: "file"}
		if err := report.Write(cmd.OutOrStdout(), viper.GetString("output.format"), rep, opts); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		if rep.Uncorrected() > 0 {
			return ErrOffenses
		}
		return nil
	},
}

// checkFile analyses one script and, when autocorrecting, rewrites it.
func checkFile(path string, autocorrecting bool) ([]schema.Finding, []schema.Finding, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read schema: %w", err)
	}

	defs, err := parser.Parse(path, src)
	if err != nil {
		return nil, nil, err
	}

	findings := schema.Analyze(defs)
	logger.Debug("%s: %d tables, %d findings", path, len(defs), len(findings))

	if !autocorrecting || len(findings) == 0 {
		return findings, nil, nil
	}
	applied, err := autocorrect.ApplyFile(path, findings)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("%s: corrected %d of %d findings", path, len(applied), len(findings))
	return findings, applied, nil
}

func init() {
	RootCmd.AddCommand(checkCmd)

	// CLI Flags
	checkCmd.Flags().BoolVarP(&fix, "fix", "a", false, "Rewrite integer foreign keys to bigint in place")

	viper.SetDefault("check.enabled", true)
	viper.SetDefault("check.include", []string{"db/schema.rb"})
	viper.SetDefault("check.exclude", []string{})
}
