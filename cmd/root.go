package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fk-bigint/internal/logger"
	"fk-bigint/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	format  string
	color   bool
)

// ErrOffenses is returned by commands that found uncorrected offenses, so
// that the process exits non-zero without printing anything else.
var ErrOffenses = errors.New("offenses detected")

var RootCmd = &cobra.Command{
	Use:   "fk-bigint",
	Short: "Finds integer foreign keys that reference bigint primary keys",
	Long: `
  _____ _  __    ____ ___ ____ ___ _   _ _____
 |  ___| |/ /   | __ )_ _/ ___|_ _| \ | |_   _|
 | |_  | ' /____|  _ \| | |  _ | ||  \| | | |
 |  _| | . \____| |_) | | |_| || || |\  | | |
 |_|   |_|\_\   |____/___\____|___|_| \_| |_|

FK-BIGINT - Foreign key width checker for Rails schema scripts and live databases

Flags columns such as t.integer "user_id" whose referenced table ("users")
has a bigint primary key, the Rails default since 5.1.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(viper.GetBool("verbose"))

		f := strings.ToLower(viper.GetString("output.format"))
		for _, known := range report.Formats {
			if f == known {
				return nil
			}
		}
		return fmt.Errorf("unsupported output format: %s (want one of %s)", f, strings.Join(report.Formats, ", "))
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrOffenses) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./fk-bigint.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", report.FormatText, "Output format: "+strings.Join(report.Formats, ", "))
	RootCmd.PersistentFlags().BoolVar(&color, "color", true, "Colorize text output")

	// Bind flags to viper (Flag > Env > Config > Default)
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("output.format", RootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output.color", RootCmd.PersistentFlags().Lookup("color"))

	viper.SetDefault("output.format", report.FormatText)
	viper.SetDefault("output.color", true)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("fk-bigint")
		viper.SetConfigType("yaml")
	}

	// FK_BIGINT_DATABASE_DSN -> database.dsn
	viper.SetEnvPrefix("FK_BIGINT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("Using config file: %s", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		logger.Warn("failed to read config file %s: %v", cfgFile, err)
	}
}
