package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"fk-bigint/internal/dialect"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
	"github.com/xo/dburl"
)

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Schema string `mapstructure:"schema"`
	Active bool   `mapstructure:"active"`
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	return activeConfig, nil
}

// resolveDatabase picks the connection to inspect: database.dsn (flag, env
// or config) first, then the active entry of `databases`. The returned
// driver is a registered database/sql driver name.
func resolveDatabase() (*DBConfig, error) {
	cfg := &DBConfig{
		Name:   "CLI Wrapper",
		Driver: viper.GetString("database.driver"),
		DSN:    viper.GetString("database.dsn"),
		Schema: viper.GetString("database.schema"),
		Active: true,
	}
	if cfg.DSN == "" {
		active, err := GetActiveDBConfig()
		if err != nil {
			return nil, fmt.Errorf("database.dsn is required (via flag, env or config): %w", err)
		}
		cfg = active
		if s := viper.GetString("database.schema"); s != "" {
			cfg.Schema = s
		}
	}

	cfg.Driver, cfg.DSN = detectDriver(cfg.Driver, cfg.DSN)
	return cfg, nil
}

// detectDriver resolves URL-style DSNs (postgres://, sqlserver://,
// sqlite:...) through dburl. Plain driver DSNs keep their text and, without
// an explicit driver, are guessed to be PostgreSQL or MySQL.
func detectDriver(driver, connStr string) (string, string) {
	if u, err := dburl.Parse(connStr); err == nil {
		if driver == "" {
			driver = u.Driver
		}
		driver = dialect.NormalizeDriver(driver)
		// go-ora takes the URL form itself.
		if driver == "oracle" {
			return driver, connStr
		}
		return driver, u.DSN
	}

	if driver == "" {
		if strings.Contains(connStr, "postgres") || strings.Contains(connStr, "sslmode") {
			driver = "postgres"
		} else {
			driver = "mysql"
		}
	}
	return dialect.NormalizeDriver(driver), connStr
}

// resolveFiles returns the schema scripts to check. Explicit arguments win;
// otherwise include globs are expanded and exclude globs removed. Globs
// support `**` for any number of directories (`**/*.rb`).
func resolveFiles(args, include, exclude []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var files []string
	seen := make(map[string]bool)
	for _, pattern := range include {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if seen[m] {
				continue
			}
			excluded, err := matchesAny(m, exclude)
			if err != nil {
				return nil, err
			}
			if excluded {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	return files, nil
}

func matchesAny(path string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.PathMatch(filepath.Clean(pattern), path)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
