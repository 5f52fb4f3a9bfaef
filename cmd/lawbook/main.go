// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lawbook CLI. It mirrors the
// Hebrew WikiSource law book to HTML and docx and doubles as a pandoc JSON
// filter that maps law classes to custom styles.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/lawbook/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials loaded from .secrets/ at startup.
	loadedSecrets secrets.Secrets

	// logger receives diagnostics; status lines go to stdout.
	logger = zap.NewNop()
)

// rootCmd is the base command for the lawbook CLI.
var rootCmd = &cobra.Command{
	Use:   "lawbook",
	Short: "Mirror the Hebrew WikiSource law book as styled documents",
	Long: `lawbook downloads the laws listed in the open law book on Hebrew
WikiSource, saves each one as standalone right-to-left HTML, and converts
them to docx through pandoc. Law numbering and descriptions are tagged with
named custom styles so a reference document controls their look.

The filter subcommand runs the class-to-style mapping as a pandoc JSON
filter, for use with pandoc --filter.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := viper.GetString("logging.level")
		if cmd.Flags().Changed("log-level") {
			level, _ = cmd.Flags().GetString("log-level")
		}
		l, err := newLogger(level, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("Using config file", zap.String("path", used))
		}

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("Loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults()

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lawbook.yaml or ~/.config/lawbook/lawbook.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "diagnostic log level: none, normal, or debug (default normal)")
	rootCmd.PersistentFlags().String("output-dir", "", "directory for .htm, .docx and the ledger (default extracted_rules)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lawbook")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lawbook"))
		}
	}

	viper.SetEnvPrefix("LAWBOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; defaults and flags still apply.
	_ = viper.ReadInConfig()
}

// filterAlias is the executable name that runs the filter subcommand
// directly, for pandoc --filter which passes only the output format.
const filterAlias = "lawbook-filter"

// aliasArgs maps an invocation as lawbook-filter onto the filter subcommand.
func aliasArgs(argv []string) ([]string, bool) {
	if len(argv) == 0 || filepath.Base(argv[0]) != filterAlias {
		return nil, false
	}
	return append([]string{"filter"}, argv[1:]...), true
}

func main() {
	if args, ok := aliasArgs(os.Args); ok {
		rootCmd.SetArgs(args)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
