package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cvpatch/templatize/pkg/templatize"
)

// NewRootCmd creates the root command. Run without a subcommand it builds
// the template.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templatize",
		Short: "Turn a résumé DOCX into a merge template",
		Long: `templatize rewrites a filled-in résumé (DOCX) into a template for a
docxtemplater-style merge engine. Paragraphs are addressed by position: their
text is replaced with placeholders such as {header.name}, section markers such
as {#education} and {/education} are inserted around repeated blocks, and
sample paragraphs are deleted.

Run without a subcommand to build the template. Settings come from flags,
TEMPLATIZE_* environment variables and an optional templatize.yaml.`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBuild,
	}

	defaults := templatize.DefaultConfig()

	cmd.PersistentFlags().String("config", "", "config file (default: ./templatize.yaml)")
	cmd.PersistentFlags().String("log-level", defaults.LogLevel, "log level: debug, info, warn, error, off")
	cmd.PersistentFlags().StringP("input", "i", defaults.InputPath, "source résumé package")
	cmd.PersistentFlags().StringP("output", "o", defaults.OutputPath, "where the template is written")
	cmd.PersistentFlags().String("plan", "", "YAML plan file (default: built-in résumé plan)")

	cmd.Flags().Bool("lenient", defaults.Lenient, "skip plan steps that address missing paragraphs instead of failing")

	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewPlanCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := templatize.NewBuilder(cfg, nil).Build(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote template to %s\n", result.OutputPath)
	return nil
}

// loadConfig layers the config file, TEMPLATIZE_* environment variables and
// flags over the defaults, and points the package logger at stderr with the
// configured level.
func loadConfig(cmd *cobra.Command) (*templatize.Config, error) {
	v := viper.New()

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("templatize")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TEMPLATIZE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" || f.Name == "version" {
			return
		}
		if err := v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := templatize.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg = templatize.NewConfigWithDefaults(cfg)

	templatize.SetLogger(templatize.NewLogger(cmd.ErrOrStderr(), templatize.ParseLogLevel(cfg.LogLevel)))
	if used := v.ConfigFileUsed(); used != "" {
		templatize.WithField("config", used).Debug("Using config file")
	}

	return cfg, nil
}
