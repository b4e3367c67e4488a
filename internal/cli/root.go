package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ralt/pkgdiff/internal/models"
	"github.com/ralt/pkgdiff/internal/source"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PKGDIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "pkgdiff",
		Short: "Compare binary packages between two branches",
		Long: `Pkgdiff fetches the binary package lists of two branches and reports,
per architecture, the packages of the first branch that differ.

Branches are names known to the repository database API (p10, sisyphus, ...),
saved export files (file:PATH, optionally .gz/.zst/.xz compressed) or
directories of RPM files (rpmdir:DIR).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			// Setup logging
			if v.GetBool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}

			if path := v.GetString("config"); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return &models.DiffError{
						Type: models.ErrInvalidConfig,
						Err:  fmt.Errorf("failed to read config %s: %w", path, err),
					}
				}
				logrus.Debugf("Using config file %s", v.ConfigFileUsed())
			}
			return nil
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.String("config", "", "Config file (yaml, toml or json)")
	flags.String("api-url", source.DefaultAPIURL, "Repository database API base URL")
	flags.Duration("timeout", 5*time.Minute, "Timeout of a single branch request")
	flags.String("cache-dir", "", "Cache fetched branches in this directory")
	flags.Duration("cache-ttl", 24*time.Hour, "Refetch cached branches older than this (0 keeps them forever)")
	flags.String("format", models.FormatJSON, "Output format (json, yaml)")
	flags.StringP("output", "o", "", "Write the report to a file instead of stdout")
	flags.String("sign-key", "", "Path to a GPG private key signing the report file")
	flags.String("sign-passphrase", "", "GPG key passphrase")
	flags.Bool("progress", true, "Log progress every 100 compared packages")

	// Add subcommands
	rootCmd.AddCommand(NewExistingCmd(v))
	rootCmd.AddCommand(NewRPMCmd(v))

	return rootCmd
}
