package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ralt/pkgdiff/internal/diff"
	"github.com/ralt/pkgdiff/internal/models"
	"github.com/ralt/pkgdiff/internal/report"
	"github.com/ralt/pkgdiff/internal/signer"
	"github.com/ralt/pkgdiff/internal/source"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewExistingCmd creates the existence diff command
func NewExistingCmd(v *viper.Viper) *cobra.Command {
	return newCompareCmd(v, diff.ModeExistence, &cobra.Command{
		Use:     "existing BRANCH1 BRANCH2",
		Aliases: []string{"existence"},
		Short:   "Compare existing packages between two branches",
		Long: `Reports the packages of BRANCH1 that have no build with the same
arch, name, epoch, version and release in BRANCH2.`,
	})
}

// NewRPMCmd creates the version diff command
func NewRPMCmd(v *viper.Viper) *cobra.Command {
	return newCompareCmd(v, diff.ModeVersion, &cobra.Command{
		Use:     "rpm BRANCH1 BRANCH2",
		Aliases: []string{"version"},
		Short:   "Compare RPM packages between two branches",
		Long: `Reports the packages of BRANCH1 whose epoch:version-release is newer,
under RPM ordering rules, than the package with the same name and arch in
BRANCH2. Packages missing from BRANCH2 are not reported.`,
	})
}

func newCompareCmd(v *viper.Viper, mode diff.Mode, cmd *cobra.Command) *cobra.Command {
	cmd.Args = cobra.ExactArgs(2)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		config := configFromViper(v)
		config.Branch1, config.Branch2 = args[0], args[1]

		if err := validateConfig(&config); err != nil {
			return err
		}

		logrus.Debugf("Configuration: %+v", config)
		return runDiff(cmd.Context(), cmd.OutOrStdout(), mode, &config)
	}

	cmd.Flags().Int("limit", 0, "Limit the number of packages for comparison")
	return cmd
}

func configFromViper(v *viper.Viper) models.DiffConfig {
	return models.DiffConfig{
		Limit:         v.GetInt("limit"),
		APIURL:        v.GetString("api-url"),
		Timeout:       v.GetDuration("timeout"),
		CacheDir:      v.GetString("cache-dir"),
		CacheTTL:      v.GetDuration("cache-ttl"),
		Format:        v.GetString("format"),
		OutputFile:    v.GetString("output"),
		Progress:      v.GetBool("progress"),
		GPGKeyPath:    v.GetString("sign-key"),
		GPGPassphrase: v.GetString("sign-passphrase"),
	}
}

func validateConfig(config *models.DiffConfig) error {
	if config.Format != models.FormatJSON && config.Format != models.FormatYAML {
		return &models.DiffError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("unsupported format %q", config.Format),
		}
	}

	if config.GPGKeyPath != "" && config.OutputFile == "" {
		return &models.DiffError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("sign-key requires an output file"),
		}
	}

	if config.APIURL == "" {
		config.APIURL = source.DefaultAPIURL
	}

	return nil
}

func runDiff(ctx context.Context, out io.Writer, mode diff.Mode, config *models.DiffConfig) error {
	// Step 1: Initialize signer before doing any work
	var s signer.Signer
	if config.GPGKeyPath != "" {
		gpgSigner, err := signer.NewGPGSigner(config.GPGKeyPath, config.GPGPassphrase)
		if err != nil {
			return &models.DiffError{
				Type: models.ErrSigning,
				Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
			}
		}
		s = gpgSigner
		logrus.Info("GPG signer initialized")
	}

	// Step 2: Fetch both branches
	resolver := source.NewResolver(source.Options{
		APIURL:   config.APIURL,
		Timeout:  config.Timeout,
		CacheDir: config.CacheDir,
		CacheTTL: config.CacheTTL,
	})
	list1, list2, err := source.FetchPair(ctx, resolver, config.Branch1, config.Branch2)
	if err != nil {
		return err
	}

	// Step 3: Compare
	var opts []diff.Option
	if config.Progress {
		opts = append(opts, diff.WithReporter(diff.LogReporter{}))
	}
	engine := diff.NewEngine(opts...)

	logrus.Infof("Running %s diff of %s (%d packages) against %s (%d packages)",
		mode, config.Branch1, len(list1.Packages), config.Branch2, len(list2.Packages))

	result, err := engine.Run(mode, list1.Packages, list2.Packages, config.Limit)
	if err != nil {
		return err
	}

	for _, arch := range result.Architectures() {
		logrus.Debugf("%s: %d packages", arch, len(result.Packages[arch]))
	}
	logrus.Infof("Found %d packages", result.Count)

	// Step 4: Output
	data, err := report.Render(result, config.Format)
	if err != nil {
		return err
	}

	if config.OutputFile == "" {
		return report.Print(out, data)
	}
	return report.Save(config.OutputFile, data, s)
}
