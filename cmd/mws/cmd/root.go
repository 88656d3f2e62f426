// Package cmd implements the mws CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/amazon-mws/internal/config"
	"github.com/donaldgifford/amazon-mws/pkg/logger"
	"github.com/donaldgifford/amazon-mws/pkg/mws"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "mws",
		Short: "Command-line client for Amazon Marketplace Web Service",
		Long:  "mws builds, signs and sends Amazon MWS requests.\n" +
			"Operation inputs are given as JSON; use 'mws params' to see the\n" +
			"request parameters an input produces without sending anything.",
		SilenceUsage: true,
	}
)

// flags bound to viper under the same name. Environment variables use the
// MWS_ prefix with dashes replaced by underscores (MWS_ACCESS_KEY).
var boundFlags = []string{
	"region",
	"endpoint",
	"access-key",
	"secret-key",
	"account-id",
	"auth-token",
	"log-level",
	"log-format",
	"output",
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (YAML)")
	flags.String("region", "", "marketplace region code (US, UK, DE, ...)")
	flags.String("endpoint", "", "override the region endpoint URL")
	flags.String("access-key", "", "MWS access key id")
	flags.String("secret-key", "", "MWS secret key")
	flags.String("account-id", "", "seller or merchant id")
	flags.String("auth-token", "", "MWSAuthToken for delegated access")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	flags.String("output", "table", "output format (table, json)")

	for _, name := range boundFlags {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(regionsCmd())
	rootCmd.AddCommand(sectionsCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(paramsCmd())
	rootCmd.AddCommand(callCmd())
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Loading .env:", err)
	}

	viper.SetEnvPrefix("MWS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the config file when one is given and overlays the
// flags and environment variables that were set.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overlay := func(key string, dst *string) {
		if viper.IsSet(key) {
			*dst = viper.GetString(key)
		}
	}
	overlay("region", &cfg.Region)
	overlay("endpoint", &cfg.Endpoint)
	overlay("access-key", &cfg.Credentials.AccessKey)
	overlay("secret-key", &cfg.Credentials.SecretKey)
	overlay("account-id", &cfg.Credentials.AccountID)
	overlay("auth-token", &cfg.Credentials.AuthToken)
	overlay("log-level", &cfg.Logging.Level)
	overlay("log-format", &cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

func newClient(cfg *config.Config, log *slog.Logger) (*mws.Client, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := []mws.Option{
		mws.WithRegion(cfg.Region),
		mws.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
		mws.WithLogger(log),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, mws.WithEndpoint(cfg.Endpoint))
	}
	if cfg.HTTP.UserAgent != "" {
		opts = append(opts, mws.WithUserAgent(cfg.HTTP.UserAgent))
	}
	if cfg.RateLimit.Enabled {
		opts = append(opts, mws.WithRateLimiter(mws.NewRateLimiter(
			cfg.RateLimit.PerSecond,
			cfg.RateLimit.Burst,
			cfg.RateLimit.HourlyQuota,
		)))
	}
	return mws.NewClient(cfg.Credentials.Credentials(), opts...)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
