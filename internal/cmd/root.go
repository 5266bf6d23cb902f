package cmd

import (
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/emcapi/emcapi/internal/config"
	"github.com/emcapi/emcapi/internal/observability"
)

var (
	cfgFile      string
	verbose      bool
	outputFormat string

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Query the EarthMC API from the command line",
	Long: `emcapi queries the read-only EarthMC API (players, towns, nations,
quarters, discord links, locations and nearby towns).

Every request passes through a sliding-window rate limiter and is retried
when the API answers 504 Gateway Timeout. Use "emcapi serve" to share one
rate-limited session with other local tools over HTTP.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called once by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Keep config loading from emitting metrics to stdout; serve enables
	// real telemetry later.
	observability.DisableGlobalTelemetry()

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/emcapi/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
	flags.StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml, markdown")
	flags.String("server", "", "EarthMC server partition (default aurora)")
	flags.String("base-url", "", "API base URL")
	flags.Int("max-requests", 0, "requests allowed per window (0 = unlimited)")
	flags.Duration("window", 0, "rate limit window")
	flags.Int("retries", 0, "extra attempts after a 504")

	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("client.server", flags.Lookup("server"))
	_ = viper.BindPFlag("client.base_url", flags.Lookup("base-url"))
	_ = viper.BindPFlag("client.max_requests_per_window", flags.Lookup("max-requests"))
	_ = viper.BindPFlag("client.window_size", flags.Lookup("window"))
	_ = viper.BindPFlag("client.retries", flags.Lookup("retries"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	observability.InitCLILogger(config.AppName, verbose)

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if path := config.DefaultConfigPath(); path != "" {
			viper.SetConfigFile(path)
		}
		viper.SetConfigType("yaml")
	}

	err := viper.ReadInConfig()
	switch {
	case err == nil:
		observability.CLILogger.Debug("Using config file", zap.String("path", viper.ConfigFileUsed()))
	case cfgFile != "":
		ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Failed to read config file", err)
	default:
		// A missing default config file is fine; defaults and env still apply.
		observability.CLILogger.Debug("No config file loaded, using defaults and environment variables",
			zap.Error(err))
	}
}
