package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fulmenhq/gofulmen/ascii"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apperrors "github.com/emcapi/emcapi/internal/errors"
	"github.com/emcapi/emcapi/internal/observability"
)

var healthOffline bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run self-health check",
	Long: `Run a self-health check: configuration is valid and, unless --offline is
set, the API answers a server info request.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := observability.CLILogger
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		log.Info("Running health check...")

		if versionInfo.Version == "" {
			log.Error("❌ FAIL: Version information missing")
			return apperrors.NewConfigInvalidError("version information missing")
		}
		log.Debug("Version check passed", zap.String("version", versionInfo.Version))
		log.Info("✅ Version information available")

		cfg, err := loadConfig(ctx)
		if err != nil {
			log.Error("❌ FAIL: Configuration invalid", zap.Error(err))
			return err
		}
		log.Info("✅ Configuration valid")

		session, err := newSession(cfg)
		if err != nil {
			log.Error("❌ FAIL: API session could not be created", zap.Error(err))
			return err
		}
		log.Info(fmt.Sprintf("✅ API session ready (server %s, quota %s per %s)",
			session.Server(), session.RateLimit().Quota, session.RateLimit().Window))

		summary := []string{
			"emcapi " + versionInfo.Version,
			"Endpoint: " + cfg.Client.BaseURL + "/" + session.Server(),
			fmt.Sprintf("Quota:    %s per %s", session.RateLimit().Quota, session.RateLimit().Window),
			fmt.Sprintf("Retries:  %d", cfg.Client.Retries),
		}

		if healthOffline {
			log.Info("")
			log.Info("✅ All offline health checks passed")
			printSummary(cmd, append(summary, "Upstream: not checked"))
			return nil
		}

		start := time.Now()
		info, err := session.ServerInfo(ctx)
		if err != nil {
			log.Error("❌ FAIL: API unreachable", zap.Error(err))
			return err
		}
		log.Info(fmt.Sprintf("✅ API reachable (version %s, %d online, %s)",
			info.Version, info.Stats.NumOnlinePlayers, time.Since(start).Round(time.Millisecond)))

		log.Info("")
		log.Info("✅ All health checks passed")
		printSummary(cmd, append(summary, fmt.Sprintf("Upstream: %s, %d online", info.Version, info.Stats.NumOnlinePlayers)))
		return nil
	},
}

func printSummary(cmd *cobra.Command, lines []string) {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), ascii.DrawBox(strings.Join(lines, "\n"), 0))
}

func init() {
	rootCmd.AddCommand(healthCmd)
	healthCmd.Flags().BoolVar(&healthOffline, "offline", false, "skip the API reachability check")
}
