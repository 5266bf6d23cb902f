package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/emcapi/emcapi/internal/config"
	"github.com/emcapi/emcapi/internal/core/client"
	apperrors "github.com/emcapi/emcapi/internal/errors"
	"github.com/emcapi/emcapi/internal/observability"
	"github.com/emcapi/emcapi/internal/output"
)

// loadConfig decodes the global viper state into a validated Config.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, apperrors.Wrap(ctx, apperrors.CodeConfigInvalid, err, err.Error())
	}
	return cfg, nil
}

// newSession builds the API client described by the loaded config.
func newSession(cfg *config.Config) (*client.Client, error) {
	opts := cfg.Client.ClientOptions()
	opts.HTTPClient = &http.Client{Timeout: cfg.Client.RequestTimeout()}
	opts.Logger = observability.Logger()

	c, err := client.New(opts)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	if logger := observability.Logger(); logger != nil {
		logger.Debug("API session ready",
			zap.String("base_url", cfg.Client.BaseURL),
			zap.String("server", c.Server()),
			zap.String("quota", c.RateLimit().Quota.String()),
			zap.Duration("window", c.RateLimit().Window),
			zap.Int("retries", cfg.Client.Retries))
	}
	return c, nil
}

// withSession runs fn against a fresh session and prints its result.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, c *client.Client) (any, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return apperrors.Wrap(ctx, apperrors.CodeInvalidInput, err, err.Error())
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	c, err := newSession(cfg)
	if err != nil {
		return err
	}

	result, err := fn(ctx, c)
	if err != nil {
		return err
	}

	rendered, err := output.Render(format, result)
	if err != nil {
		return fmt.Errorf("render %s output: %w", format, err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
