package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/emcapi/emcapi/internal/core/client"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show live server status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, c *client.Client) (any, error) {
			return c.ServerInfo(ctx)
		})
	},
}

// lookupCommand builds a command that lists every entity of a resource when
// called without arguments and looks entities up by name or UUID otherwise.
func lookupCommand(
	use, short string,
	list func(ctx context.Context, c *client.Client) (any, error),
	query func(ctx context.Context, c *client.Client, ids []string) (any, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [name|uuid...]",
		Short: short,
		Long: short + `.

Without arguments every known entry is listed as name and UUID.
With arguments the full records are fetched in one request. Unknown names
are left out of the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, c *client.Client) (any, error) {
				ids := client.CleanIDs(args)
				if len(ids) == 0 {
					return list(ctx, c)
				}
				return query(ctx, c, ids)
			})
		},
	}
}

var playersCmd = lookupCommand("players", "Look up players",
	func(ctx context.Context, c *client.Client) (any, error) { return c.PlayerList(ctx) },
	func(ctx context.Context, c *client.Client, ids []string) (any, error) { return c.Players(ctx, ids...) },
)

var townsCmd = lookupCommand("towns", "Look up towns",
	func(ctx context.Context, c *client.Client) (any, error) { return c.TownList(ctx) },
	func(ctx context.Context, c *client.Client, ids []string) (any, error) { return c.Towns(ctx, ids...) },
)

var nationsCmd = lookupCommand("nations", "Look up nations",
	func(ctx context.Context, c *client.Client) (any, error) { return c.NationList(ctx) },
	func(ctx context.Context, c *client.Client, ids []string) (any, error) { return c.Nations(ctx, ids...) },
)

var quartersCmd = lookupCommand("quarters", "Look up quarters by UUID",
	func(ctx context.Context, c *client.Client) (any, error) { return c.QuarterList(ctx) },
	func(ctx context.Context, c *client.Client, ids []string) (any, error) { return c.Quarters(ctx, ids...) },
)

func init() {
	rootCmd.AddCommand(infoCmd, playersCmd, townsCmd, nationsCmd, quartersCmd)
}
