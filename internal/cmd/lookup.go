package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emcapi/emcapi/internal/core"
	"github.com/emcapi/emcapi/internal/core/client"
	"github.com/emcapi/emcapi/internal/server/handlers"
)

var discordKind string

var discordCmd = &cobra.Command{
	Use:   "discord <id...>",
	Short: "Resolve links between Discord accounts and Minecraft UUIDs",
	Long: `Resolve links between Discord accounts and Minecraft UUIDs.

--type names the side the ids belong to: "minecraft" (the default) for
Minecraft UUIDs, "discord" for Discord account ids.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := core.ParseDiscordKind(discordKind)
		if !ok {
			return fmt.Errorf("invalid --type %q: expected discord or minecraft", discordKind)
		}
		return withSession(cmd, func(ctx context.Context, c *client.Client) (any, error) {
			return c.Discord(ctx, kind, args...)
		})
	},
}

var locationCmd = &cobra.Command{
	Use:   "location <x;z>...",
	Short: "Show which town and nation occupy coordinates",
	Long: `Show which town and nation occupy coordinates.

Each argument is an x;z pair (quote it in the shell). Coordinates are rounded
to whole blocks. Flags go before the first pair; put "--" in front of a pair
that starts with a minus sign.`,
	Example: `  emcapi location "12.5;-300" "0;0"
  emcapi location -o json -- "-12;40" "3;-7"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		points := make([]core.Point, 0, len(args))
		for _, arg := range args {
			point, err := handlers.ParsePoint(arg)
			if err != nil {
				return err
			}
			points = append(points, point)
		}
		return withSession(cmd, func(ctx context.Context, c *client.Client) (any, error) {
			return c.Location(ctx, points...)
		})
	},
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Find towns near a town or a coordinate",
}

var nearbyTownCmd = &cobra.Command{
	Use:     "town <town> <radius>",
	Example: `  emcapi nearby town Paris 500`,
	Short:   "Find towns within radius blocks of a town",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		radius, err := parseNumber("radius", args[1])
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, c *client.Client) (any, error) {
			return c.NearbyTown(ctx, args[0], radius)
		})
	},
}

var nearbyCoordCmd = &cobra.Command{
	Use:     "coord <x> <z> <radius>",
	Example: `  emcapi nearby coord 12.6 -3.4 5.7
  emcapi nearby coord -o json -- -120 64 500`,
	Aliases: []string{"coordinate"},
	Short:   "Find towns within radius blocks of a coordinate",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var values [3]float64
		for i, name := range []string{"x", "z", "radius"} {
			value, err := parseNumber(name, args[i])
			if err != nil {
				return err
			}
			values[i] = value
		}
		return withSession(cmd, func(ctx context.Context, c *client.Client) (any, error) {
			return c.NearbyCoord(ctx, core.Point{values[0], values[1]}, values[2])
		})
	},
}

func parseNumber(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, value)
	}
	return v, nil
}

func init() {
	discordCmd.Flags().StringVar(&discordKind, "type", string(core.DiscordKindMinecraft), "id kind: discord or minecraft")

	// Negative numbers after the first argument are values, not flags.
	locationCmd.Flags().SetInterspersed(false)
	nearbyCoordCmd.Flags().SetInterspersed(false)

	nearbyCmd.AddCommand(nearbyTownCmd, nearbyCoordCmd)
	rootCmd.AddCommand(discordCmd, locationCmd, nearbyCmd)
}
