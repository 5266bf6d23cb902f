package client

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/emcapi/emcapi/internal/core"
)

var (
	// ErrInvalidRadius is returned for negative, NaN, infinite or out of range search radii.
	ErrInvalidRadius = errors.New("radius must be a finite number between 0 and 2147483647")

	// ErrInvalidCoordinate is returned for NaN, infinite or out of range coordinates.
	ErrInvalidCoordinate = errors.New("coordinate must be a finite number within the int32 range")
)

// ServerInfo returns live server status.
func (c *Client) ServerInfo(ctx context.Context) (*core.ServerInfo, error) {
	var info core.ServerInfo
	if err := c.fetch(ctx, "server", "", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// PlayerList returns every known player as a reference.
func (c *Client) PlayerList(ctx context.Context) ([]core.NamedObject, error) {
	return c.list(ctx, "players")
}

// Players looks up players by name or uuid. Unknown ids are simply absent
// from the result.
func (c *Client) Players(ctx context.Context, ids ...string) ([]core.Player, error) {
	var out []core.Player
	if err := c.query(ctx, "players", ids, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// Player returns the first match for id, or nil when it does not exist.
func (c *Client) Player(ctx context.Context, id string) (*core.Player, error) {
	return first(c.Players(ctx, id))
}

func (c *Client) TownList(ctx context.Context) ([]core.NamedObject, error) {
	return c.list(ctx, "towns")
}

func (c *Client) Towns(ctx context.Context, ids ...string) ([]core.Town, error) {
	var out []core.Town
	if err := c.query(ctx, "towns", ids, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) Town(ctx context.Context, id string) (*core.Town, error) {
	return first(c.Towns(ctx, id))
}

func (c *Client) NationList(ctx context.Context) ([]core.NamedObject, error) {
	return c.list(ctx, "nations")
}

func (c *Client) Nations(ctx context.Context, ids ...string) ([]core.Nation, error) {
	var out []core.Nation
	if err := c.query(ctx, "nations", ids, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) Nation(ctx context.Context, id string) (*core.Nation, error) {
	return first(c.Nations(ctx, id))
}

func (c *Client) QuarterList(ctx context.Context) ([]core.NamedObject, error) {
	return c.list(ctx, "quarters")
}

// Quarters looks up quarters by uuid.
func (c *Client) Quarters(ctx context.Context, ids ...string) ([]core.Quarter, error) {
	var out []core.Quarter
	if err := c.query(ctx, "quarters", ids, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) Quarter(ctx context.Context, id string) (*core.Quarter, error) {
	return first(c.Quarters(ctx, id))
}

// Discord resolves links between discord ids and minecraft uuids. kind names
// the side the ids belong to.
func (c *Client) Discord(ctx context.Context, kind core.DiscordKind, ids ...string) ([]core.DiscordLink, error) {
	ids = CleanIDs(ids)
	if len(ids) == 0 {
		return []core.DiscordLink{}, nil
	}
	if kind == "" {
		kind = core.DiscordKindMinecraft
	}

	params := queryParams(ids)
	params.Set("type", string(kind))

	var out []core.DiscordLink
	if err := c.fetch(ctx, "discord", "discord", params, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// Location describes what occupies each [x, z] coordinate. Coordinates are
// rounded to integers.
func (c *Client) Location(ctx context.Context, points ...core.Point) ([]core.LocationInfo, error) {
	if len(points) == 0 {
		return []core.LocationInfo{}, nil
	}

	encoded := make([]string, 0, len(points))
	for _, p := range points {
		value, err := formatPoint(p)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, value)
	}

	var out []core.LocationInfo
	if err := c.fetch(ctx, "location", "location", queryParams(encoded), &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// NearbyTown returns towns within radius blocks of the named town.
func (c *Client) NearbyTown(ctx context.Context, town string, radius float64) ([]core.NamedObject, error) {
	town = strings.TrimSpace(town)
	if town == "" {
		return nil, errors.New("town is required")
	}
	r, err := blockRadius(radius)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("town", town)
	params.Set("radius", strconv.Itoa(r))

	var out []core.NamedObject
	if err := c.fetch(ctx, "nearby", "nearby/town", params, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// NearbyCoord returns towns within radius blocks of an [x, z] coordinate.
// Coordinates and radius are rounded to integers.
func (c *Client) NearbyCoord(ctx context.Context, point core.Point, radius float64) ([]core.NamedObject, error) {
	x, z, err := blockPoint(point)
	if err != nil {
		return nil, err
	}
	r, err := blockRadius(radius)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("x", strconv.Itoa(x))
	params.Set("z", strconv.Itoa(z))
	params.Set("radius", strconv.Itoa(r))

	var out []core.NamedObject
	if err := c.fetch(ctx, "nearby", "nearby/coordinate", params, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) list(ctx context.Context, resource string) ([]core.NamedObject, error) {
	var out []core.NamedObject
	if err := c.fetch(ctx, resource, resource, nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) query(ctx context.Context, resource string, ids []string, out any) error {
	ids = CleanIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	uuids, names := countKinds(ids)
	c.debug("Querying "+resource,
		zap.String("server", c.server),
		zap.Int("uuids", uuids),
		zap.Int("names", names))

	return c.fetch(ctx, resource, resource, queryParams(ids), out)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func first[T any](items []T, err error) (*T, error) {
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}
