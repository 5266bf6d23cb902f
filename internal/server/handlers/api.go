package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/emcapi/emcapi/internal/core"
	"github.com/emcapi/emcapi/internal/core/client"
	apperrors "github.com/emcapi/emcapi/internal/errors"
)

// API is the subset of *client.Client the gateway forwards to.
type API interface {
	ServerInfo(ctx context.Context) (*core.ServerInfo, error)
	PlayerList(ctx context.Context) ([]core.NamedObject, error)
	Players(ctx context.Context, ids ...string) ([]core.Player, error)
	TownList(ctx context.Context) ([]core.NamedObject, error)
	Towns(ctx context.Context, ids ...string) ([]core.Town, error)
	NationList(ctx context.Context) ([]core.NamedObject, error)
	Nations(ctx context.Context, ids ...string) ([]core.Nation, error)
	QuarterList(ctx context.Context) ([]core.NamedObject, error)
	Quarters(ctx context.Context, ids ...string) ([]core.Quarter, error)
	Discord(ctx context.Context, kind core.DiscordKind, ids ...string) ([]core.DiscordLink, error)
	Location(ctx context.Context, points ...core.Point) ([]core.LocationInfo, error)
	NearbyTown(ctx context.Context, town string, radius float64) ([]core.NamedObject, error)
	NearbyCoord(ctx context.Context, point core.Point, radius float64) ([]core.NamedObject, error)
}

var _ API = (*client.Client)(nil)

// APIHandlers exposes one shared API session over HTTP. Every caller passes
// through the same rate limiter.
type APIHandlers struct {
	api API
}

func NewAPIHandlers(api API) *APIHandlers {
	return &APIHandlers{api: api}
}

func (h *APIHandlers) ServerInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.api.ServerInfo(r.Context())
	h.respond(w, r, info, err)
}

// Players lists every player, or looks up ?query=a,b when given.
func (h *APIHandlers) Players(w http.ResponseWriter, r *http.Request) {
	if ids, ok := queryIDs(r); ok {
		players, err := h.api.Players(r.Context(), ids...)
		h.respond(w, r, players, err)
		return
	}
	list, err := h.api.PlayerList(r.Context())
	h.respond(w, r, list, err)
}

func (h *APIHandlers) Towns(w http.ResponseWriter, r *http.Request) {
	if ids, ok := queryIDs(r); ok {
		towns, err := h.api.Towns(r.Context(), ids...)
		h.respond(w, r, towns, err)
		return
	}
	list, err := h.api.TownList(r.Context())
	h.respond(w, r, list, err)
}

func (h *APIHandlers) Nations(w http.ResponseWriter, r *http.Request) {
	if ids, ok := queryIDs(r); ok {
		nations, err := h.api.Nations(r.Context(), ids...)
		h.respond(w, r, nations, err)
		return
	}
	list, err := h.api.NationList(r.Context())
	h.respond(w, r, list, err)
}

func (h *APIHandlers) Quarters(w http.ResponseWriter, r *http.Request) {
	if ids, ok := queryIDs(r); ok {
		quarters, err := h.api.Quarters(r.Context(), ids...)
		h.respond(w, r, quarters, err)
		return
	}
	list, err := h.api.QuarterList(r.Context())
	h.respond(w, r, list, err)
}

// Discord handles ?type=discord|minecraft&query=a,b.
func (h *APIHandlers) Discord(w http.ResponseWriter, r *http.Request) {
	kind, ok := core.ParseDiscordKind(r.URL.Query().Get("type"))
	if !ok {
		respondWithError(w, r, invalidInput(r, "type must be discord or minecraft"))
		return
	}
	ids, ok := queryIDs(r)
	if !ok {
		respondWithError(w, r, invalidInput(r, "query is required"))
		return
	}

	links, err := h.api.Discord(r.Context(), kind, ids...)
	h.respond(w, r, links, err)
}

// Location handles ?query=x;z,x;z.
func (h *APIHandlers) Location(w http.ResponseWriter, r *http.Request) {
	raw, ok := queryIDs(r)
	if !ok {
		respondWithError(w, r, invalidInput(r, "query is required"))
		return
	}

	points := make([]core.Point, 0, len(raw))
	for _, value := range raw {
		point, err := ParsePoint(value)
		if err != nil {
			respondWithError(w, r, invalidInput(r, err.Error()))
			return
		}
		points = append(points, point)
	}

	locations, err := h.api.Location(r.Context(), points...)
	h.respond(w, r, locations, err)
}

// NearbyTown handles ?town=name&radius=n.
func (h *APIHandlers) NearbyTown(w http.ResponseWriter, r *http.Request) {
	town := strings.TrimSpace(r.URL.Query().Get("town"))
	if town == "" {
		respondWithError(w, r, invalidInput(r, "town is required"))
		return
	}
	radius, err := floatParam(r, "radius")
	if err != nil {
		respondWithError(w, r, invalidInput(r, err.Error()))
		return
	}

	towns, err := h.api.NearbyTown(r.Context(), town, radius)
	h.respond(w, r, towns, err)
}

// NearbyCoordinate handles ?x=n&z=n&radius=n.
func (h *APIHandlers) NearbyCoordinate(w http.ResponseWriter, r *http.Request) {
	var values [3]float64
	for i, name := range []string{"x", "z", "radius"} {
		value, err := floatParam(r, name)
		if err != nil {
			respondWithError(w, r, invalidInput(r, err.Error()))
			return
		}
		values[i] = value
	}

	towns, err := h.api.NearbyCoord(r.Context(), core.Point{values[0], values[1]}, values[2])
	h.respond(w, r, towns, err)
}

func (h *APIHandlers) respond(w http.ResponseWriter, r *http.Request, value any, err error) {
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, value)
}

// ParsePoint parses "x;z" into a coordinate. "x,z" is also accepted for
// single CLI arguments; on /api/location commas separate points, so only the
// ";" form works there.
func ParsePoint(value string) (core.Point, error) {
	parts := strings.FieldsFunc(value, func(r rune) bool { return r == ';' || r == ',' })
	if len(parts) != 2 {
		return core.Point{}, fmt.Errorf("coordinate %q must be x;z", value)
	}

	var point core.Point
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Point{}, fmt.Errorf("coordinate %q: %w", value, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.Point{}, fmt.Errorf("coordinate %q must be finite", value)
		}
		point[i] = v
	}
	return point, nil
}

func queryIDs(r *http.Request) ([]string, bool) {
	var ids []string
	for _, value := range r.URL.Query()["query"] {
		ids = append(ids, client.CleanIDs(strings.Split(value, ","))...)
	}
	if len(ids) == 0 {
		return nil, false
	}
	return ids, true
}

func floatParam(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be a finite number", name)
	}
	return value, nil
}

func invalidInput(r *http.Request, message string) error {
	return apperrors.Wrap(r.Context(), apperrors.CodeInvalidInput, nil, message)
}
