package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emcapi/emcapi/internal/config"
	"github.com/emcapi/emcapi/internal/core"
	"github.com/emcapi/emcapi/internal/core/client"
	"github.com/emcapi/emcapi/internal/core/engine"
	apperrors "github.com/emcapi/emcapi/internal/errors"
	"github.com/emcapi/emcapi/internal/server/handlers"
)

func strPtr(s string) *string { return &s }

// stubAPI records calls and returns canned data.
type stubAPI struct {
	mu       sync.Mutex
	calls    []string
	ids      []string
	point    core.Point
	points   []core.Point
	radius   float64
	kind     core.DiscordKind
	err      error
	limit    engine.RateLimit
	inWindow int
}

func (s *stubAPI) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *stubAPI) named() []core.NamedObject {
	return []core.NamedObject{{Name: strPtr("Paris")}}
}

func (s *stubAPI) ServerInfo(ctx context.Context) (*core.ServerInfo, error) {
	s.record("server")
	if s.err != nil {
		return nil, s.err
	}
	return &core.ServerInfo{Version: "1.21.1"}, nil
}

func (s *stubAPI) PlayerList(ctx context.Context) ([]core.NamedObject, error) {
	s.record("player-list")
	return s.named(), s.err
}

func (s *stubAPI) Players(ctx context.Context, ids ...string) ([]core.Player, error) {
	s.record("players")
	s.ids = ids
	return []core.Player{}, s.err
}

func (s *stubAPI) TownList(ctx context.Context) ([]core.NamedObject, error) {
	s.record("town-list")
	return s.named(), s.err
}

func (s *stubAPI) Towns(ctx context.Context, ids ...string) ([]core.Town, error) {
	s.record("towns")
	s.ids = ids
	if s.err != nil {
		return nil, s.err
	}
	return []core.Town{{Name: "Paris"}}, nil
}

func (s *stubAPI) NationList(ctx context.Context) ([]core.NamedObject, error) {
	s.record("nation-list")
	return s.named(), s.err
}

func (s *stubAPI) Nations(ctx context.Context, ids ...string) ([]core.Nation, error) {
	s.record("nations")
	s.ids = ids
	return []core.Nation{}, s.err
}

func (s *stubAPI) QuarterList(ctx context.Context) ([]core.NamedObject, error) {
	s.record("quarter-list")
	return s.named(), s.err
}

func (s *stubAPI) Quarters(ctx context.Context, ids ...string) ([]core.Quarter, error) {
	s.record("quarters")
	s.ids = ids
	return []core.Quarter{}, s.err
}

func (s *stubAPI) Discord(ctx context.Context, kind core.DiscordKind, ids ...string) ([]core.DiscordLink, error) {
	s.record("discord")
	s.kind = kind
	s.ids = ids
	return []core.DiscordLink{}, s.err
}

func (s *stubAPI) Location(ctx context.Context, points ...core.Point) ([]core.LocationInfo, error) {
	s.record("location")
	s.points = points
	return []core.LocationInfo{}, s.err
}

func (s *stubAPI) NearbyTown(ctx context.Context, town string, radius float64) ([]core.NamedObject, error) {
	s.record("nearby-town")
	s.ids = []string{town}
	s.radius = radius
	return s.named(), s.err
}

func (s *stubAPI) NearbyCoord(ctx context.Context, point core.Point, radius float64) ([]core.NamedObject, error) {
	s.record("nearby-coord")
	s.point = point
	s.radius = radius
	return s.named(), s.err
}

func (s *stubAPI) Server() string               { return "aurora" }
func (s *stubAPI) RateLimit() engine.RateLimit { return s.limit }
func (s *stubAPI) InWindow() int               { return s.inWindow }

func newTestServer(api handlers.API) *Server {
	return New(config.ServerConfig{Host: "127.0.0.1"}, api)
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperrors.HTTPErrorResponse {
	t.Helper()
	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestServerUsesStandardErrorHandlers(t *testing.T) {
	srv := newTestServer(&stubAPI{})

	rec := get(t, srv, "/does-not-exist")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, apperrors.CodeNotFound, decodeError(t, rec).Error.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/towns", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAPIRoutesForwardQueries(t *testing.T) {
	api := &stubAPI{}
	srv := newTestServer(api)

	rec := get(t, srv, "/api/towns?query=Paris,%20London")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"Paris", "London"}, api.ids)

	var towns []core.Town
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&towns))
	require.Len(t, towns, 1)

	rec = get(t, srv, "/api/towns")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "town-list", api.calls[len(api.calls)-1])

	for _, path := range []string{"/api/players?query=a", "/api/nations?query=a", "/api/quarters?query=a"} {
		require.Equal(t, http.StatusOK, get(t, srv, path).Code, path)
	}

	rec = get(t, srv, "/api/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "1.21.1")
}

func TestNearbyAndLocationParameters(t *testing.T) {
	api := &stubAPI{}
	srv := newTestServer(api)

	require.Equal(t, http.StatusOK, get(t, srv, "/api/nearby/coordinate?x=12.6&z=-3.4&radius=5.7").Code)
	require.Equal(t, core.Point{12.6, -3.4}, api.point)
	require.InDelta(t, 5.7, api.radius, 1e-9)

	require.Equal(t, http.StatusOK, get(t, srv, "/api/nearby/town?town=Paris&radius=100").Code)
	require.Equal(t, []string{"Paris"}, api.ids)

	require.Equal(t, http.StatusOK, get(t, srv, "/api/location?query=1%3B2,3.5%3B-4").Code)
	require.Equal(t, []core.Point{{1, 2}, {3.5, -4}}, api.points)

	require.Equal(t, http.StatusOK, get(t, srv, "/api/discord?type=discord&query=1,2").Code)
	require.Equal(t, core.DiscordKindDiscord, api.kind)
}

func TestInvalidParametersReturnBadRequest(t *testing.T) {
	srv := newTestServer(&stubAPI{})

	for _, target := range []string{
		"/api/discord?type=steam&query=1",
		"/api/discord?type=discord",
		"/api/location",
		"/api/location?query=1%3B2%3B3",
		"/api/nearby/town?radius=5",
		"/api/nearby/town?town=Paris&radius=far",
		"/api/nearby/coordinate?x=1&radius=2",
		"/api/nearby/coordinate?x=NaN&z=0&radius=5",
		"/api/nearby/coordinate?x=0&z=0&radius=Inf",
		"/api/nearby/town?town=Paris&radius=NaN",
		"/api/location?query=1%3B-Inf",
	} {
		rec := get(t, srv, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		require.Equal(t, apperrors.CodeInvalidInput, decodeError(t, rec).Error.Code, target)
	}
}

func TestUpstreamErrorsMapToEnvelopes(t *testing.T) {
	api := &stubAPI{err: &client.StatusError{Resource: "towns", StatusCode: http.StatusGatewayTimeout}}
	srv := newTestServer(api)

	rec := get(t, srv, "/api/towns?query=Paris")
	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
	body := decodeError(t, rec)
	require.Equal(t, apperrors.CodeTimeout, body.Error.Code)
	require.NotEmpty(t, body.Error.RequestID)

	api.err = client.ErrInvalidRadius
	rec = get(t, srv, "/api/nearby/town?town=Paris&radius=-1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthReflectsLimiterSaturation(t *testing.T) {
	api := &stubAPI{limit: engine.RateLimit{Quota: engine.PerWindow(2), Window: time.Minute}}
	srv := newTestServer(api)

	rec := get(t, srv, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var health handlers.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Checks["rate_limiter"])

	api.inWindow = 2
	rec = get(t, srv, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	assert.Equal(t, "degraded", health.Status)

	require.Equal(t, http.StatusOK, get(t, srv, "/health/ready").Code)
	require.Equal(t, http.StatusOK, get(t, srv, "/health/live").Code)
}

func TestVersionIncludesUpstream(t *testing.T) {
	api := &stubAPI{limit: engine.RateLimit{Quota: engine.PerWindow(180), Window: time.Minute}}
	srv := newTestServer(api)

	rec := get(t, srv, "/version")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.VersionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "emcapi", resp.App.Name)
	assert.Equal(t, "aurora", resp.Upstream.Server)
	assert.Equal(t, "180", resp.Upstream.Quota)
	assert.Equal(t, "1m0s", resp.Upstream.Window)
}

func TestGatewaySharesOneSession(t *testing.T) {
	var hits int
	var mu sync.Mutex
	upstream := chi.NewRouter()
	upstream.Get("/v3/{server}/towns", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name": "Paris", "uuid": "2fd1c1a0-39e1-4c2f-8a3e-0b1b6b2b7c11"}]`))
	})
	ts := httptest.NewServer(upstream)
	t.Cleanup(ts.Close)

	opts := client.DefaultOptions()
	opts.BaseURL = ts.URL + "/v3"
	opts.RateLimit = engine.RateLimit{Quota: engine.PerWindow(10), Window: time.Hour}
	c, err := client.New(opts)
	require.NoError(t, err)

	srv := newTestServer(c)
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, get(t, srv, "/api/towns").Code)
	}

	require.Equal(t, 3, hits)
	require.Equal(t, 3, c.InWindow())
}

func TestOutOfRangeCoordinatesNeverReachUpstream(t *testing.T) {
	var hits int
	var mu sync.Mutex
	upstream := chi.NewRouter()
	upstream.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		_, _ = w.Write([]byte(`[]`))
	})
	ts := httptest.NewServer(upstream)
	t.Cleanup(ts.Close)

	opts := client.DefaultOptions()
	opts.BaseURL = ts.URL + "/v3"
	c, err := client.New(opts)
	require.NoError(t, err)
	srv := newTestServer(c)

	for _, target := range []string{
		"/api/nearby/coordinate?x=1e19&z=0&radius=5",
		"/api/nearby/coordinate?x=0&z=0&radius=1e12",
		"/api/nearby/town?town=Paris&radius=-0.7",
		"/api/location?query=0%3B0,-1e300%3B0",
	} {
		rec := get(t, srv, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		require.Equal(t, apperrors.CodeInvalidInput, decodeError(t, rec).Error.Code, target)
	}

	mu.Lock()
	defer mu.Unlock()
	require.Zero(t, hits)
}
