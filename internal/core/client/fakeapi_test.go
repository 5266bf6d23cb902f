package client

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
)

const (
	parisUUID  = "2fd1c1a0-39e1-4c2f-8a3e-0b1b6b2b7c11"
	franceUUID = "7a0bb6d2-3a43-4a0a-b0a6-7f0e1e8f2f22"
)

const serverInfoJSON = `{
  "version": "1.21.1",
  "moonPhase": "WAXING_CRESCENT",
  "timestamps": {"newDayTime": 43200, "serverTimeOfDay": 2779},
  "status": {"hasStorm": false, "isThundering": false},
  "stats": {"time": 2779, "fullTime": 190000, "maxPlayers": 500, "numOnlinePlayers": 212,
            "numOnlineNomads": 30, "numResidents": 41000, "numNomads": 90000, "numTowns": 1500,
            "numTownBlocks": 200000, "numNations": 310, "numQuarters": 5000, "numCuboids": 6000},
  "voteParty": {"target": 5000, "numRemaining": 1234}
}`

const parisJSON = `{
  "name": "Paris", "uuid": "` + parisUUID + `", "board": "Bienvenue", "founder": "Marianne", "wiki": null,
  "mayor": {"name": "Marianne", "uuid": "5c1d0e4e-8f4e-4d2c-9e0f-1a2b3c4d5e6f"},
  "nation": {"name": "France", "uuid": "` + franceUUID + `"},
  "timestamps": {"registered": 1700000000000, "joinedNationAt": 1700000500000, "ruinedAt": null},
  "status": {"isPublic": true, "isOpen": true, "isCapital": true, "hasNation": true},
  "stats": {"numTownBlocks": 120, "maxTownBlocks": 300, "numResidents": 12, "balance": 5400.5, "forSalePrice": null},
  "perms": {"build": [true, false, false, false], "destroy": [true, false, false, false],
            "switch": [true, true, false, false], "itemUse": [true, true, false, false],
            "flags": {"pvp": false, "explosion": false, "fire": false, "mobs": true}},
  "coordinates": {"spawn": {"world": "world", "x": 100.5, "y": 64, "z": -200.5, "pitch": 0, "yaw": 90},
                  "homeBlock": [6, -13], "townBlocks": [[6, -13], [7, -13]]},
  "residents": [{"name": "Marianne", "uuid": "5c1d0e4e-8f4e-4d2c-9e0f-1a2b3c4d5e6f"}],
  "trusted": [], "outlaws": [], "quarters": [],
  "ranks": {"Councillor": []}
}`

const ruinJSON = `{
  "name": "Ruin", "uuid": "00000000-0000-0000-0000-000000000001",
  "mayor": {"name": null, "uuid": null},
  "nation": {"name": null, "uuid": null},
  "timestamps": {"registered": 1600000000000, "joinedNationAt": null, "ruinedAt": 1690000000000},
  "status": {"isRuined": true}
}`

// fakeAPI serves a small slice of the EarthMC API.
type fakeAPI struct {
	*httptest.Server

	hits     atomic.Int32
	status   atomic.Int32
	mu       sync.Mutex
	lastPath string
	lastQ    url.Values
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			api.hits.Add(1)
			api.mu.Lock()
			api.lastPath = req.URL.Path
			api.lastQ = req.URL.Query()
			api.mu.Unlock()

			if status := int(api.status.Load()); status != 0 {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"error":"upstream"}`))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			next.ServeHTTP(w, req)
		})
	})

	r.Route("/v3/{server}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(serverInfoJSON))
		})
		r.Get("/towns", func(w http.ResponseWriter, req *http.Request) {
			query := req.URL.Query().Get("query")
			if query == "" {
				_, _ = w.Write([]byte(`[{"name":"Paris","uuid":"` + parisUUID + `"},{"name":"Ruin","uuid":null}]`))
				return
			}
			found := []string{}
			for _, id := range strings.Split(query, ",") {
				switch id {
				case "Paris", parisUUID:
					found = append(found, parisJSON)
				case "Ruin":
					found = append(found, ruinJSON)
				}
			}
			_, _ = w.Write([]byte("[" + strings.Join(found, ",") + "]"))
		})
		r.Get("/players", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})
		r.Get("/nations", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`{"not": "an array"}`))
		})
		r.Get("/discord", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`[{"id": "160374716928884736", "uuid": "5c1d0e4e-8f4e-4d2c-9e0f-1a2b3c4d5e6f"}, {"id": null, "uuid": null}]`))
		})
		r.Get("/location", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`[{"location": {"x": 12, "z": -3}, "isWilderness": false,
				"town": {"name": "Paris", "uuid": "` + parisUUID + `"},
				"nation": {"name": "France", "uuid": "` + franceUUID + `"}}]`))
		})
		r.Get("/nearby/town", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`[{"name": "Lyon", "uuid": "11111111-1111-1111-1111-111111111111"}]`))
		})
		r.Get("/nearby/coordinate", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`[{"name": "Paris", "uuid": "` + parisUUID + `"}]`))
		})
	})

	api.Server = httptest.NewServer(r)
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) last() (string, url.Values) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastPath, a.lastQ
}

func (a *fakeAPI) client(t *testing.T, mutate ...func(*Options)) *Client {
	t.Helper()
	opts := DefaultOptions()
	opts.BaseURL = a.URL + "/v3"
	opts.HTTPClient = a.Server.Client()
	for _, fn := range mutate {
		fn(&opts)
	}
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}
