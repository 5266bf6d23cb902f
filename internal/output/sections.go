package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/emcapi/emcapi/internal/core"
)

// section is a titled grid rendered by the table and markdown formatters.
type section struct {
	Title  string
	Header []string
	Rows   [][]string
	Footer string
}

func sectionsFor(value any) ([]section, error) {
	switch v := value.(type) {
	case *core.ServerInfo:
		if v == nil {
			return nil, nil
		}
		return []section{serverSection(*v)}, nil
	case core.ServerInfo:
		return []section{serverSection(v)}, nil
	case []core.NamedObject:
		return []section{namedSection(v)}, nil
	case []core.Player:
		return []section{playerSection(v)}, nil
	case []core.Town:
		return []section{townSection(v)}, nil
	case []core.Nation:
		return []section{nationSection(v)}, nil
	case []core.Quarter:
		return []section{quarterSection(v)}, nil
	case []core.DiscordLink:
		return []section{discordSection(v)}, nil
	case []core.LocationInfo:
		return []section{locationSection(v)}, nil
	default:
		return nil, fmt.Errorf("no tabular layout for %T", value)
	}
}

func serverSection(info core.ServerInfo) section {
	s := info.Stats
	return section{
		Title:  "Server " + info.Version,
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"Moon phase", info.MoonPhase},
			{"Online", fmt.Sprintf("%d/%d (%d nomads)", s.NumOnlinePlayers, s.MaxPlayers, s.NumOnlineNomads)},
			{"Residents", strconv.Itoa(s.NumResidents)},
			{"Nomads", strconv.Itoa(s.NumNomads)},
			{"Towns", strconv.Itoa(s.NumTowns)},
			{"Nations", strconv.Itoa(s.NumNations)},
			{"Town blocks", strconv.Itoa(s.NumTownBlocks)},
			{"Quarters", fmt.Sprintf("%d (%d cuboids)", s.NumQuarters, s.NumCuboids)},
			{"Weather", weather(info.Status)},
			{"Vote party", fmt.Sprintf("%d of %d remaining", info.VoteParty.NumRemaining, info.VoteParty.Target)},
		},
	}
}

func namedSection(items []core.NamedObject) section {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{core.StringValue(item.Name), core.StringValue(item.UUID)})
	}
	return section{Header: []string{"Name", "UUID"}, Rows: rows, Footer: count(len(items))}
}

func playerSection(players []core.Player) section {
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{
			p.Name,
			p.Town.String(),
			p.Nation.String(),
			yesNo(p.Status.IsOnline),
			money(p.Stats.Balance),
			timestamp(p.Timestamps.Registered),
			timestamp(p.Timestamps.LastOnline),
		})
	}
	return section{
		Header: []string{"Name", "Town", "Nation", "Online", "Balance", "Registered", "Last online"},
		Rows:   rows,
		Footer: count(len(players)),
	}
}

func townSection(towns []core.Town) section {
	rows := make([][]string, 0, len(towns))
	for _, t := range towns {
		rows = append(rows, []string{
			t.Name,
			t.Mayor.String(),
			t.Nation.String(),
			strconv.Itoa(t.Stats.NumResidents),
			fmt.Sprintf("%d/%d", t.Stats.NumTownBlocks, t.Stats.MaxTownBlocks),
			money(t.Stats.Balance),
			townFlags(t.Status),
			timestamp(t.Timestamps.Registered),
		})
	}
	return section{
		Header: []string{"Name", "Mayor", "Nation", "Residents", "Chunks", "Balance", "Status", "Founded"},
		Rows:   rows,
		Footer: count(len(towns)),
	}
}

func nationSection(nations []core.Nation) section {
	rows := make([][]string, 0, len(nations))
	for _, n := range nations {
		rows = append(rows, []string{
			n.Name,
			n.King.String(),
			n.Capital.String(),
			strconv.Itoa(n.Stats.NumTowns),
			strconv.Itoa(n.Stats.NumResidents),
			money(n.Stats.Balance),
			fmt.Sprintf("%d/%d", n.Stats.NumAllies, n.Stats.NumEnemies),
			timestamp(n.Timestamps.Registered),
		})
	}
	return section{
		Header: []string{"Name", "King", "Capital", "Towns", "Residents", "Balance", "Allies/Enemies", "Founded"},
		Rows:   rows,
		Footer: count(len(nations)),
	}
}

func quarterSection(quarters []core.Quarter) section {
	rows := make([][]string, 0, len(quarters))
	for _, q := range quarters {
		price := "-"
		if q.Stats.Price != nil {
			price = money(*q.Stats.Price)
		}
		rows = append(rows, []string{
			q.UUID,
			q.Type,
			q.Town.String(),
			q.Owner.String(),
			price,
			strconv.Itoa(q.Stats.Volume),
			strconv.Itoa(len(q.Cuboids)),
			dash(core.JoinNames(q.Trusted)),
		})
	}
	return section{
		Header: []string{"UUID", "Type", "Town", "Owner", "Price", "Volume", "Cuboids", "Trusted"},
		Rows:   rows,
		Footer: count(len(quarters)),
	}
}

func discordSection(links []core.DiscordLink) section {
	rows := make([][]string, 0, len(links))
	for _, link := range links {
		rows = append(rows, []string{dash(core.StringValue(link.ID)), dash(core.StringValue(link.UUID))})
	}
	return section{Header: []string{"Discord ID", "Minecraft UUID"}, Rows: rows, Footer: count(len(links))}
}

func locationSection(locations []core.LocationInfo) section {
	rows := make([][]string, 0, len(locations))
	for _, loc := range locations {
		rows = append(rows, []string{
			fmt.Sprintf("%d, %d", loc.Location.X, loc.Location.Z),
			yesNo(loc.IsWilderness),
			dash(loc.Town.String()),
			dash(loc.Nation.String()),
		})
	}
	return section{Header: []string{"X, Z", "Wilderness", "Town", "Nation"}, Rows: rows}
}

func weather(status core.ServerStatus) string {
	switch {
	case status.IsThundering:
		return "thunder"
	case status.HasStorm:
		return "storm"
	default:
		return "clear"
	}
}

func townFlags(status core.TownStatus) string {
	flags := map[string]bool{
		"capital":   status.IsCapital,
		"open":      status.IsOpen,
		"public":    status.IsPublic,
		"neutral":   status.IsNeutral,
		"ruined":    status.IsRuined,
		"for sale":  status.IsForSale,
		"overclaim": status.IsOverClaimed,
	}
	set := make([]string, 0, len(flags))
	for name, on := range flags {
		if on {
			set = append(set, name)
		}
	}
	sort.Strings(set)
	return strings.Join(set, ", ")
}

func timestamp(m *core.Millis) string {
	t := core.MillisTime(m)
	if t == nil {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func count(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}
