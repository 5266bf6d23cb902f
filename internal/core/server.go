package core

// ServerInfo is the payload of the server root endpoint.
type ServerInfo struct {
	Version    string           `json:"version" yaml:"version"`
	MoonPhase  string           `json:"moonPhase" yaml:"moonPhase"`
	Timestamps ServerTimestamps `json:"timestamps" yaml:"timestamps"`
	Status     ServerStatus     `json:"status" yaml:"status"`
	Stats      ServerStats      `json:"stats" yaml:"stats"`
	VoteParty  VoteParty        `json:"voteParty" yaml:"voteParty"`
}

// ServerTimestamps holds in-game clock values (ticks, not epoch).
type ServerTimestamps struct {
	NewDayTime      int64 `json:"newDayTime" yaml:"newDayTime"`
	ServerTimeOfDay int64 `json:"serverTimeOfDay" yaml:"serverTimeOfDay"`
}

// ServerStatus reports world weather.
type ServerStatus struct {
	HasStorm     bool `json:"hasStorm" yaml:"hasStorm"`
	IsThundering bool `json:"isThundering" yaml:"isThundering"`
}

// ServerStats are population and claim counters.
type ServerStats struct {
	Time             int64 `json:"time" yaml:"time"`
	FullTime         int64 `json:"fullTime" yaml:"fullTime"`
	MaxPlayers       int   `json:"maxPlayers" yaml:"maxPlayers"`
	NumOnlinePlayers int   `json:"numOnlinePlayers" yaml:"numOnlinePlayers"`
	NumOnlineNomads  int   `json:"numOnlineNomads" yaml:"numOnlineNomads"`
	NumResidents     int   `json:"numResidents" yaml:"numResidents"`
	NumNomads        int   `json:"numNomads" yaml:"numNomads"`
	NumTowns         int   `json:"numTowns" yaml:"numTowns"`
	NumTownBlocks    int   `json:"numTownBlocks" yaml:"numTownBlocks"`
	NumNations       int   `json:"numNations" yaml:"numNations"`
	NumQuarters      int   `json:"numQuarters" yaml:"numQuarters"`
	NumCuboids       int   `json:"numCuboids" yaml:"numCuboids"`
}

// VoteParty tracks progress toward the next vote party.
type VoteParty struct {
	Target       int `json:"target" yaml:"target"`
	NumRemaining int `json:"numRemaining" yaml:"numRemaining"`
}
