package core

// Player is a resident or nomad.
type Player struct {
	Name          string           `json:"name" yaml:"name"`
	UUID          string           `json:"uuid" yaml:"uuid"`
	Title         *string          `json:"title" yaml:"title"`
	Surname       *string          `json:"surname" yaml:"surname"`
	FormattedName string           `json:"formattedName" yaml:"formattedName"`
	About         *string          `json:"about" yaml:"about"`
	Town          NamedObject      `json:"town" yaml:"town"`
	Nation        NamedObject      `json:"nation" yaml:"nation"`
	Timestamps    PlayerTimestamps `json:"timestamps" yaml:"timestamps"`
	Status        PlayerStatus     `json:"status" yaml:"status"`
	Stats         PlayerStats      `json:"stats" yaml:"stats"`
	Perms         Perms            `json:"perms" yaml:"perms"`
	Ranks         PlayerRanks      `json:"ranks" yaml:"ranks"`
	Friends       []NamedObject    `json:"friends" yaml:"friends"`
}

// PlayerTimestamps are epoch milliseconds; nil when never happened.
type PlayerTimestamps struct {
	Registered   *Millis `json:"registered" yaml:"registered"`
	JoinedTownAt *Millis `json:"joinedTownAt" yaml:"joinedTownAt"`
	LastOnline   *Millis `json:"lastOnline" yaml:"lastOnline"`
}

type PlayerStatus struct {
	IsOnline  bool `json:"isOnline" yaml:"isOnline"`
	IsNPC     bool `json:"isNPC" yaml:"isNPC"`
	IsMayor   bool `json:"isMayor" yaml:"isMayor"`
	IsKing    bool `json:"isKing" yaml:"isKing"`
	HasTown   bool `json:"hasTown" yaml:"hasTown"`
	HasNation bool `json:"hasNation" yaml:"hasNation"`
}

type PlayerStats struct {
	Balance    float64 `json:"balance" yaml:"balance"`
	NumFriends int     `json:"numFriends" yaml:"numFriends"`
}

type PlayerRanks struct {
	TownRanks   []string `json:"townRanks" yaml:"townRanks"`
	NationRanks []string `json:"nationRanks" yaml:"nationRanks"`
}
