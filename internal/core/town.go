package core

// Town is a settlement owned by a mayor.
type Town struct {
	Name        string                   `json:"name" yaml:"name"`
	UUID        string                   `json:"uuid" yaml:"uuid"`
	Board       *string                  `json:"board" yaml:"board"`
	Founder     *string                  `json:"founder" yaml:"founder"`
	Wiki        *string                  `json:"wiki" yaml:"wiki"`
	Mayor       NamedObject              `json:"mayor" yaml:"mayor"`
	Nation      NamedObject              `json:"nation" yaml:"nation"`
	Timestamps  TownTimestamps           `json:"timestamps" yaml:"timestamps"`
	Status      TownStatus               `json:"status" yaml:"status"`
	Stats       TownStats                `json:"stats" yaml:"stats"`
	Perms       Perms                    `json:"perms" yaml:"perms"`
	Coordinates TownCoordinates          `json:"coordinates" yaml:"coordinates"`
	Residents   []NamedObject            `json:"residents" yaml:"residents"`
	Trusted     []NamedObject            `json:"trusted" yaml:"trusted"`
	Outlaws     []NamedObject            `json:"outlaws" yaml:"outlaws"`
	Quarters    []NamedObject            `json:"quarters" yaml:"quarters"`
	Ranks       map[string][]NamedObject `json:"ranks" yaml:"ranks"`
}

type TownTimestamps struct {
	Registered     *Millis `json:"registered" yaml:"registered"`
	JoinedNationAt *Millis `json:"joinedNationAt" yaml:"joinedNationAt"`
	RuinedAt       *Millis `json:"ruinedAt" yaml:"ruinedAt"`
}

type TownStatus struct {
	IsPublic           bool `json:"isPublic" yaml:"isPublic"`
	IsOpen             bool `json:"isOpen" yaml:"isOpen"`
	IsNeutral          bool `json:"isNeutral" yaml:"isNeutral"`
	IsCapital          bool `json:"isCapital" yaml:"isCapital"`
	IsOverClaimed      bool `json:"isOverClaimed" yaml:"isOverClaimed"`
	IsRuined           bool `json:"isRuined" yaml:"isRuined"`
	IsForSale          bool `json:"isForSale" yaml:"isForSale"`
	HasNation          bool `json:"hasNation" yaml:"hasNation"`
	HasOverclaimShield bool `json:"hasOverclaimShield" yaml:"hasOverclaimShield"`
	CanOutsidersSpawn  bool `json:"canOutsidersSpawn" yaml:"canOutsidersSpawn"`
}

type TownStats struct {
	NumTownBlocks int      `json:"numTownBlocks" yaml:"numTownBlocks"`
	MaxTownBlocks int      `json:"maxTownBlocks" yaml:"maxTownBlocks"`
	NumResidents  int      `json:"numResidents" yaml:"numResidents"`
	NumTrusted    int      `json:"numTrusted" yaml:"numTrusted"`
	NumOutlaws    int      `json:"numOutlaws" yaml:"numOutlaws"`
	Balance       float64  `json:"balance" yaml:"balance"`
	ForSalePrice  *float64 `json:"forSalePrice" yaml:"forSalePrice"`
}

// TownCoordinates holds spawn and claimed chunk positions as [x, z] pairs.
type TownCoordinates struct {
	Spawn      Spawn    `json:"spawn" yaml:"spawn"`
	HomeBlock  []int    `json:"homeBlock" yaml:"homeBlock"`
	TownBlocks [][2]int `json:"townBlocks" yaml:"townBlocks"`
}
