package core

// Nation groups towns under a king and a capital.
type Nation struct {
	Name          string                   `json:"name" yaml:"name"`
	UUID          string                   `json:"uuid" yaml:"uuid"`
	Board         *string                  `json:"board" yaml:"board"`
	DynmapColour  *string                  `json:"dynmapColour" yaml:"dynmapColour"`
	DynmapOutline *string                  `json:"dynmapOutline" yaml:"dynmapOutline"`
	Wiki          *string                  `json:"wiki" yaml:"wiki"`
	King          NamedObject              `json:"king" yaml:"king"`
	Capital       NamedObject              `json:"capital" yaml:"capital"`
	Timestamps    NationTimestamps         `json:"timestamps" yaml:"timestamps"`
	Status        NationStatus             `json:"status" yaml:"status"`
	Stats         NationStats              `json:"stats" yaml:"stats"`
	Coordinates   NationCoordinates        `json:"coordinates" yaml:"coordinates"`
	Residents     []NamedObject            `json:"residents" yaml:"residents"`
	Towns         []NamedObject            `json:"towns" yaml:"towns"`
	Allies        []NamedObject            `json:"allies" yaml:"allies"`
	Enemies       []NamedObject            `json:"enemies" yaml:"enemies"`
	Sanctioned    []NamedObject            `json:"sanctioned" yaml:"sanctioned"`
	Ranks         map[string][]NamedObject `json:"ranks" yaml:"ranks"`
}

type NationTimestamps struct {
	Registered *Millis `json:"registered" yaml:"registered"`
}

type NationStatus struct {
	IsPublic  bool `json:"isPublic" yaml:"isPublic"`
	IsOpen    bool `json:"isOpen" yaml:"isOpen"`
	IsNeutral bool `json:"isNeutral" yaml:"isNeutral"`
}

type NationStats struct {
	NumTownBlocks int     `json:"numTownBlocks" yaml:"numTownBlocks"`
	NumResidents  int     `json:"numResidents" yaml:"numResidents"`
	NumTowns      int     `json:"numTowns" yaml:"numTowns"`
	NumAllies     int     `json:"numAllies" yaml:"numAllies"`
	NumEnemies    int     `json:"numEnemies" yaml:"numEnemies"`
	Balance       float64 `json:"balance" yaml:"balance"`
}

type NationCoordinates struct {
	Spawn Spawn `json:"spawn" yaml:"spawn"`
}
