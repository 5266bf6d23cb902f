package core

// Quarter is a sub-plot of a town made of cuboids.
type Quarter struct {
	UUID       string            `json:"uuid" yaml:"uuid"`
	Type       string            `json:"type" yaml:"type"`
	Owner      NamedObject       `json:"owner" yaml:"owner"`
	Town       NamedObject       `json:"town" yaml:"town"`
	Timestamps QuarterTimestamps `json:"timestamps" yaml:"timestamps"`
	Status     QuarterStatus     `json:"status" yaml:"status"`
	Stats      QuarterStats      `json:"stats" yaml:"stats"`
	Colour     []int             `json:"colour" yaml:"colour"`
	Trusted    []NamedObject     `json:"trusted" yaml:"trusted"`
	Cuboids    []Cuboid          `json:"cuboids" yaml:"cuboids"`
}

type QuarterTimestamps struct {
	Registered *Millis `json:"registered" yaml:"registered"`
	ClaimedAt  *Millis `json:"claimedAt" yaml:"claimedAt"`
}

type QuarterStatus struct {
	IsEmbassy bool `json:"isEmbassy" yaml:"isEmbassy"`
}

type QuarterStats struct {
	Price        *float64 `json:"price" yaml:"price"`
	Volume       int      `json:"volume" yaml:"volume"`
	NumCuboids   int      `json:"numCuboids" yaml:"numCuboids"`
	ParticleSize *float64 `json:"particleSize" yaml:"particleSize"`
}

// Cuboid is an axis-aligned box given by two corners as [x, y, z].
type Cuboid struct {
	Pos1 [3]int `json:"pos1" yaml:"pos1"`
	Pos2 [3]int `json:"pos2" yaml:"pos2"`
}
