package core

import "strings"

// DiscordKind selects which side of a discord link is being queried.
type DiscordKind string

const (
	DiscordKindDiscord   DiscordKind = "discord"
	DiscordKindMinecraft DiscordKind = "minecraft"
)

// ParseDiscordKind normalizes a discord lookup kind. Empty defaults to minecraft.
func ParseDiscordKind(value string) (DiscordKind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(DiscordKindMinecraft):
		return DiscordKindMinecraft, true
	case string(DiscordKindDiscord):
		return DiscordKindDiscord, true
	default:
		return "", false
	}
}

// DiscordLink pairs a discord account id with a minecraft uuid.
// Either side is nil when no link exists.
type DiscordLink struct {
	ID   *string `json:"id" yaml:"id"`
	UUID *string `json:"uuid" yaml:"uuid"`
}

// Point is an [x, z] world coordinate.
type Point [2]float64

// LocationInfo describes what occupies a world coordinate.
type LocationInfo struct {
	Location     LocationPoint `json:"location" yaml:"location"`
	IsWilderness bool          `json:"isWilderness" yaml:"isWilderness"`
	Town         NamedObject   `json:"town" yaml:"town"`
	Nation       NamedObject   `json:"nation" yaml:"nation"`
}

type LocationPoint struct {
	X int `json:"x" yaml:"x"`
	Z int `json:"z" yaml:"z"`
}
