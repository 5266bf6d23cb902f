package core

import (
	"strings"
	"time"
)

// NamedObject is a minimal reference to an entity. Both fields are nil when
// the referenced entity does not exist (for example a town without a nation).
type NamedObject struct {
	Name *string `json:"name" yaml:"name"`
	UUID *string `json:"uuid" yaml:"uuid"`
}

// Exists reports whether the reference points at an entity.
func (n NamedObject) Exists() bool {
	return n.Name != nil || n.UUID != nil
}

// String returns the name, the uuid, or an empty string.
func (n NamedObject) String() string {
	if n.Name != nil {
		return *n.Name
	}
	if n.UUID != nil {
		return *n.UUID
	}
	return ""
}

// Millis is a Unix epoch timestamp in milliseconds.
type Millis int64

// Time converts the timestamp to UTC time.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m)).UTC()
}

// MillisTime converts a nullable timestamp. It returns nil for nil input.
func MillisTime(m *Millis) *time.Time {
	if m == nil {
		return nil
	}
	t := m.Time()
	return &t
}

// Spawn is a world position with view direction.
type Spawn struct {
	World *string  `json:"world" yaml:"world"`
	X     *float64 `json:"x" yaml:"x"`
	Y     *float64 `json:"y" yaml:"y"`
	Z     *float64 `json:"z" yaml:"z"`
	Pitch *float64 `json:"pitch" yaml:"pitch"`
	Yaw   *float64 `json:"yaw" yaml:"yaw"`
}

// PermFlags are the toggleable town/plot flags.
type PermFlags struct {
	PvP       bool `json:"pvp" yaml:"pvp"`
	Explosion bool `json:"explosion" yaml:"explosion"`
	Fire      bool `json:"fire" yaml:"fire"`
	Mobs      bool `json:"mobs" yaml:"mobs"`
}

// Perms lists per-group permissions. Each slice holds four booleans in the
// order resident, nation, ally, outsider.
type Perms struct {
	Build   []bool    `json:"build" yaml:"build"`
	Destroy []bool    `json:"destroy" yaml:"destroy"`
	Switch  []bool    `json:"switch" yaml:"switch"`
	ItemUse []bool    `json:"itemUse" yaml:"itemUse"`
	Flags   PermFlags `json:"flags" yaml:"flags"`
}

// Kind classifies a query identifier.
type Kind string

const (
	KindName Kind = "name"
	KindUUID Kind = "uuid"
)

// StringValue dereferences a nullable string.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// JoinNames renders a list of references as a comma separated string.
func JoinNames(objs []NamedObject) string {
	names := make([]string, 0, len(objs))
	for _, obj := range objs {
		if value := obj.String(); value != "" {
			names = append(names, value)
		}
	}
	return strings.Join(names, ", ")
}
