// Package npc answers "is this companion dead?" and brings companions back.
// A companion's death is recorded in three places that are stored
// independently: a story flag in the game state, the actor row in the world
// simulation, and the kill stat row for the same type id.
package npc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nathoo/sotftools/engine/record"
	"github.com/nathoo/sotftools/engine/save"
)

// Type ids of the revivable companions.
const (
	KelvinTypeID   uint32 = 9
	VirginiaTypeID uint32 = 10
)

// Character describes a companion the editor can revive.
type Character struct {
	Name          string
	TypeID        uint32
	RevivalHealth float32
	// flag points at the character's death flag in the game state.
	flag func(*save.GameStateInner) *bool
}

// Roster lists the revivable companions in display order.
var Roster = []Character{
	{
		Name:          "Kelvin",
		TypeID:        KelvinTypeID,
		RevivalHealth: 100,
		flag:          func(g *save.GameStateInner) *bool { return &g.IsRobbyDead },
	},
	{
		Name:          "Virginia",
		TypeID:        VirginiaTypeID,
		RevivalHealth: 120,
		flag:          func(g *save.GameStateInner) *bool { return &g.IsVirginiaDead },
	},
}

// Lookup finds a roster character by name (case-insensitive) or type id.
func Lookup(nameOrID string) (Character, error) {
	for _, c := range Roster {
		if strings.EqualFold(c.Name, nameOrID) {
			return c, nil
		}
	}
	if id, err := strconv.ParseUint(nameOrID, 10, 32); err == nil {
		if c, ok := ByTypeID(uint32(id)); ok {
			return c, nil
		}
	}
	return Character{}, fmt.Errorf("unknown character %q", nameOrID)
}

// ByTypeID returns the roster character with typeID.
func ByTypeID(typeID uint32) (Character, bool) {
	for _, c := range Roster {
		if c.TypeID == typeID {
			return c, true
		}
	}
	return Character{}, false
}

// ValidateHealth rejects revival healths the game cannot use: NaN reads as
// dead again and infinities cannot be written.
func ValidateHealth(health float32) error {
	h := float64(health)
	if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		return fmt.Errorf("health must be a positive finite number, got %v", health)
	}
	return nil
}

// deathFlag returns the game state flag for typeID, or nil when the type has
// no story flag.
func deathFlag(s *save.Save, typeID uint32) *bool {
	c, ok := ByTypeID(typeID)
	if !ok {
		return nil
	}
	return c.flag(s.State())
}

// actorDead reports whether an actor row reads as dead. Missing stats count
// as alive.
func actorDead(a *save.Actor) bool {
	if a.State == save.ActorStateDead {
		return true
	}
	if a.Stats == nil {
		return false
	}
	return a.Stats.Health.IsNaN() || a.Stats.Health <= 0
}

// IsDead reports whether any signal marks typeID as dead. Signals are checked
// flag, actor, kill stat; the first hit wins. Missing rows are not deaths.
func IsDead(s *save.Save, typeID uint32) bool {
	if flag := deathFlag(s, typeID); flag != nil && *flag {
		return true
	}
	if a, ok := s.FindActor(typeID); ok && actorDead(a) {
		return true
	}
	if k, ok := s.FindKillStat(typeID); ok && k.PlayerKilled != 0 {
		return true
	}
	return false
}

// Resurrect clears every death signal for typeID: the flag is reset, the
// actor is set active with health (when it has stats), and the kill stat is
// zeroed. Rows that do not exist are skipped.
func Resurrect(s *save.Save, typeID uint32, health float32) {
	if flag := deathFlag(s, typeID); flag != nil {
		*flag = false
	}

	if a, ok := s.FindActor(typeID); ok {
		a.State = save.ActorStateActive
		if a.Stats != nil {
			a.Stats.Health = record.Float32(health)
		}
	}

	if k, ok := s.FindKillStat(typeID); ok {
		k.PlayerKilled = 0
	}
}
