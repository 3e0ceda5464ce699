package npc

import "github.com/nathoo/sotftools/engine/save"

// Status is the per-signal view of one character.
type Status struct {
	TypeID uint32

	HasFlag  bool
	FlagDead bool

	HasActor  bool
	ActorDead bool
	State     uint32
	HasStats  bool
	Health    float32

	HasKillStat  bool
	PlayerKilled int32
}

// Inspect collects every death signal for typeID.
func Inspect(s *save.Save, typeID uint32) Status {
	st := Status{TypeID: typeID}

	if flag := deathFlag(s, typeID); flag != nil {
		st.HasFlag = true
		st.FlagDead = *flag
	}
	if a, ok := s.FindActor(typeID); ok {
		st.HasActor = true
		st.ActorDead = actorDead(a)
		st.State = a.State
		if a.Stats != nil {
			st.HasStats = true
			st.Health = float32(a.Stats.Health)
		}
	}
	if k, ok := s.FindKillStat(typeID); ok {
		st.HasKillStat = true
		st.PlayerKilled = k.PlayerKilled
	}
	return st
}

// KillStatDead reports the kill stat signal.
func (st Status) KillStatDead() bool {
	return st.HasKillStat && st.PlayerKilled != 0
}

// Dead matches IsDead.
func (st Status) Dead() bool {
	return st.FlagDead || st.ActorDead || st.KillStatDead()
}

// Inconsistent reports whether the signals that exist disagree, e.g. the flag
// says alive while the kill stat says killed.
func (st Status) Inconsistent() bool {
	var alive, dead int
	count := func(present, isDead bool) {
		switch {
		case !present:
		case isDead:
			dead++
		default:
			alive++
		}
	}
	count(st.HasFlag, st.FlagDead)
	count(st.HasActor, st.ActorDead)
	count(st.HasKillStat, st.KillStatDead())
	return alive > 0 && dead > 0
}
