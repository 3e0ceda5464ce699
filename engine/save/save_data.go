package save

import "github.com/nathoo/sotftools/engine/record"

// SaveData is the Data object of SaveData.json.
type SaveData struct {
	VailWorldSim record.Embedded[VailWorldSim]
	Extra        record.Residual
}

func (s *SaveData) fields() []record.Field {
	return []record.Field{
		record.F("VailWorldSim", &s.VailWorldSim),
	}
}

func (s SaveData) MarshalJSON() ([]byte, error) {
	return record.Encode(s.fields(), s.Extra)
}

func (s *SaveData) UnmarshalJSON(data []byte) error {
	*s = SaveData{}
	return record.Decode(data, s.fields(), &s.Extra)
}

// VailWorldSim is the embedded world simulation: every simulated actor,
// per-type kill counts, and player statistics.
type VailWorldSim struct {
	Actors        []Actor
	KillStatsList []KillStat
	PlayerStats   PlayerStats
	Extra         record.Residual
}

func (v *VailWorldSim) fields() []record.Field {
	return []record.Field{
		record.Opt("Actors", &v.Actors),
		record.Opt("KillStatsList", &v.KillStatsList),
		record.F("PlayerStats", &v.PlayerStats),
	}
}

func (v VailWorldSim) MarshalJSON() ([]byte, error) {
	return record.Encode(v.fields(), v.Extra)
}

// UnmarshalJSON decodes the world. Absent lists load as empty; lists written
// as null stay nil and are written back as null.
func (v *VailWorldSim) UnmarshalJSON(data []byte) error {
	*v = VailWorldSim{Actors: []Actor{}, KillStatsList: []KillStat{}}
	return record.Decode(data, v.fields(), &v.Extra)
}

// Actor states used by the world simulation.
const (
	ActorStateActive uint32 = 2
	ActorStateDead   uint32 = 6
)

// Actor is one simulated character. TypeID identifies the character across
// Actors and KillStatsList.
type Actor struct {
	TypeID uint32
	State  uint32
	Stats  *ActorStats
	Extra  record.Residual
}

func (a *Actor) fields() []record.Field {
	return []record.Field{
		record.F("TypeId", &a.TypeID),
		record.F("State", &a.State),
		record.Opt("Stats", &a.Stats),
	}
}

func (a Actor) MarshalJSON() ([]byte, error) {
	return record.Encode(a.fields(), a.Extra)
}

func (a *Actor) UnmarshalJSON(data []byte) error {
	*a = Actor{}
	return record.Decode(data, a.fields(), &a.Extra)
}

// ActorStats holds an actor's vitals. Health may be NaN in the file.
type ActorStats struct {
	Health record.Float32
	Extra  record.Residual
}

func (s *ActorStats) fields() []record.Field {
	return []record.Field{
		record.F("Health", &s.Health),
	}
}

func (s ActorStats) MarshalJSON() ([]byte, error) {
	return record.Encode(s.fields(), s.Extra)
}

func (s *ActorStats) UnmarshalJSON(data []byte) error {
	*s = ActorStats{}
	return record.Decode(data, s.fields(), &s.Extra)
}

// KillStat records whether the player killed characters of a type.
type KillStat struct {
	TypeID       uint32
	PlayerKilled int32
	Extra        record.Residual
}

func (k *KillStat) fields() []record.Field {
	return []record.Field{
		record.F("TypeId", &k.TypeID),
		record.F("PlayerKilled", &k.PlayerKilled),
	}
}

func (k KillStat) MarshalJSON() ([]byte, error) {
	return record.Encode(k.fields(), k.Extra)
}

func (k *KillStat) UnmarshalJSON(data []byte) error {
	*k = KillStat{}
	return record.Decode(data, k.fields(), &k.Extra)
}

// PlayerStats holds the player's tracked counters.
type PlayerStats struct {
	CutTrees             int32
	SeenInVillageCount   int32
	LastSightedTimeHours record.Float32
	Extra                record.Residual
}

func (p *PlayerStats) fields() []record.Field {
	return []record.Field{
		record.F("CutTrees", &p.CutTrees),
		record.F("SeenInVillageCount", &p.SeenInVillageCount),
		record.F("LastSightedTimeHours", &p.LastSightedTimeHours),
	}
}

func (p PlayerStats) MarshalJSON() ([]byte, error) {
	return record.Encode(p.fields(), p.Extra)
}

func (p *PlayerStats) UnmarshalJSON(data []byte) error {
	*p = PlayerStats{}
	return record.Decode(data, p.fields(), &p.Extra)
}
