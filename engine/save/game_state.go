package save

import "github.com/nathoo/sotftools/engine/record"

// GameState is the Data object of GameStateSaveData.json.
type GameState struct {
	GameState record.Embedded[GameStateInner]
	Extra     record.Residual
}

func (g *GameState) fields() []record.Field {
	return []record.Field{
		record.F("GameState", &g.GameState),
	}
}

func (g GameState) MarshalJSON() ([]byte, error) {
	return record.Encode(g.fields(), g.Extra)
}

func (g *GameState) UnmarshalJSON(data []byte) error {
	*g = GameState{}
	return record.Decode(data, g.fields(), &g.Extra)
}

// GameStateInner is the embedded game state document: clock, mode, and the
// story flags the editor touches.
type GameStateInner struct {
	GameType string

	GameDays         int32
	GameHours        int32
	GameMinutes      int32
	GameSeconds      int32
	GameMilliseconds int32

	IsRobbyDead       bool
	IsVirginiaDead    bool
	CoreGameCompleted bool
	EscapedIsland     bool
	StayedOnIsland    bool

	Extra record.Residual
}

func (g *GameStateInner) fields() []record.Field {
	return []record.Field{
		record.F("GameType", &g.GameType),
		record.F("GameDays", &g.GameDays),
		record.F("GameHours", &g.GameHours),
		record.F("GameMinutes", &g.GameMinutes),
		record.F("GameSeconds", &g.GameSeconds),
		record.F("GameMilliseconds", &g.GameMilliseconds),
		record.F("IsRobbyDead", &g.IsRobbyDead),
		record.F("IsVirginiaDead", &g.IsVirginiaDead),
		record.F("CoreGameCompleted", &g.CoreGameCompleted),
		record.F("EscapedIsland", &g.EscapedIsland),
		record.F("StayedOnIsland", &g.StayedOnIsland),
	}
}

func (g GameStateInner) MarshalJSON() ([]byte, error) {
	return record.Encode(g.fields(), g.Extra)
}

func (g *GameStateInner) UnmarshalJSON(data []byte) error {
	*g = GameStateInner{}
	return record.Decode(data, g.fields(), &g.Extra)
}
