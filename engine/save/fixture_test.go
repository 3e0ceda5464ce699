package save

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const (
	testGameStateInner = `{"GameType":"Normal","GameDays":3,"GameHours":14,"GameMinutes":5,"GameSeconds":9,` +
		`"GameMilliseconds":120,"IsRobbyDead":false,"IsVirginiaDead":true,"CoreGameCompleted":false,` +
		`"EscapedIsland":false,"StayedOnIsland":false,"CrashSite":"<beach>","Seed":12345}`

	testWorldSim = `{"Actors":[` +
		`{"TypeId":9,"State":2,"Stats":{"Health":50,"Stamina":"NaN"},"Position":{"x":1.5,"y":2,"z":-3}},` +
		`{"TypeId":10,"State":6,"Stats":{"Health":"NaN"}},` +
		`{"TypeId":42,"State":2,"SpawnerId":7}],` +
		`"KillStatsList":[{"TypeId":10,"PlayerKilled":1,"PlayerKilledLast":"x"}],` +
		`"PlayerStats":{"CutTrees":12,"SeenInVillageCount":0,"LastSightedTimeHours":"NaN","Extra":true},` +
		`"Structures":[1,2]}`

	testInventoryInner = `{"ItemInstanceManagerData":{"ItemBlocks":[` +
		`{"ItemId":78,"TotalCount":4,"UniqueItems":[]},{"ItemId":9999,"TotalCount":1}],"Version":2},` +
		`"EquippedItems":[402],"QuickSelect":{"Slots":[]}}`
)

// quote returns s as a JSON string literal.
func quote(t *testing.T, s string) string {
	t.Helper()
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	return string(b)
}

// fixtureFiles returns the documents of a small but complete save slot.
func fixtureFiles(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{
		GameStateFile: `{"Version":"0.0.0","Data":{"GameState":` + quote(t, testGameStateInner) + `}}`,
		SaveDataFile: `{"Version":"0.0.0","Data":{"VailWorldSim":` + quote(t, testWorldSim) +
			`,"ZoneSaveData":{"a":[]}},"Checksum":"abc"}`,
		InventoryFile: `{"Version":"0.0.0","Data":{"PlayerInventory":` + quote(t, testInventoryInner) + `}}`,
	}
}

// writeFixture writes files into a fresh directory and returns it.
func writeFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

// deepDecode decodes data and recursively expands string values that hold
// JSON objects, so embedded documents compare by value.
func deepDecode(t *testing.T, data []byte) any {
	t.Helper()
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decoding %s: %v", data, err)
	}
	return expand(v)
}

func expand(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, child := range v {
			v[k] = expand(child)
		}
		return v
	case []any:
		for i, child := range v {
			v[i] = expand(child)
		}
		return v
	case string:
		if len(v) > 0 && v[0] == '{' {
			var inner any
			if err := json.Unmarshal([]byte(v), &inner); err == nil {
				return expand(inner)
			}
		}
		return v
	default:
		return v
	}
}
