package save

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/sotftools/engine/record"
)

func readFixture(t *testing.T) (*Save, string) {
	t.Helper()
	dir := writeFixture(t, fixtureFiles(t))
	s, err := Read(dir)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return s, dir
}

func TestRead_Fixture(t *testing.T) {
	s, _ := readFixture(t)

	if s.GameState.Version != "0.0.0" {
		t.Errorf("Version = %q, want 0.0.0", s.GameState.Version)
	}
	gs := s.State()
	if gs.GameType != "Normal" || gs.GameDays != 3 || gs.GameMilliseconds != 120 {
		t.Errorf("game state = %+v", gs)
	}
	if gs.IsRobbyDead || !gs.IsVirginiaDead {
		t.Errorf("flags robby=%v virginia=%v", gs.IsRobbyDead, gs.IsVirginiaDead)
	}

	w := s.World()
	if len(w.Actors) != 3 {
		t.Fatalf("expected 3 actors, got %d", len(w.Actors))
	}
	if w.Actors[0].Stats == nil || w.Actors[0].Stats.Health != 50 {
		t.Errorf("actor 9 stats = %+v", w.Actors[0].Stats)
	}
	if w.Actors[1].Stats == nil || !w.Actors[1].Stats.Health.IsNaN() {
		t.Errorf("actor 10 health should be NaN, got %+v", w.Actors[1].Stats)
	}
	if w.Actors[2].Stats != nil {
		t.Errorf("actor 42 should have no stats, got %+v", w.Actors[2].Stats)
	}
	if w.PlayerStats.CutTrees != 12 || !w.PlayerStats.LastSightedTimeHours.IsNaN() {
		t.Errorf("player stats = %+v", w.PlayerStats)
	}
	if string(s.SaveData.Extra["Checksum"]) != `"abc"` {
		t.Errorf("envelope residual Checksum = %s", s.SaveData.Extra["Checksum"])
	}

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 item blocks, got %d", len(items))
	}
	if items[0].ItemID != 78 || items[0].TotalCount != 4 {
		t.Errorf("item 0 = %+v", items[0])
	}
}

func TestWrite_RoundTripPreservesEveryField(t *testing.T) {
	files := fixtureFiles(t)
	s, _ := readFixture(t)

	out := t.TempDir()
	if err := s.Write(out); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	for name, original := range files {
		written, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		want := deepDecode(t, []byte(original))
		got := deepDecode(t, written)
		if !reflect.DeepEqual(want, got) {
			t.Errorf("%s changed on round trip:\n  want: %v\n  got:  %v", name, want, got)
		}
	}
}

func TestWrite_Idempotent(t *testing.T) {
	s, _ := readFixture(t)

	first := t.TempDir()
	if err := s.Write(first); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	again, err := Read(first)
	if err != nil {
		t.Fatalf("Read of written save failed: %v", err)
	}
	second := t.TempDir()
	if err := again.Write(second); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	for _, name := range []string{GameStateFile, SaveDataFile, InventoryFile} {
		a, _ := os.ReadFile(filepath.Join(first, name))
		b, _ := os.ReadFile(filepath.Join(second, name))
		if string(a) != string(b) {
			t.Errorf("%s differs between writes:\n  %s\n  %s", name, a, b)
		}
	}
}

func TestWrite_NaNHealthStaysString(t *testing.T) {
	s, _ := readFixture(t)
	data, err := s.EncodeDoc(SaveDataFile)
	if err != nil {
		t.Fatalf("EncodeDoc failed: %v", err)
	}

	doc := deepDecode(t, data).(map[string]any)
	world := doc["Data"].(map[string]any)["VailWorldSim"].(map[string]any)
	actor := world["Actors"].([]any)[1].(map[string]any)
	health := actor["Stats"].(map[string]any)["Health"]
	if health != "NaN" {
		t.Errorf("Health = %#v, want \"NaN\"", health)
	}
}

func TestWrite_NestedMutationLeavesSiblings(t *testing.T) {
	s, dir := readFixture(t)

	actor, ok := s.FindActor(10)
	if !ok {
		t.Fatal("actor 10 not found")
	}
	actor.State = ActorStateActive
	actor.Stats.Health = 120

	if err := s.Write(dir); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	again, err := Read(dir)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if string(again.SaveData.Extra["Checksum"]) != `"abc"` {
		t.Errorf("Checksum = %s", again.SaveData.Extra["Checksum"])
	}
	if string(again.SaveData.Data.Extra["ZoneSaveData"]) != `{"a":[]}` {
		t.Errorf("ZoneSaveData = %s", again.SaveData.Data.Extra["ZoneSaveData"])
	}
	a, _ := again.FindActor(10)
	if a.State != ActorStateActive || a.Stats.Health != 120 {
		t.Errorf("actor 10 = state %d health %v", a.State, a.Stats.Health)
	}
	if string(again.State().Extra["CrashSite"]) != `"<beach>"` {
		t.Errorf("CrashSite = %s", again.State().Extra["CrashSite"])
	}
}

func TestRead_MissingRequiredFile(t *testing.T) {
	for _, missing := range []string{GameStateFile, SaveDataFile} {
		files := fixtureFiles(t)
		delete(files, missing)
		dir := writeFixture(t, files)

		_, err := Read(dir)
		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("missing %s: error = %v, want IOError", missing, err)
		}
		if ioErr.File != missing {
			t.Errorf("IOError.File = %q, want %q", ioErr.File, missing)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	}
}

func TestRead_InventoryOptional(t *testing.T) {
	files := fixtureFiles(t)
	delete(files, InventoryFile)
	dir := writeFixture(t, files)

	s, err := Read(dir)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if s.Inventory != nil {
		t.Error("expected nil inventory")
	}
	if s.Items() != nil {
		t.Error("expected no items")
	}

	out := t.TempDir()
	if err := s.Write(out); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, InventoryFile)); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("inventory file should not be written, stat err = %v", err)
	}
}

func TestRead_SchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		doc   func(t *testing.T) string
		field string
	}{
		{
			name:  "malformed outer JSON",
			file:  GameStateFile,
			doc:   func(t *testing.T) string { return `{"Version":` },
			field: "",
		},
		{
			name: "embedded document not JSON",
			file: SaveDataFile,
			doc: func(t *testing.T) string {
				return `{"Version":"1","Data":{"VailWorldSim":"{oops"}}`
			},
			field: "Data.VailWorldSim",
		},
		{
			name: "bad health sentinel",
			file: SaveDataFile,
			doc: func(t *testing.T) string {
				return `{"Version":"1","Data":{"VailWorldSim":` +
					quote(t, `{"Actors":[{"TypeId":9,"Stats":{"Health":"dead"}}]}`) + `}}`
			},
			field: "Data.VailWorldSim.Actors.Stats.Health",
		},
		{
			name: "flag wrong type",
			file: GameStateFile,
			doc: func(t *testing.T) string {
				return `{"Version":"1","Data":{"GameState":` + quote(t, `{"IsRobbyDead":"yes"}`) + `}}`
			},
			field: "Data.GameState.IsRobbyDead",
		},
		{
			name: "null day count",
			file: GameStateFile,
			doc: func(t *testing.T) string {
				return `{"Version":"1","Data":{"GameState":` + quote(t, `{"GameDays":null}`) + `}}`
			},
			field: "Data.GameState.GameDays",
		},
		{
			name: "null flag",
			file: GameStateFile,
			doc: func(t *testing.T) string {
				return `{"Version":"1","Data":{"GameState":` + quote(t, `{"IsRobbyDead":null}`) + `}}`
			},
			field: "Data.GameState.IsRobbyDead",
		},
		{
			name: "null game type",
			file: GameStateFile,
			doc: func(t *testing.T) string {
				return `{"Version":"1","Data":{"GameState":` + quote(t, `{"GameType":null}`) + `}}`
			},
			field: "Data.GameState.GameType",
		},
		{
			name: "null kill stat type id",
			file: SaveDataFile,
			doc: func(t *testing.T) string {
				return `{"Version":"1","Data":{"VailWorldSim":` +
					quote(t, `{"KillStatsList":[{"TypeId":null,"PlayerKilled":null}]}`) + `}}`
			},
			field: "Data.VailWorldSim.KillStatsList.TypeId",
		},
		{
			name: "null embedded document",
			file: SaveDataFile,
			doc: func(t *testing.T) string {
				return `{"Version":"1","Data":{"VailWorldSim":null}}`
			},
			field: "Data.VailWorldSim",
		},
		{
			name: "version wrong type",
			file: InventoryFile,
			doc: func(t *testing.T) string {
				return `{"Version":1,"Data":{}}`
			},
			field: "Version",
		},
	}
	for _, tt := range tests {
		files := fixtureFiles(t)
		files[tt.file] = tt.doc(t)
		dir := writeFixture(t, files)

		_, err := Read(dir)
		var se *record.SchemaError
		if !errors.As(err, &se) {
			t.Errorf("%s: error = %v, want SchemaError", tt.name, err)
			continue
		}
		if se.Field != tt.field {
			t.Errorf("%s: field = %q, want %q", tt.name, se.Field, tt.field)
		}
		if !strings.Contains(err.Error(), tt.file) {
			t.Errorf("%s: error %q does not name %s", tt.name, err, tt.file)
		}
	}
}

func TestRead_StripsBOM(t *testing.T) {
	files := fixtureFiles(t)
	files[GameStateFile] = "\xef\xbb\xbf" + files[GameStateFile]
	dir := writeFixture(t, files)

	if _, err := Read(dir); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
}

func TestRead_EmptyListsBecomeEmpty(t *testing.T) {
	files := fixtureFiles(t)
	files[SaveDataFile] = `{"Version":"1","Data":{"VailWorldSim":"{}"}}`
	dir := writeFixture(t, files)

	s, err := Read(dir)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if s.World().Actors == nil || s.World().KillStatsList == nil {
		t.Error("expected non-nil lists")
	}
	data, err := s.EncodeDoc(SaveDataFile)
	if err != nil {
		t.Fatalf("EncodeDoc failed: %v", err)
	}
	if !strings.Contains(string(data), `\"Actors\":[]`) {
		t.Errorf("expected empty Actors list in %s", data)
	}
}

func TestWrite_NullsRoundTrip(t *testing.T) {
	files := fixtureFiles(t)
	files[SaveDataFile] = `{"Version":"1","Data":{"VailWorldSim":` +
		quote(t, `{"Actors":[{"TypeId":9,"State":2,"Stats":null},{"TypeId":10,"State":2}],"KillStatsList":null,"PlayerStats":{"CutTrees":1,"SeenInVillageCount":0,"LastSightedTimeHours":0}}`) + `}}`
	files[InventoryFile] = `{"Version":"1","Data":{"PlayerInventory":` +
		quote(t, `{"ItemInstanceManagerData":{"ItemBlocks":null}}`) + `}}`
	dir := writeFixture(t, files)

	s, err := Read(dir)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if a, ok := s.FindActor(9); !ok || a.Stats != nil {
		t.Errorf("actor 9 = %+v, want nil stats", a)
	}
	if s.World().KillStatsList != nil {
		t.Errorf("KillStatsList = %v, want nil", s.World().KillStatsList)
	}

	out := t.TempDir()
	if err := s.Write(out); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	for _, name := range []string{SaveDataFile, InventoryFile} {
		written, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		want := deepDecode(t, []byte(files[name]))
		got := deepDecode(t, written)
		if !reflect.DeepEqual(want, got) {
			t.Errorf("%s changed on round trip:\n  want: %v\n  got:  %v", name, want, got)
		}
	}
}

func TestWrite_ToMissingDirectory(t *testing.T) {
	s, _ := readFixture(t)
	err := s.Write(filepath.Join(t.TempDir(), "nope"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error = %v, want IOError", err)
	}
	if ioErr.File != GameStateFile {
		t.Errorf("IOError.File = %q, want %q", ioErr.File, GameStateFile)
	}
}

func TestFindActorAndKillStat(t *testing.T) {
	s, _ := readFixture(t)

	a, ok := s.FindActor(42)
	if !ok || a.TypeID != 42 {
		t.Fatalf("FindActor(42) = %v, %v", a, ok)
	}
	a.State = 6
	if s.World().Actors[2].State != 6 {
		t.Error("mutation through FindActor did not reach the list")
	}

	if _, ok := s.FindActor(1234); ok {
		t.Error("FindActor(1234) should not be found")
	}

	k, ok := s.FindKillStat(10)
	if !ok || k.PlayerKilled != 1 {
		t.Fatalf("FindKillStat(10) = %v, %v", k, ok)
	}
	k.PlayerKilled = 0
	if s.World().KillStatsList[0].PlayerKilled != 0 {
		t.Error("mutation through FindKillStat did not reach the list")
	}
	if _, ok := s.FindKillStat(9); ok {
		t.Error("FindKillStat(9) should not be found")
	}
}

func TestReplaceDoc_KeepsCurrentOnError(t *testing.T) {
	s, _ := readFixture(t)

	if err := s.ReplaceDoc(GameStateFile, []byte(`{"Data":{"GameState":"{bad"}}`)); err == nil {
		t.Fatal("expected error")
	}
	if s.State().GameDays != 3 {
		t.Errorf("GameDays = %d after failed replace, want 3", s.State().GameDays)
	}

	good := `{"Version":"2","Data":{"GameState":"{\"GameDays\":9}"}}`
	if err := s.ReplaceDoc(GameStateFile, []byte(good)); err != nil {
		t.Fatalf("ReplaceDoc failed: %v", err)
	}
	if s.State().GameDays != 9 || s.GameState.Version != "2" {
		t.Errorf("replace not applied: days=%d version=%q", s.State().GameDays, s.GameState.Version)
	}

	if err := s.ReplaceDoc("Other.json", []byte(good)); err == nil {
		t.Error("expected error for unknown document")
	}
}

func TestItemID_String(t *testing.T) {
	tests := []struct {
		id   ItemID
		want string
	}{
		{78, "Log"},
		{402, "Backpack"},
		{456, "Health Mix +"},
		{9999, "Unknown Item (ID 9999)"},
		{0, "Unknown Item (ID 0)"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("ItemID(%d).String() = %q, want %q", uint16(tt.id), got, tt.want)
		}
	}
}
