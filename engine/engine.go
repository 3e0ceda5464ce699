// Package engine provides the editor session: it owns the loaded save, turns
// command lines into edits, and reads/writes the save slot on disk.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nathoo/sotftools/engine/fields"
	"github.com/nathoo/sotftools/engine/npc"
	"github.com/nathoo/sotftools/engine/parser"
	"github.com/nathoo/sotftools/engine/save"
	"github.com/nathoo/sotftools/types"
)

// Engine holds the save slot being edited. It is the only owner of Save;
// front ends call into it rather than keeping their own copy.
type Engine struct {
	Path string
	Save *save.Save
	Log  *slog.Logger

	// RevivalHealth overrides the roster's revival health by type id.
	RevivalHealth map[uint32]float32

	dirty   bool
	printer *message.Printer
}

// New creates an engine around an already loaded save.
func New(s *save.Save, path string, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		Path:          path,
		Save:          s,
		Log:           log,
		RevivalHealth: map[uint32]float32{},
		printer:       message.NewPrinter(language.English),
	}
}

// Open reads the save slot at path.
func Open(path string, log *slog.Logger) (*Engine, error) {
	s, err := save.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading save %s: %w", path, err)
	}
	e := New(s, path, log)
	e.logLoaded()
	return e, nil
}

func (e *Engine) logLoaded() {
	w := e.Save.World()
	e.Log.Info("save loaded",
		"path", e.Path,
		"actors", len(w.Actors),
		"kill_stats", len(w.KillStatsList),
		"items", len(e.Save.Items()))
}

// Reload re-reads the save from disk. The current save is only replaced once
// the new one has been read completely; on error nothing changes.
func (e *Engine) Reload() error {
	s, err := save.Read(e.Path)
	if err != nil {
		e.Log.Error("reload failed", "path", e.Path, "err", err)
		return fmt.Errorf("reading save %s: %w", e.Path, err)
	}
	e.Save = s
	e.dirty = false
	e.logLoaded()
	return nil
}

// Write saves every document back to the slot directory.
func (e *Engine) Write() error {
	if err := e.Save.Write(e.Path); err != nil {
		e.Log.Error("write failed", "path", e.Path, "err", err)
		return fmt.Errorf("writing save %s: %w", e.Path, err)
	}
	e.dirty = false
	e.Log.Info("save written", "path", e.Path)
	return nil
}

// Dirty reports whether the save has unwritten changes.
func (e *Engine) Dirty() bool {
	return e.dirty
}

// MarkDirty records a change made outside Step.
func (e *Engine) MarkDirty() {
	e.dirty = true
}

// HealthFor returns the revival health for c, honouring overrides.
func (e *Engine) HealthFor(c npc.Character) float32 {
	if h, ok := e.RevivalHealth[c.TypeID]; ok {
		return h
	}
	return c.RevivalHealth
}

// Resurrect revives c with its configured health.
func (e *Engine) Resurrect(c npc.Character, health float32) {
	npc.Resurrect(e.Save, c.TypeID, health)
	e.dirty = true
	e.Log.Info("resurrected", "name", c.Name, "type_id", c.TypeID, "health", health)
}

// Step processes one command line and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	cmd := parser.Parse(input)
	e.Log.Debug("step", "verb", cmd.Verb, "args", cmd.Args)

	switch cmd.Verb {
	case "":
		result.Output = append(result.Output, "What do you want to do?")
	case "status":
		result.Output = e.status()
	case "resurrect":
		e.resurrectCmd(cmd, &result)
	case "inventory":
		result.Output = e.inventory()
	case "get":
		e.getCmd(cmd, &result)
	case "set":
		e.setCmd(cmd, &result)
	case "documents":
		result.Output = append(result.Output, "Documents: "+strings.Join(fields.Docs(), ", "))
	default:
		result.Output = append(result.Output, fmt.Sprintf("I don't know how to %q.", cmd.Verb))
	}

	if result.Changed {
		e.dirty = true
	}
	return result
}

// status describes every roster character.
func (e *Engine) status() []string {
	var out []string
	for _, c := range npc.Roster {
		st := npc.Inspect(e.Save, c.TypeID)
		out = append(out, describe(c, st))
		if st.Inconsistent() {
			e.Log.Warn("inconsistent death state",
				"name", c.Name, "type_id", c.TypeID,
				"flag", st.FlagDead, "actor", st.ActorDead, "kill_stat", st.KillStatDead())
			out = append(out, fmt.Sprintf("Warning: %s's save records disagree; resurrect to make them consistent.", c.Name))
		}
	}
	return out
}

func describe(c npc.Character, st npc.Status) string {
	if !st.Dead() {
		return fmt.Sprintf("%s is alive.", c.Name)
	}

	var reasons []string
	if st.FlagDead {
		reasons = append(reasons, "story flag set")
	}
	if st.ActorDead {
		switch {
		case st.State == save.ActorStateDead:
			reasons = append(reasons, "actor state dead")
		default:
			reasons = append(reasons, "health "+strconv.FormatFloat(float64(st.Health), 'g', -1, 32))
		}
	}
	if st.KillStatDead() {
		reasons = append(reasons, "killed by player")
	}
	return fmt.Sprintf("%s is dead (%s).", c.Name, strings.Join(reasons, ", "))
}

func (e *Engine) resurrectCmd(cmd types.Command, result *types.Result) {
	if len(cmd.Args) == 0 {
		result.Output = append(result.Output, "Resurrect whom?")
		return
	}

	c, err := npc.Lookup(cmd.Args[0])
	if err != nil {
		result.Output = append(result.Output, err.Error())
		result.Err = err
		return
	}

	health := e.HealthFor(c)
	if len(cmd.Args) > 1 {
		h, err := strconv.ParseFloat(cmd.Args[1], 32)
		if err != nil {
			result.Err = fmt.Errorf("invalid health %q: %w", cmd.Args[1], err)
			result.Output = append(result.Output, result.Err.Error())
			return
		}
		health = float32(h)
		if err := npc.ValidateHealth(health); err != nil {
			result.Err = fmt.Errorf("invalid health %q: %w", cmd.Args[1], err)
			result.Output = append(result.Output, result.Err.Error())
			return
		}
	}

	if !npc.IsDead(e.Save, c.TypeID) {
		result.Output = append(result.Output, fmt.Sprintf("%s is not dead.", c.Name))
		return
	}

	e.Resurrect(c, health)
	result.Changed = true
	result.Output = append(result.Output, fmt.Sprintf("%s has been resurrected.", c.Name))
}

// InventoryLines renders each item block as "<name> x<count>".
func (e *Engine) InventoryLines() []string {
	items := e.Save.Items()
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, e.printer.Sprintf("%s x%d", item.ItemID.String(), item.TotalCount))
	}
	return lines
}

func (e *Engine) inventory() []string {
	if e.Save.Inventory == nil {
		return []string{"This save has no inventory file."}
	}
	lines := e.InventoryLines()
	if len(lines) == 0 {
		return []string{"The inventory is empty."}
	}
	return append([]string{"You are carrying:"}, lines...)
}

func (e *Engine) getCmd(cmd types.Command, result *types.Result) {
	parts := parser.SplitN(cmd.Rest, 2)
	if len(parts) < 2 {
		result.Output = append(result.Output, "Usage: get <document> <path>")
		return
	}
	v, err := fields.Get(e.Save, parts[0], parts[1])
	if err != nil {
		result.Err = err
		result.Output = append(result.Output, err.Error())
		return
	}
	result.Output = append(result.Output, v)
}

func (e *Engine) setCmd(cmd types.Command, result *types.Result) {
	parts := parser.SplitN(cmd.Rest, 3)
	if len(parts) < 3 {
		result.Output = append(result.Output, "Usage: set <document> <path> <value>")
		return
	}
	if err := fields.Set(e.Save, parts[0], parts[1], parts[2]); err != nil {
		result.Err = err
		result.Output = append(result.Output, err.Error())
		return
	}
	e.Log.Info("field set", "doc", parts[0], "path", parts[1])
	result.Changed = true
	result.Output = append(result.Output, fmt.Sprintf("Set %s in %s.", parts[1], parts[0]))
}
