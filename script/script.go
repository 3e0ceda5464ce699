// Package script runs Lua batch-edit scripts against an open save. Scripts
// run in a sandboxed VM with only the editor API and the safe standard
// libraries available.
package script

import (
	"fmt"
	"io"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/sotftools/engine"
)

// Run executes the Lua file at path against eng. Output from print() goes to
// out. Edits made before a script error stay applied in memory; nothing is
// written unless the script calls save().
func Run(path string, eng *engine.Engine, out io.Writer) error {
	L := newState(eng, out)
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("running %s: %w", path, err)
	}
	return nil
}

// RunString executes Lua source. Used for one-liners and tests.
func RunString(src string, eng *engine.Engine, out io.Writer) error {
	L := newState(eng, out)
	defer L.Close()

	if err := L.DoString(src); err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	return nil
}

func newState(eng *engine.Engine, out io.Writer) *lua.LState {
	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	// Open safe libs only.
	openSafeLibs(L)

	// Sandbox: remove dangerous globals.
	sandbox(L)

	// Register API.
	registerAPI(L, eng, out)
	return L
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library (table.insert, table.sort, etc.)
	lua.OpenTable(L)
	// String library (string.format, string.sub, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes globals that reach the filesystem or the VM internals.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "module", "require",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
}
