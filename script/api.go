package script

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/sotftools/engine"
	"github.com/nathoo/sotftools/engine/fields"
	"github.com/nathoo/sotftools/engine/npc"
)

// registerAPI registers the editor functions as globals.
func registerAPI(L *lua.LState, eng *engine.Engine, out io.Writer) {
	// print(...) writes to out instead of the process stdout.
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		fmt.Fprintln(out, strings.Join(parts, "\t"))
		return 0
	}))

	// log("message") records a line in the editor log.
	L.SetGlobal("log", L.NewFunction(func(L *lua.LState) int {
		eng.Log.Info("script", "msg", L.CheckString(1))
		return 0
	}))

	// is_dead("kelvin") or is_dead(9)
	L.SetGlobal("is_dead", L.NewFunction(func(L *lua.LState) int {
		c := checkCharacter(L, 1)
		L.Push(lua.LBool(npc.IsDead(eng.Save, c.TypeID)))
		return 1
	}))

	// resurrect("kelvin" [, health]) always applies, dead or not.
	L.SetGlobal("resurrect", L.NewFunction(func(L *lua.LState) int {
		c := checkCharacter(L, 1)
		health := eng.HealthFor(c)
		if L.GetTop() >= 2 {
			health = float32(L.CheckNumber(2))
			if err := npc.ValidateHealth(health); err != nil {
				L.ArgError(2, err.Error())
				return 0
			}
		}
		eng.Resurrect(c, health)
		return 0
	}))

	// get("world", "PlayerStats.CutTrees") returns the value at path, or nil.
	L.SetGlobal("get", L.NewFunction(func(L *lua.LState) int {
		doc := L.CheckString(1)
		path := L.CheckString(2)
		raw, err := fields.Get(eng.Save, doc, path)
		if err != nil {
			L.Push(lua.LNil)
			return 1
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			L.RaiseError("get %s %s: %v", doc, path, err)
			return 0
		}
		L.Push(toLuaValue(L, v))
		return 1
	}))

	// set("world", "PlayerStats.CutTrees", 100)
	L.SetGlobal("set", L.NewFunction(func(L *lua.LState) int {
		doc := L.CheckString(1)
		path := L.CheckString(2)
		value, err := json.Marshal(toGoValue(L.CheckAny(3)))
		if err != nil {
			L.RaiseError("set %s %s: %v", doc, path, err)
			return 0
		}
		if err := fields.Set(eng.Save, doc, path, string(value)); err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		eng.MarkDirty()
		return 0
	}))

	// items() returns { {id=78, name="Log", count=4}, ... }
	L.SetGlobal("items", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		for _, item := range eng.Save.Items() {
			row := L.NewTable()
			row.RawSetString("id", lua.LNumber(item.ItemID))
			row.RawSetString("name", lua.LString(item.ItemID.String()))
			row.RawSetString("count", lua.LNumber(item.TotalCount))
			tbl.Append(row)
		}
		L.Push(tbl)
		return 1
	}))

	// save() writes the save slot to disk.
	L.SetGlobal("save", L.NewFunction(func(L *lua.LState) int {
		if err := eng.Write(); err != nil {
			L.RaiseError("%v", err)
		}
		return 0
	}))
}

// checkCharacter resolves argument n (name or type id) to a roster character.
func checkCharacter(L *lua.LState, n int) npc.Character {
	var key string
	switch v := L.CheckAny(n).(type) {
	case lua.LString:
		key = string(v)
	case lua.LNumber:
		key = fmt.Sprintf("%d", int64(v))
	default:
		L.ArgError(n, "character name or type id expected")
		return npc.Character{}
	}
	c, err := npc.Lookup(key)
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return c
}
