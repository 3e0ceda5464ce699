// Package save models a Sons Of The Forest save slot: the per-file documents,
// their envelopes, and the aggregate that reads and writes them together.
package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nathoo/sotftools/engine/record"
)

// File names inside a save slot directory.
const (
	GameStateFile = "GameStateSaveData.json"
	SaveDataFile  = "SaveData.json"
	InventoryFile = "PlayerInventorySaveData.json"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// ErrNoInventory is returned when an operation needs the inventory document
// but the slot has none.
var ErrNoInventory = errors.New("save has no inventory")

// IOError reports a save file that could not be read or written.
type IOError struct {
	File string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Save is one loaded save slot. Every document is independent on disk; they
// are only read and written together.
type Save struct {
	GameState Envelope[GameState]
	SaveData  Envelope[SaveData]
	// Inventory is nil when the slot has no inventory file.
	Inventory *Envelope[PlayerInventory]
}

// Read loads every document in dir. Any missing or malformed required file
// fails the whole read; no partial Save is returned.
func Read(dir string) (*Save, error) {
	var s Save

	if err := readDoc(dir, GameStateFile, &s.GameState); err != nil {
		return nil, err
	}
	if err := readDoc(dir, SaveDataFile, &s.SaveData); err != nil {
		return nil, err
	}

	var inv Envelope[PlayerInventory]
	err := readDoc(dir, InventoryFile, &inv)
	switch {
	case err == nil:
		s.Inventory = &inv
	case errors.Is(err, fs.ErrNotExist):
		// Optional document.
	default:
		return nil, err
	}

	return &s, nil
}

func readDoc(dir, name string, v any) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return &IOError{File: name, Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, asSchemaError(err))
	}
	return nil
}

// asSchemaError maps syntax errors from encoding/json onto SchemaError so
// every decode failure has one type.
func asSchemaError(err error) error {
	var se *record.SchemaError
	if errors.As(err, &se) {
		return err
	}
	return &record.SchemaError{Err: err}
}

type encodedDoc struct {
	name string
	data []byte
}

func (s *Save) encodeAll() ([]encodedDoc, error) {
	names := []string{GameStateFile, SaveDataFile}
	if s.Inventory != nil {
		names = append(names, InventoryFile)
	}

	out := make([]encodedDoc, 0, len(names))
	for _, name := range names {
		data, err := s.EncodeDoc(name)
		if err != nil {
			return nil, err
		}
		out = append(out, encodedDoc{name: name, data: data})
	}
	return out, nil
}

// EncodeDoc serializes the document stored in file name.
func (s *Save) EncodeDoc(name string) ([]byte, error) {
	var v any
	switch name {
	case GameStateFile:
		v = s.GameState
	case SaveDataFile:
		v = s.SaveData
	case InventoryFile:
		if s.Inventory == nil {
			return nil, fmt.Errorf("encoding %s: %w", name, ErrNoInventory)
		}
		v = *s.Inventory
	default:
		return nil, fmt.Errorf("unknown save document %q", name)
	}

	data, err := record.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	return data, nil
}

// ReplaceDoc decodes data as the document stored in file name and swaps it in.
// On error the current document is left as it was.
func (s *Save) ReplaceDoc(name string, data []byte) error {
	decode := func(v any) error {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decoding %s: %w", name, asSchemaError(err))
		}
		return nil
	}

	switch name {
	case GameStateFile:
		var doc Envelope[GameState]
		if err := decode(&doc); err != nil {
			return err
		}
		s.GameState = doc
	case SaveDataFile:
		var doc Envelope[SaveData]
		if err := decode(&doc); err != nil {
			return err
		}
		s.SaveData = doc
	case InventoryFile:
		var doc Envelope[PlayerInventory]
		if err := decode(&doc); err != nil {
			return err
		}
		s.Inventory = &doc
	default:
		return fmt.Errorf("unknown save document %q", name)
	}
	return nil
}

// Write encodes every document, then overwrites the files in dir. Encoding
// happens up front, but the file writes are not atomic as a group: if a later
// write fails the earlier files have already been replaced.
func (s *Save) Write(dir string) error {
	docs, err := s.encodeAll()
	if err != nil {
		return err
	}
	for _, d := range docs {
		if err := os.WriteFile(filepath.Join(dir, d.name), d.data, 0o644); err != nil {
			return &IOError{File: d.name, Err: err}
		}
	}
	return nil
}

// World returns the decoded world simulation.
func (s *Save) World() *VailWorldSim {
	return &s.SaveData.Data.VailWorldSim.Doc
}

// State returns the decoded game state.
func (s *Save) State() *GameStateInner {
	return &s.GameState.Data.GameState.Doc
}

// FindActor returns the first actor with typeID. The pointer refers into the
// actor list, so callers may mutate through it.
func (s *Save) FindActor(typeID uint32) (*Actor, bool) {
	actors := s.World().Actors
	for i := range actors {
		if actors[i].TypeID == typeID {
			return &actors[i], true
		}
	}
	return nil, false
}

// FindKillStat returns the first kill stat with typeID, mutable in place.
func (s *Save) FindKillStat(typeID uint32) (*KillStat, bool) {
	stats := s.World().KillStatsList
	for i := range stats {
		if stats[i].TypeID == typeID {
			return &stats[i], true
		}
	}
	return nil, false
}

// Items returns the inventory's item blocks, or nil without an inventory.
func (s *Save) Items() []ItemBlock {
	if s.Inventory == nil {
		return nil
	}
	return s.Inventory.Data.PlayerInventory.Doc.ItemInstanceManagerData.ItemBlocks
}
