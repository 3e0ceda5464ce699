// Package fields reads and writes arbitrary paths inside the decoded save
// documents, including fields the typed model only carries as residual JSON.
// Paths use gjson syntax ("PlayerStats.CutTrees", "Actors.0.State",
// "Actors.#(TypeId==9).State" for reads).
package fields

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/nathoo/sotftools/engine/record"
	"github.com/nathoo/sotftools/engine/save"
)

// view exposes one document as JSON and takes a patched version back.
type view struct {
	encode  func(s *save.Save) ([]byte, error)
	replace func(s *save.Save, data []byte) error
}

func embeddedView[T any](get func(s *save.Save) (*T, error)) view {
	return view{
		encode: func(s *save.Save) ([]byte, error) {
			doc, err := get(s)
			if err != nil {
				return nil, err
			}
			return record.Marshal(doc)
		},
		replace: func(s *save.Save, data []byte) error {
			doc, err := get(s)
			if err != nil {
				return err
			}
			var fresh T
			if err := json.Unmarshal(data, &fresh); err != nil {
				return err
			}
			*doc = fresh
			return nil
		},
	}
}

func fileView(name string) view {
	return view{
		encode: func(s *save.Save) ([]byte, error) {
			return s.EncodeDoc(name)
		},
		replace: func(s *save.Save, data []byte) error {
			return s.ReplaceDoc(name, data)
		},
	}
}

var views = map[string]view{
	"game": embeddedView(func(s *save.Save) (*save.GameStateInner, error) {
		return s.State(), nil
	}),
	"world": embeddedView(func(s *save.Save) (*save.VailWorldSim, error) {
		return s.World(), nil
	}),
	"inventory": embeddedView(func(s *save.Save) (*save.PlayerInventoryInner, error) {
		if s.Inventory == nil {
			return nil, save.ErrNoInventory
		}
		return &s.Inventory.Data.PlayerInventory.Doc, nil
	}),
	"gamestate-file": fileView(save.GameStateFile),
	"savedata-file":  fileView(save.SaveDataFile),
	"inventory-file": fileView(save.InventoryFile),
}

// Docs returns the document names accepted by Get and Set.
func Docs() []string {
	names := make([]string, 0, len(views))
	for name := range views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(doc string) (view, error) {
	v, ok := views[strings.ToLower(doc)]
	if !ok {
		return view{}, fmt.Errorf("unknown document %q (want one of %s)", doc, strings.Join(Docs(), ", "))
	}
	return v, nil
}

// Get returns the raw JSON at path in doc.
func Get(s *save.Save, doc, path string) (string, error) {
	v, err := lookup(doc)
	if err != nil {
		return "", err
	}
	data, err := v.encode(s)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", doc, err)
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return "", fmt.Errorf("%s: no value at %q", doc, path)
	}
	return res.Raw, nil
}

// Set writes value at path in doc. value is used as raw JSON when it parses
// as JSON and as a string otherwise. The document is re-decoded from the
// patched JSON and only replaces the current one if that succeeds, so a value
// of the wrong type for a known field leaves the save untouched.
func Set(s *save.Save, doc, path, value string) error {
	v, err := lookup(doc)
	if err != nil {
		return err
	}
	data, err := v.encode(s)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", doc, err)
	}

	var patched []byte
	if json.Valid([]byte(value)) {
		patched, err = sjson.SetRawBytes(data, path, []byte(value))
	} else {
		patched, err = sjson.SetBytes(data, path, value)
	}
	if err != nil {
		return fmt.Errorf("setting %s in %s: %w", path, doc, err)
	}

	if err := v.replace(s, patched); err != nil {
		return fmt.Errorf("applying %s in %s: %w", path, doc, err)
	}
	return nil
}
