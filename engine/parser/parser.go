// Package parser converts editor command lines into Command structs.
// Intentionally dumb: verb aliases and whitespace splitting only.
package parser

import (
	"strings"

	"github.com/nathoo/sotftools/types"
)

var verbAliases = map[string]string{
	// Status
	"st":    "status",
	"stat":  "status",
	"check": "status",
	"look":  "status",
	"l":     "status",
	"who":   "status",

	// Resurrect
	"res":    "resurrect",
	"revive": "resurrect",
	"raise":  "resurrect",
	"heal":   "resurrect",

	// Inventory
	"inv":   "inventory",
	"i":     "inventory",
	"items": "inventory",

	// Field access
	"show":  "get",
	"print": "get",
	"put":   "set",
	"edit":  "set",

	// Documents
	"docs": "documents",
}

// Parse converts a raw command line into a Command. The verb is lower-cased;
// arguments keep their case because field paths are case-sensitive.
func Parse(input string) types.Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Command{}
	}

	verb, rest, _ := strings.Cut(input, " ")
	verb = strings.ToLower(verb)
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}
	rest = strings.TrimSpace(rest)

	return types.Command{
		Verb: verb,
		Args: strings.Fields(rest),
		Rest: rest,
	}
}

// SplitN splits s into at most n whitespace-separated fields. The last field
// holds the remainder of s unchanged, so JSON values keep their spacing.
func SplitN(s string, n int) []string {
	var out []string
	s = strings.TrimSpace(s)
	for len(out) < n-1 && s != "" {
		i := strings.IndexAny(s, " \t")
		if i < 0 {
			break
		}
		out = append(out, s[:i])
		s = strings.TrimSpace(s[i:])
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}
