package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used for terminal output.
var (
	stylePrompt = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	styleDead = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")).
			Bold(true)

	styleAlive = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindPlain lineKind = iota
	kindSystem
	kindError
	kindWarning
	kindDead
	kindAlive
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Warning:"):
		return kindWarning
	case strings.Contains(line, " is dead ("):
		return kindDead
	case strings.HasSuffix(line, " is alive."):
		return kindAlive
	default:
		return kindPlain
	}
}

func styleFor(kind lineKind) (lipgloss.Style, bool) {
	switch kind {
	case kindSystem:
		return styleSystem, true
	case kindError:
		return styleError, true
	case kindWarning:
		return styleWarning, true
	case kindDead:
		return styleDead, true
	case kindAlive:
		return styleAlive, true
	case kindTrace:
		return styleTrace, true
	}
	return lipgloss.Style{}, false
}
