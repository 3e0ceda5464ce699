// Package cli provides the line-oriented save editor: terminal I/O, output
// styling, and meta-command dispatch around an engine.Engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/sotftools/engine"
	"github.com/nathoo/sotftools/types"
)

// CLI handles terminal interaction with the user.
type CLI struct {
	Engine *engine.Engine
	In     io.Reader
	Out    io.Writer
	// Level is the logger's level; /trace switches it between info and debug.
	Level     *slog.LevelVar
	Trace     bool
	Plain     bool // no colors
	EchoInput bool // echo each input line after the prompt (for piped input)
	lastCmd   string
	quitArmed bool
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run shows the slot status, then loops: prompt → input → dispatch → output.
// It returns when input ends or the user quits.
func (c *CLI) Run() {
	c.printSystem(fmt.Sprintf("Editing %s. Type /help for commands.", c.Engine.Path))
	c.printResult(c.Engine.Step("status"))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print(c.render(stylePrompt, "> "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return
			}
			continue
		}
		c.quitArmed = false

		// "again" / "g" repeats the last editor command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}

	if c.Engine.Dirty() {
		c.printSystem("Input ended with unsaved changes; nothing was written.")
	}
}

// handleMeta dispatches meta-commands. Returns true if the editor should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.ToLower(strings.Fields(input)[0])
	if cmd != "/quit" && cmd != "/exit" {
		c.quitArmed = false
	}

	switch cmd {
	case "/quit", "/exit":
		if c.Engine.Dirty() && !c.quitArmed {
			c.quitArmed = true
			c.printSystem("You have unsaved changes. Type /save to write them, or /quit again to discard them.")
			return false
		}
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave()

	case "/reload":
		c.cmdReload()

	case "/help":
		c.cmdHelp()

	case "/trace":
		c.Trace = !c.Trace
		if c.Level != nil {
			if c.Trace {
				c.Level.Set(slog.LevelDebug)
			} else {
				c.Level.Set(slog.LevelInfo)
			}
		}
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave() {
	if err := c.Engine.Write(); err != nil {
		c.printError(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Saved to %s.", c.Engine.Path))
}

func (c *CLI) cmdReload() {
	if err := c.Engine.Reload(); err != nil {
		c.printError(fmt.Sprintf("Reload failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Reloaded %s.", c.Engine.Path))
	c.printResult(c.Engine.Step("status"))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save    Write every document back to the slot",
		"  /reload  Discard edits and read the slot again",
		"  /quit    Exit (asks again if there are unsaved changes)",
		"  /help    Show this help",
		"  /trace   Toggle debug logging and trace output",
		"",
		"Editor commands:",
		"  status (st)                  Who is dead, and why",
		"  resurrect <name> [health]    Bring Kelvin or Virginia back",
		"  inventory (i)                List carried items",
		"  get <doc> <path>             Print the JSON at path",
		"  set <doc> <path> <value>     Replace the JSON at path",
		"  docs                         List document names",
		"  again (g)                    Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) printTrace(result types.Result) {
	c.printLine(c.render(styleTrace, fmt.Sprintf("[trace] changed=%t dirty=%t", result.Changed, c.Engine.Dirty())))
	if result.Err != nil {
		c.printLine(c.render(styleTrace, fmt.Sprintf("[trace] err: %v", result.Err)))
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		kind := classifyLine(line)
		if result.Err != nil {
			kind = kindError
		}
		if st, ok := styleFor(kind); ok {
			line = c.render(st, line)
		}
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	c.printLine(c.render(styleSystem, "["+text+"]"))
}

func (c *CLI) printError(text string) {
	c.printLine(c.render(styleError, "["+text+"]"))
}

func (c *CLI) render(st lipgloss.Style, text string) string {
	if c.Plain {
		return text
	}
	return st.Render(text)
}
