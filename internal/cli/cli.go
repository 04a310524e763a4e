// Package cli parses caltwo command lines.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandServe   Command = "serve"
	CommandPress   Command = "press"
	CommandDisplay Command = "display"
	CommandClear   Command = "clear"
	CommandStop    Command = "stop"
	CommandCopy    Command = "copy"
	CommandMCP     Command = "mcp"
	CommandDoctor  Command = "doctor"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

type commandDef struct {
	name  Command
	usage string
	about string
	// variadic commands own every argument after the command word.
	variadic bool
}

var commands = []commandDef{
	{name: CommandServe, about: "Own the calculator session (unix socket, optional gRPC)"},
	{name: CommandPress, usage: "BUTTON...", about: "Press buttons and print the display", variadic: true},
	{name: CommandDisplay, about: "Print the current display"},
	{name: CommandClear, about: "Reset the session display to 0"},
	{name: CommandStop, about: "Stop the running session"},
	{name: CommandCopy, about: "Copy the current display to the clipboard"},
	{name: CommandMCP, about: "Serve calculator tools over MCP stdio"},
	{name: CommandDoctor, about: "Run configuration and environment checks"},
	{name: CommandVersion, about: "Print version information"},
	{name: CommandHelp, about: "Show this help"},
}

func lookup(word string) (commandDef, bool) {
	for _, def := range commands {
		if string(def.name) == word {
			return def, true
		}
	}
	return commandDef{}, false
}

type Parsed struct {
	Command    Command
	ConfigPath string
	// Buttons holds the labels given to press, in order.
	Buttons  []string
	ShowHelp bool
}

// Parse reads global flags up to the command word. With no command the
// result asks for help.
func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "-h" || arg == "--help":
			parsed.Command, parsed.ShowHelp = CommandHelp, true
		case arg == "--version":
			parsed.Command, parsed.ShowHelp = CommandVersion, false
		case arg == "--config":
			if i+1 >= len(args) {
				return Parsed{}, errors.New("--config requires a path")
			}
			i++
			parsed.ConfigPath = args[i]
		case strings.HasPrefix(arg, "-"):
			return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
		default:
			def, ok := lookup(arg)
			if !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}
			parsed.Command = def.name
			parsed.ShowHelp = def.name == CommandHelp

			rest := args[i+1:]
			if def.variadic {
				if len(strings.Fields(strings.Join(rest, " "))) == 0 {
					return Parsed{}, fmt.Errorf("%s requires at least one button", arg)
				}
				parsed.Buttons = append([]string(nil), rest...)
				return parsed, nil
			}
			if len(rest) > 0 {
				return Parsed{}, fmt.Errorf("unexpected arguments after command %q", arg)
			}
			return parsed, nil
		}
	}

	return parsed, nil
}

func HelpText(binaryName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage:\n  %s [--config PATH] <command>\n\nCommands:\n", binaryName)
	for _, def := range commands {
		name := strings.TrimSpace(string(def.name) + " " + def.usage)
		fmt.Fprintf(&b, "  %-16s%s\n", name, def.about)
	}
	b.WriteString(`
Buttons:
  0-9 . + - × ÷ = C ←   (aliases: * x / bs c)

Flags:
  --config PATH   Config file path (default: $XDG_CONFIG_HOME/caltwo/config.jsonc)
  -h, --help      Show help
  --version       Show version
`)
	return b.String()
}
