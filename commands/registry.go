package commands

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"fluffymud/internal/game"
)

// CommandGroup decides which help listing a command appears in.
type CommandGroup string

const (
	GroupGeneral CommandGroup = ""
	GroupBuilder CommandGroup = "builder"
	GroupAdmin   CommandGroup = "admin"
)

// Definition describes a single command's metadata.
type Definition struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Group       CommandGroup
}

// Handler executes a command.
// Returning true indicates the connection should terminate.
type Handler func(*Context) bool

// Command couples metadata with the executable handler.
type Command struct {
	Definition
	Handler Handler
}

// Context provides the runtime data available to a command handler.
type Context struct {
	World   *game.World
	Player  *game.Player
	Raw     string
	Arg     string
	Input   string
	Command *Command
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Command)
	ordered    []*Command
)

// Define registers a new command using the provided definition and handler.
// It panics when metadata is incomplete or duplicates an existing command.
func Define(def Definition, handler Handler) *Command {
	if handler == nil {
		panic("commands: handler must not be nil")
	}
	if strings.TrimSpace(def.Name) == "" {
		panic("commands: command must have a name")
	}

	cmd := &Command{Definition: def, Handler: handler}

	registryMu.Lock()
	defer registryMu.Unlock()

	registerName := func(name string) {
		key := strings.ToLower(name)
		if _, exists := registry[key]; exists {
			panic(fmt.Sprintf("commands: duplicate registration for %q", name))
		}
		registry[key] = cmd
	}

	registerName(def.Name)
	for _, alias := range def.Aliases {
		if strings.TrimSpace(alias) == "" {
			continue
		}
		registerName(alias)
	}

	ordered = append(ordered, cmd)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})

	return cmd
}

// All returns the registered commands sorted by primary name.
func All() []*Command {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]*Command, len(ordered))
	copy(out, ordered)
	return out
}

// Find resolves a command by name or alias.
func Find(name string) (*Command, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	cmd, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return cmd, ok
}

// splitInput separates the command word from its argument. A leading
// punctuation alias such as ":" may be glued to the argument (":waves").
func splitInput(line string) (string, string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", ""
	}
	if r := trimmed[0]; r == ':' || r == '\'' {
		return trimmed[:1], strings.TrimSpace(trimmed[1:])
	}
	parts := strings.Fields(trimmed)
	return parts[0], strings.TrimSpace(strings.TrimPrefix(trimmed, parts[0]))
}

// Dispatch parses the input line, looks up the command, and executes it.
func Dispatch(world *game.World, player *game.Player, line string) bool {
	input, arg := splitInput(line)
	if input == "" {
		return false
	}

	cmd, ok := Find(input)
	if !ok {
		player.Msg("\r\nUnknown command. Type 'help'.")
		return false
	}
	if world.CommandDisabled(cmd.Name) {
		player.Msg(fmt.Sprintf("\r\n|yThe %s command is currently disabled.|n", cmd.Name))
		return false
	}
	world.Metrics().CommandDispatched(cmd.Name)

	ctx := &Context{
		World:   world,
		Player:  player,
		Raw:     line,
		Arg:     arg,
		Input:   input,
		Command: cmd,
	}
	return cmd.Handler(ctx)
}
