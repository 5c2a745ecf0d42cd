package commands

import (
	"regexp"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"fluffymud/internal/game"
)

var ansiSequence = regexp.MustCompile("\x1b\\[[0-9;]*m")

func newTestWorld(opts ...game.WorldOption) *game.World {
	rooms := map[game.RoomID]*game.Room{
		game.StartRoom: {
			ID:          game.StartRoom,
			Title:       "The Nest",
			Description: "Soft down drifts everywhere.",
			Exits:       map[string]game.RoomID{"north": "garden"},
			Things:      []game.Thing{game.NewThing("feather", "A single blue feather.")},
		},
		"garden": {
			ID:          "garden",
			Title:       "Rose Garden",
			Description: "Thorns and blossoms.",
			Exits:       map[string]game.RoomID{"south": game.StartRoom},
		},
	}
	x, y, z := 1, 2, 3
	rooms["garden"].SetX(&x)
	rooms["garden"].SetY(&y)
	rooms["garden"].SetZ(&z)
	return game.NewWorldWithRooms(rooms, opts...)
}

func newTestPlayer(world *game.World, name string, room game.RoomID) *game.Player {
	p := game.NewPlayer(name, room)
	world.AddPlayerForTest(p)
	return p
}

// drainOutput returns everything queued for the player with ANSI stripped.
func drainOutput(p *game.Player) string {
	var b strings.Builder
	for {
		select {
		case msg := <-p.Output:
			b.WriteString(ansiSequence.ReplaceAllString(msg, ""))
		default:
			return b.String()
		}
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	world := newTestWorld()
	p := newTestPlayer(world, "Ash", game.StartRoom)

	if Dispatch(world, p, "frobnicate") {
		t.Fatalf("unknown command should not disconnect")
	}
	if got := drainOutput(p); !strings.Contains(got, "Unknown command. Type 'help'.") {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestDispatchIgnoresBlankLines(t *testing.T) {
	world := newTestWorld()
	p := newTestPlayer(world, "Ash", game.StartRoom)

	if Dispatch(world, p, "   ") {
		t.Fatalf("blank line should not disconnect")
	}
	if got := drainOutput(p); got != "" {
		t.Fatalf("blank line produced output %q", got)
	}
}

func TestDispatchRespectsDisabledCommands(t *testing.T) {
	world := newTestWorld()
	p := newTestPlayer(world, "Ash", game.StartRoom)
	world.SetCommandDisabled("say", true)

	Dispatch(world, p, "' hello")
	if got := drainOutput(p); !strings.Contains(got, "The say command is currently disabled.") {
		t.Fatalf("unexpected output %q", got)
	}

	world.SetCommandDisabled("say", false)
	Dispatch(world, p, "say hello")
	if got := drainOutput(p); !strings.Contains(got, "You say: hello") {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestDispatchCountsCommands(t *testing.T) {
	metrics := game.NewMetrics()
	world := newTestWorld(game.WithMetrics(metrics))
	p := newTestPlayer(world, "Ash", game.StartRoom)

	Dispatch(world, p, "abi")
	Dispatch(world, p, "abilities")
	Dispatch(world, p, "nope")

	count, err := testutil.GatherAndCount(metrics.Registry(), "fluffymud_commands_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	assert.Equal(t, 1, count, "one series for the abilities command")
}

func TestQuitDisconnects(t *testing.T) {
	world := newTestWorld()
	p := newTestPlayer(world, "Ash", game.StartRoom)

	if !Dispatch(world, p, "q") {
		t.Fatalf("quit alias should disconnect")
	}
}

func TestSplitInput(t *testing.T) {
	tests := []struct {
		line, cmd, arg string
	}{
		{"look", "look", ""},
		{"  say   hello there ", "say", "hello there"},
		{":waves", ":", "waves"},
		{": waves", ":", "waves"},
		{"'hi all", "'", "hi all"},
		{"", "", ""},
	}
	for _, tt := range tests {
		cmd, arg := splitInput(tt.line)
		if cmd != tt.cmd || arg != tt.arg {
			t.Fatalf("splitInput(%q) = %q, %q; want %q, %q", tt.line, cmd, arg, tt.cmd, tt.arg)
		}
	}
}

func TestDefineRejectsDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		Define(Definition{Name: "look"}, func(*Context) bool { return false })
	})
	assert.Panics(t, func() {
		Define(Definition{Name: "  "}, func(*Context) bool { return false })
	})
}
