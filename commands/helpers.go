package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fluffymud/internal/game"
)

func warn(player *game.Player, text string) {
	player.Msg("\r\n|y" + text + "|n")
}

func requireBuilder(ctx *Context) bool {
	if ctx.Player.IsBuilder || ctx.Player.IsAdmin {
		return true
	}
	warn(ctx.Player, fmt.Sprintf("Only builders or admins may use %s.", ctx.Command.Name))
	return false
}

func requireAdmin(ctx *Context) bool {
	if ctx.Player.IsAdmin {
		return true
	}
	warn(ctx.Player, fmt.Sprintf("Only admins may use %s.", ctx.Command.Name))
	return false
}

// resolveTarget finds a player in the caller's room. An empty name, "me" or
// "self" resolve to the caller.
func resolveTarget(ctx *Context, name string) (*game.Player, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "me", "self":
		return ctx.Player, true
	}
	return ctx.World.FindInRoom(ctx.Player.Room, name)
}

func move(world *game.World, player *game.Player, dir string) bool {
	prev := player.Room
	taken, err := world.Move(player, dir)
	if err != nil {
		message := capitalize(err.Error()) + "."
		if room, ok := world.GetRoom(prev); ok && errors.Is(err, game.ErrNoExit) {
			message += " Exits: " + game.ExitList(room) + "."
		}
		warn(player, message)
		return false
	}
	world.BroadcastToRoom(prev, fmt.Sprintf("\r\n|m%s|n leaves %s.", player.Name, taken), player)
	game.EnterRoom(world, player, oppositeDirection(taken))
	return false
}

var opposites = map[string]string{
	"north": "south", "south": "north",
	"east": "west", "west": "east",
	"up": "below", "down": "above",
	"northeast": "southwest", "southwest": "northeast",
	"northwest": "southeast", "southeast": "northwest",
}

func oppositeDirection(dir string) string {
	if opp, ok := opposites[strings.ToLower(dir)]; ok {
		return opp
	}
	return dir
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// parseCoordinates reads "x y z" as three integers.
func parseCoordinates(arg string) (x, y, z int, err error) {
	fields := strings.Fields(arg)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("expected three coordinates")
	}
	values := make([]int, 3)
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%q is not a whole number", field)
		}
		values[i] = n
	}
	return values[0], values[1], values[2], nil
}
