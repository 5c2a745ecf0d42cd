package commands

import "strings"

var directionAliases = map[string]string{
	"n": "north", "s": "south", "e": "east", "w": "west",
	"u": "up", "d": "down",
	"ne": "northeast", "nw": "northwest", "se": "southeast", "sw": "southwest",
}

var Move = Define(Definition{
	Name: "go",
	Aliases: []string{
		"n", "s", "e", "w", "u", "d", "ne", "nw", "se", "sw",
		"north", "south", "east", "west", "up", "down",
	},
	Usage:       "go <direction>",
	Description: "move (n/s/e/w/u/d and more)",
}, func(ctx *Context) bool {
	dir := strings.ToLower(ctx.Input)
	if dir == "go" {
		dir = strings.ToLower(strings.TrimSpace(ctx.Arg))
	}
	if full, ok := directionAliases[dir]; ok {
		dir = full
	}
	if dir == "" {
		warn(ctx.Player, "Usage: go <direction>")
		return false
	}
	return move(ctx.World, ctx.Player, dir)
})
