package commands

import (
	"fmt"
	"strings"

	"fluffymud/internal/game"
)

var Who = Define(Definition{
	Name:        "who",
	Usage:       "who",
	Description: "list connected players",
}, func(ctx *Context) bool {
	names := ctx.World.ListPlayers(false, "")
	others := game.FilterOut(names, ctx.Player.Name)
	if len(others) == 0 {
		ctx.Player.Msg("\r\nYou are the only adventurer online.")
		return false
	}
	colored := make([]string, len(others))
	for i, name := range others {
		colored[i] = fmt.Sprintf("|c%s|n", name)
	}
	ctx.Player.Msg("\r\nOther adventurers online: " + strings.Join(colored, ", "))
	return false
})
