package commands

import (
	"fmt"

	"fluffymud/internal/game"
)

var Abilities = Define(Definition{
	Name:        "abilities",
	Aliases:     []string{"abi"},
	Usage:       "abilities",
	Description: "list your current ability values",
}, func(ctx *Context) bool {
	str, agi, mag := game.Abilities(ctx.Player.Attributes)
	ctx.Player.Msg(fmt.Sprintf("STR: %d, AGI: %d, MAG: %d", str, agi, mag))
	return false
})
