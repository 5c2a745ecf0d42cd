package commands

import (
	"fmt"

	"fluffymud/internal/game"
)

var Diagnose = Define(Definition{
	Name:        "diagnose",
	Usage:       "diagnose [target]",
	Description: "see hit points, mana and move points and update your prompt",
}, func(ctx *Context) bool {
	target, ok := resolveTarget(ctx, ctx.Arg)
	if !ok {
		ctx.Player.Msg("You don't see that here.")
		return false
	}
	hp, mana, move, ok := game.Vitals(target.Attributes)
	if !ok {
		ctx.Player.Msg("That is not a valid target!")
		return false
	}
	text := fmt.Sprintf("You diagnose %s as having %d HIT POINTS, %d MANA and %d MOVE POINTS.", target.Name, hp, mana, move)
	prompt := fmt.Sprintf("HP: %d, MN: %d, MV: %d", hp, mana, move)
	ctx.Player.Msg(text, game.WithPrompt(prompt))
	return false
})
