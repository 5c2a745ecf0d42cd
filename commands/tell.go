package commands

import (
	"fmt"
	"strings"

	"fluffymud/internal/game"
)

var Tell = Define(Definition{
	Name:        "tell",
	Usage:       "tell <player> <message>",
	Description: "send a private message to a player",
}, func(ctx *Context) bool {
	fields := strings.Fields(ctx.Arg)
	if len(fields) < 2 {
		warn(ctx.Player, "Usage: tell <player> <message>")
		return false
	}
	targetToken := fields[0]
	message := strings.TrimSpace(strings.TrimPrefix(ctx.Arg, targetToken))

	target, ok := ctx.World.FindPlayer(targetToken)
	if !ok {
		warn(ctx.Player, fmt.Sprintf("Nobody called %s is online.", targetToken))
		return false
	}
	if target == ctx.Player {
		warn(ctx.Player, "Talking to yourself again?")
		return false
	}
	target.Msg(fmt.Sprintf("\r\n|c%s|n tells you: %s", ctx.Player.Name, message), game.WithSender(ctx.Player.Name))
	ctx.Player.Msg(fmt.Sprintf("\r\nYou tell |c%s|n: %s", target.Name, message))
	return false
})
