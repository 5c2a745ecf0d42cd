package commands

import (
	"fmt"

	"fluffymud/internal/game"
)

var Recall = Define(Definition{
	Name:        "recall",
	Usage:       "recall",
	Description: "return to your bound home",
}, func(ctx *Context) bool {
	destination := ctx.Player.Home
	if destination == "" {
		destination = game.StartRoom
	}
	if destination == ctx.Player.Room {
		warn(ctx.Player, "You are already home.")
		return false
	}
	prev := ctx.Player.Room
	if err := ctx.World.MoveToRoom(ctx.Player, destination); err != nil {
		warn(ctx.Player, "Your home has been lost to the void.")
		return false
	}
	ctx.World.BroadcastToRoom(prev, fmt.Sprintf("\r\n|m%s|n is wrapped in a flurry of feathers and vanishes.", ctx.Player.Name), ctx.Player)
	ctx.Player.Msg("\r\nYou answer the call of home.")
	game.EnterRoom(ctx.World, ctx.Player, "")
	return false
})
