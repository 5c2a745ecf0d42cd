package commands

import (
	"fmt"
	"strings"

	"fluffymud/internal/game"
)

var Goto = Define(Definition{
	Name:        "goto",
	Usage:       "goto <room>",
	Description: "teleport to a room by id",
	Group:       GroupBuilder,
}, func(ctx *Context) bool {
	if !requireBuilder(ctx) {
		return false
	}
	target := strings.TrimSpace(ctx.Arg)
	if target == "" {
		warn(ctx.Player, "Usage: goto <room>")
		return false
	}
	roomID := game.RoomID(target)
	prev := ctx.Player.Room
	if err := ctx.World.MoveToRoom(ctx.Player, roomID); err != nil {
		warn(ctx.Player, "No such room.")
		return false
	}
	if prev != roomID {
		ctx.World.BroadcastToRoom(prev, fmt.Sprintf("\r\n|m%s|n vanishes in a shimmer of light.", ctx.Player.Name), ctx.Player)
	}
	game.EnterRoom(ctx.World, ctx.Player, "")
	return false
})
