package commands

import (
	"fmt"
	"strings"
)

var Name = Define(Definition{
	Name:        "name",
	Usage:       "name <title>",
	Description: "rename the current room",
	Group:       GroupBuilder,
}, func(ctx *Context) bool {
	if !requireBuilder(ctx) {
		return false
	}
	newTitle := strings.TrimSpace(ctx.Arg)
	if newTitle == "" {
		warn(ctx.Player, "Usage: name <title>")
		return false
	}
	room, ok := ctx.World.GetRoom(ctx.Player.Room)
	if !ok {
		warn(ctx.Player, "You are not in a valid room.")
		return false
	}
	if strings.TrimSpace(room.Title) == newTitle {
		warn(ctx.Player, "The room already has that title.")
		return false
	}
	if _, err := ctx.World.UpdateRoomTitle(ctx.Player.Room, newTitle); err != nil {
		warn(ctx.Player, capitalize(err.Error())+".")
		return false
	}
	ctx.World.BroadcastToRoom(ctx.Player.Room, fmt.Sprintf("\r\n|m%s|n renames the room to |c%s|n.", ctx.Player.Name, newTitle), ctx.Player)
	ctx.Player.Msg(fmt.Sprintf("\r\nRoom name updated to |c%s|n.", newTitle))
	return false
})
