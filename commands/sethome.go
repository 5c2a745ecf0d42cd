package commands

import (
	"fmt"
	"strings"
)

var SetHome = Define(Definition{
	Name:        "sethome",
	Usage:       "sethome",
	Description: "bind your recall point to the current room",
}, func(ctx *Context) bool {
	roomID := ctx.Player.Room
	room, ok := ctx.World.GetRoom(roomID)
	if !ok {
		warn(ctx.Player, "You cannot bind yourself here.")
		return false
	}
	if err := ctx.World.SetHome(ctx.Player, roomID); err != nil {
		warn(ctx.Player, err.Error())
		return false
	}
	destination := string(roomID)
	if strings.TrimSpace(room.Title) != "" {
		destination = room.Title
	}
	ctx.Player.Msg(fmt.Sprintf("\r\nYou attune yourself to |C%s|n.", destination))
	return false
})
