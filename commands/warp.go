package commands

import "fmt"

var Warp = Define(Definition{
	Name:        "warp",
	Usage:       "warp <x> <y> <z>",
	Description: "travel to the room at the given coordinates",
	Group:       GroupBuilder,
}, func(ctx *Context) bool {
	if !requireBuilder(ctx) {
		return false
	}
	x, y, z, err := parseCoordinates(ctx.Arg)
	if err != nil {
		warn(ctx.Player, "Usage: warp <x> <y> <z> ("+err.Error()+")")
		return false
	}
	room, ok := ctx.World.RoomAt(x, y, z)
	if !ok {
		warn(ctx.Player, fmt.Sprintf("Nothing exists at (%d, %d, %d).", x, y, z))
		return false
	}
	prev := ctx.Player.Room
	if prev == room.ID {
		ctx.Player.Msg("\r\nYou are already there.")
		return false
	}
	if err := ctx.World.MoveToRoom(ctx.Player, room.ID); err != nil {
		warn(ctx.Player, err.Error())
		return false
	}
	ctx.World.BroadcastToRoom(prev, fmt.Sprintf("\r\n|m%s|n vanishes in a puff of fluff.", ctx.Player.Name), ctx.Player)
	ctx.World.BroadcastToRoom(room.ID, fmt.Sprintf("\r\n|m%s|n appears in a puff of fluff.", ctx.Player.Name), ctx.Player)
	ctx.Player.Msg("\r\n" + ctx.World.Appearance(room.ID, ctx.Player))
	return false
})
