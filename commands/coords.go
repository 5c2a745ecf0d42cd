package commands

import (
	"fmt"
	"strings"
)

var Coords = Define(Definition{
	Name:        "coords",
	Usage:       "coords [<x> <y> <z>||clear]",
	Description: "show or set this room's coordinates",
	Group:       GroupBuilder,
}, func(ctx *Context) bool {
	if !requireBuilder(ctx) {
		return false
	}
	room := ctx.Player.Room
	arg := strings.TrimSpace(ctx.Arg)
	switch strings.ToLower(arg) {
	case "":
		x, y, z, ok := ctx.World.RoomCoordinates(room)
		if !ok {
			ctx.Player.Msg(fmt.Sprintf("\r\nRoom %s has no coordinates.", room))
			return false
		}
		ctx.Player.Msg(fmt.Sprintf("\r\nRoom %s is at (%d, %d, %d).", room, x, y, z))
		return false
	case "clear":
		if err := ctx.World.SetRoomCoordinates(room, nil, nil, nil); err != nil {
			warn(ctx.Player, err.Error())
			return false
		}
		ctx.Player.Msg(fmt.Sprintf("\r\nCoordinates cleared for %s.", room))
		return false
	}

	x, y, z, err := parseCoordinates(arg)
	if err != nil {
		warn(ctx.Player, "Usage: coords [<x> <y> <z>||clear] ("+err.Error()+")")
		return false
	}
	if existing, ok := ctx.World.RoomAt(x, y, z); ok && existing.ID != room {
		warn(ctx.Player, fmt.Sprintf("Room %s already sits at (%d, %d, %d).", existing.ID, x, y, z))
		return false
	}
	if err := ctx.World.SetRoomCoordinates(room, &x, &y, &z); err != nil {
		warn(ctx.Player, err.Error())
		return false
	}
	ctx.Player.Msg(fmt.Sprintf("\r\nRoom %s is now at (%d, %d, %d).", room, x, y, z))
	return false
})
