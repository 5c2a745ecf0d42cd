package commands

import (
	"fmt"
	"strings"
)

var Where = Define(Definition{
	Name:        "where",
	Usage:       "where",
	Description: "show player locations",
	Group:       GroupBuilder,
}, func(ctx *Context) bool {
	if !requireBuilder(ctx) {
		return false
	}
	locations := ctx.World.PlayerLocations()
	if len(locations) == 0 {
		warn(ctx.Player, "No players are currently connected.")
		return false
	}
	var builder strings.Builder
	builder.WriteString("\r\n|h|uPlayer locations:|n\r\n")
	for _, loc := range locations {
		roomName := "Unknown"
		if room, ok := ctx.World.GetRoom(loc.Room); ok {
			roomName = room.Title
		}
		fmt.Fprintf(&builder, "  |c%-18s|n - %s [%s]\r\n", loc.Name, roomName, loc.Room)
	}
	ctx.Player.Msg(builder.String())
	return false
})
