package commands

import "strings"

var Describe = Define(Definition{
	Name:        "describe",
	Usage:       "describe <text>",
	Description: "update the current room description",
	Group:       GroupBuilder,
}, func(ctx *Context) bool {
	if !requireBuilder(ctx) {
		return false
	}
	desc := strings.TrimSpace(ctx.Arg)
	if desc == "" {
		warn(ctx.Player, "Usage: describe <text>")
		return false
	}
	if _, err := ctx.World.UpdateRoomDescription(ctx.Player.Room, desc); err != nil {
		warn(ctx.Player, capitalize(err.Error())+".")
		return false
	}
	ctx.Player.Msg("\r\nRoom description updated.")
	return false
})
