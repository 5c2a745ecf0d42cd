package commands

import "fmt"

var Whisper = Define(Definition{
	Name:        "whisper",
	Usage:       "whisper <message>",
	Description: "whisper to the room; neighbours may overhear",
}, func(ctx *Context) bool {
	msg := ctx.Arg
	if msg == "" {
		warn(ctx.Player, "Whisper what?")
		return false
	}
	ctx.World.BroadcastToRoom(ctx.Player.Room, fmt.Sprintf("\r\n|c%s|n whispers: %s", ctx.Player.Name, msg), ctx.Player)
	for _, room := range ctx.World.AdjacentRooms(ctx.Player.Room) {
		ctx.World.BroadcastToRoom(room, fmt.Sprintf("\r\nYou hear |c%s|n whisper from nearby: %s", ctx.Player.Name, msg), ctx.Player)
	}
	ctx.Player.Msg(fmt.Sprintf("\r\n|h|yYou whisper:|n %s", msg))
	return false
})
