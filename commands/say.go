package commands

import "fmt"

var Say = Define(Definition{
	Name:        "say",
	Aliases:     []string{"'"},
	Usage:       "say <message>",
	Description: "chat to the room",
}, func(ctx *Context) bool {
	msg := ctx.Arg
	if msg == "" {
		warn(ctx.Player, "Say what?")
		return false
	}
	ctx.World.BroadcastToRoom(ctx.Player.Room, fmt.Sprintf("\r\n|c%s|n says: %s", ctx.Player.Name, msg), ctx.Player)
	ctx.Player.Msg(fmt.Sprintf("\r\n|h|yYou say:|n %s", msg))
	return false
})
