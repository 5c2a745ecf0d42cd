package commands

import "fmt"

var Yell = Define(Definition{
	Name:        "yell",
	Usage:       "yell <message>",
	Description: "yell to everyone",
}, func(ctx *Context) bool {
	msg := ctx.Arg
	if msg == "" {
		warn(ctx.Player, "Yell what?")
		return false
	}
	ctx.World.BroadcastToAll(fmt.Sprintf("\r\n|c%s|n yells: %s", ctx.Player.Name, msg), ctx.Player)
	ctx.Player.Msg(fmt.Sprintf("\r\n|h|yYou yell:|n %s", msg))
	return false
})
