package commands

import (
	"fmt"

	"fluffymud/internal/game"
)

var Emote = Define(Definition{
	Name:        "emote",
	Aliases:     []string{":", "pose"},
	Usage:       "emote <action>",
	Description: "emote to the room; ||s, ||o, ||p and ||a become your pronouns",
}, func(ctx *Context) bool {
	action := ctx.Arg
	if action == "" {
		warn(ctx.Player, "Emote what?")
		return false
	}
	pose := game.SubstitutePronouns(fmt.Sprintf("|c%s|n %s", ctx.Player.Name, action), ctx.Player.Gender())
	text, _ := pose.Text.(string)
	ctx.World.BroadcastToRoom(ctx.Player.Room, "\r\n"+text, ctx.Player)
	ctx.Player.Msg("\r\n" + text)
	return false
})
