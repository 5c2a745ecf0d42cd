package commands

var Quit = Define(Definition{
	Name:        "quit",
	Aliases:     []string{"q"},
	Usage:       "quit",
	Description: "disconnect",
}, func(ctx *Context) bool {
	ctx.Player.Msg("\r\nGoodbye.\r\n")
	return true
})
