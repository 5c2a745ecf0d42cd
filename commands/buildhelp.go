package commands

var BuildHelp = Define(Definition{
	Name:        "buildhelp",
	Usage:       "buildhelp",
	Description: "list building commands",
	Group:       GroupBuilder,
}, func(ctx *Context) bool {
	if !requireBuilder(ctx) {
		return false
	}
	ctx.Player.Msg(helpMessage("Building Commands:", commandsForGroup(GroupBuilder)))
	return false
})
