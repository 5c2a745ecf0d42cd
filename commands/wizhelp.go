package commands

var WizHelp = Define(Definition{
	Name:        "wizhelp",
	Usage:       "wizhelp",
	Description: "list administrative commands",
	Group:       GroupAdmin,
}, func(ctx *Context) bool {
	if !requireAdmin(ctx) {
		return false
	}
	ctx.Player.Msg(helpMessage("Admin Commands:", commandsForGroup(GroupAdmin)))
	return false
})
