package commands

import (
	"fmt"
	"strings"
)

var CommandToggle = Define(Definition{
	Name:        "command",
	Usage:       "command <name> <on||off>",
	Description: "enable or disable a command (admin only)",
	Group:       GroupAdmin,
}, func(ctx *Context) bool {
	if !requireAdmin(ctx) {
		return false
	}
	parts := strings.Fields(ctx.Arg)
	if len(parts) != 2 {
		warn(ctx.Player, "Usage: command <name> <on||off>")
		return false
	}
	var enable bool
	switch strings.ToLower(parts[1]) {
	case "on", "enable", "enabled", "true":
		enable = true
	case "off", "disable", "disabled", "false":
		enable = false
	default:
		warn(ctx.Player, "Usage: command <name> <on||off>")
		return false
	}

	target, ok := Find(parts[0])
	if !ok {
		warn(ctx.Player, fmt.Sprintf("Unknown command: %s", parts[0]))
		return false
	}
	if target == ctx.Command {
		warn(ctx.Player, "The command toggle cannot disable itself.")
		return false
	}

	disabled := ctx.World.CommandDisabled(target.Name)
	switch {
	case enable && !disabled:
		warn(ctx.Player, fmt.Sprintf("Command %s is already enabled.", target.Name))
	case enable:
		ctx.World.SetCommandDisabled(target.Name, false)
		ctx.Player.Msg(fmt.Sprintf("\r\nCommand |c%s|n is now enabled.", target.Name))
	case disabled:
		warn(ctx.Player, fmt.Sprintf("Command %s is already disabled.", target.Name))
	default:
		ctx.World.SetCommandDisabled(target.Name, true)
		ctx.Player.Msg(fmt.Sprintf("\r\nCommand |y%s|n is now disabled.", target.Name))
	}
	return false
})
