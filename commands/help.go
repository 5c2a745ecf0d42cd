package commands

import (
	"fmt"
	"strings"
)

var Help = Define(Definition{
	Name:        "help",
	Aliases:     []string{"?"},
	Usage:       "help [command]",
	Description: "show this message",
}, func(ctx *Context) bool {
	if topic := strings.TrimSpace(ctx.Arg); topic != "" {
		cmd, ok := Find(topic)
		if !ok {
			warn(ctx.Player, fmt.Sprintf("No help for %s.", topic))
			return false
		}
		ctx.Player.Msg(helpTopic(cmd))
		return false
	}
	message := helpMessage("Commands:", commandsForGroup(GroupGeneral))
	if ctx.Player.IsBuilder || ctx.Player.IsAdmin {
		message += "\r\nType 'buildhelp' for building commands."
	}
	if ctx.Player.IsAdmin {
		message += "\r\nType 'wizhelp' for admin commands."
	}
	ctx.Player.Msg(message)
	return false
})

func helpMessage(title string, commands []*Command) string {
	var builder strings.Builder
	builder.WriteString("\r\n|h|u" + title + "|n\r\n")
	for _, cmd := range commands {
		builder.WriteString(fmt.Sprintf("  %-22s - %s\r\n", usageOf(cmd), cmd.Description))
	}
	return builder.String()
}

func helpTopic(cmd *Command) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("\r\n|c%s|n - %s\r\n", cmd.Name, cmd.Description))
	builder.WriteString(fmt.Sprintf("Usage: %s\r\n", usageOf(cmd)))
	if len(cmd.Aliases) > 0 {
		builder.WriteString(fmt.Sprintf("Aliases: %s\r\n", strings.Join(cmd.Aliases, ", ")))
	}
	return builder.String()
}

func usageOf(cmd *Command) string {
	if strings.TrimSpace(cmd.Usage) == "" {
		return cmd.Name
	}
	return cmd.Usage
}

func commandsForGroup(group CommandGroup) []*Command {
	all := All()
	filtered := make([]*Command, 0, len(all))
	for _, cmd := range all {
		if cmd.Group == group {
			filtered = append(filtered, cmd)
		}
	}
	return filtered
}
