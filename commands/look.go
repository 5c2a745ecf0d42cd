package commands

import (
	"fmt"
	"strings"

	"fluffymud/internal/game"
)

var Look = Define(Definition{
	Name:        "look",
	Aliases:     []string{"l"},
	Usage:       "look [target]",
	Description: "describe your surroundings or inspect a target",
}, func(ctx *Context) bool {
	room, ok := ctx.World.GetRoom(ctx.Player.Room)
	if !ok {
		warn(ctx.Player, "You see only void.")
		return false
	}

	target := strings.TrimSpace(ctx.Arg)
	if target == "" {
		ctx.Player.Msg("\r\n" + ctx.World.Appearance(room.ID, ctx.Player))
		return false
	}

	width, _ := ctx.Player.WindowSize()
	if other, found := ctx.World.FindInRoom(room.ID, target); found && other != ctx.Player {
		// markers refer to the one being looked at, not the looker
		line := game.SubstitutePronouns(
			fmt.Sprintf("\r\n|c%s|n is here. |S looks back at you.", other.Name),
			other.Gender(),
		)
		ctx.Player.Msg(line.Text)
		return false
	}
	if thing, found := findThing(ctx.Player, room, target); found {
		desc := strings.TrimSpace(thing.Description)
		if desc == "" {
			desc = "You see nothing special."
		}
		verb := "study"
		if !ctx.Player.Examine(thing) {
			verb = "study again"
		}
		ctx.Player.Msg(fmt.Sprintf("\r\nYou %s |g%s|n. %s", verb, thing.Name, game.WrapText(desc, width)))
		return false
	}
	if dir, dest, found := ctx.World.ResolveExit(room.ID, target); found {
		message := fmt.Sprintf("\r\nLooking %s you glimpse a passage.", dir)
		if next, ok := ctx.World.GetRoom(dest); ok {
			message = fmt.Sprintf("\r\nLooking %s you glimpse |c%s|n.", dir, next.Title)
			if desc := strings.TrimSpace(next.Description); desc != "" {
				message += " " + game.WrapText(desc, width)
			}
		}
		ctx.Player.Msg(message)
		return false
	}
	ctx.Player.Msg("\r\nYou don't see that here.")
	return false
})

// findThing matches target against the room's things, exact names before
// prefixes. Among same-named things the first one the player has not yet
// examined wins, so repeated looks walk through a pile.
func findThing(p *game.Player, room *game.Room, target string) (game.Thing, bool) {
	needle := strings.ToLower(strings.TrimSpace(target))
	var exact, prefix []game.Thing
	for _, thing := range room.Things {
		name := strings.ToLower(thing.Name)
		switch {
		case name == needle:
			exact = append(exact, thing)
		case strings.HasPrefix(name, needle):
			prefix = append(prefix, thing)
		}
	}
	matches := exact
	if len(matches) == 0 {
		matches = prefix
	}
	if len(matches) == 0 {
		return game.Thing{}, false
	}
	for _, thing := range matches {
		if !p.Examined(thing.ID) {
			return thing, true
		}
	}
	return matches[0], true
}
