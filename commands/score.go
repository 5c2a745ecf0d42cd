package commands

import (
	"fmt"
	"strings"

	"fluffymud/internal/game"
)

var Score = Define(Definition{
	Name:        "score",
	Usage:       "score",
	Description: "show your character sheet",
}, func(ctx *Context) bool {
	ctx.Player.Msg(scoreSheet(ctx.World, ctx.Player))
	return false
})

func scoreSheet(world *game.World, player *game.Player) string {
	attrs := player.Attributes
	intAttr := func(name string) int {
		n, _ := attrs.Int(name)
		return n
	}
	race, _ := attrs.String(game.AttrRace)
	if race == "" {
		race = "unknown"
	}
	classes, _ := attrs.Strings(game.AttrClasses)
	classList := "none"
	if len(classes) > 0 {
		classList = strings.Join(classes, ", ")
	}

	var b strings.Builder
	b.WriteString("\r\n|h|uCharacter sheet|n\r\n")
	fmt.Fprintf(&b, "  Name: |c%s|n\r\n", player.Name)
	fmt.Fprintf(&b, "  Gender: %s (|s/|o/|p)\r\n", player.Gender())
	fmt.Fprintf(&b, "  Race: %s   Age: %d   Level: |g%d|n\r\n", race, intAttr(game.AttrAge), intAttr(game.AttrLevel))
	fmt.Fprintf(&b, "  Location: %s\r\n", describeRoom(world, player.Room))
	fmt.Fprintf(&b, "  Hit points: |g%d/%d|n (+%d)\r\n",
		intAttr(game.AttrHitPoints), intAttr(game.AttrMaxHitPoints), intAttr(game.AttrHitRegenRate))
	fmt.Fprintf(&b, "  Mana: |m%d/%d|n (+%d)\r\n",
		intAttr(game.AttrManaPoints), intAttr(game.AttrMaxManaPoints), intAttr(game.AttrManaRegenRate))
	fmt.Fprintf(&b, "  Move points: |y%d/%d|n (+%d)\r\n",
		intAttr(game.AttrMovePoints), intAttr(game.AttrMaxMovePoints), intAttr(game.AttrMoveRegenRate))
	fmt.Fprintf(&b, "  Attack power: %d\r\n", intAttr(game.AttrAttackPower))
	fmt.Fprintf(&b, "  Classes: %s\r\n", classList)
	examined, _ := attrs.Strings(game.AttrExamined)
	fmt.Fprintf(&b, "  Things examined: %d\r\n", len(examined))

	stats, _ := attrs.IntMap(game.AttrStats)
	parts := make([]string, 0, len(game.StatNames))
	for _, name := range game.StatNames {
		parts = append(parts, fmt.Sprintf("%s %d", name, stats[name]))
	}
	fmt.Fprintf(&b, "  Stats: %s\r\n", strings.Join(parts, ", "))
	return b.String()
}

func describeRoom(world *game.World, id game.RoomID) string {
	if id == "" {
		return "|yunknown|n"
	}
	if room, ok := world.GetRoom(id); ok {
		title := strings.TrimSpace(room.Title)
		if title == "" {
			title = string(id)
		}
		return fmt.Sprintf("|c%s|n (%s)", title, id)
	}
	return "|y" + string(id) + "|n"
}
