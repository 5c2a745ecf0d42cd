package commands

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fluffymud/internal/game"
)

var genderUsage = "Usage: @gender " + genderChoices()

func genderChoices() string {
	names := make([]string, 0, 4)
	for _, g := range game.Genders() {
		names = append(names, string(g))
	}
	return strings.Join(names, "||")
}

var SetGender = Define(Definition{
	Name:        "@gender",
	Aliases:     []string{"@sex"},
	Usage:       "@gender " + genderChoices(),
	Description: "set the gender your pronouns follow",
	Group:       GroupAdmin,
}, func(ctx *Context) bool {
	if !requireAdmin(ctx) {
		return false
	}
	gender, ok := game.ParseGender(ctx.Arg)
	if !ok {
		ctx.Player.Msg(genderUsage)
		return false
	}
	ctx.Player.Attributes.Set(game.GenderAttribute, string(gender))
	ctx.World.Logger().Info("gender changed",
		zap.String("player", ctx.Player.Name),
		zap.String("gender", string(gender)))
	ctx.Player.Msg(fmt.Sprintf("Your gender was set to %s.", gender))
	return false
})
