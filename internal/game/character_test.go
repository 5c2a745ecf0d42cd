package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCharacterAppliesDefaults(t *testing.T) {
	a := NewAttributes(nil)
	written := InitCharacter(a)
	assert.Equal(t, len(characterDefaults()), written)

	assert.Equal(t, GenderAmbiguous, GenderOf(a))
	age, _ := a.Int(AttrAge)
	assert.Equal(t, 5, age)
	level, _ := a.Int(AttrLevel)
	assert.Equal(t, 1, level)
	maxHP, _ := a.Int(AttrMaxHitPoints)
	assert.Equal(t, 100, maxHP)
	race, _ := a.String(AttrRace)
	assert.Equal(t, "human", race)
	classes, ok := a.Strings(AttrClasses)
	require.True(t, ok)
	assert.Empty(t, classes)
	stats, ok := a.IntMap(AttrStats)
	require.True(t, ok)
	assert.Len(t, stats, len(StatNames))
	assert.False(t, a.Has(AttrPrompt))
	enabled, _ := a.Bool(AttrPromptEnabled)
	assert.True(t, enabled)
}

func TestInitCharacterDoesNotOverwrite(t *testing.T) {
	a := NewAttributes(map[string]any{
		GenderAttribute: "female",
		AttrAge:         40,
	})
	InitCharacter(a)
	assert.Equal(t, GenderFemale, GenderOf(a))
	age, _ := a.Int(AttrAge)
	assert.Equal(t, 40, age)

	assert.Zero(t, InitCharacter(a), "second call writes nothing")
}

func TestInitCharacterNil(t *testing.T) {
	assert.Zero(t, InitCharacter(nil))
}

func TestVitals(t *testing.T) {
	a := NewAttributes(map[string]any{
		AttrHitPoints:  12,
		AttrManaPoints: float64(8),
	})
	_, _, _, ok := Vitals(a)
	assert.False(t, ok, "missing move points")

	a.Set(AttrMovePoints, 3)
	hp, mana, move, ok := Vitals(a)
	assert.True(t, ok)
	assert.Equal(t, []int{12, 8, 3}, []int{hp, mana, move})
}

func TestAbilitiesUseStrDexInt(t *testing.T) {
	a := NewAttributes(map[string]any{
		AttrStats: map[string]int{"STR": 14, "DEX": 11, "INT": 9, "WIS": 18},
	})
	str, agi, mag := Abilities(a)
	assert.Equal(t, 14, str)
	assert.Equal(t, 11, agi)
	assert.Equal(t, 9, mag)

	str, agi, mag = Abilities(NewAttributes(nil))
	assert.Equal(t, []int{0, 0, 0}, []int{str, agi, mag})
}
