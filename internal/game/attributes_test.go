package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributesNamesAreCaseInsensitive(t *testing.T) {
	a := NewAttributes(map[string]any{"Gender": "male"})

	v, ok := a.Attribute("GENDER")
	require.True(t, ok)
	assert.Equal(t, "male", v)
	assert.True(t, a.Has(" gender "))
	assert.Equal(t, []string{"gender"}, a.Names())
}

func TestAttributesSetNilDeletes(t *testing.T) {
	a := NewAttributes(nil)
	a.Set("title", "the Brave")
	a.Set("title", nil)
	assert.False(t, a.Has("title"))

	a.Set("level", 3)
	a.Delete("level")
	assert.Equal(t, "fallback", a.Get("level", "fallback"))
}

func TestAttributesSetDefaultKeepsExisting(t *testing.T) {
	a := NewAttributes(map[string]any{"age": 30})
	assert.False(t, a.SetDefault("age", 5))
	assert.True(t, a.SetDefault("level", 1))

	age, _ := a.Int("age")
	assert.Equal(t, 30, age)
}

func TestAttributesTypedAccessors(t *testing.T) {
	a := NewAttributes(map[string]any{
		"json_number": float64(12),
		"text_number": " 7 ",
		"not_number":  "seven",
		"flag":        true,
		"classes":     []any{"bard", "rogue"},
		"stats":       map[string]any{"STR": float64(3), "DEX": 4},
		"gender":      GenderFemale,
	})

	n, ok := a.Int("json_number")
	assert.True(t, ok)
	assert.Equal(t, 12, n)
	n, ok = a.Int("text_number")
	assert.True(t, ok)
	assert.Equal(t, 7, n)
	_, ok = a.Int("not_number")
	assert.False(t, ok)

	b, ok := a.Bool("flag")
	assert.True(t, ok && b)

	classes, ok := a.Strings("classes")
	assert.True(t, ok)
	assert.Equal(t, []string{"bard", "rogue"}, classes)

	stats, ok := a.IntMap("stats")
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"STR": 3, "DEX": 4}, stats)

	s, ok := a.String("gender")
	assert.True(t, ok)
	assert.Equal(t, "female", s)
}

func TestAttributesSnapshotAndLoad(t *testing.T) {
	a := NewAttributes(map[string]any{"race": "elf"})
	snap := a.Snapshot()
	snap["race"] = "orc"
	race, _ := a.String("race")
	assert.Equal(t, "elf", race, "snapshot must be a copy")

	a.Load(map[string]any{"Level": 2, "skip": nil})
	assert.False(t, a.Has("race"))
	assert.False(t, a.Has("skip"))
	level, _ := a.Int("level")
	assert.Equal(t, 2, level)
}

func TestAttributesNilReceiverReadsNothing(t *testing.T) {
	var a *Attributes
	_, ok := a.Attribute("gender")
	assert.False(t, ok)
	assert.Equal(t, GenderAmbiguous, GenderOf(a))
}

func TestAttributesConcurrentAccess(t *testing.T) {
	a := NewAttributes(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				a.Set("counter", i*j)
				_, _ = a.Int("counter")
				_ = GenderOf(a)
			}
		}(i)
	}
	wg.Wait()
	assert.True(t, a.Has("counter"))
}

func TestGenderOfFallsBackToAmbiguous(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Gender
	}{
		{"male", "male", GenderMale},
		{"female", "female", GenderFemale},
		{"neutral", "neutral", GenderNeutral},
		{"ambiguous", "ambiguous", GenderAmbiguous},
		{"typed", GenderNeutral, GenderNeutral},
		{"capitalised is unknown", "Male", GenderAmbiguous},
		{"unknown", "robot", GenderAmbiguous},
		{"wrong type", 7, GenderAmbiguous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAttributes(map[string]any{GenderAttribute: tt.value})
			assert.Equal(t, tt.want, GenderOf(a))
		})
	}
	assert.Equal(t, GenderAmbiguous, GenderOf(NewAttributes(nil)), "unset")
	assert.Equal(t, GenderAmbiguous, GenderOf(nil), "no subject")
}

func TestParseGender(t *testing.T) {
	g, ok := ParseGender("  FeMale ")
	assert.True(t, ok)
	assert.Equal(t, GenderFemale, g)

	_, ok = ParseGender("robot")
	assert.False(t, ok)
	_, ok = ParseGender("")
	assert.False(t, ok)
}

func TestPronounCaseHelpers(t *testing.T) {
	assert.Equal(t, "possessive-absolute", PossessiveAbsolute.String())
	assert.Equal(t, "they", Pronoun(Gender("robot"), Subjective))

	c, upper, ok := caseForMarker('A')
	assert.True(t, ok)
	assert.True(t, upper)
	assert.Equal(t, PossessiveAbsolute, c)

	_, _, ok = caseForMarker('x')
	assert.False(t, ok)
}
