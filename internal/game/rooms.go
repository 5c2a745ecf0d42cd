package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type RoomID string

// Tag labels a room with a value inside a category.
type Tag struct {
	Value    string `json:"value"`
	Category string `json:"category"`
}

// Thing is an inanimate object lying in a room.
type Thing struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NewThing creates a thing with a fresh identifier.
func NewThing(name, description string) Thing {
	return Thing{ID: uuid.NewString(), Name: name, Description: description}
}

var thingNamespace = uuid.MustParse("5b0e7c1e-3f7a-4d9e-9a51-6c2f0d7e8b43")

// stableThingID derives the id of an area thing that has none, so the same
// area file yields the same ids on every boot.
func stableThingID(room RoomID, index int, name string) string {
	return uuid.NewSHA1(thingNamespace, []byte(fmt.Sprintf("%s/%d/%s", room, index, name))).String()
}

type Room struct {
	ID          RoomID            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Exits       map[string]RoomID `json:"exits"`
	Things      []Thing           `json:"things,omitempty"`
	Tags        []Tag             `json:"tags,omitempty"`
}

// Coordinate tag categories.
const (
	CategoryCoordX = "coordx"
	CategoryCoordY = "coordy"
	CategoryCoordZ = "coordz"
)

// Tag returns the first tag value in category.
func (r *Room) Tag(category string) (string, bool) {
	for _, tag := range r.Tags {
		if tag.Category == category {
			return tag.Value, true
		}
	}
	return "", false
}

// SetTag replaces the tag in category. An empty value removes it.
func (r *Room) SetTag(category, value string) {
	kept := r.Tags[:0]
	for _, tag := range r.Tags {
		if tag.Category != category {
			kept = append(kept, tag)
		}
	}
	r.Tags = kept
	if value != "" {
		r.Tags = append(r.Tags, Tag{Value: value, Category: category})
	}
}

func (r *Room) coordinate(category string) (int, bool) {
	raw, ok := r.Tag(category)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (r *Room) setCoordinate(category string, value *int) {
	if value == nil {
		r.SetTag(category, "")
		return
	}
	r.SetTag(category, strconv.Itoa(*value))
}

// X returns the room's X coordinate, if set.
func (r *Room) X() (int, bool) { return r.coordinate(CategoryCoordX) }

// Y returns the room's Y coordinate, if set.
func (r *Room) Y() (int, bool) { return r.coordinate(CategoryCoordY) }

// Z returns the room's Z coordinate, if set.
func (r *Room) Z() (int, bool) { return r.coordinate(CategoryCoordZ) }

// SetX changes the X coordinate; nil clears it.
func (r *Room) SetX(x *int) { r.setCoordinate(CategoryCoordX, x) }

// SetY changes the Y coordinate; nil clears it.
func (r *Room) SetY(y *int) { r.setCoordinate(CategoryCoordY, y) }

// SetZ changes the Z coordinate; nil clears it.
func (r *Room) SetZ(z *int) { r.setCoordinate(CategoryCoordZ, z) }

// Coordinates returns all three coordinates. ok is false unless every axis
// is set.
func (r *Room) Coordinates() (x, y, z int, ok bool) {
	x, okX := r.X()
	y, okY := r.Y()
	z, okZ := r.Z()
	return x, y, z, okX && okY && okZ
}

func (r *Room) at(x, y, z int) bool {
	return r.hasTag(CategoryCoordX, strconv.Itoa(x)) &&
		r.hasTag(CategoryCoordY, strconv.Itoa(y)) &&
		r.hasTag(CategoryCoordZ, strconv.Itoa(z))
}

func (r *Room) hasTag(category, value string) bool {
	for _, tag := range r.Tags {
		if tag.Category == category && tag.Value == value {
			return true
		}
	}
	return false
}

// ExitList renders the exits for a room in a deterministic order.
func ExitList(r *Room) string {
	if len(r.Exits) == 0 {
		return "none"
	}
	return strings.Join(sortedExits(r), " ")
}

func sortedExits(r *Room) []string {
	keys := make([]string, 0, len(r.Exits))
	for k := range r.Exits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FilterOut returns a copy of list without the provided name.
func FilterOut(list []string, name string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != name {
			out = append(out, v)
		}
	}
	return out
}

// renderAppearance builds the markup shown to a player looking at a room.
// users are the other players present, already excluding the looker.
func renderAppearance(r *Room, users []string, width int, describeExit func(RoomID) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "|c%s|n\n", r.Title)
	if desc := strings.TrimSpace(r.Description); desc != "" {
		b.WriteString(WrapText(desc, width))
		b.WriteString("\n")
	}

	if len(users) > 0 || len(r.Things) > 0 {
		for _, line := range groupThings(r.Things) {
			fmt.Fprintf(&b, "\n|g%s|n", line)
		}
		for _, user := range users {
			fmt.Fprintf(&b, "\n|m%s|n is here.", user)
		}
	}

	if len(r.Exits) > 0 {
		b.WriteString("\n\n|[B|!WExits:|n\n")
		for _, dir := range sortedExits(r) {
			dest := describeExit(r.Exits[dir])
			fmt.Fprintf(&b, "|[B|!W%s: %s|n\n", capitalizeFirst(dir), dest)
		}
	}
	return b.String()
}

// groupThings collapses identically named things into one numbered entry,
// sorted by name.
func groupThings(things []Thing) []string {
	counts := make(map[string]int)
	names := make([]string, 0, len(things))
	for _, thing := range things {
		name := strings.TrimSpace(thing.Name)
		if name == "" {
			continue
		}
		if counts[name] == 0 {
			names = append(names, name)
		}
		counts[name]++
	}
	sort.Strings(names)
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = NumberedName(counts[name], name)
	}
	return out
}

var numberWords = []string{
	"zero", "one", "two", "three", "four", "five", "six",
	"seven", "eight", "nine", "ten", "eleven", "twelve",
}

// NumberedName renders "a rock" for one item and "three rocks" for several.
func NumberedName(count int, name string) string {
	if count == 1 {
		return indefiniteArticle(name) + " " + name
	}
	number := strconv.Itoa(count)
	if count >= 0 && count < len(numberWords) {
		number = numberWords[count]
	}
	return number + " " + Pluralize(name)
}

func indefiniteArticle(name string) string {
	if name == "" {
		return "a"
	}
	switch strings.ToLower(name[:1]) {
	case "a", "e", "i", "o", "u":
		return "an"
	}
	return "a"
}

// Pluralize applies simple English plural rules to the last word of name.
func Pluralize(name string) string {
	lower := strings.ToLower(name)
	switch {
	case lower == "":
		return name
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"), strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "sh"):
		return name + "es"
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !strings.ContainsAny(lower[len(lower)-2:len(lower)-1], "aeiou"):
		return name[:len(name)-1] + "ies"
	default:
		return name + "s"
	}
}
