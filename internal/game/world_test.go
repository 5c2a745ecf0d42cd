package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func coordRoom(id RoomID, x, y, z int) *Room {
	r := &Room{ID: id, Title: string(id), Exits: map[string]RoomID{}}
	r.SetX(&x)
	r.SetY(&y)
	r.SetZ(&z)
	return r
}

func TestWorldMoveUnknownRoom(t *testing.T) {
	w := NewWorldWithRooms(map[RoomID]*Room{})
	p := &Player{Name: "tester", Room: RoomID("missing")}

	_, err := w.Move(p, "north")
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("Move() error = %v, want ErrRoomNotFound", err)
	}
	if err.Error() != "room not found: missing" {
		t.Fatalf("unexpected error text: %q", err.Error())
	}
}

func TestWorldMoveFollowsExitPrefix(t *testing.T) {
	w := NewWorldWithRooms(map[RoomID]*Room{
		"hall":   {ID: "hall", Exits: map[string]RoomID{"north": "garden"}},
		"garden": {ID: "garden", Exits: map[string]RoomID{}},
	})
	p := NewPlayer("tester", "hall")

	dir, err := w.Move(p, "n")
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if dir != "north" || p.Room != "garden" {
		t.Fatalf("Move() = %q, room %q; want north, garden", dir, p.Room)
	}
	if _, err := w.Move(p, "south"); !errors.Is(err, ErrNoExit) {
		t.Fatalf("Move() without exit error = %v, want ErrNoExit", err)
	}
}

func TestPlayerAllowCommandThrottles(t *testing.T) {
	p := &Player{}
	base := time.Now()
	for i := 0; i < commandLimit; i++ {
		if !p.allowCommand(base.Add(time.Duration(i) * (commandWindow / commandLimit))) {
			t.Fatalf("command %d should be allowed", i)
		}
	}
	if p.allowCommand(base.Add(commandWindow / 2)) {
		t.Fatalf("command should have been throttled")
	}
	if !p.allowCommand(base.Add(commandWindow + time.Millisecond)) {
		t.Fatalf("command should be allowed after window")
	}
}

func TestRoomAtRequiresAllThreeCoordinates(t *testing.T) {
	partial := &Room{ID: "partial"}
	x, y := 1, 2
	partial.SetX(&x)
	partial.SetY(&y)
	w := NewWorldWithRooms(map[RoomID]*Room{
		"b-room":  coordRoom("b-room", 1, 2, 3),
		"a-room":  coordRoom("a-room", 1, 2, 3),
		"other":   coordRoom("other", 0, 0, 0),
		"partial": partial,
	})

	room, ok := w.RoomAt(1, 2, 3)
	if !ok || room.ID != "a-room" {
		t.Fatalf("RoomAt(1,2,3) = %v, %v; want a-room", room, ok)
	}
	if _, ok := w.RoomAt(1, 2, 0); ok {
		t.Fatalf("RoomAt(1,2,0) matched a partially tagged room")
	}
	if room, ok := w.RoomAt(0, 0, 0); !ok || room.ID != "other" {
		t.Fatalf("RoomAt(0,0,0) = %v, %v; want other", room, ok)
	}
}

func TestSetRoomCoordinatesRoundTrip(t *testing.T) {
	w := NewWorldWithRooms(map[RoomID]*Room{"hall": {ID: "hall"}})
	x, y, z := -4, 9, 0
	if err := w.SetRoomCoordinates("hall", &x, &y, &z); err != nil {
		t.Fatalf("SetRoomCoordinates: %v", err)
	}
	gx, gy, gz, ok := w.RoomCoordinates("hall")
	if !ok || gx != x || gy != y || gz != z {
		t.Fatalf("RoomCoordinates = %d,%d,%d,%v; want %d,%d,%d", gx, gy, gz, ok, x, y, z)
	}
	if err := w.SetRoomCoordinates("hall", nil, &y, &z); err != nil {
		t.Fatalf("SetRoomCoordinates: %v", err)
	}
	if _, _, _, ok := w.RoomCoordinates("hall"); ok {
		t.Fatalf("cleared X should leave coordinates unset")
	}
	if err := w.SetRoomCoordinates("nowhere", &x, &y, &z); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("SetRoomCoordinates unknown room error = %v", err)
	}
}

func TestAppearanceListsThingsPlayersAndExits(t *testing.T) {
	w := NewWorldWithRooms(map[RoomID]*Room{
		"hall": {
			ID:          "hall",
			Title:       "Great Hall",
			Description: "Banners hang from the rafters.",
			Exits:       map[string]RoomID{"north": "garden", "east": "vault"},
			Things: []Thing{
				NewThing("rock", ""),
				NewThing("rock", ""),
				NewThing("rock", ""),
				NewThing("apple", ""),
			},
		},
		"garden": {ID: "garden", Title: "Rose Garden"},
	})
	looker := NewPlayer("Looker", "hall")
	other := NewPlayer("Other", "hall")
	w.AddPlayerForTest(looker)
	w.AddPlayerForTest(other)

	got := w.Appearance("hall", looker)
	want := "|cGreat Hall|n\n" +
		"Banners hang from the rafters.\n" +
		"\n|gan apple|n" +
		"\n|gthree rocks|n" +
		"\n|mOther|n is here." +
		"\n\n|[B|!WExits:|n\n" +
		"|[B|!WEast: vault|n\n" +
		"|[B|!WNorth: Rose Garden|n\n"
	if got != want {
		t.Fatalf("Appearance() =\n%q\nwant\n%q", got, want)
	}
	if strings.Contains(got, "Looker") {
		t.Fatalf("looker should not see themselves")
	}
	if w.Appearance("hall", nil) != "" {
		t.Fatalf("Appearance with no looker should be empty")
	}
}

func TestBroadcastToRoomUsesEachRecipientsGender(t *testing.T) {
	w := NewWorldWithRooms(map[RoomID]*Room{"hall": {ID: "hall"}})
	speaker := NewPlayer("Speaker", "hall")
	she := NewPlayer("She", "hall")
	he := NewPlayer("He", "hall")
	w.AddPlayerForTest(speaker)
	w.AddPlayerForTest(she)
	w.AddPlayerForTest(he)
	she.Attributes.Set(GenderAttribute, "female")
	he.Attributes.Set(GenderAttribute, "male")

	w.BroadcastToRoom("hall", "Someone taps |o on the shoulder.", speaker)

	if got := <-she.Output; got != "Someone taps her on the shoulder." {
		t.Fatalf("female recipient got %q", got)
	}
	if got := <-he.Output; got != "Someone taps him on the shoulder." {
		t.Fatalf("male recipient got %q", got)
	}
	if len(speaker.Output) != 0 {
		t.Fatalf("speaker should be excluded")
	}
}

func TestFindInRoomPrefixAndAmbiguity(t *testing.T) {
	w := NewWorldWithRooms(map[RoomID]*Room{"hall": {ID: "hall"}, "yard": {ID: "yard"}})
	for _, p := range []*Player{
		NewPlayer("Alice", "hall"),
		NewPlayer("Alfred", "hall"),
		NewPlayer("Bob", "hall"),
		NewPlayer("Bobby", "yard"),
	} {
		w.AddPlayerForTest(p)
	}

	if p, ok := w.FindInRoom("hall", "bo"); !ok || p.Name != "Bob" {
		t.Fatalf("FindInRoom(bo) = %v, %v; want Bob", p, ok)
	}
	if _, ok := w.FindInRoom("hall", "al"); ok {
		t.Fatalf("FindInRoom(al) should be ambiguous")
	}
	if p, ok := w.FindInRoom("hall", "alice"); !ok || p.Name != "Alice" {
		t.Fatalf("FindInRoom(alice) = %v, %v", p, ok)
	}
	if _, ok := w.FindPlayer("bob"); !ok {
		t.Fatalf("FindPlayer(bob) exact match should win over Bobby")
	}
}

type failingProfiles struct{}

func (failingProfiles) LoadProfile(string) (PlayerProfile, bool, error) {
	return PlayerProfile{}, false, errors.New("disk on fire")
}

func (failingProfiles) SaveProfile(string, PlayerProfile) error { return nil }

func TestLoadProfileFallsBackToStartRoom(t *testing.T) {
	w := NewWorldWithRooms(map[RoomID]*Room{StartRoom: {ID: StartRoom}}, WithProfileStore(failingProfiles{}))
	profile := w.LoadProfile("nobody")
	if profile.Room != StartRoom || profile.Home != StartRoom {
		t.Fatalf("LoadProfile = %+v, want start room", profile)
	}
}

func TestAddPlayerRestoresProfile(t *testing.T) {
	w := NewWorldWithRooms(map[RoomID]*Room{StartRoom: {ID: StartRoom}, "den": {ID: "den"}})
	p, err := w.addPlayer("Fox", nil, false, PlayerProfile{
		Room:       "den",
		Home:       "gone",
		Attributes: map[string]any{GenderAttribute: "male", AttrLevel: float64(4)},
	})
	if err != nil {
		t.Fatalf("addPlayer: %v", err)
	}
	if p.Room != "den" || p.Home != StartRoom {
		t.Fatalf("room/home = %q/%q, want den/start", p.Room, p.Home)
	}
	if p.Gender() != GenderMale {
		t.Fatalf("gender = %q, want male", p.Gender())
	}
	if level, _ := p.Attributes.Int(AttrLevel); level != 4 {
		t.Fatalf("level = %d, want 4", level)
	}
	if !p.Attributes.Has(AttrMaxHitPoints) {
		t.Fatalf("missing defaults were not applied")
	}
	if _, err := w.addPlayer("Fox", nil, false, PlayerProfile{}); err == nil {
		t.Fatalf("second login for the same name should fail")
	}
}

func TestNewWorldLoadsBundledAreas(t *testing.T) {
	world, err := NewWorld(filepath.Join("..", "..", "data", "areas"))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if _, ok := world.GetRoom(StartRoom); !ok {
		t.Fatalf("bundled areas have no %q room", StartRoom)
	}
	room, ok := world.RoomAt(1, 0, 0)
	if !ok || room.ID != "pond" {
		t.Fatalf("RoomAt(1, 0, 0) = %v, %v; want pond", room, ok)
	}
	again, err := NewWorld(filepath.Join("..", "..", "data", "areas"))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	reloaded, _ := again.GetRoom(room.ID)
	for i, thing := range room.Things {
		if _, err := uuid.Parse(thing.ID); err != nil {
			t.Fatalf("thing %q id %q: %v", thing.Name, thing.ID, err)
		}
		if reloaded.Things[i].ID != thing.ID {
			t.Fatalf("thing %q id changed across loads: %q vs %q", thing.Name, thing.ID, reloaded.Things[i].ID)
		}
	}
}

func TestNewWorldValidatesThingIDs(t *testing.T) {
	tests := []struct {
		name string
		area string
		want string
	}{
		{"malformed", `{"rooms":[{"id":"a","things":[{"id":"nope","name":"rock"}]}]}`, "invalid UUID"},
		{"reused", `{"rooms":[
			{"id":"a","things":[{"id":"5b0e7c1e-0000-4000-8000-000000000001","name":"rock"}]},
			{"id":"b","things":[{"id":"5b0e7c1e-0000-4000-8000-000000000001","name":"rock"}]}]}`, "already used"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "area.json"), []byte(tt.area), 0o644); err != nil {
				t.Fatalf("write area: %v", err)
			}
			if _, err := NewWorld(dir); err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("NewWorld error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestPlayerExamineTracksIDs(t *testing.T) {
	p := NewPlayer("Ash", StartRoom)
	a, b := NewThing("rock", ""), NewThing("rock", "")
	if !p.Examine(a) || !p.Examine(b) {
		t.Fatalf("first look at each rock should be new")
	}
	if p.Examine(a) {
		t.Fatalf("second look at the same rock should not be new")
	}
	if p.Examine(Thing{Name: "ghost"}) {
		t.Fatalf("things without ids are never recorded")
	}
	p.Attributes.Load(map[string]any{AttrExamined: []any{a.ID}})
	if !p.Examined(a.ID) || p.Examined(b.ID) {
		t.Fatalf("examined set should survive a profile reload")
	}
}

func TestPrepareTakeoverClearsAliveConcurrently(t *testing.T) {
	w := NewWorldWithRooms(map[RoomID]*Room{StartRoom: {ID: StartRoom}})
	p := NewPlayer("Ash", StartRoom)
	w.AddPlayerForTest(p)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = p.Alive()
			w.BroadcastToRoom(StartRoom, "tick", nil)
		}
	}()
	if _, _, ok := w.PrepareTakeover("Ash"); !ok {
		t.Fatalf("PrepareTakeover should find the player")
	}
	wg.Wait()
	if p.Alive() {
		t.Fatalf("player should be marked gone after takeover")
	}
}

func TestNewWorldRejectsDuplicateRooms(t *testing.T) {
	dir := t.TempDir()
	area := []byte(`{"name":"dup","rooms":[{"id":"a","title":"A"},{"id":"a","title":"B"}]}`)
	if err := os.WriteFile(filepath.Join(dir, "dup.json"), area, 0o644); err != nil {
		t.Fatalf("write area: %v", err)
	}
	if _, err := NewWorld(dir); err == nil || !strings.Contains(err.Error(), "duplicate room a") {
		t.Fatalf("NewWorld error = %v, want duplicate room", err)
	}
	if _, err := NewWorld(t.TempDir()); err == nil {
		t.Fatalf("empty areas directory should fail")
	}
}
