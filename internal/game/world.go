package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAreasPath is the on-disk location of bundled areas.
const DefaultAreasPath = "data/areas"

// StartRoom is the default entry point for new players.
const StartRoom RoomID = "start"

var (
	// ErrRoomNotFound indicates a room id or coordinate has no room.
	ErrRoomNotFound = errors.New("room not found")
	// ErrNoExit indicates the player tried to leave through a missing exit.
	ErrNoExit = errors.New("you can't go that way")
)

// ProfileStore persists player state between sessions.
type ProfileStore interface {
	LoadProfile(account string) (PlayerProfile, bool, error)
	SaveProfile(account string, profile PlayerProfile) error
}

type World struct {
	mu               sync.RWMutex
	rooms            map[RoomID]*Room
	players          map[string]*Player
	playerOrder      []string
	profiles         ProfileStore
	disabledCommands map[string]bool
	logger           *zap.Logger
	metrics          *Metrics
}

// WorldOption customises a World.
type WorldOption func(*World)

// WithLogger sets the world's logger.
func WithLogger(logger *zap.Logger) WorldOption {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithMetrics sets the collectors updated by the world.
func WithMetrics(metrics *Metrics) WorldOption {
	return func(w *World) {
		w.metrics = metrics
	}
}

// WithProfileStore sets where player profiles are loaded from and saved to.
func WithProfileStore(store ProfileStore) WorldOption {
	return func(w *World) {
		w.profiles = store
	}
}

// NewWorld loads every area file found in areasPath.
func NewWorld(areasPath string, opts ...WorldOption) (*World, error) {
	rooms, err := loadRooms(areasPath)
	if err != nil {
		return nil, err
	}
	return NewWorldWithRooms(rooms, opts...), nil
}

// NewWorldWithRooms constructs a world populated with the provided rooms.
func NewWorldWithRooms(rooms map[RoomID]*Room, opts ...WorldOption) *World {
	w := &World{
		rooms:       rooms,
		players:     make(map[string]*Player),
		playerOrder: make([]string, 0),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

type areaFile struct {
	Name  string `json:"name"`
	Rooms []Room `json:"rooms"`
}

func loadRooms(areasPath string) (map[RoomID]*Room, error) {
	entries, err := os.ReadDir(areasPath)
	if err != nil {
		return nil, fmt.Errorf("read areas: %w", err)
	}
	rooms := make(map[RoomID]*Room)
	thingIDs := make(map[string]RoomID)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(areasPath, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read area %s: %w", entry.Name(), err)
		}
		var area areaFile
		if err := json.Unmarshal(data, &area); err != nil {
			return nil, fmt.Errorf("decode area %s: %w", entry.Name(), err)
		}
		for i := range area.Rooms {
			room := area.Rooms[i]
			if room.ID == "" {
				return nil, fmt.Errorf("area %s: room %d has no id", entry.Name(), i)
			}
			if _, exists := rooms[room.ID]; exists {
				return nil, fmt.Errorf("area %s: duplicate room %s", entry.Name(), room.ID)
			}
			if room.Exits == nil {
				room.Exits = make(map[string]RoomID)
			}
			for j := range room.Things {
				thing := &room.Things[j]
				if thing.ID == "" {
					thing.ID = stableThingID(room.ID, j, thing.Name)
				} else if _, err := uuid.Parse(thing.ID); err != nil {
					return nil, fmt.Errorf("area %s: room %s thing %q: %w", entry.Name(), room.ID, thing.Name, err)
				}
				if owner, exists := thingIDs[thing.ID]; exists {
					return nil, fmt.Errorf("area %s: thing %s in %s already used in %s", entry.Name(), thing.ID, room.ID, owner)
				}
				thingIDs[thing.ID] = room.ID
			}
			rooms[room.ID] = &room
		}
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("no rooms found in %s", areasPath)
	}
	return rooms, nil
}

// SetCommandDisabled toggles whether a command is available to players.
func (w *World) SetCommandDisabled(name string, disabled bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if disabled {
		if w.disabledCommands == nil {
			w.disabledCommands = make(map[string]bool)
		}
		w.disabledCommands[normalized] = true
		return
	}
	delete(w.disabledCommands, normalized)
}

// CommandDisabled reports whether the named command has been disabled.
func (w *World) CommandDisabled(name string) bool {
	normalized := strings.ToLower(strings.TrimSpace(name))
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.disabledCommands[normalized]
}

// Metrics returns the world's collectors, which may be nil.
func (w *World) Metrics() *Metrics {
	return w.metrics
}

// Logger returns the world's logger.
func (w *World) Logger() *zap.Logger {
	return w.logger
}

// AddPlayerForTest inserts a player into the world's tracking structures.
func (w *World) AddPlayerForTest(p *Player) {
	if p.Attributes == nil {
		p.Attributes = NewAttributes(nil)
	}
	if p.Account == "" {
		p.Account = p.Name
	}
	if p.Home == "" {
		p.Home = p.Room
	}
	if p.Home == "" {
		p.Home = StartRoom
	}
	InitCharacter(p.Attributes)
	p.JoinedAt = time.Now()
	p.configureOutput(w.logger, w.metrics)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.players[p.Name] = p
	w.removePlayerOrderLocked(p.Name)
	w.playerOrder = append(w.playerOrder, p.Name)
	w.metrics.setPlayers(len(w.players))
}

// ActivePlayer returns the currently connected player with the provided name.
func (w *World) ActivePlayer(name string) (*Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[name]
	if !ok || !p.Alive() {
		return nil, false
	}
	return p, true
}

// LoadProfile returns the stored profile for account, or a fresh one placed
// in the start room.
func (w *World) LoadProfile(account string) PlayerProfile {
	profile := PlayerProfile{Room: StartRoom, Home: StartRoom}
	if w.profiles == nil {
		return profile
	}
	stored, found, err := w.profiles.LoadProfile(account)
	if err != nil {
		w.logger.Warn("load profile", zap.String("account", account), zap.Error(err))
		return profile
	}
	if !found {
		return profile
	}
	if stored.Room != "" {
		profile.Room = stored.Room
	}
	if stored.Home != "" {
		profile.Home = stored.Home
	}
	profile.Attributes = stored.Attributes
	return profile
}

func (w *World) addPlayer(name string, session *TelnetSession, isAdmin bool, profile PlayerProfile) (*Player, error) {
	p := NewPlayer(name, profile.Room)
	p.Session = session
	p.Home = profile.Home
	p.IsAdmin = isAdmin
	p.Attributes.Load(profile.Attributes)
	InitCharacter(p.Attributes)
	p.JoinedAt = time.Now()
	p.configureOutput(w.logger, w.metrics)

	w.mu.Lock()
	defer w.mu.Unlock()
	if existing, ok := w.players[name]; ok && existing.Alive() {
		return nil, fmt.Errorf("%s is already connected", name)
	}
	if _, ok := w.rooms[p.Room]; !ok {
		p.Room = StartRoom
	}
	if _, ok := w.rooms[p.Home]; !ok {
		p.Home = StartRoom
	}
	w.players[name] = p
	w.removePlayerOrderLocked(name)
	w.playerOrder = append(w.playerOrder, name)
	w.metrics.setPlayers(len(w.players))
	return p, nil
}

// PrepareTakeover detaches the active session for the provided player so that
// another connection can assume control.
func (w *World) PrepareTakeover(name string) (*TelnetSession, chan string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[name]
	if !ok {
		return nil, nil, false
	}
	session, output := p.Session, p.Output
	p.alive.Store(false)
	delete(w.players, name)
	w.removePlayerOrderLocked(name)
	w.metrics.setPlayers(len(w.players))
	return session, output, true
}

func (w *World) removePlayer(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.players, name)
	w.removePlayerOrderLocked(name)
	w.metrics.setPlayers(len(w.players))
}

func (w *World) removePlayerOrderLocked(name string) {
	for i, n := range w.playerOrder {
		if n == name {
			w.playerOrder = append(w.playerOrder[:i], w.playerOrder[i+1:]...)
			return
		}
	}
}

// PersistPlayer saves the player's profile when a store is configured.
func (w *World) PersistPlayer(p *Player) {
	if w.profiles == nil || p == nil {
		return
	}
	w.mu.RLock()
	profile := p.Profile()
	w.mu.RUnlock()
	if err := w.profiles.SaveProfile(p.Account, profile); err != nil {
		w.logger.Error("save profile", zap.String("account", p.Account), zap.Error(err))
	}
}

// GetRoom returns the room with the given id.
func (w *World) GetRoom(id RoomID) (*Room, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	r, ok := w.rooms[id]
	return r, ok
}

// RoomAt returns the room tagged with all three coordinates. When several
// rooms share a position the one with the lowest id wins.
func (w *World) RoomAt(x, y, z int) (*Room, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	ids := make([]string, 0, len(w.rooms))
	for id, room := range w.rooms {
		if room.at(x, y, z) {
			ids = append(ids, string(id))
		}
	}
	if len(ids) == 0 {
		return nil, false
	}
	sort.Strings(ids)
	return w.rooms[RoomID(ids[0])], true
}

// SetRoomCoordinates updates a room's coordinate tags. A nil axis clears it.
func (w *World) SetRoomCoordinates(id RoomID, x, y, z *int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	room, ok := w.rooms[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}
	room.SetX(x)
	room.SetY(y)
	room.SetZ(z)
	return nil
}

// RoomCoordinates reads a room's coordinates under the world lock.
func (w *World) RoomCoordinates(id RoomID) (x, y, z int, ok bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	room, found := w.rooms[id]
	if !found {
		return 0, 0, 0, false
	}
	return room.Coordinates()
}

// Appearance renders the room as seen by looker, as colour markup. It returns
// an empty string when there is no looker or the room is unknown.
func (w *World) Appearance(id RoomID, looker *Player) string {
	if looker == nil {
		return ""
	}
	width, _ := looker.WindowSize()
	w.mu.RLock()
	defer w.mu.RUnlock()
	room, ok := w.rooms[id]
	if !ok {
		return ""
	}
	var users []string
	for _, name := range w.playerOrder {
		p := w.players[name]
		if p == nil || !p.Alive() || p.Room != id || p == looker {
			continue
		}
		users = append(users, p.Name)
	}
	return renderAppearance(room, users, width, func(dest RoomID) string {
		if next, ok := w.rooms[dest]; ok && strings.TrimSpace(next.Title) != "" {
			return next.Title
		}
		return string(dest)
	})
}

// BroadcastToRoom sends text to every player in room except the given one.
// Each recipient's own pronoun substitution applies.
func (w *World) BroadcastToRoom(room RoomID, text any, except *Player) {
	for _, p := range w.PlayersInRoom(room) {
		if p == except {
			continue
		}
		p.Msg(text)
	}
}

// PlayersInRoom returns the living players in room in join order.
func (w *World) PlayersInRoom(room RoomID) []*Player {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Player, 0)
	for _, name := range w.playerOrder {
		p := w.players[name]
		if p != nil && p.Alive() && p.Room == room {
			out = append(out, p)
		}
	}
	return out
}

// ListPlayers returns player names in join order, optionally limited to a
// single room.
func (w *World) ListPlayers(roomOnly bool, room RoomID) []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	names := make([]string, 0, len(w.playerOrder))
	for _, name := range w.playerOrder {
		p := w.players[name]
		if p == nil || !p.Alive() {
			continue
		}
		if roomOnly && p.Room != room {
			continue
		}
		names = append(names, p.Name)
	}
	return names
}

// FindPlayer resolves a connected player by exact or unique prefix match.
func (w *World) FindPlayer(name string) (*Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.matchPlayerLocked(name, func(*Player) bool { return true })
}

// FindInRoom resolves a player standing in room by exact or unique prefix
// match. "me" and "self" are not handled here.
func (w *World) FindInRoom(room RoomID, name string) (*Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.matchPlayerLocked(name, func(p *Player) bool { return p.Room == room })
}

func (w *World) matchPlayerLocked(name string, keep func(*Player) bool) (*Player, bool) {
	candidates := make([]*Player, 0, len(w.playerOrder))
	names := make([]string, 0, len(w.playerOrder))
	for _, n := range w.playerOrder {
		p := w.players[n]
		if p == nil || !p.Alive() || !keep(p) {
			continue
		}
		candidates = append(candidates, p)
		names = append(names, p.Name)
	}
	idx, ok := uniqueMatch(name, names, false)
	if !ok {
		return nil, false
	}
	return candidates[idx], true
}

// ResolveExit finds the exit matching direction, accepting unique prefixes.
func (w *World) ResolveExit(room RoomID, direction string) (string, RoomID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	r, ok := w.rooms[room]
	if !ok {
		return "", "", false
	}
	exits := sortedExits(r)
	idx, ok := uniqueMatch(direction, exits, false)
	if !ok {
		return "", "", false
	}
	return exits[idx], r.Exits[exits[idx]], true
}

// Move walks the player through an exit and returns the direction taken.
func (w *World) Move(p *Player, dir string) (string, error) {
	if _, ok := w.GetRoom(p.Room); !ok {
		return "", fmt.Errorf("%w: %s", ErrRoomNotFound, p.Room)
	}
	name, dest, ok := w.ResolveExit(p.Room, dir)
	if !ok {
		return "", ErrNoExit
	}
	if err := w.MoveToRoom(p, dest); err != nil {
		return "", err
	}
	return name, nil
}

// MoveToRoom places the player in room.
func (w *World) MoveToRoom(p *Player, room RoomID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.rooms[room]; !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, room)
	}
	p.Room = room
	return nil
}
