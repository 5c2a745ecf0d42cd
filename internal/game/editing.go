package game

import (
	"fmt"
	"sort"
	"strings"
)

// PlayerLocation pairs a connected player with the room they occupy.
type PlayerLocation struct {
	Name string
	Room RoomID
}

// PlayerLocations lists every living player's room, sorted by name.
func (w *World) PlayerLocations() []PlayerLocation {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]PlayerLocation, 0, len(w.players))
	for _, p := range w.players {
		if p == nil || !p.Alive() {
			continue
		}
		out = append(out, PlayerLocation{Name: p.Name, Room: p.Room})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// BroadcastToAll sends text to every living player except the given one.
func (w *World) BroadcastToAll(text any, except *Player) {
	w.mu.RLock()
	recipients := make([]*Player, 0, len(w.playerOrder))
	for _, name := range w.playerOrder {
		if p := w.players[name]; p != nil && p.Alive() && p != except {
			recipients = append(recipients, p)
		}
	}
	w.mu.RUnlock()
	for _, p := range recipients {
		p.Msg(text)
	}
}

// AdjacentRooms returns the distinct rooms reachable through room's exits.
func (w *World) AdjacentRooms(room RoomID) []RoomID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	r, ok := w.rooms[room]
	if !ok {
		return nil
	}
	seen := make(map[RoomID]bool, len(r.Exits))
	var out []RoomID
	for _, dir := range sortedExits(r) {
		dest := r.Exits[dir]
		if dest == room || seen[dest] {
			continue
		}
		if _, ok := w.rooms[dest]; !ok {
			continue
		}
		seen[dest] = true
		out = append(out, dest)
	}
	return out
}

// SetHome binds the player's recall point to room.
func (w *World) SetHome(p *Player, room RoomID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.rooms[room]; !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, room)
	}
	p.Home = room
	return nil
}

// UpdateRoomTitle renames a room and returns the updated room.
func (w *World) UpdateRoomTitle(id RoomID, title string) (*Room, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("room title cannot be empty")
	}
	return w.editRoom(id, func(r *Room) { r.Title = title })
}

// UpdateRoomDescription replaces a room's description.
func (w *World) UpdateRoomDescription(id RoomID, desc string) (*Room, error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return nil, fmt.Errorf("room description cannot be empty")
	}
	return w.editRoom(id, func(r *Room) { r.Description = desc })
}

func (w *World) editRoom(id RoomID, edit func(*Room)) (*Room, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	room, ok := w.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}
	edit(room)
	return room, nil
}
