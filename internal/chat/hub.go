package chat

import (
	"fmt"
	"sync"
)

// Member is a destination for broadcast events. The websocket Client
// implements it; tests use channel-backed fakes.
type Member interface {
	// Deliver enqueues an event for the member. It must not block; a member
	// that cannot keep up returns an error and is skipped.
	Deliver(ev *ServerEvent) error
}

// Hub is the in-memory room registry. Rooms exist only while they have
// members: the first join creates a room, the last leave deletes it. Nothing
// is persisted and there is no replay; a member only sees events broadcast
// while it is in the room.
//
// All membership changes and broadcasts run under one mutex, so every member
// of a room observes that room's events in the same order.
type Hub struct {
	mu          sync.Mutex
	rooms       map[string]map[string]Member   // room -> memberID -> member
	memberRooms map[string]map[string]struct{} // memberID -> set of rooms
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{
		rooms:       make(map[string]map[string]Member),
		memberRooms: make(map[string]map[string]struct{}),
	}
}

// Join adds the member to the room and broadcasts the entry notice to every
// current member of that room, including the joiner.
func (h *Hub) Join(room, displayName, memberID string, m Member) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members := h.rooms[room]
	if members == nil {
		members = make(map[string]Member)
		h.rooms[room] = members
	}
	members[memberID] = m

	memberships := h.memberRooms[memberID]
	if memberships == nil {
		memberships = make(map[string]struct{})
		h.memberRooms[memberID] = memberships
	}
	memberships[room] = struct{}{}

	h.broadcastLocked(room, fmt.Sprintf("%s has entered the room.", displayName))
}

// Send broadcasts "<displayName>: <text>" to every member of the room. The
// sender does not need to have joined: events are relayed to whoever is in
// the room right now, and a sender outside the room simply gets no echo.
func (h *Hub) Send(room, displayName, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(room, fmt.Sprintf("%s: %s", displayName, text))
}

// Leave removes the member from every room it joined, deleting rooms that
// become empty. Called when the member's connection goes away.
func (h *Hub) Leave(memberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room := range h.memberRooms[memberID] {
		members := h.rooms[room]
		delete(members, memberID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(h.memberRooms, memberID)
}

// RoomSize returns the number of members currently in the room.
func (h *Hub) RoomSize(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}

func (h *Hub) broadcastLocked(room, text string) {
	ev := NewMessageEvent(room, text)
	for _, m := range h.rooms[room] {
		// Fire and forget: a member that cannot accept the event is skipped,
		// delivery to the others is unaffected
		_ = m.Deliver(ev)
	}
}
