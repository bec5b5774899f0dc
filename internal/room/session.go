package room

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// State is a session's position in the negotiation state machine.
type State int32

const (
	// StateAwaitingIdentity is entered immediately on connect. The server
	// sends no greeting; the client is expected to claim a name first.
	StateAwaitingIdentity State = iota

	// StateActive means the identity claim was accepted and the session is
	// registered in the room's presence registry.
	StateActive

	// StateClosed is terminal. No further events are processed.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateAwaitingIdentity:
		return "awaiting-identity"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Peer is the transport half of a session, as the room sees it. Send enqueues
// a frame on the peer's bounded outbound queue and reports false when the
// queue is full and the frame was dropped; it never blocks. Kick asks the
// transport to close the connection.
type Peer interface {
	Send(frame []byte) bool
	Kick(reason string)
}

// Session is the server-side representation of one connected client within a
// room. State transitions happen under the room lock; the state word itself
// is atomic so the transport's identify timer can read it without taking the
// lock.
type Session struct {
	ID    string // connection id, for logs only
	peer  Peer
	name  string
	state atomic.Int32
}

func newSession(peer Peer) *Session {
	s := &Session{ID: uuid.NewString(), peer: peer}
	s.state.Store(int32(StateAwaitingIdentity))
	return s
}

// State returns the current negotiation state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Active reports whether the session holds an accepted identity.
func (s *Session) Active() bool {
	return s.State() == StateActive
}

// Name returns the accepted identity, or "" before acceptance.
func (s *Session) Name() string {
	return s.name
}
