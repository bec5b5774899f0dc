package room

import "github.com/pkg/errors"

var (
	// ErrIdentityConflict means the proposed name is already active in the
	// room. The client stays unidentified and may retry with another name.
	ErrIdentityConflict = errors.New("identity already in use")

	// ErrNotIdentified means a session sent a non-USERNAME event before its
	// identity claim was accepted. The event is dropped.
	ErrNotIdentified = errors.New("not identified")

	// ErrSessionClosed means an event arrived for a session that already
	// left the room.
	ErrSessionClosed = errors.New("session closed")
)
