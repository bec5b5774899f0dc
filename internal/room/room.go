// Package room implements the session state machine and broadcast fan-out
// that keep every client of one canvas converged on the same content.
package room

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"paintchat/internal/board"
	"paintchat/internal/logger"
	"paintchat/internal/protocol"
)

// Room owns one paint log and one presence registry. A single mutex
// serializes every mutation and every broadcast, so all sessions observe
// strokes, resets, and presence changes in the same total order. Rooms are
// fully independent of each other.
type Room struct {
	Name string

	mu       sync.Mutex
	log      *board.PaintLog
	presence *Registry
	sessions map[*Session]struct{}
	dropped  uint64 // frames discarded because a peer's queue was full
}

func New(name string) *Room {
	return &Room{
		Name:     name,
		log:      board.NewPaintLog(),
		presence: NewRegistry(),
		sessions: make(map[*Session]struct{}),
	}
}

// Connect creates a session for peer. The session starts unidentified and
// receives nothing until its identity claim is accepted.
func (r *Room) Connect(peer Peer) *Session {
	s := newSession(peer)
	r.mu.Lock()
	r.sessions[s] = struct{}{}
	r.mu.Unlock()
	logger.Info("session connected",
		zap.String("room", r.Name), zap.String("session", s.ID))
	return s
}

// Disconnect destroys a session. If it was active its identity is released
// and remaining sessions are told it left. Safe to call more than once.
func (r *Room) Disconnect(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.State() == StateClosed {
		return
	}
	wasActive := s.Active()
	s.state.Store(int32(StateClosed))
	delete(r.sessions, s)
	if wasActive {
		r.presence.Release(s.name)
		r.broadcastAll(protocol.InfoLeft(s.name))
		r.broadcastAll(protocol.UserCount(r.presence.Count()))
	}
	logger.Info("session disconnected",
		zap.String("room", r.Name), zap.String("session", s.ID),
		zap.String("name", s.name))
}

// HandleFrame applies one raw client frame to the room. A nil return means
// the session may keep sending; a non-nil return is a protocol violation and
// the transport must close the connection. Per-event failures (a malformed
// stroke, an event before identification) are handled here and never
// terminate the session.
func (r *Room) HandleFrame(s *Session, raw string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.State() == StateClosed {
		return ErrSessionClosed
	}

	msg, err := protocol.ParseFrame(raw)
	if err != nil {
		s.peer.Send(protocol.ErrorNotification("unrecognized message"))
		return err
	}

	if msg.Kind == protocol.KindUsername {
		return r.handleClaim(s, msg.Payload)
	}

	if !s.Active() {
		// Lenient policy: tell the client and drop the event. Nothing is
		// queued for replay after identification.
		s.peer.Send(protocol.ErrorNotification(ErrNotIdentified.Error()))
		logger.Debug("event before identity claim dropped",
			zap.String("room", r.Name), zap.String("session", s.ID),
			zap.Stringer("kind", msg.Kind))
		return nil
	}

	switch msg.Kind {
	case protocol.KindPaint:
		r.handlePaint(s, msg.Payload)
	case protocol.KindReset:
		r.handleReset(s)
	case protocol.KindChat:
		r.broadcastOthers(s, protocol.ChatRelay(s.name, msg.Payload))
	case protocol.KindGetBuffer:
		r.sendTo(s, protocol.PaintBuffer(r.encodedSnapshot()))
	case protocol.KindGetUserList:
		r.sendTo(s, protocol.UserList(r.presence.ListActive()))
	case protocol.KindUsername:
		// handled above; listed so the switch stays exhaustive
	}
	return nil
}

// Snapshot returns the room's current canvas content.
func (r *Room) Snapshot() []protocol.Segment {
	return r.log.Snapshot()
}

// handleClaim runs the identity negotiation for one USERNAME frame.
func (r *Room) handleClaim(s *Session, name string) error {
	if s.Active() {
		// Re-claiming while active is connection-terminating.
		s.peer.Send(protocol.ErrorNotification("already identified"))
		return errors.Wrapf(protocol.ErrUnexpectedMessage,
			"identity re-claim by %q", s.name)
	}

	reason := invalidReason(name)
	if reason == "" && r.presence.Claim(name, s) != nil {
		reason = "username in use"
	}
	if reason != "" {
		s.peer.Send(protocol.Denied(reason))
		logger.Debug("identity claim denied",
			zap.String("room", r.Name), zap.String("session", s.ID),
			zap.String("name", name), zap.String("reason", reason))
		return nil
	}
	s.name = name
	s.state.Store(int32(StateActive))

	r.sendTo(s, protocol.Accepted(name))
	r.broadcastOthers(s, protocol.InfoJoined(name))
	r.broadcastAll(protocol.UserCount(r.presence.Count()))
	logger.Info("identity accepted",
		zap.String("room", r.Name), zap.String("session", s.ID),
		zap.String("name", name))
	return nil
}

func (r *Room) handlePaint(s *Session, payload string) {
	seg, err := protocol.DecodeSegment(payload)
	if err != nil {
		// A single bad stroke never takes the room or the sender down.
		logger.Warn("malformed segment dropped",
			zap.String("room", r.Name), zap.String("name", s.name),
			zap.Error(err))
		return
	}
	r.log.Append(seg)
	// The sender already drew locally; only peers need the stroke.
	r.broadcastOthers(s, protocol.PaintNotification(protocol.EncodeSegment(seg)))
}

func (r *Room) handleReset(s *Session) {
	r.log.Clear()
	r.broadcastOthers(s, protocol.ResetNotification(s.name))
	r.sendTo(s, protocol.ResetAck())
	logger.Info("canvas reset",
		zap.String("room", r.Name), zap.String("name", s.name))
}

func (r *Room) encodedSnapshot() []string {
	segs := r.log.Snapshot()
	wires := make([]string, len(segs))
	for i, seg := range segs {
		wires[i] = protocol.EncodeSegment(seg)
	}
	return wires
}

// broadcastAll fans a frame out to every active session, caller's included.
func (r *Room) broadcastAll(frame []byte) {
	for s := range r.sessions {
		if s.Active() {
			r.sendTo(s, frame)
		}
	}
}

// broadcastOthers fans a frame out to every active session except from.
func (r *Room) broadcastOthers(from *Session, frame []byte) {
	for s := range r.sessions {
		if s != from && s.Active() {
			r.sendTo(s, frame)
		}
	}
}

// sendTo enqueues a frame for one peer. A full queue means the peer is slow
// or gone; the frame is dropped and counted rather than blocking the room.
func (r *Room) sendTo(s *Session, frame []byte) {
	if !s.peer.Send(frame) {
		r.dropped++
		logger.Warn("outbound queue full, frame dropped",
			zap.String("room", r.Name), zap.String("session", s.ID),
			zap.String("name", s.name), zap.Uint64("dropped", r.dropped))
	}
}

// invalidReason checks a proposed identity's format. A colon would corrupt
// the CHAT sender prefix; "null" and "undefined" are what browser prompts
// produce when dismissed. Empty string means the name is acceptable.
func invalidReason(name string) string {
	switch {
	case strings.TrimSpace(name) == "":
		return "username must have at least one alphanumeric char"
	case strings.Contains(name, ":"):
		return `invalid character ":"`
	case name == "null" || name == "undefined":
		return "username cannot be null or undefined"
	}
	return ""
}
