package protocol

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnexpectedMessage is returned for frames with no header separator or an
// unknown header. Receiving one terminates the offending connection.
var ErrUnexpectedMessage = errors.New("unexpected message")

// Kind identifies a client-origin message. The set is closed: adding a header
// means adding a constant here and a case to every switch over Kind.
type Kind int

const (
	KindUsername Kind = iota // USERNAME:<name>
	KindPaint                // PAINT:<x1> <y1> <x2> <y2> <width> <color>
	KindReset                // RESET:
	KindChat                 // CHAT:<text>
	KindGetBuffer            // GETBUFFER:
	KindGetUserList          // GETUSERLIST:
)

func (k Kind) String() string {
	switch k {
	case KindUsername:
		return "USERNAME"
	case KindPaint:
		return "PAINT"
	case KindReset:
		return "RESET"
	case KindChat:
		return "CHAT"
	case KindGetBuffer:
		return "GETBUFFER"
	case KindGetUserList:
		return "GETUSERLIST"
	}
	return "UNKNOWN"
}

// Message is a decoded client frame.
type Message struct {
	Kind    Kind
	Payload string
}

// ParseFrame splits a text frame "HEADER:payload" into a Message. The header
// must be one of the known client headers; anything else is a protocol
// violation.
func ParseFrame(frame string) (Message, error) {
	header, payload, ok := strings.Cut(frame, ":")
	if !ok {
		return Message{}, errors.Wrap(ErrUnexpectedMessage, "frame has no header separator")
	}
	var kind Kind
	switch header {
	case "USERNAME":
		kind = KindUsername
	case "PAINT":
		kind = KindPaint
	case "RESET":
		kind = KindReset
	case "CHAT":
		kind = KindChat
	case "GETBUFFER":
		kind = KindGetBuffer
	case "GETUSERLIST":
		kind = KindGetUserList
	default:
		return Message{}, errors.Wrapf(ErrUnexpectedMessage, "unknown header %q", header)
	}
	return Message{Kind: kind, Payload: payload}, nil
}

// Server-to-client frame builders. Frames are plain text "HEADER:payload";
// the transport sends them as single websocket text messages.

func Accepted(name string) []byte { return frame("ACCEPTED", name) }

func Denied(reason string) []byte { return frame("DENIED", reason) }

// PaintNotification relays an already-encoded segment to peers.
func PaintNotification(wire string) []byte { return frame("PAINT", wire) }

// PaintBuffer encodes a paint log snapshot as a JSON array of wire strings,
// the replay answer to GETBUFFER.
func PaintBuffer(wires []string) []byte {
	if wires == nil {
		wires = []string{}
	}
	buf, err := json.Marshal(wires)
	if err != nil {
		// A []string cannot fail to marshal.
		panic(err)
	}
	return append([]byte("PAINTBUFFER:"), buf...)
}

// ResetNotification tells peers that actor cleared the canvas.
func ResetNotification(actor string) []byte { return frame("RESET", actor) }

// ResetAck confirms a reset to the session that requested it, so originator
// and peers clear at the same logical instant.
func ResetAck() []byte { return frame("SRESET", "") }

// ChatRelay prefixes the sender server-side; clients cannot spoof it.
func ChatRelay(sender, text string) []byte {
	return frame("CHAT", sender+":"+text)
}

func InfoJoined(name string) []byte { return frame("INFO", name+" joined") }

func InfoLeft(name string) []byte { return frame("INFO", name+" left") }

func UserCount(n int) []byte { return frame("USERCOUNT", strconv.Itoa(n)) }

func UserList(names []string) []byte {
	return frame("USERLIST", strings.Join(names, " "))
}

func ErrorNotification(msg string) []byte { return frame("ERROR", msg) }

// Users is the legacy presence frame kept for pre-USERCOUNT clients. The
// current server never emits it.
func Users(payload string) []byte { return frame("USERS", payload) }

func frame(header, payload string) []byte {
	return []byte(header + ":" + payload)
}
