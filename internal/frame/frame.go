package frame

import (
	"errors"
	"time"

	"goremoteid/pkg/remoteid"
)

// Line framing
const (
	Separator     = '\n' // One frame per line
	FieldSep      = ','  // Between receive timestamp and hex payload
	CommentPrefix = '#'  // Ignored lines
	MaxLineLength = 1024 // Longest accepted line before the buffer is dropped
)

// ErrLineTooLong is returned by Decode when the buffer grows past
// MaxLineLength without a separator. The buffered bytes are dropped.
var ErrLineTooLong = errors.New("line exceeds maximum length")

// Frame represents one received Remote ID frame
type Frame struct {
	Timestamp time.Time
	Raw       []byte
	Message   remoteid.Message
	Err       error
}

// IsValid reports whether the frame decoded without error
func (f *Frame) IsValid() bool {
	return f.Err == nil
}

// Kind returns the decoded message kind, or false when decoding failed
func (f *Frame) Kind() (remoteid.MessageKind, bool) {
	if !f.IsValid() {
		return 0, false
	}
	return f.Message.Kind(), true
}

// Expand returns the frame's messages with pack elements flattened.
// Elements that fail to decode are returned as frames carrying the error.
func (f *Frame) Expand() []*Frame {
	if !f.IsValid() || !f.Message.IsPack() {
		return []*Frame{f}
	}

	pack, ok := f.Message.Payload().(remoteid.Pack)
	if !ok {
		return []*Frame{f}
	}

	frames := make([]*Frame, 0, pack.NumberOfMessages())
	raw := pack.Messages()
	for i := 0; i < pack.NumberOfMessages(); i++ {
		msg, _, err := pack.Message(i)
		element := raw[i*remoteid.MessageSize : (i+1)*remoteid.MessageSize]
		frames = append(frames, &Frame{
			Timestamp: f.Timestamp,
			Raw:       element,
			Message:   msg,
			Err:       err,
		})
	}
	return frames
}
