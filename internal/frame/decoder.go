package frame

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"goremoteid/pkg/remoteid"
)

// Decoder splits a text stream into hex-encoded Remote ID frames
type Decoder struct {
	logger *logrus.Logger
	buffer []byte
	now    func() time.Time
	lines  int
}

// NewDecoder creates a new frame decoder
func NewDecoder(logger *logrus.Logger) *Decoder {
	return &Decoder{
		logger: logger,
		buffer: make([]byte, 0, 4096),
		now:    time.Now,
	}
}

// Decode consumes raw stream data and returns every complete frame found.
// A trailing partial line stays buffered until the next call or Flush. When
// that partial line outgrows MaxLineLength it is dropped and ErrLineTooLong
// is returned along with the frames decoded before it.
func (d *Decoder) Decode(data []byte) ([]*Frame, error) {
	d.buffer = append(d.buffer, data...)

	var frames []*Frame

	for {
		end := bytes.IndexByte(d.buffer, Separator)
		if end == -1 {
			break
		}

		line := d.buffer[:end]
		d.buffer = d.buffer[end+1:]

		if f := d.decodeLine(line); f != nil {
			frames = append(frames, f)
		}
	}

	if len(d.buffer) > MaxLineLength {
		size := len(d.buffer)
		d.logger.WithFields(logrus.Fields{
			"buffer_size": size,
		}).Debug("No line separator found, clearing buffer")
		d.buffer = d.buffer[:0]
		return frames, fmt.Errorf("%w: %d bytes buffered", ErrLineTooLong, size)
	}

	return frames, nil
}

// Flush decodes whatever is left in the buffer as a final line
func (d *Decoder) Flush() []*Frame {
	if len(d.buffer) == 0 {
		return nil
	}

	line := d.buffer
	d.buffer = d.buffer[:0]

	if f := d.decodeLine(line); f != nil {
		return []*Frame{f}
	}
	return nil
}

// Lines returns the number of lines consumed so far
func (d *Decoder) Lines() int {
	return d.lines
}

// decodeLine parses one line. Blank lines, comments and lines that are not
// hex are skipped; codec failures still produce a frame carrying the error.
func (d *Decoder) decodeLine(line []byte) *Frame {
	d.lines++

	text := strings.TrimSpace(string(line))
	if text == "" || text[0] == CommentPrefix {
		return nil
	}

	timestamp := d.now()
	if i := strings.IndexByte(text, FieldSep); i >= 0 {
		ts, err := parseTimestamp(strings.TrimSpace(text[:i]))
		if err != nil {
			d.logger.WithFields(logrus.Fields{
				"line":  d.lines,
				"field": text[:i],
			}).WithError(err).Debug("Invalid frame timestamp, skipping")
			return nil
		}
		timestamp = ts
		text = strings.TrimSpace(text[i+1:])
	}

	raw, err := hex.DecodeString(text)
	if err != nil {
		d.logger.WithFields(logrus.Fields{
			"line":        d.lines,
			"line_length": len(text),
		}).WithError(err).Debug("Invalid hex frame, skipping")
		return nil
	}

	msg, err := remoteid.DecodeMessage(raw)
	if err != nil {
		d.logger.WithFields(logrus.Fields{
			"line":         d.lines,
			"frame_length": len(raw),
			"header":       headerField(raw),
		}).WithError(err).Debug("Failed to decode Remote ID message")
	} else {
		d.logger.WithFields(logrus.Fields{
			"line":         d.lines,
			"message_type": msg.Kind().String(),
			"frame_length": len(raw),
		}).Debug("Successfully decoded Remote ID message")
	}

	return &Frame{
		Timestamp: timestamp,
		Raw:       raw,
		Message:   msg,
		Err:       err,
	}
}

// parseTimestamp accepts RFC 3339 or fractional Unix seconds
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(math.Round(frac*1e6))*int64(time.Microsecond)).UTC(), nil
}

func headerField(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	return fmt.Sprintf("0x%02x", raw[0])
}
