package record

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"goremoteid/internal/frame"
)

// Sink provides the writer records go to. The log rotator is a Sink.
type Sink interface {
	GetWriter() (io.Writer, error)
}

// WriterSink adapts a plain io.Writer into a Sink
type WriterSink struct {
	W io.Writer
}

// GetWriter returns the wrapped writer
func (s WriterSink) GetWriter() (io.Writer, error) {
	return s.W, nil
}

// Writer writes frames as Remote ID record lines
type Writer struct {
	sink      Sink
	logger    *logrus.Logger
	sessionID int
	frameID   int
	now       func() time.Time
	mutex     sync.Mutex
}

// NewWriter creates a new record writer
func NewWriter(sink Sink, logger *logrus.Logger) *Writer {
	return &Writer{
		sink:      sink,
		logger:    logger,
		sessionID: 1,
		now:       time.Now,
	}
}

// WriteFrame writes one record per message in f, expanding packs. It
// returns the number of lines written.
func (w *Writer) WriteFrame(f *frame.Frame) (int, error) {
	if f == nil {
		return 0, fmt.Errorf("frame cannot be nil")
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.frameID++

	var lines []string
	if !f.IsValid() {
		lines = append(lines, w.formatCSV(w.convertError(f)))
	} else if f.Message.IsPack() {
		for i, element := range f.Expand() {
			rec := w.convertFrame(element)
			rec.Element = i + 1
			lines = append(lines, w.formatCSV(rec))
		}
	} else {
		lines = append(lines, w.formatCSV(w.convertFrame(f)))
	}

	// Get current writer
	writer, err := w.sink.GetWriter()
	if err != nil {
		return 0, fmt.Errorf("failed to get log writer: %w", err)
	}

	for n, line := range lines {
		if _, err := io.WriteString(writer, line+"\n"); err != nil {
			return n, fmt.Errorf("failed to write to log: %w", err)
		}
	}

	w.logger.WithFields(logrus.Fields{
		"frame_id": w.frameID,
		"records":  len(lines),
	}).Debug("Wrote Remote ID records")

	return len(lines), nil
}

// convertFrame converts a decoded frame, or a failed pack element, to a record
func (w *Writer) convertFrame(f *frame.Frame) *Record {
	if !f.IsValid() {
		return w.convertError(f)
	}

	rec := w.newRecord(RecordRID, f)
	rec.fill(f.Message)
	return rec
}

// convertError converts a frame that failed to decode
func (w *Writer) convertError(f *frame.Frame) *Record {
	rec := w.newRecord(RecordERR, f)
	rec.Error = errorRecord(f)
	return rec
}

func (w *Writer) newRecord(recordType string, f *frame.Frame) *Record {
	now := w.now()
	generated := f.Timestamp
	if generated.IsZero() {
		generated = now
	}

	return &Record{
		RecordType:    recordType,
		SessionID:     w.sessionID,
		FrameID:       w.frameID,
		DateGenerated: generated,
		TimeGenerated: generated,
		DateLogged:    now,
		TimeLogged:    now,
	}
}

// formatCSV formats a record as CSV
func (w *Writer) formatCSV(rec *Record) string {
	return strings.Join(rec.Fields(), ",")
}
