package record

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goremoteid/internal/frame"
	"goremoteid/internal/logging"
	"goremoteid/pkg/remoteid"
)

var testTime = time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestWriter(sink Sink) *Writer {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	w := NewWriter(sink, logger)
	w.now = func() time.Time { return testTime }
	return w
}

func testFrame(t *testing.T, p remoteid.Payload) *frame.Frame {
	t.Helper()
	msg := remoteid.NewMessage(p)
	raw, err := msg.MarshalBinary()
	require.NoError(t, err)
	return &frame.Frame{Timestamp: testTime, Raw: raw, Message: msg}
}

func fields(line string) []string {
	return strings.Split(strings.TrimSuffix(line, "\n"), ",")
}

// TestWriter_WriteFrame tests the record produced for each message kind
func TestWriter_WriteFrame(t *testing.T) {
	serial, err := remoteid.NewSerialNumber("1ABC", "SN0001")
	require.NoError(t, err)
	selfID, err := remoteid.NewSelfIDText(remoteid.DescriptionText, "survey, north")
	require.NoError(t, err)
	operator, err := remoteid.NewOperatorID(remoteid.OperatorIDTypeCAA, "FIN87astrdge12k8")
	require.NoError(t, err)
	auth, err := remoteid.NewAuthSubsequent(remoteid.AuthMessageSetSignature, 3, [remoteid.AuthPageData]byte{1})
	require.NoError(t, err)

	location := remoteid.Location{
		Status:           remoteid.StatusAirborne,
		Latitude:         remoteid.LatitudeOf(51.4775),
		Longitude:        remoteid.LongitudeOf(-0.4614),
		GeodeticAltitude: remoteid.AltitudeOf(120.5),
		Speed:            remoteid.GroundSpeedOf(12.25),
		Direction:        remoteid.TrackDirectionOf(270),
	}

	tests := []struct {
		name    string
		payload remoteid.Payload
		index   int
		want    string
	}{
		{name: "BasicID serial", payload: remoteid.BasicID{UAType: remoteid.UATypeHelicopter, UASID: serial}, index: 10, want: serial.String()},
		{name: "BasicID type", payload: remoteid.BasicID{UAType: remoteid.UATypeHelicopter, UASID: serial}, index: 9, want: remoteid.IDTypeSerialNumber.String()},
		{name: "Location latitude", payload: location, index: 13, want: "51.4775000"},
		{name: "Location longitude", payload: location, index: 14, want: "-0.4614000"},
		{name: "Location altitude", payload: location, index: 16, want: "120.5"},
		{name: "Location speed", payload: location, index: 18, want: "12.25"},
		{name: "Location track", payload: location, index: 19, want: "270"},
		{name: "SelfID strips commas", payload: selfID, index: 26, want: "survey north"},
		{name: "OperatorID", payload: operator, index: 27, want: "FIN87astrdge12k8"},
		{name: "Authentication page", payload: auth, index: 28, want: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := newTestWriter(WriterSink{W: &buf})

			n, err := w.WriteFrame(testFrame(t, tt.payload))
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			f := fields(buf.String())
			require.Len(t, f, 30)
			assert.Equal(t, RecordRID, f[0])
			assert.Equal(t, tt.payload.Kind().String(), f[1])
			assert.Equal(t, "2023/01/01", f[5])
			assert.Equal(t, "12:00:00.000", f[6])
			assert.Equal(t, tt.want, f[tt.index])
		})
	}
}

// TestWriter_UnknownValuesAreEmpty tests that only known values are written
func TestWriter_UnknownValuesAreEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(WriterSink{W: &buf})

	location := remoteid.Location{
		Latitude:  remoteid.Latitude{Validity: remoteid.Unknown},
		Longitude: remoteid.Longitude{Validity: remoteid.Unknown},
		Speed:     remoteid.GroundSpeed{Validity: remoteid.Unknown},
		Direction: remoteid.TrackDirection{Validity: remoteid.Unknown},
	}

	_, err := w.WriteFrame(testFrame(t, location))
	require.NoError(t, err)

	f := fields(buf.String())
	for _, i := range []int{13, 14, 18, 19} {
		assert.Empty(t, f[i], "field %d", i)
	}
}

// TestWriter_Pack tests that pack elements become one record each
func TestWriter_Pack(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(WriterSink{W: &buf})

	selfID, err := remoteid.NewSelfIDText(remoteid.DescriptionText, "inspection")
	require.NoError(t, err)
	msgs := []remoteid.Message{
		remoteid.NewMessage(remoteid.BasicID{UAType: remoteid.UATypeAeroplane, UASID: remoteid.NoUASID{}}),
		remoteid.NewMessage(selfID),
	}
	pack, err := remoteid.NewPack(msgs...)
	require.NoError(t, err)

	n, err := w.WriteFrame(testFrame(t, pack))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	first, second := fields(lines[0]), fields(lines[1])
	assert.Equal(t, remoteid.KindBasicID.String(), first[1])
	assert.Equal(t, remoteid.KindSelfID.String(), second[1])
	assert.Equal(t, "1", first[3], "frame id")
	assert.Equal(t, "1", second[3], "frame id")
	assert.Equal(t, "1", first[4], "element")
	assert.Equal(t, "2", second[4], "element")
}

// TestWriter_InvalidFrames tests nil frames and frames that failed to decode
func TestWriter_InvalidFrames(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(WriterSink{W: &buf})

	_, err := w.WriteFrame(nil)
	assert.Error(t, err)

	bad := &frame.Frame{
		Timestamp: testTime,
		Raw:       []byte{0x01, 0xAB},
		Err:       remoteid.ErrInvalidProtocolVersion,
	}
	n, err := w.WriteFrame(bad)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	f := fields(buf.String())
	assert.Equal(t, RecordERR, f[0])
	assert.Contains(t, f[29], "01ab")
}

type failingSink struct{}

func (failingSink) GetWriter() (io.Writer, error) {
	return nil, errors.New("disk gone")
}

// TestWriter_SinkError tests that sink failures are returned
func TestWriter_SinkError(t *testing.T) {
	w := newTestWriter(failingSink{})

	_, err := w.WriteFrame(testFrame(t, remoteid.BasicID{UASID: remoteid.NoUASID{}}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get log writer")
}

// TestWriter_LogRotatorSink tests concurrent writes through the log rotator
func TestWriter_LogRotatorSink(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	rotator, err := logging.NewLogRotator(t.TempDir(), true, logger)
	require.NoError(t, err)
	defer rotator.Close()

	w := newTestWriter(rotator)

	numGoroutines := 10
	framesPerGoroutine := 10

	f := testFrame(t, remoteid.BasicID{UASID: remoteid.NoUASID{}})

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < framesPerGoroutine; j++ {
				if _, err := w.WriteFrame(f); err != nil {
					t.Errorf("Concurrent write failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	content, err := os.ReadFile(rotator.GetCurrentLogFile())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, numGoroutines*framesPerGoroutine)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, RecordRID+","), line)
	}
}
