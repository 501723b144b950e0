package record

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"goremoteid/internal/frame"
	"goremoteid/pkg/remoteid"
)

// Record types
const (
	RecordRID = "RID" // Decoded Remote ID message
	RecordERR = "ERR" // Frame that failed to decode
)

// Record date and time layouts
const (
	DateLayout = "2006/01/02"
	TimeLayout = "15:04:05.000"
)

// Record is one line of the Remote ID record log. Empty strings mark fields
// the message did not carry or carried without a known value.
type Record struct {
	RecordType        string
	MessageKind       string
	SessionID         int
	FrameID           int
	Element           int // Position inside a pack, 0 otherwise
	DateGenerated     time.Time
	TimeGenerated     time.Time
	DateLogged        time.Time
	TimeLogged        time.Time
	IDType            string
	UASID             string
	UAType            string
	Status            string
	Latitude          string
	Longitude         string
	PressureAltitude  string
	GeodeticAltitude  string
	Height            string
	GroundSpeed       string
	Track             string
	VerticalSpeed     string
	Timestamp         string
	OperatorLatitude  string
	OperatorLongitude string
	OperatorAltitude  string
	Classification    string
	Description       string
	OperatorID        string
	AuthPage          string
	Error             string
}

// Fields returns the record as ordered CSV fields
func (r *Record) Fields() []string {
	return []string{
		r.RecordType,
		r.MessageKind,
		strconv.Itoa(r.SessionID),
		strconv.Itoa(r.FrameID),
		strconv.Itoa(r.Element),
		r.DateGenerated.Format(DateLayout),
		r.TimeGenerated.Format(TimeLayout),
		r.DateLogged.Format(DateLayout),
		r.TimeLogged.Format(TimeLayout),
		r.IDType,
		r.UASID,
		r.UAType,
		r.Status,
		r.Latitude,
		r.Longitude,
		r.PressureAltitude,
		r.GeodeticAltitude,
		r.Height,
		r.GroundSpeed,
		r.Track,
		r.VerticalSpeed,
		r.Timestamp,
		r.OperatorLatitude,
		r.OperatorLongitude,
		r.OperatorAltitude,
		r.Classification,
		r.Description,
		r.OperatorID,
		r.AuthPage,
		r.Error,
	}
}

// fill copies the payload's fields into the record
func (r *Record) fill(msg remoteid.Message) {
	r.MessageKind = msg.Kind().String()

	switch p := msg.Payload().(type) {
	case remoteid.BasicID:
		r.UAType = p.UAType.String()
		if p.UASID != nil {
			r.IDType = p.UASID.IDType().String()
			r.UASID = uasIDString(p.UASID)
		}

	case remoteid.Location:
		r.Status = p.Status.String()
		r.Latitude = formatDegrees(p.Latitude.Validity, p.Latitude.Degrees)
		r.Longitude = formatDegrees(p.Longitude.Validity, p.Longitude.Degrees)
		r.PressureAltitude = formatAltitude(p.PressureAltitude)
		r.GeodeticAltitude = formatAltitude(p.GeodeticAltitude)
		r.Height = formatAltitude(p.Height)
		if p.Speed.Validity == remoteid.Known {
			r.GroundSpeed = strconv.FormatFloat(float64(p.Speed.MetersPerSecond), 'f', 2, 32)
		}
		if p.Direction.Validity == remoteid.Known {
			r.Track = strconv.Itoa(int(p.Direction.Degrees))
		}
		if p.VerticalSpeed.Validity == remoteid.Known {
			r.VerticalSpeed = strconv.FormatFloat(float64(p.VerticalSpeed.MetersPerSecond), 'f', 1, 32)
		}
		if p.Timestamp.Validity == remoteid.Known {
			r.Timestamp = p.Timestamp.Duration().String()
		}

	case remoteid.System:
		r.OperatorLatitude = formatDegrees(p.OperatorLatitude.Validity, p.OperatorLatitude.Degrees)
		r.OperatorLongitude = formatDegrees(p.OperatorLongitude.Validity, p.OperatorLongitude.Degrees)
		r.OperatorAltitude = formatAltitude(p.OperatorAltitude)
		r.Classification = p.UAClassification.String()
		r.Timestamp = p.Timestamp.Time().Format(time.RFC3339)

	case remoteid.SelfID:
		r.Description = csvSafe(p.Text())

	case remoteid.OperatorID:
		r.OperatorID = csvSafe(p.Text())

	case remoteid.Authentication:
		r.AuthPage = strconv.Itoa(int(p.Page()))
		if initial, ok := p.(remoteid.AuthInitial); ok {
			r.Timestamp = initial.Timestamp().Time().Format(time.RFC3339)
		}
	}
}

func uasIDString(id remoteid.UASID) string {
	if s, ok := id.(fmt.Stringer); ok {
		return csvSafe(s.String())
	}
	return ""
}

func formatDegrees(v remoteid.Validity, degrees float64) string {
	if v != remoteid.Known {
		return ""
	}
	return strconv.FormatFloat(degrees, 'f', 7, 64)
}

func formatAltitude(a remoteid.Altitude) string {
	if a.Validity != remoteid.Known {
		return ""
	}
	return strconv.FormatFloat(float64(a.Meters), 'f', 1, 32)
}

// csvSafe strips separators and control characters from free text
func csvSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' || r < 0x20 || r == 0x7F {
			return -1
		}
		return r
	}, s)
}

// errorRecord describes a frame that failed to decode, raw bytes in hex
func errorRecord(f *frame.Frame) string {
	return fmt.Sprintf("%s %s", csvSafe(f.Err.Error()), hex.EncodeToString(f.Raw))
}
