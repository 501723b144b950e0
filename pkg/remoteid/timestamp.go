package remoteid

import (
	"math"
	"time"
)

// Location timestamp constants
const (
	LocationTimestampUnknownCode = 0xFFFF
	LocationTimestampMax         = 36000 // One hour in tenths of a second
)

// UnixTimestampOffset is the Unix time of the system timestamp epoch,
// 2019-01-01T00:00:00Z.
const UnixTimestampOffset = 1_546_300_800

// LocationTimestamp counts tenths of a second since the start of the current
// hour.
type LocationTimestamp struct {
	Validity Validity
	Tenths   uint16
}

// LocationTimestampOf returns a Known timestamp
func LocationTimestampOf(tenths uint16) LocationTimestamp {
	return LocationTimestamp{Validity: Known, Tenths: tenths}
}

// LocationTimestampFromDuration converts an offset into the hour, truncated to
// a tenth of a second.
func LocationTimestampFromDuration(d time.Duration) LocationTimestamp {
	tenths := d / (100 * time.Millisecond)
	if tenths < 0 || tenths > LocationTimestampMax {
		return LocationTimestamp{Validity: Invalid}
	}
	return LocationTimestampOf(uint16(tenths))
}

// DecodeLocationTimestamp decodes a raw timestamp. 0xFFFF is Unknown and
// anything else above one hour is Invalid.
func DecodeLocationTimestamp(raw uint16) LocationTimestamp {
	switch {
	case raw == LocationTimestampUnknownCode:
		return LocationTimestamp{Validity: Unknown}
	case raw > LocationTimestampMax:
		return LocationTimestamp{Validity: Invalid}
	default:
		return LocationTimestampOf(raw)
	}
}

// Encode returns the raw timestamp. Invalid encodes as 36001, as does any
// Known value between the hour and the Unknown code.
func (t LocationTimestamp) Encode() uint16 {
	var raw uint16
	switch t.Validity {
	case Known:
		raw = t.Tenths
	case Unknown:
		raw = LocationTimestampUnknownCode
	case Invalid:
		raw = LocationTimestampMax + 1
	}

	if raw > LocationTimestampMax && raw < LocationTimestampUnknownCode {
		return LocationTimestampMax + 1
	}
	return raw
}

// Duration returns the offset into the hour. It is zero unless the timestamp
// is Known.
func (t LocationTimestamp) Duration() time.Duration {
	if t.Validity != Known {
		return 0
	}
	return time.Duration(t.Tenths) * 100 * time.Millisecond
}

// SystemTimestamp counts seconds since 2019-01-01T00:00:00Z. It has no
// sentinel value.
type SystemTimestamp uint32

// SystemTimestampFromUnix converts Unix seconds, saturating at both ends of
// the representable range.
func SystemTimestampFromUnix(unix int64) SystemTimestamp {
	seconds := unix - UnixTimestampOffset
	switch {
	case seconds < 0:
		return 0
	case seconds > math.MaxUint32:
		return math.MaxUint32
	default:
		return SystemTimestamp(seconds)
	}
}

// SystemTimestampFromTime converts t, truncated to whole seconds
func SystemTimestampFromTime(t time.Time) SystemTimestamp {
	return SystemTimestampFromUnix(t.Unix())
}

// UnixTime returns the timestamp in Unix seconds
func (t SystemTimestamp) UnixTime() int64 {
	return int64(t) + UnixTimestampOffset
}

// Time returns the timestamp as a UTC time
func (t SystemTimestamp) Time() time.Time {
	return time.Unix(t.UnixTime(), 0).UTC()
}
