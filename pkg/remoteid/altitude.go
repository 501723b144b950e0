package remoteid

import "math"

// Altitude encoding constants
const (
	AltitudeUnknownMeters = -1000.0 // Decoded value of raw 0
	AltitudeMaxMeters     = 31767.5 // Decoded value of raw 0xFFFF
	AltitudeResolution    = 0.5     // Meters per raw unit
)

// Altitude is a geodetic, pressure or relative altitude in meters, encoded as
// (meters + 1000) / 0.5 in an unsigned 16-bit integer.
type Altitude struct {
	Validity Validity
	Meters   float32
}

// AltitudeOf returns a Known altitude. The value is not range checked; Encode
// clamps it.
func AltitudeOf(meters float32) Altitude {
	return Altitude{Validity: Known, Meters: meters}
}

// DecodeAltitude decodes a raw altitude. Raw 0 (-1000 m) is Unknown.
func DecodeAltitude(raw uint16) Altitude {
	meters := float32(raw)*AltitudeResolution + AltitudeUnknownMeters
	if meters == AltitudeUnknownMeters {
		return Altitude{Validity: Unknown}
	}
	return AltitudeOf(meters)
}

// Encode returns the raw altitude. Invalid and NoValue encode as 0 m.
func (a Altitude) Encode() uint16 {
	var meters float64
	switch a.Validity {
	case Known:
		meters = clamp(float64(a.Meters), AltitudeUnknownMeters, AltitudeMaxMeters)
	case Unknown:
		meters = AltitudeUnknownMeters
	}
	return uint16(math.Round((meters - AltitudeUnknownMeters) / AltitudeResolution))
}
