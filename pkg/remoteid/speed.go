package remoteid

import "math"

// Ground speed encoding constants
const (
	GroundSpeedUnknownCode        = 255   // Raw code for Unknown, either precision
	GroundSpeedMax                = 254.0 // Known speeds are clamped to this
	GroundSpeedHighPrecisionUnit  = 0.25  // m/s per raw unit, precision flag clear
	GroundSpeedLowPrecisionUnit   = 0.75  // m/s per raw unit, precision flag set
	GroundSpeedPrecisionThreshold = 63.75 // Highest speed sent with high precision
)

// Vertical speed encoding constants
const (
	VerticalSpeedUnknown    = 63.0 // Decoded value meaning Unknown
	VerticalSpeedMax        = 62.0 // Known speeds are clamped to +/- this
	VerticalSpeedResolution = 0.5  // m/s per raw unit
)

// GroundSpeed is the horizontal speed in m/s. It is sent as a byte plus a
// precision flag selecting 0.25 m/s or 0.75 m/s steps.
type GroundSpeed struct {
	Validity        Validity
	MetersPerSecond float32
}

// GroundSpeedOf returns a Known ground speed; Encode clamps it to [0, 254].
func GroundSpeedOf(metersPerSecond float32) GroundSpeed {
	return GroundSpeed{Validity: Known, MetersPerSecond: metersPerSecond}
}

// DecodeGroundSpeed decodes a raw speed using the precision flag. Raw 255 is
// Unknown whatever the flag says.
func DecodeGroundSpeed(lowPrecision bool, raw uint8) GroundSpeed {
	if raw == GroundSpeedUnknownCode {
		return GroundSpeed{Validity: Unknown}
	}

	if lowPrecision {
		return GroundSpeedOf(float32(raw)*GroundSpeedLowPrecisionUnit + GroundSpeedPrecisionThreshold)
	}
	return GroundSpeedOf(float32(raw) * GroundSpeedHighPrecisionUnit)
}

// Encode returns the precision flag and the raw speed.
//
// Speeds up to 63.75 m/s use high precision, except where the rounded code
// would collide with the Unknown code; those are sent as low precision code 0,
// which is exactly 63.75 m/s.
func (g GroundSpeed) Encode() (lowPrecision bool, raw uint8) {
	switch g.Validity {
	case Known:
	case Unknown:
		return false, GroundSpeedUnknownCode
	default:
		return false, 0
	}

	speed := clamp(float64(g.MetersPerSecond), 0, GroundSpeedMax)

	if speed <= GroundSpeedPrecisionThreshold {
		code := math.Round(speed / GroundSpeedHighPrecisionUnit)
		if code < GroundSpeedUnknownCode {
			return false, uint8(code)
		}
	}

	code := math.Round((speed - GroundSpeedPrecisionThreshold) / GroundSpeedLowPrecisionUnit)
	return true, uint8(max(code, 0))
}

// VerticalSpeed is the climb rate in m/s, positive up. The raw byte is a
// two's complement count of 0.5 m/s steps.
type VerticalSpeed struct {
	Validity        Validity
	MetersPerSecond float32
}

// VerticalSpeedOf returns a Known vertical speed; Encode clamps it to [-62, 62].
func VerticalSpeedOf(metersPerSecond float32) VerticalSpeed {
	return VerticalSpeed{Validity: Known, MetersPerSecond: metersPerSecond}
}

// DecodeVerticalSpeed decodes a raw vertical speed. Decoding never produces
// Invalid; only 63.0 m/s is Unknown and everything else is clamped.
func DecodeVerticalSpeed(raw uint8) VerticalSpeed {
	speed := float32(int8(raw)) * VerticalSpeedResolution
	if speed == VerticalSpeedUnknown {
		return VerticalSpeed{Validity: Unknown}
	}
	return VerticalSpeedOf(clamp(speed, -VerticalSpeedMax, VerticalSpeedMax))
}

// Encode returns the raw vertical speed. Invalid and NoValue encode as 0.
func (v VerticalSpeed) Encode() uint8 {
	var speed float64
	switch v.Validity {
	case Known:
		speed = clamp(float64(v.MetersPerSecond), -VerticalSpeedMax, VerticalSpeedMax)
	case Unknown:
		speed = VerticalSpeedUnknown
	}
	return uint8(int8(math.Round(speed / VerticalSpeedResolution)))
}
