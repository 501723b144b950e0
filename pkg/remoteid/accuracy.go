package remoteid

import "math"

// Accuracy code constants
const (
	AccuracyUnknownCode = 0

	HorizontalAccuracyReserved = 13
	VerticalAccuracyReserved   = 7
	SpeedAccuracyReserved      = 5

	HorizontalAccuracyMax = 18521.0 // Meters
	VerticalAccuracyMax   = 151.0   // Meters
	SpeedAccuracyMax      = 10.0    // m/s

	TimestampAccuracyMax  = 1.5  // Seconds
	TimestampAccuracyUnit = 0.1  // Seconds per raw unit
	timestampAccuracyMask = 0x0F // Only the low nibble is on the wire
)

// Bounds indexed by accuracy code. Index 0 is unused because code 0 is Unknown.
var (
	horizontalAccuracyMeters = [HorizontalAccuracyReserved]float32{
		HorizontalAccuracyMax, HorizontalAccuracyMax, 7408, 3704, 1852, 926,
		555.6, 185.2, 92.6, 30, 10, 3, 1,
	}
	verticalAccuracyMeters = [VerticalAccuracyReserved]float32{
		VerticalAccuracyMax, 150, 45, 25, 10, 3, 1,
	}
	speedAccuracyMetersPerSecond = [SpeedAccuracyReserved]float32{
		SpeedAccuracyMax, SpeedAccuracyMax, 3, 1, 0.3,
	}
)

// HorizontalAccuracy is the horizontal position accuracy category
type HorizontalAccuracy struct {
	Validity Validity
	Code     uint8
}

// VerticalAccuracy is the vertical position accuracy category. It is also
// used for the pressure altitude accuracy of a Location.
type VerticalAccuracy struct {
	Validity Validity
	Code     uint8
}

// SpeedAccuracy is the horizontal speed accuracy category
type SpeedAccuracy struct {
	Validity Validity
	Code     uint8
}

// HorizontalAccuracyOf returns a Known accuracy; Encode clamps the code to the
// reserved threshold.
func HorizontalAccuracyOf(code uint8) HorizontalAccuracy {
	return HorizontalAccuracy{Validity: Known, Code: code}
}

// VerticalAccuracyOf returns a Known vertical accuracy category
func VerticalAccuracyOf(code uint8) VerticalAccuracy {
	return VerticalAccuracy{Validity: Known, Code: code}
}

// SpeedAccuracyOf returns a Known speed accuracy category
func SpeedAccuracyOf(code uint8) SpeedAccuracy {
	return SpeedAccuracy{Validity: Known, Code: code}
}

// DecodeHorizontalAccuracy maps codes 13-15 to Reserved and 0 to Unknown
func DecodeHorizontalAccuracy(raw uint8) HorizontalAccuracy {
	validity, code := decodeAccuracy(raw, HorizontalAccuracyReserved)
	return HorizontalAccuracy{Validity: validity, Code: code}
}

// DecodeVerticalAccuracy maps codes 7-15 to Reserved and 0 to Unknown
func DecodeVerticalAccuracy(raw uint8) VerticalAccuracy {
	validity, code := decodeAccuracy(raw, VerticalAccuracyReserved)
	return VerticalAccuracy{Validity: validity, Code: code}
}

// DecodeSpeedAccuracy maps codes 5-15 to Reserved and 0 to Unknown
func DecodeSpeedAccuracy(raw uint8) SpeedAccuracy {
	validity, code := decodeAccuracy(raw, SpeedAccuracyReserved)
	return SpeedAccuracy{Validity: validity, Code: code}
}

// Meters returns the accuracy bound. Unknown and Reserved report the
// largest bound.
func (a HorizontalAccuracy) Meters() float32 {
	return accuracyBound(a.Validity, a.Code, horizontalAccuracyMeters[:], HorizontalAccuracyMax)
}

// Meters returns the accuracy bound, the largest one unless Known
func (a VerticalAccuracy) Meters() float32 {
	return accuracyBound(a.Validity, a.Code, verticalAccuracyMeters[:], VerticalAccuracyMax)
}

// MetersPerSecond returns the accuracy bound, the largest one unless Known
func (a SpeedAccuracy) MetersPerSecond() float32 {
	return accuracyBound(a.Validity, a.Code, speedAccuracyMetersPerSecond[:], SpeedAccuracyMax)
}

// Encode returns the wire code
func (a HorizontalAccuracy) Encode() uint8 {
	return encodeAccuracy(a.Validity, a.Code, HorizontalAccuracyReserved)
}

// Encode returns the wire code
func (a VerticalAccuracy) Encode() uint8 {
	return encodeAccuracy(a.Validity, a.Code, VerticalAccuracyReserved)
}

// Encode returns the wire code
func (a SpeedAccuracy) Encode() uint8 {
	return encodeAccuracy(a.Validity, a.Code, SpeedAccuracyReserved)
}

func decodeAccuracy(raw, reserved uint8) (Validity, uint8) {
	switch {
	case raw >= reserved:
		return Reserved, 0
	case raw == AccuracyUnknownCode:
		return Unknown, 0
	default:
		return Known, raw
	}
}

func encodeAccuracy(validity Validity, code, reserved uint8) uint8 {
	switch validity {
	case Known:
		return min(code, reserved)
	case Reserved:
		return reserved
	default:
		return AccuracyUnknownCode
	}
}

func accuracyBound(validity Validity, code uint8, table []float32, worst float32) float32 {
	if validity != Known || int(code) >= len(table) {
		return worst
	}
	return table[code]
}

// TimestampAccuracy is the accuracy of a location timestamp in seconds
type TimestampAccuracy struct {
	Validity Validity
	Seconds  float32
}

// TimestampAccuracyOf returns a Known accuracy; Encode clamps it to 1.5 s.
func TimestampAccuracyOf(seconds float32) TimestampAccuracy {
	return TimestampAccuracy{Validity: Known, Seconds: seconds}
}

// DecodeTimestampAccuracy decodes the low nibble of raw. Code 0 is Unknown.
func DecodeTimestampAccuracy(raw uint8) TimestampAccuracy {
	code := raw & timestampAccuracyMask
	if code == AccuracyUnknownCode {
		return TimestampAccuracy{Validity: Unknown}
	}
	return TimestampAccuracyOf(float32(code) / 10)
}

// Encode returns the code in tenths of a second, 0 unless Known
func (a TimestampAccuracy) Encode() uint8 {
	if a.Validity != Known {
		return AccuracyUnknownCode
	}
	seconds := clamp(float64(a.Seconds), 0, TimestampAccuracyMax)
	return uint8(math.Round(seconds / TimestampAccuracyUnit))
}
