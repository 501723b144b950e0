package remoteid

import "math"

// Coordinate encoding constants
const (
	CoordinateMultiplier = 10_000_000.0 // 7 decimal digits of resolution
	LatitudeLimit        = 90.0
	LongitudeLimit       = 180.0
)

// Latitude in degrees, encoded as degrees * 1e7 in a signed 32-bit integer.
// Raw 0 means Unknown; the codec does not check that longitude is also zero.
type Latitude struct {
	Validity Validity
	Degrees  float64
}

// Longitude in degrees, encoded the same way as Latitude.
type Longitude struct {
	Validity Validity
	Degrees  float64
}

// LatitudeOf returns a Known latitude; Encode clamps it to [-90, 90].
func LatitudeOf(degrees float64) Latitude {
	return Latitude{Validity: Known, Degrees: degrees}
}

// LongitudeOf returns a Known longitude; Encode clamps it to [-180, 180].
func LongitudeOf(degrees float64) Longitude {
	return Longitude{Validity: Known, Degrees: degrees}
}

// DecodeLatitude decodes a raw latitude
func DecodeLatitude(raw int32) Latitude {
	validity, degrees := decodeCoordinate(raw, LatitudeLimit)
	return Latitude{Validity: validity, Degrees: degrees}
}

// DecodeLongitude decodes a raw longitude
func DecodeLongitude(raw int32) Longitude {
	validity, degrees := decodeCoordinate(raw, LongitudeLimit)
	return Longitude{Validity: validity, Degrees: degrees}
}

// Encode returns the raw latitude. Unknown and Invalid encode as 0.
func (l Latitude) Encode() int32 {
	return encodeCoordinate(l.Validity, l.Degrees, LatitudeLimit)
}

// Encode returns the raw longitude. Unknown and Invalid encode as 0.
func (l Longitude) Encode() int32 {
	return encodeCoordinate(l.Validity, l.Degrees, LongitudeLimit)
}

func decodeCoordinate(raw int32, limit float64) (Validity, float64) {
	if raw == 0 {
		return Unknown, 0
	}

	degrees := float64(raw) / CoordinateMultiplier
	if degrees < -limit || degrees > limit {
		return Invalid, 0
	}

	return Known, degrees
}

func encodeCoordinate(validity Validity, degrees, limit float64) int32 {
	if validity != Known {
		return 0
	}
	return int32(math.Round(clamp(degrees, -limit, limit) * CoordinateMultiplier))
}
