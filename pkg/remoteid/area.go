package remoteid

// Operating area constants
const (
	AreaCountMax              = 65000
	OperatingAreaRadiusMax    = 2550 // Meters
	OperatingAreaRadiusFactor = 10   // Meters per raw unit
)

// AreaCount is the number of aircraft in the operating area
type AreaCount uint16

// NewAreaCount returns ErrInvalidInteger above 65000
func NewAreaCount(n uint16) (AreaCount, error) {
	if n > AreaCountMax {
		return 0, invalidInteger("area count", int(n))
	}
	return AreaCount(n), nil
}

// OperatingAreaRadius is the radius of the operating area in meters, sent in
// 10 m steps.
type OperatingAreaRadius uint16

// NewOperatingAreaRadius returns ErrInvalidInteger above 2550 m
func NewOperatingAreaRadius(meters uint16) (OperatingAreaRadius, error) {
	if meters > OperatingAreaRadiusMax {
		return 0, invalidInteger("operating area radius", int(meters))
	}
	return OperatingAreaRadius(meters), nil
}

// DecodeOperatingAreaRadius scales a raw radius code to meters
func DecodeOperatingAreaRadius(raw uint8) OperatingAreaRadius {
	return OperatingAreaRadius(uint16(raw) * OperatingAreaRadiusFactor)
}

// Encode returns the raw radius code, truncating to a 10 m step
func (r OperatingAreaRadius) Encode() uint8 {
	return uint8(min(r, OperatingAreaRadiusMax) / OperatingAreaRadiusFactor)
}
