package remoteid

// Validity tags a scalar field value. Only Known values carry a magnitude.
type Validity uint8

const (
	NoValue  Validity = iota // No value provided
	Known                    // Valid magnitude
	Unknown                  // Explicit "not available" sentinel
	Invalid                  // Out of range on decode
	Reserved                 // Code in a reserved band
)

func (v Validity) String() string {
	switch v {
	case NoValue:
		return "NoValue"
	case Known:
		return "Known"
	case Unknown:
		return "Unknown"
	case Invalid:
		return "Invalid"
	case Reserved:
		return "Reserved"
	default:
		return "Validity(?)"
	}
}

func clamp[T int | int32 | uint16 | float32 | float64](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
