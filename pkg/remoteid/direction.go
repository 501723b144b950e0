package remoteid

// Track direction encoding constants
const (
	TrackDirectionUnknownCode = 361 // Combined value meaning Unknown
	TrackDirectionInvalidCode = 362 // Lowest combined value decoded as Invalid
	TrackDirectionEastWest    = 180 // Offset added when the east/west bit is set
)

// TrackDirection is the direction of travel in whole degrees clockwise from
// true north. Angles above 180 are sent as angle-180 with the east/west bit set.
type TrackDirection struct {
	Validity Validity
	Degrees  uint16
}

// TrackDirectionOf returns a Known direction
func TrackDirectionOf(degrees uint16) TrackDirection {
	return TrackDirection{Validity: Known, Degrees: degrees}
}

// DecodeTrackDirection combines the east/west bit with the angle byte
func DecodeTrackDirection(eastWest bool, angle uint8) TrackDirection {
	combined := uint16(angle)
	if eastWest {
		combined += TrackDirectionEastWest
	}

	switch {
	case combined == TrackDirectionUnknownCode:
		return TrackDirection{Validity: Unknown}
	case combined > TrackDirectionUnknownCode:
		return TrackDirection{Validity: Invalid}
	default:
		return TrackDirectionOf(combined)
	}
}

// Direction returns the combined value that Encode splits across the wire
func (d TrackDirection) Direction() uint16 {
	switch d.Validity {
	case Known:
		return min(d.Degrees, TrackDirectionInvalidCode)
	case Unknown:
		return TrackDirectionUnknownCode
	default:
		return TrackDirectionInvalidCode
	}
}

// Encode returns the east/west bit and the angle byte
func (d TrackDirection) Encode() (eastWest bool, angle uint8) {
	combined := d.Direction()
	if combined > TrackDirectionEastWest {
		return true, uint8(combined - TrackDirectionEastWest)
	}
	return false, uint8(combined)
}
