package remoteid

import (
	"encoding/binary"
	"fmt"
)

// OperationalStatus is the flight state of the aircraft. Codes 5 to 15 are
// reserved.
type OperationalStatus uint8

const (
	StatusUndeclared OperationalStatus = iota
	StatusGround
	StatusAirborne
	StatusEmergency
	StatusSystemFailure // Remote ID system failure
	StatusReserved

	OperationalStatusMax = 15
)

// DecodeOperationalStatus collapses codes 5-15 to StatusReserved
func DecodeOperationalStatus(raw uint8) (OperationalStatus, error) {
	switch {
	case raw > OperationalStatusMax:
		return 0, invalidInteger("operational status", int(raw))
	case raw >= uint8(StatusReserved):
		return StatusReserved, nil
	default:
		return OperationalStatus(raw), nil
	}
}

// Encode returns the raw code, StatusReserved for any reserved value
func (s OperationalStatus) Encode() uint8 {
	return uint8(min(s, StatusReserved))
}

func (s OperationalStatus) String() string {
	switch min(s, StatusReserved) {
	case StatusUndeclared:
		return "Undeclared"
	case StatusGround:
		return "Ground"
	case StatusAirborne:
		return "Airborne"
	case StatusEmergency:
		return "Emergency"
	case StatusSystemFailure:
		return "RemoteIDSystemFailure"
	default:
		return "Reserved"
	}
}

// HeightType is the reference for Location.Height
type HeightType uint8

const (
	HeightAboveTakeoff HeightType = iota
	HeightAboveGround
)

func DecodeHeightType(raw uint8) (HeightType, error) {
	if raw > uint8(HeightAboveGround) {
		return 0, invalidInteger("height type", int(raw))
	}
	return HeightType(raw), nil
}

func (h HeightType) String() string {
	switch h {
	case HeightAboveTakeoff:
		return "TakeOff"
	case HeightAboveGround:
		return "AGL"
	default:
		return fmt.Sprintf("HeightType(%d)", uint8(h))
	}
}

// Location is the kinematic state of the aircraft
type Location struct {
	Status             OperationalStatus
	HeightType         HeightType
	Direction          TrackDirection
	Speed              GroundSpeed
	VerticalSpeed      VerticalSpeed
	Latitude           Latitude
	Longitude          Longitude
	PressureAltitude   Altitude
	GeodeticAltitude   Altitude
	Height             Altitude
	VerticalAccuracy   VerticalAccuracy
	HorizontalAccuracy HorizontalAccuracy
	AltitudeAccuracy   VerticalAccuracy // Accuracy of PressureAltitude
	SpeedAccuracy      SpeedAccuracy
	Timestamp          LocationTimestamp
	TimestampAccuracy  TimestampAccuracy
}

func (Location) Kind() MessageKind { return KindLocation }

// DecodeLocation decodes a 24 byte Location payload
func DecodeLocation(b []byte) (Location, error) {
	if err := checkLength(b, PayloadSize); err != nil {
		return Location{}, err
	}

	status, err := DecodeOperationalStatus(b[0] >> locationStatusShift)
	if err != nil {
		return Location{}, err
	}

	heightType := HeightType(b[0] >> locationHeightTypeShift & 1)
	eastWest := b[0]>>locationEastWestShift&1 != 0
	lowPrecision := b[0]&1 != 0

	return Location{
		Status:             status,
		HeightType:         heightType,
		Direction:          DecodeTrackDirection(eastWest, b[1]),
		Speed:              DecodeGroundSpeed(lowPrecision, b[2]),
		VerticalSpeed:      DecodeVerticalSpeed(b[3]),
		Latitude:           DecodeLatitude(int32(binary.LittleEndian.Uint32(b[4:8]))),
		Longitude:          DecodeLongitude(int32(binary.LittleEndian.Uint32(b[8:12]))),
		PressureAltitude:   DecodeAltitude(binary.LittleEndian.Uint16(b[12:14])),
		GeodeticAltitude:   DecodeAltitude(binary.LittleEndian.Uint16(b[14:16])),
		Height:             DecodeAltitude(binary.LittleEndian.Uint16(b[16:18])),
		VerticalAccuracy:   DecodeVerticalAccuracy(b[18] >> 4),
		HorizontalAccuracy: DecodeHorizontalAccuracy(b[18] & nibbleMask),
		AltitudeAccuracy:   DecodeVerticalAccuracy(b[19] >> 4),
		SpeedAccuracy:      DecodeSpeedAccuracy(b[19] & nibbleMask),
		Timestamp:          DecodeLocationTimestamp(binary.LittleEndian.Uint16(b[20:22])),
		TimestampAccuracy:  DecodeTimestampAccuracy(b[22]),
	}, nil
}

// Encode writes the payload into b, which must be 24 bytes. Out of range
// field values are clamped; only an invalid height type is an error.
func (l Location) Encode(b []byte) error {
	if err := checkLength(b, PayloadSize); err != nil {
		return err
	}
	if _, err := DecodeHeightType(uint8(l.HeightType)); err != nil {
		return err
	}

	eastWest, angle := l.Direction.Encode()
	lowPrecision, speed := l.Speed.Encode()

	flags := uint8(l.HeightType)<<locationHeightTypeShift | boolBit(eastWest)<<locationEastWestShift | boolBit(lowPrecision)
	b[0] = l.Status.Encode()<<locationStatusShift | flags
	b[1] = angle
	b[2] = speed
	b[3] = l.VerticalSpeed.Encode()
	binary.LittleEndian.PutUint32(b[4:8], uint32(l.Latitude.Encode()))
	binary.LittleEndian.PutUint32(b[8:12], uint32(l.Longitude.Encode()))
	binary.LittleEndian.PutUint16(b[12:14], l.PressureAltitude.Encode())
	binary.LittleEndian.PutUint16(b[14:16], l.GeodeticAltitude.Encode())
	binary.LittleEndian.PutUint16(b[16:18], l.Height.Encode())
	b[18] = l.VerticalAccuracy.Encode()<<4 | l.HorizontalAccuracy.Encode()
	b[19] = l.AltitudeAccuracy.Encode()<<4 | l.SpeedAccuracy.Encode()
	binary.LittleEndian.PutUint16(b[20:22], l.Timestamp.Encode())
	b[22] = l.TimestampAccuracy.Encode()
	b[23] = 0
	return nil
}

func boolBit(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}
