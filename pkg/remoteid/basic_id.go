package remoteid

import "fmt"

// UAType is the kind of aircraft. Codes 15 and above are invalid.
type UAType uint8

const (
	UATypeNotDeclared UAType = iota
	UATypeAeroplane
	UATypeHelicopter // Including multirotor
	UATypeGyroplane
	UATypeHybridLift // VTOL fixed wing
	UATypeOrnithopter
	UATypeGlider
	UATypeKite
	UATypeFreeBalloon
	UATypeCaptiveBalloon
	UATypeFreeFall // Parachute
	UATypeRocket
	UATypeTetheredPoweredAircraft
	UATypeGroundObstacle
	UATypeOther
)

var uaTypeNames = [...]string{
	"NotDeclared", "Aeroplane", "Helicopter", "Gyroplane", "HybridLift",
	"Ornithopter", "Glider", "Kite", "FreeBalloon", "CaptiveBalloon",
	"FreeFall", "Rocket", "TetheredPoweredAircraft",
	"GroundObstacle", "Other",
}

// DecodeUAType returns ErrInvalidInteger for codes above UATypeOther
func DecodeUAType(raw uint8) (UAType, error) {
	if raw > uint8(UATypeOther) {
		return 0, invalidInteger("ua type", int(raw))
	}
	return UAType(raw), nil
}

func (t UAType) String() string {
	if int(t) < len(uaTypeNames) {
		return uaTypeNames[t]
	}
	return fmt.Sprintf("UAType(%d)", uint8(t))
}

// BasicID carries the aircraft type and its identifier
type BasicID struct {
	UAType UAType
	UASID  UASID
}

func (BasicID) Kind() MessageKind { return KindBasicID }

// DecodeBasicID decodes a 24 byte BasicID payload
func DecodeBasicID(b []byte) (BasicID, error) {
	if err := checkLength(b, PayloadSize); err != nil {
		return BasicID{}, err
	}

	uaType, err := DecodeUAType(b[0] & nibbleMask)
	if err != nil {
		return BasicID{}, err
	}

	id, err := DecodeUASID(b[:UASIDSize])
	if err != nil {
		return BasicID{}, err
	}

	return BasicID{UAType: uaType, UASID: id}, nil
}

// Encode writes the payload into b, which must be 24 bytes
func (m BasicID) Encode(b []byte) error {
	if err := checkLength(b, PayloadSize); err != nil {
		return err
	}
	if _, err := DecodeUAType(uint8(m.UAType)); err != nil {
		return err
	}

	clear(b)
	b[0] = uint8(m.UAType)
	return EncodeUASID(m.UASID, b[:UASIDSize])
}
