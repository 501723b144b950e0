package remoteid

import "fmt"

// DescriptionType classifies the Self ID text. Codes 3-200 are reserved and
// 201-255 are for private use.
type DescriptionType uint8

const (
	DescriptionText           DescriptionType = 0
	DescriptionEmergency      DescriptionType = 1
	DescriptionExtendedStatus DescriptionType = 2
	DescriptionReserved       DescriptionType = 3
	DescriptionPrivateUse     DescriptionType = 201
)

// DecodeDescriptionType maps a raw code to its band. It never fails.
func DecodeDescriptionType(raw uint8) DescriptionType {
	switch {
	case raw >= uint8(DescriptionPrivateUse):
		return DescriptionPrivateUse
	case raw >= uint8(DescriptionReserved):
		return DescriptionReserved
	default:
		return DescriptionType(raw)
	}
}

// Encode returns the lower bound of the type's band
func (d DescriptionType) Encode() uint8 {
	return uint8(DecodeDescriptionType(uint8(d)))
}

func (d DescriptionType) String() string {
	switch DecodeDescriptionType(uint8(d)) {
	case DescriptionText:
		return "Text"
	case DescriptionEmergency:
		return "Emergency"
	case DescriptionExtendedStatus:
		return "ExtendedStatus"
	case DescriptionReserved:
		return "Reserved"
	default:
		return "PrivateUse"
	}
}

// SelfID is a free text description of the flight
type SelfID struct {
	DescriptionType DescriptionType
	Description     [SelfIDTextSize]byte
}

// NewSelfIDText builds a SelfID from text of at most 23 bytes
func NewSelfIDText(t DescriptionType, text string) (SelfID, error) {
	if len(text) > SelfIDTextSize {
		return SelfID{}, fmt.Errorf("%w: self id text is %d bytes", ErrInvalidDataLength, len(text))
	}

	s := SelfID{DescriptionType: t}
	copy(s.Description[:], text)
	return s, nil
}

func (SelfID) Kind() MessageKind { return KindSelfID }

// Text returns the description up to the first null
func (s SelfID) Text() string {
	return nullTerminated(s.Description[:])
}

// DecodeSelfID decodes a 24 byte SelfID payload
func DecodeSelfID(b []byte) (SelfID, error) {
	if err := checkLength(b, PayloadSize); err != nil {
		return SelfID{}, err
	}

	s := SelfID{DescriptionType: DecodeDescriptionType(b[0])}
	copy(s.Description[:], b[1:])
	return s, nil
}

func (s SelfID) Encode(b []byte) error {
	if err := checkLength(b, PayloadSize); err != nil {
		return err
	}

	b[0] = s.DescriptionType.Encode()
	copy(b[1:], s.Description[:])
	return nil
}
