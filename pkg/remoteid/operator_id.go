package remoteid

import "fmt"

// OperatorIDType classifies the operator identifier. Codes 1-200 are
// reserved and 201-255 are for private use.
type OperatorIDType uint8

const (
	OperatorIDTypeCAA        OperatorIDType = 0 // CAA issued operator id
	OperatorIDTypeReserved   OperatorIDType = 1
	OperatorIDTypePrivateUse OperatorIDType = 201
)

// DecodeOperatorIDType maps a raw code to its band. It never fails.
func DecodeOperatorIDType(raw uint8) OperatorIDType {
	switch {
	case raw >= uint8(OperatorIDTypePrivateUse):
		return OperatorIDTypePrivateUse
	case raw >= uint8(OperatorIDTypeReserved):
		return OperatorIDTypeReserved
	default:
		return OperatorIDTypeCAA
	}
}

func (o OperatorIDType) Encode() uint8 {
	return uint8(DecodeOperatorIDType(uint8(o)))
}

func (o OperatorIDType) String() string {
	switch DecodeOperatorIDType(uint8(o)) {
	case OperatorIDTypeCAA:
		return "OperatorID"
	case OperatorIDTypeReserved:
		return "Reserved"
	default:
		return "PrivateUse"
	}
}

// OperatorID identifies the operator. Bytes 21-23 of the payload are
// reserved and always encoded as zero.
type OperatorID struct {
	Type OperatorIDType
	ID   [IdentifierSize]byte
}

// NewOperatorID builds an OperatorID from an identifier of at most 20 bytes
func NewOperatorID(t OperatorIDType, id string) (OperatorID, error) {
	if len(id) > IdentifierSize {
		return OperatorID{}, fmt.Errorf("%w: operator id is %d bytes", ErrInvalidDataLength, len(id))
	}

	o := OperatorID{Type: t}
	copy(o.ID[:], id)
	return o, nil
}

func (OperatorID) Kind() MessageKind { return KindOperatorID }

// Text returns the identifier up to the first null
func (o OperatorID) Text() string {
	return nullTerminated(o.ID[:])
}

// DecodeOperatorID decodes a 24 byte OperatorID payload
func DecodeOperatorID(b []byte) (OperatorID, error) {
	if err := checkLength(b, PayloadSize); err != nil {
		return OperatorID{}, err
	}

	o := OperatorID{Type: DecodeOperatorIDType(b[0])}
	copy(o.ID[:], b[1:1+IdentifierSize])
	return o, nil
}

func (o OperatorID) Encode(b []byte) error {
	if err := checkLength(b, PayloadSize); err != nil {
		return err
	}

	clear(b)
	b[0] = o.Type.Encode()
	copy(b[1:], o.ID[:])
	return nil
}
