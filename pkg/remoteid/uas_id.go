package remoteid

import (
	"bytes"
	"fmt"
)

// IDType selects the UAS identifier layout. It is the high nibble of the
// first BasicID payload byte.
type IDType uint8

const (
	IDTypeNone         IDType = iota // No identifier
	IDTypeSerialNumber               // ANSI/CTA-2063-A serial number
	IDTypeRegistration               // CAA assigned registration id
	IDTypeUTMAssigned                // UTM assigned UUID
	IDTypeSession                    // Specific session id
)

func (t IDType) String() string {
	switch t {
	case IDTypeNone:
		return "None"
	case IDTypeSerialNumber:
		return "SerialNumber"
	case IDTypeRegistration:
		return "RegistrationID"
	case IDTypeUTMAssigned:
		return "UTMAssignedUUID"
	case IDTypeSession:
		return "SessionID"
	default:
		return fmt.Sprintf("IDType(%d)", uint8(t))
	}
}

// UASID is one of NoUASID, SerialNumber, RegistrationID, UTMAssignedUUID or
// SessionID.
type UASID interface {
	IDType() IDType
	encodeID(b []byte) error
}

// Serial number layout
const (
	mfrCodeSize        = 4
	mfrSerialMaxLength = 15
	serialLengthIndex  = mfrCodeSize
	serialStart        = serialLengthIndex + 1
)

// NoUASID is sent when the aircraft has no identifier
type NoUASID struct{}

func (NoUASID) IDType() IDType { return IDTypeNone }

func (NoUASID) String() string { return "" }

func (NoUASID) encodeID(b []byte) error {
	if err := checkLength(b, IdentifierSize); err != nil {
		return err
	}
	clear(b)
	return nil
}

// SerialNumber is a manufacturer code, a hex length character and the
// manufacturer serial, null padded to 20 bytes.
type SerialNumber struct {
	raw [IdentifierSize]byte
}

// NewSerialNumber builds a serial number from a 4 character manufacturer code
// and a 1 to 15 character serial. Only digits and uppercase letters other than
// O and I are allowed.
func NewSerialNumber(mfrCode, mfrSerial string) (SerialNumber, error) {
	if len(mfrCode) != mfrCodeSize || len(mfrSerial) < 1 || len(mfrSerial) > mfrSerialMaxLength {
		return SerialNumber{}, fmt.Errorf("%w: serial number %s/%s", ErrInvalidDataLength, mfrCode, mfrSerial)
	}
	if !validSerialText(mfrCode) || !validSerialText(mfrSerial) {
		return SerialNumber{}, fmt.Errorf("%w: %s%s", ErrInvalidSerialNumber, mfrCode, mfrSerial)
	}

	var s SerialNumber
	copy(s.raw[:], mfrCode)
	s.raw[serialLengthIndex] = "0123456789ABCDEF"[len(mfrSerial)]
	copy(s.raw[serialStart:], mfrSerial)
	return s, nil
}

// DecodeSerialNumber validates the character set and the length character
func DecodeSerialNumber(b []byte) (SerialNumber, error) {
	if err := checkLength(b, IdentifierSize); err != nil {
		return SerialNumber{}, err
	}

	for _, c := range b {
		if !isSerialChar(c) {
			return SerialNumber{}, fmt.Errorf("%w: character 0x%02X", ErrInvalidSerialNumber, c)
		}
	}
	if !isHexDigit(b[serialLengthIndex]) {
		return SerialNumber{}, fmt.Errorf("%w: length character 0x%02X", ErrInvalidSerialNumber, b[serialLengthIndex])
	}

	var s SerialNumber
	copy(s.raw[:], b)
	return s, nil
}

func (SerialNumber) IDType() IDType { return IDTypeSerialNumber }

// MfrCode returns the 4 character manufacturer code
func (s SerialNumber) MfrCode() string {
	return string(s.raw[:mfrCodeSize])
}

// MfrSerial returns the manufacturer serial up to the first null
func (s SerialNumber) MfrSerial() string {
	return nullTerminated(s.raw[serialStart:])
}

func (s SerialNumber) String() string {
	return s.MfrCode() + s.MfrSerial()
}

func (s SerialNumber) encodeID(b []byte) error {
	if err := checkLength(b, IdentifierSize); err != nil {
		return err
	}
	copy(b, s.raw[:])
	return nil
}

// RegistrationID is a nationality mark and a CAA assigned id joined by a dot,
// null padded to 20 bytes.
type RegistrationID struct {
	raw [IdentifierSize]byte
}

// NewRegistrationID builds a registration id. The mark and id together must
// fit in 19 characters of digits and uppercase letters.
func NewRegistrationID(nationalityMark, caaID string) (RegistrationID, error) {
	if len(nationalityMark)+len(caaID) > IdentifierSize-1 {
		return RegistrationID{}, fmt.Errorf("%w: registration id %s.%s", ErrInvalidDataLength, nationalityMark, caaID)
	}
	if !validRegistrationText(nationalityMark) || !validRegistrationText(caaID) {
		return RegistrationID{}, fmt.Errorf("%w: %s.%s", ErrInvalidRegistrationID, nationalityMark, caaID)
	}

	var r RegistrationID
	n := copy(r.raw[:], nationalityMark)
	r.raw[n] = '.'
	copy(r.raw[n+1:], caaID)
	return r, nil
}

// DecodeRegistrationID requires exactly one dot and otherwise digits,
// uppercase letters or nulls.
func DecodeRegistrationID(b []byte) (RegistrationID, error) {
	if err := checkLength(b, IdentifierSize); err != nil {
		return RegistrationID{}, err
	}

	dots := 0
	for _, c := range b {
		if c == '.' {
			dots++
			continue
		}
		if !isRegistrationChar(c) {
			return RegistrationID{}, fmt.Errorf("%w: character 0x%02X", ErrInvalidRegistrationID, c)
		}
	}
	if dots != 1 {
		return RegistrationID{}, fmt.Errorf("%w: %d dots", ErrInvalidRegistrationID, dots)
	}

	var r RegistrationID
	copy(r.raw[:], b)
	return r, nil
}

func (RegistrationID) IDType() IDType { return IDTypeRegistration }

// NationalityMark returns the part before the dot
func (r RegistrationID) NationalityMark() string {
	mark, _, _ := bytes.Cut(r.raw[:], []byte{'.'})
	return string(mark)
}

// CAAID returns the part after the dot, up to the first null
func (r RegistrationID) CAAID() string {
	_, id, _ := bytes.Cut(r.raw[:], []byte{'.'})
	return nullTerminated(id)
}

func (r RegistrationID) String() string {
	return r.NationalityMark() + "." + r.CAAID()
}

func (r RegistrationID) encodeID(b []byte) error {
	if err := checkLength(b, IdentifierSize); err != nil {
		return err
	}
	copy(b, r.raw[:])
	return nil
}

// UTMAssignedUUID is an opaque 20 byte identifier assigned by a UTM service
type UTMAssignedUUID [IdentifierSize]byte

// DecodeUTMAssignedUUID copies the 20 byte identifier field unchanged
func DecodeUTMAssignedUUID(b []byte) (UTMAssignedUUID, error) {
	var u UTMAssignedUUID
	if err := checkLength(b, IdentifierSize); err != nil {
		return u, err
	}
	copy(u[:], b)
	return u, nil
}

func (UTMAssignedUUID) IDType() IDType { return IDTypeUTMAssigned }

func (u UTMAssignedUUID) String() string { return fmt.Sprintf("%x", u[:]) }

func (u UTMAssignedUUID) encodeID(b []byte) error {
	if err := checkLength(b, IdentifierSize); err != nil {
		return err
	}
	copy(b, u[:])
	return nil
}

// SessionIDType identifies the scheme that produced a session id. Codes 0 and
// 3-223 are reserved, 224 and above are for private use.
type SessionIDType uint8

const (
	SessionIDReserved   SessionIDType = 0
	SessionIDIETFDRIP   SessionIDType = 1   // IETF Drone Remote ID Protocol
	SessionIDIEEE1609   SessionIDType = 2   // IEEE 1609.2-2016 HashedID8
	SessionIDPrivateUse SessionIDType = 224 // First private use code

	sessionIDReservedBand = 3
)

// DecodeSessionIDType maps a raw code to its band. It never fails.
func DecodeSessionIDType(raw uint8) SessionIDType {
	switch {
	case raw >= uint8(SessionIDPrivateUse):
		return SessionIDPrivateUse
	case raw >= sessionIDReservedBand:
		return SessionIDReserved
	default:
		return SessionIDType(raw)
	}
}

// Encode returns the lower bound of the type's band
func (t SessionIDType) Encode() uint8 {
	return uint8(DecodeSessionIDType(uint8(t)))
}

func (t SessionIDType) String() string {
	switch DecodeSessionIDType(uint8(t)) {
	case SessionIDIETFDRIP:
		return "IETFDroneRemoteIDProtocol"
	case SessionIDIEEE1609:
		return "IEEE16092HashedID8"
	case SessionIDPrivateUse:
		return "PrivateUse"
	default:
		return "Reserved"
	}
}

// SessionID is a type byte followed by a 19 byte session identifier
type SessionID struct {
	Type SessionIDType
	ID   [SessionIDSize]byte
}

// DecodeSessionID splits the identifier field into its type byte and ID
func DecodeSessionID(b []byte) (SessionID, error) {
	if err := checkLength(b, IdentifierSize); err != nil {
		return SessionID{}, err
	}
	s := SessionID{Type: DecodeSessionIDType(b[0])}
	copy(s.ID[:], b[1:])
	return s, nil
}

func (SessionID) IDType() IDType { return IDTypeSession }

func (s SessionID) String() string { return fmt.Sprintf("%s:%x", s.Type, s.ID[:]) }

func (s SessionID) encodeID(b []byte) error {
	if err := checkLength(b, IdentifierSize); err != nil {
		return err
	}
	b[0] = s.Type.Encode()
	copy(b[1:], s.ID[:])
	return nil
}

// DecodeUASID decodes the 21 byte identifier block of a BasicID payload. Only
// the high nibble of the first byte belongs to the identifier.
func DecodeUASID(b []byte) (UASID, error) {
	if err := checkLength(b, UASIDSize); err != nil {
		return nil, err
	}

	id := b[1:]
	switch t := IDType(b[0] >> messageShift); t {
	case IDTypeNone:
		return NoUASID{}, nil
	case IDTypeSerialNumber:
		return DecodeSerialNumber(id)
	case IDTypeRegistration:
		return DecodeRegistrationID(id)
	case IDTypeUTMAssigned:
		return DecodeUTMAssignedUUID(id)
	case IDTypeSession:
		return DecodeSessionID(id)
	default:
		return nil, invalidInteger("id type", int(t))
	}
}

// EncodeUASID writes id into a 21 byte identifier block, preserving the low
// nibble of the first byte. A nil id encodes as NoUASID.
func EncodeUASID(id UASID, b []byte) error {
	if err := checkLength(b, UASIDSize); err != nil {
		return err
	}
	if id == nil {
		id = NoUASID{}
	}

	b[0] = b[0]&nibbleMask | uint8(id.IDType())<<messageShift
	return id.encodeID(b[1:])
}

func isSerialChar(c byte) bool {
	return isRegistrationChar(c) && c != 'O' && c != 'I'
}

func isRegistrationChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == 0
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'F' || c >= 'a' && c <= 'f'
}

func validSerialText(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isSerialChar(s[i]) {
			return false
		}
	}
	return true
}

func validRegistrationText(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isRegistrationChar(s[i]) {
			return false
		}
	}
	return true
}

func nullTerminated(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
