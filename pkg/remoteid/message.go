package remoteid

import "fmt"

// MessageKind is the message type nibble of the header byte
type MessageKind uint8

const (
	KindBasicID        MessageKind = 0x0
	KindLocation       MessageKind = 0x1
	KindAuthentication MessageKind = 0x2
	KindSelfID         MessageKind = 0x3
	KindSystem         MessageKind = 0x4
	KindOperatorID     MessageKind = 0x5
	KindPack           MessageKind = PackMessageCode

	// KindNone is reported by a Message without payload. It has no wire code.
	KindNone MessageKind = 0xFF
)

func (k MessageKind) String() string {
	switch k {
	case KindBasicID:
		return "BasicID"
	case KindLocation:
		return "Location"
	case KindAuthentication:
		return "Authentication"
	case KindSelfID:
		return "SelfID"
	case KindSystem:
		return "System"
	case KindOperatorID:
		return "OperatorID"
	case KindPack:
		return "Pack"
	case KindNone:
		return "None"
	default:
		return fmt.Sprintf("MessageKind(0x%X)", uint8(k))
	}
}

// Payload is the body of a message: BasicID, Location, an Authentication
// page, SelfID, System, OperatorID or Pack.
type Payload interface {
	Kind() MessageKind
	Encode(b []byte) error
}

// Message is a payload wrapped with the header byte
type Message struct {
	version uint8
	payload Payload
}

// NewMessage wraps p with the current protocol version
func NewMessage(p Payload) Message {
	return Message{version: ProtocolVersion, payload: p}
}

// DecodeMessage decodes one message. A pack message is the header byte
// followed by the pack body; every other message is exactly 25 bytes.
func DecodeMessage(b []byte) (Message, error) {
	if len(b) < HeaderSize {
		return Message{}, checkLength(b, MessageSize)
	}

	if version := b[0] & versionMask; version != ProtocolVersion {
		return Message{}, fmt.Errorf("%w: %d", ErrInvalidProtocolVersion, version)
	}

	kind := MessageKind(b[0] >> messageShift)
	if kind == KindPack {
		pack, err := DecodePack(b[HeaderSize:])
		if err != nil {
			return Message{}, err
		}
		return NewMessage(pack), nil
	}

	if err := checkLength(b, MessageSize); err != nil {
		return Message{}, err
	}

	p, err := decodePayload(kind, b[HeaderSize:])
	if err != nil {
		return Message{}, err
	}
	return NewMessage(p), nil
}

func decodePayload(kind MessageKind, b []byte) (Payload, error) {
	switch kind {
	case KindBasicID:
		return DecodeBasicID(b)
	case KindLocation:
		return DecodeLocation(b)
	case KindAuthentication:
		return DecodeAuthentication(b)
	case KindSelfID:
		return DecodeSelfID(b)
	case KindSystem:
		return DecodeSystem(b)
	case KindOperatorID:
		return DecodeOperatorID(b)
	default:
		return nil, invalidInteger("message type", int(kind))
	}
}

// ProtocolVersion returns the version nibble the message was built or
// decoded with.
func (m Message) ProtocolVersion() uint8 { return m.version }

// Payload returns the wrapped payload. Use a type switch to get at the
// concrete value.
func (m Message) Payload() Payload { return m.payload }

// Kind returns the message type, KindPack for a pack and KindNone for the
// zero Message
func (m Message) Kind() MessageKind {
	if m.payload == nil {
		return KindNone
	}
	return m.payload.Kind()
}

// IsPack reports whether the payload is a Pack
func (m Message) IsPack() bool {
	_, ok := m.payload.(Pack)
	return ok
}

// EncodingByteLength is the exact buffer size Encode needs: 25, or the
// header byte plus 2+25N for a pack of N messages.
func (m Message) EncodingByteLength() int {
	if p, ok := m.payload.(Pack); ok {
		return HeaderSize + p.EncodingByteLength()
	}
	return MessageSize
}

// Encode writes the message into b, which must be EncodingByteLength bytes
func (m Message) Encode(b []byte) error {
	if m.payload == nil {
		return fmt.Errorf("%w: message without payload", ErrUnreachable)
	}
	if err := checkLength(b, m.EncodingByteLength()); err != nil {
		return err
	}

	b[0] = uint8(m.payload.Kind())<<messageShift | m.version&versionMask
	return m.payload.Encode(b[HeaderSize:])
}

// MarshalBinary implements encoding.BinaryMarshaler
func (m Message) MarshalBinary() ([]byte, error) {
	b := make([]byte, m.EncodingByteLength())
	if err := m.Encode(b); err != nil {
		return nil, err
	}
	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (m *Message) UnmarshalBinary(b []byte) error {
	decoded, err := DecodeMessage(b)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}
