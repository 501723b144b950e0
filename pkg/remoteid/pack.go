package remoteid

import "fmt"

// Pack carries up to nine complete messages for transports that can send
// more than 25 bytes at once. Elements are kept serialized and decoded on
// demand by Message.
type Pack struct {
	count    uint8
	messages [MaxPackMessages * MessageSize]byte
}

// NewPack serializes msgs into a pack. It fails with ErrInvalidInteger for
// more than nine messages and ErrCannotRecursivelyPack if any of them is a
// pack.
func NewPack(msgs ...Message) (Pack, error) {
	if len(msgs) > MaxPackMessages {
		return Pack{}, invalidInteger("pack message count", len(msgs))
	}

	var p Pack
	for i, m := range msgs {
		if m.IsPack() {
			return Pack{}, fmt.Errorf("%w: element %d", ErrCannotRecursivelyPack, i)
		}
		if err := m.Encode(p.element(i)); err != nil {
			return Pack{}, fmt.Errorf("pack element %d: %w", i, err)
		}
	}
	p.count = uint8(len(msgs))
	return p, nil
}

// DecodePack decodes a pack body: the length marker, the count and the
// messages. The outer header byte is not part of b.
func DecodePack(b []byte) (Pack, error) {
	if len(b) < PackHeaderSize {
		return Pack{}, checkLength(b, PackHeaderSize)
	}

	count := int(b[1])
	if count > MaxPackMessages {
		return Pack{}, invalidInteger("pack message count", count)
	}
	if err := checkLength(b, PackHeaderSize+count*MessageSize); err != nil {
		return Pack{}, err
	}
	if b[0] != MessageSize {
		return Pack{}, invalidInteger("pack message size", int(b[0]))
	}

	p := Pack{count: uint8(count)}
	copy(p.messages[:], b[PackHeaderSize:])
	return p, nil
}

func (Pack) Kind() MessageKind { return KindPack }

// NumberOfMessages returns N
func (p Pack) NumberOfMessages() int { return int(p.count) }

// Messages returns the serialized messages, 25 bytes each
func (p Pack) Messages() []byte {
	return p.messages[:int(p.count)*MessageSize]
}

// EncodingByteLength is 2+25N
func (p Pack) EncodingByteLength() int {
	return PackHeaderSize + int(p.count)*MessageSize
}

// Message decodes element i. ok is false when i is out of range; err is
// ErrCannotRecursivelyPack when the element claims to be a pack.
func (p Pack) Message(i int) (m Message, ok bool, err error) {
	if i < 0 || i >= int(p.count) {
		return Message{}, false, nil
	}

	raw := p.element(i)
	if MessageKind(raw[0]>>messageShift) == KindPack {
		return Message{}, true, fmt.Errorf("%w: element %d", ErrCannotRecursivelyPack, i)
	}

	m, err = DecodeMessage(raw)
	return m, true, err
}

// Encode writes the pack body into b, which must be EncodingByteLength bytes
func (p Pack) Encode(b []byte) error {
	if err := checkLength(b, p.EncodingByteLength()); err != nil {
		return err
	}

	b[0] = MessageSize
	b[1] = p.count
	copy(b[PackHeaderSize:], p.Messages())
	return nil
}

func (p *Pack) element(i int) []byte {
	return p.messages[i*MessageSize : (i+1)*MessageSize]
}
