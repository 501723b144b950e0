package app

import (
	"encoding/hex"
	"fmt"
	"strings"

	"goremoteid/pkg/remoteid"
)

// DecodeHex decodes one hex-encoded frame. Whitespace, colons and a
// leading 0x are ignored.
func DecodeHex(s string) (remoteid.Message, error) {
	raw, err := parseHex(s)
	if err != nil {
		return remoteid.Message{}, err
	}

	msg, err := remoteid.DecodeMessage(raw)
	if err != nil {
		return remoteid.Message{}, fmt.Errorf("failed to decode message: %w", err)
	}
	return msg, nil
}

// PackHex builds a pack message from hex-encoded messages and returns it
// hex-encoded
func PackHex(frames []string) (string, error) {
	msgs := make([]remoteid.Message, 0, len(frames))
	for i, s := range frames {
		msg, err := DecodeHex(s)
		if err != nil {
			return "", fmt.Errorf("message %d: %w", i+1, err)
		}
		msgs = append(msgs, msg)
	}

	pack, err := remoteid.NewPack(msgs...)
	if err != nil {
		return "", fmt.Errorf("failed to build pack: %w", err)
	}

	raw, err := remoteid.NewMessage(pack).MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to encode pack: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.Map(func(r rune) rune {
		if r == ':' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)

	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex frame: %w", err)
	}
	return raw, nil
}
