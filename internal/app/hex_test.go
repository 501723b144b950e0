package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goremoteid/pkg/remoteid"
)

// TestDecodeHex tests hex parsing and codec errors
func TestDecodeHex(t *testing.T) {
	basic := hexMessage(t, remoteid.BasicID{UAType: remoteid.UATypeGlider, UASID: remoteid.NoUASID{}})

	tests := []struct {
		name    string
		input   string
		kind    remoteid.MessageKind
		fails   bool
		wantErr error
	}{
		{name: "Plain", input: basic, kind: remoteid.KindBasicID},
		{name: "Prefixed", input: "0x" + strings.ToUpper(basic), kind: remoteid.KindBasicID},
		{name: "Spaced", input: " " + basic[:10] + " " + basic[10:] + "\n", kind: remoteid.KindBasicID},
		{name: "Colons", input: basic[:2] + ":" + basic[2:], kind: remoteid.KindBasicID},
		{name: "Bad version", input: "01" + strings.Repeat("00", 24), fails: true, wantErr: remoteid.ErrInvalidProtocolVersion},
		{name: "Short", input: "0200", fails: true, wantErr: remoteid.ErrInvalidDataLength},
		{name: "Not hex", input: "xyz", fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := DecodeHex(tt.input)
			if tt.fails {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.kind, msg.Kind())
		})
	}
}

// TestPackHex tests building a pack from hex frames
func TestPackHex(t *testing.T) {
	selfID, err := remoteid.NewSelfIDText(remoteid.DescriptionText, "test")
	require.NoError(t, err)

	frames := []string{
		hexMessage(t, remoteid.BasicID{UAType: remoteid.UATypeKite, UASID: remoteid.NoUASID{}}),
		hexMessage(t, selfID),
	}

	packed, err := PackHex(frames)
	require.NoError(t, err)
	assert.Len(t, packed, 2*(1+remoteid.PackHeaderSize+2*remoteid.MessageSize))
	assert.True(t, strings.HasPrefix(packed, "f21902"), packed)

	msg, err := DecodeHex(packed)
	require.NoError(t, err)
	require.True(t, msg.IsPack())

	pack := msg.Payload().(remoteid.Pack)
	assert.Equal(t, 2, pack.NumberOfMessages())

	t.Run("Too many messages", func(t *testing.T) {
		many := make([]string, remoteid.MaxPackMessages+1)
		for i := range many {
			many[i] = frames[0]
		}
		_, err := PackHex(many)
		assert.ErrorIs(t, err, remoteid.ErrInvalidInteger)
	})

	t.Run("Nested pack", func(t *testing.T) {
		_, err := PackHex([]string{packed})
		assert.ErrorIs(t, err, remoteid.ErrCannotRecursivelyPack)
	})

	t.Run("Bad element", func(t *testing.T) {
		_, err := PackHex([]string{frames[0], "zz"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "message 2")
	})
}

// TestDescribe tests the field listing used by the decode command
func TestDescribe(t *testing.T) {
	serial, err := remoteid.NewSerialNumber("1ABC", "SN0001")
	require.NoError(t, err)
	basic := remoteid.NewMessage(remoteid.BasicID{UAType: remoteid.UATypeHelicopter, UASID: serial})

	fields := Describe(basic)
	require.GreaterOrEqual(t, len(fields), 5)
	assert.Equal(t, Field{Name: "Message Type", Value: "BasicID"}, fields[0])
	assert.Equal(t, Field{Name: "Protocol Version", Value: "2"}, fields[1])
	assert.Contains(t, fields, Field{Name: "UAS ID", Value: serial.String()})

	location := remoteid.NewMessage(remoteid.Location{
		Latitude:  remoteid.LatitudeOf(46.5),
		Longitude: remoteid.Longitude{Validity: remoteid.Unknown},
	})
	fields = Describe(location)
	assert.Contains(t, fields, Field{Name: "Latitude", Value: "46.5000000"})
	assert.Contains(t, fields, Field{Name: "Longitude", Value: "Unknown"})

	pack, err := remoteid.NewPack(basic, location)
	require.NoError(t, err)
	fields = Describe(remoteid.NewMessage(pack))
	assert.Contains(t, fields, Field{Name: "Messages", Value: "2"})
	assert.Contains(t, fields, Field{Name: "[1] Message Type", Value: "BasicID"})
	assert.Contains(t, fields, Field{Name: "[2] Latitude", Value: "46.5000000"})
	for _, f := range fields {
		assert.NotEqual(t, "[1] Protocol Version", f.Name)
	}
}
