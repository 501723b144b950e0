package remoteid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUAType tests the aircraft type range check
func TestUAType(t *testing.T) {
	for raw := uint8(0); raw <= uint8(UATypeOther); raw++ {
		ua, err := DecodeUAType(raw)
		require.NoError(t, err)
		assert.Equal(t, UAType(raw), ua)
		assert.NotContains(t, ua.String(), "UAType(")
	}

	_, err := DecodeUAType(15)
	assert.ErrorIs(t, err, ErrInvalidInteger)
	assert.Equal(t, "Ornithopter", UATypeOrnithopter.String())
}

// TestBandedEnums tests that every code in a reserved or private use band
// decodes to the band and encodes to its lower threshold
func TestBandedEnums(t *testing.T) {
	t.Run("OperationalStatus", func(t *testing.T) {
		for raw := uint8(StatusReserved); raw <= OperationalStatusMax; raw++ {
			status, err := DecodeOperationalStatus(raw)
			require.NoError(t, err)
			assert.Equal(t, StatusReserved, status)
			assert.Equal(t, uint8(StatusReserved), OperationalStatus(raw).Encode())
		}
		_, err := DecodeOperationalStatus(OperationalStatusMax + 1)
		assert.ErrorIs(t, err, ErrInvalidInteger)
	})

	t.Run("ClassificationType", func(t *testing.T) {
		for raw := uint8(ClassificationReserved); raw <= ClassificationTypeMax; raw++ {
			c, err := DecodeClassificationType(raw)
			require.NoError(t, err)
			assert.Equal(t, ClassificationReserved, c)
			assert.Equal(t, uint8(ClassificationReserved), ClassificationType(raw).Encode())
		}
		_, err := DecodeClassificationType(ClassificationTypeMax + 1)
		assert.ErrorIs(t, err, ErrInvalidInteger)
	})

	t.Run("DescriptionType", func(t *testing.T) {
		for raw := 0; raw <= math.MaxUint8; raw++ {
			d := DecodeDescriptionType(uint8(raw))
			switch {
			case raw >= int(DescriptionPrivateUse):
				assert.Equal(t, DescriptionPrivateUse, d)
			case raw >= int(DescriptionReserved):
				assert.Equal(t, DescriptionReserved, d)
			default:
				assert.Equal(t, DescriptionType(raw), d)
			}
			assert.Equal(t, uint8(d), DescriptionType(raw).Encode())
		}
	})

	t.Run("OperatorIDType", func(t *testing.T) {
		for raw := 0; raw <= math.MaxUint8; raw++ {
			o := DecodeOperatorIDType(uint8(raw))
			switch {
			case raw >= int(OperatorIDTypePrivateUse):
				assert.Equal(t, OperatorIDTypePrivateUse, o)
			case raw >= int(OperatorIDTypeReserved):
				assert.Equal(t, OperatorIDTypeReserved, o)
			default:
				assert.Equal(t, OperatorIDTypeCAA, o)
			}
			assert.Equal(t, uint8(o), OperatorIDType(raw).Encode())
		}
	})

	t.Run("SessionIDType", func(t *testing.T) {
		for raw := 0; raw <= math.MaxUint8; raw++ {
			s := DecodeSessionIDType(uint8(raw))
			switch {
			case raw >= int(SessionIDPrivateUse):
				assert.Equal(t, SessionIDPrivateUse, s)
			case raw == 1 || raw == 2:
				assert.Equal(t, SessionIDType(raw), s)
			default:
				assert.Equal(t, SessionIDReserved, s)
			}
		}
		assert.Equal(t, uint8(0), SessionIDType(100).Encode())
	})

	t.Run("AuthenticationType", func(t *testing.T) {
		for raw := uint8(0); raw <= AuthenticationTypeMax; raw++ {
			a, err := DecodeAuthenticationType(raw)
			require.NoError(t, err)
			switch {
			case raw >= uint8(AuthAvailablePrivateUse):
				assert.Equal(t, AuthAvailablePrivateUse, a)
			case raw >= uint8(AuthReserved):
				assert.Equal(t, AuthReserved, a)
			default:
				assert.Equal(t, AuthenticationType(raw), a)
			}
			assert.Equal(t, uint8(a), AuthenticationType(raw).Encode())
		}
		_, err := DecodeAuthenticationType(AuthenticationTypeMax + 1)
		assert.ErrorIs(t, err, ErrInvalidInteger)
	})
}

// TestClosedEnums tests enumerations without an absorbing band
func TestClosedEnums(t *testing.T) {
	_, err := DecodeHeightType(2)
	assert.ErrorIs(t, err, ErrInvalidInteger)

	h, err := DecodeHeightType(1)
	require.NoError(t, err)
	assert.Equal(t, HeightAboveGround, h)

	_, err = DecodeOperatorLocationSourceType(3)
	assert.ErrorIs(t, err, ErrInvalidInteger)

	o, err := DecodeOperatorLocationSourceType(2)
	require.NoError(t, err)
	assert.Equal(t, OperatorLocationFixed, o)
}

// TestUAClassification tests the category and Open class nibbles
func TestUAClassification(t *testing.T) {
	tests := []struct {
		name           string
		classification UAClassification
		raw            uint8
	}{
		{name: "Undefined", classification: UAClassification{}, raw: 0x00},
		{name: "Open C1", classification: OpenClass(OpenClass1), raw: 0x12},
		{name: "Open C6", classification: OpenClass(OpenClass6), raw: 0x17},
		{name: "Open reserved class", classification: OpenClass(OpenReserved), raw: 0x18},
		{name: "Specific", classification: UAClassification{Category: CategorySpecific}, raw: 0x20},
		{name: "Certified", classification: UAClassification{Category: CategoryCertified}, raw: 0x30},
		{name: "Reserved", classification: UAClassification{Category: CategoryReserved}, raw: 0x40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.raw, tt.classification.Encode())
			assert.Equal(t, tt.classification, DecodeUAClassification(tt.raw))
		})
	}

	t.Run("Reserved bands", func(t *testing.T) {
		assert.Equal(t, OpenClass(OpenReserved), DecodeUAClassification(0x1F))
		assert.Equal(t, UAClassification{Category: CategoryReserved}, DecodeUAClassification(0xF3))
		assert.Equal(t, uint8(0x40), UAClassification{Category: 9}.Encode())
	})

	t.Run("Class is dropped outside the Open category", func(t *testing.T) {
		assert.Equal(t, UAClassification{Category: CategorySpecific}, DecodeUAClassification(0x25))
		assert.Equal(t, uint8(0x20), UAClassification{Category: CategorySpecific, Class: OpenClass2}.Encode())
	})

	assert.Equal(t, "Open/C1", OpenClass(OpenClass1).String())
}

// TestMessageKindString tests message kind names
func TestMessageKindString(t *testing.T) {
	assert.Equal(t, "BasicID", KindBasicID.String())
	assert.Equal(t, "Pack", KindPack.String())
	assert.Equal(t, "MessageKind(0x7)", MessageKind(7).String())
}
